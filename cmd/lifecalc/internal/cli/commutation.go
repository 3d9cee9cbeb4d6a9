package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meenmo/lifelib/errs"
)

type commutationOutput struct {
	Rate     float64          `json:"i"`
	EntryAge *int             `json:"entry_age,omitempty"`
	Start    int              `json:"start"`
	Omega    int              `json:"omega"`
	Rows     []commutationRow `json:"rows"`
}

type commutationRow struct {
	Age int     `json:"age"`
	D   float64 `json:"Dx"`
	C   float64 `json:"Cx"`
	M   float64 `json:"Mx"`
	N   float64 `json:"Nx"`
	R   float64 `json:"Rx"`
	S   float64 `json:"Sx"`
}

func (a *app) commutationCmd() *cobra.Command {
	var (
		i        float64
		entryAge int
		from, to int
	)

	cmd := &cobra.Command{
		Use:   "commutation",
		Short: "Commutation columns Dx, Cx, Mx, Nx, Rx and Sx",
		Long: `Print the commutation columns of the ultimate curve, or of the select
curve of --entry-age, at effective rate --i. --from and --to narrow the
ages listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const op = "lifecalc.commutation"

			cfg, err := a.config()
			if err != nil {
				return failed(err)
			}
			ea := intFlag(cmd.Flags().Changed("entry-age"), entryAge)
			curve, err := cfg.Curve(ea)
			if err != nil {
				return failed(err)
			}
			tbl, err := a.cache.Get(curve, i)
			if err != nil {
				return failed(err)
			}

			lo, hi := tbl.Start(), tbl.Omega()
			if cmd.Flags().Changed("from") {
				lo = from
			}
			if cmd.Flags().Changed("to") {
				hi = to
			}
			if lo > hi {
				return failed(errs.Validation(op, "from", "--from %d is after --to %d", lo, hi))
			}

			out := commutationOutput{Rate: tbl.Rate(), EntryAge: ea, Start: tbl.Start(), Omega: tbl.Omega()}
			for age := lo; age <= hi; age++ {
				r, err := tbl.At(age)
				if err != nil {
					return failed(err)
				}
				out.Rows = append(out.Rows, commutationRow{Age: r.Age, D: r.D, C: r.C, M: r.M, N: r.N, R: r.R, S: r.S})
			}
			a.log.Debug("commutation served", zap.Int("cached_tables", a.cache.Len()), zap.Int64("builds", a.cache.Builds()))
			return writeJSON(a.stdout, out)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&i, "i", 0, "effective annual interest rate")
	f.IntVar(&entryAge, "entry-age", 0, "entry age on a select table")
	f.IntVar(&from, "from", 0, "first age listed")
	f.IntVar(&to, "to", 0, "last age listed")
	return cmd
}
