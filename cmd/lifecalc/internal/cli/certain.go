package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/meenmo/lifelib/certain"
	"github.com/meenmo/lifelib/solver"
)

type certainFunc func(i float64, n, t, m int) (float64, error)

var certainFuncs = map[string]certainFunc{
	"aan":  certain.Aan,
	"an":   certain.An,
	"Iaan": certain.Iaan,
	"Ian":  certain.Ian,
	"Daan": certain.Daan,
	"Dan":  certain.Dan,
	"ssn":  certain.Ssn,
	"sn":   certain.Sn,
	"Issn": certain.Issn,
	"Isn":  certain.Isn,
	"Dssn": certain.Dssn,
	"Dsn":  certain.Dsn,
}

func certainNames() []string {
	out := make([]string, 0, len(certainFuncs))
	for name := range certainFuncs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type certainOutput struct {
	Function string  `json:"function"`
	I        float64 `json:"i"`
	N        int     `json:"n"`
	T        int     `json:"t"`
	M        int     `json:"m"`
	Value    float64 `json:"value"`
}

func (a *app) certainCmd() *cobra.Command {
	var (
		i       float64
		n, t, m int
	)

	cmd := &cobra.Command{
		Use:   "certain <function>",
		Short: "Evaluate an annuity-certain",
		Long: fmt.Sprintf(`Evaluate an annuity-certain or its accumulated value. No mortality
table is needed.

Functions: %v`, certainNames()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := certainFuncs[args[0]]
			if !ok {
				return fmt.Errorf("unknown annuity-certain %q (want one of %v)", args[0], certainNames())
			}
			v, err := fn(i, n, t, m)
			if err != nil {
				return failed(err)
			}
			return writeJSON(a.stdout, certainOutput{Function: args[0], I: i, N: n, T: t, M: m, Value: v})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&i, "i", 0, "effective annual interest rate")
	f.IntVar(&n, "n", 0, "term in years")
	f.IntVar(&t, "t", 0, "deferral in years")
	f.IntVar(&m, "m", 1, "payments per year")
	return cmd
}

type yieldOutput struct {
	Price      float64 `json:"price"`
	N          int     `json:"n"`
	M          int     `json:"m"`
	Rate       float64 `json:"i"`
	Iterations int     `json:"iterations"`
}

func (a *app) yieldCmd() *cobra.Command {
	var (
		price float64
		n, m  int
	)
	cfg := solver.DefaultConfig

	cmd := &cobra.Command{
		Use:   "yield",
		Short: "Solve for the rate at which an annuity-immediate costs --price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := certain.Yield(price, n, m, cfg)
			if err != nil {
				return failed(err)
			}
			return writeJSON(a.stdout, yieldOutput{Price: price, N: n, M: m, Rate: res.Rate, Iterations: res.Iterations})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&price, "price", 0, "price of the annuity")
	f.IntVar(&n, "n", 0, "term in years")
	f.IntVar(&m, "m", 1, "payments per year")
	f.Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "accepted residual")
	f.IntVar(&cfg.MaxIter, "max-iter", cfg.MaxIter, "maximum Newton steps")
	return cmd
}
