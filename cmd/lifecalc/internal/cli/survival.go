package cli

import (
	"github.com/spf13/cobra"

	"github.com/meenmo/lifelib/survival"
)

type survivalOutput struct {
	X          float64 `json:"x"`
	T          float64 `json:"t"`
	K          float64 `json:"k"`
	EntryAge   *int    `json:"entry_age,omitempty"`
	Assumption string  `json:"assumption"`
	Tpx        float64 `json:"tpx"`
	Tqx        float64 `json:"tqx"`
}

func (a *app) survivalCmd() *cobra.Command {
	var (
		q        survival.Query
		entryAge int
	)

	cmd := &cobra.Command{
		Use:     "survival",
		Aliases: []string{"tpx"},
		Short:   "Survival and death probabilities k|tpx and k|tqx",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return failed(err)
			}
			q.EntryAge = intFlag(cmd.Flags().Changed("entry-age"), entryAge)

			p, err := survival.Tpx(cfg, q)
			if err != nil {
				return failed(err)
			}
			d, err := survival.Tqx(cfg, q)
			if err != nil {
				return failed(err)
			}

			return writeJSON(a.stdout, survivalOutput{
				X: q.X, T: q.T, K: q.K, EntryAge: q.EntryAge,
				Assumption: cfg.Assumption().String(),
				Tpx:        p,
				Tqx:        d,
			})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&q.X, "x", 0, "age, may be fractional")
	f.Float64Var(&q.T, "t", 1, "survival period in years")
	f.Float64Var(&q.K, "k", 0, "deferral in years")
	f.IntVar(&entryAge, "entry-age", 0, "entry age on a select table")
	return cmd
}
