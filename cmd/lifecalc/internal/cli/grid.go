package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/mortality"
	"github.com/meenmo/lifelib/singlelife"
)

type gridOutput struct {
	Function string      `json:"function"`
	I        float64     `json:"i"`
	Points   []gridPoint `json:"points"`
}

type gridPoint struct {
	X     int     `json:"x"`
	Value float64 `json:"value"`
}

func (a *app) gridCmd() *cobra.Command {
	var (
		lf       lifeFlags
		from, to int
	)

	cmd := &cobra.Command{
		Use:   "grid <function>",
		Short: "Evaluate a single-life function over a range of ages",
		Long: `Evaluate a single-life function for every issue age from --from to --to.
Ages are spread over --workers goroutines; the first failure stops the grid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "lifecalc.grid"

			fn, err := lookupFunc(args[0])
			if err != nil {
				return err
			}
			if from > to {
				return failed(errs.Validation(op, "from", "--from %d is after --to %d", from, to))
			}
			if a.settings.Workers < 1 {
				return failed(errs.Validation(op, "workers", "workers %d must be at least 1", a.settings.Workers))
			}
			cfg, err := a.config()
			if err != nil {
				return failed(err)
			}

			base := lf.params(cmd.Flags(), a.cache)
			points, err := evalGrid(cmd.Context(), cfg, fn, base, from, to, a.settings.Workers)
			if err != nil {
				return failed(err)
			}
			a.log.Info("grid computed", zap.String("function", args[0]), zap.Int("points", len(points)), zap.Int("workers", a.settings.Workers))

			return writeJSON(a.stdout, gridOutput{Function: args[0], I: base.I, Points: points})
		},
	}

	f := cmd.Flags()
	lf.register(f, false)
	f.IntVar(&from, "from", 0, "first issue age")
	f.IntVar(&to, "to", 0, "last issue age")
	f.IntVar(&a.settings.Workers, "workers", a.settings.Workers, "concurrent evaluations")
	return cmd
}

// evalGrid evaluates fn at every age in [from, to] with at most workers in
// flight. Points come back in age order.
func evalGrid(ctx context.Context, cfg *mortality.Config, fn singlelife.Func, base singlelife.Params, from, to, workers int) ([]gridPoint, error) {
	points := make([]gridPoint, to-from+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k := range points {
		x := from + k
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := base
			p.X = x
			v, err := fn(cfg, p)
			if err != nil {
				return err
			}
			points[k] = gridPoint{X: x, Value: v}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
