package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meenmo/lifelib/mortality"
	"github.com/meenmo/lifelib/tableio"
)

type lawParams struct {
	lambda, a, b, c, k, n float64
	ages                  mortality.LawAges
}

var laws = map[string]func(p lawParams) (mortality.RawTable, error){
	"constant-force": func(p lawParams) (mortality.RawTable, error) { return mortality.ConstantForceLaw(p.lambda, p.ages) },
	"de-moivre":      func(p lawParams) (mortality.RawTable, error) { return mortality.DeMoivreLaw(p.ages) },
	"gompertz":       func(p lawParams) (mortality.RawTable, error) { return mortality.GompertzLaw(p.b, p.c, p.ages) },
	"makeham":        func(p lawParams) (mortality.RawTable, error) { return mortality.MakehamLaw(p.a, p.b, p.c, p.ages) },
	"weibull":        func(p lawParams) (mortality.RawTable, error) { return mortality.WeibullLaw(p.k, p.n, p.ages) },
}

func lawNames() []string {
	out := make([]string, 0, len(laws))
	for name := range laws {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (a *app) lawCmd() *cobra.Command {
	var (
		p    lawParams
		name string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "law <name>",
		Short: "Tabulate a parametric mortality law",
		Long: fmt.Sprintf(`Generate a qx table from a mortality law and write it as a YAML, TOML
or JSON document that --table accepts.

Laws: %v`, lawNames()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			build, ok := laws[args[0]]
			if !ok {
				return fmt.Errorf("unknown law %q (want one of %v)", args[0], lawNames())
			}
			format, err := tableio.ParseFormat(to)
			if err != nil {
				return err
			}

			raw, err := build(p)
			if err != nil {
				return failed(err)
			}
			if name != "" {
				raw.Name = name
			}
			if _, err := mortality.FromRaw(raw); err != nil {
				return failed(err)
			}
			a.log.Debug("law tabulated", zap.String("law", args[0]), zap.Int("rows", len(raw.Rows)))
			return failed(writeTable(a.stdout, format, raw))
		},
	}

	f := cmd.Flags()
	f.Float64Var(&p.lambda, "lambda", 0, "constant force of mortality")
	f.Float64Var(&p.a, "a", 0, "Makeham age-independent force")
	f.Float64Var(&p.b, "b", 0, "Gompertz and Makeham scale")
	f.Float64Var(&p.c, "c", 0, "Gompertz and Makeham growth factor")
	f.Float64Var(&p.k, "k", 0, "Weibull scale")
	f.Float64Var(&p.n, "n", 0, "Weibull shape")
	f.IntVar(&p.ages.Start, "start", 0, "first age of the table")
	f.IntVar(&p.ages.Omega, "omega", 0, fmt.Sprintf("last age of the table (0 means %d)", mortality.DefaultLawOmega))
	f.StringVar(&name, "name", "", "table name written into the document")
	f.StringVar(&to, "to", "yaml", "output format: yaml, toml or json")
	return cmd
}
