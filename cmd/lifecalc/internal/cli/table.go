package cli

import (
	"bytes"
	"io"

	"github.com/spf13/cobra"

	"github.com/meenmo/lifelib/mortality"
	"github.com/meenmo/lifelib/tableio"
)

type tableOutput struct {
	Name         string   `json:"name,omitempty"`
	Variant      string   `json:"variant"`
	MinAge       int      `json:"min_age"`
	Omega        int      `json:"omega"`
	SelectPeriod int      `json:"select_period,omitempty"`
	EntryAgeMin  *int     `json:"entry_age_min,omitempty"`
	EntryAgeMax  *int     `json:"entry_age_max,omitempty"`
	Radix        float64  `json:"radix"`
	Pct          float64  `json:"pct"`
	Assumption   string   `json:"assumption"`
	Rows         []ageRow `json:"rows,omitempty"`
}

type ageRow struct {
	Age    int     `json:"age"`
	Qx     float64 `json:"qx"`
	Lx     float64 `json:"lx"`
	Deaths float64 `json:"dx"`
}

func (a *app) tableCmd() *cobra.Command {
	var (
		rows     bool
		entryAge int
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Describe the loaded mortality table",
		Long: `Print the shape of the loaded table. With --rows, list qx, lx and dx
along the ultimate curve, or along the select curve of --entry-age.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return failed(err)
			}

			t := cfg.Table()
			out := tableOutput{
				Name:         t.Name(),
				Variant:      t.Variant().String(),
				MinAge:       cfg.MinAge(),
				Omega:        cfg.Omega(),
				SelectPeriod: t.SelectPeriod(),
				Radix:        cfg.Radix(),
				Pct:          cfg.Pct(),
				Assumption:   cfg.Assumption().String(),
			}
			if lo, hi, ok := t.EntryAges(); ok {
				out.EntryAgeMin, out.EntryAgeMax = &lo, &hi
			}

			if rows {
				curve, err := cfg.Curve(intFlag(cmd.Flags().Changed("entry-age"), entryAge))
				if err != nil {
					return failed(err)
				}
				if out.Rows, err = curveRows(curve); err != nil {
					return failed(err)
				}
			}
			return writeJSON(a.stdout, out)
		},
	}

	cmd.Flags().BoolVar(&rows, "rows", false, "list the rows of the curve")
	cmd.Flags().IntVar(&entryAge, "entry-age", 0, "entry age of a select curve")
	return cmd
}

func curveRows(c *mortality.Curve) ([]ageRow, error) {
	out := make([]ageRow, 0, c.Len())
	for age := c.Start(); age <= c.Omega(); age++ {
		q, err := c.Qx(age)
		if err != nil {
			return nil, err
		}
		l, err := c.Lx(age)
		if err != nil {
			return nil, err
		}
		d, err := c.Deaths(age)
		if err != nil {
			return nil, err
		}
		out = append(out, ageRow{Age: age, Qx: q, Lx: l, Deaths: d})
	}
	return out, nil
}

func (a *app) convertCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Validate the table and write it in another format",
		Long: `Read the table, check that it builds, and write the same rows as a
YAML, TOML or JSON document on stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := tableio.ParseFormat(to)
			if err != nil {
				return err
			}

			raw, err := a.rawTable()
			if err != nil {
				return failed(err)
			}
			if _, err := mortality.FromRaw(raw); err != nil {
				return failed(err)
			}
			return failed(writeTable(a.stdout, format, raw))
		},
	}

	cmd.Flags().StringVar(&to, "to", "yaml", "output format: yaml, toml or json")
	return cmd
}

// writeTable encodes raw in full before copying it to w, so a failed encode
// writes nothing.
func writeTable(w io.Writer, format tableio.Format, raw mortality.RawTable) error {
	var buf bytes.Buffer
	if err := tableio.Encode(&buf, format, raw); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
