// Package cli implements the lifecalc command tree.
//
// Every command reads one mortality table, evaluates and prints a single
// JSON document on stdout. Calculation failures are reported as JSON with
// exit status 1; usage errors go to stderr with exit status 2.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meenmo/lifelib/commutation"
	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/mortality"
	"github.com/meenmo/lifelib/tableio"
)

type app struct {
	settings Settings
	log      *zap.Logger
	cache    *commutation.Cache
	stdout   io.Writer
	stderr   io.Writer
}

// runError marks a failure inside a command body, as opposed to a flag or
// argument error raised by cobra.
type runError struct{ err error }

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

func failed(err error) error {
	if err == nil {
		return nil
	}
	return &runError{err: err}
}

// Execute runs lifecalc with args and returns the process exit status.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(stderr, "lifecalc: %v\n", err)
		return 2
	}

	a := &app{settings: settings, log: zap.NewNop(), cache: commutation.NewCache(), stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err = root.ExecuteContext(ctx)
	_ = a.log.Sync()
	if err == nil {
		return 0
	}

	var re *runError
	if errors.As(err, &re) {
		a.log.Debug("command failed", zap.Error(re.err))
		return writeError(stdout, re.err)
	}
	fmt.Fprintf(stderr, "lifecalc: %v\n", err)
	fmt.Fprintln(stderr, "Run `lifecalc --help` for usage.")
	return 2
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lifecalc",
		Short: "Life contingency calculator",
		Long: `lifecalc evaluates survival probabilities, commutation columns and
single-life insurance and annuity values over a mortality table.

Tables are YAML, TOML or JSON documents, or CSV files with --basis.
Defaults come from LIFECALC_* environment variables; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	s := &a.settings
	pf := root.PersistentFlags()
	pf.StringVar(&s.Table, "table", s.Table, "mortality table path (.yaml, .toml, .json or .csv)")
	pf.StringVar(&s.Basis, "basis", s.Basis, "basis of a CSV table: qx or lx")
	pf.BoolVar(&s.Select, "select", s.Select, "CSV table rows carry a duration column")
	pf.Float64Var(&s.Radix, "radix", s.Radix, "lx at the first age (0 keeps the table's own)")
	pf.Float64Var(&s.Pct, "pct", s.Pct, "mortality loading applied to qx (0 means 1.0)")
	pf.StringVar(&s.Assumption, "assumption", s.Assumption, "fractional-age assumption: UDD, CFM or HPB")
	pf.StringVar(&s.LogLevel, "log-level", s.LogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&s.Environment, "env", s.Environment, "logging environment: production, development or local")

	root.AddCommand(
		a.tableCmd(),
		a.convertCmd(),
		a.lawCmd(),
		a.survivalCmd(),
		a.commutationCmd(),
		a.valueCmd(),
		a.gridCmd(),
		a.certainCmd(),
		a.yieldCmd(),
		a.functionsCmd(),
	)
	return root
}

// setup builds the logger once flags have been folded into the settings.
func (a *app) setup(cmd *cobra.Command) error {
	log, err := newLogger(a.settings.Environment, a.settings.LogLevel, a.stderr)
	if err != nil {
		return err
	}
	a.log = log.With(zap.String("command", cmd.Name()))
	return nil
}

// rawTable loads the configured table file.
func (a *app) rawTable() (mortality.RawTable, error) {
	const op = "lifecalc"

	path := strings.TrimSpace(a.settings.Table)
	if path == "" {
		return mortality.RawTable{}, errs.Config(op, "table", "no mortality table; set --table or LIFECALC_TABLE")
	}

	var tag *tableio.Tag
	if strings.TrimSpace(a.settings.Basis) != "" {
		basis, err := mortality.ParseBasis(strings.ToLower(strings.TrimSpace(a.settings.Basis)))
		if err != nil {
			return mortality.RawTable{}, errs.Config(op, "basis", "%v", err)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		tag = &tableio.Tag{Name: name, Basis: basis, Select: a.settings.Select}
	}

	raw, err := tableio.Load(path, tag)
	if err != nil {
		return mortality.RawTable{}, err
	}
	a.log.Debug("table read", zap.String("path", path), zap.String("basis", raw.Basis.String()), zap.Int("rows", len(raw.Rows)))
	return raw, nil
}

// config loads the configured table for calculation.
func (a *app) config() (*mortality.Config, error) {
	raw, err := a.rawTable()
	if err != nil {
		return nil, err
	}
	table, err := mortality.FromRaw(raw)
	if err != nil {
		return nil, err
	}

	assumption, err := mortality.ParseAssumption(a.settings.Assumption)
	if err != nil {
		return nil, errs.Config("lifecalc", "assumption", "%v", err)
	}

	cfg, err := mortality.NewConfig(table, mortality.Options{
		Radix:      a.settings.Radix,
		Pct:        a.settings.Pct,
		Assumption: assumption,
	})
	if err != nil {
		return nil, err
	}

	a.log.Info("table loaded",
		zap.String("name", table.Name()),
		zap.String("variant", table.Variant().String()),
		zap.Int("min_age", cfg.MinAge()),
		zap.Int("omega", cfg.Omega()),
		zap.Float64("radix", cfg.Radix()),
		zap.Float64("pct", cfg.Pct()),
		zap.String("assumption", cfg.Assumption().String()),
	)
	return cfg, nil
}
