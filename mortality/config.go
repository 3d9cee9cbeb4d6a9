package mortality

import (
	"fmt"
	"math"
	"strings"

	"github.com/meenmo/lifelib/errs"
)

// Assumption selects how survival is interpolated within a year of age.
type Assumption int

const (
	// UDD is the uniform distribution of deaths.
	UDD Assumption = iota
	// CFM is a constant force of mortality.
	CFM
	// HPB is the hyperbolic (Balducci) assumption.
	HPB
)

func (a Assumption) String() string {
	switch a {
	case UDD:
		return "UDD"
	case CFM:
		return "CFM"
	case HPB:
		return "HPB"
	default:
		return fmt.Sprintf("Assumption(%d)", int(a))
	}
}

// ParseAssumption maps "udd", "cfm" or "hpb" (any case) to an Assumption.
func ParseAssumption(s string) (Assumption, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UDD", "":
		return UDD, nil
	case "CFM":
		return CFM, nil
	case "HPB", "BALDUCCI":
		return HPB, nil
	}
	return 0, fmt.Errorf("unknown assumption %q (want UDD, CFM or HPB)", s)
}

// Options are the named options of a Config. Zero values select defaults.
type Options struct {
	// Radix is lx at the first age. Zero keeps the table's native starting lx.
	Radix float64
	// Pct multiplies every non-terminal qx. Zero means 1.0 (100%).
	Pct float64
	// Assumption is the fractional-age assumption. Zero value is UDD.
	Assumption Assumption
}

// Config is a Table loaded for calculation. It is immutable once built and
// safe to share across goroutines.
type Config struct {
	source     *Table
	table      *Table
	radix      float64
	pct        float64
	assumption Assumption
	selected   []*Curve // indexed by entry age - entryMin
}

// NewConfig validates opts and derives the working table: qx scaled by Pct
// (the terminal row stays at 1), lx restarted from Radix, and a select curve
// for every entry age.
func NewConfig(t *Table, opts Options) (*Config, error) {
	const op = "mortality.NewConfig"

	if t == nil {
		return nil, errs.Config(op, "table", "table is required")
	}
	if math.IsNaN(opts.Radix) || math.IsInf(opts.Radix, 0) || opts.Radix < 0 {
		return nil, errs.Validation(op, "radix", "radix %v must not be negative", opts.Radix)
	}
	if math.IsNaN(opts.Pct) || math.IsInf(opts.Pct, 0) || opts.Pct < 0 {
		return nil, errs.Validation(op, "pct", "pct %v must not be negative", opts.Pct)
	}
	switch opts.Assumption {
	case UDD, CFM, HPB:
	default:
		return nil, errs.Validation(op, "assumption", "unknown assumption %d", int(opts.Assumption))
	}

	radix := opts.Radix
	if radix == 0 {
		radix = t.ultimate.lx[0]
	}
	pct := opts.Pct
	if pct == 0 {
		pct = 1
	}

	working, err := t.loaded(pct, radix)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		source:     t,
		table:      working,
		radix:      radix,
		pct:        pct,
		assumption: opts.Assumption,
	}

	if working.IsSelect() {
		cfg.selected = make([]*Curve, len(working.selectQx))
		for k := range working.selectQx {
			c, err := working.SelectCurve(working.entryMin + k)
			if err != nil {
				return nil, errs.Wrap(op, err)
			}
			cfg.selected[k] = c
		}
	}

	return cfg, nil
}

// Table returns the working (loaded) table.
func (c *Config) Table() *Table { return c.table }

// Source returns the table the config was built from.
func (c *Config) Source() *Table { return c.source }

// Radix is lx at the first ultimate age.
func (c *Config) Radix() float64 { return c.radix }

// Pct is the mortality loading.
func (c *Config) Pct() float64 { return c.pct }

// Assumption is the fractional-age assumption.
func (c *Config) Assumption() Assumption { return c.assumption }

// MinAge is the lowest age of the working table.
func (c *Config) MinAge() int { return c.table.MinAge() }

// Omega is the terminal age.
func (c *Config) Omega() int { return c.table.Omega() }

// IsSelect reports whether entry ages may be supplied.
func (c *Config) IsSelect() bool { return c.table.IsSelect() }

// Curve resolves the life curve for an optional entry age. A nil entry age
// selects the ultimate curve.
func (c *Config) Curve(entryAge *int) (*Curve, error) {
	const op = "mortality.Config.Curve"

	if entryAge == nil {
		return c.table.ultimate, nil
	}
	if !c.table.IsSelect() {
		return nil, errs.Config(op, "entry_age", "entry age %d given for an ultimate table", *entryAge)
	}
	if !c.table.HasEntryAge(*entryAge) {
		lo, hi, _ := c.table.EntryAges()
		return nil, errs.OutOfRange(op, "entry_age", "entry age %d outside [%d, %d]", *entryAge, lo, hi)
	}
	return c.selected[*entryAge-c.table.entryMin], nil
}

// Qx returns the loaded qx at age along the curve for entryAge.
func (c *Config) Qx(age int, entryAge *int) (float64, error) {
	curve, err := c.Curve(entryAge)
	if err != nil {
		return 0, err
	}
	return curve.Qx(age)
}

// Px returns 1 - Qx.
func (c *Config) Px(age int, entryAge *int) (float64, error) {
	curve, err := c.Curve(entryAge)
	if err != nil {
		return 0, err
	}
	return curve.Px(age)
}

// Lx returns the loaded lx at age along the curve for entryAge.
func (c *Config) Lx(age int, entryAge *int) (float64, error) {
	curve, err := c.Curve(entryAge)
	if err != nil {
		return 0, err
	}
	return curve.Lx(age)
}

// Deaths returns dx along the curve for entryAge.
func (c *Config) Deaths(age int, entryAge *int) (float64, error) {
	curve, err := c.Curve(entryAge)
	if err != nil {
		return 0, err
	}
	return curve.Deaths(age)
}
