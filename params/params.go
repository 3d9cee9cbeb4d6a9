// Package params holds the cross-field rule set every public calculation runs
// before it touches a table.
//
// Rules run in a fixed order and the first violation is returned. Each error
// names the offending field (errs.FieldOf) and matches errs.ErrValidation with
// errors.Is. Age-domain violations are additionally errs.ErrOutOfRange.
package params

import (
	"math"

	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/mortality"
)

// Survival are the inputs of a survival probability kxt|px.
type Survival struct {
	// X is the (real) age at issue.
	X float64
	// T is the duration of the survival window.
	T float64
	// K defers the window by K years.
	K float64
	// EntryAge selects a select curve. Nil uses the ultimate curve.
	EntryAge *int
}

// SingleLife are the normalized inputs of a single-life present value.
type SingleLife struct {
	I        float64
	X        int
	N        int // term; 0 for whole-life functions
	T        int // deferral
	M        int // payments per year
	Moment   int
	G        float64 // geometric growth rate
	EntryAge *int
}

// ValidateSurvival checks p against cfg and returns the curve the query
// runs on.
func ValidateSurvival(cfg *mortality.Config, p Survival) (*mortality.Curve, error) {
	const op = "params.ValidateSurvival"

	if cfg == nil {
		return nil, errs.Config(op, "config", "mortality config is required")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"x", p.X}, {"t", p.T}, {"k", p.K}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return nil, errs.Validation(op, f.name, "%s must be finite, got %v", f.name, f.v)
		}
		if f.v < 0 {
			return nil, errs.Validation(op, f.name, "%s must not be negative, got %v", f.name, f.v)
		}
	}

	curve, err := resolveCurve(op, cfg, p.EntryAge)
	if err != nil {
		return nil, err
	}
	if p.EntryAge != nil && float64(*p.EntryAge) > p.X {
		return nil, errs.Validation(op, "entry_age", "entry age %d exceeds age %v", *p.EntryAge, p.X)
	}
	if p.X < float64(curve.Start()) || p.X > float64(curve.Omega()) {
		return nil, errs.Domain(op, "x", "age %v outside [%d, %d]", p.X, curve.Start(), curve.Omega())
	}

	return curve, nil
}

// ValidateSingleLife checks p against cfg and returns the curve the
// calculation runs on. The rule order is:
//
//	x       within [table min age, omega]
//	n, t    non-negative, x+t+n <= omega
//	m       >= 1
//	entry   table is select, entry age known, entry age <= x,
//	        x within the select curve
//	moment  >= 1
//	i       finite and > -1
//	g       finite and > -1
func ValidateSingleLife(cfg *mortality.Config, p SingleLife) (*mortality.Curve, error) {
	const op = "params.ValidateSingleLife"

	if cfg == nil {
		return nil, errs.Config(op, "config", "mortality config is required")
	}
	if p.X < cfg.MinAge() || p.X > cfg.Omega() {
		return nil, errs.Domain(op, "x", "age %d outside [%d, %d]", p.X, cfg.MinAge(), cfg.Omega())
	}
	if p.N < 0 {
		return nil, errs.Validation(op, "n", "term %d must not be negative", p.N)
	}
	if p.T < 0 {
		return nil, errs.Validation(op, "t", "deferral %d must not be negative", p.T)
	}
	if end := p.X + p.T + p.N; end > cfg.Omega() {
		field := "n"
		if p.N == 0 {
			field = "t"
		}
		return nil, errs.Domain(op, field, "x+t+n = %d exceeds omega %d", end, cfg.Omega())
	}
	if p.M < 1 {
		return nil, errs.Validation(op, "m", "payment frequency %d must be at least 1", p.M)
	}

	curve, err := resolveCurve(op, cfg, p.EntryAge)
	if err != nil {
		return nil, err
	}
	if p.EntryAge != nil && *p.EntryAge > p.X {
		return nil, errs.Validation(op, "entry_age", "entry age %d exceeds age %d", *p.EntryAge, p.X)
	}
	if p.X < curve.Start() || p.X+p.T+p.N > curve.Omega() {
		return nil, errs.Domain(op, "x", "age %d outside [%d, %d]", p.X, curve.Start(), curve.Omega())
	}

	if p.Moment < 1 {
		return nil, errs.Validation(op, "moment", "moment %d must be at least 1", p.Moment)
	}
	if math.IsNaN(p.I) || math.IsInf(p.I, 0) || p.I <= -1 {
		return nil, errs.Validation(op, "i", "interest rate %v must be finite and greater than -1", p.I)
	}
	if math.IsNaN(p.G) || math.IsInf(p.G, 0) || p.G <= -1 {
		return nil, errs.Validation(op, "g", "growth rate %v must be finite and greater than -1", p.G)
	}

	return curve, nil
}

func resolveCurve(op string, cfg *mortality.Config, entryAge *int) (*mortality.Curve, error) {
	if entryAge == nil {
		return cfg.Table().Ultimate(), nil
	}
	if !cfg.IsSelect() {
		return nil, errs.Config(op, "entry_age", "entry age %d given for an ultimate table", *entryAge)
	}
	if !cfg.Table().HasEntryAge(*entryAge) {
		lo, hi, _ := cfg.Table().EntryAges()
		return nil, errs.Domain(op, "entry_age", "entry age %d outside [%d, %d]", *entryAge, lo, hi)
	}
	curve, err := cfg.Curve(entryAge)
	if err != nil {
		return nil, errs.Wrap(op, err)
	}
	return curve, nil
}
