// Package survival evaluates survival and death probabilities over real
// ages and durations.
//
// The window [x+k, x+k+t] is split at integer ages. Whole years use the lx
// ratio of the curve. The leading and trailing fractions of a year use the
// config's fractional-age assumption with that year's qx:
//
//	UDD  sp(a+s) = 1 - t·q / (1 - s·q)
//	CFM  sp(a+s) = (1 - q)^t
//	HPB  sp(a+s) = (1 - (1-s)·q) / (1 - (1-s-t)·q)
//
// where a is the integer age, s the elapsed fraction and t the segment length.
package survival

import (
	"math"

	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/mortality"
	"github.com/meenmo/lifelib/params"
)

// snapTolerance pulls ages within rounding distance of an integer onto it.
const snapTolerance = 1e-12

// Query describes k|tpx for a life aged X, optionally selected at EntryAge.
type Query struct {
	X        float64
	T        float64
	K        float64
	EntryAge *int
}

// Tpx returns the probability that a life aged X, surviving K years, then
// survives a further T years. It returns 1 when K+T is zero and 0 when the
// window ends beyond omega.
func Tpx(cfg *mortality.Config, q Query) (float64, error) {
	const op = "survival.Tpx"

	curve, err := params.ValidateSurvival(cfg, params.Survival(q))
	if err != nil {
		return 0, errs.Wrap(op, err)
	}

	p, err := survive(curve, cfg.Assumption(), q.X, q.K+q.T)
	if err != nil {
		return 0, errs.Wrap(op, err)
	}
	return p, nil
}

// Tqx returns k|tqx = kpx - (k+t)px, the probability of death between
// X+K and X+K+T.
func Tqx(cfg *mortality.Config, q Query) (float64, error) {
	const op = "survival.Tqx"

	curve, err := params.ValidateSurvival(cfg, params.Survival(q))
	if err != nil {
		return 0, errs.Wrap(op, err)
	}

	kp, err := survive(curve, cfg.Assumption(), q.X, q.K)
	if err != nil {
		return 0, errs.Wrap(op, err)
	}
	ktp, err := survive(curve, cfg.Assumption(), q.X, q.K+q.T)
	if err != nil {
		return 0, errs.Wrap(op, err)
	}
	return kp - ktp, nil
}

// Along evaluates tpx from x along curve directly. It applies the same
// clamps as Tpx and performs no parameter validation beyond the age domain.
func Along(curve *mortality.Curve, a mortality.Assumption, x, t float64) (float64, error) {
	if x < float64(curve.Start()) || x > float64(curve.Omega()) || t < 0 {
		return 0, errs.Domain("survival.Along", "x", "age %v over %v outside [%d, %d]", x, t, curve.Start(), curve.Omega())
	}
	return survive(curve, a, x, t)
}

func survive(curve *mortality.Curve, a mortality.Assumption, x, t float64) (float64, error) {
	if t == 0 {
		return 1, nil
	}

	start := snap(x)
	end := snap(x + t)
	if end > float64(curve.Omega()) {
		return 0, nil
	}
	if end == start {
		return 1, nil
	}

	a0 := int(math.Floor(start))
	a1 := int(math.Floor(end))
	f0 := start - float64(a0)
	f1 := end - float64(a1)

	if a0 == a1 {
		return fraction(curve, a, a0, f0, f1-f0)
	}

	p := 1.0
	whole := a0
	if f0 > 0 {
		lead, err := fraction(curve, a, a0, f0, 1-f0)
		if err != nil {
			return 0, err
		}
		p = lead
		whole = a0 + 1
	}

	if whole < a1 {
		lw, err := curve.Lx(whole)
		if err != nil {
			return 0, err
		}
		la, err := curve.Lx(a1)
		if err != nil {
			return 0, err
		}
		p *= la / lw
	}

	if f1 > 0 {
		tail, err := fraction(curve, a, a1, 0, f1)
		if err != nil {
			return 0, err
		}
		p *= tail
	}

	return p, nil
}

// fraction is survival from age+s for t years without crossing age+1.
func fraction(curve *mortality.Curve, a mortality.Assumption, age int, s, t float64) (float64, error) {
	q, err := curve.Qx(age)
	if err != nil {
		return 0, err
	}

	switch a {
	case mortality.CFM:
		return math.Pow(1-q, t), nil
	case mortality.HPB:
		return (1 - (1-s)*q) / (1 - (1-s-t)*q), nil
	default:
		return 1 - t*q/(1-s*q), nil
	}
}

func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < snapTolerance {
		return r
	}
	return v
}
