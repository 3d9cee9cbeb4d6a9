// Package certain values annuities-certain: payments that do not depend on
// survival.
//
// Every function takes the effective annual rate i, the term n in years, a
// deferral t in years and a payment frequency m. Payments of 1/m are made m
// times a year, so the level annuities pay 1 a year. Increasing and
// decreasing annuities step once a year: year k pays k (increasing) or
// n-k+1 (decreasing) in total.
//
//	t|ä(m)n   = v^t (1 - v^n) / d(m)
//	t|a(m)n   = v^t (1 - v^n) / i(m)
//	t|(Iä)(m)n = v^t (än - n v^n) / d(m)
//	t|(Da)(m)n = v^t (n - an) / i(m)
//
// Accumulated values s are the present values carried forward to time t+n.
package certain

import (
	"math"

	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/interest"
)

func validate(op string, i float64, n, t, m int) error {
	if math.IsNaN(i) || math.IsInf(i, 0) || i <= -1 {
		return errs.Validation(op, "i", "interest rate %v must be finite and greater than -1", i)
	}
	if n < 0 {
		return errs.Validation(op, "n", "term %d must not be negative", n)
	}
	if t < 0 {
		return errs.Validation(op, "t", "deferral %d must not be negative", t)
	}
	if m < 1 {
		return errs.Validation(op, "m", "payment frequency %d must be at least 1", m)
	}
	return nil
}

func result(op string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errs.Computation(op, "result is not finite")
	}
	return v, nil
}

// kind identifies a payment pattern.
type kind int

const (
	levelDue kind = iota
	levelImmediate
	increasingDue
	increasingImmediate
	decreasingDue
	decreasingImmediate
)

func value(k kind, i float64, n, t, m int) float64 {
	if n == 0 {
		return 0
	}

	nf := float64(n)
	if i == 0 {
		switch k {
		case levelDue, levelImmediate:
			return nf
		default:
			return nf * (nf + 1) / 2
		}
	}

	v := 1 / (1 + i)
	vt := math.Pow(v, float64(t))
	vn := math.Pow(v, nf)
	im := interest.EffIToNomI(i, m)
	dm := interest.EffIToNomD(i, m)

	switch k {
	case levelDue:
		return vt * (1 - vn) / dm
	case levelImmediate:
		return vt * (1 - vn) / im
	case increasingDue, increasingImmediate:
		annualDue := (1 - vn) / interest.EffIToEffD(i)
		num := vt * (annualDue - nf*vn)
		if k == increasingDue {
			return num / dm
		}
		return num / im
	default:
		annualImmediate := (1 - vn) / i
		num := vt * (nf - annualImmediate)
		if k == decreasingDue {
			return num / dm
		}
		return num / im
	}
}

func present(op string, k kind, i float64, n, t, m int) (float64, error) {
	if err := validate(op, i, n, t, m); err != nil {
		return 0, err
	}
	return result(op, value(k, i, n, t, m))
}

func accumulated(op string, k kind, i float64, n, t, m int) (float64, error) {
	if err := validate(op, i, n, t, m); err != nil {
		return 0, err
	}
	return result(op, value(k, i, n, t, m)*math.Pow(1+i, float64(n+t)))
}

// Aan is the annuity-due t|ä(m)n.
func Aan(i float64, n, t, m int) (float64, error) {
	return present("certain.Aan", levelDue, i, n, t, m)
}

// An is the annuity-immediate t|a(m)n.
func An(i float64, n, t, m int) (float64, error) {
	return present("certain.An", levelImmediate, i, n, t, m)
}

// Iaan is the increasing annuity-due t|(Iä)(m)n.
func Iaan(i float64, n, t, m int) (float64, error) {
	return present("certain.Iaan", increasingDue, i, n, t, m)
}

// Ian is the increasing annuity-immediate t|(Ia)(m)n.
func Ian(i float64, n, t, m int) (float64, error) {
	return present("certain.Ian", increasingImmediate, i, n, t, m)
}

// Daan is the decreasing annuity-due t|(Dä)(m)n.
func Daan(i float64, n, t, m int) (float64, error) {
	return present("certain.Daan", decreasingDue, i, n, t, m)
}

// Dan is the decreasing annuity-immediate t|(Da)(m)n.
func Dan(i float64, n, t, m int) (float64, error) {
	return present("certain.Dan", decreasingImmediate, i, n, t, m)
}

// Ssn is the accumulated annuity-due s̈(m)n.
func Ssn(i float64, n, t, m int) (float64, error) {
	return accumulated("certain.Ssn", levelDue, i, n, t, m)
}

// Sn is the accumulated annuity-immediate s(m)n.
func Sn(i float64, n, t, m int) (float64, error) {
	return accumulated("certain.Sn", levelImmediate, i, n, t, m)
}

// Issn is the accumulated increasing annuity-due.
func Issn(i float64, n, t, m int) (float64, error) {
	return accumulated("certain.Issn", increasingDue, i, n, t, m)
}

// Isn is the accumulated increasing annuity-immediate.
func Isn(i float64, n, t, m int) (float64, error) {
	return accumulated("certain.Isn", increasingImmediate, i, n, t, m)
}

// Dssn is the accumulated decreasing annuity-due.
func Dssn(i float64, n, t, m int) (float64, error) {
	return accumulated("certain.Dssn", decreasingDue, i, n, t, m)
}

// Dsn is the accumulated decreasing annuity-immediate.
func Dsn(i float64, n, t, m int) (float64, error) {
	return accumulated("certain.Dsn", decreasingImmediate, i, n, t, m)
}
