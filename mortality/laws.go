package mortality

import (
	"fmt"
	"math"

	"github.com/meenmo/lifelib/errs"
)

// DefaultLawOmega is the last age of a law-generated table when LawAges.Omega
// is zero.
const DefaultLawOmega = 150

// LawAges bounds a table generated from a mortality law. Rows run from Start
// to Omega, where the terminal qx = 1 row sits. A zero Omega means
// DefaultLawOmega.
type LawAges struct {
	Start int
	Omega int
}

func (a LawAges) resolve(op string) (LawAges, error) {
	if a.Omega == 0 {
		a.Omega = DefaultLawOmega
	}
	if a.Start < 0 {
		return a, errs.Validation(op, "start", "start age %d must not be negative", a.Start)
	}
	if a.Omega <= a.Start {
		return a, errs.Validation(op, "omega", "omega %d must be above start age %d", a.Omega, a.Start)
	}
	return a, nil
}

// ConstantForceLaw tabulates a constant force of mortality lambda:
// qx = 1 - exp(-lambda) at every age, so tpx = exp(-lambda·t).
func ConstantForceLaw(lambda float64, ages LawAges) (RawTable, error) {
	const op = "mortality.ConstantForceLaw"

	if !positive(lambda) {
		return RawTable{}, errs.Validation(op, "lambda", "lambda %v must be positive", lambda)
	}
	q := -math.Expm1(-lambda)
	return lawTable(op, fmt.Sprintf("ConstantForce(lambda=%g)", lambda), ages, func(float64) float64 { return q })
}

// DeMoivreLaw tabulates a uniform distribution of deaths up to the limiting
// age Omega: qx = 1/(Omega - x), so tpx = 1 - t/(Omega - x). lx reaches zero
// at Omega, which makes Omega-1 the table's terminal row.
func DeMoivreLaw(ages LawAges) (RawTable, error) {
	const op = "mortality.DeMoivreLaw"

	ages, err := ages.resolve(op)
	if err != nil {
		return RawTable{}, err
	}
	omega := float64(ages.Omega)
	return lawTable(op, fmt.Sprintf("DeMoivre(omega=%d)", ages.Omega), ages, func(x float64) float64 { return 1 / (omega - x) })
}

// GompertzLaw tabulates the force mu(x) = b·c^x with b > 0 and c > 1.
func GompertzLaw(b, c float64, ages LawAges) (RawTable, error) {
	const op = "mortality.GompertzLaw"

	if err := gompertzParams(op, b, c); err != nil {
		return RawTable{}, err
	}
	return lawTable(op, fmt.Sprintf("Gompertz(b=%g, c=%g)", b, c), ages, func(x float64) float64 {
		return -math.Expm1(-gompertzIntegral(b, c, x))
	})
}

// MakehamLaw tabulates the force mu(x) = a + b·c^x with b > 0, c > 1 and
// a >= -b, so the force is never negative from age zero.
func MakehamLaw(a, b, c float64, ages LawAges) (RawTable, error) {
	const op = "mortality.MakehamLaw"

	if err := gompertzParams(op, b, c); err != nil {
		return RawTable{}, err
	}
	if !finite(a) || a < -b {
		return RawTable{}, errs.Validation(op, "a", "a %v must be finite and at least -b", a)
	}
	return lawTable(op, fmt.Sprintf("Makeham(a=%g, b=%g, c=%g)", a, b, c), ages, func(x float64) float64 {
		return -math.Expm1(-a - gompertzIntegral(b, c, x))
	})
}

// WeibullLaw tabulates the force mu(x) = k·x^n with k > 0 and n > 1.
func WeibullLaw(k, n float64, ages LawAges) (RawTable, error) {
	const op = "mortality.WeibullLaw"

	if !positive(k) {
		return RawTable{}, errs.Validation(op, "k", "k %v must be positive", k)
	}
	if !finite(n) || n <= 1 {
		return RawTable{}, errs.Validation(op, "n", "n %v must be finite and above 1", n)
	}
	return lawTable(op, fmt.Sprintf("Weibull(k=%g, n=%g)", k, n), ages, func(x float64) float64 {
		return -math.Expm1(-k / (n + 1) * (math.Pow(x+1, n+1) - math.Pow(x, n+1)))
	})
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

func gompertzParams(op string, b, c float64) error {
	if !positive(b) {
		return errs.Validation(op, "b", "b %v must be positive", b)
	}
	if !finite(c) || c <= 1 {
		return errs.Validation(op, "c", "c %v must be finite and above 1", c)
	}
	return nil
}

// gompertzIntegral is the integral of b·c^s over [x, x+1].
func gompertzIntegral(b, c, x float64) float64 {
	return b / math.Log(c) * math.Pow(c, x) * (c - 1)
}

// lawTable samples q at each age from Start. The first rate that reaches 1
// becomes the terminal row; otherwise the row at Omega is forced to 1.
func lawTable(op, name string, ages LawAges, q func(x float64) float64) (RawTable, error) {
	ages, err := ages.resolve(op)
	if err != nil {
		return RawTable{}, err
	}

	rows := make([]RawRow, 0, ages.Omega-ages.Start+1)
	for x := ages.Start; x < ages.Omega; x++ {
		v := q(float64(x))
		if math.IsNaN(v) || v < 0 {
			return RawTable{}, errs.Computation(op, "qx %v at age %d", v, x)
		}
		if v >= 1 {
			rows = append(rows, RawRow{Age: x, Value: 1})
			return RawTable{Name: name, Basis: BasisQx, Rows: rows}, nil
		}
		rows = append(rows, RawRow{Age: x, Value: v})
	}
	rows = append(rows, RawRow{Age: ages.Omega, Value: 1})
	return RawTable{Name: name, Basis: BasisQx, Rows: rows}, nil
}
