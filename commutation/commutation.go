// Package commutation builds the commutation columns of a life curve at an
// interest rate and memoises them per (curve, rate).
//
//	Dx = v^x · lx          Nx = Dx + Nx+1
//	Cx = v^(x+1) · dx      Mx = Cx + Mx+1
//	                       Rx = Mx + Rx+1
//	                       Sx = Nx + Sx+1
//
// Every column is zero past omega, so Mω = Cω and Nω = Dω.
package commutation

import (
	"fmt"
	"math"
	"strings"

	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/mortality"
)

// Function names one commutation column.
type Function int

const (
	D Function = iota + 1
	C
	M
	N
	R
	S
)

func (f Function) String() string {
	switch f {
	case D:
		return "Dx"
	case C:
		return "Cx"
	case M:
		return "Mx"
	case N:
		return "Nx"
	case R:
		return "Rx"
	case S:
		return "Sx"
	default:
		return fmt.Sprintf("Function(%d)", int(f))
	}
}

// ParseFunction accepts "D", "Dx", "dx" and so on.
func ParseFunction(s string) (Function, error) {
	name := strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), "X")
	switch name {
	case "D":
		return D, nil
	case "C":
		return C, nil
	case "M":
		return M, nil
	case "N":
		return N, nil
	case "R":
		return R, nil
	case "S":
		return S, nil
	}
	return 0, fmt.Errorf("unknown commutation function %q", s)
}

// Row is every column at one age.
type Row struct {
	Age              int
	D, C, M, N, R, S float64
}

// Table holds the six columns of one curve at one rate, indexed by
// age - Start. It is read-only once built.
type Table struct {
	curve *mortality.Curve
	rate  float64
	start int
	cols  [S + 1][]float64
}

// Build runs the backward pass over curve at effective rate i.
func Build(curve *mortality.Curve, i float64) (*Table, error) {
	const op = "commutation.Build"

	if curve == nil {
		return nil, errs.Config(op, "curve", "life curve is required")
	}
	if math.IsNaN(i) || math.IsInf(i, 0) || i <= -1 {
		return nil, errs.Validation(op, "i", "interest rate %v must be finite and greater than -1", i)
	}

	n := curve.Len()
	start := curve.Start()
	lx := curve.Survivors()
	v := 1 / (1 + i)

	t := &Table{curve: curve, rate: i, start: start}
	for f := D; f <= S; f++ {
		t.cols[f] = make([]float64, n)
	}

	var m, nn, r, s float64
	for k := n - 1; k >= 0; k-- {
		age := float64(start + k)

		dx := lx[k]
		if k+1 < n {
			dx -= lx[k+1]
		}

		d := math.Pow(v, age) * lx[k]
		c := math.Pow(v, age+1) * dx
		m += c
		nn += d
		r += m
		s += nn

		t.cols[D][k] = d
		t.cols[C][k] = c
		t.cols[M][k] = m
		t.cols[N][k] = nn
		t.cols[R][k] = r
		t.cols[S][k] = s

		if !finite(s) || !finite(r) {
			return nil, errs.Computation(op, "commutation columns overflow at age %d for rate %v", start+k, i)
		}
	}

	return t, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Curve is the life curve the table was built from.
func (t *Table) Curve() *mortality.Curve { return t.curve }

// Rate is the effective interest rate of the table.
func (t *Table) Rate() float64 { return t.rate }

// Start is the first age of the table.
func (t *Table) Start() int { return t.start }

// Omega is the last age of the table.
func (t *Table) Omega() int { return t.start + len(t.cols[D]) - 1 }

// At returns every column at age.
func (t *Table) At(age int) (Row, error) {
	k, err := t.index("commutation.Table.At", age)
	if err != nil {
		return Row{}, err
	}
	return t.row(k), nil
}

// Lookup returns column f at age, where age lies in [Start, Omega].
func (t *Table) Lookup(f Function, age int) (float64, error) {
	const op = "commutation.Table.Lookup"

	col, err := t.column(op, f)
	if err != nil {
		return 0, err
	}
	k, err := t.index(op, age)
	if err != nil {
		return 0, err
	}
	return col[k], nil
}

// Tail is Lookup that also accepts Omega+1 and returns 0 there. Formulas use
// it for the far end of a term that runs to omega.
func (t *Table) Tail(f Function, age int) (float64, error) {
	if age == t.Omega()+1 {
		if _, err := t.column("commutation.Table.Tail", f); err != nil {
			return 0, err
		}
		return 0, nil
	}
	v, err := t.Lookup(f, age)
	return v, errs.Wrap("commutation.Table.Tail", err)
}

// Rows returns the table from Start to Omega.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.cols[D]))
	for k := range out {
		out[k] = t.row(k)
	}
	return out
}

func (t *Table) row(k int) Row {
	return Row{
		Age: t.start + k,
		D:   t.cols[D][k],
		C:   t.cols[C][k],
		M:   t.cols[M][k],
		N:   t.cols[N][k],
		R:   t.cols[R][k],
		S:   t.cols[S][k],
	}
}

func (t *Table) column(op string, f Function) ([]float64, error) {
	if f < D || f > S {
		return nil, errs.Config(op, "function", "unknown commutation function %d", int(f))
	}
	return t.cols[f], nil
}

func (t *Table) index(op string, age int) (int, error) {
	if age < t.start || age > t.Omega() {
		return 0, errs.OutOfRange(op, "age", "age %d outside [%d, %d]", age, t.start, t.Omega())
	}
	return age - t.start, nil
}
