// Package singlelife evaluates single-life insurance and annuity present
// values from commutation columns.
//
// Every function takes a loaded mortality config and Params, validates them,
// and reads the commutation table of the life's curve at the effective rate.
// For a life aged x deferred t years, with s = x+t:
//
//	Ax     = Ms / Dx                      äx    = Ns / Dx
//	A1x:n  = (Ms - Ms+n) / Dx             äx:n  = (Ns - Ns+n) / Dx
//	nEx    = Ds+n / Dx                    ax    = Ns+1 / Dx
//	(IA)x  = Rs / Dx                      (Iä)x = Ss / Dx
//
// Params.Moment = j evaluates at (1+i)^j - 1, the geometric functions at
// (1+i)/(1+g) - 1. Payments m times a year use the UDD factors α(m), β(m)
// for annuities and i/i(m) for insurance.
package singlelife

import (
	"math"

	"github.com/meenmo/lifelib/commutation"
	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/interest"
	"github.com/meenmo/lifelib/mortality"
	"github.com/meenmo/lifelib/params"
)

// Params are the inputs shared by every single-life function.
type Params struct {
	// I is the effective annual interest rate.
	I float64
	// X is the integer age at issue.
	X int
	// N is the term in years. Required by temporary and endowment functions.
	N *int
	// T defers the first payment or cover by T years.
	T int
	// M is the number of payments per year. Zero means annual.
	M int
	// Moment is the moment of the present value. Zero means the first.
	Moment int
	// G is the geometric growth rate. Required by the g-functions.
	G *float64
	// EntryAge routes the calculation through the select curve of a life
	// selected at that age.
	EntryAge *int
	// Cache holds the commutation tables. Nil means commutation.Default.
	Cache *commutation.Cache
}

// Ptr returns a pointer to v, for the optional Params fields.
func Ptr[T any](v T) *T { return &v }

type needs int

const (
	needTerm needs = 1 << iota
	needGrowth
)

// calc is a validated calculation: the commutation table at the working
// rate plus the resolved ages.
type calc struct {
	op   string
	tbl  *commutation.Table
	rate float64
	m    int
	x    int
	s    int // x + t
	n    int
	dx   float64
	err  error
}

func prepare(op string, cfg *mortality.Config, p Params, req needs) (*calc, error) {
	if cfg == nil {
		return nil, errs.Config(op, "config", "mortality config is required")
	}
	if req&needTerm != 0 && p.N == nil {
		return nil, errs.Config(op, "n", "term n is required")
	}
	if req&needGrowth != 0 && p.G == nil {
		return nil, errs.Config(op, "g", "growth rate g is required")
	}

	sp := params.SingleLife{
		I:        p.I,
		X:        p.X,
		T:        p.T,
		M:        p.M,
		Moment:   p.Moment,
		EntryAge: p.EntryAge,
	}
	if req&needTerm != 0 {
		sp.N = *p.N
	}
	if req&needGrowth != 0 {
		sp.G = *p.G
	}
	if sp.M == 0 {
		sp.M = 1
	}
	if sp.Moment == 0 {
		sp.Moment = 1
	}

	curve, err := params.ValidateSingleLife(cfg, sp)
	if err != nil {
		return nil, errs.Wrap(op, err)
	}

	rate := interest.Compound(interest.Growth(sp.I, sp.G), sp.Moment)
	cache := p.Cache
	if cache == nil {
		cache = commutation.Default
	}
	tbl, err := cache.Get(curve, rate)
	if err != nil {
		return nil, errs.Wrap(op, err)
	}

	c := &calc{op: op, tbl: tbl, rate: rate, m: sp.M, x: sp.X, s: sp.X + sp.T, n: sp.N}
	c.dx = c.at(commutation.D, sp.X)
	if c.err != nil {
		return nil, c.err
	}
	if c.dx == 0 {
		return nil, errs.Computation(op, "D%d is zero at rate %v", sp.X, rate)
	}
	return c, nil
}

// at reads column f at age, where omega+1 reads as 0. The first lookup
// failure is kept on c.
func (c *calc) at(f commutation.Function, age int) float64 {
	if c.err != nil {
		return 0
	}
	v, err := c.tbl.Tail(f, age)
	if err != nil {
		c.err = errs.Wrap(c.op, err)
	}
	return v
}

// ratio is (column f at age) / Dx.
func (c *calc) ratio(f commutation.Function, age int) float64 {
	return c.at(f, age) / c.dx
}

func (c *calc) done(v float64) (float64, error) {
	if c.err != nil {
		return 0, c.err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errs.Computation(c.op, "result %v is not finite", v)
	}
	return v, nil
}

// deferred is tEx, the value of 1 paid at x+t on survival.
func (c *calc) deferred() float64 { return c.ratio(commutation.D, c.s) }

// endowment is (t+n)Ex.
func (c *calc) endowment() float64 { return c.ratio(commutation.D, c.s+c.n) }

func (c *calc) alpha() float64 { return interest.Alpha(c.rate, c.m) }
func (c *calc) beta() float64  { return interest.Beta(c.rate, c.m) }

// insurance is i/i(m).
func (c *calc) insurance() float64 { return interest.InsuranceFactor(c.rate, c.m) }
