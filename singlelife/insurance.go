package singlelife

import (
	"github.com/meenmo/lifelib/commutation"
	"github.com/meenmo/lifelib/mortality"
)

// ---------------------------------------------------------------------------
// level
// ---------------------------------------------------------------------------

// Ax is the whole-life insurance t|Ax = Ms / Dx.
func Ax(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.Ax", cfg, p, 0)
	if err != nil {
		return 0, err
	}
	return c.done(c.insurance() * c.wholeLife())
}

// Ax1n is the term insurance t|A1x:n = (Ms - Ms+n) / Dx.
func Ax1n(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.Ax1n", cfg, p, needTerm)
	if err != nil {
		return 0, err
	}
	return c.done(c.insurance() * c.term())
}

// Exn is the pure endowment nEx = Ds+n / Dx. It pays at the end of the term
// whatever the payment frequency.
func Exn(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.Exn", cfg, p, needTerm)
	if err != nil {
		return 0, err
	}
	return c.done(c.endowment())
}

// Axn1 is Exn under its insurance name A x:n¹.
func Axn1(cfg *mortality.Config, p Params) (float64, error) {
	return Exn(cfg, p)
}

// Axn is the endowment insurance Ax:n = A1x:n + nEx.
func Axn(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.Axn", cfg, p, needTerm)
	if err != nil {
		return 0, err
	}
	return c.done(c.insurance()*c.term() + c.endowment())
}

func (c *calc) wholeLife() float64 {
	return c.ratio(commutation.M, c.s)
}

func (c *calc) term() float64 {
	return (c.at(commutation.M, c.s) - c.at(commutation.M, c.s+c.n)) / c.dx
}

// ---------------------------------------------------------------------------
// increasing and decreasing
// ---------------------------------------------------------------------------

// IAx is the increasing whole-life insurance (IA)x = Rs / Dx: the benefit is
// k on death in year k.
func IAx(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.IAx", cfg, p, 0)
	if err != nil {
		return 0, err
	}
	return c.done(c.insurance() * c.ratio(commutation.R, c.s))
}

// IAx1n is the increasing term insurance
//
//	(IA)1x:n = (Rs - Rs+n - n·Ms+n) / Dx
func IAx1n(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.IAx1n", cfg, p, needTerm)
	if err != nil {
		return 0, err
	}
	return c.done(c.insurance() * c.increasingTerm())
}

// IAxn is the increasing endowment insurance (IA)1x:n + n·nEx.
func IAxn(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.IAxn", cfg, p, needTerm)
	if err != nil {
		return 0, err
	}
	return c.done(c.insurance()*c.increasingTerm() + float64(c.n)*c.endowment())
}

// DAx1n is the decreasing term insurance, paying n-k+1 on death in year k.
//
//	(DA)1x:n = (n·Ms - (Rs+1 - Rs+n+1)) / Dx
func DAx1n(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.DAx1n", cfg, p, needTerm)
	if err != nil {
		return 0, err
	}
	return c.done(c.insurance() * c.decreasingTerm())
}

// DAxn is the decreasing endowment insurance (DA)1x:n + nEx.
func DAxn(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.DAxn", cfg, p, needTerm)
	if err != nil {
		return 0, err
	}
	return c.done(c.insurance()*c.decreasingTerm() + c.endowment())
}

func (c *calc) increasingTerm() float64 {
	n := float64(c.n)
	return (c.at(commutation.R, c.s) - c.at(commutation.R, c.s+c.n) - n*c.at(commutation.M, c.s+c.n)) / c.dx
}

func (c *calc) decreasingTerm() float64 {
	n := float64(c.n)
	return (n*c.at(commutation.M, c.s) - (c.at(commutation.R, c.s+1) - c.at(commutation.R, c.s+c.n+1))) / c.dx
}

// ---------------------------------------------------------------------------
// geometric
// ---------------------------------------------------------------------------

// GAx is Ax at the growth-adjusted rate (1+i)/(1+g) - 1.
func GAx(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.GAx", cfg, p, needGrowth)
	if err != nil {
		return 0, err
	}
	return c.done(c.insurance() * c.wholeLife())
}

// GAx1n is Ax1n at the growth-adjusted rate.
func GAx1n(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.GAx1n", cfg, p, needTerm|needGrowth)
	if err != nil {
		return 0, err
	}
	return c.done(c.insurance() * c.term())
}

// GAxn is Axn at the growth-adjusted rate.
func GAxn(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.GAxn", cfg, p, needTerm|needGrowth)
	if err != nil {
		return 0, err
	}
	return c.done(c.insurance()*c.term() + c.endowment())
}

// GExn is Exn at the growth-adjusted rate.
func GExn(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.GExn", cfg, p, needTerm|needGrowth)
	if err != nil {
		return 0, err
	}
	return c.done(c.endowment())
}
