package singlelife

import (
	"github.com/meenmo/lifelib/commutation"
	"github.com/meenmo/lifelib/mortality"
)

// Annuities pay 1 a year in m installments of 1/m. Under UDD
//
//	ä(m)x:n = α(m)·äx:n - β(m)·(tEx - (t+n)Ex)
//
// and the immediate annuity drops the first installment and adds one at
// the end of the term.

// Aax is the whole-life annuity-due t|äx = Ns / Dx.
func Aax(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.Aax", cfg, p, 0)
	if err != nil {
		return 0, err
	}
	return c.done(c.lifeDue())
}

// Aaxn is the temporary annuity-due t|äx:n = (Ns - Ns+n) / Dx.
func Aaxn(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.Aaxn", cfg, p, needTerm)
	if err != nil {
		return 0, err
	}
	return c.done(c.temporaryDue())
}

// ImmAx is the whole-life annuity-immediate t|ax = Ns+1 / Dx.
func ImmAx(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.ImmAx", cfg, p, 0)
	if err != nil {
		return 0, err
	}
	return c.done(c.lifeDue() - c.deferred()/float64(c.m))
}

// ImmAxn is the temporary annuity-immediate
//
//	t|ax:n = (Ns+1 - Ns+n+1) / Dx
func ImmAxn(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.ImmAxn", cfg, p, needTerm)
	if err != nil {
		return 0, err
	}
	return c.done(c.temporaryDue() - (c.deferred()-c.endowment())/float64(c.m))
}

// IAax is the increasing whole-life annuity-due (Iä)x = Ss / Dx, paying k
// in year k.
func IAax(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.IAax", cfg, p, 0)
	if err != nil {
		return 0, err
	}
	annual := c.ratio(commutation.S, c.s)
	return c.done(c.alpha()*annual - c.beta()*c.ratio(commutation.N, c.s))
}

// IAaxn is the increasing temporary annuity-due
//
//	(Iä)x:n = (Ss - Ss+n - n·Ns+n) / Dx
func IAaxn(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.IAaxn", cfg, p, needTerm)
	if err != nil {
		return 0, err
	}

	n := float64(c.n)
	annual := (c.at(commutation.S, c.s) - c.at(commutation.S, c.s+c.n) - n*c.at(commutation.N, c.s+c.n)) / c.dx
	level := c.annualTemporary()
	return c.done(c.alpha()*annual - c.beta()*(level-n*c.endowment()))
}

// DAaxn is the decreasing temporary annuity-due, paying n-k+1 in year k.
//
//	(Dä)x:n = (n·Ns - (Ss+1 - Ss+n+1)) / Dx
func DAaxn(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.DAaxn", cfg, p, needTerm)
	if err != nil {
		return 0, err
	}

	n := float64(c.n)
	annual := (n*c.at(commutation.N, c.s) - (c.at(commutation.S, c.s+1) - c.at(commutation.S, c.s+c.n+1))) / c.dx
	level := c.annualTemporary()
	tE := c.deferred()
	return c.done(c.alpha()*annual - c.beta()*(n*tE-(level-tE)-c.endowment()))
}

// GAax is Aax at the growth-adjusted rate (1+i)/(1+g) - 1.
func GAax(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.GAax", cfg, p, needGrowth)
	if err != nil {
		return 0, err
	}
	return c.done(c.lifeDue())
}

// GAaxn is Aaxn at the growth-adjusted rate.
func GAaxn(cfg *mortality.Config, p Params) (float64, error) {
	c, err := prepare("singlelife.GAaxn", cfg, p, needTerm|needGrowth)
	if err != nil {
		return 0, err
	}
	return c.done(c.temporaryDue())
}

func (c *calc) annualTemporary() float64 {
	return (c.at(commutation.N, c.s) - c.at(commutation.N, c.s+c.n)) / c.dx
}

// lifeDue is ä(m) for life.
func (c *calc) lifeDue() float64 {
	return c.alpha()*c.ratio(commutation.N, c.s) - c.beta()*c.deferred()
}

// temporaryDue is ä(m) for n years.
func (c *calc) temporaryDue() float64 {
	return c.alpha()*c.annualTemporary() - c.beta()*(c.deferred()-c.endowment())
}
