package singlelife

import (
	"sort"

	"github.com/meenmo/lifelib/commutation"
	"github.com/meenmo/lifelib/mortality"
)

// Func is the shape shared by every function of the package.
type Func func(cfg *mortality.Config, p Params) (float64, error)

// column reads one commutation column at X+T at the working rate.
func column(op string, f commutation.Function) Func {
	return func(cfg *mortality.Config, p Params) (float64, error) {
		c, err := prepare(op, cfg, p, 0)
		if err != nil {
			return 0, err
		}
		return c.done(c.at(f, c.s))
	}
}

// Commutation columns at age X+T, at rate I adjusted for Moment.
var (
	Cx = column("singlelife.Cx", commutation.C)
	Dx = column("singlelife.Dx", commutation.D)
	Mx = column("singlelife.Mx", commutation.M)
	Nx = column("singlelife.Nx", commutation.N)
	Rx = column("singlelife.Rx", commutation.R)
	Sx = column("singlelife.Sx", commutation.S)
)

// Functions maps actuarial notation to its implementation. Keys follow the
// usual ASCII spelling: a leading "aa" is an annuity-due, "a" an
// annuity-immediate, "A" an insurance.
var Functions = map[string]Func{
	"Cx": Cx, "Dx": Dx, "Mx": Mx, "Nx": Nx, "Rx": Rx, "Sx": Sx,

	"Ax":    Ax,
	"Ax1n":  Ax1n,
	"Exn":   Exn,
	"Axn1":  Axn1,
	"Axn":   Axn,
	"IAx":   IAx,
	"IAx1n": IAx1n,
	"IAxn":  IAxn,
	"DAx1n": DAx1n,
	"DAxn":  DAxn,
	"gAx":   GAx,
	"gAx1n": GAx1n,
	"gAxn":  GAxn,
	"gExn":  GExn,

	"aax":   Aax,
	"aaxn":  Aaxn,
	"ax":    ImmAx,
	"axn":   ImmAxn,
	"Iaax":  IAax,
	"Iaaxn": IAaxn,
	"Daaxn": DAaxn,
	"gaax":  GAax,
	"gaaxn": GAaxn,
}

// Lookup returns the function registered under name.
func Lookup(name string) (Func, bool) {
	f, ok := Functions[name]
	return f, ok
}

// Names lists the registered functions in sorted order.
func Names() []string {
	out := make([]string, 0, len(Functions))
	for name := range Functions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NeedsTerm reports whether the named function requires Params.N.
func NeedsTerm(name string) bool {
	switch name {
	case "Ax1n", "Exn", "Axn1", "Axn", "IAx1n", "IAxn", "DAx1n", "DAxn",
		"gAx1n", "gAxn", "gExn", "aaxn", "axn", "Iaaxn", "Daaxn", "gaaxn":
		return true
	}
	return false
}
