package certain

import (
	"math"

	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/solver"
)

// YieldResult is the output of Yield.
type YieldResult struct {
	// Rate is the effective annual rate, in decimal.
	Rate float64
	// Iterations is the number of Newton-Raphson steps taken.
	Iterations int
}

// yieldGuess is the starting rate of the solve (2.5 %).
const yieldGuess = 0.025

// Yield solves for the effective rate i at which the annuity-immediate
// a(m)n costs price. cfg bounds the solve; pass solver.DefaultConfig when in
// doubt.
func Yield(price float64, n, m int, cfg solver.Config) (YieldResult, error) {
	const op = "certain.Yield"

	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return YieldResult{}, errs.Validation(op, "price", "price %v must be positive", price)
	}
	if n < 1 {
		return YieldResult{}, errs.Validation(op, "n", "term %d must be at least 1", n)
	}
	if m < 1 {
		return YieldResult{}, errs.Validation(op, "m", "payment frequency %d must be at least 1", m)
	}

	res, err := solver.Newton(func(y float64) (float64, float64) {
		pv, dPdy := annuityAndDeriv(y, n, m)
		return pv - price, dPdy
	}, yieldGuess, cfg)
	if err != nil {
		return YieldResult{Rate: res.Root, Iterations: res.Iterations}, errs.Wrap(op, err)
	}

	return YieldResult{Rate: res.Root, Iterations: res.Iterations}, nil
}

// annuityAndDeriv returns (a(m)n, da/dy) at effective rate y.
//
//	t_k   = k/m,  k = 1..n·m
//	a     = Σ (1/m) / (1+y)^t_k
//	da/dy = Σ −t_k · (1/m) / (1+y)^(t_k+1)
func annuityAndDeriv(y float64, n, m int) (float64, float64) {
	amt := 1 / float64(m)

	var pv, deriv float64
	for k := 1; k <= n*m; k++ {
		t := float64(k) / float64(m)
		disc := math.Pow(1+y, t)
		pv += amt / disc
		deriv += -t * amt / (disc * (1 + y))
	}

	return pv, deriv
}
