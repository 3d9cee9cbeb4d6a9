// Package solver finds roots of smooth one-dimensional functions.
package solver

import (
	"math"

	"github.com/meenmo/lifelib/errs"
)

// Config holds Newton-Raphson parameters.
type Config struct {
	// Tolerance is the absolute residual |f(x)| accepted as a root.
	Tolerance float64

	// MaxIter is the maximum number of Newton steps.
	MaxIter int

	// Floor and Ceiling bound every iterate. A step that leaves the bracket
	// is clamped onto it.
	Floor   float64
	Ceiling float64

	// DerivativeThreshold is the minimum derivative magnitude.
	// Below this, iteration stops to avoid division by near-zero.
	DerivativeThreshold float64
}

// DefaultConfig suits interest-rate solves.
var DefaultConfig = Config{
	Tolerance:           1e-12,
	MaxIter:             100,
	Floor:               -0.5,
	Ceiling:             1.0,
	DerivativeThreshold: 1e-15,
}

// Func returns f(x) and f'(x).
type Func func(x float64) (f, df float64)

// Result of a Newton solve.
type Result struct {
	Root       float64
	Residual   float64
	Iterations int
}

// Newton solves fn(x) = 0 from guess.
func Newton(fn Func, guess float64, cfg Config) (Result, error) {
	const op = "solver.Newton"

	if cfg.MaxIter <= 0 || cfg.Floor >= cfg.Ceiling || cfg.Tolerance <= 0 {
		return Result{}, errs.Config(op, "config", "invalid solver config %+v", cfg)
	}

	x := clamp(guess, cfg.Floor, cfg.Ceiling)
	for iter := 0; iter < cfg.MaxIter; iter++ {
		f, df := fn(x)
		if math.IsNaN(f) || math.IsNaN(df) {
			return Result{Root: x, Residual: f, Iterations: iter + 1}, errs.Computation(op, "function is NaN at %v", x)
		}
		if math.Abs(f) < cfg.Tolerance {
			return Result{Root: x, Residual: f, Iterations: iter + 1}, nil
		}
		if math.Abs(df) < cfg.DerivativeThreshold {
			return Result{Root: x, Residual: f, Iterations: iter + 1}, errs.Computation(op, "derivative too small at iter %d", iter)
		}

		x = clamp(x-f/df, cfg.Floor, cfg.Ceiling)
	}

	f, _ := fn(x)
	return Result{Root: x, Residual: f, Iterations: cfg.MaxIter}, errs.Computation(op, "did not converge after %d iterations", cfg.MaxIter)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
