package certain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/lifelib/certain"
	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/solver"
)

// must returns the value of a (float64, error) call, failing t on error.
func must(t *testing.T) func(float64, error) float64 {
	t.Helper()
	return func(v float64, err error) float64 {
		t.Helper()
		require.NoError(t, err)
		return v
	}
}

func TestAn_KnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		i    float64
		n    int
		want float64
	}{
		{0.005, 1, 0.9950},
		{0.01, 20, 18.0456},
		{0.015, 41, 30.4590},
		{0.02, 80, 39.7445},
		{0.025, 100, 36.6141},
	}
	for _, tc := range cases {
		got := must(t)(certain.An(tc.i, tc.n, 0, 1))
		assert.InDelta(t, tc.want, got, 1e-4, "a%d at %v", tc.n, tc.i)
	}
}

func TestIanDan_KnownValues(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.9709, must(t)(certain.Ian(0.03, 1, 0, 1)), 1e-4)
	assert.InDelta(t, 152.9852, must(t)(certain.Ian(0.04, 23, 0, 1)), 1e-4)
	assert.InDelta(t, 216.4693, must(t)(certain.Ian(0.07, 100, 0, 1)), 1e-4)

	assert.InDelta(t, 0.9259, must(t)(certain.Dan(0.08, 1, 0, 1)), 1e-4)
	assert.InDelta(t, 600.1266, must(t)(certain.Dan(0.1, 70, 0, 1)), 1e-4)
	assert.InDelta(t, 288.9299, must(t)(certain.Dan(0.15, 50, 0, 1)), 1e-4)
}

func TestMonthlyMatchesCashflowSum(t *testing.T) {
	t.Parallel()

	const (
		i = 0.05
		n = 10
		m = 12
	)
	v := 1 / (1 + i)

	var level, increasing, decreasing float64
	for k := 1; k <= n; k++ {
		for j := 0; j < m; j++ {
			disc := math.Pow(v, float64(k-1)+float64(j)/m) / m
			level += disc
			increasing += float64(k) * disc
			decreasing += float64(n-k+1) * disc
		}
	}

	assert.InDelta(t, level, must(t)(certain.Aan(i, n, 0, m)), 1e-10)
	assert.InDelta(t, increasing, must(t)(certain.Iaan(i, n, 0, m)), 1e-10)
	assert.InDelta(t, decreasing, must(t)(certain.Daan(i, n, 0, m)), 1e-10)

	// Immediate payments fall 1/m later.
	shift := math.Pow(v, 1.0/m)
	assert.InDelta(t, level*shift, must(t)(certain.An(i, n, 0, m)), 1e-10)
	assert.InDelta(t, increasing*shift, must(t)(certain.Ian(i, n, 0, m)), 1e-10)
	assert.InDelta(t, decreasing*shift, must(t)(certain.Dan(i, n, 0, m)), 1e-10)
}

func TestIdentities(t *testing.T) {
	t.Parallel()

	for _, i := range []float64{0.01, 0.04, 0.09} {
		for _, n := range []int{1, 5, 30} {
			an := must(t)(certain.An(i, n, 0, 1))
			aan := must(t)(certain.Aan(i, n, 0, 1))
			sn := must(t)(certain.Sn(i, n, 0, 1))
			ssn := must(t)(certain.Ssn(i, n, 0, 1))

			assert.InDelta(t, sn, an*math.Pow(1+i, float64(n)), 1e-9)
			assert.InDelta(t, aan, an*(1+i), 1e-10)
			assert.InDelta(t, ssn, sn*(1+i), 1e-9)

			// (Ia)n + (Da)n = (n+1)·an
			ia := must(t)(certain.Ian(i, n, 0, 1))
			da := must(t)(certain.Dan(i, n, 0, 1))
			assert.InDelta(t, float64(n+1)*an, ia+da, 1e-9)

			deferred := must(t)(certain.An(i, n, 3, 1))
			assert.InDelta(t, an*math.Pow(1+i, -3), deferred, 1e-12)

			isn := must(t)(certain.Isn(i, n, 0, 1))
			issn := must(t)(certain.Issn(i, n, 0, 1))
			dsn := must(t)(certain.Dsn(i, n, 0, 1))
			dssn := must(t)(certain.Dssn(i, n, 0, 1))
			assert.InDelta(t, issn, isn*(1+i), 1e-8)
			assert.InDelta(t, dssn, dsn*(1+i), 1e-8)
		}
	}
}

func TestZeroInterestAndTerm(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10.0, must(t)(certain.An(0, 10, 0, 4)))
	assert.Equal(t, 10.0, must(t)(certain.Aan(0, 10, 2, 1)))
	assert.Equal(t, 55.0, must(t)(certain.Iaan(0, 10, 0, 12)))
	assert.Equal(t, 55.0, must(t)(certain.Dan(0, 10, 0, 1)))
	assert.Equal(t, 0.0, must(t)(certain.An(0.05, 0, 0, 1)))
	assert.Equal(t, 0.0, must(t)(certain.Ssn(0.05, 0, 0, 1)))
}

func TestValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		err   error
		field string
	}{
		{"rate", second(certain.An(-1, 5, 0, 1)), "i"},
		{"term", second(certain.An(0.05, -1, 0, 1)), "n"},
		{"deferral", second(certain.Aan(0.05, 5, -2, 1)), "t"},
		{"frequency", second(certain.Sn(0.05, 5, 0, 0)), "m"},
	}
	for _, tc := range cases {
		assert.ErrorIs(t, tc.err, errs.ErrValidation, tc.name)
		assert.Equal(t, tc.field, errs.FieldOf(tc.err), tc.name)
	}
}

func second(_ float64, err error) error { return err }

func TestYield(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		i    float64
		n, m int
	}{
		{0.05, 10, 1},
		{0.03, 25, 12},
		{-0.01, 5, 1},
		{0, 8, 2},
	} {
		price := must(t)(certain.An(tc.i, tc.n, 0, tc.m))
		res, err := certain.Yield(price, tc.n, tc.m, solver.DefaultConfig)
		require.NoError(t, err, "%+v", tc)
		assert.InDelta(t, tc.i, res.Rate, 1e-9, "%+v", tc)
		assert.Positive(t, res.Iterations)
	}

	_, err := certain.Yield(-3, 10, 1, solver.DefaultConfig)
	assert.ErrorIs(t, err, errs.ErrValidation)

	// Price far above the undiscounted sum needs a rate below the floor.
	_, err = certain.Yield(1e6, 10, 1, solver.DefaultConfig)
	assert.ErrorIs(t, err, errs.ErrComputation)
}
