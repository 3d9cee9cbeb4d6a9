package commutation_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/lifelib/commutation"
	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/internal/lifetest"
	"github.com/meenmo/lifelib/mortality"
)

func scenarioCurve(t *testing.T) *mortality.Curve {
	t.Helper()
	cfg := lifetest.Config(t, lifetest.ScenarioRows(), mortality.Options{Radix: 1000})
	return cfg.Table().Ultimate()
}

func TestBuild_ScenarioA(t *testing.T) {
	t.Parallel()

	tbl, err := commutation.Build(scenarioCurve(t), 0.05)
	require.NoError(t, err)

	v := 1 / 1.05
	d60 := math.Pow(v, 60) * 1000
	d61 := math.Pow(v, 61) * 990
	d62 := math.Pow(v, 62) * 970.2
	c60 := math.Pow(v, 61) * 10
	c61 := math.Pow(v, 62) * 19.8
	c62 := math.Pow(v, 63) * 970.2

	row, err := tbl.At(60)
	require.NoError(t, err)
	assert.InEpsilon(t, d60, row.D, 1e-12)
	assert.InEpsilon(t, c60, row.C, 1e-12)
	assert.InEpsilon(t, c60+c61+c62, row.M, 1e-12)
	assert.InEpsilon(t, d60+d61+d62, row.N, 1e-12)
	assert.InEpsilon(t, (c60+c61+c62)+(c61+c62)+c62, row.R, 1e-12)
	assert.InEpsilon(t, (d60+d61+d62)+(d61+d62)+d62, row.S, 1e-12)

	last, err := tbl.At(62)
	require.NoError(t, err)
	assert.Equal(t, last.D, last.N)
	assert.Equal(t, last.C, last.M)
	assert.InEpsilon(t, c62, last.M, 1e-12)
}

func TestBuild_Recurrences(t *testing.T) {
	t.Parallel()

	cfg := lifetest.Config(t, lifetest.LongRows(), mortality.Options{})
	for _, i := range []float64{0, 0.03, 0.1, -0.02} {
		tbl, err := commutation.Build(cfg.Table().Ultimate(), i)
		require.NoError(t, err)

		rows := tbl.Rows()
		require.Len(t, rows, 21)
		for k := 0; k < len(rows)-1; k++ {
			cur, next := rows[k], rows[k+1]
			assert.InEpsilon(t, cur.D+next.N, cur.N, 1e-12, "N at %d, i=%v", cur.Age, i)
			assert.InEpsilon(t, cur.C+next.M, cur.M, 1e-12, "M at %d, i=%v", cur.Age, i)
			assert.InEpsilon(t, cur.M+next.R, cur.R, 1e-12, "R at %d, i=%v", cur.Age, i)
			assert.InEpsilon(t, cur.N+next.S, cur.S, 1e-12, "S at %d, i=%v", cur.Age, i)
		}
	}
}

func TestBuild_ZeroInterest(t *testing.T) {
	t.Parallel()

	tbl, err := commutation.Build(scenarioCurve(t), 0)
	require.NoError(t, err)

	d, err := tbl.Lookup(commutation.D, 61)
	require.NoError(t, err)
	assert.InDelta(t, 990, d, 1e-9)

	// With no discounting every life eventually dies: M = l at the first age.
	m, err := tbl.Lookup(commutation.M, 60)
	require.NoError(t, err)
	assert.InDelta(t, 1000, m, 1e-9)
}

func TestBuild_Rejects(t *testing.T) {
	t.Parallel()

	curve := scenarioCurve(t)
	for _, i := range []float64{-1, -1.5, math.NaN(), math.Inf(1)} {
		_, err := commutation.Build(curve, i)
		assert.ErrorIs(t, err, errs.ErrValidation, "i=%v", i)
		assert.Equal(t, "i", errs.FieldOf(err))
	}

	_, err := commutation.Build(nil, 0.05)
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestTable_LookupDomain(t *testing.T) {
	t.Parallel()

	tbl, err := commutation.Build(scenarioCurve(t), 0.05)
	require.NoError(t, err)

	_, err = tbl.At(59)
	assert.ErrorIs(t, err, errs.ErrOutOfRange)
	_, err = tbl.Lookup(commutation.N, 63)
	assert.ErrorIs(t, err, errs.ErrOutOfRange)

	tail, err := tbl.Tail(commutation.N, 63)
	require.NoError(t, err)
	assert.Zero(t, tail)
	_, err = tbl.Tail(commutation.N, 64)
	assert.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = tbl.Lookup(commutation.Function(42), 60)
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestCache_ReusesTables(t *testing.T) {
	t.Parallel()

	cache := commutation.NewCache()
	curve := scenarioCurve(t)

	a, err := cache.Get(curve, 0.05)
	require.NoError(t, err)
	b, err := cache.Get(curve, 0.05)
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := cache.Get(curve, 0.04)
	require.NoError(t, err)
	assert.NotSame(t, a, c)

	z1, err := cache.Get(curve, 0)
	require.NoError(t, err)
	z2, err := cache.Get(curve, math.Copysign(0, -1))
	require.NoError(t, err)
	assert.Same(t, z1, z2)

	assert.Equal(t, int64(3), cache.Builds())
	assert.Equal(t, 3, cache.Len())

	_, err = cache.Get(curve, -1)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, 3, cache.Len())
}

func TestCache_ConcurrentFirstRequestsBuildOnce(t *testing.T) {
	t.Parallel()

	cache := commutation.NewCache()
	cfg := lifetest.Config(t, lifetest.LongRows(), mortality.Options{})
	curve := cfg.Table().Ultimate()

	const workers = 32
	got := make([]*commutation.Table, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			<-start
			tbl, err := cache.Get(curve, 0.035)
			assert.NoError(t, err)
			got[w] = tbl
		}(w)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), cache.Builds())
	for _, tbl := range got {
		assert.Same(t, got[0], tbl)
	}
}

func TestCache_SelectCurvesAreSeparateKeys(t *testing.T) {
	t.Parallel()

	cache := commutation.NewCache()
	cfg := lifetest.SelectConfig(t, mortality.Options{})

	sel, err := cfg.Curve(mortality.Ptr(60))
	require.NoError(t, err)
	ult, err := cfg.Curve(nil)
	require.NoError(t, err)

	a, err := cache.Get(sel, 0.05)
	require.NoError(t, err)
	b, err := cache.Get(ult, 0.05)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Same(t, sel, a.Curve())
	assert.Equal(t, 60, a.Start())
}

func TestCache_ForgetAndReset(t *testing.T) {
	t.Parallel()

	cache := commutation.NewCache()
	a, b := scenarioCurve(t), scenarioCurve(t)

	for _, i := range []float64{0.03, 0.05} {
		_, err := cache.Get(a, i)
		require.NoError(t, err)
	}
	kept, err := cache.Get(b, 0.05)
	require.NoError(t, err)
	require.Equal(t, 3, cache.Len())

	assert.Equal(t, 2, cache.Forget(a))
	assert.Equal(t, 1, cache.Len())
	assert.Zero(t, cache.Forget(a))

	again, err := cache.Get(b, 0.05)
	require.NoError(t, err)
	assert.Same(t, kept, again)

	cache.Reset()
	assert.Zero(t, cache.Len())
	assert.Equal(t, int64(3), cache.Builds())

	_, err = cache.Get(a, 0.05)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cache.Builds())
}

func TestParseFunction(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]commutation.Function{
		"D": commutation.D, "cx": commutation.C, "Mx": commutation.M,
		"n": commutation.N, "RX": commutation.R, " Sx ": commutation.S,
	} {
		got, err := commutation.ParseFunction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := commutation.ParseFunction("Qx")
	assert.Error(t, err)
	assert.Equal(t, "Nx", commutation.N.String())
}
