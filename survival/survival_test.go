package survival_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/internal/lifetest"
	"github.com/meenmo/lifelib/mortality"
	"github.com/meenmo/lifelib/survival"
)

var assumptions = []mortality.Assumption{mortality.UDD, mortality.CFM, mortality.HPB}

func scenario(t *testing.T, a mortality.Assumption) *mortality.Config {
	t.Helper()
	return lifetest.Config(t, lifetest.ScenarioRows(), mortality.Options{Radix: 1000, Assumption: a})
}

func tpx(t *testing.T, cfg *mortality.Config, x, dur float64) float64 {
	t.Helper()
	p, err := survival.Tpx(cfg, survival.Query{X: x, T: dur})
	require.NoError(t, err)
	return p
}

func TestTpx_ScenarioB(t *testing.T) {
	t.Parallel()

	want := map[mortality.Assumption]float64{
		mortality.UDD: (1 - 0.005/0.995) * 0.99,
		mortality.CFM: math.Sqrt(0.99 * 0.98),
		mortality.HPB: 0.995 * 0.98 / 0.99,
	}

	got := map[mortality.Assumption]float64{}
	for _, a := range assumptions {
		cfg := scenario(t, a)
		got[a] = tpx(t, cfg, 60.5, 1)
		assert.InDelta(t, want[a], got[a], 1e-14, a.String())
		assert.InDelta(t, 0.99, tpx(t, cfg, 60, 1), 1e-15, "integer boundary under %s", a)
	}

	assert.NotEqual(t, got[mortality.UDD], got[mortality.CFM])
	assert.NotEqual(t, got[mortality.UDD], got[mortality.HPB])
	assert.NotEqual(t, got[mortality.CFM], got[mortality.HPB])
}

func TestTpx_WithinOneYear(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.995, tpx(t, scenario(t, mortality.UDD), 60, 0.5), 1e-15)
	assert.InDelta(t, math.Sqrt(0.99), tpx(t, scenario(t, mortality.CFM), 60, 0.5), 1e-15)
	assert.InDelta(t, 0.99/0.995, tpx(t, scenario(t, mortality.HPB), 60, 0.5), 1e-15)
}

func TestTpx_Boundaries(t *testing.T) {
	t.Parallel()

	for _, a := range assumptions {
		cfg := scenario(t, a)
		for x := 60.0; x <= 62; x += 0.25 {
			assert.Equal(t, 1.0, tpx(t, cfg, x, 0), "%s tpx(%v, 0)", a, x)
		}
		assert.InDelta(t, 0.9702, tpx(t, cfg, 60, 2), 1e-15, a.String())
		assert.Equal(t, 0.0, tpx(t, cfg, 60, 2.5), "past omega under %s", a)
		assert.Equal(t, 0.0, tpx(t, cfg, 62, 0.5), "at omega under %s", a)
		assert.InDelta(t, 0.98, tpx(t, cfg, 61, 1), 1e-15)
	}
}

func TestTpx_IntegerAgesMatchQx(t *testing.T) {
	t.Parallel()

	for _, a := range assumptions {
		cfg := lifetest.Config(t, lifetest.LongRows(), mortality.Options{Assumption: a})
		for age := cfg.MinAge(); age < cfg.Omega(); age++ {
			q, err := cfg.Qx(age, nil)
			require.NoError(t, err)
			assert.InDelta(t, 1-q, tpx(t, cfg, float64(age), 1), 1e-12, "%s age %d", a, age)
		}
	}
}

func TestTpx_Multiplicative(t *testing.T) {
	t.Parallel()

	for _, a := range assumptions {
		cfg := lifetest.Config(t, lifetest.LongRows(), mortality.Options{Assumption: a})
		for _, c := range []struct{ x, s, t float64 }{
			{50.3, 0.4, 1.1},
			{55, 0.25, 3.75},
			{61.9, 2.2, 0.05},
		} {
			whole := tpx(t, cfg, c.x, c.s+c.t)
			split := tpx(t, cfg, c.x, c.s) * tpx(t, cfg, c.x+c.s, c.t)
			assert.InDelta(t, whole, split, 1e-12, "%s %+v", a, c)
		}
	}
}

func TestTpx_SnapsNearIntegerAges(t *testing.T) {
	t.Parallel()

	cfg := scenario(t, mortality.HPB)
	assert.InDelta(t, 0.99, tpx(t, cfg, 60+1e-14, 1-2e-14), 1e-12)
}

func TestTqx(t *testing.T) {
	t.Parallel()

	cfg := scenario(t, mortality.UDD)

	q, err := survival.Tqx(cfg, survival.Query{X: 60, T: 1, K: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.99-0.9702, q, 1e-15)

	q, err = survival.Tqx(cfg, survival.Query{X: 60, T: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.01, q, 1e-15)

	q, err = survival.Tqx(cfg, survival.Query{X: 60, T: 5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, q, "every life dies before the window ends")

	p, err := survival.Tpx(cfg, survival.Query{X: 60, T: 1, K: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.9702, p, 1e-15)
}

func TestTpx_Select(t *testing.T) {
	t.Parallel()

	cfg := lifetest.SelectConfig(t, mortality.Options{})

	p, err := survival.Tpx(cfg, survival.Query{X: 60, T: 1, EntryAge: mortality.Ptr(60)})
	require.NoError(t, err)
	assert.InDelta(t, 0.995, p, 1e-12)

	p, err = survival.Tpx(cfg, survival.Query{X: 61, T: 1, EntryAge: mortality.Ptr(60)})
	require.NoError(t, err)
	assert.InDelta(t, 0.988, p, 1e-12)

	p, err = survival.Tpx(cfg, survival.Query{X: 61, T: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.98, p, 1e-12)
}

func TestTpx_Rejects(t *testing.T) {
	t.Parallel()

	cfg := scenario(t, mortality.UDD)

	_, err := survival.Tpx(cfg, survival.Query{X: 60, T: -1})
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, "t", errs.FieldOf(err))

	_, err = survival.Tpx(cfg, survival.Query{X: -1, T: 1})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = survival.Tpx(cfg, survival.Query{X: 63, T: 0})
	assert.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = survival.Tpx(cfg, survival.Query{X: 60, T: 1, EntryAge: mortality.Ptr(60)})
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestAlong(t *testing.T) {
	t.Parallel()

	cfg := scenario(t, mortality.UDD)
	curve := cfg.Table().Ultimate()

	p, err := survival.Along(curve, mortality.UDD, 60.5, 1)
	require.NoError(t, err)
	assert.InDelta(t, tpx(t, cfg, 60.5, 1), p, 1e-15)

	_, err = survival.Along(curve, mortality.UDD, 59, 1)
	assert.ErrorIs(t, err, errs.ErrOutOfRange)
}
