// Package lifetest provides small mortality tables shared by the package tests.
package lifetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meenmo/lifelib/mortality"
)

// ScenarioRows is the three-age table {60: 0.01, 61: 0.02, 62: 1.0}.
func ScenarioRows() []mortality.RawRow {
	return []mortality.RawRow{
		{Age: 60, Value: 0.01},
		{Age: 61, Value: 0.02},
		{Age: 62, Value: 1.0},
	}
}

// LongRows is an ultimate qx table for ages 50..70 with a smooth Gompertz-like shape.
func LongRows() []mortality.RawRow {
	rows := make([]mortality.RawRow, 0, 21)
	q := 0.004
	for age := 50; age < 70; age++ {
		rows = append(rows, mortality.RawRow{Age: age, Value: q})
		q *= 1.11
	}
	return append(rows, mortality.RawRow{Age: 70, Value: 1})
}

// SelectRows is a two-year select table. Ultimate rates (duration 2) run from
// age 60 to omega 65; entry ages are 60..64.
func SelectRows() []mortality.RawRow {
	d := func(v int) *int { return &v }
	return []mortality.RawRow{
		{Age: 60, Value: 0.005, Duration: d(0)},
		{Age: 61, Value: 0.006, Duration: d(0)},
		{Age: 62, Value: 0.007, Duration: d(0)},
		{Age: 63, Value: 0.010, Duration: d(0)},
		{Age: 64, Value: 0.040, Duration: d(0)},

		{Age: 61, Value: 0.012, Duration: d(1)},
		{Age: 62, Value: 0.015, Duration: d(1)},
		{Age: 63, Value: 0.020, Duration: d(1)},
		{Age: 64, Value: 0.050, Duration: d(1)},

		{Age: 60, Value: 0.01, Duration: d(2)},
		{Age: 61, Value: 0.02, Duration: d(2)},
		{Age: 62, Value: 0.03, Duration: d(2)},
		{Age: 63, Value: 0.05, Duration: d(2)},
		{Age: 64, Value: 0.10, Duration: d(2)},
		{Age: 65, Value: 1.00, Duration: d(2)},
	}
}

// Config builds a config from qx rows or fails the test.
func Config(tb testing.TB, rows []mortality.RawRow, opts mortality.Options) *mortality.Config {
	tb.Helper()

	table, err := mortality.FromQxRows(rows)
	require.NoError(tb, err)
	cfg, err := mortality.NewConfig(table, opts)
	require.NoError(tb, err)
	return cfg
}

// SelectConfig builds a config from SelectRows or fails the test.
func SelectConfig(tb testing.TB, opts mortality.Options) *mortality.Config {
	tb.Helper()

	table, err := mortality.FromSelectQxRows(SelectRows())
	require.NoError(tb, err)
	cfg, err := mortality.NewConfig(table, opts)
	require.NoError(tb, err)
	return cfg
}
