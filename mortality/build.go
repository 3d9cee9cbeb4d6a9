package mortality

import (
	"math"

	"github.com/meenmo/lifelib/errs"
)

func integrityErr(op, format string, args ...any) error {
	return errs.DataIntegrity("mortality."+op, format, args...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FromQxRows builds an ultimate table from one-year mortality rates.
//
// The first row with qx = 1 is the terminal (omega) row. Later rows that
// also claim qx = 1 are dropped as duplicates; any other row after it is
// rejected. lx starts at DefaultRadix.
func FromQxRows(rows []RawRow) (*Table, error) {
	const op = "FromQxRows"

	if err := rejectDurations(op, rows); err != nil {
		return nil, err
	}
	u, err := ultimateFromQx(op, rows)
	if err != nil {
		return nil, err
	}
	return &Table{variant: VariantUltimate, ultimate: u}, nil
}

// FromLxRows builds an ultimate table from survivor counts, deriving
// qx = 1 - lx(age+1)/lx(age). The last row with positive lx is omega;
// trailing zero rows are dropped.
func FromLxRows(rows []RawRow) (*Table, error) {
	const op = "FromLxRows"

	if err := rejectDurations(op, rows); err != nil {
		return nil, err
	}
	u, err := ultimateFromLx(op, rows)
	if err != nil {
		return nil, err
	}
	return &Table{variant: VariantUltimate, ultimate: u}, nil
}

// FromSelectQxRows builds a select table from (attained age, duration, qx)
// rows. The highest duration present is the select period; its rows form
// the ultimate curve.
func FromSelectQxRows(rows []RawRow) (*Table, error) {
	const op = "FromSelectQxRows"

	ult, sel, period, err := splitSelect(op, rows)
	if err != nil {
		return nil, err
	}
	u, err := ultimateFromQx(op, ult)
	if err != nil {
		return nil, err
	}

	t := &Table{variant: VariantSelect, ultimate: u, selectPeriod: period}
	if err := t.setSelectRates(op, sel); err != nil {
		return nil, err
	}
	return t, nil
}

// FromSelectLxRows builds a select table from (attained age, duration, lx)
// rows. Select qx are derived along the diagonal, q[e]+d = 1 - l[e]+d+1 / l[e]+d,
// where the last select year links to the ultimate lx.
func FromSelectLxRows(rows []RawRow) (*Table, error) {
	const op = "FromSelectLxRows"

	ult, sel, period, err := splitSelect(op, rows)
	if err != nil {
		return nil, err
	}
	u, err := ultimateFromLx(op, ult)
	if err != nil {
		return nil, err
	}

	type cell struct{ age, duration int }
	lx := make(map[cell]float64, len(sel))
	for _, r := range sel {
		if !finite(r.Value) || r.Value <= 0 {
			return nil, integrityErr(op, "select lx %v at age %d duration %d must be positive", r.Value, r.Age, *r.Duration)
		}
		lx[cell{r.Age, *r.Duration}] = r.Value
	}

	qRows := make([]RawRow, len(sel))
	for k, r := range sel {
		d := *r.Duration
		next, ok := lx[cell{r.Age + 1, d + 1}]
		if !ok {
			if d+1 < period && r.Age+1 < u.Omega() {
				return nil, integrityErr(op, "select lx missing at age %d duration %d", r.Age+1, d+1)
			}
			next, err = u.Lx(r.Age + 1)
			if err != nil {
				return nil, integrityErr(op, "select row at age %d has no ultimate successor", r.Age)
			}
		}
		if next > r.Value {
			return nil, integrityErr(op, "select lx increases from age %d duration %d", r.Age, d)
		}
		qRows[k] = RawRow{Age: r.Age, Value: 1 - next/r.Value, Duration: r.Duration}
	}

	t := &Table{variant: VariantSelect, ultimate: u, selectPeriod: period}
	if err := t.setSelectRates(op, qRows); err != nil {
		return nil, err
	}
	return t, nil
}

func rejectDurations(op string, rows []RawRow) error {
	for _, r := range rows {
		if r.Duration != nil {
			return integrityErr(op, "row at age %d carries a duration; use a select table", r.Age)
		}
	}
	return nil
}

func checkContiguous(op string, rows []RawRow) error {
	for k, r := range rows {
		if r.Age < 0 {
			return integrityErr(op, "negative age %d", r.Age)
		}
		if k > 0 && r.Age != rows[k-1].Age+1 {
			return integrityErr(op, "ages not contiguous: %d follows %d", r.Age, rows[k-1].Age)
		}
	}
	return nil
}

func ultimateFromQx(op string, rows []RawRow) (*Curve, error) {
	if len(rows) == 0 {
		return nil, integrityErr(op, "no rows")
	}

	terminal := -1
	for k, r := range rows {
		if !finite(r.Value) || r.Value < 0 || r.Value > 1 {
			return nil, integrityErr(op, "qx %v at age %d outside [0, 1]", r.Value, r.Age)
		}
		if r.Value == 1 {
			terminal = k
			break
		}
	}
	if terminal < 0 {
		return nil, integrityErr(op, "no terminal row with qx = 1")
	}
	for _, r := range rows[terminal+1:] {
		if r.Value != 1 {
			return nil, integrityErr(op, "row at age %d follows terminal row at age %d", r.Age, rows[terminal].Age)
		}
	}

	kept := rows[:terminal+1]
	if err := checkContiguous(op, kept); err != nil {
		return nil, err
	}

	qx := make([]float64, len(kept))
	for k, r := range kept {
		qx[k] = r.Value
	}
	return &Curve{start: kept[0].Age, qx: qx, lx: lxFromQx(qx, DefaultRadix)}, nil
}

func ultimateFromLx(op string, rows []RawRow) (*Curve, error) {
	if len(rows) == 0 {
		return nil, integrityErr(op, "no rows")
	}
	if err := checkContiguous(op, rows); err != nil {
		return nil, err
	}

	last := -1
	for k, r := range rows {
		if !finite(r.Value) || r.Value < 0 {
			return nil, integrityErr(op, "lx %v at age %d must be finite and non-negative", r.Value, r.Age)
		}
		if k > 0 && r.Value > rows[k-1].Value {
			return nil, integrityErr(op, "lx increases from age %d to %d", rows[k-1].Age, r.Age)
		}
		if r.Value > 0 {
			last = k
		}
	}
	if last < 0 {
		return nil, integrityErr(op, "first lx must be positive")
	}

	kept := rows[:last+1]
	qx := make([]float64, len(kept))
	lx := make([]float64, len(kept))
	for k, r := range kept {
		lx[k] = r.Value
		if k == last {
			qx[k] = 1
			continue
		}
		qx[k] = 1 - kept[k+1].Value/r.Value
	}
	return &Curve{start: kept[0].Age, qx: qx, lx: lx}, nil
}

// splitSelect separates the ultimate rows (duration == period) from the
// select rows. Ultimate rows keep their input order with durations stripped.
func splitSelect(op string, rows []RawRow) (ult, sel []RawRow, period int, err error) {
	if len(rows) == 0 {
		return nil, nil, 0, integrityErr(op, "no rows")
	}

	period = -1
	for _, r := range rows {
		if r.Duration == nil {
			return nil, nil, 0, integrityErr(op, "select row at age %d has no duration", r.Age)
		}
		if *r.Duration < 0 {
			return nil, nil, 0, integrityErr(op, "negative duration %d at age %d", *r.Duration, r.Age)
		}
		if *r.Duration > period {
			period = *r.Duration
		}
	}
	if period == 0 {
		return nil, nil, 0, integrityErr(op, "select table has no select durations")
	}

	for _, r := range rows {
		if *r.Duration == period {
			ult = append(ult, RawRow{Age: r.Age, Value: r.Value})
		} else {
			sel = append(sel, r)
		}
	}
	return ult, sel, period, nil
}

// setSelectRates validates select qx rows against the ultimate curve and
// fills the entry-age grid.
func (t *Table) setSelectRates(op string, rows []RawRow) error {
	if len(rows) == 0 {
		return integrityErr(op, "select table has no select rows")
	}

	omega := t.ultimate.Omega()
	lastAge := map[int]int{}
	entryMin, entryMax := math.MaxInt, math.MinInt
	for _, r := range rows {
		d := *r.Duration
		if prev, ok := lastAge[d]; ok && r.Age != prev+1 {
			return integrityErr(op, "duration %d ages not contiguous: %d follows %d", d, r.Age, prev)
		}
		lastAge[d] = r.Age

		if !finite(r.Value) || r.Value < 0 || r.Value >= 1 {
			return integrityErr(op, "select qx %v at age %d duration %d outside [0, 1)", r.Value, r.Age, d)
		}
		if r.Age >= omega {
			return integrityErr(op, "select row at age %d duration %d is not below omega %d", r.Age, d, omega)
		}
		e := r.Age - d
		if e < 0 {
			return integrityErr(op, "entry age %d is negative", e)
		}
		entryMin = min(entryMin, e)
		entryMax = max(entryMax, e)
	}

	grid := make([][]float64, entryMax-entryMin+1)
	seen := make([][]bool, len(grid))
	for k := range grid {
		e := entryMin + k
		want := min(t.selectPeriod, omega-e)
		grid[k] = make([]float64, want)
		seen[k] = make([]bool, want)
	}
	for _, r := range rows {
		d := *r.Duration
		k := r.Age - d - entryMin
		if seen[k][d] {
			return integrityErr(op, "duplicate select row at age %d duration %d", r.Age, d)
		}
		grid[k][d] = r.Value
		seen[k][d] = true
	}

	for k, row := range seen {
		e := entryMin + k
		for d, ok := range row {
			if !ok {
				return integrityErr(op, "entry age %d missing duration %d", e, d)
			}
		}
		if anchor := e + len(row); anchor < t.ultimate.start {
			return integrityErr(op, "entry age %d leaves the select period at %d, before the ultimate curve starts at %d", e, anchor, t.ultimate.start)
		}
	}

	t.entryMin = entryMin
	t.selectQx = grid
	return nil
}
