// Package mortality holds the canonical, validated representation of a
// mortality table and the configuration that loads it for calculation.
//
// A Table is built once from raw (age, value) rows, is immutable, and is
// shared by reference. Two variants exist:
//
//	Ultimate: rates depend on attained age only.
//	Select:   rates depend on entry age and duration for SelectPeriod years,
//	          then fall back to the ultimate curve.
package mortality

import (
	"github.com/meenmo/lifelib/errs"
)

// DefaultRadix is the starting lx used when a qx table is converted to lx.
const DefaultRadix = 100_000.0

// Variant tags the shape of a Table.
type Variant int

const (
	VariantUltimate Variant = iota + 1
	VariantSelect
)

func (v Variant) String() string {
	switch v {
	case VariantUltimate:
		return "ultimate"
	case VariantSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Table is an immutable mortality table.
type Table struct {
	name     string
	variant  Variant
	ultimate *Curve

	// Select only. selectQx[e-entryMin][d] is q[e]+d for d < len(row);
	// a row is shorter than selectPeriod when e+selectPeriod passes omega.
	entryMin     int
	selectPeriod int
	selectQx     [][]float64
}

// Name is the table name given by the loader, if any.
func (t *Table) Name() string { return t.name }

// Variant reports whether the table is ultimate or select.
func (t *Table) Variant() Variant { return t.variant }

// IsSelect is shorthand for Variant() == VariantSelect.
func (t *Table) IsSelect() bool { return t.variant == VariantSelect }

// Ultimate returns the ultimate life curve.
func (t *Table) Ultimate() *Curve { return t.ultimate }

// Omega is the terminal age where qx = 1.
func (t *Table) Omega() int { return t.ultimate.Omega() }

// MinAge is the lowest age the table can describe: the lowest entry age for
// a select table when it precedes the ultimate curve.
func (t *Table) MinAge() int {
	if t.IsSelect() && t.entryMin < t.ultimate.start {
		return t.entryMin
	}
	return t.ultimate.start
}

// SelectPeriod is the number of select years; 0 for ultimate tables.
func (t *Table) SelectPeriod() int { return t.selectPeriod }

// EntryAges returns the inclusive entry-age range of a select table.
func (t *Table) EntryAges() (lo, hi int, ok bool) {
	if !t.IsSelect() {
		return 0, 0, false
	}
	return t.entryMin, t.entryMin + len(t.selectQx) - 1, true
}

// HasEntryAge reports whether entryAge is a select entry age of the table.
func (t *Table) HasEntryAge(entryAge int) bool {
	lo, hi, ok := t.EntryAges()
	return ok && entryAge >= lo && entryAge <= hi
}

// QxAt returns the ultimate qx at age.
func (t *Table) QxAt(age int) (float64, error) {
	q, err := t.ultimate.Qx(age)
	return q, errs.Wrap("mortality.Table.QxAt", err)
}

// LxAt returns the ultimate lx at age.
func (t *Table) LxAt(age int) (float64, error) {
	l, err := t.ultimate.Lx(age)
	return l, errs.Wrap("mortality.Table.LxAt", err)
}

// SelectQxAt returns q[entryAge]+duration. Durations at or past the select
// period delegate to the ultimate rate at entryAge+duration.
func (t *Table) SelectQxAt(entryAge, duration int) (float64, error) {
	const op = "mortality.Table.SelectQxAt"

	if !t.IsSelect() {
		return 0, errs.Config(op, "entry_age", "table is not a select table")
	}
	if !t.HasEntryAge(entryAge) {
		lo, hi, _ := t.EntryAges()
		return 0, errs.OutOfRange(op, "entry_age", "entry age %d outside [%d, %d]", entryAge, lo, hi)
	}
	if duration < 0 {
		return 0, errs.OutOfRange(op, "duration", "duration %d is negative", duration)
	}

	row := t.selectQx[entryAge-t.entryMin]
	if duration < len(row) {
		return row[duration], nil
	}

	q, err := t.ultimate.Qx(entryAge + duration)
	return q, errs.Wrap(op, err)
}

// SelectCurve builds the life curve of a life selected at entryAge: select
// rates for the select period, ultimate rates afterwards. lx is anchored on
// the ultimate lx at the end of the select period and worked backwards,
// l[e]+d = l[e]+d+1 / (1 - q[e]+d).
func (t *Table) SelectCurve(entryAge int) (*Curve, error) {
	const op = "mortality.Table.SelectCurve"

	if !t.IsSelect() {
		return nil, errs.Config(op, "entry_age", "table is not a select table")
	}
	if !t.HasEntryAge(entryAge) {
		lo, hi, _ := t.EntryAges()
		return nil, errs.OutOfRange(op, "entry_age", "entry age %d outside [%d, %d]", entryAge, lo, hi)
	}

	u := t.ultimate
	row := t.selectQx[entryAge-t.entryMin]
	n := u.Omega() - entryAge + 1

	qx := make([]float64, n)
	lx := make([]float64, n)
	for k := 0; k < n; k++ {
		if k < len(row) {
			qx[k] = row[k]
		} else {
			qx[k] = u.qx[entryAge+k-u.start]
			lx[k] = u.lx[entryAge+k-u.start]
		}
	}
	for k := len(row) - 1; k >= 0; k-- {
		lx[k] = lx[k+1] / (1 - qx[k])
	}

	return &Curve{start: entryAge, qx: qx, lx: lx, entryAge: entryAge, selected: true}, nil
}

// QxRows exports the ultimate curve as qx rows.
func (t *Table) QxRows() []RawRow {
	return curveRows(t.ultimate, t.ultimate.qx)
}

// LxRows exports the ultimate curve as lx rows.
func (t *Table) LxRows() []RawRow {
	return curveRows(t.ultimate, t.ultimate.lx)
}

func curveRows(c *Curve, values []float64) []RawRow {
	rows := make([]RawRow, len(values))
	for k, v := range values {
		rows[k] = RawRow{Age: c.start + k, Value: v}
	}
	return rows
}

// loaded returns a working copy with every non-terminal qx multiplied by pct
// and lx restarted from radix.
func (t *Table) loaded(pct, radix float64) (*Table, error) {
	const op = "mortality.NewConfig"

	u := t.ultimate
	qx := make([]float64, len(u.qx))
	last := len(qx) - 1
	for k, q := range u.qx {
		if k == last {
			qx[k] = 1
			continue
		}
		qx[k] = q * pct
		if qx[k] >= 1 {
			return nil, errs.Validation(op, "pct", "loaded qx %.6g at age %d reaches 1 before omega %d", qx[k], u.start+k, u.Omega())
		}
	}

	var lx []float64
	if pct == 1 {
		scale := radix / u.lx[0]
		lx = make([]float64, len(u.lx))
		for k, l := range u.lx {
			lx[k] = l * scale
		}
	} else {
		lx = lxFromQx(qx, radix)
	}

	out := &Table{
		name:         t.name,
		variant:      t.variant,
		ultimate:     &Curve{start: u.start, qx: qx, lx: lx},
		entryMin:     t.entryMin,
		selectPeriod: t.selectPeriod,
	}

	if t.IsSelect() {
		out.selectQx = make([][]float64, len(t.selectQx))
		for e, row := range t.selectQx {
			loadedRow := make([]float64, len(row))
			for d, q := range row {
				loadedRow[d] = q * pct
				if loadedRow[d] >= 1 {
					return nil, errs.Validation(op, "pct", "loaded select qx %.6g at entry age %d duration %d reaches 1", loadedRow[d], t.entryMin+e, d)
				}
			}
			out.selectQx[e] = loadedRow
		}
	}

	return out, nil
}
