package mortality

import "fmt"

// Basis tags what the Value column of a raw table holds.
type Basis int

const (
	// BasisQx rows carry one-year mortality rates.
	BasisQx Basis = iota + 1
	// BasisLx rows carry survivor counts.
	BasisLx
)

func (b Basis) String() string {
	switch b {
	case BasisQx:
		return "qx"
	case BasisLx:
		return "lx"
	default:
		return fmt.Sprintf("Basis(%d)", int(b))
	}
}

// ParseBasis maps "qx" or "lx" to a Basis.
func ParseBasis(s string) (Basis, error) {
	switch s {
	case "qx", "QX", "q":
		return BasisQx, nil
	case "lx", "LX", "l":
		return BasisLx, nil
	}
	return 0, fmt.Errorf("unknown basis %q (want qx or lx)", s)
}

// RawRow is one (age, value) pair delivered by an external loader.
//
// Duration is set only for select tables; Age is then the attained age and
// the entry age is Age - *Duration.
type RawRow struct {
	Age      int
	Value    float64
	Duration *int
}

// RawTable is the tagged ingestion contract. The producer decides Basis and
// Select once; nothing downstream re-infers them.
type RawTable struct {
	Name   string
	Basis  Basis
	Select bool
	Rows   []RawRow
}

// FromRaw dispatches on the raw table tag.
func FromRaw(raw RawTable) (*Table, error) {
	var (
		t   *Table
		err error
	)

	switch {
	case raw.Basis == BasisQx && !raw.Select:
		t, err = FromQxRows(raw.Rows)
	case raw.Basis == BasisLx && !raw.Select:
		t, err = FromLxRows(raw.Rows)
	case raw.Basis == BasisQx && raw.Select:
		t, err = FromSelectQxRows(raw.Rows)
	case raw.Basis == BasisLx && raw.Select:
		t, err = FromSelectLxRows(raw.Rows)
	default:
		return nil, integrityErr("FromRaw", "raw table basis %s is not qx or lx", raw.Basis)
	}
	if err != nil {
		return nil, err
	}

	t.name = raw.Name
	return t, nil
}

// Ptr returns a pointer to v, for optional fields such as RawRow.Duration
// and entry ages.
func Ptr[T any](v T) *T { return &v }
