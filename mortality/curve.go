package mortality

import "github.com/meenmo/lifelib/errs"

// Curve is a one-dimensional life curve: contiguous integer ages from Start
// to Omega with their qx and lx. The ultimate rates of a table form a curve,
// and so does the select path followed by a life that entered at a given age.
//
// A Curve is immutable. Its pointer identity keys the commutation cache.
type Curve struct {
	start    int
	qx       []float64
	lx       []float64
	entryAge int
	selected bool
}

// Start is the first age on the curve.
func (c *Curve) Start() int { return c.start }

// Omega is the terminal age; qx(Omega) == 1.
func (c *Curve) Omega() int { return c.start + len(c.qx) - 1 }

// Len is the number of ages on the curve.
func (c *Curve) Len() int { return len(c.qx) }

// EntryAge reports the entry age of a select curve.
func (c *Curve) EntryAge() (int, bool) { return c.entryAge, c.selected }

func (c *Curve) index(op string, age int) (int, error) {
	if age < c.start || age > c.Omega() {
		return 0, errs.OutOfRange(op, "age", "age %d outside [%d, %d]", age, c.start, c.Omega())
	}
	return age - c.start, nil
}

// Qx returns the one-year mortality rate at age.
func (c *Curve) Qx(age int) (float64, error) {
	i, err := c.index("mortality.Curve.Qx", age)
	if err != nil {
		return 0, err
	}
	return c.qx[i], nil
}

// Px returns 1 - Qx(age).
func (c *Curve) Px(age int) (float64, error) {
	q, err := c.Qx(age)
	if err != nil {
		return 0, err
	}
	return 1 - q, nil
}

// Lx returns the expected survivors to age.
func (c *Curve) Lx(age int) (float64, error) {
	i, err := c.index("mortality.Curve.Lx", age)
	if err != nil {
		return 0, err
	}
	return c.lx[i], nil
}

// Deaths returns dx = lx - lx+1. At Omega every survivor dies, so dx = lx.
func (c *Curve) Deaths(age int) (float64, error) {
	i, err := c.index("mortality.Curve.Deaths", age)
	if err != nil {
		return 0, err
	}
	if i == len(c.lx)-1 {
		return c.lx[i], nil
	}
	return c.lx[i] - c.lx[i+1], nil
}

// Rates returns a copy of the qx column, indexed by age - Start.
func (c *Curve) Rates() []float64 {
	return append([]float64(nil), c.qx...)
}

// Survivors returns a copy of the lx column, indexed by age - Start.
func (c *Curve) Survivors() []float64 {
	return append([]float64(nil), c.lx...)
}

// lxFromQx runs lx(a+1) = lx(a)*(1-qx(a)) forward from radix.
func lxFromQx(qx []float64, radix float64) []float64 {
	lx := make([]float64, len(qx))
	if len(qx) == 0 {
		return lx
	}
	lx[0] = radix
	for k := 1; k < len(qx); k++ {
		lx[k] = lx[k-1] * (1 - qx[k-1])
	}
	return lx
}
