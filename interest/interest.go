// Package interest converts between effective and nominal interest and
// discount rates.
//
//	i      effective annual interest
//	d      effective annual discount, d = i/(1+i)
//	i(m)   nominal interest convertible m times a year, (1 + i(m)/m)^m = 1 + i
//	d(m)   nominal discount convertible m times a year, (1 - d(m)/m)^m = 1 - d
//
// Conversions take a frequency m >= 1 and perform no validation; callers
// validate rates and frequencies first. They go through log1p and expm1 so
// that rates near zero keep their precision.
package interest

import "math"

// NomIToEffI converts i(m) to i.
func NomIToEffI(nomI float64, m int) float64 {
	mf := float64(m)
	return math.Expm1(mf * math.Log1p(nomI/mf))
}

// EffIToNomI converts i to i(m).
func EffIToNomI(effI float64, m int) float64 {
	mf := float64(m)
	return mf * math.Expm1(math.Log1p(effI)/mf)
}

// EffDToNomD converts d to d(m).
func EffDToNomD(effD float64, m int) float64 {
	mf := float64(m)
	return -mf * math.Expm1(math.Log1p(-effD)/mf)
}

// NomDToEffD converts d(m) to d.
func NomDToEffD(nomD float64, m int) float64 {
	mf := float64(m)
	return -math.Expm1(mf * math.Log1p(-nomD/mf))
}

// EffIToEffD converts i to d.
func EffIToEffD(effI float64) float64 { return effI / (1 + effI) }

// EffDToEffI converts d to i.
func EffDToEffI(effD float64) float64 { return effD / (1 - effD) }

// EffIToNomD converts i to d(m).
func EffIToNomD(effI float64, m int) float64 {
	return EffDToNomD(EffIToEffD(effI), m)
}

// NomIToEffD converts i(m) to d.
func NomIToEffD(nomI float64, m int) float64 {
	return EffIToEffD(NomIToEffI(nomI, m))
}

// NomIToNomD converts i(mi) to d(md).
func NomIToNomD(nomI float64, mi, md int) float64 {
	return EffDToNomD(NomIToEffD(nomI, mi), md)
}

// EffDToNomI converts d to i(m).
func EffDToNomI(effD float64, m int) float64 {
	return EffIToNomI(EffDToEffI(effD), m)
}

// NomDToEffI converts d(m) to i.
func NomDToEffI(nomD float64, m int) float64 {
	return EffDToEffI(NomDToEffD(nomD, m))
}

// NomDToNomI converts d(md) to i(mi).
func NomDToNomI(nomD float64, md, mi int) float64 {
	return EffIToNomI(NomDToEffI(nomD, md), mi)
}

// Force returns the force of interest δ = ln(1+i).
func Force(effI float64) float64 { return math.Log1p(effI) }

// Alpha is the UDD m-thly annuity factor
//
//	α(m) = i·d / (i(m)·d(m))
//
// and equals 1 at i = 0.
func Alpha(effI float64, m int) float64 {
	if m == 1 || effI == 0 {
		return 1
	}
	d := EffIToEffD(effI)
	return effI * d / (EffIToNomI(effI, m) * EffIToNomD(effI, m))
}

// Beta is the UDD m-thly annuity adjustment
//
//	β(m) = (i - i(m)) / (i(m)·d(m))
//
// with limit (m-1)/(2m) at i = 0.
func Beta(effI float64, m int) float64 {
	if m == 1 {
		return 0
	}
	if effI == 0 {
		return float64(m-1) / float64(2*m)
	}
	nomI := EffIToNomI(effI, m)
	return (effI - nomI) / (nomI * EffIToNomD(effI, m))
}

// InsuranceFactor is i / i(m), the UDD factor that turns an annual
// insurance into one payable at the end of the 1/m-th of a year of death.
func InsuranceFactor(effI float64, m int) float64 {
	if m == 1 || effI == 0 {
		return 1
	}
	return effI / EffIToNomI(effI, m)
}

// Compound returns the effective rate for the j-th moment at rate i,
// (1+i)^j - 1.
func Compound(effI float64, j int) float64 {
	if j == 1 {
		return effI
	}
	return math.Expm1(float64(j) * math.Log1p(effI))
}

// Growth returns the rate i' = (1+i)/(1+g) - 1 that discounts a benefit
// growing geometrically at g.
func Growth(effI, g float64) float64 {
	if g == 0 {
		return effI
	}
	return (1+effI)/(1+g) - 1
}
