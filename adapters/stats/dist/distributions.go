// Package dist provides the distribution primitives shared by the estimators
// and hypothesis tests: standard normal pdf/cdf/quantile, upper quantiles of
// the F and Student-t distributions, and the extreme-value transform used on
// Weibull probability paper.
package dist

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// quantileClamp keeps normal quantiles finite at p = 0 and p = 1.
const quantileClamp = 1e-15

// NormalPDF is the standard normal density.
func NormalPDF(z float64) float64 {
	return distuv.UnitNormal.Prob(z)
}

// NormalCDF is the standard normal cumulative distribution function.
func NormalCDF(z float64) float64 {
	return distuv.UnitNormal.CDF(z)
}

// NormalQuantile is the inverse standard normal CDF. p is clamped into
// [1e-15, 1-1e-15] so the result is always finite.
func NormalQuantile(p float64) float64 {
	if p <= 0 {
		p = quantileClamp
	}
	if p >= 1 {
		p = 1 - quantileClamp
	}
	return distuv.UnitNormal.Quantile(p)
}

// FUpperQuantile returns the value f with P(F > f) = alpha for an F(d1, d2)
// variable.
func FUpperQuantile(alpha, d1, d2 float64) float64 {
	if d1 <= 0 || d2 <= 0 || alpha <= 0 || alpha >= 1 {
		return math.NaN()
	}
	// If X ~ Beta(d1/2, d2/2) then d2*X / (d1*(1-X)) ~ F(d1, d2).
	x := mathext.InvRegIncBeta(d1/2, d2/2, 1-alpha)
	if x >= 1 {
		return math.Inf(1)
	}
	return d2 * x / (d1 * (1 - x))
}

// TUpperQuantile returns the value t with P(T > t) = alpha for a Student-t
// variable with df degrees of freedom.
func TUpperQuantile(alpha, df float64) float64 {
	if df <= 0 || alpha <= 0 || alpha >= 1 {
		return math.NaN()
	}
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(1 - alpha)
}

// WeibullZ maps a failure probability onto the extreme-value axis
// ln(-ln(1-p)). 1-p is floored at 1e-12.
func WeibullZ(p float64) float64 {
	return math.Log(-math.Log(math.Max(1e-12, 1-p)))
}

// NormalPosition is the Blom plotting position of the i-th (0-based) of n
// ordered observations.
func NormalPosition(i, n int) float64 {
	return (float64(i) + 1 - 0.375) / (float64(n) + 0.25)
}

// WeibullPosition is Benard's median-rank plotting position of the i-th
// (0-based) of n ordered observations.
func WeibullPosition(i, n int) float64 {
	return (float64(i) + 1 - 0.3) / (float64(n) + 0.4)
}
