package stats

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions provides unified access to the distributions the analyzer
// needs: the F distribution for the overall ANOVA test and the studentized
// range distribution for Tukey HSD p-values.
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// FTestPValue computes the p-value for an F statistic (ANOVA)
func (d *Distributions) FTestPValue(fStatistic float64, df1, df2 int) float64 {
	if df1 <= 0 || df2 <= 0 {
		return 1.0
	}
	if math.IsNaN(fStatistic) || fStatistic < 0 {
		return 1.0
	}

	fDist := distuv.F{D1: float64(df1), D2: float64(df2)}
	return 1 - fDist.CDF(fStatistic)
}

// TukeyPValue computes the p-value of a studentized range statistic q for k
// groups and df error degrees of freedom.
func (d *Distributions) TukeyPValue(q float64, k, df int) float64 {
	p := 1 - d.StudentizedRangeCDF(q, k, df)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// StudentizedRangeCDF computes P(Q <= q) for the studentized range
// distribution with k groups and df error degrees of freedom.
//
// The CDF is the expectation of the range probability over the scale factor
// s = sqrt(chi2_df / df):
//
//	P(Q <= q) = integral over s of f_s(s) * Prange(q*s, k) ds
//
// Both integrals are smooth on their truncated supports, so fixed
// Gauss-Legendre quadrature converges quickly.
func (d *Distributions) StudentizedRangeCDF(q float64, k, df int) float64 {
	if q <= 0 || k < 2 || df < 1 {
		return 0
	}

	// Large df: the scale factor degenerates to 1 and the distribution is
	// the range of k standard normals.
	if df > 5000 {
		return rangeCDF(q, k)
	}

	nu := float64(df)
	chi2 := distuv.ChiSquared{K: nu}

	// Support of s, truncated where the chi density mass is negligible.
	lo := math.Sqrt(chi2.Quantile(1e-10) / nu)
	hi := math.Sqrt(chi2.Quantile(1-1e-10) / nu)

	integrand := func(s float64) float64 {
		// Density of s = sqrt(U/nu), U ~ chi2_nu.
		density := 2 * nu * s * chi2.Prob(nu*s*s)
		return density * rangeCDF(q*s, k)
	}

	p := quad.Fixed(integrand, lo, hi, 128, nil, 0)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// rangeCDF computes P(R <= r) for the range of k independent standard
// normal variates:
//
//	P(R <= r) = k * integral phi(z) * [Phi(z) - Phi(z-r)]^(k-1) dz
func rangeCDF(r float64, k int) float64 {
	if r <= 0 {
		return 0
	}

	normal := distuv.UnitNormal
	kf := float64(k)

	integrand := func(z float64) float64 {
		inner := normal.CDF(z) - normal.CDF(z-r)
		if inner <= 0 {
			return 0
		}
		return normal.Prob(z) * math.Pow(inner, kf-1)
	}

	// The integrand vanishes outside a few standard deviations.
	p := kf * quad.Fixed(integrand, -9, 9, 96, nil, 0)
	if p > 1 {
		return 1
	}
	return p
}
