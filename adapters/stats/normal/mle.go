// Package normal fits Normal lifetime distributions by maximum likelihood.
package normal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"lifestat/adapters/stats/dist"
	"lifestat/adapters/stats/optimize"
	"lifestat/domain/core"
	"lifestat/domain/lifedata"
)

// DefaultTolerance is the simplex spread at which the censored fit stops.
const DefaultTolerance = 1e-8

// MLEFit is a maximum-likelihood estimate and how it was reached.
type MLEFit struct {
	Estimate    lifedata.ParameterEstimate `json:"estimate"`
	Diagnostics lifedata.FitDiagnostics    `json:"diagnostics"`
}

// MLE fits mean and standard deviation. Uncensored samples use the closed
// form (mean, sqrt(SS/n)). Censored samples minimize the censored negative
// log-likelihood with Nelder-Mead from the closed-form start; the
// diagnostics then carry the simplex iteration count and convergence.
func MLE(sample lifedata.Sample, tol float64) (MLEFit, error) {
	n := sample.Len()
	if n < 2 {
		return MLEFit{}, fmt.Errorf("%w: normal fit needs at least 2 observations, got %d", core.ErrInsufficientData, n)
	}
	values := sample.Values()
	mean, sigma := closedForm(values)
	if sigma <= 0 {
		return MLEFit{}, fmt.Errorf("%w: all observations are equal", core.ErrDegenerateStatistic)
	}

	est := lifedata.ParameterEstimate{
		Distribution: lifedata.Normal,
		Location:     mean,
		Scale:        sigma,
		N:            n,
		Estimator:    lifedata.EstimatorClosedForm,
	}
	if !sample.HasCensoring() {
		return MLEFit{Estimate: est, Diagnostics: lifedata.FitDiagnostics{Converged: true}}, nil
	}
	if sample.EventCount() == 0 {
		return MLEFit{}, fmt.Errorf("%w: every observation is censored", core.ErrInsufficientData)
	}

	if tol <= 0 {
		tol = DefaultTolerance
	}
	res := optimize.NelderMead([]float64{mean, math.Log(sigma)}, tol, optimize.NormalNegLogLikelihood(sample))
	fitted := lifedata.ParameterEstimate{
		Distribution: lifedata.Normal,
		Location:     res.X[0],
		Scale:        math.Exp(res.X[1]),
		N:            n,
		Estimator:    lifedata.EstimatorSimplex,
	}
	diag := lifedata.FitDiagnostics{
		Converged:  res.Converged,
		Iterations: res.Iterations,
		Residual:   res.Spread,
	}
	if !fitted.Valid() {
		diag.Converged = false
		diag.FellBack = true
		return MLEFit{Estimate: est, Diagnostics: diag}, nil
	}
	return MLEFit{Estimate: fitted, Diagnostics: diag}, nil
}

func closedForm(values []float64) (mean, sigma float64) {
	return stat.PopMeanStdDev(values, nil)
}

// CovarianceParams names the parameter pair of Covariance.
var CovarianceParams = [2]string{"a", "s"}

// Covariance is the asymptotic covariance diag(s^2/n, s^2/(2n)) of the
// mean and standard deviation.
func Covariance(est lifedata.ParameterEstimate) lifedata.Covariance {
	n := float64(est.N)
	s2 := est.Scale * est.Scale
	return lifedata.Covariance{
		Params: CovarianceParams,
		Matrix: [2][2]float64{{s2 / n, 0}, {0, s2 / (2 * n)}},
		NEff:   est.N,
	}
}

// QuantileBand returns x_p -+ 1.96 sd(x_p) with var(x_p) = V00 + z^2 V11 + 2z V01
// on the grid; for the diagonal covariance this is s/sqrt(n)*sqrt(1 + z^2/2).
func QuantileBand(est lifedata.ParameterEstimate, cov lifedata.Covariance, grid []float64) lifedata.ConfidenceBand {
	band := lifedata.ConfidenceBand{
		P:      append([]float64(nil), grid...),
		Lower:  make([]float64, len(grid)),
		Center: make([]float64, len(grid)),
		Upper:  make([]float64, len(grid)),
	}
	v := cov.Matrix
	for i, p := range grid {
		z := dist.NormalQuantile(p)
		xp := est.Location + est.Scale*z
		sd := math.Sqrt(math.Max(0, v[0][0]+z*z*v[1][1]+2*z*v[0][1]))
		band.Center[i] = xp
		band.Lower[i] = xp - lifedata.BandMultiplier*sd
		band.Upper[i] = xp + lifedata.BandMultiplier*sd
	}
	return band
}
