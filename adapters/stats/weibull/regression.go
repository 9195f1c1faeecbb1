// Package weibull fits two-parameter Weibull distributions to right-censored
// lifetime samples.
package weibull

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"lifestat/adapters/stats/survival"
	"lifestat/domain/lifedata"
)

// Limits on the Kaplan-Meier points used by the regression estimator.
const (
	minRegressionF = 1e-6
	maxRegressionF = 0.999
)

// Sentinel parameters returned when fewer than two usable points remain.
const (
	DefaultScale = 10000.0
	DefaultShape = 1.0
)

// RegressionFit is the outcome of the log-log regression estimator.
type RegressionFit struct {
	Estimate lifedata.ParameterEstimate `json:"estimate"`
	// Points is the number of Kaplan-Meier points used in the regression.
	Points int `json:"points"`
	// ResidualSE is the residual standard error on the ln(-ln(1-F)) scale.
	ResidualSE float64 `json:"residual_se"`
}

// Regression estimates Weibull parameters by ordinary least squares of
// ln(-ln(1-F)) on ln x over Kaplan-Meier points with F in (1e-6, 0.999).
// With fewer than two usable points it returns scale 10000 and shape 1.
func Regression(sample lifedata.Sample) RegressionFit {
	curve := survival.KaplanMeier(sample)

	lx := make([]float64, 0, len(curve))
	ly := make([]float64, 0, len(curve))
	for _, p := range curve {
		if p.F <= minRegressionF || p.F >= maxRegressionF || p.X <= 0 {
			continue
		}
		lx = append(lx, math.Log(p.X))
		ly = append(ly, math.Log(-math.Log(1-p.F)))
	}

	if len(lx) < 2 {
		return RegressionFit{
			Estimate: lifedata.ParameterEstimate{
				Distribution: lifedata.Weibull,
				Scale:        DefaultScale,
				Shape:        DefaultShape,
				N:            sample.Len(),
				Estimator:    lifedata.EstimatorDefault,
			},
			Points: len(lx),
		}
	}

	alpha, beta := stat.LinearRegression(lx, ly, nil, false)

	residualSE := 0.0
	if len(lx) > 2 {
		ss := 0.0
		for i := range lx {
			r := ly[i] - (alpha + beta*lx[i])
			ss += r * r
		}
		residualSE = math.Sqrt(ss / float64(len(lx)-2))
	}

	return RegressionFit{
		Estimate: lifedata.ParameterEstimate{
			Distribution: lifedata.Weibull,
			Scale:        math.Exp(-alpha / beta),
			Shape:        beta,
			N:            sample.Len(),
			Estimator:    lifedata.EstimatorRegression,
		},
		Points:     len(lx),
		ResidualSE: residualSE,
	}
}
