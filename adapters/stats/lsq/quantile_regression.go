// Package lsq fits Normal and Weibull parameters by weighted least squares of
// order statistics on standardized plotting-position quantiles.
package lsq

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"lifestat/adapters/stats/dist"
	"lifestat/adapters/stats/survival"
	"lifestat/domain/core"
	"lifestat/domain/lifedata"
)

// MinPoints is the number of distinct event times a fit needs.
const MinPoints = 3

// minWeightDenominator bounds F(1-F) away from zero in the Normal weights.
const minWeightDenominator = 1e-12

// Fit is a regression estimate together with the moments needed for
// prediction bands. Regression runs in the response space: x for Normal,
// ln x for Weibull.
type Fit struct {
	Estimate lifedata.ParameterEstimate `json:"estimate"`
	Curve    lifedata.EmpiricalCurve    `json:"curve"`
	// Z holds the standardized quantile of each curve point.
	Z          []float64 `json:"z"`
	M          int       `json:"m"`
	Intercept  float64   `json:"intercept"`
	Slope      float64   `json:"slope"`
	ResidualSE float64   `json:"residual_se"`
	SumW       float64   `json:"sum_w"`
	MeanZ      float64   `json:"mean_z"`
	SSZ        float64   `json:"ss_z"`
}

// Normal regresses event values on Phi^-1((i+1-0.375)/(m+0.25)) with weights
// 1/(F(1-F)) from the Kaplan-Meier curve. Location is the intercept and
// scale the slope.
func Normal(sample lifedata.Sample) (Fit, error) {
	curve := survival.KaplanMeier(sample)
	m := len(curve)
	if m < MinPoints {
		return Fit{}, fmt.Errorf("%w: %d distinct event times, need %d", core.ErrInsufficientData, m, MinPoints)
	}

	z := make([]float64, m)
	x := make([]float64, m)
	w := make([]float64, m)
	for i, p := range curve {
		z[i] = dist.NormalQuantile(dist.NormalPosition(i, m))
		x[i] = p.X
		w[i] = 1 / math.Max(minWeightDenominator, p.F*(1-p.F))
	}

	fit := regress(z, x, w)
	fit.Curve = curve
	fit.Estimate = lifedata.ParameterEstimate{
		Distribution: lifedata.Normal,
		Location:     fit.Intercept,
		Scale:        fit.Slope,
		N:            sample.Len(),
		Estimator:    lifedata.EstimatorWLS,
	}
	if !fit.Estimate.Valid() {
		return Fit{}, fmt.Errorf("%w: regression slope %g", core.ErrDegenerateStatistic, fit.Slope)
	}
	return fit, nil
}

// Weibull regresses ln x on ln(-ln(1-(i+1-0.3)/(m+0.4))) with uniform weights.
// Shape is 1/slope and scale exp(intercept).
func Weibull(sample lifedata.Sample) (Fit, error) {
	curve := survival.KaplanMeier(sample)
	m := len(curve)
	if m < MinPoints {
		return Fit{}, fmt.Errorf("%w: %d distinct event times, need %d", core.ErrInsufficientData, m, MinPoints)
	}

	z := make([]float64, m)
	lx := make([]float64, m)
	w := make([]float64, m)
	for i, p := range curve {
		if p.X <= 0 {
			return Fit{}, fmt.Errorf("%w: Weibull lifetimes must be positive, got %g", core.ErrMalformedInput, p.X)
		}
		z[i] = dist.WeibullZ(dist.WeibullPosition(i, m))
		lx[i] = math.Log(p.X)
		w[i] = 1
	}

	fit := regress(z, lx, w)
	fit.Curve = curve
	fit.Estimate = lifedata.ParameterEstimate{
		Distribution: lifedata.Weibull,
		Scale:        math.Exp(fit.Intercept),
		Shape:        1 / fit.Slope,
		N:            sample.Len(),
		Estimator:    lifedata.EstimatorWLS,
	}
	if !fit.Estimate.Valid() {
		return Fit{}, fmt.Errorf("%w: regression slope %g", core.ErrDegenerateStatistic, fit.Slope)
	}
	return fit, nil
}

func regress(z, y, w []float64) Fit {
	m := len(z)
	intercept, slope := stat.LinearRegression(z, y, w, false)

	sumW := floats.Sum(w)
	meanZ := stat.Mean(z, w)
	ssz, wssr := 0.0, 0.0
	for i := range z {
		ssz += w[i] * (z[i] - meanZ) * (z[i] - meanZ)
		r := y[i] - (intercept + slope*z[i])
		wssr += w[i] * r * r
	}

	return Fit{
		Z:          z,
		M:          m,
		Intercept:  intercept,
		Slope:      slope,
		ResidualSE: math.Sqrt(wssr / float64(m-2)),
		SumW:       sumW,
		MeanZ:      meanZ,
		SSZ:        ssz,
	}
}

// PredictionSE is s_res * sqrt(1 + 1/sum w + (z - zbar)^2 / SS_z) in the
// response space of the fit.
func (f Fit) PredictionSE(z float64) float64 {
	return f.ResidualSE * math.Sqrt(1+1/f.SumW+(z-f.MeanZ)*(z-f.MeanZ)/f.SSZ)
}

// StandardizedQuantile maps a probability to the fit's z scale.
func (f Fit) StandardizedQuantile(p float64) float64 {
	if f.Estimate.Distribution == lifedata.Weibull {
		return dist.WeibullZ(p)
	}
	return dist.NormalQuantile(p)
}

// Band returns the 1.96 prediction band over grid. Weibull bands are formed
// on ln x and mapped back with exp.
func (f Fit) Band(grid []float64) lifedata.ConfidenceBand {
	band := lifedata.ConfidenceBand{
		P:      append([]float64(nil), grid...),
		Lower:  make([]float64, len(grid)),
		Center: make([]float64, len(grid)),
		Upper:  make([]float64, len(grid)),
	}
	for i, p := range grid {
		z := f.StandardizedQuantile(p)
		yHat := f.Intercept + f.Slope*z
		half := lifedata.BandMultiplier * f.PredictionSE(z)
		lo, hi := yHat-half, yHat+half
		if f.Estimate.Distribution == lifedata.Weibull {
			yHat, lo, hi = math.Exp(yHat), math.Exp(lo), math.Exp(hi)
		}
		band.Center[i] = yHat
		band.Lower[i] = lo
		band.Upper[i] = hi
	}
	return band
}
