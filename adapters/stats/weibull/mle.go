package weibull

import (
	"math"

	"lifestat/domain/lifedata"
)

// Newton iteration limits for the shape equation.
const (
	MaxNewtonIterations = 100
	NewtonTolerance     = 1e-7
)

// MLEFit is a maximum-likelihood estimate together with how it was reached.
type MLEFit struct {
	Estimate    lifedata.ParameterEstimate `json:"estimate"`
	Diagnostics lifedata.FitDiagnostics    `json:"diagnostics"`
}

// NewtonShape solves the Weibull profile-likelihood equation for the shape b
// with Newton-Raphson from b0, using only the event values. It returns the
// final shape, the number of iterations, the magnitude of the last step and
// whether the step fell below tolerance.
func NewtonShape(events []float64, b0 float64) (b float64, iterations int, lastStep float64, converged bool) {
	logs := make([]float64, len(events))
	sumLog := 0.0
	for i, v := range events {
		logs[i] = math.Log(v)
		sumLog += logs[i]
	}
	meanLog := sumLog / float64(len(events))

	b = b0
	lastStep = math.Inf(1)
	for iterations < MaxNewtonIterations {
		iterations++
		s0, s1, s2 := 0.0, 0.0, 0.0
		for i, v := range events {
			vb := math.Pow(v, b)
			s0 += vb
			s1 += vb * logs[i]
			s2 += vb * logs[i] * logs[i]
		}
		f := meanLog - s1/s0 + 1/b
		df := -(s2*s0-s1*s1)/(s0*s0) - 1/(b*b)
		step := f / df
		b -= step
		lastStep = math.Abs(step)
		if lastStep < NewtonTolerance {
			converged = true
			break
		}
	}
	return b, iterations, lastStep, converged
}

// MLE fits Weibull parameters by maximum likelihood. The shape iteration
// starts from the regression estimate and the scale follows in closed form as
// c = (sum v^b / r)^(1/b) over the r event values. With fewer than two
// events, or when the iteration yields non-finite or non-positive parameters,
// the regression estimate is returned with FellBack set.
func MLE(sample lifedata.Sample) MLEFit {
	reg := Regression(sample)
	events := sample.Events()
	if len(events) < 2 {
		return MLEFit{
			Estimate:    reg.Estimate,
			Diagnostics: lifedata.FitDiagnostics{FellBack: true},
		}
	}

	b, iterations, lastStep, converged := NewtonShape(events, reg.Estimate.Shape)

	s0 := 0.0
	for _, v := range events {
		s0 += math.Pow(v, b)
	}
	est := lifedata.ParameterEstimate{
		Distribution: lifedata.Weibull,
		Scale:        math.Pow(s0/float64(len(events)), 1/b),
		Shape:        b,
		N:            sample.Len(),
		Estimator:    lifedata.EstimatorNewton,
	}

	diag := lifedata.FitDiagnostics{
		Converged:  converged,
		Iterations: iterations,
		Residual:   lastStep,
	}
	if !est.Valid() {
		diag.Converged = false
		diag.FellBack = true
		return MLEFit{Estimate: reg.Estimate, Diagnostics: diag}
	}
	return MLEFit{Estimate: est, Diagnostics: diag}
}
