package lifedata

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot/plotter"

	"lifestat/domain/core"
)

// ============================================================================
// SAMPLE
// ============================================================================

// Observation is one lifetime value. Censored observations are right-censored
// (Type I): the unit survived past Value.
type Observation struct {
	Value    float64 `json:"value"`
	Censored bool    `json:"censored"`
}

// Sample is an ordered sequence of observations. It is built once per
// analysis and never mutated afterwards; every accessor returns a copy.
type Sample struct {
	obs []Observation
}

// NewSample builds a sample from parallel value and flag arrays.
// Flag 0 marks a failure (event), flag 1 a censored observation.
func NewSample(values []float64, flags []int) (Sample, error) {
	if len(values) == 0 {
		return Sample{}, fmt.Errorf("%w: empty sample", core.ErrInsufficientData)
	}
	if flags != nil && len(flags) != len(values) {
		return Sample{}, fmt.Errorf("%w: %d values but %d censoring flags",
			core.ErrMalformedInput, len(values), len(flags))
	}

	obs := make([]Observation, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Sample{}, fmt.Errorf("%w: value %d is not finite", core.ErrMalformedInput, i)
		}
		censored := false
		if flags != nil {
			switch flags[i] {
			case 0:
			case 1:
				censored = true
			default:
				return Sample{}, fmt.Errorf("%w: censoring flag %d at position %d must be 0 or 1",
					core.ErrMalformedInput, flags[i], i)
			}
		}
		obs[i] = Observation{Value: v, Censored: censored}
	}
	return Sample{obs: obs}, nil
}

// FromObservations wraps already-validated observations.
func FromObservations(obs []Observation) Sample {
	cp := make([]Observation, len(obs))
	copy(cp, obs)
	return Sample{obs: cp}
}

// Len returns the number of observations
func (s Sample) Len() int { return len(s.obs) }

// Observations returns a copy of the observations in input order.
func (s Sample) Observations() []Observation {
	cp := make([]Observation, len(s.obs))
	copy(cp, s.obs)
	return cp
}

// Values returns the observation values in input order.
func (s Sample) Values() []float64 {
	out := make([]float64, len(s.obs))
	for i, o := range s.obs {
		out[i] = o.Value
	}
	return out
}

// Flags returns the censoring flags (0 event, 1 censored) in input order.
func (s Sample) Flags() []int {
	out := make([]int, len(s.obs))
	for i, o := range s.obs {
		if o.Censored {
			out[i] = 1
		}
	}
	return out
}

// Sorted returns the observations ordered by value. Ties keep input order.
func (s Sample) Sorted() []Observation {
	out := s.Observations()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Events returns the values of the non-censored observations in input order.
func (s Sample) Events() []float64 {
	out := make([]float64, 0, len(s.obs))
	for _, o := range s.obs {
		if !o.Censored {
			out = append(out, o.Value)
		}
	}
	return out
}

// EventCount returns the number of failures.
func (s Sample) EventCount() int {
	n := 0
	for _, o := range s.obs {
		if !o.Censored {
			n++
		}
	}
	return n
}

// HasCensoring reports whether any observation is censored.
func (s Sample) HasCensoring() bool {
	return s.EventCount() != len(s.obs)
}

// ============================================================================
// EMPIRICAL CURVE
// ============================================================================

// CurvePoint is one step of an empirical failure-probability curve.
type CurvePoint struct {
	X float64 `json:"x"`
	F float64 `json:"f"`
}

// EmpiricalCurve holds one point per distinct event value, strictly
// increasing in X and non-decreasing in F.
type EmpiricalCurve []CurvePoint

// Xs returns the event values.
func (c EmpiricalCurve) Xs() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.X
	}
	return out
}

// Fs returns the cumulative failure probabilities.
func (c EmpiricalCurve) Fs() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.F
	}
	return out
}

// ============================================================================
// ESTIMATES
// ============================================================================

// Distribution names a fitted lifetime family.
type Distribution string

const (
	Normal  Distribution = "normal"
	Weibull Distribution = "weibull"
)

// Estimator names the algorithm that produced an estimate.
type Estimator string

const (
	EstimatorClosedForm Estimator = "closed-form"
	EstimatorSimplex    Estimator = "simplex"
	EstimatorNewton     Estimator = "newton"
	EstimatorRegression Estimator = "regression"
	EstimatorDefault    Estimator = "default"
	EstimatorWLS        Estimator = "weighted-least-squares"
)

// ParameterEstimate is a fitted two-parameter distribution.
// Normal uses Location (mean) and Scale (standard deviation);
// Weibull uses Scale (characteristic life c) and Shape (b).
type ParameterEstimate struct {
	Distribution Distribution `json:"distribution"`
	Location     float64      `json:"location,omitempty"`
	Scale        float64      `json:"scale"`
	Shape        float64      `json:"shape,omitempty"`
	N            int          `json:"n"`
	Estimator    Estimator    `json:"estimator"`
}

// Valid reports whether the parameters are finite and the scale (and shape,
// for Weibull) strictly positive.
func (e ParameterEstimate) Valid() bool {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	if !finite(e.Location) || !finite(e.Scale) || !finite(e.Shape) || e.Scale <= 0 {
		return false
	}
	if e.Distribution == Weibull && e.Shape <= 0 {
		return false
	}
	return true
}

// Quantile returns the p-quantile of the fitted distribution.
func (e ParameterEstimate) Quantile(p float64) float64 {
	switch e.Distribution {
	case Weibull:
		return e.Scale * math.Pow(-math.Log(1-p), 1/e.Shape)
	default:
		return e.Location + e.Scale*distuv.UnitNormal.Quantile(p)
	}
}

// CDF returns the fitted failure probability at x.
func (e ParameterEstimate) CDF(x float64) float64 {
	switch e.Distribution {
	case Weibull:
		if x <= 0 {
			return 0
		}
		return 1 - math.Exp(-math.Pow(x/e.Scale, e.Shape))
	default:
		return distuv.UnitNormal.CDF((x - e.Location) / e.Scale)
	}
}

// Covariance is a symmetric 2x2 covariance over a named parameter pair.
type Covariance struct {
	Params [2]string     `json:"params"`
	Matrix [2][2]float64 `json:"matrix"`
	NEff   int           `json:"n_eff"`
	// Default is set when the matrix is the identity placeholder returned for
	// too few events; it carries no precision information.
	Default bool `json:"default,omitempty"`
}

// FitDiagnostics reports how an iterative estimator terminated.
type FitDiagnostics struct {
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
	Residual   float64 `json:"residual"`
	// FellBack is set when the primary estimator produced invalid parameters
	// and the regression estimator was used instead.
	FellBack bool `json:"fell_back,omitempty"`
}

// ConfidenceBand is a lower/center/upper triple over a probability grid.
type ConfidenceBand struct {
	P      []float64 `json:"p"`
	Lower  []float64 `json:"lower"`
	Center []float64 `json:"center"`
	Upper  []float64 `json:"upper"`
}

// ReportGrid is the probability grid used for quantile bands in reports.
var ReportGrid = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.2, 0.3, 0.5, 0.7, 0.8, 0.9, 0.95, 0.975, 0.99, 0.995}

// BandMultiplier is the two-sided 95% critical multiplier used for every
// quantile band. It is fixed and not tied to any caller significance level.
const BandMultiplier = 1.96

// ProbitOffset shifts standardized quantiles onto the classic probability
// paper scale used by the graph series.
const ProbitOffset = 5.0

// ============================================================================
// GRAPH BOUNDARY
// ============================================================================

// GraphSeries is one named set of points for an external renderer.
type GraphSeries struct {
	Name    string      `json:"name"`
	Points  plotter.XYs `json:"points"`
	Scatter bool        `json:"scatter"`
}

// Standard series names shared by every distribution fit.
const (
	SeriesEvents   = "Events"
	SeriesCensored = "Censored"
	SeriesFit      = "Fit"
	SeriesLowerCI  = "Lower CI"
	SeriesUpperCI  = "Upper CI"
)
