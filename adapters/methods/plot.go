package methods

import (
	"math"

	"gonum.org/v1/plot/plotter"

	"lifestat/adapters/stats/dist"
	"lifestat/adapters/stats/normal"
	"lifestat/adapters/stats/survival"
	"lifestat/adapters/stats/weibull"
	"lifestat/domain/lifedata"
)

// LinePoints is the number of points in each fitted line and band series.
const LinePoints = 101

// Probability ranges spanned by the fitted lines.
var (
	normalLineRange  = [2]float64{0.001, 0.999}
	weibullLineRange = [2]float64{0.005, 0.995}
)

// Plot derives the graph series of a distribution fit, in the order Events,
// Censored, Fit, Lower CI, Upper CI. The y axis is 5 + z where z is the
// standardized quantile of the fitted family. Hypothesis tests have no graph
// and yield an empty slice.
func Plot(r FitResult) []lifedata.GraphSeries {
	if !r.Kind.HasGraph() || r.Distribution == nil {
		return []lifedata.GraphSeries{}
	}
	d := r.Distribution
	sample := d.Sample()
	zOf := standardizer(d.Estimate.Distribution)

	var events, censored plotter.XYs
	switch r.Kind {
	case KindMLENormal, KindMLEWeibull:
		events, censored = orderPositions(sample, d.Estimate.Distribution)
	default:
		// Events at their Kaplan-Meier position, censored points on the fitted line.
		for _, p := range survival.KaplanMeier(sample) {
			if p.F >= 1 {
				continue
			}
			events = append(events, plotter.XY{X: p.X, Y: lifedata.ProbitOffset + zOf(p.F)})
		}
		for _, o := range sample.Sorted() {
			if o.Censored {
				censored = append(censored, plotter.XY{X: o.Value, Y: lifedata.ProbitOffset + fittedZ(d.Estimate, o.Value)})
			}
		}
	}

	band := lineBand(r.Kind, d, sample)
	fit := make(plotter.XYs, len(band.P))
	lower := make(plotter.XYs, len(band.P))
	upper := make(plotter.XYs, len(band.P))
	for i, p := range band.P {
		y := lifedata.ProbitOffset + zOf(p)
		fit[i] = plotter.XY{X: band.Center[i], Y: y}
		lower[i] = plotter.XY{X: band.Lower[i], Y: y}
		upper[i] = plotter.XY{X: band.Upper[i], Y: y}
	}

	return []lifedata.GraphSeries{
		{Name: lifedata.SeriesEvents, Points: nonNil(events), Scatter: true},
		{Name: lifedata.SeriesCensored, Points: nonNil(censored), Scatter: true},
		{Name: lifedata.SeriesFit, Points: fit},
		{Name: lifedata.SeriesLowerCI, Points: lower},
		{Name: lifedata.SeriesUpperCI, Points: upper},
	}
}

// orderPositions places every ordered observation at its Blom (Normal) or
// Benard (Weibull) position among all n observations.
func orderPositions(sample lifedata.Sample, family lifedata.Distribution) (events, censored plotter.XYs) {
	sorted := sample.Sorted()
	n := len(sorted)
	for i, o := range sorted {
		var z float64
		if family == lifedata.Weibull {
			z = dist.WeibullZ(dist.WeibullPosition(i, n))
		} else {
			z = dist.NormalQuantile(dist.NormalPosition(i, n))
		}
		pt := plotter.XY{X: o.Value, Y: lifedata.ProbitOffset + z}
		if o.Censored {
			censored = append(censored, pt)
		} else {
			events = append(events, pt)
		}
	}
	return events, censored
}

func lineBand(kind Kind, d *DistributionFit, sample lifedata.Sample) lifedata.ConfidenceBand {
	rng := normalLineRange
	if d.Estimate.Distribution == lifedata.Weibull {
		rng = weibullLineRange
	}
	grid := make([]float64, LinePoints)
	for i := range grid {
		grid[i] = rng[0] + float64(i)*(rng[1]-rng[0])/float64(LinePoints-1)
	}

	switch kind {
	case KindMLENormal:
		return normal.QuantileBand(d.Estimate, *d.Covariance, grid)
	case KindMLEWeibull:
		return weibull.QuantileBand(d.Estimate, *d.Covariance, grid)
	default:
		return d.Regression.Band(grid)
	}
}

func standardizer(family lifedata.Distribution) func(p float64) float64 {
	if family == lifedata.Weibull {
		return dist.WeibullZ
	}
	return dist.NormalQuantile
}

// fittedZ is the standardized quantile of x under the fitted distribution.
func fittedZ(est lifedata.ParameterEstimate, x float64) float64 {
	if est.Distribution == lifedata.Weibull {
		return est.Shape * math.Log(x/est.Scale)
	}
	return (x - est.Location) / est.Scale
}

func nonNil(xy plotter.XYs) plotter.XYs {
	if xy == nil {
		return plotter.XYs{}
	}
	return xy
}
