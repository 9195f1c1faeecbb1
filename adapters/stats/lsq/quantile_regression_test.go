package lsq

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifestat/domain/core"
	"lifestat/domain/lifedata"
	"lifestat/internal/testkit"
)

func TestNormal_RecoversParameters(t *testing.T) {
	sample := testkit.NormalQuantiles(100, 10, 200)

	fit, err := Normal(sample)
	require.NoError(t, err)

	assert.Equal(t, lifedata.EstimatorWLS, fit.Estimate.Estimator)
	assert.InEpsilon(t, 100, fit.Estimate.Location, 0.02)
	assert.InEpsilon(t, 10, fit.Estimate.Scale, 0.15)
	assert.Equal(t, 200, fit.M)
	assert.Greater(t, fit.SSZ, 0.0)
	assert.Greater(t, fit.SumW, 0.0)
}

func TestWeibull_RecoversParameters(t *testing.T) {
	sample := testkit.WeibullQuantiles(100, 2, 200)

	fit, err := Weibull(sample)
	require.NoError(t, err)

	assert.InEpsilon(t, 100, fit.Estimate.Scale, 0.05)
	assert.InEpsilon(t, 2, fit.Estimate.Shape, 0.1)
	assert.InDelta(t, 1/fit.Estimate.Shape, fit.Slope, 1e-12)
	assert.InDelta(t, math.Log(fit.Estimate.Scale), fit.Intercept, 1e-12)
}

func TestFits_RequireThreeEventTimes(t *testing.T) {
	sample, err := lifedata.NewSample([]float64{1, 2, 2, 5}, []int{0, 0, 0, 1})
	require.NoError(t, err)

	_, err = Normal(sample)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))

	_, err = Weibull(sample)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}

func TestWeibull_RejectsNonPositive(t *testing.T) {
	sample, err := lifedata.NewSample([]float64{0, 1, 2, 3}, nil)
	require.NoError(t, err)

	_, err = Weibull(sample)
	assert.True(t, errors.Is(err, core.ErrMalformedInput))
}

func TestResidualSE_MatchesWeightedResiduals(t *testing.T) {
	sample, err := lifedata.NewSample([]float64{12, 15, 9, 20, 17, 11, 14}, []int{0, 0, 0, 1, 0, 0, 0})
	require.NoError(t, err)

	fit, err := Normal(sample)
	require.NoError(t, err)

	wssr := 0.0
	for i, p := range fit.Curve {
		w := 1 / math.Max(minWeightDenominator, p.F*(1-p.F))
		r := p.X - (fit.Intercept + fit.Slope*fit.Z[i])
		wssr += w * r * r
	}
	assert.InDelta(t, math.Sqrt(wssr/float64(fit.M-2)), fit.ResidualSE, 1e-9)
}

func TestBand_WidestAtTails(t *testing.T) {
	cfg := testkit.DefaultNormalConfig()
	cfg.Location, cfg.Scale, cfg.N, cfg.CensorAbove = 50, 5, 30, 60
	fit, err := Normal(testkit.NewLifetimeGenerator(cfg).Quantiles())
	require.NoError(t, err)

	band := fit.Band(lifedata.ReportGrid)

	mid := 7 // p = 0.5
	width := func(i int) float64 { return band.Upper[i] - band.Lower[i] }
	assert.Greater(t, width(0), width(mid))
	assert.Greater(t, width(len(band.P)-1), width(mid))
	for i := range band.P {
		assert.Less(t, band.Lower[i], band.Center[i])
		assert.Greater(t, band.Upper[i], band.Center[i])
		assert.InDelta(t, lifedata.BandMultiplier*fit.PredictionSE(fit.StandardizedQuantile(band.P[i])),
			band.Upper[i]-band.Center[i], 1e-9)
	}
}

func TestWeibullBand_Positive(t *testing.T) {
	fit, err := Weibull(testkit.WeibullQuantiles(10, 1.2, 25))
	require.NoError(t, err)

	band := fit.Band(lifedata.ReportGrid)
	for i := range band.P {
		assert.Greater(t, band.Lower[i], 0.0)
		assert.Less(t, band.Lower[i], band.Center[i])
		assert.InEpsilon(t, fit.Estimate.Quantile(band.P[i]), band.Center[i], 1e-9)
	}
}
