package lifedata

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifestat/domain/core"
)

func TestNewSample_Validation(t *testing.T) {
	_, err := NewSample(nil, nil)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))

	_, err = NewSample([]float64{1, 2}, []int{0})
	assert.True(t, errors.Is(err, core.ErrMalformedInput))

	_, err = NewSample([]float64{1, 2}, []int{0, 2})
	assert.True(t, errors.Is(err, core.ErrMalformedInput))

	_, err = NewSample([]float64{1, math.NaN()}, nil)
	assert.True(t, errors.Is(err, core.ErrMalformedInput))
}

func TestSample_Accessors(t *testing.T) {
	s, err := NewSample([]float64{30, 10, 20, 10}, []int{0, 1, 0, 0})
	require.NoError(t, err)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 3, s.EventCount())
	assert.True(t, s.HasCensoring())
	assert.Equal(t, []float64{30, 20, 10}, s.Events())

	sorted := s.Sorted()
	assert.Equal(t, Observation{Value: 10, Censored: true}, sorted[0])
	assert.Equal(t, Observation{Value: 10}, sorted[1])

	vals := s.Values()
	vals[0] = -1
	assert.Equal(t, 30.0, s.Values()[0])
}

func TestParameterEstimate_QuantileInvertsCDF(t *testing.T) {
	estimates := []ParameterEstimate{
		{Distribution: Weibull, Scale: 100, Shape: 1.7},
		{Distribution: Normal, Location: 50, Scale: 4},
	}
	for _, e := range estimates {
		require.True(t, e.Valid())
		for _, p := range ReportGrid {
			assert.InDelta(t, p, e.CDF(e.Quantile(p)), 1e-9, "%s p=%v", e.Distribution, p)
		}
	}

	assert.False(t, ParameterEstimate{Distribution: Weibull, Scale: 1, Shape: 0}.Valid())
	assert.False(t, ParameterEstimate{Distribution: Normal, Scale: math.Inf(1)}.Valid())
	assert.Equal(t, 0.0, ParameterEstimate{Distribution: Weibull, Scale: 1, Shape: 1}.CDF(-1))
}

func TestEmpiricalCurveColumns(t *testing.T) {
	c := EmpiricalCurve{{X: 1, F: 0.25}, {X: 3, F: 0.5}}
	assert.Equal(t, []float64{1, 3}, c.Xs())
	assert.Equal(t, []float64{0.25, 0.5}, c.Fs())
}
