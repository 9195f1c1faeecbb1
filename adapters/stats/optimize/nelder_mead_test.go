package optimize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/optimize"

	"lifestat/domain/lifedata"
)

func rosenbrock(x []float64) float64 {
	a := 1 - x[0]
	b := x[1] - x[0]*x[0]
	return a*a + 100*b*b
}

func bowl(x []float64) float64 {
	return (x[0]-3)*(x[0]-3) + 2*(x[1]+1)*(x[1]+1)
}

func TestNelderMead_Quadratic(t *testing.T) {
	res := NelderMead([]float64{0, 0}, 1e-12, bowl)

	assert.True(t, res.Converged)
	assert.InDelta(t, 3.0, res.X[0], 1e-4)
	assert.InDelta(t, -1.0, res.X[1], 1e-4)
	assert.Less(t, res.Iterations, MaxIterations)
}

func TestNelderMead_Rosenbrock(t *testing.T) {
	res := NelderMead([]float64{-1.2, 1}, 1e-14, rosenbrock)

	assert.InDelta(t, 1.0, res.X[0], 1e-2)
	assert.InDelta(t, 1.0, res.X[1], 1e-2)
	assert.Less(t, res.F, 1e-4)
}

func TestNelderMead_IterationCap(t *testing.T) {
	res := NelderMead([]float64{5, 5}, 0, bowl)

	assert.False(t, res.Converged)
	assert.Equal(t, MaxIterations, res.Iterations)
	assert.Less(t, res.F, bowl([]float64{5, 5}))
}

func TestNelderMead_DoesNotModifyStart(t *testing.T) {
	x0 := []float64{2, 0}
	NelderMead(x0, 1e-10, bowl)
	assert.Equal(t, []float64{2, 0}, x0)
}

func TestNelderMead_AgreesWithGonum(t *testing.T) {
	ours := NelderMead([]float64{1, 1}, 1e-14, bowl)

	ref, err := optimize.Minimize(optimize.Problem{Func: bowl}, []float64{1, 1}, nil, &optimize.NelderMead{})
	require.NoError(t, err)

	assert.InDelta(t, ref.F, ours.F, 1e-6)
	assert.InDelta(t, ref.X[0], ours.X[0], 1e-3)
	assert.InDelta(t, ref.X[1], ours.X[1], 1e-3)
}

func TestNormalNegLogLikelihood_MatchesClosedForm(t *testing.T) {
	values := []float64{4.1, 5.3, 4.8, 6.0, 5.5, 4.4, 5.1, 5.9}
	sample, err := lifedata.NewSample(values, nil)
	require.NoError(t, err)

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	ss := 0.0
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	sigma := math.Sqrt(ss / float64(len(values)))

	res := NelderMead([]float64{5, 0}, 1e-14, NormalNegLogLikelihood(sample))

	assert.InDelta(t, mean, res.X[0], 1e-3)
	assert.InDelta(t, sigma, math.Exp(res.X[1]), 1e-3)
}

func TestWeibullNegLogLikelihood_RejectsNonPositive(t *testing.T) {
	sample, err := lifedata.NewSample([]float64{-1, 2, 3}, nil)
	require.NoError(t, err)

	f := WeibullNegLogLikelihood(sample)
	assert.True(t, math.IsInf(f([]float64{1, 0}), 1))
}
