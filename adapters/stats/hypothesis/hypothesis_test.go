package hypothesis

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifestat/adapters/stats/dist"
	"lifestat/domain/core"
)

func TestAnova_RejectsSeparatedMeans(t *testing.T) {
	res, err := Anova(AnovaRequest{Groups: [][]float64{
		{4.99, 5.00, 5.01},
		{9.99, 10.00, 10.01},
		{14.99, 15.00, 15.01},
	}})
	require.NoError(t, err)

	assert.Equal(t, 3, res.K)
	assert.Equal(t, 2, res.DF1)
	assert.Equal(t, 6, res.DF2)
	assert.InDelta(t, 10.0, res.GrandMean, 1e-12)
	assert.InDelta(t, 5.1433, res.FCrit, 1e-3)
	assert.Greater(t, res.FObs, res.FCrit)
	assert.True(t, res.Reject)
}

func TestAnova_AcceptsEqualMeans(t *testing.T) {
	res, err := Anova(AnovaRequest{Groups: [][]float64{
		{4, 5, 6},
		{5, 4, 6},
		{6, 5, 4},
	}})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, res.FObs, 1e-12)
	assert.False(t, res.Reject)
}

func TestAnova_Errors(t *testing.T) {
	_, err := Anova(AnovaRequest{Groups: [][]float64{{1, 2, 3}}})
	assert.True(t, errors.Is(err, core.ErrInsufficientData))

	_, err = Anova(AnovaRequest{Groups: [][]float64{{1}, {2}}})
	assert.True(t, errors.Is(err, core.ErrInsufficientData))

	_, err = Anova(AnovaRequest{Groups: [][]float64{{1, 1}, {2, 2}}})
	assert.True(t, errors.Is(err, core.ErrDegenerateStatistic))
}

func TestFisherStudent_EqualVariancesPooled(t *testing.T) {
	res, err := FisherStudent(FisherStudentRequest{
		Alpha:   0.05,
		Sample1: []float64{1.0, 1.2, 0.9, 1.1, 0.8, 1.0},
		Sample2: []float64{1.1, 1.3, 1.0, 1.2, 0.9, 1.1},
	})
	require.NoError(t, err)

	assert.True(t, res.EqualVariances)
	assert.False(t, res.Welch)
	assert.Equal(t, 10.0, res.TDF)
	assert.InDelta(t, 2.2281, res.TCrit, 1e-3)
	assert.True(t, res.EqualMeans)
	assert.GreaterOrEqual(t, res.FObs, 1.0)
}

func TestFisherStudent_WelchOnUnequalVariances(t *testing.T) {
	res, err := FisherStudent(FisherStudentRequest{
		Alpha:   0.05,
		Sample1: []float64{10.0, 10.1, 9.9, 10.05, 9.95, 10.0, 10.02, 9.98},
		Sample2: []float64{5, 15, 2, 18, 8, 12, 1, 19},
	})
	require.NoError(t, err)

	assert.False(t, res.EqualVariances)
	assert.True(t, res.Welch)
	assert.Equal(t, 7.0, res.FDF1)
	assert.Less(t, res.TDF, 14.0)
	assert.Greater(t, res.TDF, 6.0)
}

func TestFisherStudent_DetectsShiftedMeans(t *testing.T) {
	res, err := FisherStudent(FisherStudentRequest{
		Alpha:   0.05,
		Sample1: []float64{1.0, 1.2, 0.9, 1.1, 0.8, 1.0},
		Sample2: []float64{3.1, 3.3, 3.0, 3.2, 2.9, 3.1},
	})
	require.NoError(t, err)

	assert.Less(t, res.TObs, -res.TCrit)
	assert.False(t, res.EqualMeans)
}

func TestGrubbs_FlagsOutlier(t *testing.T) {
	rest := []float64{10.0, 10.1, 9.9, 10.2, 9.8, 10.05, 9.95, 10.1, 9.9}
	d, err := describe(rest)
	require.NoError(t, err)
	sample := append(append([]float64(nil), rest...), d.Mean+10*d.SD)

	res, err := Grubbs(GrubbsRequest{Mode: GrubbsTwoSided, Alpha: 0.05, Sample: sample})
	require.NoError(t, err)

	assert.Greater(t, res.UObs, res.UCrit)
	assert.True(t, res.Reject)
	assert.Equal(t, 10, res.N)
}

func TestGrubbs_ModesAndCriticalValues(t *testing.T) {
	sample := []float64{2.1, 2.3, 1.9, 2.0, 2.2, 2.4, 1.8, 2.05}

	two, err := Grubbs(GrubbsRequest{Mode: GrubbsTwoSided, Alpha: 0.05, Sample: sample})
	require.NoError(t, err)
	upper, err := Grubbs(GrubbsRequest{Mode: GrubbsMax, Alpha: 0.05, Sample: sample})
	require.NoError(t, err)
	lower, err := Grubbs(GrubbsRequest{Mode: GrubbsMin, Alpha: 0.05, Sample: sample})
	require.NoError(t, err)

	assert.Equal(t, math.Max(upper.UObs, lower.UObs), two.UObs)
	// A one-sided test spends all of alpha on one tail.
	assert.Less(t, upper.UCrit, two.UCrit)
	assert.Equal(t, upper.UCrit, lower.UCrit)
	assert.False(t, two.Reject)

	// u_crit never exceeds the attainable maximum (n-1)/sqrt(n).
	assert.Less(t, two.UCrit, 7/math.Sqrt(8))
}

func TestGrubbs_Errors(t *testing.T) {
	_, err := Grubbs(GrubbsRequest{Alpha: 0.05, Sample: []float64{1, 2}})
	assert.True(t, errors.Is(err, core.ErrInsufficientData))

	_, err = Grubbs(GrubbsRequest{Mode: 3, Alpha: 0.05, Sample: []float64{1, 2, 3}})
	assert.True(t, errors.Is(err, core.ErrMalformedInput))

	_, err = Grubbs(GrubbsRequest{Alpha: 0.05, Sample: []float64{4, 4, 4}})
	assert.True(t, errors.Is(err, core.ErrDegenerateStatistic))

	_, err = Grubbs(GrubbsRequest{Alpha: 1.5, Sample: []float64{1, 2, 3}})
	assert.True(t, errors.Is(err, core.ErrMalformedInput))
}

func TestShapiroWilk_NormalOrderStatistics(t *testing.T) {
	sample := make([]float64, 10)
	for i := range sample {
		sample[i] = dist.NormalQuantile(dist.NormalPosition(i, 10))
	}

	res, err := ShapiroWilk(ShapiroWilkRequest{Sample: sample})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.WObs, 1e-9)
	assert.Equal(t, 0.842, res.WCrit)
	assert.False(t, res.Reject)
}

func TestShapiroWilk_RejectsSkewedSample(t *testing.T) {
	res, err := ShapiroWilk(ShapiroWilkRequest{Sample: []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 50}})
	require.NoError(t, err)

	assert.Less(t, res.WObs, res.WCrit)
	assert.True(t, res.Reject)
}

func TestShapiroWilkCritical_Table(t *testing.T) {
	assert.Equal(t, 0.767, ShapiroWilkCritical(3))
	assert.Equal(t, 0.947, ShapiroWilkCritical(50))
	assert.Equal(t, 0.947, ShapiroWilkCritical(500))
	assert.Equal(t, 0.0, ShapiroWilkCritical(2))
}

func TestWilcoxon_IdenticalSamples(t *testing.T) {
	s := []float64{3.2, 1.5, 4.8, 2.2, 5.9}

	res, err := Wilcoxon(WilcoxonRequest{Alpha: 0.05, Sample1: s, Sample2: s})
	require.NoError(t, err)

	assert.Equal(t, res.MuW, res.WObs)
	assert.Equal(t, 27.5, res.WObs)
	assert.False(t, res.Reject)
	assert.Equal(t, 1, res.SmallerGroup)
	assert.True(t, res.SmallSample)
}

func TestWilcoxon_RejectsSeparatedSamples(t *testing.T) {
	res, err := Wilcoxon(WilcoxonRequest{
		Alpha:   0.05,
		Sample1: []float64{1, 2, 3, 4, 5, 6, 7},
		Sample2: []float64{11, 12, 13, 14, 15, 16, 17, 18},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.SmallerGroup)
	assert.Equal(t, 28.0, res.WObs)
	assert.Less(t, res.WObs, res.WLow)
	assert.True(t, res.Reject)
	require.NotNil(t, res.PValue)
	assert.Less(t, *res.PValue, 0.01)
}

func TestWilcoxon_SmallerSecondGroup(t *testing.T) {
	res, err := Wilcoxon(WilcoxonRequest{
		Alpha:   0.05,
		Sample1: []float64{1, 3, 5, 7, 9, 11},
		Sample2: []float64{2, 4, 6},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.SmallerGroup)
	assert.Equal(t, 2+4+6.0, res.WObs)
	assert.Equal(t, 15.0, res.MuW)
	assert.Equal(t, 9, res.Total)
}

func TestWilcoxon_Errors(t *testing.T) {
	_, err := Wilcoxon(WilcoxonRequest{Alpha: 0.05, Sample1: []float64{1}})
	assert.True(t, errors.Is(err, core.ErrInsufficientData))

	_, err = Wilcoxon(WilcoxonRequest{Alpha: 0, Sample1: []float64{1}, Sample2: []float64{2}})
	assert.True(t, errors.Is(err, core.ErrMalformedInput))
}

func TestGrubbsCritical_TwoSidedIsStricter(t *testing.T) {
	for _, n := range []int{5, 10, 30} {
		two := GrubbsCritical(n, 0.05, false)
		one := GrubbsCritical(n, 0.05, true)
		if !(two > one) {
			t.Errorf("n=%d: two-sided critical %v should exceed one-sided %v", n, two, one)
		}
	}
	// Textbook two-sided value for n=10, alpha=0.05 is 2.290.
	if got := GrubbsCritical(10, 0.05, false); math.Abs(got-2.290) > 0.002 {
		t.Errorf("GrubbsCritical(10, 0.05, two-sided) = %v, want about 2.290", got)
	}
}
