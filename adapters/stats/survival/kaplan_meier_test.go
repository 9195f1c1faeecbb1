package survival

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifestat/domain/lifedata"
)

func mustSample(t *testing.T, values []float64, flags []int) lifedata.Sample {
	t.Helper()
	s, err := lifedata.NewSample(values, flags)
	require.NoError(t, err)
	return s
}

func TestKaplanMeier_UncensoredEqualsEmpiricalCDF(t *testing.T) {
	values := []float64{7, 3, 9, 1, 5, 2, 8, 4, 6, 10}
	curve := KaplanMeier(mustSample(t, values, nil))

	require.Len(t, curve, len(values))
	for i, p := range curve {
		assert.Equal(t, float64(i+1), p.X)
		assert.InDelta(t, float64(i+1)/float64(len(values)), p.F, 1e-12)
	}
}

func TestKaplanMeier_Censoring(t *testing.T) {
	// Classic example: 6 units, censored at 3 and 5.
	values := []float64{1, 2, 3, 4, 5, 6}
	flags := []int{0, 0, 1, 0, 1, 0}
	curve := KaplanMeier(mustSample(t, values, flags))

	require.Len(t, curve, 4)
	s := 1.0
	s *= 5.0 / 6.0
	assert.InDelta(t, 1-s, curve[0].F, 1e-12)
	s *= 4.0 / 5.0
	assert.InDelta(t, 1-s, curve[1].F, 1e-12)
	s *= 2.0 / 3.0 // at risk: 3 after the censoring at 3
	assert.InDelta(t, 1-s, curve[2].F, 1e-12)
	assert.Equal(t, 4.0, curve[2].X)
	assert.InDelta(t, 1.0, curve[3].F, 1e-12)
}

func TestKaplanMeier_LargestCensoredNeverReachesOne(t *testing.T) {
	curve := KaplanMeier(mustSample(t, []float64{2, 4, 6, 8}, []int{0, 0, 0, 1}))
	require.NotEmpty(t, curve)
	assert.Less(t, curve[len(curve)-1].F, 1.0)
}

func TestKaplanMeier_TiesProcessedAtomically(t *testing.T) {
	values := []float64{5, 5, 5, 10, 10}
	flags := []int{0, 0, 1, 0, 1}
	curve := KaplanMeier(mustSample(t, values, flags))

	require.Len(t, curve, 2, "one point per distinct event value")
	assert.InDelta(t, 1-3.0/5.0, curve[0].F, 1e-12)
	// 2 remain at risk at 10, one death
	assert.InDelta(t, 1-(3.0/5.0)*(1.0/2.0), curve[1].F, 1e-12)
}

func TestKaplanMeier_MonotoneAndBounded(t *testing.T) {
	values := []float64{3.1, 0.4, 2.2, 2.2, 9.0, 5.5, 0.4, 7.3, 1.1, 6.0, 4.4, 8.8}
	flags := []int{1, 0, 0, 1, 1, 0, 0, 0, 1, 0, 0, 1}
	curve := KaplanMeier(mustSample(t, values, flags))

	distinct := map[float64]bool{}
	for i, v := range values {
		if flags[i] == 0 {
			distinct[v] = true
		}
	}
	assert.LessOrEqual(t, len(curve), len(distinct))
	for i, p := range curve {
		assert.GreaterOrEqual(t, p.F, 0.0)
		assert.Less(t, p.F, 1.0)
		if i > 0 {
			assert.Greater(t, p.X, curve[i-1].X)
			assert.GreaterOrEqual(t, p.F, curve[i-1].F)
		}
	}
}

func TestKaplanMeier_EmptyAndReentrant(t *testing.T) {
	assert.Empty(t, KaplanMeier(lifedata.Sample{}))

	s := mustSample(t, []float64{4, 1, 3}, []int{0, 1, 0})
	first := KaplanMeier(s)
	second := KaplanMeier(s)
	assert.Equal(t, first, second)
	assert.Equal(t, []float64{4, 1, 3}, s.Values(), "input order untouched")
}
