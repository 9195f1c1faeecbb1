package hypothesis

import (
	"fmt"
	"math"
	"sort"

	"lifestat/adapters/stats/dist"
	"lifestat/domain/core"
)

// ShapiroWilkAlpha is the level of the tabulated critical values.
const ShapiroWilkAlpha = 0.05

// Critical W at alpha 0.05 indexed by n for n = 3..50.
var shapiroWilkCritical = [...]float64{
	0.0, 0.0, 0.0, 0.767, 0.748, 0.762, 0.788, 0.803, 0.818, 0.829,
	0.842, 0.850, 0.859, 0.866, 0.874, 0.881, 0.887, 0.892, 0.897, 0.901,
	0.905, 0.908, 0.911, 0.914, 0.916, 0.918, 0.920, 0.923, 0.924, 0.926,
	0.927, 0.929, 0.930, 0.931, 0.933, 0.934, 0.935, 0.936, 0.938, 0.939,
	0.940, 0.941, 0.942, 0.943, 0.944, 0.945, 0.945, 0.946, 0.947, 0.947,
	0.947,
}

// ShapiroWilkCritical returns the tabulated critical W for n, clamped to the
// n = 50 value above the table.
func ShapiroWilkCritical(n int) float64 {
	if n < 3 {
		return 0
	}
	if n >= len(shapiroWilkCritical) {
		return shapiroWilkCritical[len(shapiroWilkCritical)-1]
	}
	return shapiroWilkCritical[n]
}

// ShapiroWilkRequest tests Sample for normality.
type ShapiroWilkRequest struct {
	Sample []float64 `json:"sample"`
}

// ShapiroWilkResult is the W statistic and decision.
type ShapiroWilkResult struct {
	Alpha float64 `json:"alpha"`
	Describe
	SS    float64 `json:"ss"`
	B     float64 `json:"b"`
	WObs  float64 `json:"w_obs"`
	WCrit float64 `json:"w_crit"`
	// Reject is true when normality is rejected (W_obs < W_crit).
	Reject bool `json:"reject"`
}

// ShapiroWilk computes W = b^2/SS with coefficients a_i = m_i/|m| built from
// the Blom approximations m_i = Phi^-1((i-0.375)/(n+0.25)) of the expected
// normal order statistics.
func ShapiroWilk(req ShapiroWilkRequest) (ShapiroWilkResult, error) {
	n := len(req.Sample)
	if n < 3 {
		return ShapiroWilkResult{}, fmt.Errorf("%w: Shapiro-Wilk needs at least 3 values, got %d", core.ErrInsufficientData, n)
	}
	d, err := describe(req.Sample)
	if err != nil {
		return ShapiroWilkResult{}, err
	}

	sorted := append([]float64(nil), req.Sample...)
	sort.Float64s(sorted)

	ss := 0.0
	for _, x := range sorted {
		ss += (x - d.Mean) * (x - d.Mean)
	}
	if ss == 0 {
		return ShapiroWilkResult{}, fmt.Errorf("%w: all values are equal", core.ErrDegenerateStatistic)
	}

	m := make([]float64, n)
	norm := 0.0
	for i := range m {
		m[i] = dist.NormalQuantile(dist.NormalPosition(i, n))
		norm += m[i] * m[i]
	}
	norm = math.Sqrt(norm)

	b := 0.0
	for i, x := range sorted {
		b += m[i] / norm * x
	}

	res := ShapiroWilkResult{
		Alpha:    ShapiroWilkAlpha,
		Describe: d,
		SS:       ss,
		B:        math.Abs(b),
		WObs:     b * b / ss,
		WCrit:    ShapiroWilkCritical(n),
	}
	res.Reject = res.WObs < res.WCrit
	return res, nil
}
