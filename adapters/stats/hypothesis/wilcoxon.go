package hypothesis

import (
	"fmt"
	"math"
	"sort"

	moremath "github.com/aclements/go-moremath/stats"

	"lifestat/adapters/stats/dist"
	"lifestat/domain/core"
)

// WilcoxonSmallSample is the pooled size up to which the sample is reported
// as small. The decision always uses the normal approximation.
const WilcoxonSmallSample = 40

// WilcoxonRequest compares two independent samples at Alpha.
type WilcoxonRequest struct {
	Alpha   float64   `json:"alpha"`
	Sample1 []float64 `json:"sample1"`
	Sample2 []float64 `json:"sample2"`
}

// WilcoxonResult is the rank-sum statistic and its critical interval.
type WilcoxonResult struct {
	Alpha float64 `json:"alpha"`
	M     int     `json:"m"`
	N     int     `json:"n"`
	Total int     `json:"total"`
	// SmallerGroup is 1 or 2; group 1 wins ties in size.
	SmallerGroup int      `json:"smaller_group"`
	Sample1      Describe `json:"sample1"`
	Sample2      Describe `json:"sample2"`
	WObs         float64  `json:"w_obs"`
	MuW          float64  `json:"mu_w"`
	SigmaW       float64  `json:"sigma_w"`
	WLow         float64  `json:"w_low"`
	WUp          float64  `json:"w_up"`
	SmallSample  bool     `json:"small_sample"`
	// PValue is the two-sided Mann-Whitney U p-value, nil when it cannot be
	// computed (for example when every value is equal).
	PValue *float64 `json:"p_value,omitempty"`
	// Reject is true when W_obs lies outside the open interval (W_low, W_up).
	Reject bool `json:"reject"`
}

// Wilcoxon sums the pooled mid-ranks of the smaller group and compares the sum
// with mu = m(N+1)/2 -+ z_(1-alpha/2) * sqrt(m*n*(N+1)/12), both bounds rounded.
func Wilcoxon(req WilcoxonRequest) (WilcoxonResult, error) {
	if err := validAlpha(req.Alpha); err != nil {
		return WilcoxonResult{}, err
	}
	m, n := len(req.Sample1), len(req.Sample2)
	if m < 1 || n < 1 {
		return WilcoxonResult{}, fmt.Errorf("%w: both samples need at least 1 value, got %d and %d",
			core.ErrInsufficientData, m, n)
	}
	d1, err := describe(req.Sample1)
	if err != nil {
		return WilcoxonResult{}, err
	}
	d2, err := describe(req.Sample2)
	if err != nil {
		return WilcoxonResult{}, err
	}

	smaller, mSmall := 1, m
	if n < m {
		smaller, mSmall = 2, n
	}

	type item struct {
		value float64
		group int
	}
	pooled := make([]item, 0, m+n)
	for _, v := range req.Sample1 {
		pooled = append(pooled, item{v, 1})
	}
	for _, v := range req.Sample2 {
		pooled = append(pooled, item{v, 2})
	}
	sort.SliceStable(pooled, func(i, j int) bool { return pooled[i].value < pooled[j].value })

	wObs := 0.0
	for i := 0; i < len(pooled); {
		j := i
		for j < len(pooled) && pooled[j].value == pooled[i].value {
			j++
		}
		// Ranks i+1..j share their mean.
		rank := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			if pooled[k].group == smaller {
				wObs += rank
			}
		}
		i = j
	}

	total := m + n
	mu := float64(mSmall) * float64(total+1) / 2
	sigma := math.Sqrt(float64(m) * float64(n) * float64(total+1) / 12)
	z := dist.NormalQuantile(1 - req.Alpha/2)

	res := WilcoxonResult{
		Alpha:        req.Alpha,
		M:            m,
		N:            n,
		Total:        total,
		SmallerGroup: smaller,
		Sample1:      d1,
		Sample2:      d2,
		WObs:         wObs,
		MuW:          mu,
		SigmaW:       sigma,
		WLow:         math.Round(mu - z*sigma),
		WUp:          math.Round(mu + z*sigma),
		SmallSample:  total <= WilcoxonSmallSample,
	}
	res.Reject = !(wObs > res.WLow && wObs < res.WUp)

	if u, err := moremath.MannWhitneyUTest(req.Sample1, req.Sample2, moremath.LocationDiffers); err == nil {
		p := u.P
		res.PValue = &p
	}
	return res, nil
}
