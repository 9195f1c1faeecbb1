package hypothesis

import (
	"fmt"

	"lifestat/adapters/stats/dist"
	"lifestat/domain/core"
)

// AnovaAlpha is the fixed significance level of the one-way ANOVA.
const AnovaAlpha = 0.05

// AnovaRequest holds k >= 2 groups of observations.
type AnovaRequest struct {
	Groups [][]float64 `json:"groups"`
}

// AnovaResult is a one-way ANOVA decomposition and decision.
type AnovaResult struct {
	Alpha     float64    `json:"alpha"`
	K         int        `json:"k"`
	GrandMean float64    `json:"grand_mean"`
	Groups    []Describe `json:"groups"`
	SOut      float64    `json:"s_out"`
	SIn       float64    `json:"s_in"`
	FObs      float64    `json:"f_obs"`
	DF1       int        `json:"df1"`
	DF2       int        `json:"df2"`
	FCrit     float64    `json:"f_crit"`
	// Reject is true when the group means differ (F_obs > F_crit).
	Reject bool `json:"reject"`
}

// Anova runs a one-way analysis of variance at alpha 0.05.
func Anova(req AnovaRequest) (AnovaResult, error) {
	k := len(req.Groups)
	if k < 2 {
		return AnovaResult{}, fmt.Errorf("%w: ANOVA needs at least 2 groups, got %d", core.ErrInsufficientData, k)
	}

	res := AnovaResult{Alpha: AnovaAlpha, K: k, Groups: make([]Describe, k)}
	total, sum := 0, 0.0
	for i, g := range req.Groups {
		d, err := describe(g)
		if err != nil {
			return AnovaResult{}, fmt.Errorf("group %d: %w", i+1, err)
		}
		res.Groups[i] = d
		total += d.N
		sum += d.Mean * float64(d.N)
	}
	if total <= k {
		return AnovaResult{}, fmt.Errorf("%w: %d observations in %d groups leave no within-group degrees of freedom",
			core.ErrInsufficientData, total, k)
	}
	res.GrandMean = sum / float64(total)

	ssOut, ssIn := 0.0, 0.0
	for _, d := range res.Groups {
		ssOut += float64(d.N) * (d.Mean - res.GrandMean) * (d.Mean - res.GrandMean)
		ssIn += float64(d.N-1) * d.SD * d.SD
	}
	res.DF1 = k - 1
	res.DF2 = total - k
	res.SOut = ssOut / float64(res.DF1)
	res.SIn = ssIn / float64(res.DF2)
	if res.SIn <= 0 {
		return AnovaResult{}, fmt.Errorf("%w: zero within-group variance", core.ErrDegenerateStatistic)
	}

	res.FObs = res.SOut / res.SIn
	res.FCrit = dist.FUpperQuantile(res.Alpha, float64(res.DF1), float64(res.DF2))
	res.Reject = res.FObs > res.FCrit
	return res, nil
}
