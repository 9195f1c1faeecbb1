package hypothesis

import (
	"fmt"
	"math"

	"lifestat/adapters/stats/dist"
	"lifestat/domain/core"
)

// FisherStudentRequest compares two independent samples at Alpha.
type FisherStudentRequest struct {
	Alpha   float64   `json:"alpha"`
	Sample1 []float64 `json:"sample1"`
	Sample2 []float64 `json:"sample2"`
}

// FisherStudentResult carries the variance-ratio test and the subsequent
// pooled or Welch t-test.
type FisherStudentResult struct {
	Alpha   float64   `json:"alpha"`
	Values1 []float64 `json:"values1"`
	Values2 []float64 `json:"values2"`
	Sample1 Describe  `json:"sample1"`
	Sample2 Describe  `json:"sample2"`

	FObs  float64 `json:"f_obs"`
	FDF1  float64 `json:"f_df1"`
	FDF2  float64 `json:"f_df2"`
	FCrit float64 `json:"f_crit"`
	// EqualVariances is true when F_obs <= F_crit.
	EqualVariances bool `json:"equal_variances"`

	TObs  float64 `json:"t_obs"`
	TDF   float64 `json:"t_df"`
	TCrit float64 `json:"t_crit"`
	// Welch is set when the unequal-variance t-test was used.
	Welch bool `json:"welch"`
	// EqualMeans is true when |t_obs| <= t_crit.
	EqualMeans bool `json:"equal_means"`
}

// FisherStudent tests equality of variances with the F ratio (larger over
// smaller) and then equality of means: pooled t when the variances are
// accepted as equal, Welch with Satterthwaite df otherwise.
func FisherStudent(req FisherStudentRequest) (FisherStudentResult, error) {
	if err := validAlpha(req.Alpha); err != nil {
		return FisherStudentResult{}, err
	}
	if len(req.Sample1) < 2 || len(req.Sample2) < 2 {
		return FisherStudentResult{}, fmt.Errorf("%w: both samples need at least 2 values, got %d and %d",
			core.ErrInsufficientData, len(req.Sample1), len(req.Sample2))
	}
	d1, err := describe(req.Sample1)
	if err != nil {
		return FisherStudentResult{}, err
	}
	d2, err := describe(req.Sample2)
	if err != nil {
		return FisherStudentResult{}, err
	}
	v1, v2 := d1.SD*d1.SD, d2.SD*d2.SD
	if v1 == 0 || v2 == 0 {
		return FisherStudentResult{}, fmt.Errorf("%w: a sample has zero variance", core.ErrDegenerateStatistic)
	}

	res := FisherStudentResult{
		Alpha:   req.Alpha,
		Values1: append([]float64(nil), req.Sample1...),
		Values2: append([]float64(nil), req.Sample2...),
		Sample1: d1,
		Sample2: d2,
	}
	n1, n2 := float64(d1.N), float64(d2.N)
	if v1 >= v2 {
		res.FObs, res.FDF1, res.FDF2 = v1/v2, n1-1, n2-1
	} else {
		res.FObs, res.FDF1, res.FDF2 = v2/v1, n2-1, n1-1
	}
	res.FCrit = dist.FUpperQuantile(req.Alpha, res.FDF1, res.FDF2)
	res.EqualVariances = res.FObs <= res.FCrit

	if res.EqualVariances {
		sp := math.Sqrt(((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2))
		res.TObs = (d1.Mean - d2.Mean) / (sp * math.Sqrt(1/n1+1/n2))
		res.TDF = n1 + n2 - 2
	} else {
		w1, w2 := v1/n1, v2/n2
		res.TObs = (d1.Mean - d2.Mean) / math.Sqrt(w1+w2)
		res.TDF = (w1 + w2) * (w1 + w2) / (w1*w1/(n1-1) + w2*w2/(n2-1))
		res.Welch = true
	}
	res.TCrit = dist.TUpperQuantile(req.Alpha/2, res.TDF)
	res.EqualMeans = math.Abs(res.TObs) <= res.TCrit
	return res, nil
}
