package hypothesis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"lifestat/adapters/stats/dist"
	"lifestat/domain/core"
)

// GrubbsMode selects which extreme is tested.
type GrubbsMode int

const (
	// GrubbsTwoSided tests whichever extreme lies farther from the mean.
	GrubbsTwoSided GrubbsMode = 0
	// GrubbsMax tests the largest value.
	GrubbsMax GrubbsMode = 1
	// GrubbsMin tests the smallest value.
	GrubbsMin GrubbsMode = 2
)

func (m GrubbsMode) String() string {
	switch m {
	case GrubbsTwoSided:
		return "two-sided"
	case GrubbsMax:
		return "maximum"
	case GrubbsMin:
		return "minimum"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// GrubbsRequest tests Sample for a single outlier. TrueMean and TrueSD are the
// generating parameters, reported for reference only.
type GrubbsRequest struct {
	Mode     GrubbsMode `json:"mode"`
	Alpha    float64    `json:"alpha"`
	TrueMean float64    `json:"true_mean"`
	TrueSD   float64    `json:"true_sd"`
	Sample   []float64  `json:"sample"`
}

// GrubbsResult is the Grubbs statistic and decision.
type GrubbsResult struct {
	Mode     GrubbsMode `json:"mode"`
	Alpha    float64    `json:"alpha"`
	TrueMean float64    `json:"true_mean"`
	TrueSD   float64    `json:"true_sd"`
	Values   []float64  `json:"values"`
	Describe
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	UObs  float64 `json:"u_obs"`
	UCrit float64 `json:"u_crit"`
	// Reject is true when an outlier is present (u_obs > u_crit).
	Reject bool `json:"reject"`
}

// Grubbs computes u = (max-mean)/sd, (mean-min)/sd or the larger of the two,
// and compares it with ((n-1)/sqrt(n)) * sqrt(t^2/(n-2+t^2)) where t is the
// upper Student-t quantile with n-2 df at alpha/(2n) for the two-sided test
// and alpha/n for the one-sided ones.
func Grubbs(req GrubbsRequest) (GrubbsResult, error) {
	if err := validAlpha(req.Alpha); err != nil {
		return GrubbsResult{}, err
	}
	if req.Mode < GrubbsTwoSided || req.Mode > GrubbsMin {
		return GrubbsResult{}, fmt.Errorf("%w: Grubbs mode must be 0, 1 or 2, got %d", core.ErrMalformedInput, int(req.Mode))
	}
	n := len(req.Sample)
	if n < 3 {
		return GrubbsResult{}, fmt.Errorf("%w: Grubbs test needs at least 3 values, got %d", core.ErrInsufficientData, n)
	}
	d, err := describe(req.Sample)
	if err != nil {
		return GrubbsResult{}, err
	}
	if d.SD == 0 {
		return GrubbsResult{}, fmt.Errorf("%w: zero sample standard deviation", core.ErrDegenerateStatistic)
	}
	minVal, _ := stats.Min(req.Sample)
	maxVal, _ := stats.Max(req.Sample)

	uMax := (maxVal - d.Mean) / d.SD
	uMin := (d.Mean - minVal) / d.SD
	var uObs float64
	switch req.Mode {
	case GrubbsMax:
		uObs = uMax
	case GrubbsMin:
		uObs = uMin
	default:
		uObs = math.Max(uMax, uMin)
	}

	uCrit := GrubbsCritical(n, req.Alpha, req.Mode != GrubbsTwoSided)
	return GrubbsResult{
		Mode:     req.Mode,
		Alpha:    req.Alpha,
		TrueMean: req.TrueMean,
		TrueSD:   req.TrueSD,
		Values:   append([]float64(nil), req.Sample...),
		Describe: d,
		Min:      minVal,
		Max:      maxVal,
		UObs:     uObs,
		UCrit:    uCrit,
		Reject:   uObs > uCrit,
	}, nil
}

// GrubbsCritical is the critical value of the Grubbs statistic for n values.
// The two-sided test splits alpha over both tails, so its Student-t upper
// tail probability is alpha/(2n); a one-sided test (max or min only) uses
// alpha/n. Swapping the two would make the two-sided test the less strict.
func GrubbsCritical(n int, alpha float64, oneSided bool) float64 {
	p := alpha / (2 * float64(n))
	if oneSided {
		p = alpha / float64(n)
	}
	t := dist.TUpperQuantile(p, float64(n-2))
	nf := float64(n)
	return (nf - 1) / math.Sqrt(nf) * math.Sqrt(t*t/(nf-2+t*t))
}
