// Package hypothesis implements the classical parametric and rank-based
// significance tests: one-way ANOVA, Fisher+Student, Grubbs, Shapiro-Wilk
// and the Wilcoxon rank-sum test. Every test takes a structured request and
// returns a result or a wrapped domain error; no state is shared.
package hypothesis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"lifestat/domain/core"
)

// Describe holds the sample moments reported by every test.
type Describe struct {
	N    int     `json:"n"`
	Mean float64 `json:"mean"`
	// SD is the sample (n-1) standard deviation; zero for a single value.
	SD float64 `json:"sd"`
}

func describe(values []float64) (Describe, error) {
	if len(values) == 0 {
		return Describe{}, fmt.Errorf("%w: empty sample", core.ErrInsufficientData)
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return Describe{}, fmt.Errorf("%w: %v", core.ErrInsufficientData, err)
	}
	d := Describe{N: len(values), Mean: mean}
	if len(values) > 1 {
		sd, err := stats.StandardDeviationSample(values)
		if err != nil {
			return Describe{}, fmt.Errorf("%w: %v", core.ErrInsufficientData, err)
		}
		d.SD = sd
	}
	return d, nil
}

func validAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return fmt.Errorf("%w: significance level %g outside (0, 1)", core.ErrMalformedInput, alpha)
	}
	return nil
}
