// Package methods is the single entry point over the nine analysis methods.
// A Kind selects the method; Fit computes a FitResult and Plot derives graph
// series from it. Method wraps both behind the text-report contract used by
// existing callers.
package methods

import (
	"fmt"
	"strings"

	"lifestat/domain/core"
)

// Kind identifies an analysis method.
type Kind string

const (
	KindMLENormal     Kind = "mle-normal"
	KindMLEWeibull    Kind = "mle-weibull"
	KindMLSNormal     Kind = "mls-normal"
	KindMLSWeibull    Kind = "mls-weibull"
	KindGrubbs        Kind = "grubbs"
	KindFisherStudent Kind = "fisher-student"
	KindAnova         Kind = "anova"
	KindShapiroWilk   Kind = "shapiro-wilk"
	KindWilcoxon      Kind = "wilcoxon"
)

// Kinds lists every method in catalogue order.
var Kinds = []Kind{
	KindMLENormal,
	KindMLEWeibull,
	KindMLSNormal,
	KindMLSWeibull,
	KindGrubbs,
	KindFisherStudent,
	KindAnova,
	KindShapiroWilk,
	KindWilcoxon,
}

// ParseKind resolves a method identifier, ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownMethod, s)
}

// DisplayName is the human-readable method title.
func (k Kind) DisplayName() string {
	switch k {
	case KindMLENormal:
		return "Normal distribution"
	case KindMLEWeibull:
		return "Weibull-Gnedenko distribution"
	case KindMLSNormal:
		return "Normal distribution MLS"
	case KindMLSWeibull:
		return "Weibull-Gnedenko distribution MLS"
	case KindGrubbs:
		return "Grubbs test"
	case KindFisherStudent:
		return "Fisher and Student tests"
	case KindAnova:
		return "One-way ANOVA"
	case KindShapiroWilk:
		return "Shapiro-Wilk test"
	case KindWilcoxon:
		return "Wilcoxon rank-sum test"
	default:
		return string(k)
	}
}

// IsDistribution reports whether the method fits a lifetime distribution to
// a (possibly censored) sample rather than testing positional input.
func (k Kind) IsDistribution() bool {
	switch k {
	case KindMLENormal, KindMLEWeibull, KindMLSNormal, KindMLSWeibull:
		return true
	default:
		return false
	}
}

// HasGraph reports whether Plot produces series for the method.
func (k Kind) HasGraph() bool { return k.IsDistribution() }

// LogScaleX tells renderers to use a logarithmic x axis.
func (k Kind) LogScaleX() bool {
	return k == KindMLEWeibull || k == KindMLSWeibull
}

// Info is the catalogue entry of a method.
type Info struct {
	Kind      Kind   `json:"kind" yaml:"kind"`
	Name      string `json:"name" yaml:"name"`
	HasGraph  bool   `json:"has_graph" yaml:"has_graph"`
	LogScaleX bool   `json:"log_scale_x" yaml:"log_scale_x"`
	Input     string `json:"input" yaml:"input"`
}

// Catalogue describes every method.
func Catalogue() []Info {
	out := make([]Info, len(Kinds))
	for i, k := range Kinds {
		out[i] = Info{
			Kind:      k,
			Name:      k.DisplayName(),
			HasGraph:  k.HasGraph(),
			LogScaleX: k.LogScaleX(),
			Input:     k.inputLayout(),
		}
	}
	return out
}

func (k Kind) inputLayout() string {
	switch k {
	case KindAnova:
		return "[k, n1, v1..vn1, n2, v1..vn2, ...]"
	case KindFisherStudent:
		return "[alpha, n1, sample1..., n2, sample2...]"
	case KindGrubbs:
		return "[n, mode(0|1|2), alpha, true-mean, true-sd, sample...]"
	case KindShapiroWilk:
		return "[n, sample...]"
	case KindWilcoxon:
		return "[alpha, m, n, sample1 (m)..., sample2 (n)...]"
	default:
		return "values with parallel censoring flags (0 event, 1 censored)"
	}
}
