package methods

import (
	"fmt"

	"lifestat/adapters/report"
	"lifestat/adapters/stats/hypothesis"
	"lifestat/adapters/stats/lsq"
	"lifestat/adapters/stats/normal"
	"lifestat/adapters/stats/weibull"
	"lifestat/domain/core"
	"lifestat/domain/lifedata"
	"lifestat/internal"
)

// Options tune a fit. The zero value is usable.
type Options struct {
	// Tolerance is the Nelder-Mead stopping spread for censored Normal MLE.
	Tolerance float64
	Logger    *internal.Logger
}

// DistributionFit is the result of one of the four distribution methods.
type DistributionFit struct {
	Values      []float64                  `json:"values" yaml:"values"`
	Flags       []int                      `json:"flags" yaml:"flags"`
	Estimate    lifedata.ParameterEstimate `json:"estimate" yaml:"estimate"`
	Diagnostics *lifedata.FitDiagnostics   `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Covariance  *lifedata.Covariance       `json:"covariance,omitempty" yaml:"covariance,omitempty"`
	Regression  *lsq.Fit                   `json:"regression,omitempty" yaml:"regression,omitempty"`
	Band        lifedata.ConfidenceBand    `json:"band" yaml:"band"`
}

// Sample rebuilds the fitted sample.
func (d *DistributionFit) Sample() lifedata.Sample {
	obs := make([]lifedata.Observation, len(d.Values))
	for i, v := range d.Values {
		obs[i] = lifedata.Observation{Value: v, Censored: i < len(d.Flags) && d.Flags[i] == 1}
	}
	return lifedata.FromObservations(obs)
}

// FitResult is the outcome of one method. Exactly one of the result fields is
// set, selected by Kind.
type FitResult struct {
	Kind          Kind                            `json:"kind" yaml:"kind"`
	Distribution  *DistributionFit                `json:"distribution,omitempty" yaml:"distribution,omitempty"`
	Anova         *hypothesis.AnovaResult         `json:"anova,omitempty" yaml:"anova,omitempty"`
	FisherStudent *hypothesis.FisherStudentResult `json:"fisher_student,omitempty" yaml:"fisher_student,omitempty"`
	Grubbs        *hypothesis.GrubbsResult        `json:"grubbs,omitempty" yaml:"grubbs,omitempty"`
	ShapiroWilk   *hypothesis.ShapiroWilkResult   `json:"shapiro_wilk,omitempty" yaml:"shapiro_wilk,omitempty"`
	Wilcoxon      *hypothesis.WilcoxonResult      `json:"wilcoxon,omitempty" yaml:"wilcoxon,omitempty"`
}

// Fit runs the method selected by kind. Distribution methods read values
// with parallel censoring flags (nil flags mean no censoring); the hypothesis
// tests read values as their positional layout and ignore flags.
func Fit(kind Kind, values []float64, flags []int, opts Options) (FitResult, error) {
	res := FitResult{Kind: kind}
	var err error

	switch kind {
	case KindMLENormal, KindMLEWeibull, KindMLSNormal, KindMLSWeibull:
		var sample lifedata.Sample
		if sample, err = lifedata.NewSample(values, flags); err != nil {
			return FitResult{}, err
		}
		res.Distribution, err = fitDistribution(kind, sample, opts)

	case KindAnova:
		var req hypothesis.AnovaRequest
		if req, err = DecodeAnova(values); err == nil {
			var r hypothesis.AnovaResult
			r, err = hypothesis.Anova(req)
			res.Anova = &r
		}

	case KindFisherStudent:
		var req hypothesis.FisherStudentRequest
		if req, err = DecodeFisherStudent(values); err == nil {
			var r hypothesis.FisherStudentResult
			r, err = hypothesis.FisherStudent(req)
			res.FisherStudent = &r
		}

	case KindGrubbs:
		var req hypothesis.GrubbsRequest
		if req, err = DecodeGrubbs(values); err == nil {
			var r hypothesis.GrubbsResult
			r, err = hypothesis.Grubbs(req)
			res.Grubbs = &r
		}

	case KindShapiroWilk:
		var req hypothesis.ShapiroWilkRequest
		if req, err = DecodeShapiroWilk(values); err == nil {
			var r hypothesis.ShapiroWilkResult
			r, err = hypothesis.ShapiroWilk(req)
			res.ShapiroWilk = &r
		}

	case KindWilcoxon:
		var req hypothesis.WilcoxonRequest
		if req, err = DecodeWilcoxon(values); err == nil {
			var r hypothesis.WilcoxonResult
			r, err = hypothesis.Wilcoxon(req)
			res.Wilcoxon = &r
		}

	default:
		return FitResult{}, fmt.Errorf("%w: %q", core.ErrUnknownMethod, string(kind))
	}

	if err != nil {
		return FitResult{}, err
	}
	return res, nil
}

func fitDistribution(kind Kind, sample lifedata.Sample, opts Options) (*DistributionFit, error) {
	logger := opts.Logger.Named(string(kind))
	d := &DistributionFit{Values: sample.Values(), Flags: sample.Flags()}

	if kind == KindMLEWeibull || kind == KindMLSWeibull {
		for _, v := range d.Values {
			if v <= 0 {
				return nil, fmt.Errorf("%w: Weibull lifetimes must be positive, got %g", core.ErrMalformedInput, v)
			}
		}
	}

	switch kind {
	case KindMLENormal:
		fit, err := normal.MLE(sample, opts.Tolerance)
		if err != nil {
			return nil, err
		}
		cov := normal.Covariance(fit.Estimate)
		d.Estimate, d.Diagnostics, d.Covariance = fit.Estimate, &fit.Diagnostics, &cov
		d.Band = normal.QuantileBand(fit.Estimate, cov, lifedata.ReportGrid)
		if fit.Diagnostics.Iterations > 0 && !fit.Diagnostics.Converged {
			logger.Warn("censored normal fit stopped after %d iterations without converging (spread %.3e)",
				fit.Diagnostics.Iterations, fit.Diagnostics.Residual)
		}

	case KindMLEWeibull:
		fit := weibull.MLE(sample)
		cov := weibull.Covariance(sample, fit.Estimate)
		d.Estimate, d.Diagnostics, d.Covariance = fit.Estimate, &fit.Diagnostics, &cov
		d.Band = weibull.QuantileBand(fit.Estimate, cov, lifedata.ReportGrid)
		switch {
		case fit.Diagnostics.FellBack:
			logger.Warn("newton iteration unusable after %d iterations, using %s estimate",
				fit.Diagnostics.Iterations, fit.Estimate.Estimator)
		case !fit.Diagnostics.Converged:
			logger.Warn("newton iteration hit the %d iteration cap (last step %.3e)",
				weibull.MaxNewtonIterations, fit.Diagnostics.Residual)
		}

	case KindMLSNormal, KindMLSWeibull:
		var (
			fit lsq.Fit
			err error
		)
		if kind == KindMLSNormal {
			fit, err = lsq.Normal(sample)
		} else {
			fit, err = lsq.Weibull(sample)
		}
		if err != nil {
			return nil, err
		}
		d.Estimate, d.Regression = fit.Estimate, &fit
		d.Band = fit.Band(lifedata.ReportGrid)
	}

	logger.Debug("fitted %s: scale=%g shape=%g location=%g n=%d",
		d.Estimate.Distribution, d.Estimate.Scale, d.Estimate.Shape, d.Estimate.Location, d.Estimate.N)
	return d, nil
}

// Report renders the text report of a result.
func (r FitResult) Report() string {
	switch r.Kind {
	case KindMLENormal, KindMLEWeibull, KindMLSNormal, KindMLSWeibull:
		if r.Distribution == nil {
			return ""
		}
		d := r.Distribution
		return report.Distribution(report.DistributionReport{
			Title:       r.Kind.DisplayName(),
			Values:      d.Values,
			Flags:       d.Flags,
			Estimate:    d.Estimate,
			Diagnostics: d.Diagnostics,
			Covariance:  d.Covariance,
			Regression:  d.Regression,
			Band:        d.Band,
		})
	case KindAnova:
		if r.Anova != nil {
			return report.Anova(*r.Anova)
		}
	case KindFisherStudent:
		if r.FisherStudent != nil {
			return report.FisherStudent(*r.FisherStudent)
		}
	case KindGrubbs:
		if r.Grubbs != nil {
			return report.Grubbs(*r.Grubbs)
		}
	case KindShapiroWilk:
		if r.ShapiroWilk != nil {
			return report.ShapiroWilk(*r.ShapiroWilk)
		}
	case KindWilcoxon:
		if r.Wilcoxon != nil {
			return report.Wilcoxon(*r.Wilcoxon)
		}
	}
	return ""
}
