// Package report renders computed statistics as deterministic text blocks.
// Identical inputs produce byte-identical output.
package report

import (
	"fmt"
	"strings"

	"lifestat/adapters/stats/lsq"
	"lifestat/domain/lifedata"
)

// DistributionReport is everything a distribution fit reports.
type DistributionReport struct {
	Title       string
	Values      []float64
	Flags       []int
	Estimate    lifedata.ParameterEstimate
	Diagnostics *lifedata.FitDiagnostics // MLE only
	Covariance  *lifedata.Covariance     // MLE only
	Regression  *lsq.Fit                 // least squares only
	Band        lifedata.ConfidenceBand
}

// Distribution renders a Normal or Weibull fit.
func Distribution(r DistributionReport) string {
	var b strings.Builder

	b.WriteString(r.Title + "\n\n")
	b.WriteString(fmt.Sprintf("n = %d\n", len(r.Values)))
	if r.Regression != nil {
		b.WriteString(fmt.Sprintf("m = %d (distinct event times)\n", r.Regression.M))
	}
	b.WriteString("X: " + joinFloats(r.Values) + "\n")
	b.WriteString("R: " + joinInts(r.Flags) + "\n\n")

	est := r.Estimate
	if est.Distribution == lifedata.Weibull {
		b.WriteString(fmt.Sprintf("c (scale) = %s\n", num(est.Scale)))
		b.WriteString(fmt.Sprintf("b (shape) = %s\n", num(est.Shape)))
	} else {
		b.WriteString(fmt.Sprintf("a (mean)      = %s\n", num(est.Location)))
		b.WriteString(fmt.Sprintf("s (std. dev.) = %s\n", num(est.Scale)))
	}
	b.WriteString(fmt.Sprintf("Estimator: %s\n", est.Estimator))
	if est.Estimator == lifedata.EstimatorDefault {
		b.WriteString("Warning: fewer than 2 usable plotting points, parameters are the documented default.\n")
	}
	if r.Diagnostics != nil {
		b.WriteString(convergenceLine(*r.Diagnostics) + "\n")
	}

	if r.Covariance != nil {
		cov := r.Covariance
		b.WriteString(fmt.Sprintf("\nCov[%s, %s] (n_eff = %d):\n", cov.Params[0], cov.Params[1], cov.NEff))
		for _, row := range cov.Matrix {
			b.WriteString(fmt.Sprintf("  %s  %s\n", sci(row[0]), sci(row[1])))
		}
		if cov.Default {
			b.WriteString("  identity placeholder: fewer than 2 events, no precision information\n")
		}
	}

	if reg := r.Regression; reg != nil {
		b.WriteString(fmt.Sprintf("\nResidual standard error s_res = %s\n", num(reg.ResidualSE)))
		b.WriteString(fmt.Sprintf("Sum of weights             = %s\n", num(reg.SumW)))
		b.WriteString(fmt.Sprintf("Weighted mean z            = %s\n", num(reg.MeanZ)))
		b.WriteString(fmt.Sprintf("SS_z                       = %s\n", num(reg.SSZ)))
	}

	b.WriteString(fmt.Sprintf("\n%-8s %16s %16s %16s\n", "P", "Xp_low", "Xp", "Xp_up"))
	for i, p := range r.Band.P {
		b.WriteString(fmt.Sprintf("%-8.3f %16s %16s %16s\n", p,
			num(r.Band.Lower[i]), num(r.Band.Center[i]), num(r.Band.Upper[i])))
	}
	b.WriteString(fmt.Sprintf("Band: +/- %.2f standard errors (fixed 95%%)\n", lifedata.BandMultiplier))
	return b.String()
}

func convergenceLine(d lifedata.FitDiagnostics) string {
	switch {
	case d.FellBack:
		return "Convergence: iterative fit not usable, fallback estimate used"
	case d.Iterations == 0:
		return "Convergence: closed form"
	case d.Converged:
		return fmt.Sprintf("Convergence: converged after %d iterations (residual %s)", d.Iterations, sci(d.Residual))
	default:
		return fmt.Sprintf("Convergence: NOT converged, iteration cap %d reached (residual %s)", d.Iterations, sci(d.Residual))
	}
}

func num(v float64) string { return fmt.Sprintf("%.6f", v) }

func sci(v float64) string { return fmt.Sprintf("%.6e", v) }

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v)
	}
	return strings.Join(parts, " ")
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, " ")
}

func verdict(reject bool, rejected, accepted string) string {
	if reject {
		return "Decision: H0 rejected, " + rejected + "."
	}
	return "Decision: H0 not rejected, " + accepted + "."
}
