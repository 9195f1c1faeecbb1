package report

import (
	"fmt"
	"strings"

	"lifestat/adapters/stats/hypothesis"
)

// Anova renders a one-way analysis of variance.
func Anova(r hypothesis.AnovaResult) string {
	var b strings.Builder

	b.WriteString("One-way analysis of variance (ANOVA)\n\n")
	b.WriteString(fmt.Sprintf("alpha = %.2f\n", r.Alpha))
	b.WriteString(fmt.Sprintf("k = %d groups\n", r.K))
	b.WriteString(fmt.Sprintf("Grand mean = %s\n\n", num(r.GrandMean)))
	for i, g := range r.Groups {
		b.WriteString(fmt.Sprintf("Group %d: n = %d, mean = %s, sd = %s\n", i+1, g.N, num(g.Mean), num(g.SD)))
	}
	b.WriteString(fmt.Sprintf("\nBetween-group variance S_out = %s\n", num(r.SOut)))
	b.WriteString(fmt.Sprintf("Within-group variance  S_in  = %s\n", num(r.SIn)))
	b.WriteString(fmt.Sprintf("F_obs = %s\n", num(r.FObs)))
	b.WriteString(fmt.Sprintf("df1 = %d, df2 = %d\n", r.DF1, r.DF2))
	b.WriteString(fmt.Sprintf("F_crit = %s\n\n", num(r.FCrit)))
	b.WriteString(verdict(r.Reject, "group means differ significantly", "differences between means are not significant"))
	b.WriteString("\n")
	return b.String()
}

// FisherStudent renders the variance and mean comparison of two samples.
func FisherStudent(r hypothesis.FisherStudentResult) string {
	var b strings.Builder

	b.WriteString("Fisher F-test and Student t-test for two samples\n\n")
	b.WriteString(fmt.Sprintf("alpha = %s\n\n", num(r.Alpha)))
	for i, s := range []struct {
		d      hypothesis.Describe
		values []float64
	}{{r.Sample1, r.Values1}, {r.Sample2, r.Values2}} {
		b.WriteString(fmt.Sprintf("Sample %d (n = %d):\n%s\n", i+1, s.d.N, joinFloats(s.values)))
		b.WriteString(fmt.Sprintf("mean = %s, sd = %s\n\n", num(s.d.Mean), num(s.d.SD)))
	}

	b.WriteString(fmt.Sprintf("F_obs = %s (larger variance over smaller)\n", num(r.FObs)))
	b.WriteString(fmt.Sprintf("df1 = %s, df2 = %s\n", num(r.FDF1), num(r.FDF2)))
	b.WriteString(fmt.Sprintf("F_crit = %s\n", num(r.FCrit)))
	if r.EqualVariances {
		b.WriteString("Variances: equal (F_obs <= F_crit)\n\n")
	} else {
		b.WriteString("Variances: different (F_obs > F_crit)\n\n")
	}

	b.WriteString(fmt.Sprintf("t_obs = %s\n", num(r.TObs)))
	if r.Welch {
		b.WriteString(fmt.Sprintf("df = %s (Welch-Satterthwaite)\n", num(r.TDF)))
	} else {
		b.WriteString(fmt.Sprintf("df = %s (pooled)\n", num(r.TDF)))
	}
	b.WriteString(fmt.Sprintf("t_crit = %s\n", num(r.TCrit)))
	if r.EqualMeans {
		b.WriteString("Means: equal (|t_obs| <= t_crit)\n")
	} else {
		b.WriteString("Means: different (|t_obs| > t_crit)\n")
	}
	return b.String()
}

// Grubbs renders a single-outlier test.
func Grubbs(r hypothesis.GrubbsResult) string {
	var b strings.Builder

	b.WriteString("Grubbs test for a single outlier\n\n")
	b.WriteString(fmt.Sprintf("n     = %d\n", r.N))
	b.WriteString(fmt.Sprintf("mode  = %d (%s)\n", int(r.Mode), r.Mode))
	b.WriteString(fmt.Sprintf("alpha = %s\n\n", num(r.Alpha)))
	b.WriteString("Generating parameters (informational):\n")
	b.WriteString(fmt.Sprintf("a = %s\n", num(r.TrueMean)))
	b.WriteString(fmt.Sprintf("s = %s\n\n", num(r.TrueSD)))
	b.WriteString("Sample:\n")
	for i, v := range r.Values {
		b.WriteString(fmt.Sprintf("x[%d] = %s\n", i, num(v)))
	}
	b.WriteString(fmt.Sprintf("\nmean   = %s\n", num(r.Mean)))
	b.WriteString(fmt.Sprintf("sd     = %s\n", num(r.SD)))
	b.WriteString(fmt.Sprintf("u_obs  = %s\n", num(r.UObs)))
	b.WriteString(fmt.Sprintf("u_crit = %s\n\n", num(r.UCrit)))
	b.WriteString(verdict(r.Reject, "the sample contains an outlier", "no outlier detected"))
	b.WriteString("\n")
	return b.String()
}

// ShapiroWilk renders a normality test.
func ShapiroWilk(r hypothesis.ShapiroWilkResult) string {
	var b strings.Builder

	b.WriteString("Shapiro-Wilk normality test\n\n")
	b.WriteString(fmt.Sprintf("alpha = %.2f\n", r.Alpha))
	b.WriteString(fmt.Sprintf("n = %d\n", r.N))
	b.WriteString(fmt.Sprintf("mean = %s\n", num(r.Mean)))
	b.WriteString(fmt.Sprintf("sd = %s\n", num(r.SD)))
	b.WriteString(fmt.Sprintf("SS = %s\n", num(r.SS)))
	b.WriteString(fmt.Sprintf("b = %s\n", num(r.B)))
	b.WriteString(fmt.Sprintf("W_obs = %.4f\n", r.WObs))
	b.WriteString(fmt.Sprintf("W_crit = %.3f\n\n", r.WCrit))
	b.WriteString(verdict(r.Reject, "the distribution is not normal", "the distribution can be considered normal"))
	b.WriteString("\n")
	return b.String()
}

// Wilcoxon renders a two-sided rank-sum test.
func Wilcoxon(r hypothesis.WilcoxonResult) string {
	var b strings.Builder

	b.WriteString("Two-sided Wilcoxon rank-sum test\n\n")
	b.WriteString(fmt.Sprintf("alpha = %s\n", num(r.Alpha)))
	b.WriteString(fmt.Sprintf("m = %d, n = %d, N = %d\n", r.M, r.N, r.Total))
	smallerSize := r.M
	if r.SmallerGroup == 2 {
		smallerSize = r.N
	}
	b.WriteString(fmt.Sprintf("Smaller group: %d (size %d)\n\n", r.SmallerGroup, smallerSize))
	b.WriteString(fmt.Sprintf("Sample 1: mean = %.4f, sd = %.4f\n", r.Sample1.Mean, r.Sample1.SD))
	b.WriteString(fmt.Sprintf("Sample 2: mean = %.4f, sd = %.4f\n\n", r.Sample2.Mean, r.Sample2.SD))
	b.WriteString(fmt.Sprintf("W_obs (rank sum) = %.1f\n", r.WObs))
	b.WriteString(fmt.Sprintf("mu_w = %s, sigma_w = %s\n", num(r.MuW), num(r.SigmaW)))
	b.WriteString(fmt.Sprintf("Critical interval: (%.0f; %.0f)\n", r.WLow, r.WUp))
	mode := "large sample, normal approximation"
	if r.SmallSample {
		mode = "small sample (N <= 40), normal approximation"
	}
	b.WriteString(fmt.Sprintf("Computation: %s\n", mode))
	if r.PValue == nil {
		b.WriteString("Mann-Whitney p-value: unavailable\n\n")
	} else {
		b.WriteString(fmt.Sprintf("Mann-Whitney p-value: %.6f\n\n", *r.PValue))
	}
	b.WriteString("H0: the distributions coincide\nH1: the distributions differ\n\n")
	b.WriteString(verdict(r.Reject, "the distributions differ significantly", "differences are not significant"))
	b.WriteString("\n")
	return b.String()
}
