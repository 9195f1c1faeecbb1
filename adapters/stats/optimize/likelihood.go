package optimize

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"lifestat/domain/lifedata"
)

// NormalNegLogLikelihood returns the right-censored Normal negative
// log-likelihood over (mu, ln sigma). The observations are copied, so the
// objective is independent of any later use of the sample.
func NormalNegLogLikelihood(sample lifedata.Sample) Objective {
	obs := sample.Observations()
	return func(p []float64) float64 {
		mu, sigma := p[0], math.Exp(p[1])
		if sigma <= 0 || math.IsInf(sigma, 0) {
			return math.Inf(1)
		}
		ll := 0.0
		for _, o := range obs {
			z := (o.Value - mu) / sigma
			if o.Censored {
				ll += logSurvival(z)
			} else {
				ll += distuv.UnitNormal.LogProb(z) - math.Log(sigma)
			}
		}
		return finiteOrInf(-ll)
	}
}

// WeibullNegLogLikelihood returns the right-censored Weibull negative
// log-likelihood over (ln c, ln b).
func WeibullNegLogLikelihood(sample lifedata.Sample) Objective {
	obs := sample.Observations()
	return func(p []float64) float64 {
		lnc, b := p[0], math.Exp(p[1])
		if b <= 0 || math.IsInf(b, 0) {
			return math.Inf(1)
		}
		ll := 0.0
		for _, o := range obs {
			if o.Value <= 0 {
				return math.Inf(1)
			}
			u := math.Log(o.Value) - lnc
			h := math.Exp(b * u)
			if o.Censored {
				ll -= h
			} else {
				ll += math.Log(b) - lnc + (b-1)*u - h
			}
		}
		return finiteOrInf(-ll)
	}
}

// logSurvival is ln(1 - Phi(z)) computed through erfc to keep precision in
// the upper tail.
func logSurvival(z float64) float64 {
	return math.Log(0.5 * math.Erfc(z/math.Sqrt2))
}

func finiteOrInf(v float64) float64 {
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}
