package weibull

import (
	"math"

	"lifestat/domain/lifedata"
)

// minDeterminant guards the 2x2 information matrix inversion.
const minDeterminant = 1e-15

// CovarianceParams names the parameter pair the covariance is expressed in.
var CovarianceParams = [2]string{"ln c", "1/b"}

// Covariance approximates the asymptotic covariance of (ln c, 1/b) from the
// expected information of the event standardized log-values
// z = (ln x - ln c)/(1/b). With fewer than two events it returns the
// identity with Default set.
func Covariance(sample lifedata.Sample, est lifedata.ParameterEstimate) lifedata.Covariance {
	events := sample.Events()
	nEff := len(events)
	cov := lifedata.Covariance{Params: CovarianceParams, NEff: nEff}
	if nEff < 2 {
		cov.Matrix = [2][2]float64{{1, 0}, {0, 1}}
		cov.Default = true
		return cov
	}

	p := math.Log(est.Scale)
	q := 1 / est.Shape

	jpp, jpq, jqq := 0.0, 0.0, 0.0
	for _, x := range events {
		if x <= 0 {
			continue
		}
		z := (math.Log(x) - p) / q
		jpp++
		jpq += z
		jqq += 1 + z*z
	}

	det := jpp*jqq - jpq*jpq
	if det < minDeterminant {
		det = minDeterminant
	}
	k := q * q / float64(nEff)
	cov.Matrix = [2][2]float64{
		{jqq / det * k, -jpq / det * k},
		{-jpq / det * k, jpp / det * k},
	}
	return cov
}
