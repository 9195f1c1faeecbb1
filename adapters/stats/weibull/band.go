package weibull

import (
	"math"

	"lifestat/adapters/stats/dist"
	"lifestat/domain/lifedata"
)

// QuantileBand propagates cov through ln x_p = ln c + w_p/b with
// w_p = ln(-ln(1-p)) and returns x_p scaled by exp(-+1.96 sd) on the grid.
func QuantileBand(est lifedata.ParameterEstimate, cov lifedata.Covariance, grid []float64) lifedata.ConfidenceBand {
	band := lifedata.ConfidenceBand{
		P:      append([]float64(nil), grid...),
		Lower:  make([]float64, len(grid)),
		Center: make([]float64, len(grid)),
		Upper:  make([]float64, len(grid)),
	}
	v := cov.Matrix
	for i, p := range grid {
		w := dist.WeibullZ(p)
		xp := est.Quantile(p)
		variance := v[0][0] + w*w*v[1][1] + 2*w*v[0][1]
		sd := math.Sqrt(math.Max(0, variance))
		band.Center[i] = xp
		band.Lower[i] = xp * math.Exp(-lifedata.BandMultiplier*sd)
		band.Upper[i] = xp * math.Exp(lifedata.BandMultiplier*sd)
	}
	return band
}
