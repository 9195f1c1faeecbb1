// Package survival estimates empirical failure curves from right-censored
// lifetime samples.
package survival

import (
	"lifestat/domain/lifedata"
)

// KaplanMeier returns the product-limit estimate of the cumulative failure
// probability, one point per distinct event value. Tied observations are
// processed as one block: deaths d and censorings c at the same value update
// the survival product once, by (atRisk-d)/atRisk, and the risk set then
// shrinks by d+c. An empty sample yields an empty curve.
func KaplanMeier(sample lifedata.Sample) lifedata.EmpiricalCurve {
	sorted := sample.Sorted()
	n := len(sorted)
	if n == 0 {
		return lifedata.EmpiricalCurve{}
	}

	curve := make(lifedata.EmpiricalCurve, 0, n)
	survival := 1.0
	atRisk := n

	for i := 0; i < n; {
		value := sorted[i].Value
		deaths, censored := 0, 0
		j := i
		for j < n && sorted[j].Value == value {
			if sorted[j].Censored {
				censored++
			} else {
				deaths++
			}
			j++
		}

		if deaths > 0 {
			survival *= float64(atRisk-deaths) / float64(atRisk)
			curve = append(curve, lifedata.CurvePoint{X: value, F: 1 - survival})
		}
		atRisk -= deaths + censored
		i = j
	}

	return curve
}
