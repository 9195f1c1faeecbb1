package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lifestat/domain/lifedata"
)

func TestLifetimeGenerator_Deterministic(t *testing.T) {
	cfg := DefaultWeibullConfig()
	a := NewLifetimeGenerator(cfg).Random()
	b := NewLifetimeGenerator(cfg).Random()

	assert.Equal(t, a.Values(), b.Values())
	assert.Equal(t, cfg.N, a.Len())
}

func TestLifetimeGenerator_QuantilesAscending(t *testing.T) {
	s := WeibullQuantiles(100, 2, 20)
	vals := s.Values()
	for i := 1; i < len(vals); i++ {
		assert.Greater(t, vals[i], vals[i-1])
	}
	assert.False(t, s.HasCensoring())
}

func TestLifetimeGenerator_Censoring(t *testing.T) {
	cfg := DefaultNormalConfig()
	cfg.CensorAbove = 105
	s := NewLifetimeGenerator(cfg).Quantiles()

	assert.True(t, s.HasCensoring())
	for _, o := range s.Observations() {
		if o.Censored {
			assert.Equal(t, 105.0, o.Value)
		} else {
			assert.LessOrEqual(t, o.Value, 105.0)
		}
	}
	assert.Equal(t, lifedata.Normal, cfg.Distribution)
}
