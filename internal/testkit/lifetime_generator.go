// Package testkit provides deterministic lifetime samples for tests.
package testkit

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"lifestat/domain/lifedata"
)

// LifetimeGeneratorConfig configures the lifetime sample generator
type LifetimeGeneratorConfig struct {
	Distribution lifedata.Distribution `json:"distribution"`
	Location     float64               `json:"location"` // Normal mean
	Scale        float64               `json:"scale"`    // Normal sigma or Weibull characteristic life
	Shape        float64               `json:"shape"`    // Weibull shape
	N            int                   `json:"n"`
	// CensorAbove right-censors every draw above this value (Type I test end).
	// Zero disables censoring.
	CensorAbove float64 `json:"censor_above"`
	Seed        int64   `json:"seed"`
}

// DefaultWeibullConfig returns a Weibull(c=100, b=2) configuration
func DefaultWeibullConfig() LifetimeGeneratorConfig {
	return LifetimeGeneratorConfig{
		Distribution: lifedata.Weibull,
		Scale:        100,
		Shape:        2,
		N:            50,
		Seed:         42,
	}
}

// DefaultNormalConfig returns a Normal(100, 10) configuration
func DefaultNormalConfig() LifetimeGeneratorConfig {
	return LifetimeGeneratorConfig{
		Distribution: lifedata.Normal,
		Location:     100,
		Scale:        10,
		N:            50,
		Seed:         42,
	}
}

// LifetimeGenerator draws lifetimes by inverse transform
type LifetimeGenerator struct {
	config LifetimeGeneratorConfig
	rng    *rand.Rand
}

// NewLifetimeGenerator creates a generator seeded from the config
func NewLifetimeGenerator(config LifetimeGeneratorConfig) *LifetimeGenerator {
	return &LifetimeGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Random draws N pseudo-random lifetimes. The same seed yields the same sample.
func (g *LifetimeGenerator) Random() lifedata.Sample {
	values := make([]float64, g.config.N)
	for i := range values {
		// Keep p strictly inside (0, 1)
		p := (float64(g.rng.Int63n(1<<52)) + 0.5) / float64(int64(1)<<52)
		values[i] = g.quantile(p)
	}
	return g.censor(values)
}

// Quantiles returns the N mid-point quantiles (i+0.5)/N in ascending order.
// These samples reproduce the generating distribution almost exactly, which
// makes them suitable for consistency checks.
func (g *LifetimeGenerator) Quantiles() lifedata.Sample {
	values := make([]float64, g.config.N)
	for i := range values {
		values[i] = g.quantile((float64(i) + 0.5) / float64(g.config.N))
	}
	return g.censor(values)
}

func (g *LifetimeGenerator) quantile(p float64) float64 {
	switch g.config.Distribution {
	case lifedata.Weibull:
		return g.config.Scale * math.Pow(-math.Log(1-p), 1/g.config.Shape)
	default:
		return g.config.Location + g.config.Scale*distuv.UnitNormal.Quantile(p)
	}
}

func (g *LifetimeGenerator) censor(values []float64) lifedata.Sample {
	obs := make([]lifedata.Observation, len(values))
	for i, v := range values {
		if g.config.CensorAbove > 0 && v > g.config.CensorAbove {
			obs[i] = lifedata.Observation{Value: g.config.CensorAbove, Censored: true}
			continue
		}
		obs[i] = lifedata.Observation{Value: v}
	}
	return lifedata.FromObservations(obs)
}

// WeibullQuantiles is shorthand for an uncensored Weibull quantile sample.
func WeibullQuantiles(scale, shape float64, n int) lifedata.Sample {
	cfg := DefaultWeibullConfig()
	cfg.Scale, cfg.Shape, cfg.N = scale, shape, n
	return NewLifetimeGenerator(cfg).Quantiles()
}

// NormalQuantiles is shorthand for an uncensored Normal quantile sample.
func NormalQuantiles(mean, sigma float64, n int) lifedata.Sample {
	cfg := DefaultNormalConfig()
	cfg.Location, cfg.Scale, cfg.N = mean, sigma, n
	return NewLifetimeGenerator(cfg).Quantiles()
}
