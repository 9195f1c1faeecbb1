package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifestat/internal"
	"lifestat/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "INP_DIR", "OUTPUT_DIR", "PLOT_FORMAT",
		"PLOT_WIDTH_IN", "PLOT_HEIGHT_IN", "NELDER_MEAD_TOLERANCE", "METRICS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.MetricsEnabled)
	assert.Equal(t, "Inp", cfg.Paths.InputDir)
	assert.Equal(t, "png", cfg.Plot.Format)
	assert.Equal(t, 6.0, cfg.Plot.WidthIn)
	assert.Equal(t, 1e-8, cfg.Analysis.NelderMeadTolerance)
	assert.Equal(t, internal.LogLevelInfo, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PLOT_FORMAT", "SVG")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("PLOT_WIDTH_IN", "")
	t.Setenv("PLOT_HEIGHT_IN", "")
	t.Setenv("NELDER_MEAD_TOLERANCE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "svg", cfg.Plot.Format)
	assert.False(t, cfg.Server.MetricsEnabled)
	assert.Equal(t, internal.LogLevelDebug, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "INFO")
	t.Setenv("PLOT_FORMAT", "gif")
	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	t.Setenv("PLOT_FORMAT", "png")
	t.Setenv("LOG_LEVEL", "loud")
	_, err = Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
