package methods

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifestat/adapters/stats/hypothesis"
	"lifestat/domain/core"
)

func TestDecodeAnova(t *testing.T) {
	req, err := DecodeAnova([]float64{2, 3, 1, 2, 3, 2, 7, 8})
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{1, 2, 3}, {7, 8}}, req.Groups)
	assert.Equal(t, []float64{2, 3, 1, 2, 3, 2, 7, 8}, EncodeAnova(req))
}

func TestDecodeFisherStudent(t *testing.T) {
	data := []float64{0.05, 2, 1.1, 1.2, 3, 2.1, 2.2, 2.3}
	req, err := DecodeFisherStudent(data)
	require.NoError(t, err)

	assert.Equal(t, 0.05, req.Alpha)
	assert.Equal(t, []float64{1.1, 1.2}, req.Sample1)
	assert.Equal(t, []float64{2.1, 2.2, 2.3}, req.Sample2)
	assert.Equal(t, data, EncodeFisherStudent(req))
}

func TestDecodeGrubbs(t *testing.T) {
	data := []float64{3, 1, 0.05, 10, 2, 9.5, 10.5, 30}
	req, err := DecodeGrubbs(data)
	require.NoError(t, err)

	assert.Equal(t, hypothesis.GrubbsMax, req.Mode)
	assert.Equal(t, 0.05, req.Alpha)
	assert.Equal(t, 10.0, req.TrueMean)
	assert.Equal(t, 2.0, req.TrueSD)
	assert.Equal(t, []float64{9.5, 10.5, 30}, req.Sample)
	assert.Equal(t, data, EncodeGrubbs(req))
}

func TestDecodeShapiroWilk(t *testing.T) {
	req, err := DecodeShapiroWilk([]float64{3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, req.Sample)
	assert.Equal(t, []float64{3, 4, 5, 6}, EncodeShapiroWilk(req))
}

func TestDecodeWilcoxon_SamplesStartAfterHeader(t *testing.T) {
	data := []float64{0.05, 2, 3, 1, 2, 10, 11, 12}
	req, err := DecodeWilcoxon(data)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2}, req.Sample1)
	assert.Equal(t, []float64{10, 11, 12}, req.Sample2)
	assert.Equal(t, data, EncodeWilcoxon(req))
}

func TestDecode_Strictness(t *testing.T) {
	cases := []struct {
		name   string
		decode func([]float64) error
		data   []float64
		want   error
	}{
		{"anova empty", wrap(DecodeAnova), nil, core.ErrInsufficientData},
		{"anova one group", wrap(DecodeAnova), []float64{1, 2, 1, 2}, core.ErrInsufficientData},
		{"anova short group", wrap(DecodeAnova), []float64{2, 3, 1, 2}, core.ErrMalformedInput},
		{"anova trailing", wrap(DecodeAnova), []float64{2, 1, 1, 1, 2, 9}, core.ErrMalformedInput},
		{"anova fractional count", wrap(DecodeAnova), []float64{2.5, 1, 1, 1, 2}, core.ErrMalformedInput},
		{"fisher empty", wrap(DecodeFisherStudent), nil, core.ErrInsufficientData},
		{"fisher negative size", wrap(DecodeFisherStudent), []float64{0.05, -1}, core.ErrMalformedInput},
		{"grubbs short header", wrap(DecodeGrubbs), []float64{3, 0, 0.05}, core.ErrInsufficientData},
		{"grubbs n mismatch", wrap(DecodeGrubbs), []float64{4, 0, 0.05, 0, 1, 1, 2, 3}, core.ErrMalformedInput},
		{"shapiro trailing", wrap(DecodeShapiroWilk), []float64{2, 1, 2, 3}, core.ErrMalformedInput},
		{"wilcoxon short header", wrap(DecodeWilcoxon), []float64{0.05, 2}, core.ErrInsufficientData},
		{"wilcoxon size mismatch", wrap(DecodeWilcoxon), []float64{0.05, 2, 2, 1, 2, 3}, core.ErrMalformedInput},
		{"anova huge group size", wrap(DecodeAnova), []float64{2, 1e300, 1, 2}, core.ErrMalformedInput},
		{"anova huge group count", wrap(DecodeAnova), []float64{1e18, 1, 2}, core.ErrMalformedInput},
		{"shapiro huge n", wrap(DecodeShapiroWilk), []float64{1e300, 1, 2, 3}, core.ErrMalformedInput},
		{"grubbs huge n", wrap(DecodeGrubbs), []float64{1e300, 0, 0.05, 0, 1, 1, 2, 3}, core.ErrMalformedInput},
		{"grubbs huge mode", wrap(DecodeGrubbs), []float64{3, 1e300, 0.05, 0, 1, 1, 2, 3}, core.ErrMalformedInput},
		{"wilcoxon huge m", wrap(DecodeWilcoxon), []float64{0.05, 1e300, 1, 1, 2}, core.ErrMalformedInput},
		{"fisher huge size", wrap(DecodeFisherStudent), []float64{0.05, 1e19, 1}, core.ErrMalformedInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.decode(tc.data)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func wrap[T any](decode func([]float64) (T, error)) func([]float64) error {
	return func(data []float64) error {
		_, err := decode(data)
		return err
	}
}
