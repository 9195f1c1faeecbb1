package methods

import (
	"fmt"
	"math"

	"lifestat/adapters/stats/hypothesis"
	"lifestat/domain/core"
)

// The hypothesis tests accept flat positional arrays. Decoding is strict:
// every count must be a non-negative integer and the array must be consumed
// exactly. A missing header is insufficient data; anything else that does not
// match the declared layout is malformed input.

type cursor struct {
	data []float64
	pos  int
}

func (c *cursor) remaining() int { return len(c.data) - c.pos }

func (c *cursor) next() float64 {
	v := c.data[c.pos]
	c.pos++
	return v
}

func (c *cursor) count(field string) (int, error) {
	if c.remaining() < 1 {
		return 0, fmt.Errorf("%w: missing %s", core.ErrInsufficientData, field)
	}
	v := c.next()
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %g", core.ErrMalformedInput, field, v)
	}
	// No count can exceed the array it is declared in.
	if v > float64(len(c.data)) {
		return 0, fmt.Errorf("%w: %s %g exceeds the %d input values", core.ErrMalformedInput, field, v, len(c.data))
	}
	return int(v), nil
}

func (c *cursor) values(n int, field string) ([]float64, error) {
	if c.remaining() < n {
		return nil, fmt.Errorf("%w: %s declares %d values but only %d remain",
			core.ErrMalformedInput, field, n, c.remaining())
	}
	out := append([]float64(nil), c.data[c.pos:c.pos+n]...)
	c.pos += n
	return out, nil
}

func (c *cursor) done() error {
	if c.remaining() != 0 {
		return fmt.Errorf("%w: %d trailing values after the declared layout", core.ErrMalformedInput, c.remaining())
	}
	return nil
}

// DecodeAnova reads [k, n1, v1..vn1, n2, v1..vn2, ...].
func DecodeAnova(data []float64) (hypothesis.AnovaRequest, error) {
	c := &cursor{data: data}
	k, err := c.count("group count k")
	if err != nil {
		return hypothesis.AnovaRequest{}, err
	}
	if k < 2 {
		return hypothesis.AnovaRequest{}, fmt.Errorf("%w: ANOVA needs at least 2 groups, got %d", core.ErrInsufficientData, k)
	}
	req := hypothesis.AnovaRequest{Groups: make([][]float64, k)}
	for i := 0; i < k; i++ {
		field := fmt.Sprintf("group %d size", i+1)
		n, err := c.count(field)
		if err != nil {
			return hypothesis.AnovaRequest{}, err
		}
		if req.Groups[i], err = c.values(n, fmt.Sprintf("group %d", i+1)); err != nil {
			return hypothesis.AnovaRequest{}, err
		}
	}
	return req, c.done()
}

// EncodeAnova is the inverse of DecodeAnova.
func EncodeAnova(req hypothesis.AnovaRequest) []float64 {
	out := []float64{float64(len(req.Groups))}
	for _, g := range req.Groups {
		out = append(out, float64(len(g)))
		out = append(out, g...)
	}
	return out
}

// DecodeFisherStudent reads [alpha, n1, sample1..., n2, sample2...].
func DecodeFisherStudent(data []float64) (hypothesis.FisherStudentRequest, error) {
	c := &cursor{data: data}
	if c.remaining() < 1 {
		return hypothesis.FisherStudentRequest{}, fmt.Errorf("%w: missing significance level", core.ErrInsufficientData)
	}
	req := hypothesis.FisherStudentRequest{Alpha: c.next()}
	n1, err := c.count("first sample size")
	if err != nil {
		return hypothesis.FisherStudentRequest{}, err
	}
	if req.Sample1, err = c.values(n1, "first sample"); err != nil {
		return hypothesis.FisherStudentRequest{}, err
	}
	n2, err := c.count("second sample size")
	if err != nil {
		return hypothesis.FisherStudentRequest{}, err
	}
	if req.Sample2, err = c.values(n2, "second sample"); err != nil {
		return hypothesis.FisherStudentRequest{}, err
	}
	return req, c.done()
}

// EncodeFisherStudent is the inverse of DecodeFisherStudent.
func EncodeFisherStudent(req hypothesis.FisherStudentRequest) []float64 {
	out := []float64{req.Alpha, float64(len(req.Sample1))}
	out = append(out, req.Sample1...)
	out = append(out, float64(len(req.Sample2)))
	return append(out, req.Sample2...)
}

// DecodeGrubbs reads [n, mode, alpha, true-mean, true-sd, sample...].
func DecodeGrubbs(data []float64) (hypothesis.GrubbsRequest, error) {
	c := &cursor{data: data}
	if c.remaining() < 5 {
		return hypothesis.GrubbsRequest{}, fmt.Errorf("%w: Grubbs header needs 5 values, got %d",
			core.ErrInsufficientData, c.remaining())
	}
	n, err := c.count("sample size n")
	if err != nil {
		return hypothesis.GrubbsRequest{}, err
	}
	mode, err := c.count("mode")
	if err != nil {
		return hypothesis.GrubbsRequest{}, err
	}
	req := hypothesis.GrubbsRequest{
		Mode:     hypothesis.GrubbsMode(mode),
		Alpha:    c.next(),
		TrueMean: c.next(),
		TrueSD:   c.next(),
	}
	if req.Sample, err = c.values(n, "sample"); err != nil {
		return hypothesis.GrubbsRequest{}, err
	}
	return req, c.done()
}

// EncodeGrubbs is the inverse of DecodeGrubbs.
func EncodeGrubbs(req hypothesis.GrubbsRequest) []float64 {
	out := []float64{float64(len(req.Sample)), float64(req.Mode), req.Alpha, req.TrueMean, req.TrueSD}
	return append(out, req.Sample...)
}

// DecodeShapiroWilk reads [n, sample...].
func DecodeShapiroWilk(data []float64) (hypothesis.ShapiroWilkRequest, error) {
	c := &cursor{data: data}
	n, err := c.count("sample size n")
	if err != nil {
		return hypothesis.ShapiroWilkRequest{}, err
	}
	var req hypothesis.ShapiroWilkRequest
	if req.Sample, err = c.values(n, "sample"); err != nil {
		return hypothesis.ShapiroWilkRequest{}, err
	}
	return req, c.done()
}

// EncodeShapiroWilk is the inverse of DecodeShapiroWilk.
func EncodeShapiroWilk(req hypothesis.ShapiroWilkRequest) []float64 {
	return append([]float64{float64(len(req.Sample))}, req.Sample...)
}

// DecodeWilcoxon reads [alpha, m, n, sample1 (m values), sample2 (n values)].
func DecodeWilcoxon(data []float64) (hypothesis.WilcoxonRequest, error) {
	c := &cursor{data: data}
	if c.remaining() < 3 {
		return hypothesis.WilcoxonRequest{}, fmt.Errorf("%w: Wilcoxon header needs 3 values, got %d",
			core.ErrInsufficientData, c.remaining())
	}
	req := hypothesis.WilcoxonRequest{Alpha: c.next()}
	m, err := c.count("first sample size m")
	if err != nil {
		return hypothesis.WilcoxonRequest{}, err
	}
	n, err := c.count("second sample size n")
	if err != nil {
		return hypothesis.WilcoxonRequest{}, err
	}
	if req.Sample1, err = c.values(m, "first sample"); err != nil {
		return hypothesis.WilcoxonRequest{}, err
	}
	if req.Sample2, err = c.values(n, "second sample"); err != nil {
		return hypothesis.WilcoxonRequest{}, err
	}
	return req, c.done()
}

// EncodeWilcoxon is the inverse of DecodeWilcoxon.
func EncodeWilcoxon(req hypothesis.WilcoxonRequest) []float64 {
	out := []float64{req.Alpha, float64(len(req.Sample1)), float64(len(req.Sample2))}
	out = append(out, req.Sample1...)
	return append(out, req.Sample2...)
}
