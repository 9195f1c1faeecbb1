// Package inp reads and writes the tagged plain-text sample files
// ("<tag>.inp"):
//
//	<label> <n>
//	X
//	v1 v2 ... vn
//	R
//	r1 r2 ... rn
//
// "Data" may replace "X" and "Censorizes" may replace "R". Values and flags
// are separated by whitespace or commas.
package inp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"

	"lifestat/domain/core"
	"lifestat/domain/lifedata"
)

// Extension is the file suffix of sample files.
const Extension = ".inp"

// File is a decoded sample file.
type File struct {
	Label  string
	Sample lifedata.Sample
	// Skipped counts value slots whose token was not a number.
	Skipped int
}

type tokenizer struct {
	scanner *bufio.Scanner
	pending []string
}

func newTokenizer(r io.Reader) *tokenizer {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &tokenizer{scanner: s}
}

// next returns the next comma-free token, or false at end of input.
func (t *tokenizer) next() (string, bool) {
	for len(t.pending) == 0 {
		if !t.scanner.Scan() {
			return "", false
		}
		t.pending = strings.FieldsFunc(t.scanner.Text(), func(r rune) bool { return r == ',' })
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	return tok, true
}

func (t *tokenizer) skipTo(markers ...string) bool {
	for {
		tok, ok := t.next()
		if !ok {
			return false
		}
		for _, m := range markers {
			if tok == m {
				return true
			}
		}
	}
}

// Decode parses a sample file. Each of the n value slots takes one token;
// a token that is not a number is skipped together with its censoring flag.
// Missing or invalid flags default to 0 (event).
func Decode(r io.Reader) (File, error) {
	tok := newTokenizer(r)

	label, ok := tok.next()
	if !ok {
		return File{}, fmt.Errorf("%w: empty sample file", core.ErrInsufficientData)
	}
	countTok, ok := tok.next()
	if !ok {
		return File{}, fmt.Errorf("%w: missing sample size after label %q", core.ErrMalformedInput, label)
	}
	n, err := sampleSize(countTok)
	if err != nil {
		return File{}, err
	}

	if !tok.skipTo("X", "Data") {
		return File{}, fmt.Errorf("%w: missing X/Data marker", core.ErrMalformedInput)
	}
	var (
		values  []float64
		valid   []bool
		skipped int
	)
	for i := 0; i < n; i++ {
		t, ok := tok.next()
		if !ok || t == "R" || t == "Censorizes" {
			return File{}, fmt.Errorf("%w: expected %d values, found %d", core.ErrMalformedInput, n, i)
		}
		v, err := cast.ToFloat64E(t)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			skipped++
			values, valid = append(values, 0), append(valid, false)
			continue
		}
		values, valid = append(values, v), append(valid, true)
	}

	flags := make([]int, len(values))
	if tok.skipTo("R", "Censorizes") {
		for i := range flags {
			t, ok := tok.next()
			if !ok {
				break
			}
			if f, err := cast.ToFloat64E(t); err == nil && f == 1 {
				flags[i] = 1
			}
		}
	}

	obs := make([]lifedata.Observation, 0, len(values))
	for i := range values {
		if valid[i] {
			obs = append(obs, lifedata.Observation{Value: values[i], Censored: flags[i] == 1})
		}
	}
	if len(obs) == 0 {
		return File{}, fmt.Errorf("%w: no numeric values in sample file", core.ErrInsufficientData)
	}
	return File{Label: label, Sample: lifedata.FromObservations(obs), Skipped: skipped}, nil
}

// sampleSize parses the header count in base 10. Leading zeros do not make
// it octal.
func sampleSize(tok string) (int, error) {
	v, err := cast.ToFloat64E(tok)
	if err != nil || v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: sample size %q is not a non-negative integer", core.ErrMalformedInput, tok)
	}
	return int(v), nil
}

// Read parses a sample file and returns its sample.
func Read(r io.Reader) (lifedata.Sample, error) {
	f, err := Decode(r)
	if err != nil {
		return lifedata.Sample{}, err
	}
	return f.Sample, nil
}

// Path returns the location of the sample file for tag under dir.
func Path(dir, tag string) string {
	return filepath.Join(dir, tag+Extension)
}

// ReadFile reads dir/<tag>.inp.
func ReadFile(dir, tag string) (lifedata.Sample, error) {
	fh, err := os.Open(Path(dir, tag))
	if err != nil {
		return lifedata.Sample{}, fmt.Errorf("open sample file: %w", err)
	}
	defer fh.Close()
	return Read(fh)
}

// Write emits sample in the layout Decode reads.
func Write(w io.Writer, label string, sample lifedata.Sample) error {
	if label == "" || strings.ContainsAny(label, " \t\r\n,") {
		return fmt.Errorf("%w: label %q must be a single non-empty word", core.ErrMalformedInput, label)
	}
	values := sample.Values()
	flags := sample.Flags()

	vs := make([]string, len(values))
	for i, v := range values {
		vs[i] = cast.ToString(v)
	}
	fs := make([]string, len(flags))
	for i, f := range flags {
		fs[i] = cast.ToString(f)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %d\n", label, len(values))
	fmt.Fprintf(bw, "X\n%s\n", strings.Join(vs, " "))
	fmt.Fprintf(bw, "R\n%s\n", strings.Join(fs, " "))
	return bw.Flush()
}

// WriteFile writes dir/<tag>.inp, creating dir when needed.
func WriteFile(dir, tag string, sample lifedata.Sample) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sample directory: %w", err)
	}
	fh, err := os.Create(Path(dir, tag))
	if err != nil {
		return fmt.Errorf("create sample file: %w", err)
	}
	if err := Write(fh, tag, sample); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
