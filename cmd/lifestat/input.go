package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"

	"lifestat/adapters/excel"
	"lifestat/adapters/inp"
	"lifestat/domain/core"
	"lifestat/domain/lifedata"
	"lifestat/internal"
)

// inputFlags selects where a command reads its numbers from. At most one of
// File, Tag and Xlsx may be set; otherwise positional arguments are used.
type inputFlags struct {
	File     string
	Tag      string
	Xlsx     string
	Censored string
}

func (f *inputFlags) sources() int {
	n := 0
	for _, s := range []string{f.File, f.Tag, f.Xlsx} {
		if s != "" {
			n++
		}
	}
	return n
}

// load returns values and parallel censoring flags. Flags are nil when the
// input carries none.
func (f *inputFlags) load(inputDir string, args []string, logger *internal.Logger) ([]float64, []int, error) {
	if f.sources() > 1 {
		return nil, nil, fmt.Errorf("%w: use only one of --file, --tag and --xlsx", core.ErrMalformedInput)
	}

	switch {
	case f.File != "":
		fh, err := os.Open(f.File)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", f.File, err)
		}
		defer fh.Close()
		sample, err := inp.Read(fh)
		if err != nil {
			return nil, nil, err
		}
		return sample.Values(), sample.Flags(), nil

	case f.Tag != "":
		sample, err := inp.ReadFile(inputDir, f.Tag)
		if err != nil {
			return nil, nil, err
		}
		return sample.Values(), sample.Flags(), nil

	case f.Xlsx != "":
		sample, err := excel.ReadSample(f.Xlsx, logger)
		if err != nil {
			return nil, nil, err
		}
		return sample.Values(), sample.Flags(), nil
	}

	values, err := parseNumbers(args)
	if err != nil {
		return nil, nil, err
	}
	if f.Censored == "" {
		return values, nil, nil
	}
	raw, err := parseNumbers([]string{f.Censored})
	if err != nil {
		return nil, nil, err
	}
	flags := make([]int, len(raw))
	for i, v := range raw {
		if flags[i], err = cast.ToIntE(v); err != nil || float64(flags[i]) != v {
			return nil, nil, fmt.Errorf("%w: censoring flag %q is not an integer", core.ErrMalformedInput, cast.ToString(v))
		}
	}
	return values, flags, nil
}

// parseNumbers accepts numbers as separate arguments, comma lists or both.
func parseNumbers(args []string) ([]float64, error) {
	var out []float64
	for _, arg := range args {
		for _, tok := range strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || r == ' ' }) {
			v, err := cast.ToFloat64E(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a number", core.ErrMalformedInput, tok)
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// saveInput stores the input sample as <dir>/<tag>.inp and/or an xlsx
// workbook. Empty targets are skipped.
func saveInput(dir, tag, xlsxPath string, values []float64, flags []int, logger *internal.Logger) error {
	if tag == "" && xlsxPath == "" {
		return nil
	}
	sample, err := lifedata.NewSample(values, flags)
	if err != nil {
		return err
	}
	if tag != "" {
		if err := inp.WriteFile(dir, tag, sample); err != nil {
			return err
		}
		logger.Info("input saved to %s", inp.Path(dir, tag))
	}
	if xlsxPath != "" {
		if err := excel.WriteSample(xlsxPath, sample); err != nil {
			return err
		}
		logger.Info("input saved to %s", xlsxPath)
	}
	return nil
}
