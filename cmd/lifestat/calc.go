package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lifestat/adapters/methods"
	"lifestat/adapters/report"
	"lifestat/domain/core"
	"lifestat/internal/errors"
)

// calcOutput is the structured form of one run for --format json|yaml.
type calcOutput struct {
	RunID      string            `json:"run_id" yaml:"run_id"`
	Kind       methods.Kind      `json:"kind" yaml:"kind"`
	InputHash  string            `json:"input_hash" yaml:"input_hash"`
	ComputedAt string            `json:"computed_at" yaml:"computed_at"`
	Result     methods.FitResult `json:"result" yaml:"result"`
	Report     string            `json:"report" yaml:"report"`
}

func newCalcCmd(a *app) *cobra.Command {
	var (
		in      inputFlags
		format  string
		saveTag  string
		saveXlsx string
	)

	cmd := &cobra.Command{
		Use:   "calc <kind> [values...]",
		Short: "Run one method and print its report",
		Long: `Run one analysis method.

Distribution methods (mle-normal, mle-weibull, mls-normal, mls-weibull) read a
sample with optional censoring flags (0 event, 1 censored). Hypothesis tests
read their positional layout; see "lifestat methods".

Examples:
  lifestat calc mle-weibull --file Inp/pump.inp
  lifestat calc mls-normal 12 15 17 21 --censored 0,0,1,0 --format json
  lifestat calc shapiro-wilk 5 1.2 1.9 2.4 3.1 3.3

Values starting with "-" must follow "--", otherwise they parse as flags:
  lifestat calc fisher-student --format json -- 0.05 3 -1 2 3 3 4 5 6`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := methods.ParseKind(args[0])
			if err != nil {
				return err
			}
			values, flags, err := in.load(a.cfg.Paths.InputDir, args[1:], a.logger)
			if err != nil {
				return err
			}

			if err := saveInput(a.cfg.Paths.InputDir, saveTag, saveXlsx, values, flags, a.logger); err != nil {
				return err
			}

			res, err := methods.Fit(kind, values, flags, methods.Options{
				Tolerance: a.cfg.Analysis.NelderMeadTolerance,
				Logger:    a.logger,
			})
			if err != nil {
				return errors.Wrapf(err, "%s failed", kind)
			}
			return writeResult(cmd.OutOrStdout(), format, kind, values, flags, res)
		},
	}

	cmd.Flags().StringVar(&in.File, "file", "", "Read the sample from an .inp file")
	cmd.Flags().StringVar(&in.Tag, "tag", "", "Read <INP_DIR>/<tag>.inp")
	cmd.Flags().StringVar(&in.Xlsx, "xlsx", "", "Read the sample from an .xlsx or .csv file (column A values, column B flags)")
	cmd.Flags().StringVar(&in.Censored, "censored", "", "Comma-separated censoring flags for positional values")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json|yaml|html")
	cmd.Flags().StringVar(&saveTag, "save-inp", "", "Also store the input as <INP_DIR>/<tag>.inp")
	cmd.Flags().StringVar(&saveXlsx, "save-xlsx", "", "Also store the input as an .xlsx workbook at this path")
	return cmd
}

func writeResult(w io.Writer, format string, kind methods.Kind, values []float64, flags []int, res methods.FitResult) error {
	text := res.Report()

	switch format {
	case "text":
		_, err := io.WriteString(w, text)
		return err
	case "html":
		_, err := w.Write(report.HTML(text))
		return err
	case "json", "yaml":
		out := calcOutput{
			RunID:      core.NewRunID().String(),
			Kind:       kind,
			InputHash:  core.ComputeInputHash(string(kind), values, flags).String(),
			ComputedAt: core.Now().Time().Format(time.RFC3339),
			Result:     res,
			Report:     text,
		}
		if format == "yaml" {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			return enc.Close()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return errors.InvalidInput(fmt.Sprintf("unknown format %q (want text, json, yaml or html)", format))
	}
}
