package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lifestat/adapters/methods"
	"lifestat/adapters/plot"
	"lifestat/internal/errors"
)

func newPlotCmd(a *app) *cobra.Command {
	var (
		in  inputFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "plot <kind> [values...]",
		Short: "Render the probability plot of a distribution fit",
		Long: `Fit a distribution method and render its probability plot.

The image format follows PLOT_FORMAT (png or svg); the default output is
<OUTPUT_DIR>/<kind>.<format>.

Example: lifestat plot mle-weibull --file Inp/pump.inp --out pump.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := methods.ParseKind(args[0])
			if err != nil {
				return err
			}
			if !kind.HasGraph() {
				return errors.InvalidInput(fmt.Sprintf("method %s has no graph", kind))
			}
			values, flags, err := in.load(a.cfg.Paths.InputDir, args[1:], a.logger)
			if err != nil {
				return err
			}

			m := methods.New(kind, methods.Options{
				Tolerance: a.cfg.Analysis.NelderMeadTolerance,
				Logger:    a.logger,
			})
			if _, err := m.Run(values, flags); err != nil {
				return errors.Wrapf(err, "%s failed", kind)
			}

			renderer := plot.NewRenderer(a.cfg.Plot, a.logger)
			if out == "" {
				out = filepath.Join(a.cfg.Paths.OutputDir, string(kind)+"."+renderer.Format())
			}
			chart := plot.Chart{Title: kind.DisplayName(), Series: m.GraphData(), LogScaleX: kind.LogScaleX()}
			if err := renderer.RenderFile(out, chart); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.File, "file", "", "Read the sample from an .inp file")
	cmd.Flags().StringVar(&in.Tag, "tag", "", "Read <INP_DIR>/<tag>.inp")
	cmd.Flags().StringVar(&in.Xlsx, "xlsx", "", "Read the sample from an .xlsx or .csv file")
	cmd.Flags().StringVar(&in.Censored, "censored", "", "Comma-separated censoring flags for positional values")
	cmd.Flags().StringVar(&out, "out", "", "Output image path")
	return cmd
}
