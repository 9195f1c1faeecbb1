// Package plot renders the graph series of a distribution fit onto
// probability paper as PNG or SVG.
package plot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"lifestat/domain/core"
	"lifestat/domain/lifedata"
	"lifestat/internal"
	"lifestat/internal/config"
)

// Chart is everything a renderer needs for one figure.
type Chart struct {
	Title     string
	Series    []lifedata.GraphSeries
	LogScaleX bool
}

// Renderer draws charts at a fixed size and format.
type Renderer struct {
	format string
	width  vg.Length
	height vg.Length
	logger *internal.Logger
}

// NewRenderer creates a renderer from the plot configuration.
func NewRenderer(cfg config.PlotConfig, logger *internal.Logger) *Renderer {
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "png"
	}
	return &Renderer{
		format: format,
		width:  vg.Length(cfg.WidthIn) * vg.Inch,
		height: vg.Length(cfg.HeightIn) * vg.Inch,
		logger: logger.Named("plot"),
	}
}

// Format returns the image format, also used as file extension.
func (r *Renderer) Format() string { return r.format }

// Render writes the chart image to w.
func (r *Renderer) Render(w io.Writer, chart Chart) error {
	p, err := r.build(chart)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(r.width, r.height, r.format)
	if err != nil {
		return fmt.Errorf("failed to prepare %s canvas: %w", r.format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s image: %w", r.format, err)
	}
	return nil
}

// RenderFile writes the chart to path, creating parent directories.
func (r *Renderer) RenderFile(path string, chart Chart) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.Render(f, chart); err != nil {
		f.Close()
		return err
	}
	r.logger.Info("chart %q written to %s", chart.Title, path)
	return f.Close()
}

func (r *Renderer) build(chart Chart) (*gplot.Plot, error) {
	total := 0
	for _, s := range chart.Series {
		total += len(s.Points)
		if !chart.LogScaleX {
			continue
		}
		for _, pt := range s.Points {
			if pt.X <= 0 {
				return nil, fmt.Errorf("%w: series %q has x=%g on a log axis", core.ErrMalformedInput, s.Name, pt.X)
			}
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: nothing to plot", core.ErrInsufficientData)
	}

	p := gplot.New()
	p.Title.Text = chart.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "5 + z"
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())
	if chart.LogScaleX {
		p.X.Scale = gplot.LogScale{}
		p.X.Tick.Marker = gplot.LogTicks{Prec: -1}
	}

	for i, s := range chart.Series {
		if len(s.Points) == 0 {
			continue
		}
		if s.Scatter {
			sc, err := plotter.NewScatter(s.Points)
			if err != nil {
				return nil, fmt.Errorf("series %q: %w", s.Name, err)
			}
			sc.GlyphStyle.Color = plotutil.Color(i)
			sc.GlyphStyle.Radius = vg.Points(2.5)
			if s.Name == lifedata.SeriesCensored {
				sc.GlyphStyle.Shape = draw.CrossGlyph{}
			} else {
				sc.GlyphStyle.Shape = draw.CircleGlyph{}
			}
			p.Add(sc)
			p.Legend.Add(s.Name, sc)
			continue
		}

		ln, err := plotter.NewLine(s.Points)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		ln.LineStyle.Color = plotutil.Color(i)
		ln.LineStyle.Width = vg.Points(1)
		if s.Name == lifedata.SeriesLowerCI || s.Name == lifedata.SeriesUpperCI {
			ln.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(ln)
		p.Legend.Add(s.Name, ln)
	}

	r.logger.Debug("built chart %q with %d series (%d points)", chart.Title, len(chart.Series), total)
	return p, nil
}
