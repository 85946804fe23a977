package chartimg

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/bnema/stockboard-cli/internal/application"
	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"

	defaultWidth  = 1024
	defaultHeight = 512
	maxTicks      = 12
)

type Options struct {
	Format Format
	Width  int
	Height int
}

// FormatFromPath picks the image format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported image extension %q (want .png or .svg)", filepath.Ext(path))
	}
}

// Render draws the chart's current viewport. Prediction series are dashed.
func Render(w io.Writer, c domain.Chart, opts Options) error {
	series := buildSeries(c)
	if len(series) == 0 {
		return fmt.Errorf("render chart image: %w", domain.ErrNoChart)
	}

	view := c.View()
	if view.XMax <= view.XMin {
		view.XMax = view.XMin + 1
	}

	ch := chart.Chart{
		Title:      application.ResultsHeading,
		Width:      orDefault(opts.Width, defaultWidth),
		Height:     orDefault(opts.Height, defaultHeight),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: view.XMin, Max: view.XMax},
			Ticks: dayTicks(c.Labels, view),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: view.YMin, Max: view.YMax},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.LegendLeft(&ch)}

	provider := chart.PNG
	if opts.Format == FormatSVG {
		provider = chart.SVG
	}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render chart image: %w", err)
	}

	return nil
}

func buildSeries(c domain.Chart) []chart.Series {
	series := make([]chart.Series, 0, len(c.Datasets))
	for _, dataset := range c.Datasets {
		xs, ys := points(dataset.Data)
		if len(xs) == 0 {
			continue
		}
		// a line needs two points
		if len(xs) == 1 {
			xs = append(xs, xs[0]+0.5)
			ys = append(ys, ys[0])
		}

		series = append(series, chart.ContinuousSeries{
			Name:    dataset.Label,
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(dataset),
		})
	}

	return series
}

func points(data []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(data))
	ys := make([]float64, 0, len(data))
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}

	return xs, ys
}

func seriesStyle(dataset domain.Dataset) chart.Style {
	style := chart.Style{
		StrokeColor: drawing.Color{R: dataset.Color.R, G: dataset.Color.G, B: dataset.Color.B, A: 255},
		StrokeWidth: 2,
	}
	if dataset.Dashed() {
		style.StrokeDashArray = append([]float64(nil), domain.PredictionDash...)
	}

	return style
}

func dayTicks(labels []string, view domain.Viewport) []chart.Tick {
	first := int(math.Ceil(view.XMin))
	last := int(math.Floor(view.XMax))
	if first < 0 {
		first = 0
	}
	if last >= len(labels) {
		last = len(labels) - 1
	}
	if last < first {
		return nil
	}

	step := 1
	if n := last - first + 1; n > maxTicks {
		step = int(math.Ceil(float64(n) / maxTicks))
	}

	ticks := make([]chart.Tick, 0, maxTicks+1)
	for i := first; i <= last; i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	// go-chart wants at least two ticks when they are set explicitly
	if len(ticks) < 2 {
		return nil
	}

	return ticks
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
