package domain

import (
	"fmt"
	"math"
)

type DatasetKind string

const (
	DatasetKindTrend      DatasetKind = "trend"
	DatasetKindPrediction DatasetKind = "prediction"

	LineTension = 0.3
)

// PredictionDash is the stroke pattern for forecast lines.
var PredictionDash = []float64{5, 5}

type RGB struct {
	R uint8
	G uint8
	B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type Dataset struct {
	Label string
	Data  []float64
	Color RGB
	Kind  DatasetKind
}

func (d Dataset) Dashed() bool {
	return d.Kind == DatasetKindPrediction
}

// Viewport is the visible window of a chart. The zero value means the full data range.
type Viewport struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
	Set  bool
}

type Chart struct {
	Instance uint64
	Labels   []string
	Datasets []Dataset
	Viewport Viewport
}

// BuildChart turns a successful trends payload into chart datasets. Trend datasets come
// first, one per trend series, followed by one dashed dataset per prediction series. Every
// dataset asks nextColor for its own color.
func BuildChart(symbols []string, resp TrendResponse, nextColor func() RGB) Chart {
	datasets := make([]Dataset, 0, len(resp.Trends)+len(resp.Predictions))
	for i, trend := range resp.Trends {
		datasets = append(datasets, Dataset{
			Label: seriesLabel(symbols, i, "Trend"),
			Data:  trend,
			Color: nextColor(),
			Kind:  DatasetKindTrend,
		})
	}
	for i, prediction := range resp.Predictions {
		datasets = append(datasets, Dataset{
			Label: seriesLabel(symbols, i, "Prediction"),
			Data:  prediction,
			Color: nextColor(),
			Kind:  DatasetKindPrediction,
		})
	}

	return Chart{
		Labels:   DayLabels(resp.MaxTrendLength()),
		Datasets: datasets,
	}
}

func DayLabels(n int) []string {
	labels := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		labels = append(labels, fmt.Sprintf("Day %d", i))
	}

	return labels
}

func seriesLabel(symbols []string, index int, suffix string) string {
	if index < len(symbols) {
		return symbols[index] + " " + suffix
	}

	return fmt.Sprintf("Series %d %s", index+1, suffix)
}

// Bounds is the full data range: x spans label indexes and y spans every value.
func (c Chart) Bounds() Viewport {
	xMax := float64(len(c.Labels) - 1)
	for _, dataset := range c.Datasets {
		if n := float64(len(dataset.Data) - 1); n > xMax {
			xMax = n
		}
	}
	if xMax < 0 {
		xMax = 0
	}

	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, dataset := range c.Datasets {
		for _, v := range dataset.Data {
			if math.IsNaN(v) {
				continue
			}
			yMin = math.Min(yMin, v)
			yMax = math.Max(yMax, v)
		}
	}
	if math.IsInf(yMin, 1) {
		yMin, yMax = 0, 1
	}
	if yMin == yMax {
		yMin--
		yMax++
	}

	return Viewport{XMin: 0, XMax: xMax, YMin: yMin, YMax: yMax}
}

// View is the window currently shown: the stored viewport when zoomed or panned, the
// data bounds otherwise.
func (c Chart) View() Viewport {
	if c.Viewport.Set {
		return c.Viewport
	}

	return c.Bounds()
}

func (c Chart) Zoomed() bool {
	return c.Viewport.Set
}

// Zoom scales the visible window around its center. Factors above 1 zoom in.
func (c *Chart) Zoom(factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}

	view := c.View()
	cx := (view.XMin + view.XMax) / 2
	cy := (view.YMin + view.YMax) / 2
	halfX := (view.XMax - view.XMin) / 2 / factor
	halfY := (view.YMax - view.YMin) / 2 / factor

	c.Viewport = Viewport{
		XMin: cx - halfX,
		XMax: cx + halfX,
		YMin: cy - halfY,
		YMax: cy + halfY,
		Set:  true,
	}
}

// Pan shifts the visible window by fractions of its own width and height.
func (c *Chart) Pan(dx, dy float64) {
	view := c.View()
	shiftX := (view.XMax - view.XMin) * dx
	shiftY := (view.YMax - view.YMin) * dy

	c.Viewport = Viewport{
		XMin: view.XMin + shiftX,
		XMax: view.XMax + shiftX,
		YMin: view.YMin + shiftY,
		YMax: view.YMax + shiftY,
		Set:  true,
	}
}

func (c *Chart) ResetZoom() {
	c.Viewport = Viewport{}
}

// Clone returns a deep copy so callers outside the owning cell cannot mutate it.
func (c Chart) Clone() Chart {
	out := Chart{
		Instance: c.Instance,
		Labels:   append([]string(nil), c.Labels...),
		Datasets: make([]Dataset, 0, len(c.Datasets)),
		Viewport: c.Viewport,
	}
	for _, dataset := range c.Datasets {
		dataset.Data = append([]float64(nil), dataset.Data...)
		out.Datasets = append(out.Datasets, dataset)
	}

	return out
}
