package trends

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultPlotWidth = 48

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

type RenderOptions struct {
	Width int
}

func renderView(state State, opts RenderOptions, s styles) string {
	lines := make([]string, 0, 8)

	if state.CPUCores != "" {
		lines = append(lines, s.detail.Render(state.CPUCores))
	}

	switch {
	case state.Loading:
		lines = append(lines, s.loading.Render(state.Results))
	case state.Failed:
		lines = append(lines, s.failure.Render(state.Results))
	case state.Results != "":
		lines = append(lines, s.title.Render(state.Results))
	}

	if !state.HasChart {
		if len(lines) == 0 {
			lines = append(lines, s.empty.Render("No trends requested yet."))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(renderChart(state.Chart, opts, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderChart(chart domain.Chart, opts RenderOptions, s styles) string {
	if len(chart.Datasets) == 0 {
		return s.empty.Render("No series returned.")
	}

	width := opts.Width
	if width <= 0 {
		width = defaultPlotWidth
	}

	labelWidth := 0
	for _, dataset := range chart.Datasets {
		labelWidth = max(labelWidth, lipgloss.Width(dataset.Label))
	}

	view := chart.View()
	lines := []string{s.axis.Render(axisLine(chart, view))}
	for _, dataset := range chart.Datasets {
		color := lipgloss.NewStyle().Foreground(lipgloss.Color(dataset.Color.Hex()))
		marker := "───"
		if dataset.Dashed() {
			marker = "- -"
		}
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.label.Render(fmt.Sprintf("%-*s", labelWidth, dataset.Label)),
			" ",
			color.Render(marker),
			" ",
			color.Render(Sparkline(dataset.Data, view, width)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func axisLine(chart domain.Chart, view domain.Viewport) string {
	first, last := dayAt(chart.Labels, view.XMin), dayAt(chart.Labels, view.XMax)
	line := fmt.Sprintf("%s → %s   y %.2f … %.2f", first, last, view.YMin, view.YMax)
	if chart.Zoomed() {
		line += "   [zoomed]"
	}
	return line
}

func dayAt(labels []string, x float64) string {
	i := int(math.Round(x))
	if i >= 0 && i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("Day %d", i+1)
}

// Sparkline samples data across the viewport's x range and maps each sample to a block
// level within its y range. Samples outside the window are blank.
func Sparkline(data []float64, view domain.Viewport, width int) string {
	if width <= 0 || len(data) == 0 {
		return ""
	}

	span := view.YMax - view.YMin
	var b strings.Builder
	for col := 0; col < width; col++ {
		x := view.XMin
		if width > 1 {
			x += (view.XMax - view.XMin) * float64(col) / float64(width-1)
		}

		v, ok := sampleAt(data, x)
		if !ok || span <= 0 || v < view.YMin || v > view.YMax {
			b.WriteRune(' ')
			continue
		}

		level := int(math.Round((v - view.YMin) / span * float64(len(sparkLevels)-1)))
		b.WriteRune(sparkLevels[level])
	}

	return strings.TrimRight(b.String(), " ")
}

func sampleAt(data []float64, x float64) (float64, bool) {
	if math.IsNaN(x) || x < 0 || x > float64(len(data)-1) {
		return 0, false
	}

	lo := int(math.Floor(x))
	hi := int(math.Ceil(x))
	if lo == hi {
		return data[lo], !math.IsNaN(data[lo])
	}

	frac := x - float64(lo)
	v := data[lo] + (data[hi]-data[lo])*frac
	return v, !math.IsNaN(v)
}
