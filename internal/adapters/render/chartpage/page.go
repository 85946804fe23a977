package chartpage

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/bnema/stockboard-cli/internal/application"
	"github.com/bnema/stockboard-cli/internal/domain"
)

const (
	chartJSURL     = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"
	zoomPluginURL  = "https://cdn.jsdelivr.net/npm/chartjs-plugin-zoom@2.0.1/dist/chartjs-plugin-zoom.min.js"
	hammerJSURL    = "https://cdn.jsdelivr.net/npm/hammerjs@2.0.8/hammer.min.js"
	panThreshold   = 10
	panModifierKey = "alt"
)

var pageTemplate = template.Must(template.New("trends").Parse(pageHTMLTemplate))

// Page is one rendered visualizer result.
type Page struct {
	Symbols  []string
	CPUCores int
	Chart    domain.Chart
	// Static disables animation so screenshots capture the final frame.
	Static bool
}

type pageView struct {
	Title      string
	CPUCores   string
	Heading    string
	ChartJS    string
	ZoomPlugin string
	HammerJS   string
	Config     chartConfig
}

type chartConfig struct {
	Type    string       `json:"type"`
	Data    chartData    `json:"data"`
	Options chartOptions `json:"options"`
}

type chartData struct {
	Labels   []string      `json:"labels"`
	Datasets []datasetView `json:"datasets"`
}

type datasetView struct {
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	BorderColor string    `json:"borderColor"`
	Fill        bool      `json:"fill"`
	Tension     float64   `json:"tension"`
	BorderDash  []float64 `json:"borderDash,omitempty"`
}

type chartOptions struct {
	Responsive bool                  `json:"responsive"`
	Animation  bool                  `json:"animation"`
	Plugins    pluginOptions         `json:"plugins"`
	Scales     map[string]axisWindow `json:"scales,omitempty"`
}

type pluginOptions struct {
	Legend legendOptions `json:"legend"`
	Zoom   zoomOptions   `json:"zoom"`
}

type legendOptions struct {
	Position string `json:"position"`
}

type zoomOptions struct {
	Pan  panOptions     `json:"pan"`
	Zoom zoomBehaviours `json:"zoom"`
}

type panOptions struct {
	Enabled     bool   `json:"enabled"`
	Mode        string `json:"mode"`
	Threshold   int    `json:"threshold"`
	ModifierKey string `json:"modifierKey"`
}

type zoomBehaviours struct {
	Mode  string `json:"mode"`
	Wheel toggle `json:"wheel"`
	Pinch toggle `json:"pinch"`
	Drag  toggle `json:"drag"`
}

type toggle struct {
	Enabled bool `json:"enabled"`
}

type axisWindow struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RenderHTML writes a standalone page drawing the chart with Chart.js and its zoom plugin.
// A zoomed chart opens on its stored viewport; the reset button returns to full range.
func RenderHTML(w io.Writer, page Page) error {
	view := pageView{
		Title:      "Stock Trends: " + strings.Join(page.Symbols, ", "),
		CPUCores:   application.CPUCoresMessage(page.CPUCores),
		Heading:    application.ResultsHeading,
		ChartJS:    chartJSURL,
		ZoomPlugin: zoomPluginURL,
		HammerJS:   hammerJSURL,
		Config:     buildConfig(page),
	}

	if err := pageTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("render chart page: %w", err)
	}

	return nil
}

func buildConfig(page Page) chartConfig {
	datasets := make([]datasetView, 0, len(page.Chart.Datasets))
	for _, dataset := range page.Chart.Datasets {
		view := datasetView{
			Label:       dataset.Label,
			Data:        append([]float64{}, dataset.Data...),
			BorderColor: dataset.Color.String(),
			Tension:     domain.LineTension,
		}
		if dataset.Dashed() {
			view.BorderDash = append([]float64(nil), domain.PredictionDash...)
		}
		datasets = append(datasets, view)
	}

	cfg := chartConfig{
		Type: "line",
		Data: chartData{
			Labels:   append([]string{}, page.Chart.Labels...),
			Datasets: datasets,
		},
		Options: chartOptions{
			Responsive: true,
			Animation:  !page.Static,
			Plugins: pluginOptions{
				Legend: legendOptions{Position: "top"},
				Zoom: zoomOptions{
					Pan: panOptions{Enabled: true, Mode: "xy", Threshold: panThreshold, ModifierKey: panModifierKey},
					Zoom: zoomBehaviours{
						Mode:  "xy",
						Wheel: toggle{Enabled: true},
						Pinch: toggle{Enabled: true},
					},
				},
			},
		},
	}

	if page.Chart.Zoomed() {
		vp := page.Chart.Viewport
		cfg.Options.Scales = map[string]axisWindow{
			"x": {Min: vp.XMin, Max: vp.XMax},
			"y": {Min: vp.YMin, Max: vp.YMax},
		}
	}

	return cfg
}

const pageHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>{{.Title}}</title>
  <script src="{{.ChartJS}}"></script>
  <script src="{{.HammerJS}}"></script>
  <script src="{{.ZoomPlugin}}"></script>
  <style>
    body { margin: 0; padding: 24px 32px; font-family: sans-serif; color: #1f1f1f; background: #ffffff; }
    #cpu-cores p { color: #6f6f6f; }
    .chart-wrap { width: 960px; }
    button { margin-top: 12px; padding: 6px 14px; }
  </style>
</head>
<body>
  <div id="cpu-cores"><p>{{.CPUCores}}</p></div>
  <div id="results"><h3>{{.Heading}}</h3></div>
  <div class="chart-wrap"><canvas id="trendChart"></canvas></div>
  <button type="button" onclick="resetZoom()">Reset Zoom</button>
  <script>
    const config = {{.Config}};
    const myChart = new Chart(document.getElementById("trendChart").getContext("2d"), config);
    function resetZoom() {
      if (myChart) {
        myChart.resetZoom();
      }
    }
  </script>
</body>
</html>
`
