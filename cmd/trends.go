package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bnema/stockboard-cli/internal/adapters/render/chartimg"
	"github.com/bnema/stockboard-cli/internal/adapters/render/chartpage"
	trendsrender "github.com/bnema/stockboard-cli/internal/adapters/render/trends"
	"github.com/bnema/stockboard-cli/internal/application"
	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/spf13/cobra"
)

const defaultWatchInterval = 30 * time.Second

type trendsExports struct {
	png      string
	svg      string
	image    string
	html     string
	snapshot string
}

type trendsOutput struct {
	Symbols  []string        `json:"symbols"`
	CPUCores int             `json:"cpu_cores"`
	Labels   []string        `json:"labels"`
	Datasets []datasetOutput `json:"datasets"`
}

type datasetOutput struct {
	Label  string    `json:"label"`
	Data   []float64 `json:"data"`
	Color  string    `json:"color"`
	Dashed bool      `json:"dashed"`
}

func newTrendsCmd(app *app) *cobra.Command {
	var exports trendsExports
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "trends SYMBOLS",
		Short: "Fetch and chart trends for comma separated symbols",
		Example: `  sb trends AAPL,MSFT
  sb trends "AAPL, MSFT" --png trends.png --html trends.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrends(cmd, app, args[0], exports, asJSON)
		},
	}

	cmd.Flags().StringVar(&exports.png, "png", "", "Write the chart as a PNG image")
	cmd.Flags().StringVar(&exports.svg, "svg", "", "Write the chart as an SVG image")
	cmd.Flags().StringVar(&exports.image, "image", "", "Write the chart as an image, format taken from the extension (.png or .svg)")
	cmd.Flags().StringVar(&exports.html, "html", "", "Write an interactive Chart.js page")
	cmd.Flags().StringVar(&exports.snapshot, "snapshot", "", "Write a PNG screenshot of the Chart.js page (needs Chrome)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	cmd.AddCommand(newTrendsWatchCmd(app))

	return cmd
}

func runTrends(cmd *cobra.Command, app *app, symbols string, exports trendsExports, asJSON bool) error {
	var imageFormat chartimg.Format
	if exports.image != "" {
		format, err := chartimg.FormatFromPath(exports.image)
		if err != nil {
			return err
		}
		imageFormat = format
	}

	view := trendsrender.NewTerminalView()
	visualizer := application.NewVisualizer(app.fetcher, view, application.WithVisualizerLogger(app.logger))

	var result application.TrendResult
	fetch := func(ctx context.Context) error {
		var err error
		result, err = visualizer.GetStockTrends(ctx, symbols)
		return err
	}

	var fetchErr error
	if asJSON {
		fetchErr = fetch(cmd.Context())
	} else {
		fetchErr = trendsrender.RunWithSpinner(cmd.Context(), cmd.ErrOrStderr(), view, domain.ParseSymbols(symbols), fetch)
	}

	if asJSON {
		if fetchErr != nil {
			return fetchErr
		}
		return writeJSON(cmd, trendsJSON(result))
	}

	rendered, err := trendsrender.Render(view.Snapshot(), trendsrender.RenderOptions{})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
		return err
	}
	if fetchErr != nil {
		return fetchErr
	}

	return writeExports(cmd, result, exports, imageFormat)
}

func writeExports(cmd *cobra.Command, result application.TrendResult, exports trendsExports, imageFormat chartimg.Format) error {
	images := []struct {
		path   string
		format chartimg.Format
	}{
		{exports.png, chartimg.FormatPNG},
		{exports.svg, chartimg.FormatSVG},
		{exports.image, imageFormat},
	}
	for _, image := range images {
		if image.path == "" {
			continue
		}
		var buf bytes.Buffer
		if err := chartimg.Render(&buf, result.Chart, chartimg.Options{Format: image.format}); err != nil {
			return err
		}
		if err := writeExport(cmd, image.path, buf.Bytes()); err != nil {
			return err
		}
	}

	if exports.html == "" && exports.snapshot == "" {
		return nil
	}

	page := chartpage.Page{Symbols: result.Symbols, CPUCores: result.CPUCores, Chart: result.Chart}
	if exports.html != "" {
		var buf bytes.Buffer
		if err := chartpage.RenderHTML(&buf, page); err != nil {
			return err
		}
		if err := writeExport(cmd, exports.html, buf.Bytes()); err != nil {
			return err
		}
	}

	if exports.snapshot != "" {
		page.Static = true
		var buf bytes.Buffer
		if err := chartpage.RenderHTML(&buf, page); err != nil {
			return err
		}
		png, err := chartpage.Snapshot(cmd.Context(), buf.String(), chartpage.SnapshotOptions{})
		if err != nil {
			return err
		}
		if err := writeExport(cmd, exports.snapshot, png); err != nil {
			return err
		}
	}

	return nil
}

func writeExport(cmd *cobra.Command, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	_, err := fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	return err
}

func trendsJSON(result application.TrendResult) trendsOutput {
	datasets := make([]datasetOutput, 0, len(result.Chart.Datasets))
	for _, dataset := range result.Chart.Datasets {
		datasets = append(datasets, datasetOutput{
			Label:  dataset.Label,
			Data:   dataset.Data,
			Color:  dataset.Color.String(),
			Dashed: dataset.Dashed(),
		})
	}

	return trendsOutput{
		Symbols:  result.Symbols,
		CPUCores: result.CPUCores,
		Labels:   result.Chart.Labels,
		Datasets: datasets,
	}
}

func newTrendsWatchCmd(app *app) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch SYMBOLS",
		Short: "Keep a live trends chart open with zoom and pan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := trendsrender.NewTerminalView()
			visualizer := application.NewVisualizer(app.fetcher, view, application.WithVisualizerLogger(app.logger))
			model := trendsrender.NewWatchModel(cmd.Context(), visualizer, view, args[0], interval)

			return trendsrender.RunWatch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), model)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", defaultWatchInterval, "Refresh interval (0 disables periodic refresh)")

	return cmd
}
