package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
)

const (
	LoadingMessage     = "Loading trends..."
	ResultsHeading     = "Stock Trends and Predictions:"
	FetchFailedMessage = "Error fetching trends. Please try again later."
)

func CPUCoresMessage(cores int) string {
	return fmt.Sprintf("Your computer is using %d physical CPU cores.", cores)
}

type TrendResult struct {
	Symbols  []string
	CPUCores int
	Chart    domain.Chart
}

type Visualizer struct {
	fetcher ports.TrendFetcher
	view    ports.TrendView
	colors  ports.ColorSource
	cell    *ChartCell
	logger  *slog.Logger
}

type VisualizerOption func(*Visualizer)

func WithColorSource(colors ports.ColorSource) VisualizerOption {
	return func(v *Visualizer) {
		if colors != nil {
			v.colors = colors
		}
	}
}

func WithChartCell(cell *ChartCell) VisualizerOption {
	return func(v *Visualizer) {
		if cell != nil {
			v.cell = cell
		}
	}
}

func WithVisualizerLogger(logger *slog.Logger) VisualizerOption {
	return func(v *Visualizer) {
		if logger != nil {
			v.logger = logger
		}
	}
}

func NewVisualizer(fetcher ports.TrendFetcher, view ports.TrendView, opts ...VisualizerOption) *Visualizer {
	v := &Visualizer{
		fetcher: fetcher,
		view:    view,
		colors:  RandomColors{},
		cell:    NewChartCell(nil),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// GetStockTrends fetches trends for a raw comma separated symbol list and renders them.
// Only the most recently issued request may touch the view or the chart; an older
// response that resolves late is dropped with domain.ErrStaleResponse.
func (v *Visualizer) GetStockTrends(ctx context.Context, raw string) (TrendResult, error) {
	req := domain.ParseSymbols(raw)
	token := v.cell.Begin(v.view.ShowLoading)

	resp, fetchErr := v.fetcher.FetchTrends(ctx, req)

	var (
		result TrendResult
		err    error
	)
	applied := v.cell.Commit(token, func(install func(domain.Chart) domain.Chart) {
		switch {
		case fetchErr != nil:
			v.view.ShowError(FetchFailedMessage)
			if !errors.Is(fetchErr, domain.ErrFetchFailed) {
				fetchErr = fmt.Errorf("%w: %w", domain.ErrFetchFailed, fetchErr)
			}
			err = fmt.Errorf("get stock trends: %w", fetchErr)
		case resp.HasError():
			v.view.ShowError("Error: " + resp.Error)
			err = &domain.ServerError{Message: resp.Error}
		case resp.Trends == nil:
			v.view.ShowError(FetchFailedMessage)
			err = fmt.Errorf("get stock trends: %w: response carries no trends", domain.ErrFetchFailed)
		default:
			v.view.ShowCPUCores(resp.CPUCores)
			chart := install(domain.BuildChart(req.Symbols, resp, v.colors.NextColor))
			v.view.ShowChart(chart)
			result = TrendResult{Symbols: req.Symbols, CPUCores: resp.CPUCores, Chart: chart}
		}
	})
	if !applied {
		v.logger.DebugContext(ctx, "discarding stale trends response", "token", token, "symbols", req.Symbols)
		return TrendResult{}, domain.ErrStaleResponse
	}

	if err != nil {
		v.logger.WarnContext(ctx, "trends not rendered", "symbols", req.Symbols, "error", err)
		return TrendResult{}, err
	}

	v.logger.InfoContext(ctx, "trends rendered",
		"symbols", req.Symbols,
		"datasets", len(result.Chart.Datasets),
		"days", len(result.Chart.Labels),
		"cpu_cores", result.CPUCores)

	return result, nil
}

// ResetZoom restores the full viewport of the current chart. It is a no-op returning
// false when nothing has been rendered yet.
func (v *Visualizer) ResetZoom() bool {
	return v.mutate(func(chart *domain.Chart) { chart.ResetZoom() })
}

func (v *Visualizer) Zoom(factor float64) bool {
	return v.mutate(func(chart *domain.Chart) { chart.Zoom(factor) })
}

func (v *Visualizer) Pan(dx, dy float64) bool {
	return v.mutate(func(chart *domain.Chart) { chart.Pan(dx, dy) })
}

func (v *Visualizer) Current() (domain.Chart, bool) {
	return v.cell.Current()
}

func (v *Visualizer) mutate(fn func(chart *domain.Chart)) bool {
	_, ok := v.cell.Mutate(func(chart *domain.Chart) {
		fn(chart)
		v.view.ShowChart(chart.Clone())
	})

	return ok
}
