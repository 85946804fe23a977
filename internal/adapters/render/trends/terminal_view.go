package trends

import (
	"sync"

	"github.com/bnema/stockboard-cli/internal/application"
	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
)

// State is what the results area currently shows. The chart survives later errors.
type State struct {
	Results  string
	Loading  bool
	Failed   bool
	CPUCores string
	Chart    domain.Chart
	HasChart bool
}

// TerminalView is a TrendView that keeps the latest state for terminal rendering.
type TerminalView struct {
	mu    sync.Mutex
	state State
}

var _ ports.TrendView = (*TerminalView)(nil)

func NewTerminalView() *TerminalView {
	return &TerminalView{}
}

func (v *TerminalView) ShowLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Results = application.LoadingMessage
	v.state.Loading = true
	v.state.Failed = false
}

func (v *TerminalView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Results = message
	v.state.Loading = false
	v.state.Failed = true
}

// ShowCPUCores is only reached for a successful payload, so it also sets the heading.
func (v *TerminalView) ShowCPUCores(cores int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.CPUCores = application.CPUCoresMessage(cores)
	v.state.Results = application.ResultsHeading
	v.state.Loading = false
	v.state.Failed = false
}

func (v *TerminalView) ShowChart(chart domain.Chart) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Chart = chart.Clone()
	v.state.HasChart = true
}

func (v *TerminalView) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	state := v.state
	state.Chart = v.state.Chart.Clone()
	return state
}
