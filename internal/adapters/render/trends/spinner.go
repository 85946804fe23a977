package trends

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fetchDoneMsg struct {
	err error
}

// loadingModel mirrors the results area of a TerminalView while a fetch is in flight. The
// line it draws is whatever the visualizer last put there, so the spinner disappears as
// soon as the view leaves the loading state, even before the fetch goroutine reports.
type loadingModel struct {
	spinner spinner.Model
	styles  styles
	view    *TerminalView
	symbols string
	fetch   tea.Cmd
	started time.Time
	now     func() time.Time

	state State
	err   error
	done  bool
}

func newFetchSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)
}

func newLoadingModel(view *TerminalView, req domain.TrendRequest, fetch tea.Cmd, now func() time.Time) loadingModel {
	if now == nil {
		now = time.Now
	}

	return loadingModel{
		spinner: newFetchSpinner(),
		styles:  newStyles(),
		view:    view,
		symbols: strings.Join(req.Symbols, ", "),
		fetch:   fetch,
		started: now(),
		now:     now,
		state:   view.Snapshot(),
	}
}

func (m loadingModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m loadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.state = m.view.Snapshot()
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case fetchDoneMsg:
		m.state = m.view.Snapshot()
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = context.Canceled
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m loadingModel) View() string {
	if m.done || !m.state.Loading {
		return ""
	}

	line := fmt.Sprintf("%s %s", m.spinner.View(), m.state.Results)
	if m.symbols != "" {
		line += " " + m.styles.label.Render(m.symbols)
	}
	if elapsed := m.now().Sub(m.started).Truncate(time.Second); elapsed >= time.Second {
		line += fmt.Sprintf(" (%s)", elapsed)
	}

	return line
}

// RunWithSpinner animates the loading line of view on output until fetch returns.
func RunWithSpinner(ctx context.Context, output io.Writer, view *TerminalView, req domain.TrendRequest, fetch func(context.Context) error) error {
	fetchCmd := func() tea.Msg {
		return fetchDoneMsg{err: fetch(ctx)}
	}

	p := tea.NewProgram(
		newLoadingModel(view, req, fetchCmd, nil),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(loadingModel)
	if !ok {
		return fmt.Errorf("unexpected final loading model type %T", finalModel)
	}

	return result.err
}
