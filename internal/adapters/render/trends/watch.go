package trends

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/bnema/stockboard-cli/internal/application"
	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	zoomStep = 1.25
	panStep  = 0.1
)

// Visualizer is the subset of application.Visualizer the watch screen drives.
type Visualizer interface {
	GetStockTrends(ctx context.Context, raw string) (application.TrendResult, error)
	Zoom(factor float64) bool
	Pan(dx, dy float64) bool
	ResetZoom() bool
}

type watchKeyMap struct {
	Refresh key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Reset   key.Binding
	Quit    key.Binding
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.ZoomIn, k.ZoomOut, k.Left, k.Right, k.Reset, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Up, k.Down}}
}

func newWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Refresh: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "refresh")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "pan left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "pan right")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "pan up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "pan down")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset zoom")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type refreshTickMsg time.Time

type refreshDoneMsg struct {
	err error
}

type WatchModel struct {
	ctx        context.Context
	visualizer Visualizer
	view       *TerminalView
	symbols    string
	interval   time.Duration
	keys       watchKeyMap
	help       help.Model
	spinner    spinner.Model
	styles     styles
	width      int
	lastErr    error
}

func NewWatchModel(ctx context.Context, visualizer Visualizer, view *TerminalView, symbols string, interval time.Duration) WatchModel {
	return WatchModel{
		ctx:        ctx,
		visualizer: visualizer,
		view:       view,
		symbols:    symbols,
		interval:   interval,
		keys:       newWatchKeyMap(),
		help:       help.New(),
		spinner:    newFetchSpinner(),
		styles:     newStyles(),
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd(), m.tickCmd())
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case refreshTickMsg:
		return m, tea.Batch(m.refreshCmd(), m.tickCmd())
	case refreshDoneMsg:
		if !errors.Is(msg.err, domain.ErrStaleResponse) {
			m.lastErr = msg.err
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()
	case key.Matches(msg, m.keys.ZoomIn):
		m.visualizer.Zoom(zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.visualizer.Zoom(1 / zoomStep)
	case key.Matches(msg, m.keys.Left):
		m.visualizer.Pan(-panStep, 0)
	case key.Matches(msg, m.keys.Right):
		m.visualizer.Pan(panStep, 0)
	case key.Matches(msg, m.keys.Up):
		m.visualizer.Pan(0, panStep)
	case key.Matches(msg, m.keys.Down):
		m.visualizer.Pan(0, -panStep)
	case key.Matches(msg, m.keys.Reset):
		m.visualizer.ResetZoom()
	}

	return m, nil
}

func (m WatchModel) refreshCmd() tea.Cmd {
	ctx, visualizer, symbols := m.ctx, m.visualizer, m.symbols
	return func() tea.Msg {
		_, err := visualizer.GetStockTrends(ctx, symbols)
		return refreshDoneMsg{err: err}
	}
}

func (m WatchModel) tickCmd() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}

	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func (m WatchModel) View() string {
	state := m.view.Snapshot()
	width := defaultPlotWidth
	if m.width > 0 {
		width = max(m.width-40, 16)
	}

	parts := []string{m.styles.title.Render("Watching " + m.symbols)}
	if state.Loading {
		parts = append(parts, m.spinner.View()+" "+m.styles.loading.Render(state.Results))
		state.Loading = false
		state.Results = ""
	}
	parts = append(parts, renderView(state, RenderOptions{Width: width}, m.styles))
	parts = append(parts, m.styles.section.Render(m.styles.help.Render(m.help.View(m.keys))))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// LastError is the outcome of the most recent refresh that was not superseded.
func (m WatchModel) LastError() error {
	return m.lastErr
}

func RunWatch(ctx context.Context, in io.Reader, out io.Writer, m WatchModel) error {
	p := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
