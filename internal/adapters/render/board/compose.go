package board

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SubmitFunc persists a post through the board, reporting to view.
type SubmitFunc func(ctx context.Context, view ports.PostView, username, content string) (domain.Post, error)

type composeKeyMap struct {
	Submit  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Newline key.Binding
	Quit    key.Binding
}

func (k composeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.Newline, k.Quit}
}

func (k composeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Prev}}
}

func newComposeKeyMap() composeKeyMap {
	return composeKeyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "post")),
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Newline: key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "new line")),
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

type composeField int

const (
	fieldUsername composeField = iota
	fieldContent
)

type submitDoneMsg struct {
	posts []domain.Post
	alert string
	reset bool
	err   error
}

type ComposeModel struct {
	ctx      context.Context
	submit   SubmitFunc
	posts    []domain.Post
	username textinput.Model
	content  textarea.Model
	focus    composeField
	keys     composeKeyMap
	help     help.Model
	styles   styles
	alert    string
	err      error
	busy     bool
}

func NewComposeModel(ctx context.Context, posts []domain.Post, submit SubmitFunc) ComposeModel {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64
	username.Focus()

	content := textarea.New()
	content.Placeholder = "Write your post..."
	content.ShowLineNumbers = false
	content.SetHeight(4)
	content.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")

	return ComposeModel{
		ctx:      ctx,
		submit:   submit,
		posts:    append([]domain.Post(nil), posts...),
		username: username,
		content:  content,
		keys:     newComposeKeyMap(),
		help:     help.New(),
		styles:   newStyles(),
	}
}

func (m ComposeModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ComposeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.content.SetWidth(max(msg.Width-4, 20))
		m.help.Width = msg.Width
		return m, nil
	case submitDoneMsg:
		return m.applySubmit(msg), nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.submitCmd()
		case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Prev):
			cmd := m.toggleFocus()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldUsername {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}

	return m, cmd
}

func (m *ComposeModel) toggleFocus() tea.Cmd {
	if m.focus == fieldUsername {
		m.focus = fieldContent
		m.username.Blur()
		return m.content.Focus()
	}

	m.focus = fieldUsername
	m.content.Blur()
	return m.username.Focus()
}

func (m ComposeModel) submitCmd() tea.Cmd {
	ctx := m.ctx
	submit := m.submit
	username := m.username.Value()
	content := m.content.Value()

	return func() tea.Msg {
		collector := &Collector{}
		_, err := submit(ctx, collector, username, content)
		return submitDoneMsg{
			posts: collector.Posts(),
			alert: collector.LastAlert(),
			reset: collector.Reset(),
			err:   err,
		}
	}
}

// applySubmit keeps the typed input unless the board asked for a form reset.
func (m ComposeModel) applySubmit(msg submitDoneMsg) ComposeModel {
	m.busy = false
	m.posts = append(m.posts, msg.posts...)
	m.alert = msg.alert
	m.err = nil
	if msg.err != nil && !errors.Is(msg.err, domain.ErrEmptyField) {
		m.err = msg.err
	}

	if msg.reset {
		m.username.Reset()
		m.content.Reset()
		m.focus = fieldUsername
		m.content.Blur()
		m.username.Focus()
	}

	return m
}

func (m ComposeModel) Posts() []domain.Post {
	return append([]domain.Post(nil), m.posts...)
}

func (m ComposeModel) Alert() string {
	return m.alert
}

func (m ComposeModel) View() string {
	parts := []string{renderView(m.posts, m.styles), ""}

	parts = append(parts,
		m.fieldLabel("Username", fieldUsername),
		m.username.View(),
		m.fieldLabel("Post", fieldContent),
		m.content.View(),
	)

	if m.alert != "" {
		parts = append(parts, m.styles.alert.Render(m.alert))
	}
	if m.err != nil {
		parts = append(parts, m.styles.alert.Render(fmt.Sprintf("could not save post: %v", m.err)))
	}

	parts = append(parts, m.styles.help.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m ComposeModel) fieldLabel(label string, field composeField) string {
	if m.focus == field {
		return m.styles.focused.Render("> " + label)
	}

	return m.styles.label.Render("  " + label)
}

// RunCompose runs the interactive form until the user quits and returns the posts shown.
func RunCompose(ctx context.Context, in io.Reader, out io.Writer, posts []domain.Post, submit SubmitFunc) ([]domain.Post, error) {
	p := tea.NewProgram(
		NewComposeModel(ctx, posts, submit),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result, ok := finalModel.(ComposeModel)
	if !ok {
		return nil, ErrUnexpectedRenderModel
	}

	return result.Posts(), nil
}
