package play

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizkit/internal/engine"
	"quizkit/internal/view"
)

// Options configures the interactive screen.
type Options struct {
	NoColor bool
}

// Model is a Bubble Tea model over an engine rendering into a tree.
type Model struct {
	engine   *engine.Engine
	tree     *view.Tree
	lines    []Line
	focus    *view.Node
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	noColor  bool

	notice    string
	seen      int
	navigated string
}

// NewModel builds a model for a started engine.
func NewModel(eng *engine.Engine, tree *view.Tree, opts Options) Model {
	m := Model{
		engine:   eng,
		tree:     tree,
		viewport: viewport.New(80, 20),
		help:     help.New(),
		keys:     defaultKeys(),
		noColor:  opts.NoColor,
		seen:     len(tree.Notices()),
	}
	return m.refresh()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update maps keys onto activations.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = typed.Width
		m.viewport.Height = max(typed.Height-3, 1)
		m.help.Width = typed.Width
		return m.refresh(), nil
	case tea.KeyMsg:
		m.notice = ""
		switch {
		case key.Matches(typed, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(typed, m.keys.Up):
			m.focus = m.step(-1)
		case key.Matches(typed, m.keys.Down):
			m.focus = m.step(1)
		case key.Matches(typed, m.keys.Activate):
			m.tree.Activate(m.focus)
		case key.Matches(typed, m.keys.Submit):
			_, _ = m.engine.Submit()
		case key.Matches(typed, m.keys.Retake):
			if m.engine.State().Locked() {
				m.engine.Retake()
			}
		case key.Matches(typed, m.keys.Back):
			if m.engine.State().Locked() {
				m.engine.Back()
			}
		}
		m = m.refresh()
		if m.navigated != "" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the screen.
func (m Model) View() string {
	parts := []string{m.viewport.View()}
	if m.notice != "" {
		parts = append(parts, renderNotice(m.notice, m.noColor))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Navigated returns the navigation target that ended the session, if any.
func (m Model) Navigated() string {
	return m.navigated
}

// Focus returns the focused node.
func (m Model) Focus() *view.Node {
	return m.focus
}

// refresh rebuilds lines after the tree changed, keeps focus on a live
// element and picks up notices and navigations.
func (m Model) refresh() Model {
	m.lines = Lines(m.tree)
	if m.focusIndex() < 0 {
		m.focus = nil
		for _, line := range m.lines {
			if line.Focusable() {
				m.focus = line.Node
				break
			}
		}
	}
	if notices := m.tree.Notices(); len(notices) > m.seen {
		m.notice = notices[len(notices)-1]
		m.seen = len(notices)
	}
	if navigations := m.tree.Navigations(); len(navigations) > 0 {
		m.navigated = navigations[len(navigations)-1]
	}
	m.viewport.SetContent(renderLines(m.lines, m.focus, m.noColor))
	if index := m.focusIndex(); index >= 0 {
		switch {
		case index < m.viewport.YOffset:
			m.viewport.SetYOffset(index)
		case index >= m.viewport.YOffset+m.viewport.Height:
			m.viewport.SetYOffset(index - m.viewport.Height + 1)
		}
	}
	return m
}

func (m Model) focusIndex() int {
	if m.focus == nil {
		return -1
	}
	for index, line := range m.lines {
		if line.Node == m.focus && line.Focusable() {
			return index
		}
	}
	return -1
}

// step moves focus to the next focusable line in direction, wrapping around.
func (m Model) step(direction int) *view.Node {
	var focusable []*view.Node
	current := -1
	for _, line := range m.lines {
		if !line.Focusable() {
			continue
		}
		if line.Node == m.focus {
			current = len(focusable)
		}
		focusable = append(focusable, line.Node)
	}
	if len(focusable) == 0 {
		return nil
	}
	if current < 0 {
		return focusable[0]
	}
	next := (current + direction + len(focusable)) % len(focusable)
	return focusable[next]
}

// Run runs the interactive screen until the user quits or leaves the quiz.
func Run(eng *engine.Engine, tree *view.Tree, in io.Reader, out io.Writer, opts Options) (Model, error) {
	program := tea.NewProgram(NewModel(eng, tree, opts), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return Model{}, err
	}
	model, _ := final.(Model)
	return model, nil
}
