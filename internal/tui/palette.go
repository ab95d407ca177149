// Package tui implements the interactive command palette.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/themekit/internal/actions"
	"github.com/tOgg1/themekit/internal/appearance"
	"github.com/tOgg1/themekit/internal/render"
)

const defaultTitle = "Command palette"

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
	Force key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "ctrl+p")),
		Down:  key.NewBinding(key.WithKeys("down", "ctrl+n")),
		Enter: key.NewBinding(key.WithKeys("enter")),
		Back:  key.NewBinding(key.WithKeys("esc")),
		Quit:  key.NewBinding(key.WithKeys("q")),
		Force: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// Model is the bubbletea model for the palette.
type Model struct {
	registry   *actions.Registry
	appearance *appearance.Manager
	translator actions.Translator

	styles render.Styles
	input  textinput.Model
	keys   keyMap

	stack  []*actions.Action
	items  []*actions.Action
	cursor int

	status   string
	err      error
	quitting bool
	width    int
}

// New builds a palette over registry, drawn with the manager's active theme.
func New(registry *actions.Registry, manager *appearance.Manager, translator actions.Translator) *Model {
	if translator == nil {
		translator = actions.IdentityTranslator{}
	}

	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	m := &Model{
		registry:   registry,
		appearance: manager,
		translator: translator,
		input:      ti,
		keys:       defaultKeyMap(),
	}
	m.refreshStyles()
	m.refreshItems()
	return m
}

// Run starts the palette on the alternate screen.
func Run(ctx context.Context, m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Force):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit) && m.input.Value() == "":
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			return m.activate()
		case key.Matches(msg, m.keys.Back):
			return m.back()
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refreshItems()
	}
	return m, cmd
}

func (m *Model) activate() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return m, nil
	}
	selected := m.items[m.cursor]

	if selected.IsParent() {
		m.stack = append(m.stack, selected)
		m.input.SetValue("")
		m.status = ""
		m.err = nil
		m.refreshItems()
		return m, nil
	}

	m.err = m.registry.Perform(context.Background(), selected.ID)
	if m.err == nil {
		m.status = fmt.Sprintf("Theme set to %s", selected.DisplayName(m.context()))
	}
	m.stack = nil
	m.input.SetValue("")
	m.refreshStyles()
	m.refreshItems()
	return m, nil
}

func (m *Model) back() (tea.Model, tea.Cmd) {
	switch {
	case m.input.Value() != "":
		m.input.SetValue("")
	case len(m.stack) > 0:
		m.stack = m.stack[:len(m.stack)-1]
	default:
		m.quitting = true
		return m, tea.Quit
	}
	m.refreshItems()
	return m, nil
}

func (m *Model) refreshStyles() {
	if m.appearance == nil {
		return
	}
	m.styles = render.NewStyles(m.appearance.Current())
	m.input.PromptStyle = m.styles.Accent
	m.input.TextStyle = m.styles.Text
	m.input.PlaceholderStyle = m.styles.Placeholder
}

// refreshItems recomputes the visible level. A query narrows the current
// level using the registry's fuzzy ranking.
func (m *Model) refreshItems() {
	level := m.registry.Roots()
	if parent := m.parent(); parent != nil {
		level = parent.Children
	}

	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.items = level
	} else {
		allowed := make(map[*actions.Action]bool)
		if m.parent() == nil {
			for _, a := range m.registry.All() {
				allowed[a] = true
			}
		} else {
			for _, a := range level {
				allowed[a] = true
			}
		}
		var filtered []*actions.Action
		for _, a := range m.registry.Search(query, m.context()) {
			if allowed[a] {
				filtered = append(filtered, a)
			}
		}
		m.items = filtered
	}

	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
	if query != "" {
		m.cursor = 0
	}
}

func (m *Model) parent() *actions.Action {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Model) context() actions.Context {
	return actions.Context{
		Translator:    m.translator,
		ResolvedTheme: m.registry.Store().ResolvedTheme(),
	}
}

// Items returns the actions on the visible level.
func (m *Model) Items() []*actions.Action {
	return append([]*actions.Action(nil), m.items...)
}

// Cursor returns the highlighted row.
func (m *Model) Cursor() int { return m.cursor }

// Err returns the last perform error.
func (m *Model) Err() error { return m.err }

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	ctx := m.context()
	title := defaultTitle
	if parent := m.parent(); parent != nil {
		title = parent.PlaceholderText(ctx)
	}

	var body string
	if len(m.items) == 0 {
		body = m.styles.Muted.Render("No matching actions")
	} else {
		body = render.RenderMenu(m.styles, m.items, m.cursor, ctx, m.registry.Store())
	}

	sections := []string{
		m.styles.Title.Render(title),
		m.styles.Input.Render(m.input.View()),
		body,
	}
	switch {
	case m.err != nil:
		sections = append(sections, m.styles.NoticeWarning.Render(m.err.Error()))
	case m.status != "":
		sections = append(sections, m.styles.NoticeSuccess.Render(m.status))
	}
	sections = append(sections, m.styles.Muted.Render("[enter] select  [esc] back  [q] quit"))

	menu := m.styles.Menu
	if m.width > 0 {
		menu = menu.MaxWidth(m.width)
	}
	return menu.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
