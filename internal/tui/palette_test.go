package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/themekit/internal/actions"
	"github.com/tOgg1/themekit/internal/appearance"
	"github.com/tOgg1/themekit/internal/prefs"
	"github.com/tOgg1/themekit/internal/theme"
)

type fixture struct {
	store   *prefs.Store
	manager *appearance.Manager
	model   *Model
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := prefs.New("", prefs.WithDetector(prefs.DetectorFunc(func() bool { return false })))
	registry := actions.NewRegistry(store)
	require.NoError(t, registry.Register(actions.RootSettingsActions...))

	manager, err := appearance.New(store, nil)
	require.NoError(t, err)
	t.Cleanup(manager.Close)

	return fixture{store: store, manager: manager, model: New(registry, manager, nil)}
}

func press(m *Model, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
)

func TestPaletteStartsAtRoot(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, []*actions.Action{actions.ChangeTheme}, f.model.Items())
	require.Contains(t, f.model.View(), "Change theme")
	require.Contains(t, f.model.View(), defaultTitle)
}

func TestPaletteDescendAndPerform(t *testing.T) {
	f := newFixture(t)

	press(f.model, enter)
	require.Equal(t, actions.ChangeTheme.Children, f.model.Items())
	require.Contains(t, f.model.View(), "Change theme to")

	press(f.model, down, down, up)
	require.Equal(t, 1, f.model.Cursor())

	press(f.model, enter)
	require.NoError(t, f.model.Err())
	require.Equal(t, theme.KindDark, f.store.Theme())
	require.True(t, f.manager.Current().IsDark)
	require.Equal(t, []*actions.Action{actions.ChangeTheme}, f.model.Items(), "returns to root after performing")
	require.Contains(t, f.model.View(), "Theme set to Dark")
}

func TestPaletteFilterAtRootReachesLeaves(t *testing.T) {
	f := newFixture(t)

	press(f.model, typeText("purple"))
	require.Equal(t, []*actions.Action{actions.ChangeToRosePineTheme}, f.model.Items())

	press(f.model, enter)
	require.Equal(t, theme.KindRosePine, f.store.Theme())
	require.Equal(t, "#191724", f.manager.Current().Background)
}

func TestPaletteFilterWithinLevel(t *testing.T) {
	f := newFixture(t)

	press(f.model, enter, typeText("system"))
	require.Equal(t, []*actions.Action{actions.ChangeToSystemTheme}, f.model.Items())

	press(f.model, typeText("zzz"))
	require.Empty(t, f.model.Items())
	require.Contains(t, f.model.View(), "No matching actions")
	require.Nil(t, press(f.model, enter))
}

func TestPaletteEscClearsThenGoesBackThenQuits(t *testing.T) {
	f := newFixture(t)

	press(f.model, enter, typeText("dark"))
	require.Len(t, f.model.Items(), 1)

	require.Nil(t, press(f.model, esc))
	require.Equal(t, actions.ChangeTheme.Children, f.model.Items())

	require.Nil(t, press(f.model, esc))
	require.Equal(t, []*actions.Action{actions.ChangeTheme}, f.model.Items())

	cmd := press(f.model, esc)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPaletteQuitKeys(t *testing.T) {
	f := newFixture(t)

	press(f.model, typeText("q"))
	require.Empty(t, f.model.Items(), "q is filter text while typing")

	press(f.model, esc)
	cmd := press(f.model, typeText("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Empty(t, f.model.View())

	g := newFixture(t)
	cmd = press(g.model, typeText("da"), tea.KeyMsg{Type: tea.KeyCtrlC})
	require.IsType(t, tea.QuitMsg{}, cmd())
}
