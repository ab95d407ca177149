package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/themekit/internal/actions"
	"github.com/tOgg1/themekit/internal/prefs"
	"github.com/tOgg1/themekit/internal/theme"
)

func TestNewStylesUsesThemeColors(t *testing.T) {
	dark := theme.BuildDark(nil)
	s := NewStyles(dark)

	require.Equal(t, lipgloss.Color("#111319"), s.Base.GetBackground())
	require.Equal(t, lipgloss.Color("#0366d6"), s.Accent.GetForeground())
	require.True(t, s.Title.GetBold())

	selected, ok := s.SelectedItem.GetBackground().(lipgloss.Color)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(string(selected), "#"))
	require.NotEqual(t, lipgloss.Color("#ffffff"), selected)
}

func TestTranslucentRolesAreFlattened(t *testing.T) {
	light := theme.BuildLight(nil)
	light.Placeholder = "rgba(0, 0, 0, 0.5)"
	s := NewStyles(light)
	require.Equal(t, lipgloss.Color("#808080"), s.Placeholder.GetForeground())

	light.Placeholder = "transparent"
	require.Equal(t, lipgloss.NoColor{}, NewStyles(light).Placeholder.GetForeground())
}

func TestSwatchesListEveryRole(t *testing.T) {
	light := theme.BuildLight(theme.Overrides{"sparkle": "#abcdef"})
	out := Swatches(light)

	for name := range light.ColorRoles() {
		require.Contains(t, out, name)
	}
	require.Contains(t, out, "#abcdef")
	require.Equal(t, len(light.ColorRoles()), strings.Count(out, "\n"))
}

func TestRenderMenuMarksSelection(t *testing.T) {
	store := prefs.New("", prefs.WithDetector(prefs.DetectorFunc(func() bool { return false })))
	require.NoError(t, store.SetTheme(theme.KindRosePine))

	ctx := actions.Context{Translator: actions.IdentityTranslator{}, ResolvedTheme: store.ResolvedTheme()}
	out := RenderMenu(NewStyles(theme.BuildLight(nil)), actions.ChangeTheme.Children, 0, ctx, store)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "Light")
	require.Contains(t, lines[2], "✓")
	require.Contains(t, lines[2], "Rosé Pine")
	require.NotContains(t, lines[1], "✓")

	root := RenderMenu(NewStyles(theme.BuildLight(nil)), actions.RootSettingsActions, -1, ctx, store)
	require.Contains(t, root, "Change theme ›")
	require.Contains(t, root, actions.IconSun.Glyph())
}

func TestSyntaxStyle(t *testing.T) {
	dark := theme.BuildDark(nil)
	style, err := SyntaxStyle(dark)
	require.NoError(t, err)
	require.Equal(t, "themekit-dark", style.Name)

	keyword := style.Get(chroma.Keyword)
	require.Equal(t, "#569cd6", keyword.Colour.String())

	bg := style.Get(chroma.Background)
	require.Equal(t, "#1d202a", strings.ToLower(bg.Background.String()))

	comment := style.Get(chroma.Comment)
	require.Equal(t, chroma.Yes, comment.Italic)
}

func TestHighlight(t *testing.T) {
	var buf bytes.Buffer
	err := Highlight(&buf, "package main\n\nfunc main() {}\n", "go", theme.BuildPitchBlack(nil))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "\x1b[")
	require.Contains(t, buf.String(), "func")

	buf.Reset()
	require.NoError(t, Highlight(&buf, "plain words", "no-such-language", theme.BuildLight(nil)))
	require.Contains(t, buf.String(), "plain words")
}
