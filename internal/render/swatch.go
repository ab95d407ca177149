package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/themekit/internal/actions"
	"github.com/tOgg1/themekit/internal/theme"
)

const swatchWidth = 4

// Swatches renders every color role, sorted by name, as a block of the color
// followed by the role name and its raw value.
func Swatches(t theme.Theme) string {
	roles := t.ColorRoles()
	names := make([]string, 0, len(roles))
	width := 0
	for name := range roles {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		value := roles[name]
		block := lipgloss.NewStyle().
			Background(terminalColor(value, t.Background)).
			Render(strings.Repeat(" ", swatchWidth))
		fmt.Fprintf(&b, "%s %-*s %s\n", block, width, name, value)
	}
	return b.String()
}

// RenderMenu draws items with the cursor row highlighted. Leaves matching the
// store's current theme get a check mark and parents get a chevron.
func RenderMenu(s Styles, items []*actions.Action, cursor int, ctx actions.Context, store actions.ThemeStore) string {
	lines := make([]string, 0, len(items))
	for i, a := range items {
		marker := "  "
		if a.Selected(store) {
			marker = "✓ "
		}
		suffix := ""
		if a.IsParent() {
			suffix = " ›"
		}
		line := fmt.Sprintf("%s%s %s%s", marker, a.ResolveIcon(ctx).Glyph(), a.DisplayName(ctx), suffix)
		if i == cursor {
			lines = append(lines, s.SelectedItem.Render(line))
			continue
		}
		lines = append(lines, s.MenuItem.Render(line))
	}
	return strings.Join(lines, "\n")
}
