// Package render draws theme records in the terminal.
package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/themekit/internal/colors"
	"github.com/tOgg1/themekit/internal/theme"
)

// Styles are the lipgloss styles derived from one theme record.
type Styles struct {
	Base         lipgloss.Style
	Title        lipgloss.Style
	Text         lipgloss.Style
	Muted        lipgloss.Style
	Accent       lipgloss.Style
	Border       lipgloss.Style
	Menu         lipgloss.Style
	MenuItem     lipgloss.Style
	SelectedItem lipgloss.Style
	Placeholder  lipgloss.Style
	Input        lipgloss.Style

	NoticeInfo    lipgloss.Style
	NoticeTip     lipgloss.Style
	NoticeWarning lipgloss.Style
	NoticeSuccess lipgloss.Style
}

// NewStyles maps theme roles onto terminal styles. Translucent roles are
// composited over the background first.
func NewStyles(t theme.Theme) Styles {
	c := func(value string) lipgloss.TerminalColor {
		return terminalColor(value, t.Background)
	}
	menuBg := func(value string) lipgloss.TerminalColor {
		return terminalColor(value, t.MenuBackground)
	}

	return Styles{
		Base:   lipgloss.NewStyle().Foreground(c(t.Text)).Background(c(t.Background)),
		Title:  lipgloss.NewStyle().Foreground(c(t.Text)).Bold(true),
		Text:   lipgloss.NewStyle().Foreground(c(t.Text)),
		Muted:  lipgloss.NewStyle().Foreground(c(t.TextTertiary)),
		Accent: lipgloss.NewStyle().Foreground(c(t.Accent)),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Divider)),
		Menu: lipgloss.NewStyle().
			Background(c(t.MenuBackground)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.InputBorder)).
			Padding(0, 1),
		MenuItem: lipgloss.NewStyle().Foreground(c(t.Text)),
		SelectedItem: lipgloss.NewStyle().
			Foreground(c(t.Text)).
			Background(menuBg(t.MenuItemSelected)).
			Bold(true),
		Placeholder: lipgloss.NewStyle().Foreground(c(t.Placeholder)),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(c(t.InputBorderFocused)),

		NoticeInfo:    notice(t.NoticeInfoText, t.NoticeInfoBackground, t.Background),
		NoticeTip:     notice(t.NoticeTipText, t.NoticeTipBackground, t.Background),
		NoticeWarning: notice(t.NoticeWarningText, t.NoticeWarningBackground, t.Background),
		NoticeSuccess: notice(t.NoticeSuccessText, t.NoticeSuccessBackground, t.Background),
	}
}

func notice(text, background, backdrop string) lipgloss.Style {
	bg := terminalColor(background, backdrop)
	return lipgloss.NewStyle().
		Foreground(terminalColor(text, background)).
		Background(bg).
		Padding(0, 1)
}

func terminalColor(value, backdrop string) lipgloss.TerminalColor {
	hex, ok := colors.Flatten(value, backdrop)
	if !ok {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}
