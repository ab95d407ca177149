// Package actions defines the theme-change commands and the registry that
// enumerates, searches and performs them.
package actions

import (
	"errors"
	"fmt"

	"github.com/tOgg1/themekit/internal/theme"
)

var (
	// ErrNotPerformable is returned when performing an action that only groups children.
	ErrNotPerformable = errors.New("action has no perform callback")

	// ErrActionNotFound is returned by Registry lookups for unknown IDs.
	ErrActionNotFound = errors.New("action not found")

	// ErrDuplicateAction is returned when two registered actions share an ID.
	ErrDuplicateAction = errors.New("duplicate action id")

	// ErrNoStore is returned when an action is performed without a store.
	ErrNoStore = errors.New("no theme store")
)

// ThemeStore is the slice of the preference store the actions need.
type ThemeStore interface {
	Theme() theme.Kind
	SetTheme(theme.Kind) error
	ResolvedTheme() theme.Kind
}

// Icon is a tagged glyph identifier.
type Icon string

const (
	IconNone    Icon = ""
	IconSun     Icon = "sun"
	IconMoon    Icon = "moon"
	IconBrowser Icon = "browser"
	IconPalette Icon = "palette"
)

// Glyph returns a single-cell terminal rendering of the icon.
func (i Icon) Glyph() string {
	switch i {
	case IconSun:
		return "☀"
	case IconMoon:
		return "☾"
	case IconBrowser:
		return "◫"
	case IconPalette:
		return "◍"
	}
	return " "
}

// Section groups actions in menus.
type Section string

const SectionSettings Section = "settings"

// Translator maps a message key to display text.
type Translator interface {
	T(key string) string
}

// IdentityTranslator returns keys unchanged.
type IdentityTranslator struct{}

func (IdentityTranslator) T(key string) string { return key }

// Label is a display string that may need translation.
type Label struct {
	Key       string
	Translate bool
}

// Translated builds a label that goes through the Translator.
func Translated(key string) Label { return Label{Key: key, Translate: true} }

// Static builds a label shown verbatim.
func Static(text string) Label { return Label{Key: text} }

func (l Label) IsZero() bool { return l.Key == "" }

// Render returns the label text for tr.
func (l Label) Render(tr Translator) string {
	if !l.Translate || tr == nil {
		return l.Key
	}
	return tr.T(l.Key)
}

// Context carries the presentation inputs the dynamic parts of an action
// depend on.
type Context struct {
	Translator    Translator
	IsContextMenu bool
	ResolvedTheme theme.Kind
}

// Action is a static command descriptor. Values are created at package init
// and never mutated.
type Action struct {
	ID              string
	Name            Label
	ContextMenuName Label
	Placeholder     Label
	AnalyticsName   string

	Icon              Icon
	DynamicIcon       bool
	IconInContextMenu bool

	Keywords string
	Section  Section

	// Target is the kind a leaf selects; empty for parents.
	Target   theme.Kind
	Children []*Action
}

// IsParent reports whether the action only groups children.
func (a *Action) IsParent() bool {
	return len(a.Children) > 0
}

// Selected reports whether the store currently holds this action's target.
func (a *Action) Selected(store ThemeStore) bool {
	if a.Target == "" || store == nil {
		return false
	}
	return store.Theme() == a.Target
}

// Perform writes the target kind into the store.
func (a *Action) Perform(store ThemeStore) error {
	if a.Target == "" {
		return fmt.Errorf("%w: %s", ErrNotPerformable, a.ID)
	}
	if store == nil {
		return fmt.Errorf("%w: %s", ErrNoStore, a.ID)
	}
	return store.SetTheme(a.Target)
}

// DisplayName picks the context-menu label when one applies.
func (a *Action) DisplayName(ctx Context) string {
	if ctx.IsContextMenu && !a.ContextMenuName.IsZero() {
		return a.ContextMenuName.Render(ctx.Translator)
	}
	return a.Name.Render(ctx.Translator)
}

// PlaceholderText is the prompt shown while choosing among children.
func (a *Action) PlaceholderText(ctx Context) string {
	return a.Placeholder.Render(ctx.Translator)
}

// ResolveIcon returns the icon to draw, or IconNone when it is hidden.
func (a *Action) ResolveIcon(ctx Context) Icon {
	if ctx.IsContextMenu && !a.IconInContextMenu {
		return IconNone
	}
	if a.DynamicIcon {
		if ctx.ResolvedTheme == theme.KindLight {
			return IconSun
		}
		return IconMoon
	}
	return a.Icon
}
