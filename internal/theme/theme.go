// Package theme holds the palette tables and the pure builders that turn a
// palette plus user overrides into a complete theme record.
package theme

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// Typography holds the font stacks and weights shared by every variant.
type Typography struct {
	FontFamily        string `json:"fontFamily"`
	FontFamilyMono    string `json:"fontFamilyMono"`
	FontFamilyEmoji   string `json:"fontFamilyEmoji"`
	FontWeightRegular int    `json:"fontWeightRegular"`
	FontWeightMedium  int    `json:"fontWeightMedium"`
	FontWeightBold    int    `json:"fontWeightBold"`
}

// Spacing holds layout widths in pixels.
type Spacing struct {
	SidebarWidth          int `json:"sidebarWidth"`
	SidebarRightWidth     int `json:"sidebarRightWidth"`
	SidebarCollapsedWidth int `json:"sidebarCollapsedWidth"`
	SidebarMinWidth       int `json:"sidebarMinWidth"`
	SidebarMaxWidth       int `json:"sidebarMaxWidth"`
}

// Breakpoints are the minimum viewport widths of each layout tier.
type Breakpoints struct {
	Mobile       int `json:"mobile"`
	MobileLarge  int `json:"mobileLarge"`
	Tablet       int `json:"tablet"`
	Desktop      int `json:"desktop"`
	DesktopLarge int `json:"desktopLarge"`
}

// Overrides replaces palette roles by name. Brand roles use dotted keys
// ("brand.red"). Keys naming other string roles are applied on top of the base
// record; anything else passes through to Theme.Extra.
type Overrides map[string]string

// Merge returns a new map with o's entries replaced by other's.
func (o Overrides) Merge(other Overrides) Overrides {
	out := make(Overrides, len(o)+len(other))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Theme is a fully resolved style record.
type Theme struct {
	Typography
	Palette
	Spacing

	Breakpoints Breakpoints `json:"breakpoints"`
	IsDark      bool        `json:"isDark"`

	AccentText              string `json:"accentText"`
	Selected                string `json:"selected"`
	TextHighlight           string `json:"textHighlight"`
	TextHighlightForeground string `json:"textHighlightForeground"`
	CommentMarkBackground   string `json:"commentMarkBackground"`

	Code            string `json:"code"`
	CodeComment     string `json:"codeComment"`
	CodePunctuation string `json:"codePunctuation"`
	CodeNumber      string `json:"codeNumber"`
	CodeProperty    string `json:"codeProperty"`
	CodeTag         string `json:"codeTag"`
	CodeClassName   string `json:"codeClassName"`
	CodeString      string `json:"codeString"`
	CodeSelector    string `json:"codeSelector"`
	CodeAttr        string `json:"codeAttr"`
	CodeEntity      string `json:"codeEntity"`
	CodeKeyword     string `json:"codeKeyword"`
	CodeFunction    string `json:"codeFunction"`
	CodeStatement   string `json:"codeStatement"`
	CodePlaceholder string `json:"codePlaceholder"`
	CodeInserted    string `json:"codeInserted"`
	CodeImportant   string `json:"codeImportant"`

	NoticeInfoBackground    string `json:"noticeInfoBackground"`
	NoticeInfoText          string `json:"noticeInfoText"`
	NoticeTipBackground     string `json:"noticeTipBackground"`
	NoticeTipText           string `json:"noticeTipText"`
	NoticeWarningBackground string `json:"noticeWarningBackground"`
	NoticeWarningText       string `json:"noticeWarningText"`
	NoticeSuccessBackground string `json:"noticeSuccessBackground"`
	NoticeSuccessText       string `json:"noticeSuccessText"`
	TableSelectedBackground string `json:"tableSelectedBackground"`

	Background           string `json:"background"`
	BackgroundSecondary  string `json:"backgroundSecondary"`
	BackgroundTertiary   string `json:"backgroundTertiary"`
	BackgroundQuaternary string `json:"backgroundQuaternary"`
	Link                 string `json:"link"`
	Cursor               string `json:"cursor"`

	Text                       string `json:"text"`
	TextSecondary              string `json:"textSecondary"`
	TextTertiary               string `json:"textTertiary"`
	TextDiffInserted           string `json:"textDiffInserted"`
	TextDiffInsertedBackground string `json:"textDiffInsertedBackground"`
	TextDiffDeleted            string `json:"textDiffDeleted"`
	TextDiffDeletedBackground  string `json:"textDiffDeletedBackground"`
	Placeholder                string `json:"placeholder"`

	SidebarBackground             string `json:"sidebarBackground"`
	SidebarActiveBackground       string `json:"sidebarActiveBackground"`
	SidebarControlHoverBackground string `json:"sidebarControlHoverBackground"`
	SidebarDraftBorder            string `json:"sidebarDraftBorder"`
	SidebarText                   string `json:"sidebarText"`

	Backdrop        string `json:"backdrop"`
	Shadow          string `json:"shadow"`
	ModalBackdrop   string `json:"modalBackdrop"`
	ModalBackground string `json:"modalBackground"`
	ModalShadow     string `json:"modalShadow"`

	MenuItemSelected string `json:"menuItemSelected"`
	MenuBackground   string `json:"menuBackground"`
	MenuShadow       string `json:"menuShadow"`

	Divider                 string `json:"divider"`
	TitleBarDivider         string `json:"titleBarDivider"`
	InputBorder             string `json:"inputBorder"`
	InputBorderFocused      string `json:"inputBorderFocused"`
	ListItemHoverBackground string `json:"listItemHoverBackground"`
	MentionBackground       string `json:"mentionBackground"`
	MentionHoverBackground  string `json:"mentionHoverBackground"`
	TableSelected           string `json:"tableSelected"`

	ButtonNeutralBackground string `json:"buttonNeutralBackground"`
	ButtonNeutralText       string `json:"buttonNeutralText"`
	ButtonNeutralBorder     string `json:"buttonNeutralBorder"`
	TooltipBackground       string `json:"tooltipBackground"`
	TooltipText             string `json:"tooltipText"`
	ToastBackground         string `json:"toastBackground"`
	ToastText               string `json:"toastText"`

	Quote                 string `json:"quote"`
	CodeBackground        string `json:"codeBackground"`
	CodeBorder            string `json:"codeBorder"`
	EmbedBorder           string `json:"embedBorder"`
	HorizontalRule        string `json:"horizontalRule"`
	ProgressBarBackground string `json:"progressBarBackground"`
	ScrollbarBackground   string `json:"scrollbarBackground"`
	ScrollbarThumb        string `json:"scrollbarThumb"`

	// Extra carries override keys that match no known role.
	Extra map[string]string `json:"-"`
}

// Roles flattens the record into role name -> value, the shape consumed by
// renderers and exporters. Nested groups (brand, breakpoints) stay nested and
// numbers decode as float64.
func (t Theme) Roles() map[string]any {
	payload, err := json.Marshal(t)
	if err != nil {
		// Theme holds only strings, ints and bools.
		panic(err)
	}
	out := make(map[string]any, 160)
	if err := json.Unmarshal(payload, &out); err != nil {
		panic(err)
	}
	for k, v := range t.Extra {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

// ColorRoles returns every string-valued top-level role, palette brand roles
// included under dotted names. Font stacks are excluded.
func (t Theme) ColorRoles() map[string]string {
	out := make(map[string]string, 140)
	collectStrings(reflect.ValueOf(t), out)
	for _, name := range paletteRoles {
		if strings.HasPrefix(name, "brand.") {
			v, _ := t.Palette.Role(name)
			out[name] = v
		}
	}
	for _, name := range []string{"fontFamily", "fontFamilyMono", "fontFamilyEmoji"} {
		delete(out, name)
	}
	for k, v := range t.Extra {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

func collectStrings(v reflect.Value, out map[string]string) {
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collectStrings(v.Field(i), out)
			continue
		}
		name := jsonName(f)
		if name == "" || f.Type.Kind() != reflect.String {
			continue
		}
		out[name] = v.Field(i).String()
	}
}

// setRole assigns a top-level string role by its JSON name.
func (t *Theme) setRole(name, value string) bool {
	return setStringField(reflect.ValueOf(t).Elem(), name, value)
}

func setStringField(v reflect.Value, name, value string) bool {
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if setStringField(v.Field(i), name, value) {
				return true
			}
			continue
		}
		if jsonName(f) == name && f.Type.Kind() == reflect.String {
			v.Field(i).SetString(value)
			return true
		}
	}
	return false
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

var roleIndex = sync.OnceValue(func() map[string]string {
	index := make(map[string]string)
	for name := range BuildBase(nil).ColorRoles() {
		index[strings.ToLower(name)] = name
	}
	return index
})

// CanonicalRole maps a case-insensitive role name onto its canonical
// spelling, e.g. "almostblack" to "almostBlack".
func CanonicalRole(name string) (string, bool) {
	canonical, ok := roleIndex()[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}
