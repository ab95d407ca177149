package theme

import (
	"fmt"

	"github.com/tOgg1/themekit/internal/colors"
)

var typography = Typography{
	FontFamily:        "-apple-system, BlinkMacSystemFont, Inter, 'Segoe UI', Roboto, Oxygen, sans-serif",
	FontFamilyMono:    "'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, Courier, monospace",
	FontFamilyEmoji:   "Apple Color Emoji, Segoe UI Emoji, Segoe UI Symbol, Segoe UI, Twemoji Mozilla, Noto Color Emoji, Android Emoji",
	FontWeightRegular: 400,
	FontWeightMedium:  500,
	FontWeightBold:    600,
}

var spacing = Spacing{
	SidebarWidth:          260,
	SidebarRightWidth:     300,
	SidebarCollapsedWidth: 16,
	SidebarMinWidth:       200,
	SidebarMaxWidth:       600,
}

var breakpoints = Breakpoints{
	Mobile:       0,
	MobileLarge:  460,
	Tablet:       737,
	Desktop:      1025,
	DesktopLarge: 1600,
}

// Build dispatches to the builder for a concrete kind.
func Build(kind Kind, overrides Overrides) (Theme, error) {
	switch kind {
	case KindLight:
		return BuildLight(overrides), nil
	case KindDark:
		return BuildDark(overrides), nil
	case KindRosePine:
		return BuildRosePine(overrides), nil
	case KindPitchBlack:
		return BuildPitchBlack(overrides), nil
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnbuildableKind, kind)
}

// BuildBase merges overrides onto the default palette and adds the constants
// and palette-derived colors every variant starts from.
func BuildBase(overrides Overrides) Theme {
	return buildBase(DefaultPalette(), overrides)
}

func buildBase(palette Palette, overrides Overrides) Theme {
	var extra map[string]string
	for k, v := range overrides {
		if palette.SetRole(k, v) {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[k] = v
	}

	t := Theme{
		Typography:  typography,
		Palette:     palette,
		Spacing:     spacing,
		Breakpoints: breakpoints,

		AccentText:              palette.White,
		Selected:                palette.Accent,
		TextHighlight:           "#FDEA9B",
		TextHighlightForeground: palette.AlmostBlack,
		CommentMarkBackground:   colors.Transparentize(0.5, "#2BC2FF"),

		Code:            palette.LightBlack,
		CodeComment:     "#6a737d",
		CodePunctuation: "#5e6687",
		CodeNumber:      "#d73a49",
		CodeProperty:    "#c08b30",
		CodeTag:         "#3d8fd1",
		CodeClassName:   "#3d8fd1",
		CodeString:      "#032f62",
		CodeSelector:    "#6679cc",
		CodeAttr:        "#c76b29",
		CodeEntity:      "#22a2c9",
		CodeKeyword:     "#d73a49",
		CodeFunction:    "#6f42c1",
		CodeStatement:   "#22a2c9",
		CodePlaceholder: "#3d8fd1",
		CodeInserted:    "#202746",
		CodeImportant:   "#c94922",

		NoticeInfoBackground:    palette.Brand.Blue,
		NoticeInfoText:          palette.AlmostBlack,
		NoticeTipBackground:     "#F5BE31",
		NoticeTipText:           palette.AlmostBlack,
		NoticeWarningBackground: "#d73a49",
		NoticeWarningText:       palette.AlmostBlack,
		NoticeSuccessBackground: palette.Brand.Green,
		NoticeSuccessText:       palette.AlmostBlack,
		TableSelectedBackground: colors.Transparentize(0.9, palette.Accent),
	}

	// Non-palette keys land on top of the computed roles; variants may still
	// overwrite them.
	for k, v := range extra {
		if t.setRole(k, v) {
			delete(extra, k)
		}
	}
	if len(extra) > 0 {
		t.Extra = extra
	}
	return t
}

// BuildLight returns the light variant.
func BuildLight(overrides Overrides) Theme {
	t := BuildBase(overrides)

	t.IsDark = false
	t.Background = t.White
	t.BackgroundSecondary = t.WarmGrey
	t.BackgroundTertiary = "#d7e0ea"
	t.BackgroundQuaternary = colors.Darken(0.05, "#d7e0ea")
	t.Link = t.Accent
	t.Cursor = t.AlmostBlack
	t.Text = t.AlmostBlack
	t.TextSecondary = t.SlateDark
	t.TextTertiary = t.Slate
	t.TextDiffInserted = t.AlmostBlack
	t.TextDiffInsertedBackground = "rgba(18, 138, 41, 0.16)"
	t.TextDiffDeleted = t.SlateDark
	t.TextDiffDeletedBackground = "#ffebe9"
	t.Placeholder = "#a2b2c3"
	t.SidebarBackground = t.WarmGrey
	t.SidebarActiveBackground = "#d7e0ea"
	t.SidebarControlHoverBackground = "rgb(138 164 193 / 20%)"
	t.SidebarDraftBorder = colors.Darken(0.25, t.WarmGrey)
	t.SidebarText = "rgb(78, 92, 110)"
	t.Backdrop = "rgba(0, 0, 0, 0.2)"
	t.Shadow = "rgba(0, 0, 0, 0.2)"

	t.ModalBackdrop = "rgba(0, 0, 0, 0.25)"
	t.ModalBackground = t.White
	t.ModalShadow = "0 4px 8px rgb(0 0 0 / 8%), 0 2px 4px rgb(0 0 0 / 0%), 0 30px 40px rgb(0 0 0 / 8%)"

	t.MenuItemSelected = t.WarmGrey
	t.MenuBackground = t.White
	t.MenuShadow = "0 0 0 1px rgb(0 0 0 / 2%), 0 4px 8px rgb(0 0 0 / 8%), 0 2px 4px rgb(0 0 0 / 0%), 0 30px 40px rgb(0 0 0 / 8%)"
	t.Divider = t.SlateLight
	t.TitleBarDivider = t.SlateLight
	t.InputBorder = t.SlateLight
	t.InputBorderFocused = t.Slate
	t.ListItemHoverBackground = t.WarmGrey
	t.MentionBackground = t.WarmGrey
	t.MentionHoverBackground = "#d7e0ea"
	t.TableSelected = t.Accent
	t.ButtonNeutralBackground = t.White
	t.ButtonNeutralText = t.AlmostBlack
	t.ButtonNeutralBorder = colors.Darken(0.15, t.White)
	t.TooltipBackground = t.AlmostBlack
	t.TooltipText = t.White
	t.ToastBackground = t.White
	t.ToastText = t.AlmostBlack
	t.Quote = t.SlateLight
	t.CodeBackground = t.Smoke
	t.CodeBorder = t.SmokeDark
	t.EmbedBorder = t.SlateLight
	t.HorizontalRule = t.SmokeDark
	t.ProgressBarBackground = t.SlateLight
	t.ScrollbarBackground = t.Smoke
	t.ScrollbarThumb = colors.Darken(0.15, t.SmokeDark)

	return t
}

// BuildDark returns the dark variant.
func BuildDark(overrides Overrides) Theme {
	t := BuildBase(overrides)

	t.IsDark = true
	t.Background = t.AlmostBlack
	t.BackgroundSecondary = "#1f232e"
	t.BackgroundTertiary = "#2a2f3e"
	t.BackgroundQuaternary = colors.Lighten(0.1, "#2a2f3e")
	t.Link = "#137FFB"
	t.Text = t.AlmostWhite
	t.Cursor = t.AlmostWhite
	t.TextSecondary = colors.Lighten(0.1, t.Slate)
	t.TextTertiary = t.Slate
	t.TextDiffInserted = t.AlmostWhite
	t.TextDiffInsertedBackground = "rgba(63,185,80,0.3)"
	t.TextDiffDeleted = colors.Darken(0.1, t.AlmostWhite)
	t.TextDiffDeletedBackground = "rgba(248,81,73,0.15)"
	t.Placeholder = "#596673"
	t.SidebarBackground = t.VeryDarkBlue
	t.SidebarActiveBackground = colors.Lighten(0.09, t.VeryDarkBlue)
	t.SidebarControlHoverBackground = t.White10
	t.SidebarDraftBorder = colors.Darken(0.35, t.Slate)
	t.SidebarText = t.Slate
	t.Backdrop = "rgba(0, 0, 0, 0.5)"
	t.Shadow = "rgba(0, 0, 0, 0.6)"

	t.ModalBackdrop = t.Black50
	t.ModalBackground = "#181c25"
	t.ModalShadow = "0 0 0 1px rgba(0, 0, 0, 0.1), 0 8px 16px rgba(0, 0, 0, 0.3), 0 2px 4px rgba(0, 0, 0, 0.08)"

	t.MenuItemSelected = colors.Lighten(0.09, "#181c25")
	t.MenuBackground = "#181c25"
	t.MenuShadow = "0 0 0 1px rgb(34 40 52), 0 8px 16px rgba(0, 0, 0, 0.3), 0 2px 4px rgba(0, 0, 0, 0.08)"
	t.Divider = colors.Lighten(0.1, t.AlmostBlack)
	t.TitleBarDivider = colors.Darken(0.4, t.Slate)
	t.InputBorder = t.SlateDark
	t.InputBorderFocused = t.Slate
	t.ListItemHoverBackground = t.White10
	t.MentionBackground = colors.Lighten(0.09, t.VeryDarkBlue)
	t.MentionHoverBackground = colors.Lighten(0.15, t.VeryDarkBlue)
	t.TableSelected = t.Accent
	t.ButtonNeutralBackground = t.AlmostBlack
	t.ButtonNeutralText = t.White
	t.ButtonNeutralBorder = t.SlateDark
	t.TooltipBackground = t.White
	t.TooltipText = t.LightBlack
	t.ToastBackground = t.VeryDarkBlue
	t.ToastText = t.AlmostWhite
	t.Quote = t.AlmostWhite
	t.Code = t.AlmostWhite
	t.CodeBackground = "#1d202a"
	t.CodeBorder = t.White10
	t.CodeTag = "#b5cea8"
	t.CodeString = "#ce9178"
	t.CodeKeyword = "#569CD6"
	t.CodeFunction = "#dcdcaa"
	t.CodeClassName = "#4ec9b0"
	t.CodeImportant = "#569CD6"
	t.CodeAttr = "#9cdcfe"
	t.EmbedBorder = t.Black50
	t.HorizontalRule = colors.Lighten(0.1, t.AlmostBlack)
	t.NoticeInfoText = t.White
	t.NoticeTipText = t.White
	t.NoticeWarningText = t.White
	t.NoticeSuccessText = t.White
	t.ProgressBarBackground = t.Slate
	t.ScrollbarBackground = t.Black
	t.ScrollbarThumb = t.LightBlack

	return t
}

// BuildPitchBlack is the dark variant with true-black backgrounds.
func BuildPitchBlack(overrides Overrides) Theme {
	t := BuildDark(overrides)
	t.Background = t.Black
	t.CodeBackground = t.AlmostBlack
	return t
}

// BuildRosePine returns the Rosé Pine variant. Overrides apply on top of the
// Rosé Pine palette rather than the default one.
func BuildRosePine(overrides Overrides) Theme {
	t := buildBase(RosePinePalette(), overrides)

	t.IsDark = true
	t.Background = "#191724"           // Base
	t.BackgroundSecondary = "#1f1d2e"  // Surface
	t.BackgroundTertiary = "#26233a"   // Overlay
	t.BackgroundQuaternary = "#403d52" // Highlight Med
	t.Link = "#c4a7e7"                 // Iris
	t.Text = "#e0def4"
	t.Cursor = "#e0def4"
	t.TextSecondary = "#908caa" // Subtle
	t.TextTertiary = "#6e6a86"  // Muted
	t.TextDiffInserted = "#e0def4"
	t.TextDiffInsertedBackground = "rgba(49, 116, 143, 0.3)" // Pine
	t.TextDiffDeleted = "#6e6a86"
	t.TextDiffDeletedBackground = "rgba(235, 111, 146, 0.15)" // Love
	t.Placeholder = "#6e6a86"
	t.SidebarBackground = "#191724"
	t.SidebarActiveBackground = "#21202e" // Highlight Low
	t.SidebarControlHoverBackground = "rgba(224, 222, 244, 0.1)"
	t.SidebarDraftBorder = "#403d52"
	t.SidebarText = "#908caa"
	t.Backdrop = "rgba(25, 23, 36, 0.5)"
	t.Shadow = "rgba(25, 23, 36, 0.6)"

	t.ModalBackdrop = "rgba(25, 23, 36, 0.5)"
	t.ModalBackground = "#1f1d2e"
	t.ModalShadow = "0 0 0 1px rgba(25, 23, 36, 0.1), 0 8px 16px rgba(25, 23, 36, 0.3), 0 2px 4px rgba(25, 23, 36, 0.08)"

	t.MenuItemSelected = "#21202e"
	t.MenuBackground = "#1f1d2e"
	t.MenuShadow = "0 0 0 1px #26233a, 0 8px 16px rgba(25, 23, 36, 0.3), 0 2px 4px rgba(25, 23, 36, 0.08)"
	t.Divider = "#26233a"
	t.TitleBarDivider = "#26233a"
	t.InputBorder = "#26233a"
	t.InputBorderFocused = "#6e6a86"
	t.ListItemHoverBackground = "rgba(224, 222, 244, 0.05)"
	t.MentionBackground = "#21202e"
	t.MentionHoverBackground = "#403d52"
	t.TableSelected = "#c4a7e7"
	t.ButtonNeutralBackground = "#26233a"
	t.ButtonNeutralText = "#e0def4"
	t.ButtonNeutralBorder = "#403d52"
	t.TooltipBackground = "#e0def4"
	t.TooltipText = "#191724"
	t.ToastBackground = "#1f1d2e"
	t.ToastText = "#e0def4"
	t.Quote = "#e0def4"
	t.Code = "#e0def4"
	t.CodeBackground = "#21202e"
	t.CodeBorder = "rgba(224, 222, 244, 0.1)"
	t.CodeTag = "#31748f"       // Pine
	t.CodeString = "#f6c177"    // Gold
	t.CodeKeyword = "#c4a7e7"   // Iris
	t.CodeFunction = "#ebbcba"  // Rose
	t.CodeClassName = "#9ccfd8" // Foam
	t.CodeImportant = "#eb6f92" // Love
	t.CodeAttr = "#9ccfd8"
	t.EmbedBorder = "rgba(25, 23, 36, 0.5)"
	t.HorizontalRule = "#26233a"
	t.NoticeInfoText = "#e0def4"
	// Base on the brighter notice backgrounds.
	t.NoticeTipText = "#191724"
	t.NoticeWarningText = "#191724"
	t.NoticeSuccessText = "#191724"
	t.ProgressBarBackground = "#6e6a86"
	t.ScrollbarBackground = "#191724"
	t.ScrollbarThumb = "#26233a"

	return t
}
