package actions

import "github.com/tOgg1/themekit/internal/theme"

var ChangeToDarkTheme = &Action{
	ID:            "theme.dark",
	Name:          Translated("Dark"),
	AnalyticsName: "Change to dark theme",
	Icon:          IconMoon,
	Keywords:      "theme dark night",
	Section:       SectionSettings,
	Target:        theme.KindDark,
}

var ChangeToLightTheme = &Action{
	ID:            "theme.light",
	Name:          Translated("Light"),
	AnalyticsName: "Change to light theme",
	Icon:          IconSun,
	Keywords:      "theme light day",
	Section:       SectionSettings,
	Target:        theme.KindLight,
}

var ChangeToSystemTheme = &Action{
	ID:            "theme.system",
	Name:          Translated("System"),
	AnalyticsName: "Change to system theme",
	Icon:          IconBrowser,
	Keywords:      "theme system default",
	Section:       SectionSettings,
	Target:        theme.KindSystem,
}

// ChangeToRosePineTheme uses a brand name, so the label is never translated.
var ChangeToRosePineTheme = &Action{
	ID:            "theme.rosepine",
	Name:          Static("Rosé Pine"),
	AnalyticsName: "Change to rose pine theme",
	Icon:          IconPalette,
	Keywords:      "theme rose pine rosepine purple",
	Section:       SectionSettings,
	Target:        theme.KindRosePine,
}

var ChangeTheme = &Action{
	ID:                "theme.change",
	Name:              Translated("Change theme"),
	ContextMenuName:   Translated("Appearance"),
	Placeholder:       Translated("Change theme to"),
	AnalyticsName:     "Change theme",
	DynamicIcon:       true,
	IconInContextMenu: true,
	Keywords:          "appearance display",
	Section:           SectionSettings,
	Children: []*Action{
		ChangeToLightTheme,
		ChangeToDarkTheme,
		ChangeToRosePineTheme,
		ChangeToSystemTheme,
	},
}

// RootSettingsActions are the top-level settings entries.
var RootSettingsActions = []*Action{ChangeTheme}
