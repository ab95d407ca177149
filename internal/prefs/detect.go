package prefs

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AppearanceEnv forces the system appearance to light or dark.
const AppearanceEnv = "THEMEKIT_SYSTEM_APPEARANCE"

// Detector reports whether the surrounding environment prefers a dark theme.
type Detector interface {
	IsDark() bool
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func() bool

func (f DetectorFunc) IsDark() bool { return f() }

// EnvDetector checks AppearanceEnv first and falls back to the terminal
// background.
type EnvDetector struct{}

func (EnvDetector) IsDark() bool {
	if env := os.Getenv(AppearanceEnv); env != "" {
		switch strings.ToLower(strings.TrimSpace(env)) {
		case "light", "day":
			return false
		case "dark", "night":
			return true
		}
	}

	return lipgloss.HasDarkBackground()
}
