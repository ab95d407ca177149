package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/themekit/internal/events"
	"github.com/tOgg1/themekit/internal/theme"
)

func TestStoreLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.json")

	s := New(path, WithDebounce(time.Hour))
	require.NoError(t, s.Load())
	require.Equal(t, theme.KindSystem, s.Theme())

	require.NoError(t, s.SetTheme(theme.KindRosePine))
	require.NoError(t, s.SetOverride("accent", "#ff0000"))
	require.NoError(t, s.SaveNow())

	s2 := New(path)
	require.NoError(t, s2.Load())
	require.Equal(t, theme.KindRosePine, s2.Theme())
	require.Equal(t, theme.Overrides{"accent": "#ff0000"}, s2.Overrides())

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(payload, &doc))
	require.Equal(t, float64(CurrentVersion), doc["version"])
	require.Equal(t, "rosepine", doc["theme"])
}

func TestStoreCloseFlushesDirtyState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	s := New(path, WithDebounce(time.Hour))
	require.NoError(t, s.SetTheme(theme.KindDark))
	require.NoError(t, s.Close())

	s2 := New(path)
	require.NoError(t, s2.Load())
	require.Equal(t, theme.KindDark, s2.Theme())
}

func TestStoreDebouncedSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s := New(path, WithDebounce(10*time.Millisecond))
	require.NoError(t, s.SetTheme(theme.KindLight))

	require.Eventually(t, func() bool {
		payload, err := os.ReadFile(path)
		return err == nil && len(payload) > 0
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Close())
}

func TestStoreLoadIgnoresUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"theme":"sepia"}`), 0o644))

	s := New(path, WithDefaultTheme(theme.KindLight))
	require.NoError(t, s.Load())
	require.Equal(t, theme.KindLight, s.Theme())
	require.Empty(t, s.Overrides())
}

func TestStoreLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	require.Error(t, New(path).Load())
}

func TestSetThemeValidatesAndPublishes(t *testing.T) {
	s := New("")
	var got []*events.Event
	unsubscribe, err := s.Subscribe(func(e *events.Event) { got = append(got, e) })
	require.NoError(t, err)

	require.ErrorIs(t, s.SetTheme(theme.Kind("sepia")), ErrInvalidKind)
	require.NoError(t, s.SetTheme(theme.KindDark))
	require.NoError(t, s.SetTheme(theme.KindDark))

	require.Len(t, got, 1)
	require.Equal(t, events.EventTypeThemeChanged, got[0].Type)
	require.Equal(t, theme.KindSystem, got[0].Previous)
	require.Equal(t, theme.KindDark, got[0].Current)
	require.NotEmpty(t, got[0].ID)
	require.False(t, got[0].Timestamp.IsZero())

	unsubscribe()
	require.NoError(t, s.SetTheme(theme.KindLight))
	require.Len(t, got, 1)
}

func TestSubscribeFiltersByType(t *testing.T) {
	s := New("")
	var overrides int
	_, err := s.Subscribe(func(*events.Event) { overrides++ }, events.EventTypeOverridesChanged)
	require.NoError(t, err)

	require.NoError(t, s.SetTheme(theme.KindDark))
	require.NoError(t, s.SetOverride("accent", "#00ff00"))
	require.NoError(t, s.SetOverride("accent", "#00ff00"))
	require.NoError(t, s.DeleteOverride("accent"))
	require.NoError(t, s.DeleteOverride("accent"))
	require.Equal(t, 2, overrides)
}

func TestSetOverrideEmptyValueDeletes(t *testing.T) {
	s := New("")
	require.NoError(t, s.SetOverride("brand.red", "#aa0000"))
	require.NoError(t, s.SetOverride("brand.red", " "))
	require.Empty(t, s.Overrides())
	require.Error(t, s.SetOverride("  ", "#fff"))
}

func TestOverridesReturnsCopy(t *testing.T) {
	s := New("")
	require.NoError(t, s.SetOverride("accent", "#ff0000"))
	o := s.Overrides()
	o["accent"] = "#000"
	require.Equal(t, "#ff0000", s.Overrides()["accent"])
}

func TestResolvedTheme(t *testing.T) {
	dark := true
	s := New("", WithDetector(DetectorFunc(func() bool { return dark })))

	require.Equal(t, theme.KindDark, s.ResolvedTheme())
	dark = false
	require.Equal(t, theme.KindLight, s.ResolvedTheme())

	require.NoError(t, s.SetTheme(theme.KindPitchBlack))
	require.Equal(t, theme.KindPitchBlack, s.ResolvedTheme())
}

func TestResolveUsesStoreDetector(t *testing.T) {
	t.Setenv(AppearanceEnv, "light")
	s := New("", WithDetector(DetectorFunc(func() bool { return true })))
	require.NoError(t, s.SetTheme(theme.KindRosePine))

	require.Equal(t, theme.KindDark, s.Resolve(theme.KindSystem))
	require.Equal(t, theme.KindLight, s.Resolve(theme.KindLight))
	require.Equal(t, theme.KindRosePine, s.ResolvedTheme())
}

func TestEnvDetector(t *testing.T) {
	t.Setenv(AppearanceEnv, "Dark")
	require.True(t, EnvDetector{}.IsDark())

	t.Setenv(AppearanceEnv, "light")
	require.False(t, EnvDetector{}.IsDark())
}
