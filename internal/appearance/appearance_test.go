package appearance

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/themekit/internal/metrics"
	"github.com/tOgg1/themekit/internal/prefs"
	"github.com/tOgg1/themekit/internal/theme"
)

func newStore(dark *bool) *prefs.Store {
	return prefs.New("", prefs.WithDetector(prefs.DetectorFunc(func() bool { return *dark })))
}

func TestManagerBuildsResolvedSystemTheme(t *testing.T) {
	dark := false
	m, err := New(newStore(&dark), nil)
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, theme.KindLight, m.Kind())
	require.False(t, m.Current().IsDark)
	require.Equal(t, "#FFFFFF", m.Current().Background)

	dark = true
	m.Refresh()
	require.Equal(t, theme.KindDark, m.Kind())
	require.Equal(t, "#111319", m.Current().Background)
}

func TestManagerRebuildsOnStoreChange(t *testing.T) {
	dark := false
	store := newStore(&dark)
	m, err := New(store, nil)
	require.NoError(t, err)
	defer m.Close()

	var seen []theme.Kind
	m.OnChange(func(kind theme.Kind, built theme.Theme) {
		seen = append(seen, kind)
		require.Equal(t, m.Current(), built)
	})

	before := testutil.ToFloat64(metrics.ThemeBuildCounter(string(theme.KindPitchBlack)))
	require.NoError(t, store.SetTheme(theme.KindPitchBlack))
	require.Equal(t, "#000", m.Current().Background)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.ThemeBuildCounter(string(theme.KindPitchBlack))))

	require.NoError(t, store.SetTheme(theme.KindRosePine))
	require.Equal(t, []theme.Kind{theme.KindPitchBlack, theme.KindRosePine}, seen)
	require.Equal(t, "#191724", m.Current().Background)
}

func TestManagerOverridePrecedence(t *testing.T) {
	dark := false
	store := newStore(&dark)
	require.NoError(t, store.SetTheme(theme.KindLight))

	m, err := New(store, theme.Overrides{"accent": "#111111", "brand.red": "#222222"})
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, "#111111", m.Current().Accent)
	require.Equal(t, "#222222", m.Current().Brand.Red)

	require.NoError(t, store.SetOverride("accent", "#333333"))
	require.Equal(t, "#333333", m.Current().Accent, "user overrides win over config")
	require.Equal(t, "#222222", m.Current().Brand.Red)

	require.NoError(t, store.DeleteOverride("accent"))
	require.Equal(t, "#111111", m.Current().Accent)
}

func TestManagerCloseStopsUpdates(t *testing.T) {
	dark := false
	store := newStore(&dark)
	m, err := New(store, nil)
	require.NoError(t, err)

	m.Close()
	m.Close()
	require.NoError(t, store.SetTheme(theme.KindDark))
	require.Equal(t, theme.KindLight, m.Kind())
}
