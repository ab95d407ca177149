package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordThemeBuild(t *testing.T) {
	themeBuildsTotal.Reset()

	RecordThemeBuild("dark")
	RecordThemeBuild("dark")
	RecordThemeBuild("light")

	require.Equal(t, float64(2), testutil.ToFloat64(themeBuildsTotal.WithLabelValues("dark")))
	require.Equal(t, float64(1), testutil.ToFloat64(themeBuildsTotal.WithLabelValues("light")))
}

func TestRecordThemeChange(t *testing.T) {
	themeChangesTotal.Reset()

	RecordThemeChange("system", "dark")
	require.Equal(t, float64(1), testutil.ToFloat64(themeChangesTotal.WithLabelValues("system", "dark")))
}

func TestRecordAction(t *testing.T) {
	actionsPerformedTotal.Reset()
	actionDuration.Reset()

	RecordAction("theme.dark", nil, time.Millisecond)
	RecordAction("theme.dark", errors.New("boom"), time.Millisecond)
	RecordAction("theme.dark", nil, 2*time.Millisecond)

	require.Equal(t, float64(2), testutil.ToFloat64(actionsPerformedTotal.WithLabelValues("theme.dark", StatusSuccess)))
	require.Equal(t, float64(1), testutil.ToFloat64(actionsPerformedTotal.WithLabelValues("theme.dark", StatusError)))
	require.Equal(t, 1, testutil.CollectAndCount(actionDuration))
}

func TestRegisterIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))

	RecordThemeBuild("rosepine")
	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "themekit_theme_builds_total")
}
