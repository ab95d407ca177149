// Package metrics exposes Prometheus counters for theme builds and actions.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "themekit"

// Action outcome labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// themeBuildsTotal counts theme records built per variant.
	themeBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theme_builds_total",
			Help:      "Total number of theme records built",
		},
		[]string{"variant"},
	)

	// themeChangesTotal counts theme selections applied through the store.
	themeChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theme_changes_total",
			Help:      "Total number of theme selection changes",
		},
		[]string{"from", "to"},
	)

	// actionsPerformedTotal counts performed actions by outcome.
	actionsPerformedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_performed_total",
			Help:      "Total number of actions performed",
		},
		[]string{"action", "status"}, // status: success, error
	)

	// actionDuration is a histogram of action perform latency.
	actionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_duration_seconds",
			Help:      "Duration of action performs in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"action"},
	)

	allMetrics = []prometheus.Collector{
		themeBuildsTotal,
		themeChangesTotal,
		actionsPerformedTotal,
		actionDuration,
	}
)

// Register adds every themekit collector to reg. Collectors already present
// are left alone.
func Register(reg prometheus.Registerer) error {
	for _, c := range allMetrics {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// RecordThemeBuild records a built theme record.
func RecordThemeBuild(variant string) {
	themeBuildsTotal.WithLabelValues(variant).Inc()
}

// RecordThemeChange records a selection change.
func RecordThemeChange(from, to string) {
	themeChangesTotal.WithLabelValues(from, to).Inc()
}

// RecordAction records a performed action and its latency.
func RecordAction(actionID string, err error, elapsed time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	actionsPerformedTotal.WithLabelValues(actionID, status).Inc()
	actionDuration.WithLabelValues(actionID).Observe(elapsed.Seconds())
}

// ActionCounter returns the performed-actions counter for one label pair.
func ActionCounter(actionID, status string) prometheus.Counter {
	return actionsPerformedTotal.WithLabelValues(actionID, status)
}

// ThemeBuildCounter returns the builds counter for a variant.
func ThemeBuildCounter(variant string) prometheus.Counter {
	return themeBuildsTotal.WithLabelValues(variant)
}
