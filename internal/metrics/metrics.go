// Package metrics exposes Prometheus instrumentation for the navigation
// subsystem. Collectors register on the default registry; the host decides
// whether to serve them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NavigationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigation_transitions_total",
			Help: "Completed view transitions by target view and user role",
		},
		[]string{"view", "role"},
	)

	NavigationsDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigation_denied_total",
			Help: "Navigation attempts blocked by role permissions",
		},
		[]string{"view", "role"},
	)

	StateSaves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "navigation_state_saves_total",
			Help: "Successful writes of the navigation state file",
		},
	)

	StateSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "navigation_state_save_failures_total",
			Help: "Writes of the navigation state file that failed",
		},
	)

	StateLoadFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "navigation_state_load_fallbacks_total",
			Help: "Loads that fell back to the default route because the state file was unreadable or invalid",
		},
	)

	StateFileBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "navigation_state_file_bytes",
			Help: "Size of the last serialized navigation state payload",
		},
	)

	HistoryDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "navigation_history_depth",
			Help: "Entries currently on the back stack",
		},
	)
)
