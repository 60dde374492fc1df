// Package metrics holds the Prometheus collectors exported by the daemon's /metrics endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
)

// Registry is separate from the default registry so tests and embedders see only these collectors.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	RemindersArmed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: constants.AppName,
		Subsystem: "reminder",
		Name:      "armed_total",
		Help:      "Reminders armed.",
	})
	RemindersFired = factory.NewCounter(prometheus.CounterOpts{
		Namespace: constants.AppName,
		Subsystem: "reminder",
		Name:      "fired_total",
		Help:      "Reminders delivered.",
	})
	InexactFallbacks = factory.NewCounter(prometheus.CounterOpts{
		Namespace: constants.AppName,
		Subsystem: "reminder",
		Name:      "inexact_fallbacks_total",
		Help:      "Arms that fell back to an inexact alarm.",
	})
	GlassesAdded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: constants.AppName,
		Subsystem: "water",
		Name:      "glasses_added_total",
		Help:      "Glasses recorded through the widget endpoint.",
	})
	WidgetRefreshes = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: constants.AppName,
		Subsystem: "widget",
		Name:      "refreshes_total",
		Help:      "Widget surface pushes by surface and result.",
	}, []string{"surface", "result"})
	Rollovers = factory.NewCounter(prometheus.CounterOpts{
		Namespace: constants.AppName,
		Subsystem: "daily",
		Name:      "rollovers_total",
		Help:      "Daily progress resets.",
	})
)

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
}

// Handler serves Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
