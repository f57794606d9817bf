package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/modhost/internal/modular"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modhost",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "modhost",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	moduleResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modhost",
			Subsystem: "registry",
			Name:      "module_resolutions_total",
			Help:      "Module lookups by outcome (cached, created, unknown).",
		},
		[]string{"outcome"},
	)
	fileLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modhost",
			Subsystem: "registry",
			Name:      "file_lookups_total",
			Help:      "Module file lookups by outcome (hit, resolved, absent, undeclared).",
		},
		[]string{"module", "outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, moduleResolutions, fileLookups)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RegistryObserver feeds modular registry events into the registry counters.
// Module names are not used as a label on resolutions since unknown names
// come from request paths.
type RegistryObserver struct{}

var _ modular.Observer = RegistryObserver{}

func (RegistryObserver) ModuleResolved(_ string, outcome modular.ModuleOutcome) {
	RegisterMetrics()
	moduleResolutions.WithLabelValues(string(outcome)).Inc()
}

func (RegistryObserver) FileLookup(module string, outcome modular.LookupOutcome) {
	RegisterMetrics()
	fileLookups.WithLabelValues(module, string(outcome)).Inc()
}
