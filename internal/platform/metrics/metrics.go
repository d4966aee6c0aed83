package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "status"},
	)

	// RoutingAttempts counts single HTTP attempts against routing hosts.
	RoutingAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routing_attempts_total", Help: "Routing service attempts by endpoint, host and outcome."},
		[]string{"endpoint", "host", "outcome"},
	)
	RoutingLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "routing_attempt_duration_seconds", Help: "Routing service attempt latency.", Buckets: []float64{.05, .1, .25, .5, 1, 2, 4, 8}},
		[]string{"endpoint", "host"},
	)

	// OptimizeRuns counts optimize cycles by final outcome.
	OptimizeRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "optimize_runs_total", Help: "Optimize cycles by outcome."},
		[]string{"outcome"},
	)
)

// RegisterDefault registers all collectors once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(RoutingAttempts)
		Registry.MustRegister(RoutingLatency)
		Registry.MustRegister(OptimizeRuns)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
