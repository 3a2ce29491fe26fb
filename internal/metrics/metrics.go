// Package metrics holds the Prometheus collectors for the plan service.
// All methods are safe to call on a nil *Metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry *prometheus.Registry

	imports         *prometheus.CounterVec
	storageWrites   *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

// New creates a registry with runtime collectors and the service counters.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workoutplan",
			Name:      "imports_total",
			Help:      "Import attempts by channel and result (accepted or rejection kind).",
		}, []string{"channel", "result"}),
		storageWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workoutplan",
			Name:      "storage_writes_total",
			Help:      "Durable writes of the plan document by result.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workoutplan",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status.",
		}, []string{"method", "status"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "workoutplan",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.imports, m.storageWrites, m.requests, m.requestDuration)
	return m
}

// ObserveImport counts one import attempt.
func (m *Metrics) ObserveImport(channel, result string) {
	if m == nil {
		return
	}
	m.imports.WithLabelValues(channel, result).Inc()
}

// ObserveStorageWrite counts one durable write.
func (m *Metrics) ObserveStorageWrite(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storageWrites.WithLabelValues(result).Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.requestDuration.Observe(d.Seconds())
}
