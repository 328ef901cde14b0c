// Package metrics holds the Prometheus metrics of the server. Each Metrics
// owns its registry, so several instances can coexist in tests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the directory service.
type Metrics struct {
	registry *prometheus.Registry

	ClientsCreated  prometheus.Counter
	ClientsDeleted  prometheus.Counter
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	PhoneLookups    *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ClientsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "myjar_clients_created_total",
			Help: "Total number of clients created",
		}),
		ClientsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "myjar_clients_deleted_total",
			Help: "Total number of clients deleted",
		}),
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "myjar_requests_total",
			Help: "Requests handled, by transport, method and result code",
		}, []string{"transport", "method", "code"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "myjar_request_duration_seconds",
			Help:    "Duration of handled requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"transport", "method"}),
		PhoneLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "myjar_phone_lookups_total",
			Help: "Phone verification lookups, by outcome",
		}, []string{"outcome"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) IncrementClientsCreated() {
	m.ClientsCreated.Inc()
}

func (m *Metrics) IncrementClientsDeleted() {
	m.ClientsDeleted.Inc()
}

// ObserveRequest records one handled request. Call with time.Now() taken at
// the start of the request.
func (m *Metrics) ObserveRequest(transport, method, code string, start time.Time) {
	m.Requests.WithLabelValues(transport, method, code).Inc()
	m.RequestDuration.WithLabelValues(transport, method).Observe(time.Since(start).Seconds())
}

// ObservePhoneLookup records whether the verification service answered.
func (m *Metrics) ObservePhoneLookup(reachable bool) {
	outcome := "unreachable"
	if reachable {
		outcome = "reachable"
	}
	m.PhoneLookups.WithLabelValues(outcome).Inc()
}
