// Package metrics exposes Prometheus instruments for the library server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's instruments. A nil *Metrics records nothing,
// so services can be built without it in tests.
type Metrics struct {
	registry *prometheus.Registry

	loansIssued    prometheus.Counter
	loansReturned  prometheus.Counter
	loanRejections *prometheus.CounterVec
	rpcDuration    *prometheus.HistogramVec
}

// New creates the instruments on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		loansIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "librarian",
			Name:      "loans_issued_total",
			Help:      "Loans created.",
		}),
		loansReturned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "librarian",
			Name:      "loans_returned_total",
			Help:      "Loans closed by a return.",
		}),
		loanRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "librarian",
			Name:      "loan_rejections_total",
			Help:      "Loan requests rejected, by reason.",
		}, []string{"reason"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "librarian",
			Name:      "rpc_duration_seconds",
			Help:      "Unary RPC latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}
	reg.MustRegister(m.loansIssued, m.loansReturned, m.loanRejections, m.rpcDuration)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) LoanIssued() {
	if m != nil {
		m.loansIssued.Inc()
	}
}

func (m *Metrics) LoanReturned() {
	if m != nil {
		m.loansReturned.Inc()
	}
}

// LoanRejected counts a refused loan request; reason is a short label such
// as "invalid", "unavailable" or "not_found".
func (m *Metrics) LoanRejected(reason string) {
	if m != nil {
		m.loanRejections.WithLabelValues(reason).Inc()
	}
}

// ObserveRPC records the latency of one call.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m != nil {
		m.rpcDuration.WithLabelValues(procedure, code).Observe(seconds)
	}
}
