package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for consent lifecycle operations.
type Metrics struct {
	ConsentsAuthorized *prometheus.CounterVec
	ConsentsRevoked    *prometheus.CounterVec
	ConsentsRenewed    *prometheus.CounterVec
	AccessEvents       *prometheus.CounterVec
	ActiveConsents     prometheus.Gauge
	OperationLatency   *prometheus.HistogramVec
}

// New registers the consent collectors on the default Prometheus registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the consent collectors on the given registry. Tests use
// a private registry so repeated construction never collides.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ConsentsAuthorized: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentry_consents_authorized_total",
			Help: "Total number of consents authorized, labeled by provider",
		}, []string{"provider"}),
		ConsentsRevoked: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentry_consents_revoked_total",
			Help: "Total number of consents revoked, labeled by provider",
		}, []string{"provider"}),
		ConsentsRenewed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentry_consents_renewed_total",
			Help: "Total number of consents renewed, labeled by provider",
		}, []string{"provider"}),
		AccessEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentry_access_events_total",
			Help: "Total number of data access events recorded, labeled by provider",
		}, []string{"provider"}),
		ActiveConsents: factory.NewGauge(prometheus.GaugeOpts{
			Name: "consentry_active_consents",
			Help: "Current number of active consents system-wide",
		}),
		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "consentry_operation_latency_seconds",
			Help:    "Latency of consent lifecycle operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementConsentsAuthorized(provider string) {
	m.ConsentsAuthorized.WithLabelValues(provider).Inc()
}

func (m *Metrics) IncrementConsentsRevoked(provider string) {
	m.ConsentsRevoked.WithLabelValues(provider).Inc()
}

func (m *Metrics) IncrementConsentsRenewed(provider string) {
	m.ConsentsRenewed.WithLabelValues(provider).Inc()
}

func (m *Metrics) IncrementAccessEvents(provider string) {
	m.AccessEvents.WithLabelValues(provider).Inc()
}

func (m *Metrics) IncrementActiveConsents(count float64) {
	m.ActiveConsents.Add(count)
}

func (m *Metrics) DecrementActiveConsents(count float64) {
	m.ActiveConsents.Sub(count)
}

// ObserveOperationLatency records the latency of a lifecycle operation.
func (m *Metrics) ObserveOperationLatency(operation string, durationSeconds float64) {
	m.OperationLatency.WithLabelValues(operation).Observe(durationSeconds)
}
