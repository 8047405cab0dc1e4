// internal/services/metrics.go
package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for ledger activity. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	purchasesLogged  prometheus.Counter
	portionsReceived prometheus.Counter
	portionsThawed   prometheus.Counter
	portionsWasted   *prometheus.CounterVec
	activeAlerts     *prometheus.GaugeVec
	requestCounter   *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		purchasesLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_purchase_batches_logged_total",
			Help: "Number of purchase batches logged",
		}),
		portionsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_portions_received_total",
			Help: "Portions received across all purchase batches",
		}),
		portionsThawed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_portions_thawed_total",
			Help: "Portions moved from frozen purchase batches to thawed batches",
		}),
		portionsWasted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_portions_wasted_total",
			Help: "Portions discarded, by reason and batch type",
		}, []string{"reason", "batch_type"}),
		activeAlerts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "inventory_active_alerts",
			Help: "Expiry alerts produced by the last alert scan, by type",
		}, []string{"type"}),
		requestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inventory_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.Registry.MustRegister(
		m.purchasesLogged,
		m.portionsReceived,
		m.portionsThawed,
		m.portionsWasted,
		m.activeAlerts,
		m.requestCounter,
		m.requestLatency,
	)
	return m
}

func (m *Metrics) PurchaseLogged(portions int) {
	if m == nil {
		return
	}
	m.purchasesLogged.Inc()
	m.portionsReceived.Add(float64(portions))
}

func (m *Metrics) PortionsThawed(portions int) {
	if m == nil {
		return
	}
	m.portionsThawed.Add(float64(portions))
}

func (m *Metrics) PortionsWasted(reason, batchType string, portions int) {
	if m == nil {
		return
	}
	if batchType == "" {
		batchType = "none"
	}
	m.portionsWasted.WithLabelValues(reason, batchType).Add(float64(portions))
}

func (m *Metrics) AlertsScanned(expired, expiringSoon int) {
	if m == nil {
		return
	}
	m.activeAlerts.WithLabelValues("expired").Set(float64(expired))
	m.activeAlerts.WithLabelValues("expiring_soon").Set(float64(expiringSoon))
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestCounter.WithLabelValues(method, route, status).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(seconds)
}
