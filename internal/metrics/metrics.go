// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers request and domain counters for Prometheus scraping.
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	invitesCreated  prometheus.Counter
	invitesResolved *prometheus.CounterVec
	expensesCreated prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with the given
// registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitpot_http_status_total",
			Help: "Responses by HTTP status code.",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitpot_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		invitesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "splitpot_invites_created_total",
			Help: "Group invites created.",
		}),
		invitesResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitpot_invites_resolved_total",
			Help: "Group invites resolved, by terminal status.",
		}, []string{"status"}),
		expensesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "splitpot_expenses_created_total",
			Help: "Expenses recorded.",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.invitesCreated,
		c.invitesResolved,
		c.expensesCreated,
	)

	return c
}

// RecordHTTPStatus counts one response with the given status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency observes one request duration.
func (c *Collector) RecordRequestLatency(d time.Duration) {
	c.requestLatency.Observe(d.Seconds())
}

// RecordInviteCreated counts one created invite.
func (c *Collector) RecordInviteCreated() {
	c.invitesCreated.Inc()
}

// RecordInviteResolved counts one resolved invite by terminal status.
func (c *Collector) RecordInviteResolved(status string) {
	c.invitesResolved.WithLabelValues(status).Inc()
}

// RecordExpenseCreated counts one recorded expense.
func (c *Collector) RecordExpenseCreated() {
	c.expensesCreated.Inc()
}

// Handler returns the HTTP handler for Prometheus scraping.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
