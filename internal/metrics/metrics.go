package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "counters"

type Metrics struct {
	reg *prometheus.Registry

	ticketsIssued     *prometheus.CounterVec
	ticketsCalled     *prometheus.CounterVec
	queueDepth        *prometheus.GaugeVec
	persistFailures   prometheus.Counter
	operationDuration *prometheus.HistogramVec
}

// New registers every collector on a private registry so tests and
// multiple servers in one process do not collide.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		ticketsIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_issued_total",
			Help:      "Total number of tickets issued",
		}, []string{"section", "priority"}),
		ticketsCalled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_called_total",
			Help:      "Total number of tickets called to a counter",
		}, []string{"section"}),
		queueDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Tickets currently waiting per section",
		}, []string{"section"}),
		persistFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Total number of failed state writes",
		}),
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of queue operations including persistence",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) TicketIssued(section string, priority bool) {
	label := "false"
	if priority {
		label = "true"
	}
	m.ticketsIssued.WithLabelValues(section, label).Inc()
}

func (m *Metrics) TicketCalled(section string) {
	m.ticketsCalled.WithLabelValues(section).Inc()
}

func (m *Metrics) SetQueueDepth(section string, depth int) {
	m.queueDepth.WithLabelValues(section).Set(float64(depth))
}

func (m *Metrics) PersistFailed() {
	m.persistFailures.Inc()
}

// Time starts a timer for op; call the returned func when the op is done.
func (m *Metrics) Time(op string) func() {
	timer := prometheus.NewTimer(m.operationDuration.WithLabelValues(op))
	return func() { timer.ObserveDuration() }
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
