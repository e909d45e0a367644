package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the relay counters. A nil *Metrics records nothing.
type Metrics struct {
	activeSessions prometheus.Gauge
	activeRooms    prometheus.Gauge
	sessionTotal   prometheus.Counter
	authFailures   *prometheus.CounterVec
	handlerErrors  *prometheus.CounterVec
	handlerLatency *prometheus.HistogramVec
	broadcasts     *prometheus.CounterVec
	deliveryDrops  prometheus.Counter
	allocMemory    prometheus.Gauge
	workerRestarts *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chat_relay_sessions_active",
			Help: "Current number of authenticated sessions.",
		}),
		activeRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chat_relay_rooms_active",
			Help: "Current number of rooms with at least one member.",
		}),
		sessionTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chat_relay_sessions_total",
			Help: "Total number of authenticated sessions since start.",
		}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_relay_auth_failures_total",
			Help: "Rejected handshakes grouped by error code.",
		}, []string{"code"}),
		handlerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_relay_handler_errors_total",
			Help: "Event handler failures grouped by event and kind.",
		}, []string{"event", "kind"}),
		handlerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chat_relay_handler_latency_seconds",
			Help:    "Latency for handling client events.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		}, []string{"event"}),
		broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_relay_broadcasts_total",
			Help: "Outbound events grouped by name.",
		}, []string{"event"}),
		deliveryDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chat_relay_delivery_drops_total",
			Help: "Outbound events a session could not accept.",
		}),
		allocMemory: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chat_relay_alloc_bytes",
			Help: "Heap bytes allocated, sampled by the monitor.",
		}),
		workerRestarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_relay_worker_restarts_total",
			Help: "Background workers restarted after a crash.",
		}, []string{"worker"}),
	}

	reg.MustRegister(
		m.activeSessions,
		m.activeRooms,
		m.sessionTotal,
		m.authFailures,
		m.handlerErrors,
		m.handlerLatency,
		m.broadcasts,
		m.deliveryDrops,
		m.allocMemory,
		m.workerRestarts,
	)
	return m
}

func (m *Metrics) IncSession() {
	if m == nil {
		return
	}
	m.sessionTotal.Inc()
}

func (m *Metrics) RecordAuthFailure(code string) {
	if m == nil {
		return
	}
	m.authFailures.WithLabelValues(code).Inc()
}

func (m *Metrics) RecordError(event, kind string) {
	if m == nil {
		return
	}
	m.handlerErrors.WithLabelValues(event, kind).Inc()
}

func (m *Metrics) ObserveLatency(event string, dur time.Duration) {
	if m == nil || event == "" {
		return
	}
	m.handlerLatency.WithLabelValues(event).Observe(dur.Seconds())
}

func (m *Metrics) RecordBroadcast(event string) {
	if m == nil {
		return
	}
	m.broadcasts.WithLabelValues(event).Inc()
}

// RecordDrop counts an outbound event a session could not accept.
func (m *Metrics) RecordDrop() {
	if m == nil {
		return
	}
	m.deliveryDrops.Inc()
}

func (m *Metrics) RecordRestart(worker string) {
	if m == nil {
		return
	}
	m.workerRestarts.WithLabelValues(worker).Inc()
}

func (m *Metrics) setSnapshot(s Snapshot) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(s.Sessions))
	m.activeRooms.Set(float64(s.Rooms))
	m.allocMemory.Set(float64(s.AllocBytes))
}
