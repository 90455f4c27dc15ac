package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	ConnectionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ats_ws_connections",
			Help: "Number of currently registered websocket connections.",
		},
	)
	MessagesSentCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_ws_messages_sent_total",
			Help: "Total number of messages queued to websocket connections.",
		},
		[]string{"type"},
	)
	SendFailuresCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ats_ws_send_failures_total",
			Help: "Total number of messages that could not be delivered to a connection.",
		},
	)
	ReapedConnectionsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ats_ws_connections_reaped_total",
			Help: "Total number of connections terminated by the liveness sweep.",
		},
	)
	StatusTransitionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_status_transitions_total",
			Help: "Total number of applied applicant status transitions.",
		},
		[]string{"to"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(ConnectionsGauge)
		prometheus.MustRegister(MessagesSentCounter)
		prometheus.MustRegister(SendFailuresCounter)
		prometheus.MustRegister(ReapedConnectionsCounter)
		prometheus.MustRegister(StatusTransitionsCounter)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
