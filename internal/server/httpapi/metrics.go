package httpapi

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requestDuration *prometheus.HistogramVec
	logins          *prometheus.CounterVec
	confirmations   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fitflow_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		logins: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitflow_login_attempts_total",
				Help: "Login attempts by outcome",
			},
			[]string{"success"},
		),
		confirmations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitflow_payment_confirmations_total",
				Help: "Payment confirmation polls by reported state",
			},
			[]string{"state"},
		),
	}
}

func (m *metrics) recordLogin(success bool) {
	m.logins.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func (m *metrics) recordConfirmation(state string) {
	m.confirmations.WithLabelValues(state).Inc()
}
