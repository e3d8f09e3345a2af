package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "theroom", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "theroom", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	MailSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "theroom", Name: "mail_sent_total", Help: "Outgoing mails by kind and outcome."},
		[]string{"kind", "outcome"},
	)
	MediaProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "theroom", Name: "media_processed_total", Help: "Stored media files."},
		[]string{"kind", "outcome"},
	)
	TrialReminders = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "theroom", Name: "trial_reminders_total", Help: "Trial expiry reminders."},
		[]string{"outcome"}, // outcome: sent|skipped|failed
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, MailSent, MediaProcessed, TrialReminders)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on its own listener. An empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return srv
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveMail(kind string, err error) {
	MailSent.WithLabelValues(kind, outcome(err)).Inc()
}

func ObserveMedia(kind string, err error) {
	MediaProcessed.WithLabelValues(kind, outcome(err)).Inc()
}

func ObserveReminder(result string) {
	TrialReminders.WithLabelValues(result).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
