package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration workflow.
// Tracks submission outcomes, notification deliveries and pass sends.
type Metrics struct {
	Submissions    *prometheus.CounterVec
	Notifications  *prometheus.CounterVec
	PassSends      *prometheus.CounterVec
	SubmitDuration prometheus.Histogram
}

// New creates a Metrics instance with all collectors registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eventpass_registrations_submitted_total",
			Help: "Registration submissions by outcome (success, invalid, error)",
		}, []string{"outcome"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eventpass_notifications_total",
			Help: "Notification dispatches by kind and status",
		}, []string{"kind", "status"}),
		PassSends: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eventpass_pass_sends_total",
			Help: "On-demand pass sends by outcome (sent, not_found, error)",
		}, []string{"outcome"}),
		SubmitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "eventpass_submit_duration_seconds",
			Help:    "Duration of the validate, persist and notify pipeline",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// NewNop returns metrics registered on a private registry, for tests and
// callers that do not expose them.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) ObserveSubmission(outcome string, start time.Time) {
	m.Submissions.WithLabelValues(outcome).Inc()
	m.SubmitDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncNotification(kind, status string) {
	m.Notifications.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) IncPassSend(outcome string) {
	m.PassSends.WithLabelValues(outcome).Inc()
}
