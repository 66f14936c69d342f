// Package metrics defines the Prometheus metrics of the credential and access
// control API. It is the single source of truth for metric names, labels and
// help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cms_auth"

// Metrics groups the auth counters. A nil *Metrics records nothing.
type Metrics struct {
	// LoginsTotal counts login attempts.
	// Label result: "success", "invalid_credentials", "error".
	LoginsTotal *prometheus.CounterVec
	// RegistrationsTotal counts registrations.
	// Label result: "success", "conflict", "invalid", "error".
	RegistrationsTotal *prometheus.CounterVec
	// PasswordResetRequestsTotal counts forgot-password submissions.
	// Label outcome: "accepted", "delivery_failure", "error".
	PasswordResetRequestsTotal *prometheus.CounterVec
	// PasswordResetRedemptionsTotal counts reset redemptions.
	// Label result: "success", "invalid_or_expired", "mismatch", "error".
	PasswordResetRedemptionsTotal *prometheus.CounterVec
	// AuthorizationDecisionsTotal counts gate decisions on protected routes.
	// Label decision: "allowed", "unauthenticated", "forbidden".
	AuthorizationDecisionsTotal *prometheus.CounterVec
}

// New registers the auth metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoginsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of login attempts, by result.",
		}, []string{"result"}),
		RegistrationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Total number of registration attempts, by result.",
		}, []string{"result"}),
		PasswordResetRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_reset_requests_total",
			Help:      "Total number of password reset requests, by outcome.",
		}, []string{"outcome"}),
		PasswordResetRedemptionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_reset_redemptions_total",
			Help:      "Total number of password reset redemptions, by result.",
		}, []string{"result"}),
		AuthorizationDecisionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorization_decisions_total",
			Help:      "Total number of authorization decisions on protected routes.",
		}, []string{"decision"}),
	}
}

func (m *Metrics) Login(result string) {
	if m != nil {
		m.LoginsTotal.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) Registration(result string) {
	if m != nil {
		m.RegistrationsTotal.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) ResetRequest(outcome string) {
	if m != nil {
		m.PasswordResetRequestsTotal.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ResetRedemption(result string) {
	if m != nil {
		m.PasswordResetRedemptionsTotal.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) Decision(decision string) {
	if m != nil {
		m.AuthorizationDecisionsTotal.WithLabelValues(decision).Inc()
	}
}
