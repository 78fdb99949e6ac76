package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_registrations_total",
			Help: "Total number of successful registrations",
		},
	)

	RegistrationsDuplicate = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_registrations_duplicate_total",
			Help: "Total number of registrations rejected for an existing email",
		},
	)

	LoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_logins_total",
			Help: "Total number of successful logins",
		},
	)

	LoginsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "user_logins_failed_total",
			Help: "Total number of failed login attempts",
		},
	)

	SessionTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_tokens_issued_total",
			Help: "Total number of session tokens issued",
		},
	)

	TokenValidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "token_validations_total",
			Help: "Total number of session token validations",
		},
	)

	TokenValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "token_validations_failed_total",
			Help: "Total number of failed session token validations",
		},
	)
)
