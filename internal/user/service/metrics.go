package service

import (
	"github.com/accounthub/user-service/internal/observability/metrics"
)

func incrementRegistrations() {
	metrics.RegistrationsTotal.Inc()
}

func incrementRegistrationsDuplicate() {
	metrics.RegistrationsDuplicate.Inc()
}

func incrementLogins() {
	metrics.LoginsTotal.Inc()
}

func incrementLoginsFailed() {
	metrics.LoginsFailed.Inc()
}

func incrementSessionTokensIssued() {
	metrics.SessionTokensIssued.Inc()
}
