package http

import (
	"net/http"

	"github.com/accounthub/user-service/internal/common/constants"
	"github.com/accounthub/user-service/internal/common/httpmetrics"
	"github.com/accounthub/user-service/internal/common/logger"
)

// BuildBaseHandler wraps the application handler with the ambient middleware
// stack: security headers, panic recovery, trace ids, body-size limits and
// request metrics.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	return securityHeaders(recovery(traceID(maxRequestSize(metrics.Wrap(handler)))))
}
