package service

import (
	"errors"
	"net/http"

	commonerrors "github.com/accounthub/user-service/internal/common/errors"
)

var (
	// ErrInvalidCredentials is deliberately generic: an unknown email and a
	// wrong password are indistinguishable to the caller.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusBadRequest,
		"Please try to login with correct credentials",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Sorry a user with this email already exists",
	)
)

// ValidationError carries the message of the first failing field check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

func newInternalError(code, message string, cause error) commonerrors.DomainError {
	return commonerrors.NewDomainError(
		code,
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		message,
	).WithCause(cause)
}
