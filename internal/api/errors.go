package api

import (
	"errors"
	"net/http"

	"github.com/veleda/studyflow/internal/api/shared"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/service"
	"github.com/veleda/studyflow/internal/service/auth"
	"github.com/veleda/studyflow/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. The
// mapping works on sentinel identity, never on message content, so
// internal error strings cannot change the status.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrPremiumRequired):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidCycles):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Validation errors surface their field message; everything else
// maps to a fixed phrase so internal details never leak.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Error()
	}

	var premiumErr *domain.PremiumError
	if errors.As(err, &premiumErr) {
		return premiumErr.Error()
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid token"
	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"
	case errors.Is(err, domain.ErrPremiumRequired):
		return "Premium subscription required"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, service.ErrInvalidDateRange):
		return "End date precedes start date"
	case errors.Is(err, service.ErrInvalidCycles):
		return "Cycle count must be at least 1"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status and safe message and writes
// the response, logging the underlying error in redacted form. An empty
// userMessage falls back to the mapped safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
