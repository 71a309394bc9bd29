package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingField is returned when a required form field is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidInput is returned when a field has an invalid shape.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotAllowed is returned when the actor lacks permission for the action.
	ErrNotAllowed = errors.New("action not allowed")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAccountRecordMissing is returned when an identity has no matching
	// account profile. Fatal for the session: the caller must sign out.
	ErrAccountRecordMissing = errors.New("account record not found for identity")
	// ErrProfileWriteFailed is returned when the profile write after a
	// successful identity creation fails, leaving an orphaned credential.
	ErrProfileWriteFailed = errors.New("profile write failed after identity creation")
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConfirmationRequired is returned when a destructive action is
	// attempted without explicit confirmation.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors are
// remote/store failures: surfaced verbatim, never retried.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrMissingField):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELD")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrConfirmationRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CONFIRMATION_REQUIRED")
	case errors.Is(err, ErrNotAllowed):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_ALLOWED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrAccountRecordMissing):
		return NewHTTPError(http.StatusConflict, err.Error(), "ACCOUNT_RECORD_MISSING")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "REMOTE_ERROR")
	}
}
