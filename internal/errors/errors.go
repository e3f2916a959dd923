package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailAlreadyRegistered is returned when signing up with an email that is taken.
	ErrEmailAlreadyRegistered = errors.New("Email already registered")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrUnauthorized is returned when a bearer token is missing, malformed,
	// expired, revoked or names a user that no longer exists.
	ErrUnauthorized = errors.New("Could not validate credentials")
	// ErrClassroomNotFound is returned when a classroom id does not resolve.
	ErrClassroomNotFound = errors.New("Classroom not found")
	// ErrNoActiveFocus is returned when stopping focus mode with no open session.
	ErrNoActiveFocus = errors.New("No active focus session")
	// ErrFocusAlreadyActive is returned when starting focus mode while a session is open.
	ErrFocusAlreadyActive = errors.New("Focus Mode already active")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are matched
// with errors.Is; anything unknown becomes a 500 without leaking its text.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailAlreadyRegistered):
		return NewHTTPError(http.StatusBadRequest, ErrEmailAlreadyRegistered.Error(), "EMAIL_ALREADY_REGISTERED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrClassroomNotFound):
		return NewHTTPError(http.StatusNotFound, ErrClassroomNotFound.Error(), "CLASSROOM_NOT_FOUND")
	case errors.Is(err, ErrNoActiveFocus):
		return NewHTTPError(http.StatusNotFound, ErrNoActiveFocus.Error(), "NO_ACTIVE_FOCUS")
	case errors.Is(err, ErrFocusAlreadyActive):
		return NewHTTPError(http.StatusConflict, ErrFocusAlreadyActive.Error(), "FOCUS_ALREADY_ACTIVE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
