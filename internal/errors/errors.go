package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the reservation core. Handlers map these to HTTP
// status codes with FromError; everything else is treated as a storage
// or infrastructure failure.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyTerminal    = errors.New("request already answered")
	ErrVehicleUnavailable = errors.New("vehicle is not available for the selected period")
	ErrInvalidPeriod      = errors.New("end date must be after start date")
)

// ValidationError is a rejected input. Safe to retry with corrected data,
// nothing was mutated.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)

// FromError translates a service error into an HTTPError. ErrVehicleUnavailable
// gets its own 409 so the frontend can tell "pick another vehicle" apart from a
// real failure.
func FromError(err error) *HTTPError {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return NewHTTPError(http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrInvalidPeriod):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidPeriod.Error())
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrAlreadyTerminal):
		return NewHTTPError(http.StatusConflict, ErrAlreadyTerminal.Error())
	case errors.Is(err, ErrVehicleUnavailable):
		return NewHTTPError(http.StatusConflict, ErrVehicleUnavailable.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
