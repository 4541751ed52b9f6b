// Package apperror maps internal failures onto the coarse, non-leaking
// messages that cross the trust boundary to the client. Stack traces,
// driver errors and mail-provider detail stay in server logs.
package apperror

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Error pairs an HTTP status with the client-safe message for it. The
// wrapped cause is for server-side logging only and never serialized.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the internal cause to errors.Is/As for logging.
func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches an internal cause without changing the client message.
func (e *Error) WithCause(err error) *Error {
	return &Error{Status: e.Status, Message: e.Message, cause: err}
}

var (
	// ErrMissingFields: one or more of name, phone, address, pestType is
	// absent or empty.
	ErrMissingFields = &Error{Status: http.StatusBadRequest, Message: "Missing required fields"}

	// ErrInvalidPhone: the phone field fails the shape check.
	ErrInvalidPhone = &Error{Status: http.StatusBadRequest, Message: "Invalid phone number format"}

	// ErrRateLimited: the sliding window for this identifier is full.
	ErrRateLimited = &Error{Status: http.StatusTooManyRequests, Message: "Too many requests. Please try again later."}

	// ErrStoreFailure: the appointment could not be persisted.
	ErrStoreFailure = &Error{Status: http.StatusInternalServerError, Message: "Failed to save appointment"}

	// ErrInternal: any other failure, including the mandatory owner
	// notification not going out.
	ErrInternal = &Error{Status: http.StatusInternalServerError, Message: "An error occurred while processing your request"}
)

// FromValidation collapses validator errors into the booking endpoint's two
// 400 responses. Missing required fields take precedence over a malformed
// phone so a submission with both problems reports the absence first.
func FromValidation(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrInternal.WithCause(err)
	}

	phoneOnly := false
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			return ErrMissingFields
		case "bookingphone":
			phoneOnly = true
		}
	}
	if phoneOnly {
		return ErrInvalidPhone
	}
	return ErrMissingFields
}
