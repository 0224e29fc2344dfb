package apperror

import (
	"errors"
	"net/http"
)

// Kind is the stable discriminant clients can switch on.
type Kind string

const (
	KindInvalidRange         Kind = "invalid_range"
	KindPastDate             Kind = "past_date"
	KindNotFound             Kind = "not_found"
	KindSeatTaken            Kind = "seat_taken"
	KindEmployeeDoubleBooked Kind = "employee_double_booked"
	KindStoreFailure         Kind = "store_failure"
	KindInvalidInput         Kind = "invalid_input"
	KindAmbiguous            Kind = "ambiguous"
	KindAlreadyExists        Kind = "already_exists"
	KindUnauthorized         Kind = "unauthorized"
	KindForbidden            Kind = "forbidden"
)

// AppError is a custom error type that includes an HTTP status code and a kind discriminant.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Machine readable discriminant
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an AppError of the same kind and message.
// A target with an empty message matches any error of its kind, which lets
// errors carrying a dynamic message still be compared against their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// New creates a new AppError with a status code, kind and message.
func New(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// OfKind returns a message-less AppError usable as an errors.Is target for a whole kind.
func OfKind(kind Kind) *AppError {
	return &AppError{Kind: kind}
}

// KindOf returns the kind carried by err, or KindStoreFailure for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreFailure
}

// StatusOf returns the HTTP status carried by err, or 500 for foreign errors.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
