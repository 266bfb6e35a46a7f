// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// Application-level sentinel errors. Services wrap these so that
// webutil.MapErrorToStatusCode can derive an HTTP status from any error.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict")

	// ErrRemoteUnavailable marks a transient remote-store failure: the write
	// belongs in the offline queue and may be retried later.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrRemoteRejected marks a permanent remote-store rejection
	// (validation/structural). Retrying will not help.
	ErrRemoteRejected = errors.New("remote store rejected request")

	// ErrNoSession means no valid session was available for a remote call.
	// Policy: writes without a session are queued, not dropped.
	ErrNoSession = errors.New("no valid session")
)

// ErrorDetail is the error payload returned to API clients.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse wraps ErrorDetail in the response envelope.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError carries a client-facing detail plus the wrapped cause.
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}
