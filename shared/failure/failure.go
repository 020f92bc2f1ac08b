package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// New returns a Failure with an arbitrary code.
func New(code int, msg string) *Failure {
	return &Failure{
		Code:    code,
		Message: msg,
	}
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
			cause:   err,
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

func TooManyRequests(msg string) error {
	return &Failure{
		Code:    http.StatusTooManyRequests,
		Message: msg,
	}
}

// BadGateway marks a failure of a third-party dependency such as the SMS gateway.
func BadGateway(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusBadGateway,
		Message: "upstream service failed",
		cause:   err,
	}
}

// StoreUnavailable marks a persistence failure. The cause stays reachable through errors.Is/As
// while the client only sees a generic message.
func StoreUnavailable(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Message: "storage unavailable",
		cause:   err,
	}
}

// IsStoreUnavailable reports whether err was produced by StoreUnavailable.
func IsStoreUnavailable(err error) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code == http.StatusServiceUnavailable
	}

	return false
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
