package failure_test

import (
	"errors"
	"fmt"
	"ihome/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("validation failed")), code: http.StatusBadRequest, message: "validation failed"},
		{name: "bad request from string", err: failure.BadRequestFromString("custom"), code: http.StatusBadRequest, message: "custom"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, message: "boom"},
		{name: "not found", err: failure.NotFound("house not found"), code: http.StatusNotFound, message: "house not found"},
		{name: "conflict", err: failure.Conflict("mobile already registered"), code: http.StatusConflict, message: "mobile already registered"},
		{name: "forbidden", err: failure.Forbidden("not the landlord"), code: http.StatusForbidden, message: "not the landlord"},
		{name: "too many requests", err: failure.TooManyRequests("slow down"), code: http.StatusTooManyRequests, message: "slow down"},
		{name: "bad gateway", err: failure.BadGateway(errors.New("sms down")), code: http.StatusBadGateway, message: "upstream service failed"},
		{name: "store unavailable", err: failure.StoreUnavailable(errors.New("conn refused")), code: http.StatusServiceUnavailable, message: "storage unavailable"},
		{name: "new", err: failure.New(http.StatusTeapot, "teapot"), code: http.StatusTeapot, message: "teapot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			assert.True(t, errors.As(tt.err, &f))
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.Nil(t, failure.BadRequest(nil))
	assert.Nil(t, failure.InternalError(nil))
	assert.Nil(t, failure.BadGateway(nil))
	assert.Nil(t, failure.StoreUnavailable(nil))
}

func TestStoreUnavailable_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("failed to get house: %w", failure.StoreUnavailable(cause))

	assert.ErrorIs(t, err, cause)
	assert.True(t, failure.IsStoreUnavailable(err))
	assert.False(t, failure.IsStoreUnavailable(failure.NotFound("x")))
	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{name: "failure error", input: &failure.Failure{Code: http.StatusBadRequest, Message: "test"}, expected: http.StatusBadRequest},
		{name: "wrapped failure error", input: fmt.Errorf("ctx: %w", failure.Conflict("taken")), expected: http.StatusConflict},
		{name: "regular error", input: errors.New("regular error"), expected: http.StatusInternalServerError},
		{name: "nil error", input: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}
