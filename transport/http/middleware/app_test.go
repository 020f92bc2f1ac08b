package middleware_test

import (
	"ihome/config"
	"ihome/infras/otel/mocks"
	"ihome/shared/constant"
	"ihome/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppMiddleware_StrictRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.StrictLimiter.RatePerSecond = 0
	cfg.App.StrictLimiter.Burst = 1

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, nil)
	handler := app.StrictRateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/verifications/sms", nil)
		req.Header.Set(constant.RequestHeaderForwardedFor, ip+", 10.0.0.1")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7"))
	assert.Equal(t, http.StatusOK, send("203.0.113.8"))
}

func TestAppMiddleware_Tracing(t *testing.T) {
	cfg := &config.Config{}
	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, nil)

	handler := app.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
