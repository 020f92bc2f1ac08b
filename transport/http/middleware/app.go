package middleware

import (
	"fmt"
	"ihome/config"
	"ihome/infras/otel"
	"ihome/shared/cache"
	"ihome/transport/http/response"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

const (
	otelHTTPScopeName = "http"

	visitorIdleTimeout = 3 * time.Minute
	visitorSweepEvery  = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	StrictRateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:     otel,
		config:   config,
		cache:    cache,
		visitors: make(map[string]*visitor),
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		defer scope.End()

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		scope.SetAttributes(map[string]any{
			"app.name":         a.config.App.Name,
			"http.path":        r.URL.Path,
			"http.route":       route,
			"http.method":      r.Method,
			"http.user_agent":  a.getUA(r),
			"http.host":        r.Host,
			"http.source":      a.getClientIP(r),
			"http.status_code": ww.Status(),
		})

		if ww.Status() >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s %s responded %d", r.Method, route, ww.Status()))
		}
	})
}

// StrictRateLimit is an in-process token bucket per client IP for endpoints that cost money, like sending SMS.
func (a *appMiddleware) StrictRateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.limiter(a.getClientIP(r)).Allow() {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) limiter(ip string) *rate.Limiter {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()

	if now.Sub(a.lastSweep) > visitorSweepEvery {
		for key, v := range a.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTimeout {
				delete(a.visitors, key)
			}
		}

		a.lastSweep = now
	}

	v, ok := a.visitors[ip]
	if !ok {
		strict := a.config.App.StrictLimiter
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(strict.RatePerSecond), max(1, strict.Burst))}
		a.visitors[ip] = v
	}

	v.lastSeen = now

	return v.limiter
}
