package middleware_test

import (
	"context"
	"errors"
	"ihome/infras/jwt"
	jwtMocks "ihome/infras/jwt/mocks"
	"ihome/infras/otel/mocks"
	"ihome/permissions"
	"ihome/shared/constant"
	"ihome/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type revocationStub struct {
	revoked bool
	err     error
}

func (r revocationStub) IsRevoked(_ context.Context, _ string) (bool, error) {
	return r.revoked, r.err
}

var routePermissions = &permissions.PermissionData{
	Endpoints: []permissions.Permission{
		{Path: "/v1/houses/{id}", Method: http.MethodGet, Skip: true},
		{Path: "/v1/orders/{id}/status", Method: http.MethodPut, Permissions: []string{constant.RoleUser, constant.RoleAdmin}},
		{Path: "/v1/admin", Method: http.MethodGet, Permissions: []string{constant.RoleAdmin}},
	},
}

func newRouter(jwtService jwt.JWT, revocation middleware.TokenRevocation) http.Handler {
	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), routePermissions, revocation)

	echoUser := func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		_, _ = w.Write([]byte(userID))
	}

	router := chi.NewRouter()
	router.Use(authRole.Auth)
	router.Use(authRole.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Get("/houses/{id}", echoUser)
		r.Put("/orders/{id}/status", echoUser)
		r.Get("/admin", echoUser)
	})

	return router
}

func TestAuthRole_Auth(t *testing.T) {
	claims := &jwt.Claims{UserID: "user-1", Mobile: "13800138000", Role: constant.RoleUser, TokenID: "token-1"}

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		revocation revocationStub
		setupMock  func(m *jwtMocks.MockJWT)
		wantCode   int
		wantBody   string
	}{
		{
			name:      "public route without token is anonymous",
			method:    http.MethodGet,
			path:      "/v1/houses/42",
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusOK,
			wantBody:  "",
		},
		{
			name:   "public route with valid token identifies the caller",
			method: http.MethodGet,
			path:   "/v1/houses/42",
			header: "Bearer good",
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(claims, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "user-1",
		},
		{
			name:   "public route ignores a bad token",
			method: http.MethodGet,
			path:   "/v1/houses/42",
			header: "Bearer bad",
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "bad", jwt.AccessToken).Return(nil, jwt.ErrInvalidToken)
			},
			wantCode: http.StatusOK,
			wantBody: "",
		},
		{
			name:      "private route without token",
			method:    http.MethodPut,
			path:      "/v1/orders/1/status",
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:   "private route with valid token",
			method: http.MethodPut,
			path:   "/v1/orders/1/status",
			header: "Bearer good",
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(claims, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "user-1",
		},
		{
			name:   "expired token",
			method: http.MethodPut,
			path:   "/v1/orders/1/status",
			header: "Bearer old",
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:       "revoked token",
			method:     http.MethodPut,
			path:       "/v1/orders/1/status",
			header:     "Bearer good",
			revocation: revocationStub{revoked: true},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(claims, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:       "revocation store unavailable",
			method:     http.MethodPut,
			path:       "/v1/orders/1/status",
			header:     "Bearer good",
			revocation: revocationStub{err: errors.New("connection refused")},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(claims, nil)
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:   "role not allowed",
			method: http.MethodGet,
			path:   "/v1/admin",
			header: "Bearer good",
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(claims, nil)
			},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)
			tt.setupMock(jwtService)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			rec := httptest.NewRecorder()
			newRouter(jwtService, tt.revocation).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
