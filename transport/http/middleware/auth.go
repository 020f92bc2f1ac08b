package middleware

import (
	"context"
	"errors"
	"ihome/infras/jwt"
	"ihome/infras/otel"
	"ihome/permissions"
	"ihome/shared/constant"
	"ihome/shared/failure"
	"ihome/transport/http/response"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// TokenRevocation reports whether an access token was revoked by logout.
type TokenRevocation interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	revocation TokenRevocation
}

// NewAuthRoleMiddleware creates a new middleware instance
func NewAuthRoleMiddleware(
	jwtService jwt.JWT,
	otel otel.Otel,
	permissions *permissions.PermissionData,
	revocation TokenRevocation,
) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		revocation: revocation,
	}
}

func (m *authRoleImpl) routePermission(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || m.permission == nil {
		return request.URL.Path, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	return path, m.permission.FindPermissions(path, request.Method)
}

// Auth validates JWT tokens. Routes marked skip are public, but a valid token on them
// still identifies the caller.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		path, permission := m.routePermission(request)

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)

		if permission.Skip {
			scope.End()

			if authHeader != constant.Empty {
				if claims, err := m.authenticate(ctx, authHeader); err == nil {
					request = request.WithContext(withClaims(request.Context(), claims))
				}
			}

			next.ServeHTTP(writer, request)

			return
		}

		if authHeader == constant.Empty {
			err := failure.Unauthorized("Missing authorization header")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		claims, err := m.authenticate(ctx, authHeader)
		if err != nil {
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		scope.End()

		next.ServeHTTP(writer, request.WithContext(withClaims(request.Context(), claims)))
	})
}

func (m *authRoleImpl) authenticate(ctx context.Context, authHeader string) (*jwt.Claims, error) {
	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return nil, failure.Unauthorized("Invalid authorization header format") //nolint:wrapcheck
	}

	claims, err := m.jwtService.ValidateToken(ctx, tokenString, jwt.AccessToken)
	if err != nil {
		var message string

		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			message = "Token has expired"
		case errors.Is(err, jwt.ErrInvalidToken):
			message = "Invalid token"
		case errors.Is(err, jwt.ErrInvalidClaim):
			message = "Invalid token claims"
		default:
			message = "Token validation failed"
		}

		return nil, failure.Unauthorized(message) //nolint:wrapcheck
	}

	if claims.UserID == constant.Empty || claims.Mobile == constant.Empty {
		log.Error().Msg("JWT claims: UserID or Mobile is empty")

		return nil, failure.Unauthorized("Invalid token claims") //nolint:wrapcheck
	}

	revoked, err := m.revocation.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check token revocation")

		return nil, failure.StoreUnavailable(err)
	}

	if revoked {
		return nil, failure.Unauthorized("Token has been revoked") //nolint:wrapcheck
	}

	return claims, nil
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserMobile, claims.Mobile)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

	return ctx
}

// RBAC checks if user has required role
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		_, permission := m.routePermission(request)

		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		// permissions lists the roles allowed on the endpoint
		if len(permission.Permissions) > 0 && !slices.Contains(permission.Permissions, userRole) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}
