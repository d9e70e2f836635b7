package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {

	return &AuthMiddleware{jwtKey: jwtKey}

}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := logging.FromContext(r.Context())

		if r.Header.Get("Authorization") == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, appErrors.UnauthorizedError("Authorization header is required"))
			return
		}

		claims, appErr := m.parseToken(r)
		if appErr != nil {
			response.Error(w, appErr)
			return
		}

		next.ServeHTTP(w, m.withClaims(r, claims))
	}
}

// OptionalAuthenticate lets anonymous requests through untouched. A request
// that does present a token must present a valid one.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, appErr := m.parseToken(r)
		if appErr != nil {
			response.Error(w, appErr)
			return
		}

		next.ServeHTTP(w, m.withClaims(r, claims))
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		if !claims.IsAdmin() {
			logging.FromContext(r.Context()).Warn("Non-admin attempted admin access", slog.String("event", "security"))
			response.Error(w, appErrors.ForbiddenError("Admin access required"))
			return
		}

		next.ServeHTTP(w, r)
	}
}

func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)
	return claims, ok && claims != nil
}

func (m *AuthMiddleware) parseToken(r *http.Request) (*models.Claims, *appErrors.AppError) {

	logger := logging.FromContext(r.Context())
	authHeader := r.Header.Get("Authorization")

	// Token is of format : "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")

	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		logger.Warn("Invalid authorization header format")
		return nil, appErrors.UnauthorizedError("Invalid authorization format")
	}

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))
			return nil, appErrors.BadRequestError("unexpected signing method")
		}
		return m.jwtKey, nil
	})

	if err != nil {
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}

		logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
		return nil, appErrors.UnauthorizedError("Invalid or expired token")
	}

	if !token.Valid {
		logger.Warn("Invalid token")
		return nil, appErrors.UnauthorizedError("Invalid token")
	}

	return claims, nil
}

func (m *AuthMiddleware) withClaims(r *http.Request, claims *models.Claims) *http.Request {

	ctx := context.WithValue(r.Context(), UserContextKey, claims)

	requestScopedLogger := logging.FromContext(r.Context()).With(slog.String("userId", claims.UserID.String()))
	ctx = logging.WithLogger(ctx, requestScopedLogger)

	requestScopedLogger.Debug("User authenticated")

	return r.WithContext(ctx)
}
