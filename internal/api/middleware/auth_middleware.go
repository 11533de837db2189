package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserContextKey = contextKey("user")

// SessionValidator confirms that the token's session is still open for its cashier.
type SessionValidator interface {
	IsSessionValid(ctx context.Context, sessionID, cashierID string) (bool, error)
}

type AuthMiddleware struct {
	jwtKey   []byte
	sessions SessionValidator
}

// NewAuthMiddleware checks signatures only when sessions is nil.
func NewAuthMiddleware(jwtKey []byte, sessions SessionValidator) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey, sessions: sessions}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
			return m.jwtKey, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

		if err != nil || !token.Valid {
			logger.Warn("JWT parsing failed", slog.Any("error", err))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		if claims.SessionID() == "" {
			logger.Warn("Token carries no session", slog.String("userId", claims.UserID.String()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		if m.sessions != nil {
			valid, err := m.sessions.IsSessionValid(r.Context(), claims.SessionID(), claims.UserID.String())
			if err != nil {
				logger.Error("Session lookup failed", slog.Any("error", err))
				response.Error(w, errors.ThirdPartyError("Failed to verify session").WithError(err))
				return
			}

			if !valid {
				logger.Warn("Session closed", slog.String("sessionId", claims.SessionID()))
				response.Error(w, errors.SessionInvalidError("Session is no longer valid"))
				return
			}
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestScopedLogger := logger.With(
			slog.String("userId", claims.UserID.String()),
			slog.String("sessionId", claims.SessionID()),
		)
		ctx = WithLogger(ctx, requestScopedLogger)

		requestScopedLogger.Debug("User authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)

	return claims, ok && claims != nil
}
