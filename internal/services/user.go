package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/pos-terminal/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	repository "github.com/aaravmahajanofficial/pos-terminal/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, claims *models.Claims) error
}

type userService struct {
	repo      repository.UserRepository
	sessions  repository.SessionRepository
	rateLimit repository.RateLimitRepository
	jwtKey    []byte
	tokenTTL  time.Duration
	onLogout  func(sessionID string)
}

// NewUserService issues tokens whose jti is a server-side session. onLogout, when set, is told about
// every revoked session.
func NewUserService(repo repository.UserRepository, sessions repository.SessionRepository, rateLimit repository.RateLimitRepository, jwtKey []byte, tokenTTL time.Duration, onLogout func(sessionID string)) UserService {
	return &userService{
		repo:      repo,
		sessions:  sessions,
		rateLimit: rateLimit,
		jwtKey:    jwtKey,
		tokenTTL:  tokenTTL,
		onLogout:  onLogout,
	}
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	attempt, err := s.rateLimit.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !attempt.Allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: attempt.RetryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to load cashier").WithError(err)
	}

	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		logger.Info("Login rejected", slog.String("email", req.Email))

		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: attempt.Remaining,
		}, nil
	}

	now := time.Now()
	sessionID := uuid.NewString()

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	if err := s.sessions.CreateSession(ctx, sessionID, user.ID.String(), s.tokenTTL); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to open session").WithError(err)
	}

	logger.Info("Cashier signed in", slog.String("userId", user.ID.String()), slog.String("sessionId", sessionID))

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *userService) Logout(ctx context.Context, claims *models.Claims) error {

	sessionID := claims.SessionID()

	if err := s.sessions.RevokeSession(ctx, sessionID); err != nil {
		return appErrors.ThirdPartyError("Failed to close session").WithError(err)
	}

	if s.onLogout != nil {
		s.onLogout(sessionID)
	}

	middleware.LoggerFromContext(ctx).Info("Cashier signed out", slog.String("sessionId", sessionID))

	return nil
}
