package service_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	repository "github.com/aaravmahajanofficial/pos-terminal/internal/repositories"
	"github.com/aaravmahajanofficial/pos-terminal/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/pos-terminal/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userFixture struct {
	svc       service.UserService
	users     *mocks.UserRepository
	sessions  *mocks.SessionRepository
	rateLimit *mocks.RateLimitRepository
	loggedOut []string
}

var jwtKey = []byte("test-key")

func newUserFixture() *userFixture {
	f := &userFixture{
		users:     new(mocks.UserRepository),
		sessions:  new(mocks.SessionRepository),
		rateLimit: new(mocks.RateLimitRepository),
	}

	f.svc = service.NewUserService(f.users, f.sessions, f.rateLimit, jwtKey, 8*time.Hour, func(sessionID string) {
		f.loggedOut = append(f.loggedOut, sessionID)
	})

	return f
}

func cashierUser(t *testing.T, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &models.User{ID: uuid.New(), Name: "Till One", Email: "till@example.com", Password: string(hash)}
}

func TestUserService_Login(t *testing.T) {
	req := &models.LoginRequest{Email: "till@example.com", Password: "P@ssword123!"}

	t.Run("Success - Issues Token Bound To Session", func(t *testing.T) {
		// Arrange
		f := newUserFixture()
		user := cashierUser(t, req.Password)

		var sessionID string

		f.rateLimit.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(repository.LoginAttempt{Allowed: true, Remaining: 4}, nil).Once()
		f.users.On("GetUserByEmail", mock.Anything, req.Email).Return(user, nil).Once()
		f.sessions.On("CreateSession", mock.Anything, mock.AnythingOfType("string"), user.ID.String(), 8*time.Hour).
			Run(func(args mock.Arguments) { sessionID = args.String(1) }).
			Return(nil).Once()

		// Act
		resp, err := f.svc.Login(t.Context(), req)

		// Assert
		require.NoError(t, err)
		require.True(t, resp.Success)
		assert.Equal(t, int((8 * time.Hour).Seconds()), resp.ExpiresIn)

		claims := &models.Claims{}
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) { return jwtKey, nil })
		require.NoError(t, err)
		assert.Equal(t, sessionID, claims.SessionID())
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.ID.String(), claims.Subject)

		f.sessions.AssertExpectations(t)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		f := newUserFixture()
		f.rateLimit.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(repository.LoginAttempt{RetryAfter: 12}, nil).Once()

		// Act
		resp, err := f.svc.Login(t.Context(), req)

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 12, resp.RetryAfter)
		f.users.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		// Arrange
		f := newUserFixture()
		f.rateLimit.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(repository.LoginAttempt{Allowed: true, Remaining: 2}, nil).Once()
		f.users.On("GetUserByEmail", mock.Anything, req.Email).Return(cashierUser(t, "something-else"), nil).Once()

		// Act
		resp, err := f.svc.Login(t.Context(), req)

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Token)
		assert.Equal(t, 2, resp.RemainingTries)
		f.sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Email", func(t *testing.T) {
		// Arrange
		f := newUserFixture()
		f.rateLimit.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(repository.LoginAttempt{Allowed: true, Remaining: 3}, nil).Once()
		f.users.On("GetUserByEmail", mock.Anything, req.Email).Return(nil, sql.ErrNoRows).Once()

		// Act
		resp, err := f.svc.Login(t.Context(), req)

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid email or password", resp.Message)
	})

	t.Run("Failure - User Store Unavailable", func(t *testing.T) {
		// Arrange
		f := newUserFixture()
		f.rateLimit.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(repository.LoginAttempt{Allowed: true, Remaining: 3}, nil).Once()
		f.users.On("GetUserByEmail", mock.Anything, req.Email).Return(nil, errors.New("connection refused")).Once()

		// Act
		resp, err := f.svc.Login(t.Context(), req)

		// Assert
		assert.Nil(t, resp)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDatabaseError))
		f.sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Rate Limiter Unavailable", func(t *testing.T) {
		// Arrange
		f := newUserFixture()
		f.rateLimit.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(repository.LoginAttempt{}, errors.New("redis down")).Once()

		// Act
		resp, err := f.svc.Login(t.Context(), req)

		// Assert
		assert.Nil(t, resp)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
	})

	t.Run("Failure - Session Store Unavailable", func(t *testing.T) {
		// Arrange
		f := newUserFixture()
		f.rateLimit.On("CheckLoginRateLimit", mock.Anything, req.Email).Return(repository.LoginAttempt{Allowed: true}, nil).Once()
		f.users.On("GetUserByEmail", mock.Anything, req.Email).Return(cashierUser(t, req.Password), nil).Once()
		f.sessions.On("CreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

		// Act
		resp, err := f.svc.Login(t.Context(), req)

		// Assert
		assert.Nil(t, resp)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
	})
}

func TestUserService_Logout(t *testing.T) {
	claims := &models.Claims{UserID: uuid.New(), RegisteredClaims: jwt.RegisteredClaims{ID: "sess-9"}}

	t.Run("Success - Revokes And Notifies", func(t *testing.T) {
		// Arrange
		f := newUserFixture()
		f.sessions.On("RevokeSession", mock.Anything, "sess-9").Return(nil).Once()

		// Act
		err := f.svc.Logout(t.Context(), claims)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"sess-9"}, f.loggedOut)
	})

	t.Run("Failure - Revoke Error Keeps Terminal", func(t *testing.T) {
		// Arrange
		f := newUserFixture()
		f.sessions.On("RevokeSession", mock.Anything, "sess-9").Return(errors.New("redis down")).Once()

		// Act
		err := f.svc.Logout(t.Context(), claims)

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeThirdPartyError))
		assert.Empty(t, f.loggedOut)
	})
}
