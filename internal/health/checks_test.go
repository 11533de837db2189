package health

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecks(t *testing.T) {
	t.Run("Success - Both Reachable", func(t *testing.T) {
		// Arrange
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		client, redisMock := redismock.NewClientMock()

		dbMock.ExpectPing()
		redisMock.ExpectPing().SetVal("PONG")

		// Act
		dbErr := databaseCheck(db)(t.Context())
		redisErr := redisCheck(client)(t.Context())

		// Assert
		assert.NoError(t, dbErr)
		assert.NoError(t, redisErr)
		assert.NoError(t, dbMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("Failure - Unreachable", func(t *testing.T) {
		// Arrange
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		client, redisMock := redismock.NewClientMock()

		dbMock.ExpectPing().WillReturnError(errors.New("connection refused"))
		redisMock.ExpectPing().SetErr(errors.New("connection refused"))

		// Act
		dbErr := databaseCheck(db)(t.Context())
		redisErr := redisCheck(client)(t.Context())

		// Assert
		assert.ErrorContains(t, dbErr, "database ping failed")
		assert.ErrorContains(t, redisErr, "redis ping failed")
	})

	t.Run("Failure - Not Initialized", func(t *testing.T) {
		assert.Error(t, databaseCheck(nil)(t.Context()))
		assert.Error(t, redisCheck(nil)(t.Context()))
	})
}

func TestNewHealthHandler(t *testing.T) {
	// Arrange
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	client, redisMock := redismock.NewClientMock()

	dbMock.ExpectPing()
	redisMock.ExpectPing().SetVal("PONG")

	h, err := NewHealthHandler("pos-terminal", "test", &Endpoints{DB: db, RedisClient: client})
	require.NoError(t, err)

	rr := httptest.NewRecorder()

	// Act
	h.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"OK"`)
}
