package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockGorm(t *testing.T) (sqlmock.Sqlmock, *gorm.DB) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return mock, db
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	log := slog.New(NewMultiHandler(
		NewJSONHandler(&infoBuf, "info"),
		NewJSONHandler(&errBuf, "error"),
	))

	log.Info("hello", "user_id", "u1")
	log.Error("boom", "error", "disk full")

	assert.Equal(t, 2, bytes.Count(infoBuf.Bytes(), []byte("\n")))
	assert.Equal(t, 1, bytes.Count(errBuf.Bytes(), []byte("\n")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(errBuf.Bytes(), &rec))
	assert.Equal(t, "boom", rec["msg"])
	assert.Equal(t, "disk full", rec["error"])
}

func TestDBHandler_MapsKnownAttrs(t *testing.T) {
	_, db := setupMockGorm(t)
	h := NewDBHandler(db, time.Hour)
	defer h.Stop()

	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))

	log := slog.New(h).With("user_id", "u1")
	log.Error("persist failed",
		"action", "persist",
		"key", "contacts_u1",
		"error", errors.New("connection reset"),
		"attempt", 2,
	)

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	require.Len(t, h.sink.buffer, 1)
	entry := h.sink.buffer[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "persist failed", entry.Message)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u1", *entry.UserID)
	assert.Equal(t, "persist", entry.Action)
	assert.Equal(t, "contacts_u1", entry.Key)
	assert.Equal(t, "connection reset", entry.Error)
	assert.JSONEq(t, `{"attempt":2}`, string(entry.Extra))
}

func TestDBHandler_FlushWritesBatch(t *testing.T) {
	mock, db := setupMockGorm(t)
	h := NewDBHandler(db, time.Hour)
	defer h.Stop()

	mock.ExpectExec(`INSERT INTO "system_logs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)))
	h.Flush()

	require.NoError(t, mock.ExpectationsWereMet())
	h.sink.mu.Lock()
	assert.Empty(t, h.sink.buffer)
	h.sink.mu.Unlock()
}

func TestCleanup_DeletesOlderThanRetention(t *testing.T) {
	mock, db := setupMockGorm(t)

	now := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM "system_logs" WHERE timestamp < \$1`).
		WithArgs(now.AddDate(0, 0, -30)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := Cleanup(db, 30, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
