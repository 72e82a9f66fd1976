package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/m7mdaymn/SmartmirrorUi/internal/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *HeartReadingsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewHeartReadingsRepository(db, zap.NewNop())
	return db, mock, repo
}

func TestInsert_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	ts := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)
	spo2 := 97
	reading := models.HeartReading{
		SessionID: 7, DeviceID: "esp32-mirror", HeartRate: 72, Systolic: 118, Diastolic: 76,
		SpO2: &spo2, Success: true, Timestamp: ts,
	}

	mock.ExpectExec(`INSERT INTO heart_readings`).
		WithArgs("run-1", int64(7), "esp32-mirror", 72, 118, 76,
			sql.NullInt64{Int64: 97, Valid: true}, true, sql.NullString{}, ts).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Insert(context.Background(), "run-1", reading))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_DBError(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO heart_readings`).
		WillReturnError(errors.New("connection reset"))

	err := repo.Insert(context.Background(), "run-1", models.HeartReading{SessionID: 7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert heart reading")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecent_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	ts := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"run_id", "session_id", "device_id", "heart_rate", "systolic", "diastolic",
		"spo2", "success", "error_message", "measured_at",
	}).
		AddRow("run-2", int64(8), "esp32-mirror", 101, 135, 85, nil, true, nil, ts).
		AddRow("run-1", int64(7), "esp32-mirror", 72, 118, 76, int64(98), true, nil, ts.Add(-time.Hour))

	mock.ExpectQuery(`SELECT run_id, session_id`).
		WithArgs(10).
		WillReturnRows(rows)

	records, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "run-2", records[0].RunID)
	assert.Equal(t, 101, records[0].HeartRate)
	assert.Nil(t, records[0].SpO2)

	require.NotNil(t, records[1].SpO2)
	assert.Equal(t, 98, *records[1].SpO2)
	assert.Equal(t, int64(7), records[1].SessionID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecent_DefaultLimit(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT run_id, session_id`).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"run_id"}))

	records, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, records, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS heart_readings`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
