package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/m7mdaymn/SmartmirrorUi/internal/models"
)

// HeartReadingRecord a stored accepted measurement
type HeartReadingRecord struct {
	RunID string
	models.HeartReading
}

// HeartReadingsRepository history of accepted heart measurements
type HeartReadingsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHeartReadingsRepository creates a repository over db
func NewHeartReadingsRepository(db *sql.DB, logger *zap.Logger) *HeartReadingsRepository {
	return &HeartReadingsRepository{
		db:     db,
		logger: logger,
	}
}

const heartReadingsSchema = `
	CREATE TABLE IF NOT EXISTS heart_readings (
		id            BIGSERIAL PRIMARY KEY,
		run_id        TEXT        NOT NULL,
		session_id    BIGINT      NOT NULL,
		device_id     TEXT        NOT NULL DEFAULT '',
		heart_rate    INTEGER     NOT NULL,
		systolic      INTEGER     NOT NULL,
		diastolic     INTEGER     NOT NULL,
		spo2          INTEGER,
		success       BOOLEAN     NOT NULL,
		error_message TEXT,
		measured_at   TIMESTAMPTZ NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (run_id, session_id)
	)
`

// EnsureSchema creates the heart_readings table when missing
func (r *HeartReadingsRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, heartReadingsSchema); err != nil {
		return fmt.Errorf("failed to create heart_readings: %w", err)
	}
	return nil
}

// Insert stores one reading; a replayed (run_id, session_id) pair is ignored
func (r *HeartReadingsRepository) Insert(ctx context.Context, runID string, reading models.HeartReading) error {
	query := `
		INSERT INTO heart_readings (
			run_id, session_id, device_id, heart_rate, systolic, diastolic,
			spo2, success, error_message, measured_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (run_id, session_id) DO NOTHING
	`

	var spo2 sql.NullInt64
	if reading.SpO2 != nil {
		spo2 = sql.NullInt64{Int64: int64(*reading.SpO2), Valid: true}
	}
	var errMsg sql.NullString
	if reading.Error != "" {
		errMsg = sql.NullString{String: reading.Error, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		runID,
		reading.SessionID,
		reading.DeviceID,
		reading.HeartRate,
		reading.Systolic,
		reading.Diastolic,
		spo2,
		reading.Success,
		errMsg,
		reading.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert heart reading: %w", err)
	}
	return nil
}

// ListRecent newest first
func (r *HeartReadingsRepository) ListRecent(ctx context.Context, limit int) ([]HeartReadingRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT run_id, session_id, device_id, heart_rate, systolic, diastolic,
		       spo2, success, error_message, measured_at
		FROM heart_readings
		ORDER BY measured_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query heart readings: %w", err)
	}
	defer rows.Close()

	var records []HeartReadingRecord
	for rows.Next() {
		var rec HeartReadingRecord
		var spo2 sql.NullInt64
		var errMsg sql.NullString

		if err := rows.Scan(
			&rec.RunID,
			&rec.SessionID,
			&rec.DeviceID,
			&rec.HeartRate,
			&rec.Systolic,
			&rec.Diastolic,
			&spo2,
			&rec.Success,
			&errMsg,
			&rec.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan heart reading: %w", err)
		}

		if spo2.Valid {
			v := int(spo2.Int64)
			rec.SpO2 = &v
		}
		if errMsg.Valid {
			rec.Error = errMsg.String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate heart readings: %w", err)
	}

	r.logger.Debug("Loaded heart reading history", zap.Int("count", len(records)))
	return records, nil
}
