package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m7mdaymn/SmartmirrorUi/internal/models"
	"github.com/m7mdaymn/SmartmirrorUi/internal/repository"
)

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestGenerateHeartReadingsExport_HeaderOnly(t *testing.T) {
	data, err := GenerateHeartReadingsExport(nil)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{HeartSheet}, f.GetSheetList())

	rows, err := f.GetRows(HeartSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, HeartReadingsHeader, rows[0])
}

func TestGenerateHeartReadingsExport_Rows(t *testing.T) {
	spo2 := 96
	ts := time.Date(2026, 10, 15, 7, 45, 0, 0, time.UTC)
	records := []repository.HeartReadingRecord{
		{
			RunID: "run-1",
			HeartReading: models.HeartReading{
				SessionID: 11, HeartRate: 72, Systolic: 118, Diastolic: 76,
				SpO2: &spo2, Success: true, Timestamp: ts,
			},
		},
		{
			RunID: "run-2",
			HeartReading: models.HeartReading{
				SessionID: 12, HeartRate: 130, Systolic: 145, Diastolic: 95,
				Success: false, Error: "Finger removed", Timestamp: ts,
			},
		},
	}

	data, err := GenerateHeartReadingsExport(records)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	rows, err := f.GetRows(HeartSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[1]
	assert.Equal(t, "2026-10-15 07:45:00", first[0])
	assert.Equal(t, "run-1", first[1])
	assert.Equal(t, "11", first[2])
	assert.Equal(t, "72", first[3])
	assert.Equal(t, "Normal Range", first[4])
	assert.Equal(t, "96", first[8])
	assert.Equal(t, "OK", first[9])

	second := rows[2]
	assert.Equal(t, "Tachycardia", second[4])
	assert.Equal(t, "Stage 2 Hypertension", second[7])
	assert.Equal(t, "", second[8])
	assert.Equal(t, "Finger removed", second[9])
}
