package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/m7mdaymn/SmartmirrorUi/internal/classify"
	"github.com/m7mdaymn/SmartmirrorUi/internal/repository"
)

const HeartSheet = "Heart Readings"

var HeartReadingsHeader = []string{
	"Measured At",
	"Run ID",
	"Session ID",
	"Heart Rate (BPM)",
	"Heart Rate Category",
	"Systolic",
	"Diastolic",
	"Blood Pressure Category",
	"SpO2 (%)",
	"Result",
}

var heartColumnWidths = []float64{20, 38, 12, 16, 20, 10, 10, 24, 10, 28}

// GenerateHeartReadingsExport renders the history as a single-sheet workbook.
// An empty slice yields a header-only sheet.
func GenerateHeartReadingsExport(records []repository.HeartReadingRecord) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(HeartSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FDE2E4"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range HeartReadingsHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(HeartSheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(HeartSheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(HeartSheet, name, name, heartColumnWidths[col]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, rec := range records {
		row := i + 2
		values := heartRow(rec)
		if err := f.SetSheetRow(HeartSheet, "A"+strconv.Itoa(row), &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	if err := f.SetPanes(HeartSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func heartRow(rec repository.HeartReadingRecord) []interface{} {
	var spo2 interface{} = ""
	if rec.SpO2 != nil {
		spo2 = *rec.SpO2
	}
	result := "OK"
	if !rec.Success {
		result = "Failed"
		if rec.Error != "" {
			result = rec.Error
		}
	}
	return []interface{}{
		rec.Timestamp.Format("2006-01-02 15:04:05"),
		rec.RunID,
		rec.SessionID,
		rec.HeartRate,
		classify.HeartRateCategory(rec.HeartRate),
		rec.Systolic,
		rec.Diastolic,
		classify.BloodPressureCategory(rec.Systolic, rec.Diastolic),
		spo2,
		result,
	}
}
