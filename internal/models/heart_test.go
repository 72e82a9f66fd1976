package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeartReading_BelongsTo(t *testing.T) {
	seven := int64(7)
	eight := int64(8)
	r := &HeartReading{SessionID: 7}

	assert.True(t, r.BelongsTo(&seven))
	assert.False(t, r.BelongsTo(&eight))
	assert.False(t, r.BelongsTo(nil))

	var missing *HeartReading
	assert.False(t, missing.BelongsTo(&seven))
}

func TestHeartStatus_DecodesBackendPayload(t *testing.T) {
	payload := `{
		"state": "completed",
		"fingerDetected": true,
		"progress": 100,
		"sessionId": 7,
		"lastReading": {"heartRate": 72, "systolic": 118, "diastolic": 76, "spo2": null,
			"success": true, "sessionId": 7, "timestamp": "2026-10-15T08:30:00Z"}
	}`

	var st HeartStatus
	require.NoError(t, json.Unmarshal([]byte(payload), &st))
	assert.Equal(t, HeartStateCompleted, st.State)
	require.NotNil(t, st.SessionID)
	assert.Equal(t, int64(7), *st.SessionID)
	require.NotNil(t, st.LastReading)
	assert.Equal(t, 72, st.LastReading.HeartRate)
	assert.Nil(t, st.LastReading.SpO2)
}

func TestAPIResponse_HasData(t *testing.T) {
	var resp APIResponse
	require.NoError(t, json.Unmarshal([]byte(`{"success":true,"data":null}`), &resp))
	assert.False(t, resp.HasData())

	require.NoError(t, json.Unmarshal([]byte(`{"success":true,"data":{"id":1}}`), &resp))
	assert.True(t, resp.HasData())
}
