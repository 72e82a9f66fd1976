package models

import "time"

// HeartState remote measurement state reported by GET /heart/status
type HeartState string

const (
	HeartStateIdle           HeartState = "idle"
	HeartStateWaitingFinger  HeartState = "waiting_finger"
	HeartStateFingerDetected HeartState = "finger_detected"
	HeartStateMeasuring      HeartState = "measuring"
	HeartStateCompleted      HeartState = "completed"
	HeartStateError          HeartState = "error"
)

// HeartStatus point-in-time snapshot of the device's measurement state.
// Read-only projection of remote state; the controller never writes it back.
type HeartStatus struct {
	State          HeartState    `json:"state"`
	FingerDetected bool          `json:"fingerDetected"`
	Progress       int           `json:"progress"`
	SessionID      *int64        `json:"sessionId"`
	LastReading    *HeartReading `json:"lastReading,omitempty"`
}

// HeartReading heart-rate / blood-pressure result of one session
type HeartReading struct {
	ID             int64     `json:"id,omitempty"`
	HeartRate      int       `json:"heartRate"`
	Systolic       int       `json:"systolic"`
	Diastolic      int       `json:"diastolic"`
	SpO2           *int      `json:"spo2,omitempty"`
	FingerDetected bool      `json:"fingerDetected,omitempty"`
	Success        bool      `json:"success"`
	Error          string    `json:"error,omitempty"`
	SessionID      int64     `json:"sessionId"`
	DeviceID       string    `json:"deviceId,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// BelongsTo reports whether the reading was produced by the given session
func (r *HeartReading) BelongsTo(sessionID *int64) bool {
	return r != nil && sessionID != nil && r.SessionID == *sessionID
}
