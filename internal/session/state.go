package session

import (
	"time"

	"github.com/m7mdaymn/SmartmirrorUi/internal/classify"
	"github.com/m7mdaymn/SmartmirrorUi/internal/models"
)

// State local lifecycle state of one measurement attempt
type State string

const (
	StateInitializing   State = "initializing"
	StateWaitingFinger  State = "waiting_finger"
	StateFingerDetected State = "finger_detected"
	StateMeasuring      State = "measuring"
	StateCompleted      State = "completed"
	StateError          State = "error"
)

// IsTerminal completed and error end the attempt until an explicit retry
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateError
}

// rank orders the non-terminal states; the controller only moves forward
func (s State) rank() int {
	switch s {
	case StateInitializing:
		return 0
	case StateWaitingFinger:
		return 1
	case StateFingerDetected:
		return 2
	case StateMeasuring:
		return 3
	default:
		return 4
	}
}

// Snapshot consistent read-only view of a controller
type Snapshot struct {
	RunID         string
	State         State
	Result        *models.HeartReading
	ErrorMessage  string
	SessionID     *int64
	Progress      int
	TimeRemaining time.Duration
	Retrying      bool
	Polling       bool
}

// TimeRemaining max(0, total*(1-progress/100)) with progress clamped to [0,100]
func TimeRemaining(progress int, total time.Duration) time.Duration {
	p := classify.ClampProgress(progress)
	return total * time.Duration(100-p) / 100
}
