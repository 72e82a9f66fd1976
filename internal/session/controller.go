package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/m7mdaymn/SmartmirrorUi/internal/classify"
	"github.com/m7mdaymn/SmartmirrorUi/internal/models"
)

// User-facing messages for the error state.
const (
	EnableFailedMessage       = "Failed to initialize sensor. Please check ESP32 connection and ensure it is powered on."
	MeasurementFailedMessage  = "Measurement failed. Please ensure your finger is properly placed on the sensor."
	MeasurementTimeoutMessage = "Measurement timed out. Please place your finger on the sensor and try again."
)

var (
	ErrExited         = errors.New("session controller exited")
	ErrAlreadyStarted = errors.New("session controller already started")
	ErrSuperseded     = errors.New("measurement attempt superseded by retry")
)

// HeartAPI remote calls the controller depends on
type HeartAPI interface {
	ResetHeartStatus(ctx context.Context) error
	SetSensorEnabled(ctx context.Context, sensor string, enabled bool) (*models.ControlResponse, error)
	GetHeartStatus(ctx context.Context) (*models.HeartStatus, error)
	GetHeartBySession(ctx context.Context, sessionID int64) (*models.HeartReading, error)
	GetHeartLatest(ctx context.Context) (*models.HeartReading, error)
}

// Recorder receives every accepted reading. Failures are logged only.
type Recorder interface {
	Record(ctx context.Context, runID string, reading models.HeartReading) error
}

// Options timing of one measurement attempt
type Options struct {
	PollInterval          time.Duration // default 1s
	MeasurementDuration   time.Duration // default 15s, used for time remaining
	CompletedDisableDelay time.Duration // default 3s
	RetryDelay            time.Duration // default 1s
	// MeasurementTimeout bounds the polling phase; 0 disables it.
	MeasurementTimeout time.Duration
	// CallTimeout bounds background best-effort calls (disable, record).
	CallTimeout time.Duration
	Recorder    Recorder
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = time.Second
	}
	if o.MeasurementDuration <= 0 {
		o.MeasurementDuration = 15 * time.Second
	}
	if o.CompletedDisableDelay <= 0 {
		o.CompletedDisableDelay = 3 * time.Second
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = time.Second
	}
	if o.CallTimeout <= 0 {
		o.CallTimeout = 5 * time.Second
	}
	return o
}

// poller the controller's status polling task
type poller struct {
	cancel context.CancelFunc
}

// Controller drives one heart-rate measurement attempt
type Controller struct {
	api    HeartAPI
	opts   Options
	logger *zap.Logger

	lifeCtx    context.Context
	lifeCancel context.CancelFunc

	mu            sync.Mutex
	gen           uint64 // bumped whenever the current attempt is abandoned
	runID         string
	state         State
	result        *models.HeartReading
	errMsg        string
	sessionID     *int64
	progress      int
	timeRemaining time.Duration
	started       bool
	retrying      bool
	exited        bool
	poll          *poller
	disableTimer  *time.Timer
	done          chan struct{}
}

// NewController creates a controller in the initializing state
func NewController(api HeartAPI, opts Options, logger *zap.Logger) *Controller {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		api:           api,
		opts:          opts,
		logger:        logger,
		lifeCtx:       ctx,
		lifeCancel:    cancel,
		state:         StateInitializing,
		timeRemaining: opts.MeasurementDuration,
		done:          make(chan struct{}),
	}
}

// Start runs the initializing phase: reset, then enable. It returns once the
// controller is waiting for a finger or has failed.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.exited {
		c.mu.Unlock()
		return ErrExited
	}
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.resetLocked()
	gen := c.gen
	c.mu.Unlock()

	return c.initialize(ctx, gen)
}

// Retry discards the current attempt and starts a new one. It returns false
// when a retry is already in flight or the controller has exited.
func (c *Controller) Retry(ctx context.Context) bool {
	c.mu.Lock()
	if c.retrying || c.exited {
		c.mu.Unlock()
		return false
	}
	c.retrying = true
	c.started = true
	c.gen++
	c.stopPollingLocked()
	c.stopDisableTimerLocked()
	c.result = nil
	c.errMsg = ""
	c.progress = 0
	c.timeRemaining = c.opts.MeasurementDuration
	c.sessionID = nil
	log := c.logger.With(zap.String("run_id", c.runID))
	c.mu.Unlock()

	log.Info("Retrying measurement")
	c.disableSensor(ctx, "retry")

	timer := time.NewTimer(c.opts.RetryDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		c.mu.Lock()
		c.retrying = false
		c.mu.Unlock()
		return true
	}

	c.mu.Lock()
	c.retrying = false
	if c.exited {
		c.mu.Unlock()
		return true
	}
	c.resetLocked()
	gen := c.gen
	c.mu.Unlock()

	if err := c.initialize(ctx, gen); err != nil {
		log.Warn("Retry could not enable sensor", zap.Error(err))
	}
	return true
}

// Exit leaves the controller's scope: polling stops at once and a disable
// request goes out in the background. The returned channel closes when that
// request has finished; callers are not required to wait for it.
func (c *Controller) Exit() <-chan struct{} {
	finished := make(chan struct{})

	c.mu.Lock()
	if c.exited {
		c.mu.Unlock()
		close(finished)
		return finished
	}
	c.exited = true
	c.stopPollingLocked()
	c.stopDisableTimerLocked()
	c.lifeCancel()
	runID := c.runID
	c.mu.Unlock()

	c.logger.Info("Leaving measurement", zap.String("run_id", runID))
	go func() {
		defer close(finished)
		c.disableSensor(context.Background(), "exit")
	}()
	return finished
}

// Done is closed when the current attempt reaches a terminal state
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Snapshot returns the controller's current view
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		RunID:         c.runID,
		State:         c.state,
		ErrorMessage:  c.errMsg,
		Progress:      c.progress,
		TimeRemaining: c.timeRemaining,
		Retrying:      c.retrying,
		Polling:       c.poll != nil,
	}
	if c.result != nil {
		r := *c.result
		s.Result = &r
	}
	if c.sessionID != nil {
		id := *c.sessionID
		s.SessionID = &id
	}
	return s
}

// initialize runs reset and enable for attempt gen. The outcome is dropped
// when a retry has replaced that attempt in the meantime.
func (c *Controller) initialize(ctx context.Context, gen uint64) error {
	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return ErrSuperseded
	}
	log := c.logger.With(zap.String("run_id", c.runID))
	c.mu.Unlock()

	log.Info("Initializing heart sensor")
	if err := c.api.ResetHeartStatus(ctx); err != nil {
		log.Warn("Failed to reset heart status, continuing", zap.Error(err))
	} else {
		log.Debug("Heart status reset")
	}

	_, enableErr := c.api.SetSensorEnabled(ctx, models.SensorHeart, true)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.exited {
		// exit's disable may have raced ahead of a late enable
		if enableErr == nil {
			go c.disableSensor(context.Background(), "exit")
		}
		return ErrExited
	}
	if c.gen != gen {
		// the current attempt owns the sensor unless it already ended
		if enableErr == nil && c.state.IsTerminal() {
			go c.disableSensor(context.Background(), "superseded")
		}
		log.Debug("Dropping enable result of a superseded attempt", zap.Error(enableErr))
		return ErrSuperseded
	}
	if enableErr != nil {
		log.Error("Failed to enable heart sensor", zap.Error(enableErr))
		c.failLocked(EnableFailedMessage, false)
		return fmt.Errorf("enable heart sensor: %w", enableErr)
	}

	log.Info("Heart sensor enabled, waiting for finger")
	c.state = StateWaitingFinger
	c.startPollingLocked()
	return nil
}

func (c *Controller) startPollingLocked() {
	if c.poll != nil {
		return
	}
	ctx, cancel := context.WithCancel(c.lifeCtx)
	p := &poller{cancel: cancel}
	c.poll = p
	go c.pollLoop(ctx, p)
}

func (c *Controller) stopPollingLocked() {
	if c.poll == nil {
		return
	}
	c.poll.cancel()
	c.poll = nil
	c.logger.Debug("Stopped status polling", zap.String("run_id", c.runID))
}

func (c *Controller) stopDisableTimerLocked() {
	if c.disableTimer != nil {
		c.disableTimer.Stop()
		c.disableTimer = nil
	}
}

// ownsLocked reports whether p is still the live poller of a non-terminal attempt
func (c *Controller) ownsLocked(p *poller) bool {
	return p != nil && c.poll == p && !c.exited && !c.state.IsTerminal()
}

func (c *Controller) pollLoop(ctx context.Context, p *poller) {
	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if c.opts.MeasurementTimeout > 0 {
		t := time.NewTimer(c.opts.MeasurementTimeout)
		defer t.Stop()
		deadline = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			c.timeout(p)
			return
		case <-ticker.C:
			status, err := c.api.GetHeartStatus(ctx)
			if err != nil {
				c.logger.Debug("Status poll failed, retrying next tick", zap.Error(err))
				continue
			}
			c.handleStatus(ctx, p, status)
		}
	}
}

func (c *Controller) timeout(p *poller) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ownsLocked(p) {
		return
	}
	c.logger.Warn("Measurement timed out",
		zap.String("run_id", c.runID),
		zap.String("state", string(c.state)),
		zap.Duration("timeout", c.opts.MeasurementTimeout),
	)
	c.failLocked(MeasurementTimeoutMessage, true)
}

// handleStatus applies one status snapshot delivered by poller p
func (c *Controller) handleStatus(ctx context.Context, p *poller, status *models.HeartStatus) {
	sessionID, resolve := c.applyStatus(p, status)
	if !resolve {
		return
	}

	reading := c.resolveResult(ctx, sessionID)
	if reading == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ownsLocked(p) {
		return
	}
	c.completeLocked(*reading)
}

// applyStatus returns the tracked session id and true when the result still
// has to be looked up remotely.
func (c *Controller) applyStatus(p *poller, status *models.HeartStatus) (*int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if status == nil || !c.ownsLocked(p) {
		return nil, false
	}

	if status.SessionID != nil && (c.sessionID == nil || *c.sessionID != *status.SessionID) {
		id := *status.SessionID
		c.sessionID = &id
		c.logger.Info("Tracking new session", zap.String("run_id", c.runID), zap.Int64("session_id", id))
	}

	switch status.State {
	case models.HeartStateIdle:
		if c.state != StateInitializing {
			c.logger.Debug("Sensor idle", zap.String("run_id", c.runID))
		}
	case models.HeartStateWaitingFinger:
		c.advanceLocked(StateWaitingFinger)
	case models.HeartStateFingerDetected:
		c.advanceLocked(StateFingerDetected)
	case models.HeartStateMeasuring:
		c.advanceLocked(StateMeasuring)
		if c.state == StateMeasuring {
			c.progress = classify.ClampProgress(status.Progress)
			c.timeRemaining = TimeRemaining(c.progress, c.opts.MeasurementDuration)
			c.logger.Debug("Measurement progress",
				zap.String("run_id", c.runID),
				zap.Int("progress", c.progress),
				zap.Duration("time_remaining", c.timeRemaining),
			)
		}
	case models.HeartStateCompleted:
		if status.LastReading.BelongsTo(c.sessionID) {
			c.completeLocked(*status.LastReading)
			return nil, false
		}
		var id *int64
		if c.sessionID != nil {
			v := *c.sessionID
			id = &v
		}
		return id, true
	case models.HeartStateError:
		msg := MeasurementFailedMessage
		if status.LastReading != nil && status.LastReading.Error != "" {
			msg = status.LastReading.Error
		}
		c.logger.Warn("Measurement failed on device", zap.String("run_id", c.runID), zap.String("message", msg))
		c.failLocked(msg, true)
	default:
		c.logger.Warn("Unknown heart status state", zap.String("state", string(status.State)))
	}
	return nil, false
}

func (c *Controller) advanceLocked(next State) {
	if next.rank() <= c.state.rank() {
		return
	}
	c.logger.Info("Measurement state changed",
		zap.String("run_id", c.runID),
		zap.String("from", string(c.state)),
		zap.String("to", string(next)),
	)
	c.state = next
}

// resolveResult looks the result up by session, then falls back to the latest reading
func (c *Controller) resolveResult(ctx context.Context, sessionID *int64) *models.HeartReading {
	if sessionID != nil {
		reading, err := c.api.GetHeartBySession(ctx, *sessionID)
		if err == nil && reading != nil {
			return reading
		}
		c.logger.Debug("Session lookup failed, falling back to latest reading",
			zap.Int64("session_id", *sessionID),
			zap.Error(err),
		)
	}

	reading, err := c.api.GetHeartLatest(ctx)
	if err == nil && reading != nil {
		return reading
	}
	c.logger.Warn("Completed measurement has no retrievable result yet", zap.Error(err))
	return nil
}

func (c *Controller) completeLocked(reading models.HeartReading) {
	c.result = &reading
	c.state = StateCompleted
	c.progress = 100
	c.timeRemaining = 0
	c.stopPollingLocked()
	c.closeDoneLocked()

	c.logger.Info("Measurement completed",
		zap.String("run_id", c.runID),
		zap.Int64("session_id", reading.SessionID),
		zap.Int("heart_rate", reading.HeartRate),
		zap.Int("systolic", reading.Systolic),
		zap.Int("diastolic", reading.Diastolic),
	)

	runID := c.runID
	c.stopDisableTimerLocked()
	c.disableTimer = time.AfterFunc(c.opts.CompletedDisableDelay, func() {
		c.mu.Lock()
		still := c.state == StateCompleted && c.runID == runID && !c.exited
		c.mu.Unlock()
		if still {
			c.disableSensor(context.Background(), "completed")
		}
	})

	if c.opts.Recorder != nil {
		go c.record(runID, reading)
	}
}

func (c *Controller) failLocked(msg string, disable bool) {
	c.state = StateError
	c.errMsg = msg
	c.stopPollingLocked()
	c.closeDoneLocked()
	if disable {
		go c.disableSensor(context.Background(), "error")
	}
}

func (c *Controller) closeDoneLocked() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

// resetLocked prepares a fresh attempt under a new run id
func (c *Controller) resetLocked() {
	c.gen++
	c.runID = uuid.NewString()
	c.state = StateInitializing
	c.errMsg = ""
	c.result = nil
	c.sessionID = nil
	c.progress = 0
	c.timeRemaining = c.opts.MeasurementDuration
	select {
	case <-c.done:
		c.done = make(chan struct{})
	default:
	}
}

// disableSensor best-effort; failures are logged and swallowed
func (c *Controller) disableSensor(ctx context.Context, reason string) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.CallTimeout)
	defer cancel()

	if _, err := c.api.SetSensorEnabled(ctx, models.SensorHeart, false); err != nil {
		c.logger.Warn("Failed to disable heart sensor", zap.String("reason", reason), zap.Error(err))
		return
	}
	c.logger.Info("Heart sensor disabled", zap.String("reason", reason))
}

func (c *Controller) record(runID string, reading models.HeartReading) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.CallTimeout)
	defer cancel()

	if err := c.opts.Recorder.Record(ctx, runID, reading); err != nil {
		c.logger.Warn("Failed to record heart reading",
			zap.String("run_id", runID),
			zap.Int64("session_id", reading.SessionID),
			zap.Error(err),
		)
	}
}
