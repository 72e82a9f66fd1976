package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/m7mdaymn/SmartmirrorUi/internal/models"
	"github.com/m7mdaymn/SmartmirrorUi/internal/store"
)

const (
	BoardKey = "smartmirror:dashboard:board"
	// body and room temperature refresh period
	DefaultPeriod = 8 * time.Second
	// gas readings change faster and are refreshed more often
	DefaultAirPeriod = 3 * time.Second
)

// SensorAPI backend calls the monitor needs
type SensorAPI interface {
	GetHumanTempLatest(ctx context.Context) (*models.HumanTempReading, error)
	GetRoomTempLatest(ctx context.Context) (*models.RoomTempReading, error)
	GetGasLatest(ctx context.Context) (*models.GasReading, error)
	SetSensorEnabled(ctx context.Context, sensor string, enabled bool) (*models.ControlResponse, error)
}

// Options for Monitor. Zero values take defaults.
type Options struct {
	Period    time.Duration
	AirPeriod time.Duration
	CacheTTL  time.Duration
}

// Monitor periodically refreshes the sensor board and caches it
type Monitor struct {
	api    SensorAPI
	kv     store.KV
	opts   Options
	logger *zap.Logger

	mu     sync.RWMutex
	latest *Board
}

// NewMonitor kv may be nil when no cache is configured
func NewMonitor(api SensorAPI, kv store.KV, opts Options, logger *zap.Logger) *Monitor {
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}
	if opts.AirPeriod <= 0 {
		opts.AirPeriod = DefaultAirPeriod
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 3 * opts.Period
	}
	return &Monitor{
		api:    api,
		kv:     kv,
		opts:   opts,
		logger: logger,
	}
}

// ambient sensors the board depends on
var boardSensors = []string{models.SensorRoom, models.SensorGas}

// Start enables the room and gas sensors. Failures are logged only.
func (m *Monitor) Start(ctx context.Context) {
	m.setSensors(ctx, true)
}

// Stop disables the room and gas sensors. Failures are logged only.
func (m *Monitor) Stop(ctx context.Context) {
	m.setSensors(ctx, false)
}

func (m *Monitor) setSensors(ctx context.Context, enabled bool) {
	for _, sensor := range boardSensors {
		if _, err := m.api.SetSensorEnabled(ctx, sensor, enabled); err != nil {
			m.logger.Warn("Failed to toggle sensor",
				zap.String("sensor", sensor),
				zap.Bool("enabled", enabled),
				zap.Error(err),
			)
			continue
		}
		m.logger.Info("Sensor toggled",
			zap.String("sensor", sensor),
			zap.Bool("enabled", enabled),
		)
	}
}

// Run refreshes every panel immediately, then the temperature panels every
// Period and the air panel every AirPeriod until ctx is done
func (m *Monitor) Run(ctx context.Context) error {
	slow := time.NewTicker(m.opts.Period)
	defer slow.Stop()
	fast := time.NewTicker(m.opts.AirPeriod)
	defer fast.Stop()

	m.logger.Info("Starting dashboard monitor",
		zap.Duration("period", m.opts.Period),
		zap.Duration("air_period", m.opts.AirPeriod),
	)

	if _, err := m.Refresh(ctx); err != nil {
		m.logger.Error("Failed to refresh board", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-slow.C:
			if _, err := m.update(ctx, m.fillTemperatures); err != nil {
				m.logger.Error("Failed to refresh temperature panels", zap.Error(err))
			}
		case <-fast.C:
			if _, err := m.RefreshAir(ctx); err != nil {
				m.logger.Error("Failed to refresh air panel", zap.Error(err))
			}
		}
	}
}

// Refresh fetches every panel once. A failed panel is marked offline;
// the only error returned is a cache write failure, alongside the board.
func (m *Monitor) Refresh(ctx context.Context) (*Board, error) {
	return m.update(ctx, func(ctx context.Context, b *Board) {
		m.fillTemperatures(ctx, b)
		m.fillAir(ctx, b)
	})
}

// RefreshAir fetches only the gas reading; other panels keep their last values
func (m *Monitor) RefreshAir(ctx context.Context) (*Board, error) {
	return m.update(ctx, m.fillAir)
}

// update applies fill to a copy of the latest board, publishes and caches it
func (m *Monitor) update(ctx context.Context, fill func(context.Context, *Board)) (*Board, error) {
	board := &Board{}
	m.mu.RLock()
	if m.latest != nil {
		*board = *m.latest
	}
	m.mu.RUnlock()

	fill(ctx, board)
	board.UpdatedAt = time.Now().UTC()

	m.mu.Lock()
	m.latest = board
	m.mu.Unlock()

	if m.kv == nil {
		return board, nil
	}
	if err := store.SetJSON(ctx, m.kv, BoardKey, board, m.opts.CacheTTL); err != nil {
		return board, fmt.Errorf("failed to cache board: %w", err)
	}
	return board, nil
}

func (m *Monitor) fillTemperatures(ctx context.Context, board *Board) {
	if r, err := m.api.GetHumanTempLatest(ctx); err != nil {
		m.logger.Debug("Body temperature unavailable", zap.Error(err))
		board.BodyTemp = BodyTempPanel{Panel: offline(err)}
	} else {
		board.BodyTemp = bodyTempPanel(r)
	}

	if r, err := m.api.GetRoomTempLatest(ctx); err != nil {
		m.logger.Debug("Room temperature unavailable", zap.Error(err))
		board.Room = RoomPanel{Panel: offline(err)}
	} else {
		board.Room = roomPanel(r)
	}
}

func (m *Monitor) fillAir(ctx context.Context, board *Board) {
	r, err := m.api.GetGasLatest(ctx)
	if err != nil {
		m.logger.Debug("Gas reading unavailable", zap.Error(err))
		board.Air = AirPanel{Panel: offline(err)}
		return
	}
	board.Air = airPanel(r)
	if board.Air.AlertLevel == "emergency" {
		m.logger.Warn("Hazardous air quality",
			zap.Int("aqi", board.Air.AQI),
			zap.String("quality", board.Air.Quality),
		)
	}
}

// Latest board from the last refresh, nil before the first one
func (m *Monitor) Latest() *Board {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}
