package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/m7mdaymn/SmartmirrorUi/common/database"
	"github.com/m7mdaymn/SmartmirrorUi/common/mqtt"
	rediscommon "github.com/m7mdaymn/SmartmirrorUi/common/redis"
	"github.com/m7mdaymn/SmartmirrorUi/internal/config"
	"github.com/m7mdaymn/SmartmirrorUi/internal/recorder"
	"github.com/m7mdaymn/SmartmirrorUi/internal/repository"
	"github.com/m7mdaymn/SmartmirrorUi/internal/sensorapi"
	"github.com/m7mdaymn/SmartmirrorUi/internal/session"
	"github.com/m7mdaymn/SmartmirrorUi/internal/store"
)

// exitWait bounds how long shutdown waits for the background disable
const exitWait = 3 * time.Second

// HeartService runs heart-rate measurements against the mirror backend
type HeartService struct {
	config      *config.Config
	logger      *zap.Logger
	api         *sensorapi.Client
	redisClient *redis.Client
	db          *sql.DB
	mqttClient  *mqtt.Client
	recorder    session.Recorder
}

// NewHeartService connects every enabled result sink. A sink that cannot
// connect is skipped with a warning; the measurement itself only needs the API.
func NewHeartService(cfg *config.Config, logger *zap.Logger) (*HeartService, error) {
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	s := &HeartService{
		config: cfg,
		logger: logger,
		api: sensorapi.NewClient(sensorapi.Options{
			BaseURL:    cfg.API.BaseURL,
			Timeout:    cfg.API.Timeout,
			RetryCount: cfg.API.RetryCount,
		}, logger),
	}

	var sinks recorder.Multi

	if cfg.Recorder.Cache {
		client := rediscommon.NewRedisClient(&cfg.Redis)
		if err := rediscommon.Ping(context.Background(), client); err != nil {
			logger.Warn("Redis unavailable, cache recorder disabled", zap.Error(err))
			_ = client.Close()
		} else {
			s.redisClient = client
			var stream *redis.Client
			if cfg.Recorder.Stream {
				stream = client
			}
			sinks = append(sinks, recorder.NewCacheRecorder(store.NewRedisKV(client), stream, cfg.Recorder.CacheTTL, logger))
		}
	}

	if cfg.Recorder.History {
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			logger.Warn("Postgres unavailable, history recorder disabled", zap.Error(err))
		} else {
			s.db = db
			repo := repository.NewHeartReadingsRepository(db, logger)
			if err := repo.EnsureSchema(context.Background()); err != nil {
				logger.Warn("Failed to prepare heart_readings table", zap.Error(err))
			}
			sinks = append(sinks, recorder.NewHistoryRecorder(repo))
		}
	}

	if cfg.Recorder.MQTT {
		client, err := mqtt.NewClient(&cfg.MQTT, logger)
		if err != nil {
			logger.Warn("MQTT unavailable, mqtt recorder disabled", zap.Error(err))
		} else {
			s.mqttClient = client
			sinks = append(sinks, recorder.NewMQTTRecorder(client, cfg.Recorder.Topic))
		}
	}

	if len(sinks) > 0 {
		s.recorder = sinks
	}

	logger.Info("Heart service ready",
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.Int("recorders", len(sinks)),
	)
	return s, nil
}

// Measure runs one attempt to a terminal state. On ctx cancellation the
// controller exits and ctx.Err() is returned with the last snapshot.
func (s *HeartService) Measure(ctx context.Context, onUpdate func(session.Snapshot)) (session.Snapshot, error) {
	opts := s.config.SessionOptions()
	opts.Recorder = s.recorder

	ctrl := session.NewController(s.api, opts, s.logger)
	return Watch(ctx, ctrl, opts.PollInterval, onUpdate)
}

// Watch starts ctrl and reports a snapshot every interval until the attempt
// ends or ctx is done. Either way the controller's scope is left before
// returning, which disables the sensor.
func Watch(ctx context.Context, ctrl *session.Controller, interval time.Duration, onUpdate func(session.Snapshot)) (session.Snapshot, error) {
	if onUpdate == nil {
		onUpdate = func(session.Snapshot) {}
	}
	defer leave(ctrl)

	if err := ctrl.Start(ctx); err != nil {
		return ctrl.Snapshot(), err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		onUpdate(ctrl.Snapshot())

		select {
		case <-ctrl.Done():
			snap := ctrl.Snapshot()
			onUpdate(snap)
			return snap, nil
		case <-ctx.Done():
			return ctrl.Snapshot(), ctx.Err()
		case <-ticker.C:
		}
	}
}

func leave(ctrl *session.Controller) {
	select {
	case <-ctrl.Exit():
	case <-time.After(exitWait):
	}
}

// Close releases the sink connections
func (s *HeartService) Close() {
	if s.mqttClient != nil {
		s.mqttClient.Disconnect()
	}
	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			s.logger.Warn("Error closing database", zap.Error(err))
		}
	}
	if s.redisClient != nil {
		if err := rediscommon.Close(s.redisClient); err != nil {
			s.logger.Warn("Error closing redis", zap.Error(err))
		}
	}
}
