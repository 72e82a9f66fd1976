package service

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	rediscommon "github.com/m7mdaymn/SmartmirrorUi/common/redis"
	"github.com/m7mdaymn/SmartmirrorUi/internal/config"
	"github.com/m7mdaymn/SmartmirrorUi/internal/dashboard"
	"github.com/m7mdaymn/SmartmirrorUi/internal/sensorapi"
	"github.com/m7mdaymn/SmartmirrorUi/internal/store"
)

// DashboardService keeps the ambient sensor board fresh
type DashboardService struct {
	logger      *zap.Logger
	redisClient *redis.Client
	monitor     *dashboard.Monitor
}

// NewDashboardService the board is cached in Redis when reachable
func NewDashboardService(cfg *config.Config, logger *zap.Logger) (*DashboardService, error) {
	api := sensorapi.NewClient(sensorapi.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		RetryCount: cfg.API.RetryCount,
	}, logger)

	s := &DashboardService{logger: logger}

	var kv store.KV
	client := rediscommon.NewRedisClient(&cfg.Redis)
	if err := rediscommon.Ping(context.Background(), client); err != nil {
		logger.Warn("Redis unavailable, board will not be cached", zap.Error(err))
		_ = client.Close()
	} else {
		s.redisClient = client
		kv = store.NewRedisKV(client)
	}

	s.monitor = dashboard.NewMonitor(api, kv, dashboard.Options{
		Period:    cfg.Dashboard.Period,
		AirPeriod: cfg.Dashboard.AirPeriod,
	}, logger)
	return s, nil
}

// Start enables the board sensors and blocks refreshing until ctx is done
func (s *DashboardService) Start(ctx context.Context) error {
	s.logger.Info("Starting dashboard service")
	s.monitor.Start(ctx)
	return s.monitor.Run(ctx)
}

// Stop disables the board sensors and closes Redis
func (s *DashboardService) Stop(ctx context.Context) error {
	s.monitor.Stop(ctx)
	if s.redisClient != nil {
		return rediscommon.Close(s.redisClient)
	}
	return nil
}
