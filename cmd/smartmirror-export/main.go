package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/m7mdaymn/SmartmirrorUi/common/database"
	logpkg "github.com/m7mdaymn/SmartmirrorUi/common/logger"
	"github.com/m7mdaymn/SmartmirrorUi/internal/config"
	"github.com/m7mdaymn/SmartmirrorUi/internal/report"
	"github.com/m7mdaymn/SmartmirrorUi/internal/repository"
	"github.com/m7mdaymn/SmartmirrorUi/internal/sensorapi"
)

func main() {
	out := flag.String("out", "heart_readings.xlsx", "output workbook path")
	limit := flag.Int("limit", 500, "number of most recent readings to export")
	source := flag.String("source", "db", "where to read readings from: db (local history) or api (backend history)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logpkg.NewLogger(cfg.Log.Level, cfg.Log.Format, "smartmirror-export")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var records []repository.HeartReadingRecord
	switch *source {
	case "db":
		records, err = loadFromDB(ctx, cfg, log, *limit)
	case "api":
		records, err = loadFromAPI(ctx, cfg, log, *limit)
	default:
		err = fmt.Errorf("unknown source %q", *source)
	}
	if err != nil {
		log.Fatal("Failed to load heart readings", zap.String("source", *source), zap.Error(err))
	}

	data, err := report.GenerateHeartReadingsExport(records)
	if err != nil {
		log.Fatal("Failed to generate export", zap.Error(err))
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal("Failed to write export", zap.String("path", *out), zap.Error(err))
	}

	log.Info("Exported heart readings",
		zap.String("path", *out),
		zap.Int("count", len(records)),
	)
}

func loadFromDB(ctx context.Context, cfg *config.Config, log *zap.Logger, limit int) ([]repository.HeartReadingRecord, error) {
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	defer database.Close(db)

	return repository.NewHeartReadingsRepository(db, log).ListRecent(ctx, limit)
}

// loadFromAPI backend history carries no run id
func loadFromAPI(ctx context.Context, cfg *config.Config, log *zap.Logger, limit int) ([]repository.HeartReadingRecord, error) {
	client := sensorapi.NewClient(sensorapi.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		RetryCount: cfg.API.RetryCount,
	}, log)

	readings, err := client.GetHeartHistory(ctx, limit)
	if err != nil {
		return nil, err
	}
	records := make([]repository.HeartReadingRecord, 0, len(readings))
	for _, r := range readings {
		records = append(records, repository.HeartReadingRecord{HeartReading: r})
	}
	return records, nil
}
