package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	commonredis "github.com/m7mdaymn/SmartmirrorUi/common/redis"
	"github.com/m7mdaymn/SmartmirrorUi/internal/models"
	"github.com/m7mdaymn/SmartmirrorUi/internal/store"
)

const (
	LatestKey    = "smartmirror:heart:latest"
	ResultStream = "smartmirror:heart:results"
	DefaultTopic = "smartmirror/heart/result"
)

// Result is the payload written to every sink
type Result struct {
	RunID   string              `json:"run_id"`
	Reading models.HeartReading `json:"reading"`
}

// CacheRecorder keeps the latest reading in the KV store and appends it to a stream
type CacheRecorder struct {
	kv     store.KV
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCacheRecorder stream appends are skipped when client is nil
func NewCacheRecorder(kv store.KV, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CacheRecorder {
	return &CacheRecorder{kv: kv, redis: client, ttl: ttl, logger: logger}
}

func (r *CacheRecorder) Record(ctx context.Context, runID string, reading models.HeartReading) error {
	res := Result{RunID: runID, Reading: reading}
	if err := store.SetJSON(ctx, r.kv, LatestKey, res, r.ttl); err != nil {
		return fmt.Errorf("failed to cache latest reading: %w", err)
	}
	if r.redis == nil {
		return nil
	}
	id, err := commonredis.PublishJSONToStream(ctx, r.redis, ResultStream, res)
	if err != nil {
		return fmt.Errorf("failed to append reading to stream: %w", err)
	}
	r.logger.Debug("Reading appended to stream",
		zap.String("run_id", runID),
		zap.String("stream_id", id),
	)
	return nil
}

// Inserter is the slice of HeartReadingsRepository the history sink needs
type Inserter interface {
	Insert(ctx context.Context, runID string, reading models.HeartReading) error
}

// HistoryRecorder persists readings to Postgres
type HistoryRecorder struct {
	repo Inserter
}

func NewHistoryRecorder(repo Inserter) *HistoryRecorder {
	return &HistoryRecorder{repo: repo}
}

func (r *HistoryRecorder) Record(ctx context.Context, runID string, reading models.HeartReading) error {
	return r.repo.Insert(ctx, runID, reading)
}

// Publisher is implemented by common/mqtt.Client
type Publisher interface {
	Publish(topic string, retained bool, payload []byte) error
}

// MQTTRecorder publishes each reading as retained JSON
type MQTTRecorder struct {
	pub   Publisher
	topic string
}

func NewMQTTRecorder(pub Publisher, topic string) *MQTTRecorder {
	if topic == "" {
		topic = DefaultTopic
	}
	return &MQTTRecorder{pub: pub, topic: topic}
}

func (r *MQTTRecorder) Record(_ context.Context, runID string, reading models.HeartReading) error {
	payload, err := json.Marshal(Result{RunID: runID, Reading: reading})
	if err != nil {
		return fmt.Errorf("failed to encode reading: %w", err)
	}
	return r.pub.Publish(r.topic, true, payload)
}

// Sink any reading destination
type Sink interface {
	Record(ctx context.Context, runID string, reading models.HeartReading) error
}

// Multi fans a reading out to every sink and joins their errors
type Multi []Sink

func (m Multi) Record(ctx context.Context, runID string, reading models.HeartReading) error {
	var errs []error
	for _, s := range m {
		if err := s.Record(ctx, runID, reading); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
