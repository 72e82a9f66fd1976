package config

import (
	"os"
	"strconv"
	"time"

	"github.com/m7mdaymn/SmartmirrorUi/common/config"
	"github.com/m7mdaymn/SmartmirrorUi/internal/session"
)

// Config smart-mirror client configuration
type Config struct {
	Database config.DatabaseConfig
	Redis    config.RedisConfig
	MQTT     config.MQTTConfig

	// backend REST API
	API struct {
		BaseURL    string
		Timeout    time.Duration
		RetryCount int
	}

	// heart measurement timing. Every protocol delay is expressed in TimeUnit.
	Heart struct {
		PollInterval       time.Duration
		TimeUnit           time.Duration
		MeasurementTimeout time.Duration // 0 = wait for the backend indefinitely
	}

	Dashboard struct {
		Period    time.Duration
		AirPeriod time.Duration
	}

	// result sinks
	Recorder struct {
		Cache    bool
		CacheTTL time.Duration
		Stream   bool
		History  bool
		MQTT     bool
		Topic    string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from environment variables with defaults
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "smartmirror")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = 5
	cfg.Database.MaxIdle = 2

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "smartmirror-heart")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.QoS = 1
	if v := getEnvInt("MQTT_QOS", 1); v >= 0 && v <= 2 {
		cfg.MQTT.QoS = byte(v)
	}

	cfg.API.BaseURL = getEnv("API_BASE_URL", "http://localhost:3000/api")
	cfg.API.Timeout = time.Duration(getEnvInt("HTTP_TIMEOUT_S", 10)) * time.Second
	cfg.API.RetryCount = getEnvInt("HTTP_RETRY_COUNT", 0)

	cfg.Heart.PollInterval = time.Duration(getEnvInt("HEART_POLL_INTERVAL_MS", 1000)) * time.Millisecond
	cfg.Heart.TimeUnit = time.Duration(getEnvInt("HEART_TIME_UNIT_MS", 1000)) * time.Millisecond
	if s := getEnvInt("HEART_MEASUREMENT_TIMEOUT_S", 0); s > 0 {
		cfg.Heart.MeasurementTimeout = time.Duration(s) * time.Second
	}

	cfg.Dashboard.Period = time.Duration(getEnvInt("DASHBOARD_POLL_INTERVAL_S", 8)) * time.Second
	cfg.Dashboard.AirPeriod = time.Duration(getEnvInt("DASHBOARD_AIR_POLL_INTERVAL_S", 3)) * time.Second

	cfg.Recorder.Cache = getEnvBool("RECORDER_CACHE", true)
	cfg.Recorder.CacheTTL = time.Duration(getEnvInt("RECORDER_CACHE_TTL_S", 86400)) * time.Second
	cfg.Recorder.Stream = getEnvBool("RECORDER_STREAM", true)
	cfg.Recorder.History = getEnvBool("RECORDER_HISTORY", false)
	cfg.Recorder.MQTT = getEnvBool("RECORDER_MQTT", false)
	cfg.Recorder.Topic = getEnv("RECORDER_MQTT_TOPIC", "smartmirror/heart/result")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

// SessionOptions controller timing derived from Heart; recorder is left to the caller
func (c *Config) SessionOptions() session.Options {
	unit := c.Heart.TimeUnit
	return session.Options{
		PollInterval:          c.Heart.PollInterval,
		MeasurementDuration:   15 * unit,
		CompletedDisableDelay: 3 * unit,
		RetryDelay:            unit,
		MeasurementTimeout:    c.Heart.MeasurementTimeout,
		CallTimeout:           c.API.Timeout,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil && v >= 0 {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}
