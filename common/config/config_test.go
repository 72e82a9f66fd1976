package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_GetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5433, User: "mirror", Password: "pw", Database: "smartmirror", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=mirror password=pw dbname=smartmirror sslmode=disable", c.GetDSN())
}

func TestDatabaseConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("HIST_HOST", "pg.local")
	t.Setenv("HIST_PORT", "6543")
	t.Setenv("HIST_NAME", "history")

	c := DatabaseConfig{Host: "localhost", Port: 5432, Database: "smartmirror"}
	c.LoadFromEnv("HIST")

	assert.Equal(t, "pg.local", c.Host)
	assert.Equal(t, 6543, c.Port)
	assert.Equal(t, "history", c.Database)
}

func TestRedisConfig_LoadFromEnv_IgnoresBadDB(t *testing.T) {
	t.Setenv("CACHE_ADDR", "redis:6380")
	t.Setenv("CACHE_DB", "not-a-number")

	c := RedisConfig{Addr: "localhost:6379", DB: 2}
	c.LoadFromEnv("CACHE")

	assert.Equal(t, "redis:6380", c.Addr)
	assert.Equal(t, 2, c.DB)
}

func TestMQTTConfig_LoadFromEnv_QoSRange(t *testing.T) {
	t.Setenv("BUS_BROKER", "tcp://broker:1883")
	t.Setenv("BUS_QOS", "5")

	c := MQTTConfig{QoS: 1}
	c.LoadFromEnv("BUS")

	assert.Equal(t, "tcp://broker:1883", c.Broker)
	assert.Equal(t, byte(1), c.QoS)
}
