package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m7mdaymn/SmartmirrorUi/common/config"
)

func TestPublishToStream_StringifiesValues(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(&config.RedisConfig{Addr: mr.Addr()})
	defer Close(client)

	ctx := context.Background()
	require.NoError(t, Ping(ctx, client))

	_, err := PublishToStream(ctx, client, "smartmirror:test", map[string]interface{}{
		"session_id": 7,
		"success":    true,
		"spo2":       97.5,
		"tags":       []string{"a"},
	})
	require.NoError(t, err)

	msgs, err := client.XRange(ctx, "smartmirror:test", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "7", msgs[0].Values["session_id"])
	assert.Equal(t, "true", msgs[0].Values["success"])
	assert.Equal(t, "97.5", msgs[0].Values["spo2"])
	assert.Equal(t, `["a"]`, msgs[0].Values["tags"])
}

func TestPublishJSONToStream(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(&config.RedisConfig{Addr: mr.Addr()})
	defer Close(client)

	ctx := context.Background()
	_, err := PublishJSONToStream(ctx, client, "smartmirror:test", map[string]int{"heartRate": 72})
	require.NoError(t, err)

	msgs, err := client.XRange(ctx, "smartmirror:test", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, `{"heartRate":72}`, msgs[0].Values["data"])
	assert.NotEmpty(t, msgs[0].Values["timestamp"])
}
