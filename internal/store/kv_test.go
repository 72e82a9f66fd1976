package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKV(t *testing.T) (*miniredis.Miniredis, *RedisKV) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisKV(client)
}

func TestRedisKV_Miss(t *testing.T) {
	_, kv := setupKV(t)

	_, err := kv.Get(context.Background(), "smartmirror:none")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisKV_JSONRoundTripWithTTL(t *testing.T) {
	mr, kv := setupKV(t)
	ctx := context.Background()

	type panel struct {
		Status string `json:"status"`
	}
	require.NoError(t, SetJSON(ctx, kv, "smartmirror:panel", panel{Status: "FEVER"}, time.Minute))

	var got panel
	require.NoError(t, GetJSON(ctx, kv, "smartmirror:panel", &got))
	assert.Equal(t, "FEVER", got.Status)

	mr.FastForward(2 * time.Minute)
	err := GetJSON(ctx, kv, "smartmirror:panel", &got)
	assert.ErrorIs(t, err, ErrMiss)
}
