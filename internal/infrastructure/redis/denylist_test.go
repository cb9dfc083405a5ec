package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values map[string]time.Duration
	err    error
}

func newFakeStore() *fakeStore { return &fakeStore{values: map[string]time.Duration{}} }

func (f *fakeStore) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (f *fakeStore) Set(ctx context.Context, k string, _ any, ttl time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.values[k] = ttl
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeStore) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func TestDenylist_RevokeConTTL(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	d := &Denylist{store: store, now: func() time.Time { return now }}
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "jti-1", now.Add(30*time.Minute)))
	assert.Equal(t, 30*time.Minute, store.values["spa:revoked:jti-1"])

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = d.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestDenylist_TokenVencidoNoSeGuarda(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	d := &Denylist{store: store, now: func() time.Time { return now }}

	require.NoError(t, d.Revoke(context.Background(), "old", now.Add(-time.Minute)))
	assert.Empty(t, store.values)
}

func TestDenylist_ErrorDeRedis(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	d := &Denylist{store: store, now: time.Now}

	_, err := d.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
}
