// internal/session/redis_test.go
package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-concierge/internal/models"
)

func newMiniredisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundtrip(t *testing.T) {
	store, _ := newMiniredisStore(t, time.Hour)
	ctx := context.Background()

	sess := models.NewSession("abc", decimal.RequireFromString("12"))
	sess.State = models.StateCollectTenure
	sess.Context.CustomerPhone = "9876543210"
	sess.Context.LoanAmount = decimal.RequireFromString("400000")
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, models.StateCollectTenure, got.State)
	assert.Equal(t, "9876543210", got.Context.CustomerPhone)
	assert.True(t, got.Context.LoanAmount.Equal(decimal.RequireFromString("400000")))
	assert.True(t, got.Context.AnnualRatePct.Equal(decimal.RequireFromString("12")))
}

func TestRedisStoreUnknownID(t *testing.T) {
	store, _ := newMiniredisStore(t, time.Hour)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	store, mr := newMiniredisStore(t, time.Minute)
	ctx := context.Background()

	sess := models.NewSession("abc", decimal.RequireFromString("12"))
	require.NoError(t, store.Put(ctx, sess))

	ttl := mr.TTL("session:abc")
	assert.Equal(t, time.Minute, ttl)

	mr.FastForward(2 * time.Minute)
	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newMiniredisStore(t, time.Hour)
	ctx := context.Background()

	sess := models.NewSession("abc", decimal.RequireFromString("12"))
	require.NoError(t, store.Put(ctx, sess))
	require.NoError(t, store.Delete(ctx, "abc"))

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreGetFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Hour)

	mock.ExpectGet("session:abc").SetErr(errors.New("connection lost"))

	_, err := store.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreGetCorruptPayload(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Hour)

	mock.ExpectGet("session:abc").SetVal("{not json")

	_, err := store.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
