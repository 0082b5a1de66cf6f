package redis_test

import (
	"context"
	"testing"
	"time"

	"xrpl-payroll-gateway/internal/adapter/storage/redis"
	"xrpl-payroll-gateway/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*redis.DirectoryCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redis.NewDirectoryCache(client), mr
}

func cachedRecord() *domain.WalletRecord {
	return &domain.WalletRecord{
		Address:     "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH",
		DisplayName: "Payroll",
		Secret:      "656e63",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestDirectoryCache_RecordRoundTrip(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()
	rec := cachedRecord()

	require.NoError(t, cache.SetRecord(ctx, rec.Address, rec, time.Minute))

	got, err := cache.GetRecord(ctx, rec.Address)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.DisplayName, got.DisplayName)
	assert.Equal(t, rec.Address, got.Address)
}

func TestDirectoryCache_MissIsNilNil(t *testing.T) {
	cache, _ := newCache(t)

	got, err := cache.GetRecord(context.Background(), "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDirectoryCache_RecordExpires(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()
	rec := cachedRecord()

	require.NoError(t, cache.SetRecord(ctx, rec.Address, rec, time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := cache.GetRecord(ctx, rec.Address)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDirectoryCache_CIDSurvivesInvalidate(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()
	rec := cachedRecord()

	require.NoError(t, cache.SetRecord(ctx, rec.Address, rec, time.Minute))
	require.NoError(t, cache.SetCID(ctx, rec.Address, "QmHash1"))

	require.NoError(t, cache.Invalidate(ctx, rec.Address))

	got, err := cache.GetRecord(ctx, rec.Address)
	require.NoError(t, err)
	assert.Nil(t, got)

	cid, err := cache.GetCID(ctx, rec.Address)
	require.NoError(t, err)
	assert.Equal(t, "QmHash1", cid)
}

func TestDirectoryCache_UnknownCIDIsEmpty(t *testing.T) {
	cache, _ := newCache(t)

	cid, err := cache.GetCID(context.Background(), "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh")
	require.NoError(t, err)
	assert.Empty(t, cid)
}
