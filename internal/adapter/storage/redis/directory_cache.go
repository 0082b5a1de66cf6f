package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"xrpl-payroll-gateway/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// DirectoryCache implements ports.DirectoryCache using Redis. It fronts
// the pinning service with two key families: the record body itself
// (TTL-bounded) and the content hash it was pinned under (kept until
// invalidated, since the hash is the only handle to the pinned data).
type DirectoryCache struct {
	client       *goredis.Client
	recordPrefix string
	cidPrefix    string
}

// NewDirectoryCache creates a new Redis-backed directory cache.
func NewDirectoryCache(client *goredis.Client) *DirectoryCache {
	return &DirectoryCache{
		client:       client,
		recordPrefix: "wallet:record:",
		cidPrefix:    "wallet:cid:",
	}
}

// GetRecord retrieves a cached wallet record.
// Returns nil, nil if the address is not cached.
func (c *DirectoryCache) GetRecord(ctx context.Context, address string) (*domain.WalletRecord, error) {
	val, err := c.client.Get(ctx, c.recordPrefix+address).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis record get: %w", err)
	}

	var record domain.WalletRecord
	if err := json.Unmarshal(val, &record); err != nil {
		return nil, fmt.Errorf("decoding cached record: %w", err)
	}
	return &record, nil
}

// SetRecord caches a wallet record with TTL.
func (c *DirectoryCache) SetRecord(ctx context.Context, address string, record *domain.WalletRecord, ttl time.Duration) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if err := c.client.Set(ctx, c.recordPrefix+address, body, ttl).Err(); err != nil {
		return fmt.Errorf("redis record set: %w", err)
	}
	return nil
}

// GetCID retrieves the content hash an address was pinned under.
// Returns "", nil if unknown.
func (c *DirectoryCache) GetCID(ctx context.Context, address string) (string, error) {
	val, err := c.client.Get(ctx, c.cidPrefix+address).Result()
	if err != nil {
		if err == goredis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("redis cid get: %w", err)
	}
	return val, nil
}

// SetCID stores the content hash for an address without expiry.
func (c *DirectoryCache) SetCID(ctx context.Context, address, cid string) error {
	if err := c.client.Set(ctx, c.cidPrefix+address, cid, 0).Err(); err != nil {
		return fmt.Errorf("redis cid set: %w", err)
	}
	return nil
}

// Invalidate drops the cached record for an address. The content hash
// mapping survives; it stays valid until the record is re-pinned.
func (c *DirectoryCache) Invalidate(ctx context.Context, address string) error {
	if err := c.client.Del(ctx, c.recordPrefix+address).Err(); err != nil {
		return fmt.Errorf("redis record del: %w", err)
	}
	return nil
}
