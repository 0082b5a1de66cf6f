package ports

import (
	"context"
	"time"

	"xrpl-payroll-gateway/internal/core/domain"
)

//go:generate mockgen -source=directory.go -destination=mocks/directory_mocks.go -package=mocks

// AccountDirectory persists wallet metadata in a content-addressed store.
// Lookups are eventually consistent and cache-fronted; a miss returns
// (nil, nil) and means "no metadata", not an error.
type AccountDirectory interface {
	// Put stores the record and returns the content hash it was pinned
	// under. The adapter retains the hash; losing it orphans the record.
	Put(ctx context.Context, address string, record *domain.WalletRecord) (string, error)
	Get(ctx context.Context, address string) (*domain.WalletRecord, error)
	// List returns every record pinned under the given tag.
	List(ctx context.Context, tag string) ([]domain.WalletRecord, error)
	Remove(ctx context.Context, address string) error
}

// DirectoryCache is the Redis layer in front of the pinning service.
type DirectoryCache interface {
	GetRecord(ctx context.Context, address string) (*domain.WalletRecord, error)
	SetRecord(ctx context.Context, address string, record *domain.WalletRecord, ttl time.Duration) error
	GetCID(ctx context.Context, address string) (string, error)
	SetCID(ctx context.Context, address, cid string) error
	Invalidate(ctx context.Context, address string) error
}
