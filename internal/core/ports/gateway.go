package ports

import (
	"context"

	"xrpl-payroll-gateway/internal/core/domain"
)

//go:generate mockgen -source=gateway.go -destination=mocks/gateway_mocks.go -package=mocks

// LedgerGateway is the capability boundary to the ledger network.
// Implementations convert transport failures into typed errors; callers
// never see raw connection errors.
type LedgerGateway interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error

	AccountInfo(ctx context.Context, address string) (*domain.AccountInfo, error)
	AccountLines(ctx context.Context, address string) ([]domain.TrustLine, error)
	// Fee returns the current open-ledger fee in drops.
	Fee(ctx context.Context) (string, error)
	LedgerCurrentIndex(ctx context.Context) (uint32, error)

	// SubmitAndWait submits a signed transaction blob and blocks until the
	// outcome is final: either the validated result code, or expiry once the
	// ledger index passes the transaction's LastLedgerSequence.
	SubmitAndWait(ctx context.Context, signedBlob string) (*domain.SubmitResult, error)
}

// FaucetClient requests test-network funding for a newly generated
// account. Production deployments run without one.
type FaucetClient interface {
	Fund(ctx context.Context, address string) error
}

// KeyManager derives and uses signing identities. Secrets stay inside
// the implementation; only addresses and public keys come back out.
type KeyManager interface {
	// FromSecret derives an identity from a family seed.
	FromSecret(secret string) (*domain.Identity, error)
	// Generate creates a fresh identity.
	Generate() (*domain.Identity, error)
	// Sign produces the signed blob for a prepared transaction.
	Sign(ctx context.Context, tx *domain.Transaction, identity *domain.Identity) (string, error)
}
