package ports

import (
	"context"
	"time"

	"xrpl-payroll-gateway/internal/core/domain"
)

//go:generate mockgen -source=services.go -destination=mocks/service_mocks.go -package=mocks

// PaymentService is the payment orchestration core.
type PaymentService interface {
	SendPayment(ctx context.Context, req SendPaymentRequest) (*domain.PaymentOutcome, error)
}

// SendPaymentRequest holds validated input for one payment attempt.
type SendPaymentRequest struct {
	Destination string
	Amount      string // positive decimal

	PreferIssuedCurrency            bool
	AutoEstablishSenderTrust        bool
	ProduceRecipientRecoveryPayload bool
}

// TrustlineService decides whether a trust relationship exists and can
// establish it.
type TrustlineService interface {
	// Exists queries ledger state. Any query error, including "account not
	// found", reads as absence: no proof of trust means no trust.
	Exists(ctx context.Context, account, issuer, currency string) (bool, *domain.TrustLine)

	// Establish is idempotent: if the line already exists it returns
	// AlreadySatisfied without submitting anything.
	Establish(ctx context.Context, identity *domain.Identity, issuer, currency, limit string) (*EstablishResult, error)
}

// EstablishResult reports how a trust line came to exist.
type EstablishResult struct {
	AlreadySatisfied bool
	TxHash           string
	// Warnings surfaces best-effort prerequisite failures (e.g. the
	// rippling account flag could not be set) without failing the call.
	Warnings []string
}

// WalletService owns the session's wallet set and the active identity.
type WalletService interface {
	Import(ctx context.Context, secret, displayName string) (*domain.WalletRecord, error)
	Generate(ctx context.Context, displayName string) (*domain.WalletRecord, error)
	Activate(ctx context.Context, address string) error
	Remove(ctx context.Context, address string) error
	List() []domain.WalletRecord // secret-masked
	// Active returns the current signing identity, or nil when the set is empty.
	Active() *domain.Identity
	// WaitForFunding polls account_info until the account exists on ledger,
	// with a fixed interval and attempt cap.
	WaitForFunding(ctx context.Context, address string) error
}

// TokenService issues and validates operator session tokens.
type TokenService interface {
	Generate(operator string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed session token claims.
type TokenClaims struct {
	Operator string
}

// SecretCipher encrypts wallet secrets before they leave the process
// (directory writes) and decrypts them on the way back in.
type SecretCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// PasswordHasher verifies the operator password against its stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}
