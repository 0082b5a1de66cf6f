package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repository_mocks.go -package=mocks

// PaymentLogEntry is one row of the local payment history audit trail.
type PaymentLogEntry struct {
	ID          uuid.UUID
	Sender      string
	Destination string
	Amount      string
	Currency    string // "XRP" for native
	Issuer      string
	TxHash      string
	ResultCode  string
	Succeeded   bool
	CreatedAt   time.Time
}

// PaymentLogRepository records payment outcomes. Writes are best-effort:
// a failed insert must never fail the payment it describes.
type PaymentLogRepository interface {
	Create(ctx context.Context, entry *PaymentLogEntry) error
	ListBySender(ctx context.Context, sender string, limit int) ([]PaymentLogEntry, error)
}
