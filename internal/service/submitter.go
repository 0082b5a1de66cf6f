package service

import (
	"context"
	"fmt"
	"sync"

	"xrpl-payroll-gateway/internal/core/domain"
	"xrpl-payroll-gateway/internal/core/ports"
	"xrpl-payroll-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// txSubmitter prepares and submits one ledger transaction. Shared by the
// payment and trustline services so every submission carries the same
// fee and expiry policy: live fee with a fixed fallback, and
// LastLedgerSequence = current index + horizon so stuck transactions
// self-expire instead of clogging the account's queue.
type txSubmitter struct {
	gateway     ports.LedgerGateway
	keys        ports.KeyManager
	feeFallback string
	horizon     uint32
	log         zerolog.Logger
}

// senderLocks serializes ledger-mutating submissions per account across
// every submitter in the process. The account sequence number makes
// concurrent unsynchronized submissions race into spurious rejections,
// so payments and trustline setup for one sender must never overlap.
var senderLocks sync.Map // address -> *sync.Mutex

func lockSender(address string) func() {
	v, _ := senderLocks.LoadOrStore(address, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func newTxSubmitter(gateway ports.LedgerGateway, keys ports.KeyManager, feeFallback string, horizon uint32, log zerolog.Logger) *txSubmitter {
	return &txSubmitter{
		gateway:     gateway,
		keys:        keys,
		feeFallback: feeFallback,
		horizon:     horizon,
		log:         log,
	}
}

// prepareAndSubmit fills sequence, fee and expiry, signs the transaction
// and submits it, waiting for the final result. Exactly one submission
// attempt is made.
func (s *txSubmitter) prepareAndSubmit(ctx context.Context, tx *domain.Transaction, identity *domain.Identity) (*domain.SubmitResult, error) {
	unlock := lockSender(tx.Account)
	defer unlock()

	info, err := s.gateway.AccountInfo(ctx, tx.Account)
	if err != nil {
		return nil, apperror.ErrConnectionFailed(fmt.Errorf("account info for %s: %w", tx.Account, err))
	}
	tx.Sequence = info.Sequence

	fee, err := s.gateway.Fee(ctx)
	if err != nil || fee == "" {
		s.log.Warn().Err(err).Str("fallback", s.feeFallback).Msg("fee query failed, using fallback fee")
		fee = s.feeFallback
	}
	tx.Fee = fee

	idx, err := s.gateway.LedgerCurrentIndex(ctx)
	if err != nil {
		return nil, apperror.ErrConnectionFailed(fmt.Errorf("ledger index: %w", err))
	}
	tx.LastLedgerSequence = idx + s.horizon

	blob, err := s.keys.Sign(ctx, tx, identity)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("signing %s: %w", tx.TransactionType, err))
	}

	result, err := s.gateway.SubmitAndWait(ctx, blob)
	if err != nil {
		return nil, apperror.ErrConnectionFailed(fmt.Errorf("submitting %s: %w", tx.TransactionType, err))
	}
	return result, nil
}
