package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"xrpl-payroll-gateway/internal/core/domain"
	"xrpl-payroll-gateway/internal/core/ports"
	"xrpl-payroll-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService. It owns the
// session's wallet set in insertion order and tracks the single active
// identity. Directory persistence is best-effort and never blocks a
// wallet operation.
type WalletServiceImpl struct {
	keys      ports.KeyManager
	gateway   ports.LedgerGateway
	directory ports.AccountDirectory
	cipher    ports.SecretCipher
	faucet    ports.FaucetClient // nil = no faucet funding

	fundingInterval time.Duration
	fundingAttempts int

	mu         sync.RWMutex
	records    []domain.WalletRecord
	publicKeys map[string]string // address -> public key
	active     string            // address, "" = none

	log zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	keys ports.KeyManager,
	gateway ports.LedgerGateway,
	directory ports.AccountDirectory,
	cipher ports.SecretCipher,
	faucet ports.FaucetClient,
	fundingInterval time.Duration,
	fundingAttempts int,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		keys:            keys,
		gateway:         gateway,
		directory:       directory,
		cipher:          cipher,
		faucet:          faucet,
		fundingInterval: fundingInterval,
		fundingAttempts: fundingAttempts,
		publicKeys:      make(map[string]string),
		log:             log,
	}
}

// Import derives an identity from secret and adds it to the set. The
// first wallet in the set becomes active.
func (s *WalletServiceImpl) Import(ctx context.Context, secret, displayName string) (*domain.WalletRecord, error) {
	identity, err := s.keys.FromSecret(secret)
	if err != nil {
		return nil, apperror.ErrInvalidSecret(err)
	}
	return s.add(ctx, identity, displayName)
}

// Generate creates a fresh identity, adds it to the set and, when a
// faucet is configured, funds it and waits for the account to appear on
// ledger.
func (s *WalletServiceImpl) Generate(ctx context.Context, displayName string) (*domain.WalletRecord, error) {
	identity, err := s.keys.Generate()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generating keypair: %w", err))
	}

	record, err := s.add(ctx, identity, displayName)
	if err != nil {
		return nil, err
	}

	if s.faucet != nil {
		if err := s.faucet.Fund(ctx, identity.Address); err != nil {
			s.log.Warn().Err(err).Str("address", identity.Address).Msg("faucet funding request failed")
		}
		// The wallet stays in the set on timeout; the caller may wait again.
		if err := s.WaitForFunding(ctx, identity.Address); err != nil {
			return record, err
		}
	}

	return record, nil
}

func (s *WalletServiceImpl) add(ctx context.Context, identity *domain.Identity, displayName string) (*domain.WalletRecord, error) {
	s.mu.Lock()
	for _, r := range s.records {
		if r.Address == identity.Address {
			s.mu.Unlock()
			return nil, apperror.ErrWalletAlreadyImported(identity.Address)
		}
	}

	if displayName == "" {
		displayName = fmt.Sprintf("Wallet %d", len(s.records)+1)
	}
	now := time.Now().UTC()
	record := domain.WalletRecord{
		Address:     identity.Address,
		DisplayName: displayName,
		Secret:      identity.Secret,
		CreatedAt:   now,
		LastUsedAt:  now,
	}
	s.records = append(s.records, record)
	s.publicKeys[identity.Address] = identity.PublicKey
	if len(s.records) == 1 {
		s.active = identity.Address
	}
	s.mu.Unlock()

	s.persist(ctx, record)

	masked := record.Masked()
	return &masked, nil
}

// Activate switches the active identity and bumps LastUsedAt.
func (s *WalletServiceImpl) Activate(ctx context.Context, address string) error {
	s.mu.Lock()
	idx := s.indexOf(address)
	if idx < 0 {
		s.mu.Unlock()
		return apperror.ErrNoSuchWallet(address)
	}
	s.active = address
	s.records[idx].LastUsedAt = time.Now().UTC()
	record := s.records[idx]
	s.mu.Unlock()

	s.persist(ctx, record)
	return nil
}

// Remove deletes a wallet from the set. Removing the active record
// promotes the first remaining one, or leaves no active identity when
// the set becomes empty.
func (s *WalletServiceImpl) Remove(ctx context.Context, address string) error {
	s.mu.Lock()
	idx := s.indexOf(address)
	if idx < 0 {
		s.mu.Unlock()
		return apperror.ErrNoSuchWallet(address)
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	delete(s.publicKeys, address)
	if s.active == address {
		if len(s.records) > 0 {
			s.active = s.records[0].Address
		} else {
			s.active = ""
		}
	}
	s.mu.Unlock()

	if err := s.directory.Remove(ctx, address); err != nil {
		s.log.Warn().Err(apperror.ErrMetadataPersistenceFailed(err)).Str("address", address).Msg("failed to remove wallet metadata")
	}
	return nil
}

// List returns secret-masked copies of every record, insertion order.
func (s *WalletServiceImpl) List() []domain.WalletRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.WalletRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Masked())
	}
	return out
}

// Active returns the current signing identity, or nil when the set is
// empty.
func (s *WalletServiceImpl) Active() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == "" {
		return nil
	}
	idx := s.indexOf(s.active)
	if idx < 0 {
		return nil
	}
	r := s.records[idx]
	return &domain.Identity{
		Address:   r.Address,
		PublicKey: s.publicKeys[r.Address],
		Secret:    r.Secret,
	}
}

// WaitForFunding polls account_info on a fixed interval until the
// account exists on ledger, giving up after the configured attempt cap.
func (s *WalletServiceImpl) WaitForFunding(ctx context.Context, address string) error {
	for attempt := 0; attempt < s.fundingAttempts; attempt++ {
		if _, err := s.gateway.AccountInfo(ctx, address); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return apperror.ErrFundingTimedOut(address)
		case <-time.After(s.fundingInterval):
		}
	}
	return apperror.ErrFundingTimedOut(address)
}

// persist writes the record to the directory with the secret encrypted.
// Metadata failures are reported separately, never propagated.
func (s *WalletServiceImpl) persist(ctx context.Context, record domain.WalletRecord) {
	enc, err := s.cipher.Encrypt(record.Secret)
	if err != nil {
		s.log.Error().Err(err).Str("address", record.Address).Msg("failed to encrypt wallet secret, skipping directory write")
		return
	}
	record.Secret = enc

	if _, err := s.directory.Put(ctx, record.Address, &record); err != nil {
		s.log.Warn().Err(apperror.ErrMetadataPersistenceFailed(err)).Str("address", record.Address).Msg("failed to persist wallet metadata")
	}
}

// indexOf must be called with the lock held.
func (s *WalletServiceImpl) indexOf(address string) int {
	for i, r := range s.records {
		if r.Address == address {
			return i
		}
	}
	return -1
}
