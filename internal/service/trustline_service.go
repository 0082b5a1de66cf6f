package service

import (
	"context"
	"fmt"

	"xrpl-payroll-gateway/internal/core/domain"
	"xrpl-payroll-gateway/internal/core/ports"
	"xrpl-payroll-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// TrustlineServiceImpl implements ports.TrustlineService.
type TrustlineServiceImpl struct {
	gateway      ports.LedgerGateway
	submitter    *txSubmitter
	defaultLimit string
	log          zerolog.Logger
}

// NewTrustlineService creates a new TrustlineServiceImpl.
func NewTrustlineService(
	gateway ports.LedgerGateway,
	keys ports.KeyManager,
	feeFallback string,
	horizon uint32,
	defaultLimit string,
	log zerolog.Logger,
) *TrustlineServiceImpl {
	return &TrustlineServiceImpl{
		gateway:      gateway,
		submitter:    newTxSubmitter(gateway, keys, feeFallback, horizon, log),
		defaultLimit: defaultLimit,
		log:          log,
	}
}

// Exists reports whether account already trusts (issuer, currency).
// Query errors, including "account not found", read as absence: no proof
// of trust is treated as no trust.
func (s *TrustlineServiceImpl) Exists(ctx context.Context, account, issuer, currency string) (bool, *domain.TrustLine) {
	lines, err := s.gateway.AccountLines(ctx, account)
	if err != nil {
		s.log.Debug().Err(err).Str("account", account).Msg("account_lines query failed, treating as no trust line")
		return false, nil
	}
	for i := range lines {
		if lines[i].Matches(issuer, currency) {
			return true, &lines[i]
		}
	}
	return false, nil
}

// Establish ensures identity trusts (issuer, currency) up to limit.
// Idempotent: an existing line short-circuits without a submission.
func (s *TrustlineServiceImpl) Establish(ctx context.Context, identity *domain.Identity, issuer, currency, limit string) (*ports.EstablishResult, error) {
	if exists, line := s.Exists(ctx, identity.Address, issuer, currency); exists {
		s.log.Debug().
			Str("account", identity.Address).
			Str("currency", currency).
			Str("limit", line.Limit).
			Msg("trust line already present")
		return &ports.EstablishResult{AlreadySatisfied: true}, nil
	}

	if limit == "" {
		limit = s.defaultLimit
	}

	result := &ports.EstablishResult{}

	// Prerequisite: the account must allow balances to ripple. Best-effort,
	// but a failure is surfaced on the result rather than swallowed.
	if warn := s.ensureRippling(ctx, identity); warn != "" {
		result.Warnings = append(result.Warnings, warn)
	}

	amount := domain.IssuedAmount(currency, issuer, limit)
	tx := &domain.Transaction{
		TransactionType: "TrustSet",
		Account:         identity.Address,
		LimitAmount:     &amount,
	}

	submitted, err := s.submitter.prepareAndSubmit(ctx, tx, identity)
	if err != nil {
		return nil, err
	}
	if submitted.Code != domain.ResultSuccess {
		return nil, apperror.ErrLedgerRejected(submitted.Code)
	}

	s.log.Info().
		Str("account", identity.Address).
		Str("issuer", issuer).
		Str("currency", currency).
		Str("limit", limit).
		Str("tx_hash", submitted.Hash).
		Msg("trust line established")

	result.TxHash = submitted.Hash
	return result, nil
}

// ensureRippling sets the default-rippling account flag when it is not
// already set. Returns a warning string on failure, empty on success or
// when the flag is already present.
func (s *TrustlineServiceImpl) ensureRippling(ctx context.Context, identity *domain.Identity) string {
	info, err := s.gateway.AccountInfo(ctx, identity.Address)
	if err != nil {
		return fmt.Sprintf("could not read account flags: %v", err)
	}
	if info.Flags&domain.LedgerFlagDefaultRipple != 0 {
		return ""
	}

	tx := &domain.Transaction{
		TransactionType: "AccountSet",
		Account:         identity.Address,
		SetFlag:         domain.AccountFlagDefaultRipple,
	}
	submitted, err := s.submitter.prepareAndSubmit(ctx, tx, identity)
	if err != nil {
		s.log.Warn().Err(err).Str("account", identity.Address).Msg("rippling setup submission failed")
		return fmt.Sprintf("rippling setup failed: %v", err)
	}
	if submitted.Code != domain.ResultSuccess {
		s.log.Warn().Str("code", submitted.Code).Str("account", identity.Address).Msg("rippling setup rejected")
		return fmt.Sprintf("rippling setup rejected with %s", submitted.Code)
	}
	return ""
}
