package service

import (
	"context"
	"time"

	"xrpl-payroll-gateway/internal/core/domain"
	"xrpl-payroll-gateway/internal/core/ports"
	"xrpl-payroll-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentServiceImpl implements ports.PaymentService. One invocation of
// SendPayment walks: validate -> (ensure sender trust) -> (check
// recipient trust) -> submit -> classify. Exactly one submission attempt
// is made per call; there is no hidden retry loop.
type PaymentServiceImpl struct {
	wallets   ports.WalletService
	trust     ports.TrustlineService
	submitter *txSubmitter
	payLog    ports.PaymentLogRepository // nil = history recording disabled

	issuer       string
	currency     string
	defaultLimit string

	log zerolog.Logger
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	wallets ports.WalletService,
	trust ports.TrustlineService,
	gateway ports.LedgerGateway,
	keys ports.KeyManager,
	payLog ports.PaymentLogRepository,
	issuer string,
	currency string,
	defaultLimit string,
	feeFallback string,
	horizon uint32,
	log zerolog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		wallets:      wallets,
		trust:        trust,
		submitter:    newTxSubmitter(gateway, keys, feeFallback, horizon, log),
		payLog:       payLog,
		issuer:       issuer,
		currency:     currency,
		defaultLimit: defaultLimit,
		log:          log,
	}
}

// SendPayment pays req.Amount to req.Destination from the active wallet,
// in the issued currency when requested (with trustline bootstrap), else
// in the native asset.
func (s *PaymentServiceImpl) SendPayment(ctx context.Context, req ports.SendPaymentRequest) (*domain.PaymentOutcome, error) {
	// Fail fast, before any network call.
	if !domain.IsValidAddress(req.Destination) {
		return nil, apperror.ErrInvalidInput("destination is not a valid ledger address")
	}
	if !domain.IsPositiveAmount(req.Amount) {
		return nil, apperror.ErrInvalidInput("amount must be a positive decimal")
	}

	identity := s.wallets.Active()
	if identity == nil {
		return nil, apperror.ErrNoActiveWallet()
	}

	if req.PreferIssuedCurrency {
		return s.sendIssued(ctx, identity, req)
	}
	return s.sendNative(ctx, identity, req)
}

// sendIssued pays in the configured issued currency, bootstrapping the
// sender's trust line when asked to and refusing a submission that the
// ledger would be guaranteed to reject.
func (s *PaymentServiceImpl) sendIssued(ctx context.Context, identity *domain.Identity, req ports.SendPaymentRequest) (*domain.PaymentOutcome, error) {
	if req.AutoEstablishSenderTrust {
		setup, err := s.trust.Establish(ctx, identity, s.issuer, s.currency, s.defaultLimit)
		if err != nil {
			s.log.Warn().Err(err).Str("sender", identity.Address).Msg("sender trust setup failed")
			out := domain.Failed(domain.ReasonSenderTrustSetupFailed)
			out.Detail = err.Error()
			return &out, nil
		}
		for _, w := range setup.Warnings {
			s.log.Warn().Str("sender", identity.Address).Msg(w)
		}
	}

	// An issued-currency transfer to an account with no trust path is
	// guaranteed to fail; do not submit it.
	if exists, _ := s.trust.Exists(ctx, req.Destination, s.issuer, s.currency); !exists {
		out := domain.Failed(domain.ReasonRecipientTrustlineMissing)
		out.Recoverable = true
		if req.ProduceRecipientRecoveryPayload {
			out.RecoveryPayload = &domain.RecoveryPayload{
				Action:    "trustset",
				Currency:  s.currency,
				Issuer:    s.issuer,
				Recipient: req.Destination,
				Limit:     s.defaultLimit,
			}
		}
		return &out, nil
	}

	amount := domain.IssuedAmount(s.currency, s.issuer, req.Amount)
	tx := &domain.Transaction{
		TransactionType: "Payment",
		Account:         identity.Address,
		Destination:     req.Destination,
		Amount:          &amount,
	}

	result, err := s.submitter.prepareAndSubmit(ctx, tx, identity)
	if err != nil {
		return nil, err
	}

	outcome := s.classifyIssued(ctx, identity, req.Destination, result)
	s.record(ctx, identity.Address, req.Destination, req.Amount, s.currency, s.issuer, result, outcome)
	return outcome, nil
}

// classifyIssued maps the terminal ledger code of an issued-currency
// payment onto the failure taxonomy. tecPATH_DRY forces a re-check of
// both trust lines: a configuration gap is reported as such, and only a
// genuine routing/balance problem reads as NoLiquidityPath.
func (s *PaymentServiceImpl) classifyIssued(ctx context.Context, identity *domain.Identity, destination string, result *domain.SubmitResult) *domain.PaymentOutcome {
	switch result.Code {
	case domain.ResultSuccess:
		out := domain.Success(result.Hash)
		s.log.Info().
			Str("sender", identity.Address).
			Str("destination", destination).
			Str("tx_hash", result.Hash).
			Msg("issued-currency payment delivered")
		return &out

	case domain.ResultPathDry:
		if ok, _ := s.trust.Exists(ctx, identity.Address, s.issuer, s.currency); !ok {
			out := domain.FailedWithCode(domain.ReasonTrustlineNotReady, result.Code)
			out.Detail = "sender trust line missing"
			return &out
		}
		if ok, _ := s.trust.Exists(ctx, destination, s.issuer, s.currency); !ok {
			out := domain.FailedWithCode(domain.ReasonTrustlineNotReady, result.Code)
			out.Detail = "recipient trust line missing"
			return &out
		}
		out := domain.FailedWithCode(domain.ReasonNoLiquidityPath, result.Code)
		return &out

	default:
		out := domain.FailedWithCode(domain.ReasonLedgerRejected, result.Code)
		return &out
	}
}

// sendNative pays in the native asset, converting the decimal amount to
// drops with truncation so a fractional drop is never overspent.
func (s *PaymentServiceImpl) sendNative(ctx context.Context, identity *domain.Identity, req ports.SendPaymentRequest) (*domain.PaymentOutcome, error) {
	drops, err := domain.XRPToDrops(req.Amount)
	if err != nil {
		return nil, apperror.ErrInvalidInput(err.Error())
	}

	amount := domain.NativeAmount(drops)
	tx := &domain.Transaction{
		TransactionType: "Payment",
		Account:         identity.Address,
		Destination:     req.Destination,
		Amount:          &amount,
	}

	result, err := s.submitter.prepareAndSubmit(ctx, tx, identity)
	if err != nil {
		return nil, err
	}

	var outcome domain.PaymentOutcome
	if result.Code == domain.ResultSuccess {
		outcome = domain.Success(result.Hash)
		s.log.Info().
			Str("sender", identity.Address).
			Str("destination", req.Destination).
			Str("drops", drops).
			Str("tx_hash", result.Hash).
			Msg("native payment delivered")
	} else {
		outcome = domain.FailedWithCode(domain.ReasonLedgerRejected, result.Code)
	}

	s.record(ctx, identity.Address, req.Destination, req.Amount, "XRP", "", result, &outcome)
	return &outcome, nil
}

// record appends the submission outcome to the local history. Best
// effort: a write failure is logged, never propagated.
func (s *PaymentServiceImpl) record(ctx context.Context, sender, destination, amount, currency, issuer string, result *domain.SubmitResult, outcome *domain.PaymentOutcome) {
	if s.payLog == nil {
		return
	}
	entry := &ports.PaymentLogEntry{
		ID:          uuid.New(),
		Sender:      sender,
		Destination: destination,
		Amount:      amount,
		Currency:    currency,
		Issuer:      issuer,
		TxHash:      result.Hash,
		ResultCode:  result.Code,
		Succeeded:   outcome.Succeeded,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.payLog.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("tx_hash", result.Hash).Msg("failed to record payment history")
	}
}
