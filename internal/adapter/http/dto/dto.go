package dto

import (
	"time"

	"xrpl-payroll-gateway/internal/core/domain"
	"xrpl-payroll-gateway/internal/core/ports"
)

// LoginRequest is the request body for operator login.
type LoginRequest struct {
	Operator string `json:"operator" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// ImportWalletRequest is the request body for importing a wallet by seed.
type ImportWalletRequest struct {
	Secret      string `json:"secret" binding:"required,min=20,max=40"`
	DisplayName string `json:"display_name" binding:"omitempty,max=100"`
}

// GenerateWalletRequest is the request body for generating a fresh wallet.
type GenerateWalletRequest struct {
	DisplayName string `json:"display_name" binding:"omitempty,max=100"`
}

// WalletResponse describes one wallet, secret masked.
type WalletResponse struct {
	Address     string `json:"address"`
	DisplayName string `json:"display_name"`
	Secret      string `json:"secret"` // always masked
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
	LastUsedAt  string `json:"last_used_at"`
}

// SendPaymentRequest is the request body for submitting a payment.
type SendPaymentRequest struct {
	Destination     string `json:"destination" binding:"required,xrpl_address"`
	Amount          string `json:"amount" binding:"required,max=32"`
	IssuedCurrency  bool   `json:"issued_currency"`
	EstablishTrust  bool   `json:"establish_trust"`
	RecoveryPayload bool   `json:"recovery_payload"`
}

// PaymentOutcomeResponse is the response body for a classified payment
// outcome.
type PaymentOutcomeResponse struct {
	Succeeded       bool                    `json:"succeeded"`
	TxHash          string                  `json:"tx_hash,omitempty"`
	Reason          string                  `json:"reason,omitempty"`
	Detail          string                  `json:"detail,omitempty"`
	LedgerCode      string                  `json:"ledger_code,omitempty"`
	Recoverable     bool                    `json:"recoverable"`
	RecoveryPayload *domain.RecoveryPayload `json:"recovery_payload,omitempty"`
}

// TrustlineRequest is the request body for establishing a trust line on
// the active wallet.
type TrustlineRequest struct {
	Limit string `json:"limit" binding:"omitempty,max=32"`
}

// TrustlineResponse is the response body for trust line operations.
type TrustlineResponse struct {
	AlreadySatisfied bool     `json:"already_satisfied"`
	TxHash           string   `json:"tx_hash,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
}

// TrustlineStatusResponse is the response body for a trust line check.
type TrustlineStatusResponse struct {
	Exists  bool   `json:"exists"`
	Balance string `json:"balance,omitempty"`
	Limit   string `json:"limit,omitempty"`
}

// BalanceResponse reports a wallet's on-ledger holdings. Funded is
// false when the account does not exist on ledger yet.
type BalanceResponse struct {
	Address       string `json:"address"`
	Funded        bool   `json:"funded"`
	NativeDrops   string `json:"native_drops,omitempty"`
	IssuedBalance string `json:"issued_balance,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

// PaymentHistoryEntry is one row of the payment history listing.
type PaymentHistoryEntry struct {
	ID          string `json:"id"`
	Sender      string `json:"sender"`
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Issuer      string `json:"issuer,omitempty"`
	TxHash      string `json:"tx_hash,omitempty"`
	ResultCode  string `json:"result_code,omitempty"`
	Succeeded   bool   `json:"succeeded"`
	CreatedAt   string `json:"created_at"`
}

// ToWalletResponse converts a masked wallet record.
func ToWalletResponse(r domain.WalletRecord, active bool) WalletResponse {
	return WalletResponse{
		Address:     r.Address,
		DisplayName: r.DisplayName,
		Secret:      r.Secret,
		Active:      active,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		LastUsedAt:  r.LastUsedAt.Format(time.RFC3339),
	}
}

// ToPaymentOutcomeResponse converts a classified payment outcome.
func ToPaymentOutcomeResponse(o *domain.PaymentOutcome) PaymentOutcomeResponse {
	return PaymentOutcomeResponse{
		Succeeded:       o.Succeeded,
		TxHash:          o.TxHash,
		Reason:          string(o.Reason),
		Detail:          o.Detail,
		LedgerCode:      o.LedgerCode,
		Recoverable:     o.Recoverable,
		RecoveryPayload: o.RecoveryPayload,
	}
}

// ToPaymentHistoryEntry converts one payment log row.
func ToPaymentHistoryEntry(e ports.PaymentLogEntry) PaymentHistoryEntry {
	return PaymentHistoryEntry{
		ID:          e.ID.String(),
		Sender:      e.Sender,
		Destination: e.Destination,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Issuer:      e.Issuer,
		TxHash:      e.TxHash,
		ResultCode:  e.ResultCode,
		Succeeded:   e.Succeeded,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}
