package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CurrencyMode selects which asset a payment moves.
type CurrencyMode string

const (
	CurrencyModeIssued CurrencyMode = "issued"
	CurrencyModeNative CurrencyMode = "native"
)

// PaymentIntent is the transient, per-call description of one payment.
// It is never persisted.
type PaymentIntent struct {
	SenderAddress string
	Destination   string
	Amount        string
	Mode          CurrencyMode
}

// FailureReason classifies a payment failure.
type FailureReason string

const (
	ReasonInvalidInput             FailureReason = "InvalidInput"
	ReasonNoActiveWallet           FailureReason = "NoActiveWallet"
	ReasonConnectionFailed         FailureReason = "ConnectionFailed"
	ReasonSenderTrustSetupFailed   FailureReason = "SenderTrustSetupFailed"
	ReasonRecipientTrustlineMissing FailureReason = "RecipientTrustlineMissing"
	ReasonTrustlineNotReady        FailureReason = "TrustlineNotReady"
	ReasonNoLiquidityPath          FailureReason = "NoLiquidityPath"
	ReasonLedgerRejected           FailureReason = "LedgerRejected"
)

// PaymentOutcome is the tagged result of one SendPayment invocation.
type PaymentOutcome struct {
	Succeeded       bool             `json:"succeeded"`
	TxHash          string           `json:"tx_hash,omitempty"`
	Reason          FailureReason    `json:"reason,omitempty"`
	Detail          string           `json:"detail,omitempty"`
	LedgerCode      string           `json:"ledger_code,omitempty"`
	Recoverable     bool             `json:"recoverable"`
	RecoveryPayload *RecoveryPayload `json:"recovery_payload,omitempty"`
}

// Success builds a successful outcome.
func Success(txHash string) PaymentOutcome {
	return PaymentOutcome{Succeeded: true, TxHash: txHash}
}

// Failed builds a terminal failure outcome.
func Failed(reason FailureReason) PaymentOutcome {
	return PaymentOutcome{Reason: reason}
}

// FailedWithCode builds a failure carrying the ledger result code.
func FailedWithCode(reason FailureReason, code string) PaymentOutcome {
	return PaymentOutcome{Reason: reason, LedgerCode: code}
}

// RecoveryPayload carries enough data for an out-of-band completion flow
// (e.g. a QR code the recipient scans to set up the missing trust line).
type RecoveryPayload struct {
	Action    string `json:"action"`
	Currency  string `json:"currency"`
	Issuer    string `json:"issuer"`
	Recipient string `json:"recipient"`
	Limit     string `json:"limit"`
}

// Scannable renders the payload as the text blob embedded in a QR code.
// It must round-trip through ParseRecoveryPayload.
func (p RecoveryPayload) Scannable() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding recovery payload: %w", err)
	}
	return string(b), nil
}

// ParseRecoveryPayload decodes a scannable blob back into a payload.
func ParseRecoveryPayload(s string) (*RecoveryPayload, error) {
	var p RecoveryPayload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, fmt.Errorf("decoding recovery payload: %w", err)
	}
	return &p, nil
}

const (
	addressPrefix = "r"
	addressMinLen = 25
	addressMaxLen = 35
)

// rippleAlphabet is the base58 dictionary used for ledger addresses.
const rippleAlphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

// IsValidAddress performs the syntactic destination check: non-empty,
// network prefix, canonical length bounds, base58 charset. It does not
// verify the checksum; the ledger does that on submission.
func IsValidAddress(addr string) bool {
	if len(addr) < addressMinLen || len(addr) > addressMaxLen {
		return false
	}
	if !strings.HasPrefix(addr, addressPrefix) {
		return false
	}
	for _, c := range addr {
		if !strings.ContainsRune(rippleAlphabet, c) {
			return false
		}
	}
	return true
}
