package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ledger transaction result codes the orchestrator branches on.
// Any other terminal code is reported verbatim as LedgerRejected.
const (
	ResultSuccess = "tesSUCCESS"
	ResultPathDry = "tecPATH_DRY"
)

// DropsPerXRP is the fixed integer-per-unit ratio of the native asset.
const DropsPerXRP = 1_000_000

// Amount is a ledger currency amount. The native asset is serialized as
// a bare drops string; issued currencies as a {currency, issuer, value}
// object, per the ledger's wire convention.
type Amount struct {
	Currency string `json:"currency,omitempty"`
	Issuer   string `json:"issuer,omitempty"`
	Value    string `json:"value,omitempty"`
}

// NativeAmount builds a native-asset amount from a drops string.
func NativeAmount(drops string) Amount {
	return Amount{Value: drops}
}

// IssuedAmount builds an issued-currency amount.
func IssuedAmount(currency, issuer, value string) Amount {
	return Amount{Currency: currency, Issuer: issuer, Value: value}
}

// IsNative reports whether the amount denominates the native asset.
func (a Amount) IsNative() bool {
	return a.Currency == "" && a.Issuer == ""
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.IsNative() {
		return json.Marshal(a.Value)
	}
	type issued Amount
	return json.Marshal(issued(a))
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var drops string
		if err := json.Unmarshal(data, &drops); err != nil {
			return err
		}
		*a = Amount{Value: drops}
		return nil
	}
	type issued Amount
	var v issued
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// Transaction is the subset of ledger transaction fields this service
// submits: Payment, TrustSet and AccountSet.
type Transaction struct {
	TransactionType    string  `json:"TransactionType"`
	Account            string  `json:"Account"`
	Destination        string  `json:"Destination,omitempty"`
	Amount             *Amount `json:"Amount,omitempty"`
	LimitAmount        *Amount `json:"LimitAmount,omitempty"`
	SetFlag            uint32  `json:"SetFlag,omitempty"`
	Fee                string  `json:"Fee,omitempty"`
	Sequence           uint32  `json:"Sequence,omitempty"`
	LastLedgerSequence uint32  `json:"LastLedgerSequence,omitempty"`
}

// AccountInfo is the read model returned by an account_info query.
type AccountInfo struct {
	Address  string
	Balance  string // drops
	Sequence uint32
	Flags    uint32
}

// asfDefaultRipple is the account flag that lets issued-currency balances
// ripple through the account.
const AccountFlagDefaultRipple uint32 = 8

// lsfDefaultRipple is the corresponding bit in account_info Flags.
const LedgerFlagDefaultRipple uint32 = 0x00800000

// SubmitResult is the terminal outcome of a submitted transaction.
type SubmitResult struct {
	Code string // engine result, e.g. tesSUCCESS
	Hash string
}

// XRPToDrops converts a decimal native-asset amount to drops, truncating
// excess precision. It never rounds up: overspending by a fractional drop
// is worse than undershooting by one.
func XRPToDrops(amount string) (string, error) {
	s := strings.TrimSpace(amount)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return "", fmt.Errorf("invalid amount %q", amount)
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	whole, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	// Keep at most six fractional digits; drop the rest.
	if len(fracPart) > 6 {
		fracPart = fracPart[:6]
	}
	frac := uint64(0)
	if fracPart != "" {
		frac, err = strconv.ParseUint(fracPart, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid amount %q: %w", amount, err)
		}
		for i := len(fracPart); i < 6; i++ {
			frac *= 10
		}
	}

	// Reject amounts whose drops value would not fit in uint64: the
	// multiplication below would wrap around and submit a much smaller
	// amount than requested.
	if whole > (math.MaxUint64-frac)/DropsPerXRP {
		return "", fmt.Errorf("invalid amount %q: exceeds representable drops", amount)
	}

	drops := whole*DropsPerXRP + frac
	return strconv.FormatUint(drops, 10), nil
}

// IsPositiveAmount reports whether s parses as a decimal strictly
// greater than zero.
func IsPositiveAmount(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && v > 0
}
