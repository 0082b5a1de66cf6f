package domain

// TrustLine is ledger state: permission for Account to hold Currency
// issued by Issuer, up to Limit. Keyed by (Account, Issuer, Currency).
type TrustLine struct {
	Account  string `json:"account"`
	Issuer   string `json:"issuer"`
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
	Limit    string `json:"limit"`
}

// Matches reports whether the line covers the given issuer/currency pair.
func (l TrustLine) Matches(issuer, currency string) bool {
	return l.Issuer == issuer && l.Currency == currency
}
