package domain

import "time"

// Identity is a signing keypair derived from a family seed.
// Secret never crosses a serialization boundary unencrypted.
type Identity struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
	Secret    string `json:"-"`
}

// WalletRecord is the persisted metadata for one payroll wallet.
type WalletRecord struct {
	Address     string    `json:"address"`
	DisplayName string    `json:"display_name"`
	Secret      string    `json:"secret,omitempty"` // encrypted before leaving the process
	CreatedAt   time.Time `json:"created_at"`
	LastUsedAt  time.Time `json:"last_used_at"`
}

// Masked returns a copy safe to hand to a view layer: the secret is
// replaced by a fixed placeholder, never a truncation of the real value.
func (w WalletRecord) Masked() WalletRecord {
	out := w
	if out.Secret != "" {
		out.Secret = "••••••••"
	}
	return out
}

// Identity returns the signing identity held inside the record.
func (w WalletRecord) Identity(publicKey string) Identity {
	return Identity{Address: w.Address, PublicKey: publicKey, Secret: w.Secret}
}
