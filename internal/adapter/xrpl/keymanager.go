package xrpl

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"math/big"
	"strings"

	"xrpl-payroll-gateway/internal/core/domain"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // ledger address format mandates RIPEMD-160
)

const rippleAlphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

// Version prefixes for the base58check payloads the ledger uses.
var (
	prefixAccountID   = []byte{0x00}
	prefixSeedEd25519 = []byte{0x01, 0xe1, 0x4b} // renders as "sEd"
)

// KeyManager derives ed25519 identities locally and delegates signing
// to the node's sign method, which owns the canonical binary
// serialization. It implements ports.KeyManager and must only ever be
// pointed at a trusted node: the sign call carries the seed.
type KeyManager struct {
	client *Client
}

// NewKeyManager creates a new KeyManager backed by client.
func NewKeyManager(client *Client) *KeyManager {
	return &KeyManager{client: client}
}

// FromSecret derives an identity from an ed25519 family seed.
func (k *KeyManager) FromSecret(secret string) (*domain.Identity, error) {
	entropy, err := decodeSeed(secret)
	if err != nil {
		return nil, err
	}
	return identityFromEntropy(entropy, secret)
}

// Generate creates a fresh identity from random entropy.
func (k *KeyManager) Generate() (*domain.Identity, error) {
	entropy := make([]byte, 16)
	if _, err := rand.Read(entropy); err != nil {
		return nil, fmt.Errorf("generating seed entropy: %w", err)
	}
	seed := base58CheckEncode(prefixSeedEd25519, entropy)
	return identityFromEntropy(entropy, seed)
}

// Sign asks the node to serialize and sign a prepared transaction,
// returning the signed blob.
func (k *KeyManager) Sign(ctx context.Context, tx *domain.Transaction, identity *domain.Identity) (string, error) {
	var result struct {
		TxBlob string `json:"tx_blob"`
	}
	params := map[string]any{
		"secret":  identity.Secret,
		"tx_json": tx,
		"offline": false,
	}
	if err := k.client.call(ctx, "sign", params, &result); err != nil {
		return "", fmt.Errorf("signing %s for %s: %w", tx.TransactionType, identity.Address, err)
	}
	return result.TxBlob, nil
}

func identityFromEntropy(entropy []byte, seed string) (*domain.Identity, error) {
	// The ed25519 private key is the first half of SHA-512 over the
	// seed entropy.
	digest := sha512.Sum512(entropy)
	priv := ed25519.NewKeyFromSeed(digest[:32])
	pub := priv.Public().(ed25519.PublicKey)

	// On-ledger public keys carry a one-byte 0xED marker for ed25519.
	marked := append([]byte{0xed}, pub...)

	return &domain.Identity{
		Address:   addressFromPublicKey(marked),
		PublicKey: strings.ToUpper(fmt.Sprintf("%x", marked)),
		Secret:    seed,
	}, nil
}

// addressFromPublicKey computes the classic address:
// base58check(0x00 || RIPEMD160(SHA256(pubkey))).
func addressFromPublicKey(marked []byte) string {
	sha := sha256.Sum256(marked)
	rip := ripemd160.New()
	rip.Write(sha[:])
	return base58CheckEncode(prefixAccountID, rip.Sum(nil))
}

// decodeSeed strips the base58check envelope from a family seed and
// returns the 16 bytes of entropy.
func decodeSeed(seed string) ([]byte, error) {
	payload, err := base58CheckDecode(seed)
	if err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	if len(payload) != len(prefixSeedEd25519)+16 {
		return nil, fmt.Errorf("decoding seed: unexpected payload length %d", len(payload))
	}
	for i, b := range prefixSeedEd25519 {
		if payload[i] != b {
			return nil, fmt.Errorf("decoding seed: not an ed25519 seed")
		}
	}
	return payload[len(prefixSeedEd25519):], nil
}

func base58CheckEncode(prefix, payload []byte) string {
	body := append(append([]byte{}, prefix...), payload...)
	first := sha256.Sum256(body)
	second := sha256.Sum256(first[:])
	return base58Encode(append(body, second[:4]...))
}

func base58CheckDecode(s string) ([]byte, error) {
	raw, err := base58Decode(s)
	if err != nil {
		return nil, err
	}
	if len(raw) < 5 {
		return nil, fmt.Errorf("input too short")
	}
	body, check := raw[:len(raw)-4], raw[len(raw)-4:]
	first := sha256.Sum256(body)
	second := sha256.Sum256(first[:])
	for i := 0; i < 4; i++ {
		if check[i] != second[i] {
			return nil, fmt.Errorf("checksum mismatch")
		}
	}
	return body, nil
}

func base58Encode(input []byte) string {
	num := new(big.Int).SetBytes(input)
	base := big.NewInt(58)
	mod := new(big.Int)

	var out []byte
	for num.Sign() > 0 {
		num.DivMod(num, base, mod)
		out = append(out, rippleAlphabet[mod.Int64()])
	}
	// Leading zero bytes map to the alphabet's zero character.
	for _, b := range input {
		if b != 0 {
			break
		}
		out = append(out, rippleAlphabet[0])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

func base58Decode(s string) ([]byte, error) {
	num := big.NewInt(0)
	base := big.NewInt(58)
	for _, r := range s {
		idx := strings.IndexRune(rippleAlphabet, r)
		if idx < 0 {
			return nil, fmt.Errorf("invalid base58 character %q", r)
		}
		num.Mul(num, base)
		num.Add(num, big.NewInt(int64(idx)))
	}
	decoded := num.Bytes()

	// Restore leading zero bytes.
	var leading int
	for _, r := range s {
		if byte(r) != rippleAlphabet[0] {
			break
		}
		leading++
	}
	out := make([]byte, leading+len(decoded))
	copy(out[leading:], decoded)
	return out, nil
}
