package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"xrpl-payroll-gateway/internal/core/domain"
	"xrpl-payroll-gateway/internal/core/ports"
)

// fakeLedger is an in-memory stand-in for a ledger node. It hands out
// account state from its maps and accepts every well-formed submission,
// recording what it saw so tests can assert on it.
type fakeLedger struct {
	mu          sync.Mutex
	accounts    map[string]*domain.AccountInfo
	lines       map[string][]domain.TrustLine
	fee         string
	ledgerIndex uint32
	resultCode  string // engine result for every submission

	submitted   []domain.Transaction
	submitDelay time.Duration

	// per-sender in-flight tracking for serialization assertions
	inFlight    map[string]int
	maxInFlight map[string]int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		accounts:    make(map[string]*domain.AccountInfo),
		lines:       make(map[string][]domain.TrustLine),
		fee:         "12",
		ledgerIndex: 1000,
		resultCode:  "tesSUCCESS",
		inFlight:    make(map[string]int),
		maxInFlight: make(map[string]int),
	}
}

func (f *fakeLedger) addAccount(address string, sequence uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[address] = &domain.AccountInfo{Address: address, Balance: "100000000", Sequence: sequence}
}

func (f *fakeLedger) addTrustLine(account, issuer, currency string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines[account] = append(f.lines[account], domain.TrustLine{
		Account:  account,
		Issuer:   issuer,
		Currency: currency,
		Balance:  "0",
		Limit:    "1000000000",
	})
}

func (f *fakeLedger) submissions() []domain.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Transaction, len(f.submitted))
	copy(out, f.submitted)
	return out
}

func (f *fakeLedger) maxConcurrent(address string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight[address]
}

func (f *fakeLedger) Connect(ctx context.Context) error { return nil }
func (f *fakeLedger) Close(ctx context.Context) error   { return nil }

func (f *fakeLedger) AccountInfo(ctx context.Context, address string) (*domain.AccountInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.accounts[address]
	if !ok {
		return nil, fmt.Errorf("account %s not found", address)
	}
	cp := *info
	return &cp, nil
}

func (f *fakeLedger) AccountLines(ctx context.Context, address string) ([]domain.TrustLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[address]; !ok {
		return nil, fmt.Errorf("account %s not found", address)
	}
	return append([]domain.TrustLine(nil), f.lines[address]...), nil
}

func (f *fakeLedger) Fee(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fee, nil
}

func (f *fakeLedger) LedgerCurrentIndex(ctx context.Context) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ledgerIndex, nil
}

// SubmitAndWait decodes the blob produced by fakeKeys and accepts it
// with the configured result code, bumping the sender's sequence the
// way a validated transaction would.
func (f *fakeLedger) SubmitAndWait(ctx context.Context, signedBlob string) (*domain.SubmitResult, error) {
	var tx domain.Transaction
	if err := json.Unmarshal([]byte(signedBlob), &tx); err != nil {
		return nil, fmt.Errorf("malformed blob: %w", err)
	}

	f.mu.Lock()
	f.inFlight[tx.Account]++
	if f.inFlight[tx.Account] > f.maxInFlight[tx.Account] {
		f.maxInFlight[tx.Account] = f.inFlight[tx.Account]
	}
	delay := f.submitDelay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight[tx.Account]--
	f.submitted = append(f.submitted, tx)
	if info, ok := f.accounts[tx.Account]; ok {
		info.Sequence++
	}
	hash := fmt.Sprintf("FAKE%08X", len(f.submitted))
	return &domain.SubmitResult{Code: f.resultCode, Hash: hash}, nil
}

// fakeKeys maps family seeds to fixed identities and "signs" by
// serializing the prepared transaction, so fakeLedger can decode it.
type fakeKeys struct {
	mu        sync.Mutex
	bySecret  map[string]domain.Identity
	generated []domain.Identity
}

func newFakeKeys(identities ...domain.Identity) *fakeKeys {
	k := &fakeKeys{bySecret: make(map[string]domain.Identity)}
	for _, id := range identities {
		k.bySecret[id.Secret] = id
	}
	return k
}

func (k *fakeKeys) FromSecret(secret string) (*domain.Identity, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	id, ok := k.bySecret[secret]
	if !ok {
		return nil, fmt.Errorf("unknown seed")
	}
	cp := id
	return &cp, nil
}

func (k *fakeKeys) Generate() (*domain.Identity, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.generated) == 0 {
		return nil, fmt.Errorf("no generated identities configured")
	}
	id := k.generated[0]
	k.generated = k.generated[1:]
	k.bySecret[id.Secret] = id
	cp := id
	return &cp, nil
}

func (k *fakeKeys) Sign(ctx context.Context, tx *domain.Transaction, identity *domain.Identity) (string, error) {
	if identity.Secret == "" {
		return "", fmt.Errorf("identity has no secret")
	}
	blob, err := json.Marshal(tx)
	if err != nil {
		return "", err
	}
	return string(blob), nil
}

// fakeDirectory is an in-memory AccountDirectory.
type fakeDirectory struct {
	mu      sync.Mutex
	records map[string]domain.WalletRecord
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{records: make(map[string]domain.WalletRecord)}
}

func (d *fakeDirectory) Put(ctx context.Context, address string, record *domain.WalletRecord) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[address] = *record
	return "Qm" + address, nil
}

func (d *fakeDirectory) Get(ctx context.Context, address string) (*domain.WalletRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.records[address]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (d *fakeDirectory) List(ctx context.Context, tag string) ([]domain.WalletRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.WalletRecord, 0, len(d.records))
	for _, r := range d.records {
		out = append(out, r)
	}
	return out, nil
}

func (d *fakeDirectory) Remove(ctx context.Context, address string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.records, address)
	return nil
}

// fakePaymentLog is an in-memory PaymentLogRepository.
type fakePaymentLog struct {
	mu      sync.Mutex
	entries []ports.PaymentLogEntry
}

func newFakePaymentLog() *fakePaymentLog {
	return &fakePaymentLog{}
}

func (r *fakePaymentLog) Create(ctx context.Context, entry *ports.PaymentLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakePaymentLog) ListBySender(ctx context.Context, sender string, limit int) ([]ports.PaymentLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []ports.PaymentLogEntry{}
	// newest first, like the SQL repository
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].Sender == sender {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}
