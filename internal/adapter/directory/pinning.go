package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"xrpl-payroll-gateway/internal/core/domain"
	"xrpl-payroll-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// PinningDirectory implements ports.AccountDirectory on top of a
// Pinata-compatible pinning API. Records are pinned as JSON under a
// deployment tag; the content hash of each address is retained locally
// and in the cache so records can be unpinned and replaced. The tag
// index on the API side makes hashes recoverable after a restart.
type PinningDirectory struct {
	baseURL    string
	gatewayURL string
	apiKey     string
	tag        string
	httpClient HTTPClient
	cache      ports.DirectoryCache // nil = no cache layer
	cacheTTL   time.Duration
	log        zerolog.Logger

	mu   sync.RWMutex
	cids map[string]string // address -> pinned content hash
}

// NewPinningDirectory creates a new PinningDirectory.
func NewPinningDirectory(
	baseURL, gatewayURL, apiKey, tag string,
	httpClient HTTPClient,
	cache ports.DirectoryCache,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *PinningDirectory {
	return &PinningDirectory{
		baseURL:    baseURL,
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		tag:        tag,
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
		log:        log,
		cids:       make(map[string]string),
	}
}

type pinRequest struct {
	PinataContent  *domain.WalletRecord `json:"pinataContent"`
	PinataMetadata pinMetadata          `json:"pinataMetadata"`
}

type pinMetadata struct {
	Name      string            `json:"name"`
	Keyvalues map[string]string `json:"keyvalues"`
}

// Put pins the record, replacing a previous pin for the same address.
func (d *PinningDirectory) Put(ctx context.Context, address string, record *domain.WalletRecord) (string, error) {
	body, err := json.Marshal(pinRequest{
		PinataContent: record,
		PinataMetadata: pinMetadata{
			Name:      address,
			Keyvalues: map[string]string{"tag": d.tag, "address": address},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding pin request: %w", err)
	}

	var result struct {
		IpfsHash string `json:"IpfsHash"`
	}
	if err := d.do(ctx, http.MethodPost, d.baseURL+"/pinning/pinJSONToIPFS", body, &result); err != nil {
		return "", err
	}

	d.mu.Lock()
	previous := d.cids[address]
	d.cids[address] = result.IpfsHash
	d.mu.Unlock()

	if previous != "" && previous != result.IpfsHash {
		if err := d.unpin(ctx, previous); err != nil {
			d.log.Warn().Err(err).Str("address", address).Str("cid", previous).Msg("failed to unpin replaced record")
		}
	}

	if d.cache != nil {
		if err := d.cache.SetCID(ctx, address, result.IpfsHash); err != nil {
			d.log.Warn().Err(err).Str("address", address).Msg("failed to cache content hash")
		}
		if err := d.cache.Invalidate(ctx, address); err != nil {
			d.log.Warn().Err(err).Str("address", address).Msg("failed to invalidate cached record")
		}
	}

	return result.IpfsHash, nil
}

// Get fetches the record for address, cache first. A missing record is
// (nil, nil).
func (d *PinningDirectory) Get(ctx context.Context, address string) (*domain.WalletRecord, error) {
	if d.cache != nil {
		if record, err := d.cache.GetRecord(ctx, address); err == nil && record != nil {
			return record, nil
		}
	}

	cid, err := d.resolveCID(ctx, address)
	if err != nil {
		return nil, err
	}
	if cid == "" {
		return nil, nil
	}

	record, err := d.fetch(ctx, cid)
	if err != nil {
		return nil, err
	}

	if d.cache != nil && record != nil {
		if err := d.cache.SetRecord(ctx, address, record, d.cacheTTL); err != nil {
			d.log.Warn().Err(err).Str("address", address).Msg("failed to cache record")
		}
	}
	return record, nil
}

// List fetches every record pinned under tag, rebuilding the local
// hash index as a side effect. This is how a fresh process recovers
// records pinned by a previous one.
func (d *PinningDirectory) List(ctx context.Context, tag string) ([]domain.WalletRecord, error) {
	query := url.Values{}
	query.Set("status", "pinned")
	query.Set("metadata[keyvalues][tag]", fmt.Sprintf(`{"value":%q,"op":"eq"}`, tag))

	var result struct {
		Rows []struct {
			IpfsPinHash string `json:"ipfs_pin_hash"`
			Metadata    struct {
				Name string `json:"name"`
			} `json:"metadata"`
		} `json:"rows"`
	}
	if err := d.do(ctx, http.MethodGet, d.baseURL+"/data/pinList?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}

	records := make([]domain.WalletRecord, 0, len(result.Rows))
	for _, row := range result.Rows {
		record, err := d.fetch(ctx, row.IpfsPinHash)
		if err != nil {
			d.log.Warn().Err(err).Str("cid", row.IpfsPinHash).Msg("skipping unreadable pinned record")
			continue
		}
		d.mu.Lock()
		d.cids[row.Metadata.Name] = row.IpfsPinHash
		d.mu.Unlock()
		records = append(records, *record)
	}
	return records, nil
}

// Remove unpins the record for address.
func (d *PinningDirectory) Remove(ctx context.Context, address string) error {
	cid, err := d.resolveCID(ctx, address)
	if err != nil {
		return err
	}
	if cid == "" {
		return nil
	}

	if err := d.unpin(ctx, cid); err != nil {
		return err
	}

	d.mu.Lock()
	delete(d.cids, address)
	d.mu.Unlock()

	if d.cache != nil {
		if err := d.cache.Invalidate(ctx, address); err != nil {
			d.log.Warn().Err(err).Str("address", address).Msg("failed to invalidate cached record")
		}
	}
	return nil
}

// resolveCID finds the pinned hash for address: local index, then
// cache, then the API's tag index.
func (d *PinningDirectory) resolveCID(ctx context.Context, address string) (string, error) {
	d.mu.RLock()
	cid := d.cids[address]
	d.mu.RUnlock()
	if cid != "" {
		return cid, nil
	}

	if d.cache != nil {
		if cached, err := d.cache.GetCID(ctx, address); err == nil && cached != "" {
			d.mu.Lock()
			d.cids[address] = cached
			d.mu.Unlock()
			return cached, nil
		}
	}

	query := url.Values{}
	query.Set("status", "pinned")
	query.Set("metadata[keyvalues][address]", fmt.Sprintf(`{"value":%q,"op":"eq"}`, address))

	var result struct {
		Rows []struct {
			IpfsPinHash string `json:"ipfs_pin_hash"`
		} `json:"rows"`
	}
	if err := d.do(ctx, http.MethodGet, d.baseURL+"/data/pinList?"+query.Encode(), nil, &result); err != nil {
		return "", err
	}
	if len(result.Rows) == 0 {
		return "", nil
	}

	cid = result.Rows[0].IpfsPinHash
	d.mu.Lock()
	d.cids[address] = cid
	d.mu.Unlock()
	return cid, nil
}

func (d *PinningDirectory) fetch(ctx context.Context, cid string) (*domain.WalletRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.gatewayURL+"/ipfs/"+cid, nil)
	if err != nil {
		return nil, fmt.Errorf("building content request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching pinned content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content gateway returned HTTP %d", resp.StatusCode)
	}

	var record domain.WalletRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding pinned record: %w", err)
	}
	return &record, nil
}

func (d *PinningDirectory) unpin(ctx context.Context, cid string) error {
	return d.do(ctx, http.MethodDelete, d.baseURL+"/pinning/unpin/"+cid, nil, nil)
}

func (d *PinningDirectory) do(ctx context.Context, method, rawURL string, body []byte, out any) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("building pinning request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling pinning service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("pinning service returned HTTP %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding pinning response: %w", err)
		}
	}
	return nil
}
