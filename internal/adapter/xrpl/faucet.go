package xrpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Faucet requests test-network funding over the faucet HTTP API. It
// implements ports.FaucetClient.
type Faucet struct {
	url        string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewFaucet creates a new faucet client.
func NewFaucet(url string, httpClient HTTPClient, log zerolog.Logger) *Faucet {
	return &Faucet{url: url, httpClient: httpClient, log: log}
}

// Fund asks the faucet to send starter funds to address.
func (f *Faucet) Fund(ctx context.Context, address string) error {
	body, err := json.Marshal(map[string]string{"destination": address})
	if err != nil {
		return fmt.Errorf("encoding faucet request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building faucet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling faucet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("faucet returned HTTP %d", resp.StatusCode)
	}

	f.log.Info().Str("address", address).Msg("faucet funding requested")
	return nil
}
