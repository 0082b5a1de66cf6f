package xrpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"xrpl-payroll-gateway/internal/core/domain"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks JSON-RPC to a rippled node. It implements
// ports.LedgerGateway.
type Client struct {
	rpcURL       string
	httpClient   HTTPClient
	pollInterval time.Duration
	log          zerolog.Logger
}

// NewClient creates a new rippled JSON-RPC client.
func NewClient(rpcURL string, httpClient HTTPClient, log zerolog.Logger) *Client {
	return &Client{
		rpcURL:       rpcURL,
		httpClient:   httpClient,
		pollInterval: time.Second,
		log:          log,
	}
}

type rpcRequest struct {
	Method string `json:"method"`
	Params []any  `json:"params,omitempty"`
}

// rpcError is a node-level error carried inside an otherwise successful
// HTTP response.
type rpcError struct {
	Method  string
	Code    string
	Message string
}

func (e *rpcError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Method, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Method, e.Code)
}

// call posts one JSON-RPC request and decodes result into out. A
// status=error result comes back as *rpcError.
func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	req := rpcRequest{Method: method}
	if params != nil {
		req.Params = []any{params}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building %s request: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calling %s: node returned HTTP %d", method, resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding %s response: %w", method, err)
	}

	var status struct {
		Status       string `json:"status"`
		Error        string `json:"error"`
		ErrorMessage string `json:"error_message"`
	}
	if err := json.Unmarshal(envelope.Result, &status); err != nil {
		return fmt.Errorf("decoding %s status: %w", method, err)
	}
	if status.Status == "error" {
		return &rpcError{Method: method, Code: status.Error, Message: status.ErrorMessage}
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
	}
	return nil
}

// Connect verifies the node is reachable.
func (c *Client) Connect(ctx context.Context) error {
	var result struct {
		Info struct {
			BuildVersion string `json:"build_version"`
			ServerState  string `json:"server_state"`
		} `json:"info"`
	}
	if err := c.call(ctx, "server_info", nil, &result); err != nil {
		return err
	}
	c.log.Info().
		Str("build_version", result.Info.BuildVersion).
		Str("server_state", result.Info.ServerState).
		Msg("connected to ledger node")
	return nil
}

// Close is a no-op for the HTTP transport.
func (c *Client) Close(ctx context.Context) error {
	return nil
}

// AccountInfo fetches the account root from the current ledger.
func (c *Client) AccountInfo(ctx context.Context, address string) (*domain.AccountInfo, error) {
	var result struct {
		AccountData struct {
			Account  string `json:"Account"`
			Balance  string `json:"Balance"`
			Sequence uint32 `json:"Sequence"`
			Flags    uint32 `json:"Flags"`
		} `json:"account_data"`
	}
	params := map[string]any{"account": address, "ledger_index": "current"}
	if err := c.call(ctx, "account_info", params, &result); err != nil {
		return nil, err
	}
	return &domain.AccountInfo{
		Address:  result.AccountData.Account,
		Balance:  result.AccountData.Balance,
		Sequence: result.AccountData.Sequence,
		Flags:    result.AccountData.Flags,
	}, nil
}

// AccountLines lists the account's trust lines. In the node's response
// "account" on each line names the peer, which for an issued-currency
// line is the issuer.
func (c *Client) AccountLines(ctx context.Context, address string) ([]domain.TrustLine, error) {
	var result struct {
		Lines []struct {
			Account  string `json:"account"`
			Balance  string `json:"balance"`
			Currency string `json:"currency"`
			Limit    string `json:"limit"`
		} `json:"lines"`
	}
	params := map[string]any{"account": address, "ledger_index": "current"}
	if err := c.call(ctx, "account_lines", params, &result); err != nil {
		return nil, err
	}

	lines := make([]domain.TrustLine, 0, len(result.Lines))
	for _, l := range result.Lines {
		lines = append(lines, domain.TrustLine{
			Account:  address,
			Issuer:   l.Account,
			Currency: l.Currency,
			Balance:  l.Balance,
			Limit:    l.Limit,
		})
	}
	return lines, nil
}

// Fee returns the open-ledger fee in drops.
func (c *Client) Fee(ctx context.Context) (string, error) {
	var result struct {
		Drops struct {
			OpenLedgerFee string `json:"open_ledger_fee"`
		} `json:"drops"`
	}
	if err := c.call(ctx, "fee", nil, &result); err != nil {
		return "", err
	}
	return result.Drops.OpenLedgerFee, nil
}

// LedgerCurrentIndex returns the index of the open ledger.
func (c *Client) LedgerCurrentIndex(ctx context.Context) (uint32, error) {
	var result struct {
		LedgerCurrentIndex uint32 `json:"ledger_current_index"`
	}
	if err := c.call(ctx, "ledger_current", nil, &result); err != nil {
		return 0, err
	}
	return result.LedgerCurrentIndex, nil
}

// SubmitAndWait submits a signed blob and blocks until the transaction
// is validated or its LastLedgerSequence window closes. Local rejections
// (tem, tef, tel classes) are terminal immediately and skip the wait.
func (c *Client) SubmitAndWait(ctx context.Context, signedBlob string) (*domain.SubmitResult, error) {
	var submitted struct {
		EngineResult string `json:"engine_result"`
		TxJSON       struct {
			Hash               string `json:"hash"`
			LastLedgerSequence uint32 `json:"LastLedgerSequence"`
		} `json:"tx_json"`
	}
	if err := c.call(ctx, "submit", map[string]any{"tx_blob": signedBlob}, &submitted); err != nil {
		return nil, err
	}

	code := submitted.EngineResult
	hash := submitted.TxJSON.Hash
	if !provisional(code) {
		return &domain.SubmitResult{Code: code, Hash: hash}, nil
	}

	c.log.Debug().
		Str("tx_hash", hash).
		Str("engine_result", code).
		Uint32("last_ledger", submitted.TxJSON.LastLedgerSequence).
		Msg("transaction submitted, awaiting validation")

	return c.waitValidated(ctx, hash, submitted.TxJSON.LastLedgerSequence)
}

// provisional reports whether an engine result can still change once the
// ledger closes. tes, tec and ter class results are preliminary until
// the transaction appears in a validated ledger.
func provisional(code string) bool {
	return strings.HasPrefix(code, "tes") ||
		strings.HasPrefix(code, "tec") ||
		strings.HasPrefix(code, "ter")
}

func (c *Client) waitValidated(ctx context.Context, hash string, lastLedger uint32) (*domain.SubmitResult, error) {
	for {
		var result struct {
			Validated bool `json:"validated"`
			Meta      struct {
				TransactionResult string `json:"TransactionResult"`
			} `json:"meta"`
		}
		err := c.call(ctx, "tx", map[string]any{"transaction": hash}, &result)
		switch {
		case err == nil && result.Validated:
			return &domain.SubmitResult{Code: result.Meta.TransactionResult, Hash: hash}, nil
		case err != nil && !isTxnNotFound(err):
			return nil, err
		}

		// Not validated yet. Expiry closes the window for good: a ledger
		// past LastLedgerSequence can never include this transaction.
		current, err := c.LedgerCurrentIndex(ctx)
		if err != nil {
			return nil, err
		}
		if current > lastLedger {
			return nil, fmt.Errorf("transaction %s expired unvalidated at ledger %d", hash, current)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

func isTxnNotFound(err error) bool {
	rpcErr, ok := err.(*rpcError)
	return ok && rpcErr.Code == "txnNotFound"
}
