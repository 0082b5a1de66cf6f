package xrpl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"xrpl-payroll-gateway/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcHandler dispatches on the JSON-RPC method name so one test server
// can answer a whole conversation.
func rpcHandler(t *testing.T, handlers map[string]func(params map[string]any) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string           `json:"method"`
			Params []map[string]any `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		h, ok := handlers[req.Method]
		require.True(t, ok, "unexpected method %q", req.Method)

		var params map[string]any
		if len(req.Params) > 0 {
			params = req.Params[0]
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"result": h(params)}))
	}
}

func newTestClient(t *testing.T, handlers map[string]func(params map[string]any) any) (*Client, *httptest.Server) {
	srv := httptest.NewServer(rpcHandler(t, handlers))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())
	c.pollInterval = time.Millisecond
	return c, srv
}

func TestAccountInfo(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(map[string]any) any{
		"account_info": func(params map[string]any) any {
			assert.Equal(t, "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH", params["account"])
			return map[string]any{
				"status": "success",
				"account_data": map[string]any{
					"Account":  "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH",
					"Balance":  "25000000",
					"Sequence": 17,
					"Flags":    8388608,
				},
			}
		},
	})

	info, err := c.AccountInfo(context.Background(), "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH")
	require.NoError(t, err)
	assert.Equal(t, "25000000", info.Balance)
	assert.Equal(t, uint32(17), info.Sequence)
	assert.NotZero(t, info.Flags&domain.LedgerFlagDefaultRipple)
}

func TestAccountInfo_NotFound(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(map[string]any) any{
		"account_info": func(map[string]any) any {
			return map[string]any{
				"status":        "error",
				"error":         "actNotFound",
				"error_message": "Account not found.",
			}
		},
	})

	_, err := c.AccountInfo(context.Background(), "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actNotFound")
}

func TestAccountLines_PeerBecomesIssuer(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(map[string]any) any{
		"account_lines": func(map[string]any) any {
			return map[string]any{
				"status": "success",
				"lines": []map[string]any{
					{"account": "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe", "balance": "150", "currency": "USD", "limit": "1000000000"},
				},
			}
		},
	})

	lines, err := c.AccountLines(context.Background(), "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH", lines[0].Account)
	assert.Equal(t, "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe", lines[0].Issuer)
	assert.True(t, lines[0].Matches("rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe", "USD"))
}

func TestFee(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(map[string]any) any{
		"fee": func(map[string]any) any {
			return map[string]any{
				"status": "success",
				"drops":  map[string]any{"open_ledger_fee": "12"},
			}
		},
	})

	fee, err := c.Fee(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12", fee)
}

func TestLedgerCurrentIndex(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(map[string]any) any{
		"ledger_current": func(map[string]any) any {
			return map[string]any{"status": "success", "ledger_current_index": 7654321}
		},
	})

	idx, err := c.LedgerCurrentIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(7654321), idx)
}

func TestSubmitAndWait_LocalRejectionIsTerminal(t *testing.T) {
	var txCalls int
	c, _ := newTestClient(t, map[string]func(map[string]any) any{
		"submit": func(map[string]any) any {
			return map[string]any{
				"status":        "success",
				"engine_result": "temBAD_FEE",
				"tx_json":       map[string]any{"hash": "AAA", "LastLedgerSequence": 100},
			}
		},
		"tx": func(map[string]any) any {
			txCalls++
			return map[string]any{"status": "success"}
		},
	})

	res, err := c.SubmitAndWait(context.Background(), "BLOB")
	require.NoError(t, err)
	assert.Equal(t, "temBAD_FEE", res.Code)
	assert.Zero(t, txCalls, "a local rejection must not be polled for")
}

func TestSubmitAndWait_ValidatesAfterPolling(t *testing.T) {
	var txCalls int
	c, _ := newTestClient(t, map[string]func(map[string]any) any{
		"submit": func(params map[string]any) any {
			assert.Equal(t, "BLOB", params["tx_blob"])
			return map[string]any{
				"status":        "success",
				"engine_result": "tesSUCCESS",
				"tx_json":       map[string]any{"hash": "AAA", "LastLedgerSequence": 100},
			}
		},
		"tx": func(map[string]any) any {
			txCalls++
			if txCalls < 3 {
				return map[string]any{"status": "error", "error": "txnNotFound"}
			}
			return map[string]any{
				"status":    "success",
				"validated": true,
				"meta":      map[string]any{"TransactionResult": "tesSUCCESS"},
			}
		},
		"ledger_current": func(map[string]any) any {
			return map[string]any{"status": "success", "ledger_current_index": 90}
		},
	})

	res, err := c.SubmitAndWait(context.Background(), "BLOB")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultSuccess, res.Code)
	assert.Equal(t, "AAA", res.Hash)
	assert.Equal(t, 3, txCalls)
}

func TestSubmitAndWait_ExpiresPastLastLedger(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(map[string]any) any{
		"submit": func(map[string]any) any {
			return map[string]any{
				"status":        "success",
				"engine_result": "terQUEUED",
				"tx_json":       map[string]any{"hash": "AAA", "LastLedgerSequence": 100},
			}
		},
		"tx": func(map[string]any) any {
			return map[string]any{"status": "error", "error": "txnNotFound"}
		},
		"ledger_current": func(map[string]any) any {
			return map[string]any{"status": "success", "ledger_current_index": 101}
		},
	})

	_, err := c.SubmitAndWait(context.Background(), "BLOB")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestConnect_NodeDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())
	err := c.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
