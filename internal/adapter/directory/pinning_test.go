package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"xrpl-payroll-gateway/internal/core/domain"
	"xrpl-payroll-gateway/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	dirAddress = "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH"
	dirTag     = "payroll-wallets"
)

// fakePinningAPI emulates the pinning service plus its content gateway
// in one server: pin, unpin, tag-filtered listing, /ipfs retrieval.
type fakePinningAPI struct {
	mu      sync.Mutex
	pins    map[string]pinnedEntry // cid -> entry
	nextCID int
	unpins  []string
}

type pinnedEntry struct {
	content   json.RawMessage
	keyvalues map[string]string
	name      string
}

func newFakePinningAPI() *fakePinningAPI {
	return &fakePinningAPI{pins: make(map[string]pinnedEntry)}
}

func (f *fakePinningAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/pinning/pinJSONToIPFS":
			require.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
			var req struct {
				PinataContent  json.RawMessage `json:"pinataContent"`
				PinataMetadata struct {
					Name      string            `json:"name"`
					Keyvalues map[string]string `json:"keyvalues"`
				} `json:"pinataMetadata"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.nextCID++
			cid := "Qm" + strings.Repeat("x", 10) + string(rune('a'+f.nextCID))
			f.pins[cid] = pinnedEntry{
				content:   req.PinataContent,
				keyvalues: req.PinataMetadata.Keyvalues,
				name:      req.PinataMetadata.Name,
			}
			json.NewEncoder(w).Encode(map[string]string{"IpfsHash": cid})

		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/pinning/unpin/"):
			cid := strings.TrimPrefix(r.URL.Path, "/pinning/unpin/")
			delete(f.pins, cid)
			f.unpins = append(f.unpins, cid)
			w.WriteHeader(http.StatusOK)

		case r.Method == http.MethodGet && r.URL.Path == "/data/pinList":
			rows := []map[string]any{}
			for cid, entry := range f.pins {
				if matchesFilter(r, "tag", entry.keyvalues) && matchesFilter(r, "address", entry.keyvalues) {
					rows = append(rows, map[string]any{
						"ipfs_pin_hash": cid,
						"metadata":      map[string]any{"name": entry.name},
					})
				}
			}
			json.NewEncoder(w).Encode(map[string]any{"rows": rows})

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/ipfs/"):
			cid := strings.TrimPrefix(r.URL.Path, "/ipfs/")
			entry, ok := f.pins[cid]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write(entry.content)

		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func matchesFilter(r *http.Request, key string, keyvalues map[string]string) bool {
	raw := r.URL.Query().Get("metadata[keyvalues][" + key + "]")
	if raw == "" {
		return true
	}
	var filter struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return false
	}
	return keyvalues[key] == filter.Value
}

func newTestDirectory(t *testing.T, cache *mocks.MockDirectoryCache) (*PinningDirectory, *fakePinningAPI) {
	api := newFakePinningAPI()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	var c *PinningDirectory
	if cache != nil {
		c = NewPinningDirectory(srv.URL, srv.URL, "test-api-key", dirTag, srv.Client(), cache, time.Minute, zerolog.Nop())
	} else {
		c = NewPinningDirectory(srv.URL, srv.URL, "test-api-key", dirTag, srv.Client(), nil, time.Minute, zerolog.Nop())
	}
	return c, api
}

func testRecord() *domain.WalletRecord {
	return &domain.WalletRecord{
		Address:     dirAddress,
		DisplayName: "Payroll",
		Secret:      "656e6372797074656420626c6f62",
	}
}

func TestPut_PinsAndReturnsHash(t *testing.T) {
	d, api := newTestDirectory(t, nil)

	cid, err := d.Put(context.Background(), dirAddress, testRecord())
	require.NoError(t, err)
	assert.NotEmpty(t, cid)
	assert.Len(t, api.pins, 1)
}

func TestPut_ReplacementUnpinsPrevious(t *testing.T) {
	d, api := newTestDirectory(t, nil)
	ctx := context.Background()

	first, err := d.Put(ctx, dirAddress, testRecord())
	require.NoError(t, err)

	updated := testRecord()
	updated.DisplayName = "Renamed"
	second, err := d.Put(ctx, dirAddress, updated)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, []string{first}, api.unpins)
	assert.Len(t, api.pins, 1)
}

func TestGet_RoundTrip(t *testing.T) {
	d, _ := newTestDirectory(t, nil)
	ctx := context.Background()

	_, err := d.Put(ctx, dirAddress, testRecord())
	require.NoError(t, err)

	got, err := d.Get(ctx, dirAddress)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Payroll", got.DisplayName)
}

func TestGet_UnknownAddressIsNilNil(t *testing.T) {
	d, _ := newTestDirectory(t, nil)

	got, err := d.Get(context.Background(), dirAddress)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGet_CacheHitSkipsAPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mocks.NewMockDirectoryCache(ctrl)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("cache hit must not reach the API: %s %s", r.Method, r.URL.Path)
	}))
	t.Cleanup(srv.Close)

	d := NewPinningDirectory(srv.URL, srv.URL, "test-api-key", dirTag, srv.Client(), cache, time.Minute, zerolog.Nop())

	cache.EXPECT().GetRecord(gomock.Any(), dirAddress).Return(testRecord(), nil)

	got, err := d.Get(context.Background(), dirAddress)
	require.NoError(t, err)
	assert.Equal(t, "Payroll", got.DisplayName)
}

func TestGet_CacheMissFallsThroughAndBackfills(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mocks.NewMockDirectoryCache(ctrl)
	d, _ := newTestDirectory(t, cache)
	ctx := context.Background()

	cache.EXPECT().SetCID(gomock.Any(), dirAddress, gomock.Any()).Return(nil)
	cache.EXPECT().Invalidate(gomock.Any(), dirAddress).Return(nil)
	_, err := d.Put(ctx, dirAddress, testRecord())
	require.NoError(t, err)

	cache.EXPECT().GetRecord(gomock.Any(), dirAddress).Return(nil, nil)
	cache.EXPECT().SetRecord(gomock.Any(), dirAddress, gomock.Any(), time.Minute).Return(nil)

	got, err := d.Get(ctx, dirAddress)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Payroll", got.DisplayName)
}

func TestList_RecoversHashIndexAcrossInstances(t *testing.T) {
	api := newFakePinningAPI()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	ctx := context.Background()

	first := NewPinningDirectory(srv.URL, srv.URL, "test-api-key", dirTag, srv.Client(), nil, time.Minute, zerolog.Nop())
	cid, err := first.Put(ctx, dirAddress, testRecord())
	require.NoError(t, err)

	// A fresh instance starts with an empty local index and rebuilds it
	// from the tag listing, after which Remove resolves the hash.
	second := NewPinningDirectory(srv.URL, srv.URL, "test-api-key", dirTag, srv.Client(), nil, time.Minute, zerolog.Nop())
	records, err := second.List(ctx, dirTag)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, dirAddress, records[0].Address)

	require.NoError(t, second.Remove(ctx, dirAddress))
	assert.Contains(t, api.unpins, cid)
}

func TestRemove_Unpins(t *testing.T) {
	d, api := newTestDirectory(t, nil)
	ctx := context.Background()

	cid, err := d.Put(ctx, dirAddress, testRecord())
	require.NoError(t, err)

	require.NoError(t, d.Remove(ctx, dirAddress))
	assert.Contains(t, api.unpins, cid)
	assert.Empty(t, api.pins)
}

func TestRemove_UnknownAddressIsNoop(t *testing.T) {
	d, api := newTestDirectory(t, nil)

	require.NoError(t, d.Remove(context.Background(), dirAddress))
	assert.Empty(t, api.unpins)
}
