package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/kvlru/internal/port"
	"github.com/bnema/kvlru/lru"
)

// newTestServer builds a server over a real Synced cache with the eviction
// counter wired the same way the serve command wires it.
func newTestServer(t *testing.T, capacity int) (*Server, *httptest.Server) {
	t.Helper()

	store, err := lru.NewSynced[string, string](capacity)
	require.NoError(t, err)

	stats := NewStats()
	store.OnEvict(func(string, string) {
		stats.RecordEviction()
	})

	srv := New(store, stats, Options{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func doPut(t *testing.T, ts *httptest.Server, key, value string) {
	t.Helper()
	body, err := json.Marshal(PutRequest{Key: key, Value: value})
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/put", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestServer_PutGet(t *testing.T) {
	_, ts := newTestServer(t, 4)

	doPut(t, ts, "a", "1")

	resp, err := http.Get(ts.URL + "/get?key=a")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[GetResponse](t, resp)
	assert.Equal(t, "a", got.Key)
	assert.Equal(t, "1", got.Value)
}

func TestServer_GetMissIs404(t *testing.T) {
	_, ts := newTestServer(t, 4)

	resp, err := http.Get(ts.URL + "/get?key=nope")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	errResp := decode[ErrorResponse](t, resp)
	assert.Equal(t, "key not found", errResp.Error)
}

func TestServer_GetMissingKeyParam(t *testing.T) {
	_, ts := newTestServer(t, 4)

	resp, err := http.Get(ts.URL + "/get")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_PutRejectsBadBody(t *testing.T) {
	_, ts := newTestServer(t, 4)

	resp, err := http.Post(ts.URL+"/put", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := json.Marshal(PutRequest{Key: "", Value: "x"})
	require.NoError(t, err)
	resp, err = http.Post(ts.URL+"/put", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Del(t *testing.T) {
	_, ts := newTestServer(t, 4)

	doPut(t, ts, "a", "1")

	body, err := json.Marshal(DelRequest{Key: "a"})
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/del", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	del := decode[DelResponse](t, resp)
	assert.True(t, del.Deleted)

	// Second delete reports not present
	resp, err = http.Post(ts.URL+"/del", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	del = decode[DelResponse](t, resp)
	assert.False(t, del.Deleted)
}

func TestServer_HasDoesNotRefreshRecency(t *testing.T) {
	_, ts := newTestServer(t, 2)

	doPut(t, ts, "a", "1")
	doPut(t, ts, "b", "2")

	resp, err := http.Get(ts.URL + "/has?key=a")
	require.NoError(t, err)
	has := decode[HasResponse](t, resp)
	assert.True(t, has.Present)

	// "a" was only checked, not touched; it is still the eviction victim
	doPut(t, ts, "c", "3")

	resp, err = http.Get(ts.URL + "/has?key=a")
	require.NoError(t, err)
	has = decode[HasResponse](t, resp)
	assert.False(t, has.Present)
}

func TestServer_LenAndKeys(t *testing.T) {
	_, ts := newTestServer(t, 4)

	doPut(t, ts, "a", "1")
	doPut(t, ts, "b", "2")

	resp, err := http.Get(ts.URL + "/len")
	require.NoError(t, err)
	ln := decode[LenResponse](t, resp)
	assert.Equal(t, 2, ln.Len)
	assert.Equal(t, 4, ln.Cap)

	resp, err = http.Get(ts.URL + "/keys")
	require.NoError(t, err)
	keys := decode[KeysResponse](t, resp)
	assert.Equal(t, []string{"a", "b"}, keys.Keys)
}

func TestServer_KeysEmptyCache(t *testing.T) {
	_, ts := newTestServer(t, 4)

	resp, err := http.Get(ts.URL + "/keys")
	require.NoError(t, err)
	keys := decode[KeysResponse](t, resp)
	assert.NotNil(t, keys.Keys)
	assert.Empty(t, keys.Keys)
}

func TestServer_SnapshotOrder(t *testing.T) {
	_, ts := newTestServer(t, 3)

	doPut(t, ts, "a", "1")
	doPut(t, ts, "b", "2")
	doPut(t, ts, "c", "3")

	// Touch "a" so "b" becomes the oldest
	resp, err := http.Get(ts.URL + "/get?key=a")
	require.NoError(t, err)
	resp.Body.Close()

	doPut(t, ts, "d", "4")

	resp, err = http.Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	snap := decode[SnapshotResponse](t, resp)
	assert.Equal(t, []SnapshotEntry{
		{Key: "c", Value: "3"},
		{Key: "a", Value: "1"},
		{Key: "d", Value: "4"},
	}, snap.Entries)
}

func TestServer_Stats(t *testing.T) {
	_, ts := newTestServer(t, 2)

	doPut(t, ts, "a", "1")
	doPut(t, ts, "b", "2")
	doPut(t, ts, "c", "3") // evicts a

	resp, err := http.Get(ts.URL + "/get?key=b")
	require.NoError(t, err)
	resp.Body.Close()
	resp, err = http.Get(ts.URL + "/get?key=gone")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	stats := decode[StatsSnapshot](t, resp)

	assert.Equal(t, 2, stats.Len)
	assert.Equal(t, 2, stats.Cap)
	assert.Equal(t, int64(3), stats.Puts)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Evictions)
}

func TestServer_Clear(t *testing.T) {
	_, ts := newTestServer(t, 4)

	doPut(t, ts, "a", "1")
	doPut(t, ts, "b", "2")

	resp, err := http.Post(ts.URL+"/clear", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/len")
	require.NoError(t, err)
	ln := decode[LenResponse](t, resp)
	assert.Equal(t, 0, ln.Len)
	assert.Equal(t, 4, ln.Cap)
}

func TestServer_Healthz(t *testing.T) {
	_, ts := newTestServer(t, 2)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_CapacityInvariantUnderLoad(t *testing.T) {
	_, ts := newTestServer(t, 8)

	for i := 0; i < 50; i++ {
		doPut(t, ts, fmt.Sprintf("key-%d", i), "v")
	}

	resp, err := http.Get(ts.URL + "/len")
	require.NoError(t, err)
	ln := decode[LenResponse](t, resp)
	assert.Equal(t, 8, ln.Len)
}

func TestServer_UsesStoreThroughPort(t *testing.T) {
	mock := NewMockStore()
	mock.GetFunc = func(key string) (string, bool) {
		return "mocked", key == "present"
	}

	var store port.Store = mock
	srv := New(store, nil, Options{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/get?key=present")
	require.NoError(t, err)
	got := decode[GetResponse](t, resp)
	assert.Equal(t, "mocked", got.Value)

	body, err := json.Marshal(PutRequest{Key: "k", Value: "v"})
	require.NoError(t, err)
	resp, err = http.Post(ts.URL+"/put", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []string{"present"}, mock.GetCalls)
	require.Len(t, mock.PutCalls, 1)
	assert.Equal(t, "k", mock.PutCalls[0].Key)
	assert.Equal(t, "v", mock.PutCalls[0].Value)
}
