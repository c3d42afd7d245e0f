package server

import (
	"encoding/json"
	"net/http"

	"github.com/bnema/kvlru/internal/logging"
)

// Wire shapes shared with the CLI client.
type (
	// PutRequest is the JSON payload for POST /put.
	PutRequest struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	// DelRequest is the JSON payload for POST /del.
	DelRequest struct {
		Key string `json:"key"`
	}

	// GetResponse is returned by GET /get on a hit.
	GetResponse struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	// HasResponse is returned by GET /has.
	HasResponse struct {
		Key     string `json:"key"`
		Present bool   `json:"present"`
	}

	// LenResponse is returned by GET /len.
	LenResponse struct {
		Len int `json:"len"`
		Cap int `json:"cap"`
	}

	// KeysResponse is returned by GET /keys, keys ordered oldest to newest.
	KeysResponse struct {
		Keys []string `json:"keys"`
	}

	// SnapshotEntry is one element of a SnapshotResponse.
	SnapshotEntry struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	// SnapshotResponse is returned by GET /snapshot, oldest to newest.
	SnapshotResponse struct {
		Entries []SnapshotEntry `json:"entries"`
	}

	// DelResponse is returned by POST /del.
	DelResponse struct {
		Deleted bool `json:"deleted"`
	}

	// ErrorResponse carries a non-2xx error message.
	ErrorResponse struct {
		Error string `json:"error"`
	}
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGet serves a lookup. A miss is an ordinary outcome reported as 404,
// never a server error.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing key parameter")
		return
	}

	value, ok := s.store.Get(key)
	if !ok {
		s.stats.RecordMiss()
		writeError(w, http.StatusNotFound, "key not found")
		return
	}

	s.stats.RecordHit()
	writeJSON(w, http.StatusOK, GetResponse{Key: key, Value: value})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	var req PutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "missing key")
		return
	}

	s.store.Put(req.Key, req.Value)
	s.stats.RecordPut()

	logging.FromContext(r.Context()).Debug().Str("key", req.Key).Msg("put")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDel(w http.ResponseWriter, r *http.Request) {
	var req DelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "missing key")
		return
	}

	deleted := s.store.Remove(req.Key)
	writeJSON(w, http.StatusOK, DelResponse{Deleted: deleted})
}

// handleClear empties the store. Cleared entries do not count as evictions.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.store.Clear()
	logging.FromContext(r.Context()).Info().Msg("cache cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleHas is an existence check with no recency side effect.
func (s *Server) handleHas(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing key parameter")
		return
	}
	writeJSON(w, http.StatusOK, HasResponse{Key: key, Present: s.store.Contains(key)})
}

func (s *Server) handleLen(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, LenResponse{Len: s.store.Len(), Cap: s.store.Cap()})
}

func (s *Server) handleKeys(w http.ResponseWriter, _ *http.Request) {
	keys := s.store.Keys()
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, KeysResponse{Keys: keys})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	entries := make([]SnapshotEntry, 0, len(snap))
	for _, e := range snap {
		entries = append(entries, SnapshotEntry{Key: e.Key, Value: e.Value})
	}
	writeJSON(w, http.StatusOK, SnapshotResponse{Entries: entries})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	snap := s.stats.Snapshot()
	snap.Len = s.store.Len()
	snap.Cap = s.store.Cap()
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
