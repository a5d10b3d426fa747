package samidb

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeAPI is an in-process SamiDB API recording every request it serves.
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string // "METHOD /path"
	catalog  any
}

// defaultCatalog mirrors the shape of the live endpoint listing.
var defaultCatalog = []string{
	"GET,OPTIONS,HEAD /v1/endpoints",
	"GET,OPTIONS,HEAD /v1/img/<blush,bonk,boop,cry,cuddle,grouphug,hug,kiss,lick,nom,pat,slap,smile,nuggies,corn>",
	"GET,OPTIONS,HEAD /v1/raw",
	"POST,OPTIONS,HEAD /v1/upload",
}

func newFakeAPI(t *testing.T, catalog any) *fakeAPI {
	t.Helper()

	api := &fakeAPI{catalog: catalog}
	api.Server = httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.requests = append(a.requests, r.Method+" "+r.URL.Path)
	a.mu.Unlock()

	path := r.URL.Path
	switch {
	case path == "/v1/endpoints" || path == "/v2/endpoints":
		writeJSON(w, a.catalog)
	case strings.HasPrefix(path, "/v1/img/"):
		sub := strings.TrimPrefix(path, "/v1/img/")
		if sub == "missing" {
			http.Error(w, "no such subtype", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]string{"url": "https://cdn.samidb.xyz/" + sub + "/1.gif"})
	case path == "/v1/raw":
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("plain payload"))
	case path == "/v1/upload" && r.Method == http.MethodPost:
		writeJSON(w, map[string]bool{"ok": true})
	case path == "/v1/foo" || path == "/v2/foo":
		writeJSON(w, map[string]string{"url": "https://cdn.samidb.xyz" + path})
	default:
		http.NotFound(w, r)
	}
}

func (a *fakeAPI) Requests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.requests...)
}

func (a *fakeAPI) catalogHits() int {
	n := 0
	for _, r := range a.Requests() {
		if strings.HasSuffix(r, "/endpoints") {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
