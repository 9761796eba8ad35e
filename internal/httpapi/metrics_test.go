package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatd/internal/manager"
)

func scrape(t *testing.T, h http.Handler) []byte {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", w.Code)
	}
	return w.Body.Bytes()
}

// TestMetrics_LabelsByRoutePattern ensures requests are labeled by the chi
// route pattern instead of the raw URL path. chi reports "/chat/" without
// its trailing slash.
func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	mux := NewMux(&mockService{chunks: []manager.Chunk{doneChunk}})
	postChat(t, mux, "/chat/?format=ndjson", helloBody, nil)
	body := scrape(t, mux)
	want := []byte(`chatd_http_requests_total{method="POST",path="/chat",status="200"}`)
	if !bytes.Contains(body, want) {
		t.Fatalf("metrics missing chat route: %.400q", body)
	}
	if bytes.Contains(body, []byte("format=ndjson")) {
		t.Fatalf("query string leaked into labels")
	}
}

func TestStatusRecorder_FlushesThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rr, status: http.StatusOK}
	var f http.Flusher = sr
	f.Flush()
	if !rr.Flushed {
		t.Fatalf("flush did not reach the underlying writer")
	}
	sr.WriteHeader(http.StatusTeapot)
	if sr.status != http.StatusTeapot || sr.Unwrap() != rr {
		t.Fatalf("recorder state: %d", sr.status)
	}
}
