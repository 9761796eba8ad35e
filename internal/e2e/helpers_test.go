package e2e

import (
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"chatd/internal/chat"
	"chatd/internal/httpapi"
	"chatd/internal/manager"
)

// scriptedAdapter replays a fixed token sequence for every generation.
// With hold set, each stream parks after its tokens until its context ends.
type scriptedAdapter struct {
	tokens []string
	hold   bool

	canceled atomic.Int32
	closed   atomic.Int32
}

func (a *scriptedAdapter) Load(string, manager.LoadOptions) (manager.LoadedModel, error) {
	return a, nil
}

func (a *scriptedAdapter) Generate(ctx context.Context, conv chat.Conversation, _ manager.InferParams) (manager.TokenStream, error) {
	return &scriptedStream{a: a}, nil
}

type scriptedStream struct {
	a *scriptedAdapter
	i int
}

func (s *scriptedStream) Next(ctx context.Context) (string, error) {
	if s.i < len(s.a.tokens) {
		s.i++
		return s.a.tokens[s.i-1], nil
	}
	if s.a.hold {
		<-ctx.Done()
		s.a.canceled.Add(1)
		return "", ctx.Err()
	}
	return "", io.EOF
}

func (s *scriptedStream) Close() error {
	s.a.closed.Add(1)
	return nil
}

// newServer wires a Manager over a to the HTTP API. When initialize is false
// the model is left unloaded.
func newServer(t *testing.T, a manager.InferenceAdapter, initialize bool) (*httptest.Server, *manager.Manager) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tiny.gguf")
	if err := os.WriteFile(p, []byte("GGUF"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	mgr, err := manager.NewWithConfig(manager.ManagerConfig{
		ModelPath:   p,
		ContextSize: 512,
		Threads:     1,
		Adapter:     a,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if initialize {
		if _, err := mgr.Initialize(); err != nil {
			t.Fatalf("initialize: %v", err)
		}
	}
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv, mgr
}
