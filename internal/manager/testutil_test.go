package manager

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chatd/internal/chat"
)

// createModelFile creates a small artifact file and returns its path.
func createModelFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("GGUF fake model"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return p
}

// fakeAdapter is a lightweight in-memory runtime used for tests.
type fakeAdapter struct {
	loadDelay time.Duration
	loadErr   error
	loadPanic bool

	tokens []string
	genErr error
	// nextErr is returned by the pull at index failAt.
	failAt  int
	nextErr error
	// block, when set, parks each pull after the tokens run out until it is
	// closed or the pull's context is done.
	block       chan struct{}
	panicOnNext bool

	loads       atomic.Int32
	generations atomic.Int32
	pulls       atomic.Int32
	closes      atomic.Int32

	mu         sync.Mutex
	lastParams InferParams
	lastConv   chat.Conversation
}

func (f *fakeAdapter) Load(modelPath string, opts LoadOptions) (LoadedModel, error) {
	f.loads.Add(1)
	if f.loadDelay > 0 {
		time.Sleep(f.loadDelay)
	}
	if f.loadPanic {
		panic("boom")
	}
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return fakeModel{f: f}, nil
}

type fakeModel struct{ f *fakeAdapter }

func (m fakeModel) Generate(ctx context.Context, conv chat.Conversation, params InferParams) (TokenStream, error) {
	m.f.generations.Add(1)
	m.f.mu.Lock()
	m.f.lastParams = params
	m.f.lastConv = conv
	m.f.mu.Unlock()
	if m.f.genErr != nil {
		return nil, m.f.genErr
	}
	return &fakeStream{f: m.f}, nil
}

type fakeStream struct {
	f *fakeAdapter
	i int
}

func (s *fakeStream) Next(ctx context.Context) (string, error) {
	s.f.pulls.Add(1)
	if s.f.panicOnNext {
		panic("runtime exploded")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.f.nextErr != nil && s.i == s.f.failAt {
		return "", s.f.nextErr
	}
	if s.i < len(s.f.tokens) {
		tok := s.f.tokens[s.i]
		s.i++
		return tok, nil
	}
	if s.f.block != nil {
		select {
		case <-s.f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", io.EOF
}

func (s *fakeStream) Close() error {
	s.f.closes.Add(1)
	return nil
}

func (f *fakeAdapter) params() InferParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastParams
}

// readyHandle returns a Handle over f that has been initialized successfully.
func readyHandle(t *testing.T, f *fakeAdapter) *Handle {
	t.Helper()
	p := createModelFile(t, t.TempDir(), "test.gguf")
	h := NewHandle(HandleConfig{ModelPath: p, Adapter: f, Options: LoadOptions{ContextSize: 2048, Threads: 4}})
	if _, err := h.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return h
}

// collect drains ch until it is closed.
func collect(t *testing.T, ch <-chan Chunk) []Chunk {
	t.Helper()
	out, err := drain(ch, 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

// drain reads ch until it closes. It is safe to call off the test goroutine.
func drain(ch <-chan Chunk, d time.Duration) ([]Chunk, error) {
	var out []Chunk
	timeout := time.After(d)
	for {
		select {
		case c, ok := <-ch:
			if !ok {
				return out, nil
			}
			out = append(out, c)
		case <-timeout:
			return out, fmt.Errorf("stream did not close; got %v so far", out)
		}
	}
}

func userConv(text string) chat.Conversation {
	return chat.NewConversation(chat.Message{Role: chat.RoleUser, Content: text})
}

// testCtx returns a context with a short timeout, canceled on test cleanup.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return c
}
