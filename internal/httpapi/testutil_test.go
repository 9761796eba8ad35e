package httpapi

import (
	"context"
	"sync"

	"chatd/internal/chat"
	"chatd/internal/manager"
	"chatd/pkg/types"
)

type mockService struct {
	chunks    []manager.Chunk
	streamErr error
	ready     bool
	stats     types.ModelStats
	// hold, when set, keeps the stream open after chunks until ctx is done.
	hold bool

	mu       sync.Mutex
	conv     chat.Conversation
	params   manager.InferParams
	streamID string
	ctxDone  chan struct{}
}

func (m *mockService) Stats() types.ModelStats { return m.stats }
func (m *mockService) Ready() bool             { return m.ready }

func (m *mockService) Stream(ctx context.Context, conv chat.Conversation, params manager.InferParams) (<-chan manager.Chunk, error) {
	m.mu.Lock()
	m.conv = conv
	m.params = params
	m.streamID, _ = manager.StreamIDFrom(ctx)
	m.ctxDone = make(chan struct{})
	done := m.ctxDone
	m.mu.Unlock()
	if m.streamErr != nil {
		return nil, m.streamErr
	}
	out := make(chan manager.Chunk)
	go func() {
		defer close(out)
		for _, c := range m.chunks {
			select {
			case out <- c:
			case <-ctx.Done():
				close(done)
				return
			}
		}
		if m.hold {
			<-ctx.Done()
			close(done)
		}
	}()
	return out, nil
}

func text(s string) manager.Chunk { return manager.Chunk{Kind: manager.ChunkText, Text: s} }

var doneChunk = manager.Chunk{Kind: manager.ChunkDone}

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }
