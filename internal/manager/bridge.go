package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chatd/internal/chat"
)

type streamIDKey struct{}

// WithStreamID attaches a caller-chosen stream id to ctx. Stream uses it for
// logs, events and counters instead of generating one.
func WithStreamID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, streamIDKey{}, id)
}

// StreamIDFrom returns the stream id attached to ctx, if any.
func StreamIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(streamIDKey{}).(string)
	return id, ok && id != ""
}

// Bridge turns the blocking token pull of a LoadedModel into an asynchronous
// chunk stream. It holds no per-stream state; every call to Stream is
// independent.
type Bridge struct {
	handle   *Handle
	defaults InferParams
	counters *GenerationCounters
	log      zerolog.Logger
	pub      EventPublisher
	now      func() time.Time
}

// NewBridge wires a Bridge to a Handle. counters, logger and pub may be nil.
func NewBridge(h *Handle, defaults InferParams, counters *GenerationCounters, logger *zerolog.Logger, pub EventPublisher) *Bridge {
	b := &Bridge{
		handle:   h,
		defaults: defaults,
		counters: counters,
		log:      zerolog.Nop(),
		pub:      noopPublisher{},
		now:      time.Now,
	}
	if b.counters == nil {
		b.counters = NewGenerationCounters()
	}
	if logger != nil {
		b.log = logger.With().Str("component", "bridge").Logger()
	}
	if pub != nil {
		b.pub = pub
	}
	return b
}

// Stream starts one generation over conv and returns its chunks. The channel
// yields zero or more ChunkText values followed by ChunkDone; a failure yields
// exactly one ChunkError before ChunkDone. When ctx is canceled the channel is
// closed without further chunks.
func (b *Bridge) Stream(ctx context.Context, conv chat.Conversation, params InferParams) (<-chan Chunk, error) {
	if conv.Empty() {
		return nil, ErrEmptyConversation()
	}
	mdl := b.handle.model()
	if mdl == nil {
		return nil, ErrDependencyUnavailable("model not loaded")
	}
	id, ok := StreamIDFrom(ctx)
	if !ok {
		id = uuid.NewString()
	}
	p := b.defaults.merge(params)
	out := make(chan Chunk)
	go b.run(ctx, id, mdl, conv, p, out)
	return out, nil
}

func (b *Bridge) run(ctx context.Context, id string, mdl LoadedModel, conv chat.Conversation, p InferParams, out chan<- Chunk) {
	sc := b.counters.begin(id, b.now())
	generationInflight.Inc()
	log := b.log.With().Str("stream_id", id).Logger()
	log.Info().Int("messages", conv.Len()).Int("max_tokens", p.MaxTokens).
		Float32("temperature", floatOr(p.Temperature, 0)).Msg("stream_start")
	b.pub.Publish(Event{Name: "stream_start", StreamID: id, Fields: map[string]any{"messages": conv.Len()}})

	outcome := OutcomeDone
	var failure error

	defer close(out)
	defer func() {
		chunks, elapsed := sc.finish(outcome, b.now())
		generationInflight.Dec()
		generationStreamsTotal.WithLabelValues(string(outcome)).Inc()
		generationDuration.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
		name := "stream_" + string(outcome)
		ev := log.Info()
		switch outcome {
		case OutcomeError:
			ev = log.Error().Err(failure)
		case OutcomeCanceled:
			ev = log.Warn()
		}
		ev.Int("chunks", chunks).Int64("dur_ms", elapsed.Milliseconds()).Msg(name)
		fields := map[string]any{"chunks": chunks, "dur_ms": elapsed.Milliseconds()}
		if failure != nil {
			fields["error"] = failure.Error()
		}
		b.pub.Publish(Event{Name: name, StreamID: id, Fields: fields})
	}()
	defer func() {
		if r := recover(); r != nil {
			failure = generationFailureError{fmt.Errorf("runtime panic: %v", r)}
			outcome = fail(ctx, out, failure)
		}
	}()

	ts, err := mdl.Generate(ctx, conv, p)
	if err != nil {
		if ctx.Err() != nil {
			outcome = OutcomeCanceled
			return
		}
		failure = generationFailureError{err}
		outcome = fail(ctx, out, failure)
		return
	}
	defer ts.Close()

	for {
		if ctx.Err() != nil {
			outcome = OutcomeCanceled
			return
		}
		delta, err := ts.Next(ctx)
		if errors.Is(err, io.EOF) {
			if !send(ctx, out, Chunk{Kind: ChunkDone}) {
				outcome = OutcomeCanceled
			}
			return
		}
		if err != nil {
			if ctx.Err() != nil {
				outcome = OutcomeCanceled
				return
			}
			failure = generationFailureError{err}
			outcome = fail(ctx, out, failure)
			return
		}
		if delta == "" {
			continue
		}
		if !send(ctx, out, Chunk{Kind: ChunkText, Text: delta}) {
			outcome = OutcomeCanceled
			return
		}
		sc.chunk()
		generationChunksTotal.Inc()
	}
}

// fail emits the error chunk and the terminating done chunk.
func fail(ctx context.Context, out chan<- Chunk, err error) Outcome {
	if !send(ctx, out, Chunk{Kind: ChunkError, Err: err.Error()}) {
		return OutcomeCanceled
	}
	if !send(ctx, out, Chunk{Kind: ChunkDone}) {
		return OutcomeCanceled
	}
	return OutcomeError
}

// send delivers c unless ctx is done first.
func send(ctx context.Context, out chan<- Chunk, c Chunk) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case out <- c:
		return true
	case <-ctx.Done():
		return false
	}
}
