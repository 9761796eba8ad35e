package manager

import (
	"sync"
	"time"

	"chatd/pkg/types"
)

// GenerationCounters holds live generation counters shared by the Bridge
// (writer) and the Reporter (reader).
type GenerationCounters struct {
	mu           sync.Mutex
	streamsTotal uint64
	chunksTotal  uint64
	inflight     int
	last         *streamCounter
}

// NewGenerationCounters returns zeroed counters.
func NewGenerationCounters() *GenerationCounters { return &GenerationCounters{} }

type streamCounter struct {
	c       *GenerationCounters
	id      string
	started time.Time
	chunks  int
	elapsed time.Duration
	done    bool
	outcome Outcome
}

func (c *GenerationCounters) begin(id string, now time.Time) *streamCounter {
	s := &streamCounter{c: c, id: id, started: now}
	c.mu.Lock()
	c.streamsTotal++
	c.inflight++
	c.last = s
	c.mu.Unlock()
	return s
}

func (s *streamCounter) chunk() {
	s.c.mu.Lock()
	s.chunks++
	s.c.chunksTotal++
	s.c.mu.Unlock()
}

func (s *streamCounter) finish(outcome Outcome, now time.Time) (chunks int, elapsed time.Duration) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if s.done {
		return s.chunks, s.elapsed
	}
	s.done = true
	s.outcome = outcome
	s.elapsed = now.Sub(s.started)
	s.c.inflight--
	return s.chunks, s.elapsed
}

// Snapshot returns the counters as of now.
func (c *GenerationCounters) Snapshot(now time.Time) types.GenerationStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := types.GenerationStats{
		StreamsTotal:    c.streamsTotal,
		ChunksTotal:     c.chunksTotal,
		InflightStreams: c.inflight,
	}
	if s := c.last; s != nil {
		ls := &types.StreamStats{ID: s.id, Chunks: s.chunks, InFlight: !s.done}
		if s.done {
			ls.DurationMS = s.elapsed.Milliseconds()
			ls.Outcome = string(s.outcome)
		} else {
			ls.DurationMS = now.Sub(s.started).Milliseconds()
		}
		out.LastStream = ls
	}
	return out
}
