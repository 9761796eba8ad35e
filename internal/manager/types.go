package manager

import "time"

// State represents the lifecycle state of the model handle.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateError    State = "error"
)

// ModelDescriptor is the immutable description of the loaded model.
type ModelDescriptor struct {
	Path      string
	Name      string
	SizeBytes int64
	LoadedAt  time.Time
}

// ChunkKind tags a Chunk.
type ChunkKind int

const (
	// ChunkText carries a non-empty text delta.
	ChunkText ChunkKind = iota
	// ChunkError carries a human-readable failure; a ChunkDone follows it.
	ChunkError
	// ChunkDone terminates the stream.
	ChunkDone
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkText:
		return "text"
	case ChunkError:
		return "error"
	case ChunkDone:
		return "done"
	default:
		return "unknown"
	}
}

// Chunk is one element of a generation stream.
type Chunk struct {
	Kind ChunkKind
	Text string
	Err  string
}

// Outcome is how a stream ended.
type Outcome string

const (
	OutcomeDone     Outcome = "done"
	OutcomeError    Outcome = "error"
	OutcomeCanceled Outcome = "canceled"
)
