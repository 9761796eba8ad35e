package manager

import (
	"context"

	"chatd/internal/chat"
)

// InferenceAdapter abstracts the model runtime used by the Handle.
// Concrete implementations (e.g., llama.cpp) should satisfy this interface.
type InferenceAdapter interface {
	// Load maps the model artifact and allocates its compute context. It is
	// called at most once per Handle.
	Load(modelPath string, opts LoadOptions) (LoadedModel, error)
}

// LoadedModel is a model resident in memory for the process lifetime.
type LoadedModel interface {
	// Generate starts one generation run over the full conversation and
	// returns the pull side of its output.
	Generate(ctx context.Context, conv chat.Conversation, params InferParams) (TokenStream, error)
}

// TokenStream is a blocking, pull-based sequence of text deltas.
type TokenStream interface {
	// Next blocks until the next delta is ready. It returns io.EOF once
	// generation has ended and ctx.Err() when ctx is done first.
	Next(ctx context.Context) (string, error)
	// Close stops generation at the next token boundary and releases the run.
	Close() error
}

// LoadOptions are read once when the model is loaded.
type LoadOptions struct {
	ContextSize int
	Threads     int
	// GPULayers is the number of layers to offload; negative offloads all.
	GPULayers int
	Template  chat.Template
}

// InferParams captures generation parameters passed to the adapter.
// Nil floats are unset, so an explicit 0 temperature selects greedy decoding.
type InferParams struct {
	Temperature   *float32
	TopP          *float32
	TopK          int
	MaxTokens     int
	Stop          []string
	Seed          int
	RepeatPenalty *float32
}

// Float returns a pointer to v for the optional InferParams fields.
func Float(v float32) *float32 { return &v }

// floatOr returns *v, or def when v is unset.
func floatOr(v *float32, def float32) float32 {
	if v == nil {
		return def
	}
	return *v
}

// merge returns p with every set field of o applied on top.
func (p InferParams) merge(o InferParams) InferParams {
	if o.Temperature != nil {
		p.Temperature = o.Temperature
	}
	if o.TopP != nil {
		p.TopP = o.TopP
	}
	if o.TopK > 0 {
		p.TopK = o.TopK
	}
	if o.MaxTokens > 0 {
		p.MaxTokens = o.MaxTokens
	}
	if o.Seed != 0 {
		p.Seed = o.Seed
	}
	if o.RepeatPenalty != nil {
		p.RepeatPenalty = o.RepeatPenalty
	}
	if len(o.Stop) > 0 {
		p.Stop = append(append([]string(nil), p.Stop...), o.Stop...)
	}
	return p
}
