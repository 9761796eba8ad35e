package manager

import (
	"github.com/rs/zerolog"
)

// Generation defaults applied when ManagerConfig.Defaults leaves them unset.
const (
	defaultTemperature   = 0.7
	defaultMaxTokens     = 1024
	defaultTopP          = 0.95
	defaultTopK          = 40
	defaultRepeatPenalty = 1.1
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	ModelPath    string
	ContextSize  int
	Threads      int
	GPULayers    int
	ChatTemplate string
	// Defaults are the generation parameters requests override field by field.
	Defaults InferParams

	// Adapter defaults to the in-process llama adapter.
	Adapter   InferenceAdapter
	Logger    *zerolog.Logger
	Publisher EventPublisher
	// Handle, when set, is used instead of building one from the fields above.
	Handle *Handle
}

func (c ManagerConfig) defaults() InferParams {
	base := InferParams{
		Temperature:   Float(defaultTemperature),
		MaxTokens:     defaultMaxTokens,
		TopP:          Float(defaultTopP),
		TopK:          defaultTopK,
		RepeatPenalty: Float(defaultRepeatPenalty),
	}
	return base.merge(c.Defaults)
}
