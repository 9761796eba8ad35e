//go:build !llama

package manager

// No-CGO stub for the llama adapter, compiled when the 'llama' build tag is
// NOT set. The real adapter lives in adapter_llama.go.

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = false

type llamaAdapter struct{}

// NewLlamaAdapter returns an adapter that refuses to load any model.
func NewLlamaAdapter() InferenceAdapter { return llamaAdapter{} }

func (llamaAdapter) Load(string, LoadOptions) (LoadedModel, error) {
	return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
