//go:build llama

package manager

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	llama "github.com/go-skynet/go-llama.cpp"

	"chatd/internal/chat"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// allGPULayers is passed to llama.cpp when every layer should be offloaded.
const allGPULayers = 999

type llamaAdapter struct{}

// NewLlamaAdapter returns the in-process go-llama.cpp adapter.
func NewLlamaAdapter() InferenceAdapter { return llamaAdapter{} }

// llamaModel owns the loaded model. llama.cpp keeps a single context per
// model, so Predict calls are serialized through slot.
type llamaModel struct {
	model   *llama.LLama
	threads int
	tmpl    chat.Template
	slot    chan struct{}
}

func (llamaAdapter) Load(modelPath string, opts LoadOptions) (LoadedModel, error) {
	if strings.TrimSpace(modelPath) == "" {
		return nil, errors.New("model path is empty")
	}
	gpu := opts.GPULayers
	if gpu < 0 {
		gpu = allGPULayers
	}
	m, err := llama.New(modelPath,
		llama.SetContext(zn(opts.ContextSize, 2048)),
		llama.SetGPULayers(gpu),
	)
	if err != nil {
		return nil, err
	}
	return &llamaModel{model: m, threads: opts.Threads, tmpl: opts.Template, slot: make(chan struct{}, 1)}, nil
}

func (m *llamaModel) Generate(ctx context.Context, conv chat.Conversation, params InferParams) (TokenStream, error) {
	if m.model == nil {
		return nil, errors.New("llama model not initialized")
	}
	params.Stop = append(append([]string(nil), params.Stop...), m.tmpl.StopWords()...)
	s := &llamaStream{
		tokens: make(chan string),
		done:   make(chan struct{}),
		stop:   make(chan struct{}),
	}
	go m.predict(ctx, s, m.tmpl.Render(conv), params)
	return s, nil
}

// predict pushes tokens from the llama callback into s until generation ends,
// the stream is closed or ctx is done.
func (m *llamaModel) predict(ctx context.Context, s *llamaStream, prompt string, params InferParams) {
	defer close(s.done)
	select {
	case m.slot <- struct{}{}:
	case <-s.stop:
		return
	case <-ctx.Done():
		s.err = ctx.Err()
		return
	}
	defer func() { <-m.slot }()

	m.model.SetTokenCallback(func(tok string) bool {
		select {
		case s.tokens <- tok:
			return true
		case <-s.stop:
			return false
		case <-ctx.Done():
			return false
		}
	})
	if _, err := m.model.Predict(prompt, mapInferParamsToPredictOptions(params, m.threads)...); err != nil {
		if ctx.Err() != nil {
			s.err = ctx.Err()
			return
		}
		s.err = err
	}
}

type llamaStream struct {
	tokens    chan string
	done      chan struct{}
	stop      chan struct{}
	err       error // written before done is closed
	closeOnce sync.Once
}

func (s *llamaStream) Next(ctx context.Context) (string, error) {
	select {
	case tok := <-s.tokens:
		return tok, nil
	case <-s.done:
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *llamaStream) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	return nil
}

// helpers
func zn(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
func zf(v *float32, def float32) float32 {
	if v != nil && *v >= 0 {
		return *v
	}
	return def
}

// mapInferParamsToPredictOptions converts our adapter params into go-llama.cpp options
func mapInferParamsToPredictOptions(params InferParams, threads int) []llama.PredictOption {
	po := []llama.PredictOption{
		llama.SetTokens(max(1, params.MaxTokens)),
		llama.SetThreads(max(1, threads)),
		llama.SetTopP(zf(params.TopP, llama.DefaultOptions.TopP)),
		llama.SetTopK(zn(params.TopK, llama.DefaultOptions.TopK)),
		llama.SetTemperature(zf(params.Temperature, llama.DefaultOptions.Temperature)),
		llama.SetPenalty(zf(params.RepeatPenalty, llama.DefaultOptions.Penalty)),
	}
	if params.Seed != 0 {
		po = append(po, llama.SetSeed(params.Seed))
	}
	if len(params.Stop) > 0 {
		po = append(po, llama.SetStopWords(params.Stop...))
	}
	return po
}
