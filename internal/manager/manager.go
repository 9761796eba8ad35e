package manager

import (
	"context"

	"chatd/internal/chat"
	"chatd/pkg/types"
)

// Manager composes the model Handle, the streaming Bridge and the stats
// Reporter behind the surface the HTTP layer consumes.
type Manager struct {
	handle   *Handle
	bridge   *Bridge
	reporter *Reporter
}

// NewWithConfig constructs a Manager from ManagerConfig. The model is not
// loaded until Initialize is called.
func NewWithConfig(cfg ManagerConfig) (*Manager, error) {
	tmpl, err := chat.ParseTemplate(cfg.ChatTemplate)
	if err != nil {
		return nil, err
	}
	pub := cfg.Publisher
	if pub == nil {
		pub = noopPublisher{}
	}
	h := cfg.Handle
	if h == nil {
		adapter := cfg.Adapter
		if adapter == nil {
			adapter = NewLlamaAdapter()
		}
		h = NewHandle(HandleConfig{
			ModelPath: cfg.ModelPath,
			Options: LoadOptions{
				ContextSize: cfg.ContextSize,
				Threads:     cfg.Threads,
				GPULayers:   cfg.GPULayers,
				Template:    tmpl,
			},
			Adapter:   adapter,
			Logger:    cfg.Logger,
			Publisher: pub,
		})
	}
	counters := NewGenerationCounters()
	m := &Manager{
		handle:   h,
		bridge:   NewBridge(h, cfg.defaults(), counters, cfg.Logger, pub),
		reporter: NewReporter(h, counters),
	}
	return m, nil
}

// Initialize loads the model. It is safe to call more than once.
func (m *Manager) Initialize() (ModelDescriptor, error) { return m.handle.Initialize() }

// Handle returns the underlying model handle.
func (m *Manager) Handle() *Handle { return m.handle }

// Stream starts a generation over conv.
func (m *Manager) Stream(ctx context.Context, conv chat.Conversation, params InferParams) (<-chan Chunk, error) {
	return m.bridge.Stream(ctx, conv, params)
}

// Stats returns the current health/info view.
func (m *Manager) Stats() types.ModelStats { return m.reporter.Stats() }

// Ready reports whether the model is loaded and streams can start.
func (m *Manager) Ready() bool { return m.handle.State() == StateReady }

// Preflight runs the artifact and runtime checks without loading the model.
func (m *Manager) Preflight() []Check { return m.handle.Preflight() }
