package manager

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"chatd/internal/chat"
	"chatd/internal/common/fsutil"
)

// HandleConfig describes the single model instance owned by a Handle.
type HandleConfig struct {
	ModelPath string
	Options   LoadOptions
	Adapter   InferenceAdapter
	Logger    *zerolog.Logger
	Publisher EventPublisher
}

type handleStatus struct {
	state State
	err   error
	desc  ModelDescriptor
	model LoadedModel
}

// Handle owns the loaded model. It is constructed once at startup and shared
// read-only by every stream after Initialize succeeds.
type Handle struct {
	cfg    HandleConfig
	log    zerolog.Logger
	pub    EventPublisher
	once   sync.Once
	status atomic.Pointer[handleStatus]
}

// NewHandle returns an unloaded Handle.
func NewHandle(cfg HandleConfig) *Handle {
	h := &Handle{cfg: cfg, log: zerolog.Nop(), pub: noopPublisher{}}
	if cfg.Logger != nil {
		h.log = cfg.Logger.With().Str("component", "model").Logger()
	}
	if cfg.Publisher != nil {
		h.pub = cfg.Publisher
	}
	if h.cfg.Options.Template == "" {
		h.cfg.Options.Template = chat.TemplateLlama2
	}
	h.status.Store(&handleStatus{state: StateUnloaded})
	return h
}

// Initialize loads the model exactly once. Concurrent callers block until the
// single load finishes and all observe the same descriptor or error.
func (h *Handle) Initialize() (ModelDescriptor, error) {
	h.once.Do(h.load)
	s := h.status.Load()
	return s.desc, s.err
}

// Describe returns the descriptor when the model is ready. It never blocks.
func (h *Handle) Describe() (ModelDescriptor, bool) {
	s := h.status.Load()
	return s.desc, s.state == StateReady
}

// State returns the current lifecycle state.
func (h *Handle) State() State { return h.status.Load().state }

// Err returns the initialization error, if any.
func (h *Handle) Err() error { return h.status.Load().err }

// Options returns the load options the handle was configured with.
func (h *Handle) Options() LoadOptions { return h.cfg.Options }

// model returns the loaded model, or nil before a successful Initialize.
func (h *Handle) model() LoadedModel {
	s := h.status.Load()
	if s.state != StateReady {
		return nil
	}
	return s.model
}

func (h *Handle) load() {
	start := time.Now()
	path := h.cfg.ModelPath
	h.status.Store(&handleStatus{state: StateLoading})
	h.log.Info().Str("path", path).Int("ctx", h.cfg.Options.ContextSize).Int("threads", h.cfg.Options.Threads).
		Int("gpu_layers", h.cfg.Options.GPULayers).Msg("model_load_start")
	h.pub.Publish(Event{Name: "model_load_start", Fields: map[string]any{"path": path}})

	fail := func(err error) {
		h.status.Store(&handleStatus{state: StateError, err: err})
		h.log.Error().Err(err).Str("path", path).Msg("model_load_failed")
		h.pub.Publish(Event{Name: "model_load_failed", Fields: map[string]any{"path": path, "error": err.Error()}})
	}
	defer func() {
		if r := recover(); r != nil {
			fail(ErrLoadFailure(path, fmt.Errorf("runtime panic: %v", r)))
		}
	}()

	fi, err := checkArtifact(path)
	if err != nil {
		fail(err)
		return
	}
	if h.cfg.Adapter == nil {
		fail(ErrLoadFailure(path, ErrDependencyUnavailable("no inference adapter configured")))
		return
	}
	mdl, err := h.cfg.Adapter.Load(path, h.cfg.Options)
	if err != nil {
		fail(ErrLoadFailure(path, err))
		return
	}
	desc := ModelDescriptor{
		Path:      path,
		Name:      filepath.Base(path),
		SizeBytes: fi.Size(),
		LoadedAt:  time.Now(),
	}
	h.status.Store(&handleStatus{state: StateReady, desc: desc, model: mdl})
	modelSizeBytes.Set(float64(desc.SizeBytes))
	modelLoadSeconds.Set(time.Since(start).Seconds())
	h.log.Info().Str("path", path).Float64("size_mb", sizeMB(desc.SizeBytes)).
		Int64("dur_ms", time.Since(start).Milliseconds()).Msg("model_loaded")
	h.pub.Publish(Event{Name: "model_loaded", Fields: map[string]any{"path": path, "size_bytes": desc.SizeBytes}})
}

// checkArtifact verifies the artifact exists and is a readable regular file.
func checkArtifact(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, ErrModelNotFound("(unspecified)")
	}
	if !fsutil.PathExists(path) {
		return nil, ErrModelNotFound(path)
	}
	fi, err := fsutil.CheckReadable(path)
	if err != nil {
		return nil, ErrLoadFailure(path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, ErrLoadFailure(path, fmt.Errorf("not a regular file"))
	}
	return fi, nil
}

func sizeMB(n int64) float64 {
	return float64(n*100/(1024*1024)) / 100
}
