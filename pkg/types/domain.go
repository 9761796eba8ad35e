package types

// ModelInfo describes the loaded model artifact.
type ModelInfo struct {
	// File name of the model artifact.
	// example: llama-2-7b-chat.gguf
	Name string `json:"model_name" example:"llama-2-7b-chat.gguf"`
	// Absolute path to the model file on disk.
	// example: /app/models/llama-2-7b-chat.gguf
	Path string `json:"path" example:"/app/models/llama-2-7b-chat.gguf"`
	// Size of the artifact in bytes.
	// example: 4081004224
	SizeBytes int64 `json:"size_bytes" example:"4081004224"`
	// Size of the artifact in MiB, rounded to two decimals.
	// example: 3891.91
	SizeMB float64 `json:"size_mb" example:"3891.91"`
	// Load time (unix seconds).
	// example: 1700000000
	LoadedAt int64 `json:"loaded_at_unix" example:"1700000000"`
}

// StreamStats summarizes one generation stream.
type StreamStats struct {
	// example: 0b6f0f5e-3c57-4c38-9d0e-3f7e3a4c2a10
	ID string `json:"id" example:"0b6f0f5e-3c57-4c38-9d0e-3f7e3a4c2a10"`
	// Non-empty text chunks emitted so far.
	// example: 42
	Chunks int `json:"chunks" example:"42"`
	// Elapsed time in milliseconds (running total while in flight).
	// example: 1830
	DurationMS int64 `json:"duration_ms" example:"1830"`
	// True while the stream is still generating.
	InFlight bool `json:"in_flight"`
	// done, error or canceled once finished; empty while in flight.
	// example: done
	Outcome string `json:"outcome,omitempty" example:"done"`
}

// GenerationStats aggregates generation counters since startup.
type GenerationStats struct {
	// example: 12
	StreamsTotal uint64 `json:"streams_total" example:"12"`
	// example: 3400
	ChunksTotal uint64 `json:"chunks_total" example:"3400"`
	// example: 1
	InflightStreams int `json:"inflight_streams" example:"1"`
	// Most recently started stream, if any.
	LastStream *StreamStats `json:"last_stream,omitempty"`
}

// ModelStats is the health/info view of the model and its generation activity.
type ModelStats struct {
	// healthy or unhealthy.
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// Lifecycle state of the model handle (unloaded, loading, ready, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Populated when the model is not usable.
	Error string     `json:"error,omitempty"`
	Model *ModelInfo `json:"model_info,omitempty"`
	// example: 2048
	ContextWindow int `json:"context_window" example:"2048"`
	// example: 8
	Threads int `json:"threads" example:"8"`
	// example: -1
	GPULayers int `json:"gpu_layers" example:"-1"`
	// example: llama2
	ChatTemplate string `json:"chat_template" example:"llama2"`
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// example: 1h 0m 0s
	UptimeFormatted string          `json:"uptime_formatted" example:"1h 0m 0s"`
	Generation      GenerationStats `json:"generation"`
}
