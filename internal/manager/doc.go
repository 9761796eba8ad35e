// Package manager owns the loaded model and coordinates streaming generation.
// It is structured into small files by concern:
//
//   - handle.go: Handle, the one-shot model load and its descriptor.
//   - bridge.go: Bridge, which runs the blocking token pull on a worker
//     goroutine and exposes it as a chunk channel.
//   - stats.go, counters.go: Reporter and the live generation counters.
//   - manager.go, config.go: the Manager facade used by the HTTP layer.
//   - errors.go: error types and helpers (IsModelNotFound, IsLoadFailure, ...).
//   - events.go, eventpub_memory.go: lifecycle event publishing.
//   - preflight.go: artifact and runtime checks used by `chatd check`.
//
// Build tags and runtimes:
//
//   - In-process llama (standard):
//     Uses the go-llama.cpp adapter. Enabled with `-tags=llama`.
//     Files: adapter_llama.go, llama_cgo.go (linker rpath hints).
//     A no-CGO stub exists when the tag is not set: adapter_llama_stub.go.
//
// External packages should treat this package as the orchestration layer and use
// public methods only (NewWithConfig, Initialize, Stream, Stats, Ready).
package manager
