package manager

import (
	"fmt"
	"time"

	"chatd/pkg/types"
)

// Reporter builds the health/info view of the model and its streams.
type Reporter struct {
	handle   *Handle
	counters *GenerationCounters
	now      func() time.Time
}

// NewReporter returns a Reporter over h and counters.
func NewReporter(h *Handle, counters *GenerationCounters) *Reporter {
	if counters == nil {
		counters = NewGenerationCounters()
	}
	return &Reporter{handle: h, counters: counters, now: time.Now}
}

// Stats never fails. When the model is not ready the status is "unhealthy"
// and Error carries the reason.
func (r *Reporter) Stats() types.ModelStats {
	now := r.now()
	opts := r.handle.Options()
	out := types.ModelStats{
		Status:        "unhealthy",
		State:         string(r.handle.State()),
		ContextWindow: opts.ContextSize,
		Threads:       opts.Threads,
		GPULayers:     opts.GPULayers,
		ChatTemplate:  string(opts.Template),
		Generation:    r.counters.Snapshot(now),
	}
	desc, ok := r.handle.Describe()
	if !ok {
		if err := r.handle.Err(); err != nil {
			out.Error = err.Error()
		} else {
			out.Error = "model not loaded"
		}
		return out
	}
	up := now.Sub(desc.LoadedAt)
	if up < 0 {
		up = 0
	}
	out.Status = "healthy"
	out.Model = &types.ModelInfo{
		Name:      desc.Name,
		Path:      desc.Path,
		SizeBytes: desc.SizeBytes,
		SizeMB:    sizeMB(desc.SizeBytes),
		LoadedAt:  desc.LoadedAt.Unix(),
	}
	out.UptimeSeconds = int64(up / time.Second)
	out.UptimeFormatted = formatUptime(up)
	return out
}

// formatUptime renders d as "Xh Ym Zs".
func formatUptime(d time.Duration) string {
	s := int64(d / time.Second)
	return fmt.Sprintf("%dh %dm %ds", s/3600, (s%3600)/60, s%60)
}
