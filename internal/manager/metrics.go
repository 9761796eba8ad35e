package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	generationStreamsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatd",
			Subsystem: "generation",
			Name:      "streams_total",
			Help:      "Total number of finished generation streams by outcome",
		},
		[]string{"outcome"},
	)

	generationChunksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chatd",
			Subsystem: "generation",
			Name:      "chunks_total",
			Help:      "Total number of text chunks delivered to streams",
		},
	)

	generationInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "chatd",
			Subsystem: "generation",
			Name:      "inflight_streams",
			Help:      "Generation streams currently running",
		},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chatd",
			Subsystem: "generation",
			Name:      "stream_duration_seconds",
			Help:      "Wall-clock duration of generation streams",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"outcome"},
	)

	modelSizeBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "chatd",
			Subsystem: "model",
			Name:      "size_bytes",
			Help:      "Size of the loaded model artifact",
		},
	)

	modelLoadSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "chatd",
			Subsystem: "model",
			Name:      "load_seconds",
			Help:      "Time spent loading the model",
		},
	)
)

func init() {
	prometheus.MustRegister(
		generationStreamsTotal,
		generationChunksTotal,
		generationInflight,
		generationDuration,
		modelSizeBytes,
		modelLoadSeconds,
	)
}
