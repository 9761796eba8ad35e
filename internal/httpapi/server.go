package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chatd/internal/chat"
	"chatd/internal/manager"
	"chatd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Stream(ctx context.Context, conv chat.Conversation, params manager.InferParams) (<-chan manager.Chunk, error)
	Stats() types.ModelStats
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, metrics, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints; event streams are left alone
	r.Use(middleware.Compress(5, "application/json"))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(corsOptions()))
	}

	r.Get("/", handleRoot)

	chatHandler := handleChat(svc)
	r.Post("/chat", chatHandler)
	r.Post("/chat/", chatHandler)

	r.Get("/chat/model-info", handleModelInfo(svc))

	healthHandler := handleHealth(svc)
	r.Get("/health", healthHandler)
	r.Get("/health/", healthHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

func corsOptions() cors.Options {
	methods := corsAllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	headers := corsAllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type", "Accept", "X-Log-Level"}
	}
	return cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
		ExposedHeaders: []string{"X-Stream-ID"},
		MaxAge:         300,
	}
}

// handleRoot greets the caller and points at the API docs.
//
// @Summary      Welcome
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the chatd API. Go to /swagger/index.html for documentation.",
	})
}

// handleModelInfo returns the model statistics.
//
// @Summary      Model information
// @Tags         chat
// @Produce      json
// @Success      200  {object}  types.ModelInfoResponse
// @Router       /chat/model-info [get]
func handleModelInfo(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ModelInfoResponse{Status: "success", Data: svc.Stats()})
	}
}

// handleChat streams a reply to the posted conversation.
//
// @Summary      Stream a chat reply
// @Description  Streams generated text as server-sent events (default) or NDJSON.
// @Tags         chat
// @Accept       json
// @Produce      text/event-stream
// @Produce      application/x-ndjson
// @Param        request  body      types.ChatRequest  true  "Conversation"
// @Param        format   query     string             false "Set to ndjson for newline-delimited JSON"
// @Success      200      {string}  string             "event stream"
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      422      {object}  types.ErrorResponse
// @Failure      503      {object}  types.ErrorResponse
// @Router       /chat/ [post]
func handleChat(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lvl := requestLogLevel(r)
		// Content-Type check
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		// Limit body size (configurable, default 1MiB)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// Oversized bodies surface here as well; report 400 without size details
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		conv, err := chat.Normalize(req.Messages)
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			logChatEnd(r, lvl, statusFor(err), start, "", err)
			return
		}

		streamID := uuid.NewString()
		streamCtx, cancel := streamContext(r)
		defer cancel()
		ch, err := svc.Stream(manager.WithStreamID(streamCtx, streamID), conv, paramsFrom(req))
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			logChatEnd(r, lvl, statusFor(err), start, streamID, err)
			return
		}
		if lvl >= LevelInfo {
			z := zlog.Info().Str("path", r.URL.Path).Str("stream_id", streamID).Int("messages", conv.Len())
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("chat start")
		}

		flush := func() {}
		if f, ok := w.(http.Flusher); ok {
			flush = f.Flush
		}
		writer := io.Writer(w)
		if lvl >= LevelDebug {
			writer = io.MultiWriter(w, &loggingLineWriter{streamID: streamID})
		}
		var fw frameWriter
		h := w.Header()
		if wantsNDJSON(r) {
			h.Set("Content-Type", "application/x-ndjson")
			fw = newNDJSONWriter(writer, flush)
		} else {
			h.Set("Content-Type", "text/event-stream")
			h.Set("Connection", "keep-alive")
			h.Set("X-Accel-Buffering", "no")
			fw = &sseWriter{w: writer, flush: flush, id: streamID}
		}
		h.Set("Cache-Control", "no-cache")
		h.Set("X-Stream-ID", streamID)
		w.WriteHeader(http.StatusOK)
		flush()

		var werr error
		for c := range ch {
			if werr != nil {
				continue
			}
			switch c.Kind {
			case manager.ChunkText:
				werr = fw.text(c.Text)
			case manager.ChunkError:
				werr = fw.fail(c.Err)
			case manager.ChunkDone:
				werr = fw.done()
			}
			if werr != nil {
				// client gone; stop the worker and drain until it closes the channel
				cancel()
			}
		}
		logChatEnd(r, lvl, http.StatusOK, start, streamID, werr)
	}
}

func paramsFrom(req types.ChatRequest) manager.InferParams {
	p := manager.InferParams{
		TopK:      req.TopK,
		MaxTokens: req.MaxTokens,
		Stop:      req.Stop,
		Seed:      int(req.Seed),
	}
	if req.Temperature != nil {
		p.Temperature = manager.Float(float32(*req.Temperature))
	}
	if req.TopP != nil {
		p.TopP = manager.Float(float32(*req.TopP))
	}
	return p
}

// handleHealth reports API, model and host status.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Failure      503  {object}  types.HealthResponse
// @Router       /health/ [get]
func handleHealth(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := svc.Stats()
		resp := types.HealthResponse{
			Status:      "ok",
			Version:     Version,
			ModelStatus: stats.Status,
			ModelInfo:   stats,
			SystemInfo:  systemInfo(),
		}
		status := http.StatusOK
		if stats.Status != "healthy" {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}

func systemInfo() types.SystemInfo {
	var si types.SystemInfo
	si.System.Platform = runtime.GOOS
	si.System.Arch = runtime.GOARCH
	si.System.CPUCount = runtime.NumCPU()
	si.System.GoVersion = runtime.Version()
	si.Goroutines = runtime.NumGoroutine()
	return si
}
