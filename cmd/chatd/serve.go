package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"chatd/internal/config"
	"chatd/internal/httpapi"
	"chatd/internal/manager"
)

// newManager builds the model manager for cfg.
func newManager(cfg config.Config, log zerolog.Logger) (*manager.Manager, error) {
	return manager.NewWithConfig(manager.ManagerConfig{
		ModelPath:    cfg.ModelPath,
		ContextSize:  cfg.ContextSize,
		Threads:      cfg.Threads,
		GPULayers:    cfg.GPULayers,
		ChatTemplate: cfg.ChatTemplate,
		Defaults: manager.InferParams{
			Temperature:   manager.Float(float32(cfg.Temperature)),
			MaxTokens:     cfg.MaxTokens,
			TopP:          manager.Float(float32(cfg.TopP)),
			TopK:          cfg.TopK,
			RepeatPenalty: manager.Float(float32(cfg.RepeatPenalty)),
		},
		Logger: &log,
	})
}

// runServe loads the model and serves HTTP until ctx is canceled or a
// termination signal arrives. A model that fails to load aborts startup.
func runServe(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log, err := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}
	mgr, err := newManager(cfg, log)
	if err != nil {
		return err
	}
	if _, err := mgr.Initialize(); err != nil {
		return fmt.Errorf("initialize model: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpapi.SetLogger(log)
	httpapi.SetRequestLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins, nil, nil)
	httpapi.Version = version
	// in-flight streams are canceled as soon as shutdown begins
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Str("model", cfg.ModelPath).Msg("chatd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		log.Info().Dur("timeout", timeout).Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
