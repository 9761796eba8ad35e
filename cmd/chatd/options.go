package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chatd/internal/config"
	"chatd/internal/registry"
)

// options holds persistent flag values. Flags override env vars, which
// override the config file, which overrides the built-in defaults.
type options struct {
	configPath   string
	envFile      string
	addr         string
	modelPath    string
	ctxSize      int
	threads      int
	gpuLayers    int
	chatTemplate string
	logLevel     string
	logFormat    string
	corsOrigins  string
}

func (o *options) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "Path to config file (yaml|yml|json|toml)")
	f.StringVar(&o.envFile, "env-file", ".env", "Dotenv file with MODEL_PATH, N_CTX, N_THREADS, N_GPU_LAYERS")
	f.StringVar(&o.addr, "addr", "", "HTTP listen address, e.g. :8000")
	f.StringVar(&o.modelPath, "model-path", "", "Path to a .gguf model file or a directory containing one")
	f.IntVar(&o.ctxSize, "ctx-size", 0, "Context window size in tokens")
	f.IntVar(&o.threads, "threads", 0, "CPU threads used for generation")
	f.IntVar(&o.gpuLayers, "gpu-layers", 0, "Layers to offload to the GPU (-1 = all)")
	f.StringVar(&o.chatTemplate, "chat-template", "", "Prompt template: llama2, chatml or plain")
	f.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&o.logFormat, "log-format", "", "Log format: json or console")
	f.StringVar(&o.corsOrigins, "cors-origins", "", "Comma-separated CORS allowed origins (empty disables CORS)")
}

// loadConfig resolves the effective configuration for cmd.
func loadConfig(cmd *cobra.Command, o *options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}
	lookup, err := config.EnvLookup(o.envFile)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("addr") {
		cfg.Addr = o.addr
	}
	if f.Changed("model-path") {
		cfg.ModelPath = o.modelPath
	}
	if f.Changed("ctx-size") {
		cfg.ContextSize = o.ctxSize
	}
	if f.Changed("threads") {
		cfg.Threads = o.threads
	}
	if f.Changed("gpu-layers") {
		cfg.GPULayers = o.gpuLayers
	}
	if f.Changed("chat-template") {
		cfg.ChatTemplate = o.chatTemplate
	}
	if f.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if f.Changed("cors-origins") {
		cfg.CORSOrigins = config.SplitCSV(o.corsOrigins)
	}

	if cfg.ModelPath != "" {
		p, err := registry.Resolve(cfg.ModelPath)
		if err != nil {
			return cfg, err
		}
		cfg.ModelPath = p
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
