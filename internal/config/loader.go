package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"chatd/internal/chat"
)

// Config holds runtime parameters for the service.
// Fields absent from a config file keep their Default() values.
type Config struct {
	Addr         string `json:"addr" yaml:"addr" toml:"addr"`
	ModelPath    string `json:"model_path" yaml:"model_path" toml:"model_path"`
	ContextSize  int    `json:"context_size" yaml:"context_size" toml:"context_size"`
	Threads      int    `json:"threads" yaml:"threads" toml:"threads"`
	GPULayers    int    `json:"gpu_layers" yaml:"gpu_layers" toml:"gpu_layers"`
	ChatTemplate string `json:"chat_template" yaml:"chat_template" toml:"chat_template"`

	// Generation defaults; requests may override them.
	Temperature   float64 `json:"temperature" yaml:"temperature" toml:"temperature"`
	MaxTokens     int     `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`
	TopP          float64 `json:"top_p" yaml:"top_p" toml:"top_p"`
	TopK          int     `json:"top_k" yaml:"top_k" toml:"top_k"`
	RepeatPenalty float64 `json:"repeat_penalty" yaml:"repeat_penalty" toml:"repeat_penalty"`

	LogLevel               string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat              string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	CORSOrigins            []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	MaxBodyBytes           int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	ShutdownTimeoutSeconds int      `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds" toml:"shutdown_timeout_seconds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:                   ":8000",
		ModelPath:              "/app/models/llama-2-7b-chat.gguf",
		ContextSize:            2048,
		Threads:                runtime.NumCPU(),
		GPULayers:              -1,
		ChatTemplate:           string(chat.TemplateLlama2),
		Temperature:            0.7,
		MaxTokens:              1024,
		TopP:                   0.95,
		TopK:                   40,
		RepeatPenalty:          1.1,
		LogLevel:               "info",
		LogFormat:              "json",
		CORSOrigins:            []string{"*"},
		MaxBodyBytes:           1 << 20,
		ShutdownTimeoutSeconds: 5,
	}
}

// Load reads a configuration file based on its extension, on top of Default().
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a LookupFunc backed by the process environment and, as a
// fallback, by the variables in dotenvPath. A missing dotenv file is not an error.
func EnvLookup(dotenvPath string) (LookupFunc, error) {
	vars := map[string]string{}
	if dotenvPath != "" {
		m, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
		}
		if m != nil {
			vars = m
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}
	str("CHATD_ADDR", &c.Addr)
	str("MODEL_PATH", &c.ModelPath)
	str("CHATD_CHAT_TEMPLATE", &c.ChatTemplate)
	str("CHATD_LOG_LEVEL", &c.LogLevel)
	if err := num("N_CTX", &c.ContextSize); err != nil {
		return err
	}
	if err := num("N_THREADS", &c.Threads); err != nil {
		return err
	}
	if err := num("N_GPU_LAYERS", &c.GPULayers); err != nil {
		return err
	}
	if v, ok := lookup("CHATD_CORS_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		c.CORSOrigins = SplitCSV(v)
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.ModelPath) == "":
		return errors.New("model_path is required")
	case c.ContextSize <= 0:
		return fmt.Errorf("context_size must be positive, got %d", c.ContextSize)
	case c.Threads <= 0:
		return fmt.Errorf("threads must be positive, got %d", c.Threads)
	case c.MaxTokens <= 0:
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	case c.Temperature < 0:
		return fmt.Errorf("temperature must not be negative, got %v", c.Temperature)
	}
	if _, err := chat.ParseTemplate(c.ChatTemplate); err != nil {
		return err
	}
	return nil
}

// SplitCSV splits a comma-separated list, trimming blanks and dropping empties.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
