package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nmodel_path: /tmp/m.gguf\ncontext_size: 4096\nthreads: 3\ngpu_layers: 0\nchat_template: chatml\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":9999" || cfg.ModelPath != "/tmp/m.gguf" || cfg.ContextSize != 4096 || cfg.Threads != 3 || cfg.GPULayers != 0 || cfg.ChatTemplate != "chatml" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","model_path":"/m.gguf","context_size":42,"threads":2,"gpu_layers":8,"cors_origins":["http://a"]}`)
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":7070" || cfg.ModelPath != "/m.gguf" || cfg.ContextSize != 42 || cfg.Threads != 2 || cfg.GPULayers != 8 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://a" {
		t.Fatalf("cors: %v", cfg.CORSOrigins)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nmodel_path=\"/x.gguf\"\ncontext_size=9\nthreads=1\ntemperature=0.2\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":8081" || cfg.ModelPath != "/x.gguf" || cfg.ContextSize != 9 || cfg.Threads != 1 || cfg.Temperature != 0.2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoad_KeepsDefaultsForAbsentFields(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :1234\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	def := Default()
	if cfg.GPULayers != def.GPULayers || cfg.MaxTokens != def.MaxTokens || cfg.ModelPath != def.ModelPath {
		t.Fatalf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil { t.Fatalf("expected error on empty path") }
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil { t.Fatalf("expected unsupported extension error") }
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty model path": func(c *Config) { c.ModelPath = " " },
		"zero ctx":         func(c *Config) { c.ContextSize = 0 },
		"zero threads":     func(c *Config) { c.Threads = 0 },
		"zero max tokens":  func(c *Config) { c.MaxTokens = 0 },
		"negative temp":    func(c *Config) { c.Temperature = -1 },
		"bad template":     func(c *Config) { c.ChatTemplate = "alpaca" },
	}
	for name, mutate := range cases {
		c := Default()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	cases := []struct{ in string; want []string }{
		{"a,b,c", []string{"a","b","c"}},
		{" a , b , c ", []string{"a","b","c"}},
		{"a,,c", []string{"a","c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := SplitCSV(c.in)
		if len(got) != len(c.want) { t.Fatalf("%q -> %v, want %v", c.in, got, c.want) }
		for i := range got {
			if got[i] != c.want[i] { t.Fatalf("%q -> %v, want %v", c.in, got, c.want) }
		}
	}
}
