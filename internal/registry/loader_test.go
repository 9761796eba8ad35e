package registry

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadDir_FiltersGGUF(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"b.gguf",
		"a.GGUF", // case-insensitive
		"not-model.txt",
		"model.bin",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("xx"), 0o644); err != nil {
			t.Fatalf("write temp file: %v", err)
		}
	}
	arts, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(arts))
	}
	if arts[0].Name != "a.GGUF" || arts[1].Name != "b.gguf" {
		t.Fatalf("unexpected order: %+v", arts)
	}
	if arts[0].SizeBytes != 2 {
		t.Fatalf("size=%d", arts[0].SizeBytes)
	}
}

func TestLoadDir_ExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir on this platform: %v", err)
	}
	hTmp, err := os.MkdirTemp(home, "chatd-registry-*")
	if err != nil {
		t.Skipf("cannot create temp under home: %v", err)
	}
	defer os.RemoveAll(hTmp)
	if err := os.WriteFile(filepath.Join(hTmp, "x.gguf"), []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var tildePath string
	if runtime.GOOS == "windows" {
		tildePath = filepath.Join("~", filepath.Base(hTmp))
	} else {
		tildePath = "~/" + filepath.Base(hTmp)
	}
	arts, err := LoadDir(tildePath)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(arts) != 1 || arts[0].Name != "x.gguf" {
		t.Fatalf("unexpected artifacts: %+v", arts)
	}
}

func TestResolve_Directory(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"z.gguf", "m.gguf"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte(""), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != filepath.Join(dir, "m.gguf") {
		t.Fatalf("got %q", got)
	}
}

func TestResolve_EmptyDirectory(t *testing.T) {
	if _, err := Resolve(t.TempDir()); !errors.Is(err, ErrNoArtifacts) {
		t.Fatalf("expected ErrNoArtifacts, got %v", err)
	}
}

func TestResolve_FileAndMissingPassThrough(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "model.gguf")
	if err := os.WriteFile(p, []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, err := Resolve(p); err != nil || got != p {
		t.Fatalf("file: got %q err=%v", got, err)
	}
	missing := filepath.Join(dir, "missing.gguf")
	if got, err := Resolve(missing); err != nil || got != missing {
		t.Fatalf("missing: got %q err=%v", got, err)
	}
}
