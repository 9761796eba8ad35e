// Package registry locates GGUF model artifacts on disk.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chatd/internal/common/fsutil"
)

// Artifact is a model file found on disk.
type Artifact struct {
	Name      string
	Path      string
	SizeBytes int64
}

// LoadDir scans a directory for *.gguf files (case-insensitive), sorted by name.
func LoadDir(dir string) ([]Artifact, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var out []Artifact
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".gguf") {
			continue
		}
		a := Artifact{Name: name, Path: filepath.Join(abs, name)}
		if fi, err := e.Info(); err == nil {
			a.SizeBytes = fi.Size()
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ErrNoArtifacts is returned by Resolve when a directory holds no *.gguf file.
var ErrNoArtifacts = errors.New("no .gguf model found")

// Resolve turns a configured model path into an absolute artifact path.
// A directory resolves to its first *.gguf file by name. Any other path is
// returned as is (absolute) so the caller can report a missing file.
func Resolve(path string) (string, error) {
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}
	fi, err := os.Stat(abs)
	if err != nil || !fi.IsDir() {
		return abs, nil
	}
	arts, err := LoadDir(abs)
	if err != nil {
		return "", err
	}
	if len(arts) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoArtifacts, abs)
	}
	return arts[0].Path, nil
}
