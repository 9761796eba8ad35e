package manager

import "testing"

func checksByName(cs []Check) map[string]Check {
	m := make(map[string]Check, len(cs))
	for _, c := range cs {
		m[c.Name] = c
	}
	return m
}

func TestPreflight_ValidFile(t *testing.T) {
	p := createModelFile(t, t.TempDir(), "m.gguf")
	cs := checksByName(NewHandle(HandleConfig{ModelPath: p}).Preflight())
	for _, name := range []string{"model_path_set", "model_path_exists", "model_path_is_file", "model_path_readable"} {
		if !cs[name].OK {
			t.Fatalf("%s failed: %+v", name, cs[name])
		}
	}
	if cs["llama_built"].OK != llamaBuilt {
		t.Fatalf("llama_built=%v want %v", cs["llama_built"].OK, llamaBuilt)
	}
}

func TestPreflight_MissingPath(t *testing.T) {
	checks := NewHandle(HandleConfig{ModelPath: "/definitely/missing.gguf"}).Preflight()
	cs := checksByName(checks)
	if !cs["model_path_set"].OK || cs["model_path_exists"].OK || cs["model_path_is_file"].OK || cs["model_path_readable"].OK {
		t.Fatalf("checks=%+v", checks)
	}
	if PreflightOK(checks) {
		t.Fatalf("preflight should fail")
	}
}

func TestPreflight_EmptyPathAndDirectory(t *testing.T) {
	if cs := checksByName(NewHandle(HandleConfig{}).Preflight()); cs["model_path_set"].OK {
		t.Fatalf("empty path reported as set")
	}
	cs := checksByName(NewHandle(HandleConfig{ModelPath: t.TempDir()}).Preflight())
	if !cs["model_path_exists"].OK || cs["model_path_is_file"].OK {
		t.Fatalf("directory checks=%+v", cs)
	}
}

func TestPreflightOK(t *testing.T) {
	if !PreflightOK([]Check{{Name: "a", OK: true}}) || PreflightOK([]Check{{Name: "a", OK: true}, {Name: "b"}}) {
		t.Fatalf("PreflightOK mismatch")
	}
}
