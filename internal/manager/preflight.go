package manager

import (
	"os"

	"chatd/internal/common/fsutil"
)

// Check is one preflight result.
type Check struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Preflight inspects the configured artifact and runtime without loading
// anything. It does not mutate state and is safe to call at any time.
func (h *Handle) Preflight() []Check {
	path := h.cfg.ModelPath
	checks := []Check{{Name: "model_path_set", OK: path != "", Detail: path}}

	exists := path != "" && fsutil.PathExists(path)
	checks = append(checks, Check{Name: "model_path_exists", OK: exists})

	var isFile bool
	if fi, err := os.Stat(path); err == nil {
		isFile = fi.Mode().IsRegular()
	}
	checks = append(checks, Check{Name: "model_path_is_file", OK: isFile})

	readable := Check{Name: "model_path_readable"}
	if isFile {
		if _, err := fsutil.CheckReadable(path); err != nil {
			readable.Detail = err.Error()
		} else {
			readable.OK = true
		}
	}
	checks = append(checks, readable)

	built := Check{Name: "llama_built", OK: llamaBuilt}
	if !llamaBuilt {
		built.Detail = "binary built without the 'llama' build tag"
	}
	return append(checks, built)
}

// PreflightOK reports whether every check passed.
func PreflightOK(checks []Check) bool {
	for _, c := range checks {
		if !c.OK {
			return false
		}
	}
	return true
}
