package platform

import (
	"os"
	"path/filepath"
)

// ResourcePath resolves a packaged asset. A file next to the executable wins
// (packaged build); otherwise the path is resolved against the working directory
// (development tree). The returned path may not exist.
func ResourcePath(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}

	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		candidate := filepath.Join(filepath.Dir(exe), relativePath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	base, err := filepath.Abs(".")
	if err != nil {
		return relativePath
	}
	return filepath.Join(base, relativePath)
}
