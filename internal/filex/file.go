// Package filex contains small filesystem helpers for the server's local
// upload directory.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned by SafeJoin when the relative path escapes root.
var ErrOutsideRoot = errors.New("path escapes root directory")

// EnsureDir creates dir (relative paths are resolved against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SafeJoin joins a slash-separated relative path to root and rejects any result
// outside root. Backslashes are treated as separators too, since stored image
// paths may come from Windows clients.
func SafeJoin(root, rel string) (string, error) {
	rel = strings.ReplaceAll(rel, `\`, "/")
	rel = strings.TrimLeft(rel, "/")
	if rel == "" {
		return "", ErrOutsideRoot
	}

	full := filepath.Join(root, filepath.FromSlash(rel))

	r, err := filepath.Rel(root, full)
	if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}

	return full, nil
}
