// Package filex has small filesystem helpers shared by the server and client.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

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

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

var nameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeName turns a client supplied filename into a single path
// segment: separators become '_' and surrounding blanks are dropped.
// "." and ".." are returned as "" so callers treat them as missing.
func SanitizeName(name string) string {
	name = strings.TrimSpace(nameReplacer.Replace(name))
	if name == "." || name == ".." {
		return ""
	}
	return name
}
