// Package filex holds small filesystem helpers shared by the file-backed
// repositories: directory bootstrap and atomic JSON persistence.
package filex

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// EnsureDir creates dir (and parents) with owner-only access and returns the
// path. Safe to call repeatedly.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// ReadJSON best-effort reads path into out; a missing file is not an error.
func ReadJSON(path string, out any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// WriteJSON writes v as indented JSON via a temp file then rename, so readers
// never observe a partially written file.
func WriteJSON(path string, v any, mode os.FileMode) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, mode); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	// Rename preserves the temp file's mode, but make the final permission
	// explicit in case of a pre-existing destination.
	return os.Chmod(path, mode)
}
