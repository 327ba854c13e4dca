// Package storage provides atomic file writes for JSON data such as the
// project descriptor and files written by hooks.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteFile atomically writes data to path.
// It ensures the parent directory exists, writes to a temp file,
// then renames to the final path.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tempPath, path)
}

// SaveJSON atomically writes data as indented JSON to the specified path.
func SaveJSON(path string, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return WriteFile(path, append(jsonData, '\n'))
}

// LoadJSON reads JSON from the specified path into dest.
// Returns os.ErrNotExist if file doesn't exist (caller should handle).
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}
