package log

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// fileTimeFormat avoids ':' so the name is valid on every filesystem.
const fileTimeFormat = "20060102T150405Z"

// OpenFile creates a new log file named after the current UTC time inside dir.
// The directory is created if needed. Callers close the returned file.
func OpenFile(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, now.UTC().Format(fileTimeFormat)+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	return f, nil
}
