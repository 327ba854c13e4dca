// Package procenv is the single collaborator through which hooks read and
// mutate environment variables.
//
// # Isolation exception
//
// Every other piece of hook state is discarded when a session ends. The
// environment is not: a value set by one hook through [Environment.Setenv]
// is visible to every later hook in the same run and to any process those
// hooks spawn. Nothing survives the cly process itself.
package procenv

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Environment reads and writes environment variables.
type Environment interface {
	Getenv(key string) string
	Setenv(key, value string) error
}

// Process is the real process environment.
type Process struct{}

// Getenv returns the value of key, or "" if unset.
func (Process) Getenv(key string) string {
	return os.Getenv(key)
}

// Setenv sets key for the remainder of the process lifetime.
func (Process) Setenv(key, value string) error {
	if key == "" {
		return errors.New("setenv: empty key")
	}
	return os.Setenv(key, value)
}

// LoadDotenv loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left untouched. A missing file is not an error.
func LoadDotenv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Map is an in-memory Environment for tests and dry runs.
type Map struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMap returns a Map seeded with vars.
func NewMap(vars map[string]string) *Map {
	m := &Map{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		m.vars[k] = v
	}
	return m
}

func (m *Map) Getenv(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vars[key]
}

func (m *Map) Setenv(key, value string) error {
	if key == "" {
		return errors.New("setenv: empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
	return nil
}
