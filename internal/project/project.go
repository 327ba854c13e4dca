package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/catalyst/internal/storage"
)

// Location of the descriptor relative to the project root.
const (
	DirName  = ".catalyst"
	FileName = "config.cly.json"
)

// Descriptor is the project configuration read from config.cly.json.
type Descriptor struct {
	Name             string   `json:"name"`
	Version          *string  `json:"version,omitempty"`
	WorkingDirectory string   `json:"working_directory,omitempty"`
	Hooks            []string `json:"hooks"`
	Compiler         *string  `json:"compiler,omitempty"`
	Flags            []string `json:"flags,omitempty"`

	root string
}

// DefaultPath returns the descriptor path for a project root.
func DefaultPath(root string) string {
	return filepath.Join(root, DirName, FileName)
}

// RootFor returns the project root for a descriptor path.
// A descriptor inside a .catalyst directory belongs to that directory's parent.
func RootFor(path string) string {
	dir := filepath.Dir(path)
	if filepath.Base(dir) == DirName {
		return filepath.Dir(dir)
	}
	return dir
}

// Load reads and validates the descriptor at path.
func Load(path string) (*Descriptor, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, loadErr(ErrUnreadable, path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, loadErr(ErrMissing, abs, nil)
		}
		return nil, loadErr(ErrUnreadable, abs, err)
	}
	if info.IsDir() || !strings.EqualFold(filepath.Ext(abs), ".json") {
		return nil, loadErr(ErrNotConfig, abs, nil)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, loadErr(ErrUnreadable, abs, err)
	}
	desc, err := Parse(data)
	if err != nil {
		return nil, loadErr(ErrInvalid, abs, err)
	}
	desc.root = RootFor(abs)
	return desc, nil
}

// Parse decodes descriptor JSON without touching the filesystem.
func Parse(data []byte) (*Descriptor, error) {
	var desc Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, err
	}
	desc.Name = strings.TrimSpace(desc.Name)
	if desc.Name == "" {
		return nil, errors.New(`missing required field "name"`)
	}
	return &desc, nil
}

// Root returns the project root directory.
func (d *Descriptor) Root() string {
	return d.root
}

// SetRoot attaches the descriptor to a project root.
func (d *Descriptor) SetRoot(root string) {
	d.root = root
}

// Dir returns the absolute working directory hooks run in.
func (d *Descriptor) Dir() string {
	if d.WorkingDirectory == "" {
		return d.root
	}
	if filepath.IsAbs(d.WorkingDirectory) {
		return filepath.Clean(d.WorkingDirectory)
	}
	return filepath.Join(d.root, d.WorkingDirectory)
}

// Save writes the descriptor to <root>/.catalyst/config.cly.json.
// Returns ErrExists if a descriptor is already present.
func (d *Descriptor) Save() (string, error) {
	path := DefaultPath(d.root)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := storage.SaveJSON(path, d); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
