package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raphi011/catalyst/internal/storage"
)

// ErrFileNotFound is returned by find_file when nothing matches.
var ErrFileNotFound = errors.New("file not found")

func (h *Host) exists(_ context.Context, args Args) (any, error) {
	p, err := args.String(0)
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(h.resolve(p))
	return err == nil, nil
}

func (h *Host) readFile(_ context.Context, args Args) (any, error) {
	p, err := args.String(0)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(h.resolve(p))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (h *Host) writeFile(_ context.Context, args Args) (any, error) {
	p, err := args.String(0)
	if err != nil {
		return nil, err
	}
	content, err := args.String(1)
	if err != nil {
		return nil, err
	}
	return nil, storage.WriteFile(h.resolve(p), []byte(content))
}

// readJSON validates the file and returns it as compact JSON text.
func (h *Host) readJSON(_ context.Context, args Args) (any, error) {
	p, err := args.String(0)
	if err != nil {
		return nil, err
	}
	path := h.resolve(p)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return buf.String(), nil
}

// writeJSON writes an indented document. A string argument must itself be JSON.
func (h *Host) writeJSON(_ context.Context, args Args) (any, error) {
	p, err := args.String(0)
	if err != nil {
		return nil, err
	}
	value, err := documentArg(args, 1)
	if err != nil {
		return nil, err
	}
	return nil, storage.SaveJSON(h.resolve(p), value)
}

// readYAML returns the document as JSON text, matching read_json.
func (h *Host) readYAML(_ context.Context, args Args) (any, error) {
	p, err := args.String(0)
	if err != nil {
		return nil, err
	}
	path := h.resolve(p)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	return string(out), nil
}

func (h *Host) writeYAML(_ context.Context, args Args) (any, error) {
	p, err := args.String(0)
	if err != nil {
		return nil, err
	}
	value, err := documentArg(args, 1)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return nil, err
	}
	return nil, storage.WriteFile(h.resolve(p), data)
}

func (h *Host) getCwd(context.Context, Args) (any, error) {
	return h.Dir, nil
}

func (h *Host) mkdir(_ context.Context, args Args) (any, error) {
	p, err := args.String(0)
	if err != nil {
		return nil, err
	}
	return nil, os.MkdirAll(h.resolve(p), 0o755)
}

// findFile returns the first entry under Root/.catalyst whose name contains
// the argument, in lexical walk order.
func (h *Host) findFile(_ context.Context, args Args) (any, error) {
	name, err := args.String(0)
	if err != nil {
		return nil, err
	}
	base := filepath.Join(h.Root, ".catalyst")

	var found string
	walkErr := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != base && strings.Contains(d.Name(), name) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if found == "" {
		return nil, fmt.Errorf("%w: %q in %s", ErrFileNotFound, name, base)
	}
	return found, nil
}

// documentArg returns argument i as a value ready for encoding.
// Strings are parsed as JSON so that read_json output can be written back.
func documentArg(args Args, i int) (any, error) {
	v := args.Value(i)
	s, ok := v.(string)
	if !ok {
		if v == nil {
			return nil, fmt.Errorf("%w #%d: expected value, got nil", ErrArgument, i+1)
		}
		return v, nil
	}
	var doc any
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("%w #%d: string is not valid JSON: %v", ErrArgument, i+1, err)
	}
	return doc, nil
}

// normalizeYAML converts map[any]any nodes so the result encodes as JSON.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalizeYAML(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalizeYAML(item)
		}
		return t
	default:
		return v
	}
}
