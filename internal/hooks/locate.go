package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/catalyst/internal/script"
)

// ErrNotFound is returned when no hook file matches an identifier.
var ErrNotFound = errors.New("hook not found")

// maxSuggestions limits the "did you mean" list of a NotFoundError.
const maxSuggestions = 3

// Reference points at a hook file. Dialect stays Unknown until the file is read.
type Reference struct {
	Identifier string
	Path       string
	Dialect    script.Dialect
}

// NotFoundError reports a hook identifier without a matching file.
type NotFoundError struct {
	Identifier  string
	Dir         string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s: %q in %s", ErrNotFound.Error(), e.Identifier, e.Dir)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Locator resolves hook identifiers and discovers hook files.
type Locator struct {
	Root      string // project root
	HooksDir  string // relative to Root unless absolute
	Extension string // suffix matched by Scan, e.g. ".cly"
}

// Dir returns the absolute hooks directory.
func (l *Locator) Dir() string {
	if filepath.IsAbs(l.HooksDir) {
		return l.HooksDir
	}
	return filepath.Join(l.Root, l.HooksDir)
}

// Find returns the first regular file under the hooks directory whose name
// contains id, or whose path relative to the hooks directory equals id as
// returned by List. Walk order is lexical, so the result is stable across runs.
func (l *Locator) Find(id string) (Reference, error) {
	dir := l.Dir()
	if id == "" {
		return Reference{}, &NotFoundError{Identifier: id, Dir: dir}
	}

	var found string
	var names []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.Contains(d.Name(), id) || relSlash(dir, path) == id {
			found = path
			return fs.SkipAll
		}
		names = append(names, d.Name())
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Reference{}, fmt.Errorf("search %s: %w", dir, err)
	}
	if found == "" {
		return Reference{}, &NotFoundError{Identifier: id, Dir: dir, Suggestions: suggest(id, names)}
	}
	return Reference{Identifier: id, Path: found}, nil
}

// Scan returns every file under the project root that ends in the hook
// extension, in walk order. .git directories are skipped.
func (l *Locator) Scan() ([]Reference, error) {
	var refs []Reference
	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), l.Extension) {
			return nil
		}
		rel, err := filepath.Rel(l.Root, path)
		if err != nil {
			return err
		}
		refs = append(refs, Reference{
			Identifier: strings.TrimSuffix(filepath.ToSlash(rel), l.Extension),
			Path:       path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.Root, err)
	}
	return refs, nil
}

// List returns the names of all files in the hooks directory.
func (l *Locator) List() ([]string, error) {
	var names []string
	err := filepath.WalkDir(l.Dir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			names = append(names, relSlash(l.Dir(), path))
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return names, err
}

// relSlash returns path relative to dir with forward slashes.
func relSlash(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// hookSource implements fuzzy.Source for file names.
type hookSource []string

func (s hookSource) String(i int) string { return strings.TrimSuffix(s[i], filepath.Ext(s[i])) }
func (s hookSource) Len() int            { return len(s) }

func suggest(id string, names []string) []string {
	matches := fuzzy.FindFrom(id, hookSource(names))
	var out []string
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, hookSource(names).String(m.Index))
	}
	return out
}
