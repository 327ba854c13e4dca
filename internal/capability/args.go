package capability

import (
	"errors"
	"fmt"
	"strings"
)

// ErrArgument is wrapped by errors for missing or mistyped arguments.
var ErrArgument = errors.New("bad argument")

// Args are the positional arguments of a host function call.
type Args []any

// Value returns argument i, or nil when it was not passed.
func (a Args) Value(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// String returns argument i, which must be a string.
func (a Args) String(i int) (string, error) {
	v := a.Value(i)
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w #%d: expected string, got %s", ErrArgument, i+1, typeName(v))
	}
	return s, nil
}

// Strings returns argument i as a list of strings.
// A single string is treated as a one-element list.
func (a Args) Strings(i int) ([]string, error) {
	switch v := a.Value(i).(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for j, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w #%d: element %d is %s, expected string", ErrArgument, i+1, j+1, typeName(item))
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w #%d: expected list of strings, got %s", ErrArgument, i+1, typeName(v))
	}
}

// Join formats every argument and joins them with spaces.
func (a Args) Join() string {
	parts := make([]string, len(a))
	for i, v := range a {
		if s, ok := v.(string); ok {
			parts[i] = s
			continue
		}
		if v == nil {
			parts[i] = "nil"
			continue
		}
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "list"
	case map[string]any:
		return "table"
	case float64, int64, int:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
