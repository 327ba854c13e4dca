package hooks

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/catalyst/internal/procenv"
)

// ParseEnvWithStdin parses a slice of "key=value" strings into a map.
// If any value is "-", reads stdin content and assigns it to all such keys.
// Returns an error if stdin is requested but not piped or empty.
func ParseEnvWithStdin(envSlice []string) (map[string]string, error) {
	return parseEnv(envSlice, readStdinIfPiped)
}

// parseEnv parses "key=value" entries. Values of "-" are read from stdin
// unless stdin is nil, in which case "-" is kept literally.
func parseEnv(envSlice []string, stdin func() (string, error)) (map[string]string, error) {
	result := make(map[string]string)
	var stdinKeys []string

	for _, e := range envSlice {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("invalid env format %q: expected KEY=VALUE", e)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid env format %q: key cannot be empty", e)
		}
		if value == "-" && stdin != nil {
			stdinKeys = append(stdinKeys, key)
			continue
		}
		result[key] = value
	}

	// If any keys need stdin, read it once
	if len(stdinKeys) > 0 {
		content, err := stdin()
		if err != nil {
			return nil, err
		}
		if content == "" {
			return nil, fmt.Errorf("stdin not piped: KEY=- requires piped input")
		}
		content = strings.TrimSuffix(content, "\n")
		for _, key := range stdinKeys {
			result[key] = content
		}
	}

	return result, nil
}

// readStdinIfPiped reads all content from stdin if it's piped (not a TTY).
// Returns empty string and nil if stdin is a TTY (interactive).
func readStdinIfPiped() (string, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// ApplyEnv sets vars in env in key order.
func ApplyEnv(env procenv.Environment, vars map[string]string) error {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := env.Setenv(k, vars[k]); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return nil
}
