package config

import (
	"fmt"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidCloneFailurePolicies = []string{CloneFailureExit, CloneFailureError}
	ValidThemeNames           = []string{"none", "default", "dracula", "nord", "gruvbox", "catppuccin"}
	ValidThemeModes           = []string{"auto", "light", "dark"}
)

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// validateHookExtension requires a leading dot and no path separators.
func validateHookExtension(ext string) error {
	if ext == "" {
		return nil
	}
	if !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, `/\*?[`) {
		return fmt.Errorf("invalid hook_extension %q: must look like \".cly\"", ext)
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
