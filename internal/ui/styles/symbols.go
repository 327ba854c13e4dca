package styles

import (
	"net/url"
	"path/filepath"

	"github.com/charmbracelet/x/ansi"
)

// Symbols is the icon set used for hook results.
type Symbols struct {
	OK      string
	Failed  string
	Skipped string
}

var defaultSymbols = Symbols{
	OK:      "✓",
	Failed:  "✗",
	Skipped: "○",
}

var nerdfontSymbols = Symbols{
	OK:      "\uf058", // nf-fa-check_circle
	Failed:  "\uf057", // nf-fa-times_circle
	Skipped: "\uf05e", // nf-fa-ban
}

var (
	useNerdfont bool
	symbols     = defaultSymbols
)

// SetNerdfont switches between the nerd font and the plain symbol set.
func SetNerdfont(enabled bool) {
	useNerdfont = enabled
	if enabled {
		symbols = nerdfontSymbols
	} else {
		symbols = defaultSymbols
	}
}

// NerdfontEnabled reports whether nerd font symbols are active.
func NerdfontEnabled() bool {
	return useNerdfont
}

// CurrentSymbols returns the active symbol set.
func CurrentSymbols() Symbols {
	return symbols
}

// FileLink renders text as an OSC 8 hyperlink to the local file at path.
// Terminals without hyperlink support show just the text.
func FileLink(path, text string) string {
	if path == "" {
		return text
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return text
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return ansi.SetHyperlink(u.String()) + text + ansi.ResetHyperlink()
}
