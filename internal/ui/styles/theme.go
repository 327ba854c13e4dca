package styles

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/catalyst/internal/config"
)

// Theme is the color palette used by summaries and prompts.
type Theme struct {
	Primary color.Color // headers, titles
	Accent  color.Color // prompt cursor, selected option
	Success color.Color // hooks that finished
	Error   color.Color // hooks that failed
	Warning color.Color // hooks that were skipped
	Muted   color.Color // durations, paths
}

// family groups the light and dark variant of a preset.
// A nil variant falls back to the other one.
type family struct {
	light, dark *Theme
}

var (
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),
		Accent:  lipgloss.Color("212"),
		Success: lipgloss.Color("82"),
		Error:   lipgloss.Color("196"),
		Warning: lipgloss.Color("214"),
		Muted:   lipgloss.Color("240"),
	}

	DraculaTheme = Theme{
		Primary: lipgloss.Color("#bd93f9"),
		Accent:  lipgloss.Color("#ff79c6"),
		Success: lipgloss.Color("#50fa7b"),
		Error:   lipgloss.Color("#ff5555"),
		Warning: lipgloss.Color("#f1fa8c"),
		Muted:   lipgloss.Color("#6272a4"),
	}

	NordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"),
		Accent:  lipgloss.Color("#b48ead"),
		Success: lipgloss.Color("#a3be8c"),
		Error:   lipgloss.Color("#bf616a"),
		Warning: lipgloss.Color("#ebcb8b"),
		Muted:   lipgloss.Color("#4c566a"),
	}

	NordLightTheme = Theme{
		Primary: lipgloss.Color("#5e81ac"),
		Accent:  lipgloss.Color("#b48ead"),
		Success: lipgloss.Color("#a3be8c"),
		Error:   lipgloss.Color("#bf616a"),
		Warning: lipgloss.Color("#d08770"),
		Muted:   lipgloss.Color("#9a9a9a"),
	}

	GruvboxTheme = Theme{
		Primary: lipgloss.Color("#83a598"),
		Accent:  lipgloss.Color("#d3869b"),
		Success: lipgloss.Color("#b8bb26"),
		Error:   lipgloss.Color("#fb4934"),
		Warning: lipgloss.Color("#fabd2f"),
		Muted:   lipgloss.Color("#665c54"),
	}

	GruvboxLightTheme = Theme{
		Primary: lipgloss.Color("#076678"),
		Accent:  lipgloss.Color("#8f3f71"),
		Success: lipgloss.Color("#79740e"),
		Error:   lipgloss.Color("#9d0006"),
		Warning: lipgloss.Color("#b57614"),
		Muted:   lipgloss.Color("#928374"),
	}

	CatppuccinMochaTheme = Theme{
		Primary: lipgloss.Color("#89b4fa"),
		Accent:  lipgloss.Color("#f5c2e7"),
		Success: lipgloss.Color("#a6e3a1"),
		Error:   lipgloss.Color("#f38ba8"),
		Warning: lipgloss.Color("#fab387"),
		Muted:   lipgloss.Color("#6c7086"),
	}

	CatppuccinLatteTheme = Theme{
		Primary: lipgloss.Color("#1e66f5"),
		Accent:  lipgloss.Color("#ea76cb"),
		Success: lipgloss.Color("#40a02b"),
		Error:   lipgloss.Color("#d20f39"),
		Warning: lipgloss.Color("#fe640b"),
		Muted:   lipgloss.Color("#9ca0b0"),
	}

	// NoneTheme keeps formatting but uses terminal default colors.
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
	}
)

var families = map[string]family{
	"none":       {light: &NoneTheme, dark: &NoneTheme},
	"default":    {dark: &DefaultTheme},
	"dracula":    {dark: &DraculaTheme},
	"nord":       {light: &NordLightTheme, dark: &NordTheme},
	"gruvbox":    {light: &GruvboxLightTheme, dark: &GruvboxTheme},
	"catppuccin": {light: &CatppuccinLatteTheme, dark: &CatppuccinMochaTheme},
}

var current = DefaultTheme

// Current returns the active theme.
func Current() Theme {
	return current
}

// Init activates the theme and symbol set from cfg.
// Call it once after the config is loaded and before anything is rendered.
func Init(cfg config.UIConfig) {
	current = Select(cfg.Theme, cfg.Mode, hasDarkBackground)
	applyTheme(current)
	SetNerdfont(cfg.Nerdfont)
}

// Select picks a preset variant. Unknown names use the default preset;
// "auto" (or an empty mode) asks dark() for the terminal background.
func Select(name, mode string, dark func() bool) Theme {
	fam, ok := families[name]
	if !ok {
		fam = families["default"]
	}

	var t *Theme
	switch mode {
	case "light":
		t = fam.light
	case "dark":
		t = fam.dark
	default:
		if dark() {
			t = fam.dark
		} else {
			t = fam.light
		}
	}
	if t == nil {
		t = fam.dark
	}
	if t == nil {
		t = fam.light
	}
	return *t
}

func hasDarkBackground() bool {
	return lipgloss.HasDarkBackground(os.Stdin, os.Stderr)
}
