package script

import "strings"

// Dialect is the scripting language a hook is written in.
type Dialect int

const (
	Unknown Dialect = iota
	Lua
	JavaScript
)

func (d Dialect) String() string {
	switch d {
	case Lua:
		return "lua"
	case JavaScript:
		return "js"
	default:
		return "unknown"
	}
}

// Directive lines, compared verbatim against the first line of a hook.
const (
	LuaDirective        = "-- catalyst: lua"
	JavaScriptDirective = "// catalyst: js"
)

var directives = map[string]Dialect{
	LuaDirective:        Lua,
	JavaScriptDirective: JavaScript,
}

// Select reads the directive on the first line of text and returns the
// dialect together with the body that follows it.
// A "\r" belonging to the line terminator is ignored; nothing else is
// trimmed. Text without a recognized directive yields Unknown and the
// unchanged text.
func Select(text string) (Dialect, string) {
	line, body, _ := strings.Cut(text, "\n")
	line = strings.TrimSuffix(line, "\r")

	d, ok := directives[line]
	if !ok {
		return Unknown, text
	}
	return d, body
}
