// Package ui groups the terminal presentation packages of cly.
//
//   - styles: theme presets, result symbols and shared lipgloss styles
//   - static: aligned tables and the run summary
//   - prompt: confirm, text and select prompts plus the line fallback
//   - progress: a spinner for network waits
//
// Everything interactive renders on stderr so stdout stays clean for
// "cly run --json" and other piped output.
package ui
