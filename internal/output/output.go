// Package output provides context-aware output for cly.
// Stdout is used for primary data output (run summaries, hook lists, JSON).
// Stderr (via log package) is used for diagnostics.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/catalyst/internal/hooks"
	"github.com/raphi011/catalyst/internal/ui/static"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w unchanged.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewTerminal creates a Printer that downsamples or strips ANSI styling
// to what w and the environment (NO_COLOR, TERM) support.
func NewTerminal(w io.Writer) *Printer {
	return &Printer{w: colorprofile.NewWriter(w, os.Environ())}
}

// WithPrinter attaches a Printer writing to w to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// WithTerminalPrinter attaches p to the context.
func WithTerminalPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// JSON writes v as indented JSON followed by a newline.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes an aligned table. Nothing is written when rows is empty.
func (p *Printer) Table(headers []string, rows [][]string) {
	p.Print(static.RenderTable(headers, rows))
}

// Summary writes the outcome table of a hook run.
func (p *Printer) Summary(r hooks.Report) {
	p.Print(static.RenderSummary(r))
}

// OutcomeJSON is the machine-readable form of one hook outcome.
type OutcomeJSON struct {
	Hook       string `json:"hook"`
	Path       string `json:"path,omitempty"`
	Dialect    string `json:"dialect"`
	Result     string `json:"result"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// ReportJSON converts a report for Printer.JSON.
func ReportJSON(r hooks.Report) []OutcomeJSON {
	out := make([]OutcomeJSON, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		j := OutcomeJSON{
			Hook:       o.Identifier,
			Path:       o.Path,
			Dialect:    o.Dialect.String(),
			Result:     o.Result.String(),
			DurationMS: o.Duration.Round(time.Millisecond).Milliseconds(),
		}
		if o.Err != nil {
			j.Error = o.Err.Error()
		}
		out = append(out, j)
	}
	return out
}
