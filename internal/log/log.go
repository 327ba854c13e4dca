// Package log provides context-aware logging for cly.
//
// A Logger fans records out to a console handler (tint, coloured when the
// output is a terminal) and, once [Logger.AttachFile] is called, to a plain
// text log file. Printf and Println bypass levels and write straight to the
// console writer.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/colorprofile"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

type ctxKey struct{}

// Logger provides leveled logging plus verbose command tracing.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	slog    *slog.Logger
	fanout  *multiHandler
}

// New creates a new logger writing to out.
//
// The console level is Info, Error when quiet is set. Use [Logger.SetDebug]
// to lower it further.
func New(out io.Writer, verbose, quiet bool) *Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	if quiet {
		level.Set(slog.LevelError)
	}

	console := tint.NewHandler(consoleWriter(out), &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(out),
	})
	fanout := newMultiHandler(level, console)

	return &Logger{
		out:     out,
		verbose: verbose,
		quiet:   quiet,
		slog:    slog.New(fanout),
		fanout:  fanout,
	}
}

// consoleWriter downsamples ANSI colours to what the terminal supports.
func consoleWriter(out io.Writer) io.Writer {
	if !isTerminal(out) {
		return out
	}
	return colorprofile.NewWriter(out, os.Environ())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return discard
}

var discard = New(io.Discard, false, true)

// SetDebug lowers the console level to Debug.
func (l *Logger) SetDebug() {
	if l.quiet {
		return
	}
	l.fanout.level.Set(slog.LevelDebug)
}

// AttachFile tees every record (at Debug and above) into w as plain text.
func (l *Logger) AttachFile(w io.Writer) {
	l.fanout.attach(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Printf writes formatted output. Suppressed when quiet.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output. Suppressed when quiet.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Debug logs at debug level with key-value pairs.
// A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	l.log(slog.LevelDebug, msg, keyvals)
}

// Info logs at info level with key-value pairs.
func (l *Logger) Info(msg string, keyvals ...any) {
	l.log(slog.LevelInfo, msg, keyvals)
}

// Warn logs at warn level with key-value pairs.
func (l *Logger) Warn(msg string, keyvals ...any) {
	l.log(slog.LevelWarn, msg, keyvals)
}

// Error logs at error level with key-value pairs.
func (l *Logger) Error(msg string, keyvals ...any) {
	l.log(slog.LevelError, msg, keyvals)
}

func (l *Logger) log(level slog.Level, msg string, keyvals []any) {
	if len(keyvals)%2 != 0 {
		keyvals = keyvals[:len(keyvals)-1]
	}
	l.slog.Log(context.Background(), level, msg, keyvals...)
}

// Command logs an external command execution and returns a func that
// reports how long it took. Only prints when verbose and not quiet.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	line := "$ " + strings.TrimSpace(name+" "+strings.Join(args, " "))
	if dir != "" {
		line = "[" + dir + "] " + line
	}
	return func(d time.Duration) {
		fmt.Fprintf(l.out, "%s (%s)\n", line, d.Round(time.Millisecond))
	}
}

// IsVerbose returns true if verbose mode is enabled and quiet is not.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying console writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
