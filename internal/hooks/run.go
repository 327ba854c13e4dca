package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raphi011/catalyst/internal/capability"
	"github.com/raphi011/catalyst/internal/log"
	"github.com/raphi011/catalyst/internal/project"
	"github.com/raphi011/catalyst/internal/script"
)

// Result classifies how a hook ended.
type Result int

const (
	OK Result = iota
	ParseError
	RuntimeError
	NotFound
	UnknownDialect
)

func (r Result) String() string {
	switch r {
	case OK:
		return "ok"
	case ParseError:
		return "parse error"
	case RuntimeError:
		return "runtime error"
	case NotFound:
		return "not found"
	case UnknownDialect:
		return "unknown dialect"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Outcome is the result of one hook.
type Outcome struct {
	Identifier string
	Path       string
	Dialect    script.Dialect
	Result     Result
	Err        error
	Duration   time.Duration
}

// Report collects the outcomes of a run in execution order.
type Report struct {
	Outcomes []Outcome
}

// Failed returns the outcomes that did not end with OK.
func (r Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Result != OK {
			failed = append(failed, o)
		}
	}
	return failed
}

// Coordinator runs hooks sequentially, one fresh session per hook.
type Coordinator struct {
	Locator *Locator
	Host    *capability.Host
	Log     *log.Logger

	// NewSession builds interpreter sessions. Defaults to script.NewSession.
	NewSession func(script.Dialect) (script.Session, error)
}

// RunProject runs every hook listed in the descriptor, in list order.
func (c *Coordinator) RunProject(ctx context.Context, desc *project.Descriptor) Report {
	var report Report
	if len(desc.Hooks) == 0 {
		c.logger().Warn("no hooks to run", "project", desc.Name)
		return report
	}

	c.logger().Info("running project hooks", "project", desc.Name, "count", len(desc.Hooks))
	for _, id := range desc.Hooks {
		report.Outcomes = append(report.Outcomes, c.runID(ctx, id))
	}
	return report
}

// RunDiscovered runs every hook file found by Locator.Scan.
// Only a failed scan is returned as an error.
func (c *Coordinator) RunDiscovered(ctx context.Context) (Report, error) {
	var report Report
	refs, err := c.Locator.Scan()
	if err != nil {
		return report, err
	}
	if len(refs) == 0 {
		c.logger().Warn("no hooks to run", "root", c.Locator.Root, "extension", c.Locator.Extension)
		return report, nil
	}

	c.logger().Info("running discovered hooks", "count", len(refs))
	for _, ref := range refs {
		report.Outcomes = append(report.Outcomes, c.run(ctx, ref))
	}
	return report, nil
}

// RunSingle resolves and runs only id.
func (c *Coordinator) RunSingle(ctx context.Context, id string) Report {
	return Report{Outcomes: []Outcome{c.runID(ctx, id)}}
}

func (c *Coordinator) runID(ctx context.Context, id string) Outcome {
	ref, err := c.Locator.Find(id)
	if err != nil {
		return c.finish(Outcome{Identifier: id, Result: NotFound, Err: err})
	}
	return c.run(ctx, ref)
}

// run executes one hook file in its own session.
func (c *Coordinator) run(ctx context.Context, ref Reference) Outcome {
	start := time.Now()
	out := Outcome{Identifier: ref.Identifier, Path: ref.Path}

	data, err := os.ReadFile(ref.Path)
	if err != nil {
		out.Result, out.Err = RuntimeError, err
		if errors.Is(err, os.ErrNotExist) {
			out.Result = NotFound
		}
		return c.finish(out)
	}

	dialect, body := script.Select(string(data))
	ref.Dialect = dialect
	out.Dialect = dialect
	if dialect == script.Unknown {
		out.Result = UnknownDialect
		out.Err = fmt.Errorf("%w: first line must be %q or %q", script.ErrUnknownDialect, script.LuaDirective, script.JavaScriptDirective)
		return c.finish(out)
	}

	c.logger().Info("running hook", "hook", ref.Identifier, "dialect", dialect)
	out.Err = c.exec(ctx, ref, body)
	out.Duration = time.Since(start)
	switch {
	case out.Err == nil:
		out.Result = OK
	case errors.Is(out.Err, script.ErrParse):
		out.Result = ParseError
	case errors.Is(out.Err, script.ErrUnknownDialect):
		out.Result = UnknownDialect
	default:
		out.Result = RuntimeError
	}
	return c.finish(out)
}

func (c *Coordinator) exec(ctx context.Context, ref Reference, body string) error {
	newSession := c.NewSession
	if newSession == nil {
		newSession = script.NewSession
	}
	session, err := newSession(ref.Dialect)
	if err != nil {
		return err
	}
	defer session.Close()

	// a binding failure counts as a runtime failure of this hook
	if err := session.Bind(c.Host.Bindings()); err != nil {
		return err
	}
	return session.Exec(ctx, filepath.Base(ref.Path), body)
}

// finish logs the outcome. Failures never stop the run.
func (c *Coordinator) finish(out Outcome) Outcome {
	if out.Result == OK {
		c.logger().Debug("hook finished", "hook", out.Identifier, "duration", out.Duration.Round(time.Millisecond))
		return out
	}
	c.logger().Error("hook failed",
		"hook", out.Identifier,
		"path", out.Path,
		"result", out.Result,
		"error", out.Err,
	)
	return out
}

func (c *Coordinator) logger() *log.Logger {
	if c.Log == nil {
		return log.FromContext(context.Background())
	}
	return c.Log
}
