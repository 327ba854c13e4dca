// Package debugshell implements the line-oriented shell opened by "cly debug".
//
// Each line is one command. The shell ends on "exit", on end of input or
// when its context is cancelled. Unknown commands are reported and ignored.
package debugshell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/raphi011/catalyst/internal/capability"
	"github.com/raphi011/catalyst/internal/log"
	"github.com/raphi011/catalyst/internal/procenv"
	"github.com/raphi011/catalyst/internal/ui/styles"
)

// Prompt is printed before every command.
const Prompt = "Debug > "

const clearScreen = "\x1b[H\x1b[2J"

// Shell reads commands from In and writes replies to Out.
type Shell struct {
	In  io.Reader
	Out io.Writer
	Log *log.Logger
	Env procenv.Environment

	// Run executes one hook by identifier, or the project's hook list when
	// id is empty. Nil disables the run command.
	Run func(ctx context.Context, id string) error

	// Hooks lists the files in the hooks directory. Nil disables the hooks command.
	Hooks func() ([]string, error)

	// Capabilities are the host functions hooks can call, listed by caps.
	Capabilities []capability.Binding
}

type command struct {
	names []string
	usage string
	fn    func(s *Shell, ctx context.Context, arg string) (stop bool)
}

var commands = []command{
	{[]string{"exit"}, "exit", cmdExit},
	{[]string{"ping"}, "ping", cmdPing},
	{[]string{"clr", "clear"}, "clr, clear", cmdClear},
	{[]string{"help"}, "help", cmdHelp},
	{[]string{"hooks"}, "hooks", cmdHooks},
	{[]string{"run"}, "run [hook]", cmdRun},
	{[]string{"env"}, "env KEY", cmdEnv},
	{[]string{"caps"}, "caps [group]", cmdCaps},
}

// Serve runs the read-eval loop until exit, end of input or ctx is done.
func (s *Shell) Serve(ctx context.Context) error {
	s.clear()
	s.Log.Info("debug mode enabled, dropping to debug shell")

	sc := bufio.NewScanner(s.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.Out, styles.PrimaryStyle.Bold(true).Render(Prompt))
		if !sc.Scan() {
			fmt.Fprintln(s.Out)
			return sc.Err()
		}
		if s.dispatch(ctx, sc.Text()) {
			return nil
		}
	}
}

// dispatch runs one line and reports whether the shell should stop.
func (s *Shell) dispatch(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	if name == "" {
		return false
	}
	for _, c := range commands {
		for _, n := range c.names {
			if n == name {
				return c.fn(s, ctx, strings.TrimSpace(arg))
			}
		}
	}
	s.Log.Warn("unknown command, try help", "command", name)
	return false
}

func (s *Shell) clear() {
	fmt.Fprint(s.Out, clearScreen)
}

func cmdExit(s *Shell, _ context.Context, _ string) bool {
	s.Log.Warn("exiting")
	return true
}

func cmdPing(s *Shell, _ context.Context, _ string) bool {
	s.Log.Info("Pong!")
	return false
}

func cmdClear(s *Shell, _ context.Context, _ string) bool {
	s.clear()
	return false
}

func cmdHelp(s *Shell, _ context.Context, _ string) bool {
	fmt.Fprintln(s.Out, styles.AccentStyle.Underline(true).Render("Commands"))
	for _, c := range commands {
		fmt.Fprintln(s.Out, "  "+c.usage)
	}
	return false
}

func cmdHooks(s *Shell, _ context.Context, _ string) bool {
	if s.Hooks == nil {
		s.Log.Warn("no project loaded")
		return false
	}
	names, err := s.Hooks()
	if err != nil {
		s.Log.Error("list hooks", "error", err)
		return false
	}
	if len(names) == 0 {
		fmt.Fprintln(s.Out, styles.MutedStyle.Render("(no hooks)"))
	}
	for _, n := range names {
		fmt.Fprintln(s.Out, "  "+n)
	}
	return false
}

func cmdRun(s *Shell, ctx context.Context, id string) bool {
	if s.Run == nil {
		s.Log.Warn("no project loaded")
		return false
	}
	if err := s.Run(ctx, id); err != nil {
		s.Log.Error("run failed", "error", err)
	}
	return false
}

func cmdEnv(s *Shell, _ context.Context, key string) bool {
	if key == "" {
		s.Log.Warn("usage: env KEY")
		return false
	}
	if s.Env == nil {
		s.Env = procenv.Process{}
	}
	v := s.Env.Getenv(key)
	if v == "" {
		fmt.Fprintln(s.Out, styles.MutedStyle.Render(key+" is not set"))
		return false
	}
	fmt.Fprintf(s.Out, "%s=%s\n", key, v)
	return false
}

func cmdCaps(s *Shell, _ context.Context, group string) bool {
	groups := capability.Groups(s.Capabilities)
	if group != "" {
		if !slices.Contains(groups, group) {
			s.Log.Warn("unknown capability group", "group", group, "groups", strings.Join(groups, ", "))
			return false
		}
		groups = []string{group}
	}
	for _, g := range groups {
		var names []string
		for _, b := range s.Capabilities {
			if b.Group == g {
				names = append(names, b.Name)
			}
		}
		fmt.Fprintf(s.Out, "  %s %s\n", styles.AccentStyle.Render(g+":"), strings.Join(names, ", "))
	}
	return false
}
