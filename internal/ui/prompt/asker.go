package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// ErrCancelled is returned by an Asker when the user aborts a question.
var ErrCancelled = errors.New("prompt cancelled")

// Asker answers free-text questions. It serves both the project generator
// (Ask) and the io.prompt capability of hooks (Prompt).
type Asker interface {
	Ask(question string) (string, error)
	Prompt(msg string) (string, error)
}

// LineAsker reads one line per question from In and writes the question to Out.
// End of input yields io.EOF once nothing more is buffered.
type LineAsker struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewLineAsker returns an Asker for non-interactive input such as a pipe.
func NewLineAsker(in io.Reader, out io.Writer) *LineAsker {
	return &LineAsker{in: bufio.NewReader(in), out: out}
}

// Ask writes question and returns the next input line without its line ending.
func (a *LineAsker) Ask(question string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if question != "" {
		fmt.Fprint(a.out, question)
	}
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Prompt is Ask for hooks.
func (a *LineAsker) Prompt(msg string) (string, error) {
	return a.Ask(msg)
}

// TerminalAsker shows a text input for each question.
type TerminalAsker struct {
	mu sync.Mutex
}

// Ask shows question as a text input. Escape or ctrl+c returns ErrCancelled.
func (a *TerminalAsker) Ask(question string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := TextInput(strings.TrimSpace(question), "")
	if err != nil {
		return "", err
	}
	if res.Cancelled {
		return "", ErrCancelled
	}
	return res.Value, nil
}

// Prompt is Ask for hooks.
func (a *TerminalAsker) Prompt(msg string) (string, error) {
	return a.Ask(msg)
}

// NewAsker returns a TerminalAsker when stdin is a terminal and a
// LineAsker over stdin otherwise.
func NewAsker() Asker {
	if IsInteractive() {
		return &TerminalAsker{}
	}
	return NewLineAsker(os.Stdin, os.Stderr)
}

// IsInteractive reports whether stdin and stderr are both terminals.
func IsInteractive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stderr)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
