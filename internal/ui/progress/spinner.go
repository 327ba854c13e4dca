// Package progress shows a spinner on stderr while cly waits on something
// it cannot report progress for, such as the update server.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/catalyst/internal/ui/styles"
)

// stopTimeout bounds how long Stop waits for the program to exit.
const stopTimeout = 500 * time.Millisecond

type spinnerModel struct {
	spinner spinner.Model
	message string
}

func newModel(message string) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle
	return spinnerModel{spinner: sp, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() tea.View {
	return tea.NewView(fmt.Sprintf("%s %s", m.spinner.View(), styles.MutedStyle.Render(m.message)))
}

// Spinner animates a message until Stop is called.
type Spinner struct {
	program *tea.Program
	out     io.Writer
	done    chan struct{}
	once    sync.Once
}

// Start shows message with a spinner on stderr.
func Start(message string) *Spinner {
	s := &Spinner{out: os.Stderr, done: make(chan struct{})}
	s.program = tea.NewProgram(newModel(message),
		tea.WithoutSignalHandler(),
		tea.WithInput(nil),
		tea.WithOutput(s.out),
	)
	go func() {
		_, _ = s.program.Run()
		close(s.done)
	}()
	return s
}

// Stop ends the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.program.Quit()
		select {
		case <-s.done:
		case <-time.After(stopTimeout):
		}
		fmt.Fprint(s.out, "\r\033[K")
	})
}

// While runs fn and shows message with a spinner meanwhile when show is true.
func While[T any](show bool, message string, fn func() (T, error)) (T, error) {
	if !show {
		return fn()
	}
	s := Start(message)
	defer s.Stop()
	return fn()
}
