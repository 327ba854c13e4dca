package prompt

import (
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/catalyst/internal/ui/styles"
)

// ConfirmResult holds the result of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.confirmed = true
	case "n", "N", "enter":
		m.confirmed = false
	case "ctrl+c", "q", "esc":
		m.cancelled = true
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) result() ConfirmResult {
	return ConfirmResult{Confirmed: m.confirmed && !m.cancelled, Cancelled: m.cancelled}
}

func (m confirmModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(styles.AccentStyle.Render(m.prompt) + styles.MutedStyle.Render(" [y/N] "))
}

// Confirm shows a yes/no prompt on stderr. Enter alone answers no.
func Confirm(prompt string) (ConfirmResult, error) {
	p := tea.NewProgram(confirmModel{prompt: prompt}, tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return ConfirmResult{}, err
	}
	return final.(confirmModel).result(), nil
}
