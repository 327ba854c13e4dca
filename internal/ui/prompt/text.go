package prompt

import (
	"os"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/catalyst/internal/ui/styles"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

type textInputModel struct {
	input     textinput.Model
	prompt    string
	done      bool
	cancelled bool
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(styles.HeaderStyle.Render(m.prompt) + "\n" + m.input.View())
}

func newTextInput(prompt, placeholder string) textInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.SetWidth(60)
	ti.Focus()
	return textInputModel{input: ti, prompt: prompt}
}

// TextInput shows a single-line input on stderr and returns what was typed.
func TextInput(prompt, placeholder string) (TextInputResult, error) {
	p := tea.NewProgram(newTextInput(prompt, placeholder), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return TextInputResult{}, err
	}
	m := final.(textInputModel)
	return TextInputResult{Value: m.input.Value(), Cancelled: m.cancelled}, nil
}
