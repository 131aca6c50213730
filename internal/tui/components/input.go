package components

import (
	"github.com/allbin/boardfinder/internal/tui/keys"
	"github.com/allbin/boardfinder/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PasswordInput is a masked single-line prompt. It quits the program once
// the user submits or cancels.
type PasswordInput struct {
	prompt    string
	textInput textinput.Model
	keys      keys.PromptKeys
	help      help.Model
	submitted bool
	cancelled bool
}

func NewPasswordInput(prompt string) *PasswordInput {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	ti.Prompt = "" // Rendered by View
	ti.Width = 32
	ti.Focus()

	return &PasswordInput{
		prompt:    prompt,
		textInput: ti,
		keys:      keys.NewPromptKeys(),
		help:      help.New(),
	}
}

func (p *PasswordInput) Init() tea.Cmd {
	return textinput.Blink
}

func (p *PasswordInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, p.keys.Submit):
			p.submitted = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.Cancel):
			p.cancelled = true
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.textInput, cmd = p.textInput.Update(msg)
	return p, cmd
}

func (p *PasswordInput) View() string {
	if p.submitted || p.cancelled {
		return ""
	}
	field := styles.InputStyle.Render(p.textInput.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.PromptStyle.Render(p.prompt),
		field,
		p.help.View(p.keys),
	) + "\n"
}

// Value returns the entered secret.
func (p *PasswordInput) Value() string {
	return p.textInput.Value()
}

// Submitted reports whether the user confirmed the input.
func (p *PasswordInput) Submitted() bool {
	return p.submitted
}

// Cancelled reports whether the user aborted the prompt.
func (p *PasswordInput) Cancelled() bool {
	return p.cancelled
}
