package keys

import "github.com/charmbracelet/bubbles/key"

// PromptKeys are the bindings of the password prompt
type PromptKeys struct {
	Submit key.Binding
	Cancel key.Binding
}

func NewPromptKeys() PromptKeys {
	return PromptKeys{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

func (k PromptKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

func (k PromptKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ScanKeys are the bindings available while discovery runs
type ScanKeys struct {
	Quit key.Binding
}

func NewScanKeys() ScanKeys {
	return ScanKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "abort scan"),
		),
	}
}

func (k ScanKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k ScanKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
