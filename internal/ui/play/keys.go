package play

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings of the interactive screen.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Submit   key.Binding
	Retake   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "down")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		Submit:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit")),
		Retake:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retake")),
		Back:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Activate, k.Submit, k.Retake, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Activate}, {k.Submit, k.Retake, k.Back, k.Quit}}
}
