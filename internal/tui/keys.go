package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search  key.Binding
	Type    key.Binding
	Gen     key.Binding
	Sprites key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Open    key.Binding
	Forms   key.Binding
	Back    key.Binding
	Retry   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Type:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type")),
		Gen:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generation")),
		Sprites: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sprites")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Forms:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forms")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Type, k.Gen, k.Sprites, k.Open, k.Forms, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Type, k.Gen, k.Sprites},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.Forms, k.Back, k.Retry, k.Quit},
	}
}
