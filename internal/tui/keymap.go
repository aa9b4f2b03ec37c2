package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the dashboard. It also feeds the help
// overlay text.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Enter       key.Binding
	Esc         key.Binding
	Quit        key.Binding
	Help        key.Binding
	Search      key.Binding
	Group       key.Binding
	Kill        key.Binding
	Test        key.Binding
	FlushDNS    key.Binding
	Outbound    key.Binding
	MITM        key.Binding
	Capture     key.Binding
	Start       key.Binding
	Reload      key.Binding
	Copy        key.Binding
	Notifs      key.Binding
	Devtools    key.Binding
	ViewKeys    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous app group"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next app group"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open group / select policy"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Group: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "group by app"),
		),
		Kill: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "kill connection"),
		),
		Test: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "test policy group"),
		),
		FlushDNS: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "flush DNS"),
		),
		Outbound: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "cycle outbound mode"),
		),
		MITM: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle MITM"),
		),
		Capture: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle capture"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start Surge"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload / refresh"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy URL"),
		),
		Notifs: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notification history"),
		),
		Devtools: key.NewBinding(
			key.WithKeys("`", "~"),
			key.WithHelp("`", "devtools"),
		),
		ViewKeys: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "switch view"),
		),
	}
}
