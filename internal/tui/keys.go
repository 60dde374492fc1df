package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab       key.Binding
	ShiftTab  key.Binding
	Quit      key.Binding
	Help      key.Binding
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Progress  key.Binding
	Undo      key.Binding
	Share     key.Binding
	Clear     key.Binding
	AddWater  key.Binding
	WaterGoal key.Binding
	Rearm     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Progress: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "progress"),
		),
		Undo: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "undo"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear all"),
		),
		AddWater: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "add glass"),
		),
		WaterGoal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "water goal"),
		),
		Rearm: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart reminder"),
		),
	}
}
