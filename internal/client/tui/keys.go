package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Search    key.Binding
	Sort      key.Binding
	LoadMore  key.Binding
	Theme     key.Binding
	Info      key.Binding
	Export    key.Binding
	SignOut   key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add entry")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit entry")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle sort")),
		LoadMore:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
		Info:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "about")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		SignOut:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "sign out")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
