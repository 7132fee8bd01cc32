package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, PrevPage, NextPage key.Binding
	Add, Toggle, Edit, Remove    key.Binding
	Submit, Cancel               key.Binding
	Yes, No                      key.Binding
	Help, Quit                   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage: key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Remove:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:      key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "yes")),
		No:       key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Remove, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Add, k.Toggle, k.Edit, k.Remove},
		{k.Submit, k.Cancel, k.Help, k.Quit},
	}
}

// inputKeys is the help shown while a text input has focus.
type inputKeys struct{ k keyMap }

func (i inputKeys) ShortHelp() []key.Binding   { return []key.Binding{i.k.Submit, i.k.Cancel} }
func (i inputKeys) FullHelp() [][]key.Binding { return [][]key.Binding{i.ShortHelp()} }

type promptKeys struct{ k keyMap }

func (p promptKeys) ShortHelp() []key.Binding   { return []key.Binding{p.k.Yes, p.k.No} }
func (p promptKeys) FullHelp() [][]key.Binding { return [][]key.Binding{p.ShortHelp()} }
