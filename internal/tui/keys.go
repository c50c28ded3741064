package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Grab      key.Binding
	Cancel    key.Binding
	NewItem   key.Binding
	Image     key.Binding
	ImportCSV key.Binding
	NewTier   key.Binding
	Rename    key.Binding
	Remove    key.Binding
	TierUp    key.Binding
	TierDown  key.Binding
	Find      key.Binding
	Share     key.Binding
	Reset     key.Binding
	Chart     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Grab:      key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "pick up/drop")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NewItem:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new item")),
		Image:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "image")),
		ImportCSV: key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "import csv")),
		NewTier:   key.NewBinding(key.WithKeys("+", "a"), key.WithHelp("+", "new tier")),
		Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename tier")),
		Remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove tier")),
		TierUp:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "tier up")),
		TierDown:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "tier down")),
		Find:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Share:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
		Reset:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		Chart:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "tier chart")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.NewItem, k.NewTier, k.Find, k.Share, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Grab, k.Cancel, k.Find},
		{k.NewItem, k.Image, k.ImportCSV},
		{k.NewTier, k.Rename, k.Remove, k.TierUp, k.TierDown},
		{k.Share, k.Reset, k.Chart, k.Help, k.Quit},
	}
}
