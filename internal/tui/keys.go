package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	UpDown     key.Binding
	Enter      key.Binding
	Close      key.Binding
	Search     key.Binding
	Sort       key.Binding
	Add        key.Binding
	AddSub     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	BulkEdit   key.Binding
	Duplicates key.Binding
	Merge      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		UpDown:     key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("j/k", "navigate")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/edit")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		AddSub:     key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add inside")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		BulkEdit:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bulk edit")),
		Duplicates: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "duplicates")),
		Merge:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "merge")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.UpDown, k.Search, k.Sort, k.Add, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.UpDown, k.Enter, k.Close},
		{k.Search, k.Sort, k.Add, k.AddSub, k.Edit, k.Delete},
		{k.BulkEdit, k.Duplicates, k.Merge, k.Quit},
	}
}
