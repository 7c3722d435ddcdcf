package teaui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Commit       key.Binding
	Select       key.Binding
	Deselect     key.Binding
	CommitBuffer key.Binding
	ClearQuery   key.Binding
	PrevCategory key.Binding
	NextCategory key.Binding
	Skintones    key.Binding
	EditTags     key.Binding
	Hide         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:         key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:         key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:        key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Commit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy")),
		Select:       key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "add to selection")),
		Deselect:     key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "remove last")),
		CommitBuffer: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy selection")),
		ClearQuery:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear search")),
		PrevCategory: key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+←", "previous category")),
		NextCategory: key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "next category")),
		Skintones:    key.NewBinding(key.WithKeys("alt+e"), key.WithHelp("alt+e", "skintones")),
		EditTags:     key.NewBinding(key.WithKeys("alt+t"), key.WithHelp("alt+t", "custom tags")),
		Hide:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Help:         key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:         key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Select, k.CommitBuffer, k.Hide, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Commit, k.Select, k.Deselect, k.CommitBuffer},
		{k.ClearQuery, k.PrevCategory, k.NextCategory},
		{k.Skintones, k.EditTags, k.Hide, k.Help},
	}
}
