package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the normal-mode keybinding table, implementing
// help.KeyMap so bubbles/help can render it directly.
type KeyMap struct {
	Up, Down         key.Binding
	HalfPageUp       key.Binding
	HalfPageDown     key.Binding
	FullPageUp       key.Binding
	FullPageDown     key.Binding
	Top, Bottom      key.Binding
	NextHunk         key.Binding
	PrevHunk         key.Binding
	NextFile         key.Binding
	PrevFile         key.Binding
	FocusFiles       key.Binding
	FocusDiff        key.Binding
	FocusComments    key.Binding
	ToggleReviewed   key.Binding
	NewComment       key.Binding
	ResolveComment   key.Binding
	Command          key.Binding
	Help             key.Binding
	Quit             key.Binding
}

// DefaultKeyMap holds the vim-flavored navigation a terminal code-review
// tool's users expect. The uppercase H/L panel-cycling keys are not in
// this table; handleKey in update.go matches them directly.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:             key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:           key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		HalfPageUp:     key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		HalfPageDown:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
		FullPageUp:     key.NewBinding(key.WithKeys("ctrl+b", "pgup"), key.WithHelp("ctrl+b", "page up")),
		FullPageDown:   key.NewBinding(key.WithKeys("ctrl+f", "pgdown"), key.WithHelp("ctrl+f", "page down")),
		Top:            key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom:         key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		NextHunk:       key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next hunk")),
		PrevHunk:       key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev hunk")),
		NextFile:       key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "next file")),
		PrevFile:       key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "prev file")),
		FocusFiles:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "focus files")),
		FocusDiff:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "focus diff")),
		FocusComments:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "focus comments")),
		ToggleReviewed: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "toggle reviewed")),
		NewComment:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new comment")),
		ResolveComment: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "resolve comment")),
		Command:        key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextHunk, k.NewComment, k.ToggleReviewed, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.FullPageUp, k.FullPageDown, k.Top, k.Bottom},
		{k.NextHunk, k.PrevHunk, k.NextFile, k.PrevFile},
		{k.FocusFiles, k.FocusDiff, k.FocusComments},
		{k.ToggleReviewed, k.NewComment, k.ResolveComment, k.Command},
		{k.Help, k.Quit},
	}
}
