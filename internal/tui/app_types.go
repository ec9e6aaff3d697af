package tui

import (
	vscroll "folio-cli/internal/viewport"

	"github.com/charmbracelet/bubbles/key"
)

type stripFrameMsg struct{ gen int }

type slideFrameMsg struct{ gen int }

type startupTimerMsg struct{ phase vscroll.Phase }

type startupFrameMsg struct{ phase vscroll.Phase }

type resizeDoneMsg struct{ seq uint64 }

type flashDoneMsg struct{ seq int }

// modalFocus is the viewer control that has keyboard focus. focusNone means
// keys go straight to the viewer.
type modalFocus int

const (
	focusNone modalFocus = iota
	focusPrevImage
	focusNextImage
	focusPrevProject
	focusNextProject
	focusClose

	modalFocusCount
)

func (f modalFocus) label() string {
	switch f {
	case focusPrevImage:
		return glyphScrollLeft() + " image"
	case focusNextImage:
		return "image " + glyphScrollRight()
	case focusPrevProject:
		return pick("«", "<<") + " project"
	case focusNextProject:
		return "project " + pick("»", ">>")
	case focusClose:
		return "close"
	default:
		return ""
	}
}

type keyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	JumpTab   key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	StripLeft key.Binding
	StripRgt  key.Binding
	Filter    key.Binding
	Open      key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextTab:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "prev tab")),
		JumpTab:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump to tab")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		StripLeft: key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "scroll tabs left")),
		StripRgt:  key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "scroll tabs right")),
		Filter:    key.NewBinding(key.WithKeys("f", "F"), key.WithHelp("f/F", "filter")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view project")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Down, k.Open, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.JumpTab, k.StripLeft, k.StripRgt},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Filter, k.Open, k.Theme, k.Help, k.Quit},
	}
}

// modalKeyMap is only used for the viewer's help line.
type modalKeyMap struct {
	Image   key.Binding
	Project key.Binding
	Jump    key.Binding
	Focus   key.Binding
	Close   key.Binding
}

func newModalKeyMap() modalKeyMap {
	return modalKeyMap{
		Image:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "image")),
		Project: key.NewBinding(key.WithKeys("p", "n"), key.WithHelp("p/n", "project")),
		Jump:    key.NewBinding(key.WithKeys("1", "9"), key.WithHelp("1-9", "jump")),
		Focus:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "buttons")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func (k modalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Image, k.Project, k.Jump, k.Focus, k.Close}
}

func (k modalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
