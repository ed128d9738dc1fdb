package keys

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind classifies a keystroke into the closed set of events the selection
// components understand.
type Kind int

const (
	KindNone Kind = iota // anything the engine ignores
	KindCancel
	KindBackspace
	KindUp
	KindDown
	KindConfirm
	KindRune // exactly one printable character
)

// Event is a classified keystroke
type Event struct {
	Kind Kind
	Rune rune // set only for KindRune
}

// Classify maps a key message to an Event. Classification order is fixed:
// cancel keys, backspace, navigation (arrows and ctrl+p/ctrl+n), confirm,
// then single printable runes. Everything else is KindNone.
func Classify(msg tea.KeyMsg) Event {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return Event{Kind: KindCancel}
	case tea.KeyBackspace:
		return Event{Kind: KindBackspace}
	case tea.KeyUp, tea.KeyCtrlP:
		return Event{Kind: KindUp}
	case tea.KeyDown, tea.KeyCtrlN:
		return Event{Kind: KindDown}
	case tea.KeyEnter:
		return Event{Kind: KindConfirm}
	case tea.KeySpace:
		return Event{Kind: KindRune, Rune: ' '}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && unicode.IsPrint(msg.Runes[0]) {
			return Event{Kind: KindRune, Rune: msg.Runes[0]}
		}
	}
	return Event{Kind: KindNone}
}

// Cancel is a convenience constructor used by components and tests
func Cancel() Event { return Event{Kind: KindCancel} }

// Backspace is a convenience constructor
func Backspace() Event { return Event{Kind: KindBackspace} }

// Up is a convenience constructor
func Up() Event { return Event{Kind: KindUp} }

// Down is a convenience constructor
func Down() Event { return Event{Kind: KindDown} }

// Confirm is a convenience constructor
func Confirm() Event { return Event{Kind: KindConfirm} }

// Rune wraps a printable character
func Rune(r rune) Event { return Event{Kind: KindRune, Rune: r} }
