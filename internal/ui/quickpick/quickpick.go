package quickpick

import (
	"strings"
	"unicode"

	"modelgrip/internal/domain"
	"modelgrip/internal/ui/keys"
	"modelgrip/internal/ui/views"
)

// Item binds one literal key to a candidate. The key is assigned by the
// caller, not derived from the label.
type Item struct {
	Key       rune
	Candidate domain.Candidate
}

// Pick is a single-key-activation picker over a small fixed set: pressing
// an item's assigned key selects it immediately, arrow-navigate plus enter
// is the fallback. Unlike a searchable list there is no query, and
// backspace cancels.
type Pick struct {
	title       string
	items       []Item
	highlighted int
}

// New creates a quick-pick over a fixed item set
func New(title string, items []Item) *Pick {
	return &Pick{title: title, items: items}
}

// Highlighted returns the index of the highlighted row
func (p *Pick) Highlighted() int { return p.highlighted }

// HandleEvent applies one keystroke and returns a terminal outcome, or nil
// while the picker stays open. A rune matching no assigned key is a no-op.
func (p *Pick) HandleEvent(ev keys.Event) *domain.Outcome {
	switch ev.Kind {
	case keys.KindCancel, keys.KindBackspace:
		out := domain.Cancelled()
		return &out
	case keys.KindUp:
		if p.highlighted > 0 {
			p.highlighted--
		}
	case keys.KindDown:
		if p.highlighted < len(p.items)-1 {
			p.highlighted++
		}
	case keys.KindConfirm:
		if len(p.items) == 0 {
			return nil
		}
		out := domain.Chosen(p.items[p.highlighted].Candidate.Value)
		return &out
	case keys.KindRune:
		key := unicode.ToLower(ev.Rune)
		for _, it := range p.items {
			if unicode.ToLower(it.Key) == key {
				out := domain.Chosen(it.Candidate.Value)
				return &out
			}
		}
	}
	return nil
}

// View renders the picker for the given width
func (p *Pick) View(st *views.Styles, width int) string {
	var b strings.Builder

	b.WriteString(st.Title.Render(views.Truncate(p.title, width)))
	b.WriteString("\n")

	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var rows []string
	if len(p.items) == 0 {
		rows = append(rows, st.Empty.Render("no favourites configured"))
	}
	for i, it := range p.items {
		cursor := "  "
		rowStyle := st.Row
		if i == p.highlighted {
			cursor = "▸ "
			rowStyle = st.RowActive
		}
		badge := st.Badge.Render("[" + string(it.Key) + "]")
		label := views.Truncate(it.Candidate.Label, inner-8)
		row := cursor + badge + " " + rowStyle.Render(label)
		if it.Candidate.Description != "" {
			used := 6 + len([]rune(label))
			if inner-used > 4 {
				row += "  " + st.Desc.Render(views.Truncate(it.Candidate.Description, inner-used-2))
			}
		}
		rows = append(rows, row)
	}
	b.WriteString(st.ListBox.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")
	b.WriteString(st.Help.Render(views.Truncate("press key · ↑/↓ + enter · esc close", width)))

	return b.String()
}
