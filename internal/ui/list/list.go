package list

import (
	"fmt"
	"strings"

	"modelgrip/internal/domain"
	"modelgrip/internal/fuzzy"
	"modelgrip/internal/ui/keys"
	"modelgrip/internal/ui/views"
)

// DefaultWindow is the number of candidate rows visible at once
const DefaultWindow = 15

// List owns the live state of one searchable pick-list: the query text, the
// filtered and ranked candidates, the highlighted row and the scroll window.
// The candidate set is fixed at construction; the matcher is injected so the
// list never reaches into filtering internals.
type List struct {
	title      string
	candidates []domain.Candidate
	textOf     fuzzy.TextOf
	window     int

	query       string
	filtered    []domain.Candidate
	highlighted int
	scroll      int
	initial     int
}

// Option configures a List
type Option func(*List)

// WithWindow overrides the visible window size
func WithWindow(n int) Option {
	return func(l *List) {
		if n > 0 {
			l.window = n
		}
	}
}

// WithTextOf overrides the matcher projection
func WithTextOf(f fuzzy.TextOf) Option {
	return func(l *List) { l.textOf = f }
}

// WithHighlight pre-selects a row of the initial, unfiltered list. The
// pre-selection only holds until the first query edit.
func WithHighlight(i int) Option {
	return func(l *List) { l.initial = i }
}

// New creates a list over a fixed candidate set
func New(title string, candidates []domain.Candidate, opts ...Option) *List {
	l := &List{
		title:      title,
		candidates: candidates,
		textOf:     fuzzy.LabelAndValue,
		window:     DefaultWindow,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.refilter()
	if l.initial > 0 && l.initial < len(l.filtered) {
		l.highlighted = l.initial
		if l.highlighted >= l.window {
			l.scroll = l.highlighted - l.window + 1
		}
	}
	return l
}

func (l *List) refilter() {
	l.filtered = fuzzy.Match(l.candidates, l.query, l.textOf)
	l.highlighted = 0
	l.scroll = 0
}

// AppendChar appends one printable character to the query and re-filters
func (l *List) AppendChar(r rune) {
	l.query += string(r)
	l.refilter()
}

// Backspace removes the last query character and re-filters. On an empty
// query it is a no-op; treating that as cancel is a caller policy.
func (l *List) Backspace() {
	if l.query == "" {
		return
	}
	runes := []rune(l.query)
	l.query = string(runes[:len(runes)-1])
	l.refilter()
}

// MoveUp moves the highlight up one row, scrolling only when the highlight
// would leave the visible window.
func (l *List) MoveUp() {
	if l.highlighted == 0 {
		return
	}
	l.highlighted--
	if l.highlighted < l.scroll {
		l.scroll = l.highlighted
	}
}

// MoveDown moves the highlight down one row, clamped to the last candidate
func (l *List) MoveDown() {
	if l.highlighted >= len(l.filtered)-1 {
		return
	}
	l.highlighted++
	if l.highlighted >= l.scroll+l.window {
		l.scroll = l.highlighted - l.window + 1
	}
}

// Confirm returns the highlighted candidate. Confirming an empty result set
// is a no-op and reports ok=false.
func (l *List) Confirm() (domain.Candidate, bool) {
	if len(l.filtered) == 0 {
		return domain.Candidate{}, false
	}
	return l.filtered[l.highlighted], true
}

// HandleEvent applies one classified keystroke and returns a terminal
// outcome, or nil while the list stays open.
func (l *List) HandleEvent(ev keys.Event) *domain.Outcome {
	switch ev.Kind {
	case keys.KindCancel:
		out := domain.Cancelled()
		return &out
	case keys.KindBackspace:
		l.Backspace()
	case keys.KindUp:
		l.MoveUp()
	case keys.KindDown:
		l.MoveDown()
	case keys.KindConfirm:
		if c, ok := l.Confirm(); ok {
			out := domain.Chosen(c.Value)
			return &out
		}
	case keys.KindRune:
		l.AppendChar(ev.Rune)
	}
	return nil
}

// Query returns the current query text
func (l *List) Query() string { return l.query }

// Filtered returns the current filtered, ranked candidates
func (l *List) Filtered() []domain.Candidate { return l.filtered }

// Highlighted returns the index of the highlighted row within Filtered
func (l *List) Highlighted() int { return l.highlighted }

// ScrollOffset returns the index of the first visible row
func (l *List) ScrollOffset() int { return l.scroll }

// Window returns the visible window size
func (l *List) Window() int { return l.window }

// View renders the list. It is a pure function of the list state and the
// given width; rows are truncated, never wrapped.
func (l *List) View(st *views.Styles, width int) string {
	var b strings.Builder

	b.WriteString(st.Title.Render(views.Truncate(l.title, width)))
	b.WriteString("\n")

	if l.query != "" {
		b.WriteString(st.Query.Render(views.Truncate("> "+l.query, width)))
		b.WriteString("\n")
	}

	inner := width - 4 // border and padding
	if inner < 10 {
		inner = 10
	}

	var rows []string
	if len(l.filtered) == 0 {
		rows = append(rows, st.Empty.Render("no matches"))
	} else {
		if l.scroll > 0 {
			rows = append(rows, st.Scroll.Render(fmt.Sprintf("↑ %d more above", l.scroll)))
		}
		end := l.scroll + l.window
		if end > len(l.filtered) {
			end = len(l.filtered)
		}
		for i := l.scroll; i < end; i++ {
			rows = append(rows, l.renderRow(st, i, inner))
		}
		if below := len(l.filtered) - end; below > 0 {
			rows = append(rows, st.Scroll.Render(fmt.Sprintf("↓ %d more below", below)))
		}
	}

	b.WriteString(st.ListBox.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")
	b.WriteString(st.Help.Render(views.Truncate("↑/↓ navigate · enter select · esc cancel · type to filter", width)))

	return b.String()
}

func (l *List) renderRow(st *views.Styles, i, width int) string {
	c := l.filtered[i]
	active := i == l.highlighted

	cursor := "  "
	rowStyle, descStyle := st.Row, st.Desc
	if active {
		cursor = "▸ "
		rowStyle, descStyle = st.RowActive, st.DescActive
	}

	label := views.Truncate(c.Label, width-2)
	row := cursor + rowStyle.Render(label)
	used := 2 + len([]rune(label))
	if c.Description != "" && width-used > 4 {
		row += "  " + descStyle.Render(views.Truncate(c.Description, width-used-2))
	}
	return row
}
