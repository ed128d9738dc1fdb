package palette

import (
	"fmt"
	"strings"
	"unicode"

	"modelgrip/internal/ui/keys"
	"modelgrip/internal/ui/views"
)

// Action is a leaf entry: one chord key bound to a zero-argument effect
type Action struct {
	Key         rune
	Label       string
	Description string
	Run         func()
}

// Group owns an ordered set of actions under one chord key
type Group struct {
	Key     rune
	Label   string
	Actions []Action
}

// Entry is a top-level palette entry: a group or a direct action. The
// variant set is closed; every consumer switches exhaustively over the two.
type Entry struct {
	group  *Group
	action *Action
}

// GroupEntry wraps a group as a root entry
func GroupEntry(g Group) Entry {
	return Entry{group: &g}
}

// ActionEntry wraps a direct action as a root entry
func ActionEntry(a Action) Entry {
	return Entry{action: &a}
}

// Result is the terminal outcome of a palette: the activated action, or nil
// when the palette was dismissed.
type Result struct {
	Action *Action
}

// Palette is the two-level chorded command palette. It is either at the
// root view or inside one group; chord keys select, reserved control keys
// operate on the highlighted row.
type Palette struct {
	title   string
	entries []Entry

	inGroup     *Group // nil at root
	highlighted int
}

// New validates the entry set and builds a palette. Chord keys must be
// lowercase printable characters and unique within their scope (the root,
// or one group); duplicates are a configuration defect and are rejected.
func New(title string, entries ...Entry) (*Palette, error) {
	if err := validateScope("root", rootKeys(entries)); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.group == nil {
			continue
		}
		scoped := make([]rune, len(e.group.Actions))
		for i, a := range e.group.Actions {
			scoped[i] = a.Key
		}
		if err := validateScope(fmt.Sprintf("group %q", e.group.Label), scoped); err != nil {
			return nil, err
		}
	}
	return &Palette{title: title, entries: entries}, nil
}

func rootKeys(entries []Entry) []rune {
	out := make([]rune, len(entries))
	for i, e := range entries {
		if e.group != nil {
			out[i] = e.group.Key
		} else {
			out[i] = e.action.Key
		}
	}
	return out
}

func validateScope(scope string, chords []rune) error {
	seen := make(map[rune]bool, len(chords))
	for _, key := range chords {
		if !unicode.IsPrint(key) || unicode.ToLower(key) != key {
			return fmt.Errorf("%s: chord key %q must be a lowercase printable character", scope, key)
		}
		if seen[key] {
			return fmt.Errorf("%s: duplicate chord key %q", scope, key)
		}
		seen[key] = true
	}
	return nil
}

// InGroup reports whether the palette is inside a group view
func (p *Palette) InGroup() bool { return p.inGroup != nil }

// Highlighted returns the index of the highlighted row in the current scope
func (p *Palette) Highlighted() int { return p.highlighted }

func (p *Palette) scopeLen() int {
	if p.inGroup != nil {
		return len(p.inGroup.Actions)
	}
	return len(p.entries)
}

// HandleEvent applies one keystroke. It returns a terminal Result when an
// action was activated or the palette dismissed, nil while it stays open.
func (p *Palette) HandleEvent(ev keys.Event) *Result {
	switch ev.Kind {
	case keys.KindCancel:
		return &Result{}
	case keys.KindBackspace:
		if p.inGroup != nil {
			p.inGroup = nil
			p.highlighted = 0
			return nil
		}
		return &Result{}
	case keys.KindUp:
		if p.highlighted > 0 {
			p.highlighted--
		}
	case keys.KindDown:
		if p.highlighted < p.scopeLen()-1 {
			p.highlighted++
		}
	case keys.KindConfirm:
		return p.activateHighlighted()
	case keys.KindRune:
		return p.activateChord(unicode.ToLower(ev.Rune))
	}
	return nil
}

func (p *Palette) activateHighlighted() *Result {
	if p.scopeLen() == 0 {
		return nil
	}
	if p.inGroup != nil {
		a := p.inGroup.Actions[p.highlighted]
		return &Result{Action: &a}
	}
	e := p.entries[p.highlighted]
	if e.group != nil {
		p.enterGroup(e.group)
		return nil
	}
	return &Result{Action: e.action}
}

func (p *Palette) activateChord(key rune) *Result {
	if p.inGroup != nil {
		for _, a := range p.inGroup.Actions {
			if a.Key == key {
				a := a
				return &Result{Action: &a}
			}
		}
		return nil
	}
	for _, e := range p.entries {
		if e.group != nil && e.group.Key == key {
			p.enterGroup(e.group)
			return nil
		}
		if e.action != nil && e.action.Key == key {
			return &Result{Action: e.action}
		}
	}
	return nil
}

func (p *Palette) enterGroup(g *Group) {
	p.inGroup = g
	p.highlighted = 0
}

// View renders the palette for the given width
func (p *Palette) View(st *views.Styles, width int) string {
	var b strings.Builder

	if p.inGroup != nil {
		b.WriteString(st.Breadcrumb.Render(views.Truncate("< "+p.inGroup.Label, width)))
	} else {
		b.WriteString(st.Title.Render(views.Truncate(p.title, width)))
	}
	b.WriteString("\n")

	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var rows []string
	if p.inGroup != nil {
		for i, a := range p.inGroup.Actions {
			rows = append(rows, p.renderRow(st, i, a.Key, a.Label, a.Description, false, inner))
		}
	} else {
		for i, e := range p.entries {
			if e.group != nil {
				rows = append(rows, p.renderRow(st, i, e.group.Key, e.group.Label, "", true, inner))
			} else {
				rows = append(rows, p.renderRow(st, i, e.action.Key, e.action.Label, e.action.Description, false, inner))
			}
		}
	}
	if len(rows) == 0 {
		rows = append(rows, st.Empty.Render("nothing here"))
	}
	b.WriteString(st.ListBox.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	footer := "press key to select · esc close"
	if p.inGroup != nil {
		footer = "press key to run · backspace back · esc close"
	}
	b.WriteString(st.Help.Render(views.Truncate(footer, width)))

	return b.String()
}

func (p *Palette) renderRow(st *views.Styles, i int, key rune, label, desc string, submenu bool, width int) string {
	cursor := "  "
	rowStyle := st.Row
	if i == p.highlighted {
		cursor = "▸ "
		rowStyle = st.RowActive
	}

	badge := st.Badge.Render("[" + string(key) + "]")
	label = views.Truncate(label, width-8)
	row := cursor + badge + " " + rowStyle.Render(label)
	if submenu {
		row += " " + st.Submenu.Render("▸")
	} else if desc != "" {
		used := 6 + len([]rune(label))
		if width-used > 4 {
			row += "  " + st.Desc.Render(views.Truncate(desc, width-used-2))
		}
	}
	return row
}
