package list

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelgrip/internal/domain"
	"modelgrip/internal/ui/keys"
	"modelgrip/internal/ui/views"
)

func cands(labels ...string) []domain.Candidate {
	out := make([]domain.Candidate, len(labels))
	for i, l := range labels {
		out[i] = domain.Candidate{Value: l, Label: l}
	}
	return out
}

func TestInitialState(t *testing.T) {
	l := New("Pick a model", cands("a", "b", "c"))

	assert.Equal(t, "", l.Query())
	assert.Len(t, l.Filtered(), 3)
	assert.Equal(t, 0, l.Highlighted())
	assert.Equal(t, 0, l.ScrollOffset())
}

func TestAppendCharFiltersAndResets(t *testing.T) {
	l := New("t", cands("apple", "banana", "cherry"))
	l.MoveDown()
	l.MoveDown()

	l.AppendChar('a')

	assert.Equal(t, "a", l.Query())
	assert.Equal(t, 0, l.Highlighted())
	assert.Equal(t, 0, l.ScrollOffset())
	for _, c := range l.Filtered() {
		assert.Contains(t, strings.ToLower(c.Label), "a")
	}
}

func TestAppendThenBackspaceRestoresOrdering(t *testing.T) {
	l := New("t", cands("gpt-5", "claude-x", "gemini-pro", "claude-mini"))
	before := append([]domain.Candidate(nil), l.Filtered()...)

	l.AppendChar('c')
	l.Backspace()

	assert.Equal(t, before, l.Filtered())
	assert.Equal(t, 0, l.Highlighted())
}

func TestBackspaceOnEmptyQueryIsNoop(t *testing.T) {
	l := New("t", cands("a", "b"))
	l.MoveDown()

	l.Backspace()

	assert.Equal(t, "", l.Query())
	assert.Equal(t, 1, l.Highlighted(), "no refilter, highlight untouched")
}

func TestWithHighlightPreselects(t *testing.T) {
	l := New("t", cands("off", "low", "medium", "high"), WithHighlight(2))

	assert.Equal(t, 2, l.Highlighted())
	assert.Equal(t, 0, l.ScrollOffset())

	// pre-selection only holds until the first query edit
	l.AppendChar('l')
	assert.Equal(t, 0, l.Highlighted())
}

func TestWithHighlightScrollsIntoWindow(t *testing.T) {
	l := New("t", cands("a", "b", "c", "d", "e"), WithWindow(2), WithHighlight(3))

	assert.Equal(t, 3, l.Highlighted())
	assert.Equal(t, 2, l.ScrollOffset())
}

func TestWithHighlightOutOfRangeIgnored(t *testing.T) {
	l := New("t", cands("a", "b"), WithHighlight(9))

	assert.Equal(t, 0, l.Highlighted())
}

func TestMoveDownClampsAtEnd(t *testing.T) {
	l := New("t", cands("a", "b", "c"))

	for i := 0; i < len(l.Filtered())+5; i++ {
		l.MoveDown()
	}

	assert.Equal(t, 2, l.Highlighted())
}

func TestMoveUpClampsAtStart(t *testing.T) {
	l := New("t", cands("a", "b"))
	l.MoveUp()
	assert.Equal(t, 0, l.Highlighted())
}

func TestMinimalScrollPolicy(t *testing.T) {
	labels := make([]string, 20)
	for i := range labels {
		labels[i] = string(rune('a' + i))
	}
	l := New("t", cands(labels...), WithWindow(5))

	// moving inside the window does not scroll
	for i := 0; i < 4; i++ {
		l.MoveDown()
	}
	assert.Equal(t, 4, l.Highlighted())
	assert.Equal(t, 0, l.ScrollOffset())

	// one step past the window scrolls by exactly one
	l.MoveDown()
	assert.Equal(t, 5, l.Highlighted())
	assert.Equal(t, 1, l.ScrollOffset())

	// moving back up inside the window does not scroll
	l.MoveUp()
	assert.Equal(t, 4, l.Highlighted())
	assert.Equal(t, 1, l.ScrollOffset())

	// crossing the top edge scrolls back
	for i := 0; i < 4; i++ {
		l.MoveUp()
	}
	assert.Equal(t, 0, l.Highlighted())
	assert.Equal(t, 0, l.ScrollOffset())
}

func TestHighlightStaysInsideWindow(t *testing.T) {
	labels := make([]string, 40)
	for i := range labels {
		labels[i] = string(rune('a' + i%26))
	}
	l := New("t", cands(labels...), WithWindow(7))

	for i := 0; i < 50; i++ {
		l.MoveDown()
		h, s := l.Highlighted(), l.ScrollOffset()
		assert.GreaterOrEqual(t, h, s)
		assert.Less(t, h, s+l.Window())
	}
}

func TestConfirmReturnsHighlighted(t *testing.T) {
	l := New("t", cands("a", "b", "c"))
	l.MoveDown()

	c, ok := l.Confirm()
	require.True(t, ok)
	assert.Equal(t, "b", c.Value)
}

func TestConfirmOnEmptyResultSetIsNoop(t *testing.T) {
	l := New("t", cands("a", "b"))
	l.AppendChar('z')
	l.AppendChar('z')

	_, ok := l.Confirm()
	assert.False(t, ok)

	out := l.HandleEvent(keys.Confirm())
	assert.Nil(t, out, "confirm on empty set must not terminate the list")
}

func TestHandleEventCancel(t *testing.T) {
	l := New("t", cands("a"))

	out := l.HandleEvent(keys.Cancel())
	require.NotNil(t, out)
	assert.True(t, out.Cancelled)
}

func TestHandleEventConfirm(t *testing.T) {
	l := New("t", cands("alpha", "beta"))
	l.HandleEvent(keys.Rune('b'))
	l.HandleEvent(keys.Rune('e'))

	out := l.HandleEvent(keys.Confirm())
	require.NotNil(t, out)
	assert.False(t, out.Cancelled)
	assert.Equal(t, "beta", out.Value)
}

func TestViewShowsTitleRowsAndHelp(t *testing.T) {
	st := views.NewStyles()
	l := New("Select provider", []domain.Candidate{
		{Value: "anthropic", Label: "Anthropic", Description: "2 models"},
		{Value: "openai", Label: "OpenAI"},
	})

	out := l.View(st, 60)

	assert.Contains(t, out, "Select provider")
	assert.Contains(t, out, "Anthropic")
	assert.Contains(t, out, "2 models")
	assert.Contains(t, out, "OpenAI")
	assert.Contains(t, out, "esc cancel")
	assert.NotContains(t, out, "> ", "no query echo while query is empty")
}

func TestViewQueryEcho(t *testing.T) {
	st := views.NewStyles()
	l := New("t", cands("alpha"))
	l.AppendChar('a')

	assert.Contains(t, l.View(st, 60), "> a")
}

func TestViewEmptyState(t *testing.T) {
	st := views.NewStyles()
	l := New("t", cands("alpha"))
	l.AppendChar('z')

	assert.Contains(t, l.View(st, 60), "no matches")
}

func TestViewOverflowIndicators(t *testing.T) {
	st := views.NewStyles()
	labels := make([]string, 20)
	for i := range labels {
		labels[i] = string(rune('a' + i))
	}
	l := New("t", cands(labels...), WithWindow(5))

	out := l.View(st, 60)
	assert.Contains(t, out, "15 more below")
	assert.NotContains(t, out, "more above")

	for i := 0; i < 7; i++ {
		l.MoveDown()
	}
	out = l.View(st, 60)
	assert.Contains(t, out, "3 more above")
	assert.Contains(t, out, "12 more below")
}

func TestViewNeverWraps(t *testing.T) {
	st := views.NewStyles()
	l := New(strings.Repeat("very long title ", 10), []domain.Candidate{
		{Value: "x", Label: strings.Repeat("long label ", 20), Description: strings.Repeat("desc ", 30)},
	})

	out := l.View(st, 40)
	for _, line := range strings.Split(out, "\n") {
		// strip ANSI styling before measuring
		assert.LessOrEqual(t, visibleWidth(line), 40, "line overflows: %q", line)
	}
}

func visibleWidth(line string) int {
	n := 0
	inEscape := false
	for _, r := range line {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			n++
		}
	}
	return n
}
