package fuzzy

import (
	"github.com/sahilm/fuzzy"

	"modelgrip/internal/domain"
)

// TextOf projects a candidate to the text the matcher scores against
type TextOf func(domain.Candidate) string

// LabelAndValue is the default projection: display label plus identity value
func LabelAndValue(c domain.Candidate) string {
	return c.Label + " " + c.Value
}

type source struct {
	items  []domain.Candidate
	textOf TextOf
}

func (s source) String(i int) string { return s.textOf(s.items[i]) }
func (s source) Len() int            { return len(s.items) }

// Match filters and ranks candidates against a query, best match first.
// The query's characters must appear in order (case-insensitively) in the
// projected text; candidates without such a subsequence are excluded.
// Scoring favours contiguous runs and matches on word boundaries; equal
// scores keep the original candidate order. An empty query is the identity:
// the input order is returned unchanged, with no filtering or rescoring.
func Match(items []domain.Candidate, query string, textOf TextOf) []domain.Candidate {
	if textOf == nil {
		textOf = LabelAndValue
	}

	if query == "" {
		out := make([]domain.Candidate, len(items))
		copy(out, items)
		return out
	}

	matches := fuzzy.FindFrom(query, source{items: items, textOf: textOf})

	out := make([]domain.Candidate, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}
