package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// AllowList narrows the catalog to "provider/id" references matching any of
// its patterns. Patterns support `*` and `?` globs and match
// case-insensitively; an empty allow-list admits everything.
type AllowList struct {
	patterns []*regexp.Regexp
}

// NewAllowList compiles a pattern set
func NewAllowList(patterns []string) (*AllowList, error) {
	a := &AllowList{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := compileGlob(p)
		if err != nil {
			return nil, fmt.Errorf("invalid allow-list pattern %q: %w", p, err)
		}
		a.patterns = append(a.patterns, re)
	}
	return a, nil
}

// compileGlob translates a glob pattern to an anchored case-insensitive
// regexp. `*` matches any run of characters including `/`, `?` matches one.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(strings.ToLower(pattern))
	quoted = strings.ReplaceAll(quoted, `\*`, `.*`)
	quoted = strings.ReplaceAll(quoted, `\?`, `.`)
	return regexp.Compile("^" + quoted + "$")
}

// Match reports whether a "provider/id" reference is admitted
func (a *AllowList) Match(ref string) bool {
	if a == nil || len(a.patterns) == 0 {
		return true
	}
	ref = strings.ToLower(ref)
	for _, re := range a.patterns {
		if re.MatchString(ref) {
			return true
		}
	}
	return false
}
