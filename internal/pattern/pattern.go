// Package pattern compiles user-supplied filter and search queries into
// matchers that yield non-overlapping match spans.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPattern reports a query that was flagged as a regular
// expression but does not compile. The pattern stays usable and matches
// nothing until it is replaced.
var ErrInvalidPattern = errors.New("invalid pattern")

// Span is a half-open [Start, End) byte range within a matched string.
type Span struct {
	Start int
	End   int
}

// Pattern is a compiled query: a raw string plus a regex-or-literal mode
// flag. The zero value and an empty raw string match everything and
// produce no spans.
type Pattern struct {
	raw     string
	isRegex bool

	// Compilation is lazy and memoized; both fields are meaningless
	// until compiled is true.
	compiled bool
	re       *regexp.Regexp
	err      error
}

// New returns a pattern for raw. Compilation happens on first use.
func New(raw string, isRegex bool) *Pattern {
	return &Pattern{raw: raw, isRegex: isRegex}
}

// Raw returns the original query string.
func (p *Pattern) Raw() string { return p.raw }

// IsRegex reports whether the pattern is interpreted as a regular expression.
func (p *Pattern) IsRegex() bool { return p.isRegex }

// Empty reports whether the query string is empty. An empty pattern
// matches every text and yields no spans.
func (p *Pattern) Empty() bool { return p.raw == "" }

// Err forces compilation and returns ErrInvalidPattern (wrapped with the
// regexp error) when the pattern is regex mode and does not compile.
func (p *Pattern) Err() error {
	p.compile()
	return p.err
}

func (p *Pattern) compile() {
	if p.compiled {
		return
	}
	p.compiled = true
	if !p.isRegex || p.raw == "" {
		return
	}
	re, err := regexp.Compile(p.raw)
	if err != nil {
		p.err = fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		return
	}
	p.re = re
}

// Matches reports whether text satisfies the pattern. An empty pattern
// matches everything; an invalid regex matches nothing.
func (p *Pattern) Matches(text string) bool {
	if p.raw == "" {
		return true
	}
	p.compile()
	if p.isRegex {
		if p.re == nil {
			return false
		}
		return p.re.MatchString(text)
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(p.raw))
}

// AllMatches returns every non-overlapping match span in text, left to
// right in a single pass. Literal mode scans case-insensitively and
// advances past each match's end, so overlapping occurrences are not
// double-counted. Regex mode uses the engine's own non-overlapping
// semantics. Empty and invalid patterns yield nil.
func (p *Pattern) AllMatches(text string) []Span {
	if p.raw == "" {
		return nil
	}
	p.compile()
	if p.isRegex {
		if p.re == nil {
			return nil
		}
		var spans []Span
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			spans = append(spans, Span{Start: loc[0], End: loc[1]})
		}
		return spans
	}

	haystack := strings.ToLower(text)
	needle := strings.ToLower(p.raw)
	var spans []Span
	for start := 0; ; {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			return spans
		}
		start += i
		end := start + len(needle)
		spans = append(spans, Span{Start: start, End: end})
		start = end
	}
}
