package ui

import (
	"strings"

	"github.com/five82/tailview/internal/view"
)

// bufLine is one rendered physical line plus enough metadata to map
// record-relative highlight spans back onto it.
type bufLine struct {
	text   string
	record int    // owning record index
	offset int    // byte offset of the line start within the record text
	tag    string // severity name, empty when unclassified
}

// logBuffer is the rendering surface the projection's edit scripts are
// applied to: a flat list of physical lines plus the highlight spans of
// every visible record. It never rebuilds more than the suffix an edit
// script names.
type logBuffer struct {
	lines      []bufLine
	highlights []view.Highlight
}

// apply executes an edit script: truncate the rendered suffix, append
// the visible records' lines, and splice the highlight cache at the
// projection's dirty boundary.
func (b *logBuffer) apply(res view.Result) {
	if res.TruncateFrom < len(b.lines) {
		b.lines = b.lines[:res.TruncateFrom]
	}
	for _, ap := range res.Appends {
		off := 0
		for _, ln := range strings.Split(ap.Text, "\n") {
			b.lines = append(b.lines, bufLine{
				text:   ln,
				record: ap.Record,
				offset: off,
				tag:    ap.Tag,
			})
			off += len(ln) + 1
		}
	}

	var kept []view.Highlight
	for _, h := range b.highlights {
		if h.Record < res.DirtyFrom {
			kept = append(kept, h)
		}
	}
	b.highlights = append(kept, res.Highlights...)
}

// clear empties the buffer.
func (b *logBuffer) clear() {
	b.lines = nil
	b.highlights = nil
}

// lineCount returns the number of rendered lines.
func (b *logBuffer) lineCount() int { return len(b.lines) }

// searchMatches returns the search-kind highlights as an ordered match
// list for the navigator.
func (b *logBuffer) searchMatches() []view.Match {
	var matches []view.Match
	for _, h := range b.highlights {
		if h.Kind == view.HighlightSearch {
			matches = append(matches, view.Match{
				Record: h.Record,
				Start:  h.Span.Start,
				End:    h.Span.End,
			})
		}
	}
	return matches
}

// recordAt returns the record index owning the given rendered line.
func (b *logBuffer) recordAt(line int) (int, bool) {
	if line < 0 || line >= len(b.lines) {
		return 0, false
	}
	return b.lines[line].record, true
}

// lineOf returns the rendered line containing the start of match m, or
// -1 when the record is not currently rendered.
func (b *logBuffer) lineOf(m view.Match) int {
	for i, ln := range b.lines {
		if ln.record != m.Record {
			continue
		}
		if m.Start >= ln.offset && m.Start < ln.offset+len(ln.text)+1 {
			return i
		}
	}
	return -1
}

// run is a styled segment of a line: [start, end) byte offsets into the
// line text plus the highlight kind painted over it (-1 = none).
type run struct {
	start, end int
	kind       int
}

const runPlain = -1

// runsFor computes the styled segments of rendered line i. Highlight
// priority when spans overlap: current match, then search, then filter.
func (b *logBuffer) runsFor(i int, current *view.Match) []run {
	ln := b.lines[i]
	if len(ln.text) == 0 {
		return nil
	}

	// kind per byte; small lines make this cheap and simple.
	kinds := make([]int, len(ln.text))
	for j := range kinds {
		kinds[j] = runPlain
	}
	paint := func(start, end, kind int) {
		start -= ln.offset
		end -= ln.offset
		if start < 0 {
			start = 0
		}
		if end > len(kinds) {
			end = len(kinds)
		}
		for j := start; j < end; j++ {
			kinds[j] = kind
		}
	}

	for _, h := range b.highlights {
		if h.Record != ln.record || h.Kind != view.HighlightFilter {
			continue
		}
		paint(h.Span.Start, h.Span.End, int(view.HighlightFilter))
	}
	for _, h := range b.highlights {
		if h.Record != ln.record || h.Kind != view.HighlightSearch {
			continue
		}
		paint(h.Span.Start, h.Span.End, int(view.HighlightSearch))
	}
	if current != nil && current.Record == ln.record {
		paint(current.Start, current.End, int(view.HighlightCurrent))
	}

	var runs []run
	start := 0
	for j := 1; j <= len(kinds); j++ {
		if j == len(kinds) || kinds[j] != kinds[start] {
			runs = append(runs, run{start: start, end: j, kind: kinds[start]})
			start = j
		}
	}
	return runs
}
