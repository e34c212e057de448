package view

import (
	"github.com/five82/tailview/internal/pattern"
	"github.com/five82/tailview/internal/record"
)

// HighlightKind distinguishes the three highlight overlays.
type HighlightKind int

const (
	HighlightSearch HighlightKind = iota
	HighlightFilter
	HighlightCurrent
)

// Append is one "insert this record's text" instruction. Tag carries the
// severity name for classified records, empty otherwise.
type Append struct {
	Record int
	Text   string
	Tag    string
}

// Highlight marks a match span inside a visible record, addressed as a
// (record index, intra-record byte span) pair.
type Highlight struct {
	Record int
	Span   pattern.Span
	Kind   HighlightKind
}

// Result is the edit script produced by a projection. A consumer applies
// it verbatim: erase everything from line TruncateFrom to the end of the
// rendered output, then append each entry of Appends in order. It never
// asks for a full-document reflow.
//
// Highlights covers search and filter spans for every visible record at
// or after DirtyFrom; spans for earlier records are untouched by this
// projection and any cache of them remains valid.
type Result struct {
	DirtyFrom    int // first record index this projection recomputed
	TruncateFrom int // rendered line where the rebuilt suffix starts
	Appends      []Append
	Highlights   []Highlight
	TotalLines   int // rendered line count after applying the script
}

// Empty reports whether the script appends nothing and ends where its
// rebuilt suffix starts. That alone does not mean applying it is a
// no-op: when the dirty suffix became entirely hidden the script is
// truncate-only and still erases previously rendered lines. Consumers
// tracking rendered output must also compare TotalLines against their
// current line count before skipping a script.
func (r Result) Empty() bool {
	return len(r.Appends) == 0 && r.TruncateFrom == r.TotalLines
}

// Project recomputes visibility and render ranges for every record at or
// after dirtyStart and emits the minimal edit script for the suffix.
// Records before dirtyStart are untouched, so total work is proportional
// to the tail of the list, not the whole history.
//
// A record is visible when the filter pattern matches its text and its
// severity (if any) is toggled on. Visible records get contiguous
// [Start, End) line ranges in declaration order; hidden records get an
// empty [line, line) range at their render position, so the edit point
// of a later projection is always the immediate predecessor's End, with
// no scan back over hidden prefixes.
func Project(records []*record.Record, dirtyStart int, filter, search *pattern.Pattern) Result {
	if dirtyStart < 0 {
		dirtyStart = 0
	}
	if dirtyStart > len(records) {
		dirtyStart = len(records)
	}

	// The single edit point: the render end of the record just before
	// the dirty suffix, or the origin when there is none.
	origin := 0
	if dirtyStart > 0 {
		origin = records[dirtyStart-1].End
	}

	res := Result{DirtyFrom: dirtyStart, TruncateFrom: origin}
	line := origin
	for i := dirtyStart; i < len(records); i++ {
		rec := records[i]
		rec.Visible = filter.Matches(rec.Text) && (rec.Level == nil || rec.Level.Visible)
		if !rec.Visible {
			rec.Start, rec.End = line, line
			continue
		}
		rec.Start = line
		rec.End = line + rec.LineCount()
		line = rec.End

		tag := ""
		if rec.Level != nil {
			tag = rec.Level.Name
		}
		res.Appends = append(res.Appends, Append{Record: i, Text: rec.Text, Tag: tag})

		for _, span := range search.AllMatches(rec.Text) {
			res.Highlights = append(res.Highlights, Highlight{Record: i, Span: span, Kind: HighlightSearch})
		}
		for _, span := range filter.AllMatches(rec.Text) {
			res.Highlights = append(res.Highlights, Highlight{Record: i, Span: span, Kind: HighlightFilter})
		}
	}
	res.TotalLines = line
	return res
}
