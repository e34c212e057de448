// Package record groups raw text chunks into logical log records. A
// record starts at a date-prefixed line and absorbs following lines as
// continuations, so one record may span several physical lines.
package record

import (
	"regexp"
	"strings"

	"github.com/five82/tailview/internal/severity"
)

// startRe is the fixed "new record" rule: a line beginning with an
// ISO-style date starts a record, anything else continues the last one.
var startRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Record is one logical log entry.
//
// Visible, Start, and End are projection cache written back by the view
// projector: Start/End are the [start, end) line range of the record in
// the rendered output. Hidden records carry an empty range at their
// render position, so End is valid as an edit point either way until a
// later projection invalidates it.
type Record struct {
	Text  string
	Level *severity.Level // nil = unclassified

	Visible bool
	Start   int
	End     int
}

// LineCount returns the number of physical lines in the record.
func (r *Record) LineCount() int {
	return strings.Count(r.Text, "\n") + 1
}

// Assembler owns the append-only record list. Records are never
// re-split once created; continuation lines only ever extend the most
// recent record, and the list is only ever emptied wholesale by Clear.
type Assembler struct {
	classifier *severity.Classifier
	records    []*Record
}

// NewAssembler returns an assembler classifying new records with c.
func NewAssembler(c *severity.Classifier) *Assembler {
	return &Assembler{classifier: c}
}

// AppendChunk splits chunk into physical lines (terminators stripped,
// lines that become empty dropped) and folds them into the record list.
// A line matching the record-start rule opens a new record, as does any
// line when the list is empty; everything else extends the last record.
//
// It returns the index of the first record created or mutated by this
// call, so the caller can re-project only the affected suffix. ok is
// false when the chunk contained no usable lines.
func (a *Assembler) AppendChunk(chunk string) (dirty int, ok bool) {
	dirty = len(a.records)
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		if startRe.MatchString(line) || len(a.records) == 0 {
			a.records = append(a.records, &Record{
				Text:  line,
				Level: a.classifier.Classify(line),
			})
			ok = true
			continue
		}
		last := a.records[len(a.records)-1]
		last.Text += "\n" + line
		ok = true
		if len(a.records)-1 < dirty {
			dirty = len(a.records) - 1
		}
	}
	return dirty, ok
}

// Records returns the live record list. Callers must not reorder or
// truncate it; the view projector writes back projection cache fields.
func (a *Assembler) Records() []*Record { return a.records }

// Len returns the number of records.
func (a *Assembler) Len() int { return len(a.records) }

// Clear empties the record list.
func (a *Assembler) Clear() {
	a.records = nil
}
