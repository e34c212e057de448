package view

import (
	"reflect"
	"strings"
	"testing"

	"github.com/five82/tailview/internal/pattern"
	"github.com/five82/tailview/internal/record"
	"github.com/five82/tailview/internal/severity"
)

func fixture(t *testing.T, chunk string) (*record.Assembler, *severity.Classifier) {
	t.Helper()
	c := severity.NewClassifier(severity.DefaultLevels()...)
	a := record.NewAssembler(c)
	if _, ok := a.AppendChunk(chunk); !ok {
		t.Fatalf("fixture chunk produced no records: %q", chunk)
	}
	return a, c
}

func anyPattern() *pattern.Pattern { return pattern.New("", true) }

func TestProject_LineCountConservation(t *testing.T) {
	a, _ := fixture(t, "2024-01-01 INFO start\nextra line\n2024-01-02 ERROR boom\n2024-01-03 DEBUG d\n")

	res := Project(a.Records(), 0, anyPattern(), anyPattern())

	want := 0
	for _, r := range a.Records() {
		if r.Visible {
			want += r.LineCount()
		}
	}
	if res.TotalLines != want {
		t.Fatalf("TotalLines = %d, want %d", res.TotalLines, want)
	}

	got := 0
	for _, ap := range res.Appends {
		got += strings.Count(ap.Text, "\n") + 1
	}
	if got != want {
		t.Fatalf("appended lines = %d, want %d", got, want)
	}
}

func TestProject_ContiguousRanges(t *testing.T) {
	a, _ := fixture(t, "2024-01-01 INFO one\ncont\n2024-01-02 WARN two\n2024-01-03 ERROR three\nmore\nlines\n")

	Project(a.Records(), 0, anyPattern(), anyPattern())

	next := 0
	for i, r := range a.Records() {
		if !r.Visible {
			t.Fatalf("record %d unexpectedly hidden", i)
		}
		if r.Start != next {
			t.Fatalf("record %d Start = %d, want %d", i, r.Start, next)
		}
		if r.End != r.Start+r.LineCount() {
			t.Fatalf("record %d End = %d, want %d", i, r.End, r.Start+r.LineCount())
		}
		next = r.End
	}
}

func TestProject_FilterScenario(t *testing.T) {
	a, _ := fixture(t, "2024-01-01 INFO start\nextra line\n2024-01-02 ERROR boom\n")

	filter := pattern.New("ERROR", false)
	res := Project(a.Records(), 0, filter, anyPattern())

	records := a.Records()
	if records[0].Visible {
		t.Fatal("record 0 should be filtered out")
	}
	if !records[1].Visible {
		t.Fatal("record 1 should be visible")
	}
	if res.TruncateFrom != 0 {
		t.Fatalf("TruncateFrom = %d, want 0", res.TruncateFrom)
	}
	if len(res.Appends) != 1 || res.Appends[0].Record != 1 {
		t.Fatalf("Appends = %+v, want only record 1", res.Appends)
	}
	if records[1].Start != 0 || records[1].End != 1 {
		t.Fatalf("record 1 range = [%d,%d), want [0,1)", records[1].Start, records[1].End)
	}

	// Filter highlight span over the visible record.
	wantSpan := pattern.Span{Start: 11, End: 16}
	found := false
	for _, h := range res.Highlights {
		if h.Kind == HighlightFilter && h.Record == 1 && h.Span == wantSpan {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing filter highlight %v in %+v", wantSpan, res.Highlights)
	}
}

func TestProject_SeverityToggleShiftsRanges(t *testing.T) {
	a, c := fixture(t, "2024-01-01 INFO start\nextra line\n2024-01-02 ERROR boom\n")

	Project(a.Records(), 0, anyPattern(), anyPattern())
	records := a.Records()
	if records[1].Start != 2 {
		t.Fatalf("record 1 Start = %d, want 2 before toggle", records[1].Start)
	}

	c.SetVisible("Info", false)
	res := Project(a.Records(), 0, anyPattern(), anyPattern())

	if records[0].Visible {
		t.Fatal("Info record should be hidden")
	}
	if !records[1].Visible {
		t.Fatal("Error record should stay visible")
	}
	if records[1].Start != 0 || records[1].End != 1 {
		t.Fatalf("record 1 range = [%d,%d), want [0,1)", records[1].Start, records[1].End)
	}
	if res.TotalLines != 1 {
		t.Fatalf("TotalLines = %d, want 1", res.TotalLines)
	}
}

func TestProject_UnclassifiedIgnoresSeverityToggles(t *testing.T) {
	a, c := fixture(t, "plain first record\n")
	for _, level := range c.Levels() {
		c.SetVisible(level.Name, false)
	}

	Project(a.Records(), 0, anyPattern(), anyPattern())
	if !a.Records()[0].Visible {
		t.Fatal("unclassified record should be visible with all severities off")
	}
}

func TestProject_SuffixOnly(t *testing.T) {
	a, _ := fixture(t, "2024-01-01 INFO one\n2024-01-02 INFO two\n")
	Project(a.Records(), 0, anyPattern(), anyPattern())

	dirty, _ := a.AppendChunk("2024-01-03 INFO three\n")
	res := Project(a.Records(), dirty, anyPattern(), anyPattern())

	if res.TruncateFrom != 2 {
		t.Fatalf("TruncateFrom = %d, want 2 (end of record 1)", res.TruncateFrom)
	}
	if len(res.Appends) != 1 || res.Appends[0].Record != 2 {
		t.Fatalf("Appends = %+v, want only the new record", res.Appends)
	}
	if res.TotalLines != 3 {
		t.Fatalf("TotalLines = %d, want 3", res.TotalLines)
	}
	// Highlights only cover the dirty suffix.
	for _, h := range res.Highlights {
		if h.Record < dirty {
			t.Fatalf("highlight for untouched record %d", h.Record)
		}
	}
}

func TestProject_EditPointSkipsHiddenPredecessors(t *testing.T) {
	a, _ := fixture(t, "2024-01-01 INFO one\n2024-01-02 ERROR two\n")
	filter := pattern.New("ERROR", false)
	Project(a.Records(), 0, filter, anyPattern())

	// Record 0 is hidden and carries an empty range at the origin, so
	// when record 1 is extended the edit point is 0, not a stale index.
	dirty, _ := a.AppendChunk("continuation of two\n")
	res := Project(a.Records(), dirty, filter, anyPattern())
	if res.TruncateFrom != 0 {
		t.Fatalf("TruncateFrom = %d, want 0 (record 0 is hidden)", res.TruncateFrom)
	}
	if res.TotalLines != 2 {
		t.Fatalf("TotalLines = %d, want 2", res.TotalLines)
	}
}

func TestProject_HiddenRecordsKeepRenderPosition(t *testing.T) {
	a, c := fixture(t, "2024-01-01 INFO one\ncont\n2024-01-02 WARN two\n2024-01-03 ERROR three\n")
	c.SetVisible("Warning", false)

	Project(a.Records(), 0, anyPattern(), anyPattern())
	records := a.Records()

	// The hidden middle record sits as an empty range between its
	// neighbours, keeping every End usable as an edit point.
	if records[1].Start != 2 || records[1].End != 2 {
		t.Fatalf("hidden record range = [%d,%d), want [2,2)", records[1].Start, records[1].End)
	}
	if records[2].Start != 2 || records[2].End != 3 {
		t.Fatalf("record 2 range = [%d,%d), want [2,3)", records[2].Start, records[2].End)
	}

	// A suffix projection starting right after the hidden record reads
	// its End directly.
	res := Project(records, 2, anyPattern(), anyPattern())
	if res.TruncateFrom != 2 {
		t.Fatalf("TruncateFrom = %d, want 2", res.TruncateFrom)
	}
}

func TestProject_ContinuationCanEmptyTheView(t *testing.T) {
	a, _ := fixture(t, "2024-01-01 INFO boom\n")
	filter := pattern.New("boom$", true)
	first := Project(a.Records(), 0, filter, anyPattern())
	if first.TotalLines != 1 {
		t.Fatalf("TotalLines = %d, want 1", first.TotalLines)
	}

	// The continuation breaks the anchored match, hiding the record.
	dirty, _ := a.AppendChunk("extra\n")
	res := Project(a.Records(), dirty, filter, anyPattern())
	if res.TruncateFrom != 0 || res.TotalLines != 0 || len(res.Appends) != 0 {
		t.Fatalf("projection = %+v, want truncate-only to 0 lines", res)
	}
	// The script reports Empty because it ends where it starts, yet a
	// consumer holding the old line must still apply the truncation.
	if !res.Empty() {
		t.Fatalf("Empty() = false for %+v", res)
	}
}

func TestProject_Idempotent(t *testing.T) {
	a, _ := fixture(t, "2024-01-01 INFO one\n2024-01-02 ERROR two\n")

	first := Project(a.Records(), 0, anyPattern(), anyPattern())
	if first.Empty() {
		t.Fatal("first projection should not be empty")
	}

	// No intervening changes: dirty start is past the end of the list.
	second := Project(a.Records(), a.Len(), anyPattern(), anyPattern())
	if !second.Empty() {
		t.Fatalf("second projection not empty: %+v", second)
	}
	if second.TruncateFrom != first.TotalLines {
		t.Fatalf("TruncateFrom = %d, want %d", second.TruncateFrom, first.TotalLines)
	}
}

func TestProject_SearchHighlights(t *testing.T) {
	a, _ := fixture(t, "2024-01-01 INFO alpha beta\n2024-01-02 INFO beta gamma\n")

	search := pattern.New("beta", false)
	res := Project(a.Records(), 0, anyPattern(), search)

	var got []Highlight
	for _, h := range res.Highlights {
		if h.Kind == HighlightSearch {
			got = append(got, h)
		}
	}
	want := []Highlight{
		{Record: 0, Span: pattern.Span{Start: 22, End: 26}, Kind: HighlightSearch},
		{Record: 1, Span: pattern.Span{Start: 16, End: 20}, Kind: HighlightSearch},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("search highlights = %+v, want %+v", got, want)
	}
}

func TestProject_TagCarriesSeverity(t *testing.T) {
	a, _ := fixture(t, "2024-01-01 ERROR boom\nplain continuation record\n")
	// Second chunk adds an unclassified record.
	a.AppendChunk("2024-01-02 nothing\n")

	res := Project(a.Records(), 0, anyPattern(), anyPattern())
	if res.Appends[0].Tag != "Error" {
		t.Fatalf("record 0 tag = %q, want Error", res.Appends[0].Tag)
	}
	if res.Appends[1].Tag != "" {
		t.Fatalf("record 1 tag = %q, want empty", res.Appends[1].Tag)
	}
}
