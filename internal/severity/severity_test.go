package severity

import "testing"

func defaultClassifier() *Classifier {
	return NewClassifier(DefaultLevels()...)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string // level name, "" = unclassified
	}{
		{"error line", "2024-01-01 12:00:00 ERROR boom", "Error"},
		{"warning line", "2024-01-01 12:00:00 WARN slow", "Warning"},
		{"info line", "2024-01-01 12:00:00 INFO start", "Info"},
		{"debug line", "2024-01-01 12:00:00 DEBUG detail", "Debug"},
		{"unclassified", "2024-01-01 12:00:00 nothing here", ""},
		{"level word needs surrounding whitespace", "2024-01-01 ERRORS ahead", ""},
		{"level at line start does not match", "ERROR without timestamp", ""},
	}

	c := defaultClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := c.Classify(tt.text)
			got := ""
			if level != nil {
				got = level.Name
			}
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	c := defaultClassifier()
	// Both rules match; Error is declared first.
	level := c.Classify("x ERROR y WARN z")
	if level == nil || level.Name != "Error" {
		t.Fatalf("Classify = %v, want Error", level)
	}
}

func TestSetVisible(t *testing.T) {
	c := defaultClassifier()

	if !c.SetVisible("Info", false) {
		t.Fatal("SetVisible(Info) = false, want true")
	}
	if c.Level("Info").Visible {
		t.Fatal("Info should be hidden")
	}
	if c.SetVisible("Nope", false) {
		t.Fatal("SetVisible should reject unknown names")
	}

	// Toggling never reclassifies: detection still works while hidden.
	level := c.Classify("2024-01-01 12:00:00 INFO start")
	if level == nil || level.Name != "Info" {
		t.Fatalf("Classify = %v, want Info regardless of visibility", level)
	}
}

func TestLevelLookup(t *testing.T) {
	c := defaultClassifier()
	if got := c.Level("Warning"); got == nil || got.Name != "Warning" {
		t.Fatalf("Level(Warning) = %v", got)
	}
	if got := c.Level("warning"); got != nil {
		t.Fatalf("Level lookup should be case-sensitive, got %v", got)
	}
	if len(c.Levels()) != 4 {
		t.Fatalf("Levels() = %d entries, want 4", len(c.Levels()))
	}
}
