// Package severity classifies log records into an ordered table of
// named levels, each with a detection rule and a visibility toggle.
package severity

import "regexp"

// Level is one named classification bucket. Visible is a display toggle
// read by the view projector; flipping it never reclassifies records.
type Level struct {
	Name    string
	Color   string // display hint, lipgloss-compatible
	Visible bool

	rule *regexp.Regexp
}

// NewLevel builds a visible level with the given detection rule.
func NewLevel(name, rule, color string) *Level {
	return &Level{
		Name:    name,
		Color:   color,
		Visible: true,
		rule:    regexp.MustCompile(rule),
	}
}

// Matches reports whether the level's detection rule matches text.
func (l *Level) Matches(text string) bool {
	return l.rule.MatchString(text)
}

// Classifier holds levels in detection-priority order.
type Classifier struct {
	levels []*Level
}

// NewClassifier returns a classifier over the given levels. Order
// matters: Classify returns the first level whose rule matches.
func NewClassifier(levels ...*Level) *Classifier {
	return &Classifier{levels: levels}
}

// DefaultLevels returns the standard table in detection order. Colors
// follow the log palette used across the UI themes.
func DefaultLevels() []*Level {
	return []*Level{
		NewLevel("Error", `^.*\sERROR\s`, "#FF6B6B"),
		NewLevel("Warning", `^.*\sWARN\s`, "#FFD700"),
		NewLevel("Info", `^.*\sINFO\s`, "#5FD75F"),
		NewLevel("Debug", `^.*\sDEBUG\s`, "#87CEEB"),
	}
}

// Levels returns the table in declaration order.
func (c *Classifier) Levels() []*Level { return c.levels }

// Classify returns the first level matching text, or nil when none does.
func (c *Classifier) Classify(text string) *Level {
	for _, l := range c.levels {
		if l.Matches(text) {
			return l
		}
	}
	return nil
}

// Level returns the level with the given name, or nil.
func (c *Classifier) Level(name string) *Level {
	for _, l := range c.levels {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// SetVisible toggles display for the named level. It reports whether the
// name was known. Existing records keep their classification; only the
// next projection is affected.
func (c *Classifier) SetVisible(name string, visible bool) bool {
	l := c.Level(name)
	if l == nil {
		return false
	}
	l.Visible = visible
	return true
}
