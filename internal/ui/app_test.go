package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tailview/internal/controller"
)

const testTailInterval = 5 * time.Millisecond

func newTestModel(t *testing.T, ctrl *controller.Controller) Model {
	t.Helper()
	m := New(Options{
		Controller: ctrl,
		DrainEvery: time.Millisecond,
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
	})
	tm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return tm.(Model)
}

func tick(m Model) Model {
	tm, _ := m.Update(tickMsg(time.Now()))
	return tm.(Model)
}

func press(m Model, r rune) Model {
	tm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return tm.(Model)
}

// waitLines ticks the model until the rendered buffer holds want lines.
func waitLines(t *testing.T, m Model, want int) Model {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		m = tick(m)
		if m.buf.lineCount() == want {
			return m
		}
		time.Sleep(testTailInterval)
	}
	t.Fatalf("timed out waiting for %d rendered lines, have %d", want, m.buf.lineCount())
	return m
}

func TestTick_ErasesRecordHiddenByContinuation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("2024-01-01 INFO boom\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctrl := controller.New(controller.Options{TailInterval: testTailInterval})
	defer ctrl.Stop()
	if err := ctrl.OpenSource(path); err != nil {
		t.Fatalf("OpenSource err = %v", err)
	}
	if err := ctrl.SetFilter("boom$", true); err != nil {
		t.Fatalf("SetFilter err = %v", err)
	}

	m := newTestModel(t, ctrl)
	m = waitLines(t, m, 1)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("extra\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	// The continuation breaks the anchored filter match, so the record
	// flips hidden and the truncate-only script must erase its line.
	waitLines(t, m, 0)
}

func TestOpenPrompt_PathLettersTypeThrough(t *testing.T) {
	ctrl := controller.New(controller.Options{})
	defer ctrl.Stop()

	m := newTestModel(t, ctrl)
	m = press(m, 'o')
	if m.mode != modeOpen {
		t.Fatalf("mode = %v after o, want open prompt", m.mode)
	}

	// j and k are viewport scroll keys in normal mode; inside the prompt
	// they are just characters of the path.
	for _, r := range "kern.log" {
		m = press(m, r)
	}
	if got := m.input.Value(); got != "kern.log" {
		t.Fatalf("input value = %q, want %q", got, "kern.log")
	}
}

func TestOpenPrompt_ArrowsCycleRecent(t *testing.T) {
	recent := []string{"/tmp/a.log", "/tmp/b.log"}
	ctrl := controller.New(controller.Options{Recent: recent})
	defer ctrl.Stop()

	m := newTestModel(t, ctrl)
	m = press(m, 'o')
	if got := m.input.Value(); got != recent[0] {
		t.Fatalf("prompt opens with %q, want most recent %q", got, recent[0])
	}

	up := tea.KeyMsg{Type: tea.KeyUp}
	tm, _ := m.Update(up)
	m = tm.(Model)
	if got := m.input.Value(); got != recent[0] {
		t.Fatalf("after first up value = %q, want %q", got, recent[0])
	}
	tm, _ = m.Update(up)
	m = tm.(Model)
	if got := m.input.Value(); got != recent[1] {
		t.Fatalf("after second up value = %q, want %q", got, recent[1])
	}

	// Letters extend the cycled path instead of cycling again.
	m = press(m, 'j')
	if got := m.input.Value(); got != recent[1]+"j" {
		t.Fatalf("value = %q, want %q", got, recent[1]+"j")
	}
}
