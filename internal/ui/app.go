package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tailview/internal/controller"
	"github.com/five82/tailview/internal/prefs"
	"github.com/five82/tailview/internal/view"
)

// inputMode identifies which prompt, if any, owns the keyboard.
type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeFilter
	modeOpen
)

// Options configures the UI.
type Options struct {
	Controller *controller.Controller
	DrainEvery time.Duration
	ThemeName  string
	PrefsPath  string
	StatusMsg  string // initial status bar message (e.g. startup open error)
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctrl       *controller.Controller
	drainEvery time.Duration
	prefsPath  string

	theme Theme
	keys  keyMap

	width  int
	height int
	ready  bool

	vp     viewport.Model
	buf    logBuffer
	follow bool

	mode        inputMode
	input       textinput.Model
	promptRegex bool
	openIdx     int // recent-list cursor while the open prompt is up

	filterRegex bool
	searchRegex bool

	current   *view.Match
	filterErr error
	searchErr error
	statusMsg string

	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	drainEvery := opts.DrainEvery
	if drainEvery <= 0 {
		drainEvery = 500 * time.Millisecond
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ti := textinput.New()
	ti.CharLimit = 200

	return Model{
		ctrl:        opts.Controller,
		drainEvery:  drainEvery,
		prefsPath:   prefsPath,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		follow:      true,
		input:       ti,
		filterRegex: true,
		searchRegex: true,
		statusMsg:   opts.StatusMsg,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.drainEvery)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.vp = viewport.New(msg.Width, m.viewportHeight())
			m.ready = true
			m.applyProjection(m.ctrl.Project())
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = m.viewportHeight()
		}
		return m, nil

	case tickMsg:
		return m.handleTick()
	}

	return m, nil
}

// viewportHeight leaves room for the title bar, prompt/status line, and
// status bar.
func (m Model) viewportHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// handleTick drains the tail queue, re-projects the affected suffix, and
// schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.ctrl.Drain()
	if err := m.ctrl.WatchErr(); err != nil {
		m.statusMsg = err.Error()
	}
	// A truncate-only script reports Empty yet still has to erase lines,
	// so the rendered line count is part of the skip condition.
	if res := m.ctrl.Project(); !res.Empty() || res.TotalLines != m.buf.lineCount() {
		m.applyProjection(res)
	}
	return m, tickCmd(m.drainEvery)
}

// applyProjection applies an edit script to the buffer and keeps the
// tail pinned when the end of the view was visible before the edit.
func (m *Model) applyProjection(res view.Result) {
	pin := m.follow || m.vp.AtBottom()
	m.buf.apply(res)
	m.dropStaleCurrent(res)
	m.refreshContent()
	if pin {
		m.vp.GotoBottom()
	}
}

// dropStaleCurrent forgets the current search match when the projection
// rebuilt its record or hid it.
func (m *Model) dropStaleCurrent(res view.Result) {
	if m.current == nil || m.current.Record < res.DirtyFrom {
		return
	}
	for _, h := range res.Highlights {
		if h.Kind == view.HighlightSearch &&
			h.Record == m.current.Record &&
			h.Span.Start == m.current.Start &&
			h.Span.End == m.current.End {
			return
		}
	}
	m.current = nil
}

// refreshContent restyles the buffer into the viewport.
func (m *Model) refreshContent() {
	styles := m.theme.Styles()
	lines := make([]string, len(m.buf.lines))
	for i := range m.buf.lines {
		lines[i] = m.renderLine(i, styles)
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
}

// renderLine styles one rendered line: severity color as the base, match
// overlays painted on top. Known severities take their color from the
// active theme's roles; custom levels fall back to their own color hint.
func (m *Model) renderLine(i int, styles Styles) string {
	ln := m.buf.lines[i]
	base := styles.Text
	if ln.tag != "" {
		if st, ok := severityStyle(ln.tag, styles); ok {
			base = st
		} else if level := m.ctrl.Classifier().Level(ln.tag); level != nil {
			base = lipgloss.NewStyle().Foreground(lipgloss.Color(level.Color))
		}
	}

	runs := m.buf.runsFor(i, m.current)
	if len(runs) == 0 {
		return base.Render(ln.text)
	}
	var b strings.Builder
	for _, r := range runs {
		seg := ln.text[r.start:r.end]
		switch r.kind {
		case int(view.HighlightCurrent):
			b.WriteString(styles.CurrentMatch.Render(seg))
		case int(view.HighlightSearch):
			b.WriteString(styles.SearchMatch.Render(seg))
		case int(view.HighlightFilter):
			b.WriteString(styles.FilterMatch.Render(seg))
		default:
			b.WriteString(base.Render(seg))
		}
	}
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.mode != modeNormal {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		m.ctrl.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m.openPrompt(modeOpen, "Open: ", m.defaultOpenValue(), false)

	case key.Matches(msg, m.keys.Reload):
		if err := m.ctrl.Reload(); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = ""
		}
		m.buf.clear()
		m.current = nil
		m.applyProjection(m.ctrl.Project())
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.ctrl.TogglePause()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.ctrl.ClearLog()
		m.buf.clear()
		m.current = nil
		m.applyProjection(m.ctrl.Project())
		return m, nil

	case key.Matches(msg, m.keys.Search):
		return m.openPrompt(modeSearch, "Search: ", m.ctrl.Search().Raw(), m.searchRegex)

	case key.Matches(msg, m.keys.Filter):
		return m.openPrompt(modeFilter, "Filter: ", m.ctrl.Filter().Raw(), m.filterRegex)

	case key.Matches(msg, m.keys.NextMatch):
		m.findNext(false)
		return m, nil

	case key.Matches(msg, m.keys.PrevMatch):
		m.findNext(true)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if !m.ctrl.Search().Empty() {
			m.searchErr = m.ctrl.SetSearch("", true)
			m.current = nil
			m.applyProjection(m.ctrl.Project())
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleFollow):
		m.follow = !m.follow
		if m.follow {
			m.vp.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.vp.GotoTop()
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.vp.GotoBottom()
		m.follow = true
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.vp.ScrollDown(1)
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.vp.ScrollUp(1)
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.vp.HalfPageDown()
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.vp.HalfPageUp()
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.vp.PageDown()
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.vp.PageUp()
		m.follow = false
		return m, nil
	}

	// Severity toggles: 1..n flip the n-th level.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		levels := m.ctrl.Classifier().Levels()
		if idx := int(s[0] - '1'); idx < len(levels) {
			level := levels[idx]
			m.ctrl.SetSeverityVisible(level.Name, !level.Visible)
			m.applyProjection(m.ctrl.Project())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) openPrompt(mode inputMode, prompt, value string, regex bool) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.promptRegex = regex
	m.openIdx = -1
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) defaultOpenValue() string {
	if recent := m.ctrl.Recent(); len(recent) > 0 {
		return recent[0]
	}
	return ""
}

// handlePromptKey processes keyboard input while a prompt is active.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.ToggleRegex):
		if m.mode == modeSearch || m.mode == modeFilter {
			m.promptRegex = !m.promptRegex
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := m.input.Value()
		mode := m.mode
		m.mode = modeNormal
		m.input.Blur()
		switch mode {
		case modeSearch:
			m.searchRegex = m.promptRegex
			m.searchErr = m.ctrl.SetSearch(value, m.promptRegex)
			m.current = nil
			m.applyProjection(m.ctrl.Project())
			m.findNext(false)
		case modeFilter:
			m.filterRegex = m.promptRegex
			m.filterErr = m.ctrl.SetFilter(value, m.promptRegex)
			m.current = nil
			m.applyProjection(m.ctrl.Project())
		case modeOpen:
			m.openSource(value)
		}
		return m, nil
	}

	// Arrow keys cycle the recent list inside the open prompt. These
	// bindings carry no letter aliases, so paths type through normally.
	if m.mode == modeOpen {
		recent := m.ctrl.Recent()
		switch {
		case key.Matches(msg, m.keys.PrevRecent):
			if len(recent) > 0 {
				m.openIdx = (m.openIdx + 1) % len(recent)
				m.input.SetValue(recent[m.openIdx])
				m.input.CursorEnd()
			}
			return m, nil
		case key.Matches(msg, m.keys.NextRecent):
			if len(recent) > 0 {
				m.openIdx = (m.openIdx - 1 + len(recent)) % len(recent)
				m.input.SetValue(recent[m.openIdx])
				m.input.CursorEnd()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// openSource switches the watch to path. The view is cleared either way;
// a bad path just leaves it empty with a status message.
func (m *Model) openSource(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	m.buf.clear()
	m.current = nil
	if err := m.ctrl.OpenSource(path); err != nil {
		m.statusMsg = err.Error()
	} else {
		m.statusMsg = ""
		m.follow = true
		m.savePrefs()
	}
	m.applyProjection(m.ctrl.Project())
}

// findNext moves the current-match cursor cyclically and scrolls to it.
func (m *Model) findNext(backwards bool) {
	matches := m.buf.searchMatches()
	if len(matches) == 0 {
		m.current = nil
		m.refreshContent()
		return
	}

	from := m.viewportAnchor(backwards)
	m.current = view.Next(matches, m.current, backwards, from)
	if m.current != nil {
		if line := m.buf.lineOf(*m.current); line >= 0 {
			m.scrollTo(line)
		}
	}
	m.refreshContent()
}

// viewportAnchor derives the navigation fallback position from the top
// (forwards) or bottom (backwards) of the viewport.
func (m *Model) viewportAnchor(backwards bool) view.Position {
	line := m.vp.YOffset
	if backwards {
		line += m.vp.Height - 1
		if line >= m.buf.lineCount() {
			line = m.buf.lineCount() - 1
		}
	}
	rec, ok := m.buf.recordAt(line)
	if !ok {
		if backwards {
			return view.Position{Record: int(^uint(0) >> 1)}
		}
		return view.Position{}
	}
	pos := view.Position{Record: rec}
	if backwards {
		pos.Offset = int(^uint(0) >> 1)
	}
	return pos
}

// scrollTo centers the given rendered line in the viewport.
func (m *Model) scrollTo(line int) {
	m.follow = false
	target := line - m.vp.Height/2
	if target < 0 {
		target = 0
	}
	m.vp.SetYOffset(target)
}

func (m *Model) savePrefs() {
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:  m.theme.Name,
		Recent: m.ctrl.Recent(),
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(m.renderPromptLine())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) renderTitle() string {
	styles := m.theme.Styles()
	source := m.ctrl.Source()
	if source == "" {
		source = "no source (press o to open a file)"
	}
	title := "tailview  " + source
	if m.ctrl.Paused() {
		title += "  [PAUSED]"
	}
	return styles.Title.Width(m.width).Render(truncate(title, m.width-2))
}

func (m Model) renderPromptLine() string {
	styles := m.theme.Styles()
	if m.mode == modeNormal {
		return ""
	}
	line := m.input.View()
	if m.mode == modeSearch || m.mode == modeFilter {
		mode := "literal"
		if m.promptRegex {
			mode = "regex"
		}
		line += styles.FaintText.Render("  (" + mode + ", ctrl+r toggles)")
	} else if len(m.ctrl.Recent()) > 0 {
		line += styles.FaintText.Render("  (up/down: recent files)")
	}
	return line
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()

	records := m.ctrl.Records()
	visible := 0
	for _, r := range records {
		if r.Visible {
			visible++
		}
	}

	parts := []string{fmt.Sprintf("%d records, %d visible", len(records), visible)}

	for i, level := range m.ctrl.Classifier().Levels() {
		label := fmt.Sprintf("%d:%s", i+1, level.Name)
		if level.Visible {
			parts = append(parts, styles.Text.Render(label))
		} else {
			parts = append(parts, styles.FaintText.Render(label+" off"))
		}
	}

	if !m.ctrl.Filter().Empty() {
		label := "filter: " + m.ctrl.Filter().Raw()
		if m.filterErr != nil {
			label += " (invalid regex)"
			parts = append(parts, styles.DangerText.Render(label))
		} else {
			parts = append(parts, styles.AccentText.Render(label))
		}
	}
	if !m.ctrl.Search().Empty() {
		label := "/" + m.ctrl.Search().Raw()
		if m.searchErr != nil {
			label += " (invalid regex)"
			parts = append(parts, styles.DangerText.Render(label))
		} else {
			matches := m.buf.searchMatches()
			if m.current != nil {
				idx := matchIndex(matches, *m.current)
				label += fmt.Sprintf(" %d/%d", idx+1, len(matches))
			} else {
				label += fmt.Sprintf(" 0/%d", len(matches))
			}
			parts = append(parts, styles.AccentText.Render(label))
		}
	}

	if m.statusMsg != "" {
		parts = append(parts, styles.DangerText.Render(truncate(m.statusMsg, 60)))
	}

	return styles.Status.Width(m.width).Render(strings.Join(parts, "  •  "))
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Title.Render("tailview keys"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n",
				styles.AccentText.Render(h.Key), styles.Text.Render(h.Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("  press any key to close"))
	return b.String()
}

func matchIndex(matches []view.Match, m view.Match) int {
	for i, c := range matches {
		if c == m {
			return i
		}
	}
	return -1
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return s[:max-1] + "…"
}

// Messages and commands

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
