// Package controller wires the assembler, projector, patterns, and file
// watcher together and owns process-wide state: the recent source list
// and the pause flag. All methods run on the consumer thread; the only
// concurrency is the watch goroutine on the far side of the queue.
package controller

import (
	"strings"
	"time"

	"github.com/five82/tailview/internal/pattern"
	"github.com/five82/tailview/internal/record"
	"github.com/five82/tailview/internal/severity"
	"github.com/five82/tailview/internal/tail"
	"github.com/five82/tailview/internal/view"
)

const defaultRecentLimit = 10

// Options configure a Controller.
type Options struct {
	TailInterval time.Duration // watch poll interval; zero uses the tail default
	RecentLimit  int           // recent source list cap; zero uses 10
	Recent       []string      // seed for the recent source list
}

// Controller is the application core behind the UI. It is not safe for
// concurrent use; the UI event loop is its single caller.
type Controller struct {
	classifier *severity.Classifier
	assembler  *record.Assembler
	queue      *tail.Queue
	watcher    *tail.Watcher

	filter *pattern.Pattern
	search *pattern.Pattern

	source      string
	recent      []string
	recentLimit int
	paused      bool
	watchErr    error

	// dirty is the first record index whose rendering may have changed
	// since the last projection; len(records) means clean.
	dirty int
}

// New returns a controller with the default severity table, empty
// patterns, and no active watch.
func New(opts Options) *Controller {
	classifier := severity.NewClassifier(severity.DefaultLevels()...)
	queue := &tail.Queue{}
	limit := opts.RecentLimit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	recent := make([]string, 0, limit)
	for _, p := range opts.Recent {
		if p = strings.TrimSpace(p); p != "" && len(recent) < limit {
			recent = append(recent, p)
		}
	}
	return &Controller{
		classifier:  classifier,
		assembler:   record.NewAssembler(classifier),
		queue:       queue,
		watcher:     tail.NewWatcher(queue, opts.TailInterval),
		filter:      pattern.New("", true),
		search:      pattern.New("", true),
		recent:      recent,
		recentLimit: limit,
	}
}

// Classifier exposes the severity table for display purposes.
func (c *Controller) Classifier() *severity.Classifier { return c.classifier }

// Records returns the current record list.
func (c *Controller) Records() []*record.Record { return c.assembler.Records() }

// Source returns the path of the active source file, if any.
func (c *Controller) Source() string { return c.source }

// Recent returns the recent source list, most recent first.
func (c *Controller) Recent() []string { return c.recent }

// Filter returns the active filter pattern.
func (c *Controller) Filter() *pattern.Pattern { return c.filter }

// Search returns the active search pattern.
func (c *Controller) Search() *pattern.Pattern { return c.search }

// Paused reports whether queue draining is suspended.
func (c *Controller) Paused() bool { return c.paused }

// WatchErr returns the terminal error of the current watch, if any.
func (c *Controller) WatchErr() error { return c.watchErr }

// OpenSource stops any active watch, clears the displayed log, and
// starts watching path. The clear happens before the path is validated:
// a bad path leaves an empty view and returns tail.SourceNotFoundError.
// On success the path moves to the front of the recent list.
func (c *Controller) OpenSource(path string) error {
	// Join the old watch before resetting the queue so no stale chunk
	// can slip in between.
	c.watcher.Stop()
	c.ClearLog()
	c.queue.Reset()
	c.watchErr = nil
	c.source = ""

	if err := c.watcher.Watch(path); err != nil {
		return err
	}
	c.source = path
	c.touchRecent(path)
	return nil
}

func (c *Controller) touchRecent(path string) {
	out := make([]string, 0, len(c.recent)+1)
	out = append(out, path)
	for _, p := range c.recent {
		if p != path && len(out) < c.recentLimit {
			out = append(out, p)
		}
	}
	c.recent = out
}

// Reload restarts the watch on the current source from the top of the
// file, clearing the view first.
func (c *Controller) Reload() error {
	if c.source == "" {
		return nil
	}
	return c.OpenSource(c.source)
}

// Pause suspends queue draining. Chunks keep accumulating in the queue.
func (c *Controller) Pause() { c.paused = true }

// Resume re-enables queue draining; the backlog is picked up by the next
// Drain tick.
func (c *Controller) Resume() { c.paused = false }

// TogglePause flips the pause flag and returns the new state.
func (c *Controller) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

// ClearLog empties the record list and resets dirty tracking so the next
// projection truncates everything.
func (c *Controller) ClearLog() {
	c.assembler.Clear()
	c.dirty = 0
}

// SetFilter replaces the filter pattern and marks the whole view dirty.
// An invalid regex is kept (it matches nothing) and the compile error is
// returned for status display.
func (c *Controller) SetFilter(raw string, isRegex bool) error {
	c.filter = pattern.New(raw, isRegex)
	c.dirty = 0
	return c.filter.Err()
}

// SetSearch replaces the search pattern and marks the whole view dirty
// so highlight spans are recomputed everywhere.
func (c *Controller) SetSearch(raw string, isRegex bool) error {
	c.search = pattern.New(raw, isRegex)
	c.dirty = 0
	return c.search.Err()
}

// SetSeverityVisible toggles a severity level and marks the whole view
// dirty. Unknown names are ignored.
func (c *Controller) SetSeverityVisible(name string, visible bool) {
	if c.classifier.SetVisible(name, visible) {
		c.dirty = 0
	}
}

// Drain empties the queue. Unless paused, all pending chunks are joined
// and fed to the assembler in one batch, and the dirty index is lowered
// to the first affected record. It reports whether the record list
// changed. A terminal watch error is captured for status display.
func (c *Controller) Drain() bool {
	if c.paused {
		return false
	}
	chunks, err := c.queue.Drain()
	if err != nil {
		c.watchErr = err
	}
	if len(chunks) == 0 {
		return false
	}
	dirty, ok := c.assembler.AppendChunk(strings.Join(chunks, ""))
	if !ok {
		return false
	}
	if dirty < c.dirty {
		c.dirty = dirty
	}
	return true
}

// Project runs the view projection over the dirty suffix and marks the
// view clean, so a second call without intervening changes yields an
// empty edit script.
func (c *Controller) Project() view.Result {
	res := view.Project(c.assembler.Records(), c.dirty, c.filter, c.search)
	c.dirty = c.assembler.Len()
	return res
}

// Stop shuts down the active watch, joining its goroutine.
func (c *Controller) Stop() {
	c.watcher.Stop()
}
