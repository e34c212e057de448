// Package tail watches one file for growth and pushes newly-appended
// content onto a queue, independent of consumer pace.
package tail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

const defaultPollInterval = 500 * time.Millisecond

// SourceNotFoundError reports that the watch target is missing or not a
// regular file at start time.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source not found: %s", e.Path)
}

func (e *SourceNotFoundError) Unwrap() error { return e.Err }

// Watcher runs at most one background watch loop at a time. Starting a
// new watch implicitly stops the previous one; Stop blocks until the
// loop has fully exited, so no writes ever reach the queue after the
// owning watch has been replaced.
type Watcher struct {
	queue    *Queue
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher returns a watcher producing into queue. interval <= 0 uses
// the 500ms default.
func NewWatcher(queue *Queue, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Watcher{queue: queue, interval: interval}
}

// Watch starts tailing path from the beginning of the file. Any active
// watch is stopped first. When path does not exist or is not a regular
// file, Watch fails with SourceNotFoundError and no loop is started.
func (w *Watcher) Watch(path string) error {
	w.Stop()

	info, err := os.Stat(path)
	if err != nil {
		return &SourceNotFoundError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &SourceNotFoundError{Path: path}
	}
	file, err := os.Open(path)
	if err != nil {
		return &SourceNotFoundError{Path: path, Err: err}
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.loop(ctx, file, w.done)
	return nil
}

// Stop requests cancellation and blocks until the watch loop has exited.
// It is a no-op when no watch is active.
func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.cancel = nil
	w.done = nil
}

// Watching reports whether a watch loop is active.
func (w *Watcher) Watching() bool { return w.cancel != nil }

func (w *Watcher) loop(ctx context.Context, file *os.File, done chan struct{}) {
	defer close(done)
	defer file.Close()
	log.Printf("tail: watch started on %s", file.Name())
	defer log.Printf("tail: watch terminated on %s", file.Name())

	buf := make([]byte, 64*1024)
	for {
		read := false
		for {
			n, err := file.Read(buf)
			if n > 0 {
				read = true
				w.queue.Push(string(buf[:n]))
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				// Transient read errors are not recoverable mid-stream;
				// surface once and end the watch.
				w.queue.Fail(fmt.Errorf("read %s: %w", file.Name(), err))
				log.Printf("tail: read failed on %s: %v", file.Name(), err)
				return
			}
		}
		if !read {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.interval):
			}
		} else {
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}
}
