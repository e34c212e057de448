package tail

import (
	"sync"
)

// Queue is the hand-off point between a watch goroutine and the single
// consumer thread. The watcher is the only producer, the controller the
// only consumer; a mutex around an append-only slice is all the
// synchronization the design needs.
//
// A terminal read error is recorded alongside the pending chunks and
// delivered once by the next Drain, so the consumer learns about a dead
// watch on its own schedule.
type Queue struct {
	mu     sync.Mutex
	chunks []string
	err    error
}

// Push appends a chunk of newly-read text.
func (q *Queue) Push(chunk string) {
	if chunk == "" {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.chunks = append(q.chunks, chunk)
}

// Fail records a terminal watch error for the next Drain.
func (q *Queue) Fail(err error) {
	if err == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.err = err
}

// Drain removes and returns all pending chunks in arrival order, plus
// any terminal error recorded since the previous Drain. Both are cleared
// on return.
func (q *Queue) Drain() ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	chunks := q.chunks
	err := q.err
	q.chunks = nil
	q.err = nil
	return chunks, err
}

// Len returns the number of pending chunks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.chunks)
}

// Reset discards pending chunks and any recorded error. Called when the
// source file is replaced so stale content never reaches the new view.
func (q *Queue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.chunks = nil
	q.err = nil
}
