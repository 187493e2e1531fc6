package core

import "sync"

const (
	defaultIntakeCap    = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// submissionQueue is the unbounded multi-producer intake between AddTask
// call sites and the single worker. Producers push under the lock; the
// worker pops until empty. It is the only task-carrying state shared
// across goroutines.
type submissionQueue struct {
	mu    sync.Mutex
	items []TaskItem
}

func newSubmissionQueue() *submissionQueue {
	return &submissionQueue{
		items: make([]TaskItem, 0, defaultIntakeCap),
	}
}

func (q *submissionQueue) Push(item TaskItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
}

// Pop removes the oldest submission, or returns false when nothing is
// immediately available.
func (q *submissionQueue) Pop() (TaskItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return TaskItem{}, false
	}

	item := q.items[0]
	// Zero out the element in the underlying array to prevent memory leak
	q.items[0] = TaskItem{}
	// Optimization: slice slicing
	q.items = q.items[1:]
	q.maybeCompactLocked()

	return item, true
}

func (q *submissionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear removes all submissions and releases task references.
func (q *submissionQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = make([]TaskItem, 0, defaultIntakeCap)
}

func (q *submissionQueue) maybeCompactLocked() {
	n := len(q.items)
	c := cap(q.items)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.items = make([]TaskItem, 0, defaultIntakeCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultIntakeCap), n)

	newSlice := make([]TaskItem, n, newCap)
	copy(newSlice, q.items)
	q.items = newSlice
}
