package core

import "sync"

// idAllocator hands out unique, monotonically increasing task IDs to all
// producer call sites. The lock is held only for the read-increment-release
// sequence to keep contention low.
//
// Callers validate submissions before allocating, so every allocated ID
// belongs to an accepted task and the sequence stays gap-free.
type idAllocator struct {
	mu   sync.Mutex
	next uint64
}

func newIDAllocator() *idAllocator {
	return &idAllocator{next: 1}
}

// Next returns the next task ID.
func (a *idAllocator) Next() TaskID {
	a.mu.Lock()
	id := a.next
	a.next++
	a.mu.Unlock()
	return TaskID(id)
}
