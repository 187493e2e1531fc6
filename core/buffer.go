package core

import "container/heap"

const defaultBufferCap = 16

// PendingBuffer is the ordered holding area for tasks awaiting execution.
// It is owned exclusively by the worker goroutine, so implementations do
// not lock: single ownership makes synchronization unnecessary.
//
// Ordering contract for all implementations:
// - Strict ordering across distinct priority ranks (Critical first)
// - FIFO stability among equal ranks, keyed on insertion order
type PendingBuffer interface {
	// Insert places item according to its priority.
	Insert(item TaskItem)

	// Next removes and returns the highest-ranked item, or false when empty.
	Next() (TaskItem, bool)

	Len() int
	IsEmpty() bool
}

// =============================================================================
// InsertionBuffer: Ordered slice with scan insertion
// =============================================================================

// InsertionBuffer keeps tasks in a slice ordered by descending priority.
// Insert scans from the front for the first element whose priority is
// strictly lower than the new item's and inserts before it; equal-rank
// items are never displaced, which preserves FIFO stability.
//
// Insertion is O(n) in buffer depth, which is fine for small interactive
// backlogs. Use NewHeapBuffer when backlogs are expected to grow large.
type InsertionBuffer struct {
	items []TaskItem
}

func NewInsertionBuffer() *InsertionBuffer {
	return &InsertionBuffer{
		items: make([]TaskItem, 0, defaultBufferCap),
	}
}

func (b *InsertionBuffer) Insert(item TaskItem) {
	pos := len(b.items)
	for i, existing := range b.items {
		if existing.Priority < item.Priority {
			pos = i
			break
		}
	}

	b.items = append(b.items, TaskItem{})
	copy(b.items[pos+1:], b.items[pos:])
	b.items[pos] = item
}

func (b *InsertionBuffer) Next() (TaskItem, bool) {
	if len(b.items) == 0 {
		return TaskItem{}, false
	}

	item := b.items[0]
	// Zero out the element in the underlying array to prevent memory leak
	b.items[0] = TaskItem{}
	b.items = b.items[1:]

	if len(b.items) == 0 {
		b.items = make([]TaskItem, 0, defaultBufferCap)
	}

	return item, true
}

func (b *InsertionBuffer) Len() int {
	return len(b.items)
}

func (b *InsertionBuffer) IsEmpty() bool {
	return len(b.items) == 0
}

// =============================================================================
// HeapBuffer: Min-Heap based buffer with Stability (FIFO for same priority)
// =============================================================================

type bufferedItem struct {
	TaskItem
	sequence uint64 // For stability
	index    int    // For heap
}

// bufferHeap implements heap.Interface
type bufferHeap []*bufferedItem

func (h bufferHeap) Len() int { return len(h) }

// Less implements priority logic: High priority first, then Small sequence first (FIFO)
func (h bufferHeap) Less(i, j int) bool {
	if h[i].Priority > h[j].Priority {
		return true
	}
	if h[i].Priority < h[j].Priority {
		return false
	}
	// Same priority: earlier sequence first (FIFO)
	return h[i].sequence < h[j].sequence
}

func (h bufferHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *bufferHeap) Push(x any) {
	n := len(*h)
	item := x.(*bufferedItem)
	item.index = n
	*h = append(*h, item)
}

func (h *bufferHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // Avoid memory leak
	item.index = -1
	*h = old[0 : n-1]
	return item
}

// HeapBuffer orders tasks with a binary heap and a sequence counter for
// FIFO stability. Insert and Next are O(log n); prefer it over
// InsertionBuffer when backlogs run deep.
type HeapBuffer struct {
	pq           bufferHeap
	nextSequence uint64
}

func NewHeapBuffer() *HeapBuffer {
	return &HeapBuffer{
		pq: make(bufferHeap, 0, defaultBufferCap),
	}
}

func (b *HeapBuffer) Insert(item TaskItem) {
	heap.Push(&b.pq, &bufferedItem{
		TaskItem: item,
		sequence: b.nextSequence,
	})
	b.nextSequence++
}

func (b *HeapBuffer) Next() (TaskItem, bool) {
	if len(b.pq) == 0 {
		return TaskItem{}, false
	}

	item := heap.Pop(&b.pq).(*bufferedItem)
	return item.TaskItem, true
}

func (b *HeapBuffer) Len() int {
	return len(b.pq)
}

func (b *HeapBuffer) IsEmpty() bool {
	return len(b.pq) == 0
}
