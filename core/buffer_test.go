package core

import (
	"context"
	"fmt"
	"testing"
)

func noopTask(ctx context.Context) (string, error) { return "", nil }

func bufferImplementations() map[string]func() PendingBuffer {
	return map[string]func() PendingBuffer{
		"insertion": func() PendingBuffer { return NewInsertionBuffer() },
		"heap":      func() PendingBuffer { return NewHeapBuffer() },
	}
}

func drainIDs(b PendingBuffer) []TaskID {
	var out []TaskID
	for {
		item, ok := b.Next()
		if !ok {
			return out
		}
		out = append(out, item.ID)
	}
}

// TestPendingBuffer_CrossRankOrdering verifies strict ordering across ranks
// Given: Tasks of all four ranks inserted in ascending priority order
// When: The buffer is drained
// Then: Tasks come out in descending priority order
func TestPendingBuffer_CrossRankOrdering(t *testing.T) {
	for name, newBuffer := range bufferImplementations() {
		t.Run(name, func(t *testing.T) {
			// Arrange
			b := newBuffer()
			b.Insert(NewTaskItem(1, TaskPriorityLow, noopTask, "low"))
			b.Insert(NewTaskItem(2, TaskPriorityNormal, noopTask, "normal"))
			b.Insert(NewTaskItem(3, TaskPriorityHigh, noopTask, "high"))
			b.Insert(NewTaskItem(4, TaskPriorityCritical, noopTask, "critical"))

			// Act
			got := drainIDs(b)

			// Assert
			want := []TaskID{4, 3, 2, 1}
			if fmt.Sprint(got) != fmt.Sprint(want) {
				t.Errorf("drain order = %v, want %v", got, want)
			}
		})
	}
}

// TestPendingBuffer_EqualRankStability verifies FIFO within a rank
// Given: Three Normal tasks inserted in order 1, 2, 3
// When: The buffer is drained
// Then: Tasks come out in submission order
func TestPendingBuffer_EqualRankStability(t *testing.T) {
	for name, newBuffer := range bufferImplementations() {
		t.Run(name, func(t *testing.T) {
			// Arrange
			b := newBuffer()
			for id := TaskID(1); id <= 3; id++ {
				b.Insert(NewTaskItem(id, TaskPriorityNormal, noopTask, "n"))
			}

			// Act
			got := drainIDs(b)

			// Assert
			want := []TaskID{1, 2, 3}
			if fmt.Sprint(got) != fmt.Sprint(want) {
				t.Errorf("drain order = %v, want %v", got, want)
			}
		})
	}
}

// TestPendingBuffer_CriticalScan verifies the insertion-scan edge case
// Given: Submissions Critical(1), High(2), Critical(3)
// When: The buffer is drained
// Then: Order is 1, 3, 2 - the second Critical lands after the first
// Critical (equal rank never displaced) but before the High
func TestPendingBuffer_CriticalScan(t *testing.T) {
	for name, newBuffer := range bufferImplementations() {
		t.Run(name, func(t *testing.T) {
			// Arrange
			b := newBuffer()
			b.Insert(NewTaskItem(1, TaskPriorityCritical, noopTask, "C1"))
			b.Insert(NewTaskItem(2, TaskPriorityHigh, noopTask, "H1"))
			b.Insert(NewTaskItem(3, TaskPriorityCritical, noopTask, "C2"))

			// Act
			got := drainIDs(b)

			// Assert
			want := []TaskID{1, 3, 2}
			if fmt.Sprint(got) != fmt.Sprint(want) {
				t.Errorf("drain order = %v, want %v", got, want)
			}
		})
	}
}

// TestPendingBuffer_Empty verifies empty-buffer behavior
func TestPendingBuffer_Empty(t *testing.T) {
	for name, newBuffer := range bufferImplementations() {
		t.Run(name, func(t *testing.T) {
			b := newBuffer()

			if !b.IsEmpty() || b.Len() != 0 {
				t.Error("fresh buffer is not empty")
			}
			if _, ok := b.Next(); ok {
				t.Error("Next() on empty buffer returned an item")
			}

			b.Insert(NewTaskItem(1, TaskPriorityLow, noopTask, "x"))
			if b.IsEmpty() || b.Len() != 1 {
				t.Errorf("Len() = %d after one insert, want 1", b.Len())
			}

			b.Next()
			if !b.IsEmpty() {
				t.Error("buffer not empty after draining")
			}
		})
	}
}

// TestPendingBuffer_ImplementationEquivalence verifies both buffers agree
// Given: The same interleaved sequence of 200 inserts across all ranks
// When: Both implementations are drained
// Then: They produce identical orderings
func TestPendingBuffer_ImplementationEquivalence(t *testing.T) {
	// Arrange
	ranks := []TaskPriority{
		TaskPriorityNormal, TaskPriorityCritical, TaskPriorityLow,
		TaskPriorityHigh, TaskPriorityNormal, TaskPriorityCritical,
		TaskPriorityLow, TaskPriorityHigh,
	}

	scan := NewInsertionBuffer()
	heap := NewHeapBuffer()
	for i := 0; i < 200; i++ {
		item := NewTaskItem(TaskID(i+1), ranks[i%len(ranks)], noopTask, "x")
		scan.Insert(item)
		heap.Insert(item)
	}

	// Act
	scanOrder := drainIDs(scan)
	heapOrder := drainIDs(heap)

	// Assert
	if len(scanOrder) != 200 || len(heapOrder) != 200 {
		t.Fatalf("drained %d and %d items, want 200 each", len(scanOrder), len(heapOrder))
	}
	for i := range scanOrder {
		if scanOrder[i] != heapOrder[i] {
			t.Fatalf("order diverges at %d: insertion=%d heap=%d", i, scanOrder[i], heapOrder[i])
		}
	}
}
