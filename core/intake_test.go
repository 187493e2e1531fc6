package core

import "testing"

// TestSubmissionQueue_FIFO verifies submission order is preserved
// Given: Three pushed items
// When: Popped until empty
// Then: Items come out in push order, then Pop reports empty
func TestSubmissionQueue_FIFO(t *testing.T) {
	// Arrange
	q := newSubmissionQueue()
	for id := TaskID(1); id <= 3; id++ {
		q.Push(NewTaskItem(id, TaskPriorityNormal, noopTask, "x"))
	}

	// Act / Assert
	for want := TaskID(1); want <= 3; want++ {
		item, ok := q.Pop()
		if !ok || item.ID != want {
			t.Fatalf("Pop() = (%v, %v), want ID %d", item.ID, ok, want)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() on empty queue returned an item")
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

// TestSubmissionQueue_Clear verifies references are released
func TestSubmissionQueue_Clear(t *testing.T) {
	q := newSubmissionQueue()
	for id := TaskID(1); id <= 10; id++ {
		q.Push(NewTaskItem(id, TaskPriorityNormal, noopTask, "x"))
	}

	q.Clear()

	if q.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", q.Len())
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() after Clear returned an item")
	}
}

// TestSubmissionQueue_CompactionKeepsContents verifies compaction is invisible
// Given: A queue grown past the compaction threshold
// When: Most items are popped, triggering compaction
// Then: The remaining items still come out in order
func TestSubmissionQueue_CompactionKeepsContents(t *testing.T) {
	// Arrange
	q := newSubmissionQueue()
	const total = 256
	for id := TaskID(1); id <= total; id++ {
		q.Push(NewTaskItem(id, TaskPriorityNormal, noopTask, "x"))
	}

	// Act - pop enough to shrink well below cap/4
	for i := 0; i < total-10; i++ {
		if _, ok := q.Pop(); !ok {
			t.Fatalf("Pop() empty at %d", i)
		}
	}

	// Assert
	if q.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", q.Len())
	}
	for want := TaskID(total - 9); want <= total; want++ {
		item, ok := q.Pop()
		if !ok || item.ID != want {
			t.Fatalf("Pop() = (%v, %v), want ID %d", item.ID, ok, want)
		}
	}
}
