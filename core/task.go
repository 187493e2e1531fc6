package core

import (
	"context"
	"fmt"
)

// TaskFunc is the unit of deferred work (Closure). It is invoked at most
// once, on the queue's dedicated worker goroutine, and returns either a
// result message or an error. The closure must not capture caller-local
// short-lived state and must be callable without external synchronization.
type TaskFunc func(ctx context.Context) (string, error)

// TaskID uniquely identifies a task within one queue instance.
// IDs are strictly increasing and never reused.
type TaskID uint64

func (id TaskID) String() string {
	return fmt.Sprintf("task-%d", uint64(id))
}

// =============================================================================
// TaskPriority: Ordinal rank governing execution precedence
// =============================================================================

type TaskPriority int

const (
	// TaskPriorityLow: Background work, runs after everything else
	TaskPriorityLow TaskPriority = iota + 1

	// TaskPriorityNormal: Default priority
	TaskPriorityNormal

	// TaskPriorityHigh: Runs before Normal and Low work
	TaskPriorityHigh

	// TaskPriorityCritical: Highest rank, runs before all other work
	TaskPriorityCritical
)

func (p TaskPriority) String() string {
	switch p {
	case TaskPriorityLow:
		return "low"
	case TaskPriorityNormal:
		return "normal"
	case TaskPriorityHigh:
		return "high"
	case TaskPriorityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// IsValid reports whether p is one of the four defined ranks.
func (p TaskPriority) IsValid() bool {
	return p >= TaskPriorityLow && p <= TaskPriorityCritical
}

// =============================================================================
// TaskItem: One unit of deferred work plus its metadata
// =============================================================================

// TaskItem carries a payload through the queue. It is created by AddTask,
// handed to the worker, held in the pending buffer, and dropped immediately
// after its payload executes.
type TaskItem struct {
	ID          TaskID
	Priority    TaskPriority
	Description string
	Fn          TaskFunc
}

// NewTaskItem creates a task item with the given parameters.
func NewTaskItem(id TaskID, priority TaskPriority, fn TaskFunc, description string) TaskItem {
	return TaskItem{
		ID:          id,
		Priority:    priority,
		Description: description,
		Fn:          fn,
	}
}

// Execute invokes the payload once and returns its outcome.
func (t TaskItem) Execute(ctx context.Context) (string, error) {
	return t.Fn(ctx)
}
