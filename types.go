package taskqueue

import "github.com/Swind/go-task-queue/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the taskqueue package for most use cases.

// TaskQueue executes submitted tasks serially, in priority order, on a
// dedicated background goroutine.
type TaskQueue = core.TaskQueue

// TaskFunc is the unit of deferred work (Closure)
type TaskFunc = core.TaskFunc

// TaskID uniquely identifies a task within one queue instance
type TaskID = core.TaskID

// TaskPriority defines the priority levels for tasks
type TaskPriority = core.TaskPriority

// TaskItem is one unit of deferred work plus its metadata
type TaskItem = core.TaskItem

// QueueConfig holds configuration options for a TaskQueue
type QueueConfig = core.QueueConfig

// QueueState describes the worker lifecycle
type QueueState = core.QueueState

// QueueStats is a snapshot of a queue's runtime state
type QueueStats = core.QueueStats

// TaskExecutionRecord captures a completed task execution event
type TaskExecutionRecord = core.TaskExecutionRecord

// PendingBuffer is the worker-owned ordered holding area for pending tasks
type PendingBuffer = core.PendingBuffer

// Logger is the pluggable structured logging interface
type Logger = core.Logger

// Metrics is the pluggable metrics interface
type Metrics = core.Metrics

// Priority constants
const (
	TaskPriorityLow      TaskPriority = core.TaskPriorityLow
	TaskPriorityNormal   TaskPriority = core.TaskPriorityNormal
	TaskPriorityHigh     TaskPriority = core.TaskPriorityHigh
	TaskPriorityCritical TaskPriority = core.TaskPriorityCritical
)

// Queue states
const (
	QueueStateRunning    QueueState = core.QueueStateRunning
	QueueStateDraining   QueueState = core.QueueStateDraining
	QueueStateTerminated QueueState = core.QueueStateTerminated
)

// Submission errors
var (
	ErrQueueShutDown   = core.ErrQueueShutDown
	ErrNilTask         = core.ErrNilTask
	ErrInvalidPriority = core.ErrInvalidPriority
)

// New creates a task queue with default configuration and starts its worker.
func New() *TaskQueue {
	return core.New()
}

// NewWithConfig creates a task queue with the given configuration and starts
// its worker.
func NewWithConfig(config *QueueConfig) *TaskQueue {
	return core.NewWithConfig(config)
}

// DefaultQueueConfig returns a config with default values.
func DefaultQueueConfig() *QueueConfig {
	return core.DefaultQueueConfig()
}

// NewHeapBuffer creates a heap-backed pending buffer for deep backlogs.
// Pass it through QueueConfig.Buffer.
var NewHeapBuffer = core.NewHeapBuffer

// F creates a structured logging field for the Logger interface.
var F = core.F
