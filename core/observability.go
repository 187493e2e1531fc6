package core

import "time"

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting queue execution metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// All methods are optional; implementations should handle nil receivers gracefully.
// Methods should be non-blocking and fast to avoid impacting task execution performance.
type Metrics interface {
	// RecordTaskDuration records how long a task took to execute.
	RecordTaskDuration(queueName string, priority TaskPriority, duration time.Duration)

	// RecordTaskFailure records that a task's payload returned an error.
	RecordTaskFailure(queueName string)

	// RecordTaskPanic records that a task panicked during execution.
	RecordTaskPanic(queueName string, panicInfo any)

	// RecordTaskRejected records that a submission was rejected (e.g., after shutdown).
	RecordTaskRejected(queueName string, reason string)

	// RecordQueueDepth records the number of tasks waiting (intake + buffer).
	RecordQueueDepth(queueName string, depth int)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

func (m *NilMetrics) RecordTaskDuration(queueName string, priority TaskPriority, duration time.Duration) {
}

func (m *NilMetrics) RecordTaskFailure(queueName string) {
}

func (m *NilMetrics) RecordTaskPanic(queueName string, panicInfo any) {
}

func (m *NilMetrics) RecordTaskRejected(queueName string, reason string) {
}

func (m *NilMetrics) RecordQueueDepth(queueName string, depth int) {
}

// =============================================================================
// Snapshots and execution records
// =============================================================================

// TaskExecutionRecord captures a completed task execution event.
type TaskExecutionRecord struct {
	TaskID      TaskID
	Description string
	Priority    TaskPriority
	StartedAt   time.Time
	FinishedAt  time.Time
	Duration    time.Duration
	Result      string
	Err         error
	Panicked    bool
}

// Failed reports whether the execution ended in a failure outcome.
func (r TaskExecutionRecord) Failed() bool {
	return r.Err != nil
}

// QueueStats represents runtime observability state for a task queue.
// All counters are cumulative since the queue was created.
type QueueStats struct {
	Name      string
	State     QueueState
	Submitted int64
	Pending   int // Waiting in intake, not yet pulled by the worker
	Buffered  int // Waiting in the worker's pending buffer
	Executed  int64
	Failed    int64
	Rejected  int64
}
