// Package taskqueue provides an asynchronous priority task queue for Go.
//
// A TaskQueue accepts arbitrary units of deferred work, orders them by
// priority, and executes them serially on a dedicated background goroutine.
// Submission is fire-and-forget: callers get back a task ID, never a result.
//
// # Quick Start
//
// Create a queue and submit work:
//
//	queue := taskqueue.New()
//
//	id, err := queue.AddTask(taskqueue.TaskPriorityHigh, func(ctx context.Context) (string, error) {
//		return "report generated", nil
//	}, "generate daily report")
//
// Shut the queue down when done; every accepted task drains first:
//
//	queue.Shutdown()
//	queue.WaitTerminated(context.Background())
//
// # Key Concepts
//
// TaskPriority: Ordinal rank (Low < Normal < High < Critical). Tasks resident
// in the worker's buffer execute in strict priority order; equal ranks keep
// their submission order (FIFO stability).
//
// Worker: The single goroutine that owns the pending buffer and executes
// tasks one at a time. Because the buffer has exactly one owner, it needs
// no locking.
//
// Drain: Shutdown wakes the worker, which executes everything buffered and
// everything already in flight before terminating. Tasks accepted strictly
// before Shutdown are guaranteed to run.
//
// # Error Handling
//
// Submission errors (queue shut down, nil payload, invalid priority) are
// returned synchronously from AddTask. Execution errors are logged by the
// worker and never surfaced to the submitter; a failing task never stops
// the loop. Callers needing completion notification must arrange it
// out-of-band, e.g. by having the payload write into a channel.
//
// # Observability
//
// Logging and metrics are pluggable through the core.Logger and core.Metrics
// interfaces. Adapters are provided under logging/zap and
// observability/prometheus.
package taskqueue
