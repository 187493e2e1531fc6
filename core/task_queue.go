package core

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// Submission errors. These are the only errors a caller of AddTask can
// observe; execution errors are absorbed by the worker and logged.
var (
	// ErrQueueShutDown is returned by AddTask once Shutdown has been called.
	ErrQueueShutDown = errors.New("task queue is shut down")

	// ErrNilTask is returned by AddTask for a nil payload.
	ErrNilTask = errors.New("task payload is nil")

	// ErrInvalidPriority is returned by AddTask for a priority outside the
	// four defined ranks.
	ErrInvalidPriority = errors.New("invalid task priority")
)

// QueueState describes the worker lifecycle.
type QueueState int32

const (
	// QueueStateRunning: Worker waits for submissions or the shutdown signal
	QueueStateRunning QueueState = iota

	// QueueStateDraining: Shutdown observed, remaining tasks are being executed
	QueueStateDraining

	// QueueStateTerminated: Worker has exited. Terminal state
	QueueStateTerminated
)

func (s QueueState) String() string {
	switch s {
	case QueueStateRunning:
		return "running"
	case QueueStateDraining:
		return "draining"
	case QueueStateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// TaskQueue executes submitted tasks one at a time, in priority order, on a
// dedicated background goroutine. Submission is fire-and-forget: AddTask
// never blocks and the caller receives no completion signal.
//
// The pending buffer is owned exclusively by the worker goroutine. The only
// state shared across producer call sites is the ID allocator (mutex) and
// the intake queue (mutex) with its signal channel.
type TaskQueue struct {
	name string

	ids    *idAllocator
	intake *submissionQueue
	signal chan struct{}

	// buffer is touched only from workerLoop
	buffer PendingBuffer

	logger        Logger
	metrics       Metrics
	history       *executionHistory
	yieldInterval time.Duration

	// Lifecycle
	accepting    atomic.Bool
	state        atomic.Int32
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	stopped      chan struct{}

	// Counters (see QueueStats)
	submitted atomic.Int64
	buffered  atomic.Int32
	executed  atomic.Int64
	failed    atomic.Int64
	rejected  atomic.Int64
}

// New creates a task queue with default configuration and starts its worker.
func New() *TaskQueue {
	return NewWithConfig(nil)
}

// NewWithConfig creates a task queue with the given configuration and starts
// its worker. Nil or zero config fields fall back to defaults.
func NewWithConfig(config *QueueConfig) *TaskQueue {
	defaults := DefaultQueueConfig()
	if config == nil {
		config = defaults
	}

	name := config.Name
	if name == "" {
		name = defaults.Name
	}
	logger := config.Logger
	if logger == nil {
		logger = defaults.Logger
	}
	metrics := config.Metrics
	if metrics == nil {
		metrics = defaults.Metrics
	}
	buffer := config.Buffer
	if buffer == nil {
		buffer = defaults.Buffer
	}
	yield := config.YieldInterval
	if yield <= 0 {
		yield = defaults.YieldInterval
	}
	historySize := config.HistorySize
	if historySize <= 0 {
		historySize = defaults.HistorySize
	}

	q := &TaskQueue{
		name:          name,
		ids:           newIDAllocator(),
		intake:        newSubmissionQueue(),
		signal:        make(chan struct{}, 1),
		buffer:        buffer,
		logger:        logger,
		metrics:       metrics,
		history:       newExecutionHistory(historySize),
		yieldInterval: yield,
		shutdownChan:  make(chan struct{}),
		stopped:       make(chan struct{}),
	}
	q.accepting.Store(true)
	q.state.Store(int32(QueueStateRunning))

	// Start the dedicated worker goroutine
	go q.workerLoop()

	q.logger.Info("task queue initialized and worker started", F("queue", q.name))

	return q
}

// AddTask allocates an ID, wraps the payload into a task item and hands it
// to the worker. It never blocks; the intake is unbounded.
//
// The accepting flag is checked before the ID is allocated, so a rejected
// submission does not consume an ID. Tasks accepted strictly before
// Shutdown are guaranteed to execute during draining; submissions racing
// with Shutdown may be rejected.
func (q *TaskQueue) AddTask(priority TaskPriority, fn TaskFunc, description string) (TaskID, error) {
	if fn == nil {
		return 0, ErrNilTask
	}
	if !priority.IsValid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPriority, int(priority))
	}

	if !q.accepting.Load() {
		q.rejected.Add(1)
		q.metrics.RecordTaskRejected(q.name, "shutdown")
		q.logger.Warn("task rejected, queue is shut down",
			F("queue", q.name),
			F("description", description),
		)
		return 0, ErrQueueShutDown
	}

	id := q.ids.Next()
	q.submitted.Add(1)
	q.intake.Push(NewTaskItem(id, priority, fn, description))

	// Wake the worker; a pending signal already covers us
	select {
	case q.signal <- struct{}{}:
	default:
	}

	q.logger.Debug("task queued",
		F("id", id),
		F("description", description),
		F("priority", priority),
	)

	return id, nil
}

// Shutdown stops acceptance of new tasks and signals the worker to drain.
// It is safe to call more than once; calls after the worker has terminated
// have no observable effect.
func (q *TaskQueue) Shutdown() {
	q.shutdownOnce.Do(func() {
		q.accepting.Store(false)
		q.logger.Info("initiating task queue shutdown", F("queue", q.name))
		close(q.shutdownChan)
	})
}

// WaitTerminated blocks until the worker has drained and exited, or the
// context is cancelled.
func (q *TaskQueue) WaitTerminated(ctx context.Context) error {
	select {
	case <-q.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the current worker state.
func (q *TaskQueue) State() QueueState {
	return QueueState(q.state.Load())
}

// Stats returns a snapshot of the queue's runtime state.
func (q *TaskQueue) Stats() QueueStats {
	return QueueStats{
		Name:      q.name,
		State:     q.State(),
		Submitted: q.submitted.Load(),
		Pending:   q.intake.Len(),
		Buffered:  int(q.buffered.Load()),
		Executed:  q.executed.Load(),
		Failed:    q.failed.Load(),
		Rejected:  q.rejected.Load(),
	}
}

// History returns up to limit recent execution records, most recent first.
func (q *TaskQueue) History(limit int) []TaskExecutionRecord {
	return q.history.Recent(limit)
}

// LastExecution returns the most recent execution record, if any.
func (q *TaskQueue) LastExecution() (TaskExecutionRecord, bool) {
	return q.history.Last()
}

// =============================================================================
// Worker loop
// =============================================================================

// workerLoop is the core of the queue; it occupies a dedicated goroutine.
// States: Running -> Draining -> Terminated.
func (q *TaskQueue) workerLoop() {
	defer close(q.stopped)

	ctx := context.Background()

	q.logger.Info("task queue worker started", F("queue", q.name))

	for {
		select {
		case <-q.signal:
			// New submissions arrived: pull them into the buffer, then
			// run every currently buffered task before waiting again.
			q.pullIntake()
			q.drainBuffer(ctx)

		case <-q.shutdownChan:
			q.state.Store(int32(QueueStateDraining))
			q.logger.Info("shutdown signal received, processing remaining tasks", F("queue", q.name))

			q.drainBuffer(ctx)

			// Pull in anything already in flight until the intake yields
			// nothing immediately available.
			for q.pullIntake() > 0 {
				q.drainBuffer(ctx)
			}

			q.state.Store(int32(QueueStateTerminated))
			// Release references a late producer may have raced in
			q.intake.Clear()

			q.logger.Info("worker shutdown complete", F("queue", q.name))
			return
		}
	}
}

// pullIntake moves all immediately available submissions into the pending
// buffer and returns how many were moved.
func (q *TaskQueue) pullIntake() int {
	n := 0
	for {
		item, ok := q.intake.Pop()
		if !ok {
			break
		}
		q.buffer.Insert(item)
		q.buffered.Add(1)
		n++
	}
	if n > 0 {
		q.metrics.RecordQueueDepth(q.name, q.depth())
	}
	return n
}

// drainBuffer executes every buffered task in priority order, pausing
// between consecutive executions to yield the scheduler.
func (q *TaskQueue) drainBuffer(ctx context.Context) {
	for {
		item, ok := q.buffer.Next()
		if !ok {
			return
		}
		q.buffered.Add(-1)

		q.execute(ctx, item)
		q.metrics.RecordQueueDepth(q.name, q.depth())

		time.Sleep(q.yieldInterval)
	}
}

// execute runs one task to completion and records the outcome. A failing
// or panicking payload never terminates the loop.
func (q *TaskQueue) execute(ctx context.Context, item TaskItem) {
	q.logger.Info("executing task",
		F("id", item.ID),
		F("description", item.Description),
		F("priority", item.Priority),
	)

	startedAt := time.Now()
	result, panicked, err := q.runPayload(ctx, item)
	finishedAt := time.Now()
	duration := finishedAt.Sub(startedAt)

	q.metrics.RecordTaskDuration(q.name, item.Priority, duration)
	q.history.Add(TaskExecutionRecord{
		TaskID:      item.ID,
		Description: item.Description,
		Priority:    item.Priority,
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
		Duration:    duration,
		Result:      result,
		Err:         err,
		Panicked:    panicked,
	})

	if err != nil {
		q.failed.Add(1)
		q.metrics.RecordTaskFailure(q.name)
		q.logger.Error("task failed",
			F("id", item.ID),
			F("description", item.Description),
			F("error", err),
			F("duration", duration),
		)
		return
	}

	q.executed.Add(1)
	q.logger.Info("task completed",
		F("id", item.ID),
		F("result", result),
		F("duration", duration),
	)
}

// runPayload invokes the payload, converting a panic into a failure outcome
// so the worker goroutine survives.
func (q *TaskQueue) runPayload(ctx context.Context, item TaskItem) (result string, panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			err = fmt.Errorf("task panicked: %v", r)
			q.metrics.RecordTaskPanic(q.name, r)
			q.logger.Error("task panicked",
				F("id", item.ID),
				F("panic", r),
				F("stack", string(debug.Stack())),
			)
		}
	}()

	result, err = item.Execute(ctx)
	return
}

// depth reports how many tasks are waiting in total (intake + buffer).
// Called from the worker only.
func (q *TaskQueue) depth() int {
	return q.intake.Len() + int(q.buffered.Load())
}
