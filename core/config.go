package core

import "time"

// defaultYieldInterval is the pause between consecutive task executions.
// It hands control back to the Go scheduler so one busy queue does not
// monopolize shared execution resources.
const defaultYieldInterval = 10 * time.Millisecond

// QueueConfig holds configuration options for a TaskQueue.
// All fields are optional; zero values fall back to defaults.
type QueueConfig struct {
	// Name identifies the queue in logs and metric labels. Defaults to "taskqueue".
	Name string

	// Logger receives lifecycle and per-task outcome logs. Defaults to DefaultLogger.
	Logger Logger

	// Metrics records execution metrics. Defaults to NilMetrics.
	Metrics Metrics

	// Buffer is the worker-owned pending buffer. Defaults to InsertionBuffer;
	// pass NewHeapBuffer() when backlogs are expected to grow large.
	Buffer PendingBuffer

	// YieldInterval is the pause between consecutive task executions.
	// Defaults to 10ms.
	YieldInterval time.Duration

	// HistorySize bounds the retained execution history. Defaults to 100.
	HistorySize int
}

// DefaultQueueConfig returns a config with default values.
func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{
		Name:          "taskqueue",
		Logger:        NewDefaultLogger(),
		Metrics:       &NilMetrics{},
		Buffer:        NewInsertionBuffer(),
		YieldInterval: defaultYieldInterval,
		HistorySize:   defaultHistoryCapacity,
	}
}
