package prometheus

import (
	"context"
	"testing"
	"time"

	"github.com/Swind/go-task-queue/core"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeQueue struct {
	stats core.QueueStats
}

func (f *fakeQueue) Stats() core.QueueStats { return f.stats }

func TestSnapshotPoller_CollectsQueueStats(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	poller.AddQueue("queue-a", &fakeQueue{stats: core.QueueStats{
		Name:      "queue-a",
		State:     core.QueueStateTerminated,
		Submitted: 12,
		Pending:   3,
		Buffered:  2,
		Executed:  6,
		Failed:    1,
		Rejected:  4,
	}})

	poller.Start(context.Background())
	defer poller.Stop()

	// The first collection happens synchronously inside the poll loop startup;
	// give it a moment to run.
	deadline := time.After(2 * time.Second)
	for {
		if testutil.ToFloat64(poller.queuePending.WithLabelValues("queue-a")) == 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("poller never collected the queue snapshot")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if got := testutil.ToFloat64(poller.queueBuffered.WithLabelValues("queue-a")); got != 2 {
		t.Errorf("buffered gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(poller.queueSubmitted.WithLabelValues("queue-a")); got != 12 {
		t.Errorf("submitted gauge = %v, want 12", got)
	}
	if got := testutil.ToFloat64(poller.queueExecuted.WithLabelValues("queue-a")); got != 6 {
		t.Errorf("executed gauge = %v, want 6", got)
	}
	if got := testutil.ToFloat64(poller.queueFailed.WithLabelValues("queue-a")); got != 1 {
		t.Errorf("failed gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(poller.queueRejected.WithLabelValues("queue-a")); got != 4 {
		t.Errorf("rejected gauge = %v, want 4", got)
	}
	if got := testutil.ToFloat64(poller.queueTerminated.WithLabelValues("queue-a")); got != 1 {
		t.Errorf("terminated gauge = %v, want 1", got)
	}
}

func TestSnapshotPoller_StartStopIdempotent(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	poller.Start(context.Background())
	poller.Start(context.Background())
	poller.Stop()
	poller.Stop()

	// Restart after stop must work
	poller.Start(context.Background())
	poller.Stop()
}

func TestSnapshotPoller_LiveQueue(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	q := core.NewWithConfig(&core.QueueConfig{
		Name:          "live",
		Logger:        core.NewNoOpLogger(),
		YieldInterval: time.Millisecond,
	})
	poller.AddQueue("live", q)
	poller.Start(context.Background())
	defer poller.Stop()

	q.AddTask(core.TaskPriorityNormal, func(ctx context.Context) (string, error) {
		return "ok", nil
	}, "one")
	q.Shutdown()
	if err := q.WaitTerminated(context.Background()); err != nil {
		t.Fatalf("WaitTerminated failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		if testutil.ToFloat64(poller.queueTerminated.WithLabelValues("live")) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("terminated gauge never reached 1")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if got := testutil.ToFloat64(poller.queueExecuted.WithLabelValues("live")); got != 1 {
		t.Errorf("executed gauge = %v, want 1", got)
	}
}
