package prometheus

import (
	"context"
	"sync"
	"time"

	"github.com/Swind/go-task-queue/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// QueueSnapshotProvider provides current queue stats snapshots.
type QueueSnapshotProvider interface {
	Stats() core.QueueStats
}

// SnapshotPoller periodically exports queue Stats() snapshots into Prometheus gauges.
type SnapshotPoller struct {
	interval time.Duration

	queuesMu sync.RWMutex
	queues   map[string]QueueSnapshotProvider

	queuePending    *prom.GaugeVec
	queueBuffered   *prom.GaugeVec
	queueSubmitted  *prom.GaugeVec
	queueExecuted   *prom.GaugeVec
	queueFailed     *prom.GaugeVec
	queueRejected   *prom.GaugeVec
	queueTerminated *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	queuePending := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskqueue",
		Name:      "queue_pending",
		Help:      "Number of submissions waiting in the intake per queue.",
	}, []string{"queue"})
	queueBuffered := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskqueue",
		Name:      "queue_buffered",
		Help:      "Number of tasks held in the worker's pending buffer per queue.",
	}, []string{"queue"})
	queueSubmitted := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskqueue",
		Name:      "queue_submitted_total",
		Help:      "Accepted submission count snapshot.",
	}, []string{"queue"})
	queueExecuted := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskqueue",
		Name:      "queue_executed_total",
		Help:      "Successful execution count snapshot.",
	}, []string{"queue"})
	queueFailed := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskqueue",
		Name:      "queue_failed_total",
		Help:      "Failed execution count snapshot.",
	}, []string{"queue"})
	queueRejected := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskqueue",
		Name:      "queue_rejected_total",
		Help:      "Rejected submission count snapshot.",
	}, []string{"queue"})
	queueTerminated := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskqueue",
		Name:      "queue_terminated",
		Help:      "Queue terminated state (1=terminated, 0=running or draining).",
	}, []string{"queue"})

	var err error
	if queuePending, err = registerCollector(reg, queuePending); err != nil {
		return nil, err
	}
	if queueBuffered, err = registerCollector(reg, queueBuffered); err != nil {
		return nil, err
	}
	if queueSubmitted, err = registerCollector(reg, queueSubmitted); err != nil {
		return nil, err
	}
	if queueExecuted, err = registerCollector(reg, queueExecuted); err != nil {
		return nil, err
	}
	if queueFailed, err = registerCollector(reg, queueFailed); err != nil {
		return nil, err
	}
	if queueRejected, err = registerCollector(reg, queueRejected); err != nil {
		return nil, err
	}
	if queueTerminated, err = registerCollector(reg, queueTerminated); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:        interval,
		queues:          make(map[string]QueueSnapshotProvider),
		queuePending:    queuePending,
		queueBuffered:   queueBuffered,
		queueSubmitted:  queueSubmitted,
		queueExecuted:   queueExecuted,
		queueFailed:     queueFailed,
		queueRejected:   queueRejected,
		queueTerminated: queueTerminated,
	}, nil
}

// AddQueue adds or replaces a queue snapshot provider by name.
func (p *SnapshotPoller) AddQueue(name string, provider QueueSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "queue")
	p.queuesMu.Lock()
	p.queues[name] = provider
	p.queuesMu.Unlock()
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *SnapshotPoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

func (p *SnapshotPoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.collectOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *SnapshotPoller) collectOnce() {
	p.queuesMu.RLock()
	defer p.queuesMu.RUnlock()

	for name, provider := range p.queues {
		stats := provider.Stats()
		p.queuePending.WithLabelValues(name).Set(float64(stats.Pending))
		p.queueBuffered.WithLabelValues(name).Set(float64(stats.Buffered))
		p.queueSubmitted.WithLabelValues(name).Set(float64(stats.Submitted))
		p.queueExecuted.WithLabelValues(name).Set(float64(stats.Executed))
		p.queueFailed.WithLabelValues(name).Set(float64(stats.Failed))
		p.queueRejected.WithLabelValues(name).Set(float64(stats.Rejected))
		if stats.State == core.QueueStateTerminated {
			p.queueTerminated.WithLabelValues(name).Set(1)
		} else {
			p.queueTerminated.WithLabelValues(name).Set(0)
		}
	}
}
