// Package background runs short-lived tasks on a fixed pool of workers.
package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"healbuddy-web/pkg/logger"
)

type Task struct {
	Name    string
	Run     func(ctx context.Context) error
	Timeout time.Duration
	// Retries is the number of extra attempts after a failed run.
	Retries int
	Backoff time.Duration
}

var (
	ErrPoolNotStarted = errors.New("pool not started")
	ErrPoolStopped    = errors.New("pool is shutting down")
)

type Pool struct {
	workers int

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool

	queue   chan queuedTask
	workWG  sync.WaitGroup
	taskWG  sync.WaitGroup
	pending sync.WaitGroup
}

type queuedTask struct {
	task    Task
	attempt int
}

var (
	metricsOnce     sync.Once
	taskRunsTotal   *prometheus.CounterVec
	taskRunDuration *prometheus.HistogramVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		taskRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healbuddy",
			Subsystem: "background",
			Name:      "task_runs_total",
			Help:      "Background task executions by outcome",
		}, []string{"task", "status"})

		taskRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healbuddy",
			Subsystem: "background",
			Name:      "task_duration_seconds",
			Help:      "Duration of background task executions",
			Buckets:   prometheus.DefBuckets,
		}, []string{"task"})
	})
}

func NewPool(workers, queueSize int) *Pool {
	initMetrics()

	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 32
	}

	return &Pool{
		workers: workers,
		queue:   make(chan queuedTask, queueSize),
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.started = true

	for i := 0; i < p.workers; i++ {
		p.workWG.Add(1)
		go p.work()
	}
}

// Submit queues a task. It blocks while the queue is full.
func (p *Pool) Submit(task Task) error {
	if task.Name == "" {
		return errors.New("task name is required")
	}
	if task.Run == nil {
		return errors.New("task runner is required")
	}

	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return ErrPoolNotStarted
	}

	p.pending.Add(1)
	if !p.enqueue(queuedTask{task: task, attempt: 1}) {
		p.pending.Done()
		return ErrPoolStopped
	}
	return nil
}

// Wait blocks until every submitted task has finished, including retries.
func (p *Pool) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil
	}
	cancel := p.cancel
	p.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		p.workWG.Wait()
		p.taskWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) work() {
	defer p.workWG.Done()

	for {
		select {
		case <-p.ctx.Done():
			p.drain()
			return
		case qt := <-p.queue:
			p.handle(qt)
		}
	}
}

// drain releases tasks left in the queue after cancellation so Wait returns.
func (p *Pool) drain() {
	for {
		select {
		case <-p.queue:
			p.pending.Done()
		default:
			return
		}
	}
}

func (p *Pool) handle(qt queuedTask) {
	p.taskWG.Add(1)
	defer p.taskWG.Done()

	err := p.run(qt)
	if err != nil && p.shouldRetry(qt, err) {
		if qt.task.Backoff > 0 && !p.sleep(qt.task.Backoff) {
			p.finish(qt, context.Canceled)
			return
		}
		next := qt
		next.attempt++
		if p.enqueue(next) {
			return
		}
	}

	p.finish(qt, err)
}

func (p *Pool) run(qt queuedTask) (runErr error) {
	start := time.Now()
	status := "success"

	ctx := p.ctx
	if qt.task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, qt.task.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			runErr = fmt.Errorf("panic: %v", r)
			status = "failure"
		}
		taskRunDuration.WithLabelValues(qt.task.Name).Observe(time.Since(start).Seconds())
		taskRunsTotal.WithLabelValues(qt.task.Name, status).Inc()
	}()

	if err := ctx.Err(); err != nil {
		status = "canceled"
		return err
	}

	if err := qt.task.Run(ctx); err != nil {
		status = "failure"
		if errors.Is(err, context.Canceled) {
			status = "canceled"
		}
		return err
	}
	return nil
}

func (p *Pool) shouldRetry(qt queuedTask, err error) bool {
	if errors.Is(err, context.Canceled) || p.ctx.Err() != nil {
		return false
	}
	return qt.attempt <= qt.task.Retries
}

func (p *Pool) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *Pool) enqueue(qt queuedTask) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.queue <- qt:
		return true
	}
}

func (p *Pool) finish(qt queuedTask, err error) {
	defer p.pending.Done()

	fields := map[string]interface{}{"task": qt.task.Name, "attempt": qt.attempt}
	switch {
	case err == nil:
		logger.Debug("Background task completed", fields)
	case errors.Is(err, context.Canceled):
		logger.Warn("Background task canceled", fields)
	default:
		logger.Error(err, "Background task failed", fields)
	}
}
