package stylist

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/styleai/internal/logger"
)

// Defaults applied by StartTask to unset or non-positive TaskConfig fields.
const (
	DefaultInterval = 400 * time.Millisecond
	DefaultStep     = 14.3
)

// TaskConfig controls a progress run.
type TaskConfig struct {
	Interval time.Duration // time between ticks
	Step     float64       // percent added per tick
	Settle   time.Duration // pause between reaching 100% and completion
	Messages []string      // nil uses Messages
}

// Callbacks receive task events on the task goroutine. They must not block
// for long and must not touch wizard state directly; UIs forward them as
// messages.
type Callbacks struct {
	OnProgress func(Progress)
	OnComplete func()
}

// Task is a cancellable progress run. Exactly one goroutine ticks the
// simulator until it reaches 100%, waits the settle delay, then reports
// completion once.
type Task struct {
	id  string
	cfg TaskConfig
	cb  Callbacks
	sim *Simulator

	mu        sync.Mutex
	cancelled bool
	completed bool

	cancelOnce sync.Once
	done       chan struct{}
	stopped    chan struct{}
}

// StartTask launches a task. Cancelling ctx has the same effect as Cancel.
func StartTask(ctx context.Context, cfg TaskConfig, cb Callbacks) *Task {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Step <= 0 {
		cfg.Step = DefaultStep
	}
	if cfg.Settle < 0 {
		cfg.Settle = 0
	}
	t := &Task{
		id:      uuid.NewString(),
		cfg:     cfg,
		cb:      cb,
		sim:     NewSimulator(cfg.Step, cfg.Messages),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go t.run(ctx)
	logger.Debug("progress task %s started (interval=%s step=%g)", t.id, cfg.Interval, cfg.Step)
	return t
}

// ID identifies this run. UIs tag messages with it to drop stale ones.
func (t *Task) ID() string {
	return t.id
}

// Cancel stops the task. It never blocks and is safe to call repeatedly,
// from any goroutine, including from inside a callback. A callback racing
// with Cancel may still run once; UIs drop it by ID.
func (t *Task) Cancel() {
	t.cancelOnce.Do(func() {
		t.mu.Lock()
		t.cancelled = true
		t.mu.Unlock()
		close(t.done)
		logger.Debug("progress task %s cancelled", t.id)
	})
}

// Stop cancels and waits for the goroutine to exit. Do not call it from a
// callback.
func (t *Task) Stop() {
	t.Cancel()
	<-t.stopped
}

// Done is closed when the task goroutine has exited.
func (t *Task) Done() <-chan struct{} {
	return t.stopped
}

// Completed reports whether OnComplete was dispatched.
func (t *Task) Completed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed
}

func (t *Task) run(ctx context.Context) {
	defer close(t.stopped)

	if !t.tick(ctx) {
		return
	}
	t.settle(ctx)
}

// tick runs the ticker until the simulator finishes. It returns false if
// the task was cancelled first.
func (t *Task) tick(ctx context.Context) bool {
	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-t.done:
			return false
		case <-ticker.C:
			p := t.sim.Step()
			if !t.dispatch(func() {
				if t.cb.OnProgress != nil {
					t.cb.OnProgress(p)
				}
			}) {
				return false
			}
			if p.Done {
				return true
			}
		}
	}
}

func (t *Task) settle(ctx context.Context) {
	timer := time.NewTimer(t.cfg.Settle)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-t.done:
		return
	case <-timer.C:
	}

	t.mu.Lock()
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	t.completed = true
	t.mu.Unlock()

	if t.cb.OnComplete != nil {
		t.cb.OnComplete()
	}
	logger.Debug("progress task %s completed", t.id)
}

// dispatch runs fn unless the task has been cancelled.
func (t *Task) dispatch(fn func()) bool {
	t.mu.Lock()
	cancelled := t.cancelled
	t.mu.Unlock()
	if cancelled {
		return false
	}
	fn()
	return true
}
