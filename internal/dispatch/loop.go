// Package dispatch runs the UI-domain task loop. Preference observables are
// created and mutated only on this loop; background goroutines marshal
// updates onto it as fire-and-forget tasks.
package dispatch

import (
	"context"
	"log/slog"
	"sync"
)

// Runner is the surface the preference manager needs to marshal work onto
// the UI domain. Satisfied by *Loop; tests substitute an inline runner.
type Runner interface {
	// RunLater queues fn for execution on the UI domain. Never blocks on
	// task completion. Tasks queued from the same goroutine execute in
	// FIFO order.
	RunLater(fn func())
	// RunNowOrLater executes fn synchronously when already on the UI
	// domain, otherwise queues it like RunLater.
	RunNowOrLater(fn func())
}

// Loop is a single-goroutine cooperative executor. One Loop instance backs
// the process's UI domain for its whole lifetime.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}

	loopID int64 // goroutine id of Run; 0 while not running
	strict bool

	logger *slog.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithStrict enables runtime domain assertions. Intended for tests and
// debug builds; Assert panics when called off-loop.
func WithStrict() Option {
	return func(l *Loop) { l.strict = true }
}

// NewLoop creates a Loop. It does nothing until Run is called.
func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes queued tasks until ctx is cancelled. It must be called from
// exactly one goroutine, which becomes the UI domain.
func (l *Loop) Run(ctx context.Context) {
	id := goroutineID()

	l.mu.Lock()
	l.loopID = id
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.loopID = 0
		l.mu.Unlock()
	}()

	for {
		for {
			task, ok := l.pop()
			if !ok {
				break
			}
			task()
		}

		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}
	}
}

// RunLater queues fn onto the loop. Safe from any goroutine.
func (l *Loop) RunLater(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RunNowOrLater executes fn inline when the caller is the loop goroutine,
// preserving the synchronous-update semantics UI code expects, and queues
// it otherwise.
func (l *Loop) RunNowOrLater(fn func()) {
	if l.onLoop() {
		fn()
		return
	}
	l.RunLater(fn)
}

// Assert verifies the caller is on the loop goroutine. In strict mode a
// violation panics; otherwise it is logged once per call site's discretion.
func (l *Loop) Assert() {
	if l.onLoop() {
		return
	}
	if l.strict {
		panic("dispatch: UI-domain operation called off the loop goroutine")
	}
	l.logger.Warn("UI-domain operation called off the loop goroutine")
}

func (l *Loop) onLoop() bool {
	l.mu.Lock()
	id := l.loopID
	l.mu.Unlock()
	return id != 0 && id == goroutineID()
}

func (l *Loop) pop() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	task := l.queue[0]
	l.queue = l.queue[1:]
	return task, true
}
