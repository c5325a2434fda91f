package widget

import (
	"context"
	"sync"
)

// Scheduler runs functions on the goroutine owning the widget tree.
type Scheduler interface {
	Post(fn func())
}

// Loop is a Scheduler backed by an unbounded queue. One goroutine calls Run
// (or RunOne / Drain); any goroutine may Post.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	notify chan struct{}
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{notify: make(chan struct{}, 1)}
}

// Post queues fn. It never blocks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

func (l *Loop) pop() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

// Pending returns the number of queued functions.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Drain runs every queued function, including ones queued while draining,
// and returns how many ran.
func (l *Loop) Drain() int {
	n := 0
	for {
		fn, ok := l.pop()
		if !ok {
			return n
		}
		fn()
		n++
	}
}

// RunOne waits for a queued function and runs it.
func (l *Loop) RunOne(ctx context.Context) error {
	for {
		if fn, ok := l.pop(); ok {
			fn()
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.notify:
		}
	}
}

// Run processes queued functions until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.RunOne(ctx); err != nil {
			return err
		}
	}
}
