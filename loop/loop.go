package loop

import (
	"context"
	"sync/atomic"

	"code.cloudfoundry.org/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultQueueSize = 256

var (
	ErrStopped = errors.New("loop: stopped")
	ErrRunning = errors.New("loop: already running")
)

// Loop runs posted functions one at a time on the goroutine that called
// Run. A reactive.Runtime is single threaded, so producers fed from other
// goroutines (timers, publishers, sockets) post their writes here.
type Loop struct {
	clock   clock.Clock
	log     logrus.FieldLogger
	queue   chan func()
	done    chan struct{}
	running atomic.Bool
}

type Option func(l *Loop)

func WithClock(c clock.Clock) Option {
	return func(l *Loop) {
		l.clock = c
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Loop) {
		l.log = log
	}
}

func WithQueueSize(n int) Option {
	return func(l *Loop) {
		l.queue = make(chan func(), n)
	}
}

func New(opts ...Option) *Loop {
	l := &Loop{
		clock: clock.NewClock(),
		log:   logrus.StandardLogger().WithField("component", "loop"),
		queue: make(chan func(), defaultQueueSize),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) Clock() clock.Clock {
	return l.clock
}

// Post queues fn and reports false once the loop has stopped. It blocks
// while the queue is full, so a task must not post to a full queue of its
// own loop.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it. A panic inside fn is returned as
// an error.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	result := make(chan error, 1)
	posted := l.Post(func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("loop: task panicked: %v", r)
			}
			result <- err
		}()
		fn()
	})
	if !posted {
		return ErrStopped
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		// the task may have been the last one to run
		select {
		case err := <-result:
			return err
		default:
			return ErrStopped
		}
	}
}

// Run executes posted functions until ctx is done. A loop runs once, tasks
// still queued when it returns are dropped.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	l.log.Debug("loop started")
	defer func() {
		close(l.done)
		dropped := l.drain()
		l.log.WithField("dropped", dropped).Debug("loop stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			l.execute(fn)
		}
	}
}

// drain discards the tasks still queued once the loop stopped. Their Do
// callers see ErrStopped.
func (l *Loop) drain() int {
	n := 0
	for {
		select {
		case <-l.queue:
			n++
		default:
			return n
		}
	}
}

func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.WithField("panic", r).Error("task panicked")
		}
	}()
	fn()
}

// Done is closed once Run returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
