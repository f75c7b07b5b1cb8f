package external

import (
	"time"

	"github.com/delaneyj/accessors/loop"
	"github.com/delaneyj/accessors/reactive"
)

// Interval applies step to the value on every tick while the accessor has
// subscribers. The ticker is created on the first subscribe and stopped
// with the last unsubscribe.
func Interval[T any](rt *reactive.Runtime, l *loop.Loop, every time.Duration, init T, step func(prev T) T) *reactive.Accessor[T] {
	return reactive.CreateExternal(rt, init, func(set reactive.Setter[T]) reactive.DisposeFunc {
		ticker := l.Clock().NewTicker(every)
		stop := make(chan struct{})
		// only touched on the loop goroutine
		stopped := false

		go func() {
			for {
				select {
				case <-ticker.C():
					l.Post(func() {
						if !stopped {
							set.Update(step)
						}
					})
				case <-stop:
					return
				}
			}
		}()

		return func() {
			stopped = true
			close(stop)
			ticker.Stop()
		}
	})
}

// Now is the clock's current time, refreshed every interval.
func Now(rt *reactive.Runtime, l *loop.Loop, every time.Duration) *reactive.Accessor[time.Time] {
	c := l.Clock()
	return Interval(rt, l, every, c.Now(), func(time.Time) time.Time {
		return c.Now()
	})
}

// Timeout switches from init to value once after has elapsed since the
// first subscribe. Unsubscribing before that cancels the timer and the next
// subscribe starts it over.
func Timeout[T any](rt *reactive.Runtime, l *loop.Loop, after time.Duration, init, value T) *reactive.Accessor[T] {
	return reactive.CreateExternal(rt, init, func(set reactive.Setter[T]) reactive.DisposeFunc {
		timer := l.Clock().NewTimer(after)
		stop := make(chan struct{})
		stopped := false

		go func() {
			select {
			case <-timer.C():
				l.Post(func() {
					if !stopped {
						set.Set(value)
					}
				})
			case <-stop:
			}
		}()

		return func() {
			stopped = true
			close(stop)
			timer.Stop()
		}
	})
}
