package external

import (
	"github.com/delaneyj/accessors/loop"
	"github.com/delaneyj/accessors/reactive"
	"github.com/moby/pubsub"
)

// Subscription folds the messages of a publisher into a value. The
// publisher is subscribed on demand and the subscriber channel evicted when
// the last reader leaves, the same way daemon stats collection treats its
// publishers.
func Subscription[T any](rt *reactive.Runtime, l *loop.Loop, pub *pubsub.Publisher, init T, reduce func(msg any, current T) T) *reactive.Accessor[T] {
	return reactive.CreateExternal(rt, init, func(set reactive.Setter[T]) reactive.DisposeFunc {
		ch := pub.Subscribe()
		stopped := false

		go func() {
			for msg := range ch {
				l.Post(func() {
					if stopped {
						return
					}
					set.Update(func(current T) T {
						return reduce(msg, current)
					})
				})
			}
		}()

		return func() {
			stopped = true
			pub.Evict(ch)
		}
	})
}
