package reactive

import "fmt"

//go:generate go run ../cmd/codegen --out combine_gen.go

// Accessor is a read handle over a reactive value. Peek reads without
// tracking, Get reads and records the accessor as a dependency of the
// computation or effect that is currently evaluating.
type Accessor[T any] struct {
	rt  *Runtime
	n   node
	get func() T
}

func (a *Accessor[T]) Runtime() *Runtime {
	return a.rt
}

func (a *Accessor[T]) Peek() T {
	return a.get()
}

func (a *Accessor[T]) Get() T {
	v := a.get()
	if a.rt.tracking() {
		a.rt.track(a.n, a.n.currentVersion())
	}
	return v
}

// Subscribe is not scope aware, the returned function must be called once
// the callback is no longer needed. Most code wants CreateEffect instead.
func (a *Accessor[T]) Subscribe(cb Callback) DisposeFunc {
	return a.n.subscribe(cb)
}

func (a *Accessor[T]) String() string {
	return fmt.Sprintf("Accessor { %v }", a.Peek())
}

// NewAccessor adapts a foreign value. subscribe is called once when the
// accessor gains its first subscriber and released with the last one; every
// call of its callback is treated as a change. A nil subscribe makes a value
// that never notifies.
func NewAccessor[T any](rt *Runtime, get func() T, subscribe func(cb Callback) DisposeFunc) *Accessor[T] {
	s := &source{rt: rt}
	read := get
	if subscribe != nil {
		// unobserved, the value may have moved without a notification
		read = func() T {
			if s.subs.len() == 0 {
				rt.taint()
			}
			return get()
		}

		var stop DisposeFunc
		s.onFirst = func() {
			stop = subscribe(s.changed)
		}
		s.onLast = func() {
			if stop != nil {
				stop()
				stop = nil
			}
		}
	}
	return &Accessor[T]{rt: rt, n: s, get: read}
}

// Static wraps a constant.
func Static[T any](rt *Runtime, value T) *Accessor[T] {
	return NewAccessor(rt, func() T { return value }, nil)
}

// As applies transform on every read. The result is not cached and shares
// a's subscription, so it notifies exactly when a does.
func As[T, R any](a *Accessor[T], transform func(T) R) *Accessor[R] {
	return &Accessor[R]{
		rt: a.rt,
		n:  a.n,
		get: func() R {
			return transform(a.get())
		},
	}
}

// Map is shorthand for CreateComputed(rt, func() R { return compute(a.Get()) }).
func Map[T, R any](a *Accessor[T], compute func(T) R) *Accessor[R] {
	return CreateComputed(a.rt, func() R {
		return compute(a.Get())
	})
}
