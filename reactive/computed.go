package reactive

import "github.com/pkg/errors"

// computed caches a producer's result while it has subscribers ("hot") and
// evaluates it freshly on every read otherwise ("cold").
type computed[T any] struct {
	source
	producer func() T
	// nil for plain computeds: every recomputation counts as a change
	equals func(prev, next T) bool

	active     bool
	value      T
	cached     bool
	verifiedAt uint64
	deps       []dependency

	// last cold evaluation, adopted by an activation within the same epoch
	pending *evaluation[T]
	running bool
}

type evaluation[T any] struct {
	value T
	reads []read
}

func newComputed[T any](rt *Runtime, producer func() T, equals func(prev, next T) bool) *computed[T] {
	c := &computed[T]{
		source:   source{rt: rt},
		producer: producer,
		equals:   equals,
	}
	c.onFirst = c.activate
	c.onLast = c.deactivate
	return c
}

func (c *computed[T]) accessor() *Accessor[T] {
	return &Accessor[T]{rt: c.rt, n: c, get: c.peek}
}

func (c *computed[T]) peek() T {
	if c.active {
		c.refresh()
		return c.value
	}

	epoch := c.rt.epoch
	value, f := c.run()
	if f.volatile {
		c.rt.taint()
	}
	if f.volatile || epoch != c.rt.epoch {
		c.discardPending()
		return value
	}
	c.pending = &evaluation[T]{value: value, reads: f.reads}
	c.rt.pending.Add(c)
	return value
}

func (c *computed[T]) discardPending() {
	c.pending = nil
	c.rt.pending.Remove(c)
}

func (c *computed[T]) currentVersion() uint64 {
	if c.active {
		c.refresh()
	}
	return c.version
}

func (c *computed[T]) run() (value T, f *frame) {
	if c.running {
		panic(errors.Wrapf(ErrCircularDependency, "computed %T read itself", c.value))
	}
	c.running = true
	defer func() {
		c.running = false
	}()

	f = c.rt.evaluate(func() {
		value = c.producer()
	})
	return value, f
}

// refresh verifies the cache at most once per epoch and recomputes when a
// dependency moved. Writes during the recomputation leave the node
// unverified for the new epoch.
func (c *computed[T]) refresh() {
	epoch := c.rt.epoch
	if c.cached && c.verifiedAt == epoch {
		return
	}
	if !c.cached || stale(c.deps) {
		c.recompute()
	}
	c.verifiedAt = epoch
}

func (c *computed[T]) recompute() {
	value, f := c.run()
	c.deps = rediff(c.deps, f.reads, c.invalidate)
	c.store(value)
}

func (c *computed[T]) store(value T) {
	if c.cached && c.equals != nil && c.equals(c.value, value) {
		return
	}
	c.value = value
	c.cached = true
	c.version++
}

// invalidate is the callback registered on every dependency.
func (c *computed[T]) invalidate() {
	if !c.active {
		return
	}
	c.refresh()
	c.notify()
}

func (c *computed[T]) activate() {
	c.active = true
	ok := false
	defer func() {
		if !ok {
			c.deactivate()
		}
	}()

	p := c.pending
	c.discardPending()
	if p != nil {
		c.deps = rediff(nil, p.reads, c.invalidate)
		c.value = p.value
		c.cached = true
		c.verifiedAt = 0
	} else {
		c.refresh()
	}
	c.announced = c.version
	ok = true
}

func (c *computed[T]) deactivate() {
	deps := c.deps
	var zero T

	c.active = false
	c.deps = nil
	c.cached = false
	c.value = zero
	release(deps)
}

// CreateComputed derives a value from the accessors read by producer. Every
// recomputation notifies subscribers, use CreateMemo to skip notifications
// for equal results.
func CreateComputed[T any](rt *Runtime, producer func() T) *Accessor[T] {
	return newComputed(rt, producer, nil).accessor()
}

// CreateMemo is CreateComputed that only notifies when the result changed
// under the configured equality.
func CreateMemo[T any](rt *Runtime, producer func() T, opts ...Option[T]) *Accessor[T] {
	o := newOptions(opts)
	return newComputed(rt, producer, o.equals).accessor()
}
