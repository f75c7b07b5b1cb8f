package reactive

import "github.com/pkg/errors"

type effectOptions struct {
	immediate bool
}

type EffectOption func(o *effectOptions)

// Immediate runs the effect right away instead of after the owning scope
// finished its setup.
func Immediate() EffectOption {
	return func(o *effectOptions) {
		o.immediate = true
	}
}

type effect struct {
	rt    *Runtime
	fn    func() error
	owner *Scope
	// scope of the latest run, replaced on every rerun
	child *Scope
	deps  []dependency

	running  bool
	rerun    bool
	disposed bool
}

// CreateEffect runs fn once the active scope is mounted and again every time
// something it read changes. Each run gets a fresh child scope, so cleanups
// registered by fn run before the next run. Errors returned by fn go to the
// runtime's error handler.
func CreateEffect(rt *Runtime, fn func() error, opts ...EffectOption) {
	o := &effectOptions{}
	for _, opt := range opts {
		opt(o)
	}

	e := &effect{rt: rt, fn: fn, owner: rt.scope}
	if e.owner == nil {
		rt.log.Warn("effects created outside a root will never be disposed")
		e.run()
		return
	}

	e.owner.OnCleanup(e.dispose)
	if o.immediate {
		e.run()
	} else {
		e.owner.OnMount(e.run)
	}
}

func (e *effect) run() {
	if e.disposed {
		return
	}
	if e.running {
		e.rerun = true
		return
	}
	e.running = true
	defer func() {
		e.running = false
	}()

	for runs := 1; ; runs++ {
		e.rerun = false
		e.execute()
		if e.disposed || !e.rerun || !stale(e.deps) {
			return
		}
		if runs >= e.rt.maxEffectReruns {
			e.rt.reportError(errors.Wrapf(ErrEffectLoop, "gave up after %d runs", runs))
			return
		}
	}
}

func (e *effect) execute() {
	if e.child != nil {
		e.child.Dispose()
	}
	e.child = newScope(e.rt, e.owner)

	var (
		reads []read
		err   error
	)
	e.child.Run(func() {
		reads = e.rt.collect(func() {
			err = e.fn()
		})
	})

	if e.disposed {
		return
	}
	e.deps = rediff(e.deps, reads, e.notify)
	e.rt.reportError(err)
}

// notify is the callback registered on every dependency.
func (e *effect) notify() {
	if e.disposed || (e.owner != nil && e.owner.disposed) {
		return
	}
	if e.running {
		e.rerun = true
		return
	}
	if !stale(e.deps) {
		return
	}
	e.run()
}

func (e *effect) dispose() {
	if e.disposed {
		return
	}
	e.disposed = true

	deps := e.deps
	e.deps = nil
	release(deps)
	if e.child != nil {
		e.child.Dispose()
	}
}
