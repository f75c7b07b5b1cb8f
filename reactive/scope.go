package reactive

import "container/list"

// Scope owns cleanups, mount callbacks, context values and child scopes.
// Disposing a scope walks its cleanups and children in the order they were
// added, so a child goes away at the point it was created.
type Scope struct {
	rt     *Runtime
	parent *Scope
	// position in parent.owned
	elem *list.Element
	// cleanups (func()) and child scopes (*Scope), in registration order
	owned list.List

	mounts   []func()
	contexts map[any]any

	running  int
	mounted  bool
	disposed bool
}

func newScope(rt *Runtime, parent *Scope) *Scope {
	s := &Scope{rt: rt, parent: parent}
	if parent != nil && !parent.disposed {
		s.elem = parent.owned.PushBack(s)
	}
	return s
}

// NewScope creates a scope owned by parent, which may be nil.
func NewScope(rt *Runtime, parent *Scope) *Scope {
	return newScope(rt, parent)
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

func (s *Scope) Disposed() bool {
	return s.disposed
}

// Run makes s the active scope while fn runs and restores the previous one
// afterwards, also on panic. When the outermost Run of s returns normally the
// pending mount callbacks are flushed.
func (s *Scope) Run(fn func()) {
	prev := s.rt.scope
	s.rt.scope = s
	defer func() {
		s.rt.scope = prev
	}()

	s.running++
	func() {
		defer func() {
			s.running--
		}()
		fn()
	}()

	if s.running == 0 {
		s.mount()
	}
}

func (s *Scope) mount() {
	s.mounted = true
	for len(s.mounts) > 0 {
		mounts := s.mounts
		s.mounts = nil
		for _, cb := range mounts {
			cb()
		}
	}
}

func (s *Scope) OnCleanup(cb func()) {
	if s.disposed {
		s.rt.log.Debug("scope already disposed, running cleanup now")
		cb()
		return
	}
	s.owned.PushBack(cb)
}

// OnMount defers cb until the synchronous setup of the outermost scope that
// is still being set up has finished. On a scope that is already mounted
// and idle cb runs right away.
func (s *Scope) OnMount(cb func()) {
	if s.disposed {
		return
	}
	if p := s.parent; p != nil && !p.mounted && !p.disposed {
		p.OnMount(cb)
		return
	}
	if s.mounted && s.running == 0 {
		cb()
		return
	}
	s.mounts = append(s.mounts, cb)
}

func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	owned := make([]any, 0, s.owned.Len())
	for e := s.owned.Front(); e != nil; e = e.Next() {
		owned = append(owned, e.Value)
	}
	for _, o := range owned {
		switch o := o.(type) {
		case *Scope:
			o.Dispose()
		case func():
			o()
		}
	}

	s.owned.Init()
	s.mounts = nil
	s.contexts = nil
	if s.parent != nil && s.elem != nil {
		s.parent.owned.Remove(s.elem)
	}
	s.parent = nil
	s.elem = nil
}

// CreateRoot runs fn inside a new parentless scope. The scope lives until
// the dispose function handed to fn is called.
func CreateRoot[T any](rt *Runtime, fn func(dispose func()) T) T {
	s := newScope(rt, nil)

	var result T
	s.Run(func() {
		result = fn(s.Dispose)
	})
	return result
}

// GetScope returns the scope that owns the running code.
func GetScope(rt *Runtime) (*Scope, error) {
	if rt.scope == nil {
		return nil, &NoActiveScopeError{Op: "get scope"}
	}
	return rt.scope, nil
}

// OnCleanup attaches cb to the active scope. Without one the cleanup can
// never run, which is logged.
func OnCleanup(rt *Runtime, cb func()) {
	s := rt.scope
	if s == nil {
		rt.log.WithError(&NoActiveScopeError{Op: "on cleanup"}).Warn("will not be able to cleanup")
		return
	}
	s.OnCleanup(cb)
}

// OnMount defers cb until the active scope finished its setup. Without an
// active scope cb runs immediately.
func OnMount(rt *Runtime, cb func()) {
	s := rt.scope
	if s == nil {
		rt.log.WithError(&NoActiveScopeError{Op: "on mount"}).Warn("running mount callback immediately")
		cb()
		return
	}
	s.OnMount(cb)
}
