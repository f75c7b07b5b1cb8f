package reactive

import "container/list"

// node is implemented by every kind of value that can be recorded as a
// dependency. Accessors derived with As share their parent's node.
type node interface {
	subscribe(cb Callback) DisposeFunc
	// currentVersion brings the node up to date and reports its version. The
	// version moves whenever subscribers would be told about a change.
	currentVersion() uint64
}

// subscribers keeps callbacks in subscription order with O(1) removal.
type subscribers struct {
	l list.List
}

func (s *subscribers) add(cb Callback) *list.Element {
	return s.l.PushBack(cb)
}

func (s *subscribers) remove(e *list.Element) {
	s.l.Remove(e)
}

func (s *subscribers) len() int {
	return s.l.Len()
}

// snapshot copies the callbacks so that notifying may subscribe and
// unsubscribe freely.
func (s *subscribers) snapshot() []Callback {
	cbs := make([]Callback, 0, s.l.Len())
	for e := s.l.Front(); e != nil; e = e.Next() {
		cbs = append(cbs, e.Value.(Callback))
	}
	return cbs
}

// source is the node behind every accessor that holds its own value: states,
// externals, connections and wrapped foreign subscriptions.
type source struct {
	rt        *Runtime
	version   uint64
	announced uint64
	subs      subscribers

	// demand hooks, run on the 0→1 and 1→0 subscriber transitions
	onFirst func()
	onLast  func()
}

func (s *source) subscribe(cb Callback) DisposeFunc {
	if s.subs.len() == 0 && s.onFirst != nil {
		s.onFirst()
	}
	e := s.subs.add(cb)

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		s.subs.remove(e)
		if s.subs.len() == 0 && s.onLast != nil {
			s.onLast()
		}
	}
}

func (s *source) currentVersion() uint64 {
	return s.version
}

// changed is called after a new value was stored.
func (s *source) changed() {
	s.version++
	s.rt.advance()
	s.notify()
}

// notify runs every subscriber once per version. Nested writes from inside a
// callback notify depth-first before the outer loop continues.
func (s *source) notify() {
	if s.announced == s.version {
		return
	}
	s.announced = s.version
	for _, cb := range s.subs.snapshot() {
		cb()
	}
}

type dependency struct {
	n       node
	version uint64
	dispose DisposeFunc
}

// rediff subscribes cb to nodes read for the first time, keeps the
// subscriptions of nodes read again and releases the ones no longer read.
// New subscriptions are made before old ones are released so a shared
// upstream never sees a spurious 1→0→1 transition.
func rediff(old []dependency, reads []read, cb Callback) []dependency {
	prev := make(map[node]DisposeFunc, len(old))
	for _, d := range old {
		prev[d.n] = d.dispose
	}

	next := make([]dependency, 0, len(reads))
	for _, r := range reads {
		dispose, ok := prev[r.n]
		if ok {
			delete(prev, r.n)
		} else {
			dispose = r.n.subscribe(cb)
		}
		next = append(next, dependency{n: r.n, version: r.version, dispose: dispose})
	}

	for _, d := range old {
		if dispose, ok := prev[d.n]; ok {
			dispose()
		}
	}
	return next
}

// stale reports whether any dependency moved past the version that was read.
func stale(deps []dependency) bool {
	for _, d := range deps {
		if d.n.currentVersion() != d.version {
			return true
		}
	}
	return false
}

func release(deps []dependency) {
	for _, d := range deps {
		d.dispose()
	}
}
