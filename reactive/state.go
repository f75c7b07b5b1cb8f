package reactive

// Setter writes a state. Set stores a value, Update derives the next value
// from the current one. Writes equal to the current value are dropped.
type Setter[T any] struct {
	update func(fn func(prev T) T)
}

// SetterFunc builds a Setter around a custom write, for values stored outside
// the graph. update receives the function computing the next value.
func SetterFunc[T any](update func(fn func(prev T) T)) Setter[T] {
	return Setter[T]{update: update}
}

func (s Setter[T]) Set(value T) {
	s.update(func(T) T {
		return value
	})
}

func (s Setter[T]) Update(fn func(prev T) T) {
	s.update(fn)
}

type state[T any] struct {
	source
	value  T
	equals func(prev, next T) bool
}

func newState[T any](rt *Runtime, init T, opts []Option[T]) *state[T] {
	o := newOptions(opts)
	return &state[T]{
		source: source{rt: rt},
		value:  init,
		equals: o.equals,
	}
}

func (s *state[T]) write(fn func(prev T) T) {
	next := fn(s.value)
	if s.equals(s.value, next) {
		return
	}
	s.value = next
	s.changed()
}

func (s *state[T]) peek() T {
	return s.value
}

func (s *state[T]) accessor() *Accessor[T] {
	return &Accessor[T]{rt: s.rt, n: s, get: s.peek}
}

func (s *state[T]) setter() Setter[T] {
	return Setter[T]{update: s.write}
}

// CreateState creates a writable value.
func CreateState[T any](rt *Runtime, init T, opts ...Option[T]) (*Accessor[T], Setter[T]) {
	s := newState(rt, init, opts)
	return s.accessor(), s.setter()
}
