package reactive

// CreateExternal exposes a value fed by something outside the graph. The
// producer is started when the first subscriber arrives and stopped through
// the function it returned when the last one leaves, so at most one producer
// runs at a time. Producers living on other goroutines must hand their
// writes to the goroutine that owns rt.
func CreateExternal[T any](rt *Runtime, init T, producer func(set Setter[T]) DisposeFunc, opts ...Option[T]) *Accessor[T] {
	s := newState(rt, init, opts)

	var stop DisposeFunc
	s.onFirst = func() {
		stop = producer(s.setter())
	}
	s.onLast = func() {
		if stop != nil {
			stop()
			stop = nil
		}
	}
	return s.accessor()
}

// Connector is a source of named events, such as *emitter.Emitter.
type Connector interface {
	Connect(signal string, handler func(args ...any)) uint64
	Disconnect(id uint64)
}

// Handler folds the events of one signal into a connection's value.
type Handler[T any] struct {
	Source Connector
	Signal string
	Reduce func(args []any, current T) T
}

func On[T any](source Connector, signal string, reduce func(args []any, current T) T) Handler[T] {
	return Handler[T]{Source: source, Signal: signal, Reduce: reduce}
}

// CreateConnection is CreateExternal over a set of signal handlers: all of
// them are connected while the accessor has subscribers.
func CreateConnection[T any](rt *Runtime, init T, handlers ...Handler[T]) *Accessor[T] {
	return CreateExternal(rt, init, func(set Setter[T]) DisposeFunc {
		ids := make([]uint64, len(handlers))
		for i, h := range handlers {
			ids[i] = h.Source.Connect(h.Signal, func(args ...any) {
				set.Update(func(current T) T {
					return h.Reduce(args, current)
				})
			})
		}

		return func() {
			for i, h := range handlers {
				h.Source.Disconnect(ids[i])
			}
		}
	})
}
