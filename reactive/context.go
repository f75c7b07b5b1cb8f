package reactive

// Context is a value looked up through the scope chain, falling back to a
// default outside of any provider.
type Context[T any] struct {
	rt           *Runtime
	defaultValue T
}

func CreateContext[T any](rt *Runtime, defaultValue T) *Context[T] {
	return &Context[T]{rt: rt, defaultValue: defaultValue}
}

// Use returns the value of the nearest enclosing provider.
func (c *Context[T]) Use() T {
	for s := c.rt.scope; s != nil; s = s.parent {
		if v, ok := s.contexts[c]; ok {
			return v.(T)
		}
	}
	return c.defaultValue
}

func (c *Context[T]) Provide(value T, fn func()) {
	Provide(c, value, func() struct{} {
		fn()
		return struct{}{}
	})
}

// Provide runs fn in a child scope of the active scope that carries value
// for c.
func Provide[T, R any](c *Context[T], value T, fn func() R) R {
	s := newScope(c.rt, c.rt.scope)
	s.contexts = map[any]any{c: value}

	var result R
	s.Run(func() {
		result = fn()
	})
	return result
}
