package reactive

import (
	"math"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

type options[T any] struct {
	equals func(prev, next T) bool
}

// Option configures states, externals and memos.
type Option[T any] func(o *options[T])

// WithEquals replaces the identity check that decides whether a write is a
// change.
func WithEquals[T any](equals func(prev, next T) bool) Option[T] {
	return func(o *options[T]) {
		o.equals = equals
	}
}

// StructuralEquals compares values deeply with go-cmp. Types with unexported
// fields need the matching cmp options (cmpopts.IgnoreUnexported or
// cmp.AllowUnexported) or the comparison panics.
func StructuralEquals[T any](opts ...cmp.Option) Option[T] {
	return func(o *options[T]) {
		o.equals = func(prev, next T) bool {
			return cmp.Equal(prev, next, opts...)
		}
	}
}

func newOptions[T any](opts []Option[T]) *options[T] {
	o := &options[T]{equals: Identical[T]}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Identical is the default equality. Comparable values compare with ==,
// slices, maps, pointers and channels compare by identity and funcs are never
// equal, so a write of a freshly built slice always counts as a change. NaN
// equals NaN.
func Identical[T any](a, b T) (eq bool) {
	va, vb := reflect.ValueOf(any(a)), reflect.ValueOf(any(b))
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return false
	case reflect.Float32, reflect.Float64:
		x, y := va.Float(), vb.Float()
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	}

	if !va.Type().Comparable() {
		return false
	}
	// interface fields can still hold uncomparable values
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return any(a) == any(b)
}
