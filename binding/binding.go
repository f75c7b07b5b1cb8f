package binding

import (
	"reflect"

	"github.com/delaneyj/accessors/emitter"
	"github.com/delaneyj/accessors/reactive"
	"github.com/pkg/errors"
)

const notifySignal = "notify"

// notifier subscribes to "notify::<property>" when obj can emit it. Objects
// that cannot are bound as values that never notify.
func notifier(obj any, property string) func(cb reactive.Callback) reactive.DisposeFunc {
	c, ok := obj.(reactive.Connector)
	if !ok {
		return nil
	}

	signal := notifySignal + emitter.DetailSeparator + emitter.Kebab(property)
	return func(cb reactive.Callback) reactive.DisposeFunc {
		id := c.Connect(signal, func(...any) {
			cb()
		})
		return func() {
			c.Disconnect(id)
		}
	}
}

// Bind creates an accessor over a property of obj. The value is read through
// GetX(), X() or the exported field X, and changes are picked up from the
// "notify::x" signal when obj is a reactive.Connector such as
// *emitter.Object.
func Bind[T any](rt *reactive.Runtime, obj any, property string) (*reactive.Accessor[T], error) {
	get, typ, err := resolveGetter(obj, property)
	if err != nil {
		return nil, err
	}
	if want := reflect.TypeFor[T](); !typ.AssignableTo(want) {
		return nil, errors.Errorf("binding: property %q of %T is %s, not %s", property, obj, typ, want)
	}

	return reactive.NewAccessor(rt, func() T {
		v, _ := get().Interface().(T)
		return v
	}, notifier(obj, property)), nil
}

type link struct {
	obj  any
	prop string
}

// BindPath follows a chain of properties, obj.A.B.C, and tracks every link
// of it so replacing an intermediate object is picked up. A nil link yields
// the zero value. An intermediate object missing its property panics with an
// *UnresolvedPropertyError on read.
func BindPath[T any](rt *reactive.Runtime, obj any, props ...string) (*reactive.Accessor[T], error) {
	switch len(props) {
	case 0:
		return nil, errors.New("binding: no property given")
	case 1:
		return Bind[T](rt, obj, props[0])
	}
	if _, _, err := resolveGetter(obj, props[0]); err != nil {
		return nil, err
	}

	// reuse link accessors between evaluations so unchanged links keep their
	// subscriptions
	links := map[link]*reactive.Accessor[any]{}
	return reactive.CreateComputed(rt, func() T {
		var zero T
		used := make(map[link]*reactive.Accessor[any], len(props))
		defer func() {
			links = used
		}()

		v := obj
		for _, prop := range props {
			if isNil(v) {
				return zero
			}

			var (
				acc       *reactive.Accessor[any]
				cacheable = reflect.TypeOf(v).Comparable()
				l         = link{prop: prop}
			)
			if cacheable {
				l.obj = v
				acc = links[l]
			}
			if acc == nil {
				var err error
				if acc, err = Bind[any](rt, v, prop); err != nil {
					panic(err)
				}
			}
			if cacheable {
				used[l] = acc
			}
			v = acc.Get()
		}

		t, _ := v.(T)
		return t
	}), nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Sync writes the value of a into a property of obj now and on every change,
// through SetX(v) or the exported field X. Call the returned function to stop.
func Sync[T any](obj any, property string, a *reactive.Accessor[T]) (reactive.DisposeFunc, error) {
	set, typ, err := resolveSetter(obj, property)
	if err != nil {
		return nil, err
	}
	if have := reflect.TypeFor[T](); !have.AssignableTo(typ) {
		return nil, errors.Errorf("binding: cannot assign %s to property %q of %T (%s)", have, property, obj, typ)
	}

	write := func() {
		v := a.Peek()
		set(reflect.ValueOf(&v).Elem())
	}
	write()
	return a.Subscribe(write), nil
}
