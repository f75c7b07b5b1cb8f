package binding

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/delaneyj/accessors/emitter"
)

// UnresolvedPropertyError is returned when an object has neither an accessor
// method nor an exported field for a property.
type UnresolvedPropertyError struct {
	Op       string
	Object   any
	Property string
}

func (e *UnresolvedPropertyError) Error() string {
	return fmt.Sprintf("cannot %s property %q on %T", e.Op, e.Property, e.Object)
}

// names lists the Go identifiers a property may be spelled as:
// "icon-name", "icon_name" and "iconName" all map to IconName.
func names(property string) []string {
	var sb strings.Builder
	for _, part := range strings.Split(emitter.Kebab(property), "-") {
		sb.WriteString(upperFirst(part))
	}
	pascal := sb.String()

	raw := upperFirst(property)
	if raw == pascal || strings.ContainsAny(raw, "-_") {
		return []string{pascal}
	}
	return []string{pascal, raw}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// structOf follows pointers and interfaces down to a struct value.
func structOf(rv reflect.Value) (reflect.Value, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, rv.Kind() == reflect.Struct
}

// resolveGetter looks for GetX(), X() and then the exported field X.
func resolveGetter(obj any, property string) (func() reflect.Value, reflect.Type, error) {
	rv := reflect.ValueOf(obj)
	if property == "" || !rv.IsValid() {
		return nil, nil, &UnresolvedPropertyError{Op: "get", Object: obj, Property: property}
	}

	candidates := names(property)
	for _, name := range candidates {
		for _, methodName := range []string{"Get" + name, name} {
			m := rv.MethodByName(methodName)
			if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() == 0 {
				continue
			}
			return func() reflect.Value {
				return m.Call(nil)[0]
			}, m.Type().Out(0), nil
		}
	}

	if sv, ok := structOf(rv); ok {
		for _, name := range candidates {
			f, ok := sv.Type().FieldByName(name)
			if !ok || !f.IsExported() {
				continue
			}
			return func() reflect.Value {
				return sv.FieldByIndex(f.Index)
			}, f.Type, nil
		}
	}

	return nil, nil, &UnresolvedPropertyError{Op: "get", Object: obj, Property: property}
}

// resolveSetter looks for SetX(v) and then a settable exported field X,
// which needs obj to be a pointer.
func resolveSetter(obj any, property string) (func(v reflect.Value), reflect.Type, error) {
	rv := reflect.ValueOf(obj)
	if property == "" || !rv.IsValid() {
		return nil, nil, &UnresolvedPropertyError{Op: "set", Object: obj, Property: property}
	}

	candidates := names(property)
	for _, name := range candidates {
		m := rv.MethodByName("Set" + name)
		if !m.IsValid() || m.Type().NumIn() != 1 {
			continue
		}
		return func(v reflect.Value) {
			m.Call([]reflect.Value{v})
		}, m.Type().In(0), nil
	}

	if sv, ok := structOf(rv); ok {
		for _, name := range candidates {
			f, ok := sv.Type().FieldByName(name)
			if !ok || !f.IsExported() {
				continue
			}
			field := sv.FieldByIndex(f.Index)
			if !field.CanSet() {
				continue
			}
			return func(v reflect.Value) {
				field.Set(v)
			}, f.Type, nil
		}
	}

	return nil, nil, &UnresolvedPropertyError{Op: "set", Object: obj, Property: property}
}
