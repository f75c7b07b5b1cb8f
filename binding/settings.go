package binding

import (
	"maps"
	"slices"
	"sync"

	"github.com/delaneyj/accessors/emitter"
	"github.com/delaneyj/accessors/reactive"
)

const changedSignal = "changed"

// Settings is a string keyed store that emits "changed::<key>" after a key
// was written with a different value.
type Settings struct {
	emitter.Emitter

	mu     sync.RWMutex
	values map[string]any
}

func NewSettings(values map[string]any) *Settings {
	return &Settings{values: maps.Clone(values)}
}

func (s *Settings) Value(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *Settings) SetValue(key string, value any) {
	s.mu.Lock()
	if s.values == nil {
		s.values = map[string]any{}
	}
	prev, ok := s.values[key]
	if ok && reactive.Identical(prev, value) {
		s.mu.Unlock()
		return
	}
	s.values[key] = value
	s.mu.Unlock()

	s.Emit(changedSignal+emitter.DetailSeparator+key, key)
}

func (s *Settings) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Setting is the accessor and setter pair for one key.
type Setting[T any] struct {
	Value *reactive.Accessor[T]
	Set   reactive.Setter[T]
}

func CreateSetting[T any](rt *reactive.Runtime, s *Settings, key string) Setting[T] {
	get := func() T {
		v, _ := s.Value(key).(T)
		return v
	}
	signal := changedSignal + emitter.DetailSeparator + key

	value := reactive.NewAccessor(rt, get, func(cb reactive.Callback) reactive.DisposeFunc {
		id := s.Connect(signal, func(...any) {
			cb()
		})
		return func() {
			s.Disconnect(id)
		}
	})
	set := reactive.SetterFunc(func(fn func(prev T) T) {
		s.SetValue(key, fn(get()))
	})
	return Setting[T]{Value: value, Set: set}
}

// CreateSettings wraps several keys at once.
func CreateSettings(rt *reactive.Runtime, s *Settings, keys ...string) map[string]Setting[any] {
	settings := make(map[string]Setting[any], len(keys))
	for _, key := range keys {
		settings[key] = CreateSetting[any](rt, s, key)
	}
	return settings
}
