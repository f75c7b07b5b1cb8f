package emitter

import (
	"strings"
	"sync"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// DetailSeparator splits a signal name from its detail, "notify::label"
// is the "notify" signal with detail "label".
const DetailSeparator = "::"

type handler struct {
	id     uint64
	signal string
	fn     func(args ...any)
}

// Emitter dispatches named signals synchronously to connected handlers in
// connection order. Handlers connected to a bare signal name also receive
// every detailed emission of it. The zero value is ready to use.
type Emitter struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[uint64][]handler
	// handler id -> key of the signal it is connected to
	keys map[uint64]uint64
}

func key(signal string) uint64 {
	return xxhash.Sum64String(signal)
}

// Connect returns an id for Disconnect, ids are never 0.
func (e *Emitter) Connect(signal string, fn func(args ...any)) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handlers == nil {
		e.handlers = map[uint64][]handler{}
		e.keys = map[uint64]uint64{}
	}
	e.nextID++
	id := e.nextID
	k := key(signal)
	e.handlers[k] = append(e.handlers[k], handler{id: id, signal: signal, fn: fn})
	e.keys[id] = k
	return id
}

func (e *Emitter) Disconnect(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	k, ok := e.keys[id]
	if !ok {
		return
	}
	delete(e.keys, id)

	hs := e.handlers[k]
	for i, h := range hs {
		if h.id == id {
			// copy so that an Emit iterating the old slice is unaffected
			next := make([]handler, 0, len(hs)-1)
			next = append(next, hs[:i]...)
			next = append(next, hs[i+1:]...)
			if len(next) == 0 {
				delete(e.handlers, k)
			} else {
				e.handlers[k] = next
			}
			return
		}
	}
}

// Emit calls the handlers of signal and, for a detailed signal, the handlers
// of its bare name. Handlers run on the caller's goroutine without the lock
// held, so they may connect and disconnect.
func (e *Emitter) Emit(signal string, args ...any) {
	for _, h := range e.matching(signal) {
		h.fn(args...)
	}
}

func (e *Emitter) matching(signal string) []handler {
	e.mu.Lock()
	defer e.mu.Unlock()

	var hs []handler
	names := []string{signal}
	if base, _, ok := strings.Cut(signal, DetailSeparator); ok {
		names = append(names, base)
	}
	for _, name := range names {
		for _, h := range e.handlers[key(name)] {
			if h.signal == name {
				hs = append(hs, h)
			}
		}
	}
	return hs
}

// HandlerCount reports how many handlers are connected to exactly signal.
func (e *Emitter) HandlerCount(signal string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, h := range e.handlers[key(signal)] {
		if h.signal == signal {
			n++
		}
	}
	return n
}

// Object is embedded by types that announce property changes.
type Object struct {
	Emitter
}

// Notify emits "notify::<property>" with the property name kebab-cased.
func (o *Object) Notify(property string) {
	name := Kebab(property)
	o.Emit("notify"+DetailSeparator+name, name)
}

// Kebab turns camelCase, PascalCase and snake_case names into kebab-case.
func Kebab(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 4)

	prevLower := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-':
			sb.WriteByte('-')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			sb.WriteRune(r)
			prevLower = unicode.IsLower(r)
		}
	}
	return sb.String()
}
