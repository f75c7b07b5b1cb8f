package reactive

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

type Callback func()
type DisposeFunc func()

const defaultMaxEffectReruns = 100

// Runtime owns everything that would otherwise be global: the stack of
// dependency collection frames, the scope that owns the running code and the
// write epoch. A Runtime is not safe for concurrent use, every node created
// from it must be touched from one goroutine (see the loop package).
type Runtime struct {
	// innermost frame last, a nil frame means tracking is suspended
	frames []*frame
	// the scope that owns the currently running code, if any
	scope *Scope
	// bumped on every source write, starts at 1 so a zero verification
	// stamp always reads as never verified
	epoch uint64
	// computeds holding a cold evaluation of the current epoch
	pending mapset.Set[discarder]

	log             logrus.FieldLogger
	onError         func(err error)
	maxEffectReruns int
}

type RuntimeOption func(rt *Runtime)

func WithLogger(log logrus.FieldLogger) RuntimeOption {
	return func(rt *Runtime) {
		rt.log = log
	}
}

// WithErrorHandler receives every error returned from an effect function.
// The default handler logs it.
func WithErrorHandler(onError func(err error)) RuntimeOption {
	return func(rt *Runtime) {
		rt.onError = onError
	}
}

// WithMaxEffectReruns bounds how many times an effect that keeps invalidating
// itself while running is rerun before ErrEffectLoop is reported.
func WithMaxEffectReruns(n int) RuntimeOption {
	return func(rt *Runtime) {
		rt.maxEffectReruns = n
	}
}

func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		epoch:           1,
		pending:         mapset.NewThreadUnsafeSet[discarder](),
		log:             logrus.StandardLogger().WithField("component", "reactive"),
		maxEffectReruns: defaultMaxEffectReruns,
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.onError == nil {
		rt.onError = func(err error) {
			rt.log.WithError(err).Error("effect failed")
		}
	}
	return rt
}

func (rt *Runtime) Logger() logrus.FieldLogger {
	return rt.log
}

// Epoch is the number of source writes seen so far.
func (rt *Runtime) Epoch() uint64 {
	return rt.epoch
}

type read struct {
	n       node
	version uint64
}

// frame records which nodes were read during one evaluation, in read order.
type frame struct {
	seen  mapset.Set[node]
	reads []read
	// set when a value was read that can change without notifying, such as
	// a foreign accessor nobody subscribed to
	volatile bool
}

func newFrame() *frame {
	return &frame{seen: mapset.NewThreadUnsafeSet[node]()}
}

func (rt *Runtime) tracking() bool {
	return len(rt.frames) > 0 && rt.frames[len(rt.frames)-1] != nil
}

// track attributes a read of n to the innermost frame. Reading the same node
// twice in one evaluation is recorded once.
func (rt *Runtime) track(n node, version uint64) {
	if !rt.tracking() {
		return
	}
	f := rt.frames[len(rt.frames)-1]
	if f.seen.Add(n) {
		f.reads = append(f.reads, read{n: n, version: version})
	}
}

// taint marks the innermost frame volatile.
func (rt *Runtime) taint() {
	if rt.tracking() {
		rt.frames[len(rt.frames)-1].volatile = true
	}
}

// collect runs fn inside a fresh frame and returns what it read.
func (rt *Runtime) collect(fn func()) []read {
	return rt.evaluate(fn).reads
}

// evaluate runs fn inside a fresh frame. The frame is popped even when fn
// panics.
func (rt *Runtime) evaluate(fn func()) *frame {
	f := newFrame()
	rt.frames = append(rt.frames, f)
	defer func() {
		rt.frames = rt.frames[:len(rt.frames)-1]
	}()

	fn()
	return f
}

type discarder interface {
	discardPending()
}

// advance starts a new epoch. Cold evaluations made during the previous one
// can no longer be adopted and are dropped.
func (rt *Runtime) advance() {
	rt.epoch++
	if rt.pending.Cardinality() == 0 {
		return
	}
	for _, d := range rt.pending.ToSlice() {
		d.discardPending()
	}
	rt.pending.Clear()
}

// Untrack runs fn without attributing any of its reads to the surrounding
// computation or effect.
func Untrack[T any](rt *Runtime, fn func() T) T {
	rt.frames = append(rt.frames, nil)
	defer func() {
		rt.frames = rt.frames[:len(rt.frames)-1]
	}()

	return fn()
}

func (rt *Runtime) reportError(err error) {
	if err != nil {
		rt.onError(err)
	}
}
