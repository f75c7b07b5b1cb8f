package reactive_test

import (
	"testing"

	"github.com/delaneyj/accessors/reactive"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeDispose(t *testing.T) {
	rt := newRuntime(t)

	var order []string
	dispose := reactive.CreateRoot(rt, func(dispose func()) func() {
		root, err := reactive.GetScope(rt)
		require.NoError(t, err)

		child := reactive.NewScope(rt, root)
		child.Run(func() {
			reactive.OnCleanup(rt, func() { order = append(order, "child") })
		})

		reactive.OnCleanup(rt, func() { order = append(order, "root 1") })
		reactive.OnCleanup(rt, func() { order = append(order, "root 2") })
		return dispose
	})
	assert.Empty(t, order)

	dispose()
	assert.Equal(t, []string{"child", "root 1", "root 2"}, order)

	// a second call is a no-op
	dispose()
	assert.Equal(t, []string{"child", "root 1", "root 2"}, order)
}

func TestScopeDisposeFollowsRegistration(t *testing.T) {
	rt := newRuntime(t)

	var order []string
	dispose := reactive.CreateRoot(rt, func(dispose func()) func() {
		reactive.OnCleanup(rt, func() { order = append(order, "root 1") })

		reactive.CreateEffect(rt, func() error {
			reactive.OnCleanup(rt, func() { order = append(order, "effect") })
			return nil
		})

		root, _ := reactive.GetScope(rt)
		reactive.NewScope(rt, root).OnCleanup(func() { order = append(order, "child") })

		reactive.OnCleanup(rt, func() { order = append(order, "root 2") })
		return dispose
	})
	assert.Empty(t, order)

	dispose()
	assert.Equal(t, []string{"root 1", "effect", "child", "root 2"}, order)
}

func TestScopeDisposeChildOnly(t *testing.T) {
	rt := newRuntime(t)

	var order []string
	var child *reactive.Scope
	disposeRoot := reactive.CreateRoot(rt, func(dispose func()) func() {
		root, _ := reactive.GetScope(rt)
		child = reactive.NewScope(rt, root)
		child.OnCleanup(func() { order = append(order, "child") })
		root.OnCleanup(func() { order = append(order, "root") })
		return dispose
	})

	child.Dispose()
	assert.True(t, child.Disposed())
	assert.Nil(t, child.Parent())
	assert.Equal(t, []string{"child"}, order)

	disposeRoot()
	assert.Equal(t, []string{"child", "root"}, order)
}

func TestCleanupOnDisposedScopeRunsNow(t *testing.T) {
	logger, _ := test.NewNullLogger()
	rt := reactive.NewRuntime(reactive.WithLogger(logger))

	s := reactive.NewScope(rt, nil)
	s.Dispose()

	ran := false
	s.OnCleanup(func() { ran = true })
	assert.True(t, ran)

	s.OnMount(func() { assert.Fail(t, "disposed scopes never mount") })
}

func TestNoActiveScope(t *testing.T) {
	logger, hook := test.NewNullLogger()
	rt := reactive.NewRuntime(reactive.WithLogger(logger))

	t.Run("get scope", func(t *testing.T) {
		_, err := reactive.GetScope(rt)
		require.Error(t, err)
		assert.ErrorIs(t, err, reactive.ErrNoActiveScope)

		var target *reactive.NoActiveScopeError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "get scope", target.Op)
		assert.Equal(t, "reactive: get scope: current scope is nil", err.Error())
	})

	t.Run("on cleanup", func(t *testing.T) {
		hook.Reset()
		reactive.OnCleanup(rt, func() { assert.Fail(t, "never runs") })

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), reactive.ErrNoActiveScope)
	})

	t.Run("on mount", func(t *testing.T) {
		hook.Reset()
		ran := false
		reactive.OnMount(rt, func() { ran = true })
		assert.True(t, ran)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})
}

func TestRootRestoresScope(t *testing.T) {
	rt := newRuntime(t)

	t.Run("nested roots", func(t *testing.T) {
		reactive.CreateRoot(rt, func(disposeOuter func()) struct{} {
			outer, _ := reactive.GetScope(rt)

			var inner *reactive.Scope
			disposeInner := reactive.CreateRoot(rt, func(dispose func()) func() {
				inner, _ = reactive.GetScope(rt)
				return dispose
			})
			assert.NotSame(t, outer, inner)
			assert.Nil(t, inner.Parent())

			current, _ := reactive.GetScope(rt)
			assert.Same(t, outer, current)

			// roots are not owned by the scope that created them
			disposeOuter()
			assert.False(t, inner.Disposed())
			disposeInner()
			assert.True(t, inner.Disposed())
			return struct{}{}
		})
	})

	t.Run("panic", func(t *testing.T) {
		assert.PanicsWithValue(t, "boom", func() {
			reactive.CreateRoot(rt, func(func()) int { panic("boom") })
		})
		_, err := reactive.GetScope(rt)
		assert.ErrorIs(t, err, reactive.ErrNoActiveScope)
	})
}

func TestOnMount(t *testing.T) {
	rt := newRuntime(t)
	ctx := reactive.CreateContext(rt, 0)

	var log []string
	var root *reactive.Scope
	reactive.CreateRoot(rt, func(func()) struct{} {
		root, _ = reactive.GetScope(rt)
		reactive.OnMount(rt, func() { log = append(log, "mount outer") })
		ctx.Provide(1, func() {
			reactive.OnMount(rt, func() { log = append(log, "mount inner") })
		})
		log = append(log, "setup done")
		return struct{}{}
	})
	assert.Equal(t, []string{"setup done", "mount outer", "mount inner"}, log)

	// mounted and idle scopes run mount callbacks right away
	root.OnMount(func() { log = append(log, "late") })
	assert.Equal(t, "late", log[len(log)-1])
}

func TestScopeRunReentry(t *testing.T) {
	rt := newRuntime(t)

	var (
		root    *reactive.Scope
		dispose func()
	)
	reactive.CreateRoot(rt, func(d func()) struct{} {
		root, _ = reactive.GetScope(rt)
		dispose = d
		return struct{}{}
	})

	// a callback fired later re-enters the captured scope
	cleaned := false
	root.Run(func() {
		reactive.OnCleanup(rt, func() { cleaned = true })
	})
	_, err := reactive.GetScope(rt)
	assert.Error(t, err)

	dispose()
	assert.True(t, cleaned)
}
