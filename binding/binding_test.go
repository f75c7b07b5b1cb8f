package binding_test

import (
	"testing"

	"github.com/delaneyj/accessors/binding"
	"github.com/delaneyj/accessors/emitter"
	"github.com/delaneyj/accessors/reactive"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label struct {
	emitter.Object
	text     string
	Visible  bool
	IconName string
}

func (l *label) GetText() string {
	return l.text
}

func (l *label) SetText(text string) {
	if l.text == text {
		return
	}
	l.text = text
	l.Notify("text")
}

type window struct {
	emitter.Object
	Child *label
}

func (w *window) SetChild(child *label) {
	w.Child = child
	w.Notify("child")
}

func TestBind(t *testing.T) {
	rt := reactive.NewRuntime()

	t.Run("getter method", func(t *testing.T) {
		l := &label{text: "hello"}
		text, err := binding.Bind[string](rt, l, "text")
		require.NoError(t, err)
		assert.Equal(t, "hello", text.Peek())

		calls := 0
		dispose := text.Subscribe(func() { calls++ })
		l.SetText("bye")
		assert.Equal(t, 1, calls)
		assert.Equal(t, "bye", text.Peek())

		dispose()
		assert.Equal(t, 0, l.HandlerCount("notify::text"))
	})

	t.Run("exported field", func(t *testing.T) {
		l := &label{}
		visible, err := binding.Bind[bool](rt, l, "visible")
		require.NoError(t, err)

		calls := 0
		dispose := visible.Subscribe(func() { calls++ })
		defer dispose()

		l.Visible = true
		l.Notify("visible")
		assert.Equal(t, 1, calls)
		assert.True(t, visible.Peek())
	})

	t.Run("kebab-case names", func(t *testing.T) {
		l := &label{IconName: "open"}
		icon, err := binding.Bind[string](rt, l, "icon-name")
		require.NoError(t, err)

		calls := 0
		dispose := icon.Subscribe(func() { calls++ })
		defer dispose()

		l.IconName = "close"
		l.Notify("iconName")
		assert.Equal(t, 1, calls)
		assert.Equal(t, "close", icon.Peek())
	})

	t.Run("tracked by computeds", func(t *testing.T) {
		l := &label{text: "a"}
		text, err := binding.Bind[string](rt, l, "text")
		require.NoError(t, err)
		shout := reactive.Map(text, func(s string) string { return s + "!" })

		dispose := shout.Subscribe(func() {})
		defer dispose()
		l.SetText("b")
		assert.Equal(t, "b!", shout.Peek())
	})

	t.Run("read before observed", func(t *testing.T) {
		l := &label{text: "a"}
		text, err := binding.Bind[string](rt, l, "text")
		require.NoError(t, err)
		shout := reactive.CreateMemo(rt, func() string { return text.Get() + "!" })
		assert.Equal(t, "a!", shout.Peek())

		l.SetText("b")

		calls := 0
		dispose := shout.Subscribe(func() { calls++ })
		defer dispose()
		assert.Equal(t, "b!", shout.Peek())

		l.SetText("c")
		assert.Equal(t, 1, calls)
		assert.Equal(t, "c!", shout.Peek())
	})

	t.Run("plain values never notify", func(t *testing.T) {
		v := struct{ Name string }{Name: "x"}
		name, err := binding.Bind[string](rt, v, "name")
		require.NoError(t, err)
		assert.Equal(t, "x", name.Peek())
	})

	t.Run("unresolved property", func(t *testing.T) {
		_, err := binding.Bind[int](rt, &label{}, "missing")
		var target *binding.UnresolvedPropertyError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "get", target.Op)
		assert.Equal(t, `cannot get property "missing" on *binding_test.label`, err.Error())
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := binding.Bind[int](rt, &label{}, "text")
		require.Error(t, err)
		var target *binding.UnresolvedPropertyError
		assert.False(t, errors.As(err, &target))
	})
}

func TestBindPath(t *testing.T) {
	rt := reactive.NewRuntime()

	first := &label{text: "first"}
	second := &label{text: "second"}
	w := &window{Child: first}

	title, err := binding.BindPath[string](rt, w, "child", "text")
	require.NoError(t, err)
	assert.Equal(t, "first", title.Peek())

	calls := 0
	dispose := title.Subscribe(func() { calls++ })
	defer dispose()

	first.SetText("first!")
	assert.Equal(t, 1, calls)
	assert.Equal(t, "first!", title.Peek())

	w.SetChild(second)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "second", title.Peek())

	// the old child is no longer part of the path
	first.SetText("ignored")
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, first.HandlerCount("notify::text"))

	w.SetChild(nil)
	assert.Equal(t, "", title.Peek())

	t.Run("errors", func(t *testing.T) {
		_, err := binding.BindPath[string](rt, w)
		assert.Error(t, err)

		_, err = binding.BindPath[string](rt, w, "parent", "text")
		var target *binding.UnresolvedPropertyError
		assert.ErrorAs(t, err, &target)
	})

	t.Run("single property", func(t *testing.T) {
		text, err := binding.BindPath[string](rt, second, "text")
		require.NoError(t, err)
		assert.Equal(t, "second", text.Peek())
	})
}

type sink struct {
	Title string
	count int
}

func (s *sink) SetCount(n int) {
	s.count = n
}

func TestSync(t *testing.T) {
	rt := reactive.NewRuntime()

	t.Run("field", func(t *testing.T) {
		title, setTitle := reactive.CreateState(rt, "a")
		s := &sink{}

		stop, err := binding.Sync(s, "title", title)
		require.NoError(t, err)
		assert.Equal(t, "a", s.Title)

		setTitle.Set("b")
		assert.Equal(t, "b", s.Title)

		stop()
		setTitle.Set("c")
		assert.Equal(t, "b", s.Title)
	})

	t.Run("setter method", func(t *testing.T) {
		count, setCount := reactive.CreateState(rt, 1)
		s := &sink{}

		stop, err := binding.Sync(s, "count", count)
		require.NoError(t, err)
		defer stop()

		setCount.Set(7)
		assert.Equal(t, 7, s.count)
	})

	t.Run("bind then sync", func(t *testing.T) {
		l := &label{text: "x"}
		text, err := binding.Bind[string](rt, l, "text")
		require.NoError(t, err)
		s := &sink{}

		stop, err := binding.Sync(s, "title", text)
		require.NoError(t, err)
		defer stop()

		l.SetText("y")
		assert.Equal(t, "y", s.Title)
	})

	t.Run("not settable", func(t *testing.T) {
		title, _ := reactive.CreateState(rt, "a")

		_, err := binding.Sync(sink{}, "title", title)
		var target *binding.UnresolvedPropertyError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "set", target.Op)
	})

	t.Run("wrong type", func(t *testing.T) {
		n, _ := reactive.CreateState(rt, 1)
		_, err := binding.Sync(&sink{}, "title", n)
		assert.Error(t, err)
	})
}
