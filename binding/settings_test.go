package binding_test

import (
	"testing"

	"github.com/delaneyj/accessors/binding"
	"github.com/delaneyj/accessors/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	rt := reactive.NewRuntime()
	st := binding.NewSettings(map[string]any{
		"font-size": 12,
		"theme":     "dark",
	})
	assert.Equal(t, []string{"font-size", "theme"}, st.Keys())

	t.Run("typed setting", func(t *testing.T) {
		fontSize := binding.CreateSetting[int](rt, st, "font-size")
		assert.Equal(t, 12, fontSize.Value.Peek())

		calls := 0
		dispose := fontSize.Value.Subscribe(func() { calls++ })
		defer dispose()
		require.Equal(t, 1, st.HandlerCount("changed::font-size"))

		fontSize.Set.Update(func(prev int) int { return prev + 1 })
		assert.Equal(t, 13, fontSize.Value.Peek())
		assert.Equal(t, 13, st.Value("font-size"))
		assert.Equal(t, 1, calls)

		fontSize.Set.Set(13)
		assert.Equal(t, 1, calls)

		// writes from outside the graph are seen as well
		st.SetValue("font-size", 20)
		assert.Equal(t, 2, calls)
		assert.Equal(t, 20, fontSize.Value.Peek())
	})

	t.Run("several keys", func(t *testing.T) {
		settings := binding.CreateSettings(rt, st, "font-size", "theme")
		require.Len(t, settings, 2)

		theme := settings["theme"]
		var seen []any
		dispose := theme.Value.Subscribe(func() { seen = append(seen, theme.Value.Peek()) })
		defer dispose()

		theme.Set.Set("light")
		assert.Equal(t, []any{"light"}, seen)
		assert.Equal(t, "light", st.Value("theme"))
	})

	t.Run("missing key reads as zero", func(t *testing.T) {
		missing := binding.CreateSetting[string](rt, st, "locale")
		assert.Equal(t, "", missing.Value.Peek())

		missing.Set.Set("de")
		assert.Equal(t, "de", missing.Value.Peek())
		assert.Equal(t, []string{"font-size", "locale", "theme"}, st.Keys())
	})
}
