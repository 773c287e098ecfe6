package appearance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Bind(t *testing.T) {
	t.Run("propagates to every registered renderable", func(t *testing.T) {
		reg := NewRegistry()

		var first, second []Handle
		reg.Register(SurfacePageLeft, RenderableFunc(func(h Handle) { first = append(first, h) }))
		reg.Register(SurfacePageLeft, RenderableFunc(func(h Handle) { second = append(second, h) }))

		reg.Bind(SurfacePageLeft, "page-1")
		reg.Bind(SurfacePageLeft, "page-3")

		assert.Equal(t, []Handle{"page-1", "page-3"}, first)
		assert.Equal(t, []Handle{"page-1", "page-3"}, second)
		assert.Equal(t, Handle("page-3"), reg.Current(SurfacePageLeft))
		assert.Equal(t, 2, reg.BindCount())
	})

	t.Run("does not leak to other surfaces", func(t *testing.T) {
		reg := NewRegistry()

		var right []Handle
		reg.Register(SurfacePageRight, RenderableFunc(func(h Handle) { right = append(right, h) }))

		reg.Bind(SurfacePageLeft, "page-1")

		assert.Empty(t, right)
		assert.True(t, reg.Current(SurfacePageRight).IsZero())
	})

	t.Run("late registration receives the current handle", func(t *testing.T) {
		reg := NewRegistry()
		reg.Bind(SurfaceCover, "leather")

		var got Handle
		reg.Register(SurfaceCover, RenderableFunc(func(h Handle) { got = h }))

		assert.Equal(t, Handle("leather"), got)
	})

	t.Run("snapshot is keyed by surface name", func(t *testing.T) {
		reg := NewRegistry()
		reg.Bind(SurfacePageRight, "page-2")

		snap := reg.Snapshot()
		assert.Equal(t, map[string]Handle{"page_right": "page-2"}, snap)
	})
}

func TestHandle_Or(t *testing.T) {
	assert.Equal(t, Handle("filler"), Handle("").Or("filler"))
	assert.Equal(t, Handle("page-1"), Handle("page-1").Or("filler"))
}

func TestParseSurface(t *testing.T) {
	for _, s := range Surfaces {
		parsed, err := ParseSurface(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseSurface("spine")
	assert.Error(t, err)
}
