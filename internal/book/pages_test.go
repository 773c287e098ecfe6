package book_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/timing"
)

func TestPageData(t *testing.T) {
	t.Run("add extends the book", func(t *testing.T) {
		h := newHarness(t, 3, book.WithPageNumber(3))
		require.Equal(t, appearance.Handle("filler"), h.right())

		h.book.AddPageData("new")

		assert.Equal(t, 4, h.book.LastPageNumber())
		assert.Equal(t, appearance.Handle("new"), h.right())
	})

	t.Run("insert shifts the visible pages", func(t *testing.T) {
		h := newHarness(t, 6, book.WithPageNumber(3))

		require.NoError(t, h.book.InsertPageData(2, "inserted"))

		assert.Equal(t, 7, h.book.LastPageNumber())
		assert.Equal(t, appearance.Handle("page-2"), h.left())
		assert.Equal(t, appearance.Handle("page-3"), h.right())
		got, err := h.book.PageData(2)
		require.NoError(t, err)
		assert.Equal(t, appearance.Handle("inserted"), got)
	})

	t.Run("insert after the last page", func(t *testing.T) {
		h := newHarness(t, 2)

		require.NoError(t, h.book.InsertPageData(3, "tail"))

		assert.Equal(t, []appearance.Handle{"page-1", "page-2", "tail"}, h.book.Pages())
	})

	t.Run("remove shifts later pages down", func(t *testing.T) {
		h := newHarness(t, 6, book.WithPageNumber(3))

		require.NoError(t, h.book.RemovePageData(1))

		assert.Equal(t, 5, h.book.LastPageNumber())
		assert.Equal(t, appearance.Handle("page-4"), h.left())
		assert.Equal(t, appearance.Handle("page-5"), h.right())
	})

	t.Run("edits after the visible group do not rebind", func(t *testing.T) {
		h := newHarness(t, 10)
		binds := h.reg.BindCount()

		require.NoError(t, h.book.RemovePageData(9))
		require.NoError(t, h.book.SetPageData(5, "x"))

		assert.Equal(t, binds, h.reg.BindCount())
	})

	t.Run("move reorders pages", func(t *testing.T) {
		h := newHarness(t, 5)

		require.NoError(t, h.book.MovePageData(1, 4))
		assert.Equal(t, []appearance.Handle{"page-2", "page-3", "page-4", "page-1", "page-5"}, h.book.Pages())
		assert.Equal(t, appearance.Handle("page-2"), h.left())

		require.NoError(t, h.book.MovePageData(5, 1))
		assert.Equal(t, []appearance.Handle{"page-5", "page-2", "page-3", "page-4", "page-1"}, h.book.Pages())
		assert.Equal(t, appearance.Handle("page-5"), h.left())
	})

	t.Run("set replaces a visible page", func(t *testing.T) {
		h := newHarness(t, 4)

		require.NoError(t, h.book.SetPageData(2, "replaced"))

		assert.Equal(t, appearance.Handle("replaced"), h.right())
	})

	t.Run("empty handles show the filler", func(t *testing.T) {
		h := newHarness(t, 4)

		require.NoError(t, h.book.SetPageData(1, ""))

		assert.Equal(t, appearance.Handle("filler"), h.left())
	})

	t.Run("out of range pages are rejected", func(t *testing.T) {
		h := newHarness(t, 4)

		assert.ErrorIs(t, h.book.RemovePageData(5), book.ErrInvalidPageNumber)
		assert.ErrorIs(t, h.book.InsertPageData(6, "x"), book.ErrInvalidPageNumber)
		assert.ErrorIs(t, h.book.MovePageData(0, 2), book.ErrInvalidPageNumber)
		assert.ErrorIs(t, h.book.SetPageData(-1, "x"), book.ErrInvalidPageNumber)
		_, err := h.book.PageData(9)
		assert.ErrorIs(t, err, book.ErrInvalidPageNumber)
		assert.Equal(t, 4, h.book.LastPageNumber())
	})

	t.Run("edits during a turn apply on commit", func(t *testing.T) {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle))
		require.NoError(t, h.book.TurnToPage(9, timing.TimePerPage, 100*time.Millisecond, 0, book.TurnCallbacks{}))
		h.step()

		require.NoError(t, h.book.SetPageData(1, "edited"))
		assert.Equal(t, appearance.Handle("page-1"), h.left())

		require.NoError(t, h.book.SetPageData(10, "ten"))
		h.runUntilIdle(t)
		assert.Equal(t, appearance.Handle("page-9"), h.left())
		assert.Equal(t, appearance.Handle("ten"), h.right())
	})
}
