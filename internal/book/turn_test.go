package book_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/leaf"
	"github.com/Seth7171/TaleWeaver-sub000/internal/timing"
)

type turnRecorder struct {
	starts    []book.PageTurn
	ends      []book.PageTurn
	startTick []int
	completed []int
}

func (r *turnRecorder) callbacks(h *harness) book.TurnCallbacks {
	return book.TurnCallbacks{
		OnCompleted: func(_, _ book.State, page int) {
			r.completed = append(r.completed, page)
		},
		OnPageTurnStart: func(ev book.PageTurn) {
			r.starts = append(r.starts, ev)
			r.startTick = append(r.startTick, h.ticks)
		},
		OnPageTurnEnd: func(ev book.PageTurn) {
			r.ends = append(r.ends, ev)
		},
	}
}

func TestTurnToPage(t *testing.T) {
	t.Run("jump from page 2 to 14 turns six leaves", func(t *testing.T) {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle), book.WithPageNumber(2))
		var r turnRecorder

		require.NoError(t, h.book.TurnToPage(14, timing.TimePerPage, time.Second, 0, r.callbacks(h)))

		turn := h.book.Snapshot().Turn
		require.NotNil(t, turn)
		assert.Equal(t, 6, turn.PagesLeftToStart)
		assert.Equal(t, int64(1000), turn.TimePerPageMS)
		assert.Equal(t, int64(2000), turn.TotalTurnTimeMS)

		h.runUntilIdle(t)

		assert.Equal(t, []int{14}, r.completed)
		assert.Equal(t, 14, h.book.CurrentPageNumber())
		assert.Equal(t, appearance.Handle("page-13"), h.left())
		assert.Equal(t, appearance.Handle("page-14"), h.right())

		require.Len(t, r.starts, 6)
		require.Len(t, r.ends, 6)
		for i, ev := range r.starts {
			assert.Equal(t, leaf.Forward, ev.Direction)
			assert.Equal(t, 2+2*i, ev.FrontPage)
			assert.Equal(t, 3+2*i, ev.BackPage)
			assert.Equal(t, 3+2*i, ev.FirstVisiblePage)
			assert.Equal(t, 4+2*i, ev.LastVisiblePage)
		}
		for i := 1; i < len(r.startTick); i++ {
			gap := time.Duration(r.startTick[i]-r.startTick[i-1]) * frameDelta
			assert.GreaterOrEqual(t, gap, 200*time.Millisecond)
		}
		last := r.ends[len(r.ends)-1]
		assert.Equal(t, 13, last.FirstVisiblePage)
		assert.Equal(t, 14, last.LastVisiblePage)
	})

	t.Run("backward jump", func(t *testing.T) {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle), book.WithPageNumber(11))
		var r turnRecorder

		require.NoError(t, h.book.TurnToPage(4, timing.TotalTurnTime, time.Second, 0, r.callbacks(h)))
		h.runUntilIdle(t)

		assert.Equal(t, []int{4}, r.completed)
		assert.Equal(t, appearance.Handle("page-3"), h.left())
		assert.Equal(t, appearance.Handle("page-4"), h.right())
		require.Len(t, r.starts, 4)
		first := r.starts[0]
		assert.Equal(t, leaf.Backward, first.Direction)
		assert.Equal(t, 11, first.FrontPage)
		assert.Equal(t, 10, first.BackPage)
		assert.Equal(t, 9, first.FirstVisiblePage)
		assert.Equal(t, 10, first.LastVisiblePage)
	})

	t.Run("surfaces follow the leaves", func(t *testing.T) {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle))
		require.NoError(t, h.book.TurnToPage(7, timing.TimePerPage, 100*time.Millisecond, 0, book.TurnCallbacks{}))

		h.step()
		assert.Equal(t, appearance.Handle("page-1"), h.left())
		assert.Equal(t, appearance.Handle("page-4"), h.right())

		l := h.stage.Leaf(0)
		front, back := l.Faces()
		assert.Equal(t, appearance.Handle("page-2"), front)
		assert.Equal(t, appearance.Handle("page-3"), back)

		h.runUntil(t, func() bool { return !l.Playing() })
		assert.Equal(t, appearance.Handle("page-3"), h.left())
	})

	t.Run("out of range page is rejected", func(t *testing.T) {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle), book.WithPageNumber(5))

		err := h.book.TurnToPage(999, timing.TimePerPage, time.Second, 0, book.TurnCallbacks{})

		assert.ErrorIs(t, err, book.ErrInvalidPageNumber)
		assert.Equal(t, 5, h.book.CurrentPageNumber())
		assert.False(t, h.book.IsTurningPages())
	})

	t.Run("page in the visible group does not animate", func(t *testing.T) {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle), book.WithPageNumber(14))
		var r turnRecorder

		require.NoError(t, h.book.TurnToPage(13, timing.TimePerPage, time.Second, 0, r.callbacks(h)))

		assert.False(t, h.book.IsTurningPages())
		assert.Equal(t, 13, h.book.CurrentPageNumber())
		assert.Equal(t, []int{13}, r.completed)
		for _, l := range h.stage.Leaves() {
			assert.Zero(t, l.Plays())
		}
	})

	t.Run("zero turn time commits at once", func(t *testing.T) {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle))
		var r turnRecorder

		require.NoError(t, h.book.TurnToPage(9, timing.TimePerPage, 0, 0, r.callbacks(h)))

		assert.False(t, h.book.IsTurningPages())
		assert.Equal(t, []int{9}, r.completed)
		assert.Equal(t, appearance.Handle("page-9"), h.left())
	})

	t.Run("opens the book first", func(t *testing.T) {
		h := newHarness(t, 20)
		var r turnRecorder

		require.NoError(t, h.book.TurnToPage(8, timing.TimePerPage, 200*time.Millisecond, 300*time.Millisecond, r.callbacks(h)))
		assert.True(t, h.book.IsChangingState())
		assert.False(t, h.book.IsTurningPages())

		h.runUntil(t, func() bool { return h.book.IsTurningPages() })
		assert.Equal(t, book.OpenMiddle, h.book.State())

		h.runUntilIdle(t)
		assert.Equal(t, []int{8}, r.completed)
		assert.Len(t, r.starts, 3)
	})

	t.Run("reports the state the jump started from", func(t *testing.T) {
		h := newHarness(t, 20)
		var from, to []book.State

		require.NoError(t, h.book.TurnToPage(8, timing.TimePerPage, 100*time.Millisecond, 100*time.Millisecond, book.TurnCallbacks{
			OnCompleted: func(f, s book.State, _ int) {
				from = append(from, f)
				to = append(to, s)
			},
		}))
		h.runUntilIdle(t)

		assert.Equal(t, []book.State{book.ClosedFront}, from)
		assert.Equal(t, []book.State{book.OpenMiddle}, to)
	})

	t.Run("lands on the last page when the list shrinks mid-jump", func(t *testing.T) {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle))
		var r turnRecorder
		require.NoError(t, h.book.TurnToPage(20, timing.TimePerPage, 200*time.Millisecond, 0, r.callbacks(h)))
		h.step()

		for i := 0; i < 10; i++ {
			require.NoError(t, h.book.RemovePageData(1))
		}
		h.runUntilIdle(t)

		assert.Equal(t, 10, h.book.LastPageNumber())
		assert.Equal(t, []int{10}, r.completed)
		assert.Equal(t, 10, h.book.CurrentPageNumber())
		assert.Equal(t, appearance.Handle("page-19"), h.left())
		assert.Equal(t, appearance.Handle("page-20"), h.right())
	})

	t.Run("ignored while turning", func(t *testing.T) {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle))
		var first, second turnRecorder
		require.NoError(t, h.book.TurnToPage(9, timing.TimePerPage, time.Second, 0, first.callbacks(h)))

		require.NoError(t, h.book.TurnToPage(3, timing.TimePerPage, time.Second, 0, second.callbacks(h)))
		h.runUntilIdle(t)

		assert.Equal(t, 9, h.book.CurrentPageNumber())
		assert.Equal(t, []int{9}, first.completed)
		assert.Empty(t, second.completed)
	})
}

func TestTurnCompletesOnce(t *testing.T) {
	for _, pool := range []int{1, 2, 5} {
		h := newHarness(t, 40, book.WithState(book.OpenMiddle))
		h.book.SetMaxPagesTurningCount(pool)
		calls := 0
		ends := 0

		require.NoError(t, h.book.TurnToPage(37, timing.TotalTurnTime, 2*time.Second, 0, book.TurnCallbacks{
			OnCompleted: func(_, _ book.State, _ int) {
				calls++
				assert.Equal(t, 18, ends)
				assert.False(t, h.book.IsTurningPages())
			},
			OnPageTurnEnd: func(book.PageTurn) { ends++ },
		}))

		h.runUntilIdle(t)
		for i := 0; i < 50; i++ {
			h.step()
		}
		assert.Equal(t, 1, calls, "pool %d", pool)
	}
}

func TestTurnPoolBound(t *testing.T) {
	for _, pool := range []int{1, 2, 3, 5, 8} {
		for _, target := range []int{3, 11, 39} {
			h := newHarness(t, 40, book.WithState(book.OpenMiddle))
			h.book.SetMaxPagesTurningCount(pool)
			require.NoError(t, h.book.TurnToPage(target, timing.TimePerPage, 300*time.Millisecond, 0, book.TurnCallbacks{}))

			peak := 0
			h.runUntil(t, func() bool {
				peak = max(peak, h.book.ActiveLeaves())
				require.LessOrEqual(t, h.book.ActiveLeaves(), pool, "pool %d target %d", pool, target)
				return !h.book.IsTurningPages()
			})
			assert.Positive(t, peak)
			assert.Equal(t, target, h.book.CurrentPageNumber())
		}
	}
}

func TestStopTurningPages(t *testing.T) {
	for _, after := range []int{0, 1, 25, 80} {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle))
		completed := false
		require.NoError(t, h.book.TurnToPage(17, timing.TimePerPage, 500*time.Millisecond, 0, book.TurnCallbacks{
			OnCompleted: func(book.State, book.State, int) { completed = true },
		}))
		for i := 0; i < after; i++ {
			h.step()
		}

		h.book.StopTurningPages()

		assert.False(t, h.book.IsTurningPages())
		assert.Equal(t, 17, h.book.CurrentPageNumber())
		assert.Zero(t, h.book.ActiveLeaves())
		assert.Equal(t, appearance.Handle("page-17"), h.left())
		assert.Equal(t, appearance.Handle("page-18"), h.right())
		for _, l := range h.stage.Leaves() {
			assert.False(t, l.Visible())
			assert.False(t, l.Playing())
		}

		for i := 0; i < 100; i++ {
			h.step()
		}
		assert.False(t, completed)
		assert.Equal(t, appearance.Handle("page-17"), h.left())
	}
}

func TestStopTurningPagesClampsTarget(t *testing.T) {
	h := newHarness(t, 20, book.WithState(book.OpenMiddle))
	require.NoError(t, h.book.TurnToPage(19, timing.TimePerPage, 500*time.Millisecond, 0, book.TurnCallbacks{}))
	h.step()
	for i := 0; i < 6; i++ {
		require.NoError(t, h.book.RemovePageData(20-i))
	}

	h.book.StopTurningPages()

	assert.Equal(t, 14, h.book.CurrentPageNumber())
	assert.Equal(t, appearance.Handle("page-13"), h.left())
	assert.Equal(t, appearance.Handle("page-14"), h.right())
}

func TestTurnForwardBackward(t *testing.T) {
	t.Run("one group at a time", func(t *testing.T) {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle), book.WithPageNumber(6))

		require.NoError(t, h.book.TurnForward(100*time.Millisecond, 0, book.TurnCallbacks{}))
		h.runUntilIdle(t)
		assert.Equal(t, 7, h.book.CurrentPageNumber())

		require.NoError(t, h.book.TurnBackward(100*time.Millisecond, 0, book.TurnCallbacks{}))
		require.NoError(t, h.book.TurnBackward(100*time.Millisecond, 0, book.TurnCallbacks{}))
		h.runUntilIdle(t)
		assert.Equal(t, 5, h.book.CurrentPageNumber())
	})

	t.Run("no-ops at the boundaries", func(t *testing.T) {
		h := newHarness(t, 20, book.WithState(book.OpenMiddle), book.WithPageNumber(20))

		require.NoError(t, h.book.TurnForward(time.Second, 0, book.TurnCallbacks{}))
		assert.False(t, h.book.IsTurningPages())

		require.NoError(t, h.book.SetPageNumber(1))
		require.NoError(t, h.book.TurnBackward(time.Second, 0, book.TurnCallbacks{}))
		assert.False(t, h.book.IsTurningPages())
	})
}

func TestPoolResizeDeferred(t *testing.T) {
	h := newHarness(t, 20, book.WithState(book.OpenMiddle))
	require.NoError(t, h.book.TurnToPage(15, timing.TimePerPage, 200*time.Millisecond, 0, book.TurnCallbacks{}))
	h.step()

	h.book.SetMaxPagesTurningCount(2)
	assert.Equal(t, 5, h.book.Pool().MaxTurning())

	h.runUntilIdle(t)
	assert.Equal(t, 2, h.book.Pool().MaxTurning())
	assert.Equal(t, 3, h.book.Pool().Len())
}
