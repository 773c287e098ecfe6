package book

import (
	"math"

	"github.com/google/uuid"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/leaf"
)

// dragSession is the state of one interactive single-leaf turn. It exists
// only while a page is being dragged.
type dragSession struct {
	id        uuid.UUID
	direction leaf.Direction
	// progress is 0 at the start of the drag and 1 when the leaf is fully
	// turned, whatever the direction.
	progress    float64
	actor       *leaf.Actor
	finalPage   int
	onCompleted DragCompletedFunc
	stopping    bool
}

// TurnPageDragStart lifts one leaf for a manual turn in dir. It returns
// false, changing nothing, if the book is busy, is not open in the middle,
// or already shows the boundary group in that direction.
func (b *Book) TurnPageDragStart(dir leaf.Direction) bool {
	if b.turn != nil || b.change != nil || b.drag != nil {
		return false
	}
	if b.state != OpenMiddle {
		return false
	}
	if dir == leaf.Forward && b.IsLastPageGroup() {
		return false
	}
	if dir == leaf.Backward && b.IsFirstPageGroup() {
		return false
	}

	left, right := b.CurrentLeftPageNumber(), b.CurrentRightPageNumber()
	var staticLeft, staticRight, front, back int
	if dir == leaf.Forward {
		staticLeft, staticRight = left, right+2
		front, back = right, right+1
	} else {
		staticLeft, staticRight = left-2, right
		front, back = left, left-1
	}

	s := &dragSession{
		id:        uuid.New(),
		direction: dir,
		actor:     b.pool.Actor(0),
	}
	b.drag = s

	b.binder.Bind(appearance.SurfacePageLeft, b.pageAppearance(staticLeft))
	b.binder.Bind(appearance.SurfacePageRight, b.pageAppearance(staticRight))
	s.actor.Play(dir, 0, b.pageAppearance(front), b.pageAppearance(back), func() {
		b.dragSettled(s)
	})
	s.actor.SetProgress(s.pose(0))
	return true
}

// TurnPageDrag poses the dragged leaf. t is clamped to [0, 1], where 0 is
// the start of the drag and 1 a fully turned leaf.
func (b *Book) TurnPageDrag(t float64) {
	s := b.drag
	if s == nil || s.stopping {
		return
	}
	s.progress = clamp01(t)
	s.actor.SetProgress(s.pose(s.progress))
}

// TurnPageDragStop releases the dragged leaf. It settles one group further
// in the drag direction, or back on the original group when reverse is set
// or stopSpeed is negative. If the leaf had moved, it plays the rest of its
// turn at |stopSpeed| and onCompleted fires when it lands; otherwise the
// drag commits before TurnPageDragStop returns.
func (b *Book) TurnPageDragStop(stopSpeed float64, onCompleted DragCompletedFunc, reverse bool) {
	s := b.drag
	if s == nil || s.stopping {
		return
	}
	if stopSpeed < 0 {
		reverse = true
	}

	final := b.currentPage
	if !reverse {
		final += 2 * s.direction.Step()
	}
	s.finalPage = min(max(final, 1), b.LastPageNumber())
	s.onCompleted = onCompleted
	s.stopping = true

	if s.progress <= 0 || stopSpeed == 0 {
		b.commitDrag(s)
		return
	}
	s.actor.PlayRemainder(math.Abs(stopSpeed), reverse)
}

// DragProgress returns the progress of the drag in flight.
func (b *Book) DragProgress() (leaf.Direction, float64, bool) {
	if b.drag == nil {
		return 0, 0, false
	}
	return b.drag.direction, b.drag.progress, true
}

func (b *Book) dragSettled(s *dragSession) {
	if b.drag != s || !s.stopping {
		return
	}
	b.commitDrag(s)
}

func (b *Book) commitDrag(s *dragSession) {
	if s.actor.Active() {
		s.actor.Deactivate()
	}
	b.drag = nil
	b.setPageNumber(b.clampPage(s.finalPage))
	b.applyPendingPoolSize()
	b.logf("drag %s settled on page %d", s.id, b.currentPage)
	if s.onCompleted != nil {
		s.onCompleted(b.CurrentLeftPageNumber(), b.CurrentRightPageNumber())
	}
}

// pose maps drag progress to the animator's playback position. A forward
// turn plays its clip from the end, so the progress is inverted.
func (s *dragSession) pose(progress float64) float64 {
	if s.direction == leaf.Forward {
		return 1 - progress
	}
	return progress
}

func clamp01(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
