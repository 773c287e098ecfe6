package book

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/leaf"
	"github.com/Seth7171/TaleWeaver-sub000/internal/timing"
)

// turnSession is the scheduling state of one jump. It exists only while
// pages are turning.
//
// pagesLeftToStart and pagesLeftToComplete only ever decrease, and the
// second reaches zero strictly after the first because every completion
// belongs to a leaf that has already started.
type turnSession struct {
	id        uuid.UUID
	from      State
	target    int
	direction leaf.Direction
	schedule  timing.Schedule

	delayRemaining      time.Duration
	pagesLeftToStart    int
	pagesLeftToComplete int

	// nearPageNumber is the front page of the next leaf to start.
	// farPageNumber is the settled page on the side leaves land on.
	nearPageNumber int
	farPageNumber  int

	callbacks TurnCallbacks
}

// TurnToPage animates a jump to pageNumber.
//
// If the book is not open in the middle it is first opened over openTime
// and the jump starts once the book is open. A target in the visible page
// group, or a turnTime <= 0, moves the page pointer without animation.
//
// The call is ignored while pages are turning or being dragged, or while
// the state is changing. A page outside 1..LastPageNumber is logged and
// returned as ErrInvalidPageNumber; nothing changes.
func (b *Book) TurnToPage(pageNumber int, mode timing.Mode, turnTime, openTime time.Duration, cb TurnCallbacks) error {
	return b.turnToPage(b.state, pageNumber, mode, turnTime, openTime, cb)
}

// turnToPage carries the state the jump was requested in, so OnCompleted
// reports it even when the book had to be opened first.
func (b *Book) turnToPage(from State, pageNumber int, mode timing.Mode, turnTime, openTime time.Duration, cb TurnCallbacks) error {
	if b.turn != nil || b.change != nil || b.drag != nil {
		return nil
	}
	if pageNumber < 1 || pageNumber > b.LastPageNumber() {
		b.logf("cannot turn to page %d: valid pages are 1 to %d", pageNumber, b.LastPageNumber())
		return fmt.Errorf("%w: %d", ErrInvalidPageNumber, pageNumber)
	}

	if sameGroup(pageNumber, b.currentPage) {
		b.setPageNumber(pageNumber)
		cb.completed(from, b.state, b.currentPage)
		return nil
	}

	if b.state != OpenMiddle {
		b.SetState(OpenMiddle, openTime, func(_, _ State, _ int) {
			_ = b.turnToPage(from, pageNumber, mode, turnTime, openTime, cb)
		})
		return nil
	}

	if turnTime <= 0 {
		b.setPageNumber(pageNumber)
		cb.completed(from, OpenMiddle, b.currentPage)
		return nil
	}

	return b.startTurn(from, pageNumber, mode, turnTime, cb)
}

// TurnForward turns one page group forward. It does nothing on the last group.
func (b *Book) TurnForward(turnTime, openTime time.Duration, cb TurnCallbacks) error {
	if b.IsLastPageGroup() {
		return nil
	}
	return b.TurnToPage(b.CurrentLeftPageNumber()+2, timing.TimePerPage, turnTime, openTime, cb)
}

// TurnBackward turns one page group backward. It does nothing on the first group.
func (b *Book) TurnBackward(turnTime, openTime time.Duration, cb TurnCallbacks) error {
	if b.IsFirstPageGroup() {
		return nil
	}
	return b.TurnToPage(b.CurrentLeftPageNumber()-2, timing.TimePerPage, turnTime, openTime, cb)
}

// StopTurningPages cancels the jump in flight. Every leaf is deactivated at
// once and the book snaps to the jump's target page, clamped to the pages
// left if the list shrank meanwhile. The jump's
// OnCompleted callback does not fire.
func (b *Book) StopTurningPages() {
	s := b.turn
	if s == nil {
		return
	}
	b.pool.DeactivateAll()
	b.turn = nil
	b.applyPendingPoolSize()
	b.setPageNumber(b.clampPage(s.target))
	b.logf("stopped turning pages (session %s), snapped to page %d", s.id, b.currentPage)
}

func (b *Book) startTurn(from State, pageNumber int, mode timing.Mode, turnTime time.Duration, cb TurnCallbacks) error {
	left := b.CurrentLeftPageNumber()
	targetLeft := leftPageOf(pageNumber)

	dir := leaf.Forward
	if targetLeft < left {
		dir = leaf.Backward
	}
	leaves := (targetLeft - left) / 2
	if leaves < 0 {
		leaves = -leaves
	}

	schedule, err := timing.Calculate(mode, turnTime, b.pool.MaxTurning(), leaves)
	if err != nil {
		b.logf("cannot schedule turn to page %d: %v", pageNumber, err)
		return err
	}

	s := &turnSession{
		id:                  uuid.New(),
		from:                from,
		target:              pageNumber,
		direction:           dir,
		schedule:            schedule,
		pagesLeftToStart:    leaves,
		pagesLeftToComplete: leaves,
		callbacks:           cb,
	}
	if dir == leaf.Forward {
		s.nearPageNumber = left + 1
		s.farPageNumber = left
	} else {
		s.nearPageNumber = left
		s.farPageNumber = left + 1
	}
	b.turn = s
	return nil
}

func (b *Book) tickTurn(dt time.Duration) {
	s := b.turn
	if s == nil || s.pagesLeftToStart == 0 {
		return
	}
	s.delayRemaining -= dt
	if s.delayRemaining > 0 {
		return
	}
	// Hold the start while the pool is saturated or the next slot has not
	// finished its previous turn.
	if b.pool.ActiveCount() >= b.pool.MaxTurning() || b.pool.Peek().Active() {
		return
	}
	b.startLeaf(s)
}

func (b *Book) startLeaf(s *turnSession) {
	a := b.pool.Next()
	step := s.direction.Step()

	front := s.nearPageNumber
	back := front + step
	s.nearPageNumber += 2 * step

	first, last := back, back+1
	if s.direction == leaf.Backward {
		first, last = back-1, back
	}

	s.delayRemaining = s.schedule.DelayBetweenPageTurns
	s.pagesLeftToStart--

	s.callbacks.start(PageTurn{
		Leaf:             a,
		FrontPage:        front,
		BackPage:         back,
		FirstVisiblePage: first,
		LastVisiblePage:  last,
		Direction:        s.direction,
	})
	if b.turn != s {
		return
	}

	// The static edge of the book follows the leaf as soon as it lifts.
	if s.direction == leaf.Forward {
		b.binder.Bind(appearance.SurfacePageRight, b.pageAppearance(last))
	} else {
		b.binder.Bind(appearance.SurfacePageLeft, b.pageAppearance(first))
	}

	a.Play(s.direction, s.schedule.TimePerPage, b.pageAppearance(front), b.pageAppearance(back), func() {
		b.leafCompleted(s, a, front, back)
	})
}

func (b *Book) leafCompleted(s *turnSession, a *leaf.Actor, front, back int) {
	if b.turn != s {
		return
	}
	s.farPageNumber += 2 * s.direction.Step()
	s.pagesLeftToComplete--

	first, last := s.farPageNumber, s.farPageNumber+1
	if s.direction == leaf.Backward {
		first, last = s.farPageNumber-1, s.farPageNumber
	}
	s.callbacks.end(PageTurn{
		Leaf:             a,
		FrontPage:        front,
		BackPage:         back,
		FirstVisiblePage: first,
		LastVisiblePage:  last,
		Direction:        s.direction,
	})
	if b.turn != s {
		return
	}

	// The settled leaf is now part of the static book.
	if s.direction == leaf.Forward {
		b.binder.Bind(appearance.SurfacePageLeft, b.pageAppearance(back))
	} else {
		b.binder.Bind(appearance.SurfacePageRight, b.pageAppearance(back))
	}

	if s.pagesLeftToComplete == 0 {
		b.finishTurn(s)
	}
}

func (b *Book) finishTurn(s *turnSession) {
	b.turn = nil
	b.applyPendingPoolSize()
	target := b.clampPage(s.target)
	if target != s.target {
		b.logf("turn target %d is past the last page, settling on %d", s.target, target)
	}
	b.setPageNumber(target)
	s.callbacks.completed(s.from, OpenMiddle, b.currentPage)
}
