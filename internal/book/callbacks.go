package book

import "github.com/Seth7171/TaleWeaver-sub000/internal/leaf"

// StateChangedFunc is called once a state change or a page jump completes.
type StateChangedFunc func(from, to State, pageNumber int)

// PageTurnFunc is called when a leaf of a jump starts or ends its turn.
type PageTurnFunc func(ev PageTurn)

// DragCompletedFunc is called once a dragged leaf has settled.
type DragCompletedFunc func(leftPage, rightPage int)

// PageTurn describes one leaf of a jump.
type PageTurn struct {
	Leaf      *leaf.Actor
	FrontPage int
	BackPage  int
	// FirstVisiblePage and LastVisiblePage are the page group uncovered by
	// the leaf: the group it reveals when it starts, the group that is
	// settled when it ends.
	FirstVisiblePage int
	LastVisiblePage  int
	Direction        leaf.Direction
}

// TurnCallbacks are the optional callbacks of TurnToPage.
type TurnCallbacks struct {
	OnCompleted     StateChangedFunc
	OnPageTurnStart PageTurnFunc
	OnPageTurnEnd   PageTurnFunc
}

func (c TurnCallbacks) completed(from, to State, page int) {
	if c.OnCompleted != nil {
		c.OnCompleted(from, to, page)
	}
}

func (c TurnCallbacks) start(ev PageTurn) {
	if c.OnPageTurnStart != nil {
		c.OnPageTurnStart(ev)
	}
}

func (c TurnCallbacks) end(ev PageTurn) {
	if c.OnPageTurnEnd != nil {
		c.OnPageTurnEnd(ev)
	}
}
