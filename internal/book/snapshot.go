package book

import (
	"github.com/google/uuid"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
)

// Snapshot is a read-only view of a Book.
type Snapshot struct {
	State            State             `json:"state"`
	PageNumber       int               `json:"page_number"`
	LeftPage         int               `json:"left_page"`
	RightPage        int               `json:"right_page"`
	LastPage         int               `json:"last_page"`
	StandinQuality   string            `json:"standin_quality"`
	PoolSize         int               `json:"pool_size"`
	ActiveLeaves     int               `json:"active_leaves"`
	IsChangingState  bool              `json:"is_changing_state"`
	IsTurningPages   bool              `json:"is_turning_pages"`
	IsDraggingPage   bool              `json:"is_dragging_page"`
	Transition       string            `json:"transition,omitempty"`
	Turn             *TurnStatus       `json:"turn,omitempty"`
	Drag             *DragStatus       `json:"drag,omitempty"`
	LeftAppearance   appearance.Handle `json:"left_appearance"`
	RightAppearance  appearance.Handle `json:"right_appearance"`
}

// TurnStatus describes the jump in flight.
type TurnStatus struct {
	ID                  uuid.UUID `json:"id"`
	TargetPage          int       `json:"target_page"`
	Direction           string    `json:"direction"`
	PagesLeftToStart    int       `json:"pages_left_to_start"`
	PagesLeftToComplete int       `json:"pages_left_to_complete"`
	TimePerPageMS       int64     `json:"time_per_page_ms"`
	TotalTurnTimeMS     int64     `json:"total_turn_time_ms"`
}

// DragStatus describes the drag in flight.
type DragStatus struct {
	ID        uuid.UUID `json:"id"`
	Direction string    `json:"direction"`
	Progress  float64   `json:"progress"`
	Stopping  bool      `json:"stopping"`
}

// Snapshot returns the current view of the book.
func (b *Book) Snapshot() Snapshot {
	left, right := b.CurrentLeftPageNumber(), b.CurrentRightPageNumber()
	s := Snapshot{
		State:           b.state,
		PageNumber:      b.currentPage,
		LeftPage:        left,
		RightPage:       right,
		LastPage:        b.LastPageNumber(),
		StandinQuality:  b.quality.String(),
		PoolSize:        b.pool.MaxTurning(),
		ActiveLeaves:    b.pool.ActiveCount(),
		IsChangingState: b.IsChangingState(),
		IsTurningPages:  b.IsTurningPages(),
		IsDraggingPage:  b.IsDraggingPage(),
		LeftAppearance:  b.pageAppearance(left),
		RightAppearance: b.pageAppearance(right),
	}
	if t, ok := b.Transition(); ok {
		s.Transition = t.Name()
	}
	if t := b.turn; t != nil {
		s.Turn = &TurnStatus{
			ID:                  t.id,
			TargetPage:          t.target,
			Direction:           t.direction.String(),
			PagesLeftToStart:    t.pagesLeftToStart,
			PagesLeftToComplete: t.pagesLeftToComplete,
			TimePerPageMS:       t.schedule.TimePerPage.Milliseconds(),
			TotalTurnTimeMS:     t.schedule.TotalTurnTime.Milliseconds(),
		}
	}
	if d := b.drag; d != nil {
		s.Drag = &DragStatus{
			ID:        d.id,
			Direction: d.direction.String(),
			Progress:  d.progress,
			Stopping:  d.stopping,
		}
	}
	return s
}
