// Package timing derives the schedule of a multi-leaf page jump.
//
// A jump turns some number of physical leaves with a bounded pool of N leaf
// actors. The caller expresses the turn time either as the time each leaf
// takes (TimePerPage) or as the wall-clock time of the whole jump
// (TotalTurnTime); Calculate returns both, plus the delay between two
// consecutive leaf starts so that no more than N leaves are ever in flight.
//
//	s, err := timing.Calculate(timing.TimePerPage, time.Second, 5, 6)
//	// s.TimePerPage == 1s, s.TotalTurnTime == 2s, s.DelayBetweenPageTurns == 200ms
package timing

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidLeafCount = errors.New("leaf count must be at least 1")
	ErrInvalidPoolSize  = errors.New("pool size must be at least 1")
)

// Mode selects how the requested turn time is interpreted.
type Mode int

const (
	// TimePerPage: the time is the duration of a single leaf turn.
	TimePerPage Mode = iota
	// TotalTurnTime: the time is the duration of the whole jump.
	TotalTurnTime
)

func (m Mode) String() string {
	switch m {
	case TimePerPage:
		return "per-page"
	case TotalTurnTime:
		return "total"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "per-page" / "total" (and a few spellings of each).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "per-page", "per_page", "timeperpage", "":
		return TimePerPage, nil
	case "total", "total-time", "totalturntime":
		return TotalTurnTime, nil
	default:
		return 0, fmt.Errorf("unknown turn time mode %q", s)
	}
}

// Schedule is the derived timing of one jump.
type Schedule struct {
	Leaves                int
	TimePerPage           time.Duration
	TotalTurnTime         time.Duration
	DelayBetweenPageTurns time.Duration
}

// Calculate derives the schedule for turning leaves physical leaves with a
// pool of poolSize concurrently animating actors.
//
// The number of pool-sized waves is (leaves-1)/poolSize + 1, computed in
// floating point so the stagger between leaf starts is exactly
// TimePerPage/poolSize whenever leaves > 1.
func Calculate(mode Mode, t time.Duration, poolSize, leaves int) (Schedule, error) {
	if leaves < 1 {
		return Schedule{}, fmt.Errorf("%w: got %d", ErrInvalidLeafCount, leaves)
	}
	if poolSize < 1 {
		return Schedule{}, fmt.Errorf("%w: got %d", ErrInvalidPoolSize, poolSize)
	}

	waves := float64(leaves-1)/float64(poolSize) + 1

	s := Schedule{Leaves: leaves}
	switch mode {
	case TotalTurnTime:
		s.TotalTurnTime = t
		s.TimePerPage = time.Duration(float64(t) / waves)
	default:
		s.TimePerPage = t
		s.TotalTurnTime = time.Duration(float64(t) * waves)
	}

	if leaves > 1 {
		s.DelayBetweenPageTurns = (s.TotalTurnTime - s.TimePerPage) / time.Duration(leaves-1)
	}
	return s, nil
}
