package book

import (
	"fmt"
	"strings"
	"time"
)

// State is the open/close state of the book, ordered from front to back.
type State int

const (
	ClosedFront State = iota
	OpenFront
	OpenMiddle
	OpenBack
	ClosedBack
)

// States lists every state in order.
var States = []State{ClosedFront, OpenFront, OpenMiddle, OpenBack, ClosedBack}

func (s State) String() string {
	switch s {
	case ClosedFront:
		return "ClosedFront"
	case OpenFront:
		return "OpenFront"
	case OpenMiddle:
		return "OpenMiddle"
	case OpenBack:
		return "OpenBack"
	case ClosedBack:
		return "ClosedBack"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Valid reports whether s is one of the five book states.
func (s State) Valid() bool {
	return s >= ClosedFront && s <= ClosedBack
}

// ParseState parses a state name, case-insensitively.
func ParseState(name string) (State, error) {
	for _, s := range States {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown book state %q", name)
}

func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid book state %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Transition is one state change. Every ordered pair of distinct states is
// its own transition with its own animation, including long jumps such as
// ClosedFront to OpenBack.
type Transition struct {
	From State
	To   State
}

// Name returns the animation identity of the transition.
func (t Transition) Name() string {
	return t.From.String() + "To" + t.To.String()
}

// Forward reports whether the transition moves towards the back cover.
func (t Transition) Forward() bool {
	return t.To > t.From
}

// Quality is the detail level of the static standin representations.
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// ParseQuality parses "low", "medium" or "high".
func ParseQuality(name string) (Quality, error) {
	for _, q := range []Quality{QualityLow, QualityMedium, QualityHigh} {
		if strings.EqualFold(q.String(), name) {
			return q, nil
		}
	}
	return 0, fmt.Errorf("unknown standin quality %q", name)
}

// StateAnimator is the renderer side of the open/close animation.
type StateAnimator interface {
	// Play starts the animation of t over duration; done is called once
	// when it finishes.
	Play(t Transition, duration time.Duration, done func())
	// SetStandinVisible shows or hides the static representation of s.
	SetStandinVisible(s State, visible bool)
	// SetAnimatedVisible toggles the full-detail animated book.
	SetAnimatedVisible(visible bool)
	// SetStandinQuality swaps the detail level of the standins.
	SetStandinQuality(q Quality)
}
