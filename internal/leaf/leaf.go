// Package leaf provides the pool of reusable turning-page actors.
//
// A leaf is one physical page with a front and a back face. The renderer
// supplies an Animator per pool slot; the pool wraps each one in an Actor
// that tracks whether the slot is active and guarantees the completion of
// an activation is reported at most once, even if the slot was deactivated
// and recycled while its animation was still running.
package leaf

import (
	"fmt"
	"time"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
)

// Direction is the direction a leaf travels.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Step returns +1 for Forward and -1 for Backward.
func (d Direction) Step() int {
	if d == Backward {
		return -1
	}
	return 1
}

// Animator is the renderer side of one pool slot.
type Animator interface {
	// Play starts a turn in dir over duration showing front and back on the
	// leaf's two faces. A zero duration holds the leaf at its start pose so
	// that SetProgress drives it. done must be called once when the turn,
	// or the remainder started by PlayRemainder, has finished.
	Play(dir Direction, duration time.Duration, front, back appearance.Handle, done func())
	// SetProgress poses a held leaf. 0 and 1 are the two ends of the turn
	// in playback order.
	SetProgress(normalized float64)
	// PlayRemainder releases a held leaf. It plays at speed (normalized
	// progress per second) to the end of the turn, or back to where it
	// started when reverse is set.
	PlayRemainder(speed float64, reverse bool)
	// Deactivate stops the leaf at once and hides it. A pending done must
	// not be called afterwards.
	Deactivate()
}

// Factory creates the animator for a pool slot.
type Factory func(index int) Animator
