package book

import "time"

// changePhase tracks the two-tick start of an animated state change. The
// standin is hidden on the first tick and the full-detail book is shown on
// the second, so the two are never visible in the same frame.
type changePhase int

const (
	phaseRequested changePhase = iota
	phaseAnimating
	phaseDetailed
)

type stateChange struct {
	transition  Transition
	duration    time.Duration
	phase       changePhase
	onCompleted StateChangedFunc
}

type stateOptions struct {
	stopTurningPages bool
}

// StateOption modifies a SetState call.
type StateOption func(*stateOptions)

// WithStopTurningPages lets SetState cancel an in-flight jump instead of
// being ignored.
func WithStopTurningPages() StateOption {
	return func(o *stateOptions) { o.stopTurningPages = true }
}

// SetState changes the open/close state. A duration <= 0 commits before
// SetState returns. Otherwise the animation starts on the next Tick and
// onCompleted fires when the state animator reports completion.
//
// The call is ignored when the book is already in to, is changing state,
// is dragging a page, or is turning pages without WithStopTurningPages.
func (b *Book) SetState(to State, duration time.Duration, onCompleted StateChangedFunc, opts ...StateOption) {
	var o stateOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !to.Valid() {
		b.logf("ignoring unknown state %d", int(to))
		return
	}
	if b.state == to || b.change != nil || b.drag != nil {
		return
	}
	if b.turn != nil {
		if !o.stopTurningPages {
			return
		}
		b.StopTurningPages()
	}

	t := Transition{From: b.state, To: to}
	if duration <= 0 {
		b.commitState(t, onCompleted)
		return
	}
	b.change = &stateChange{
		transition:  t,
		duration:    duration,
		phase:       phaseRequested,
		onCompleted: onCompleted,
	}
}

// Transition returns the state change in flight, if any.
func (b *Book) Transition() (Transition, bool) {
	if b.change == nil {
		return Transition{}, false
	}
	return b.change.transition, true
}

func (b *Book) tickStateChange() {
	c := b.change
	if c == nil {
		return
	}
	switch c.phase {
	case phaseRequested:
		c.phase = phaseAnimating
		b.states.SetStandinVisible(c.transition.From, false)
		b.states.Play(c.transition, c.duration, func() { b.stateAnimationCompleted(c) })
	case phaseAnimating:
		c.phase = phaseDetailed
		b.states.SetAnimatedVisible(true)
	}
}

func (b *Book) stateAnimationCompleted(c *stateChange) {
	if b.change != c {
		return
	}
	b.commitState(c.transition, c.onCompleted)
}

func (b *Book) commitState(t Transition, onCompleted StateChangedFunc) {
	b.states.SetStandinVisible(t.From, false)
	b.states.SetStandinVisible(t.To, true)
	b.states.SetAnimatedVisible(false)
	b.state = t.To
	b.change = nil

	if b.pendingQuality != nil {
		q := *b.pendingQuality
		b.pendingQuality = nil
		b.applyQuality(q)
	}
	if onCompleted != nil {
		onCompleted(t.From, t.To, b.currentPage)
	}
}
