package headless

import (
	"sort"
	"time"

	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/leaf"
)

// StateAnimator is a book.StateAnimator that finishes each transition once
// its duration has elapsed.
type StateAnimator struct {
	standins  map[book.State]bool
	animated  bool
	quality   book.Quality
	played    []book.Transition
	remaining time.Duration
	done      func()
}

// NewStateAnimator creates a StateAnimator with every standin hidden.
func NewStateAnimator() *StateAnimator {
	return &StateAnimator{standins: make(map[book.State]bool)}
}

func (s *StateAnimator) Play(t book.Transition, duration time.Duration, done func()) {
	s.played = append(s.played, t)
	s.remaining = duration
	s.done = done
}

func (s *StateAnimator) SetStandinVisible(st book.State, visible bool) {
	s.standins[st] = visible
}

func (s *StateAnimator) SetAnimatedVisible(visible bool) { s.animated = visible }

func (s *StateAnimator) SetStandinQuality(q book.Quality) { s.quality = q }

// Advance runs the transition in flight for dt.
func (s *StateAnimator) Advance(dt time.Duration) {
	if s.done == nil {
		return
	}
	s.remaining -= dt
	if s.remaining > 0 {
		return
	}
	done := s.done
	s.done = nil
	done()
}

// Playing reports whether a transition is in flight.
func (s *StateAnimator) Playing() bool { return s.done != nil }

// StandinVisible reports whether the standin of st is shown.
func (s *StateAnimator) StandinVisible(st book.State) bool { return s.standins[st] }

// VisibleStandins returns the shown standins in state order.
func (s *StateAnimator) VisibleStandins() []book.State {
	var out []book.State
	for _, st := range book.States {
		if s.standins[st] {
			out = append(out, st)
		}
	}
	return out
}

// AnimatedVisible reports whether the animated book is shown.
func (s *StateAnimator) AnimatedVisible() bool { return s.animated }

// Quality returns the last applied standin quality.
func (s *StateAnimator) Quality() book.Quality { return s.quality }

// Played returns every transition played so far.
func (s *StateAnimator) Played() []book.Transition {
	return append([]book.Transition(nil), s.played...)
}

// Stage holds the animators of one book and advances them together.
type Stage struct {
	states *StateAnimator
	leaves map[int]*Leaf
}

// NewStage creates an empty stage.
func NewStage() *Stage {
	return &Stage{
		states: NewStateAnimator(),
		leaves: make(map[int]*Leaf),
	}
}

// States returns the state animator of the stage.
func (s *Stage) States() *StateAnimator { return s.states }

// LeafFactory returns a leaf.Factory that creates leaves on this stage.
// A slot that is rebuilt gets the leaf it had before.
func (s *Stage) LeafFactory() leaf.Factory {
	return func(index int) leaf.Animator {
		if l, ok := s.leaves[index]; ok {
			return l
		}
		l := NewLeaf(index)
		s.leaves[index] = l
		return l
	}
}

// Leaf returns the leaf of slot index, or nil.
func (s *Stage) Leaf(index int) *Leaf { return s.leaves[index] }

// Leaves returns the leaves ordered by slot.
func (s *Stage) Leaves() []*Leaf {
	out := make([]*Leaf, 0, len(s.leaves))
	for _, l := range s.leaves {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

// Playing reports whether any animation is still running on its own.
func (s *Stage) Playing() bool {
	if s.states.Playing() {
		return true
	}
	for _, l := range s.leaves {
		if l.playing {
			return true
		}
	}
	return false
}

// Advance moves every animation by dt. Completions are reported in slot
// order.
func (s *Stage) Advance(dt time.Duration) {
	s.states.Advance(dt)
	for _, l := range s.Leaves() {
		l.Advance(dt)
	}
}
