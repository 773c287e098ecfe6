package leaf

import (
	"time"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
)

// Actor is one pool slot. It carries no page identity between activations.
type Actor struct {
	index      int
	anim       Animator
	active     bool
	generation uint64
	front      appearance.Handle
	back       appearance.Handle
}

// Index returns the pool slot of the actor.
func (a *Actor) Index() int { return a.index }

// Active reports whether the actor is playing (or held by a drag).
func (a *Actor) Active() bool { return a.active }

// Faces returns the appearances bound by the current activation.
func (a *Actor) Faces() (front, back appearance.Handle) { return a.front, a.back }

// Animator returns the renderer-side animator of the slot.
func (a *Actor) Animator() Animator { return a.anim }

// Play activates the actor. onDone runs at most once, and only if this
// activation is still the current one when the animator reports completion.
func (a *Actor) Play(dir Direction, duration time.Duration, front, back appearance.Handle, onDone func()) {
	a.generation++
	gen := a.generation
	a.active = true
	a.front, a.back = front, back

	a.anim.Play(dir, duration, front, back, func() {
		if !a.active || a.generation != gen {
			return
		}
		a.active = false
		if onDone != nil {
			onDone()
		}
	})
}

// SetProgress poses a held actor.
func (a *Actor) SetProgress(normalized float64) {
	if !a.active {
		return
	}
	a.anim.SetProgress(normalized)
}

// PlayRemainder releases a held actor.
func (a *Actor) PlayRemainder(speed float64, reverse bool) {
	if !a.active {
		return
	}
	a.anim.PlayRemainder(speed, reverse)
}

// Deactivate stops the actor immediately. Any completion still in flight
// for the previous activation is ignored.
func (a *Actor) Deactivate() {
	a.generation++
	a.active = false
	a.front, a.back = "", ""
	a.anim.Deactivate()
}

// Pool is a fixed set of actors handed out round-robin.
//
// A pool configured for maxTurning concurrently turning leaves holds
// maxTurning+1 slots, and its cursor wraps back to slot 0 once it moves
// past maxTurning.
type Pool struct {
	actors     []*Actor
	maxTurning int
	cursor     int
	factory    Factory
}

// NewPool creates a pool for maxTurning concurrent leaves (minimum 1).
func NewPool(maxTurning int, factory Factory) *Pool {
	p := &Pool{factory: factory, cursor: -1}
	p.Resize(maxTurning)
	return p
}

// MaxTurning returns the configured number of concurrently turning leaves.
func (p *Pool) MaxTurning() int { return p.maxTurning }

// Len returns the number of slots.
func (p *Pool) Len() int { return len(p.actors) }

// Actor returns the actor in slot i.
func (p *Pool) Actor(i int) *Actor { return p.actors[i] }

// Cursor returns the slot handed out last, or -1 if none was yet.
func (p *Pool) Cursor() int { return p.cursor }

// Peek returns the actor the next call to Next will hand out.
func (p *Pool) Peek() *Actor {
	return p.actors[p.nextIndex()]
}

// Next advances the cursor and returns the actor at the new position.
func (p *Pool) Next() *Actor {
	p.cursor = p.nextIndex()
	return p.actors[p.cursor]
}

func (p *Pool) nextIndex() int {
	i := p.cursor + 1
	if i > p.maxTurning {
		i = 0
	}
	return i
}

// ActiveCount returns the number of active actors.
func (p *Pool) ActiveCount() int {
	n := 0
	for _, a := range p.actors {
		if a.active {
			n++
		}
	}
	return n
}

// DeactivateAll stops every actor at once.
func (p *Pool) DeactivateAll() {
	for _, a := range p.actors {
		if a.active {
			a.Deactivate()
		}
	}
}

// Resize rebuilds the pool for maxTurning concurrent leaves. Every actor is
// deactivated; existing animators are reused for the slots that remain and
// the factory is called only for new slots.
func (p *Pool) Resize(maxTurning int) {
	if maxTurning < 1 {
		maxTurning = 1
	}
	p.DeactivateAll()

	slots := maxTurning + 1
	actors := make([]*Actor, slots)
	for i := 0; i < slots; i++ {
		if i < len(p.actors) {
			actors[i] = p.actors[i]
			continue
		}
		actors[i] = &Actor{index: i, anim: p.factory(i)}
	}
	p.actors = actors
	p.maxTurning = maxTurning
	if p.cursor > maxTurning {
		p.cursor = -1
	}
}
