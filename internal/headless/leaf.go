package headless

import (
	"time"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/leaf"
)

// Pose values of a leaf. The turn clip runs from a leaf lying on the left
// (0) to a leaf lying on the right (1), so a forward turn plays it from 1
// down to 0.
const (
	PoseLeft  = 0.0
	PoseRight = 1.0
)

// Leaf is a leaf.Animator that moves a pose value over time.
type Leaf struct {
	index   int
	dir     leaf.Direction
	front   appearance.Handle
	back    appearance.Handle
	pose    float64
	target  float64
	rate    float64
	playing bool
	held    bool
	visible bool
	done    func()
	plays   int
}

// NewLeaf creates an idle leaf for pool slot index.
func NewLeaf(index int) *Leaf {
	return &Leaf{index: index, pose: PoseRight}
}

func (l *Leaf) Play(dir leaf.Direction, duration time.Duration, front, back appearance.Handle, done func()) {
	l.dir = dir
	l.front, l.back = front, back
	l.pose = startPose(dir)
	l.target = endPose(dir)
	l.visible = true
	l.done = done
	l.plays++

	if duration <= 0 {
		l.held, l.playing = true, false
		return
	}
	l.held, l.playing = false, true
	l.rate = 1 / duration.Seconds()
}

func (l *Leaf) SetProgress(normalized float64) {
	if !l.held {
		return
	}
	l.pose = normalized
}

func (l *Leaf) PlayRemainder(speed float64, reverse bool) {
	if !l.held {
		return
	}
	l.target = endPose(l.dir)
	if reverse {
		l.target = startPose(l.dir)
	}
	l.rate = speed
	l.held, l.playing = false, true
}

func (l *Leaf) Deactivate() {
	l.playing, l.held, l.visible = false, false, false
	l.done = nil
}

// Advance moves a playing leaf by dt and reports completion when it lands.
func (l *Leaf) Advance(dt time.Duration) {
	if !l.playing {
		return
	}
	step := l.rate * dt.Seconds()
	if l.target < l.pose {
		l.pose -= step
		if l.pose > l.target {
			return
		}
	} else {
		l.pose += step
		if l.pose < l.target {
			return
		}
	}
	// A landed leaf is replaced by the static page it covers.
	l.pose = l.target
	l.playing, l.visible = false, false
	if done := l.done; done != nil {
		l.done = nil
		done()
	}
}

// Index returns the pool slot of the leaf.
func (l *Leaf) Index() int { return l.index }

// Pose returns the current clip position.
func (l *Leaf) Pose() float64 { return l.pose }

// Playing reports whether the leaf is moving on its own.
func (l *Leaf) Playing() bool { return l.playing }

// Held reports whether the leaf waits for SetProgress.
func (l *Leaf) Held() bool { return l.held }

// Visible reports whether the leaf is shown.
func (l *Leaf) Visible() bool { return l.visible }

// Direction returns the direction of the last Play.
func (l *Leaf) Direction() leaf.Direction { return l.dir }

// Faces returns the appearances of the last Play.
func (l *Leaf) Faces() (front, back appearance.Handle) { return l.front, l.back }

// Plays returns how many times Play was called.
func (l *Leaf) Plays() int { return l.plays }

func startPose(dir leaf.Direction) float64 {
	if dir == leaf.Forward {
		return PoseRight
	}
	return PoseLeft
}

func endPose(dir leaf.Direction) float64 {
	if dir == leaf.Forward {
		return PoseLeft
	}
	return PoseRight
}
