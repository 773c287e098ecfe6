// Package driver runs a book.Book on its own goroutine.
//
// A Book must only be touched from one goroutine. The Driver owns that
// goroutine: it ticks the book and its headless stage from a time.Ticker and
// runs commands sent from other goroutines (HTTP handlers, the autoplay
// scheduler) between two ticks.
//
// # Usage
//
//	d := driver.New(b, stage, driver.Options{TickRate: 60, TimeScale: 1})
//	if err := d.Start(ctx); err != nil {
//		return err
//	}
//	defer d.Stop()
//
//	err := d.Do(ctx, func(b *book.Book) {
//		_ = b.TurnForward(time.Second, time.Second, book.TurnCallbacks{})
//	})
package driver

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/headless"
)

const DefaultTickRate = 60

var ErrNotRunning = errors.New("driver is not running")

// Options tune the tick loop.
type Options struct {
	// TickRate is the number of ticks per second.
	TickRate int
	// TimeScale multiplies the scaled delta of each frame. The unscaled
	// delta is always wall-clock time.
	TimeScale float64
}

type command struct {
	fn   func(*book.Book)
	done chan struct{}
}

// Driver ticks one book.
type Driver struct {
	book  *book.Book
	stage *headless.Stage
	opts  Options

	cmds chan command

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	stopped chan struct{}

	ticks atomic.Uint64
}

// New creates a stopped Driver.
func New(b *book.Book, stage *headless.Stage, opts Options) *Driver {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.TimeScale <= 0 {
		opts.TimeScale = 1
	}
	return &Driver{
		book:  b,
		stage: stage,
		opts:  opts,
		cmds:  make(chan command),
	}
}

// Start launches the tick loop. It stops when ctx is cancelled or Stop is called.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.stopped = make(chan struct{})
	d.running = true

	go d.loop(loopCtx, d.stopped)

	log.Printf("Driver: started at %d ticks/s (time scale %.2f)", d.opts.TickRate, d.opts.TimeScale)
	return nil
}

// Stop ends the tick loop and waits for it to exit.
func (d *Driver) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	cancel, stopped := d.cancel, d.stopped
	d.running = false
	d.cancel = nil
	d.mu.Unlock()

	cancel()
	<-stopped
	log.Printf("Driver: stopped after %d ticks", d.ticks.Load())
}

// IsRunning reports whether the tick loop is active.
func (d *Driver) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Ticks returns the number of ticks run so far.
func (d *Driver) Ticks() uint64 { return d.ticks.Load() }

// Do runs fn on the tick goroutine and waits for it to return.
func (d *Driver) Do(ctx context.Context, fn func(*book.Book)) error {
	d.mu.Lock()
	running, stopped := d.running, d.stopped
	d.mu.Unlock()
	if !running {
		return ErrNotRunning
	}

	c := command{fn: fn, done: make(chan struct{})}
	select {
	case d.cmds <- c:
	case <-stopped:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current view of the book.
func (d *Driver) Snapshot(ctx context.Context) (book.Snapshot, error) {
	var s book.Snapshot
	err := d.Do(ctx, func(b *book.Book) { s = b.Snapshot() })
	return s, err
}

// Step runs one tick of unscaled length dt on the calling goroutine. It is
// meant for a stopped driver, such as in simulations and tests.
func (d *Driver) Step(dt time.Duration) {
	d.step(dt)
}

func (d *Driver) loop(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(time.Second / time.Duration(d.opts.TickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-d.cmds:
			c.fn(d.book)
			close(c.done)
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			d.step(dt)
		}
	}
}

func (d *Driver) step(unscaled time.Duration) {
	f := book.Frame{
		Delta:         time.Duration(float64(unscaled) * d.opts.TimeScale),
		UnscaledDelta: unscaled,
	}
	d.book.Tick(f)
	d.stage.Advance(d.book.Delta(f))
	d.ticks.Add(1)
}
