package book

import (
	"fmt"
	"log"
	"time"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/leaf"
)

// Book is the page-turn state machine. It is driven by a single goroutine:
// every method, Tick, and every completion callback handed to the
// animators must run on that goroutine.
type Book struct {
	cfg    Config
	log    *log.Logger
	binder appearance.Binder
	states StateAnimator
	pool   *leaf.Pool

	state       State
	currentPage int
	pages       []appearance.Handle
	surfaces    map[appearance.Surface]appearance.Handle
	quality     Quality

	change *stateChange
	turn   *turnSession
	drag   *dragSession

	pendingPoolSize int
	pendingQuality  *Quality
}

// Option configures a Book at construction.
type Option func(*Book)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(b *Book) { b.log = l }
}

// WithState sets the initial state (ClosedFront by default).
func WithState(s State) Option {
	return func(b *Book) {
		if s.Valid() {
			b.state = s
		}
	}
}

// WithPages sets the initial page list. An unset handle shows the filler.
func WithPages(pages []appearance.Handle) Option {
	return func(b *Book) { b.pages = append([]appearance.Handle(nil), pages...) }
}

// WithPageNumber sets the initial page (1 by default).
func WithPageNumber(n int) Option {
	return func(b *Book) {
		if n >= 1 {
			b.currentPage = n
		}
	}
}

// WithStandinQuality sets the initial standin quality (medium by default).
func WithStandinQuality(q Quality) Option {
	return func(b *Book) { b.quality = q }
}

// New creates a Book. leaves builds the animator for each pool slot.
func New(cfg Config, binder appearance.Binder, states StateAnimator, leaves leaf.Factory, opts ...Option) *Book {
	if cfg.MaxPagesTurningCount < 1 {
		cfg.MaxPagesTurningCount = 1
	}
	b := &Book{
		cfg:         cfg,
		log:         log.Default(),
		binder:      binder,
		states:      states,
		state:       ClosedFront,
		currentPage: 1,
		surfaces:    make(map[appearance.Surface]appearance.Handle),
		quality:     QualityMedium,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.pool = leaf.NewPool(cfg.MaxPagesTurningCount, leaves)

	for _, s := range States {
		b.states.SetStandinVisible(s, s == b.state)
	}
	b.states.SetAnimatedVisible(false)
	b.states.SetStandinQuality(b.quality)
	b.setPageNumber(b.currentPage)
	return b
}

func (b *Book) logf(format string, args ...any) {
	b.log.Printf("Book: "+format, args...)
}

// State returns the committed state. During a state change it is still the
// state the change started from.
func (b *Book) State() State { return b.state }

// Config returns the configuration the book was built with. The pool size
// reflects the last applied resize.
func (b *Book) Config() Config {
	cfg := b.cfg
	cfg.MaxPagesTurningCount = b.pool.MaxTurning()
	return cfg
}

// StandinQuality returns the applied standin quality.
func (b *Book) StandinQuality() Quality { return b.quality }

// CurrentPageNumber returns the page pointer as last set.
func (b *Book) CurrentPageNumber() int { return b.currentPage }

// CurrentLeftPageNumber returns the odd page of the visible group.
func (b *Book) CurrentLeftPageNumber() int { return leftPageOf(b.currentPage) }

// CurrentRightPageNumber returns the even page of the visible group.
func (b *Book) CurrentRightPageNumber() int { return leftPageOf(b.currentPage) + 1 }

// LastPageNumber returns the number of pages.
func (b *Book) LastPageNumber() int { return len(b.pages) }

// IsFirstPageGroup reports whether the visible group is the first one.
func (b *Book) IsFirstPageGroup() bool { return b.CurrentLeftPageNumber() <= 1 }

// IsLastPageGroup reports whether no page follows the visible group.
func (b *Book) IsLastPageGroup() bool { return b.CurrentRightPageNumber() >= b.LastPageNumber() }

// IsChangingState reports whether an open/close animation is in flight.
func (b *Book) IsChangingState() bool { return b.change != nil }

// IsTurningPages reports whether a jump is in flight.
func (b *Book) IsTurningPages() bool { return b.turn != nil }

// IsDraggingPage reports whether a leaf is being dragged.
func (b *Book) IsDraggingPage() bool { return b.drag != nil }

// ActiveLeaves returns the number of pool actors currently in use.
func (b *Book) ActiveLeaves() int { return b.pool.ActiveCount() }

// Pool exposes the leaf pool, mainly for inspection.
func (b *Book) Pool() *leaf.Pool { return b.pool }

// Delta returns the delta of f selected by the configured time source.
func (b *Book) Delta(f Frame) time.Duration {
	if b.cfg.DeltaTime == DeltaUnscaled {
		return f.UnscaledDelta
	}
	return f.Delta
}

// Tick advances the book by one frame of the host loop.
func (b *Book) Tick(f Frame) {
	b.tickStateChange()
	b.tickTurn(b.Delta(f))
}

// SetPageNumber jumps to pageNumber without animation and rebinds the left
// and right page surfaces. It is ignored while pages are turning or being
// dragged.
func (b *Book) SetPageNumber(pageNumber int) error {
	if pageNumber < 1 {
		b.logf("page number %d is out of range", pageNumber)
		return fmt.Errorf("%w: %d", ErrInvalidPageNumber, pageNumber)
	}
	if b.turn != nil || b.drag != nil {
		return nil
	}
	b.setPageNumber(pageNumber)
	return nil
}

// setPageNumber is the one place the visible left/right appearances are
// derived from the page list.
func (b *Book) setPageNumber(pageNumber int) {
	b.currentPage = pageNumber
	left := leftPageOf(pageNumber)
	b.binder.Bind(appearance.SurfacePageLeft, b.pageAppearance(left))
	b.binder.Bind(appearance.SurfacePageRight, b.pageAppearance(left+1))
}

// SetSurfaceAppearance binds one of the page-independent surfaces.
func (b *Book) SetSurfaceAppearance(surface appearance.Surface, h appearance.Handle) error {
	if surface == appearance.SurfacePageLeft || surface == appearance.SurfacePageRight {
		return fmt.Errorf("%w: %s", ErrPageDrivenSurface, surface)
	}
	b.surfaces[surface] = h
	b.binder.Bind(surface, h.Or(b.cfg.Filler))
	return nil
}

// SurfaceAppearance returns the handle set for a page-independent surface.
func (b *Book) SurfaceAppearance(surface appearance.Surface) appearance.Handle {
	return b.surfaces[surface]
}

// SetStandinQuality changes the standin detail level. During a state change
// the swap is queued and applied when the change completes.
func (b *Book) SetStandinQuality(q Quality) {
	if b.change != nil {
		b.pendingQuality = &q
		return
	}
	b.applyQuality(q)
}

func (b *Book) applyQuality(q Quality) {
	b.quality = q
	b.states.SetStandinQuality(q)
}

// SetMaxPagesTurningCount resizes the leaf pool. While a jump is in flight
// the resize is queued until the jump completes or is stopped.
func (b *Book) SetMaxPagesTurningCount(n int) {
	if n < 1 {
		n = 1
	}
	if b.turn != nil || b.drag != nil {
		b.logf("deferring pool resize to %d until the current turn completes", n)
		b.pendingPoolSize = n
		return
	}
	b.pool.Resize(n)
}

func (b *Book) applyPendingPoolSize() {
	if b.pendingPoolSize == 0 {
		return
	}
	n := b.pendingPoolSize
	b.pendingPoolSize = 0
	b.pool.Resize(n)
}

func (b *Book) pageAppearance(pageNumber int) appearance.Handle {
	if pageNumber < 1 || pageNumber > len(b.pages) {
		return b.cfg.Filler
	}
	return b.pages[pageNumber-1].Or(b.cfg.Filler)
}

// leftPageOf returns the odd page of the group containing pageNumber.
func leftPageOf(pageNumber int) int {
	if pageNumber%2 == 0 {
		return pageNumber - 1
	}
	return pageNumber
}

// clampPage limits pageNumber to the pages the book currently has.
func (b *Book) clampPage(pageNumber int) int {
	return max(min(pageNumber, b.LastPageNumber()), 1)
}

// sameGroup reports whether two page numbers are shown together.
func sameGroup(a, b int) bool {
	return leftPageOf(a) == leftPageOf(b)
}
