package http

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/entities"
	"github.com/Seth7171/TaleWeaver-sub000/internal/leaf"
	"github.com/Seth7171/TaleWeaver-sub000/internal/timing"
)

// BookController exposes the page-turn engine.
type BookController struct {
	driver   BookDriver
	settings SettingStore
	turnTime time.Duration
	openTime time.Duration
}

func NewBookController(driver BookDriver, settings SettingStore, turnTime, openTime time.Duration) *BookController {
	return &BookController{
		driver:   driver,
		settings: settings,
		turnTime: turnTime,
		openTime: openTime,
	}
}

func busy(b *book.Book) bool {
	return b.IsTurningPages() || b.IsChangingState() || b.IsDraggingPage()
}

func parseDirection(s string) (leaf.Direction, bool) {
	switch strings.ToLower(s) {
	case "forward", "":
		return leaf.Forward, true
	case "backward":
		return leaf.Backward, true
	default:
		return 0, false
	}
}

// GetBook returns the current view of the book.
// GET /api/book
func (bc *BookController) GetBook(c *gin.Context) {
	s, err := bc.driver.Snapshot(c.Request.Context())
	if err != nil {
		respondDriverError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, s)
}

// SetState opens or closes the book.
// POST /api/book/state
func (bc *BookController) SetState(c *gin.Context) {
	var req struct {
		State            string `json:"state" binding:"required"`
		DurationMS       *int64 `json:"duration_ms"`
		StopTurningPages bool   `json:"stop_turning_pages"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "state is required", err)
		return
	}
	to, err := book.ParseState(req.State)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var (
		rejected bool
		snap     book.Snapshot
	)
	err = bc.driver.Do(c.Request.Context(), func(b *book.Book) {
		if b.IsChangingState() || b.IsDraggingPage() || (b.IsTurningPages() && !req.StopTurningPages) {
			rejected = true
			return
		}
		var opts []book.StateOption
		if req.StopTurningPages {
			opts = append(opts, book.WithStopTurningPages())
		}
		b.SetState(to, durationMS(req.DurationMS, bc.openTime), func(_, to book.State, page int) {
			bc.persistPage(to, page)
		}, opts...)
		snap = b.Snapshot()
	})
	if err != nil {
		respondDriverError(c, err, "set state")
		return
	}
	if rejected {
		respondConflict(c, CodeBusy, "book is busy")
		return
	}
	respondAccepted(c, "state change requested", snap)
}

// TurnToPage starts a jump to a page.
// POST /api/book/turn
func (bc *BookController) TurnToPage(c *gin.Context) {
	var req struct {
		Page       int    `json:"page" binding:"required"`
		Mode       string `json:"mode"`
		TurnTimeMS *int64 `json:"turn_time_ms"`
		OpenTimeMS *int64 `json:"open_time_ms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "page is required", err)
		return
	}
	mode, err := timing.ParseMode(req.Mode)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	turnTime := durationMS(req.TurnTimeMS, bc.turnTime)
	openTime := durationMS(req.OpenTimeMS, bc.openTime)
	bc.runTurn(c, "turn to page", func(b *book.Book) error {
		return b.TurnToPage(req.Page, mode, turnTime, openTime, bc.turnCallbacks())
	})
}

type stepRequest struct {
	TurnTimeMS *int64 `json:"turn_time_ms"`
	OpenTimeMS *int64 `json:"open_time_ms"`
}

// bindOptionalJSON binds a body when one was sent.
func bindOptionalJSON(c *gin.Context, v any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(v); err != nil {
		respondBindError(c, "invalid request body", err)
		return false
	}
	return true
}

// TurnForward turns one page group forward.
// POST /api/book/forward
func (bc *BookController) TurnForward(c *gin.Context) {
	var req stepRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	turnTime := durationMS(req.TurnTimeMS, bc.turnTime)
	openTime := durationMS(req.OpenTimeMS, bc.openTime)
	bc.runTurn(c, "turn forward", func(b *book.Book) error {
		return b.TurnForward(turnTime, openTime, bc.turnCallbacks())
	})
}

// TurnBackward turns one page group backward.
// POST /api/book/backward
func (bc *BookController) TurnBackward(c *gin.Context) {
	var req stepRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	turnTime := durationMS(req.TurnTimeMS, bc.turnTime)
	openTime := durationMS(req.OpenTimeMS, bc.openTime)
	bc.runTurn(c, "turn backward", func(b *book.Book) error {
		return b.TurnBackward(turnTime, openTime, bc.turnCallbacks())
	})
}

func (bc *BookController) runTurn(c *gin.Context, context string, turn func(*book.Book) error) {
	var (
		rejected bool
		turnErr  error
		snap     book.Snapshot
	)
	err := bc.driver.Do(c.Request.Context(), func(b *book.Book) {
		if busy(b) {
			rejected = true
			return
		}
		turnErr = turn(b)
		snap = b.Snapshot()
	})
	if err != nil {
		respondDriverError(c, err, context)
		return
	}
	if rejected {
		respondConflict(c, CodeBusy, "book is busy")
		return
	}
	if errors.Is(turnErr, book.ErrInvalidPageNumber) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: turnErr.Error(), Code: CodeInvalidPage})
		return
	}
	if turnErr != nil {
		respondInternalError(c, turnErr, context)
		return
	}
	respondAccepted(c, "turn started", snap)
}

// turnCallbacks persist the landing page once a jump completes. They run on
// the tick goroutine.
func (bc *BookController) turnCallbacks() book.TurnCallbacks {
	return book.TurnCallbacks{
		OnCompleted: func(_, to book.State, page int) {
			bc.persistPage(to, page)
		},
	}
}

// StopTurningPages aborts the jump in flight and lands on its target.
// POST /api/book/stop
func (bc *BookController) StopTurningPages(c *gin.Context) {
	var snap book.Snapshot
	err := bc.driver.Do(c.Request.Context(), func(b *book.Book) {
		b.StopTurningPages()
		snap = b.Snapshot()
	})
	if err != nil {
		respondDriverError(c, err, "stop turning pages")
		return
	}
	bc.persistView(snap)
	respondSuccess(c, "stopped", snap)
}

// DragStart picks up a leaf.
// POST /api/book/drag/start
func (bc *BookController) DragStart(c *gin.Context) {
	var req struct {
		Direction string `json:"direction"`
	}
	if !bindOptionalJSON(c, &req) {
		return
	}
	dir, ok := parseDirection(req.Direction)
	if !ok {
		respondBadRequest(c, "direction must be forward or backward")
		return
	}

	var (
		started bool
		snap    book.Snapshot
	)
	err := bc.driver.Do(c.Request.Context(), func(b *book.Book) {
		started = b.TurnPageDragStart(dir)
		snap = b.Snapshot()
	})
	if err != nil {
		respondDriverError(c, err, "drag start")
		return
	}
	if !started {
		respondConflict(c, CodeBusy, "cannot start a drag now")
		return
	}
	respondSuccess(c, "drag started", snap)
}

// DragProgress moves the dragged leaf.
// POST /api/book/drag/progress
func (bc *BookController) DragProgress(c *gin.Context) {
	var req struct {
		Progress *float64 `json:"progress" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "progress is required", err)
		return
	}

	var (
		dragging bool
		snap     book.Snapshot
	)
	err := bc.driver.Do(c.Request.Context(), func(b *book.Book) {
		if !b.IsDraggingPage() {
			return
		}
		dragging = true
		b.TurnPageDrag(*req.Progress)
		snap = b.Snapshot()
	})
	if err != nil {
		respondDriverError(c, err, "drag progress")
		return
	}
	if !dragging {
		respondConflict(c, CodeNotDragging, "no drag in progress")
		return
	}
	respondSuccess(c, "drag updated", snap)
}

// DragStop releases the dragged leaf.
// POST /api/book/drag/stop
func (bc *BookController) DragStop(c *gin.Context) {
	var req struct {
		StopSpeed float64 `json:"stop_speed"`
		Reverse   bool    `json:"reverse"`
	}
	if !bindOptionalJSON(c, &req) {
		return
	}

	var (
		dragging bool
		snap     book.Snapshot
	)
	err := bc.driver.Do(c.Request.Context(), func(b *book.Book) {
		if !b.IsDraggingPage() {
			return
		}
		dragging = true
		b.TurnPageDragStop(req.StopSpeed, func(left, _ int) {
			bc.persistPage(b.State(), left)
		}, req.Reverse)
		snap = b.Snapshot()
	})
	if err != nil {
		respondDriverError(c, err, "drag stop")
		return
	}
	if !dragging {
		respondConflict(c, CodeNotDragging, "no drag in progress")
		return
	}
	respondAccepted(c, "drag released", snap)
}

// SetQuality changes the standin quality.
// PUT /api/book/quality
func (bc *BookController) SetQuality(c *gin.Context) {
	var req struct {
		Quality string `json:"quality" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "quality is required", err)
		return
	}
	q, err := book.ParseQuality(req.Quality)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var snap book.Snapshot
	err = bc.driver.Do(c.Request.Context(), func(b *book.Book) {
		b.SetStandinQuality(q)
		snap = b.Snapshot()
	})
	if err != nil {
		respondDriverError(c, err, "set quality")
		return
	}
	bc.persist(entities.SettingKeyBookStandinQuality, q.String())
	respondSuccess(c, "quality updated", snap)
}

// SetPoolSize resizes the leaf pool.
// PUT /api/book/pool
func (bc *BookController) SetPoolSize(c *gin.Context) {
	var req struct {
		Size int `json:"size" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Size < 1 {
		respondBindError(c, "size must be at least 1", err)
		return
	}

	var snap book.Snapshot
	err := bc.driver.Do(c.Request.Context(), func(b *book.Book) {
		b.SetMaxPagesTurningCount(req.Size)
		snap = b.Snapshot()
	})
	if err != nil {
		respondDriverError(c, err, "set pool size")
		return
	}
	if bc.settings != nil {
		if err := bc.settings.SetInt(entities.SettingKeyBookPoolSize, req.Size); err != nil {
			log.Printf("Book: failed to persist pool size: %v", err)
		}
	}
	respondSuccess(c, "pool size updated", snap)
}

// SetSurface binds a page-independent surface.
// PUT /api/book/surfaces/:surface
func (bc *BookController) SetSurface(c *gin.Context) {
	surface, err := appearance.ParseSurface(c.Param("surface"))
	if err != nil {
		respondNotFound(c, "surface")
		return
	}
	var req struct {
		Appearance string `json:"appearance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "invalid request body", err)
		return
	}

	var setErr error
	err = bc.driver.Do(c.Request.Context(), func(b *book.Book) {
		setErr = b.SetSurfaceAppearance(surface, appearance.Handle(req.Appearance))
	})
	if err != nil {
		respondDriverError(c, err, "set surface")
		return
	}
	if errors.Is(setErr, book.ErrPageDrivenSurface) {
		respondBadRequest(c, setErr.Error())
		return
	}
	bc.persist(entities.SettingKeySurfacePrefix+surface.String(), req.Appearance)
	respondSuccess(c, "surface updated", gin.H{"surface": surface.String(), "appearance": req.Appearance})
}

func (bc *BookController) persistView(s book.Snapshot) {
	if s.IsChangingState {
		return
	}
	bc.persistPage(s.State, s.PageNumber)
}

func (bc *BookController) persistPage(state book.State, page int) {
	if bc.settings == nil {
		return
	}
	bc.persist(entities.SettingKeyBookState, state.String())
	if err := bc.settings.SetInt(entities.SettingKeyBookPage, page); err != nil {
		log.Printf("Book: failed to persist page: %v", err)
	}
}

func (bc *BookController) persist(key, value string) {
	if bc.settings == nil {
		return
	}
	if err := bc.settings.SetSetting(key, value); err != nil {
		log.Printf("Book: failed to persist %s: %v", key, err)
	}
}
