package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/database/pages"
	"github.com/Seth7171/TaleWeaver-sub000/internal/entities"
)

// PagesController edits the page list. An edit is written to the store and
// applied to the running book in the same engine command, and is refused
// while leaves are in flight so a jump never lands past the last page.
type PagesController struct {
	store  PageStore
	driver BookDriver
}

func NewPagesController(store PageStore, driver BookDriver) *PagesController {
	return &PagesController{store: store, driver: driver}
}

// respondStoreError maps page store errors.
func respondStoreError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, pages.ErrPageNotFound):
		respondNotFound(c, "page")
	case errors.Is(err, pages.ErrInvalidPosition):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidPage})
	default:
		respondInternalError(c, err, context)
	}
}

// apply writes an edit to the store and then to the book. Nothing is stored
// while pages are turning or being dragged. A book error after a successful
// store write means the two have diverged and is reported as such.
func (pc *PagesController) apply(c *gin.Context, context string, store func() error, edit func(*book.Book) error) bool {
	var (
		leavesMoving bool
		storeErr     error
		editErr      error
	)
	err := pc.driver.Do(c.Request.Context(), func(b *book.Book) {
		if b.IsTurningPages() || b.IsDraggingPage() {
			leavesMoving = true
			return
		}
		if storeErr = store(); storeErr != nil {
			return
		}
		editErr = edit(b)
	})
	switch {
	case err != nil:
		respondDriverError(c, err, context)
	case leavesMoving:
		respondConflict(c, CodeBusy, "pages cannot be edited while leaves are turning")
	case storeErr != nil:
		respondStoreError(c, storeErr, context)
	case editErr != nil:
		log.Printf("Pages: %s stored but not applied: %v", context, editErr)
		respondInternalError(c, fmt.Errorf("book rejected stored edit: %w", editErr), context)
	default:
		return true
	}
	return false
}

// GetAllPages returns the page list.
// GET /api/pages
func (pc *PagesController) GetAllPages(c *gin.Context) {
	records, err := pc.store.List()
	if err != nil {
		respondInternalError(c, err, "list pages")
		return
	}
	c.JSON(http.StatusOK, records)
}

type pageRequest struct {
	Appearance string `json:"appearance" binding:"required"`
}

// AddPage appends a page.
// POST /api/pages
func (pc *PagesController) AddPage(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "appearance is required", err)
		return
	}
	h := appearance.Handle(req.Appearance)

	var rec *entities.PageRecord
	if !pc.apply(c, "add page", func() (err error) {
		rec, err = pc.store.Append(h)
		return err
	}, func(b *book.Book) error {
		b.AddPageData(h)
		return nil
	}) {
		return
	}
	respondCreated(c, rec)
}

// InsertPage inserts a page so that it becomes page position.
// POST /api/pages/insert
func (pc *PagesController) InsertPage(c *gin.Context) {
	var req struct {
		Position   int    `json:"position" binding:"required"`
		Appearance string `json:"appearance" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "position and appearance are required", err)
		return
	}
	h := appearance.Handle(req.Appearance)

	var rec *entities.PageRecord
	if !pc.apply(c, "insert page", func() (err error) {
		rec, err = pc.store.Insert(req.Position, h)
		return err
	}, func(b *book.Book) error {
		return b.InsertPageData(req.Position, h)
	}) {
		return
	}
	respondCreated(c, rec)
}

// UpdatePage replaces the appearance of a page.
// PUT /api/pages/:number
func (pc *PagesController) UpdatePage(c *gin.Context) {
	number, ok := parsePageParam(c, "number")
	if !ok {
		return
	}
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "appearance is required", err)
		return
	}
	h := appearance.Handle(req.Appearance)

	if !pc.apply(c, "update page", func() error {
		return pc.store.Set(number, h)
	}, func(b *book.Book) error {
		return b.SetPageData(number, h)
	}) {
		return
	}
	respondSuccess(c, "page updated", gin.H{"position": number, "appearance": req.Appearance})
}

// DeletePage removes a page.
// DELETE /api/pages/:number
func (pc *PagesController) DeletePage(c *gin.Context) {
	number, ok := parsePageParam(c, "number")
	if !ok {
		return
	}

	if !pc.apply(c, "delete page", func() error {
		return pc.store.Remove(number)
	}, func(b *book.Book) error {
		return b.RemovePageData(number)
	}) {
		return
	}
	respondSuccess(c, "page deleted", nil)
}

// MovePage moves a page to a new position.
// POST /api/pages/move
func (pc *PagesController) MovePage(c *gin.Context) {
	var req struct {
		From int `json:"from" binding:"required"`
		To   int `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "from and to are required", err)
		return
	}

	if !pc.apply(c, "move page", func() error {
		return pc.store.Move(req.From, req.To)
	}, func(b *book.Book) error {
		return b.MovePageData(req.From, req.To)
	}) {
		return
	}
	respondSuccess(c, "page moved", gin.H{"from": req.From, "to": req.To})
}
