package book

import (
	"fmt"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
)

// Pages returns a copy of the page list. Page n is at index n-1.
func (b *Book) Pages() []appearance.Handle {
	return append([]appearance.Handle(nil), b.pages...)
}

// PageData returns the appearance of page pageNumber.
func (b *Book) PageData(pageNumber int) (appearance.Handle, error) {
	if err := b.checkPage(pageNumber, len(b.pages)); err != nil {
		return "", err
	}
	return b.pages[pageNumber-1], nil
}

// AddPageData appends a page.
func (b *Book) AddPageData(h appearance.Handle) {
	b.pages = append(b.pages, h)
	b.refreshIfVisible(len(b.pages))
}

// InsertPageData inserts a page so that it becomes page pageNumber.
// pageNumber may be one past the last page.
func (b *Book) InsertPageData(pageNumber int, h appearance.Handle) error {
	if err := b.checkPage(pageNumber, len(b.pages)+1); err != nil {
		return err
	}
	i := pageNumber - 1
	b.pages = append(b.pages, "")
	copy(b.pages[i+1:], b.pages[i:])
	b.pages[i] = h
	b.refreshIfShifted(pageNumber)
	return nil
}

// RemovePageData removes page pageNumber. Later pages move down by one.
func (b *Book) RemovePageData(pageNumber int) error {
	if err := b.checkPage(pageNumber, len(b.pages)); err != nil {
		return err
	}
	b.pages = append(b.pages[:pageNumber-1], b.pages[pageNumber:]...)
	b.refreshIfShifted(pageNumber)
	return nil
}

// MovePageData moves page from so that it becomes page to.
func (b *Book) MovePageData(from, to int) error {
	if err := b.checkPage(from, len(b.pages)); err != nil {
		return err
	}
	if err := b.checkPage(to, len(b.pages)); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	h := b.pages[from-1]
	b.pages = append(b.pages[:from-1], b.pages[from:]...)
	b.pages = append(b.pages, "")
	copy(b.pages[to:], b.pages[to-1:])
	b.pages[to-1] = h
	b.refreshIfShifted(min(from, to))
	return nil
}

// SetPageData replaces the appearance of page pageNumber.
func (b *Book) SetPageData(pageNumber int, h appearance.Handle) error {
	if err := b.checkPage(pageNumber, len(b.pages)); err != nil {
		return err
	}
	b.pages[pageNumber-1] = h
	b.refreshIfVisible(pageNumber)
	return nil
}

func (b *Book) checkPage(pageNumber, upper int) error {
	if pageNumber < 1 || pageNumber > upper {
		b.logf("page %d is out of range 1 to %d", pageNumber, upper)
		return fmt.Errorf("%w: %d", ErrInvalidPageNumber, pageNumber)
	}
	return nil
}

// refreshIfVisible rebinds the open pages when pageNumber is one of them.
// Turns and drags own the page surfaces and rebind on commit.
func (b *Book) refreshIfVisible(pageNumber int) {
	if b.turn != nil || b.drag != nil {
		return
	}
	if sameGroup(pageNumber, b.currentPage) {
		b.setPageNumber(b.currentPage)
	}
}

// refreshIfShifted rebinds the open pages when an edit at pageNumber moved
// the pages that are visible.
func (b *Book) refreshIfShifted(pageNumber int) {
	if b.turn != nil || b.drag != nil {
		return
	}
	if pageNumber <= b.CurrentRightPageNumber() {
		b.setPageNumber(b.currentPage)
	}
}
