package book

import "errors"

var (
	// ErrInvalidPageNumber is returned when a page number falls outside the book.
	ErrInvalidPageNumber = errors.New("invalid page number")

	// ErrPageDrivenSurface is returned when a caller tries to bind the left or
	// right page surface directly; those follow the current page.
	ErrPageDrivenSurface = errors.New("surface is driven by the current page")
)
