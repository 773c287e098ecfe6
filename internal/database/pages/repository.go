// Package pages provides database operations for the ordered page list.
//
// Pages are stored with a 1-based position. Every edit keeps the positions
// contiguous, so the position of a record is its page number.
//
// # Usage
//
//	repo := pages.NewRepository(db)
//	if err := repo.Seed(20, "page"); err != nil {
//		return err
//	}
//	handles, err := repo.Handles()
package pages

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/entities"
)

var (
	ErrPageNotFound    = errors.New("page not found")
	ErrInvalidPosition = errors.New("invalid page position")
)

// Repository handles all page database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new pages repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every page in order.
func (r *Repository) List() ([]entities.PageRecord, error) {
	var records []entities.PageRecord
	err := r.db.Order("position ASC").Find(&records).Error
	return records, err
}

// Handles returns the appearance of every page in order.
func (r *Repository) Handles() ([]appearance.Handle, error) {
	records, err := r.List()
	if err != nil {
		return nil, err
	}
	handles := make([]appearance.Handle, len(records))
	for i, rec := range records {
		handles[i] = appearance.Handle(rec.Appearance)
	}
	return handles, nil
}

// Count returns the number of pages.
func (r *Repository) Count() (int, error) {
	var count int64
	err := r.db.Model(&entities.PageRecord{}).Count(&count).Error
	return int(count), err
}

// Get returns the page at position.
func (r *Repository) Get(position int) (*entities.PageRecord, error) {
	var rec entities.PageRecord
	err := r.db.Where("position = ?", position).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrPageNotFound, position)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Append adds a page after the last one.
func (r *Repository) Append(h appearance.Handle) (*entities.PageRecord, error) {
	var rec *entities.PageRecord
	err := r.db.Transaction(func(tx *gorm.DB) error {
		count, err := countPages(tx)
		if err != nil {
			return err
		}
		rec = &entities.PageRecord{Position: count + 1, Appearance: string(h)}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append page: %w", err)
	}
	return rec, nil
}

// Insert adds a page so that it becomes page position. position may be one
// past the last page.
func (r *Repository) Insert(position int, h appearance.Handle) (*entities.PageRecord, error) {
	var rec *entities.PageRecord
	err := r.db.Transaction(func(tx *gorm.DB) error {
		count, err := countPages(tx)
		if err != nil {
			return err
		}
		if position < 1 || position > count+1 {
			return fmt.Errorf("%w: %d", ErrInvalidPosition, position)
		}
		if err := shift(tx, position, count, 1); err != nil {
			return err
		}
		rec = &entities.PageRecord{Position: position, Appearance: string(h)}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert page: %w", err)
	}
	return rec, nil
}

// Remove deletes the page at position. Later pages move down by one.
func (r *Repository) Remove(position int) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("position = ?", position).Delete(&entities.PageRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %d", ErrPageNotFound, position)
		}
		count, err := countPages(tx)
		if err != nil {
			return err
		}
		return shift(tx, position+1, count+1, -1)
	})
	if err != nil {
		return fmt.Errorf("failed to remove page: %w", err)
	}
	return nil
}

// Move moves the page at from so that it becomes page to.
func (r *Repository) Move(from, to int) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var rec entities.PageRecord
		if err := tx.Where("position = ?", from).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrPageNotFound, from)
			}
			return err
		}
		count, err := countPages(tx)
		if err != nil {
			return err
		}
		if to < 1 || to > count {
			return fmt.Errorf("%w: %d", ErrInvalidPosition, to)
		}

		switch {
		case from < to:
			err = shift(tx, from+1, to, -1)
		case from > to:
			err = shift(tx, to, from-1, 1)
		default:
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&rec).Update("position", to).Error
	})
	if err != nil {
		return fmt.Errorf("failed to move page: %w", err)
	}
	return nil
}

// Set replaces the appearance of the page at position.
func (r *Repository) Set(position int, h appearance.Handle) error {
	res := r.db.Model(&entities.PageRecord{}).
		Where("position = ?", position).
		Update("appearance", string(h))
	if res.Error != nil {
		return fmt.Errorf("failed to update page: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrPageNotFound, position)
	}
	return nil
}

// Seed fills an empty book with n pages named "<prefix>-<number>". A book
// that already has pages is left alone.
func (r *Repository) Seed(n int, prefix string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		count, err := countPages(tx)
		if err != nil {
			return err
		}
		if count > 0 || n <= 0 {
			return nil
		}
		records := make([]entities.PageRecord, n)
		for i := range records {
			records[i] = entities.PageRecord{
				Position:   i + 1,
				Appearance: fmt.Sprintf("%s-%d", prefix, i+1),
			}
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to seed pages: %w", err)
		}
		return nil
	})
}

func countPages(tx *gorm.DB) (int, error) {
	var count int64
	err := tx.Model(&entities.PageRecord{}).Count(&count).Error
	return int(count), err
}

// shift moves every page with a position in [lo, hi] by delta.
func shift(tx *gorm.DB, lo, hi, delta int) error {
	if lo > hi {
		return nil
	}
	return tx.Model(&entities.PageRecord{}).
		Where("position >= ? AND position <= ?", lo, hi).
		Update("position", gorm.Expr("position + ?", delta)).Error
}
