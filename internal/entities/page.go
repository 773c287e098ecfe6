package entities

import (
	"time"
)

// PageRecord is one page of the book. Positions are 1-based and contiguous.
type PageRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Position   int       `gorm:"index;not null" json:"position"`
	Appearance string    `gorm:"size:255" json:"appearance"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (PageRecord) TableName() string {
	return "pages"
}
