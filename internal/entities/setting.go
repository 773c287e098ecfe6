package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Book view restored on start
	SettingKeyBookState          = "book_state"
	SettingKeyBookPage           = "book_page"
	SettingKeyBookStandinQuality = "book_standin_quality"
	SettingKeyBookPoolSize       = "book_pool_size"

	// Page-independent surfaces, suffixed with the surface name
	SettingKeySurfacePrefix = "surface_"
)
