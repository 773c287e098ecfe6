// Package settings provides database operations for persisted book settings.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	page := repo.GetInt(entities.SettingKeyBookPage, 1)
//	err := repo.SetSetting(entities.SettingKeyBookState, "OpenMiddle")
package settings

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Seth7171/TaleWeaver-sub000/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting by key.
func (r *Repository) GetSetting(key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// GetString returns the value of key, or fallback when it is not set.
func (r *Repository) GetString(key, fallback string) string {
	setting, err := r.GetSetting(key)
	if err != nil {
		return fallback
	}
	return setting.Value
}

// GetInt returns the integer value of key, or fallback when it is not set
// or not a number.
func (r *Repository) GetInt(key string, fallback int) int {
	n, err := strconv.Atoi(r.GetString(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

// SetSetting creates or updates a setting.
func (r *Repository) SetSetting(key, value string) error {
	var setting entities.Setting
	result := r.db.Where("key = ?", key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = entities.Setting{
			Key:   key,
			Value: value,
		}
		return r.db.Create(&setting).Error
	} else if result.Error != nil {
		return result.Error
	}

	setting.Value = value
	return r.db.Save(&setting).Error
}

// SetInt stores an integer setting.
func (r *Repository) SetInt(key string, value int) error {
	return r.SetSetting(key, strconv.Itoa(value))
}

// WithPrefix returns every setting whose key starts with prefix, keyed by
// the rest of the key.
func (r *Repository) WithPrefix(prefix string) (map[string]string, error) {
	var rows []entities.Setting
	// substr instead of LIKE: '_' in a prefix is a LIKE wildcard.
	if err := r.db.Where("substr(key, 1, ?) = ?", len(prefix), prefix).Order("key").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[strings.TrimPrefix(s.Key, prefix)] = s.Value
	}
	return out, nil
}

// DeleteSetting removes a setting by key.
func (r *Repository) DeleteSetting(key string) error {
	return r.db.Where("key = ?", key).Delete(&entities.Setting{}).Error
}
