package http

import (
	"context"
	"time"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/entities"
	"github.com/Seth7171/TaleWeaver-sub000/internal/scheduler"
)

// This file consolidates the interfaces used by HTTP controllers.
// Each controller depends only on what it calls.

// BookDriver runs commands against the book on its tick goroutine.
type BookDriver interface {
	Do(ctx context.Context, fn func(*book.Book)) error
	Snapshot(ctx context.Context) (book.Snapshot, error)
	IsRunning() bool
}

// PageStore persists the ordered page list.
type PageStore interface {
	List() ([]entities.PageRecord, error)
	Append(h appearance.Handle) (*entities.PageRecord, error)
	Insert(position int, h appearance.Handle) (*entities.PageRecord, error)
	Remove(position int) error
	Move(from, to int) error
	Set(position int, h appearance.Handle) error
}

// SettingStore persists the book view between runs.
type SettingStore interface {
	SetSetting(key, value string) error
	SetInt(key string, value int) error
}

// Autoplay exposes the autoplay scheduler.
type Autoplay interface {
	IsRunning() bool
	GetNextRunTime() *time.Time
	LastRun() (time.Time, scheduler.Outcome)
	RunOnce(ctx context.Context) (scheduler.Outcome, error)
}
