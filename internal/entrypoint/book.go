package entrypoint

import (
	"fmt"
	"log"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/config"
	"github.com/Seth7171/TaleWeaver-sub000/internal/database/pages"
	"github.com/Seth7171/TaleWeaver-sub000/internal/database/settings"
	"github.com/Seth7171/TaleWeaver-sub000/internal/driver"
	"github.com/Seth7171/TaleWeaver-sub000/internal/entities"
	"github.com/Seth7171/TaleWeaver-sub000/internal/headless"
)

// Engine is a book wired to its headless stage and driver.
type Engine struct {
	Book     *book.Book
	Stage    *headless.Stage
	Registry *appearance.Registry
	Driver   *driver.Driver
}

// NewEngine seeds the page store if it is empty and builds a stopped engine
// from the stored pages and the last persisted view.
func NewEngine(cfg *config.Config, pageRepo *pages.Repository, settingsRepo *settings.Repository) (*Engine, error) {
	if err := pageRepo.Seed(cfg.Book.SeedPages, "page"); err != nil {
		return nil, err
	}
	handles, err := pageRepo.Handles()
	if err != nil {
		return nil, fmt.Errorf("failed to load pages: %w", err)
	}

	bookCfg := cfg.BookConfig()
	if n := settingsRepo.GetInt(entities.SettingKeyBookPoolSize, 0); n > 0 {
		bookCfg.MaxPagesTurningCount = n
	}

	stage := headless.NewStage()
	registry := appearance.NewRegistry()
	opts := append([]book.Option{book.WithPages(handles)}, restoredView(settingsRepo, len(handles))...)
	b := book.New(bookCfg, registry, stage.States(), stage.LeafFactory(), opts...)
	restoreSurfaces(b, settingsRepo)

	log.Printf("Engine: %d pages, state %s, page %d, pool %d",
		b.LastPageNumber(), b.State(), b.CurrentPageNumber(), b.Pool().MaxTurning())

	return &Engine{
		Book:     b,
		Stage:    stage,
		Registry: registry,
		Driver: driver.New(b, stage, driver.Options{
			TickRate:  cfg.Book.TickRate,
			TimeScale: cfg.Book.TimeScale,
		}),
	}, nil
}

// restoredView turns the persisted view into book options. Unreadable
// values are skipped.
func restoredView(store *settings.Repository, lastPage int) []book.Option {
	var opts []book.Option

	if name := store.GetString(entities.SettingKeyBookState, ""); name != "" {
		if s, err := book.ParseState(name); err == nil {
			opts = append(opts, book.WithState(s))
		} else {
			log.Printf("Engine: ignoring stored state: %v", err)
		}
	}

	if page := store.GetInt(entities.SettingKeyBookPage, 1); page > 1 {
		opts = append(opts, book.WithPageNumber(min(page, max(lastPage, 1))))
	}

	if name := store.GetString(entities.SettingKeyBookStandinQuality, ""); name != "" {
		if q, err := book.ParseQuality(name); err == nil {
			opts = append(opts, book.WithStandinQuality(q))
		} else {
			log.Printf("Engine: ignoring stored quality: %v", err)
		}
	}
	return opts
}

func restoreSurfaces(b *book.Book, store *settings.Repository) {
	stored, err := store.WithPrefix(entities.SettingKeySurfacePrefix)
	if err != nil {
		log.Printf("Engine: failed to load surfaces: %v", err)
		return
	}
	for name, h := range stored {
		surface, err := appearance.ParseSurface(name)
		if err != nil {
			log.Printf("Engine: ignoring stored surface %q", name)
			continue
		}
		if err := b.SetSurfaceAppearance(surface, appearance.Handle(h)); err != nil {
			log.Printf("Engine: %v", err)
		}
	}
}

// PersistView stores the state, page, quality and pool size of a snapshot.
func PersistView(store *settings.Repository, s book.Snapshot) error {
	if err := store.SetSetting(entities.SettingKeyBookState, s.State.String()); err != nil {
		return err
	}
	page := s.PageNumber
	if s.Turn != nil {
		page = s.Turn.TargetPage
	}
	if err := store.SetInt(entities.SettingKeyBookPage, page); err != nil {
		return err
	}
	if err := store.SetSetting(entities.SettingKeyBookStandinQuality, s.StandinQuality); err != nil {
		return err
	}
	return store.SetInt(entities.SettingKeyBookPoolSize, s.PoolSize)
}
