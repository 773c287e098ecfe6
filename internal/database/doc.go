// Package database provides the data access layer for the book service.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── pages/           # Ordered page list of the book
//	└── settings/        # Key/value settings (restored book view)
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./book.db")
//
//	pagesRepo := pages.NewRepository(db.DB)
//	settingsRepo := settings.NewRepository(db.DB)
//
//	handles, err := pagesRepo.Handles()
//
// # Interface Implementations
//
//   - pages.Repository: implements http.PageStore
//   - settings.Repository: implements http.SettingStore
package database
