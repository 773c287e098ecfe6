package config

const (
	// DefaultDatabasePath is the default path for the page database
	DefaultDatabasePath = "./book.db"

	// DefaultFillerAppearance is shown on pages that have no appearance
	DefaultFillerAppearance = "filler"
)
