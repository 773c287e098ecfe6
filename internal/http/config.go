package http

import (
	"time"

	"github.com/Seth7171/TaleWeaver-sub000/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Driver   BookDriver
	Pages    PageStore
	Settings SettingStore
	Database *database.Database

	// Optional; the autoplay endpoints are only registered when set.
	Autoplay Autoplay

	// Defaults used when a request leaves the timing out
	TurnTime time.Duration
	OpenTime time.Duration

	// Application info
	Version string
}
