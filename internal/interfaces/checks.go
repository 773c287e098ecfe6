package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/database/pages"
	"github.com/Seth7171/TaleWeaver-sub000/internal/database/settings"
	"github.com/Seth7171/TaleWeaver-sub000/internal/driver"
	"github.com/Seth7171/TaleWeaver-sub000/internal/headless"
	"github.com/Seth7171/TaleWeaver-sub000/internal/http"
	"github.com/Seth7171/TaleWeaver-sub000/internal/leaf"
	"github.com/Seth7171/TaleWeaver-sub000/internal/scheduler"
)

// =============================================================================
// Renderer Side
// =============================================================================

// Binder implementations
var _ appearance.Binder = (*appearance.Registry)(nil)

// Leaf animator implementations
var _ leaf.Animator = (*headless.Leaf)(nil)

// State animator implementations
var _ book.StateAnimator = (*headless.StateAnimator)(nil)

// =============================================================================
// Engine Access
// =============================================================================

// BookRunner implementations
var _ scheduler.BookRunner = (*driver.Driver)(nil)
var _ http.BookDriver = (*driver.Driver)(nil)
var _ http.EngineStatus = (*driver.Driver)(nil)

// Autoplay implementations
var _ http.Autoplay = (*scheduler.AutoplayScheduler)(nil)

// =============================================================================
// Data Access Layer
// =============================================================================

// PageStore implementations
var _ http.PageStore = (*pages.Repository)(nil)

// SettingStore implementations
var _ http.SettingStore = (*settings.Repository)(nil)
var _ scheduler.ViewStore = (*settings.Repository)(nil)
