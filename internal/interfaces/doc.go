// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Renderer Interfaces
//
//   - appearance.Binder: pushes a handle to everything drawing a surface (internal/appearance)
//   - leaf.Animator: one turning leaf of the pool (internal/leaf)
//   - book.StateAnimator: the open/close animation and its standins (internal/book)
//
// The headless package implements all three without drawing anything. It
// is what the server, the simulate command and the tests run against.
//
// ## Engine Access Interfaces
//
//   - scheduler.BookRunner: runs a function on the book's goroutine (internal/scheduler)
//   - http.BookDriver: the same, plus snapshots, for HTTP controllers (internal/http)
//
// ## Data Access Interfaces
//
//   - http.PageStore: the ordered page list (internal/database/pages)
//   - http.SettingStore: the persisted book view (internal/database/settings)
//
// # Adding a Renderer
//
// A renderer supplies the three renderer interfaces and ticks its own
// animations from the same loop that calls Book.Tick:
//
//	type SpriteLeaf struct{ /* ... */ }
//
//	func (l *SpriteLeaf) Play(dir leaf.Direction, d time.Duration, front, back appearance.Handle, done func())
//	func (l *SpriteLeaf) SetProgress(normalized float64)
//	func (l *SpriteLeaf) PlayRemainder(speed float64, reverse bool)
//	func (l *SpriteLeaf) Deactivate()
//
//	var _ leaf.Animator = (*SpriteLeaf)(nil)
//
// done must be called exactly once per Play and never after Deactivate.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the checks in this repository.
package interfaces
