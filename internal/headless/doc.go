// Package headless provides animators that run without a renderer.
//
// Leaves move a pose value between 0 and 1 at a constant rate and the state
// animator simply waits out each transition. They are used by the HTTP
// service, the simulate command and the tests to drive a book.Book in real
// or simulated time.
//
// # Usage
//
//	stage := headless.NewStage()
//	b := book.New(cfg, registry, stage.States(), stage.LeafFactory())
//
//	frame := book.Frame{Delta: 16 * time.Millisecond, UnscaledDelta: 16 * time.Millisecond}
//	b.Tick(frame)
//	stage.Advance(b.Delta(frame))
package headless
