// Package book implements the page-turn state machine of a virtual book.
//
// A Book owns the open/close state, the page pointer and the ordered list of
// page appearances. It animates jumps of any distance by recycling a small
// pool of turning leaves (see package leaf), spacing their starts so that
// no more than the configured number of leaves are ever in flight, and
// keeps the two visible page surfaces bound to the right appearances at
// every step.
//
// # States
//
// The book has five states, ordered front to back:
//
//	ClosedFront -> OpenFront -> OpenMiddle -> OpenBack -> ClosedBack
//
// Any state can change to any other. Pages can only be turned or dragged in
// OpenMiddle; TurnToPage opens the book first when needed.
//
// # Threading
//
// A Book is not safe for concurrent use. Tick, every method, and every
// completion handed to an animator must run on one goroutine. Package
// driver provides a loop that serializes calls from other goroutines.
//
// # Usage
//
//	b := book.New(book.DefaultConfig(), registry, stage.States(), stage.LeafFactory(),
//		book.WithPages(pages),
//		book.WithState(book.OpenMiddle),
//	)
//
//	_ = b.TurnToPage(14, timing.TimePerPage, time.Second, time.Second, book.TurnCallbacks{
//		OnCompleted: func(from, to book.State, page int) {
//			log.Printf("now on page %d", page)
//		},
//	})
//
//	for range ticker.C {
//		b.Tick(book.Frame{Delta: dt, UnscaledDelta: dt})
//	}
package book
