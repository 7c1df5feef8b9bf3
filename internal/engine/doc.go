// Package engine provides the core canvas editor engine for Easel.
//
// The engine package serves as the main facade, combining element storage,
// incremental history (undo/redo), and snap geometry into a unified,
// thread-safe API suitable for building vector canvas editors.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - element: canvas elements as open attribute maps, plus collections
//   - store: the mutable canvas state, ordered by zIndex
//   - history: delta-based history log with checkpoints and compaction
//   - geometry: bounding boxes and snap-to-guide math
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing writes.
//
// # Basic Usage
//
// Create an engine and perform basic edits:
//
//	e := engine.New()
//
//	// Add a rectangle
//	rect, _ := e.AddElement(element.NewRect(10, 10, 100, 50))
//
//	// Move it (snaps against sibling edges and centers)
//	e.MoveElement(rect.ID, 200, 80)
//
//	// Undo the move
//	e.Undo()
//
// # Undo/Redo
//
// Every mutating operation commits the resulting canvas state to the
// history log. Undo and redo walk entries one at a time and report which
// elements changed:
//
//	r, err := e.Undo()
//	if err == nil {
//	    refresh(r.ChangedIDs)
//	}
//
// Group multiple operations into a single history entry:
//
//	e.BeginBatch()
//	e.MoveElement(a.ID, 0, 0)
//	e.MoveElement(b.ID, 50, 0)
//	e.EndBatch()
//
//	e.Undo() // both moves revert at once
//
// # Configuration
//
// Configure the engine at creation time:
//
//	e := engine.New(
//	    engine.WithSnapTolerance(8),
//	    engine.WithRotationStep(15),
//	    engine.WithHistoryOptions(history.WithMaxEntries(500)),
//	)
//
// # Error Handling
//
// The package re-exports the sentinel errors of its sub-packages:
//
//   - ErrElementNotFound: referenced element does not exist
//   - ErrDuplicateID: an element with that ID already exists
//   - ErrNothingToUndo: cursor is at the oldest state
//   - ErrNothingToRedo: cursor is at the newest state
//   - ErrInvalidElement: a snapshot contained a malformed element
//   - ErrCorruptLog: the history log lost its base checkpoint
package engine
