// Package history provides the incremental undo/redo engine for the canvas.
//
// Every mutation to the element collection is recorded as an undoable step
// while memory stays bounded through periodic compaction. Key concepts:
//
// # Entries
//
// The log is a sequence of entries. A DeltaEntry holds the field-level
// difference between two consecutive collections; a CheckpointEntry holds a
// full, self-sufficient collection. Entry 0 is always a checkpoint, so
// reconstruction never has to look past the start of the log.
//
// # The log
//
// The Log owns the entry sequence, a cursor marking the current position,
// and a memoized copy of the collection at the cursor:
//
//	log := history.NewLog(history.WithMaxEntries(200))
//
//	log.Push(store.Snapshot(), "move element")
//
//	restored, err := log.Undo()
//	if err == nil {
//	    store.Restore(restored.Collection)
//	}
//
// Pushing an identical snapshot is a no-op, and pushing after an undo
// discards the redo tail.
//
// # Reconstruction
//
// Undo and redo materialize the collection at the target index by scanning
// backward to the nearest checkpoint and replaying deltas forward. The
// checkpoint interval bounds how far that replay can reach.
//
// # Compaction
//
// When the log grows past maxEntries + compactionThreshold, a prefix is
// folded into a single checkpoint so that every surviving index still
// materializes to the identical collection.
//
// # Batches
//
// Multiple edits between BeginBatch and EndBatch collapse into one history
// entry holding their net effect:
//
//	log.BeginBatch()
//	// ... many rapid pushes ...
//	log.EndBatch() // one undoable step
//
// Batches nest; only the outermost EndBatch commits. Compaction never runs
// while a batch is open.
package history
