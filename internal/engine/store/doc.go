// Package store provides the element store: the live, ordered collection
// of canvas elements that the editing session mutates.
//
// The store is the source of history snapshots and the sink of restored
// state: Snapshot deep-copies the current collection for the history log,
// and Restore replaces the store's state with a materialized collection
// after undo or redo. Elements inside the store never alias anything a
// caller holds.
//
// Elements are kept sorted by zIndex; Add assigns a fresh UUID when the
// element has none and places it on top of the stack.
package store
