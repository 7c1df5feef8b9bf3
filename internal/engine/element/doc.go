// Package element defines the canvas entity model shared by the engine.
//
// An Element is an opaque attribute record with a stable unique ID. Beyond
// the ID, the engine makes no assumptions about an element's shape: shapes,
// text, images, and groups are all maps of named attributes. Key concepts:
//
// # Elements
//
// Elements are value types holding an ID and an attribute map. Attribute
// values may be nested maps and slices. Clone produces a deep copy so that
// holders of a snapshot never alias live editor state.
//
// # Collections
//
// A Collection is an ordered, ID-unique sequence of elements. Order is
// display order (z-order) and is itself meaningful state. Collections are
// kept sorted by the zIndex attribute; InsertOrdered places a new element
// at the position implied by its own zIndex.
//
// # Structural equality
//
// ValueEqual compares attribute values structurally rather than by
// serializing them. Numeric kinds compare by value, so a document that was
// round-tripped through JSON (where every number becomes float64) does not
// produce spurious diffs against in-memory state.
//
// # Colors
//
// Fill and stroke attributes are normalized to canonical lowercase
// #rrggbb form so that visually identical colors compare equal.
package element
