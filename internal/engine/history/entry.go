package history

import (
	"sort"
	"time"

	"github.com/pzgaai/easel/internal/engine/element"
)

// FieldChange records one attribute's old and new value within an element.
type FieldChange struct {
	// Old is the value before the change (nil when the field was added).
	Old any

	// New is the value after the change (meaningless when Removed).
	New any

	// Removed marks the attribute as deleted rather than set to New.
	Removed bool
}

// ElementDelta describes how a single element changed between two
// consecutive collections. Exactly one of Added, Removed, or Fields is set.
type ElementDelta struct {
	// Added holds the full element when it was added wholesale.
	Added *element.Element

	// Removed marks the element as removed wholesale.
	Removed bool

	// Fields holds per-attribute changes when the element changed in place.
	Fields map[string]FieldChange
}

// DeltaSet maps element ID to its change. It is the minimal information
// needed to go from a "before" collection to an "after" collection for
// exactly the elements that changed.
type DeltaSet map[string]ElementDelta

// IsEmpty reports whether no element changed.
func (ds DeltaSet) IsEmpty() bool {
	return len(ds) == 0
}

// ChangedIDs returns the IDs of all changed elements, sorted.
func (ds DeltaSet) ChangedIDs() []string {
	ids := make([]string, 0, len(ds))
	for id := range ds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (ds DeltaSet) estimateBytes() int {
	n := 48
	for id, d := range ds {
		n += len(id) + 32
		if d.Added != nil {
			n += d.Added.EstimateBytes()
		}
		for key := range d.Fields {
			n += len(key) + 64
		}
	}
	return n
}

// EntryKind discriminates the two log entry types.
type EntryKind uint8

const (
	// KindDelta is a field-level difference entry.
	KindDelta EntryKind = iota

	// KindCheckpoint is a full-collection entry.
	KindCheckpoint
)

// String returns the kind name.
func (k EntryKind) String() string {
	switch k {
	case KindDelta:
		return "delta"
	case KindCheckpoint:
		return "checkpoint"
	default:
		return "unknown"
	}
}

// Entry is one step in the history log: either a delta or a checkpoint.
type Entry interface {
	// Kind identifies the entry type.
	Kind() EntryKind

	// Tag is the caller-supplied operation description.
	Tag() string

	// Time is when the entry was recorded.
	Time() time.Time

	// ChangedIDs lists the elements this entry touched.
	ChangedIDs() []string

	estimateBytes() int
}

// DeltaEntry records the minimal difference between two consecutive
// collections.
type DeltaEntry struct {
	Deltas DeltaSet

	tag string
	at  time.Time
}

// NewDeltaEntry creates a delta entry from a computed delta set.
func NewDeltaEntry(deltas DeltaSet, tag string) *DeltaEntry {
	return &DeltaEntry{Deltas: deltas, tag: tag, at: time.Now()}
}

// Kind implements Entry.
func (e *DeltaEntry) Kind() EntryKind { return KindDelta }

// Tag implements Entry.
func (e *DeltaEntry) Tag() string { return e.tag }

// Time implements Entry.
func (e *DeltaEntry) Time() time.Time { return e.at }

// ChangedIDs implements Entry.
func (e *DeltaEntry) ChangedIDs() []string { return e.Deltas.ChangedIDs() }

func (e *DeltaEntry) estimateBytes() int { return len(e.tag) + 48 + e.Deltas.estimateBytes() }

// CheckpointEntry holds a full, independently materializable collection.
// Reconstruction never needs to look earlier than the nearest checkpoint.
type CheckpointEntry struct {
	Collection element.Collection

	tag     string
	at      time.Time
	changed []string
}

// NewCheckpointEntry creates a checkpoint over the given collection.
// The collection is stored as-is; callers pass an owned deep copy.
func NewCheckpointEntry(c element.Collection, tag string, changed []string) *CheckpointEntry {
	return &CheckpointEntry{Collection: c, tag: tag, at: time.Now(), changed: changed}
}

// Kind implements Entry.
func (e *CheckpointEntry) Kind() EntryKind { return KindCheckpoint }

// Tag implements Entry.
func (e *CheckpointEntry) Tag() string { return e.tag }

// Time implements Entry.
func (e *CheckpointEntry) Time() time.Time { return e.at }

// ChangedIDs implements Entry.
func (e *CheckpointEntry) ChangedIDs() []string { return e.changed }

func (e *CheckpointEntry) estimateBytes() int {
	return len(e.tag) + 48 + e.Collection.EstimateBytes()
}

// EntryInfo provides read-only information about a log entry.
// Used for displaying history to users.
type EntryInfo struct {
	Kind       EntryKind
	Tag        string
	Time       time.Time
	ChangedIDs []string
}
