package history

import (
	"fmt"
	"sync"

	"github.com/pzgaai/easel/internal/engine/element"
)

// Restored is the result of an undo or redo: the materialized collection
// plus the metadata of the entry that was traversed.
type Restored struct {
	// Collection is the full collection at the new cursor position.
	Collection element.Collection

	// ChangedIDs lists the elements touched by the traversed entry.
	ChangedIDs []string

	// Tag is the traversed entry's operation description.
	Tag string
}

// Stats summarizes the log's current shape.
type Stats struct {
	// Entries is the total log length.
	Entries int

	// Deltas and Checkpoints partition Entries by kind.
	Deltas      int
	Checkpoints int

	// EstimatedBytes is a rough in-memory size of the log.
	EstimatedBytes int

	// Cursor is the current position (-1 means no state yet).
	Cursor int
}

// pendingPush is the edit accumulated while a batch is open. Only the
// latest snapshot is kept; the net diff is computed when the batch commits.
type pendingPush struct {
	snapshot element.Collection
	tag      string
}

// Log records every mutation to the element collection as an undoable step.
//
// The log is owned by a single editing session; operations run to
// completion synchronously. The mutex guards against accidental concurrent
// use, not a concurrent design.
type Log struct {
	mu sync.Mutex

	entries []Entry
	cursor  int

	// cached is the memoized collection at cursor. nil forces
	// recomputation via materialize.
	cached element.Collection

	// Batch state
	batchDepth int
	pending    *pendingPush

	cfg config
}

// NewLog creates an empty history log.
func NewLog(opts ...Option) *Log {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Log{cursor: -1, cfg: cfg}
}

// Push records a new snapshot of the element collection.
//
// The snapshot is diffed against the collection at the cursor; an empty
// diff is a no-op (no entry, no cursor change). Pushing while undone into
// history truncates the redo tail first. While a batch is open the push is
// stashed instead of appended, overwriting any earlier pending edit, so only
// the net effect between batch start and batch end is preserved.
func (l *Log) Push(snapshot element.Collection, tag string) error {
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidElement, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.batchDepth > 0 {
		l.pending = &pendingPush{snapshot: snapshot.Clone(), tag: tag}
		return nil
	}

	return l.commitLocked(snapshot, tag)
}

// commitLocked appends the snapshot as a new entry (must hold lock).
func (l *Log) commitLocked(snapshot element.Collection, tag string) error {
	// The very first entry is always a checkpoint.
	if len(l.entries) == 0 {
		cp := NewCheckpointEntry(snapshot.Clone(), tag, snapshot.IDs())
		l.entries = append(l.entries, cp)
		l.cursor = 0
		l.cached = snapshot.Clone()
		return nil
	}

	cur, err := l.currentLocked()
	if err != nil {
		return err
	}

	ds := Diff(cur, snapshot)
	if ds.IsEmpty() {
		return nil
	}

	// A new edit invalidates redo history.
	if l.cursor < len(l.entries)-1 {
		l.entries = l.entries[:l.cursor+1]
	}

	var e Entry
	if l.cfg.checkpointInterval > 0 && l.deltaRunLocked() >= l.cfg.checkpointInterval {
		e = NewCheckpointEntry(snapshot.Clone(), tag, ds.ChangedIDs())
	} else {
		e = NewDeltaEntry(ds, tag)
	}

	l.entries = append(l.entries, e)
	l.cursor++
	l.cached = snapshot.Clone()

	if len(l.entries) > l.cfg.maxEntries+l.cfg.compactionThreshold {
		return l.compactLocked()
	}
	return nil
}

// deltaRunLocked returns the number of consecutive deltas ending at the
// cursor (must hold lock).
func (l *Log) deltaRunLocked() int {
	run := 0
	for i := l.cursor; i >= 0 && l.entries[i].Kind() == KindDelta; i-- {
		run++
	}
	return run
}

// currentLocked returns the collection at the cursor, materializing it if
// the memoized copy is absent (must hold lock).
func (l *Log) currentLocked() (element.Collection, error) {
	if l.cursor < 0 {
		return nil, nil
	}
	if l.cached != nil {
		return l.cached, nil
	}
	col, err := materialize(l.entries, l.cursor)
	if err != nil {
		return nil, err
	}
	l.cached = col
	return col, nil
}

// Undo steps the cursor back one entry and returns the restored collection
// along with the undone entry's changed IDs and tag.
// Returns ErrNothingToUndo at the start of the log.
func (l *Log) Undo() (*Restored, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor <= 0 {
		return nil, ErrNothingToUndo
	}

	undone := l.entries[l.cursor]
	col, err := materialize(l.entries, l.cursor-1)
	if err != nil {
		return nil, err
	}

	l.cursor--
	l.cached = col

	return &Restored{
		Collection: col.Clone(),
		ChangedIDs: undone.ChangedIDs(),
		Tag:        undone.Tag(),
	}, nil
}

// Redo steps the cursor forward one entry and returns the restored
// collection along with the redone entry's changed IDs and tag.
// Returns ErrNothingToRedo at the end of the log.
func (l *Log) Redo() (*Restored, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor >= len(l.entries)-1 {
		return nil, ErrNothingToRedo
	}

	redone := l.entries[l.cursor+1]
	col, err := materialize(l.entries, l.cursor+1)
	if err != nil {
		return nil, err
	}

	l.cursor++
	l.cached = col

	return &Restored{
		Collection: col.Clone(),
		ChangedIDs: redone.ChangedIDs(),
		Tag:        redone.Tag(),
	}, nil
}

// Current returns a copy of the collection at the cursor.
// An empty log yields a nil collection and no error.
func (l *Log) Current() (element.Collection, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	col, err := l.currentLocked()
	if err != nil {
		return nil, err
	}
	return col.Clone(), nil
}

// CanUndo returns true if undo is available.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor > 0
}

// CanRedo returns true if redo is available.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries) > 0 && l.cursor < len(l.entries)-1
}

// Len returns the number of log entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Cursor returns the current log position (-1 means no state yet).
func (l *Log) Cursor() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

// Clear resets the log to empty and drops any pending batch edit.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	l.cursor = -1
	l.cached = nil
	l.batchDepth = 0
	l.pending = nil
}

// Entries returns read-only info about every log entry, oldest first.
func (l *Log) Entries() []EntryInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	infos := make([]EntryInfo, len(l.entries))
	for i, e := range l.entries {
		infos[i] = EntryInfo{
			Kind:       e.Kind(),
			Tag:        e.Tag(),
			Time:       e.Time(),
			ChangedIDs: e.ChangedIDs(),
		}
	}
	return infos
}

// Stats returns a summary of the log's current shape.
func (l *Log) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Stats{
		Entries: len(l.entries),
		Cursor:  l.cursor,
	}
	for _, e := range l.entries {
		switch e.Kind() {
		case KindDelta:
			s.Deltas++
		case KindCheckpoint:
			s.Checkpoints++
		}
		s.EstimatedBytes += e.estimateBytes()
	}
	if l.cached != nil {
		s.EstimatedBytes += l.cached.EstimateBytes()
	}
	return s
}
