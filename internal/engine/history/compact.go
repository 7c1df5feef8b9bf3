package history

import "math"

// CompactedTag marks the merged checkpoint produced by compaction; the
// individual operation descriptions are no longer separable.
const CompactedTag = "compacted"

// compactLocked folds a prefix of the log into a single checkpoint so the
// log shrinks to round(maxEntries * retainFraction) surviving entries plus
// the new checkpoint (must hold lock).
//
// The materialized collection at every surviving index is preserved: the
// new checkpoint is the collection at the last removed index, so replaying
// the surviving deltas yields identical results.
func (l *Log) compactLocked() error {
	keep := int(math.Round(float64(l.cfg.maxEntries) * l.cfg.retainFraction))
	if keep < 1 {
		keep = 1
	}

	removeCount := len(l.entries) - keep
	if removeCount <= 1 {
		// Folding one entry into one checkpoint gains nothing.
		return nil
	}

	col, err := materialize(l.entries, removeCount-1)
	if err != nil {
		return err
	}
	cp := NewCheckpointEntry(col, CompactedTag, col.IDs())

	merged := make([]Entry, 0, keep+1)
	merged = append(merged, cp)
	merged = append(merged, l.entries[removeCount:]...)
	l.entries = merged

	if l.cursor < removeCount-1 {
		// The cursor fell inside the compacted range. Clamp to the new
		// checkpoint rather than leave it out of range, and drop the
		// memoized collection since it no longer matches.
		l.cursor = 0
		l.cached = nil
	} else {
		l.cursor -= removeCount - 1
	}
	return nil
}
