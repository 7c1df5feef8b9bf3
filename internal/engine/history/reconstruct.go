package history

import "github.com/pzgaai/easel/internal/engine/element"

// materialize computes the full collection at target by scanning backward
// to the nearest checkpoint and replaying deltas forward.
//
// Cost is O(distance to the nearest checkpoint), which the checkpoint
// interval and compaction keep bounded. A missing checkpoint is an internal
// consistency violation (entry 0 is always a checkpoint) and surfaces as
// ErrCorruptLog rather than a silently empty collection.
func materialize(entries []Entry, target int) (element.Collection, error) {
	if target < 0 || target >= len(entries) {
		return nil, ErrCorruptLog
	}

	base := -1
	for i := target; i >= 0; i-- {
		if entries[i].Kind() == KindCheckpoint {
			base = i
			break
		}
	}
	if base < 0 {
		return nil, ErrCorruptLog
	}

	col := entries[base].(*CheckpointEntry).Collection.Clone()
	for i := base + 1; i <= target; i++ {
		d, ok := entries[i].(*DeltaEntry)
		if !ok {
			return nil, ErrCorruptLog
		}
		col = d.Deltas.Apply(col)
	}
	return col, nil
}
