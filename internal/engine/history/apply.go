package history

import (
	deep "github.com/brunoga/deep"

	"github.com/pzgaai/easel/internal/engine/element"
)

// Apply merges the delta set into base and returns a new collection.
//
// Wholesale additions are inserted at the position implied by the element's
// own zIndex; wholesale removals delete the element; field-level changes
// patch only the listed attributes in place. Elements not mentioned keep
// their position. base is never mutated.
func (ds DeltaSet) Apply(base element.Collection) element.Collection {
	out := make(element.Collection, 0, len(base)+len(ds))
	zOrderDirty := false

	for _, e := range base {
		d, ok := ds[e.ID]
		if !ok {
			out = append(out, e.Clone())
			continue
		}

		switch {
		case d.Removed:
			// Dropped.
		case d.Fields != nil:
			patched := e.Clone()
			for key, fc := range d.Fields {
				if fc.Removed {
					delete(patched.Attrs, key)
					continue
				}
				patched.Attrs[key] = cloneValue(fc.New)
				if key == element.AttrZIndex {
					zOrderDirty = true
				}
			}
			out = append(out, patched)
		default:
			// Added entry for an ID already in base: replace wholesale.
			// Should not occur for deltas produced by Diff.
			out = append(out, d.Added.Clone())
			zOrderDirty = true
		}
	}

	// Insert additions in sorted-ID order so equal zIndex values land
	// deterministically.
	for _, id := range ds.ChangedIDs() {
		d := ds[id]
		if d.Added == nil || base.Contains(id) {
			continue
		}
		out = out.InsertOrdered(d.Added.Clone())
	}

	// Patched zIndex values may have invalidated the display order. The
	// store keeps collections zIndex-sorted, so restore that invariant
	// here; the sort is stable and leaves untouched elements in place.
	if zOrderDirty {
		out.SortByZIndex()
	}

	return out
}

// cloneValue deep-copies an arbitrary attribute value.
func cloneValue(v any) any {
	if v == nil {
		return nil
	}
	return deep.MustCopy(v)
}
