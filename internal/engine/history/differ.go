package history

import "github.com/pzgaai/easel/internal/engine/element"

// Diff computes the field-level delta between two collections.
//
// Elements present only in after are recorded as wholesale additions;
// elements present only in before as wholesale removals. Elements present
// in both are compared attribute by attribute, recording only the fields
// whose values structurally differ. Diff is a pure function: neither
// collection is mutated, and returned elements are deep copies.
func Diff(before, after element.Collection) DeltaSet {
	ds := make(DeltaSet)

	beforeByID := make(map[string]element.Element, len(before))
	for _, e := range before {
		beforeByID[e.ID] = e
	}

	seen := make(map[string]bool, len(after))
	for _, e := range after {
		seen[e.ID] = true

		old, ok := beforeByID[e.ID]
		if !ok {
			added := e.Clone()
			ds[e.ID] = ElementDelta{Added: &added}
			continue
		}

		fields := diffAttrs(old.Attrs, e.Attrs)
		if len(fields) > 0 {
			ds[e.ID] = ElementDelta{Fields: fields}
		}
	}

	for _, e := range before {
		if !seen[e.ID] {
			ds[e.ID] = ElementDelta{Removed: true}
		}
	}

	return ds
}

// diffAttrs compares two attribute maps and returns per-field changes.
// Values placed into the result are deep copies.
func diffAttrs(old, new map[string]any) map[string]FieldChange {
	var fields map[string]FieldChange

	set := func(key string, fc FieldChange) {
		if fields == nil {
			fields = make(map[string]FieldChange)
		}
		fields[key] = fc
	}

	for key, newVal := range new {
		oldVal, ok := old[key]
		if !ok {
			set(key, FieldChange{New: cloneValue(newVal)})
			continue
		}
		if !element.ValueEqual(oldVal, newVal) {
			set(key, FieldChange{Old: cloneValue(oldVal), New: cloneValue(newVal)})
		}
	}

	for key, oldVal := range old {
		if _, ok := new[key]; !ok {
			set(key, FieldChange{Old: cloneValue(oldVal), Removed: true})
		}
	}

	return fields
}
