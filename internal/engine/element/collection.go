package element

import "sort"

// Collection is an ordered, ID-unique sequence of elements.
// Order is display order: lower zIndex values render first.
type Collection []Element

// Get returns the element with the given ID.
func (c Collection) Get(id string) (Element, bool) {
	for _, e := range c {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

// IndexOf returns the position of the element with the given ID, or -1.
func (c Collection) IndexOf(id string) int {
	for i, e := range c {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether an element with the given ID is present.
func (c Collection) Contains(id string) bool {
	return c.IndexOf(id) >= 0
}

// IDs returns the element IDs in display order.
func (c Collection) IDs() []string {
	ids := make([]string, len(c))
	for i, e := range c {
		ids[i] = e.ID
	}
	return ids
}

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, e := range c {
		out[i] = e.Clone()
	}
	return out
}

// Equal reports whether two collections hold structurally equal elements
// in the same order.
func (c Collection) Equal(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !c[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// InsertOrdered inserts an element at the position implied by its zIndex,
// after any existing elements with the same zIndex. The receiver is not
// modified; a new collection is returned.
func (c Collection) InsertOrdered(e Element) Collection {
	out := make(Collection, 0, len(c)+1)
	z := e.ZIndex()
	inserted := false
	for _, existing := range c {
		if !inserted && existing.ZIndex() > z {
			out = append(out, e)
			inserted = true
		}
		out = append(out, existing)
	}
	if !inserted {
		out = append(out, e)
	}
	return out
}

// Remove returns a collection without the element with the given ID.
// The receiver is not modified.
func (c Collection) Remove(id string) Collection {
	out := make(Collection, 0, len(c))
	for _, e := range c {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// SortByZIndex stable-sorts the collection in place by zIndex.
// Elements with equal zIndex keep their relative order.
func (c Collection) SortByZIndex() {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].ZIndex() < c[j].ZIndex()
	})
}

// MaxZIndex returns the highest zIndex in the collection (0 when empty).
func (c Collection) MaxZIndex() float64 {
	var max float64
	for i, e := range c {
		if z := e.ZIndex(); i == 0 || z > max {
			max = z
		}
	}
	return max
}

// EstimateBytes returns a rough in-memory size of the collection.
func (c Collection) EstimateBytes() int {
	n := 24
	for _, e := range c {
		n += e.EstimateBytes()
	}
	return n
}

// Validate checks every element in the collection.
func (c Collection) Validate() error {
	for _, e := range c {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}
