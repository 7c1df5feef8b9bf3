package history

import (
	"testing"

	"github.com/pzgaai/easel/internal/engine/element"
)

// rect builds a test rectangle at (x, y) with the given stacking order.
func rect(id string, x, y, z float64) element.Element {
	return element.New(id, map[string]any{
		element.AttrType:   element.TypeRect,
		element.AttrX:      x,
		element.AttrY:      y,
		element.AttrZIndex: z,
	})
}

func TestDiffAddition(t *testing.T) {
	before := element.Collection{rect("a", 0, 0, 0)}
	after := element.Collection{rect("a", 0, 0, 0), rect("b", 10, 10, 1)}

	ds := Diff(before, after)

	if len(ds) != 1 {
		t.Fatalf("len(ds) = %d, want 1", len(ds))
	}
	d, ok := ds["b"]
	if !ok || d.Added == nil {
		t.Fatalf("b should be a wholesale addition, got %+v", d)
	}
	if d.Added.ID != "b" {
		t.Errorf("added ID = %q", d.Added.ID)
	}
}

func TestDiffRemoval(t *testing.T) {
	before := element.Collection{rect("a", 0, 0, 0), rect("b", 10, 10, 1)}
	after := element.Collection{rect("a", 0, 0, 0)}

	ds := Diff(before, after)

	if len(ds) != 1 {
		t.Fatalf("len(ds) = %d, want 1", len(ds))
	}
	if !ds["b"].Removed {
		t.Error("b should be a wholesale removal")
	}
}

func TestDiffFieldChange(t *testing.T) {
	before := element.Collection{rect("a", 0, 0, 0)}
	after := element.Collection{rect("a", 5, 5, 0)}

	ds := Diff(before, after)

	d, ok := ds["a"]
	if !ok || d.Fields == nil {
		t.Fatalf("a should have field changes, got %+v", d)
	}
	if len(d.Fields) != 2 {
		t.Errorf("changed fields = %d, want 2 (x and y)", len(d.Fields))
	}

	fc := d.Fields[element.AttrX]
	if fc.Old != 0.0 || fc.New != 5.0 {
		t.Errorf("x change = %+v, want old 0 new 5", fc)
	}
	if _, touched := d.Fields[element.AttrType]; touched {
		t.Error("unchanged field was recorded")
	}
}

func TestDiffFieldRemoval(t *testing.T) {
	a := rect("a", 0, 0, 0)
	a.Attrs[element.AttrFill] = "#ff0000"
	before := element.Collection{a}
	after := element.Collection{rect("a", 0, 0, 0)}

	ds := Diff(before, after)

	fc, ok := ds["a"].Fields[element.AttrFill]
	if !ok || !fc.Removed {
		t.Fatalf("fill should be a removed field, got %+v", fc)
	}
	if fc.Old != "#ff0000" {
		t.Errorf("removed field old = %v", fc.Old)
	}
}

func TestDiffNoChange(t *testing.T) {
	before := element.Collection{rect("a", 0, 0, 0), rect("b", 10, 10, 1)}
	after := before.Clone()

	ds := Diff(before, after)
	if !ds.IsEmpty() {
		t.Errorf("diff of identical collections should be empty, got %v", ds.ChangedIDs())
	}
}

func TestDiffNumericKindsDoNotDiff(t *testing.T) {
	// A JSON round trip turns ints into float64; that must not diff.
	before := element.Collection{element.New("a", map[string]any{element.AttrX: 5})}
	after := element.Collection{element.New("a", map[string]any{element.AttrX: 5.0})}

	if ds := Diff(before, after); !ds.IsEmpty() {
		t.Errorf("int vs float64 of same value should not diff, got %v", ds.ChangedIDs())
	}
}

func TestDiffIsPure(t *testing.T) {
	before := element.Collection{rect("a", 0, 0, 0)}
	after := element.Collection{rect("a", 5, 5, 0), rect("b", 1, 1, 1)}

	ds := Diff(before, after)

	// Mutating the delta must not reach the inputs.
	ds["b"].Added.Attrs[element.AttrX] = 99.0
	if x, _ := after[1].Float(element.AttrX); x != 1 {
		t.Error("delta mutation leaked into after collection")
	}

	if x, _ := before[0].Float(element.AttrX); x != 0 {
		t.Error("before collection was mutated")
	}
}

func TestApplyPatchesOnlyListedFields(t *testing.T) {
	base := element.Collection{rect("a", 0, 0, 0)}
	after := element.Collection{rect("a", 5, 0, 0)}

	out := Diff(base, after).Apply(base)

	if !out.Equal(after) {
		t.Errorf("apply result differs: %v", out)
	}
	// base untouched
	if x, _ := base[0].Float(element.AttrX); x != 0 {
		t.Error("Apply mutated base")
	}
}

func TestApplyInsertsByZIndex(t *testing.T) {
	base := element.Collection{rect("a", 0, 0, 0), rect("c", 0, 0, 2)}
	after := element.Collection{rect("a", 0, 0, 0), rect("b", 0, 0, 1), rect("c", 0, 0, 2)}

	out := Diff(base, after).Apply(base)

	want := []string{"a", "b", "c"}
	for i, id := range out.IDs() {
		if id != want[i] {
			t.Fatalf("order = %v, want %v", out.IDs(), want)
		}
	}
}

func TestApplyRemoval(t *testing.T) {
	base := element.Collection{rect("a", 0, 0, 0), rect("b", 0, 0, 1)}
	after := element.Collection{rect("a", 0, 0, 0)}

	out := Diff(base, after).Apply(base)
	if !out.Equal(after) {
		t.Errorf("apply result differs: %v", out.IDs())
	}
}

func TestApplyFieldRemoval(t *testing.T) {
	a := rect("a", 0, 0, 0)
	a.Attrs[element.AttrFill] = "#ff0000"
	base := element.Collection{a}
	after := element.Collection{rect("a", 0, 0, 0)}

	out := Diff(base, after).Apply(base)
	if _, ok := out[0].Get(element.AttrFill); ok {
		t.Error("removed field survived apply")
	}
}

func TestApplyReordersOnZIndexChange(t *testing.T) {
	base := element.Collection{rect("a", 0, 0, 0), rect("b", 0, 0, 1)}

	// Swap stacking order.
	after := element.Collection{rect("b", 0, 0, 0), rect("a", 0, 0, 1)}

	out := Diff(base, after).Apply(base)
	if !out.Equal(after) {
		t.Errorf("reorder did not round-trip: got %v, want %v", out.IDs(), after.IDs())
	}
}

func TestRoundTripCompound(t *testing.T) {
	// Add, remove, patch, and reorder in one delta.
	before := element.Collection{
		rect("a", 0, 0, 0),
		rect("b", 10, 10, 1),
		rect("c", 20, 20, 2),
	}
	after := element.Collection{
		rect("a", 5, 5, 0),
		rect("d", 1, 1, 1.5),
		rect("c", 20, 20, 2),
	}

	out := Diff(before, after).Apply(before)
	if !out.Equal(after) {
		t.Errorf("compound delta did not round-trip:\n got %v\nwant %v", out.IDs(), after.IDs())
	}
}
