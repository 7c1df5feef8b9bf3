package store

import (
	"errors"
	"testing"

	"github.com/pzgaai/easel/internal/engine/element"
)

func TestAddAssignsID(t *testing.T) {
	s := New()

	added, err := s.Add(element.NewRect(0, 0, 10, 10))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID == "" {
		t.Error("Add should assign an ID")
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestAddKeepsExplicitID(t *testing.T) {
	s := New()

	added, err := s.Add(element.New("my-rect", map[string]any{element.AttrType: element.TypeRect}))
	if err != nil {
		t.Fatal(err)
	}
	if added.ID != "my-rect" {
		t.Errorf("ID = %q, want my-rect", added.ID)
	}

	if _, err := s.Add(element.New("my-rect", nil)); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAddStacksOnTop(t *testing.T) {
	s := New()
	a, _ := s.Add(element.NewRect(0, 0, 1, 1))
	b, _ := s.Add(element.NewRect(0, 0, 1, 1))

	if b.ZIndex() <= a.ZIndex() {
		t.Errorf("second element z %v should be above first %v", b.ZIndex(), a.ZIndex())
	}

	order := s.List().IDs()
	if order[0] != a.ID || order[1] != b.ID {
		t.Errorf("display order = %v", order)
	}
}

func TestAddNormalizesColors(t *testing.T) {
	s := New()
	e := element.NewRect(0, 0, 1, 1)
	e.Attrs[element.AttrFill] = "#FF0000"

	added, err := s.Add(e)
	if err != nil {
		t.Fatal(err)
	}
	if fill, _ := added.Get(element.AttrFill); fill != "#ff0000" {
		t.Errorf("fill = %v, want #ff0000", fill)
	}

	e = element.NewRect(0, 0, 1, 1)
	e.Attrs[element.AttrFill] = "nope"
	if _, err := s.Add(e); !errors.Is(err, element.ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	s := New()
	added, _ := s.Add(element.NewRect(0, 0, 10, 10))

	updated, err := s.Update(added.ID, map[string]any{element.AttrX: 5.0})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if x, _ := updated.Float(element.AttrX); x != 5 {
		t.Errorf("x = %v, want 5", x)
	}

	// nil value deletes the attribute.
	updated, err = s.Update(added.ID, map[string]any{element.AttrWidth: nil})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := updated.Get(element.AttrWidth); ok {
		t.Error("width should be deleted")
	}

	if _, err := s.Update("missing", nil); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("expected ErrElementNotFound, got %v", err)
	}
}

func TestUpdateZIndexResorts(t *testing.T) {
	s := New()
	a, _ := s.Add(element.NewRect(0, 0, 1, 1))
	b, _ := s.Add(element.NewRect(0, 0, 1, 1))

	// Push a above b.
	if _, err := s.Update(a.ID, map[string]any{element.AttrZIndex: b.ZIndex() + 1}); err != nil {
		t.Fatal(err)
	}

	order := s.List().IDs()
	if order[0] != b.ID || order[1] != a.ID {
		t.Errorf("display order = %v, want [%s %s]", order, b.ID, a.ID)
	}
}

func TestRemove(t *testing.T) {
	s := New()
	added, _ := s.Add(element.NewRect(0, 0, 1, 1))

	if err := s.Remove(added.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if s.Len() != 0 {
		t.Error("element should be gone")
	}
	if err := s.Remove(added.ID); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("expected ErrElementNotFound, got %v", err)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New()
	added, _ := s.Add(element.NewRect(0, 0, 10, 10))

	snap := s.Snapshot()
	snap[0].Attrs[element.AttrX] = 99.0

	live, _ := s.Get(added.ID)
	if x, _ := live.Float(element.AttrX); x != 0 {
		t.Error("snapshot mutation leaked into store")
	}
}

func TestRestore(t *testing.T) {
	s := New()
	s.Add(element.NewRect(0, 0, 1, 1))

	restored := element.Collection{
		element.New("r1", map[string]any{element.AttrX: 1.0, element.AttrZIndex: 0.0}),
		element.New("r2", map[string]any{element.AttrX: 2.0, element.AttrZIndex: 1.0}),
	}
	s.Restore(restored)

	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if !s.List().Equal(restored) {
		t.Error("store state should equal restored collection")
	}

	// Restore took its own copy.
	restored[0].Attrs[element.AttrX] = 99.0
	live, _ := s.Get("r1")
	if x, _ := live.Float(element.AttrX); x != 1 {
		t.Error("restore aliased caller's collection")
	}
}

func TestBringForwardSendBackward(t *testing.T) {
	s := New()
	a, _ := s.Add(element.NewRect(0, 0, 1, 1))
	b, _ := s.Add(element.NewRect(0, 0, 1, 1))
	c, _ := s.Add(element.NewRect(0, 0, 1, 1))

	if err := s.BringForward(a.ID); err != nil {
		t.Fatal(err)
	}
	order := s.List().IDs()
	want := []string{b.ID, a.ID, c.ID}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order after bring forward = %v, want %v", order, want)
		}
	}

	if err := s.SendBackward(a.ID); err != nil {
		t.Fatal(err)
	}
	order = s.List().IDs()
	want = []string{a.ID, b.ID, c.ID}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order after send backward = %v, want %v", order, want)
		}
	}

	// Top element can't go further up.
	if err := s.BringForward(c.ID); err != nil {
		t.Errorf("bring forward on top element should be a no-op, got %v", err)
	}
}
