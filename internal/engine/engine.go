package engine

import (
	"sync"

	"github.com/pzgaai/easel/internal/engine/element"
	"github.com/pzgaai/easel/internal/engine/geometry"
	"github.com/pzgaai/easel/internal/engine/history"
	"github.com/pzgaai/easel/internal/engine/store"
)

// Re-export commonly used types for convenience.
type (
	// Element is a canvas element: an ID plus an open attribute map.
	Element = element.Element

	// Collection is a zIndex-ordered set of elements.
	Collection = element.Collection

	// DeltaSet maps element IDs to their structural deltas.
	DeltaSet = history.DeltaSet

	// ElementDelta describes how one element changed.
	ElementDelta = history.ElementDelta

	// FieldChange records one attribute transition.
	FieldChange = history.FieldChange

	// Restored is the result of an undo or redo traversal.
	Restored = history.Restored

	// EntryInfo is a read-only view of one history entry.
	EntryInfo = history.EntryInfo

	// Stats summarizes the history log's shape.
	Stats = history.Stats

	// Rect is an axis-aligned bounding box.
	Rect = geometry.Rect

	// Guide is an alignment line hit during a snap.
	Guide = geometry.Guide

	// SnapResult is the outcome of a snap computation.
	SnapResult = geometry.SnapResult
)

// Re-export element type constants.
const (
	TypeRect    = element.TypeRect
	TypeEllipse = element.TypeEllipse
	TypeLine    = element.TypeLine
	TypeText    = element.TypeText
	TypeImage   = element.TypeImage
	TypeGroup   = element.TypeGroup
)

// Operation tags recorded on history entries. Consumers use these to
// coalesce rapid commits of the same kind.
const (
	TagAdd     = "add"
	TagUpdate  = "update"
	TagMove    = "move"
	TagRotate  = "rotate"
	TagRemove  = "remove"
	TagReorder = "reorder"
	TagLoad    = "load"
)

// Engine is the main facade for the canvas editor engine. It combines the
// element store, the incremental history log, and snap geometry into a
// unified, thread-safe API.
//
// Every mutating operation commits the resulting canvas state to the
// history log, so undo and redo walk exactly the sequence of operations
// performed here.
type Engine struct {
	mu sync.RWMutex

	store *store.Store
	log   *history.Log

	snapEnabled   bool
	snapTolerance float64
	rotationStep  float64
	canvasBounds  Rect
	hasCanvas     bool
	historyOpts   []history.Option
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		snapEnabled:   true,
		snapTolerance: DefaultSnapTolerance,
		rotationStep:  DefaultRotationStep,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.store = store.New()
	e.log = history.NewLog(e.historyOpts...)

	return e
}

// commitLocked records the store's current state in the history log.
func (e *Engine) commitLocked(tag string) error {
	return e.log.Push(e.store.Snapshot(), tag)
}

// ============================================================================
// Element Operations
// ============================================================================

// AddElement inserts an element into the canvas and records the change.
// Elements with an empty ID are assigned one. The stored element, including
// assigned ID and normalized colors, is returned.
func (e *Engine) AddElement(el Element) (Element, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	added, err := e.store.Add(el)
	if err != nil {
		return Element{}, err
	}
	if err := e.commitLocked(TagAdd); err != nil {
		return Element{}, err
	}
	return added, nil
}

// UpdateElement patches an element's attributes and records the change.
// A nil attribute value deletes the attribute.
func (e *Engine) UpdateElement(id string, attrs map[string]any) (Element, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	updated, err := e.store.Update(id, attrs)
	if err != nil {
		return Element{}, err
	}
	if err := e.commitLocked(TagUpdate); err != nil {
		return Element{}, err
	}
	return updated, nil
}

// MoveElement positions an element's top-left corner at (x, y), snapping
// against sibling edges and centers when snapping is enabled. The snap
// result reports the final position and any guides hit.
func (e *Engine) MoveElement(id string, x, y float64) (Element, SnapResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	el, ok := e.store.Get(id)
	if !ok {
		return Element{}, SnapResult{}, ErrElementNotFound
	}

	res := SnapResult{X: x, Y: y}
	if e.snapEnabled {
		moving := boundsOf(el)
		moving.X, moving.Y = x, y
		res = geometry.Snap(moving, e.siblingBoundsLocked(id), e.snapTolerance)
	}

	moved, err := e.store.Update(id, map[string]any{
		element.AttrX: res.X,
		element.AttrY: res.Y,
	})
	if err != nil {
		return Element{}, SnapResult{}, err
	}
	if err := e.commitLocked(TagMove); err != nil {
		return Element{}, SnapResult{}, err
	}
	return moved, res, nil
}

// RotateElement sets an element's rotation in degrees. When snapping is
// enabled, angles near a multiple of the rotation step are pulled onto it.
func (e *Engine) RotateElement(id string, angle float64) (Element, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.snapEnabled {
		angle = geometry.SnapAngle(angle, e.rotationStep, DefaultAngleTolerance)
	}

	rotated, err := e.store.Update(id, map[string]any{
		element.AttrRotation: angle,
	})
	if err != nil {
		return Element{}, err
	}
	if err := e.commitLocked(TagRotate); err != nil {
		return Element{}, err
	}
	return rotated, nil
}

// RemoveElement deletes an element and records the change.
func (e *Engine) RemoveElement(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Remove(id); err != nil {
		return err
	}
	return e.commitLocked(TagRemove)
}

// BringForward swaps an element's zIndex with the element directly above it.
func (e *Engine) BringForward(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.BringForward(id); err != nil {
		return err
	}
	return e.commitLocked(TagReorder)
}

// SendBackward swaps an element's zIndex with the element directly below it.
func (e *Engine) SendBackward(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.SendBackward(id); err != nil {
		return err
	}
	return e.commitLocked(TagReorder)
}

// SetSnapping toggles snap-to-guide behavior at runtime.
func (e *Engine) SetSnapping(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snapEnabled = enabled
}

// SetSnapTolerance adjusts the snap tolerance at runtime.
func (e *Engine) SetSnapTolerance(tolerance float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tolerance > 0 {
		e.snapTolerance = tolerance
	}
}

// SetRotationStep adjusts the rotation snap step at runtime.
func (e *Engine) SetRotationStep(step float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if step > 0 {
		e.rotationStep = step
	}
}

// SetCanvasBounds sets the canvas rect whose edges and center also act as
// snap guides.
func (e *Engine) SetCanvasBounds(r Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.canvasBounds = r
	e.hasCanvas = r.W > 0 && r.H > 0
}

// siblingBoundsLocked collects the snap guide sources for moving id: the
// bounding boxes of every other element, plus the canvas itself.
func (e *Engine) siblingBoundsLocked(id string) []Rect {
	list := e.store.List()
	rects := make([]Rect, 0, len(list)+1)
	for _, el := range list {
		if el.ID == id {
			continue
		}
		rects = append(rects, boundsOf(el))
	}
	if e.hasCanvas {
		rects = append(rects, e.canvasBounds)
	}
	return rects
}

// boundsOf derives an element's bounding box from its positional attributes.
// Missing attributes read as zero.
func boundsOf(el Element) Rect {
	x, _ := el.Float(element.AttrX)
	y, _ := el.Float(element.AttrY)
	w, _ := el.Float(element.AttrWidth)
	h, _ := el.Float(element.AttrHeight)
	return Rect{X: x, Y: y, W: w, H: h}
}

// ============================================================================
// Read Operations
// ============================================================================

// Element returns the element with the given ID.
func (e *Engine) Element(id string) (Element, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Get(id)
}

// Elements returns all elements in stacking order.
func (e *Engine) Elements() Collection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.List()
}

// Len returns the number of elements on the canvas.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Len()
}

// Snapshot returns a deep copy of the current canvas state.
func (e *Engine) Snapshot() Collection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Snapshot()
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo steps the canvas back one history entry. It returns the IDs of the
// elements that changed and the undone entry's operation tag.
func (e *Engine) Undo() (*Restored, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.log.Undo()
	if err != nil {
		return nil, err
	}
	e.store.Restore(r.Collection)
	return r, nil
}

// Redo steps the canvas forward one history entry.
func (e *Engine) Redo() (*Restored, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.log.Redo()
	if err != nil {
		return nil, err
	}
	e.store.Restore(r.Collection)
	return r, nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.log.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.log.CanRedo()
}

// HistoryStats summarizes the history log.
func (e *Engine) HistoryStats() Stats {
	return e.log.Stats()
}

// HistoryEntries returns read-only metadata for every log entry.
func (e *Engine) HistoryEntries() []EntryInfo {
	return e.log.Entries()
}

// ClearHistory drops all undo/redo history. The canvas itself is untouched;
// the next mutation starts a fresh log.
func (e *Engine) ClearHistory() {
	e.log.Clear()
}

// ============================================================================
// Batch Operations
// ============================================================================

// BeginBatch opens a batch: subsequent mutations accumulate into a single
// history entry. Batches nest; only the outermost EndBatch commits.
func (e *Engine) BeginBatch() {
	e.log.BeginBatch()
}

// EndBatch closes the innermost batch, committing the net change when the
// outermost batch ends.
func (e *Engine) EndBatch() error {
	return e.log.EndBatch()
}

// CancelBatch abandons the innermost batch without recording anything.
// The canvas keeps any mutations made inside the batch.
func (e *Engine) CancelBatch() {
	e.log.CancelBatch()
}

// InBatch returns true if a batch is open.
func (e *Engine) InBatch() bool {
	return e.log.InBatch()
}

// Transaction runs fn inside a batch. The batch commits if fn returns nil
// and is cancelled otherwise.
func (e *Engine) Transaction(fn func() error) error {
	return e.log.Transaction(fn)
}

// ============================================================================
// Clear and Reset
// ============================================================================

// SetElements replaces the whole canvas and resets history. The loaded
// state becomes the new baseline checkpoint.
func (e *Engine) SetElements(c Collection) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := c.Validate(); err != nil {
		return err
	}
	e.store.Restore(c)
	e.log.Clear()
	return e.commitLocked(TagLoad)
}

// Clear removes all elements and resets history.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Clear()
	e.log.Clear()
}
