package element

import (
	"errors"
	"fmt"

	deep "github.com/brunoga/deep"
)

// Errors returned by element operations.
var (
	// ErrMissingID indicates an element without a stable unique ID.
	ErrMissingID = errors.New("element has no id")

	// ErrInvalidColor indicates a color attribute that could not be parsed.
	ErrInvalidColor = errors.New("invalid color value")
)

// Well-known attribute keys. The engine treats attributes as opaque except
// for these, which carry geometry, stacking, and styling meaning.
const (
	AttrType     = "type"
	AttrX        = "x"
	AttrY        = "y"
	AttrWidth    = "width"
	AttrHeight   = "height"
	AttrRotation = "rotation"
	AttrZIndex   = "zIndex"
	AttrFill     = "fill"
	AttrStroke   = "stroke"
	AttrText     = "text"
	AttrHref     = "href"
	AttrChildren = "children"
)

// Element is a single canvas entity: a stable ID plus an opaque attribute
// mapping. The zero value is invalid; use New or a shape constructor.
type Element struct {
	// ID uniquely identifies the element for its whole lifetime.
	ID string

	// Attrs holds the element's named attributes. Values may be nested
	// maps and slices.
	Attrs map[string]any
}

// New creates an element with the given ID and attributes.
// The attribute map is used as-is; callers that retain it should clone.
func New(id string, attrs map[string]any) Element {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	return Element{ID: id, Attrs: attrs}
}

// Validate checks that the element has a stable ID.
func (e Element) Validate() error {
	if e.ID == "" {
		return ErrMissingID
	}
	return nil
}

// Clone returns a deep copy of the element.
// Mutating the clone's attributes never affects the original.
func (e Element) Clone() Element {
	return Element{
		ID:    e.ID,
		Attrs: deep.MustCopy(e.Attrs),
	}
}

// Equal reports whether two elements have the same ID and structurally
// equal attributes.
func (e Element) Equal(other Element) bool {
	if e.ID != other.ID {
		return false
	}
	return ValueEqual(e.Attrs, other.Attrs)
}

// Get returns the attribute value for key.
func (e Element) Get(key string) (any, bool) {
	v, ok := e.Attrs[key]
	return v, ok
}

// Type returns the element's type attribute ("" when unset).
func (e Element) Type() string {
	if s, ok := e.Attrs[AttrType].(string); ok {
		return s
	}
	return ""
}

// ZIndex returns the element's stacking order value.
// Elements without a zIndex attribute sort as 0.
func (e Element) ZIndex() float64 {
	v, ok := e.Attrs[AttrZIndex]
	if !ok {
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		return 0
	}
	return f
}

// Float returns a numeric attribute as float64.
func (e Element) Float(key string) (float64, bool) {
	v, ok := e.Attrs[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// String implements fmt.Stringer for debugging and log output.
func (e Element) String() string {
	return fmt.Sprintf("%s(%s)", e.Type(), e.ID)
}

// EstimateBytes returns a rough in-memory size of the element.
// Used by history stats; not an exact accounting.
func (e Element) EstimateBytes() int {
	return len(e.ID) + estimateValueBytes(e.Attrs)
}

func estimateValueBytes(v any) int {
	switch val := v.(type) {
	case nil:
		return 0
	case string:
		return len(val) + 16
	case map[string]any:
		n := 48
		for k, item := range val {
			n += len(k) + 16 + estimateValueBytes(item)
		}
		return n
	case []any:
		n := 24
		for _, item := range val {
			n += estimateValueBytes(item)
		}
		return n
	case []string:
		n := 24
		for _, item := range val {
			n += len(item) + 16
		}
		return n
	default:
		// Scalars: bool, numeric kinds.
		return 16
	}
}
