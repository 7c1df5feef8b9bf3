package element

// Element type attribute values.
const (
	TypeRect    = "rect"
	TypeEllipse = "ellipse"
	TypeLine    = "line"
	TypeText    = "text"
	TypeImage   = "image"
	TypeGroup   = "group"
)

// NewRect creates a rectangle element. ID assignment and color
// normalization are the store's job.
func NewRect(x, y, width, height float64) Element {
	return New("", map[string]any{
		AttrType:   TypeRect,
		AttrX:      x,
		AttrY:      y,
		AttrWidth:  width,
		AttrHeight: height,
	})
}

// NewEllipse creates an ellipse element bounded by the given box.
func NewEllipse(x, y, width, height float64) Element {
	return New("", map[string]any{
		AttrType:   TypeEllipse,
		AttrX:      x,
		AttrY:      y,
		AttrWidth:  width,
		AttrHeight: height,
	})
}

// NewLine creates a line element from (x, y) to (x+width, y+height).
func NewLine(x, y, width, height float64) Element {
	return New("", map[string]any{
		AttrType:   TypeLine,
		AttrX:      x,
		AttrY:      y,
		AttrWidth:  width,
		AttrHeight: height,
	})
}

// NewText creates a text element anchored at (x, y).
func NewText(x, y float64, text string) Element {
	return New("", map[string]any{
		AttrType: TypeText,
		AttrX:    x,
		AttrY:    y,
		AttrText: text,
	})
}

// NewImage creates an image element referencing an external resource.
func NewImage(x, y, width, height float64, href string) Element {
	return New("", map[string]any{
		AttrType:   TypeImage,
		AttrX:      x,
		AttrY:      y,
		AttrWidth:  width,
		AttrHeight: height,
		AttrHref:   href,
	})
}

// NewGroup creates a group element over the given child element IDs.
func NewGroup(children []string) Element {
	ids := make([]string, len(children))
	copy(ids, children)
	return New("", map[string]any{
		AttrType:     TypeGroup,
		AttrChildren: ids,
	})
}
