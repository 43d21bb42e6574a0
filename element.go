package canopy

// Element is the minimal geometric handle canopy keeps for an anchor or a
// floating panel. The library never mutates an element; it only asks where it
// is. Anything that can report a bounding rectangle qualifies: a widget, a
// screen region, a synthetic point.
type Element interface {
	Bounds() Rect
}

// PointContainer refines containment beyond the bounding rectangle, in the
// manner of a custom hit shape. Elements that implement it are consulted
// instead of the AABB fallback.
type PointContainer interface {
	Contains(x, y float64) bool
}

// Contexter is implemented by virtual elements that delegate containment to a
// backing element ("context element") rather than being containable
// themselves.
type Contexter interface {
	Context() Element
}

// RectElement is an Element over a plain mutable rectangle.
type RectElement struct {
	Rect Rect
}

// NewRectElement returns a RectElement at the given bounds.
func NewRectElement(r Rect) *RectElement {
	return &RectElement{Rect: r}
}

// Bounds returns the current rectangle.
func (e *RectElement) Bounds() Rect {
	return e.Rect
}

// VirtualElement is an element whose bounds are computed on demand, with an
// optional context element that answers containment queries. Used for
// anchors that track a moving reference (the cursor, a selection range) the
// way placement engines model virtual references.
type VirtualElement struct {
	BoundsFunc     func() Rect
	ContextElement Element
}

// Bounds evaluates BoundsFunc, or returns the zero Rect when unset.
func (e *VirtualElement) Bounds() Rect {
	if e.BoundsFunc == nil {
		return Rect{}
	}
	return e.BoundsFunc()
}

// Context returns the backing context element, which may be nil.
func (e *VirtualElement) Context() Element {
	return e.ContextElement
}

// BoundsOf returns el's bounds, treating nil elements and malformed geometry
// as the zero Rect.
func BoundsOf(el Element) Rect {
	if el == nil {
		return Rect{}
	}
	b := el.Bounds()
	if !b.IsValid() {
		return Rect{}
	}
	return b
}

// elementContains reports whether (x, y) falls inside el. Virtual elements
// defer to their context element; elements with a custom Contains are asked
// directly; everything else uses the bounding rectangle. A nil or degenerate
// element contains nothing.
func elementContains(el Element, x, y float64) bool {
	if el == nil {
		return false
	}
	if v, ok := el.(Contexter); ok {
		if ctx := v.Context(); ctx != nil {
			return elementContains(ctx, x, y)
		}
	}
	if c, ok := el.(PointContainer); ok {
		return c.Contains(x, y)
	}
	b := el.Bounds()
	if !b.IsValid() || b.IsZero() {
		return false
	}
	return b.Contains(x, y)
}
