package canopy

import (
	"math"
	"strings"
)

// Vec2 is a 2D point or offset. The coordinate system has its origin at the
// top-left, with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// IsZero reports whether the rectangle has no area.
func (r Rect) IsZero() bool {
	return r.Width <= 0 || r.Height <= 0
}

// IsValid reports whether all rectangle fields are finite numbers.
func (r Rect) IsValid() bool {
	return !math.IsNaN(r.X) && !math.IsNaN(r.Y) &&
		!math.IsNaN(r.Width) && !math.IsNaN(r.Height) &&
		!math.IsInf(r.X, 0) && !math.IsInf(r.Y, 0) &&
		!math.IsInf(r.Width, 0) && !math.IsInf(r.Height, 0)
}

// Side identifies which edge of the anchor a floating panel sits on.
type Side uint8

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// String returns the lowercase name of the side.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "bottom"
	}
}

// Align positions the panel along the cross axis of its side.
type Align uint8

const (
	AlignCenter Align = iota
	AlignStart
	AlignEnd
)

// Placement couples a side with a cross-axis alignment. The zero value is
// bottom-center, matching the usual dropdown default.
type Placement struct {
	Side  Side
	Align Align
}

// String renders the placement in the "side-align" form used by placement
// engines ("top", "bottom-start", "left-end", ...). Center alignment has no
// suffix.
func (p Placement) String() string {
	switch p.Align {
	case AlignStart:
		return p.Side.String() + "-start"
	case AlignEnd:
		return p.Side.String() + "-end"
	default:
		return p.Side.String()
	}
}

// ParsePlacement parses a "side" or "side-align" string. Unknown input
// returns the zero placement and false.
func ParsePlacement(s string) (Placement, bool) {
	side, rest, _ := strings.Cut(s, "-")
	var p Placement
	switch side {
	case "top":
		p.Side = SideTop
	case "bottom":
		p.Side = SideBottom
	case "left":
		p.Side = SideLeft
	case "right":
		p.Side = SideRight
	default:
		return Placement{}, false
	}
	switch rest {
	case "":
		p.Align = AlignCenter
	case "start":
		p.Align = AlignStart
	case "end":
		p.Align = AlignEnd
	default:
		return Placement{}, false
	}
	return p, true
}

// CloseReason tags an open-state change so observers can tell cascade-induced
// transitions apart from user-induced ones.
type CloseReason string

const (
	ReasonHover         CloseReason = "hover"
	ReasonClick         CloseReason = "click"
	ReasonFocus         CloseReason = "focus"
	ReasonOutsidePress  CloseReason = "outside-press"
	ReasonEscapeKey     CloseReason = "escape-key"
	ReasonSafePolygon   CloseReason = "safe-polygon"
	ReasonAncestorClose CloseReason = "tree-ancestor-close"
	ReasonTeardown      CloseReason = "teardown"
)
