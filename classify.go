package canopy

import "math"

// Classification is the relationship of an event target to a panel node
// within its tree.
type Classification uint8

const (
	// TargetSelf: the target hit the node's own anchor or panel.
	TargetSelf Classification = iota
	// TargetDescendant: the target hit an open descendant's elements.
	TargetDescendant
	// TargetAncestor: the target hit an ancestor's elements.
	TargetAncestor
	// TargetSibling: the target hit a sibling's elements.
	TargetSibling
	// TargetOutside: the target hit nothing in the tree.
	TargetOutside
)

// String returns the classification name.
func (c Classification) String() string {
	switch c {
	case TargetSelf:
		return "current-node"
	case TargetDescendant:
		return "descendant-node"
	case TargetAncestor:
		return "ancestor-node"
	case TargetSibling:
		return "sibling-node"
	default:
		return "outside-tree"
	}
}

// panelHit reports whether (x, y) falls inside the node's anchor or panel
// element. For closed panels only the anchor counts; a hidden panel occupies
// no space.
func panelHit(n *PanelNode, x, y float64) bool {
	if n == nil || n.Data == nil {
		return false
	}
	if elementContains(n.Data.Anchor, x, y) {
		return true
	}
	return n.Data.open && elementContains(n.Data.Floating, x, y)
}

// ClassifyPoint classifies the point (x, y) relative to the node with the
// given id. Search order: the node's own elements, then open descendants
// (depth-first, first match wins), then ancestors up to the root, then
// siblings, then outside. Malformed coordinates classify as outside, and an
// unknown id classifies as outside with a diagnostic.
func (f *FloatingTree) ClassifyPoint(id NodeID, x, y float64) Classification {
	n := f.tree.Find(id)
	if n == nil {
		diag("ClassifyPoint: unknown id %q", id)
		return TargetOutside
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return TargetOutside
	}

	if panelHit(n, x, y) {
		return TargetSelf
	}

	// Open descendants, pre-order, short-circuit on first hit. Closed
	// subtrees are pruned: a closed descendant cannot own a visible panel.
	found := false
	for _, child := range n.Children() {
		f.tree.Walk(child, func(d *PanelNode) bool {
			if found || !d.Data.open {
				return false
			}
			if panelHit(d, x, y) {
				found = true
				return false
			}
			return true
		})
		if found {
			return TargetDescendant
		}
	}

	for p := n.Parent(); p != nil; p = p.Parent() {
		if panelHit(p, x, y) {
			return TargetAncestor
		}
	}

	if parent := n.Parent(); parent != nil {
		for _, s := range parent.Children() {
			if s == n {
				continue
			}
			if panelHit(s, x, y) {
				return TargetSibling
			}
		}
	}

	return TargetOutside
}

// ClassifyElement classifies a target element (a focus destination) relative
// to the node with the given id. An element matches a node when it is that
// node's anchor or panel by identity, or when its bounds center lies inside
// them; the search order matches ClassifyPoint.
func (f *FloatingTree) ClassifyElement(id NodeID, target Element) Classification {
	if target == nil {
		return TargetOutside
	}
	n := f.tree.Find(id)
	if n == nil {
		diag("ClassifyElement: unknown id %q", id)
		return TargetOutside
	}
	if n.Data.Anchor == target || n.Data.Floating == target {
		return TargetSelf
	}
	b := BoundsOf(target)
	return f.ClassifyPoint(id, b.X+b.Width/2, b.Y+b.Height/2)
}

// PointInPanel is the degenerate, tree-free check used when a panel is not
// nested: inside means the point hit the panel's own anchor or (if open)
// floating element.
func PointInPanel(p *Panel, x, y float64) bool {
	if p == nil || math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	if elementContains(p.Anchor, x, y) {
		return true
	}
	return p.open && elementContains(p.Floating, x, y)
}
