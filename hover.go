package canopy

import "time"

// HoverOptions configures a HoverBehavior.
type HoverOptions struct {
	// OpenDelay postpones opening after the pointer enters the anchor.
	OpenDelay time.Duration
	// CloseDelay postpones closing after the pointer leaves, when the safe
	// polygon is not in use.
	CloseDelay time.Duration

	// SafePolygon gates closing on the hover-intent corridor instead of a
	// plain delay.
	SafePolygon bool
	// Polygon tunes the corridor when SafePolygon is set.
	Polygon SafePolygonOptions
	// Side is the resolved placement side of the panel relative to its
	// anchor, as reported by the placement engine.
	Side Side
}

// HoverBehavior opens a panel when the pointer enters its anchor and closes
// it when the pointer leaves for good. With SafePolygon enabled, travel from
// the anchor toward the panel through the computed corridor never closes;
// leaving the corridor confirms the close. Pointer activity over open
// descendants is left alone: each nested panel owns its own lifecycle.
type HoverBehavior struct {
	tree *FloatingTree
	id   NodeID
	opts HoverOptions

	session      *Session
	overSelf     bool
	openPending  bool
	openIn       time.Duration
	closePending bool
	closeIn      time.Duration
	lastX, lastY float64
}

// NewHover creates a hover behavior for the panel with the given id. The
// tree is passed explicitly; behaviors never reach for shared state.
func NewHover(tree *FloatingTree, id NodeID, opts HoverOptions) *HoverBehavior {
	return &HoverBehavior{tree: tree, id: id, opts: opts}
}

// HandleMove feeds a pointer position.
func (h *HoverBehavior) HandleMove(x, y float64, t time.Time) {
	n := h.tree.Find(h.id)
	if n == nil {
		// Panel was unmounted; a stale behavior must never close anything.
		h.teardown()
		return
	}
	defer func() { h.lastX, h.lastY = x, y }()

	inAnchor := elementContains(n.Data.Anchor, x, y)
	inPanel := n.Data.open && elementContains(n.Data.Floating, x, y)

	if inAnchor || inPanel {
		h.overSelf = true
		h.closePending = false
		if h.session != nil {
			h.session.Cancel()
			h.session = nil
		}
		if inAnchor && !n.Data.open && !h.openPending {
			if h.opts.OpenDelay <= 0 {
				h.tree.SetOpen(h.id, true, ReasonHover)
			} else {
				h.openPending = true
				h.openIn = h.opts.OpenDelay
			}
		}
		return
	}

	h.openPending = false

	if !n.Data.open {
		h.overSelf = false
		return
	}

	// Pointer is over an open descendant: the descendant's own behavior
	// decides; this panel stays open underneath it.
	if h.tree.ClassifyPoint(h.id, x, y) == TargetDescendant {
		h.overSelf = false
		h.closePending = false
		if h.session != nil {
			h.session.Cancel()
			h.session = nil
		}
		return
	}

	if h.overSelf {
		// Just left the anchor/panel: start deciding whether this is travel
		// toward the panel or a real leave.
		h.overSelf = false
		if h.opts.SafePolygon {
			h.session = NewSession(
				BoundsOf(n.Data.Anchor), BoundsOf(n.Data.Floating),
				h.opts.Side, Vec2{X: h.lastX, Y: h.lastY},
				h.opts.Polygon, h.closeFromPolygon,
			)
		} else if h.opts.CloseDelay > 0 {
			h.closePending = true
			h.closeIn = h.opts.CloseDelay
		} else {
			h.tree.SetOpen(h.id, false, ReasonHover)
			return
		}
	}

	if h.session != nil && !h.session.Done() {
		h.session.SampleAt(x, y, t)
		if h.session.Done() {
			h.session = nil
		}
	}
}

// HandlePress is a no-op; presses are click/dismiss territory.
func (h *HoverBehavior) HandlePress(x, y float64, t time.Time) {}

// HandleRelease is a no-op.
func (h *HoverBehavior) HandleRelease(x, y float64, t time.Time) {}

// Update advances open/close delays and the corridor grace timer by dt
// seconds.
func (h *HoverBehavior) Update(dt float64) {
	n := h.tree.Find(h.id)
	if n == nil {
		h.teardown()
		return
	}

	if h.openPending {
		h.openIn -= time.Duration(dt * float64(time.Second))
		if h.openIn <= 0 {
			h.openPending = false
			h.tree.SetOpen(h.id, true, ReasonHover)
		}
	}
	if h.closePending {
		h.closeIn -= time.Duration(dt * float64(time.Second))
		if h.closeIn <= 0 {
			h.closePending = false
			h.tree.SetOpen(h.id, false, ReasonHover)
		}
	}
	if h.session != nil {
		h.session.Update(dt)
		if h.session.Done() {
			h.session = nil
		}
	}
}

// Teardown cancels all pending work. Call when the panel unmounts.
func (h *HoverBehavior) Teardown() {
	h.teardown()
}

func (h *HoverBehavior) teardown() {
	h.openPending = false
	h.closePending = false
	h.overSelf = false
	if h.session != nil {
		h.session.Cancel()
		h.session = nil
	}
}

// closeFromPolygon fires when the corridor confirms intent to leave. The
// membership check makes a close scheduled before an unmount a no-op.
func (h *HoverBehavior) closeFromPolygon() {
	if h.tree.Find(h.id) == nil {
		return
	}
	h.tree.SetOpen(h.id, false, ReasonSafePolygon)
}
