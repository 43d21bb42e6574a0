package canopy

import "time"

// ClickEvent selects which half of a press/release pair a ClickBehavior
// reacts to.
type ClickEvent uint8

const (
	// EventPress toggles on pointer down (menus, context menus).
	EventPress ClickEvent = iota
	// EventRelease toggles on pointer up (buttons).
	EventRelease
)

// ClickOptions configures a ClickBehavior.
type ClickOptions struct {
	// Event picks press or release activation.
	Event ClickEvent
	// Toggle closes an already-open panel when the anchor is activated
	// again. Defaults off; set for dropdown-style triggers.
	Toggle bool
}

// ClickBehavior opens a panel when its anchor is activated and closes it when
// the activation lands on an ancestor, a sibling, or outside the tree.
// Activations on open descendants are ignored: the descendant owns its own
// lifecycle, and closing from here would yank the submenu out from under the
// user.
type ClickBehavior struct {
	tree *FloatingTree
	id   NodeID
	opts ClickOptions
}

// NewClick creates a click behavior for the panel with the given id.
func NewClick(tree *FloatingTree, id NodeID, opts ClickOptions) *ClickBehavior {
	return &ClickBehavior{tree: tree, id: id, opts: opts}
}

// HandleMove is a no-op.
func (c *ClickBehavior) HandleMove(x, y float64, t time.Time) {}

// HandlePress applies the activation policy when configured for EventPress.
func (c *ClickBehavior) HandlePress(x, y float64, t time.Time) {
	if c.opts.Event == EventPress {
		c.activate(x, y)
	}
}

// HandleRelease applies the activation policy when configured for EventRelease.
func (c *ClickBehavior) HandleRelease(x, y float64, t time.Time) {
	if c.opts.Event == EventRelease {
		c.activate(x, y)
	}
}

// Update is a no-op; clicks have no timers.
func (c *ClickBehavior) Update(dt float64) {}

func (c *ClickBehavior) activate(x, y float64) {
	n := c.tree.Find(c.id)
	if n == nil {
		return
	}

	switch c.tree.ClassifyPoint(c.id, x, y) {
	case TargetSelf:
		if elementContains(n.Data.Anchor, x, y) {
			if n.Data.open {
				if c.opts.Toggle {
					c.tree.SetOpen(c.id, false, ReasonClick)
				}
			} else {
				c.tree.SetOpen(c.id, true, ReasonClick)
			}
		}
		// Presses inside the open panel itself change nothing.
	case TargetDescendant:
		// Descendant activations are the descendant's business.
	default:
		// Ancestor, sibling, or outside: this panel loses.
		if n.Data.open {
			c.tree.SetOpen(c.id, false, ReasonOutsidePress)
		}
	}
}
