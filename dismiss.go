package canopy

import "time"

// DismissManager implements the two tree-wide dismissal policies: Escape
// closes only the innermost open panel, and a press that lands outside a
// branch closes every open panel the press missed. One per FloatingTree,
// routed through PointerManager.SetDismiss.
type DismissManager struct {
	tree *FloatingTree
}

// NewDismiss creates a dismiss manager for the given tree.
func NewDismiss(tree *FloatingTree) *DismissManager {
	return &DismissManager{tree: tree}
}

// HandleEscape closes the deepest open panel, peeling one layer per press.
func (d *DismissManager) HandleEscape() {
	d.tree.CloseDeepest(ReasonEscapeKey)
}

// HandleMove is a no-op.
func (d *DismissManager) HandleMove(x, y float64, t time.Time) {}

// HandlePress closes everything the press missed. A press on a node's
// elements keeps that node's branch (its ancestors and descendants) open and
// closes all other branches, sibling branches in insertion order; a press
// that hits nothing closes every open panel.
func (d *DismissManager) HandlePress(x, y float64, t time.Time) {
	open := d.tree.OpenNodes()
	if len(open) == 0 {
		return
	}

	// Deepest hit wins, so a press on a submenu preserves its whole chain.
	var hit *PanelNode
	for _, n := range d.tree.Tree().Traverse(TraverseDFS, nil) {
		if panelHit(n, x, y) {
			if hit == nil || n.Depth() >= hit.Depth() {
				hit = n
			}
		}
	}

	if hit == nil {
		d.tree.CloseAll(ReasonOutsidePress)
		return
	}
	d.tree.CloseBranchesExcept(hit.ID(), ReasonOutsidePress)
}

// HandleRelease is a no-op.
func (d *DismissManager) HandleRelease(x, y float64, t time.Time) {}

// Update is a no-op.
func (d *DismissManager) Update(dt float64) {}
