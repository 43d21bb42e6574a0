package canopy

// FocusBehavior opens a panel when its anchor receives focus and closes it
// when focus settles outside the panel's branch. It is not pointer-driven;
// the host's focus system calls HandleFocus with each new focus target.
type FocusBehavior struct {
	tree *FloatingTree
	id   NodeID
}

// NewFocus creates a focus behavior for the panel with the given id.
func NewFocus(tree *FloatingTree, id NodeID) *FocusBehavior {
	return &FocusBehavior{tree: tree, id: id}
}

// HandleFocus reacts to focus landing on target. A nil target (focus left
// the scene entirely) closes the panel.
func (f *FocusBehavior) HandleFocus(target Element) {
	n := f.tree.Find(f.id)
	if n == nil {
		return
	}
	if target == nil {
		if n.Data.open {
			f.tree.SetOpen(f.id, false, ReasonFocus)
		}
		return
	}

	switch f.tree.ClassifyElement(f.id, target) {
	case TargetSelf:
		if target == n.Data.Anchor && !n.Data.open {
			f.tree.SetOpen(f.id, true, ReasonFocus)
		}
	case TargetDescendant:
		// Focus moved deeper; the branch stays open.
	default:
		if n.Data.open {
			f.tree.SetOpen(f.id, false, ReasonFocus)
		}
	}
}
