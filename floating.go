package canopy

// EventSink is the interface for optional event-bus integration. When set on
// a FloatingTree, every open/close transition is forwarded to it. The
// ecs subpackage provides a Donburi-backed implementation.
type EventSink interface {
	EmitPanelEvent(event PanelEvent)
}

// PanelEvent carries one open-state transition for the event bridge.
type PanelEvent struct {
	ID     NodeID
	Open   bool
	Reason CloseReason
}

// Panel is the per-node payload of a FloatingTree: the anchor/panel element
// pair and the open flag. The elements are opaque geometric handles; canopy
// reads their bounds and never mutates them.
type Panel struct {
	Anchor   Element
	Floating Element

	open         bool
	onOpenChange func(open bool, reason CloseReason)
}

// Open reports the panel's current visibility.
func (p *Panel) Open() bool { return p.open }

// PanelNode is a tree node carrying a Panel payload.
type PanelNode = Node[*Panel]

// PanelOptions configures AddPanel. The zero value registers a closed root
// panel with a generated id.
type PanelOptions struct {
	// ParentID nests the panel under an existing node. Empty means root.
	ParentID NodeID
	// ID overrides the generated node id.
	ID NodeID
	// Open registers the panel already visible.
	Open bool
	// OnOpenChange observes every open-state transition with its reason.
	// Cascade-induced closes arrive with ReasonAncestorClose.
	OnOpenChange func(open bool, reason CloseReason)
}

// FloatingTree layers floating-panel semantics on a Tree: cascade close,
// open-node queries, and relationship-scoped iteration. One FloatingTree per
// floating hierarchy; instances are independent and must be passed explicitly
// to the interaction behaviors that consume them.
type FloatingTree struct {
	tree *Tree[*Panel]
	sink EventSink
}

// NewFloatingTree creates an empty floating hierarchy.
func NewFloatingTree() *FloatingTree {
	return &FloatingTree{tree: NewTree[*Panel]()}
}

// SetEventSink installs an optional sink for open/close transitions.
func (f *FloatingTree) SetEventSink(sink EventSink) {
	f.sink = sink
}

// Tree exposes the underlying registry for traversal and structural queries.
func (f *FloatingTree) Tree() *Tree[*Panel] { return f.tree }

// Root returns the root panel node, or nil.
func (f *FloatingTree) Root() *PanelNode { return f.tree.Root() }

// Find returns the panel node with the given id, or nil.
func (f *FloatingTree) Find(id NodeID) *PanelNode { return f.tree.Find(id) }

// AddPanel registers a floating panel for the given anchor/panel element
// pair. Returns nil (with a diagnostic) on a structurally invalid request,
// mirroring Tree.Add.
func (f *FloatingTree) AddPanel(anchor, floating Element, opts PanelOptions) *PanelNode {
	p := &Panel{
		Anchor:       anchor,
		Floating:     floating,
		open:         opts.Open,
		onOpenChange: opts.OnOpenChange,
	}
	return f.tree.Add(p, opts.ParentID, opts.ID)
}

// RemovePanel unregisters a panel and its entire subtree, typically when the
// panel unmounts. No close callbacks fire; interaction behaviors verify tree
// membership before acting, so callbacks scheduled against removed nodes
// become no-ops.
func (f *FloatingTree) RemovePanel(id NodeID) bool {
	return f.tree.Remove(id, RemoveRecursive)
}

// IsOpen reports whether the panel with the given id is open.
// Unknown ids are closed.
func (f *FloatingTree) IsOpen(id NodeID) bool {
	n := f.tree.Find(id)
	return n != nil && n.Data.open
}

// SetOpen transitions a panel's open flag, notifying its observer and the
// event sink. Closing a panel cascades: every descendant that is open at the
// moment of the call is closed with ReasonAncestorClose, depth-first in
// sibling order, before SetOpen returns. The open set is snapshotted up
// front, so a reentrant close from inside an observer cannot make a
// descendant be visited twice. Opening never cascades.
func (f *FloatingTree) SetOpen(id NodeID, open bool, reason CloseReason) bool {
	n := f.tree.Find(id)
	if n == nil {
		diag("SetOpen: unknown id %q", id)
		return false
	}
	if open {
		f.applyOpen(n, true, reason)
		return true
	}

	// Snapshot open descendants before any observer runs; observers may
	// mutate the tree.
	var cascade []*PanelNode
	for _, d := range f.tree.Traverse(TraverseDFS, n)[1:] {
		if d.Data.open {
			cascade = append(cascade, d)
		}
	}
	f.applyOpen(n, false, reason)
	for _, d := range cascade {
		// Skip nodes an observer already closed or removed.
		if f.tree.Find(d.id) != d || !d.Data.open {
			continue
		}
		f.applyOpen(d, false, ReasonAncestorClose)
	}
	return true
}

func (f *FloatingTree) applyOpen(n *PanelNode, open bool, reason CloseReason) {
	if n.Data.open == open {
		return
	}
	n.Data.open = open
	debugf("panel %q open=%v reason=%s", n.id, open, reason)
	if n.Data.onOpenChange != nil {
		n.Data.onOpenChange(open, reason)
	}
	if f.sink != nil {
		f.sink.EmitPanelEvent(PanelEvent{ID: n.id, Open: open, Reason: reason})
	}
}

// OpenNodes returns all open panels reachable from the root, root-first in
// tree (pre-order) order.
func (f *FloatingTree) OpenNodes() []*PanelNode {
	var out []*PanelNode
	for _, n := range f.tree.Traverse(TraverseDFS, nil) {
		if n.Data.open {
			out = append(out, n)
		}
	}
	return out
}

// DeepestOpenNode returns the open panel with the longest ancestor chain, or
// nil when nothing is open. Equal depths resolve to the most recently added
// node, so a dismiss targets the panel the user opened last.
func (f *FloatingTree) DeepestOpenNode() *PanelNode {
	var best *PanelNode
	bestDepth := -1
	for _, n := range f.OpenNodes() {
		d := n.Depth()
		if d > bestDepth || (d == bestDepth && n.seq > best.seq) {
			best = n
			bestDepth = d
		}
	}
	return best
}

// CloseDeepest closes only the innermost open panel. Returns false when
// nothing is open. This is the single-dismiss primitive: one Escape press
// peels one layer off the stack.
func (f *FloatingTree) CloseDeepest(reason CloseReason) bool {
	n := f.DeepestOpenNode()
	if n == nil {
		return false
	}
	return f.SetOpen(n.id, false, reason)
}

// CloseAll closes every open panel, root-first.
func (f *FloatingTree) CloseAll(reason CloseReason) {
	for _, n := range f.OpenNodes() {
		if n.Data.open {
			f.SetOpen(n.id, false, reason)
		}
	}
}

// CloseBranchesExcept closes every open panel outside the full branch
// (ancestors, self, descendants) of the given node. Sibling branches are
// processed in insertion order, each cascading depth-first, which makes the
// multi-branch case deterministic.
func (f *FloatingTree) CloseBranchesExcept(id NodeID, reason CloseReason) {
	f.Apply(id, func(n *PanelNode) {
		if n.Data.open {
			f.SetOpen(n.id, false, reason)
		}
	}, ApplyTo(RelAllExceptBranch))
}

// --- Relationship-scoped iteration ---

// Relationship selects which nodes, relative to a reference node, an Apply
// call visits.
type Relationship uint8

const (
	// RelAncestorsOnly visits the parent chain up to the root.
	RelAncestorsOnly Relationship = iota
	// RelDescendantsOnly visits the full subtree below the node.
	RelDescendantsOnly
	// RelSiblingsOnly visits the parent's other children.
	RelSiblingsOnly
	// RelSelfAndAncestors visits the node plus its parent chain.
	RelSelfAndAncestors
	// RelSelfAndChildren visits the node plus its direct children.
	RelSelfAndChildren
	// RelSelfAndDescendants visits the node plus its full subtree.
	RelSelfAndDescendants
	// RelSelfAndSiblings visits the node plus the parent's other children.
	RelSelfAndSiblings
	// RelSelfAncestorsAndChildren visits the node, its parent chain, and its
	// direct children.
	RelSelfAncestorsAndChildren
	// RelFullBranch visits ancestors, the node, and its full subtree.
	RelFullBranch
	// RelAllExceptBranch visits every node outside the full branch.
	RelAllExceptBranch
)

// ApplyOptions configures FloatingTree.Apply. Construct with ApplyTo for the
// common non-inverted case.
type ApplyOptions struct {
	Relationship Relationship
	// ApplyToMatching selects the matched set when true and its complement
	// when false.
	ApplyToMatching bool
}

// ApplyTo returns options that visit the nodes matching rel.
func ApplyTo(rel Relationship) ApplyOptions {
	return ApplyOptions{Relationship: rel, ApplyToMatching: true}
}

// Apply runs fn on the subset of nodes selected by the relationship filter
// relative to the node with the given id, in tree (pre-order) order. With
// ApplyToMatching false the complement is visited instead. An unknown id or
// relationship logs a warning and applies to nothing.
func (f *FloatingTree) Apply(id NodeID, fn func(*PanelNode), opts ApplyOptions) {
	n := f.tree.Find(id)
	if n == nil {
		diag("Apply: unknown id %q", id)
		return
	}
	if opts.Relationship > RelAllExceptBranch {
		diag("Apply: unrecognized relationship %d", opts.Relationship)
		return
	}

	matched := make(map[*PanelNode]bool)
	mark := func(nodes ...*PanelNode) {
		for _, m := range nodes {
			matched[m] = true
		}
	}
	ancestors := func() {
		for p := n.parent; p != nil; p = p.parent {
			matched[p] = true
		}
	}
	descendants := func() {
		mark(f.tree.Traverse(TraverseDFS, n)[1:]...)
	}
	siblings := func() {
		if n.parent == nil {
			return
		}
		for _, s := range n.parent.children {
			if s != n {
				matched[s] = true
			}
		}
	}

	switch opts.Relationship {
	case RelAncestorsOnly:
		ancestors()
	case RelDescendantsOnly:
		descendants()
	case RelSiblingsOnly:
		siblings()
	case RelSelfAndAncestors:
		mark(n)
		ancestors()
	case RelSelfAndChildren:
		mark(n)
		mark(n.children...)
	case RelSelfAndDescendants:
		mark(n)
		descendants()
	case RelSelfAndSiblings:
		mark(n)
		siblings()
	case RelSelfAncestorsAndChildren:
		mark(n)
		ancestors()
		mark(n.children...)
	case RelFullBranch, RelAllExceptBranch:
		mark(n)
		ancestors()
		descendants()
	}

	want := opts.ApplyToMatching
	if opts.Relationship == RelAllExceptBranch {
		// The branch is the matched set; the filter targets everything else.
		want = !want
	}
	for _, node := range f.tree.Traverse(TraverseDFS, nil) {
		if matched[node] == want {
			fn(node)
		}
	}
}

// Dispose tears down the hierarchy. Open panels are closed with
// ReasonTeardown first so observers see a final consistent state.
func (f *FloatingTree) Dispose() {
	f.CloseAll(ReasonTeardown)
	f.tree.Dispose()
}
