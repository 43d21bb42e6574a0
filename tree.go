package canopy

import "fmt"

// --- IDs ---

// NodeID uniquely identifies a node within a Tree. Callers may supply their
// own ids (widget ids map naturally onto panel ids); otherwise one is
// generated.
type NodeID string

// nodeIDCounter is a plain counter (no atomic; canopy is single-threaded,
// driven by the host's event loop).
var nodeIDCounter uint64

func nextNodeID() NodeID {
	nodeIDCounter++
	return NodeID(fmt.Sprintf("canopy-%d", nodeIDCounter))
}

// --- Node ---

// Node is one entry in a Tree, pairing a caller payload with its place in the
// hierarchy. Nodes are created through Tree.Add and must not be constructed
// directly.
type Node[T any] struct {
	id       NodeID
	Data     T
	parent   *Node[T]
	children []*Node[T]
	root     bool
	seq      uint64 // insertion sequence, used for deterministic tie-breaks
}

// ID returns the node's identifier.
func (n *Node[T]) ID() NodeID { return n.id }

// Parent returns the parent node, or nil for roots and orphans.
func (n *Node[T]) Parent() *Node[T] { return n.parent }

// Children returns the child list in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (n *Node[T]) Children() []*Node[T] { return n.children }

// NumChildren returns the number of children.
func (n *Node[T]) NumChildren() int { return len(n.children) }

// IsRoot reports whether this node is the tree's designated entry point.
// Orphans produced by RemoveOrphan are not roots.
func (n *Node[T]) IsRoot() bool { return n.root }

// Depth returns the length of the ancestor chain (0 for a root or orphan).
func (n *Node[T]) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node[T]) IsAncestorOf(other *Node[T]) bool {
	if other == nil {
		return false
	}
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// IsDescendantOf reports whether n is a strict descendant of other.
func (n *Node[T]) IsDescendantOf(other *Node[T]) bool {
	if other == nil {
		return false
	}
	return other.IsAncestorOf(n)
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node[T]) removeChildByPtr(child *Node[T]) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// --- Tree ---

// RemoveStrategy selects what happens to a removed node's children.
type RemoveStrategy uint8

const (
	// RemoveRecursive deletes the node and its entire subtree.
	RemoveRecursive RemoveStrategy = iota
	// RemoveOrphan deletes only the node; its children are detached and stay
	// registered as parentless subtree roots.
	RemoveOrphan
)

// TraverseOrder selects the enumeration order of Tree.Traverse.
type TraverseOrder uint8

const (
	// TraverseDFS yields a node, then each child's subtree in sibling order
	// (pre-order).
	TraverseDFS TraverseOrder = iota
	// TraverseBFS yields all nodes at a depth before any node at the next,
	// preserving sibling order within a depth.
	TraverseBFS
)

// Tree is a registry of Nodes forming one hierarchy. It has no floating-panel
// semantics of its own; FloatingTree layers those on top.
//
// No operation on a Tree panics over a structurally invalid request (unknown
// id, cycle attempt, duplicate root). Invalid requests return a nil or false
// sentinel and emit one diagnostic line, so a misbehaving caller inside a UI
// event callback degrades to a no-op instead of crashing the host.
type Tree[T any] struct {
	root    *Node[T]
	nodeMap map[NodeID]*Node[T]
	nextSeq uint64
}

// NewTree creates an empty tree.
func NewTree[T any]() *Tree[T] {
	return &Tree[T]{nodeMap: make(map[NodeID]*Node[T])}
}

// Root returns the designated root node, or nil for an empty tree.
func (t *Tree[T]) Root() *Node[T] { return t.root }

// Len returns the number of registered nodes, orphans included.
func (t *Tree[T]) Len() int { return len(t.nodeMap) }

// Find returns the node with the given id, or nil.
func (t *Tree[T]) Find(id NodeID) *Node[T] {
	return t.nodeMap[id]
}

// Add registers a new node carrying data. An empty parentID creates the root;
// adding a second root, or adding under an unknown parent, fails and returns
// nil. If id is empty one is generated; a duplicate id also fails.
func (t *Tree[T]) Add(data T, parentID NodeID, id NodeID) *Node[T] {
	var parent *Node[T]
	if parentID == "" {
		if t.root != nil {
			diag("Add: tree already has root %q; remove it before adding another", t.root.id)
			return nil
		}
	} else {
		parent = t.nodeMap[parentID]
		if parent == nil {
			diag("Add: unknown parent %q", parentID)
			return nil
		}
	}

	if id == "" {
		id = nextNodeID()
	} else if t.nodeMap[id] != nil {
		diag("Add: duplicate id %q", id)
		return nil
	}

	t.nextSeq++
	n := &Node[T]{id: id, Data: data, parent: parent, seq: t.nextSeq}
	if parent == nil {
		n.root = true
		t.root = n
	} else {
		parent.children = append(parent.children, n)
	}
	t.nodeMap[id] = n
	debugCheckTreeDepth(n)
	return n
}

// Remove deletes the node with the given id. RemoveRecursive deletes the
// whole subtree; RemoveOrphan detaches the children first, leaving them
// registered with a nil parent. Returns false for an unknown id.
func (t *Tree[T]) Remove(id NodeID, strategy RemoveStrategy) bool {
	n := t.nodeMap[id]
	if n == nil {
		diag("Remove: unknown id %q", id)
		return false
	}

	switch strategy {
	case RemoveOrphan:
		for _, child := range n.children {
			child.parent = nil
		}
		n.children = nil
	default:
		t.unregisterSubtree(n)
	}

	if n.parent != nil {
		n.parent.removeChildByPtr(n)
		n.parent = nil
	}
	if t.root == n {
		t.root = nil
	}
	delete(t.nodeMap, id)
	return true
}

// unregisterSubtree removes every descendant of n (not n itself) from the
// node map and severs their links.
func (t *Tree[T]) unregisterSubtree(n *Node[T]) {
	for _, child := range n.children {
		t.unregisterSubtree(child)
		child.parent = nil
		delete(t.nodeMap, child.id)
	}
	n.children = nil
}

// Move re-parents the node with the given id under newParentID, appending it
// to the new parent's children. Rejected (returns false) when either id is
// unknown, the node is the root, the new parent is the node itself, or the
// new parent lies inside the node's own subtree (cycle guard: the candidate
// parent's ancestor chain is walked up to the root and must not contain the
// moving node).
func (t *Tree[T]) Move(id, newParentID NodeID) bool {
	n := t.nodeMap[id]
	if n == nil {
		diag("Move: unknown id %q", id)
		return false
	}
	if n.root {
		diag("Move: %q is the root", id)
		return false
	}
	newParent := t.nodeMap[newParentID]
	if newParent == nil {
		diag("Move: unknown parent %q", newParentID)
		return false
	}
	if newParent == n {
		diag("Move: cannot parent %q to itself", id)
		return false
	}
	for p := newParent; p != nil; p = p.parent {
		if p == n {
			diag("Move: %q is a descendant of %q; move would create a cycle", newParentID, id)
			return false
		}
	}

	if n.parent != nil {
		n.parent.removeChildByPtr(n)
	}
	n.parent = newParent
	newParent.children = append(newParent.children, n)
	debugCheckTreeDepth(n)
	return true
}

// Traverse enumerates the subtree under start (inclusive) in the given order.
// A nil start enumerates from the root. The result is an eager slice; menu
// hierarchies are small.
func (t *Tree[T]) Traverse(order TraverseOrder, start *Node[T]) []*Node[T] {
	if start == nil {
		start = t.root
	}
	if start == nil {
		return nil
	}
	if order == TraverseBFS {
		var out []*Node[T]
		queue := []*Node[T]{start}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			out = append(out, n)
			queue = append(queue, n.children...)
		}
		return out
	}
	var out []*Node[T]
	var visit func(*Node[T])
	visit = func(n *Node[T]) {
		out = append(out, n)
		for _, child := range n.children {
			visit(child)
		}
	}
	visit(start)
	return out
}

// Walk visits the subtree under start (inclusive) in pre-order. Returning
// false from fn prunes the node's subtree; siblings are still visited.
func (t *Tree[T]) Walk(start *Node[T], fn func(*Node[T]) bool) {
	if start == nil {
		start = t.root
	}
	if start == nil {
		return
	}
	if !fn(start) {
		return
	}
	for _, child := range start.children {
		t.Walk(child, fn)
	}
}

// Dispose clears the registry and root. Per-node cleanup is the payload
// owner's responsibility, handled one layer up.
func (t *Tree[T]) Dispose() {
	for id, n := range t.nodeMap {
		n.parent = nil
		n.children = nil
		delete(t.nodeMap, id)
	}
	t.root = nil
}
