package canopy

import (
	"testing"
)

// transition records one observed open-state change.
type transition struct {
	id     NodeID
	open   bool
	reason CloseReason
}

// buildFloatingTree builds the three-level hierarchy used throughout:
// root -> child -> grandchild, plus a sibling of child, with elements laid
// out as a dropdown chain growing rightward.
//
//	root anchor (0,0 20x20)      root panel (0,30 100x100)
//	child anchor (10,40 80x20)   child panel (110,40 100x100)
//	gc anchor (120,50 80x20)     gc panel (220,50 100x100)
//	sib anchor (10,70 80x20)     sib panel (110,140 100x100)
func buildFloatingTree(t *testing.T, log *[]transition) *FloatingTree {
	t.Helper()
	ft := NewFloatingTree()
	observe := func(id NodeID) func(bool, CloseReason) {
		return func(open bool, reason CloseReason) {
			if log != nil {
				*log = append(*log, transition{id, open, reason})
			}
		}
	}
	add := func(id, parent NodeID, anchor, panel Rect) {
		n := ft.AddPanel(NewRectElement(anchor), NewRectElement(panel), PanelOptions{
			ID: id, ParentID: parent, OnOpenChange: observe(id),
		})
		if n == nil {
			t.Fatalf("AddPanel(%q) failed", id)
		}
	}
	add("root", "", Rect{0, 0, 20, 20}, Rect{0, 30, 100, 100})
	add("child", "root", Rect{10, 40, 80, 20}, Rect{110, 40, 100, 100})
	add("gc", "child", Rect{120, 50, 80, 20}, Rect{220, 50, 100, 100})
	add("sib", "root", Rect{10, 70, 80, 20}, Rect{110, 140, 100, 100})
	return ft
}

func openAll(t *testing.T, ft *FloatingTree, ids ...NodeID) {
	t.Helper()
	for _, id := range ids {
		if !ft.SetOpen(id, true, ReasonHover) {
			t.Fatalf("SetOpen(%q) failed", id)
		}
	}
}

// --- AddPanel / RemovePanel ---

func TestAddPanelNesting(t *testing.T) {
	ft := buildFloatingTree(t, nil)
	if ft.Root().ID() != "root" {
		t.Error("root id mismatch")
	}
	if ft.Find("gc").Parent().ID() != "child" {
		t.Error("gc should nest under child")
	}
	if ft.IsOpen("root") {
		t.Error("panels start closed")
	}
}

func TestRemovePanelSubtree(t *testing.T) {
	ft := buildFloatingTree(t, nil)
	if !ft.RemovePanel("child") {
		t.Fatal("RemovePanel failed")
	}
	if ft.Find("child") != nil || ft.Find("gc") != nil {
		t.Error("child subtree should be gone")
	}
	if ft.Find("sib") == nil {
		t.Error("sibling must survive")
	}
}

// --- Cascade close ---

func TestCascadeClose(t *testing.T) {
	var log []transition
	ft := buildFloatingTree(t, &log)
	openAll(t, ft, "root", "child", "gc")
	log = log[:0]

	if !ft.SetOpen("root", false, ReasonEscapeKey) {
		t.Fatal("SetOpen failed")
	}

	for _, id := range []NodeID{"root", "child", "gc"} {
		if ft.IsOpen(id) {
			t.Errorf("%q should be closed", id)
		}
	}
	if len(log) != 3 {
		t.Fatalf("expected 3 transitions, got %v", log)
	}
	if log[0] != (transition{"root", false, ReasonEscapeKey}) {
		t.Errorf("root transition = %+v", log[0])
	}
	// Descendants observe the cascade reason, depth order.
	if log[1] != (transition{"child", false, ReasonAncestorClose}) {
		t.Errorf("child transition = %+v", log[1])
	}
	if log[2] != (transition{"gc", false, ReasonAncestorClose}) {
		t.Errorf("gc transition = %+v", log[2])
	}
}

func TestCascadeLeavesNonDescendantsAlone(t *testing.T) {
	ft := buildFloatingTree(t, nil)
	openAll(t, ft, "root", "child", "gc", "sib")

	ft.SetOpen("child", false, ReasonClick)

	if ft.IsOpen("child") || ft.IsOpen("gc") {
		t.Error("child branch should be closed")
	}
	if !ft.IsOpen("root") || !ft.IsOpen("sib") {
		t.Error("root and sibling are not descendants and must stay open")
	}
}

func TestCascadeVisitsEachDescendantOnce(t *testing.T) {
	var log []transition
	ft := buildFloatingTree(t, &log)
	openAll(t, ft, "root", "child", "gc")
	log = log[:0]

	// A reentrant close from the child's observer must not double-close gc.
	reentered := false
	ft.Find("child").Data.onOpenChange = func(open bool, reason CloseReason) {
		log = append(log, transition{"child", open, reason})
		if !open && !reentered {
			reentered = true
			ft.SetOpen("child", false, reason) // already closed; no-op
		}
	}

	ft.SetOpen("root", false, ReasonClick)

	count := 0
	for _, tr := range log {
		if tr.id == "gc" && !tr.open {
			count++
		}
	}
	if count != 1 {
		t.Errorf("gc closed %d times, want exactly once (log %v)", count, log)
	}
}

func TestOpenDoesNotCascade(t *testing.T) {
	ft := buildFloatingTree(t, nil)
	openAll(t, ft, "root")
	if ft.IsOpen("child") || ft.IsOpen("gc") {
		t.Error("opening an ancestor must not open descendants")
	}
}

func TestSetOpenUnknownID(t *testing.T) {
	captureDiags(t)
	ft := buildFloatingTree(t, nil)
	if ft.SetOpen("nope", true, ReasonHover) {
		t.Error("SetOpen on unknown id should fail")
	}
}

// --- Open-node queries ---

func TestOpenNodesOrder(t *testing.T) {
	ft := buildFloatingTree(t, nil)
	openAll(t, ft, "sib", "gc", "root") // deliberately out of tree order

	var got []NodeID
	for _, n := range ft.OpenNodes() {
		got = append(got, n.ID())
	}
	// Tree order, root first; child is closed so it is absent.
	assertIDOrder(t, got, []NodeID{"root", "gc", "sib"})
}

func TestDeepestOpenNode(t *testing.T) {
	ft := buildFloatingTree(t, nil)
	openAll(t, ft, "root", "child", "gc")

	if n := ft.DeepestOpenNode(); n == nil || n.ID() != "gc" {
		t.Fatalf("deepest = %v, want gc", n)
	}
	ft.SetOpen("gc", false, ReasonEscapeKey)
	if n := ft.DeepestOpenNode(); n == nil || n.ID() != "child" {
		t.Fatalf("deepest after closing gc = %v, want child", n)
	}
}

func TestDeepestOpenNodeTieBreak(t *testing.T) {
	ft := buildFloatingTree(t, nil)
	// child and sib share depth 1; sib was added later.
	openAll(t, ft, "root", "child", "sib")
	if n := ft.DeepestOpenNode(); n == nil || n.ID() != "sib" {
		t.Fatalf("tie should go to the most recently added node, got %v", n)
	}
}

func TestCloseDeepestPeelsLayers(t *testing.T) {
	ft := buildFloatingTree(t, nil)
	openAll(t, ft, "root", "child", "gc")

	want := []NodeID{"gc", "child", "root"}
	for _, id := range want {
		if !ft.CloseDeepest(ReasonEscapeKey) {
			t.Fatalf("CloseDeepest failed at %q", id)
		}
		if ft.IsOpen(id) {
			t.Fatalf("%q should be closed", id)
		}
	}
	if ft.CloseDeepest(ReasonEscapeKey) {
		t.Error("CloseDeepest on empty stack should report false")
	}
}

// --- Apply ---

func TestApplyRelationships(t *testing.T) {
	ft := buildFloatingTree(t, nil)

	tests := []struct {
		name string
		id   NodeID
		rel  Relationship
		want []NodeID
	}{
		{"ancestors of gc", "gc", RelAncestorsOnly, []NodeID{"root", "child"}},
		{"descendants of root", "root", RelDescendantsOnly, []NodeID{"child", "gc", "sib"}},
		{"siblings of child", "child", RelSiblingsOnly, []NodeID{"sib"}},
		{"self and ancestors of gc", "gc", RelSelfAndAncestors, []NodeID{"root", "child", "gc"}},
		{"self and children of root", "root", RelSelfAndChildren, []NodeID{"root", "child", "sib"}},
		{"self and descendants of child", "child", RelSelfAndDescendants, []NodeID{"child", "gc"}},
		{"self and siblings of sib", "sib", RelSelfAndSiblings, []NodeID{"child", "sib"}},
		{"self ancestors children of child", "child", RelSelfAncestorsAndChildren, []NodeID{"root", "child", "gc"}},
		{"full branch of child", "child", RelFullBranch, []NodeID{"root", "child", "gc"}},
		{"all except branch of child", "child", RelAllExceptBranch, []NodeID{"sib"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []NodeID
			ft.Apply(tt.id, func(n *PanelNode) {
				got = append(got, n.ID())
			}, ApplyTo(tt.rel))
			assertIDOrder(t, got, tt.want)
		})
	}
}

func TestApplyInverted(t *testing.T) {
	ft := buildFloatingTree(t, nil)
	var got []NodeID
	ft.Apply("gc", func(n *PanelNode) {
		got = append(got, n.ID())
	}, ApplyOptions{Relationship: RelSelfAndAncestors, ApplyToMatching: false})
	assertIDOrder(t, got, []NodeID{"sib"})
}

func TestApplyUnknownRelationship(t *testing.T) {
	diags := captureDiags(t)
	ft := buildFloatingTree(t, nil)
	called := false
	ft.Apply("root", func(n *PanelNode) { called = true },
		ApplyOptions{Relationship: Relationship(99), ApplyToMatching: true})
	if called {
		t.Error("unknown relationship must apply to nothing")
	}
	if len(*diags) == 0 {
		t.Error("unknown relationship should log a warning")
	}
}

// --- Branch dismissal ---

func TestCloseBranchesExcept(t *testing.T) {
	ft := buildFloatingTree(t, nil)
	openAll(t, ft, "root", "child", "gc", "sib")

	ft.CloseBranchesExcept("child", ReasonOutsidePress)

	if ft.IsOpen("sib") {
		t.Error("sibling branch should be closed")
	}
	for _, id := range []NodeID{"root", "child", "gc"} {
		if !ft.IsOpen(id) {
			t.Errorf("%q is in the kept branch and must stay open", id)
		}
	}
}

// --- Event sink ---

type recordingSink struct {
	events []PanelEvent
}

func (s *recordingSink) EmitPanelEvent(e PanelEvent) { s.events = append(s.events, e) }

func TestEventSinkReceivesTransitions(t *testing.T) {
	ft := buildFloatingTree(t, nil)
	sink := &recordingSink{}
	ft.SetEventSink(sink)

	openAll(t, ft, "root", "child")
	ft.SetOpen("root", false, ReasonClick)

	if len(sink.events) != 4 {
		t.Fatalf("expected 4 events, got %v", sink.events)
	}
	last := sink.events[3]
	if last.ID != "child" || last.Open || last.Reason != ReasonAncestorClose {
		t.Errorf("cascade event = %+v", last)
	}
}

// --- Dispose ---

func TestDisposeClosesWithTeardownReason(t *testing.T) {
	var log []transition
	ft := buildFloatingTree(t, &log)
	openAll(t, ft, "root", "child")
	log = log[:0]

	ft.Dispose()

	if ft.Root() != nil || ft.Tree().Len() != 0 {
		t.Error("dispose should empty the tree")
	}
	if len(log) != 2 {
		t.Fatalf("expected 2 close transitions, got %v", log)
	}
	// Root closes with the teardown reason; its open descendant closes via
	// the usual cascade.
	if log[0] != (transition{"root", false, ReasonTeardown}) {
		t.Errorf("root transition = %+v", log[0])
	}
	if log[1] != (transition{"child", false, ReasonAncestorClose}) {
		t.Errorf("child transition = %+v", log[1])
	}
}
