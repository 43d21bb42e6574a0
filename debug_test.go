package canopy

import (
	"strings"
	"testing"
)

func TestDiagAlwaysEmits(t *testing.T) {
	lines := captureDiags(t)
	diag("unknown id %q", "ghost")
	if len(*lines) != 1 || !strings.Contains((*lines)[0], `"ghost"`) {
		t.Errorf("diag output = %v", *lines)
	}
	if !strings.HasPrefix((*lines)[0], "[canopy] ") {
		t.Errorf("diagnostic missing prefix: %q", (*lines)[0])
	}
}

func TestDebugfGatedByDebugMode(t *testing.T) {
	lines := captureDiags(t)

	debugf("trace")
	if len(*lines) != 0 {
		t.Fatal("debugf emitted with debug mode off")
	}

	SetDebug(true)
	defer SetDebug(false)
	debugf("trace")
	if len(*lines) != 1 {
		t.Errorf("got %d lines, want 1", len(*lines))
	}
}

func TestDebugCheckTreeDepth(t *testing.T) {
	lines := captureDiags(t)
	SetDebug(true)
	defer SetDebug(false)

	tr := NewTree[int]()
	n := tr.Add(0, "", "n0")
	for i := 1; i <= debugMaxTreeDepth; i++ {
		n = tr.Add(i, n.ID(), "")
	}
	*lines = (*lines)[:0]
	debugCheckTreeDepth(n)
	if len(*lines) != 1 || !strings.Contains((*lines)[0], "depth") {
		t.Errorf("deep chain should warn, got %v", *lines)
	}

	shallow := tr.Find("n0")
	*lines = (*lines)[:0]
	debugCheckTreeDepth(shallow)
	if len(*lines) != 0 {
		t.Errorf("shallow node warned: %v", *lines)
	}
}
