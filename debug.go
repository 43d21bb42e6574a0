package canopy

import (
	"fmt"
	"os"
)

// globalDebug enables extra invariant checks and verbose logging.
// Structural-misuse diagnostics (diag) are emitted regardless.
var globalDebug bool

// SetDebug toggles debug-mode invariant checks and verbose tracing.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// diagWriter is swappable so tests can capture diagnostics.
var diagWriter = func(line string) {
	_, _ = fmt.Fprintln(os.Stderr, line)
}

// diag reports a structurally invalid request (unknown id, cycle attempt,
// duplicate root). Tree operations never panic over these, since they run
// inside UI event callbacks; a single diagnostic line is the only signal
// beyond the falsy return value.
func diag(format string, args ...any) {
	diagWriter("[canopy] " + fmt.Sprintf(format, args...))
}

// debugf logs verbose trace output when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	diagWriter("[canopy] " + fmt.Sprintf(format, args...))
}

// debugMaxTreeDepth is the hierarchy depth beyond which a warning is logged.
// Menu hierarchies deeper than this almost certainly indicate a reparenting bug.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth[T any](n *Node[T]) {
	if !globalDebug {
		return
	}
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		diag("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.id)
	}
}
