package sequoia

import (
	"fmt"
	"os"
	"time"
)

// renderStats holds per-frame timing and triangle metrics.
// Only populated when Scene.debug is true.
type renderStats struct {
	opaqueTime      time.Duration
	shadowTime      time.Duration
	transparentTime time.Duration
	drawnMeshes     int
	opaqueTris      int
	shadowTris      int
	transparentTris int
	lights          int
}

// debugLog prints timing and triangle stats to stderr.
func (s *Scene) debugLog() {
	if !s.debug {
		return
	}
	st := &s.stats
	total := st.opaqueTime + st.shadowTime + st.transparentTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[sequoia] opaque: %v | shadow: %v | transparent: %v | total: %v\n",
		st.opaqueTime, st.shadowTime, st.transparentTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[sequoia] meshes: %d | tris: %d/%d/%d | lights: %d | collision queries: %d\n",
		st.drawnMeshes, st.opaqueTris, st.shadowTris, st.transparentTris, st.lights, s.collisionQueries)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called when Scene.debug or the node's scene is
// in debug mode. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("sequoia debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[sequoia] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[sequoia] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// debugCheckLeafAttach warns on stderr when a child is attached to a
// non-group node. A leaf's subtree is drawn whole by whichever pass the
// leaf itself qualifies for, so a transparent child under an opaque mesh
// leaf renders in the opaque pass instead of its own.
func debugCheckLeafAttach(parent, child *Node) {
	if parent.Type != NodeTypeGroup {
		_, _ = fmt.Fprintf(os.Stderr, "[sequoia] warning: attaching %q to non-group node %q; the subtree draws in the parent's pass\n",
			child.Name, parent.Name)
	}
}

// debugCheckStackBalanced panics when a frame finishes with the matrix
// stack at any depth other than the base identity. An unbalanced stack
// means a draw path pushed without popping and every later sibling would
// inherit a stale transform.
func debugCheckStackBalanced(s *Scene) {
	if len(s.stack) != 1 {
		panic(fmt.Sprintf("sequoia debug: matrix stack unbalanced after frame (depth %d, want 1)", len(s.stack)))
	}
}
