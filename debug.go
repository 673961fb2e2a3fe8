package slider

import (
	"fmt"
	"io"
	"os"
)

// globalDebug mirrors the most recently set Scene debug flag so that node and
// controller operations (which lack a Scene pointer) can check it cheaply.
// Only valid with a single Scene.
var globalDebug bool

// debugOut receives debug lines. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// debugf prints a "[slider]" line when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[slider] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("slider debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold. Decomposed
// text is at most content > section > paragraph > word > char > glyph deep.
const debugMaxTreeDepth = 16

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// warnf prints a "[slider]" line regardless of debug mode.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(debugOut, "[slider] "+format+"\n", args...)
}
