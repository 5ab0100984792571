// Package rewrite implements the condflat core: position-to-node resolution,
// ancestor search, the three conditional transforms, and the glue that turns
// a rewritten subtree back into a proposed text edit.
package rewrite

import "github.com/mamaar/condflat/pkg/syntax"

// Resolve maps a byte offset to the most specific node covering it. Starting
// at the root it descends into whichever child's half-open [start, end) span
// contains the offset; when no child qualifies the current node is returned.
// The root file node spans the whole buffer, so any in-range offset resolves.
func Resolve(root *syntax.Node, offset int) *syntax.Node {
	current := root
	for {
		descended := false
		for _, child := range current.Children() {
			if child.Span().Contains(offset) {
				current = child
				descended = true
				break
			}
		}
		if !descended {
			return current
		}
	}
}

// FindEnclosing walks parent links from node upward and returns the first
// node satisfying the predicate, or nil when the walk reaches past the file
// root without a match. The walk never descends and never revisits a node.
func FindEnclosing(node *syntax.Node, pred func(*syntax.Node) bool) *syntax.Node {
	for n := node; n != nil; n = n.Parent {
		if pred(n) {
			return n
		}
	}
	return nil
}

// isIfStatement and isConditional are the two predicates used with
// FindEnclosing in this system.

func isIfStatement(n *syntax.Node) bool {
	return n.Kind == syntax.KindIf
}

func isConditional(n *syntax.Node) bool {
	return n.Kind == syntax.KindCond
}
