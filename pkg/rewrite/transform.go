package rewrite

import "github.com/mamaar/condflat/pkg/syntax"

// ExtractStatements returns a fresh ordered copy of a block's statement list.
// With addMissingReturn set, a synthesized bare return is appended when no
// statement in the list is already a return. The source block is not mutated.
func ExtractStatements(block *syntax.Node, addMissingReturn bool) []*syntax.Node {
	stmts := make([]*syntax.Node, len(block.List))
	copy(stmts, block.List)
	if addMissingReturn && !hasReturn(stmts) {
		stmts = append(stmts, syntax.NewReturn(nil))
	}
	return stmts
}

func hasReturn(stmts []*syntax.Node) bool {
	for _, s := range stmts {
		if s.Kind == syntax.KindReturn {
			return true
		}
	}
	return false
}

// Invert produces the one-level syntactic negation of a boolean expression.
// A logical-not is unwrapped instead of double-wrapped, so Invert(Invert(x))
// is structurally x. No deeper simplification is performed.
func Invert(expr *syntax.Node) *syntax.Node {
	if expr.Kind == syntax.KindUnary && expr.Op == "!" {
		inner := expr.X
		// Parentheses under a negation exist only for the negation's
		// precedence; drop one layer so round-tripping is structural.
		if inner.Kind == syntax.KindParen {
			return inner.X
		}
		return inner
	}
	if needsParens(expr) {
		return syntax.NewNot(&syntax.Node{Kind: syntax.KindParen, X: expr})
	}
	return syntax.NewNot(expr)
}

// needsParens reports whether wrapping expr in "!" would change its parse.
func needsParens(expr *syntax.Node) bool {
	switch expr.Kind {
	case syntax.KindBinary, syntax.KindAssign, syntax.KindCond:
		return true
	}
	return false
}

// GuardClauseSimplify flattens an if/else into a guard clause followed by the
// former else body as sibling statements. The then-branch gains a synthesized
// return when it has none, so control cannot fall through into the spliced
// statements when the condition held.
func GuardClauseSimplify(ifStmt *syntax.Node) []*syntax.Node {
	thenStmts := ExtractStatements(ifStmt.Then, true)
	elseStmts := ExtractStatements(ifStmt.Else, false)
	guard := syntax.NewIf(ifStmt.Cond, syntax.NewBlock(thenStmts), nil)
	return append([]*syntax.Node{guard}, elseStmts...)
}

// InvertAndSimplify is the symmetric flattening: the condition is inverted,
// the former else body becomes the guarded early exit, and the former then
// body becomes the fallthrough tail.
func InvertAndSimplify(ifStmt *syntax.Node) []*syntax.Node {
	thenStmts := ExtractStatements(ifStmt.Then, false)
	elseStmts := ExtractStatements(ifStmt.Else, true)
	guard := syntax.NewIf(Invert(ifStmt.Cond), syntax.NewBlock(elseStmts), nil)
	return append([]*syntax.Node{guard}, thenStmts...)
}

// ExpandConditional recursively expands a conditional expression into an
// equivalent statement tree: one if-statement per nested conditional level,
// every leaf path ending in a return of the leaf expression verbatim. A
// non-nested input produces a bare return.
func ExpandConditional(expr *syntax.Node) *syntax.Node {
	cond := unparen(expr)
	if cond.Kind != syntax.KindCond {
		return syntax.NewReturn(expr)
	}
	thenBranch := syntax.NewBlock([]*syntax.Node{ExpandConditional(cond.Then)})
	elseBranch := syntax.NewBlock([]*syntax.Node{ExpandConditional(cond.Else)})
	return syntax.NewIf(cond.Cond, thenBranch, elseBranch)
}

// unparen sees through parenthesized layers around a nested conditional.
func unparen(n *syntax.Node) *syntax.Node {
	for n.Kind == syntax.KindParen {
		n = n.X
	}
	return n
}
