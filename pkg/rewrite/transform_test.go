package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mamaar/condflat/pkg/syntax"
)

// parseSource is a test helper returning the parsed tree and source.
func parseSource(t *testing.T, text string) (*syntax.Node, *syntax.Source) {
	t.Helper()
	root, src, err := syntax.Parse(text)
	require.NoError(t, err)
	return root, src
}

// firstIf finds the first if-statement in the tree.
func firstIf(t *testing.T, root *syntax.Node) *syntax.Node {
	t.Helper()
	var found *syntax.Node
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		if found != nil {
			return
		}
		if n.Kind == syntax.KindIf {
			found = n
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)
	require.NotNil(t, found, "no if-statement in input")
	return found
}

func TestExtractStatements(t *testing.T) {
	root, _ := parseSource(t, `{ doX(); doY(); }`)
	block := root.List[0]
	require.Equal(t, syntax.KindBlock, block.Kind)

	t.Run("preserves order without synthesis", func(t *testing.T) {
		stmts := ExtractStatements(block, false)
		require.Len(t, stmts, 2)
		require.Same(t, block.List[0], stmts[0])
		require.Same(t, block.List[1], stmts[1])
	})

	t.Run("appends bare return when missing", func(t *testing.T) {
		stmts := ExtractStatements(block, true)
		require.Len(t, stmts, 3)
		last := stmts[2]
		require.Equal(t, syntax.KindReturn, last.Kind)
		require.Nil(t, last.X)
		// Source block must stay untouched.
		require.Len(t, block.List, 2)
	})

	t.Run("does not duplicate an existing return", func(t *testing.T) {
		root, _ := parseSource(t, `{ doX(); return y; }`)
		stmts := ExtractStatements(root.List[0], true)
		require.Len(t, stmts, 2)
	})
}

func TestInvert(t *testing.T) {
	printer := syntax.NewPrinter("\t")

	t.Run("wraps a plain expression", func(t *testing.T) {
		root, _ := parseSource(t, `isAdmin;`)
		cond := root.List[0].X
		require.Equal(t, "!isAdmin", printer.Print(Invert(cond)))
	})

	t.Run("unwraps an existing negation", func(t *testing.T) {
		root, _ := parseSource(t, `!isAdmin;`)
		cond := root.List[0].X
		inverted := Invert(cond)
		require.Equal(t, syntax.KindIdent, inverted.Kind)
		require.Equal(t, "isAdmin", inverted.Name)
	})

	t.Run("double inversion is structural identity", func(t *testing.T) {
		root, _ := parseSource(t, `user.isActive();`)
		cond := root.List[0].X
		require.Same(t, cond, Invert(Invert(cond)))
	})

	t.Run("parenthesizes binary operands", func(t *testing.T) {
		root, _ := parseSource(t, `a && b;`)
		cond := root.List[0].X
		once := Invert(cond)
		require.Equal(t, "!(a && b)", printer.Print(once))
		// Unwrapping drops the parentheses added for the negation.
		require.Same(t, cond, Invert(once))
	})

	t.Run("no deeper simplification", func(t *testing.T) {
		root, _ := parseSource(t, `a == b;`)
		cond := root.List[0].X
		require.Equal(t, "!(a == b)", printer.Print(Invert(cond)))
	})
}

func TestGuardClauseSimplify(t *testing.T) {
	printer := syntax.NewPrinter("\t")

	t.Run("both branches return", func(t *testing.T) {
		root, _ := parseSource(t, `if (!isAdmin) { return a; } else { return b; }`)
		nodes := GuardClauseSimplify(firstIf(t, root))
		require.Equal(t,
			"if (!isAdmin) {\n\treturn a;\n}\nreturn b;",
			printer.PrintAll(nodes))
	})

	t.Run("missing return is synthesized in then branch", func(t *testing.T) {
		root, _ := parseSource(t, `if (cond) { doX(); } else { doY(); }`)
		nodes := GuardClauseSimplify(firstIf(t, root))
		require.Equal(t,
			"if (cond) {\n\tdoX();\n\treturn;\n}\ndoY();",
			printer.PrintAll(nodes))
	})

	t.Run("else statements are spliced as siblings", func(t *testing.T) {
		root, _ := parseSource(t, `if (ok) { return 1; } else { a(); b(); c(); }`)
		nodes := GuardClauseSimplify(firstIf(t, root))
		require.Len(t, nodes, 4)
		require.Equal(t, syntax.KindIf, nodes[0].Kind)
		require.Nil(t, nodes[0].Else)
	})
}

func TestInvertAndSimplify(t *testing.T) {
	printer := syntax.NewPrinter("\t")

	t.Run("spec example", func(t *testing.T) {
		root, _ := parseSource(t,
			`if (isAdmin) { doAdminStuff(); happyPath(); } else { youAreNotAllowed(); }`)
		nodes := InvertAndSimplify(firstIf(t, root))
		require.Equal(t,
			"if (!isAdmin) {\n\tyouAreNotAllowed();\n\treturn;\n}\ndoAdminStuff();\nhappyPath();",
			printer.PrintAll(nodes))
	})

	t.Run("negated condition is unwrapped", func(t *testing.T) {
		root, _ := parseSource(t, `if (!ready) { wait(); } else { go(); }`)
		nodes := InvertAndSimplify(firstIf(t, root))
		require.Equal(t,
			"if (ready) {\n\tgo();\n\treturn;\n}\nwait();",
			printer.PrintAll(nodes))
	})

	t.Run("then branch keeps its own return unsynthesized", func(t *testing.T) {
		root, _ := parseSource(t, `if (a) { return x; } else { log(); }`)
		nodes := InvertAndSimplify(firstIf(t, root))
		// The former then branch is the fallthrough tail, untouched.
		require.Equal(t,
			"if (!a) {\n\tlog();\n\treturn;\n}\nreturn x;",
			printer.PrintAll(nodes))
	})
}

func TestExpandConditional(t *testing.T) {
	printer := syntax.NewPrinter("\t")

	condExpr := func(t *testing.T, text string) *syntax.Node {
		root, _ := parseSource(t, text)
		expr := root.List[0].X
		require.Equal(t, syntax.KindCond, expr.Kind)
		return expr
	}

	t.Run("non-nested input produces if with two returns", func(t *testing.T) {
		expr := condExpr(t, `a ? x : y;`)
		out := ExpandConditional(expr)
		require.Equal(t,
			"if (a) {\n\treturn x;\n} else {\n\treturn y;\n}",
			printer.Print(out))
	})

	t.Run("leaf value expands to a bare return", func(t *testing.T) {
		root, _ := parseSource(t, `x + 1;`)
		out := ExpandConditional(root.List[0].X)
		require.Equal(t, "return x + 1;", printer.Print(out))
	})

	t.Run("spec example", func(t *testing.T) {
		expr := condExpr(t, `a ? (b ? x : y) : z;`)
		out := ExpandConditional(expr)
		require.Equal(t,
			"if (a) {\n"+
				"\tif (b) {\n"+
				"\t\treturn x;\n"+
				"\t} else {\n"+
				"\t\treturn y;\n"+
				"\t}\n"+
				"} else {\n"+
				"\treturn z;\n"+
				"}",
			printer.Print(out))
	})

	t.Run("depth matches nesting", func(t *testing.T) {
		// Build an n-times nested conditional in the false arm.
		const n = 6
		text := ""
		for i := 0; i < n; i++ {
			text += "c ? v : ("
		}
		text += "leaf"
		text += strings.Repeat(")", n)
		text += ";"

		expr := condExpr(t, text)
		out := ExpandConditional(expr)

		ifCount, returnCount := 0, 0
		var walk func(n *syntax.Node)
		walk = func(node *syntax.Node) {
			switch node.Kind {
			case syntax.KindIf:
				ifCount++
				require.NotNil(t, node.Else, "every expansion level has both branches")
			case syntax.KindReturn:
				returnCount++
				require.NotNil(t, node.X, "expansion leaves return a value")
			}
			for _, c := range node.Children() {
				walk(c)
			}
		}
		walk(out)
		require.Equal(t, n, ifCount)
		require.Equal(t, n+1, returnCount, "one leaf per branch path")
	})
}
