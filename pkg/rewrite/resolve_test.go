package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mamaar/condflat/pkg/syntax"
)

func TestResolve(t *testing.T) {
	text := `if (ready) { start(); } else { stop(); }`
	root, _ := parseSource(t, text)

	t.Run("offset on condition resolves to the identifier", func(t *testing.T) {
		offset := strings.Index(text, "ready")
		node := Resolve(root, offset)
		require.Equal(t, syntax.KindIdent, node.Kind)
		require.Equal(t, "ready", node.Name)
	})

	t.Run("spans are half-open", func(t *testing.T) {
		// The offset just past "ready" is the ')' which belongs to the if
		// statement itself, not to the identifier.
		offset := strings.Index(text, "ready") + len("ready")
		node := Resolve(root, offset)
		require.NotEqual(t, syntax.KindIdent, node.Kind)
	})

	t.Run("offset in a branch resolves into the branch", func(t *testing.T) {
		offset := strings.Index(text, "stop")
		node := Resolve(root, offset)
		require.Equal(t, syntax.KindIdent, node.Kind)
		require.Equal(t, "stop", node.Name)
	})

	t.Run("offset between statements resolves to the file", func(t *testing.T) {
		text := "a();\n\nb();"
		root, _ := parseSource(t, text)
		node := Resolve(root, strings.Index(text, "\n\n")+1)
		require.Equal(t, syntax.KindFile, node.Kind)
	})
}

func TestFindEnclosing(t *testing.T) {
	text := `if (a) { if (b) { return x; } else { return y; } } else { return z; }`
	root, _ := parseSource(t, text)

	t.Run("finds the nearest enclosing if", func(t *testing.T) {
		node := Resolve(root, strings.Index(text, "x"))
		ifStmt := FindEnclosing(node, isIfStatement)
		require.NotNil(t, ifStmt)
		// The inner if, not the outer.
		require.Equal(t, "b", ifStmt.Cond.Name)
	})

	t.Run("a node satisfying the predicate returns itself", func(t *testing.T) {
		outer := firstIf(t, root)
		require.Same(t, outer, FindEnclosing(outer, isIfStatement))
	})

	t.Run("no match returns nil", func(t *testing.T) {
		node := Resolve(root, strings.Index(text, "x"))
		require.Nil(t, FindEnclosing(node, isConditional))
	})
}
