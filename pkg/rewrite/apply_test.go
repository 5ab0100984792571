package rewrite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mamaar/condflat/pkg/types"
)

func TestApplyToText(t *testing.T) {
	t.Run("single edit", func(t *testing.T) {
		out, err := ApplyToText("hello world", []types.Edit{
			{Span: types.Span{Start: 6, End: 11}, NewText: "there"},
		})
		require.NoError(t, err)
		require.Equal(t, "hello there", out)
	})

	t.Run("edits apply back to front regardless of input order", func(t *testing.T) {
		out, err := ApplyToText("aaa bbb ccc", []types.Edit{
			{Span: types.Span{Start: 0, End: 3}, NewText: "xx"},
			{Span: types.Span{Start: 8, End: 11}, NewText: "zzzz"},
		})
		require.NoError(t, err)
		require.Equal(t, "xx bbb zzzz", out)
	})

	t.Run("overlapping edits are rejected", func(t *testing.T) {
		_, err := ApplyToText("abcdef", []types.Edit{
			{Span: types.Span{Start: 0, End: 4}, NewText: "x"},
			{Span: types.Span{Start: 3, End: 6}, NewText: "y"},
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "overlapping")
	})

	t.Run("out of bounds span is rejected", func(t *testing.T) {
		_, err := ApplyToText("short", []types.Edit{
			{Span: types.Span{Start: 2, End: 99}, NewText: "x"},
		})
		require.Error(t, err)
	})

	t.Run("no edits is a no-op", func(t *testing.T) {
		out, err := ApplyToText("unchanged", nil)
		require.NoError(t, err)
		require.Equal(t, "unchanged", out)
	})
}

func TestApplierRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.js")
	source := `function f() {
	if (cond) { doX(); } else { doY(); }
}`
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := ParseDocument(path, string(content))
	require.NoError(t, err)

	proposer := NewProposer("\t")
	edits := proposer.ProposeGuardClauseSimplify(doc, strings.Index(source, "cond"))
	require.Len(t, edits, 1)

	require.NoError(t, NewApplier().Apply(edits))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `function f() {
	if (cond) {
		doX();
		return;
	}
	doY();
}`, string(after))

	// The rewritten file must still parse.
	_, err = ParseDocument(path, string(after))
	require.NoError(t, err)
}
