package rewrite

import (
	"strings"

	"github.com/mamaar/condflat/pkg/syntax"
	"github.com/mamaar/condflat/pkg/types"
)

// Transform names, used as edit descriptions and surfaced as action titles
// by the CLI, LSP, and MCP layers.
const (
	TitleGuardClause = "Simplify to guard clause"
	TitleInvert      = "Invert condition and simplify"
	TitleExpand      = "Expand conditional to if/else"
)

// Document is one parsed buffer: the file path, its source text model, and a
// fresh tree. Documents are built per request and never cached across edits.
type Document struct {
	Path string
	Root *syntax.Node
	Src  *syntax.Source
}

// ParseDocument parses text into a Document.
func ParseDocument(path, text string) (*Document, error) {
	root, src, err := syntax.Parse(text)
	if err != nil {
		return nil, err
	}
	return &Document{Path: path, Root: root, Src: src}, nil
}

// Proposer turns applicable transforms at a cursor offset into proposed
// edits. It holds only the printer; all state is per-request.
type Proposer struct {
	printer *syntax.Printer
}

// NewProposer creates a Proposer printing replacements with the given
// indentation unit.
func NewProposer(indent string) *Proposer {
	return &Proposer{printer: syntax.NewPrinter(indent)}
}

// ProposeGuardClauseSimplify returns the guard-clause edit for the
// if-statement enclosing offset, or an empty slice when the offset is not
// inside an if/else with two block-shaped branches.
func (p *Proposer) ProposeGuardClauseSimplify(doc *Document, offset int) []types.Edit {
	ifStmt := p.applicableIfElse(doc, offset)
	if ifStmt == nil {
		return nil
	}
	return []types.Edit{p.editFor(doc, ifStmt, GuardClauseSimplify(ifStmt), TitleGuardClause)}
}

// ProposeInvertAndSimplify returns the inverted flattening edit, with the
// same applicability as ProposeGuardClauseSimplify.
func (p *Proposer) ProposeInvertAndSimplify(doc *Document, offset int) []types.Edit {
	ifStmt := p.applicableIfElse(doc, offset)
	if ifStmt == nil {
		return nil
	}
	return []types.Edit{p.editFor(doc, ifStmt, InvertAndSimplify(ifStmt), TitleInvert)}
}

// ProposeConditionalExpansion returns the expansion edit for the conditional
// expression enclosing offset, or an empty slice when there is none.
func (p *Proposer) ProposeConditionalExpansion(doc *Document, offset int) []types.Edit {
	node := Resolve(doc.Root, offset)
	cond := FindEnclosing(node, isConditional)
	if cond == nil {
		return nil
	}
	return []types.Edit{p.editFor(doc, cond, []*syntax.Node{ExpandConditional(cond)}, TitleExpand)}
}

// ProposeAll collects every applicable transform at the offset.
func (p *Proposer) ProposeAll(doc *Document, offset int) []types.Edit {
	var edits []types.Edit
	edits = append(edits, p.ProposeGuardClauseSimplify(doc, offset)...)
	edits = append(edits, p.ProposeInvertAndSimplify(doc, offset)...)
	edits = append(edits, p.ProposeConditionalExpansion(doc, offset)...)
	return edits
}

// ListOpportunities scans the whole document and returns one edit per
// applicable transform anywhere in the tree, in source order.
func (p *Proposer) ListOpportunities(doc *Document) []types.Edit {
	var edits []types.Edit
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		if n.IsIfElse() && inStatementList(n) {
			edits = append(edits,
				p.editFor(doc, n, GuardClauseSimplify(n), TitleGuardClause),
				p.editFor(doc, n, InvertAndSimplify(n), TitleInvert),
			)
		}
		if n.Kind == syntax.KindCond {
			edits = append(edits, p.editFor(doc, n, []*syntax.Node{ExpandConditional(n)}, TitleExpand))
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(doc.Root)
	return edits
}

// applicableIfElse resolves the offset and finds the nearest enclosing
// if-statement that qualifies for flattening: both branches present and
// block-shaped, and the statement itself sitting in a statement list. An
// else-if chain link or braceless branch disqualifies, as does an if hanging
// off another if's branch slot, where spliced siblings would escape the
// outer conditional.
func (p *Proposer) applicableIfElse(doc *Document, offset int) *syntax.Node {
	node := Resolve(doc.Root, offset)
	ifStmt := FindEnclosing(node, isIfStatement)
	if ifStmt == nil || !ifStmt.IsIfElse() || !inStatementList(ifStmt) {
		return nil
	}
	return ifStmt
}

// inStatementList reports whether the node occupies a slot that can hold
// sibling statements: a block body or the file top level.
func inStatementList(n *syntax.Node) bool {
	return n.Parent != nil && (n.Parent.Kind == syntax.KindBlock || n.Parent.Kind == syntax.KindFile)
}

// editFor prints the replacement nodes and maps the original node's span to
// a concrete edit. Lines after the first are re-indented to the indentation
// of the line the original statement starts on, so the replacement sits at
// the same nesting depth as what it replaces.
func (p *Proposer) editFor(doc *Document, original *syntax.Node, replacement []*syntax.Node, title string) types.Edit {
	span := original.Span()
	text := p.printer.PrintAll(replacement)
	indent := leadingIndentation(doc.Src.Text, span.Start)
	if indent != "" {
		text = strings.ReplaceAll(text, "\n", "\n"+indent)
	}
	startPos, endPos := doc.Src.SpanPositions(span)
	return types.Edit{
		File:        doc.Path,
		Span:        span,
		StartPos:    startPos,
		EndPos:      endPos,
		OldText:     doc.Src.Slice(span),
		NewText:     text,
		Description: title,
	}
}

// BuildPlan wraps proposed edits into a plan, recording each affected file
// once in first-seen order.
func BuildPlan(edits []types.Edit) *types.Plan {
	plan := &types.Plan{Edits: edits}
	seen := make(map[string]bool)
	for _, e := range edits {
		if !seen[e.File] {
			seen[e.File] = true
			plan.AffectedFiles = append(plan.AffectedFiles, e.File)
		}
	}
	return plan
}

// leadingIndentation returns the whitespace prefix of the line containing
// the given offset.
func leadingIndentation(content string, offset int) string {
	lineStart := offset
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	end := lineStart
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return content[lineStart:end]
}
