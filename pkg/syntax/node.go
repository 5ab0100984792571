package syntax

import "github.com/mamaar/condflat/pkg/types"

// Kind tags the fixed set of node shapes the tree can contain. Every rewrite
// pattern-matches on this tag rather than on concrete types.
type Kind int

const (
	KindFile Kind = iota
	KindBlock
	KindIf
	KindReturn
	KindVarDecl
	KindExprStmt
	KindFuncDecl
	KindIdent
	KindNumberLit
	KindStringLit
	KindBoolLit
	KindNullLit
	KindMember
	KindCall
	KindUnary
	KindBinary
	KindAssign
	KindParen
	KindCond
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindBlock:
		return "block"
	case KindIf:
		return "if"
	case KindReturn:
		return "return"
	case KindVarDecl:
		return "var-decl"
	case KindExprStmt:
		return "expr-stmt"
	case KindFuncDecl:
		return "func-decl"
	case KindIdent:
		return "ident"
	case KindNumberLit:
		return "number"
	case KindStringLit:
		return "string"
	case KindBoolLit:
		return "bool"
	case KindNullLit:
		return "null"
	case KindMember:
		return "member"
	case KindCall:
		return "call"
	case KindUnary:
		return "unary"
	case KindBinary:
		return "binary"
	case KindAssign:
		return "assign"
	case KindParen:
		return "paren"
	case KindCond:
		return "conditional"
	}
	return "unknown"
}

// Node is a single syntax tree node. The tree is immutable once parsed; the
// Parent link is a non-owning back-reference set in one pass after parsing.
// Nodes built by rewrites are synthetic: their Start/End are zero and they are
// never woven back into the parsed tree.
//
// Field usage by kind:
//
//	File, Block        List = statements
//	If                 Cond, Then (block), Else (block or nil)
//	Return             X = value (nil for a bare return)
//	VarDecl            Op = keyword, Name, X = initializer (may be nil)
//	ExprStmt           X = expression
//	FuncDecl           Name, List = parameter idents, Then = body block
//	Ident              Name
//	NumberLit/StringLit/BoolLit/NullLit  Value = raw literal text
//	Member             X = object, Name = property
//	Call               X = callee, List = arguments
//	Unary              Op, X
//	Binary/Assign      Op, X, Y
//	Paren              X
//	Cond               Cond, Then, Else (the ? and : arms)
type Node struct {
	Kind   Kind
	Start  int
	End    int
	Parent *Node

	Name  string
	Op    string
	Value string

	Cond *Node
	Then *Node
	Else *Node
	X    *Node
	Y    *Node
	List []*Node
}

// Span returns the node's half-open byte range in the original text.
func (n *Node) Span() types.Span {
	return types.Span{Start: n.Start, End: n.End}
}

// Children returns the node's direct children in source order. The slice is
// freshly allocated; callers may not rely on identity.
func (n *Node) Children() []*Node {
	var out []*Node
	add := func(c *Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch n.Kind {
	case KindIf, KindCond:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case KindFuncDecl:
		out = append(out, n.List...)
		add(n.Then)
	case KindCall:
		add(n.X)
		out = append(out, n.List...)
	case KindBinary, KindAssign:
		add(n.X)
		add(n.Y)
	default:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
		add(n.X)
		add(n.Y)
		out = append(out, n.List...)
	}
	return out
}

// IsStatement reports whether the node is statement-shaped.
func (n *Node) IsStatement() bool {
	switch n.Kind {
	case KindBlock, KindIf, KindReturn, KindVarDecl, KindExprStmt, KindFuncDecl:
		return true
	}
	return false
}

// IsIfElse reports whether the node is an if-statement with a block-shaped
// else branch. An else that is itself an if-statement (an else-if chain link)
// does not qualify, and neither does a braceless branch.
func (n *Node) IsIfElse() bool {
	return n.Kind == KindIf &&
		n.Then != nil && n.Then.Kind == KindBlock &&
		n.Else != nil && n.Else.Kind == KindBlock
}

// setParents walks the subtree and fixes every child's Parent link.
func setParents(n *Node) {
	for _, c := range n.Children() {
		c.Parent = n
		setParents(c)
	}
}

// Synthetic node constructors. These build unpositioned structure for the
// printer; they never carry offsets.

// NewBlock builds a synthetic block from the given statements.
func NewBlock(stmts []*Node) *Node {
	return &Node{Kind: KindBlock, List: stmts}
}

// NewIf builds a synthetic if-statement. elseBranch may be nil.
func NewIf(cond, then, elseBranch *Node) *Node {
	return &Node{Kind: KindIf, Cond: cond, Then: then, Else: elseBranch}
}

// NewReturn builds a synthetic return statement. value may be nil for the
// bare early-exit form.
func NewReturn(value *Node) *Node {
	return &Node{Kind: KindReturn, X: value}
}

// NewNot wraps expr in a logical negation.
func NewNot(expr *Node) *Node {
	return &Node{Kind: KindUnary, Op: "!", X: expr}
}
