package syntax

import "strings"

// Printer serializes nodes back to source text. Synthetic nodes carry no
// offsets, so printing never consults the original buffer; output is the
// printer's canonical formatting.
type Printer struct {
	indent string
}

// NewPrinter creates a printer using the given indentation unit. An empty
// unit falls back to a tab.
func NewPrinter(indent string) *Printer {
	if indent == "" {
		indent = "\t"
	}
	return &Printer{indent: indent}
}

// Print serializes a single node. Statements are printed at indent depth
// zero; expressions are printed inline.
func (p *Printer) Print(n *Node) string {
	var sb strings.Builder
	if n.IsStatement() || n.Kind == KindFile {
		p.writeStmt(&sb, n, 0)
	} else {
		p.writeExpr(&sb, n)
	}
	return sb.String()
}

// PrintAll serializes each node independently and joins them with a single
// newline, in list order.
func (p *Printer) PrintAll(nodes []*Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, p.Print(n))
	}
	return strings.Join(parts, "\n")
}

func (p *Printer) writeStmt(sb *strings.Builder, n *Node, depth int) {
	ind := strings.Repeat(p.indent, depth)
	switch n.Kind {
	case KindFile:
		for i, stmt := range n.List {
			if i > 0 {
				sb.WriteByte('\n')
			}
			p.writeStmt(sb, stmt, depth)
		}
	case KindBlock:
		sb.WriteString(ind)
		sb.WriteString("{\n")
		for _, stmt := range n.List {
			p.writeStmt(sb, stmt, depth+1)
			sb.WriteByte('\n')
		}
		sb.WriteString(ind)
		sb.WriteString("}")
	case KindIf:
		sb.WriteString(ind)
		sb.WriteString("if (")
		p.writeExpr(sb, n.Cond)
		sb.WriteString(") ")
		p.writeBranch(sb, n.Then, depth)
		if n.Else != nil {
			sb.WriteString(" else ")
			if n.Else.Kind == KindIf {
				// else-if: continue on the same line without re-indenting
				var chain strings.Builder
				p.writeStmt(&chain, n.Else, depth)
				sb.WriteString(strings.TrimPrefix(chain.String(), ind))
			} else {
				p.writeBranch(sb, n.Else, depth)
			}
		}
	case KindReturn:
		sb.WriteString(ind)
		sb.WriteString("return")
		if n.X != nil {
			sb.WriteByte(' ')
			p.writeExpr(sb, n.X)
		}
		sb.WriteByte(';')
	case KindVarDecl:
		sb.WriteString(ind)
		sb.WriteString(n.Op)
		sb.WriteByte(' ')
		sb.WriteString(n.Name)
		if n.X != nil {
			sb.WriteString(" = ")
			p.writeExpr(sb, n.X)
		}
		sb.WriteByte(';')
	case KindExprStmt:
		sb.WriteString(ind)
		p.writeExpr(sb, n.X)
		sb.WriteByte(';')
	case KindFuncDecl:
		sb.WriteString(ind)
		sb.WriteString("function ")
		sb.WriteString(n.Name)
		sb.WriteByte('(')
		for i, param := range n.List {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(param.Name)
		}
		sb.WriteString(") ")
		p.writeBranch(sb, n.Then, depth)
	}
}

// writeBranch prints a branch body as a braced block, wrapping a braceless
// single statement so output is always block-shaped.
func (p *Printer) writeBranch(sb *strings.Builder, n *Node, depth int) {
	block := n
	if n.Kind != KindBlock {
		block = NewBlock([]*Node{n})
	}
	ind := strings.Repeat(p.indent, depth)
	sb.WriteString("{\n")
	for _, stmt := range block.List {
		p.writeStmt(sb, stmt, depth+1)
		sb.WriteByte('\n')
	}
	sb.WriteString(ind)
	sb.WriteString("}")
}

func (p *Printer) writeExpr(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case KindIdent:
		sb.WriteString(n.Name)
	case KindNumberLit, KindStringLit, KindBoolLit, KindNullLit:
		sb.WriteString(n.Value)
	case KindMember:
		p.writeExpr(sb, n.X)
		sb.WriteByte('.')
		sb.WriteString(n.Name)
	case KindCall:
		p.writeExpr(sb, n.X)
		sb.WriteByte('(')
		for i, arg := range n.List {
			if i > 0 {
				sb.WriteString(", ")
			}
			p.writeExpr(sb, arg)
		}
		sb.WriteByte(')')
	case KindUnary:
		sb.WriteString(n.Op)
		p.writeExpr(sb, n.X)
	case KindBinary:
		p.writeExpr(sb, n.X)
		sb.WriteByte(' ')
		sb.WriteString(n.Op)
		sb.WriteByte(' ')
		p.writeExpr(sb, n.Y)
	case KindAssign:
		p.writeExpr(sb, n.X)
		sb.WriteString(" = ")
		p.writeExpr(sb, n.Y)
	case KindParen:
		sb.WriteByte('(')
		p.writeExpr(sb, n.X)
		sb.WriteByte(')')
	case KindCond:
		p.writeExpr(sb, n.Cond)
		sb.WriteString(" ? ")
		p.writeExpr(sb, n.Then)
		sb.WriteString(" : ")
		p.writeExpr(sb, n.Else)
	}
}
