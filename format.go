package resl

import (
	"strconv"
	"strings"
)

// Precedence levels mirror spec.md §4.2's grammar nesting (cond lowest,
// postfix highest) so the printer inserts parentheses exactly where the
// grammar would otherwise fail to reparse the original structure. Levels
// for Cond, ForEach and Lambda are pinned to the lowest slot deliberately:
// these productions greedily consume a full `expr` once they start (the
// ternary's branches, the for-each body, the lambda body), so anywhere other than a
// position that itself accepts a bare `expr` (a block tail, a bind
// value, a collection entry, a call argument, a lambda body, another
// cond/for-each branch) they must be parenthesized to be reparsed
// correctly — treating them as level 0 guarantees that without needing
// to track "is this the trailing operand" context.
const (
	precExpr    = 0 // cond, for-each, lambda: safe only where a bare expr is accepted
	precOr      = 1
	precAnd     = 2
	precEq      = 3
	precRel     = 4
	precAdd     = 5
	precMul     = 6
	precUnary   = 7
	precPostfix = 8
	precPrimary = 9
)

func binaryPrec(op Kind) int {
	switch op {
	case OROR:
		return precOr
	case ANDAND:
		return precAnd
	case EQ, NEQ:
		return precEq
	case LT, LEQ, GT, GEQ:
		return precRel
	case PLUS, MINUS:
		return precAdd
	case STAR, SLASH, PERCENT:
		return precMul
	default:
		return precPrimary
	}
}

func exprPrec(e Expr) int {
	switch n := e.(type) {
	case *Cond, *ForEach, *Lambda:
		return precExpr
	case *Binary:
		return binaryPrec(n.Op)
	case *Unary:
		return precUnary
	case *Index, *Slice, *Call:
		return precPostfix
	default:
		return precPrimary
	}
}

// Format parses src and renders it back to source text in the requested
// mode (spec.md §6.1's `format` entry point). The sole failure channel is
// *ParseError.
func Format(src string, pretty bool) (string, *ParseError) {
	expr, err := Parse(src)
	if err != nil {
		return "", err
	}

	return FormatNode(expr, pretty), nil
}

// FormatNode renders an already-parsed expression to source text. Compact
// mode omits all insignificant whitespace; pretty mode indents block
// bodies by four spaces per nesting level and places collection entries
// one per line once a literal holds two or more of them, terminating
// with a single trailing newline (spec.md §4.3).
func FormatNode(expr Expr, pretty bool) string {
	f := &formatter{pretty: pretty}
	out := f.render(expr, precExpr, 0)

	if pretty {
		return out + "\n"
	}

	return out
}

type formatter struct {
	pretty bool
}

func (f *formatter) paren(s string) string {
	return "(" + s + ")"
}

func (f *formatter) wrapIfNeeded(e Expr, minPrec int, indent int) string {
	s := f.render(e, minPrec, indent)
	if exprPrec(e) < minPrec {
		return f.paren(s)
	}

	return s
}

func (f *formatter) render(e Expr, minPrec int, indent int) string {
	switch n := e.(type) {
	case *LitNull:
		return "null"
	case *LitBool:
		if n.Value {
			return "true"
		}

		return "false"
	case *LitInt:
		return strconv.FormatInt(n.Value, 10)
	case *LitFloat:
		return formatFloatLiteral(n.Value)
	case *LitStr:
		return quoteString(n.Value)
	case *Ident:
		return n.Name
	case *ListLit:
		return f.renderList(n, indent)
	case *MapLit:
		return f.renderMap(n, indent)
	case *Unary:
		return n.Op.String() + f.wrapIfNeeded(n.Operand, precUnary, indent)
	case *Binary:
		return f.renderBinary(n, indent)
	case *Index:
		return f.wrapIfNeeded(n.Target, precPostfix, indent) + "[" + f.render(n.Key, precExpr, indent) + "]"
	case *Slice:
		return f.renderSlice(n, indent)
	case *Call:
		return f.renderCall(n, indent)
	case *Lambda:
		return f.renderLambda(n, indent)
	case *Cond:
		return f.renderCond(n, indent)
	case *ForEach:
		return f.renderForEach(n, indent)
	case *Block:
		return f.renderBlock(n, indent)
	default:
		return ""
	}
}

func (f *formatter) renderBinary(n *Binary, indent int) string {
	prec := binaryPrec(n.Op)

	left := f.wrapIfNeeded(n.Left, prec, indent)
	right := f.wrapIfNeeded(n.Right, prec+1, indent)

	if f.pretty {
		return left + " " + n.Op.String() + " " + right
	}

	return left + n.Op.String() + right
}

func (f *formatter) renderSlice(n *Slice, indent int) string {
	var b strings.Builder

	b.WriteString(f.wrapIfNeeded(n.Target, precPostfix, indent))
	b.WriteByte('[')

	if n.Lo != nil {
		b.WriteString(f.render(n.Lo, precExpr, indent))
	}

	b.WriteByte(':')

	if n.Hi != nil {
		b.WriteString(f.render(n.Hi, precExpr, indent))
	}

	b.WriteByte(']')

	return b.String()
}

func (f *formatter) renderCall(n *Call, indent int) string {
	var b strings.Builder

	b.WriteString(f.wrapIfNeeded(n.Callee, precPostfix, indent))
	b.WriteByte('(')

	for i, arg := range n.Args {
		if i > 0 {
			b.WriteString(f.sep())
		}

		b.WriteString(f.render(arg, precExpr, indent))
	}

	b.WriteByte(')')

	return b.String()
}

func (f *formatter) renderLambda(n *Lambda, indent int) string {
	var b strings.Builder

	b.WriteByte('|')

	for i, p := range n.Params {
		if i > 0 {
			b.WriteString(f.sep())
		}

		b.WriteString(p)
	}

	b.WriteByte('|')

	// A body that itself opens with '|' would otherwise merge with the
	// closing delimiter into a single OROR token.
	body := f.render(n.Body, precExpr, indent)
	if strings.HasPrefix(body, "|") {
		b.WriteByte(' ')
	}

	b.WriteString(body)

	return b.String()
}

func (f *formatter) renderCond(n *Cond, indent int) string {
	if f.pretty {
		return "? " + f.render(n.Test, precExpr, indent) +
			" : " + f.render(n.Then, precExpr, indent) +
			" | " + f.render(n.Else, precExpr, indent)
	}

	els := f.render(n.Else, precExpr, indent)
	if strings.HasPrefix(els, "|") {
		els = " " + els // keep the separator from lexing as OROR
	}

	return "?" + f.render(n.Test, precExpr, indent) +
		":" + f.render(n.Then, precExpr, indent) +
		"|" + els
}

func (f *formatter) renderForEach(n *ForEach, indent int) string {
	src := f.wrapIfNeeded(n.Source, precUnary, indent)
	a, b := n.Params[0], n.Params[1]

	if f.pretty {
		return src + " > (" + a + ", " + b + ") : " + f.render(n.Body, precExpr, indent)
	}

	return src + ">(" + a + "," + b + "):" + f.render(n.Body, precExpr, indent)
}

func (f *formatter) sep() string {
	if f.pretty {
		return ", "
	}

	return ","
}

func (f *formatter) indentStr(level int) string {
	return strings.Repeat("    ", level)
}

func (f *formatter) renderList(n *ListLit, indent int) string {
	if len(n.Elems) == 0 {
		return "[]"
	}

	rendered := make([]string, len(n.Elems))
	for i, e := range n.Elems {
		rendered[i] = f.render(e, precExpr, indent+1)
	}

	if !f.multiline(rendered) {
		return "[" + strings.Join(rendered, f.sep()) + "]"
	}

	var b strings.Builder

	b.WriteString("[\n")

	for i, r := range rendered {
		b.WriteString(f.indentStr(indent + 1))
		b.WriteString(r)

		if i < len(rendered)-1 {
			b.WriteByte(',')
		}

		b.WriteByte('\n')
	}

	b.WriteString(f.indentStr(indent))
	b.WriteByte(']')

	return b.String()
}

func (f *formatter) renderMap(n *MapLit, indent int) string {
	if len(n.Entries) == 0 {
		return "[]"
	}

	rendered := make([]string, len(n.Entries))

	for i, entry := range n.Entries {
		k := f.render(entry.Key, precExpr, indent+1)
		v := f.render(entry.Value, precExpr, indent+1)

		if f.pretty {
			rendered[i] = k + ": " + v
		} else {
			rendered[i] = k + ":" + v
		}
	}

	if !f.multiline(rendered) {
		return "[" + strings.Join(rendered, f.sep()) + "]"
	}

	var b strings.Builder

	b.WriteString("[\n")

	for i, r := range rendered {
		b.WriteString(f.indentStr(indent + 1))
		b.WriteString(r)

		if i < len(rendered)-1 {
			b.WriteByte(',')
		}

		b.WriteByte('\n')
	}

	b.WriteString(f.indentStr(indent))
	b.WriteByte(']')

	return b.String()
}

// multiline decides whether a collection literal's entries get one per
// line: only ever in pretty mode, when there are at least two entries or
// a lone entry itself already spans multiple lines (spec.md §4.3).
func (f *formatter) multiline(rendered []string) bool {
	if !f.pretty {
		return false
	}

	if len(rendered) >= 2 {
		return true
	}

	return strings.Contains(rendered[0], "\n")
}

func (f *formatter) renderBlock(n *Block, indent int) string {
	if !f.pretty {
		var b strings.Builder

		b.WriteByte('{')

		for _, stmt := range n.Stmts {
			bind := stmt.(*Bind)
			b.WriteString(bind.Name)
			b.WriteByte('=')
			b.WriteString(f.render(bind.Value, precExpr, indent))
			b.WriteByte(';')
		}

		b.WriteString(f.render(n.Tail, precExpr, indent))
		b.WriteByte('}')

		return b.String()
	}

	var b strings.Builder

	b.WriteString("{\n")

	inner := indent + 1

	for _, stmt := range n.Stmts {
		bind := stmt.(*Bind)
		b.WriteString(f.indentStr(inner))
		b.WriteString(bind.Name)
		b.WriteString(" = ")
		b.WriteString(f.render(bind.Value, precExpr, inner))
		b.WriteString(";\n")
	}

	b.WriteString(f.indentStr(inner))
	b.WriteString(f.render(n.Tail, precExpr, inner))
	b.WriteByte('\n')
	b.WriteString(f.indentStr(indent))
	b.WriteByte('}')

	return b.String()
}

// formatFloatLiteral renders f as source text that re-lexes to a FLOAT
// token: fixed-point only (the lexer has no exponent syntax), always
// containing a decimal point.
func formatFloatLiteral(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// quoteString renders s as a double-quoted RESL string literal using
// exactly the escape set the lexer accepts (spec.md §4.1).
func quoteString(s string) string {
	var b strings.Builder

	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte('"')

	return b.String()
}

// formatValueCompact renders a List/Map Value using the same compact
// grammar the formatter produces for AST literals, used by to_str and
// debug (spec.md §4.6) where no AST is available — only an evaluated
// Value tree.
func formatValueCompact(v Value) string {
	switch v.Tag {
	case TagList:
		parts := make([]string, len(v.List))
		for i, el := range v.List {
			parts[i] = formatValueElement(el)
		}

		return "[" + strings.Join(parts, ",") + "]"
	case TagMap:
		keys := v.Map.Keys()
		parts := make([]string, len(keys))

		for i, k := range keys {
			val, _ := v.Map.Get(k)
			parts[i] = quoteString(k) + ":" + formatValueElement(val)
		}

		return "[" + strings.Join(parts, ",") + "]"
	default:
		return v.ToString()
	}
}

// formatValueElement renders a Value nested inside a List/Map's compact
// form, quoting Str payloads (unlike the top-level to_str, which leaves a
// bare Str unquoted).
func formatValueElement(v Value) string {
	if v.Tag == TagStr {
		return quoteString(v.Str)
	}

	return v.ToString()
}
