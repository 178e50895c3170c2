package resl

// Builder assembles AST nodes programmatically, for embedders that want
// to construct a RESL expression without round-tripping through source
// text (e.g. generating a config template from typed data, or composing
// fragments produced by separate parses). Every method returns a node
// with a zero Span — programmatically built nodes have no source
// position.
type Builder struct{}

// NewBuilder returns a Builder. It carries no state; the zero value is
// also ready to use.
func NewBuilder() *Builder { return &Builder{} }

func (Builder) Null() Expr { return &LitNull{} }

func (Builder) Bool(b bool) Expr { return &LitBool{Value: b} }

func (Builder) Int(i int64) Expr { return &LitInt{Value: i} }

func (Builder) Float(f float64) Expr { return &LitFloat{Value: f} }

func (Builder) Str(s string) Expr { return &LitStr{Value: s} }

func (Builder) Ident(name string) Expr { return &Ident{Name: name} }

func (Builder) List(elems ...Expr) Expr { return &ListLit{Elems: elems} }

// Map builds a map literal from key/value expression pairs. Each key
// must evaluate to a Str at evaluation time, or the entry is silently
// skipped (spec.md §9 Open Question 5).
func (Builder) Map(entries ...MapEntry) Expr { return &MapLit{Entries: entries} }

// Entry is a convenience constructor for a MapEntry with a Str key,
// covering the common case where the key is already known statically.
func (Builder) Entry(key string, value Expr) MapEntry {
	return MapEntry{Key: &LitStr{Value: key}, Value: value}
}

func (Builder) Neg(x Expr) Expr { return &Unary{Op: MINUS, Operand: x} }

func (Builder) Not(x Expr) Expr { return &Unary{Op: BANG, Operand: x} }

func (b Builder) binary(op Kind, l, r Expr) Expr {
	return &Binary{Op: op, Left: l, Right: r}
}

func (b Builder) Add(l, r Expr) Expr { return b.binary(PLUS, l, r) }
func (b Builder) Sub(l, r Expr) Expr { return b.binary(MINUS, l, r) }
func (b Builder) Mul(l, r Expr) Expr { return b.binary(STAR, l, r) }
func (b Builder) Div(l, r Expr) Expr { return b.binary(SLASH, l, r) }
func (b Builder) Mod(l, r Expr) Expr { return b.binary(PERCENT, l, r) }
func (b Builder) Eq(l, r Expr) Expr  { return b.binary(EQ, l, r) }
func (b Builder) Ne(l, r Expr) Expr  { return b.binary(NEQ, l, r) }
func (b Builder) Lt(l, r Expr) Expr  { return b.binary(LT, l, r) }
func (b Builder) Le(l, r Expr) Expr  { return b.binary(LEQ, l, r) }
func (b Builder) Gt(l, r Expr) Expr  { return b.binary(GT, l, r) }
func (b Builder) Ge(l, r Expr) Expr  { return b.binary(GEQ, l, r) }
func (b Builder) And(l, r Expr) Expr { return b.binary(ANDAND, l, r) }
func (b Builder) Or(l, r Expr) Expr  { return b.binary(OROR, l, r) }

func (Builder) Index(target, key Expr) Expr { return &Index{Target: target, Key: key} }

func (Builder) Slice(target, lo, hi Expr) Expr { return &Slice{Target: target, Lo: lo, Hi: hi} }

func (Builder) Call(callee Expr, args ...Expr) Expr { return &Call{Callee: callee, Args: args} }

func (Builder) Lambda(params []string, body Expr) Expr { return &Lambda{Params: params, Body: body} }

func (Builder) Cond(test, then, els Expr) Expr { return &Cond{Test: test, Then: then, Else: els} }

// ForEach builds a `src > (a, b) : body` comprehension; a and b name the
// (index, element) or (key, value) pair the body sees on each iteration.
func (Builder) ForEach(src Expr, a, b string, body Expr) Expr {
	return &ForEach{Source: src, Params: []string{a, b}, Body: body}
}

// Bind is a convenience constructor for a block statement; Block takes
// the finished slice directly.
func (Builder) Bind(name string, value Expr) Expr {
	return &Bind{Name: name, Value: value}
}

// Block builds a `{ b1; ...; bn; tail }` expression from binding
// statements (each produced by Bind) plus a tail expression.
func (Builder) Block(tail Expr, stmts ...Expr) Expr {
	return &Block{Stmts: stmts, Tail: tail}
}
