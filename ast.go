package resl

// Expr is implemented by every AST node (spec.md §3.2). Each node carries
// the Span of the source text it was parsed from, used for diagnostics.
type Expr interface {
	Span() Span
}

type exprBase struct {
	span Span
}

func (e exprBase) Span() Span { return e.span }

// LitNull is the null literal.
type LitNull struct {
	exprBase
}

// LitBool is a true/false literal.
type LitBool struct {
	exprBase
	Value bool
}

// LitInt is an integer literal.
type LitInt struct {
	exprBase
	Value int64
}

// LitFloat is a floating-point literal.
type LitFloat struct {
	exprBase
	Value float64
}

// LitStr is a double-quoted string literal, already escape-decoded.
type LitStr struct {
	exprBase
	Value string
}

// Ident is a bare identifier reference (spec.md §4.4.5: unresolved
// references evaluate to Null rather than failing).
type Ident struct {
	exprBase
	Name string
}

// ListLit is a `[a, b, c]` list literal.
type ListLit struct {
	exprBase
	Elems []Expr
}

// MapEntry is one `key: value` pair of a MapLit.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// MapLit is a `[k: v, ...]` map literal, disambiguated from ListLit by the
// colon following its first element.
type MapLit struct {
	exprBase
	Entries []MapEntry
}

// Unary is a prefix operator application: `-x` or `!x`.
type Unary struct {
	exprBase
	Op      Kind
	Operand Expr
}

// Binary is an infix operator application.
type Binary struct {
	exprBase
	Op    Kind
	Left  Expr
	Right Expr
}

// Index is a single-element subscript: `e[i]`.
type Index struct {
	exprBase
	Target Expr
	Key    Expr
}

// Slice is a range subscript: `e[lo:hi]`. Lo and Hi are nil when omitted
// (spec.md §4.4.3's open-ended slice forms).
type Slice struct {
	exprBase
	Target Expr
	Lo     Expr
	Hi     Expr
}

// Call is a function application: `callee(args...)`.
type Call struct {
	exprBase
	Callee Expr
	Args   []Expr
}

// Lambda is a `|params| body` closure literal.
type Lambda struct {
	exprBase
	Params []string
	Body   Expr
}

// Cond is a `? cond : then | else` ternary, right-associative in the else
// branch (spec.md §4.2's grammar note on chained ternaries).
type Cond struct {
	exprBase
	Test Expr
	Then Expr
	Else Expr
}

// ForEach is the `src > (a, b) : body` comprehension operator (spec.md §2
// item 8, §4.4.4): for a List source, (a, b) bind (index, element); for a
// Map source, (a, b) bind (key, value).
type ForEach struct {
	exprBase
	Source Expr
	Params []string
	Body   Expr
}

// Block is a `{ stmt; stmt; expr }` sequence: every statement but the
// last is evaluated for side effect (bindings), and the block's value is
// its final expression (Null if the block is empty).
type Block struct {
	exprBase
	Stmts []Expr
	Tail  Expr
}

// Bind is a `name = expr` binding statement, valid only inside a Block
// (spec.md §3.2, §4.4.1). It introduces name into the enclosing block's
// environment for subsequent statements.
type Bind struct {
	exprBase
	Name  string
	Value Expr
}
