package resl

// Eval evaluates expr in env, producing a Value. It is total over
// well-parsed input: no error return, no panic path for any reachable
// combination of operator and operand tags (spec.md §4.4, §4.7).
func Eval(expr Expr, env *Env) Value {
	switch e := expr.(type) {
	case *LitNull:
		return Null
	case *LitBool:
		return NewBool(e.Value)
	case *LitInt:
		return NewInt(e.Value)
	case *LitFloat:
		return NewFloat(e.Value)
	case *LitStr:
		return NewStr(e.Value)
	case *Ident:
		return evalIdent(e, env)
	case *ListLit:
		return evalListLit(e, env)
	case *MapLit:
		return evalMapLit(e, env)
	case *Unary:
		return evalUnary(e, env)
	case *Binary:
		return evalBinary(e, env)
	case *Index:
		return evalIndex(e, env)
	case *Slice:
		return evalSlice(e, env)
	case *Call:
		return evalCall(e, env)
	case *Lambda:
		return NewFn(&Fn{Params: e.Params, Body: e.Body, Env: env})
	case *Cond:
		if Eval(e.Test, env).Truthy() {
			return Eval(e.Then, env)
		}

		return Eval(e.Else, env)
	case *ForEach:
		return evalForEach(e, env)
	case *Block:
		return evalBlock(e, env)
	default:
		return Null
	}
}

// evalIdent resolves name in env, then falls back to the built-ins
// registry, then Null (spec.md §4.5). Routing the built-in lookup through
// general Ident evaluation — rather than only at Call sites — means a
// built-in can be bound to a variable and called indirectly; a user
// binding of the same name is found first and shadows it.
func evalIdent(e *Ident, env *Env) Value {
	if v, ok := env.Lookup(e.Name); ok {
		return v
	}

	if fn, ok := lookupBuiltin(e.Name); ok {
		return NewFn(fn)
	}

	return Null
}

func evalListLit(e *ListLit, env *Env) Value {
	if len(e.Elems) == 0 {
		return NewList(nil)
	}

	out := make([]Value, len(e.Elems))
	for i, el := range e.Elems {
		out[i] = Eval(el, env)
	}

	return NewList(out)
}

func evalMapLit(e *MapLit, env *Env) Value {
	m := NewOrderedMap()

	for _, entry := range e.Entries {
		k := Eval(entry.Key, env)
		if k.Tag != TagStr {
			// Non-Str key: entry silently skipped (spec.md §9 Open
			// Question 5, pinned: no ParseError since evaluation is total).
			continue
		}

		m.Set(k.Str, Eval(entry.Value, env))
	}

	return NewMap(m)
}

func evalUnary(e *Unary, env *Env) Value {
	v := Eval(e.Operand, env)

	switch e.Op {
	case MINUS:
		switch v.Tag {
		case TagInt:
			return NewInt(-v.Int)
		case TagFloat:
			return NewFloat(-v.Float)
		default:
			return Null
		}
	case BANG:
		return NewBool(!v.Truthy())
	default:
		return Null
	}
}

func evalBinary(e *Binary, env *Env) Value {
	switch e.Op {
	case ANDAND:
		left := Eval(e.Left, env)
		if !left.Truthy() {
			return left
		}

		return Eval(e.Right, env)
	case OROR:
		left := Eval(e.Left, env)
		if left.Truthy() {
			return left
		}

		return Eval(e.Right, env)
	}

	left := Eval(e.Left, env)
	right := Eval(e.Right, env)

	switch e.Op {
	case PLUS:
		return arithAdd(left, right)
	case MINUS:
		return arithNumeric(left, right, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case STAR:
		return arithNumeric(left, right, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case SLASH:
		return arithDiv(left, right)
	case PERCENT:
		return arithMod(left, right)
	case EQ:
		return NewBool(left.Equal(right))
	case NEQ:
		return NewBool(!left.Equal(right))
	case LT, LEQ, GT, GEQ:
		return evalOrdering(e.Op, left, right)
	default:
		return Null
	}
}

// arithAdd handles `+`, which additionally supports Str ++ Str
// concatenation alongside the shared numeric-widening rule.
func arithAdd(left, right Value) Value {
	if left.Tag == TagStr && right.Tag == TagStr {
		return NewStr(left.Str + right.Str)
	}

	return arithNumeric(left, right, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
}

// arithNumeric implements the widening rule shared by + - *: Int/Int
// stays Int, any Float operand (with the other numeric) widens the
// result to Float; any other combination yields Null.
func arithNumeric(left, right Value, intOp func(a, b int64) int64, fltOp func(a, b float64) float64) Value {
	switch {
	case left.Tag == TagInt && right.Tag == TagInt:
		return NewInt(intOp(left.Int, right.Int))
	case left.Tag == TagInt && right.Tag == TagFloat:
		return NewFloat(fltOp(float64(left.Int), right.Float))
	case left.Tag == TagFloat && right.Tag == TagInt:
		return NewFloat(fltOp(left.Float, float64(right.Int)))
	case left.Tag == TagFloat && right.Tag == TagFloat:
		return NewFloat(fltOp(left.Float, right.Float))
	default:
		return Null
	}
}

// arithDiv implements `/`: integer division truncates toward zero (Go's
// native int division semantics already do this); division by a zero
// divisor, integer or float, yields Null rather than a crash or Inf
// (spec.md §4.4.2, §3.1).
func arithDiv(left, right Value) Value {
	switch {
	case left.Tag == TagInt && right.Tag == TagInt:
		if right.Int == 0 {
			return Null
		}

		return NewInt(left.Int / right.Int)
	case left.Tag == TagInt && right.Tag == TagFloat:
		if right.Float == 0 {
			return Null
		}

		return NewFloat(float64(left.Int) / right.Float)
	case left.Tag == TagFloat && right.Tag == TagInt:
		if right.Int == 0 {
			return Null
		}

		return NewFloat(left.Float / float64(right.Int))
	case left.Tag == TagFloat && right.Tag == TagFloat:
		if right.Float == 0 {
			return Null
		}

		return NewFloat(left.Float / right.Float)
	default:
		return Null
	}
}

// arithMod implements `%`: the result has the sign of the dividend (Go's
// native % already matches this for integers); zero divisor yields Null.
func arithMod(left, right Value) Value {
	switch {
	case left.Tag == TagInt && right.Tag == TagInt:
		if right.Int == 0 {
			return Null
		}

		return NewInt(left.Int % right.Int)
	case left.Tag == TagInt && right.Tag == TagFloat:
		if right.Float == 0 {
			return Null
		}

		return NewFloat(floatMod(float64(left.Int), right.Float))
	case left.Tag == TagFloat && right.Tag == TagInt:
		if right.Int == 0 {
			return Null
		}

		return NewFloat(floatMod(left.Float, float64(right.Int)))
	case left.Tag == TagFloat && right.Tag == TagFloat:
		if right.Float == 0 {
			return Null
		}

		return NewFloat(floatMod(left.Float, right.Float))
	default:
		return Null
	}
}

func floatMod(a, b float64) float64 {
	return a - b*float64(int64(a/b))
}

// evalOrdering implements < <= > >= over Int/Int, Float/Float, mixed
// numeric, and Str/Str (lexicographic); any other combination yields
// Null, not a Bool (spec.md §4.4.2).
func evalOrdering(op Kind, left, right Value) Value {
	cmp, ok := compareValues(left, right)
	if !ok {
		return Null
	}

	switch op {
	case LT:
		return NewBool(cmp < 0)
	case LEQ:
		return NewBool(cmp <= 0)
	case GT:
		return NewBool(cmp > 0)
	case GEQ:
		return NewBool(cmp >= 0)
	default:
		return Null
	}
}

func compareValues(left, right Value) (cmp int, ok bool) {
	switch {
	case left.Tag == TagInt && right.Tag == TagInt:
		return compareInt64(left.Int, right.Int), true
	case left.Tag == TagFloat && right.Tag == TagFloat:
		return compareFloat64(left.Float, right.Float), true
	case left.Tag == TagInt && right.Tag == TagFloat:
		return compareFloat64(float64(left.Int), right.Float), true
	case left.Tag == TagFloat && right.Tag == TagInt:
		return compareFloat64(left.Float, float64(right.Int)), true
	case left.Tag == TagStr && right.Tag == TagStr:
		switch {
		case left.Str < right.Str:
			return -1, true
		case left.Str > right.Str:
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// evalIndex implements `a[b]` over List, Map, and Str (spec.md §4.4.3).
func evalIndex(e *Index, env *Env) Value {
	target := Eval(e.Target, env)
	key := Eval(e.Key, env)

	switch target.Tag {
	case TagList:
		if key.Tag != TagInt {
			return Null
		}

		idx := normalizeIndex(key.Int, len(target.List))
		if idx < 0 || idx >= len(target.List) {
			return Null
		}

		return target.List[idx]
	case TagMap:
		if key.Tag != TagStr {
			return Null
		}

		v, ok := target.Map.Get(key.Str)
		if !ok {
			return Null
		}

		return v
	case TagStr:
		if key.Tag != TagInt {
			return Null
		}

		idx := normalizeIndex(key.Int, scalarLen(target.Str))
		r, ok := runeAt(target.Str, idx)
		if !ok {
			return Null
		}

		return NewStr(r)
	default:
		return Null
	}
}

// normalizeIndex resolves a possibly-negative index against length,
// counting from the end when negative (-1 = last element). The caller is
// responsible for bounds-checking the result against [0, length).
func normalizeIndex(idx int64, length int) int {
	i := int(idx)
	if i < 0 {
		i += length
	}

	return i
}

// evalSlice implements `a[start:end]` over List and Str; Map slicing
// yields Null (spec.md §4.4.3).
func evalSlice(e *Slice, env *Env) Value {
	target := Eval(e.Target, env)

	switch target.Tag {
	case TagList:
		n := len(target.List)
		start, end := resolveSliceBounds(e, env, n)

		if start >= end {
			return NewList(nil)
		}

		out := make([]Value, end-start)
		copy(out, target.List[start:end])

		return NewList(out)
	case TagStr:
		n := scalarLen(target.Str)
		start, end := resolveSliceBounds(e, env, n)

		return NewStr(runeSlice(target.Str, start, end))
	default:
		return Null
	}
}

// resolveSliceBounds evaluates the optional Lo/Hi expressions (Int only;
// any other type resolves as though omitted), resolves negative values
// against length, and clamps both ends into [0, length].
func resolveSliceBounds(e *Slice, env *Env, length int) (start, end int) {
	start = 0
	end = length

	if e.Lo != nil {
		if v := Eval(e.Lo, env); v.Tag == TagInt {
			start = clampIndex(normalizeIndex(v.Int, length), length)
		}
	}

	if e.Hi != nil {
		if v := Eval(e.Hi, env); v.Tag == TagInt {
			end = clampIndex(normalizeIndex(v.Int, length), length)
		}
	}

	return start, end
}

func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}

	if i > length {
		return length
	}

	return i
}

// evalForEach implements the `>` comprehension over List and Map (spec.md
// §4.4.4): always produces a new List (or Null for any other source
// type), one element per source entry, each evaluated in its own fresh
// child scope so iterations never leak bindings into one another.
func evalForEach(e *ForEach, env *Env) Value {
	src := Eval(e.Source, env)

	switch src.Tag {
	case TagList:
		out := make([]Value, len(src.List))

		for i, elem := range src.List {
			iter := env.Child()
			iter.Define(e.Params[0], NewInt(int64(i)))
			iter.Define(e.Params[1], elem)
			out[i] = Eval(e.Body, iter)
		}

		return NewList(out)
	case TagMap:
		keys := src.Map.Keys()
		out := make([]Value, len(keys))

		for i, k := range keys {
			v, _ := src.Map.Get(k)

			iter := env.Child()
			iter.Define(e.Params[0], NewStr(k))
			iter.Define(e.Params[1], v)
			out[i] = Eval(e.Body, iter)
		}

		return NewList(out)
	default:
		return Null
	}
}

// evalCall implements Call dispatch (spec.md §4.4.6): the callee is
// evaluated generically (which already resolves built-in names via
// evalIdent), so this only needs to branch on whether the result is Fn.
func evalCall(e *Call, env *Env) Value {
	calleeVal := Eval(e.Callee, env)
	if calleeVal.Tag != TagFn {
		return Null
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		args[i] = Eval(a, env)
	}

	fn := calleeVal.Fn

	if fn.IsBuiltin() {
		return fn.Builtin(args)
	}

	call := fn.Env.Child()

	for i, name := range fn.Params {
		if i < len(args) {
			call.Define(name, args[i])
		} else {
			call.Define(name, Null)
		}
	}

	return Eval(fn.Body, call)
}

// evalBlock implements `{ b1; ...; bn; tail }` (spec.md §4.4.1): a fresh
// child scope, bindings evaluated and inserted in order so later
// statements and the tail see earlier ones, rebinding the same name
// overwrites the earlier slot, and the block's value is its tail.
func evalBlock(e *Block, env *Env) Value {
	scope := env.Child()

	for _, stmt := range e.Stmts {
		bind := stmt.(*Bind)
		scope.Define(bind.Name, Eval(bind.Value, scope))
	}

	return Eval(e.Tail, scope)
}
