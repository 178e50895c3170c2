package resl

// BuiltinFunc is the signature every native implementation in the
// built-ins registry satisfies. Per spec.md §4.6, built-ins are total:
// wrong arity or wrong argument types degrade to Null (or "" for concat)
// rather than failing, so the signature carries no error return.
type BuiltinFunc func(args []Value) Value

// builtins maps registered names to native implementations, dispatched
// exactly like user closures at call sites (spec.md §2 item 7, §4.4.6).
// Names here are shadowed by any user binding of the same name, per
// spec.md §4.5.
var builtins = map[string]BuiltinFunc{
	"concat":  builtinConcat,
	"to_str":  builtinToStr,
	"length":  builtinLength,
	"push":    builtinPush,
	"insert":  builtinInsert,
	"type_of": builtinTypeOf,
	"debug":   builtinDebug,
}

// lookupBuiltin returns the Fn wrapping name's native implementation, or
// (nil, false) if name is not a registered built-in.
func lookupBuiltin(name string) (*Fn, bool) {
	impl, ok := builtins[name]
	if !ok {
		return nil, false
	}

	return &Fn{Builtin: impl, Name: name}, true
}

// builtinConcat concatenates only Str arguments, skipping others;
// zero matching strings yields "".
func builtinConcat(args []Value) Value {
	var b []byte

	for _, a := range args {
		if a.Tag == TagStr {
			b = append(b, a.Str...)
		}
	}

	return NewStr(string(b))
}

// builtinToStr renders the canonical textual form (spec.md §4.6).
func builtinToStr(args []Value) Value {
	if len(args) == 0 {
		return NewStr("null")
	}

	return NewStr(args[0].ToString())
}

// builtinLength reports Unicode-scalar count for Str, element count for
// List, entry count for Map; Null otherwise.
func builtinLength(args []Value) Value {
	if len(args) == 0 {
		return Null
	}

	switch v := args[0]; v.Tag {
	case TagStr:
		return NewInt(int64(scalarLen(v.Str)))
	case TagList:
		return NewInt(int64(len(v.List)))
	case TagMap:
		return NewInt(int64(v.Map.Len()))
	default:
		return Null
	}
}

// builtinPush returns a new List with v appended; Null if the first
// argument is not a List.
func builtinPush(args []Value) Value {
	if len(args) < 2 || args[0].Tag != TagList {
		return Null
	}

	out := make([]Value, len(args[0].List)+1)
	copy(out, args[0].List)
	out[len(out)-1] = args[1]

	return NewList(out)
}

// builtinInsert implements insert(coll, key, v) per spec.md §4.6 and the
// pinned resolution of §9 Open Question 2: for List, a negative index
// counts from the end (-1 means "the slot before the last element"), and
// the result is clamped to the nearest valid endpoint; for Map, key→v is
// set, preserving the original position on overwrite (§9 Open Question 3).
func builtinInsert(args []Value) Value {
	if len(args) < 3 {
		return Null
	}

	coll, key, v := args[0], args[1], args[2]

	switch coll.Tag {
	case TagList:
		if key.Tag != TagInt {
			return Null
		}

		idx := int(key.Int)
		n := len(coll.List)

		if idx < 0 {
			idx = n + idx
		}

		if idx < 0 {
			idx = 0
		}

		if idx > n {
			idx = n
		}

		out := make([]Value, 0, n+1)
		out = append(out, coll.List[:idx]...)
		out = append(out, v)
		out = append(out, coll.List[idx:]...)

		return NewList(out)
	case TagMap:
		if key.Tag != TagStr {
			return Null
		}

		m := coll.Map.Clone()
		m.Set(key.Str, v)

		return NewMap(m)
	default:
		return Null
	}
}

// builtinTypeOf returns the tag name (spec.md §4.6).
func builtinTypeOf(args []Value) Value {
	if len(args) == 0 {
		return NewStr(TagNull.String())
	}

	return NewStr(args[0].typeOf())
}

// builtinDebug writes v's canonical textual form followed by a newline to
// the process-wide debug sink (spec.md §6.3), then returns v unchanged.
func builtinDebug(args []Value) Value {
	if len(args) == 0 {
		writeDebug("null")

		return Null
	}

	writeDebug(args[0].ToString())

	return args[0]
}
