package resl

import (
	"strconv"
	"unicode/utf8"
)

// Tag discriminates the payload of a Value. The set matches spec.md §3.1
// exactly: Null | Bool | Int | Float | Str | List | Map | Fn.
type Tag int

const (
	TagNull Tag = iota
	TagBool
	TagInt
	TagFloat
	TagStr
	TagList
	TagMap
	TagFn
)

func (t Tag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagBool:
		return "boolean"
	case TagInt:
		return "integer"
	case TagFloat:
		return "float"
	case TagStr:
		return "string"
	case TagList:
		return "list"
	case TagMap:
		return "map"
	case TagFn:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the immutable tagged sum produced by evaluation (spec.md §3.1).
// Exactly one payload field is meaningful for a given Tag; values are never
// mutated in place after construction — List/Map-returning operations
// always build a fresh Value.
type Value struct {
	Tag   Tag
	Bool  bool
	Int   int64
	Float float64
	Str   string
	List  []Value
	Map   *Map
	Fn    *Fn
}

// Null is the shared Null value.
var Null = Value{Tag: TagNull}

// NewBool constructs a Bool value.
func NewBool(b bool) Value { return Value{Tag: TagBool, Bool: b} }

// NewInt constructs an Int value.
func NewInt(i int64) Value { return Value{Tag: TagInt, Int: i} }

// NewFloat constructs a Float value.
func NewFloat(f float64) Value { return Value{Tag: TagFloat, Float: f} }

// NewStr constructs a Str value.
func NewStr(s string) Value { return Value{Tag: TagStr, Str: s} }

// NewList constructs a List value. elems is taken by reference: callers
// must not mutate the backing array afterward.
func NewList(elems []Value) Value { return Value{Tag: TagList, List: elems} }

// NewMap constructs a Map value from an already-built ordered Map.
func NewMap(m *Map) Value { return Value{Tag: TagMap, Map: m} }

// NewFn constructs an Fn value.
func NewFn(fn *Fn) Value { return Value{Tag: TagFn, Fn: fn} }

// Fn is a closure: either a user-defined lambda capturing its defining
// environment, or a built-in native implementation. Both are called
// identically from Call sites (spec.md §2 item 7, §4.4.6).
type Fn struct {
	Params []string
	Body   Expr
	Env    *Env

	Builtin BuiltinFunc
	Name    string // non-empty for built-ins; to_str renders every Fn as "<fn>"
}

// IsBuiltin reports whether fn wraps a native implementation rather than a
// user-defined lambda.
func (fn *Fn) IsBuiltin() bool { return fn.Builtin != nil }

// Map is an ordered string-keyed mapping (spec.md §3.1: "preserves
// insertion order"; duplicate keys on construction: last write wins, but
// retains its original position — spec.md §9.3). Go's builtin map has no
// iteration order, so Map pairs one with a parallel key-order slice,
// following the ordered-map need the teacher satisfies elsewhere (e.g.
// lang/env.go's sortedKeys) and original_source/resl's ValueMap.
type Map struct {
	order []string
	index map[string]Value
}

// NewOrderedMap creates an empty ordered map.
func NewOrderedMap() *Map {
	return &Map{index: make(map[string]Value)}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.order)
}

// Get looks up key, returning (value, true) if present.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Null, false
	}

	v, ok := m.index[key]

	return v, ok
}

// Set inserts or overwrites key. Overwriting an existing key preserves its
// original position (spec.md §9.3's pinned resolution); a new key is
// appended.
func (m *Map) Set(key string, v Value) {
	if _, exists := m.index[key]; !exists {
		m.order = append(m.order, key)
	}

	m.index[key] = v
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by the caller.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	return m.order
}

// Clone returns a deep-enough copy of m: a new key-order slice and index,
// sharing Value payloads (which are themselves immutable).
func (m *Map) Clone() *Map {
	if m == nil {
		return NewOrderedMap()
	}

	out := &Map{
		order: append([]string(nil), m.order...),
		index: make(map[string]Value, len(m.index)),
	}

	for k, v := range m.index {
		out.index[k] = v
	}

	return out
}

// Truthy implements the truthiness table of spec.md §4.4.2, centralized so
// every operator and built-in that consults it agrees.
func (v Value) Truthy() bool {
	switch v.Tag {
	case TagNull:
		return false
	case TagBool:
		return v.Bool
	case TagInt:
		return v.Int != 0
	case TagFloat:
		return v.Float != 0
	case TagStr:
		return v.Str != ""
	case TagList, TagMap, TagFn:
		return true
	default:
		return false
	}
}

// Equal implements == between any two values (spec.md §4.4.2): different
// tags compare non-equal except Int/Float which compare numerically after
// widening; Fn is never equal to anything, including another Fn.
func (v Value) Equal(other Value) bool {
	switch v.Tag {
	case TagNull:
		return other.Tag == TagNull
	case TagBool:
		return other.Tag == TagBool && v.Bool == other.Bool
	case TagInt:
		switch other.Tag {
		case TagInt:
			return v.Int == other.Int
		case TagFloat:
			return float64(v.Int) == other.Float
		default:
			return false
		}
	case TagFloat:
		switch other.Tag {
		case TagInt:
			return v.Float == float64(other.Int)
		case TagFloat:
			return v.Float == other.Float
		default:
			return false
		}
	case TagStr:
		return other.Tag == TagStr && v.Str == other.Str
	case TagList:
		if other.Tag != TagList || len(v.List) != len(other.List) {
			return false
		}

		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}

		return true
	case TagMap:
		if other.Tag != TagMap || v.Map.Len() != other.Map.Len() {
			return false
		}

		for _, k := range v.Map.Keys() {
			a, _ := v.Map.Get(k)

			b, ok := other.Map.Get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}

		return true
	case TagFn:
		return false
	default:
		return false
	}
}

// typeOf returns the type_of() built-in's string, which matches Tag.String
// except that spec.md §4.6 documents the set without "function" (it is
// produced "if queried", per §9's note) — Tag.String already supplies it.
func (v Value) typeOf() string { return v.Tag.String() }

// ToString renders the canonical textual form used by to_str() (spec.md
// §4.6) and as the default Display for Value: Null -> "null", Bool ->
// "true"/"false", Int -> decimal, Float -> shortest round-trip decimal
// with a forced ".0" when it would otherwise look like an integer, Str ->
// itself unquoted, List/Map -> the formatter's compact form, Fn -> "<fn>".
func (v Value) ToString() string {
	switch v.Tag {
	case TagNull:
		return "null"
	case TagBool:
		if v.Bool {
			return "true"
		}

		return "false"
	case TagInt:
		return strconv.FormatInt(v.Int, 10)
	case TagFloat:
		return formatFloat(v.Float)
	case TagStr:
		return v.Str
	case TagList, TagMap:
		return formatValueCompact(v)
	case TagFn:
		return "<fn>"
	default:
		return ""
	}
}

// formatFloat renders f as the shortest decimal that round-trips, forcing
// a trailing ".0" when the result would otherwise look like an integer —
// grounded on original_source/resl/src/value.rs's Value::format for Float
// (spec.md §9 Open Question 4, pinned here).
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E', 'n', 'i': // '.' or exponent or NaN/Inf
			return s
		}
	}

	return s + ".0"
}

// scalarLen returns the Unicode-scalar count of s, the pinned resolution
// of spec.md §9 Open Question 1.
func scalarLen(s string) int {
	return utf8.RuneCountInString(s)
}

// runeAt returns the one-character string at Unicode scalar position idx,
// or ("", false) if out of range. Used by Str indexing (spec.md §4.4.3).
func runeAt(s string, idx int) (string, bool) {
	if idx < 0 {
		return "", false
	}

	i := 0

	for _, r := range s {
		if i == idx {
			return string(r), true
		}

		i++
	}

	return "", false
}

// runeSlice returns the substring spanning Unicode scalars [start, end).
func runeSlice(s string, start, end int) string {
	if start >= end {
		return ""
	}

	runes := []rune(s)
	if start < 0 {
		start = 0
	}

	if end > len(runes) {
		end = len(runes)
	}

	if start >= end {
		return ""
	}

	return string(runes[start:end])
}
