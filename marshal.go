package resl

// ToNative converts a Value into a tree of native Go types suitable for
// encoding/json or other off-the-shelf marshalers (spec.md §6.1's value
// marshaling contract, minus the C-ABI handle/disposal machinery that
// only applies across a foreign-function boundary — out of scope per
// spec.md §1's Non-goals on FFI bindings). The mapping: Null -> nil,
// Bool -> bool, Int -> int64, Float -> float64, Str -> string, List ->
// []any, Map -> map[string]any (insertion order is lost, matching the
// target type's own lack of ordering — callers that need order should
// walk Map.Keys() directly instead), Fn -> nil (closures have no native
// representation).
func (v Value) ToNative() any {
	switch v.Tag {
	case TagNull:
		return nil
	case TagBool:
		return v.Bool
	case TagInt:
		return v.Int
	case TagFloat:
		return v.Float
	case TagStr:
		return v.Str
	case TagList:
		out := make([]any, len(v.List))
		for i, el := range v.List {
			out[i] = el.ToNative()
		}

		return out
	case TagMap:
		out := make(map[string]any, v.Map.Len())
		for _, k := range v.Map.Keys() {
			val, _ := v.Map.Get(k)
			out[k] = val.ToNative()
		}

		return out
	case TagFn:
		return nil
	default:
		return nil
	}
}

// FromNative builds a Value from a tree of native Go types, the inverse
// of ToNative for the subset of Go values it can represent. Unsupported
// types (anything not in the list below) become Null, matching the
// evaluator's universal fallback (spec.md §4.7). Map key order for a
// map[string]any input is unspecified since Go maps carry none;
// embedders that need deterministic order should build a *Map directly
// via NewOrderedMap and NewMap instead.
func FromNative(v any) Value {
	switch n := v.(type) {
	case nil:
		return Null
	case bool:
		return NewBool(n)
	case int:
		return NewInt(int64(n))
	case int64:
		return NewInt(n)
	case float64:
		return NewFloat(n)
	case string:
		return NewStr(n)
	case []any:
		out := make([]Value, len(n))
		for i, el := range n {
			out[i] = FromNative(el)
		}

		return NewList(out)
	case map[string]any:
		m := NewOrderedMap()
		for k, el := range n {
			m.Set(k, FromNative(el))
		}

		return NewMap(m)
	default:
		return Null
	}
}
