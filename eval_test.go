package resl

import "testing"

// TestEvaluateScenarios exercises the spec's numbered table of concrete
// scenarios end to end through Evaluate.
func TestEvaluateScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"arith_grouping", `(10 + 5) * 2`, NewInt(30)},
		{"block_bindings", `{ x = 10; y = 20; x + y }`, NewInt(30)},
		{"undefined_is_null", `{ x = undefined_var; x }`, Null},
		{"ternary_adult", `? (25 >= 18) : "adult" | "minor"`, NewStr("adult")},
		{"foreach_double", `[1,2,3,4] > (i,n) : n * 2`, NewList([]Value{NewInt(2), NewInt(4), NewInt(6), NewInt(8)})},
		{"closure_add", `{ add = |x,y| x + y; add(5,3) }`, NewInt(8)},
		{"length_unicode", `length("héllo")`, NewInt(5)},
		{"insert_middle", `insert([1,3], 1, 2)`, NewList([]Value{NewInt(1), NewInt(2), NewInt(3)})},
		{"slice", `[0,1,2,3,4,5][1:4]`, NewList([]Value{NewInt(1), NewInt(2), NewInt(3)})},
		{"rebind_wins", `{ x = 1; x = 2; x }`, NewInt(2)},
		{"int_div_zero", `10 / 0`, Null},
		{"and_evaluates_right", `true && (1/0)`, Null},
		{"and_short_circuits", `false && undefined_var`, NewBool(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, perr := Evaluate(tt.src)
			if perr != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.src, perr)
			}

			if !got.Equal(tt.want) {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvaluateArithmeticWidening(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		tag  Tag
		want Value
	}{
		{"int_int_add", "1 + 2", TagInt, NewInt(3)},
		{"int_float_add", "1 + 2.5", TagFloat, NewFloat(3.5)},
		{"float_int_add", "2.5 + 1", TagFloat, NewFloat(3.5)},
		{"float_float_add", "1.5 + 2.5", TagFloat, NewFloat(4)},
		{"str_concat", `"a" + "b"`, TagStr, NewStr("ab")},
		{"mismatched_add", `1 + "a"`, TagNull, Null},
		{"int_div_truncates", "7 / 2", TagInt, NewInt(3)},
		{"int_div_truncates_toward_zero", "-7 / 2", TagInt, NewInt(-3)},
		{"mod_sign_of_dividend", "-7 % 2", TagInt, NewInt(-1)},
		{"float_div_zero", "1.0 / 0.0", TagNull, Null},
		{"float_mod_zero", "1.0 % 0.0", TagNull, Null},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, perr := Evaluate(tt.src)
			if perr != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.src, perr)
			}

			if got.Tag != tt.tag {
				t.Fatalf("Evaluate(%q).Tag = %v, want %v", tt.src, got.Tag, tt.tag)
			}

			if !got.Equal(tt.want) {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvaluateComparisons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"eq_cross_tag", `1 == "1"`, NewBool(false)},
		{"eq_int_float", `1 == 1.0`, NewBool(true)},
		{"ne_is_not_eq", `1 != 2`, NewBool(true)},
		{"lt_str", `"a" < "b"`, NewBool(true)},
		{"lt_mismatched", `1 < "a"`, Null},
		{"le_equal", `3 <= 3`, NewBool(true)},
		{"ge_mixed_numeric", `3 >= 2.5`, NewBool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, perr := Evaluate(tt.src)
			if perr != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.src, perr)
			}

			if !got.Equal(tt.want) {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestOperatorLaws(t *testing.T) {
	t.Parallel()

	t.Run("eq_reflexive", func(t *testing.T) {
		t.Parallel()

		got, perr := Evaluate(`{ x = 42; x == x }`)
		if perr != nil {
			t.Fatalf("Evaluate() error = %v", perr)
		}

		if !got.Bool {
			t.Errorf("x == x = %v, want true", got)
		}
	})

	t.Run("ne_is_negation_of_eq", func(t *testing.T) {
		t.Parallel()

		pairs := [][2]string{{"1", "2"}, {"1", "1"}, {`"a"`, `"b"`}, {"true", "false"}}

		for _, p := range pairs {
			eq, perr := Evaluate(p[0] + " == " + p[1])
			if perr != nil {
				t.Fatalf("Evaluate() error = %v", perr)
			}

			ne, perr := Evaluate(p[0] + " != " + p[1])
			if perr != nil {
				t.Fatalf("Evaluate() error = %v", perr)
			}

			if eq.Bool == ne.Bool {
				t.Errorf("%s == %s (%v) and != (%v) agree, want opposite", p[0], p[1], eq, ne)
			}
		}
	})

	t.Run("double_negation_int", func(t *testing.T) {
		t.Parallel()

		got, perr := Evaluate(`{ x = 5; -(-x) == x }`)
		if perr != nil {
			t.Fatalf("Evaluate() error = %v", perr)
		}

		if !got.Bool {
			t.Errorf("-(-x) == x = %v, want true", got)
		}
	})

	t.Run("double_negation_float", func(t *testing.T) {
		t.Parallel()

		got, perr := Evaluate(`{ x = 5.5; -(-x) == x }`)
		if perr != nil {
			t.Fatalf("Evaluate() error = %v", perr)
		}

		if !got.Bool {
			t.Errorf("-(-x) == x = %v, want true", got)
		}
	})

	t.Run("double_not_bool", func(t *testing.T) {
		t.Parallel()

		for _, b := range []string{"true", "false"} {
			got, perr := Evaluate("!!" + b + " == " + b)
			if perr != nil {
				t.Fatalf("Evaluate() error = %v", perr)
			}

			if !got.Bool {
				t.Errorf("!!%s == %s = %v, want true", b, b, got)
			}
		}
	})

	t.Run("or_short_circuits", func(t *testing.T) {
		t.Parallel()

		got, perr := Evaluate(`true || undefined_var`)
		if perr != nil {
			t.Fatalf("Evaluate() error = %v", perr)
		}

		if !got.Bool {
			t.Errorf("true || undefined_var = %v, want true", got)
		}
	})
}

func TestEvaluateTotalityNeverPanics(t *testing.T) {
	t.Parallel()

	srcs := []string{
		`1 + true`, `[1,2] + 1`, `"a" - "b"`, `null[0]`, `1[0]`,
		`[1,2,3](1)`, `["a":1]["a"][0]`, `-"x"`, `!null`, `null()`,
		`[1,2,3][100]`, `[1,2,3][-100]`, `"abc"[100]`, `null == null`,
		`concat()`, `to_str()`, `length(1)`, `push(1, 2)`, `insert(1,1,1)`,
		`type_of()`, `debug()`,
	}

	for _, src := range srcs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Evaluate(%q) panicked: %v", src, r)
				}
			}()

			if _, perr := Evaluate(src); perr != nil {
				t.Errorf("Evaluate(%q) unexpected parse error: %v", src, perr)
			}
		}()
	}
}

func TestEvaluateBlockScopeSharedAcrossBindings(t *testing.T) {
	t.Parallel()

	// A Block evaluates all of its statements into one child Env (eval.go's
	// evalBlock), so a closure capturing that Env observes a later rebind
	// of a name in the same block once the closure is actually called.
	src := `{ x = 1; f = || x; x = 2; f() }`

	got, perr := Evaluate(src)
	if perr != nil {
		t.Fatalf("Evaluate() error = %v", perr)
	}

	if got.Int != 2 {
		t.Errorf("f() = %v, want Int(2) under the shared-block-scope implementation", got)
	}
}

func TestEvaluateClosureCapturesOuterScope(t *testing.T) {
	t.Parallel()

	src := `{ make_adder = |n| |x| x + n; add5 = make_adder(5); add5(10) }`

	got, perr := Evaluate(src)
	if perr != nil {
		t.Fatalf("Evaluate() error = %v", perr)
	}

	if got.Int != 15 {
		t.Errorf("add5(10) = %v, want Int(15)", got)
	}
}

func TestEvaluateArityMismatch(t *testing.T) {
	t.Parallel()

	t.Run("extra_args_discarded", func(t *testing.T) {
		t.Parallel()

		got, perr := Evaluate(`{ f = |x| x; f(1, 2, 3) }`)
		if perr != nil {
			t.Fatalf("Evaluate() error = %v", perr)
		}

		if got.Int != 1 {
			t.Errorf("f(1,2,3) = %v, want Int(1)", got)
		}
	})

	t.Run("missing_args_bind_null", func(t *testing.T) {
		t.Parallel()

		got, perr := Evaluate(`{ f = |x,y| y; f(1) }`)
		if perr != nil {
			t.Fatalf("Evaluate() error = %v", perr)
		}

		if got.Tag != TagNull {
			t.Errorf("f(1) = %v, want Null", got)
		}
	})
}

func TestEvaluateForEachOverMapPreservesOrder(t *testing.T) {
	t.Parallel()

	got, perr := Evaluate(`["z":1,"a":2,"m":3] > (k,v) : k`)
	if perr != nil {
		t.Fatalf("Evaluate() error = %v", perr)
	}

	want := []string{"z", "a", "m"}

	if len(got.List) != len(want) {
		t.Fatalf("len(List) = %d, want %d", len(got.List), len(want))
	}

	for i, k := range want {
		if got.List[i].Str != k {
			t.Errorf("List[%d] = %q, want %q", i, got.List[i].Str, k)
		}
	}
}

func TestEvaluateForEachNonCollectionIsNull(t *testing.T) {
	t.Parallel()

	got, perr := Evaluate(`5 > (a,b) : a`)
	if perr != nil {
		t.Fatalf("Evaluate() error = %v", perr)
	}

	if got.Tag != TagNull {
		t.Errorf("Evaluate() = %v, want Null", got)
	}
}

func TestEvaluateIndexingEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"map_missing_key", `["a":1]["b"]`, Null},
		{"str_index", `"hello"[1]`, NewStr("e")},
		{"str_negative_index", `"hello"[-1]`, NewStr("o")},
		{"list_out_of_range", `[1,2,3][10]`, Null},
		{"map_index_by_int", `["a":1][0]`, Null},
		{"map_slice_is_null", `["a":1][0:1]`, Null},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, perr := Evaluate(tt.src)
			if perr != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.src, perr)
			}

			if !got.Equal(tt.want) {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvaluateBuiltinShadowing(t *testing.T) {
	t.Parallel()

	// A user binding of a built-in's name shadows the built-in, per
	// spec.md §4.5.
	got, perr := Evaluate(`{ length = |x| 999; length("hi") }`)
	if perr != nil {
		t.Fatalf("Evaluate() error = %v", perr)
	}

	if got.Int != 999 {
		t.Errorf("shadowed length(\"hi\") = %v, want Int(999)", got)
	}
}

func TestEvaluateMapLiteralNonStringKeySkipped(t *testing.T) {
	t.Parallel()

	got, perr := Evaluate(`[1:"a", "b":2]`)
	if perr != nil {
		t.Fatalf("Evaluate() error = %v", perr)
	}

	if got.Tag != TagMap || got.Map.Len() != 1 {
		t.Fatalf("Evaluate() = %v, want single-entry map", got)
	}

	if v, ok := got.Map.Get("b"); !ok || v.Int != 2 {
		t.Errorf(`Map.Get("b") = %v, %v, want 2, true`, v, ok)
	}
}

func TestEvaluateDeterminism(t *testing.T) {
	t.Parallel()

	src := `{ x = 1; y = [x, x+1, x+2]; y > (i,n) : n * i }`

	a, perrA := Evaluate(src)
	b, perrB := Evaluate(src)

	if perrA != nil || perrB != nil {
		t.Fatalf("Evaluate() errors = %v, %v", perrA, perrB)
	}

	if !a.Equal(b) {
		t.Errorf("Evaluate(%q) is nondeterministic: %v != %v", src, a, b)
	}
}
