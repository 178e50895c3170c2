package resl

import (
	"strings"
	"testing"
)

func TestEvaluateEmbeddingEntryPoint(t *testing.T) {
	t.Parallel()

	v, err := Evaluate("1 + 2")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if v.Tag != TagInt || v.Int != 3 {
		t.Errorf("Evaluate() = %v, want Int(3)", v)
	}
}

func TestEvaluateParseErrorPropagation(t *testing.T) {
	t.Parallel()

	_, err := Evaluate("1 +")
	if err == nil {
		t.Fatal("Evaluate() succeeded on invalid source, want *ParseError")
	}

	if err.Kind != ErrParse {
		t.Errorf("err.Kind = %v, want ErrParse", err.Kind)
	}
}

func TestEvaluateAndFormatRendersResult(t *testing.T) {
	t.Parallel()

	out, err := EvaluateAndFormat(`{ x = [1,2,3]; x }`, false)
	if err != nil {
		t.Fatalf("EvaluateAndFormat() error = %v", err)
	}

	if out != "[1,2,3]" {
		t.Errorf("EvaluateAndFormat() = %q, want %q", out, "[1,2,3]")
	}
}

func TestEvaluateAndFormatMap(t *testing.T) {
	t.Parallel()

	out, err := EvaluateAndFormat(`["a":1,"b":2]`, false)
	if err != nil {
		t.Fatalf("EvaluateAndFormat() error = %v", err)
	}

	if out != `["a":1,"b":2]` {
		t.Errorf("EvaluateAndFormat() = %q, want %q", out, `["a":1,"b":2]`)
	}
}

func TestParseReaderMatchesParse(t *testing.T) {
	t.Parallel()

	src := "1 + 2 * 3"

	got, err := ParseReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}

	want, werr := Parse(src)
	if werr != nil {
		t.Fatalf("Parse() error = %v", werr)
	}

	if FormatNode(got, false) != FormatNode(want, false) {
		t.Errorf("ParseReader() produced a different AST than Parse()")
	}
}

func TestParseReaderNilSource(t *testing.T) {
	t.Parallel()

	_, err := ParseReader(nil)
	if err == nil {
		t.Fatal("ParseReader(nil) succeeded, want error")
	}
}

func TestParseCachedReturnsEquivalentResultOnRepeat(t *testing.T) {
	t.Parallel()

	ResetParseCache()
	defer ResetParseCache()

	src := "1 + 2"

	first, ferr := ParseCached(src)
	if ferr != nil {
		t.Fatalf("ParseCached() error = %v", ferr)
	}

	second, serr := ParseCached(src)
	if serr != nil {
		t.Fatalf("ParseCached() error = %v", serr)
	}

	if FormatNode(first, false) != FormatNode(second, false) {
		t.Errorf("ParseCached() produced divergent results for identical input")
	}
}

func TestParseCachedErrorIsAlsoCached(t *testing.T) {
	t.Parallel()

	ResetParseCache()
	defer ResetParseCache()

	src := "1 +"

	_, err1 := ParseCached(src)
	_, err2 := ParseCached(src)

	if err1 == nil || err2 == nil {
		t.Fatal("ParseCached() succeeded on invalid source, want errors both times")
	}

	if err1.Error() != err2.Error() {
		t.Errorf("cached error mismatch: %q != %q", err1.Error(), err2.Error())
	}
}

func TestResetParseCacheClears(t *testing.T) {
	t.Parallel()

	src := "42"

	if _, err := ParseCached(src); err != nil {
		t.Fatalf("ParseCached() error = %v", err)
	}

	ResetParseCache()

	if _, err := ParseCached(src); err != nil {
		t.Fatalf("ParseCached() after reset error = %v", err)
	}
}

func TestToNativeRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewOrderedMap()
	m.Set("a", NewInt(1))
	m.Set("b", NewStr("x"))

	v := NewMap(m)

	native := v.ToNative()

	back := FromNative(native)

	a, _ := back.Map.Get("a")
	b, _ := back.Map.Get("b")

	if a.Int != 1 || b.Str != "x" {
		t.Errorf("round trip mismatch: a=%v b=%v", a, b)
	}
}

func TestToNativeScalarsAndList(t *testing.T) {
	t.Parallel()

	v := NewList([]Value{Null, NewBool(true), NewInt(1), NewFloat(1.5), NewStr("s")})

	native, ok := v.ToNative().([]any)
	if !ok {
		t.Fatalf("ToNative() = %T, want []any", v.ToNative())
	}

	if native[0] != nil || native[1] != true || native[2] != int64(1) || native[3] != 1.5 || native[4] != "s" {
		t.Errorf("ToNative() = %v, unexpected element", native)
	}
}

func TestToNativeFnIsNil(t *testing.T) {
	t.Parallel()

	if got := NewFn(&Fn{}).ToNative(); got != nil {
		t.Errorf("Fn.ToNative() = %v, want nil", got)
	}
}

func TestFromNativeUnsupportedTypeIsNull(t *testing.T) {
	t.Parallel()

	type custom struct{}

	if got := FromNative(custom{}); got.Tag != TagNull {
		t.Errorf("FromNative(unsupported) = %v, want Null", got)
	}
}

func TestBuilderSmokeTest(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	expr := b.Block(
		b.Add(b.Ident("x"), b.Ident("y")),
		b.Bind("x", b.Int(10)),
		b.Bind("y", b.Int(20)),
	)

	got := Eval(expr, NewEnv())
	if got.Tag != TagInt || got.Int != 30 {
		t.Errorf("Eval(builder expr) = %v, want Int(30)", got)
	}
}

func TestBuilderLambdaAndCall(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	double := b.Lambda([]string{"n"}, b.Mul(b.Ident("n"), b.Int(2)))

	expr := b.Block(
		b.Call(b.Ident("double"), b.Int(21)),
		b.Bind("double", double),
	)

	got := Eval(expr, NewEnv())
	if got.Tag != TagInt || got.Int != 42 {
		t.Errorf("Eval(builder lambda call) = %v, want Int(42)", got)
	}
}

func TestBuilderForEach(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	expr := b.ForEach(b.List(b.Int(1), b.Int(2), b.Int(3)), "i", "n", b.Mul(b.Ident("n"), b.Int(10)))

	got := Eval(expr, NewEnv())
	want := NewList([]Value{NewInt(10), NewInt(20), NewInt(30)})

	if !got.Equal(want) {
		t.Errorf("Eval(builder forEach) = %v, want %v", got, want)
	}
}

func TestBuilderMapSkipsNonStringKey(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	expr := b.Map(MapEntry{Key: b.Int(1), Value: b.Str("skipped")}, b.Entry("kept", b.Str("v")))

	got := Eval(expr, NewEnv())
	if got.Tag != TagMap || got.Map.Len() != 1 {
		t.Fatalf("Eval(builder map) = %v, want single-entry map", got)
	}

	v, ok := got.Map.Get("kept")
	if !ok || v.Str != "v" {
		t.Errorf("Get(kept) = %v, %v, want v, true", v, ok)
	}
}
