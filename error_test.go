package resl

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestErrorMessageJoining(t *testing.T) {
	t.Parallel()

	e := NewError("boom").Wrap(errors.New("root cause"))

	if got := e.Error(); got != "boom: root cause" {
		t.Errorf("Error() = %q, want %q", got, "boom: root cause")
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	e := NewError("boom").Wrap(cause)

	if !errors.Is(e, cause) {
		t.Error("errors.Is(e, cause) = false, want true")
	}
}

func TestWrapErrorReusesExistingError(t *testing.T) {
	t.Parallel()

	orig := NewError("x")

	got := WrapError(orig)
	if got != orig {
		t.Error("WrapError() allocated a new *Error instead of reusing the existing one")
	}
}

func TestWrapErrorWrapsPlainError(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain")

	got := WrapError(plain)
	if got.Error() != "plain" {
		t.Errorf("WrapError(plain).Error() = %q, want %q", got.Error(), "plain")
	}
}

func TestErrorWithAttrs(t *testing.T) {
	t.Parallel()

	e := NewError("boom").With(slog.String("key", "value"))

	lv := e.LogValue()
	if lv.Kind() != slog.KindGroup {
		t.Fatalf("LogValue().Kind() = %v, want KindGroup", lv.Kind())
	}

	found := false

	for _, a := range lv.Group() {
		if a.Key == "key" && a.Value.String() == "value" {
			found = true
		}
	}

	if !found {
		t.Error("LogValue() group missing the attribute added via With()")
	}
}

func TestParseErrorRendering(t *testing.T) {
	t.Parallel()

	_, err := Parse("1 +")
	if err == nil {
		t.Fatal("Parse() succeeded, want error")
	}

	msg := err.Error()

	if !strings.Contains(msg, "line") || !strings.Contains(msg, "column") {
		t.Errorf("Error() = %q, missing line/column", msg)
	}

	if err.Kind != ErrParse {
		t.Errorf("Kind = %v, want ErrParse", err.Kind)
	}
}

func TestParseErrorLexKind(t *testing.T) {
	t.Parallel()

	_, err := Parse(`"unterminated`)
	if err == nil {
		t.Fatal("Parse() succeeded, want error")
	}

	if err.Kind != ErrLex {
		t.Errorf("Kind = %v, want ErrLex", err.Kind)
	}

	if !strings.Contains(err.Error(), "token") {
		t.Errorf("Error() = %q, want it to mention %q", err.Error(), "token")
	}
}

func TestJoinOr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		items []string
		want  string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a or b"},
		{[]string{"a", "b", "c"}, "a, b or c"},
	}

	for _, tt := range tests {
		if got := joinOr(tt.items); got != tt.want {
			t.Errorf("joinOr(%v) = %q, want %q", tt.items, got, tt.want)
		}
	}
}
