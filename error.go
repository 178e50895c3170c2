package resl

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined sentinel errors for embedder-facing plumbing failures. These
// never originate from RESL source text itself — see ParseError for that.
var (
	ErrInvalidHandle   = NewError("invalid value handle")
	ErrAlreadyDisposed = NewError("value already disposed")
	ErrNilSource       = NewError("nil source reader")
)

// Error is a structured error carrying an optional wrapped cause and a bag
// of slog attributes, following the teacher's lang.Error.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an *Error, reusing it in place if
// it already is one.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer for structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with additional structured attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(merged, e.attrs)
	copy(merged[len(e.attrs):], attrs)

	return &Error{msg: e.msg, err: e.err, attrs: merged}
}

// ErrorKind distinguishes the two parse-time failure classes named in
// spec.md §7. Both are delivered through the same ParseError channel —
// kind only affects the rendered headline.
type ErrorKind int

const (
	ErrLex ErrorKind = iota
	ErrParse
)

func (k ErrorKind) label() string {
	if k == ErrLex {
		return "token"
	}

	return "syntax"
}

// ParseError is the sole failure channel surfaced to callers of the
// embedding API (spec.md §6, §7). It carries the failing span plus enough
// source context to render a caret-annotated snippet, following
// original_source/resl/src/error.rs's Display implementation and the
// teacher's lang.ParseError.formatWithContext.
type ParseError struct {
	Kind     ErrorKind
	Span     Span
	Message  string
	Line     int
	Column   int
	Snippet  string
	Expected []string
}

func newParseError(kind ErrorKind, source string, span Span, message string) *ParseError {
	loc, rendered := snippet(source, span.Start)

	return &ParseError{
		Kind:    kind,
		Span:    span,
		Message: message,
		Line:    loc.Line,
		Column:  loc.Column,
		Snippet: rendered,
	}
}

// withExpected attaches the set of token descriptions that would have been
// valid at the error's position.
func (e *ParseError) withExpected(expected ...string) *ParseError {
	e.Expected = expected

	return e
}

// Error implements the error interface, rendering a compiler-style
// diagnostic: a headline, the offending line, a caret, and an "expected"
// trailer — mirroring original_source/resl/src/error.rs's Display impl.
func (e *ParseError) Error() string {
	var b strings.Builder

	b.WriteString("Error: invalid ")
	b.WriteString(e.Kind.label())
	b.WriteString(": ")
	b.WriteString(e.Message)
	b.WriteString("\n --> line ")
	b.WriteString(strconv.Itoa(e.Line))
	b.WriteString(", column ")
	b.WriteString(strconv.Itoa(e.Column))
	b.WriteByte('\n')
	b.WriteString(e.Snippet)

	if len(e.Expected) > 0 {
		b.WriteString("\n= expected ")
		b.WriteString(joinOr(e.Expected))
	}

	return b.String()
}

func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
	}
}

