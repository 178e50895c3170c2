// Package resl implements the RESL configuration/serialization language:
// a lexer, a recursive-descent parser, a tree-walking evaluator with
// lexical scoping and first-class closures, and a source formatter, all
// operating over a small immutable value model shared with embedders.
package resl

import (
	"io"

	"github.com/klauspost/readahead"
)

// Evaluate parses and evaluates input, returning the resulting Value
// (spec.md §6.1 operation 2). The only failure channel is *ParseError;
// evaluation itself never fails once parsing succeeds (spec.md §4.7).
func Evaluate(input string) (Value, *ParseError) {
	expr, err := ParseCached(input)
	if err != nil {
		return Null, err
	}

	return Eval(expr, NewEnv()), nil
}

// EvaluateAndFormat parses input, evaluates it, and renders the resulting
// value back to source text in the requested mode (spec.md §6.1
// operation 3). Because a Value carries no span information, the
// rendered text is built directly from the value tree via the same
// compact/pretty rules FormatNode applies to an AST's literals.
func EvaluateAndFormat(input string, pretty bool) (string, *ParseError) {
	v, err := Evaluate(input)
	if err != nil {
		return "", err
	}

	return formatValue(v, pretty, 0), nil
}

// formatValue renders an evaluated Value as source text, following the
// same compact/pretty collection-layout rules as FormatNode (spec.md
// §4.3), since a bare Value (unlike an AST) carries no original spacing
// to reproduce — only a canonical re-derivation of it.
func formatValue(v Value, pretty bool, indent int) string {
	f := &formatter{pretty: pretty}

	out := f.renderValue(v, indent)
	if pretty {
		return out + "\n"
	}

	return out
}

func (f *formatter) renderValue(v Value, indent int) string {
	switch v.Tag {
	case TagStr:
		return quoteString(v.Str)
	case TagList:
		return f.renderValueList(v.List, indent)
	case TagMap:
		return f.renderValueMap(v.Map, indent)
	default:
		return v.ToString()
	}
}

func (f *formatter) renderValueList(elems []Value, indent int) string {
	if len(elems) == 0 {
		return "[]"
	}

	rendered := make([]string, len(elems))
	for i, el := range elems {
		rendered[i] = f.renderValue(el, indent+1)
	}

	return f.joinCollection(rendered, indent)
}

func (f *formatter) renderValueMap(m *Map, indent int) string {
	keys := m.Keys()
	if len(keys) == 0 {
		return "[]"
	}

	rendered := make([]string, len(keys))

	for i, k := range keys {
		val, _ := m.Get(k)

		sep := ":"
		if f.pretty {
			sep = ": "
		}

		rendered[i] = quoteString(k) + sep + f.renderValue(val, indent+1)
	}

	return f.joinCollection(rendered, indent)
}

func (f *formatter) joinCollection(rendered []string, indent int) string {
	if !f.multiline(rendered) {
		s := ""
		for i, r := range rendered {
			if i > 0 {
				s += f.sep()
			}

			s += r
		}

		return "[" + s + "]"
	}

	var out string

	out += "[\n"

	for i, r := range rendered {
		out += f.indentStr(indent+1) + r

		if i < len(rendered)-1 {
			out += ","
		}

		out += "\n"
	}

	out += f.indentStr(indent) + "]"

	return out
}

// ParseReader parses an expression streamed from r, reading it entirely
// into memory first (RESL programs are short configuration text, not
// bulk data) through a read-ahead buffer so a slow or chunked source
// (a network connection, a piped file) doesn't stall the parser on each
// underlying Read — grounded on the teacher's lang/stream.go use of
// klauspost/readahead for the same reason.
func ParseReader(r io.Reader) (Expr, *ParseError) {
	if r == nil {
		return nil, newParseError(ErrParse, "", Span{}, ErrNilSource.Error())
	}

	ra := readahead.NewReader(r)
	defer ra.Close()

	buf, err := io.ReadAll(ra)
	if err != nil {
		return nil, newParseError(ErrParse, "", Span{}, "reading source: "+err.Error())
	}

	return ParseCached(string(buf))
}
