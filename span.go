package resl

import (
	"strconv"
	"strings"
)

// Span identifies a half-open byte range [Start, End) within a source
// string. Every token and every AST node carries one.
type Span struct {
	Start int
	End   int
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}

	end := s.End
	if other.End > end {
		end = other.End
	}

	return Span{Start: start, End: end}
}

// location is a 1-indexed line/column pair derived from a byte offset.
type location struct {
	Line   int
	Column int
}

// locate walks source from the start counting newlines, mirroring the
// byte-scan in original_source/resl/src/error.rs's ParseError::from.
func locate(source string, offset int) location {
	line, column := 1, 1

	if offset > len(source) {
		offset = len(source)
	}

	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}

	return location{Line: line, Column: column}
}

// lineContent returns the full line of source containing byte offset.
func lineContent(source string, offset int) string {
	if offset > len(source) {
		offset = len(source)
	}

	start := strings.LastIndexByte(source[:offset], '\n') + 1

	end := len(source)
	if idx := strings.IndexByte(source[offset:], '\n'); idx >= 0 {
		end = offset + idx
	}

	return source[start:end]
}

// snippet renders a one-line, caret-annotated view of source at offset,
// in the style of original_source/resl/src/error.rs's Display impl.
func snippet(source string, offset int) (loc location, rendered string) {
	loc = locate(source, offset)
	line := lineContent(source, offset)

	gutter := strconv.Itoa(loc.Line)
	pad := strings.Repeat(" ", len(gutter))

	var b strings.Builder

	b.WriteString(pad)
	b.WriteString(" |\n")
	b.WriteString(gutter)
	b.WriteString(" | ")
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(pad)
	b.WriteString(" | ")

	if loc.Column > 1 {
		b.WriteString(strings.Repeat(" ", loc.Column-1))
	}

	b.WriteByte('^')

	return loc, b.String()
}
