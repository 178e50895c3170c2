package resl

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// lexer turns RESL source text into a token stream. It is hand-written
// recursive-descent-friendly: single-pass, no backtracking, producing a
// *ParseError (kind Lex) on the first malformed construct — see spec.md
// §4.1 and §7.
type lexer struct {
	src string
	pos int // byte offset of the next unread byte
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

// tokenize lexes the entire source, returning the token stream including a
// trailing EOF token, or the first lex error encountered.
func tokenize(src string) ([]Token, *ParseError) {
	l := newLexer(src)

	var toks []Token

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

func (l *lexer) errorAt(offset int, kind ErrorKind, message string) *ParseError {
	return newParseError(kind, l.src, Span{Start: offset, End: offset + 1}, message)
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}

	return l.src[l.pos]
}

func (l *lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}

	return l.src[l.pos+off]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

// next scans and returns the next token.
func (l *lexer) next() (Token, *ParseError) {
	for isSpace(l.peekByte()) {
		l.pos++
	}

	start := l.pos

	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Span: Span{Start: start, End: start}}, nil
	}

	b := l.peekByte()

	switch {
	case isIdentStart(b):
		return l.lexIdent(start), nil
	case isDigit(b):
		return l.lexNumber(start)
	case b == '"':
		return l.lexString(start)
	}

	// Multi-character operators must be checked before their single-char
	// prefixes.
	two := l.peekByteAt(0)
	next := l.peekByteAt(1)

	if kind, ok := twoCharOps[[2]byte{two, next}]; ok {
		l.pos += 2

		return Token{Kind: kind, Span: Span{Start: start, End: l.pos}}, nil
	}

	if kind, ok := oneCharOps[b]; ok {
		l.pos++

		return Token{Kind: kind, Span: Span{Start: start, End: l.pos}}, nil
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size

	return Token{}, l.errorAt(start, ErrLex, "unexpected character "+strconv.QuoteRune(r))
}

var twoCharOps = map[[2]byte]Kind{
	{'=', '='}: EQ,
	{'!', '='}: NEQ,
	{'<', '='}: LEQ,
	{'>', '='}: GEQ,
	{'&', '&'}: ANDAND,
	{'|', '|'}: OROR,
}

var oneCharOps = map[byte]Kind{
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	'(': LPAREN,
	')': RPAREN,
	',': COMMA,
	':': COLON,
	';': SEMI,
	'|': PIPE,
	'?': QMARK,
	'>': GT,
	'<': LT,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'%': PERCENT,
	'!': BANG,
	'=': ASSIGN,
}

func (l *lexer) lexIdent(start int) Token {
	for isIdentCont(l.peekByte()) {
		l.pos++
	}

	text := l.src[start:l.pos]
	span := Span{Start: start, End: l.pos}

	switch text {
	case "true":
		return Token{Kind: TRUE, Span: span, Literal: text}
	case "false":
		return Token{Kind: FALSE, Span: span, Literal: text}
	case "null":
		return Token{Kind: NULL, Span: span, Literal: text}
	default:
		return Token{Kind: IDENT, Span: span, Literal: text}
	}
}

func (l *lexer) lexNumber(start int) (Token, *ParseError) {
	for isDigit(l.peekByte()) {
		l.pos++
	}

	isFloat := false

	if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		isFloat = true
		l.pos++ // consume '.'

		for isDigit(l.peekByte()) {
			l.pos++
		}
	}

	text := l.src[start:l.pos]
	span := Span{Start: start, End: l.pos}

	if isFloat {
		return Token{Kind: FLOAT, Span: span, Literal: text}, nil
	}

	return Token{Kind: INT, Span: span, Literal: text}, nil
}

func (l *lexer) lexString(start int) (Token, *ParseError) {
	l.pos++ // consume opening quote

	var b strings.Builder

	for {
		if l.pos >= len(l.src) {
			return Token{}, l.errorAt(start, ErrLex, "unterminated string literal")
		}

		c := l.src[l.pos]

		switch c {
		case '"':
			l.pos++

			return Token{
				Kind:    STRING,
				Span:    Span{Start: start, End: l.pos},
				Literal: b.String(),
			}, nil
		case '\\':
			escStart := l.pos
			l.pos++

			if l.pos >= len(l.src) {
				return Token{}, l.errorAt(start, ErrLex, "unterminated string literal")
			}

			switch l.src[l.pos] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				r, _ := utf8.DecodeRuneInString(l.src[l.pos:])

				return Token{}, l.errorAt(
					escStart, ErrLex,
					"unknown escape sequence "+strconv.QuoteRune(r),
				)
			}

			l.pos++
		default:
			_, size := utf8.DecodeRuneInString(l.src[l.pos:])
			b.WriteString(l.src[l.pos : l.pos+size])
			l.pos += size
		}
	}
}
