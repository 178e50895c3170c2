package resl

import "strconv"

// parser is a single-pass recursive-descent parser with Pratt-style
// precedence climbing for the binary operator chain, following spec.md
// §4.2's grammar exactly. It operates over the fully materialized token
// slice produced by tokenize, which lets the `>` for-each operator use
// fixed-width lookahead to disambiguate itself from the `>` comparison
// operator without true backtracking.
type parser struct {
	src  string
	toks []Token
	pos  int
}

// Parse lexes and parses src into a top-level expression AST, per spec.md
// §4.2's `program = expr EOF` rule. The sole failure channel is
// *ParseError (spec.md §7), wrapping either a lex or a parse failure.
func Parse(src string) (Expr, *ParseError) {
	toks, lexErr := tokenize(src)
	if lexErr != nil {
		return nil, lexErr
	}

	p := &parser{src: src, toks: toks}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(EOF, "end of input"); err != nil {
		return nil, err
	}

	return expr, nil
}

func (p *parser) current() Token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(offset int) Token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}

	return p.toks[i]
}

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}

	return t
}

func (p *parser) errorAt(tok Token, message string) *ParseError {
	return newParseError(ErrParse, p.src, tok.Span, message)
}

func (p *parser) expect(kind Kind, expected string) (Token, *ParseError) {
	if p.current().Kind != kind {
		return Token{}, p.errorAt(
			p.current(),
			"unexpected "+p.current().Kind.String()+", expected "+expected,
		).withExpected(expected)
	}

	return p.advance(), nil
}

// parseExpr is the `expr` production: expr = cond.
func (p *parser) parseExpr() (Expr, *ParseError) {
	return p.parseCond()
}

// parseCond implements `cond = "?" expr ":" expr "|" expr | orExpr`. The
// recursive call for the else-branch goes through parseExpr (not
// parseOr), making the ternary right-associative in its else chain.
func (p *parser) parseCond() (Expr, *ParseError) {
	if p.current().Kind != QMARK {
		return p.parseOr()
	}

	start := p.advance().Span

	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(COLON, "':'"); err != nil {
		return nil, err
	}

	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(PIPE, "'|'"); err != nil {
		return nil, err
	}

	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Cond{
		exprBase: exprBase{span: start.Join(els.Span())},
		Test:     test,
		Then:     then,
		Else:     els,
	}, nil
}

func (p *parser) parseOr() (Expr, *ParseError) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Kind == OROR {
		p.advance()

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = &Binary{
			exprBase: exprBase{span: left.Span().Join(right.Span())},
			Op:       OROR,
			Left:     left,
			Right:    right,
		}
	}

	return left, nil
}

func (p *parser) parseAnd() (Expr, *ParseError) {
	left, err := p.parseEq()
	if err != nil {
		return nil, err
	}

	for p.current().Kind == ANDAND {
		p.advance()

		right, err := p.parseEq()
		if err != nil {
			return nil, err
		}

		left = &Binary{
			exprBase: exprBase{span: left.Span().Join(right.Span())},
			Op:       ANDAND,
			Left:     left,
			Right:    right,
		}
	}

	return left, nil
}

func (p *parser) parseEq() (Expr, *ParseError) {
	left, err := p.parseRel()
	if err != nil {
		return nil, err
	}

	for p.current().Kind == EQ || p.current().Kind == NEQ {
		op := p.advance().Kind

		right, err := p.parseRel()
		if err != nil {
			return nil, err
		}

		left = &Binary{
			exprBase: exprBase{span: left.Span().Join(right.Span())},
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}

	return left, nil
}

func (p *parser) parseRel() (Expr, *ParseError) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}

	for {
		k := p.current().Kind
		if k != LT && k != LEQ && k != GT && k != GEQ {
			return left, nil
		}

		p.advance()

		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}

		left = &Binary{
			exprBase: exprBase{span: left.Span().Join(right.Span())},
			Op:       k,
			Left:     left,
			Right:    right,
		}
	}
}

func (p *parser) parseAdd() (Expr, *ParseError) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}

	for p.current().Kind == PLUS || p.current().Kind == MINUS {
		op := p.advance().Kind

		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}

		left = &Binary{
			exprBase: exprBase{span: left.Span().Join(right.Span())},
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}

	return left, nil
}

func (p *parser) parseMul() (Expr, *ParseError) {
	left, err := p.parseForEach()
	if err != nil {
		return nil, err
	}

	for {
		k := p.current().Kind
		if k != STAR && k != SLASH && k != PERCENT {
			return left, nil
		}

		p.advance()

		right, err := p.parseForEach()
		if err != nil {
			return nil, err
		}

		left = &Binary{
			exprBase: exprBase{span: left.Span().Join(right.Span())},
			Op:       k,
			Left:     left,
			Right:    right,
		}
	}
}

// parseForEach implements `forExpr = unary (">" "(" IDENT "," IDENT ")"
// ":" expr)?`. Because GT also denotes the relational operator parsed far
// above this level, the `> (` pattern is only consumed when fixed-width
// lookahead confirms the full `> ( IDENT , IDENT ) :` shape; otherwise GT
// is left untouched for an enclosing parseRel to pick up.
func (p *parser) parseForEach() (Expr, *ParseError) {
	src, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if !p.looksLikeForEach() {
		return src, nil
	}

	p.advance() // '>'
	p.advance() // '('

	a, err := p.expect(IDENT, "identifier")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(COMMA, "','"); err != nil {
		return nil, err
	}

	b, err := p.expect(IDENT, "identifier")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}

	if _, err := p.expect(COLON, "':'"); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ForEach{
		exprBase: exprBase{span: src.Span().Join(body.Span())},
		Source:   src,
		Params:   []string{a.Literal, b.Literal},
		Body:     body,
	}, nil
}

func (p *parser) looksLikeForEach() bool {
	return p.current().Kind == GT &&
		p.peekAt(1).Kind == LPAREN &&
		p.peekAt(2).Kind == IDENT &&
		p.peekAt(3).Kind == COMMA &&
		p.peekAt(4).Kind == IDENT &&
		p.peekAt(5).Kind == RPAREN &&
		p.peekAt(6).Kind == COLON
}

func (p *parser) parseUnary() (Expr, *ParseError) {
	k := p.current().Kind
	if k != MINUS && k != BANG {
		return p.parsePostfix()
	}

	tok := p.advance()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &Unary{
		exprBase: exprBase{span: tok.Span.Join(operand.Span())},
		Op:       k,
		Operand:  operand,
	}, nil
}

// parsePostfix implements the postfix chain of index/slice/call
// applications following a primary expression.
func (p *parser) parsePostfix() (Expr, *ParseError) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current().Kind {
		case LBRACKET:
			expr, err = p.parseIndexOrSlice(expr)
			if err != nil {
				return nil, err
			}
		case LPAREN:
			expr, err = p.parseCall(expr)
			if err != nil {
				return nil, err
			}
		default:
			return expr, nil
		}
	}
}

func (p *parser) parseIndexOrSlice(target Expr) (Expr, *ParseError) {
	open := p.advance() // '['

	if p.current().Kind == COLON {
		p.advance()

		hi, err := p.parseOptionalSliceBound()
		if err != nil {
			return nil, err
		}

		close, err := p.expect(RBRACKET, "']'")
		if err != nil {
			return nil, err
		}

		return &Slice{
			exprBase: exprBase{span: target.Span().Join(Span{Start: open.Span.Start, End: close.Span.End})},
			Target:   target,
			Lo:       nil,
			Hi:       hi,
		}, nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.current().Kind == COLON {
		p.advance()

		hi, err := p.parseOptionalSliceBound()
		if err != nil {
			return nil, err
		}

		close, err := p.expect(RBRACKET, "']'")
		if err != nil {
			return nil, err
		}

		return &Slice{
			exprBase: exprBase{span: target.Span().Join(Span{Start: open.Span.Start, End: close.Span.End})},
			Target:   target,
			Lo:       first,
			Hi:       hi,
		}, nil
	}

	close, err := p.expect(RBRACKET, "']'")
	if err != nil {
		return nil, err
	}

	return &Index{
		exprBase: exprBase{span: target.Span().Join(Span{Start: open.Span.Start, End: close.Span.End})},
		Target:   target,
		Key:      first,
	}, nil
}

func (p *parser) parseOptionalSliceBound() (Expr, *ParseError) {
	if p.current().Kind == RBRACKET {
		return nil, nil
	}

	return p.parseExpr()
}

func (p *parser) parseCall(callee Expr) (Expr, *ParseError) {
	p.advance() // '('

	var args []Expr

	if p.current().Kind != RPAREN {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if p.current().Kind != COMMA {
				break
			}

			p.advance()
		}
	}

	close, err := p.expect(RPAREN, "')'")
	if err != nil {
		return nil, err
	}

	return &Call{
		exprBase: exprBase{span: callee.Span().Join(close.Span)},
		Callee:   callee,
		Args:     args,
	}, nil
}

// parsePrimary implements the `primary` production.
func (p *parser) parsePrimary() (Expr, *ParseError) {
	tok := p.current()

	switch tok.Kind {
	case NULL:
		p.advance()

		return &LitNull{exprBase{span: tok.Span}}, nil
	case TRUE:
		p.advance()

		return &LitBool{exprBase{span: tok.Span}, true}, nil
	case FALSE:
		p.advance()

		return &LitBool{exprBase{span: tok.Span}, false}, nil
	case INT:
		p.advance()

		n, convErr := strconv.ParseInt(tok.Literal, 10, 64)
		if convErr != nil {
			return nil, p.errorAt(tok, "invalid integer literal "+strconv.Quote(tok.Literal))
		}

		return &LitInt{exprBase{span: tok.Span}, n}, nil
	case FLOAT:
		p.advance()

		f, convErr := strconv.ParseFloat(tok.Literal, 64)
		if convErr != nil {
			return nil, p.errorAt(tok, "invalid float literal "+strconv.Quote(tok.Literal))
		}

		return &LitFloat{exprBase{span: tok.Span}, f}, nil
	case STRING:
		p.advance()

		return &LitStr{exprBase{span: tok.Span}, tok.Literal}, nil
	case IDENT:
		p.advance()

		return &Ident{exprBase{span: tok.Span}, tok.Literal}, nil
	case LPAREN:
		p.advance()

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}

		return inner, nil
	case LBRACKET:
		return p.parseListOrMap()
	case PIPE:
		return p.parseLambda()
	case OROR:
		// The lexer has no notion of parser state, so it always greedily
		// merges adjacent '|' characters into a single OROR token (spec.md
		// §4.1's maximal-munch rule). OROR can never start a primary
		// expression any other way, so seeing it here unambiguously means
		// a zero-parameter lambda's two delimiters arrived pre-merged.
		return p.parseEmptyParamLambda()
	case LBRACE:
		return p.parseBlock()
	default:
		return nil, p.errorAt(tok, "unexpected "+tok.Kind.String())
	}
}

// parseListOrMap implements the `list`/`map` productions and their
// disambiguation rule: after the first element, a following COLON means
// the whole literal is a map.
func (p *parser) parseListOrMap() (Expr, *ParseError) {
	open := p.advance() // '['

	if p.current().Kind == RBRACKET {
		close := p.advance()

		return &ListLit{exprBase: exprBase{span: open.Span.Join(close.Span)}}, nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.current().Kind == COLON {
		p.advance()

		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		entries := []MapEntry{{Key: first, Value: val}}

		for p.current().Kind == COMMA {
			p.advance()

			k, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(COLON, "':'"); err != nil {
				return nil, err
			}

			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			entries = append(entries, MapEntry{Key: k, Value: v})
		}

		close, err := p.expect(RBRACKET, "']'")
		if err != nil {
			return nil, err
		}

		return &MapLit{
			exprBase: exprBase{span: open.Span.Join(close.Span)},
			Entries:  entries,
		}, nil
	}

	elems := []Expr{first}

	for p.current().Kind == COMMA {
		p.advance()

		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)
	}

	close, err := p.expect(RBRACKET, "']'")
	if err != nil {
		return nil, err
	}

	return &ListLit{
		exprBase: exprBase{span: open.Span.Join(close.Span)},
		Elems:    elems,
	}, nil
}

// parseEmptyParamLambda implements the zero-parameter lambda shorthand
// `||expr`, whose two '|' delimiters arrive pre-merged into a single
// OROR token by the lexer.
func (p *parser) parseEmptyParamLambda() (Expr, *ParseError) {
	open := p.advance() // '||'

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Lambda{
		exprBase: exprBase{span: open.Span.Join(body.Span())},
		Params:   nil,
		Body:     body,
	}, nil
}

// parseLambda implements `lambda = "|" (IDENT ("," IDENT)*)? "|" expr`.
func (p *parser) parseLambda() (Expr, *ParseError) {
	open := p.advance() // '|'

	var params []string

	if p.current().Kind == IDENT {
		tok, err := p.expect(IDENT, "identifier")
		if err != nil {
			return nil, err
		}

		params = append(params, tok.Literal)

		for p.current().Kind == COMMA {
			p.advance()

			tok, err := p.expect(IDENT, "identifier")
			if err != nil {
				return nil, err
			}

			params = append(params, tok.Literal)
		}
	}

	if _, err := p.expect(PIPE, "'|'"); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Lambda{
		exprBase: exprBase{span: open.Span.Join(body.Span())},
		Params:   params,
		Body:     body,
	}, nil
}

// parseBlock implements `block = "{" (IDENT "=" expr ";")+ expr "}"`: at
// least one binding followed by a tail expression.
func (p *parser) parseBlock() (Expr, *ParseError) {
	open := p.advance() // '{'

	var stmts []Expr

	for {
		// A binding always starts IDENT '=' — if that lookahead doesn't
		// hold, what remains must be the tail expression.
		if p.current().Kind != IDENT || p.peekAt(1).Kind != ASSIGN {
			break
		}

		name := p.advance()
		p.advance() // '='

		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(SEMI, "';'"); err != nil {
			return nil, err
		}

		stmts = append(stmts, &Bind{
			exprBase: exprBase{span: name.Span.Join(val.Span())},
			Name:     name.Literal,
			Value:    val,
		})
	}

	if len(stmts) == 0 {
		return nil, p.errorAt(p.current(), "empty block: expected at least one binding")
	}

	tail, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	close, err := p.expect(RBRACE, "'}'")
	if err != nil {
		return nil, err
	}

	return &Block{
		exprBase: exprBase{span: open.Span.Join(close.Span)},
		Stmts:    stmts,
		Tail:     tail,
	}, nil
}
