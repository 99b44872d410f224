package parser

import (
	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/token"
)

// parseExpr parses a single test. Kept as a distinct entry point from
// parseTest (even though they're currently identical) since call sites that
// genuinely mean "any expression" read more clearly than ones spelling out
// parseTest.
func (p *parser) parseExpr() ast.Expr { return p.parseTest() }

// parseExprNoWalrus is an alias kept for call sites (conditions,
// annotations, targets) for the same readability reason.
func (p *parser) parseExprNoWalrus() ast.Expr { return p.parseTest() }

// parseExprListAsExpr parses a comma-separated list of (possibly starred)
// tests, collapsing to a bare expression when there is exactly one, or a
// Tuple otherwise (as in "return a, b" or "x, y = ...").
func (p *parser) parseExprListAsExpr() ast.Expr {
	first := p.parseStarOrTest()
	if p.tok != token.COMMA {
		return first
	}
	elts := []ast.Expr{first}
	start, end := first.Span()
	for p.accept(token.COMMA) {
		if p.atExprListEnd() {
			break
		}
		e := p.parseStarOrTest()
		elts = append(elts, e)
		_, end = e.Span()
	}
	tup := &ast.Tuple{Elts: elts, Ctx: ast.Load, Start: start, End: end}
	tup.SetID(p.nextID())
	return tup
}

func (p *parser) atExprListEnd() bool {
	switch p.tok {
	case token.NEWLINE, token.EOF, token.SEMI, token.COLON, token.ASSIGN,
		token.RPAREN, token.RBRACK, token.RBRACE, token.IN:
		return true
	default:
		return false
	}
}

func (p *parser) parseStarOrTest() ast.Expr {
	if p.tok == token.STAR {
		star := p.val.Pos
		p.advance()
		val := p.parseTest()
		n := &ast.Starred{Value: val, Ctx: ast.Load, Star: star}
		n.SetID(p.nextID())
		return n
	}
	return p.parseTest()
}

// parseTest parses lambda, the conditional expression, a walrus assignment,
// or falls through to or_test. Real Python restricts ":=" to a handful of
// syntactic positions (parenthesized expressions, comprehension clauses,
// ...); this parser accepts it wherever a test appears, which is a
// deliberate permissive simplification over the full grammar.
func (p *parser) parseTest() ast.Expr {
	if p.tok == token.LAMBDA {
		return p.parseLambda()
	}
	e := p.parseOrTest()
	if p.tok == token.IF {
		p.advance()
		cond := p.parseOrTest()
		p.expect(token.ELSE)
		orelse := p.parseTest()
		n := &ast.IfExp{Test: cond, Body: e, Orelse: orelse}
		n.SetID(p.nextID())
		return n
	}
	if p.tok == token.WALRUS {
		if name, ok := e.(*ast.Name); ok {
			p.advance()
			val := p.parseTest()
			n := &ast.NamedExpr{Target: name, Value: val}
			n.SetID(p.nextID())
			return n
		}
	}
	return e
}

func (p *parser) parseLambda() ast.Expr {
	start := p.val.Pos
	p.expect(token.LAMBDA)
	args := p.parseArguments(token.COLON)
	p.expect(token.COLON)
	body := p.parseTest()
	n := &ast.Lambda{Args: args, Body: body, Start: start}
	n.SetID(p.nextID())
	return n
}

func (p *parser) parseOrTest() ast.Expr {
	e := p.parseAndTest()
	if p.tok != token.OR {
		return e
	}
	values := []ast.Expr{e}
	for p.accept(token.OR) {
		values = append(values, p.parseAndTest())
	}
	n := &ast.BoolOp{Op: token.OR, Values: values}
	n.SetID(p.nextID())
	return n
}

func (p *parser) parseAndTest() ast.Expr {
	e := p.parseNotTest()
	if p.tok != token.AND {
		return e
	}
	values := []ast.Expr{e}
	for p.accept(token.AND) {
		values = append(values, p.parseNotTest())
	}
	n := &ast.BoolOp{Op: token.AND, Values: values}
	n.SetID(p.nextID())
	return n
}

func (p *parser) parseNotTest() ast.Expr {
	if p.tok == token.NOT {
		pos := p.val.Pos
		p.advance()
		operand := p.parseNotTest()
		n := &ast.UnaryOp{Op: token.NOT, OpPos: pos, Operand: operand}
		n.SetID(p.nextID())
		return n
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() ast.Expr {
	e := p.parseBitOr()
	var ops []token.Token
	var rest []ast.Expr
	for {
		op, ok := p.compOp()
		if !ok {
			break
		}
		rest = append(rest, p.parseBitOr())
		ops = append(ops, op)
	}
	if len(ops) == 0 {
		return e
	}
	n := &ast.Compare{Left: e, Ops: ops, Comparators: rest}
	n.SetID(p.nextID())
	return n
}

// compOp consumes a comparison operator (including the two-keyword forms
// "not in" and "is not") and reports which it was, using IN/IS as markers
// and NOT_IN/IS_NOT encoded via the IN/IS token itself with a following NOT
// already consumed; callers only need the leading token to distinguish the
// six comparison kinds from a close paren or similar, so IN and IS both
// collapse "not in"/"is not" to plain IN/IS for the purposes of this AST.
func (p *parser) compOp() (token.Token, bool) {
	switch p.tok {
	case token.LT, token.GT, token.LE, token.GE, token.EQ, token.NE:
		op := p.tok
		p.advance()
		return op, true
	case token.IN:
		p.advance()
		return token.IN, true
	case token.IS:
		p.advance()
		p.accept(token.NOT)
		return token.IS, true
	case token.NOT:
		if p.peek() == token.IN {
			p.advance()
			p.advance()
			return token.IN, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func (p *parser) parseBitOr() ast.Expr {
	e := p.parseBitXor()
	for p.tok == token.PIPE {
		p.advance()
		right := p.parseBitXor()
		n := &ast.BinOp{Left: e, Op: token.PIPE, Right: right}
		n.SetID(p.nextID())
		e = n
	}
	return e
}

func (p *parser) parseBitXor() ast.Expr {
	e := p.parseBitAnd()
	for p.tok == token.CARET {
		p.advance()
		right := p.parseBitAnd()
		n := &ast.BinOp{Left: e, Op: token.CARET, Right: right}
		n.SetID(p.nextID())
		e = n
	}
	return e
}

func (p *parser) parseBitAnd() ast.Expr {
	e := p.parseShift()
	for p.tok == token.AMP {
		p.advance()
		right := p.parseShift()
		n := &ast.BinOp{Left: e, Op: token.AMP, Right: right}
		n.SetID(p.nextID())
		e = n
	}
	return e
}

func (p *parser) parseShift() ast.Expr {
	e := p.parseArith()
	for p.tok == token.LTLT || p.tok == token.GTGT {
		op := p.tok
		p.advance()
		right := p.parseArith()
		n := &ast.BinOp{Left: e, Op: op, Right: right}
		n.SetID(p.nextID())
		e = n
	}
	return e
}

func (p *parser) parseArith() ast.Expr {
	e := p.parseTerm()
	for p.tok == token.PLUS || p.tok == token.MINUS {
		op := p.tok
		p.advance()
		right := p.parseTerm()
		n := &ast.BinOp{Left: e, Op: op, Right: right}
		n.SetID(p.nextID())
		e = n
	}
	return e
}

func (p *parser) parseTerm() ast.Expr {
	e := p.parseFactor()
	for p.tok == token.STAR || p.tok == token.SLASH || p.tok == token.DSLASH ||
		p.tok == token.PERCENT || p.tok == token.AT {
		op := p.tok
		p.advance()
		right := p.parseFactor()
		n := &ast.BinOp{Left: e, Op: op, Right: right}
		n.SetID(p.nextID())
		e = n
	}
	return e
}

func (p *parser) parseFactor() ast.Expr {
	switch p.tok {
	case token.PLUS, token.MINUS, token.TILDE:
		op := p.tok
		pos := p.val.Pos
		p.advance()
		operand := p.parseFactor()
		n := &ast.UnaryOp{Op: op, OpPos: pos, Operand: operand}
		n.SetID(p.nextID())
		return n
	}
	return p.parsePower()
}

func (p *parser) parsePower() ast.Expr {
	e := p.parseAwait()
	if p.tok == token.DOUBLESTAR {
		p.advance()
		right := p.parseFactor()
		n := &ast.BinOp{Left: e, Op: token.DOUBLESTAR, Right: right}
		n.SetID(p.nextID())
		return n
	}
	return e
}

func (p *parser) parseAwait() ast.Expr {
	if p.tok == token.AWAIT {
		pos := p.val.Pos
		p.advance()
		val := p.parsePostfix()
		n := &ast.Await{Value: val, Start: pos}
		n.SetID(p.nextID())
		return n
	}
	return p.parsePostfix()
}

// parsePostfix parses an atom followed by any number of trailers: call,
// subscript, attribute.
func (p *parser) parsePostfix() ast.Expr {
	e := p.parseAtom()
	for {
		switch p.tok {
		case token.LPAREN:
			e = p.parseCallTrailer(e)
		case token.LBRACK:
			e = p.parseSubscriptTrailer(e)
		case token.DOT:
			e = p.parseAttributeTrailer(e)
		default:
			return e
		}
	}
}

func (p *parser) parseCallTrailer(fn ast.Expr) ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	var keywords []*ast.Keyword
	for p.tok != token.RPAREN && p.tok != token.EOF {
		switch {
		case p.tok == token.DOUBLESTAR:
			p.advance()
			val := p.parseTest()
			kw := &ast.Keyword{Value: val}
			kw.SetID(p.nextID())
			keywords = append(keywords, kw)
		case p.tok == token.STAR:
			star := p.val.Pos
			p.advance()
			val := p.parseTest()
			sn := &ast.Starred{Value: val, Ctx: ast.Load, Star: star}
			sn.SetID(p.nextID())
			args = append(args, sn)
		case p.tok == token.IDENT && p.peekIsKeywordArg():
			keywords = append(keywords, p.parseKeywordArg())
		default:
			arg := p.parseTest()
			if p.tok == token.FOR && len(args) == 0 && len(keywords) == 0 {
				gen := p.parseComprehensionTail(arg, p.val.Pos)
				args = append(args, gen)
				continue
			}
			args = append(args, arg)
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	end := p.val.Pos
	p.expect(token.RPAREN)
	n := &ast.Call{Func: fn, Args: args, Keywords: keywords, End: end}
	n.SetID(p.nextID())
	return n
}

func (p *parser) parseSubscriptTrailer(val ast.Expr) ast.Expr {
	p.expect(token.LBRACK)
	index := p.parseSubscriptIndex()
	end := p.val.Pos
	p.expect(token.RBRACK)
	n := &ast.Subscript{Value: val, Index: index, Ctx: ast.Load, End: end}
	n.SetID(p.nextID())
	return n
}

// parseSubscriptIndex parses the contents of "[...]", handling slices
// ("a:b:c"), tuples of indices/slices ("a, b:c"), and plain expressions.
func (p *parser) parseSubscriptIndex() ast.Expr {
	first := p.parseSliceOrTest()
	if p.tok != token.COMMA {
		return first
	}
	elts := []ast.Expr{first}
	start, end := first.Span()
	for p.accept(token.COMMA) {
		if p.tok == token.RBRACK {
			break
		}
		e := p.parseSliceOrTest()
		elts = append(elts, e)
		_, end = e.Span()
	}
	tup := &ast.Tuple{Elts: elts, Ctx: ast.Load, Start: start, End: end}
	tup.SetID(p.nextID())
	return tup
}

func (p *parser) parseSliceOrTest() ast.Expr {
	start := p.val.Pos
	var lower ast.Expr
	if p.tok != token.COLON {
		lower = p.parseTest()
		if p.tok != token.COLON {
			return lower
		}
	}
	p.expect(token.COLON)
	var upper, step ast.Expr
	if p.tok != token.COLON && p.tok != token.RBRACK && p.tok != token.COMMA {
		upper = p.parseTest()
	}
	if p.accept(token.COLON) {
		if p.tok != token.RBRACK && p.tok != token.COMMA {
			step = p.parseTest()
		}
	}
	end := p.val.Pos
	n := &ast.Slice{Lower: lower, Upper: upper, Step: step, Start: start, End: end}
	n.SetID(p.nextID())
	return n
}

func (p *parser) parseAttributeTrailer(val ast.Expr) ast.Expr {
	p.expect(token.DOT)
	attrPos := p.val.Pos
	attr := p.val.Raw
	p.expect(token.IDENT)
	n := &ast.Attribute{Value: val, Attr: attr, AttrPos: attrPos, Ctx: ast.Load}
	n.SetID(p.nextID())
	return n
}

func (p *parser) parseAtom() ast.Expr {
	start := p.val.Pos
	switch p.tok {
	case token.IDENT:
		name := p.val.Raw
		p.advance()
		n := &ast.Name{Id: name, Ctx: ast.Load, Start: start}
		n.SetID(p.nextID())
		return n
	case token.INT, token.FLOAT:
		raw := p.val.Raw
		p.advance()
		n := &ast.Constant{Raw: raw, Start: start, End: p.priorEnd(start, raw)}
		n.SetID(p.nextID())
		return n
	case token.STRING:
		raw := p.val.Raw
		p.advance()
		for p.tok == token.STRING {
			raw += p.val.Raw
			p.advance()
		}
		n := &ast.Constant{Raw: raw, Start: start, End: start + token.Pos(len(raw))}
		n.SetID(p.nextID())
		return n
	case token.TRUE, token.FALSE, token.NONE:
		raw := p.tok.String()
		p.advance()
		n := &ast.Constant{Raw: raw, Start: start, End: start + token.Pos(len(raw))}
		n.SetID(p.nextID())
		return n
	case token.YIELD:
		return p.parseYield()
	case token.LPAREN:
		return p.parseParenAtom()
	case token.LBRACK:
		return p.parseListAtom()
	case token.LBRACE:
		return p.parseBraceAtom()
	default:
		p.errorf(start, "unexpected %s", p.tok)
		p.advance()
		n := &ast.Constant{Raw: "", Start: start, End: start}
		n.SetID(p.nextID())
		return n
	}
}

func (p *parser) priorEnd(start token.Pos, raw string) token.Pos {
	return start + token.Pos(len(raw))
}

func (p *parser) parseYield() ast.Expr {
	start := p.val.Pos
	p.expect(token.YIELD)
	if p.accept(token.FROM) {
		val := p.parseTest()
		n := &ast.YieldFrom{Value: val, Start: start}
		n.SetID(p.nextID())
		return n
	}
	var val ast.Expr
	end := start + token.Pos(len("yield"))
	if !p.atExprListEnd() && p.tok != token.RPAREN {
		val = p.parseExprListAsExpr()
		_, end = val.Span()
	}
	n := &ast.Yield{Value: val, Start: start, End: end}
	n.SetID(p.nextID())
	return n
}

// parseParenAtom handles "()", "(expr)", "(expr,)"/"(e1, e2, ...)" tuples,
// and generator expressions "(expr for ...)".
func (p *parser) parseParenAtom() ast.Expr {
	start := p.val.Pos
	p.expect(token.LPAREN)
	if p.accept(token.RPAREN) {
		n := &ast.Tuple{Ctx: ast.Load, Start: start, End: p.val.Pos}
		n.SetID(p.nextID())
		return n
	}
	first := p.parseStarOrTest()
	if p.tok == token.FOR || (p.tok == token.ASYNC && p.peek() == token.FOR) {
		forPos := p.val.Pos
		gen := p.parseComprehensionTail(first, forPos)
		p.expect(token.RPAREN)
		return gen
	}
	if p.tok != token.COMMA {
		p.expect(token.RPAREN)
		return first
	}
	elts := []ast.Expr{first}
	for p.accept(token.COMMA) {
		if p.tok == token.RPAREN {
			break
		}
		elts = append(elts, p.parseStarOrTest())
	}
	end := p.val.Pos
	p.expect(token.RPAREN)
	n := &ast.Tuple{Elts: elts, Ctx: ast.Load, Start: start, End: end}
	n.SetID(p.nextID())
	return n
}

// parseListAtom handles "[]", "[e1, e2, ...]" and "[expr for ...]".
func (p *parser) parseListAtom() ast.Expr {
	start := p.val.Pos
	p.expect(token.LBRACK)
	if p.accept(token.RBRACK) {
		n := &ast.List{Ctx: ast.Load, Start: start, End: p.val.Pos}
		n.SetID(p.nextID())
		return n
	}
	first := p.parseStarOrTest()
	if p.tok == token.FOR || (p.tok == token.ASYNC && p.peek() == token.FOR) {
		gens := p.parseComprehensionClauses()
		end := p.val.Pos
		p.expect(token.RBRACK)
		n := &ast.ListComp{Elt: first, Generators: gens, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	}
	elts := []ast.Expr{first}
	for p.accept(token.COMMA) {
		if p.tok == token.RBRACK {
			break
		}
		elts = append(elts, p.parseStarOrTest())
	}
	end := p.val.Pos
	p.expect(token.RBRACK)
	n := &ast.List{Elts: elts, Ctx: ast.Load, Start: start, End: end}
	n.SetID(p.nextID())
	return n
}

// parseBraceAtom handles "{}", set/dict displays, and set/dict
// comprehensions.
func (p *parser) parseBraceAtom() ast.Expr {
	start := p.val.Pos
	p.expect(token.LBRACE)
	if p.accept(token.RBRACE) {
		n := &ast.Dict{Start: start, End: p.val.Pos}
		n.SetID(p.nextID())
		return n
	}

	if p.accept(token.DOUBLESTAR) {
		val := p.parseOrTest()
		keys := []ast.Expr{nil}
		values := []ast.Expr{val}
		for p.accept(token.COMMA) {
			if p.tok == token.RBRACE {
				break
			}
			k, v := p.parseDictEntry()
			keys = append(keys, k)
			values = append(values, v)
		}
		end := p.val.Pos
		p.expect(token.RBRACE)
		n := &ast.Dict{Keys: keys, Values: values, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	}

	firstKey := p.parseStarOrTest()
	if p.tok == token.COLON {
		p.advance()
		firstVal := p.parseTest()
		if p.tok == token.FOR || (p.tok == token.ASYNC && p.peek() == token.FOR) {
			gens := p.parseComprehensionClauses()
			end := p.val.Pos
			p.expect(token.RBRACE)
			n := &ast.DictComp{Key: firstKey, Value: firstVal, Generators: gens, Start: start, End: end}
			n.SetID(p.nextID())
			return n
		}
		keys := []ast.Expr{firstKey}
		values := []ast.Expr{firstVal}
		for p.accept(token.COMMA) {
			if p.tok == token.RBRACE {
				break
			}
			k, v := p.parseDictEntry()
			keys = append(keys, k)
			values = append(values, v)
		}
		end := p.val.Pos
		p.expect(token.RBRACE)
		n := &ast.Dict{Keys: keys, Values: values, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	}

	if p.tok == token.FOR || (p.tok == token.ASYNC && p.peek() == token.FOR) {
		gens := p.parseComprehensionClauses()
		end := p.val.Pos
		p.expect(token.RBRACE)
		n := &ast.SetComp{Elt: firstKey, Generators: gens, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	}

	elts := []ast.Expr{firstKey}
	for p.accept(token.COMMA) {
		if p.tok == token.RBRACE {
			break
		}
		elts = append(elts, p.parseStarOrTest())
	}
	end := p.val.Pos
	p.expect(token.RBRACE)
	n := &ast.Set{Elts: elts, Start: start, End: end}
	n.SetID(p.nextID())
	return n
}

func (p *parser) parseDictEntry() (ast.Expr, ast.Expr) {
	if p.accept(token.DOUBLESTAR) {
		return nil, p.parseOrTest()
	}
	k := p.parseTest()
	p.expect(token.COLON)
	v := p.parseTest()
	return k, v
}

// parseComprehensionTail parses the "for ... in ... [if ...] ..." clauses
// following an already-parsed element expression, wrapping as a
// GeneratorExp (used for parenthesized and call-argument generator
// expressions).
func (p *parser) parseComprehensionTail(elt ast.Expr, start token.Pos) ast.Expr {
	gens := p.parseComprehensionClauses()
	end := p.val.Pos
	n := &ast.GeneratorExp{Elt: elt, Generators: gens, Start: start, End: end}
	n.SetID(p.nextID())
	return n
}

func (p *parser) parseComprehensionClauses() []*ast.Comprehension {
	var gens []*ast.Comprehension
	for p.tok == token.FOR || p.tok == token.ASYNC {
		async := p.accept(token.ASYNC)
		p.expect(token.FOR)
		target := p.parseTargetList()
		p.expect(token.IN)
		iter := p.parseOrTest()
		var ifs []ast.Expr
		for p.tok == token.IF {
			p.advance()
			ifs = append(ifs, p.parseOrTest())
		}
		c := &ast.Comprehension{Target: target, Iter: iter, Ifs: ifs, Async: async}
		c.SetID(p.nextID())
		gens = append(gens, c)
	}
	return gens
}
