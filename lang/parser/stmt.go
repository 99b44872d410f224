package parser

import (
	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/token"
)

// parseStmt parses one logical statement line, which may expand to several
// ast.Stmt values when it is a simple-statement line with semicolons.
func (p *parser) parseStmt() []ast.Stmt {
	switch p.tok {
	case token.DEF:
		return []ast.Stmt{p.parseFunctionDef(false, nil)}
	case token.ASYNC:
		return []ast.Stmt{p.parseAsync(nil)}
	case token.CLASS:
		return []ast.Stmt{p.parseClassDef(nil)}
	case token.AT:
		return []ast.Stmt{p.parseDecorated()}
	case token.IF:
		return []ast.Stmt{p.parseIf()}
	case token.WHILE:
		return []ast.Stmt{p.parseWhile()}
	case token.FOR:
		return []ast.Stmt{p.parseFor(false)}
	case token.TRY:
		return []ast.Stmt{p.parseTry()}
	case token.WITH:
		return []ast.Stmt{p.parseWith(false)}
	default:
		return p.parseSimpleStmtLine()
	}
}

// parseBlock parses a compound statement's suite: either an indented block
// of statements, or (for single-line suites like "if x: y = 1") a run of
// simple statements on the same line.
func (p *parser) parseBlock() *ast.Block {
	colonPos := p.expect(token.COLON)
	blk := &ast.Block{Start: colonPos}
	blk.SetID(p.nextID())

	if p.accept(token.NEWLINE) {
		p.expect(token.INDENT)
		for p.tok != token.DEDENT && p.tok != token.EOF {
			if p.accept(token.NEWLINE) {
				continue
			}
			blk.Stmts = append(blk.Stmts, p.parseStmt()...)
		}
		blk.End = p.val.Pos
		p.expect(token.DEDENT)
		return blk
	}

	blk.Stmts = p.parseSimpleStmtLine()
	if len(blk.Stmts) > 0 {
		_, blk.End = blk.Stmts[len(blk.Stmts)-1].Span()
	} else {
		blk.End = blk.Start
	}
	return blk
}

func (p *parser) parseDecorated() ast.Stmt {
	var decorators []ast.Expr
	for p.tok == token.AT {
		p.advance()
		decorators = append(decorators, p.parseExpr())
		p.accept(token.NEWLINE)
	}
	switch p.tok {
	case token.DEF:
		return p.parseFunctionDef(false, decorators)
	case token.ASYNC:
		return p.parseAsync(decorators)
	case token.CLASS:
		return p.parseClassDef(decorators)
	default:
		p.errorf(p.val.Pos, "expected function or class definition after decorator")
		p.syncToNewline()
		return &ast.Pass{}
	}
}

func (p *parser) parseAsync(decorators []ast.Expr) ast.Stmt {
	p.expect(token.ASYNC)
	switch p.tok {
	case token.DEF:
		return p.parseFunctionDef(true, decorators)
	case token.FOR:
		return p.parseFor(true)
	case token.WITH:
		return p.parseWith(true)
	default:
		p.errorf(p.val.Pos, "expected def, for or with after async")
		p.syncToNewline()
		return &ast.Pass{}
	}
}

func (p *parser) parseFunctionDef(async bool, decorators []ast.Expr) *ast.FunctionDef {
	start := p.val.Pos
	p.expect(token.DEF)
	namePos := p.val.Pos
	name := p.val.Raw
	p.expect(token.IDENT)

	p.expect(token.LPAREN)
	args := p.parseArguments(token.RPAREN)
	p.expect(token.RPAREN)

	var returns ast.Expr
	if p.accept(token.ARROW) {
		returns = p.parseExpr()
	}

	body := p.parseBlock()
	fn := &ast.FunctionDef{
		Async:      async,
		Name:       name,
		NamePos:    namePos,
		Args:       args,
		Returns:    returns,
		Decorators: decorators,
		Body:       body,
		Start:      start,
		End:        body.End,
	}
	fn.SetID(p.nextID())
	return fn
}

// parseArguments parses a parameter list up to (but not consuming) end.
func (p *parser) parseArguments(end token.Token) *ast.Arguments {
	args := &ast.Arguments{}
	args.SetID(p.nextID())

	seenStar := false
	for p.tok != end && p.tok != token.EOF {
		if p.accept(token.DOUBLESTAR) {
			args.Kwarg = p.parseArg()
			break
		}
		if p.accept(token.STAR) {
			seenStar = true
			if p.tok == token.IDENT {
				args.Vararg = p.parseArg()
			}
			if !p.accept(token.COMMA) {
				break
			}
			continue
		}
		if p.tok == token.SLASH {
			// positional-only marker "/": everything seen so far was
			// positional-only.
			p.advance()
			args.PosOnlyArgs = args.Args
			args.Args = nil
			p.accept(token.COMMA)
			continue
		}
		a := p.parseArg()
		if seenStar {
			args.KwOnlyArgs = append(args.KwOnlyArgs, a)
		} else {
			args.Args = append(args.Args, a)
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	return args
}

func (p *parser) parseArg() *ast.Arg {
	namePos := p.val.Pos
	name := p.val.Raw
	p.expect(token.IDENT)
	a := &ast.Arg{Name: name, NamePos: namePos}
	a.SetID(p.nextID())
	if p.accept(token.COLON) {
		a.Annotation = p.parseExprNoWalrus()
	}
	if p.accept(token.ASSIGN) {
		a.Default = p.parseExprNoWalrus()
	}
	return a
}

func (p *parser) parseClassDef(decorators []ast.Expr) *ast.ClassDef {
	start := p.val.Pos
	p.expect(token.CLASS)
	namePos := p.val.Pos
	name := p.val.Raw
	p.expect(token.IDENT)

	var bases []ast.Expr
	var keywords []*ast.Keyword
	if p.accept(token.LPAREN) {
		for p.tok != token.RPAREN && p.tok != token.EOF {
			if p.tok == token.IDENT && p.peekIsKeywordArg() {
				keywords = append(keywords, p.parseKeywordArg())
			} else {
				bases = append(bases, p.parseExpr())
			}
			if !p.accept(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}

	body := p.parseBlock()
	cd := &ast.ClassDef{
		Name:       name,
		NamePos:    namePos,
		Bases:      bases,
		Keywords:   keywords,
		Decorators: decorators,
		Body:       body,
		Start:      start,
		End:        body.End,
	}
	cd.SetID(p.nextID())
	return cd
}

func (p *parser) parseIf() *ast.If {
	start := p.val.Pos
	p.expect(token.IF)
	cond := p.parseExprNoWalrus()
	body := p.parseBlock()
	n := &ast.If{Cond: cond, Body: body, Start: start, End: body.End}
	n.SetID(p.nextID())

	switch p.tok {
	case token.ELIF:
		elifPos := p.val.Pos
		inner := p.parseIfElif()
		elseBlk := &ast.Block{Start: elifPos, End: func() token.Pos { _, e := inner.Span(); return e }()}
		elseBlk.SetID(p.nextID())
		elseBlk.Stmts = []ast.Stmt{inner}
		n.Else = elseBlk
		n.End = elseBlk.End
	case token.ELSE:
		p.advance()
		elseBody := p.parseBlock()
		n.Else = elseBody
		n.End = elseBody.End
	}
	return n
}

// parseIfElif parses an "elif ...:" clause as an *ast.If, used to model the
// elif chain as nested single-statement else-blocks.
func (p *parser) parseIfElif() *ast.If {
	start := p.val.Pos
	p.expect(token.ELIF)
	cond := p.parseExprNoWalrus()
	body := p.parseBlock()
	n := &ast.If{Cond: cond, Body: body, Start: start, End: body.End}
	n.SetID(p.nextID())

	switch p.tok {
	case token.ELIF:
		elifPos := p.val.Pos
		inner := p.parseIfElif()
		elseBlk := &ast.Block{Start: elifPos}
		elseBlk.SetID(p.nextID())
		elseBlk.Stmts = []ast.Stmt{inner}
		_, elseBlk.End = inner.Span()
		n.Else = elseBlk
		n.End = elseBlk.End
	case token.ELSE:
		p.advance()
		elseBody := p.parseBlock()
		n.Else = elseBody
		n.End = elseBody.End
	}
	return n
}

func (p *parser) parseWhile() *ast.While {
	start := p.val.Pos
	p.expect(token.WHILE)
	cond := p.parseExprNoWalrus()
	body := p.parseBlock()
	n := &ast.While{Cond: cond, Body: body, Start: start, End: body.End}
	n.SetID(p.nextID())
	if p.accept(token.ELSE) {
		n.Else = p.parseBlock()
		n.End = n.Else.End
	}
	return n
}

func (p *parser) parseFor(async bool) *ast.For {
	start := p.val.Pos
	p.expect(token.FOR)
	target := p.parseTargetList()
	p.expect(token.IN)
	iter := p.parseExprListAsExpr()
	body := p.parseBlock()
	n := &ast.For{Async: async, Target: target, Iter: iter, Body: body, Start: start, End: body.End}
	n.SetID(p.nextID())
	if p.accept(token.ELSE) {
		n.Else = p.parseBlock()
		n.End = n.Else.End
	}
	return n
}

func (p *parser) parseWith(async bool) *ast.With {
	start := p.val.Pos
	p.expect(token.WITH)
	var items []*ast.WithItem
	parenthesized := p.accept(token.LPAREN)
	for {
		it := &ast.WithItem{ContextExpr: p.parseExprNoWalrus()}
		it.SetID(p.nextID())
		if p.accept(token.AS) {
			it.OptionalVars = p.parseTarget()
		}
		items = append(items, it)
		if !p.accept(token.COMMA) {
			break
		}
		if parenthesized && p.tok == token.RPAREN {
			break
		}
	}
	if parenthesized {
		p.expect(token.RPAREN)
	}
	body := p.parseBlock()
	n := &ast.With{Async: async, Items: items, Body: body, Start: start, End: body.End}
	n.SetID(p.nextID())
	return n
}

func (p *parser) parseTry() *ast.Try {
	start := p.val.Pos
	p.expect(token.TRY)
	body := p.parseBlock()
	n := &ast.Try{Body: body, Start: start, End: body.End}
	n.SetID(p.nextID())

	for p.tok == token.EXCEPT {
		hStart := p.val.Pos
		p.advance()
		p.accept(token.STAR) // except* (exception groups), treated like except
		h := &ast.ExceptHandler{Start: hStart}
		h.SetID(p.nextID())
		if p.tok != token.COLON {
			h.Type = p.parseExprNoWalrus()
			if p.accept(token.AS) {
				h.NamePos = p.val.Pos
				h.Name = p.val.Raw
				p.expect(token.IDENT)
			}
		}
		h.Body = p.parseBlock()
		h.End = h.Body.End
		n.Handlers = append(n.Handlers, h)
		n.End = h.End
	}
	if p.accept(token.ELSE) {
		n.Else = p.parseBlock()
		n.End = n.Else.End
	}
	if p.tok == token.FINALLY {
		p.advance()
		n.Finally = p.parseBlock()
		n.End = n.Finally.End
	}
	return n
}

// parseSimpleStmtLine parses a run of semicolon-separated simple statements
// up to the terminating NEWLINE (or EOF).
func (p *parser) parseSimpleStmtLine() []ast.Stmt {
	var stmts []ast.Stmt
	for {
		stmts = append(stmts, p.parseSimpleStmt())
		if !p.accept(token.SEMI) {
			break
		}
		if p.tok == token.NEWLINE || p.tok == token.EOF {
			break
		}
	}
	if !p.accept(token.NEWLINE) {
		if p.tok != token.EOF && p.tok != token.DEDENT {
			p.errorf(p.val.Pos, "expected newline, got %s", p.tok)
			p.syncToNewline()
		}
	}
	return stmts
}

func (p *parser) parseSimpleStmt() ast.Stmt {
	start := p.val.Pos
	switch p.tok {
	case token.RETURN:
		p.advance()
		var val ast.Expr
		end := start + token.Pos(len("return"))
		if p.tok != token.NEWLINE && p.tok != token.SEMI && p.tok != token.EOF {
			val = p.parseExprListAsExpr()
			_, end = val.Span()
		}
		n := &ast.Return{Value: val, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	case token.PASS:
		p.advance()
		n := &ast.Pass{Start: start, End: start + token.Pos(len("pass"))}
		n.SetID(p.nextID())
		return n
	case token.BREAK:
		p.advance()
		n := &ast.Break{Start: start, End: start + token.Pos(len("break"))}
		n.SetID(p.nextID())
		return n
	case token.CONTINUE:
		p.advance()
		n := &ast.Continue{Start: start, End: start + token.Pos(len("continue"))}
		n.SetID(p.nextID())
		return n
	case token.RAISE:
		p.advance()
		var exc, cause ast.Expr
		end := start + token.Pos(len("raise"))
		if p.tok != token.NEWLINE && p.tok != token.SEMI && p.tok != token.EOF {
			exc = p.parseExprNoWalrus()
			_, end = exc.Span()
			if p.accept(token.FROM) {
				cause = p.parseExprNoWalrus()
				_, end = cause.Span()
			}
		}
		n := &ast.Raise{Exc: exc, Cause: cause, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	case token.ASSERT:
		p.advance()
		test := p.parseExprNoWalrus()
		var msg ast.Expr
		_, end := test.Span()
		if p.accept(token.COMMA) {
			msg = p.parseExprNoWalrus()
			_, end = msg.Span()
		}
		n := &ast.Assert{Test: test, Msg: msg, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	case token.DEL:
		p.advance()
		var targets []ast.Expr
		targets = append(targets, p.parseTarget())
		for p.accept(token.COMMA) {
			if p.tok == token.NEWLINE || p.tok == token.SEMI || p.tok == token.EOF {
				break
			}
			targets = append(targets, p.parseTarget())
		}
		_, end := targets[len(targets)-1].Span()
		n := &ast.Delete{Targets: targets, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	case token.GLOBAL, token.NONLOCAL:
		isGlobal := p.tok == token.GLOBAL
		p.advance()
		var names []string
		var poss []token.Pos
		for {
			poss = append(poss, p.val.Pos)
			names = append(names, p.val.Raw)
			p.expect(token.IDENT)
			if !p.accept(token.COMMA) {
				break
			}
		}
		end := poss[len(poss)-1] + token.Pos(len(names[len(names)-1]))
		if isGlobal {
			n := &ast.Global{Names: names, NamePos: poss, Start: start, End: end}
			n.SetID(p.nextID())
			return n
		}
		n := &ast.Nonlocal{Names: names, NamePos: poss, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	case token.IMPORT:
		return p.parseImport(start)
	case token.FROM:
		return p.parseImportFrom(start)
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *parser) parseAlias() *ast.Alias {
	namePos := p.val.Pos
	name := p.val.Raw
	p.expect(token.IDENT)
	for p.tok == token.DOT {
		p.advance()
		name += "." + p.val.Raw
		p.expect(token.IDENT)
	}
	a := &ast.Alias{Name: name, NamePos: namePos}
	a.SetID(p.nextID())
	if p.accept(token.AS) {
		a.AsNamePos = p.val.Pos
		a.AsName = p.val.Raw
		p.expect(token.IDENT)
	}
	return a
}

func (p *parser) parseImport(start token.Pos) ast.Stmt {
	p.expect(token.IMPORT)
	var names []*ast.Alias
	names = append(names, p.parseAlias())
	for p.accept(token.COMMA) {
		names = append(names, p.parseAlias())
	}
	_, end := names[len(names)-1].Span()
	n := &ast.Import{Names: names, Start: start, End: end}
	n.SetID(p.nextID())
	return n
}

func (p *parser) parseImportFrom(start token.Pos) ast.Stmt {
	p.expect(token.FROM)
	level := 0
	for p.tok == token.DOT {
		level++
		p.advance()
	}
	module := ""
	if p.tok == token.IDENT {
		module = p.val.Raw
		p.advance()
		for p.tok == token.DOT {
			p.advance()
			module += "." + p.val.Raw
			p.expect(token.IDENT)
		}
	}
	p.expect(token.IMPORT)

	var names []*ast.Alias
	paren := p.accept(token.LPAREN)
	if p.accept(token.STAR) {
		a := &ast.Alias{Name: "*"}
		a.SetID(p.nextID())
		names = append(names, a)
	} else {
		names = append(names, p.parseAlias())
		for p.accept(token.COMMA) {
			if paren && p.tok == token.RPAREN {
				break
			}
			names = append(names, p.parseAlias())
		}
	}
	if paren {
		p.expect(token.RPAREN)
	}
	end := p.val.Pos
	n := &ast.ImportFrom{Module: module, Level: level, Names: names, Start: start, End: end}
	n.SetID(p.nextID())
	return n
}

// parseExprOrAssignStmt parses a bare expression statement, an assignment
// (possibly chained or annotated), or an augmented assignment.
func (p *parser) parseExprOrAssignStmt() ast.Stmt {
	first := p.parseExprListAsExpr()

	if p.accept(token.COLON) {
		ann := p.parseExprNoWalrus()
		var val ast.Expr
		_, end := ann.Span()
		if p.accept(token.ASSIGN) {
			val = p.parseExprListAsExpr()
			_, end = val.Span()
		}
		start, _ := first.Span()
		n := &ast.AnnAssign{Target: toStoreCtx(first), Annotation: ann, Value: val, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	}

	if token.IsAssignOp(p.tok) {
		op := p.tok
		p.advance()
		val := p.parseExprListAsExpr()
		start, _ := first.Span()
		_, end := val.Span()
		n := &ast.AugAssign{Target: toStoreCtx(first), Op: op, Value: val, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	}

	if p.tok == token.ASSIGN {
		targets := []ast.Expr{toStoreCtx(first)}
		p.expect(token.ASSIGN)
		val := p.parseExprListAsExpr()
		for p.tok == token.ASSIGN {
			p.advance()
			targets = append(targets, toStoreCtx(val))
			val = p.parseExprListAsExpr()
		}
		start, _ := targets[0].Span()
		_, end := val.Span()
		n := &ast.Assign{Targets: targets, Value: val, Start: start, End: end}
		n.SetID(p.nextID())
		return n
	}

	n := &ast.ExprStmt{Value: first}
	n.SetID(p.nextID())
	return n
}

// toStoreCtx rewrites the context of assignable leaf nodes (Name, Tuple,
// List, Attribute, Subscript, Starred) to Store. It recurses into the
// elements of Tuple, List and Starred, so callers only apply it to the
// outermost target.
func toStoreCtx(e ast.Expr) ast.Expr {
	switch v := e.(type) {
	case *ast.Name:
		v.Ctx = ast.Store
	case *ast.Tuple:
		v.Ctx = ast.Store
		for _, el := range v.Elts {
			toStoreCtx(el)
		}
	case *ast.List:
		v.Ctx = ast.Store
		for _, el := range v.Elts {
			toStoreCtx(el)
		}
	case *ast.Attribute:
		v.Ctx = ast.Store
	case *ast.Subscript:
		v.Ctx = ast.Store
	case *ast.Starred:
		v.Ctx = ast.Store
		toStoreCtx(v.Value)
	}
	return e
}

// parseTarget parses a single assignment target (used by for/with/del).
func (p *parser) parseTarget() ast.Expr {
	e := p.parseExprNoWalrus()
	return toStoreCtx(e)
}

// parseTargetList parses a comma-separated target list, as in "for a, b in
// ...", wrapping multiple targets in a Tuple.
func (p *parser) parseTargetList() ast.Expr {
	first := p.parseTarget()
	if p.tok != token.COMMA {
		return first
	}
	elts := []ast.Expr{first}
	start, end := first.Span()
	for p.accept(token.COMMA) {
		if p.tok == token.IN {
			break
		}
		e := p.parseTarget()
		elts = append(elts, e)
		_, end = e.Span()
	}
	tup := &ast.Tuple{Elts: elts, Ctx: ast.Store, Start: start, End: end}
	tup.SetID(p.nextID())
	return tup
}

func (p *parser) peekIsKeywordArg() bool {
	return p.peek() == token.ASSIGN
}

func (p *parser) parseKeywordArg() *ast.Keyword {
	namePos := p.val.Pos
	name := p.val.Raw
	p.expect(token.IDENT)
	p.expect(token.ASSIGN)
	val := p.parseExprNoWalrus()
	kw := &ast.Keyword{Name: name, NamePos: namePos, Value: val}
	kw.SetID(p.nextID())
	return kw
}
