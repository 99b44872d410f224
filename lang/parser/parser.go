// Package parser implements a recursive-descent parser that turns scanned
// tokens into the ast package's node tree.
package parser

import (
	"fmt"
	"os"

	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/scanner"
	"github.com/mna/pyrename/lang/token"
)

// ParseFile reads and parses a single source file, registering it in fset
// under its path. An error reading the file is returned as is; otherwise the
// returned error, if non-nil, is a scanner.ErrorList.
func ParseFile(fset *token.FileSet, filename string) (*ast.Module, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseSource(fset, filename, src)
}

// ParseSource parses src, registering it in fset under name. The returned
// error, if non-nil, is a scanner.ErrorList.
func ParseSource(fset *token.FileSet, name string, src []byte) (*ast.Module, error) {
	var p parser
	p.init(fset, name, src)
	mod := p.parseModule()
	mod.Name = name
	p.errors.Sort()
	return mod, p.errors.Err()
}

// parser holds the mutable state of a single parse.
type parser struct {
	scanner scanner.Scanner
	errors  scanner.ErrorList
	file    *token.File

	tok token.Token
	val token.Value

	hasPeek  bool
	peekTok  token.Token
	peekVal  token.Value

	nextID_ int
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, len(src))
	p.scanner.Init(p.file, src, p.errors.Add)
	p.advance()
}

// nextID mints a fresh node identity, stamped onto every node the parser
// constructs (via SetID) so the resolver can key its node-to-binding table
// by ID() rather than by node pointer.
func (p *parser) nextID() int {
	p.nextID_++
	return p.nextID_
}

func (p *parser) advance() {
	if p.hasPeek {
		p.tok, p.val = p.peekTok, p.peekVal
		p.hasPeek = false
		return
	}
	p.tok = p.scanner.Scan(&p.val)
}

// peek returns the token kind following the current one, without consuming
// the current token. Used only where a grammar ambiguity genuinely needs
// one token of lookahead (e.g. "name=" inside a class base-list meaning a
// keyword argument rather than a positional expression).
func (p *parser) peek() token.Token {
	if !p.hasPeek {
		p.peekTok = p.scanner.Scan(&p.peekVal)
		p.hasPeek = true
	}
	return p.peekTok
}

// accept consumes and returns true if the current token is tok.
func (p *parser) accept(tok token.Token) bool {
	if p.tok == tok {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches tok, recording an error
// and returning its position unchanged otherwise.
func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.val.Pos
	if p.tok != tok {
		p.errorf(p.val.Pos, "expected %s, got %s", tok, p.tok)
		return pos
	}
	p.advance()
	return pos
}

func (p *parser) errorf(pos token.Pos, format string, args ...interface{}) {
	p.errors.Add(p.file.Position(pos), fmt.Sprintf(format, args...))
}

// syncToNewline skips tokens up to and including the next NEWLINE, or up to
// (but not including) the next DEDENT or EOF, to recover from a malformed
// statement without cascading errors.
func (p *parser) syncToNewline() {
	for p.tok != token.NEWLINE && p.tok != token.EOF && p.tok != token.DEDENT {
		p.advance()
	}
	p.accept(token.NEWLINE)
}

func (p *parser) parseModule() *ast.Module {
	start := p.val.Pos
	mod := &ast.Module{Start: start}
	mod.SetID(p.nextID())
	for p.tok != token.EOF {
		if p.accept(token.NEWLINE) {
			continue
		}
		mod.Body = append(mod.Body, p.parseStmt()...)
	}
	mod.End = p.val.Pos
	return mod
}
