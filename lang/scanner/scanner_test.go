package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/pyrename/lang/scanner"
	"github.com/mna/pyrename/lang/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, []string) {
	t.Helper()
	fset := token.NewFileSet()
	file := fset.AddFile("<test>", len(src))
	var errs scanner.ErrorList
	var s scanner.Scanner
	s.Init(file, []byte(src), errs.Add)

	var toks []token.Token
	var lits []string
	for {
		var val token.Value
		tok := s.Scan(&val)
		toks = append(toks, tok)
		lits = append(lits, val.Raw)
		if tok == token.EOF {
			break
		}
	}
	require.NoError(t, errs.Err())
	return toks, lits
}

func TestScanSimpleAssignment(t *testing.T) {
	toks, lits := scanAll(t, "x = 1\n")
	assert.Equal(t, []token.Token{token.IDENT, token.ASSIGN, token.INT, token.NEWLINE, token.EOF}, toks)
	assert.Equal(t, "x", lits[0])
	assert.Equal(t, "1", lits[2])
}

func TestScanIndentDedent(t *testing.T) {
	src := "if x:\n\ty = 1\nz = 2\n"
	toks, _ := scanAll(t, src)
	assert.Contains(t, toks, token.INDENT)
	assert.Contains(t, toks, token.DEDENT)

	// the DEDENT must appear before "z" is scanned.
	var dedentIdx, zIdent int
	for i, tok := range toks {
		if tok == token.DEDENT {
			dedentIdx = i
		}
	}
	for i, tok := range toks {
		if tok == token.IDENT && i > dedentIdx {
			zIdent = i
			break
		}
	}
	assert.Greater(t, zIdent, dedentIdx)
}

func TestScanKeywordsVersusIdentifiers(t *testing.T) {
	toks, _ := scanAll(t, "def f(x):\n\treturn x\n")
	assert.Equal(t, token.DEF, toks[0])
	assert.Equal(t, token.IDENT, toks[1])
}

func TestScanBracketsSuppressNewline(t *testing.T) {
	// a logical line spanning a paren must not emit a NEWLINE until the
	// closing paren, even though there's a literal line break inside.
	src := "f(1,\n2)\n"
	toks, _ := scanAll(t, src)
	newlineCount := 0
	for _, tok := range toks {
		if tok == token.NEWLINE {
			newlineCount++
		}
	}
	assert.Equal(t, 1, newlineCount)
}

func TestScanOperators(t *testing.T) {
	toks, _ := scanAll(t, "x += 1\ny := 2\n")
	assert.Contains(t, toks, token.PLUS_EQ)
	assert.Contains(t, toks, token.WALRUS)
}

func TestScanTripleQuotedString(t *testing.T) {
	toks, lits := scanAll(t, "x = \"\"\"hello\nworld\"\"\"\n")
	require.Equal(t, token.STRING, toks[2])
	assert.Equal(t, "\"\"\"hello\nworld\"\"\"", lits[2])
}
