// Package scanner implements the lexer for the Python-like source language:
// an indentation-sensitive tokenizer that synthesizes NEWLINE, INDENT and
// DEDENT tokens the way CPython's own tokenizer does, so the parser never
// has to reason about whitespace directly.
package scanner

import (
	"fmt"
	"go/scanner"
	"strings"
	"unicode/utf8"

	"github.com/mna/pyrename/lang/token"
)

type (
	// Error and ErrorList are reused from the standard library's go/scanner
	// package: its Error type already pairs a token.Position with a message
	// and sorts/dedupes/prints exactly the way a hand-rolled equivalent would.
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

// PrintError prints an ErrorList (or any error) to w.
var PrintError = scanner.PrintError

// Scanner tokenizes a single source file's bytes into a stream of tokens,
// synthesizing NEWLINE/INDENT/DEDENT from leading whitespace and tracking
// bracket depth so that expressions spanning parens, brackets or braces are
// treated as one logical line.
type Scanner struct {
	file  *token.File
	src   []byte
	errFn func(token.Position, string)

	offset int
	atBOL  bool // next byte starts a fresh logical line; measure indentation
	depth  int  // paren/bracket/brace nesting depth
	indent []int

	queue     []queued
	lastToken token.Token
	eofSent   bool
}

type queued struct {
	tok token.Token
	val token.Value
}

// Init prepares s to scan src, which must be the exact content registered
// for file in its owning FileSet.
func (s *Scanner) Init(file *token.File, src []byte, errFn func(token.Position, string)) {
	s.file = file
	s.src = src
	s.errFn = errFn
	s.offset = 0
	s.atBOL = true
	s.depth = 0
	s.indent = []int{0}
	s.queue = nil
	s.lastToken = token.ILLEGAL
	s.eofSent = false
}

func (s *Scanner) error(off int, format string, args ...interface{}) {
	if s.errFn != nil {
		s.errFn(s.file.Position(s.file.Pos(off)), fmt.Sprintf(format, args...))
	}
}

// Scan returns the next token and, for IDENT/INT/FLOAT/STRING and keywords,
// fills val with its position and literal text; for other tokens val.Pos is
// still the token's start position.
func (s *Scanner) Scan(val *token.Value) token.Token {
	if len(s.queue) > 0 {
		q := s.queue[0]
		s.queue = s.queue[1:]
		*val = q.val
		s.lastToken = q.tok
		return q.tok
	}

	tok, v := s.scan1()
	s.lastToken = tok
	*val = v
	return tok
}

func (s *Scanner) push(tok token.Token, val token.Value) {
	s.queue = append(s.queue, queued{tok: tok, val: val})
}

func (s *Scanner) scan1() (token.Token, token.Value) {
	for {
		if s.atBOL && s.depth == 0 {
			if tok, val, ok := s.handleLineStart(); ok {
				return tok, val
			}
		}

		if s.offset >= len(s.src) {
			return s.atEOF()
		}

		c := s.src[s.offset]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			s.offset++
			continue
		case c == '\\' && s.offset+1 < len(s.src) && s.src[s.offset+1] == '\n':
			s.offset += 2
			s.file.AddLine(s.offset)
			continue
		case c == '#':
			for s.offset < len(s.src) && s.src[s.offset] != '\n' {
				s.offset++
			}
			continue
		case c == '\n':
			s.file.AddLine(s.offset + 1)
			s.offset++
			if s.depth > 0 {
				continue
			}
			if s.lastToken == token.NEWLINE || s.lastToken == token.ILLEGAL || s.lastToken == token.INDENT || s.lastToken == token.DEDENT {
				s.atBOL = true
				continue
			}
			s.atBOL = true
			return token.NEWLINE, token.Value{Pos: s.file.Pos(s.offset - 1)}
		}

		return s.scanToken()
	}
}

// atEOF synthesizes the trailing NEWLINE (if the file didn't end with one),
// the DEDENTs that close every still-open indentation level, and finally the
// EOF token, queuing all but the first so Scan drains them one at a time.
func (s *Scanner) atEOF() (token.Token, token.Value) {
	pos := s.file.Pos(s.offset)
	val := token.Value{Pos: pos}

	var seq []token.Token
	if !s.eofSent {
		if len(s.src) > 0 && s.lastToken != token.NEWLINE && s.lastToken != token.ILLEGAL {
			seq = append(seq, token.NEWLINE)
		}
		for i := 1; i < len(s.indent); i++ {
			seq = append(seq, token.DEDENT)
		}
		s.indent = s.indent[:1]
		s.eofSent = true
	}
	seq = append(seq, token.EOF)

	for _, t := range seq[1:] {
		s.push(t, val)
	}
	return seq[0], val
}

// handleLineStart measures the indentation of a fresh logical line. It
// returns ok=false if the line turned out to be blank or a comment-only
// line, meaning the caller should keep scanning from the current offset
// without having produced a token.
func (s *Scanner) handleLineStart() (token.Token, token.Value, bool) {
	start := s.offset
	width := 0
	for s.offset < len(s.src) {
		switch s.src[s.offset] {
		case ' ':
			width++
			s.offset++
			continue
		case '\t':
			width += 8 - (width % 8)
			s.offset++
			continue
		}
		break
	}

	if s.offset >= len(s.src) {
		s.offset = start
		s.atBOL = false
		return 0, token.Value{}, false
	}
	switch s.src[s.offset] {
	case '\n', '#', '\r':
		// blank or comment-only line: contributes no indentation change.
		s.offset = start
		s.atBOL = false
		return 0, token.Value{}, false
	}

	s.atBOL = false
	pos := s.file.Pos(s.offset)
	top := s.indent[len(s.indent)-1]
	switch {
	case width > top:
		s.indent = append(s.indent, width)
		return token.INDENT, token.Value{Pos: pos}, true
	case width < top:
		for len(s.indent) > 1 && s.indent[len(s.indent)-1] > width {
			s.indent = s.indent[:len(s.indent)-1]
			s.push(token.DEDENT, token.Value{Pos: pos})
		}
		if s.indent[len(s.indent)-1] != width {
			s.error(s.offset, "unindent does not match any outer indentation level")
			s.indent[len(s.indent)-1] = width
		}
		first := s.queue[0]
		s.queue = s.queue[1:]
		return first.tok, first.val, true
	default:
		return 0, token.Value{}, false
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentCont(c byte) bool { return isIdentStart(c) || (c >= '0' && c <= '9') }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (s *Scanner) scanToken() (token.Token, token.Value) {
	start := s.offset
	pos := s.file.Pos(start)
	c := s.src[start]

	switch {
	case isIdentStart(c):
		return s.scanIdentOrString(start, pos)
	case isDigit(c) || (c == '.' && s.offset+1 < len(s.src) && isDigit(s.src[s.offset+1])):
		return s.scanNumber(start, pos)
	case c == '"' || c == '\'':
		raw := s.scanString(start, "")
		return token.STRING, token.Value{Pos: pos, Raw: raw}
	}

	return s.scanOperator(start, pos)
}

func (s *Scanner) scanIdentOrString(start int, pos token.Pos) (token.Token, token.Value) {
	for s.offset < len(s.src) && isIdentCont(s.src[s.offset]) {
		s.offset++
	}
	lit := string(s.src[start:s.offset])

	// string prefixes: r, b, f, u and their two-letter combinations, directly
	// followed by a quote.
	if isStringPrefix(lit) && s.offset < len(s.src) && (s.src[s.offset] == '"' || s.src[s.offset] == '\'') {
		raw := s.scanString(s.offset, lit)
		return token.STRING, token.Value{Pos: pos, Raw: lit + raw}
	}

	if tok, ok := token.Keywords[lit]; ok {
		return tok, token.Value{Pos: pos, Raw: lit}
	}
	return token.IDENT, token.Value{Pos: pos, Raw: lit}
}

func isStringPrefix(lit string) bool {
	if len(lit) == 0 || len(lit) > 2 {
		return false
	}
	for _, r := range strings.ToLower(lit) {
		if r != 'r' && r != 'b' && r != 'f' && r != 'u' {
			return false
		}
	}
	return true
}

// scanString consumes a (possibly triple-quoted) string literal starting at
// s.offset (a quote character) and returns its raw source text, including
// delimiters. The string-prefix argument is ignored.
func (s *Scanner) scanString(start int, _ string) string {
	quote := s.src[start]
	triple := start+2 < len(s.src) && s.src[start+1] == quote && s.src[start+2] == quote
	delimLen := 1
	if triple {
		delimLen = 3
	}
	i := start + delimLen
	for i < len(s.src) {
		c := s.src[i]
		if c == '\\' && i+1 < len(s.src) {
			if s.src[i+1] == '\n' {
				s.file.AddLine(i + 2)
			}
			i += 2
			continue
		}
		if c == '\n' {
			s.file.AddLine(i + 1)
			if !triple {
				s.error(i, "unterminated string literal")
				break
			}
			i++
			continue
		}
		if c == quote {
			if !triple {
				i++
				break
			}
			if i+2 < len(s.src) && s.src[i+1] == quote && s.src[i+2] == quote {
				i += 3
				break
			}
		}
		i++
	}
	s.offset = i
	return string(s.src[start:i])
}

func (s *Scanner) scanNumber(start int, pos token.Pos) (token.Token, token.Value) {
	isFloat := false
	for s.offset < len(s.src) {
		c := s.src[s.offset]
		switch {
		case isDigit(c) || c == '_':
			s.offset++
		case c == '.' && !isFloat:
			isFloat = true
			s.offset++
		case (c == 'e' || c == 'E') && s.offset+1 < len(s.src):
			isFloat = true
			s.offset++
			if s.offset < len(s.src) && (s.src[s.offset] == '+' || s.src[s.offset] == '-') {
				s.offset++
			}
		case c == 'x' || c == 'X' || c == 'o' || c == 'O' || c == 'b' || c == 'B':
			s.offset++
		case (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F'):
			s.offset++
		case c == 'j' || c == 'J':
			s.offset++
		default:
			goto done
		}
	}
done:
	lit := string(s.src[start:s.offset])
	tok := token.INT
	if isFloat {
		tok = token.FLOAT
	}
	return tok, token.Value{Pos: pos, Raw: lit}
}

func (s *Scanner) scanOperator(start int, pos token.Pos) (token.Token, token.Value) {
	rest := s.src[start:]
	for _, op := range threeCharOps {
		if hasPrefixBytes(rest, op.lit) {
			s.offset += 3
			s.trackDepth(op.tok)
			return op.tok, token.Value{Pos: pos}
		}
	}
	for _, op := range twoCharOps {
		if hasPrefixBytes(rest, op.lit) {
			s.offset += 2
			s.trackDepth(op.tok)
			return op.tok, token.Value{Pos: pos}
		}
	}
	if tok, ok := oneCharOps[rest[0]]; ok {
		s.offset++
		s.trackDepth(tok)
		return tok, token.Value{Pos: pos}
	}
	s.error(start, "unrecognized character %q", rune(rest[0]))
	s.offset++
	return token.ILLEGAL, token.Value{Pos: pos}
}

func (s *Scanner) trackDepth(tok token.Token) {
	switch tok {
	case token.LPAREN, token.LBRACK, token.LBRACE:
		s.depth++
	case token.RPAREN, token.RBRACK, token.RBRACE:
		if s.depth > 0 {
			s.depth--
		}
	}
}

func hasPrefixBytes(b []byte, s string) bool {
	if len(b) < len(s) {
		return false
	}
	return string(b[:len(s)]) == s
}

type opEntry struct {
	lit string
	tok token.Token
}

var threeCharOps = []opEntry{
	{"**=", token.DOUBLESTAR_EQ},
	{"//=", token.DSLASH_EQ},
	{"<<=", token.LTLT_EQ},
	{">>=", token.GTGT_EQ},
}

var twoCharOps = []opEntry{
	{"**", token.DOUBLESTAR},
	{"//", token.DSLASH},
	{"<<", token.LTLT},
	{">>", token.GTGT},
	{"==", token.EQ},
	{"!=", token.NE},
	{"<=", token.LE},
	{">=", token.GE},
	{":=", token.WALRUS},
	{"->", token.ARROW},
	{"+=", token.PLUS_EQ},
	{"-=", token.MINUS_EQ},
	{"*=", token.STAR_EQ},
	{"/=", token.SLASH_EQ},
	{"%=", token.PERCENT_EQ},
	{"&=", token.AMP_EQ},
	{"|=", token.PIPE_EQ},
	{"^=", token.CARET_EQ},
}

var oneCharOps = map[byte]token.Token{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'&': token.AMP,
	'|': token.PIPE,
	'^': token.CARET,
	'~': token.TILDE,
	'@': token.AT,
	'.': token.DOT,
	',': token.COMMA,
	':': token.COLON,
	';': token.SEMI,
	'=': token.ASSIGN,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACK,
	']': token.RBRACK,
	'{': token.LBRACE,
	'}': token.RBRACE,
	'<': token.LT,
	'>': token.GT,
}
