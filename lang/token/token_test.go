package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mna/pyrename/lang/token"
)

func TestKeywordsMapsReservedWords(t *testing.T) {
	tok, ok := token.Keywords["def"]
	assert.True(t, ok)
	assert.Equal(t, token.DEF, tok)

	_, ok = token.Keywords["not_a_keyword"]
	assert.False(t, ok)
}

func TestIsAssignOp(t *testing.T) {
	assert.True(t, token.IsAssignOp(token.PLUS_EQ))
	assert.True(t, token.IsAssignOp(token.DOUBLESTAR_EQ))
	assert.False(t, token.IsAssignOp(token.ASSIGN))
	assert.False(t, token.IsAssignOp(token.PLUS))
}

func TestPosArithmeticAcrossFiles(t *testing.T) {
	fset := token.NewFileSet()
	f1 := fset.AddFile("a.py", 10)
	f2 := fset.AddFile("b.py", 5)

	assert.Equal(t, f1, fset.File(f1.Pos(0)))
	assert.Equal(t, f2, fset.File(f2.Pos(0)))
	assert.NotEqual(t, f1.Pos(0), f2.Pos(0))
}

func TestTokenStringAndGoString(t *testing.T) {
	assert.Equal(t, "+", token.PLUS.String())
	assert.Equal(t, "'+'", token.PLUS.GoString())
	assert.Equal(t, "identifier", token.IDENT.String())
}
