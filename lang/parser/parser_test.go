package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/parser"
	"github.com/mna/pyrename/lang/token"
)

func parseOK(t *testing.T, src string) *ast.Module {
	t.Helper()
	fset := token.NewFileSet()
	mod, err := parser.ParseSource(fset, "<test>", []byte(src))
	require.NoError(t, err)
	return mod
}

func TestParseFunctionDef(t *testing.T) {
	mod := parseOK(t, "def f(a, b=1):\n\treturn a + b\n")
	require.Len(t, mod.Body, 1)
	fn, ok := mod.Body[0].(*ast.FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Name)
	require.NotNil(t, fn.Args)
	assert.Len(t, fn.Args.All(), 2)
	require.Len(t, fn.Body.Stmts, 1)
	_, ok = fn.Body.Stmts[0].(*ast.Return)
	assert.True(t, ok)
}

func TestParseClassDef(t *testing.T) {
	mod := parseOK(t, "class C(Base):\n\tdef m(self):\n\t\tpass\n")
	require.Len(t, mod.Body, 1)
	cls, ok := mod.Body[0].(*ast.ClassDef)
	require.True(t, ok)
	assert.Equal(t, "C", cls.Name)
	require.Len(t, cls.Bases, 1)
	require.Len(t, cls.Body.Stmts, 1)
}

func TestParseImportAndImportFrom(t *testing.T) {
	mod := parseOK(t, "import os\nfrom collections import OrderedDict as OD\n")
	require.Len(t, mod.Body, 2)

	imp, ok := mod.Body[0].(*ast.Import)
	require.True(t, ok)
	require.Len(t, imp.Names, 1)
	assert.Equal(t, "os", imp.Names[0].Name)

	impFrom, ok := mod.Body[1].(*ast.ImportFrom)
	require.True(t, ok)
	assert.Equal(t, "collections", impFrom.Module)
	require.Len(t, impFrom.Names, 1)
	assert.Equal(t, "OrderedDict", impFrom.Names[0].Name)
	assert.Equal(t, "OD", impFrom.Names[0].AsName)
	assert.Equal(t, "OD", impFrom.Names[0].BoundName())
}

func TestParseWalrusInComprehension(t *testing.T) {
	mod := parseOK(t, "y = [z for x in range(3) if (z := x * 2) > 0]\n")
	require.Len(t, mod.Body, 1)
	_, ok := mod.Body[0].(*ast.Assign)
	assert.True(t, ok)
}

func TestParseErrorOnMalformedSource(t *testing.T) {
	fset := token.NewFileSet()
	_, err := parser.ParseSource(fset, "<test>", []byte("def f(:\n\tpass\n"))
	assert.Error(t, err)
}

func TestParseEveryNodeHasStableID(t *testing.T) {
	mod := parseOK(t, "x = 1\ny = 2\n")
	seen := make(map[int]bool)
	seen[mod.ID()] = true
	for _, s := range mod.Body {
		assert.False(t, seen[s.ID()], "node IDs must be unique across the tree")
		seen[s.ID()] = true
	}
}
