package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/parser"
	"github.com/mna/pyrename/lang/token"
)

func parseOK(t *testing.T, src string) (*token.FileSet, *ast.Module) {
	t.Helper()
	fset := token.NewFileSet()
	mod, err := parser.ParseSource(fset, "<test>", []byte(src))
	require.NoError(t, err)
	return fset, mod
}

func TestSpanCoversEntireStatement(t *testing.T) {
	fset, mod := parseOK(t, "x = 1\n")
	file := fset.File(mod.Start)

	require.Len(t, mod.Body, 1)
	assign := mod.Body[0].(*ast.Assign)
	start, end := assign.Span()
	assert.Equal(t, 1, file.Position(start).Line)
	assert.True(t, end > start)
}

func TestWalkVisitsNodesInDepthFirstOrder(t *testing.T) {
	_, mod := parseOK(t, "def f():\n\tx = 1\n\treturn x\n")

	var kinds []string
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		switch n.(type) {
		case *ast.FunctionDef:
			kinds = append(kinds, "FunctionDef")
		case *ast.Assign:
			kinds = append(kinds, "Assign")
		case *ast.Return:
			kinds = append(kinds, "Return")
		}
		return v
	}
	ast.Walk(v, mod)

	assert.Equal(t, []string{"FunctionDef", "Assign", "Return"}, kinds)
}

func TestWalkStopsDescendingWhenVisitorReturnsNil(t *testing.T) {
	_, mod := parseOK(t, "def f():\n\tx = 1\n")

	var sawAssign bool
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		if _, ok := n.(*ast.FunctionDef); ok {
			// refuse to descend into the function body.
			return nil
		}
		if _, ok := n.(*ast.Assign); ok {
			sawAssign = true
		}
		return v
	}
	ast.Walk(v, mod)

	assert.False(t, sawAssign)
}

func TestEveryParsedNodeHasAnID(t *testing.T) {
	_, mod := parseOK(t, "x = 1\ny = x + 1\n")

	ids := make(map[int]bool)
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		assert.False(t, ids[n.ID()], "node ID %d reused", n.ID())
		ids[n.ID()] = true
		return v
	}
	ast.Walk(v, mod)
	assert.NotEmpty(t, ids)
}

func TestArgumentsAllIncludesPositionalAndKeywordOnly(t *testing.T) {
	_, mod := parseOK(t, "def f(a, b, *, c):\n\tpass\n")
	fn := mod.Body[0].(*ast.FunctionDef)
	names := make([]string, 0, len(fn.Args.All()))
	for _, a := range fn.Args.All() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}
