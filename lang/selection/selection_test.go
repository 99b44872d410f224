package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/parser"
	"github.com/mna/pyrename/lang/resolver"
	"github.com/mna/pyrename/lang/selection"
	"github.com/mna/pyrename/lang/token"
)

func index(t *testing.T, src string) *resolver.Index {
	t.Helper()
	fset := token.NewFileSet()
	mod, err := parser.ParseSource(fset, "<test>", []byte(src))
	require.NoError(t, err)
	return resolver.Resolve(mod)
}

func TestSelectUnfilteredMatchesEveryBindingButNotBuiltins(t *testing.T) {
	src := `
x = 1

def f():
	x = 2
	return x

print(x)
`
	idx := index(t, src)
	selected := selection.Select(idx, "x", selection.Rules{})
	// module x and f's local x: two distinct bindings, both selected;
	// "print" is an unresolved builtin and is never itself a candidate.
	assert.Len(t, selected, 2)
}

func TestSelectLocalFilterExcludesModuleScope(t *testing.T) {
	src := `
x = 1

def f():
	x = 2
	return x
`
	idx := index(t, src)
	selected := selection.Select(idx, "x", selection.Rules{ScopeFilter: selection.FilterLocal})
	require.Len(t, selected, 1)
	for key := range selected {
		scope := idx.ScopeByID(key.ScopeID)
		require.NotNil(t, scope)
		assert.Equal(t, resolver.FunctionScope, scope.Kind)
	}
}

func TestSelectClassFilterOnlyMatchesClassBody(t *testing.T) {
	src := `
x = 1

class C:
	x = 2

def f():
	x = 3
`
	idx := index(t, src)
	selected := selection.Select(idx, "x", selection.Rules{ScopeFilter: selection.FilterClass})
	require.Len(t, selected, 1)
	for key := range selected {
		scope := idx.ScopeByID(key.ScopeID)
		require.NotNil(t, scope)
		assert.Equal(t, resolver.ClassScope, scope.Kind)
	}
}

func TestSelectTargetFunctionsContainment(t *testing.T) {
	src := `
def outer():
	x = 1
	def inner():
		x = 2
		return x
	return x
`
	idx := index(t, src)
	selected := selection.Select(idx, "x", selection.Rules{TargetFunctions: []string{"inner"}})
	require.Len(t, selected, 1)
	for key := range selected {
		scope := idx.ScopeByID(key.ScopeID)
		require.NotNil(t, scope)
		fn, ok := scope.Node.(*ast.FunctionDef)
		require.True(t, ok)
		assert.Equal(t, "inner", fn.Name)
	}
}

func TestSelectGlobalFilterExcludesUnrelatedSameNamedLocal(t *testing.T) {
	// mirrors the original implementation's own regression case: a local
	// "count" that shadows the module-level "count" a function declares
	// global must never be swept in by scope=global.
	src := `
count = 0

def bump():
	global count
	count += 1

def shadow():
	count = 99
	return count
`
	idx := index(t, src)
	selected := selection.Select(idx, "count", selection.Rules{ScopeFilter: selection.FilterGlobal})
	require.Len(t, selected, 1)
	for key := range selected {
		scope := idx.ScopeByID(key.ScopeID)
		require.NotNil(t, scope)
		assert.Equal(t, resolver.ModuleScope, scope.Kind)
	}
}

func TestSelectGlobalFilterExcludesModuleBindingNeverDeclaredGlobal(t *testing.T) {
	src := `
count = 0
print(count)
`
	idx := index(t, src)
	selected := selection.Select(idx, "count", selection.Rules{ScopeFilter: selection.FilterGlobal})
	assert.Empty(t, selected, "no function ever declares count global, so nothing qualifies")
}

func TestSelectNonlocalFilterExcludesUnrelatedSameNamedBinding(t *testing.T) {
	src := `
def outer():
	x = 1
	def inner():
		nonlocal x
		x = 2
	inner()
	return x

def other():
	x = 5
	return x
`
	idx := index(t, src)
	selected := selection.Select(idx, "x", selection.Rules{ScopeFilter: selection.FilterNonlocal})
	require.Len(t, selected, 1)
	for key := range selected {
		scope := idx.ScopeByID(key.ScopeID)
		require.NotNil(t, scope)
		fn, ok := scope.Node.(*ast.FunctionDef)
		require.True(t, ok)
		assert.Equal(t, "outer", fn.Name, "must select outer's x, reached via inner's nonlocal declaration")
	}
}

func TestSelectAnchorOverridesEverything(t *testing.T) {
	src := `
x = 1

def f():
	x = 2
`
	idx := index(t, src)
	anchor := resolver.BindingKey{ScopeID: idx.ModuleScope.ID, Name: "x"}
	selected := selection.Select(idx, "x", selection.Rules{
		ScopeFilter: selection.FilterClass, // would normally match nothing
		Anchor:      &anchor,
	})
	require.Len(t, selected, 1)
	assert.True(t, selected[anchor])
}
