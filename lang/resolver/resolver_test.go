package resolver_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/parser"
	"github.com/mna/pyrename/lang/resolver"
	"github.com/mna/pyrename/lang/token"
)

func resolveSrc(t *testing.T, src string) *resolver.Index {
	t.Helper()
	fset := token.NewFileSet()
	mod, err := parser.ParseSource(fset, "<test>", []byte(src))
	require.NoError(t, err)
	return resolver.Resolve(mod)
}

func occOf(idx *resolver.Index, name string) []resolver.Occurrence {
	var out []resolver.Occurrence
	for _, occ := range idx.Occurrences {
		if occ.Name == name {
			out = append(out, occ)
		}
	}
	return out
}

func TestLocalShadowsGlobal(t *testing.T) {
	src := `
x = 1

def f():
	x = 2
	return x
`
	idx := resolveSrc(t, src)
	occs := occOf(idx, "x")
	require.Len(t, occs, 3) // module def, local def, local read

	// the module-level def and the function's def+read must resolve to
	// distinct bindings (distinct scope ids).
	moduleKey := occs[0].Key
	localKey := occs[1].Key
	assert.NotEqual(t, moduleKey, localKey)
	assert.Equal(t, localKey, occs[2].Key, "read inside f must resolve to f's local x")
}

func TestNonlocalChain(t *testing.T) {
	src := `
def outer():
	x = 1
	def inner():
		nonlocal x
		x = 2
	inner()
	return x
`
	idx := resolveSrc(t, src)
	occs := occOf(idx, "x")
	require.True(t, len(occs) >= 3)
	outerDefKey := occs[0].Key
	for _, occ := range occs {
		assert.Equal(t, outerDefKey, occ.Key, "every x occurrence must resolve to outer's binding")
	}
}

func TestComprehensionIsolatesLoopVariable(t *testing.T) {
	src := `
y = [x for x in range(3)]
x = 5
`
	idx := resolveSrc(t, src)
	occs := occOf(idx, "x")
	require.Len(t, occs, 3) // comprehension target def, comprehension read, module x = 5

	compTargetKey := occs[0].Key
	compReadKey := occs[1].Key
	moduleKey := occs[2].Key
	assert.Equal(t, compTargetKey, compReadKey)
	assert.NotEqual(t, compTargetKey, moduleKey, "comprehension x must not leak into module scope")
}

func TestClassAttributeNotVisibleToMethod(t *testing.T) {
	src := `
class C:
	value = 1
	def get(self):
		return value
`
	idx := resolveSrc(t, src)
	occs := occOf(idx, "value")
	require.Len(t, occs, 2)

	classDefKey := occs[0].Key
	methodReadKey := occs[1].Key
	assert.NotEqual(t, classDefKey, methodReadKey,
		"a class body binding must not be visible from a nested method (must fall through to builtin/unresolved)")

	bind, ok := idx.Bindings[methodReadKey]
	require.True(t, ok)
	assert.Equal(t, resolver.BindBuiltin, bind.Kind)
}

func TestExceptHandlerNameIsScopedOccurrence(t *testing.T) {
	src := `
try:
	pass
except Exception as err:
	print(err)
`
	idx := resolveSrc(t, src)
	occs := occOf(idx, "err")
	require.Len(t, occs, 2)
	assert.True(t, occs[0].IsDef)
	assert.False(t, occs[1].IsDef)
	assert.Equal(t, occs[0].Key, occs[1].Key)
}

func TestLambdaParameterOwnScope(t *testing.T) {
	src := `
n = 1
f = lambda n: n + 1
`
	idx := resolveSrc(t, src)
	occs := occOf(idx, "n")
	require.Len(t, occs, 3)

	moduleKey := occs[0].Key
	paramKey := occs[1].Key
	bodyReadKey := occs[2].Key
	assert.NotEqual(t, moduleKey, paramKey)
	assert.Equal(t, paramKey, bodyReadKey)
}

func TestGlobalDeclarationBindsModuleScope(t *testing.T) {
	src := `
count = 0

def bump():
	global count
	count += 1
`
	idx := resolveSrc(t, src)
	occs := occOf(idx, "count")
	require.Len(t, occs, 3) // module def, global decl reference, augmented assign

	moduleKey := occs[0].Key
	for _, occ := range occs[1:] {
		assert.Equal(t, moduleKey, occ.Key)
	}
}

func TestInvalidDeclarationDiagnostics(t *testing.T) {
	src := `
def f():
	global x
	nonlocal x
	x = 1
`
	idx := resolveSrc(t, src)
	var found bool
	for _, d := range idx.Diagnostics {
		if d.Kind == resolver.DiagInvalidDeclaration {
			found = true
		}
	}
	assert.True(t, found, "global+nonlocal conflict must be recorded as a diagnostic, not rejected")
}

func TestUnresolvedNameRecordsDiagnosticOnce(t *testing.T) {
	src := `
undefined_name
undefined_name
`
	idx := resolveSrc(t, src)
	count := 0
	for _, d := range idx.Diagnostics {
		if d.Kind == resolver.DiagUnresolvedName {
			count++
		}
	}
	assert.Equal(t, 1, count, "repeated reads of the same unresolved name should be deduped")
}

func TestNonlocalChainSkipsIntermediateFunctionLackingBinding(t *testing.T) {
	// "middle" never binds x itself, only re-declares nonlocal; the chain
	// must resolve all the way up to "grandparent", not stop at "middle"
	// and misdiagnose or synthesize a spurious binding there.
	src := `
def grandparent():
	x = 1
	def middle():
		nonlocal x
		def inner():
			nonlocal x
			x = 2
		inner()
	middle()
	return x
`
	idx := resolveSrc(t, src)
	occs := occOf(idx, "x")
	require.True(t, len(occs) >= 4)
	grandparentKey := occs[0].Key
	for _, occ := range occs {
		assert.Equal(t, grandparentKey, occ.Key, "every x occurrence must resolve to grandparent's binding")
	}

	for _, d := range idx.Diagnostics {
		assert.NotEqual(t, resolver.DiagInvalidDeclaration, d.Kind,
			"a valid multi-level nonlocal chain must not be diagnosed as invalid")
	}

	// "middle" must not have gained a spurious local "x" binding of its own.
	for _, s := range idx.Scopes {
		if s.Node == nil {
			continue
		}
		if fn, ok := s.Node.(*ast.FunctionDef); ok && fn.Name == "middle" {
			_, ok := s.Lookup("x")
			assert.False(t, ok, "middle must not synthesize its own x binding")
		}
	}
}

func TestComprehensionOccurrenceOrderIsTraversalNotTextual(t *testing.T) {
	// the generator's target ("for x") resolves fully before the element
	// expression is resolved, so its occurrence is appended first even
	// though "x" appears later in the source text than the element.
	src := `
y = [x for x in range(3)]
`
	idx := resolveSrc(t, src)
	occs := occOf(idx, "x")

	type shape struct {
		IsDef bool
	}
	got := make([]shape, len(occs))
	for i, occ := range occs {
		got[i] = shape{IsDef: occ.IsDef}
	}
	want := []shape{
		{IsDef: true},  // "for x" generator target
		{IsDef: false}, // "x" element read
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("comprehension occurrence order mismatch (-want +got):\n%s", diff)
	}
}

func TestScopeDisjointness(t *testing.T) {
	src := `
def a():
	v = 1
	return v

def b():
	v = 2
	return v
`
	idx := resolveSrc(t, src)
	occs := occOf(idx, "v")
	require.Len(t, occs, 4)
	assert.NotEqual(t, occs[0].Key, occs[2].Key, "distinct function scopes must never share a binding key")
}
