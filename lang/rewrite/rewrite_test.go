package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/pyrename/lang/parser"
	"github.com/mna/pyrename/lang/resolver"
	"github.com/mna/pyrename/lang/rewrite"
	"github.com/mna/pyrename/lang/selection"
	"github.com/mna/pyrename/lang/token"
)

func parse(t *testing.T, src string) (*token.FileSet, *resolver.Index) {
	t.Helper()
	fset := token.NewFileSet()
	mod, err := parser.ParseSource(fset, "<test>", []byte(src))
	require.NoError(t, err)
	return fset, resolver.Resolve(mod)
}

func TestApplyRenamesOnlySelectedBinding(t *testing.T) {
	src := "x = 1\n\ndef f():\n\tx = 2\n\treturn x\n"
	fset, idx := parse(t, src)
	file := fset.File(idx.Module.Start)

	selected := selection.Select(idx, "x", selection.Rules{ScopeFilter: selection.FilterLocal})
	out := rewrite.Apply(file, []byte(src), idx, "x", "y", selected)

	want := "x = 1\n\ndef f():\n\ty = 2\n\treturn y\n"
	assert.Equal(t, want, out)
}

func TestApplyEmptySelectionReturnsSourceUnchanged(t *testing.T) {
	src := "x = 1\n"
	fset, idx := parse(t, src)
	file := fset.File(idx.Module.Start)

	out := rewrite.Apply(file, []byte(src), idx, "x", "y", map[resolver.BindingKey]bool{})
	assert.Equal(t, src, out)
}

func TestApplyPreservesUnrelatedFormatting(t *testing.T) {
	src := "x   =   1  # comment\nprint(x)\n"
	fset, idx := parse(t, src)
	file := fset.File(idx.Module.Start)

	selected := selection.Select(idx, "x", selection.Rules{})
	out := rewrite.Apply(file, []byte(src), idx, "x", "renamed", selected)

	assert.Equal(t, "renamed   =   1  # comment\nprint(renamed)\n", out)
}

func TestPlanProducesOneEditPerOccurrence(t *testing.T) {
	src := "x = 1\nx = 2\nprint(x)\n"
	_, idx := parse(t, src)
	selected := selection.Select(idx, "x", selection.Rules{})
	edits := rewrite.Plan(idx, "x", "z", selected)
	assert.Len(t, edits, 3)
	for _, e := range edits {
		assert.Equal(t, "z", e.Text)
	}
}
