package rename_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/pyrename/rename"
)

func TestRenameLocalOnlyLeavesGlobalUntouched(t *testing.T) {
	src := "x = 1\n\ndef f():\n\tx = 2\n\treturn x\n"
	out, diags, err := rename.Rename(src, "x", "y", rename.Rules{ScopeFilter: rename.FilterLocal})
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n\ndef f():\n\ty = 2\n\treturn y\n", out)
	for _, d := range diags {
		assert.NotEqual(t, rename.DiagSelectionEmpty, d.Kind)
	}
}

func TestRenameRoundTripIdentityWhenTargetAbsent(t *testing.T) {
	src := "a = 1\nb = 2\nprint(a + b)\n"
	out, diags, err := rename.Rename(src, "nonexistent", "whatever", rename.Rules{})
	require.NoError(t, err)
	assert.Equal(t, src, out)

	var foundEmpty bool
	for _, d := range diags {
		if d.Kind == rename.DiagSelectionEmpty {
			foundEmpty = true
		}
	}
	assert.True(t, foundEmpty)
}

func TestRenameTwiceOnSameTargetIsIdempotent(t *testing.T) {
	src := "x = 1\nprint(x)\n"
	out1, _, err := rename.Rename(src, "x", "y", rename.Rules{})
	require.NoError(t, err)
	assert.Equal(t, "y = 1\nprint(y)\n", out1)

	// the old target name no longer exists in the rewritten source, so
	// renaming it again is a safe no-op that returns the input unchanged.
	out2, diags, err := rename.Rename(out1, "x", "y", rename.Rules{})
	require.NoError(t, err)
	assert.Equal(t, out1, out2)

	var foundEmpty bool
	for _, d := range diags {
		if d.Kind == rename.DiagSelectionEmpty {
			foundEmpty = true
		}
	}
	assert.True(t, foundEmpty)
}

func TestRenamePropagatesParseError(t *testing.T) {
	_, _, err := rename.Rename("def f(:\n", "f", "g", rename.Rules{})
	assert.Error(t, err)
}

func TestBindingInfoCountsDefsAndUses(t *testing.T) {
	src := "x = 1\nx = 2\nprint(x)\nprint(x)\n"
	result, err := rename.BindingInfo(src, "x")
	require.NoError(t, err)
	require.Len(t, result.Bindings, 1)
	assert.Equal(t, 2, result.Bindings[0].Defs)
	assert.Equal(t, 2, result.Bindings[0].Uses)
}

func TestSafetyCheckFlagsKeywordAndBuiltin(t *testing.T) {
	src := "x = 1\n"
	okKeyword, issues, err := rename.SafetyCheck(src, "x", "class", rename.Rules{})
	require.NoError(t, err)
	assert.False(t, okKeyword)
	assert.NotEmpty(t, issues)

	okBuiltin, issues, err := rename.SafetyCheck(src, "x", "len", rename.Rules{})
	require.NoError(t, err)
	assert.False(t, okBuiltin)
	assert.NotEmpty(t, issues)
}

func TestSafetyCheckFlagsScopeCollision(t *testing.T) {
	src := "x = 1\ny = 2\n"
	ok, issues, err := rename.SafetyCheck(src, "x", "y", rename.Rules{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotEmpty(t, issues)
}

func TestSafetyCheckCleanRenameReportsOK(t *testing.T) {
	src := "x = 1\n"
	ok, issues, err := rename.SafetyCheck(src, "x", "total", rename.Rules{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, issues)
}

func TestSummarizeListsFunctionsClassesAssignmentsImports(t *testing.T) {
	src := `import os
from collections import OrderedDict

class Greeter:
	"""Greets people."""
	def hello(self):
		"""Say hello."""
		return "hi"

count = 0
`
	sum, err := rename.Summarize(src)
	require.NoError(t, err)

	require.Len(t, sum.Imports, 2)
	require.Len(t, sum.Classes, 1)
	assert.Equal(t, "Greeter", sum.Classes[0].Name)
	assert.Equal(t, "Greets people.", sum.Classes[0].Docstring)

	require.Len(t, sum.Functions, 1)
	assert.Equal(t, "hello", sum.Functions[0].Name)
	assert.Equal(t, "Say hello.", sum.Functions[0].Docstring)

	require.Len(t, sum.Assignments, 1)
	assert.Equal(t, []string{"count"}, sum.Assignments[0].Targets)
}
