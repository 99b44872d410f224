// Package selection implements the selection engine: given a resolved index,
// a target name and a set of rules, it computes the set of BindingKeys the
// rewrite engine is allowed to rename.
package selection

import (
	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/resolver"
)

// ScopeFilter restricts which binding scopes are eligible for selection.
type ScopeFilter string

const (
	FilterUnset    ScopeFilter = ""
	FilterLocal    ScopeFilter = "local"
	FilterClass    ScopeFilter = "class"
	FilterGlobal   ScopeFilter = "global"
	FilterNonlocal ScopeFilter = "nonlocal"
)

// Rules mirrors the renamer's external Rules: a scope filter, an optional
// restriction to named enclosing functions, and an optional anchor binding
// that overrides both when present.
type Rules struct {
	ScopeFilter     ScopeFilter
	TargetFunctions []string
	Anchor          *resolver.BindingKey
}

// Select computes the selected set of BindingKeys: every binding named
// target that survives the scope filter and the target-functions
// containment check, or exactly {*rules.Anchor} when an anchor is given.
func Select(idx *resolver.Index, target string, rules Rules) map[resolver.BindingKey]bool {
	selected := make(map[resolver.BindingKey]bool)
	if rules.Anchor != nil {
		selected[*rules.Anchor] = true
		return selected
	}

	var fnFilter map[string]bool
	if len(rules.TargetFunctions) > 0 {
		fnFilter = make(map[string]bool, len(rules.TargetFunctions))
		for _, f := range rules.TargetFunctions {
			fnFilter[f] = true
		}
	}

	for key, bind := range idx.Bindings {
		if key.Name != target {
			continue
		}
		if bind.Kind == resolver.BindBuiltin {
			// Unresolved/builtin names are never selection candidates: they
			// have no owning scope in the program.
			continue
		}
		scope := bind.Scope
		if scope == nil {
			continue
		}
		if !scopeMatchesFilter(idx, key, scope, rules.ScopeFilter) {
			continue
		}
		if fnFilter != nil && !containedInTargetFunction(scope, fnFilter) {
			continue
		}
		selected[key] = true
	}
	return selected
}

func scopeMatchesFilter(idx *resolver.Index, key resolver.BindingKey, s *resolver.Scope, filter ScopeFilter) bool {
	switch filter {
	case FilterLocal:
		return s.Kind == resolver.FunctionScope || s.Kind == resolver.LambdaScope || s.Kind == resolver.ComprehensionScope
	case FilterClass:
		return s.Kind == resolver.ClassScope
	case FilterGlobal:
		// A same-named module-level binding that no function ever declares
		// global must not be swept in: only the binding(s) actually reached
		// through a "global" declaration qualify.
		return s.Kind == resolver.ModuleScope && idx.GlobalDeclared[key]
	case FilterNonlocal:
		return idx.NonlocalDeclared[key]
	default:
		return true
	}
}

// nearestFunctionLike walks s and its ancestors, returning the first
// Function or Lambda scope found (s itself, if it already is one).
func nearestFunctionLike(s *resolver.Scope) *resolver.Scope {
	for s != nil {
		if s.Kind == resolver.FunctionScope || s.Kind == resolver.LambdaScope {
			return s
		}
		s = s.Parent
	}
	return nil
}

// functionName returns the def name of a Function scope, if any. Lambda
// scopes have no name and can never satisfy a target-functions filter.
func functionName(s *resolver.Scope) (string, bool) {
	if fn, ok := s.Node.(*ast.FunctionDef); ok {
		return fn.Name, true
	}
	return "", false
}

// containedInTargetFunction reports whether s is lexically contained in any
// function-like scope (s itself, or a function it is nested in, including
// through intervening class bodies) whose name is in fnFilter.
func containedInTargetFunction(s *resolver.Scope, fnFilter map[string]bool) bool {
	cur := nearestFunctionLike(s)
	for cur != nil {
		if name, ok := functionName(cur); ok && fnFilter[name] {
			return true
		}
		cur = nearestFunctionLike(cur.Parent)
	}
	return false
}
