package rename

import (
	"fmt"

	"github.com/mna/pyrename/lang/parser"
	"github.com/mna/pyrename/lang/resolver"
	"github.com/mna/pyrename/lang/selection"
	"github.com/mna/pyrename/lang/token"
)

// pythonBuiltins lists the common CPython builtin names that SafetyCheck
// warns about shadowing. Not exhaustive — a static analysis over source
// text cannot know which names a program actually relies on from the
// builtins module — but it covers the names most likely to cause visible
// breakage if silently shadowed.
var pythonBuiltins = map[string]bool{
	"abs": true, "all": true, "any": true, "bool": true, "bytes": true,
	"callable": true, "chr": true, "classmethod": true, "dict": true,
	"dir": true, "enumerate": true, "filter": true, "float": true,
	"format": true, "frozenset": true, "getattr": true, "hasattr": true,
	"hash": true, "id": true, "input": true, "int": true, "isinstance": true,
	"issubclass": true, "iter": true, "len": true, "list": true, "map": true,
	"max": true, "min": true, "next": true, "object": true, "open": true,
	"ord": true, "pow": true, "print": true, "property": true, "range": true,
	"repr": true, "reversed": true, "round": true, "set": true, "slice": true,
	"sorted": true, "staticmethod": true, "str": true, "sum": true,
	"super": true, "tuple": true, "type": true, "vars": true, "zip": true,
	"Exception": true, "None": true, "True": true, "False": true,
}

// SafetyCheck reports whether renaming target to replacement under rules
// looks safe, and a list of advisory issues if not: keyword collisions,
// builtin shadowing, and same-scope name clashes with an existing binding.
// It never refuses to perform the rename; the decision is the caller's.
func SafetyCheck(source, target, replacement string, rules Rules) (bool, []string, error) {
	var issues []string

	if _, isKeyword := token.Keywords[replacement]; isKeyword {
		issues = append(issues, fmt.Sprintf("%q is a reserved keyword", replacement))
	}
	if pythonBuiltins[replacement] {
		issues = append(issues, fmt.Sprintf("%q shadows a builtin name", replacement))
	}

	fset := token.NewFileSet()
	mod, err := parser.ParseSource(fset, "<source>", []byte(source))
	if err != nil {
		return false, issues, err
	}
	idx := resolver.Resolve(mod)
	selected := selection.Select(idx, target, rules.selectionRules())

	for key := range selected {
		scope := idx.ScopeByID(key.ScopeID)
		if scope == nil {
			continue
		}
		if _, exists := scope.Lookup(replacement); exists {
			issues = append(issues, fmt.Sprintf(
				"scope %d (%s) already has a binding named %q; renaming %q to it would collide",
				scope.ID, scope.Kind, replacement, target))
		}
	}

	return len(issues) == 0, issues, nil
}
