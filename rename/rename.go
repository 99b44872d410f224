package rename

import (
	"fmt"

	"github.com/mna/pyrename/lang/parser"
	"github.com/mna/pyrename/lang/resolver"
	"github.com/mna/pyrename/lang/rewrite"
	"github.com/mna/pyrename/lang/selection"
	"github.com/mna/pyrename/lang/token"
)

// Rename parses source, resolves its scopes and bindings, selects every
// binding named target that matches rules, and rewrites those occurrences
// (including global/nonlocal declarations, except-handler names, and
// formal parameters) to replacement. The returned Diagnostics record every
// non-fatal anomaly encountered; error is non-nil only for a parse failure.
func Rename(source, target, replacement string, rules Rules) (string, Diagnostics, error) {
	fset := token.NewFileSet()
	mod, err := parser.ParseSource(fset, "<source>", []byte(source))
	if err != nil {
		return "", nil, err
	}

	idx := resolver.Resolve(mod)
	diags := append(Diagnostics(nil), idx.Diagnostics...)

	selected := selection.Select(idx, target, rules.selectionRules())
	if len(selected) == 0 {
		diags = append(diags, Diagnostic{
			Kind:    DiagSelectionEmpty,
			Message: fmt.Sprintf("no binding named %q matched the given rules; input returned unchanged", target),
		})
		if rules.Debug {
			rules.logger().WithFields(logFields(target, replacement, rules)).
				Warn("selection empty, input unchanged")
		}
		return source, diags, nil
	}

	file := fset.File(mod.Start)
	edits := rewrite.Plan(idx, target, replacement, selected)
	out := rewrite.Splice(file, []byte(source), edits)

	if rules.Debug {
		logger := rules.logger()
		fields := logFields(target, replacement, rules)
		logger.WithFields(fields).WithField("selected", len(selected)).Debug("selection computed")
		for _, e := range edits {
			pos := file.Position(e.Start)
			logger.WithFields(fields).
				WithField("line", pos.Line).
				WithField("column", pos.Column).
				Debug("renamed occurrence")
		}
	}

	return out, diags, nil
}

func logFields(target, replacement string, rules Rules) map[string]interface{} {
	return map[string]interface{}{
		"target":      target,
		"replacement": replacement,
		"scopeFilter": string(rules.ScopeFilter),
	}
}
