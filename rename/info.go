package rename

import (
	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/parser"
	"github.com/mna/pyrename/lang/resolver"
	"github.com/mna/pyrename/lang/token"
)

// BindingRecord summarizes one binding named target: which scope owns it,
// and how many definitions/uses of it the index found.
type BindingRecord struct {
	ScopeKind  string
	ScopeName  string
	ScopeID    int
	Uses       int
	Defs       int
	BindingKey resolver.BindingKey
}

// BindingInfoResult is the result of BindingInfo.
type BindingInfoResult struct {
	Bindings  []BindingRecord
	TotalUses int
	TotalDefs int
}

// BindingInfo reports every distinct binding named target in source,
// without renaming anything — a read-only companion to Rename used to
// disambiguate which binding an AnchorBindingKey should name.
func BindingInfo(source, target string) (BindingInfoResult, error) {
	fset := token.NewFileSet()
	mod, err := parser.ParseSource(fset, "<source>", []byte(source))
	if err != nil {
		return BindingInfoResult{}, err
	}
	idx := resolver.Resolve(mod)

	defs := make(map[resolver.BindingKey]int)
	uses := make(map[resolver.BindingKey]int)
	for _, occ := range idx.Occurrences {
		if occ.Name != target {
			continue
		}
		if occ.IsDef {
			defs[occ.Key]++
		} else {
			uses[occ.Key]++
		}
	}

	var result BindingInfoResult
	for key, bind := range idx.Bindings {
		if key.Name != target || bind.Kind == resolver.BindBuiltin {
			continue
		}
		scope := bind.Scope
		rec := BindingRecord{
			ScopeKind:  scope.Kind.String(),
			ScopeName:  scopeName(scope),
			ScopeID:    scope.ID,
			Uses:       uses[key],
			Defs:       defs[key],
			BindingKey: key,
		}
		result.Bindings = append(result.Bindings, rec)
		result.TotalUses += rec.Uses
		result.TotalDefs += rec.Defs
	}
	return result, nil
}

func scopeName(s *resolver.Scope) string {
	switch n := s.Node.(type) {
	case *ast.FunctionDef:
		return n.Name
	case *ast.ClassDef:
		return n.Name
	}
	switch s.Kind {
	case resolver.ModuleScope:
		return "module"
	case resolver.LambdaScope:
		return "<lambda>"
	case resolver.ComprehensionScope:
		return "<comprehension>"
	}
	return ""
}
