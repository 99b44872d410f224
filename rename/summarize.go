package rename

import (
	"strings"

	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/parser"
	"github.com/mna/pyrename/lang/token"
)

// FunctionSummary describes one function or method definition.
type FunctionSummary struct {
	Name      string
	Line      int
	Async     bool
	Docstring string
}

// ClassSummary describes one class definition.
type ClassSummary struct {
	Name      string
	Line      int
	Docstring string
}

// AssignmentSummary describes one assignment statement's targets.
type AssignmentSummary struct {
	Targets []string
	Line    int
}

// ImportSummary describes one import statement.
type ImportSummary struct {
	Module string // empty for a plain "import ..." statement
	Names  []string
	Line   int
}

// Summary is a read-only structural listing over a parsed module: every
// function, class, top-level-style assignment and import it contains, with
// source positions and (when present) docstrings. It performs no renaming
// and has no effect on any core invariant — a companion read path over the
// same tree the indexer builds, the same way BindingInfo and SafetyCheck
// are read paths over the index.
type Summary struct {
	Functions   []FunctionSummary
	Classes     []ClassSummary
	Assignments []AssignmentSummary
	Imports     []ImportSummary
}

// Summarize parses source and walks its tree collecting a Summary. It
// never mutates the tree and never renames anything.
func Summarize(source string) (Summary, error) {
	fset := token.NewFileSet()
	mod, err := parser.ParseSource(fset, "<source>", []byte(source))
	if err != nil {
		return Summary{}, err
	}
	file := fset.File(mod.Start)

	var sum Summary
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		switch nd := n.(type) {
		case *ast.FunctionDef:
			sum.Functions = append(sum.Functions, FunctionSummary{
				Name:      nd.Name,
				Line:      file.Position(nd.NamePos).Line,
				Async:     nd.Async,
				Docstring: docstring(nd.Body),
			})
		case *ast.ClassDef:
			sum.Classes = append(sum.Classes, ClassSummary{
				Name:      nd.Name,
				Line:      file.Position(nd.NamePos).Line,
				Docstring: docstring(nd.Body),
			})
		case *ast.Assign:
			var targets []string
			for _, t := range nd.Targets {
				targets = append(targets, targetNames(t)...)
			}
			start, _ := nd.Span()
			sum.Assignments = append(sum.Assignments, AssignmentSummary{
				Targets: targets,
				Line:    file.Position(start).Line,
			})
		case *ast.Import:
			var names []string
			for _, a := range nd.Names {
				names = append(names, a.BoundName())
			}
			sum.Imports = append(sum.Imports, ImportSummary{
				Names: names,
				Line:  file.Position(nd.Start).Line,
			})
		case *ast.ImportFrom:
			var names []string
			for _, a := range nd.Names {
				names = append(names, a.BoundName())
			}
			sum.Imports = append(sum.Imports, ImportSummary{
				Module: nd.Module,
				Names:  names,
				Line:   file.Position(nd.Start).Line,
			})
		}
		return v
	}
	ast.Walk(v, mod)
	return sum, nil
}

func targetNames(e ast.Expr) []string {
	switch t := e.(type) {
	case *ast.Name:
		return []string{t.Id}
	case *ast.Tuple:
		var names []string
		for _, el := range t.Elts {
			names = append(names, targetNames(el)...)
		}
		return names
	case *ast.List:
		var names []string
		for _, el := range t.Elts {
			names = append(names, targetNames(el)...)
		}
		return names
	case *ast.Attribute:
		return nil // attribute targets bind no local name
	}
	return nil
}

// docstring returns the cleaned text of body's leading bare string-literal
// statement, if any, matching CPython's own notion of a docstring.
func docstring(body *ast.Block) string {
	if body == nil || len(body.Stmts) == 0 {
		return ""
	}
	es, ok := body.Stmts[0].(*ast.ExprStmt)
	if !ok {
		return ""
	}
	c, ok := es.Value.(*ast.Constant)
	if !ok {
		return ""
	}
	return cleanStringLiteral(c.Raw)
}

// cleanStringLiteral strips a Python string literal's prefix letters and
// surrounding quotes, leaving its raw body text (still containing any
// escape sequences verbatim — good enough for a diagnostic summary).
func cleanStringLiteral(raw string) string {
	s := raw
	i := 0
	for i < len(s) && s[i] != '"' && s[i] != '\'' {
		i++
	}
	if i >= len(s) {
		return raw
	}
	s = s[i:]
	for _, q := range []string{`"""`, `'''`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return strings.TrimSpace(s[len(q) : len(s)-len(q)])
		}
	}
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
