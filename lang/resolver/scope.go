// Package resolver implements the scope and binding indexer: a full lexical
// pass over a parsed module that resolves every name reference to the
// binding it denotes, following Python's LEGB (Local, Enclosing, Global,
// Builtin) lookup order. The result is an immutable Index consulted by the
// selection and rewrite engines; the indexer itself never mutates the AST.
package resolver

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/token"
)

// ScopeKind distinguishes the five kinds of lexical scope this language
// recognizes.
type ScopeKind uint8

const (
	ModuleScope ScopeKind = iota
	FunctionScope
	ClassScope
	LambdaScope
	ComprehensionScope
)

func (k ScopeKind) String() string {
	switch k {
	case ModuleScope:
		return "module"
	case FunctionScope:
		return "function"
	case ClassScope:
		return "class"
	case LambdaScope:
		return "lambda"
	case ComprehensionScope:
		return "comprehension"
	default:
		return "unknown"
	}
}

// BindingKey identifies a binding by the scope that owns it and the name it
// binds, exactly as spec'd: two bindings are the same iff their key is
// equal.
type BindingKey struct {
	ScopeID int
	Name    string
}

func (k BindingKey) String() string { return fmt.Sprintf("%s@%d", k.Name, k.ScopeID) }

// BindingKind records what kind of construct introduced a binding, used by
// the selection engine's scope/kind filters and by diagnostics.
type BindingKind uint8

const (
	BindAssignment BindingKind = iota
	BindParameter
	BindFunctionDef
	BindClassDef
	BindImport
	BindFor
	BindWith
	BindExceptHandler
	BindComprehensionTarget
	BindGlobalDecl
	BindNonlocalDecl
	BindBuiltin
)

// Binding is one name bound within a scope.
type Binding struct {
	Key   BindingKey
	Kind  BindingKind
	Scope *Scope
	// DeclPos is the position of the first node that introduced this
	// binding, used for diagnostics.
	DeclPos token.Pos
}

// Scope is one lexical scope: a module, function, class, lambda or
// comprehension body.
type Scope struct {
	ID     int
	Kind   ScopeKind
	Parent *Scope
	// Node is the AST node that opened this scope (*ast.Module,
	// *ast.FunctionDef, *ast.ClassDef, *ast.Lambda, or one of the
	// comprehension node types).
	Node     ast.Node
	Children []*Scope

	locals *swiss.Map[string, *Binding]
	// globalNames and nonlocalNames record names declared global/nonlocal in
	// this scope; such names have no local Binding here, they resolve to an
	// ancestor scope instead.
	globalNames    map[string]bool
	nonlocalNames  map[string]bool
}

func newScope(id int, kind ScopeKind, parent *Scope, node ast.Node) *Scope {
	return &Scope{
		ID:     id,
		Kind:   kind,
		Parent: parent,
		Node:   node,
		locals: swiss.NewMap[string, *Binding](8),
	}
}

// Lookup returns the binding for name declared directly in this scope, if
// any.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	return s.locals.Get(name)
}

// LocalNames returns the names bound directly in this scope. Order is
// unspecified.
func (s *Scope) LocalNames() []string {
	names := make([]string, 0, s.locals.Count())
	s.locals.Iter(func(k string, _ *Binding) bool {
		names = append(names, k)
		return false
	})
	return names
}

func (s *Scope) bind(name string, kind BindingKind, pos token.Pos) *Binding {
	if b, ok := s.locals.Get(name); ok {
		return b
	}
	b := &Binding{Key: BindingKey{ScopeID: s.ID, Name: name}, Kind: kind, Scope: s, DeclPos: pos}
	s.locals.Put(name, b)
	return b
}

// enclosingFunctionChain walks parent scopes the way a nonlocal lookup
// must: past class and comprehension scopes (never stopping at, and never
// binding into, a class body's names unless qualified through self/cls),
// and past any function or lambda scope that does not itself bind name,
// stopping only at the nearest function or lambda ancestor that actually
// has a local binding for name. A nonlocal chain several functions deep,
// where intermediate functions only re-declare nonlocal without binding
// the name themselves, resolves all the way up to the function that does.
func (s *Scope) enclosingFunctionChain(name string) *Scope {
	p := s.Parent
	for p != nil {
		if p.Kind == FunctionScope || p.Kind == LambdaScope {
			if _, ok := p.Lookup(name); ok {
				return p
			}
		}
		p = p.Parent
	}
	return nil
}

// Occurrence is one place in the source where an identifier spelling
// appears that the rewrite engine may need to splice: a Name reference, a
// function or class definition's own name, a parameter, an import alias, an
// except-handler name, or one name within a global/nonlocal declaration.
// Not every occurrence corresponds 1:1 with an *ast.Name node (def names,
// parameters and global/nonlocal lists carry their identifier as a plain
// string field instead), so Occurrence is the rewrite engine's real unit of
// work rather than NodeToBinding.
type Occurrence struct {
	Pos    token.Pos
	Name   string
	Key    BindingKey
	NodeID int
	// IsDef is true for occurrences that introduce or rebind the binding
	// (assignment targets, def names, parameters, import aliases,
	// except-handler names, walrus targets) and false for occurrences that
	// merely reference it (loads, deletes, global/nonlocal declarations).
	IsDef bool
}

// Index is the immutable result of resolving a module: every scope that
// exists in it, every identifier occurrence and the binding it resolves to,
// and convenience lookups keyed by node identity.
type Index struct {
	Module      *ast.Module
	ModuleScope *Scope
	Scopes      []*Scope

	// Occurrences lists every renameable identifier spelling in the order
	// the resolver visits them, which is not always textual order: an
	// assignment's value is resolved before its targets, and a
	// comprehension's target before its element expression.
	Occurrences []Occurrence

	// NodeToBinding maps the ID() of an *ast.Name (and, where there is
	// exactly one identifier per node, an Arg/FunctionDef/ClassDef/Alias/
	// ExceptHandler) to the binding it resolves to. Keyed by a stable
	// integer node id rather than by node pointer so the side table itself
	// could be swapped for a swiss-table map without constraining node
	// identity to a comparable interface type.
	NodeToBinding map[int]BindingKey
	// NodeToScope maps the ID of every node recorded in NodeToBinding to the
	// ID of the scope in which the indexer resolved it.
	NodeToScope map[int]int
	// Bindings maps every BindingKey that exists in the module to its
	// Binding, including unresolved free variables recorded against the
	// synthetic builtin scope (BuiltinScopeID).
	Bindings map[BindingKey]*Binding

	// GlobalDeclared holds the key of every binding that at least one
	// function scope reaches through a "global" declaration, as opposed to
	// a plain module-level assignment never referenced that way. Used by
	// the selection engine's FilterGlobal to tell apart "the module-level
	// counter a function declares global" from an unrelated same-named
	// module-level binding.
	GlobalDeclared map[BindingKey]bool
	// NonlocalDeclared holds the key of every binding that at least one
	// nested function scope reaches through a "nonlocal" declaration. Used
	// by the selection engine's FilterNonlocal the same way GlobalDeclared
	// is used for FilterGlobal.
	NonlocalDeclared map[BindingKey]bool

	// Diagnostics collects every anomaly recorded during indexing: unresolved
	// names, invalid global/nonlocal declarations. rename.Rename appends its
	// SelectionEmpty diagnostic to a copy of this slice rather than mutating
	// it in place, keeping the index itself immutable once Resolve returns.
	Diagnostics []Diagnostic
}

// DiagnosticKind tags a Diagnostic with the taxonomy category it belongs
// to: every non-parse-layer anomaly the indexer, selector or rewriter
// records instead of raising.
type DiagnosticKind string

const (
	DiagUnresolvedName     DiagnosticKind = "UnresolvedName"
	DiagInvalidDeclaration DiagnosticKind = "InvalidDeclaration"
	DiagSelectionEmpty     DiagnosticKind = "SelectionEmpty"
	DiagCollisionRisk      DiagnosticKind = "CollisionRisk"
)

// Diagnostic is one recorded anomaly: never an error, always data.
type Diagnostic struct {
	Kind    DiagnosticKind
	Pos     token.Pos
	Message string
}

// BuiltinScopeID is the sentinel scope id used for names that resolve to
// neither a local, enclosing, nor module (global) binding: Python builtins,
// or genuinely undefined names. Such names are never candidates for
// renaming.
const BuiltinScopeID = -1

// ScopeByID returns the scope with the given id, or nil.
func (idx *Index) ScopeByID(id int) *Scope {
	for _, s := range idx.Scopes {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// BindingFor returns the binding that node (identified by its ID) resolves
// to, if the indexer recorded one for it.
func (idx *Index) BindingFor(node ast.Node) (*Binding, bool) {
	key, ok := idx.NodeToBinding[node.ID()]
	if !ok {
		return nil, false
	}
	b, ok := idx.Bindings[key]
	return b, ok
}
