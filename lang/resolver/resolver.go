package resolver

import (
	"github.com/mna/pyrename/lang/ast"
	"github.com/mna/pyrename/lang/token"
)

// Resolve walks mod once and builds the full scope and binding index: every
// scope the module contains, and every identifier occurrence's resolved
// binding, following LEGB (Local, Enclosing, Global, Builtin) lookup order.
func Resolve(mod *ast.Module) *Index {
	b := &builder{
		idx: &Index{
			Module:           mod,
			NodeToBinding:    make(map[int]BindingKey),
			NodeToScope:      make(map[int]int),
			Bindings:         make(map[BindingKey]*Binding),
			GlobalDeclared:   make(map[BindingKey]bool),
			NonlocalDeclared: make(map[BindingKey]bool),
		},
	}
	module := b.newScope(ModuleScope, nil, mod)
	b.idx.ModuleScope = module

	b.collectDecls(mod.Body, module)
	b.ensureDeclaredBindings(module)
	b.resolveStmts(mod.Body, module)

	return b.idx
}

type builder struct {
	idx                *Index
	nextScopeID        int
	reportedUnresolved map[string]bool
}

func (b *builder) diag(kind DiagnosticKind, pos token.Pos, msg string) {
	b.idx.Diagnostics = append(b.idx.Diagnostics, Diagnostic{Kind: kind, Pos: pos, Message: msg})
}

func (b *builder) newScope(kind ScopeKind, parent *Scope, node ast.Node) *Scope {
	b.nextScopeID++
	s := newScope(b.nextScopeID, kind, parent, node)
	b.idx.Scopes = append(b.idx.Scopes, s)
	return s
}

func (b *builder) recordBinding(bind *Binding) {
	if _, ok := b.idx.Bindings[bind.Key]; !ok {
		b.idx.Bindings[bind.Key] = bind
	}
}

func (b *builder) occ(pos token.Pos, name string, key BindingKey, nodeID int, isDef bool) {
	b.idx.Occurrences = append(b.idx.Occurrences, Occurrence{Pos: pos, Name: name, Key: key, NodeID: nodeID, IsDef: isDef})
}

func (b *builder) recordNode(nodeID int, scope *Scope, bind *Binding) {
	b.idx.NodeToBinding[nodeID] = bind.Key
	b.idx.NodeToScope[nodeID] = scope.ID
	b.recordBinding(bind)
}

// builtinBinding returns (creating if necessary) the synthetic binding
// recorded for a name that resolves to neither a local, an enclosing
// function scope, nor the module scope: a Python builtin, or a genuinely
// undefined name. Such bindings are never rename candidates.
func (b *builder) builtinBinding(name string) *Binding {
	key := BindingKey{ScopeID: BuiltinScopeID, Name: name}
	if bind, ok := b.idx.Bindings[key]; ok {
		return bind
	}
	bind := &Binding{Key: key, Kind: BindBuiltin}
	b.idx.Bindings[key] = bind
	return bind
}

// ---- declaration prepass ----
//
// collectDecls populates scope's locals (and declared global/nonlocal name
// sets) by scanning stmts for every binding-introducing construct, without
// descending into nested function, class or lambda bodies (those own their
// bindings once the builder processes them as their own scope). This
// mirrors CPython's own symbol-table prepass: a name used before its
// textual assignment point within the same function still resolves to that
// function's local binding, never to an enclosing or global one.

func (b *builder) collectDecls(stmts []ast.Stmt, scope *Scope) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		switch nd := n.(type) {
		case *ast.FunctionDef:
			scope.bind(nd.Name, BindFunctionDef, nd.NamePos)
			return nil
		case *ast.ClassDef:
			scope.bind(nd.Name, BindClassDef, nd.NamePos)
			return nil
		case *ast.Lambda:
			return nil
		case *ast.Assign:
			for _, t := range nd.Targets {
				b.collectTarget(t, scope, BindAssignment)
			}
		case *ast.AugAssign:
			b.collectTarget(nd.Target, scope, BindAssignment)
		case *ast.AnnAssign:
			b.collectTarget(nd.Target, scope, BindAssignment)
		case *ast.For:
			b.collectTarget(nd.Target, scope, BindFor)
		case *ast.With:
			for _, it := range nd.Items {
				if it.OptionalVars != nil {
					b.collectTarget(it.OptionalVars, scope, BindWith)
				}
			}
		case *ast.ExceptHandler:
			if nd.Name != "" {
				scope.bind(nd.Name, BindExceptHandler, nd.NamePos)
			}
		case *ast.Import:
			for _, a := range nd.Names {
				scope.bind(a.BoundName(), BindImport, a.NamePos)
			}
		case *ast.ImportFrom:
			for _, a := range nd.Names {
				if a.Name == "*" {
					continue
				}
				scope.bind(a.BoundName(), BindImport, a.NamePos)
			}
		case *ast.Global:
			if scope.globalNames == nil {
				scope.globalNames = make(map[string]bool, len(nd.Names))
			}
			for _, name := range nd.Names {
				scope.globalNames[name] = true
			}
		case *ast.Nonlocal:
			if scope.nonlocalNames == nil {
				scope.nonlocalNames = make(map[string]bool, len(nd.Names))
			}
			for _, name := range nd.Names {
				scope.nonlocalNames[name] = true
			}
		case *ast.NamedExpr:
			target := walrusScope(scope)
			if target != nil {
				target.bind(nd.Target.Id, BindAssignment, nd.Target.Start)
			}
		}
		return v
	}
	for _, s := range stmts {
		ast.Walk(v, s)
	}
}

func (b *builder) collectTarget(target ast.Expr, scope *Scope, kind BindingKind) {
	switch t := target.(type) {
	case *ast.Name:
		if scope.globalNames[t.Id] || scope.nonlocalNames[t.Id] {
			// owned by the module or an enclosing function, not by scope.
			return
		}
		scope.bind(t.Id, kind, t.Start)
	case *ast.Tuple:
		for _, e := range t.Elts {
			b.collectTarget(e, scope, kind)
		}
	case *ast.List:
		for _, e := range t.Elts {
			b.collectTarget(e, scope, kind)
		}
	case *ast.Starred:
		b.collectTarget(t.Value, scope, kind)
	}
}

// walrusScope finds the scope a walrus target found within s actually binds
// into: the nearest enclosing scope that is neither a comprehension nor a
// class, per PEP 572.
func walrusScope(s *Scope) *Scope {
	for s != nil && (s.Kind == ComprehensionScope || s.Kind == ClassScope) {
		s = s.Parent
	}
	return s
}

// ensureDeclaredBindings makes sure every name this scope declares global
// actually has a Binding in module scope, synthesizing one if the module
// never otherwise assigns it (e.g. a module-level global never assigned at
// module scope before the function that declares it global runs). A
// nonlocal declaration cannot be synthesized the same way: Python requires
// some enclosing function to already bind the name, so a chain with no
// such ancestor is diagnosed instead, never fabricated in an intermediate
// scope that doesn't own it.
func (b *builder) ensureDeclaredBindings(scope *Scope) {
	for name := range scope.globalNames {
		if scope.nonlocalNames[name] {
			b.diag(DiagInvalidDeclaration, token.NoPos, "name "+name+" is declared both global and nonlocal in the same scope")
		}
		if _, ok := b.idx.ModuleScope.Lookup(name); !ok {
			b.idx.ModuleScope.bind(name, BindGlobalDecl, token.NoPos)
		}
	}
	for name := range scope.nonlocalNames {
		// each declared name walks its own chain: one name's owner may sit
		// several function scopes up while another's is the immediate
		// parent, so the walk cannot be hoisted out of this loop.
		if owner := scope.enclosingFunctionChain(name); owner == nil {
			b.diag(DiagInvalidDeclaration, token.NoPos, "nonlocal "+name+" has no enclosing function scope binding it")
		}
	}
}

// ---- resolution pass ----

// resolveName resolves a name reference found in scope, recording it as an
// occurrence and returning the binding it refers to.
func (b *builder) resolveName(name string, pos token.Pos, nodeID int, scope *Scope, ctx ast.ExprContext) *Binding {
	var bind *Binding
	switch {
	case scope.globalNames[name]:
		bind, _ = b.idx.ModuleScope.Lookup(name)
	case scope.nonlocalNames[name]:
		if owner := scope.enclosingFunctionChain(name); owner != nil {
			bind, _ = owner.Lookup(name)
		}
	default:
		if local, ok := scope.Lookup(name); ok {
			bind = local
		} else if enc, ok := lookupEnclosing(scope, name); ok {
			bind = enc
		}
	}
	if bind == nil {
		bind = b.builtinBinding(name)
		if b.reportedUnresolved == nil {
			b.reportedUnresolved = make(map[string]bool)
		}
		if !b.reportedUnresolved[name] {
			b.reportedUnresolved[name] = true
			b.diag(DiagUnresolvedName, pos, "name "+name+" is not bound by any assignment; treated as builtin or undefined")
		}
	}
	b.recordNode(nodeID, scope, bind)
	b.occ(pos, name, bind.Key, nodeID, ctx == ast.Store)
	return bind
}

// lookupEnclosing walks scope's ancestors looking for name, skipping over
// class scopes entirely: a nested function can never resolve a free
// variable into a directly or transitively enclosing class body's
// namespace, only through self/cls attribute access, which this resolver
// never models as a binding.
func lookupEnclosing(scope *Scope, name string) (*Binding, bool) {
	cur := scope.Parent
	for cur != nil {
		if cur.Kind == ClassScope {
			cur = cur.Parent
			continue
		}
		if b, ok := cur.Lookup(name); ok {
			return b, true
		}
		cur = cur.Parent
	}
	return nil, false
}

func (b *builder) resolveStmts(stmts []ast.Stmt, scope *Scope) {
	for _, s := range stmts {
		b.resolveStmt(s, scope)
	}
}

func (b *builder) resolveStmt(stmt ast.Stmt, scope *Scope) {
	switch nd := stmt.(type) {
	case *ast.FunctionDef:
		b.resolveFunctionDef(nd, scope)
	case *ast.ClassDef:
		b.resolveClassDef(nd, scope)
	case *ast.Return:
		if nd.Value != nil {
			b.resolveExpr(nd.Value, scope)
		}
	case *ast.Delete:
		for _, t := range nd.Targets {
			b.resolveExpr(t, scope)
		}
	case *ast.Assign:
		b.resolveExpr(nd.Value, scope)
		for _, t := range nd.Targets {
			b.resolveExpr(t, scope)
		}
	case *ast.AugAssign:
		b.resolveExpr(nd.Target, scope)
		b.resolveExpr(nd.Value, scope)
	case *ast.AnnAssign:
		b.resolveExpr(nd.Annotation, scope)
		if nd.Value != nil {
			b.resolveExpr(nd.Value, scope)
		}
		b.resolveExpr(nd.Target, scope)
	case *ast.For:
		b.resolveExpr(nd.Iter, scope)
		b.resolveExpr(nd.Target, scope)
		b.resolveStmts(nd.Body.Stmts, scope)
		if nd.Else != nil {
			b.resolveStmts(nd.Else.Stmts, scope)
		}
	case *ast.While:
		b.resolveExpr(nd.Cond, scope)
		b.resolveStmts(nd.Body.Stmts, scope)
		if nd.Else != nil {
			b.resolveStmts(nd.Else.Stmts, scope)
		}
	case *ast.If:
		b.resolveExpr(nd.Cond, scope)
		b.resolveStmts(nd.Body.Stmts, scope)
		if nd.Else != nil {
			b.resolveStmts(nd.Else.Stmts, scope)
		}
	case *ast.With:
		for _, it := range nd.Items {
			b.resolveExpr(it.ContextExpr, scope)
			if it.OptionalVars != nil {
				b.resolveExpr(it.OptionalVars, scope)
			}
		}
		b.resolveStmts(nd.Body.Stmts, scope)
	case *ast.Raise:
		if nd.Exc != nil {
			b.resolveExpr(nd.Exc, scope)
		}
		if nd.Cause != nil {
			b.resolveExpr(nd.Cause, scope)
		}
	case *ast.Try:
		b.resolveStmts(nd.Body.Stmts, scope)
		for _, h := range nd.Handlers {
			if h.Type != nil {
				b.resolveExpr(h.Type, scope)
			}
			if h.Name != "" {
				if bind, ok := scope.Lookup(h.Name); ok {
					b.recordNode(h.ID(), scope, bind)
					b.occ(h.NamePos, h.Name, bind.Key, h.ID(), true)
				}
			}
			b.resolveStmts(h.Body.Stmts, scope)
		}
		if nd.Else != nil {
			b.resolveStmts(nd.Else.Stmts, scope)
		}
		if nd.Finally != nil {
			b.resolveStmts(nd.Finally.Stmts, scope)
		}
	case *ast.Assert:
		b.resolveExpr(nd.Test, scope)
		if nd.Msg != nil {
			b.resolveExpr(nd.Msg, scope)
		}
	case *ast.Import:
		for _, a := range nd.Names {
			if bind, ok := scope.Lookup(a.BoundName()); ok {
				pos := a.NamePos
				if a.AsName != "" {
					pos = a.AsNamePos
				}
				name := a.BoundName()
				b.recordNode(a.ID(), scope, bind)
				b.occ(pos, name, bind.Key, a.ID(), true)
			}
		}
	case *ast.ImportFrom:
		for _, a := range nd.Names {
			if a.Name == "*" {
				continue
			}
			if bind, ok := scope.Lookup(a.BoundName()); ok {
				pos := a.NamePos
				if a.AsName != "" {
					pos = a.AsNamePos
				}
				name := a.BoundName()
				b.recordNode(a.ID(), scope, bind)
				b.occ(pos, name, bind.Key, a.ID(), true)
			}
		}
	case *ast.Global:
		for i, name := range nd.Names {
			if bind, ok := b.idx.ModuleScope.Lookup(name); ok {
				b.occ(nd.NamePos[i], name, bind.Key, nd.ID(), false)
				b.recordBinding(bind)
				b.idx.GlobalDeclared[bind.Key] = true
			}
		}
	case *ast.Nonlocal:
		for i, name := range nd.Names {
			owner := scope.enclosingFunctionChain(name)
			if owner == nil {
				continue
			}
			if bind, ok := owner.Lookup(name); ok {
				b.idx.NonlocalDeclared[bind.Key] = true
				b.occ(nd.NamePos[i], name, bind.Key, nd.ID(), false)
				b.recordBinding(bind)
			}
		}
	case *ast.ExprStmt:
		b.resolveExpr(nd.Value, scope)
		// Pass, Break, Continue carry no names.
	}
}

func (b *builder) resolveFunctionDef(nd *ast.FunctionDef, scope *Scope) {
	for _, d := range nd.Decorators {
		b.resolveExpr(d, scope)
	}
	if bind, ok := scope.Lookup(nd.Name); ok {
		b.recordNode(nd.ID(), scope, bind)
		b.occ(nd.NamePos, nd.Name, bind.Key, nd.ID(), true)
	}

	inner := b.newScope(FunctionScope, scope, nd)
	b.bindArguments(nd.Args, scope, inner)
	if nd.Returns != nil {
		b.resolveExpr(nd.Returns, scope)
	}

	b.collectDecls(nd.Body.Stmts, inner)
	b.ensureDeclaredBindings(inner)
	b.resolveStmts(nd.Body.Stmts, inner)
}

func (b *builder) resolveClassDef(nd *ast.ClassDef, scope *Scope) {
	for _, d := range nd.Decorators {
		b.resolveExpr(d, scope)
	}
	for _, base := range nd.Bases {
		b.resolveExpr(base, scope)
	}
	for _, kw := range nd.Keywords {
		b.resolveExpr(kw.Value, scope)
	}
	if bind, ok := scope.Lookup(nd.Name); ok {
		b.recordNode(nd.ID(), scope, bind)
		b.occ(nd.NamePos, nd.Name, bind.Key, nd.ID(), true)
	}

	inner := b.newScope(ClassScope, scope, nd)
	b.collectDecls(nd.Body.Stmts, inner)
	b.ensureDeclaredBindings(inner)
	b.resolveStmts(nd.Body.Stmts, inner)
}

// bindArguments resolves annotations and defaults in outer (the enclosing
// scope, since Python evaluates them there) and binds every parameter name
// into inner (the function's own scope).
func (b *builder) bindArguments(args *ast.Arguments, outer, inner *Scope) {
	if args == nil {
		return
	}
	for _, a := range args.All() {
		if a.Annotation != nil {
			b.resolveExpr(a.Annotation, outer)
		}
		if a.Default != nil {
			b.resolveExpr(a.Default, outer)
		}
		bind := inner.bind(a.Name, BindParameter, a.NamePos)
		b.recordNode(a.ID(), inner, bind)
		b.occ(a.NamePos, a.Name, bind.Key, a.ID(), true)
	}
}

func (b *builder) resolveExpr(expr ast.Expr, scope *Scope) {
	if expr == nil {
		return
	}
	switch nd := expr.(type) {
	case *ast.Name:
		b.resolveName(nd.Id, nd.Start, nd.ID(), scope, nd.Ctx)
	case *ast.BinOp:
		b.resolveExpr(nd.Left, scope)
		b.resolveExpr(nd.Right, scope)
	case *ast.UnaryOp:
		b.resolveExpr(nd.Operand, scope)
	case *ast.BoolOp:
		for _, v := range nd.Values {
			b.resolveExpr(v, scope)
		}
	case *ast.Compare:
		b.resolveExpr(nd.Left, scope)
		for _, c := range nd.Comparators {
			b.resolveExpr(c, scope)
		}
	case *ast.Call:
		b.resolveExpr(nd.Func, scope)
		for _, a := range nd.Args {
			b.resolveExpr(a, scope)
		}
		for _, kw := range nd.Keywords {
			b.resolveExpr(kw.Value, scope)
		}
	case *ast.Attribute:
		b.resolveExpr(nd.Value, scope)
	case *ast.Subscript:
		b.resolveExpr(nd.Value, scope)
		b.resolveExpr(nd.Index, scope)
	case *ast.Slice:
		b.resolveExpr(nd.Lower, scope)
		b.resolveExpr(nd.Upper, scope)
		b.resolveExpr(nd.Step, scope)
	case *ast.Lambda:
		b.resolveLambda(nd, scope)
	case *ast.IfExp:
		b.resolveExpr(nd.Test, scope)
		b.resolveExpr(nd.Body, scope)
		b.resolveExpr(nd.Orelse, scope)
	case *ast.NamedExpr:
		b.resolveExpr(nd.Value, scope)
		target := walrusScope(scope)
		if target != nil {
			if bind, ok := target.Lookup(nd.Target.Id); ok {
				b.recordNode(nd.Target.ID(), target, bind)
				b.occ(nd.Target.Start, nd.Target.Id, bind.Key, nd.Target.ID(), true)
			}
		}
	case *ast.ListComp:
		b.resolveComprehension(nd.Generators, []ast.Expr{nd.Elt}, scope, nd)
	case *ast.SetComp:
		b.resolveComprehension(nd.Generators, []ast.Expr{nd.Elt}, scope, nd)
	case *ast.GeneratorExp:
		b.resolveComprehension(nd.Generators, []ast.Expr{nd.Elt}, scope, nd)
	case *ast.DictComp:
		b.resolveComprehension(nd.Generators, []ast.Expr{nd.Key, nd.Value}, scope, nd)
	case *ast.Tuple:
		for _, e := range nd.Elts {
			b.resolveExpr(e, scope)
		}
	case *ast.List:
		for _, e := range nd.Elts {
			b.resolveExpr(e, scope)
		}
	case *ast.Set:
		for _, e := range nd.Elts {
			b.resolveExpr(e, scope)
		}
	case *ast.Dict:
		for i, v := range nd.Values {
			if nd.Keys[i] != nil {
				b.resolveExpr(nd.Keys[i], scope)
			}
			b.resolveExpr(v, scope)
		}
	case *ast.Starred:
		b.resolveExpr(nd.Value, scope)
	case *ast.FString:
		for _, v := range nd.Values {
			b.resolveExpr(v, scope)
		}
	case *ast.Await:
		b.resolveExpr(nd.Value, scope)
	case *ast.Yield:
		if nd.Value != nil {
			b.resolveExpr(nd.Value, scope)
		}
	case *ast.YieldFrom:
		b.resolveExpr(nd.Value, scope)
	case *ast.Constant:
		// no names.
	}
}

func (b *builder) resolveLambda(nd *ast.Lambda, scope *Scope) {
	inner := b.newScope(LambdaScope, scope, nd)
	b.bindArguments(nd.Args, scope, inner)
	// a lambda's body is a single expression; any names it assigns only
	// through a nested walrus must still be visible to that same
	// expression, so collect declarations from it as if it were a
	// single-statement block.
	b.collectDecls([]ast.Stmt{&ast.ExprStmt{Value: nd.Body}}, inner)
	b.ensureDeclaredBindings(inner)
	b.resolveExpr(nd.Body, inner)
}

// resolveComprehension resolves a comprehension or generator expression:
// the outermost generator's iterable is evaluated in the enclosing scope,
// everything else (remaining iterables, every if-clause, and the element
// expression(s)) is evaluated inside the comprehension's own new scope.
func (b *builder) resolveComprehension(gens []*ast.Comprehension, elts []ast.Expr, scope *Scope, node ast.Node) {
	if len(gens) == 0 {
		return
	}
	b.resolveExpr(gens[0].Iter, scope)

	inner := b.newScope(ComprehensionScope, scope, node)
	for i, g := range gens {
		b.collectTarget(g.Target, inner, BindComprehensionTarget)
		if i > 0 {
			b.resolveExpr(g.Iter, inner)
		}
		b.resolveExpr(g.Target, inner)
		for _, ifc := range g.Ifs {
			b.resolveExpr(ifc, inner)
		}
	}
	for _, e := range elts {
		b.resolveExpr(e, inner)
	}
}
