package ast

import "github.com/mna/pyrename/lang/token"

func (*FunctionDef) stmtNode()  {}
func (*ClassDef) stmtNode()     {}
func (*Return) stmtNode()       {}
func (*Delete) stmtNode()       {}
func (*Assign) stmtNode()       {}
func (*AugAssign) stmtNode()    {}
func (*AnnAssign) stmtNode()    {}
func (*For) stmtNode()          {}
func (*While) stmtNode()        {}
func (*If) stmtNode()           {}
func (*With) stmtNode()         {}
func (*Raise) stmtNode()        {}
func (*Try) stmtNode()          {}
func (*Assert) stmtNode()       {}
func (*Import) stmtNode()       {}
func (*ImportFrom) stmtNode()   {}
func (*Global) stmtNode()       {}
func (*Nonlocal) stmtNode()     {}
func (*ExprStmt) stmtNode()     {}
func (*Pass) stmtNode()         {}
func (*Break) stmtNode()        {}
func (*Continue) stmtNode()     {}

// Arg is a single formal parameter (positional-only, positional, vararg,
// keyword-only or kwarg).
type Arg struct {
	base
	Name       string
	NamePos    token.Pos
	Annotation Expr
	Default    Expr // nil if no default
}

func (n *Arg) Span() (token.Pos, token.Pos) {
	end := n.NamePos + token.Pos(len(n.Name))
	if n.Default != nil {
		_, e := n.Default.Span()
		end = e
	} else if n.Annotation != nil {
		_, e := n.Annotation.Span()
		end = e
	}
	return n.NamePos, end
}
func (n *Arg) Walk(v Visitor) {
	if n.Annotation != nil {
		Walk(v, n.Annotation)
	}
	if n.Default != nil {
		Walk(v, n.Default)
	}
}

// Arguments is a function or lambda's formal parameter list.
type Arguments struct {
	base
	PosOnlyArgs []*Arg
	Args        []*Arg
	Vararg      *Arg // nil if no *args
	KwOnlyArgs  []*Arg
	Kwarg       *Arg // nil if no **kwargs
}

func (n *Arguments) Span() (token.Pos, token.Pos) {
	var start, end token.Pos
	all := n.All()
	if len(all) > 0 {
		start, _ = all[0].Span()
		_, end = all[len(all)-1].Span()
	}
	return start, end
}
func (n *Arguments) Walk(v Visitor) {
	for _, a := range n.All() {
		Walk(v, a)
	}
}

// All returns every Arg in this parameter list, in declaration order:
// positional-only, positional, vararg, keyword-only, kwarg.
func (n *Arguments) All() []*Arg {
	var all []*Arg
	all = append(all, n.PosOnlyArgs...)
	all = append(all, n.Args...)
	if n.Vararg != nil {
		all = append(all, n.Vararg)
	}
	all = append(all, n.KwOnlyArgs...)
	if n.Kwarg != nil {
		all = append(all, n.Kwarg)
	}
	return all
}

// FunctionDef represents "def name(...): ..." and, with Async set,
// "async def name(...): ...".
type FunctionDef struct {
	base
	Async      bool
	Name       string
	NamePos    token.Pos
	Args       *Arguments
	Returns    Expr // nil if no "-> annotation"
	Decorators []Expr
	Body       *Block
	Start      token.Pos
	End        token.Pos
}

func (n *FunctionDef) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *FunctionDef) Walk(v Visitor) {
	for _, d := range n.Decorators {
		Walk(v, d)
	}
	if n.Args != nil {
		Walk(v, n.Args)
	}
	if n.Returns != nil {
		Walk(v, n.Returns)
	}
	Walk(v, n.Body)
}

// ClassDef represents "class Name(bases): ...".
type ClassDef struct {
	base
	Name       string
	NamePos    token.Pos
	Bases      []Expr
	Keywords   []*Keyword
	Decorators []Expr
	Body       *Block
	Start      token.Pos
	End        token.Pos
}

func (n *ClassDef) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *ClassDef) Walk(v Visitor) {
	for _, d := range n.Decorators {
		Walk(v, d)
	}
	for _, b := range n.Bases {
		Walk(v, b)
	}
	for _, k := range n.Keywords {
		Walk(v, k)
	}
	Walk(v, n.Body)
}

// Return represents "return [value]".
type Return struct {
	base
	Value      Expr // nil if bare return
	Start, End token.Pos
}

func (n *Return) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Return) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}

// Delete represents "del target, ...".
type Delete struct {
	base
	Targets    []Expr
	Start, End token.Pos
}

func (n *Delete) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Delete) Walk(v Visitor) {
	for _, t := range n.Targets {
		Walk(v, t)
	}
}

// Assign represents "t1 = t2 = ... = value".
type Assign struct {
	base
	Targets    []Expr
	Value      Expr
	Start, End token.Pos
}

func (n *Assign) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Assign) Walk(v Visitor) {
	for _, t := range n.Targets {
		Walk(v, t)
	}
	Walk(v, n.Value)
}

// AugAssign represents "target op= value".
type AugAssign struct {
	base
	Target     Expr
	Op         token.Token
	Value      Expr
	Start, End token.Pos
}

func (n *AugAssign) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *AugAssign) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Value)
}

// AnnAssign represents "target: annotation [= value]".
type AnnAssign struct {
	base
	Target     Expr
	Annotation Expr
	Value      Expr // nil if no value
	Start, End token.Pos
}

func (n *AnnAssign) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *AnnAssign) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Annotation)
	if n.Value != nil {
		Walk(v, n.Value)
	}
}

// For represents "for target in iter: body [else: orelse]", and with Async
// set, "async for ...".
type For struct {
	base
	Async      bool
	Target     Expr
	Iter       Expr
	Body       *Block
	Else       *Block // nil if no else clause
	Start, End token.Pos
}

func (n *For) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *For) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Iter)
	Walk(v, n.Body)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

// While represents "while cond: body [else: orelse]".
type While struct {
	base
	Cond       Expr
	Body       *Block
	Else       *Block
	Start, End token.Pos
}

func (n *While) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *While) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

// If represents "if cond: body [else: orelse]". An "elif" is represented as
// a single-statement Else block containing a nested *If, the same shape
// Python's own ast.If gives it.
type If struct {
	base
	Cond       Expr
	Body       *Block
	Else       *Block
	Start, End token.Pos
}

func (n *If) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *If) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

// WithItem is a single "expr [as target]" clause of a with statement.
type WithItem struct {
	base
	ContextExpr  Expr
	OptionalVars Expr // nil if no "as" clause
}

func (n *WithItem) Span() (token.Pos, token.Pos) {
	start, end := n.ContextExpr.Span()
	if n.OptionalVars != nil {
		_, end = n.OptionalVars.Span()
	}
	return start, end
}
func (n *WithItem) Walk(v Visitor) {
	Walk(v, n.ContextExpr)
	if n.OptionalVars != nil {
		Walk(v, n.OptionalVars)
	}
}

// With represents "with item, ...: body", and with Async set,
// "async with ...".
type With struct {
	base
	Async      bool
	Items      []*WithItem
	Body       *Block
	Start, End token.Pos
}

func (n *With) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *With) Walk(v Visitor) {
	for _, it := range n.Items {
		Walk(v, it)
	}
	Walk(v, n.Body)
}

// Raise represents "raise [exc [from cause]]".
type Raise struct {
	base
	Exc        Expr // nil for a bare re-raise
	Cause      Expr // nil if no "from cause"
	Start, End token.Pos
}

func (n *Raise) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Raise) Walk(v Visitor) {
	if n.Exc != nil {
		Walk(v, n.Exc)
	}
	if n.Cause != nil {
		Walk(v, n.Cause)
	}
}

// ExceptHandler represents "except [type [as name]]: body".
type ExceptHandler struct {
	base
	Type       Expr // nil for a bare except
	Name       string
	NamePos    token.Pos
	Body       *Block
	Start, End token.Pos
}

func (n *ExceptHandler) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *ExceptHandler) Walk(v Visitor) {
	if n.Type != nil {
		Walk(v, n.Type)
	}
	Walk(v, n.Body)
}

// Try represents "try: body except ... [else: ...] [finally: ...]".
type Try struct {
	base
	Body       *Block
	Handlers   []*ExceptHandler
	Else       *Block
	Finally    *Block
	Start, End token.Pos
}

func (n *Try) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Try) Walk(v Visitor) {
	Walk(v, n.Body)
	for _, h := range n.Handlers {
		Walk(v, h)
	}
	if n.Else != nil {
		Walk(v, n.Else)
	}
	if n.Finally != nil {
		Walk(v, n.Finally)
	}
}

// Assert represents "assert test [, msg]".
type Assert struct {
	base
	Test       Expr
	Msg        Expr
	Start, End token.Pos
}

func (n *Assert) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Assert) Walk(v Visitor) {
	Walk(v, n.Test)
	if n.Msg != nil {
		Walk(v, n.Msg)
	}
}

// Alias is one "name [as asname]" clause of an import statement.
type Alias struct {
	base
	Name      string // possibly dotted, e.g. "a.b.c"
	AsName    string // empty if no "as"
	NamePos   token.Pos
	AsNamePos token.Pos
}

func (n *Alias) Span() (token.Pos, token.Pos) {
	if n.AsName != "" {
		return n.NamePos, n.AsNamePos + token.Pos(len(n.AsName))
	}
	return n.NamePos, n.NamePos + token.Pos(len(n.Name))
}
func (n *Alias) Walk(Visitor) {}

// BoundName returns the local name this alias introduces, following
// spec.md's precedence: asname if present, else the first dotted component
// of Name, unless Name is "*" (the caller should skip those).
func (n *Alias) BoundName() string {
	if n.AsName != "" {
		return n.AsName
	}
	for i := 0; i < len(n.Name); i++ {
		if n.Name[i] == '.' {
			return n.Name[:i]
		}
	}
	return n.Name
}

// Import represents "import a.b.c [as x], ...".
type Import struct {
	base
	Names      []*Alias
	Start, End token.Pos
}

func (n *Import) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Import) Walk(v Visitor) {
	for _, a := range n.Names {
		Walk(v, a)
	}
}

// ImportFrom represents "from [.]*module import name [as x], ...".
type ImportFrom struct {
	base
	Module     string
	Level      int // number of leading dots for relative imports
	Names      []*Alias
	Start, End token.Pos
}

func (n *ImportFrom) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *ImportFrom) Walk(v Visitor) {
	for _, a := range n.Names {
		Walk(v, a)
	}
}

// Global represents "global name, ...".
type Global struct {
	base
	Names      []string
	NamePos    []token.Pos
	Start, End token.Pos
}

func (n *Global) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Global) Walk(Visitor)                 {}

// Nonlocal represents "nonlocal name, ...".
type Nonlocal struct {
	base
	Names      []string
	NamePos    []token.Pos
	Start, End token.Pos
}

func (n *Nonlocal) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Nonlocal) Walk(Visitor)                 {}

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	base
	Value Expr
}

func (n *ExprStmt) Span() (token.Pos, token.Pos) { return n.Value.Span() }
func (n *ExprStmt) Walk(v Visitor)               { Walk(v, n.Value) }

// Pass, Break and Continue are simple zero-argument statements.
type (
	Pass     struct { base; Start, End token.Pos }
	Break    struct { base; Start, End token.Pos }
	Continue struct { base; Start, End token.Pos }
)

func (n *Pass) Span() (token.Pos, token.Pos)     { return n.Start, n.End }
func (n *Pass) Walk(Visitor)                     {}
func (n *Break) Span() (token.Pos, token.Pos)    { return n.Start, n.End }
func (n *Break) Walk(Visitor)                    {}
func (n *Continue) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Continue) Walk(Visitor)                 {}
