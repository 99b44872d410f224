package ast

import "github.com/mna/pyrename/lang/token"

func (*Name) exprNode()        {}
func (*BinOp) exprNode()       {}
func (*UnaryOp) exprNode()     {}
func (*BoolOp) exprNode()      {}
func (*Compare) exprNode()     {}
func (*Call) exprNode()        {}
func (*Attribute) exprNode()   {}
func (*Subscript) exprNode()   {}
func (*Slice) exprNode()       {}
func (*Lambda) exprNode()      {}
func (*IfExp) exprNode()       {}
func (*NamedExpr) exprNode()   {}
func (*ListComp) exprNode()    {}
func (*SetComp) exprNode()     {}
func (*DictComp) exprNode()    {}
func (*GeneratorExp) exprNode() {}
func (*Tuple) exprNode()       {}
func (*List) exprNode()        {}
func (*Set) exprNode()         {}
func (*Dict) exprNode()        {}
func (*Starred) exprNode()     {}
func (*Constant) exprNode()    {}
func (*FString) exprNode()     {}
func (*Await) exprNode()       {}
func (*Yield) exprNode()       {}
func (*YieldFrom) exprNode()   {}

// Name is an identifier used in an expression context (load, store or del).
// It deliberately carries no binding reference: the resolver records the
// node-to-binding relationship externally, keyed by ID(), so that this
// package never needs to import the resolver.
type Name struct {
	base
	Id    string
	Ctx   ExprContext
	Start token.Pos
}

func (n *Name) Span() (token.Pos, token.Pos) { return n.Start, n.Start + token.Pos(len(n.Id)) }
func (n *Name) Walk(Visitor)                 {}

// BinOp represents "left op right" for arithmetic and bitwise operators.
type BinOp struct {
	base
	Left, Right Expr
	Op          token.Token
}

func (n *BinOp) Span() (token.Pos, token.Pos) {
	start, _ := n.Left.Span()
	_, end := n.Right.Span()
	return start, end
}
func (n *BinOp) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

// UnaryOp represents "op operand", e.g. "-x", "not x", "~x".
type UnaryOp struct {
	base
	Op         token.Token
	OpPos      token.Pos
	Operand    Expr
}

func (n *UnaryOp) Span() (token.Pos, token.Pos) {
	_, end := n.Operand.Span()
	return n.OpPos, end
}
func (n *UnaryOp) Walk(v Visitor) { Walk(v, n.Operand) }

// BoolOp represents "v1 and v2 and ..." or "v1 or v2 or ...".
type BoolOp struct {
	base
	Op     token.Token // AND or OR
	Values []Expr
}

func (n *BoolOp) Span() (token.Pos, token.Pos) {
	start, _ := n.Values[0].Span()
	_, end := n.Values[len(n.Values)-1].Span()
	return start, end
}
func (n *BoolOp) Walk(v Visitor) {
	for _, e := range n.Values {
		Walk(v, e)
	}
}

// Compare represents a chained comparison, e.g. "a < b <= c".
type Compare struct {
	base
	Left        Expr
	Ops         []token.Token
	Comparators []Expr
}

func (n *Compare) Span() (token.Pos, token.Pos) {
	start, _ := n.Left.Span()
	_, end := n.Comparators[len(n.Comparators)-1].Span()
	return start, end
}
func (n *Compare) Walk(v Visitor) {
	Walk(v, n.Left)
	for _, e := range n.Comparators {
		Walk(v, e)
	}
}

// Keyword is a single "name=value" keyword argument, or "**value" when Name
// is empty.
type Keyword struct {
	base
	Name    string
	NamePos token.Pos
	Value   Expr
}

func (n *Keyword) Span() (token.Pos, token.Pos) {
	_, end := n.Value.Span()
	start := n.NamePos
	if n.Name == "" {
		start, _ = n.Value.Span()
	}
	return start, end
}
func (n *Keyword) Walk(v Visitor) { Walk(v, n.Value) }

// Call represents "func(args, kw=val, *star, **dstar)".
type Call struct {
	base
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
	End      token.Pos
}

func (n *Call) Span() (token.Pos, token.Pos) {
	start, _ := n.Func.Span()
	return start, n.End
}
func (n *Call) Walk(v Visitor) {
	Walk(v, n.Func)
	for _, a := range n.Args {
		Walk(v, a)
	}
	for _, k := range n.Keywords {
		Walk(v, k)
	}
}

// Attribute represents "value.attr". The attribute name itself is never a
// rename target (renaming is restricted to bound local/global names), so it
// is stored as a plain string rather than a Name node.
type Attribute struct {
	base
	Value   Expr
	Attr    string
	AttrPos token.Pos
	Ctx     ExprContext
}

func (n *Attribute) Span() (token.Pos, token.Pos) {
	start, _ := n.Value.Span()
	return start, n.AttrPos + token.Pos(len(n.Attr))
}
func (n *Attribute) Walk(v Visitor) { Walk(v, n.Value) }

// Slice represents the "lower:upper:step" inside a Subscript.
type Slice struct {
	base
	Lower, Upper, Step Expr // any may be nil
	Start, End         token.Pos
}

func (n *Slice) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Slice) Walk(v Visitor) {
	if n.Lower != nil {
		Walk(v, n.Lower)
	}
	if n.Upper != nil {
		Walk(v, n.Upper)
	}
	if n.Step != nil {
		Walk(v, n.Step)
	}
}

// Subscript represents "value[index]".
type Subscript struct {
	base
	Value Expr
	Index Expr // may be *Slice or a Tuple of slices/exprs
	Ctx   ExprContext
	End   token.Pos
}

func (n *Subscript) Span() (token.Pos, token.Pos) {
	start, _ := n.Value.Span()
	return start, n.End
}
func (n *Subscript) Walk(v Visitor) {
	Walk(v, n.Value)
	Walk(v, n.Index)
}

// Lambda represents "lambda args: body". It opens its own function scope,
// exactly like FunctionDef but with an implicit single-expression body.
type Lambda struct {
	base
	Args  *Arguments
	Body  Expr
	Start token.Pos
}

func (n *Lambda) Span() (token.Pos, token.Pos) {
	_, end := n.Body.Span()
	return n.Start, end
}
func (n *Lambda) Walk(v Visitor) {
	if n.Args != nil {
		Walk(v, n.Args)
	}
	Walk(v, n.Body)
}

// IfExp represents the conditional expression "body if test else orelse".
// Its Walk visits Test before Body, so unlike other nodes its children are
// not visited in source order.
type IfExp struct {
	base
	Test, Body, Orelse Expr
}

func (n *IfExp) Span() (token.Pos, token.Pos) {
	start, _ := n.Body.Span()
	_, end := n.Orelse.Span()
	return start, end
}
func (n *IfExp) Walk(v Visitor) {
	Walk(v, n.Test)
	Walk(v, n.Body)
	Walk(v, n.Orelse)
}

// NamedExpr represents the walrus assignment expression "target := value".
// It binds target in the nearest enclosing function or module scope, never
// in a comprehension scope it's textually inside, per spec's walrus scoping
// rule.
type NamedExpr struct {
	base
	Target *Name
	Value  Expr
}

func (n *NamedExpr) Span() (token.Pos, token.Pos) {
	start, _ := n.Target.Span()
	_, end := n.Value.Span()
	return start, end
}
func (n *NamedExpr) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Value)
}

// Comprehension is one "for target in iter [if cond]..." clause of a
// comprehension or generator expression.
type Comprehension struct {
	base
	Target Expr
	Iter   Expr
	Ifs    []Expr
	Async  bool
}

func (n *Comprehension) Span() (token.Pos, token.Pos) {
	start, _ := n.Target.Span()
	end := start
	if len(n.Ifs) > 0 {
		_, end = n.Ifs[len(n.Ifs)-1].Span()
	} else {
		_, end = n.Iter.Span()
	}
	return start, end
}
func (n *Comprehension) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Iter)
	for _, c := range n.Ifs {
		Walk(v, c)
	}
}

// ListComp, SetComp, GeneratorExp and DictComp each introduce their own
// comprehension scope, isolated from the enclosing scope except for the
// outermost Generators[0].Iter, which is evaluated in the enclosing scope
// per Python's actual binding semantics.
type ListComp struct {
	base
	Elt        Expr
	Generators []*Comprehension
	Start, End token.Pos
}

func (n *ListComp) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *ListComp) Walk(v Visitor) {
	Walk(v, n.Elt)
	for _, g := range n.Generators {
		Walk(v, g)
	}
}

type SetComp struct {
	base
	Elt        Expr
	Generators []*Comprehension
	Start, End token.Pos
}

func (n *SetComp) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *SetComp) Walk(v Visitor) {
	Walk(v, n.Elt)
	for _, g := range n.Generators {
		Walk(v, g)
	}
}

type GeneratorExp struct {
	base
	Elt        Expr
	Generators []*Comprehension
	Start, End token.Pos
}

func (n *GeneratorExp) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *GeneratorExp) Walk(v Visitor) {
	Walk(v, n.Elt)
	for _, g := range n.Generators {
		Walk(v, g)
	}
}

type DictComp struct {
	base
	Key, Value Expr
	Generators []*Comprehension
	Start, End token.Pos
}

func (n *DictComp) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *DictComp) Walk(v Visitor) {
	Walk(v, n.Key)
	Walk(v, n.Value)
	for _, g := range n.Generators {
		Walk(v, g)
	}
}

// Tuple, List and Set represent literal sequence/set displays. Ctx is Store
// when the expression appears as an assignment target (e.g. "a, b = ...").
type Tuple struct {
	base
	Elts       []Expr
	Ctx        ExprContext
	Start, End token.Pos
}

func (n *Tuple) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Tuple) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}

type List struct {
	base
	Elts       []Expr
	Ctx        ExprContext
	Start, End token.Pos
}

func (n *List) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *List) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}

type Set struct {
	base
	Elts       []Expr
	Start, End token.Pos
}

func (n *Set) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Set) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}

// Dict represents "{k1: v1, **rest, ...}"; a nil Keys[i] marks a "**value"
// unpacking entry.
type Dict struct {
	base
	Keys       []Expr
	Values     []Expr
	Start, End token.Pos
}

func (n *Dict) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Dict) Walk(v Visitor) {
	for i, val := range n.Values {
		if n.Keys[i] != nil {
			Walk(v, n.Keys[i])
		}
		Walk(v, val)
	}
}

// Starred represents "*value" used inside a call, assignment target or
// literal display.
type Starred struct {
	base
	Value Expr
	Ctx   ExprContext
	Star  token.Pos
}

func (n *Starred) Span() (token.Pos, token.Pos) {
	_, end := n.Value.Span()
	return n.Star, end
}
func (n *Starred) Walk(v Visitor) { Walk(v, n.Value) }

// Constant represents a literal: number, string, bytes, True/False/None or
// Ellipsis. Raw holds the original source text so it can be copied verbatim
// by the splice writer.
type Constant struct {
	base
	Raw        string
	Start, End token.Pos
}

func (n *Constant) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Constant) Walk(Visitor)                 {}

// FString represents an f-string literal. Values holds the embedded
// expressions in source order, interleaved with literal text that is not
// otherwise modeled since the splice writer only ever touches Name spans
// inside Values.
type FString struct {
	base
	Values     []Expr
	Start, End token.Pos
}

func (n *FString) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *FString) Walk(v Visitor) {
	for _, e := range n.Values {
		Walk(v, e)
	}
}

// Await represents "await value".
type Await struct {
	base
	Value Expr
	Start token.Pos
}

func (n *Await) Span() (token.Pos, token.Pos) {
	_, end := n.Value.Span()
	return n.Start, end
}
func (n *Await) Walk(v Visitor) { Walk(v, n.Value) }

// Yield represents "yield [value]".
type Yield struct {
	base
	Value      Expr // nil for bare yield
	Start, End token.Pos
}

func (n *Yield) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Yield) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}

// YieldFrom represents "yield from value".
type YieldFrom struct {
	base
	Value Expr
	Start token.Pos
}

func (n *YieldFrom) Span() (token.Pos, token.Pos) {
	_, end := n.Value.Span()
	return n.Start, end
}
func (n *YieldFrom) Walk(v Visitor) { Walk(v, n.Value) }
