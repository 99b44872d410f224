// Package ast defines the abstract syntax tree for the Python-like source
// language. Every node records its original byte span so that the rewrite
// engine can splice replacement text directly into the source buffer instead
// of re-serializing the whole tree, which is what keeps unrelated formatting
// byte-for-byte intact.
package ast

import "github.com/mna/pyrename/lang/token"

// Node is implemented by every AST node.
type Node interface {
	// Span reports the node's start and end byte position.
	Span() (start, end token.Pos)

	// Walk visits the node's direct children in source order.
	Walk(v Visitor)

	// ID is a stable identity for this node, assigned once at parse time.
	// The resolver uses it (rather than the node pointer) as the key of its
	// node-to-binding side table, per the arena-of-integer-handles pattern:
	// node identity is never encoded by injecting fields into unrelated
	// node kinds.
	ID() int
}

// base is embedded in every concrete node to supply its ID.
type base struct{ id int }

func (b base) ID() int { return b.id }

// SetID stamps a node with its parse-time identity. The parser calls this
// once, right after constructing each node with a keyed composite literal
// (which otherwise leaves the unexported base field at its zero value).
func (b *base) SetID(id int) { b.id = id }

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// ExprContext indicates whether a Name or other assignable expression is
// being loaded, stored to, or deleted.
type ExprContext uint8

const (
	Load ExprContext = iota
	Store
	Del
)

// Module is the root of a parsed file.
type Module struct {
	base
	Name  string // filename, may be empty
	Body  []Stmt
	Start token.Pos
	End   token.Pos
}

func (n *Module) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Module) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
}

// Block is a sequence of statements sharing one indentation level (the body
// of a compound statement).
type Block struct {
	base
	Stmts []Stmt
	Start token.Pos
	End   token.Pos
}

func (n *Block) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
