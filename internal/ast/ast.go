// Package ast defines the abstract syntax tree: a tagged union of
// statement and expression node types, each able to report its source
// position. Expression nodes carry a types.Type annotation slot set by the
// semantic analyzer. Consumers (the IR generator, the analyzer) switch
// exhaustively over the concrete node types.
package ast

import (
	"github.com/cwbudde/go-pastac/internal/token"
	"github.com/cwbudde/go-pastac/internal/types"
)

// Node is the base interface every AST node implements.
type Node interface {
	Pos() token.Position
	String() string
}

// Stmt is any node that performs an action without producing a value.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any node that produces a value of some types.Type.
type Expr interface {
	Node
	exprNode()
	// Type returns the type assigned by the semantic analyzer, or
	// types.Unknown before analysis has run or after a type error.
	Type() types.Type
	SetType(types.Type)
}

// typed is embedded by every expression node to carry its resolved type.
type typed struct {
	typ types.Type
}

func (t *typed) Type() types.Type      { return t.typ }
func (t *typed) SetType(ty types.Type) { t.typ = ty }
