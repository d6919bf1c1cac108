package ast

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-pastac/internal/token"
)

// Num is a numeric literal; Value carries the literal text exactly as
// scanned so the generator can reproduce it without reformatting. Whether
// it is an integer or a real follows from the syntactic form alone.
type Num struct {
	typed
	Value string
	Token token.Token
}

func (*Num) exprNode()             {}
func (n *Num) Pos() token.Position { return n.Token.Pos }
func (n *Num) String() string      { return n.Value }

// IsReal reports whether the literal text contains a decimal point.
func (n *Num) IsReal() bool { return strings.Contains(n.Value, ".") }

// AsFloat parses the literal as a float64, valid for both integer and real
// literal text.
func (n *Num) AsFloat() float64 {
	f, _ := strconv.ParseFloat(n.Value, 64)
	return f
}

// Str is a string literal; Value is the parsed text without quotes.
type Str struct {
	typed
	Value string
	Token token.Token
}

func (*Str) exprNode()             {}
func (s *Str) Pos() token.Position { return s.Token.Pos }
func (s *Str) String() string      { return strconv.Quote(s.Value) }

// Bool is a boolean literal (`true` or `false`).
type Bool struct {
	typed
	Value bool
	Token token.Token
}

func (*Bool) exprNode()             {}
func (b *Bool) Pos() token.Position { return b.Token.Pos }
func (b *Bool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Var is an identifier reference in expression (or assignment-target)
// position; it resolves against the symbol table.
type Var struct {
	typed
	Name  string
	Token token.Token
}

func (*Var) exprNode()             {}
func (v *Var) Pos() token.Position { return v.Token.Pos }
func (v *Var) String() string      { return v.Name }

// BinOp is a binary operator application; Left and Right are always
// present.
type BinOp struct {
	typed
	Op    string
	Left  Expr
	Right Expr
	Token token.Token // the operator token
}

func (*BinOp) exprNode()             {}
func (b *BinOp) Pos() token.Position { return b.Token.Pos }
func (b *BinOp) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// UnaryNot is `not operand`, modeled as its own variant rather than a
// BinOp with a nil right child.
type UnaryNot struct {
	typed
	Operand Expr
	Token   token.Token // the NOT token
}

func (*UnaryNot) exprNode()             {}
func (u *UnaryNot) Pos() token.Position { return u.Token.Pos }
func (u *UnaryNot) String() string      { return "not " + u.Operand.String() }

// CallExpr is a function call used in expression position; its value is
// the callee's RETVAL.
type CallExpr struct {
	typed
	Name  *Identifier
	Args  []Expr
	Token token.Token // the function-name token
}

func (*CallExpr) exprNode()             {}
func (c *CallExpr) Pos() token.Position { return c.Token.Pos }
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name.Name + "(" + strings.Join(parts, ", ") + ")"
}
