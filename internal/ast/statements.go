package ast

import (
	"strings"

	"github.com/cwbudde/go-pastac/internal/token"
)

// Compound is a `BEGIN ... END` statement list.
type Compound struct {
	Statements []Stmt
	Token      token.Token // the BEGIN token
}

func (*Compound) stmtNode()            {}
func (c *Compound) Pos() token.Position { return c.Token.Pos }
func (c *Compound) String() string {
	var b strings.Builder
	b.WriteString("begin\n")
	for _, s := range c.Statements {
		b.WriteString("  ")
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	b.WriteString("end")
	return b.String()
}

// Assign is `target := value`.
type Assign struct {
	Target *Var
	Value  Expr
	Token  token.Token // the ':=' token
}

func (*Assign) stmtNode()            {}
func (a *Assign) Pos() token.Position { return a.Token.Pos }
func (a *Assign) String() string {
	return a.Target.String() + " := " + a.Value.String()
}

// Read is `read(args...)`.
type Read struct {
	Args  []Expr
	Token token.Token // the READ token
}

func (*Read) stmtNode()            {}
func (r *Read) Pos() token.Position { return r.Token.Pos }
func (r *Read) String() string {
	parts := make([]string, len(r.Args))
	for i, a := range r.Args {
		parts[i] = a.String()
	}
	return "read(" + strings.Join(parts, ", ") + ")"
}

// Write is `write(args...)`.
type Write struct {
	Args  []Expr
	Token token.Token // the WRITE token
}

func (*Write) stmtNode()            {}
func (w *Write) Pos() token.Position { return w.Token.Pos }
func (w *Write) String() string {
	parts := make([]string, len(w.Args))
	for i, a := range w.Args {
		parts[i] = a.String()
	}
	return "write(" + strings.Join(parts, ", ") + ")"
}

// CallStmt is a function call used as a statement: `name(args...)`.
type CallStmt struct {
	Name  *Identifier
	Args  []Expr
	Token token.Token // the function-name token
}

func (*CallStmt) stmtNode()            {}
func (c *CallStmt) Pos() token.Position { return c.Token.Pos }
func (c *CallStmt) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name.Name + "(" + strings.Join(parts, ", ") + ")"
}
