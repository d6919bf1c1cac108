package ast

import (
	"strings"

	"github.com/cwbudde/go-pastac/internal/token"
)

// Program is the root node: a program name, its declarations in source
// order, and the main compound statement.
type Program struct {
	Name  *Identifier
	Decls []Decl
	Body  *Compound
	Token token.Token // the PROGRAM token
}

// Decl is any top-level declaration: VarDecl, ConstDecl, TypeDecl, FuncDecl.
type Decl interface {
	Node
	declNode()
}

func (p *Program) Pos() token.Position { return p.Token.Pos }
func (p *Program) String() string {
	var b strings.Builder
	b.WriteString("program ")
	b.WriteString(p.Name.String())
	b.WriteString(";\n")
	for _, d := range p.Decls {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	b.WriteString(p.Body.String())
	b.WriteString(".\n")
	return b.String()
}

// Identifier is a bare name reference used in declaration position (program
// name, parameter name, type name) where no value/type resolution applies.
// Var is used for identifiers in expression position.
type Identifier struct {
	Name  string
	Token token.Token
}

func (i *Identifier) Pos() token.Position { return i.Token.Pos }
func (i *Identifier) String() string      { return i.Name }

// VarDecl declares one or more names sharing a type: `var x, y: integer;`.
type VarDecl struct {
	Names    []*Identifier
	TypeName *Identifier
	Token    token.Token // the VAR token
}

func (*VarDecl) declNode()            {}
func (d *VarDecl) Pos() token.Position { return d.Token.Pos }
func (d *VarDecl) String() string {
	names := make([]string, len(d.Names))
	for i, n := range d.Names {
		names[i] = n.Name
	}
	return "var " + strings.Join(names, ", ") + ": " + d.TypeName.Name + ";"
}

// ConstDecl declares a named constant with an initializer expression:
// `const pi := 3.14;`.
type ConstDecl struct {
	Name  *Identifier
	Value Expr
	Token token.Token // the CONST token
}

func (*ConstDecl) declNode()            {}
func (d *ConstDecl) Pos() token.Position { return d.Token.Pos }
func (d *ConstDecl) String() string {
	return "const " + d.Name.Name + " := " + d.Value.String() + ";"
}

// TypeDecl declares a type alias: `type weight = real;`.
type TypeDecl struct {
	Name       *Identifier
	Definition *Identifier
	Token      token.Token // the TYPE token
}

func (*TypeDecl) declNode()            {}
func (d *TypeDecl) Pos() token.Position { return d.Token.Pos }
func (d *TypeDecl) String() string {
	return "type " + d.Name.Name + " = " + d.Definition.Name + ";"
}

// Param is one name in a FuncDecl parameter list, sharing TypeName with its
// siblings declared in the same `idlist ':' typeref` group.
type Param struct {
	Name     *Identifier
	TypeName *Identifier
}

// FuncDecl declares a function: name, parameters, return type, local
// variables, and body. Functions do not nest.
type FuncDecl struct {
	Name    *Identifier
	Params  []*Param
	RetType *Identifier
	Locals  []*VarDecl
	Body    *Compound
	Token   token.Token // the FUNCTION token
}

func (*FuncDecl) declNode()            {}
func (d *FuncDecl) Pos() token.Position { return d.Token.Pos }
func (d *FuncDecl) String() string {
	var b strings.Builder
	b.WriteString("function ")
	b.WriteString(d.Name.Name)
	b.WriteString("(")
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.Name.Name + ": " + p.TypeName.Name
	}
	b.WriteString(strings.Join(parts, "; "))
	b.WriteString("): ")
	b.WriteString(d.RetType.Name)
	b.WriteString(";\n")
	for _, l := range d.Locals {
		b.WriteString(l.String())
		b.WriteString("\n")
	}
	b.WriteString(d.Body.String())
	b.WriteString(";")
	return b.String()
}
