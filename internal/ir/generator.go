package ir

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/go-pastac/internal/ast"
)

// Generator lowers a parsed Program into a flat Instruction list with a
// single forward walk, emitting into a growing slice. Temporary and label
// numbering is deterministic for a given input.
type Generator struct {
	instrs   []Instruction
	tempNum  int
	labelNum int
}

// NewGenerator creates a Generator with its temporary and label counters
// at zero, so a fresh run numbers from T1 and L1.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate lowers prog to an ordered instruction list.
func Generate(prog *ast.Program) []Instruction {
	g := NewGenerator()
	return g.Generate(prog)
}

// Generate runs this Generator over prog.
func (g *Generator) Generate(prog *ast.Program) []Instruction {
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok {
			g.lowerFunc(fn)
		}
	}
	g.emit(Instruction{Op: LABEL, A1: "MAIN"})
	g.lowerStmt(prog.Body)
	g.emit(Instruction{Op: HALT})
	return g.instrs
}

func (g *Generator) emit(in Instruction) {
	g.instrs = append(g.instrs, in)
}

func (g *Generator) freshTemp() string {
	g.tempNum++
	return "T" + strconv.Itoa(g.tempNum)
}

func (g *Generator) freshLabel() string {
	g.labelNum++
	return "L" + strconv.Itoa(g.labelNum)
}

// lowerFunc emits a function body: entry label, its statements, and an
// unconditional RETURN naming the function (whose RETVAL was assigned
// inside the body via the parser's return-value convention).
func (g *Generator) lowerFunc(fn *ast.FuncDecl) {
	g.emit(Instruction{Op: LABEL, A1: "FUNC_" + fn.Name.Name})
	g.lowerStmt(fn.Body)
	g.emit(Instruction{Op: RETURN, A1: fn.Name.Name})
}

// lowerStmt lowers a single statement, emitting whatever instructions it
// requires.
func (g *Generator) lowerStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Compound:
		for _, inner := range s.Statements {
			g.lowerStmt(inner)
		}
	case *ast.Assign:
		value := g.lowerExpr(s.Value)
		g.emit(Instruction{Op: ATR, A1: s.Target.Name, A2: value})
	case *ast.Read:
		for _, a := range s.Args {
			addr := g.lowerExpr(a)
			g.emit(Instruction{Op: READ, A1: addr})
		}
	case *ast.Write:
		for _, a := range s.Args {
			addr := g.lowerExpr(a)
			g.emit(Instruction{Op: WRITE, A1: addr})
		}
	case *ast.CallStmt:
		g.lowerCall(s.Name.Name, s.Args)
	case *ast.If:
		g.lowerIf(s)
	case *ast.While:
		g.lowerWhile(s)
	default:
		panic(fmt.Sprintf("ir: unhandled statement type %T", stmt))
	}
}

func (g *Generator) lowerIf(s *ast.If) {
	cond := g.lowerExpr(s.Cond)
	if s.Else == nil {
		lend := g.freshLabel()
		g.emit(Instruction{Op: JZ, A1: lend, A2: cond})
		g.lowerStmt(s.Then)
		g.emit(Instruction{Op: LABEL, A1: lend})
		return
	}
	lelse := g.freshLabel()
	lend := g.freshLabel()
	g.emit(Instruction{Op: JZ, A1: lelse, A2: cond})
	g.lowerStmt(s.Then)
	g.emit(Instruction{Op: JMP, A1: lend})
	g.emit(Instruction{Op: LABEL, A1: lelse})
	g.lowerStmt(s.Else)
	g.emit(Instruction{Op: LABEL, A1: lend})
}

func (g *Generator) lowerWhile(s *ast.While) {
	lstart := g.freshLabel()
	lend := g.freshLabel()
	g.emit(Instruction{Op: LABEL, A1: lstart})
	cond := g.lowerExpr(s.Cond)
	g.emit(Instruction{Op: JZ, A1: lend, A2: cond})
	g.lowerStmt(s.Body)
	g.emit(Instruction{Op: JMP, A1: lstart})
	g.emit(Instruction{Op: LABEL, A1: lend})
}

// lowerCall emits the PARAM/CALL sequence shared by call statements (which
// discard RETVAL) and call expressions (which copy it). The analyzer has
// canonicalized name to the declared spelling, so the label built here
// always matches the entry label lowerFunc emitted.
func (g *Generator) lowerCall(name string, args []ast.Expr) string {
	for _, a := range args {
		addr := g.lowerExpr(a)
		g.emit(Instruction{Op: PARAM, A1: addr})
	}
	label := "FUNC_" + name
	g.emit(Instruction{Op: CALL, A1: label, A2: strconv.Itoa(len(args))})
	return label
}

// lowerExpr lowers expr, emitting whatever instructions are needed, and
// returns the textual address its value now lives at.
func (g *Generator) lowerExpr(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Num:
		return e.Value
	case *ast.Str:
		return `"` + e.Value + `"`
	case *ast.Bool:
		if e.Value {
			return "true"
		}
		return "false"
	case *ast.Var:
		return e.Name
	case *ast.BinOp:
		left := g.lowerExpr(e.Left)
		right := g.lowerExpr(e.Right)
		op, ok := BinaryOp(e.Op)
		if !ok {
			panic(fmt.Sprintf("ir: unknown binary operator %q", e.Op))
		}
		t := g.freshTemp()
		g.emit(Instruction{Op: op, A1: t, A2: left, A3: right})
		return t
	case *ast.UnaryNot:
		x := g.lowerExpr(e.Operand)
		t := g.freshTemp()
		g.emit(Instruction{Op: NOT, A1: t, A2: x})
		return t
	case *ast.CallExpr:
		g.lowerCall(e.Name.Name, e.Args)
		t := g.freshTemp()
		g.emit(Instruction{Op: ATR, A1: t, A2: "RETVAL"})
		return t
	default:
		panic(fmt.Sprintf("ir: unhandled expression type %T", expr))
	}
}
