package optimizer

import (
	"testing"

	"github.com/cwbudde/go-pastac/internal/ir"
	"github.com/cwbudde/go-pastac/internal/parser"
)

func compile(t *testing.T, src string, opts ...Option) []ir.Instruction {
	t.Helper()
	prog, err := parser.New(src).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return Optimize(ir.Generate(prog), opts...)
}

func countOp(instrs []ir.Instruction, op ir.Op) int {
	n := 0
	for _, in := range instrs {
		if in.Op == op {
			n++
		}
	}
	return n
}

func contains(instrs []ir.Instruction, want ir.Instruction) bool {
	for _, in := range instrs {
		if in == want {
			return true
		}
	}
	return false
}

func TestFoldsConstantAssignment(t *testing.T) {
	instrs := compile(t, `program p; var x: integer;
begin x := 5 + 3; write(x); end.`)

	if n := countOp(instrs, ir.ADD); n != 0 {
		t.Errorf("got %d ADD, want 0:\n%s", n, ir.Listing(instrs))
	}
	want := []ir.Instruction{
		{Op: ir.ATR, A1: "x", A2: "8"},
		{Op: ir.WRITE, A1: "x"},
		{Op: ir.HALT},
	}
	// The three instructions appear in this relative order.
	at := 0
	for _, in := range instrs {
		if at < len(want) && in == want[at] {
			at++
		}
	}
	if at != len(want) {
		t.Errorf("missing expected sequence (matched %d of %d):\n%s", at, len(want), ir.Listing(instrs))
	}
}

func TestEliminatesCommonSubexpression(t *testing.T) {
	instrs := compile(t, `program p; var a,b,c,d: integer;
begin c := a + b; d := a + b; end.`)

	if n := countOp(instrs, ir.ADD); n != 1 {
		t.Errorf("got %d ADD, want 1:\n%s", n, ir.Listing(instrs))
	}
	// Both c and d end up holding the single computed sum.
	var sumTemp string
	for _, in := range instrs {
		if in.Op == ir.ADD {
			sumTemp = in.A1
		}
	}
	if !contains(instrs, ir.Instruction{Op: ir.ATR, A1: "c", A2: sumTemp}) {
		t.Errorf("c not assigned from %s:\n%s", sumTemp, ir.Listing(instrs))
	}
	if !contains(instrs, ir.Instruction{Op: ir.ATR, A1: "d", A2: sumTemp}) {
		t.Errorf("d not assigned from %s:\n%s", sumTemp, ir.Listing(instrs))
	}
}

func TestWhileLoopPreserved(t *testing.T) {
	instrs := compile(t, `program p; var i: integer;
begin i := 0; while (i < 10) do i := i + 1; end.`)

	if n := countOp(instrs, ir.JZ); n != 1 {
		t.Errorf("got %d JZ, want 1", n)
	}
	if n := countOp(instrs, ir.JMP); n != 1 {
		t.Errorf("got %d JMP, want 1", n)
	}
	if n := countOp(instrs, ir.LT); n != 1 {
		t.Errorf("loop condition folded away: got %d LT, want 1:\n%s", n, ir.Listing(instrs))
	}
	if !contains(instrs, ir.Instruction{Op: ir.ATR, A1: "i", A2: "0"}) {
		t.Errorf("initialization lost:\n%s", ir.Listing(instrs))
	}
}

func TestCopyPropagationDropsTempCopy(t *testing.T) {
	instrs := []ir.Instruction{
		{Op: ir.LABEL, A1: "MAIN"},
		{Op: ir.ATR, A1: "T1", A2: "A"},
		{Op: ir.ADD, A1: "T2", A2: "T1", A3: "B"},
		{Op: ir.ATR, A1: "x", A2: "T2"},
		{Op: ir.HALT},
	}
	out := Optimize(instrs)

	if !contains(out, ir.Instruction{Op: ir.ADD, A1: "T2", A2: "A", A3: "B"}) {
		t.Errorf("copy not propagated:\n%s", ir.Listing(out))
	}
	for _, in := range out {
		if in.Op == ir.ATR && in.A1 == "T1" {
			t.Errorf("dead copy ATR T1 A survived:\n%s", ir.Listing(out))
		}
	}
}

func TestDivisionByLiteralZeroNotFolded(t *testing.T) {
	instrs := []ir.Instruction{
		{Op: ir.LABEL, A1: "MAIN"},
		{Op: ir.DIV, A1: "T1", A2: "5", A3: "0"},
		{Op: ir.ATR, A1: "x", A2: "T1"},
		{Op: ir.HALT},
	}
	out := Optimize(instrs)
	if n := countOp(out, ir.DIV); n != 1 {
		t.Errorf("division by zero was folded:\n%s", ir.Listing(out))
	}
}

func TestFoldingProducesIntegerTextForWholeResults(t *testing.T) {
	tests := []struct {
		in   ir.Instruction
		want string
	}{
		{ir.Instruction{Op: ir.MUL, A1: "T1", A2: "2.5", A3: "4"}, "10"},
		{ir.Instruction{Op: ir.DIV, A1: "T1", A2: "5", A3: "2"}, "2.5"},
		{ir.Instruction{Op: ir.SUB, A1: "T1", A2: "3", A3: "8"}, "-5"},
		{ir.Instruction{Op: ir.LT, A1: "T1", A2: "1", A3: "2"}, "true"},
		{ir.Instruction{Op: ir.EQ, A1: "T1", A2: "1", A3: "2"}, "false"},
	}
	for _, tt := range tests {
		out := foldConstants([]ir.Instruction{tt.in})
		want := ir.Instruction{Op: ir.ATR, A1: "T1", A2: tt.want}
		if out[0] != want {
			t.Errorf("%v: got %v, want %v", tt.in, out[0], want)
		}
	}
}

func TestConstantPropagationStopsAtLabels(t *testing.T) {
	instrs := []ir.Instruction{
		{Op: ir.ATR, A1: "x", A2: "1"},
		{Op: ir.LABEL, A1: "L1"},
		{Op: ir.ADD, A1: "T1", A2: "x", A3: "2"},
	}
	out := propagateConstants(instrs)
	if out[2].A2 != "x" {
		t.Errorf("constant propagated across a label: %v", out[2])
	}
}

func TestDeadCodeKeepsProgramVariables(t *testing.T) {
	instrs := []ir.Instruction{
		{Op: ir.LABEL, A1: "MAIN"},
		{Op: ir.ATR, A1: "unused", A2: "1"},
		{Op: ir.ATR, A1: "T9", A2: "1"},
		{Op: ir.HALT},
	}
	out := eliminateDeadCode(instrs)
	if !contains(out, ir.Instruction{Op: ir.ATR, A1: "unused", A2: "1"}) {
		t.Errorf("program variable eliminated:\n%s", ir.Listing(out))
	}
	if contains(out, ir.Instruction{Op: ir.ATR, A1: "T9", A2: "1"}) {
		t.Errorf("dead temporary survived:\n%s", ir.Listing(out))
	}
}

func TestOptimizeIsIdempotent(t *testing.T) {
	srcs := []string{
		`program p; var x: integer; begin x := 5 + 3; write(x); end.`,
		`program p; var a,b,c,d: integer; begin c := a + b; d := a + b; end.`,
		`program p; var i: integer; begin i := 0; while (i < 10) do i := i + 1; end.`,
	}
	for _, src := range srcs {
		once := compile(t, src)
		twice := Optimize(once)
		if !equal(once, twice) {
			t.Errorf("not idempotent for %q:\nonce:\n%s\ntwice:\n%s", src, ir.Listing(once), ir.Listing(twice))
		}
	}
}

func TestObservableOrderPreserved(t *testing.T) {
	src := `program p;
var a, b: integer;
function inc(n: integer): integer;
begin inc := n + 1; end;
begin read(a); b := inc(a); write(b); write(a + 0); end.`

	prog, err := parser.New(src).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	before := ir.Generate(prog)
	after := Optimize(before)

	var beforeOps, afterOps []ir.Op
	for _, in := range before {
		if in.Observable() {
			beforeOps = append(beforeOps, in.Op)
		}
	}
	for _, in := range after {
		if in.Observable() {
			afterOps = append(afterOps, in.Op)
		}
	}
	if len(beforeOps) != len(afterOps) {
		t.Fatalf("observable count changed: %d -> %d\n%s", len(beforeOps), len(afterOps), ir.Listing(after))
	}
	for i := range beforeOps {
		if beforeOps[i] != afterOps[i] {
			t.Errorf("observable %d changed: %s -> %s", i, beforeOps[i], afterOps[i])
		}
	}
}

func TestDisabledPassDoesNotRun(t *testing.T) {
	instrs := compile(t, `program p; var x: integer;
begin x := 5 + 3; write(x); end.`, WithPass(PassConstantFolding, false))

	if n := countOp(instrs, ir.ADD); n != 1 {
		t.Errorf("folding ran while disabled: got %d ADD, want 1:\n%s", n, ir.Listing(instrs))
	}
}

func TestRunReportsStats(t *testing.T) {
	prog, err := parser.New(`program p; var x: integer;
begin x := 5 + 3; write(x); end.`).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	before := ir.Generate(prog)
	after, stats := Run(before)

	if stats.Before != len(before) || stats.After != len(after) {
		t.Errorf("stats counts %d/%d, want %d/%d", stats.Before, stats.After, len(before), len(after))
	}
	if stats.Iterations < 1 || stats.Iterations > DefaultMaxIterations {
		t.Errorf("iterations out of range: %d", stats.Iterations)
	}
	if stats.Applied[PassConstantFolding] == 0 {
		t.Errorf("folding should have changed the list at least once")
	}
}

func TestMaxIterationsClamped(t *testing.T) {
	instrs := []ir.Instruction{{Op: ir.HALT}}
	_, stats := Run(instrs, WithMaxIterations(0))
	if stats.Iterations != 1 {
		t.Errorf("got %d iterations, want 1", stats.Iterations)
	}
}
