package optimizer

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-pastac/internal/ir"
)

// isBoundary reports whether in ends the straight-line region the dataflow
// passes track state over. Labels, jumps and calls are control-flow
// boundaries; READ, WRITE and RETURN are kept opaque too so their operands
// reach the output exactly as the program named them.
func isBoundary(in ir.Instruction) bool {
	switch in.Op {
	case ir.LABEL, ir.JMP, ir.JZ, ir.JNZ, ir.CALL, ir.READ, ir.WRITE, ir.RETURN, ir.HALT:
		return true
	default:
		return false
	}
}

// dest returns the name in writes, or "" if it writes none.
func dest(in ir.Instruction) string {
	switch {
	case in.Op == ir.ATR || in.Op == ir.NOT || in.Op == ir.READ:
		return in.A1
	case in.Op.IsBinary():
		return in.A1
	default:
		return ""
	}
}

// uses returns the operands in reads.
func uses(in ir.Instruction) []string {
	switch {
	case in.Op == ir.ATR || in.Op == ir.NOT:
		return []string{in.A2}
	case in.Op.IsBinary():
		return []string{in.A2, in.A3}
	case in.Op == ir.JZ || in.Op == ir.JNZ:
		return []string{in.A2}
	case in.Op == ir.WRITE || in.Op == ir.PARAM || in.Op == ir.RETURN:
		return []string{in.A1}
	default:
		return nil
	}
}

// rewriteUses applies f to every operand position in reads.
func rewriteUses(in ir.Instruction, f func(string) string) ir.Instruction {
	switch {
	case in.Op == ir.ATR || in.Op == ir.NOT:
		in.A2 = f(in.A2)
	case in.Op.IsBinary():
		in.A2 = f(in.A2)
		in.A3 = f(in.A3)
	case in.Op == ir.JZ || in.Op == ir.JNZ:
		in.A2 = f(in.A2)
	case in.Op == ir.WRITE || in.Op == ir.PARAM || in.Op == ir.RETURN:
		in.A1 = f(in.A1)
	}
	return in
}

// isTemp reports whether name is a generator temporary T<n>.
func isTemp(name string) bool {
	if len(name) < 2 || name[0] != 'T' {
		return false
	}
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isLiteral reports whether operand is a literal address: a numeric
// literal, a quoted string, or a boolean spelling.
func isLiteral(operand string) bool {
	if operand == "" {
		return false
	}
	if operand == "true" || operand == "false" {
		return true
	}
	if strings.HasPrefix(operand, `"`) {
		return true
	}
	_, err := strconv.ParseFloat(operand, 64)
	return err == nil
}

func parseNumeric(operand string) (float64, bool) {
	f, err := strconv.ParseFloat(operand, 64)
	return f, err == nil
}

func parseBool(operand string) (bool, bool) {
	switch operand {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func formatNumeric(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// foldConstants replaces each binary op whose operands are both literals
// with an ATR of the computed result. Division by a literal zero is left
// unfolded.
func foldConstants(instrs []ir.Instruction) []ir.Instruction {
	out := make([]ir.Instruction, 0, len(instrs))
	for _, in := range instrs {
		if !in.Op.IsBinary() {
			out = append(out, in)
			continue
		}
		if folded, ok := foldBinary(in.Op, in.A2, in.A3); ok {
			out = append(out, ir.Instruction{Op: ir.ATR, A1: in.A1, A2: folded})
			continue
		}
		out = append(out, in)
	}
	return out
}

// foldBinary computes op over two literal operands, returning the literal
// result text and whether folding applies.
func foldBinary(op ir.Op, a2, a3 string) (string, bool) {
	if l, lok := parseNumeric(a2); lok {
		r, rok := parseNumeric(a3)
		if !rok {
			return "", false
		}
		switch op {
		case ir.ADD:
			return formatNumeric(l + r), true
		case ir.SUB:
			return formatNumeric(l - r), true
		case ir.MUL:
			return formatNumeric(l * r), true
		case ir.DIV:
			if r == 0 {
				return "", false
			}
			return formatNumeric(l / r), true
		case ir.EQ:
			return formatBool(l == r), true
		case ir.NE:
			return formatBool(l != r), true
		case ir.LT:
			return formatBool(l < r), true
		case ir.GT:
			return formatBool(l > r), true
		case ir.LE:
			return formatBool(l <= r), true
		case ir.GE:
			return formatBool(l >= r), true
		case ir.AND:
			return formatBool(l != 0 && r != 0), true
		case ir.OR:
			return formatBool(l != 0 || r != 0), true
		}
		return "", false
	}

	l, lok := parseBool(a2)
	r, rok := parseBool(a3)
	if !lok || !rok {
		return "", false
	}
	switch op {
	case ir.EQ:
		return formatBool(l == r), true
	case ir.NE:
		return formatBool(l != r), true
	case ir.AND:
		return formatBool(l && r), true
	case ir.OR:
		return formatBool(l || r), true
	}
	return "", false
}

// propagateConstants substitutes operands known to hold a literal. The
// name -> literal map is cleared at every boundary instruction, before
// that instruction is emitted.
func propagateConstants(instrs []ir.Instruction) []ir.Instruction {
	consts := make(map[string]string)
	out := make([]ir.Instruction, 0, len(instrs))
	for _, in := range instrs {
		if isBoundary(in) {
			clear(consts)
			out = append(out, in)
			continue
		}
		in = rewriteUses(in, func(operand string) string {
			if lit, ok := consts[operand]; ok {
				return lit
			}
			return operand
		})
		if d := dest(in); d != "" {
			if in.Op == ir.ATR && isLiteral(in.A2) {
				consts[d] = in.A2
			} else {
				delete(consts, d)
			}
		}
		out = append(out, in)
	}
	return out
}

// propagateCopies substitutes operands known to be a direct copy of
// another name. A write to x drops both x's entry and every entry copying
// from x.
func propagateCopies(instrs []ir.Instruction) []ir.Instruction {
	copies := make(map[string]string)
	out := make([]ir.Instruction, 0, len(instrs))
	for _, in := range instrs {
		if isBoundary(in) {
			clear(copies)
			out = append(out, in)
			continue
		}
		in = rewriteUses(in, func(operand string) string {
			if src, ok := copies[operand]; ok {
				return src
			}
			return operand
		})
		if d := dest(in); d != "" {
			delete(copies, d)
			for k, v := range copies {
				if v == d {
					delete(copies, k)
				}
			}
			if in.Op == ir.ATR && !isLiteral(in.A2) {
				copies[d] = in.A2
			}
		}
		out = append(out, in)
	}
	return out
}

// eliminateDeadCode drops definitions of temporaries whose value no
// instruction consumes. Program identifiers are never dropped: only the
// generator's own T<n> names are known to be invisible outside the IR.
func eliminateDeadCode(instrs []ir.Instruction) []ir.Instruction {
	used := make(map[string]bool)
	for _, in := range instrs {
		for _, u := range uses(in) {
			used[u] = true
		}
	}
	out := make([]ir.Instruction, 0, len(instrs))
	for _, in := range instrs {
		d := dest(in)
		if d != "" && in.Op != ir.READ && isTemp(d) && !used[d] {
			continue
		}
		out = append(out, in)
	}
	return out
}

// exprKey identifies an available expression for CSE.
type exprKey struct {
	op     ir.Op
	a2, a3 string
}

// eliminateCommonSubexpressions replaces the recomputation of an
// expression whose operands are unchanged since its previous computation
// with a copy of the previous result.
func eliminateCommonSubexpressions(instrs []ir.Instruction) []ir.Instruction {
	avail := make(map[exprKey]string)
	repl := make(map[string]string)
	out := make([]ir.Instruction, 0, len(instrs))
	for _, in := range instrs {
		if isBoundary(in) {
			clear(avail)
			clear(repl)
			out = append(out, in)
			continue
		}
		if in.Op.IsBinary() {
			in = rewriteUses(in, func(operand string) string {
				if r, ok := repl[operand]; ok {
					return r
				}
				return operand
			})
			key := exprKey{op: in.Op, a2: in.A2, a3: in.A3}
			d := in.A1
			prev, hit := avail[key]
			invalidate(avail, repl, d)
			if hit && prev != d {
				repl[d] = prev
				in = ir.Instruction{Op: ir.ATR, A1: d, A2: prev}
			} else if key.a2 != d && key.a3 != d {
				avail[key] = d
			}
			out = append(out, in)
			continue
		}
		if d := dest(in); d != "" {
			invalidate(avail, repl, d)
		}
		out = append(out, in)
	}
	return out
}

// invalidate removes every available expression and replacement that
// mentions the just-written name.
func invalidate(avail map[exprKey]string, repl map[string]string, name string) {
	for key, d := range avail {
		if key.a2 == name || key.a3 == name || d == name {
			delete(avail, key)
		}
	}
	delete(repl, name)
	for k, v := range repl {
		if v == name {
			delete(repl, k)
		}
	}
}
