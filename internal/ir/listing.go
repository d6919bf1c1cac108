package ir

import (
	"strconv"
	"strings"
)

// Listing renders an instruction list in the textual export format: one
// instruction per line as "<N>. <op> <a1> <a2> <a3>" with tab-separated
// columns, absent operands omitted. Header lines, if any, are emitted
// first as "#"-prefixed comments.
func Listing(instrs []Instruction, headers ...string) string {
	var b strings.Builder
	for _, h := range headers {
		b.WriteString("# ")
		b.WriteString(h)
		b.WriteString("\n")
	}
	for i, in := range instrs {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(".")
		b.WriteString("\t")
		b.WriteString(in.Op.String())
		for _, a := range []string{in.A1, in.A2, in.A3} {
			if a == "" {
				continue
			}
			b.WriteString("\t")
			b.WriteString(a)
		}
		b.WriteString("\n")
	}
	return b.String()
}
