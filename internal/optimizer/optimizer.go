// Package optimizer rewrites an IR instruction list by iterating a fixed
// sequence of local dataflow passes (constant folding, constant
// propagation, copy propagation, dead-code elimination, common-subexpression
// elimination) to a bounded fixed point. Passes never mint new temporaries
// or labels, and every observable instruction (READ, WRITE, PARAM, CALL,
// RETURN, HALT) survives in its original relative order.
package optimizer

import (
	"github.com/cwbudde/go-pastac/internal/ir"
)

// Pass names one of the optimizer's rewrite passes, usable as a config key
// to enable or disable it.
type Pass string

const (
	PassConstantFolding     Pass = "constant-folding"
	PassConstantPropagation Pass = "constant-propagation"
	PassCopyPropagation     Pass = "copy-propagation"
	PassDeadCode            Pass = "dead-code"
	PassCommonSubexpression Pass = "common-subexpression"
)

// Passes lists every pass in the order a single iteration runs them.
var Passes = []Pass{
	PassConstantFolding,
	PassConstantPropagation,
	PassCopyPropagation,
	PassDeadCode,
	PassCommonSubexpression,
}

// DefaultMaxIterations bounds the outer fixed-point loop.
const DefaultMaxIterations = 10

// Option toggles optimizer behavior.
type Option func(*config)

type config struct {
	enabled       map[Pass]bool
	maxIterations int
}

func defaultConfig() config {
	return config{
		enabled: map[Pass]bool{
			PassConstantFolding:     true,
			PassConstantPropagation: true,
			PassCopyPropagation:     true,
			PassDeadCode:            true,
			PassCommonSubexpression: true,
		},
		maxIterations: DefaultMaxIterations,
	}
}

func (cfg config) isEnabled(pass Pass) bool {
	if cfg.enabled == nil {
		return true
	}
	enabled, ok := cfg.enabled[pass]
	if !ok {
		return true
	}
	return enabled
}

// WithPass enables or disables a single pass.
func WithPass(pass Pass, enabled bool) Option {
	return func(cfg *config) {
		if cfg.enabled == nil {
			cfg.enabled = make(map[Pass]bool)
		}
		cfg.enabled[pass] = enabled
	}
}

// WithMaxIterations overrides the fixed-point iteration bound. Values
// below 1 are clamped to 1.
func WithMaxIterations(n int) Option {
	return func(cfg *config) {
		if n < 1 {
			n = 1
		}
		cfg.maxIterations = n
	}
}

// Stats reports what a Run did: how many iterations the fixed-point loop
// took, instruction counts before and after, and how many iterations each
// pass changed the list in.
type Stats struct {
	Iterations int
	Before     int
	After      int
	Applied    map[Pass]int
}

type passEntry struct {
	id  Pass
	run func([]ir.Instruction) []ir.Instruction
}

var passTable = []passEntry{
	{PassConstantFolding, foldConstants},
	{PassConstantPropagation, propagateConstants},
	{PassCopyPropagation, propagateCopies},
	{PassDeadCode, eliminateDeadCode},
	{PassCommonSubexpression, eliminateCommonSubexpressions},
}

// Optimize runs the pass sequence over instrs to a fixed point and returns
// the rewritten list. The input slice is not modified.
func Optimize(instrs []ir.Instruction, opts ...Option) []ir.Instruction {
	out, _ := Run(instrs, opts...)
	return out
}

// Run is Optimize plus the Stats of the run.
func Run(instrs []ir.Instruction, opts ...Option) ([]ir.Instruction, Stats) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	cur := make([]ir.Instruction, len(instrs))
	copy(cur, instrs)

	stats := Stats{Before: len(instrs), Applied: make(map[Pass]int)}
	for i := 0; i < cfg.maxIterations; i++ {
		stats.Iterations = i + 1
		prev := cur
		for _, entry := range passTable {
			if !cfg.isEnabled(entry.id) {
				continue
			}
			next := entry.run(cur)
			if !equal(next, cur) {
				stats.Applied[entry.id]++
			}
			cur = next
		}
		// Fixed point is detected by structural equality of the whole
		// list, not by length: a pass can rewrite operands in place
		// without changing the instruction count.
		if equal(cur, prev) {
			break
		}
	}
	stats.After = len(cur)
	return cur, stats
}

func equal(a, b []ir.Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
