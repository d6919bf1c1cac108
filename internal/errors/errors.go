// Package errors defines the three disjoint diagnostic kinds produced by
// the compiler pipeline: lexical, syntactic and semantic.
package errors

import "fmt"

// Kind distinguishes the stage of the pipeline that raised a diagnostic.
type Kind int

const (
	// Lexical errors are raised by the scanner and are fail-fast: the first
	// offending character stops the token stream.
	Lexical Kind = iota
	// Syntax errors are raised by the parser when the token stream does not
	// match the grammar.
	Syntax
	// Semantic errors are raised by the analyzer interleaved with parsing
	// and are batched rather than fail-fast.
	Semantic
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Syntax:
		return "syntax error"
	case Semantic:
		return "semantic error"
	default:
		return "error"
	}
}

// Location is a 1-based source position, independent of the token package so
// this package has no import cycle with it.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Diagnostic is a single error report carrying the stage that raised it, a
// human-readable message and the source location it refers to.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     Location
}

func New(kind Kind, pos Location, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Error renders the diagnostic in its kind's reporting shape. Lexical and
// semantic findings carry their source location; a syntax error is the
// expected-vs-found line alone.
func (d *Diagnostic) Error() string {
	if d.Kind == Syntax {
		return d.Message
	}
	return fmt.Sprintf("%s at line %d, column %d", d.Message, d.Pos.Line, d.Pos.Column)
}

// List accumulates diagnostics, used by the parser to batch semantic
// errors rather than stopping at the first one.
type List struct {
	items []*Diagnostic
}

func (l *List) Add(d *Diagnostic) {
	l.items = append(l.items, d)
}

func (l *List) Addf(kind Kind, pos Location, format string, args ...any) {
	l.Add(New(kind, pos, format, args...))
}

func (l *List) Items() []*Diagnostic {
	return l.items
}

func (l *List) Len() int {
	return len(l.items)
}

func (l *List) HasErrors() bool {
	return len(l.items) > 0
}
