// Package symtab implements the symbol table: a stack of scope maps with
// case-insensitive keys, scope 0 preloaded with the primitive type names.
// The original-case spelling is kept on each Symbol for diagnostics.
package symtab

import (
	"golang.org/x/text/cases"

	"github.com/cwbudde/go-pastac/internal/types"
)

// foldCaser performs the same Unicode case folding the lexer uses for
// keyword recognition, so a symbol declared as `Count` and referenced as
// `COUNT` resolve to the same entry.
var foldCaser = cases.Fold()

// Kind classifies what a Symbol names.
type Kind int

const (
	KindType Kind = iota
	KindConst
	KindVar
	KindParam
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindConst:
		return "const"
	case KindVar:
		return "var"
	case KindParam:
		return "param"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Param describes one formal parameter of a function symbol.
type Param struct {
	Name string
	Type types.Type
}

// Symbol is an entry in the table: a declared name, its kind, its type (the
// declared type for var/const/param, the result type for function, the
// aliased primitive for type), and — for Kind==KindFunction — its
// parameter list and return type.
type Symbol struct {
	Name         string // original-case spelling, for diagnostics
	DeclaredType types.Type
	Kind         Kind
	ScopeLevel   int
	Params       []Param
	ReturnType   types.Type
}

// Table is a stack of scope maps, each keying on the case-folded spelling
// of a name. Scope 0 is the global scope, preloaded with the primitive
// type names.
type Table struct {
	scopes []map[string]*Symbol
}

// New creates a Table with scope 0 preloaded with integer, real, boolean
// and string as type symbols.
func New() *Table {
	t := &Table{}
	t.Push()
	for name, ty := range map[string]types.Type{
		"integer": types.Integer,
		"real":    types.Real,
		"boolean": types.Boolean,
		"string":  types.String,
	} {
		t.scopes[0][fold(name)] = &Symbol{Name: name, DeclaredType: ty, Kind: KindType, ScopeLevel: 0}
	}
	return t
}

func fold(s string) string { return foldCaser.String(s) }

// Push enters a new, empty scope. Every Push must be paired with a Pop on
// every control path, including early returns taken on a parse error.
func (t *Table) Push() {
	t.scopes = append(t.scopes, make(map[string]*Symbol))
}

// Pop discards the current (innermost) scope.
func (t *Table) Pop() {
	if len(t.scopes) == 0 {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Level returns the current scope depth; 0 is the global scope.
func (t *Table) Level() int {
	return len(t.scopes) - 1
}

// Declare inserts sym into the current scope under its case-folded name.
// It reports false (and does not insert) if the name already exists in the
// current scope. Shadowing an outer scope's name is allowed.
func (t *Table) Declare(sym *Symbol) bool {
	cur := t.scopes[len(t.scopes)-1]
	key := fold(sym.Name)
	if _, exists := cur[key]; exists {
		return false
	}
	sym.ScopeLevel = t.Level()
	cur[key] = sym
	return true
}

// Resolve looks up name starting at the current scope and searching
// outward to the global scope, returning the first match.
func (t *Table) Resolve(name string) (*Symbol, bool) {
	key := fold(name)
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i][key]; ok {
			return sym, true
		}
	}
	return nil, false
}

// DeclaredInCurrentScope reports whether name already names a symbol in
// the innermost scope, without searching outward.
func (t *Table) DeclaredInCurrentScope(name string) bool {
	_, ok := t.scopes[len(t.scopes)-1][fold(name)]
	return ok
}
