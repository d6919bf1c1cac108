// Package parser implements the recursive-descent parser and interleaved
// semantic analyzer: one token of lookahead everywhere, two tokens only to
// disambiguate `IDENT :=` from `IDENT (` at statement start and in factor
// position. The grammar never requires backtracking, so the parser keeps a
// single mutable cursor over the scanner's token stream.
package parser

import (
	"golang.org/x/text/cases"

	"github.com/cwbudde/go-pastac/internal/ast"
	"github.com/cwbudde/go-pastac/internal/errors"
	"github.com/cwbudde/go-pastac/internal/lexer"
	"github.com/cwbudde/go-pastac/internal/symtab"
	"github.com/cwbudde/go-pastac/internal/token"
	"github.com/cwbudde/go-pastac/internal/types"
)

// foldCaser folds identifier spellings for the RETVAL-assignment check,
// which compares a Var target's name against the enclosing function's name
// without going through the symbol table.
var foldCaser = cases.Fold()

// Parser turns a token stream into a Program AST, optionally running
// semantic analysis (declaration tracking, scoping, type inference) as it
// goes.
type Parser struct {
	sc  *lexer.Scanner
	cur token.Token

	semantics bool
	syms      *symtab.Table
	diags     errors.List

	// curFuncName is the name of the function whose body is currently being
	// parsed, or "" at program scope. Used by the return-value check.
	curFuncName string
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithoutSemantics disables semantic analysis, producing a pure syntactic
// parse: declarations are not checked for duplicates, identifiers are not
// resolved, and no type inference runs.
func WithoutSemantics() Option {
	return func(p *Parser) { p.semantics = false }
}

// New creates a Parser over source text, with semantic analysis enabled by
// default.
func New(source string, opts ...Option) *Parser {
	p := &Parser{
		sc:        lexer.New(source),
		semantics: true,
		syms:      symtab.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Diagnostics returns the batched semantic diagnostics collected during the
// most recent Parse call.
func (p *Parser) Diagnostics() []*errors.Diagnostic {
	return p.diags.Items()
}

// Parse runs the parser to completion. A lexical or syntax error (both
// fail-fast) stops parsing and is returned with a nil Program. If parsing
// completes but semantic diagnostics were collected, the Program is
// returned together with an error carrying them.
func (p *Parser) Parse() (*ast.Program, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	if p.semantics && p.diags.HasErrors() {
		return prog, &semanticError{diags: p.diags.Items()}
	}
	return prog, nil
}

// semanticError wraps the batched semantic diagnostic list as a single
// error value.
type semanticError struct {
	diags []*errors.Diagnostic
}

func (e *semanticError) Error() string {
	msg := "semantic errors:"
	for _, d := range e.diags {
		msg += "\n  " + d.Error()
	}
	return msg
}

// Diagnostics exposes the underlying diagnostic list, e.g. for a caller
// that wants to render them one per line instead of via Error().
func (e *semanticError) Diagnostics() []*errors.Diagnostic { return e.diags }

func (p *Parser) advance() error {
	tok, err := p.sc.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) peek(n int) (token.Token, error) {
	return p.sc.Peek(n - 1)
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur.Kind == kind
}

// expect consumes the current token if it matches kind, else returns an
// expected-vs-found syntax error.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if !p.at(kind) {
		return token.Token{}, p.syntaxErrorf(kind)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

// expectEquals consumes an OP_REL token whose lexeme is specifically "=",
// used by type_sec's `ident '=' typeref` production ('=' shares OP_REL with
// the other relational operators in the scanner's token kind set).
func (p *Parser) expectEquals() error {
	if !p.at(token.OP_REL) || p.cur.Lexeme != "=" {
		return p.syntaxErrorf(token.OP_REL)
	}
	return p.advance()
}

func (p *Parser) syntaxErrorf(want token.Kind) error {
	return errors.New(errors.Syntax, errors.Location{Line: p.cur.Pos.Line, Column: p.cur.Pos.Column},
		"Expected %s, found %s (%s)", want, p.cur.Kind, p.cur.Lexeme)
}

func (p *Parser) semanticf(pos token.Position, format string, args ...any) {
	if !p.semantics {
		return
	}
	p.diags.Addf(errors.Semantic, errors.Location{Line: pos.Line, Column: pos.Column}, format, args...)
}

// parseProgram: program := PROGRAM ident ';' decls block '.'
func (p *Parser) parseProgram() (*ast.Program, error) {
	progTok, err := p.expect(token.PROGRAM)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	p.syms.Push() // program-level scope

	decls, err := p.parseDecls()
	if err != nil {
		p.syms.Pop()
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		p.syms.Pop()
		return nil, err
	}
	if _, err := p.expect(token.DOT); err != nil {
		p.syms.Pop()
		return nil, err
	}

	p.syms.Pop()

	return &ast.Program{
		Name:  &ast.Identifier{Name: nameTok.Lexeme, Token: nameTok},
		Decls: decls,
		Body:  body,
		Token: progTok,
	}, nil
}

// parseDecls: decls := ( const_sec | type_sec | var_sec | func_sec )*
func (p *Parser) parseDecls() ([]ast.Decl, error) {
	var decls []ast.Decl
	for {
		switch p.cur.Kind {
		case token.CONST:
			ds, err := p.parseConstSec()
			if err != nil {
				return nil, err
			}
			decls = append(decls, ds...)
		case token.TYPE:
			ds, err := p.parseTypeSec()
			if err != nil {
				return nil, err
			}
			decls = append(decls, ds...)
		case token.VAR:
			ds, err := p.parseVarSec()
			if err != nil {
				return nil, err
			}
			decls = append(decls, ds...)
		case token.FUNCTION:
			d, err := p.parseFuncSec()
			if err != nil {
				return nil, err
			}
			decls = append(decls, d)
		default:
			return decls, nil
		}
	}
}

// resolveTypeRef resolves typeName to a primitive or previously declared
// type symbol, recording a diagnostic and returning types.Unknown if it
// doesn't resolve to a type.
func (p *Parser) resolveTypeRef(nameTok token.Token) types.Type {
	sym, ok := p.syms.Resolve(nameTok.Lexeme)
	if !ok {
		p.semanticf(nameTok.Pos, "undeclared identifier: %s", nameTok.Lexeme)
		return types.Unknown
	}
	if sym.Kind != symtab.KindType {
		p.semanticf(nameTok.Pos, "not a type: %s", nameTok.Lexeme)
		return types.Unknown
	}
	return sym.DeclaredType
}
