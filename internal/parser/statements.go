package parser

import (
	"github.com/cwbudde/go-pastac/internal/ast"
	"github.com/cwbudde/go-pastac/internal/symtab"
	"github.com/cwbudde/go-pastac/internal/token"
	"github.com/cwbudde/go-pastac/internal/types"
)

// parseBlock: block := BEGIN stmt ( ';' stmt )* END -- trailing ';' tolerated
//
// The separator between statements is accepted if present and simply
// skipped if absent; a missing semicolon is deliberately silent, not a
// warning.
func (p *Parser) parseBlock() (*ast.Compound, error) {
	beginTok, err := p.expect(token.BEGIN)
	if err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.at(token.END) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if p.at(token.SEMI) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(token.END); err != nil {
		return nil, err
	}
	return &ast.Compound{Statements: stmts, Token: beginTok}, nil
}

// parseStmt: stmt := assign | if | while | block | call
func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur.Kind {
	case token.BEGIN:
		blk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return blk, nil
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.READ:
		return p.parseReadOrWrite(true)
	case token.WRITE:
		return p.parseReadOrWrite(false)
	case token.IDENT:
		next, err := p.peek(1)
		if err != nil {
			return nil, err
		}
		switch next.Kind {
		case token.OP_ASSIGN:
			return p.parseAssign()
		case token.LPAREN:
			return p.parseCallStmt()
		default:
			return nil, p.syntaxErrorf(token.OP_ASSIGN)
		}
	default:
		return nil, p.syntaxErrorf(token.BEGIN)
	}
}

// parseAssign: assign := ident ':=' expr
func (p *Parser) parseAssign() (ast.Stmt, error) {
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	assignTok, err := p.expect(token.OP_ASSIGN)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	target := &ast.Var{Name: nameTok.Lexeme, Token: nameTok}
	if p.semantics {
		sym, ok := p.syms.Resolve(nameTok.Lexeme)
		if !ok {
			p.semanticf(nameTok.Pos, "undeclared identifier: %s", nameTok.Lexeme)
		} else {
			if sym.Kind == symtab.KindConst {
				p.semanticf(nameTok.Pos, "assignment to constant: %s", nameTok.Lexeme)
			}
			// Canonicalize to the declared spelling so the IR names each
			// symbol one way; the token keeps the source spelling.
			target.Name = sym.Name
			target.SetType(sym.DeclaredType)
			if !types.AssignableTo(value.Type(), sym.DeclaredType) {
				p.semanticf(nameTok.Pos, "type mismatch: cannot assign %s to %s", value.Type(), sym.DeclaredType)
			}
		}
	}

	return &ast.Assign{Target: target, Value: value, Token: assignTok}, nil
}

// parseIf: if := IF expr THEN stmt ( ELSE stmt )?
func (p *Parser) parseIf() (ast.Stmt, error) {
	ifTok, err := p.expect(token.IF)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.semantics && cond.Type() != types.Boolean && cond.Type() != types.Unknown {
		p.semanticf(ifTok.Pos, "non-boolean condition")
	}
	if _, err := p.expect(token.THEN); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.at(token.ELSE) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseStmt, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Cond: cond, Then: then, Else: elseStmt, Token: ifTok}, nil
}

// parseWhile: while := WHILE expr DO stmt
func (p *Parser) parseWhile() (ast.Stmt, error) {
	whileTok, err := p.expect(token.WHILE)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.semantics && cond.Type() != types.Boolean && cond.Type() != types.Unknown {
		p.semanticf(whileTok.Pos, "non-boolean condition")
	}
	if _, err := p.expect(token.DO); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Token: whileTok}, nil
}

// parseReadOrWrite: call := (READ|WRITE) '(' args? ')'
func (p *Parser) parseReadOrWrite(isRead bool) (ast.Stmt, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if !p.at(token.RPAREN) {
		var err error
		args, err = p.parseArgs()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if isRead {
		return &ast.Read{Args: args, Token: tok}, nil
	}
	return &ast.Write{Args: args, Token: tok}, nil
}

// parseCallStmt: call := ident '(' args? ')' used as a statement.
func (p *Parser) parseCallStmt() (ast.Stmt, error) {
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if !p.at(token.RPAREN) {
		args, err = p.parseArgs()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	_, name := p.checkCall(nameTok, args)
	return &ast.CallStmt{Name: &ast.Identifier{Name: name, Token: nameTok}, Args: args, Token: nameTok}, nil
}

// parseArgs: args := expr ( ',' expr )*
func (p *Parser) parseArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args = append(args, e)
	for p.at(token.COMMA) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	return args, nil
}

// checkCall resolves nameTok as a function symbol and validates arity and
// argument types against its declared parameters.
// Returns the function's return type and its declared-case spelling, so
// the caller's AST node (and the FUNC_<name> label built from it) uses
// the same spelling the declaration's entry label does. On a failed
// resolution it returns types.Unknown and the spelling as written.
func (p *Parser) checkCall(nameTok token.Token, args []ast.Expr) (types.Type, string) {
	if !p.semantics {
		return types.Unknown, nameTok.Lexeme
	}
	sym, ok := p.syms.Resolve(nameTok.Lexeme)
	if !ok {
		p.semanticf(nameTok.Pos, "undeclared identifier: %s", nameTok.Lexeme)
		return types.Unknown, nameTok.Lexeme
	}
	if sym.Kind != symtab.KindFunction {
		p.semanticf(nameTok.Pos, "not a function: %s", nameTok.Lexeme)
		return types.Unknown, nameTok.Lexeme
	}
	if len(args) != len(sym.Params) {
		p.semanticf(nameTok.Pos, "wrong arity: %s expects %d argument(s), got %d", nameTok.Lexeme, len(sym.Params), len(args))
	} else {
		for i, a := range args {
			if !types.AssignableTo(a.Type(), sym.Params[i].Type) {
				p.semanticf(a.Pos(), "type mismatch: argument %d of %s", i+1, nameTok.Lexeme)
			}
		}
	}
	return sym.ReturnType, sym.Name
}
