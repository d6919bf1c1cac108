package parser

import (
	"github.com/cwbudde/go-pastac/internal/ast"
	"github.com/cwbudde/go-pastac/internal/token"
	"github.com/cwbudde/go-pastac/internal/types"
)

// parseExpr: expr := rel ( (AND|OR) rel )*
func (p *Parser) parseExpr() (ast.Expr, error) {
	left, err := p.parseRel()
	if err != nil {
		return nil, err
	}
	for p.at(token.AND) || p.at(token.OR) {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		resultType := types.Boolean
		if p.semantics && !types.ResultOfLogical(left.Type(), right.Type()) {
			p.semanticf(opTok.Pos, "operands of %s must be boolean", opTok.Lexeme)
			resultType = types.Unknown
		}
		bin := &ast.BinOp{Op: opKeyword(opTok), Left: left, Right: right, Token: opTok}
		bin.SetType(resultType)
		left = bin
	}
	return left, nil
}

// parseRel: rel := sexpr ( OP_REL sexpr )? -- non-chaining, at most one
// relational comparison per rel.
func (p *Parser) parseRel() (ast.Expr, error) {
	left, err := p.parseSExpr()
	if err != nil {
		return nil, err
	}
	if p.at(token.OP_REL) {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseSExpr()
		if err != nil {
			return nil, err
		}
		resultType := types.Boolean
		if p.semantics && !types.ResultOfRelational(left.Type(), right.Type()) {
			p.semanticf(opTok.Pos, "incompatible operand types for %s", opTok.Lexeme)
			resultType = types.Unknown
		}
		bin := &ast.BinOp{Op: opTok.Lexeme, Left: left, Right: right, Token: opTok}
		bin.SetType(resultType)
		return bin, nil
	}
	return left, nil
}

// parseSExpr: sexpr := term ( ('+'|'-') term )*
func (p *Parser) parseSExpr() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.at(token.OP_MAT) && (p.cur.Lexeme == "+" || p.cur.Lexeme == "-") {
		left, err = p.parseArithmetic(left, p.parseTerm)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parseTerm: term := factor ( ('*'|'/') factor )*
func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.at(token.OP_MAT) && (p.cur.Lexeme == "*" || p.cur.Lexeme == "/") {
		left, err = p.parseArithmetic(left, p.parseFactor)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parseArithmetic consumes the current OP_MAT operator and a right operand
// produced by next, combining it with left into a BinOp.
func (p *Parser) parseArithmetic(left ast.Expr, next func() (ast.Expr, error)) (ast.Expr, error) {
	opTok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := next()
	if err != nil {
		return nil, err
	}
	resultType, ok := types.ResultOfArithmetic(left.Type(), right.Type())
	if p.semantics && !ok {
		p.semanticf(opTok.Pos, "operands of %s must be numeric", opTok.Lexeme)
	}
	bin := &ast.BinOp{Op: opTok.Lexeme, Left: left, Right: right, Token: opTok}
	bin.SetType(resultType)
	return bin, nil
}

// parseFactor: factor := NUM | STR | TRUE | FALSE | ident-or-call
//                       | '(' expr ')' | NOT factor
//
// TRUE and FALSE parse as boolean literals, the only place a boolean
// value can originate syntactically.
func (p *Parser) parseFactor() (ast.Expr, error) {
	switch p.cur.Kind {
	case token.NUM:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		n := &ast.Num{Value: tok.Lexeme, Token: tok}
		if isRealLiteral(tok.Lexeme) {
			n.SetType(types.Real)
		} else {
			n.SetType(types.Integer)
		}
		return n, nil
	case token.STR:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		s := &ast.Str{Value: unquote(tok.Lexeme), Token: tok}
		s.SetType(types.String)
		return s, nil
	case token.TRUE, token.FALSE:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		b := &ast.Bool{Value: tok.Kind == token.TRUE, Token: tok}
		b.SetType(types.Boolean)
		return b, nil
	case token.NOT:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		u := &ast.UnaryNot{Operand: operand, Token: tok}
		if p.semantics && operand.Type() != types.Boolean && operand.Type() != types.Unknown {
			p.semanticf(tok.Pos, "operand of not must be boolean")
			u.SetType(types.Unknown)
		} else {
			u.SetType(types.Boolean)
		}
		return u, nil
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case token.IDENT:
		return p.parseIdentOrCall()
	default:
		return nil, p.syntaxErrorf(token.IDENT)
	}
}

// parseIdentOrCall: ident-or-call := ident ( '(' args? ')' )?
func (p *Parser) parseIdentOrCall() (ast.Expr, error) {
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if p.at(token.LPAREN) {
		if err := p.advance(); err != nil {
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
		retType, name := p.checkCall(nameTok, args)
		call := &ast.CallExpr{Name: &ast.Identifier{Name: name, Token: nameTok}, Args: args, Token: nameTok}
		call.SetType(retType)
		return call, nil
	}

	v := &ast.Var{Name: nameTok.Lexeme, Token: nameTok}
	if p.semantics {
		sym, ok := p.syms.Resolve(nameTok.Lexeme)
		if !ok {
			p.semanticf(nameTok.Pos, "undeclared identifier: %s", nameTok.Lexeme)
			v.SetType(types.Unknown)
		} else {
			v.Name = sym.Name
			v.SetType(sym.DeclaredType)
		}
	}
	return v, nil
}

func opKeyword(tok token.Token) string {
	return foldCaser.String(tok.Lexeme)
}

func isRealLiteral(lexeme string) bool {
	for _, c := range lexeme {
		if c == '.' {
			return true
		}
	}
	return false
}

// unquote strips the surrounding double quotes a scanned STR token carries;
// it does not interpret backslash escapes, which the language passes
// through to the IR's textual literal form unchanged.
func unquote(lexeme string) string {
	if len(lexeme) >= 2 && lexeme[0] == '"' && lexeme[len(lexeme)-1] == '"' {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}
