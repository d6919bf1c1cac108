package parser

import (
	"github.com/cwbudde/go-pastac/internal/ast"
	"github.com/cwbudde/go-pastac/internal/symtab"
	"github.com/cwbudde/go-pastac/internal/token"
)

// parseConstSec: const_sec := CONST ( ident ':=' expr ';' )+
func (p *Parser) parseConstSec() ([]ast.Decl, error) {
	constTok := p.cur
	if _, err := p.expect(token.CONST); err != nil {
		return nil, err
	}
	var decls []ast.Decl
	for p.at(token.IDENT) {
		nameTok := p.cur
		if _, err := p.expect(token.IDENT); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.OP_ASSIGN); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}

		if p.semantics {
			if !p.syms.Declare(&symtab.Symbol{Name: nameTok.Lexeme, DeclaredType: value.Type(), Kind: symtab.KindConst}) {
				p.semanticf(nameTok.Pos, "redeclaration: %s", nameTok.Lexeme)
			}
		}

		decls = append(decls, &ast.ConstDecl{
			Name:  &ast.Identifier{Name: nameTok.Lexeme, Token: nameTok},
			Value: value,
			Token: constTok,
		})
	}
	return decls, nil
}

// parseTypeSec: type_sec := TYPE ( ident '=' typeref ';' )+
func (p *Parser) parseTypeSec() ([]ast.Decl, error) {
	typeTok := p.cur
	if _, err := p.expect(token.TYPE); err != nil {
		return nil, err
	}
	var decls []ast.Decl
	for p.at(token.IDENT) {
		nameTok := p.cur
		if _, err := p.expect(token.IDENT); err != nil {
			return nil, err
		}
		if err := p.expectEquals(); err != nil {
			return nil, err
		}
		defTok := p.cur
		if err := p.advanceTypeRefToken(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}

		underlying := p.resolveTypeRef(defTok)
		if p.semantics {
			if !p.syms.Declare(&symtab.Symbol{Name: nameTok.Lexeme, DeclaredType: underlying, Kind: symtab.KindType}) {
				p.semanticf(nameTok.Pos, "redeclaration: %s", nameTok.Lexeme)
			}
		}

		decls = append(decls, &ast.TypeDecl{
			Name:       &ast.Identifier{Name: nameTok.Lexeme, Token: nameTok},
			Definition: &ast.Identifier{Name: defTok.Lexeme, Token: defTok},
			Token:      typeTok,
		})
	}
	return decls, nil
}

// advanceTypeRefToken consumes the current token as a typeref: either a
// primitive-type keyword or an identifier naming a previously declared type.
func (p *Parser) advanceTypeRefToken() error {
	switch p.cur.Kind {
	case token.INTEGER, token.REAL, token.BOOLEAN, token.STRING, token.IDENT:
		return p.advance()
	default:
		return p.syntaxErrorf(token.IDENT)
	}
}

// parseVarSec: var_sec := VAR ( idlist ':' typeref ';' )+
func (p *Parser) parseVarSec() ([]ast.Decl, error) {
	varTok := p.cur
	if _, err := p.expect(token.VAR); err != nil {
		return nil, err
	}
	var decls []ast.Decl
	for p.at(token.IDENT) {
		names, err := p.parseIdList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		typeTok := p.cur
		if err := p.advanceTypeRefToken(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}

		declaredType := p.resolveTypeRef(typeTok)
		if p.semantics {
			for _, n := range names {
				if !p.syms.Declare(&symtab.Symbol{Name: n.Name, DeclaredType: declaredType, Kind: symtab.KindVar}) {
					p.semanticf(n.Token.Pos, "redeclaration: %s", n.Name)
				}
			}
		}

		decls = append(decls, &ast.VarDecl{
			Names:    names,
			TypeName: &ast.Identifier{Name: typeTok.Lexeme, Token: typeTok},
			Token:    varTok,
		})
	}
	return decls, nil
}

// parseIdList: idlist := ident ( ',' ident )*
func (p *Parser) parseIdList() ([]*ast.Identifier, error) {
	var ids []*ast.Identifier
	tok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	ids = append(ids, &ast.Identifier{Name: tok.Lexeme, Token: tok})
	for p.at(token.COMMA) {
		if _, err := p.advanceOK(); err != nil {
			return nil, err
		}
		tok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		ids = append(ids, &ast.Identifier{Name: tok.Lexeme, Token: tok})
	}
	return ids, nil
}

func (p *Parser) advanceOK() (token.Token, error) {
	tok := p.cur
	return tok, p.advance()
}

// parseFuncSec: func_sec := FUNCTION ident '(' params? ')' ':' typeref ';'
//                           var_sec? block ';'
func (p *Parser) parseFuncSec() (ast.Decl, error) {
	funcTok := p.cur
	if _, err := p.expect(token.FUNCTION); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.Param
	if !p.at(token.RPAREN) {
		params, err = p.parseParams()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	retTok := p.cur
	if err := p.advanceTypeRefToken(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	retType := p.resolveTypeRef(retTok)
	paramTypes := make([]symtab.Param, len(params))
	for i, prm := range params {
		paramTypes[i] = symtab.Param{Name: prm.Name.Name, Type: p.resolveTypeRef(prm.TypeName.Token)}
	}

	if p.semantics {
		if !p.syms.Declare(&symtab.Symbol{
			Name: nameTok.Lexeme, DeclaredType: retType, Kind: symtab.KindFunction,
			ReturnType: retType, Params: paramTypes,
		}) {
			p.semanticf(nameTok.Pos, "redeclaration: %s", nameTok.Lexeme)
		}
	}

	p.syms.Push()
	prevFunc := p.curFuncName
	p.curFuncName = nameTok.Lexeme

	if p.semantics {
		for i, prm := range params {
			if !p.syms.Declare(&symtab.Symbol{Name: prm.Name.Name, DeclaredType: paramTypes[i].Type, Kind: symtab.KindParam}) {
				p.semanticf(prm.Name.Token.Pos, "redeclaration: %s", prm.Name.Name)
			}
		}
		// The function's own name is assignable inside its body (Pascal
		// return convention) and stays callable there for recursion, so
		// the inner symbol carries the function's signature too.
		p.syms.Declare(&symtab.Symbol{
			Name: nameTok.Lexeme, DeclaredType: retType, Kind: symtab.KindFunction,
			ReturnType: retType, Params: paramTypes,
		})
	}

	var locals []*ast.VarDecl
	if p.at(token.VAR) {
		ds, err := p.parseVarSec()
		if err != nil {
			p.curFuncName = prevFunc
			p.syms.Pop()
			return nil, err
		}
		for _, d := range ds {
			locals = append(locals, d.(*ast.VarDecl))
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		p.curFuncName = prevFunc
		p.syms.Pop()
		return nil, err
	}

	if p.semantics && !pathAssignsReturn(body, nameTok.Lexeme) {
		p.semanticf(funcTok.Pos, "function may not set its return value: %s", nameTok.Lexeme)
	}

	p.curFuncName = prevFunc
	p.syms.Pop()

	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		Name:    &ast.Identifier{Name: nameTok.Lexeme, Token: nameTok},
		Params:  params,
		RetType: &ast.Identifier{Name: retTok.Lexeme, Token: retTok},
		Locals:  locals,
		Body:    body,
		Token:   funcTok,
	}, nil
}

// parseParams: params := idlist ':' typeref ( ';' idlist ':' typeref )*
func (p *Parser) parseParams() ([]*ast.Param, error) {
	var params []*ast.Param
	for {
		names, err := p.parseIdList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		typeTok := p.cur
		if err := p.advanceTypeRefToken(); err != nil {
			return nil, err
		}
		typeName := &ast.Identifier{Name: typeTok.Lexeme, Token: typeTok}
		for _, n := range names {
			params = append(params, &ast.Param{Name: n, TypeName: typeName})
		}
		if !p.at(token.SEMI) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return params, nil
}

// pathAssignsReturn reports whether stmt structurally guarantees an
// assignment to name on every path through it. The analysis is
// deliberately shallow: straight-line code plus if/else, with while bodies
// assumed to run zero times.
func pathAssignsReturn(stmt ast.Stmt, name string) bool {
	switch s := stmt.(type) {
	case *ast.Compound:
		for _, inner := range s.Statements {
			if pathAssignsReturn(inner, name) {
				return true
			}
		}
		return false
	case *ast.Assign:
		return foldEq(s.Target.Name, name)
	case *ast.If:
		if s.Else == nil {
			return false
		}
		return pathAssignsReturn(s.Then, name) && pathAssignsReturn(s.Else, name)
	case *ast.While:
		return false // body may execute zero times
	default:
		return false
	}
}

func foldEq(a, b string) bool {
	return foldCaser.String(a) == foldCaser.String(b)
}
