package lexer

import (
	"testing"

	"github.com/cwbudde/go-pastac/internal/token"
)

func collect(t *testing.T, src string) []token.Token {
	t.Helper()
	s := New(src)
	var toks []token.Token
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected lexical error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"begin", token.BEGIN},
		{"BEGIN", token.BEGIN},
		{"Begin", token.BEGIN},
		{"PROCEDURE", token.PROCEDURE},
		{"Array", token.ARRAY},
		{"ReCoRd", token.RECORD},
		{"integer", token.INTEGER},
	}
	for _, tt := range tests {
		toks := collect(t, tt.src)
		if toks[0].Kind != tt.kind {
			t.Errorf("%q: got kind %s, want %s", tt.src, toks[0].Kind, tt.kind)
		}
		if toks[0].Lexeme != tt.src {
			t.Errorf("%q: lexeme %q should preserve original case", tt.src, toks[0].Lexeme)
		}
	}
}

func TestIdentifierNotKeyword(t *testing.T) {
	toks := collect(t, "beginner")
	if toks[0].Kind != token.IDENT {
		t.Errorf("got kind %s, want IDENT", toks[0].Kind)
	}
}

func TestOperatorsLongestMatch(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
		lex  string
	}{
		{":=", token.OP_ASSIGN, ":="},
		{":", token.COLON, ":"},
		{"<=", token.OP_REL, "<="},
		{"<>", token.OP_REL, "<>"},
		{"<", token.OP_REL, "<"},
		{">=", token.OP_REL, ">="},
		{">", token.OP_REL, ">"},
		{"=", token.OP_REL, "="},
	}
	for _, tt := range tests {
		toks := collect(t, tt.src)
		if toks[0].Kind != tt.kind || toks[0].Lexeme != tt.lex {
			t.Errorf("%q: got (%s,%q), want (%s,%q)", tt.src, toks[0].Kind, toks[0].Lexeme, tt.kind, tt.lex)
		}
	}
}

func TestNumberLiteral(t *testing.T) {
	tests := []string{"0", "42", "3.14", "100.001"}
	for _, src := range tests {
		toks := collect(t, src)
		if toks[0].Kind != token.NUM || toks[0].Lexeme != src {
			t.Errorf("%q: got (%s,%q)", src, toks[0].Kind, toks[0].Lexeme)
		}
	}
}

func TestNumberDotNotFollowedByDigitIsTwoTokens(t *testing.T) {
	toks := collect(t, "42.")
	if toks[0].Kind != token.NUM || toks[0].Lexeme != "42" {
		t.Fatalf("got (%s,%q), want NUM 42", toks[0].Kind, toks[0].Lexeme)
	}
	if toks[1].Kind != token.DOT {
		t.Fatalf("got %s, want DOT", toks[1].Kind)
	}
}

func TestStringLiteral(t *testing.T) {
	toks := collect(t, `"hello world"`)
	if toks[0].Kind != token.STR || toks[0].Lexeme != `"hello world"` {
		t.Errorf("got (%s,%q)", toks[0].Kind, toks[0].Lexeme)
	}
}

func TestCommentIsSkipped(t *testing.T) {
	toks := collect(t, "{# a comment #}begin")
	if toks[0].Kind != token.BEGIN {
		t.Errorf("got %s, want BEGIN (comment should be skipped)", toks[0].Kind)
	}
}

func TestUnterminatedCommentIsError(t *testing.T) {
	s := New("{# never closed")
	_, err := s.Next()
	if err == nil {
		t.Fatal("expected error for unterminated comment")
	}
}

func TestLineColumnTracking(t *testing.T) {
	toks := collect(t, "begin\n  x")
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 1 {
		t.Errorf("begin: got pos %v, want 1:1", toks[0].Pos)
	}
	if toks[1].Pos.Line != 2 || toks[1].Pos.Column != 3 {
		t.Errorf("x: got pos %v, want 2:3", toks[1].Pos)
	}
}

func TestIllegalCharacter(t *testing.T) {
	s := New("x := 1 @ 2")
	for i := 0; i < 4; i++ {
		if _, err := s.Next(); err != nil {
			t.Fatalf("unexpected error at token %d: %v", i, err)
		}
	}
	if _, err := s.Next(); err == nil {
		t.Fatal("expected lexical error at '@'")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	s := New("x := 1")
	first, err := s.Peek(0)
	if err != nil {
		t.Fatal(err)
	}
	if first.Kind != token.IDENT {
		t.Fatalf("Peek(0) got %s, want IDENT", first.Kind)
	}
	second, err := s.Peek(1)
	if err != nil {
		t.Fatal(err)
	}
	if second.Kind != token.OP_ASSIGN {
		t.Fatalf("Peek(1) got %s, want OP_ASSIGN", second.Kind)
	}
	tok, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Kind != token.IDENT {
		t.Fatalf("Next() after Peek got %s, want IDENT", tok.Kind)
	}
}

func TestPunctuation(t *testing.T) {
	toks := collect(t, ";,.()[]")
	want := []token.Kind{token.SEMI, token.COMMA, token.DOT, token.LPAREN, token.RPAREN, token.LBRACK, token.RBRACK, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}
