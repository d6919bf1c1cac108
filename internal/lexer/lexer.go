// Package lexer implements the scanner: a longest-match, priority-ordered
// tokenizer over a fixed rule list, producing a lazy token stream with
// 1-based (line, column) positions.
package lexer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/cwbudde/go-pastac/internal/errors"
	"github.com/cwbudde/go-pastac/internal/token"
)

// foldCaser performs the Unicode case folding used for keyword
// recognition.
var foldCaser = cases.Fold()

// Fold returns the case-folded form of s, used for keyword lookup. The
// symbol table and parser apply the same cases.Fold folding through their
// own casers.
func Fold(s string) string {
	return foldCaser.String(s)
}

// loc converts a token.Position to an errors.Location.
func loc(p token.Position) errors.Location {
	return errors.Location{Line: p.Line, Column: p.Column}
}

// Scanner tokenizes Pascal-like source text one rune at a time, tracking a
// 1-based (line, column) cursor.
type Scanner struct {
	src    []rune
	pos    int // index into src of the next unread rune
	line   int
	column int

	peeked []token.Token
}

// New creates a Scanner over source text.
func New(source string) *Scanner {
	return &Scanner{
		src:    []rune(source),
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.src)
}

func (s *Scanner) cur() rune {
	if s.atEnd() {
		return 0
	}
	return s.src[s.pos]
}

func (s *Scanner) at(offset int) rune {
	i := s.pos + offset
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

func (s *Scanner) advance() rune {
	r := s.cur()
	s.pos++
	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return r
}

func (s *Scanner) position() token.Position {
	return token.Position{Line: s.line, Column: s.column}
}

// Next returns the next token in source order, or a lexical error if the
// scanner encounters a character matched by no rule.
func (s *Scanner) Next() (token.Token, error) {
	if len(s.peeked) > 0 {
		tok := s.peeked[0]
		s.peeked = s.peeked[1:]
		return tok, nil
	}
	return s.scan()
}

// Peek returns the token n positions ahead without consuming it. Peek(0)
// is the same token Next() would return. Used by the parser's two-token
// lookahead (IDENT ':=' vs IDENT '(').
func (s *Scanner) Peek(n int) (token.Token, error) {
	for len(s.peeked) <= n {
		tok, err := s.scan()
		if err != nil {
			return token.Token{}, err
		}
		s.peeked = append(s.peeked, tok)
	}
	return s.peeked[n], nil
}

// scan applies the ordered rule list, skipping comments and whitespace,
// until it produces one real token (or EOF/error).
func (s *Scanner) scan() (token.Token, error) {
	for {
		if s.atEnd() {
			return token.Token{Kind: token.EOF, Pos: s.position()}, nil
		}

		c := s.cur()

		// Rule 1: comment {# ... #}, multi-line, non-nesting, discarded.
		if c == '{' && s.at(1) == '#' {
			if err := s.skipComment(); err != nil {
				return token.Token{}, err
			}
			continue
		}

		// Rule 9/10: whitespace and newline are skipped by advance()'s
		// line/column bookkeeping; only the skip loop lives here.
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			s.advance()
			continue
		}

		return s.scanToken()
	}
}

// skipComment consumes a {# ... #} comment, already positioned at '{'.
func (s *Scanner) skipComment() error {
	start := s.position()
	s.advance() // {
	s.advance() // #
	for {
		if s.atEnd() {
			return errors.New(errors.Lexical, loc(start), "Unterminated comment")
		}
		if s.cur() == '#' && s.at(1) == '}' {
			s.advance() // #
			s.advance() // }
			return nil
		}
		s.advance()
	}
}

// scanToken matches rules 2-8 and 11 at the current position (whitespace
// and comments have already been skipped).
func (s *Scanner) scanToken() (token.Token, error) {
	start := s.position()
	c := s.cur()

	switch {
	case c == '"':
		return s.scanString(start)
	case isDigit(c):
		return s.scanNumber(start)
	case c == '<' || c == '>' || c == '=':
		return s.scanRelOrAssign(start)
	case c == ':':
		return s.scanColon(start)
	case c == '+' || c == '-' || c == '*' || c == '/':
		s.advance()
		return token.Token{Kind: token.OP_MAT, Lexeme: string(c), Pos: start}, nil
	case strings.ContainsRune(";,:.()[]", c) && c != ':':
		return s.scanPunct(start, c)
	case isIdentStart(c):
		return s.scanIdent(start)
	default:
		s.advance()
		return token.Token{}, errors.New(errors.Lexical, loc(start), "Unexpected character %q", c)
	}
}

// scanString: rule 2. A '"' followed by any characters other than '"' and
// '\', or '\.' escape sequences, closed by '"'.
func (s *Scanner) scanString(start token.Position) (token.Token, error) {
	var b strings.Builder
	b.WriteRune(s.advance()) // opening quote
	for {
		if s.atEnd() {
			return token.Token{}, errors.New(errors.Lexical, loc(start), "Unterminated string")
		}
		c := s.cur()
		if c == '"' {
			b.WriteRune(s.advance())
			break
		}
		if c == '\\' {
			b.WriteRune(s.advance())
			if !s.atEnd() {
				b.WriteRune(s.advance())
			}
			continue
		}
		b.WriteRune(s.advance())
	}
	return token.Token{Kind: token.STR, Lexeme: b.String(), Pos: start}, nil
}

// scanNumber: rule 3. d+ optionally followed by '.' d+.
func (s *Scanner) scanNumber(start token.Position) (token.Token, error) {
	var b strings.Builder
	for isDigit(s.cur()) {
		b.WriteRune(s.advance())
	}
	if s.cur() == '.' && isDigit(s.at(1)) {
		b.WriteRune(s.advance()) // .
		for isDigit(s.cur()) {
			b.WriteRune(s.advance())
		}
	}
	return token.Token{Kind: token.NUM, Lexeme: b.String(), Pos: start}, nil
}

// scanRelOrAssign: rule 4. Longest of <= >= <> < > = wins.
func (s *Scanner) scanRelOrAssign(start token.Position) (token.Token, error) {
	c := s.advance()
	switch c {
	case '<':
		switch s.cur() {
		case '=':
			s.advance()
			return token.Token{Kind: token.OP_REL, Lexeme: "<=", Pos: start}, nil
		case '>':
			s.advance()
			return token.Token{Kind: token.OP_REL, Lexeme: "<>", Pos: start}, nil
		}
		return token.Token{Kind: token.OP_REL, Lexeme: "<", Pos: start}, nil
	case '>':
		if s.cur() == '=' {
			s.advance()
			return token.Token{Kind: token.OP_REL, Lexeme: ">=", Pos: start}, nil
		}
		return token.Token{Kind: token.OP_REL, Lexeme: ">", Pos: start}, nil
	default: // '='
		return token.Token{Kind: token.OP_REL, Lexeme: "=", Pos: start}, nil
	}
}

// scanColon: rule 5. ':=' or a bare ':' punctuation.
func (s *Scanner) scanColon(start token.Position) (token.Token, error) {
	s.advance() // :
	if s.cur() == '=' {
		s.advance()
		return token.Token{Kind: token.OP_ASSIGN, Lexeme: ":=", Pos: start}, nil
	}
	return token.Token{Kind: token.COLON, Lexeme: ":", Pos: start}, nil
}

// scanPunct: rule 7. Single-character punctuation.
func (s *Scanner) scanPunct(start token.Position, c rune) (token.Token, error) {
	s.advance()
	var kind token.Kind
	switch c {
	case ';':
		kind = token.SEMI
	case ',':
		kind = token.COMMA
	case '.':
		kind = token.DOT
	case '(':
		kind = token.LPAREN
	case ')':
		kind = token.RPAREN
	case '[':
		kind = token.LBRACK
	case ']':
		kind = token.RBRACK
	}
	return token.Token{Kind: kind, Lexeme: string(c), Pos: start}, nil
}

// scanIdent: rule 8. [A-Za-z_][A-Za-z0-9_]*, classified against the
// case-folded keyword table.
func (s *Scanner) scanIdent(start token.Position) (token.Token, error) {
	var b strings.Builder
	for isIdentStart(s.cur()) || isDigit(s.cur()) {
		b.WriteRune(s.advance())
	}
	lexeme := b.String()
	if kind, ok := token.LookupKeyword(Fold(lexeme)); ok {
		return token.Token{Kind: kind, Lexeme: lexeme, Pos: start}, nil
	}
	return token.Token{Kind: token.IDENT, Lexeme: lexeme, Pos: start}, nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}
