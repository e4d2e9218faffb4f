// Package query parses the squint query language and drives path
// resolution. The parser walks each query left-to-right and emits the
// resolution events the resolver consumes: alias registration, scope
// pushes and pops, and path navigation calls.
package query

import (
	"strings"
	"unicode"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF      TokenType = iota
	TokenIdent              // identifiers and keywords: from, select, b, isbn
	TokenString             // 'quoted' or "quoted" literal
	TokenNumber             // numeric literal
	TokenDot                // .
	TokenComma              // ,
	TokenEquals             // =
	TokenLBracket           // [
	TokenRBracket           // ]
	TokenError              // error token
)

// Token represents a lexer token.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Lexer tokenizes a query string.
type Lexer struct {
	input string
	pos   int
	start int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	l.start = l.pos
	ch := l.input[l.pos]

	switch ch {
	case '.':
		l.pos++
		return Token{Type: TokenDot, Value: ".", Pos: l.start}
	case ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: l.start}
	case '=':
		l.pos++
		return Token{Type: TokenEquals, Value: "=", Pos: l.start}
	case '[':
		l.pos++
		return Token{Type: TokenLBracket, Value: "[", Pos: l.start}
	case ']':
		l.pos++
		return Token{Type: TokenRBracket, Value: "]", Pos: l.start}
	case '\'', '"':
		return l.lexString(ch)
	}

	if ch == '-' || unicode.IsDigit(rune(ch)) {
		return l.lexNumber()
	}

	if isIdentStart(ch) {
		return l.lexIdent()
	}

	l.pos++
	return Token{Type: TokenError, Value: string(ch), Pos: l.start}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

func (l *Lexer) lexString(quote byte) Token {
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == quote {
			l.pos++
			return Token{Type: TokenString, Value: b.String(), Pos: l.start}
		}
		b.WriteByte(ch)
		l.pos++
	}
	return Token{Type: TokenError, Value: "unterminated string", Pos: l.start}
}

func (l *Lexer) lexNumber() Token {
	l.pos++ // sign or first digit
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if !unicode.IsDigit(rune(ch)) && ch != '.' {
			break
		}
		// A dot followed by a non-digit ends the number: it is path
		// navigation, not a decimal point.
		if ch == '.' && (l.pos+1 >= len(l.input) || !unicode.IsDigit(rune(l.input[l.pos+1]))) {
			break
		}
		l.pos++
	}
	return Token{Type: TokenNumber, Value: l.input[l.start:l.pos], Pos: l.start}
}

func (l *Lexer) lexIdent() Token {
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	return Token{Type: TokenIdent, Value: l.input[l.start:l.pos], Pos: l.start}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || unicode.IsLetter(rune(ch))
}

func isIdentPart(ch byte) bool {
	return ch == '_' || unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch))
}
