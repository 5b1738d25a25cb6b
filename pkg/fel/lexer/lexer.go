// Package lexer turns FEL expression source into a stream of tokens.
//
// The lexer is a single-pass scanner with one character of lookahead. It has
// no semantic awareness: a leading minus sign is emitted as an operator token
// (the parser treats it as unary negation), except inside the exponent of
// scientific notation where it belongs to the number.
package lexer

import (
	"strconv"

	"ludum-hq/fate/pkg/fel/errors"
	"ludum-hq/fate/pkg/fel/token"
)

// Lexer scans a FEL expression one token at a time.
type Lexer struct {
	input string
	pos   int // Byte offset of the next unread character
}

// New creates a Lexer over the given expression source.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Scan tokenizes the whole input, returning the tokens followed by a
// terminating EOF token. It fails on the first unrecognized character.
func Scan(input string) ([]token.Token, error) {
	l := New(input)

	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next returns the next token in the input. After the input is exhausted it
// returns EOF tokens forever.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	start := l.pos
	ch := l.peek()

	switch {
	case ch == 0:
		return token.Token{Kind: token.EOF, Offset: start}, nil

	case isDigit(ch) || (ch == '.' && isDigit(l.peekAt(1))):
		return l.scanNumber()

	case isIdentStart(ch):
		return l.scanIdentifier(), nil
	}

	// Multi-character operators are matched greedily before their
	// single-character prefixes.
	if kind, ok := twoCharOps[l.slice(start, 2)]; ok {
		l.pos += 2
		return token.Token{Kind: kind, Text: string(kind), Offset: start}, nil
	}
	if kind, ok := oneCharOps[ch]; ok {
		l.pos++
		return token.Token{Kind: kind, Text: string(kind), Offset: start}, nil
	}

	return token.Token{}, errors.Newf(errors.TypeSyntax, start,
		"unexpected character %q", string(ch))
}

var twoCharOps = map[string]token.Kind{
	"==": token.Equal,
	"!=": token.NotEqual,
	"<=": token.LessEqual,
	">=": token.GreaterEqual,
	"&&": token.And,
	"||": token.Or,
}

var oneCharOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'^': token.Caret,
	'<': token.Less,
	'>': token.Greater,
	'!': token.Bang,
	'(': token.LParen,
	')': token.RParen,
	',': token.Comma,
	'?': token.Question,
	':': token.Colon,
}

// scanNumber scans a decimal literal with optional fraction and exponent
// (1, 2.5, .5, 1e6, 1.5e-3). The sign of an exponent is part of the number;
// a leading sign on the mantissa is not.
func (l *Lexer) scanNumber() (token.Token, error) {
	start := l.pos

	for isDigit(l.peek()) {
		l.pos++
	}
	if l.peek() == '.' {
		l.pos++
		for isDigit(l.peek()) {
			l.pos++
		}
	}
	if ch := l.peek(); ch == 'e' || ch == 'E' {
		// Only consume the exponent if digits follow, so "2e" fails on
		// ParseFloat below rather than swallowing a trailing identifier.
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			l.pos += 2
			for isDigit(l.peek()) {
				l.pos++
			}
		}
	}

	text := l.input[start:l.pos]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token.Token{}, errors.Newf(errors.TypeSyntax, start,
			"malformed number %q", text)
	}

	// A number directly followed by an identifier character is malformed
	// ("1x", "2e"), not two adjacent tokens.
	if ch := l.peek(); isIdentStart(ch) || ch == '.' {
		for ch := l.peek(); isIdentStart(ch) || isDigit(ch) || ch == '.'; ch = l.peek() {
			l.pos++
		}
		return token.Token{}, errors.Newf(errors.TypeSyntax, start,
			"malformed number %q", l.input[start:l.pos])
	}

	return token.Token{Kind: token.Number, Text: text, Value: value, Offset: start}, nil
}

// scanIdentifier scans [A-Za-z_][A-Za-z0-9_]*.
func (l *Lexer) scanIdentifier() token.Token {
	start := l.pos
	for ch := l.peek(); isIdentStart(ch) || isDigit(ch); ch = l.peek() {
		l.pos++
	}
	return token.Token{Kind: token.Ident, Text: l.input[start:l.pos], Offset: start}
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

// peek returns the next unread character, or 0 at end of input.
func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

// peekAt returns the character n positions ahead, or 0 past end of input.
func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// slice returns input[start:start+n], truncated at end of input.
func (l *Lexer) slice(start, n int) string {
	end := start + n
	if end > len(l.input) {
		end = len(l.input)
	}
	return l.input[start:end]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
