// Package token defines the lexical tokens of the Fate Expression Language (FEL).
package token

import "fmt"

// Kind identifies the lexical class of a token.
type Kind string

const (
	Number Kind = "number"
	Ident  Kind = "identifier"

	Plus    Kind = "+"
	Minus   Kind = "-"
	Star    Kind = "*"
	Slash   Kind = "/"
	Percent Kind = "%"
	Caret   Kind = "^"

	Equal        Kind = "=="
	NotEqual     Kind = "!="
	Less         Kind = "<"
	LessEqual    Kind = "<="
	Greater      Kind = ">"
	GreaterEqual Kind = ">="

	And  Kind = "&&"
	Or   Kind = "||"
	Bang Kind = "!"

	LParen   Kind = "("
	RParen   Kind = ")"
	Comma    Kind = ","
	Question Kind = "?"
	Colon    Kind = ":"

	// EOF marks the end of the input. The lexer emits it exactly once.
	EOF Kind = "eof"
)

// Token is a single lexical token. Tokens are ephemeral: they exist only
// between the lexer and the parser during one parse.
type Token struct {
	Kind   Kind
	Text   string  // Source text of the token
	Value  float64 // Numeric value, set only when Kind is Number
	Offset int     // Byte offset of the first character in the source
}

// String returns a human-readable representation used in error messages.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of expression"
	case Number, Ident:
		return fmt.Sprintf("%q", t.Text)
	default:
		return fmt.Sprintf("%q", string(t.Kind))
	}
}

// IsOperator reports whether the token is a binary or unary operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Percent, Caret,
		Equal, NotEqual, Less, LessEqual, Greater, GreaterEqual,
		And, Or, Bang:
		return true
	}
	return false
}
