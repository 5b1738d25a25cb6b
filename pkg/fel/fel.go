package fel

import (
	"ludum-hq/fate/pkg/fel/ast"
	"ludum-hq/fate/pkg/fel/lexer"
	"ludum-hq/fate/pkg/fel/parser"
	"ludum-hq/fate/pkg/fel/token"
)

// Parse is a convenience function that parses an expression against a
// function registry, returning the root of the tree. Use this to inspect or
// analyze expressions without evaluating them.
func Parse(reg parser.Registry, input string) (ast.Node, error) {
	return parser.New(reg).Parse(input)
}

// Check parses an expression and discards the tree. It returns nil when the
// expression is well-formed and every function call resolves with a valid
// argument count.
func Check(reg parser.Registry, input string) error {
	_, err := parser.New(reg).Parse(input)
	return err
}

// Tokenize scans an expression into tokens without parsing. The final token
// is always EOF. Useful for syntax highlighting and tooling.
func Tokenize(input string) ([]token.Token, error) {
	return lexer.Scan(input)
}

// Dependencies parses an expression and returns the variable names it
// references, in order of first occurrence.
func Dependencies(reg parser.Registry, input string) ([]string, error) {
	root, err := parser.New(reg).Parse(input)
	if err != nil {
		return nil, err
	}
	return ast.Variables(root), nil
}
