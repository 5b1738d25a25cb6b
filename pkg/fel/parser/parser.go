package parser

import (
	"ludum-hq/fate/pkg/fel/ast"
	"ludum-hq/fate/pkg/fel/errors"
	"ludum-hq/fate/pkg/fel/lexer"
	"ludum-hq/fate/pkg/fel/token"
)

// Registry resolves function names during parsing. Function calls are
// validated as they are parsed: an unknown name or an argument count
// outside the declared bounds is a parse error, reported at the call site.
// For that the parser needs read-only access to whatever function table the
// evaluation context will use.
type Registry interface {
	// LookupFunction returns the arity bounds for a function name.
	// maxArgs of -1 means variadic. ok is false when the name is not
	// registered.
	LookupFunction(name string) (minArgs, maxArgs int, ok bool)

	// FunctionNames returns all registered names. Used to build
	// "did you mean" suggestions for unknown functions.
	FunctionNames() []string
}

// Parser builds an expression tree from FEL source using precedence
// climbing. A Parser is cheap to construct and may be reused; it is not safe
// for concurrent use.
type Parser struct {
	reg  Registry
	toks []token.Token
	pos  int
}

// New creates a Parser that validates function calls against reg.
// A nil registry rejects every function call as unknown.
func New(reg Registry) *Parser {
	return &Parser{reg: reg}
}

// Parse tokenizes and parses a complete expression, returning the root node.
// The entire input must be consumed: trailing tokens after a well-formed
// expression are a syntax error.
func (p *Parser) Parse(input string) (ast.Node, error) {
	toks, err := lexer.Scan(input)
	if err != nil {
		return nil, err
	}
	p.toks = toks
	p.pos = 0

	if p.cur().Kind == token.EOF {
		return nil, errors.New(errors.TypeSyntax, 0, "empty expression")
	}

	root, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	if tok := p.cur(); tok.Kind != token.EOF {
		return nil, errors.Newf(errors.TypeSyntax, tok.Offset,
			"unexpected %s after expression", tok)
	}

	return root, nil
}

// Binary operator precedence, higher binds tighter. Ternary sits below all
// of these and unary above; both are handled structurally rather than
// through the table.
const (
	precOr = iota + 1
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precPower
)

var binaryPrec = map[token.Kind]int{
	token.Or:           precOr,
	token.And:          precAnd,
	token.Equal:        precEquality,
	token.NotEqual:     precEquality,
	token.Less:         precRelational,
	token.LessEqual:    precRelational,
	token.Greater:      precRelational,
	token.GreaterEqual: precRelational,
	token.Plus:         precAdditive,
	token.Minus:        precAdditive,
	token.Star:         precMultiplicative,
	token.Slash:        precMultiplicative,
	token.Percent:      precMultiplicative,
	token.Caret:        precPower,
}

// parseTernary parses cond ? then : else. The ternary is right-associative
// and has the lowest precedence of all operators, so both branches are again
// full ternary expressions.
func (p *Parser) parseTernary() (ast.Node, error) {
	cond, err := p.parseBinary(precOr)
	if err != nil {
		return nil, err
	}

	if p.cur().Kind != token.Question {
		return cond, nil
	}
	p.advance()

	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	if tok := p.cur(); tok.Kind != token.Colon {
		return nil, errors.Newf(errors.TypeSyntax, tok.Offset,
			"expected ':' in conditional, got %s", tok)
	}
	p.advance()

	els, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	return &ast.Ternary{Cond: cond, Then: then, Else: els}, nil
}

// parseBinary is the precedence-climbing loop. It parses operators whose
// precedence is at least minPrec. All binary operators are left-associative
// except '^', which is right-associative: 2^3^2 is 2^(3^2).
func (p *Parser) parseBinary(minPrec int) (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op := p.cur().Kind
		prec, ok := binaryPrec[op]
		if !ok || prec < minPrec {
			return left, nil
		}
		p.advance()

		nextMin := prec + 1
		if op == token.Caret {
			nextMin = prec
		}

		right, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}

		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// parseUnary parses prefix '-' and '!'. Unary operators bind tighter than
// '^': -2^2 is (-2)^2.
func (p *Parser) parseUnary() (ast.Node, error) {
	tok := p.cur()
	if tok.Kind == token.Minus || tok.Kind == token.Bang {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: tok.Kind, Operand: operand, Pos: tok.Offset}, nil
	}

	return p.parsePrimary()
}

// parsePrimary parses a number literal, a parenthesized sub-expression, or
// an identifier. An identifier followed by '(' is a function call, anything
// else is a variable reference.
func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.cur()

	switch tok.Kind {
	case token.Number:
		p.advance()
		return &ast.Literal{Value: tok.Value, Pos: tok.Offset}, nil

	case token.LParen:
		p.advance()
		inner, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if closing := p.cur(); closing.Kind != token.RParen {
			return nil, errors.Newf(errors.TypeSyntax, closing.Offset,
				"expected ')', got %s", closing)
		}
		p.advance()
		return inner, nil

	case token.Ident:
		p.advance()
		if p.cur().Kind == token.LParen {
			return p.parseCall(tok)
		}
		return &ast.Variable{Name: tok.Text, Pos: tok.Offset}, nil
	}

	return nil, errors.Newf(errors.TypeSyntax, tok.Offset,
		"expected expression, got %s", tok)
}

// parseCall parses the argument list of name(...) and validates the call
// against the registry. name is the already-consumed identifier token and
// the current token is the opening parenthesis.
func (p *Parser) parseCall(name token.Token) (ast.Node, error) {
	p.advance() // consume '('

	var args []ast.Node
	if p.cur().Kind != token.RParen {
		for {
			arg, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.cur().Kind != token.Comma {
				break
			}
			p.advance()
		}
	}

	if closing := p.cur(); closing.Kind != token.RParen {
		return nil, errors.Newf(errors.TypeSyntax, closing.Offset,
			"expected ')' to close call to '%s', got %s", name.Text, closing)
	}
	p.advance()

	if err := p.checkCall(name, len(args)); err != nil {
		return nil, err
	}

	return &ast.Call{Name: name.Text, Args: args, Pos: name.Offset}, nil
}

// checkCall validates the function name and argument count. Both checks are
// static: they run at parse time even when the call sits in a branch that
// evaluation would skip.
func (p *Parser) checkCall(name token.Token, argc int) error {
	if p.reg == nil {
		return errors.Newf(errors.TypeUnknownFunction, name.Offset,
			"unknown function '%s'", name.Text)
	}

	minArgs, maxArgs, ok := p.reg.LookupFunction(name.Text)
	if !ok {
		err := errors.Newf(errors.TypeUnknownFunction, name.Offset,
			"unknown function '%s'", name.Text)
		if s := errors.SuggestFunction(name.Text, p.reg.FunctionNames()); s != "" {
			err.WithSuggestion(s)
		}
		return err
	}

	switch {
	case maxArgs < 0 && argc < minArgs:
		return errors.Newf(errors.TypeArity, name.Offset,
			"function '%s' expects at least %d argument(s), got %d",
			name.Text, minArgs, argc)
	case maxArgs >= 0 && (argc < minArgs || argc > maxArgs):
		if minArgs == maxArgs {
			return errors.Newf(errors.TypeArity, name.Offset,
				"function '%s' expects %d argument(s), got %d",
				name.Text, minArgs, argc)
		}
		return errors.Newf(errors.TypeArity, name.Offset,
			"function '%s' expects between %d and %d arguments, got %d",
			name.Text, minArgs, maxArgs, argc)
	}

	return nil
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF, Offset: len(p.toks)}
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.toks) {
		p.pos++
	}
}
