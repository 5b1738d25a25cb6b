// Package errors provides rich error types for FEL expression parsing.
//
// Errors carry a category (syntax, arity, unknown-function, capacity), the
// byte offset of the offending token within the expression, and an optional
// suggestion computed by edit distance ("did you mean 'sqrt'?").
//
// # Usage
//
//	node, err := parser.New(registry).Parse("sqrrt(x)")
//	var felErr *errors.Error
//	if goerrors.As(err, &felErr) {
//	    fmt.Println(felErr.Type)       // unknown-function
//	    fmt.Println(felErr.Offset)     // 0
//	    fmt.Println(felErr.Suggestion) // did you mean 'sqrt'?
//	}
//
// Categories can be matched with errors.Is against a prototype error of the
// same type, without comparing messages.
package errors
