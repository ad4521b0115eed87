package load

import "errors"

var (
	errUnterminatedQuote = errors.New("unterminated quoted string")
	errUnbalancedParens  = errors.New("unbalanced parentheses")
)
