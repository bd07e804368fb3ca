package parser

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every ParseError so callers can test for any parse
// failure with errors.Is.
var ErrSyntax = errors.New("syntax error")

// Position is a 1-based location in a source file.
type Position struct {
	Line   int
	Column int
}

// ParseError represents a parsing error with position information.
type ParseError struct {
	Path    string
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error at line %d, column %d: %s", e.Path, e.Pos.Line, e.Pos.Column, e.Message)
}

// Unwrap makes errors.Is(err, ErrSyntax) true for every ParseError.
func (e *ParseError) Unwrap() error {
	return ErrSyntax
}
