package parser

import "fmt"

// SyntaxError reports a fatal parse-time failure: the offending character
// position plus a short excerpt of nearby source, per spec.
type SyntaxError struct {
	Pos     Position
	Offset  int
	Excerpt string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d near %q: %s",
		e.Pos.Line, e.Pos.Column, e.Excerpt, e.Message)
}

func newSyntaxError(src string, tok Token, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Pos:     tok.Pos,
		Offset:  tok.Start,
		Excerpt: excerpt(src, tok.Start),
		Message: fmt.Sprintf(format, args...),
	}
}
