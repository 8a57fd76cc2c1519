package minilang

import (
	"fmt"

	"github.com/pkg/errors"
)

// LexicalError is raised when the lexer's rollback loop empties the
// accepting stack without finding an accepting state.
type LexicalError struct {
	Line   int
	Lexeme string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("Lexical Error on line %d!\nLexeme: %s\n", e.Line, e.Lexeme)
}

// newLexicalError builds a LexicalError wrapped with github.com/pkg/errors
// so callers further up the pipeline can still recover the root cause with
// errors.Cause.
func newLexicalError(line int, lexeme string) error {
	return errors.WithStack(&LexicalError{Line: line, Lexeme: lexeme})
}

// SyntaxError is raised by the parser on any grammar mismatch.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
}

func newSyntaxErrorf(line int, format string, args ...interface{}) error {
	return errors.WithStack(&SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)})
}

// expectedFoundErr builds the common "Expected X, found Y" syntax error shape.
func expectedFoundErr(tok Token, expected string) error {
	return newSyntaxErrorf(tok.Line, "Expected %s, found %s", expected, tok.TypeName())
}

func unexpectedErr(tok Token) error {
	return newSyntaxErrorf(tok.Line, "Unexpected %s", tok.TypeName())
}

// SemanticError is raised by the semantic analyzer on the first rule
// violation it encounters; the walk aborts immediately.
type SemanticError struct {
	Line    int
	Message string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
}

func newSemanticErrorf(line int, format string, args ...interface{}) error {
	return errors.WithStack(&SemanticError{Line: line, Message: fmt.Sprintf(format, args...)})
}

// RuntimeError is raised by the interpreter. In a program that passed
// semantic analysis this should be unreachable; it exists as a defensive
// backstop, not a primary error channel.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
}

func newRuntimeErrorf(line int, format string, args ...interface{}) error {
	return errors.WithStack(&RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)})
}
