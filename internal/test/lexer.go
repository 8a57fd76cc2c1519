package test

import (
	"fmt"
	"math/rand"
	"strings"
)

// validTokens is a semicolon-separated catalog of individually well-formed
// MiniLang lexemes spanning every token kind except ';', which is the
// catalog's own separator: keywords, operators, punctuation, and literals
// (including a long string to exercise the lexer's string-body loop past a
// single buffer read).
const validTokens = "let;if;else;for;while;return;print;bool;float;int;string;true;false;and;or;not;(;);{;};,;.;:;;;+;-;*;/;<;<=;>;>=;==;!=;=;myVar;counter;x;y;123;4.5;0;3.14159;\"hi\";\"this is a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";\"\";//a line comment\n;/*a block comment*/;\n"

// GetRandomTokens returns size random lexemes from validTokens, space
// separated. It is a lexer stress fixture, not a parseable program — the
// lexer must accept and re-emit each lexeme regardless of neighbors.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram builds a syntactically valid small program: n
// independent integer variable declarations each followed by a print of a
// simple arithmetic expression over two prior variables. No test in this
// module calls it.
func GetRandomProgram(n int) string {
	var b strings.Builder
	names := make([]string, 0, n)

	for i := 0; i < n; i++ {
		name := fmt.Sprintf("v%d", i)
		names = append(names, name)
		fmt.Fprintf(&b, "let %s : int = %d;\n", name, rand.Intn(100))
	}

	for i := 1; i < len(names); i++ {
		fmt.Fprintf(&b, "print %s + %s;\n", names[i-1], names[i])
	}

	return b.String()
}
