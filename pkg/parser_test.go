package minilang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, source string) (*Program, error) {
	t.Helper()

	p, err := NewParser(source)
	require.NoError(t, err)

	return p.ParseProgram()
}

func TestParserStatements(t *testing.T) {
	cases := []struct {
		name   string
		source string
		fail   bool
		expect []Stmt
	}{
		{
			name:   "variable declaration",
			source: `let x : int = 3;`,
			expect: []Stmt{
				&VariableDecl{Name: "x", DeclaredType: TypeInt, Init: &LiteralInt{Value: 3}},
			},
		},
		{
			name:   "assignment",
			source: `x = 3;`,
			expect: []Stmt{
				&Assignment{Name: "x", Expr: &LiteralInt{Value: 3}},
			},
		},
		{
			name:   "print",
			source: `print "hi";`,
			expect: []Stmt{
				&Print{Expr: &LiteralString{Value: "hi"}},
			},
		},
		{
			name:   "missing semicolon",
			source: `let x : int = 3`,
			fail:   true,
		},
		{
			name:   "if with else",
			source: `if (x < 1) { print x; } else { print 0; }`,
			expect: []Stmt{
				&If{
					Cond: &BinOp{Left: &Identifier{Name: "x"}, Op: OpLessThan, Right: &LiteralInt{Value: 1}},
					Then: &Block{Statements: []Stmt{&Print{Expr: &Identifier{Name: "x"}}}},
					Else: &Block{Statements: []Stmt{&Print{Expr: &LiteralInt{Value: 0}}}},
				},
			},
		},
		{
			name:   "for with all clauses",
			source: `for (let i : int = 0; i < 3; i = i + 1) { print i; }`,
			expect: []Stmt{
				&For{
					Decl: &VariableDecl{Name: "i", DeclaredType: TypeInt, Init: &LiteralInt{Value: 0}},
					Cond: &BinOp{Left: &Identifier{Name: "i"}, Op: OpLessThan, Right: &LiteralInt{Value: 3}},
					Assign: &Assignment{Name: "i", Expr: &BinOp{
						Left: &Identifier{Name: "i"}, Op: OpAdd, Right: &LiteralInt{Value: 1},
					}},
					Body: &Block{Statements: []Stmt{&Print{Expr: &Identifier{Name: "i"}}}},
				},
			},
		},
		{
			name:   "for with no declaration or step",
			source: `for (; i < 3;) { print i; }`,
			expect: []Stmt{
				&For{
					Cond: &BinOp{Left: &Identifier{Name: "i"}, Op: OpLessThan, Right: &LiteralInt{Value: 3}},
					Body: &Block{Statements: []Stmt{&Print{Expr: &Identifier{Name: "i"}}}},
				},
			},
		},
		{
			name:   "function declaration with parameters",
			source: `int add(a:int,b:int){return a+b;}`,
			expect: []Stmt{
				&FunctionDecl{
					ReturnType: TypeInt,
					Name:       "add",
					Params:     []FormalParam{{Name: "a", Type: TypeInt}, {Name: "b", Type: TypeInt}},
					Body: &Block{Statements: []Stmt{
						&Return{Expr: &BinOp{Left: &Identifier{Name: "a"}, Op: OpAdd, Right: &Identifier{Name: "b"}}},
					}},
				},
			},
		},
		{
			name:   "unexpected token",
			source: `+ 1;`,
			fail:   true,
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			program, err := parse(t, c.source)
			if c.fail {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, c.expect, stripLines(program.Statements))
		})
	}
}

func TestParserOperatorPrecedenceAndAssociativity(t *testing.T) {
	cases := []struct {
		name   string
		source string
		expect Expr
	}{
		{
			name:   "multiplication binds tighter than addition",
			source: `print 1 + 2 * 3;`,
			expect: &BinOp{
				Left: &LiteralInt{Value: 1}, Op: OpAdd,
				Right: &BinOp{Left: &LiteralInt{Value: 2}, Op: OpMul, Right: &LiteralInt{Value: 3}},
			},
		},
		{
			name:   "same-tier operators are right-associative",
			source: `print 1 - 2 - 3;`,
			expect: &BinOp{
				Left: &LiteralInt{Value: 1}, Op: OpSub,
				Right: &BinOp{Left: &LiteralInt{Value: 2}, Op: OpSub, Right: &LiteralInt{Value: 3}},
			},
		},
		{
			name:   "parentheses override precedence",
			source: `print (1 + 2) * 3;`,
			expect: &BinOp{
				Left:  &BinOp{Left: &LiteralInt{Value: 1}, Op: OpAdd, Right: &LiteralInt{Value: 2}},
				Op:    OpMul,
				Right: &LiteralInt{Value: 3},
			},
		},
		{
			name:   "relational is the loosest tier",
			source: `print 1 + 1 < 3 * 1;`,
			expect: &BinOp{
				Left:  &BinOp{Left: &LiteralInt{Value: 1}, Op: OpAdd, Right: &LiteralInt{Value: 1}},
				Op:    OpLessThan,
				Right: &BinOp{Left: &LiteralInt{Value: 3}, Op: OpMul, Right: &LiteralInt{Value: 1}},
			},
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			program, err := parse(t, c.source)
			require.NoError(t, err)
			require.Len(t, program.Statements, 1)

			print := program.Statements[0].(*Print)
			assert.Equal(t, c.expect, stripLine(print.Expr))
		})
	}
}

func TestParserFunctionCallVsIdentifier(t *testing.T) {
	program, err := parse(t, `print f(1, 2); print x;`)
	require.NoError(t, err)
	require.Len(t, program.Statements, 2)

	call := program.Statements[0].(*Print).Expr.(*FunctionCall)
	assert.Equal(t, "f", call.Name)
	for _, a := range call.Args {
		stripLine(a)
	}
	assert.Equal(t, []Expr{&LiteralInt{Value: 1}, &LiteralInt{Value: 2}}, call.Args)

	ident := program.Statements[1].(*Print).Expr.(*Identifier)
	assert.Equal(t, "x", ident.Name)
}

// stripLine/stripLines zero out the embedded line field so test
// expectations don't have to track exact line numbers, only shape.
func stripLine(e Expr) Expr {
	switch n := e.(type) {
	case *LiteralBool:
		n.line = 0
	case *LiteralFloat:
		n.line = 0
	case *LiteralInt:
		n.line = 0
	case *LiteralString:
		n.line = 0
	case *Identifier:
		n.line = 0
	case *BinOp:
		n.line = 0
		stripLine(n.Left)
		stripLine(n.Right)
	case *Unary:
		n.line = 0
		stripLine(n.Operand)
	case *FunctionCall:
		n.line = 0
		for _, a := range n.Args {
			stripLine(a)
		}
	}
	return e
}

func stripStmtLine(s Stmt) Stmt {
	switch n := s.(type) {
	case *VariableDecl:
		n.line = 0
		stripLine(n.Init)
	case *Assignment:
		n.line = 0
		stripLine(n.Expr)
	case *Print:
		n.line = 0
		stripLine(n.Expr)
	case *Return:
		n.line = 0
		stripLine(n.Expr)
	case *If:
		n.line = 0
		stripLine(n.Cond)
		stripStmtLines(n.Then.Statements)
		n.Then.line = 0
		if n.Else != nil {
			stripStmtLines(n.Else.Statements)
			n.Else.line = 0
		}
	case *For:
		n.line = 0
		if n.Decl != nil {
			stripStmtLine(n.Decl)
		}
		stripLine(n.Cond)
		if n.Assign != nil {
			stripStmtLine(n.Assign)
		}
		stripStmtLines(n.Body.Statements)
		n.Body.line = 0
	case *While:
		n.line = 0
		stripLine(n.Cond)
		stripStmtLines(n.Body.Statements)
		n.Body.line = 0
	case *FunctionDecl:
		n.line = 0
		stripStmtLines(n.Body.Statements)
		n.Body.line = 0
	case *Block:
		n.line = 0
		stripStmtLines(n.Statements)
	}
	return s
}

func stripStmtLines(stmts []Stmt) []Stmt {
	for _, s := range stmts {
		stripStmtLine(s)
	}
	return stmts
}

func stripLines(stmts []Stmt) []Stmt {
	return stripStmtLines(stmts)
}
