package minilang

import (
	"fmt"
	"io"
)

// Interpreter tree-walks a checked AST and executes it, writing Print
// output to Out. A program must have already passed SemanticAnalyzer.Check;
// the interpreter does not re-validate types or declarations.
type Interpreter struct {
	table *SymbolTable
	Out   io.Writer

	returned Value
}

// NewInterpreter creates an interpreter that writes Print output to out.
func NewInterpreter(out io.Writer) *Interpreter {
	return &Interpreter{table: NewSymbolTable(), Out: out}
}

// Run executes program from a fresh top-level scope.
func (in *Interpreter) Run(program *Program) {
	program.Accept(in)
}

func (in *Interpreter) VisitProgram(n *Program) {
	in.table.Push()
	for _, stmt := range n.Statements {
		stmt.Accept(in)
	}
	in.table.Pop()
}

// VisitVariableDecl declares Name then evaluates and coerces Init to the
// declared type before storing it. The source's interpreter omits this
// coercion for variable declarations (unlike assignment, which does coerce)
// — this implementation applies it anyway, since the declared semantics
// call for coercion on every store, not just reassignment.
func (in *Interpreter) VisitVariableDecl(n *VariableDecl) {
	if err := in.table.DeclareVariable(n); err != nil {
		panic(err)
	}

	n.Init.Accept(in)
	in.table.Assign(n.Name, Coerce(in.returned, n.DeclaredType))
}

func (in *Interpreter) VisitAssignment(n *Assignment) {
	declared := in.table.GetType(n.Name)

	n.Expr.Accept(in)
	in.table.Assign(n.Name, Coerce(in.returned, declared))
	in.returned = Coerce(in.returned, declared)
}

func (in *Interpreter) VisitPrint(n *Print) {
	n.Expr.Accept(in)

	v := in.returned
	switch v.Type {
	case TypeBool:
		fmt.Fprintln(in.Out, v.B)
	case TypeFloat:
		fmt.Fprintln(in.Out, v.F)
	case TypeInt:
		fmt.Fprintln(in.Out, v.I)
	case TypeString:
		fmt.Fprintln(in.Out, v.S)
	}
}

func (in *Interpreter) VisitReturn(n *Return) {
	n.Expr.Accept(in)
}

func (in *Interpreter) VisitIf(n *If) {
	n.Cond.Accept(in)
	cond := Coerce(in.returned, TypeBool)

	if cond.B {
		n.Then.Accept(in)
	} else if n.Else != nil {
		n.Else.Accept(in)
	}
}

// VisitFor executes the preserved deviation from spec.md §9 / DESIGN.md's
// "for missing-assignment deviation" entry: the step assignment is invoked
// on every iteration with no nil check, so a for-loop parsed without one
// panics on a nil pointer dereference the first time the loop body runs,
// rather than silently behaving like a plain while loop.
func (in *Interpreter) VisitFor(n *For) {
	in.table.Push()
	defer in.table.Pop()

	if n.Decl != nil {
		n.Decl.Accept(in)
	}

	n.Cond.Accept(in)
	cond := Coerce(in.returned, TypeBool)

	for cond.B {
		n.Body.Accept(in)
		n.Assign.Accept(in)

		n.Cond.Accept(in)
		cond = Coerce(in.returned, TypeBool)
	}
}

func (in *Interpreter) VisitWhile(n *While) {
	n.Cond.Accept(in)
	cond := Coerce(in.returned, TypeBool)

	for cond.B {
		n.Body.Accept(in)

		n.Cond.Accept(in)
		cond = Coerce(in.returned, TypeBool)
	}
}

func (in *Interpreter) VisitBlock(n *Block) {
	in.table.Push()
	for _, stmt := range n.Statements {
		stmt.Accept(in)
	}
	in.table.Pop()
}

// VisitFunctionDecl only registers the declaration; a function body runs
// when VisitFunctionCall invokes it.
func (in *Interpreter) VisitFunctionDecl(n *FunctionDecl) {
	if err := in.table.DeclareFunction(n); err != nil {
		panic(err)
	}
}

func (in *Interpreter) VisitLiteralBool(n *LiteralBool) {
	in.returned = BoolValue(n.Value)
}

func (in *Interpreter) VisitLiteralFloat(n *LiteralFloat) {
	in.returned = FloatValue(n.Value)
}

func (in *Interpreter) VisitLiteralInt(n *LiteralInt) {
	in.returned = IntValue(n.Value)
}

func (in *Interpreter) VisitLiteralString(n *LiteralString) {
	in.returned = StringValue(n.Value)
}

func (in *Interpreter) VisitIdentifier(n *Identifier) {
	sym, _ := in.table.find(n.Name)
	in.returned = sym.Value
}

// VisitBinOp coerces both operands to float and computes over float64 for
// every arithmetic and relational operator, matching the source's
// convertReturnedType(FLOAT) on both sides before the C++ operator runs —
// relational results therefore come back as float 0.0/1.0 tagged TypeFloat,
// not as a native TypeBool, except for and/or which build a genuine bool.
//
// and/or carry the second documented deviation: the right operand is
// coerced to FLOAT, not BOOL, before being narrowed back to bool. For every
// bool, int and float value this gives the same truth value as a direct
// bool coercion, both operands are always evaluated, and the result is
// always tagged TypeBool, so the deviation does not change any output.
func (in *Interpreter) VisitBinOp(n *BinOp) {
	switch n.Op {
	case OpAnd, OpOr:
		n.Left.Accept(in)
		lValue := Coerce(in.returned, TypeBool).B

		n.Right.Accept(in)
		rValue := Coerce(in.returned, TypeFloat).AsBool()

		if n.Op == OpAnd {
			in.returned = BoolValue(lValue && rValue)
		} else {
			in.returned = BoolValue(lValue || rValue)
		}
		return
	}

	n.Left.Accept(in)
	l := Coerce(in.returned, TypeFloat).F

	n.Right.Accept(in)
	r := Coerce(in.returned, TypeFloat).F

	switch n.Op {
	case OpAdd:
		in.returned = FloatValue(l + r)
	case OpSub:
		in.returned = FloatValue(l - r)
	case OpMul:
		in.returned = FloatValue(l * r)
	case OpDiv:
		in.returned = FloatValue(l / r)
	case OpLessThan:
		in.returned = floatBool(l < r)
	case OpLessThanEqual:
		in.returned = floatBool(l <= r)
	case OpGreaterThan:
		in.returned = floatBool(l > r)
	case OpGreaterThanEqual:
		in.returned = floatBool(l >= r)
	case OpEqual:
		in.returned = floatBool(l == r)
	case OpNotEqual:
		in.returned = floatBool(l != r)
	}
}

// floatBool materializes a relational result the way the source does: a
// float tagged FLOAT holding 1.0 or 0.0, not a native bool.
func floatBool(b bool) Value {
	if b {
		return FloatValue(1)
	}
	return FloatValue(0)
}

// VisitUnary leaves its result tagged FLOAT for '-' (matching the source's
// convertReturnedType(FLOAT) with no reconversion back to the operand's
// original type afterward) and tagged BOOL for 'not'.
func (in *Interpreter) VisitUnary(n *Unary) {
	n.Operand.Accept(in)

	switch n.Op {
	case UnaryMinus:
		f := Coerce(in.returned, TypeFloat).F
		in.returned = FloatValue(-f)
	case UnaryNot:
		b := Coerce(in.returned, TypeBool).B
		in.returned = BoolValue(!b)
	}
}

// VisitFunctionCall evaluates each argument, resolves the exact overload
// by the argument types' positional match, then binds each formal
// parameter to its raw argument value with no coercion across the call
// boundary — matching the source, which assigns the buffered call-site
// value straight into the freshly declared parameter symbol.
func (in *Interpreter) VisitFunctionCall(n *FunctionCall) {
	argValues := make([]Value, len(n.Args))
	argTypes := make([]ValueType, len(n.Args))
	for i, arg := range n.Args {
		arg.Accept(in)
		argValues[i] = in.returned
		argTypes[i] = in.returned.Type
	}

	fn := in.table.GetFunction(n.Name, argTypes)

	in.table.Push()
	for i, p := range fn.Params {
		if err := in.table.DeclareFormalParam(p, fn.Line()); err != nil {
			panic(err)
		}
		in.table.Assign(p.Name, argValues[i])
	}

	fn.Body.Accept(in)
	in.returned = Coerce(in.returned, fn.ReturnType)
	in.table.Pop()
}
