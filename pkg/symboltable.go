package minilang

// Symbol is one entry of a scope: a variable's declared type, or a
// function name's overload set. A variable symbol has a nil Overloads; a
// function symbol has no runtime Value and a non-empty Overloads.
type Symbol struct {
	Type      ValueType
	Line      int
	Overloads []*FunctionDecl
	Value     Value
}

func (s *Symbol) isFunction() bool { return len(s.Overloads) > 0 }

// scope is a name-to-symbol mapping with no ordering significance.
type scope map[string]*Symbol

// SymbolTable is a stack of scopes supporting variable declaration,
// function overloading, and innermost-first lookup. The stack always has
// at least one scope during a traversal; callers are responsible for
// balancing Push/Pop, including on error paths (spec §5's scoped resource
// discipline).
type SymbolTable struct {
	scopes []scope
}

// NewSymbolTable returns an empty table with no scope pushed yet; the
// first Push establishes the program-level scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Push enters a new, empty scope.
func (t *SymbolTable) Push() {
	t.scopes = append(t.scopes, make(scope))
}

// Pop leaves the innermost scope.
func (t *SymbolTable) Pop() {
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth reports how many scopes are currently on the stack, for the
// scope-discipline property: depth before a walk must equal depth after.
func (t *SymbolTable) Depth() int {
	return len(t.scopes)
}

func (t *SymbolTable) top() scope {
	return t.scopes[len(t.scopes)-1]
}

// IsDeclared reports whether name exists in any scope, innermost first.
func (t *SymbolTable) IsDeclared(name string) bool {
	_, ok := t.find(name)
	return ok
}

// IsDeclaredOverload reports whether name exists in any scope AND some
// overload's parameter types exactly match paramTypes positionally.
func (t *SymbolTable) IsDeclaredOverload(name string, paramTypes []ValueType) bool {
	sym, ok := t.find(name)
	if !ok {
		return false
	}

	return matchOverload(sym, paramTypes) != nil
}

// isDeclaredInnermost reports whether name exists in the innermost scope
// only, used to enforce no-redeclaration-in-the-same-scope for variables.
func (t *SymbolTable) isDeclaredInnermost(name string) bool {
	_, ok := t.top()[name]
	return ok
}

// find looks up name starting from the innermost scope outward.
func (t *SymbolTable) find(name string) (*Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i][name]; ok {
			return sym, true
		}
	}

	return nil, false
}

func matchOverload(sym *Symbol, paramTypes []ValueType) *FunctionDecl {
	for _, decl := range sym.Overloads {
		if len(decl.Params) != len(paramTypes) {
			continue
		}

		match := true
		for i, p := range decl.Params {
			if p.Type != paramTypes[i] {
				match = false
				break
			}
		}

		if match {
			return decl
		}
	}

	return nil
}

// DeclareVariable adds a variable to the innermost scope. It fails if a
// symbol with the same name already exists in that same innermost scope;
// shadowing an outer declaration is allowed.
func (t *SymbolTable) DeclareVariable(decl *VariableDecl) error {
	if t.isDeclaredInnermost(decl.Name) {
		return newSemanticErrorf(decl.Line(), "Variable %s is already declared in the current scope.", decl.Name)
	}

	t.top()[decl.Name] = &Symbol{Type: decl.DeclaredType, Line: decl.Line()}

	return nil
}

// DeclareFormalParam declares a function parameter as a plain variable of
// its type in the current (the function body's) scope.
func (t *SymbolTable) DeclareFormalParam(p FormalParam, line int) error {
	return t.DeclareVariable(&VariableDecl{line: newLine(line), Name: p.Name, DeclaredType: p.Type})
}

// DeclareFunction adds or extends the overload set for decl.Name. Functions
// are assumed to be declared only at the outermost (program) scope, so
// "the innermost scope" and "the function's home scope" coincide here.
//
// Rule set, checked in order:
//  1. If the exact (name, param-type vector) signature already exists
//     anywhere, fail.
//  2. Else if name exists in the innermost scope with a different return
//     type, fail.
//  3. Else if name exists with the same return type, append to Overloads.
//  4. Else insert a new function symbol.
func (t *SymbolTable) DeclareFunction(decl *FunctionDecl) error {
	paramTypes := make([]ValueType, len(decl.Params))
	for i, p := range decl.Params {
		paramTypes[i] = p.Type
	}

	if t.IsDeclaredOverload(decl.Name, paramTypes) {
		return newSemanticErrorf(decl.Line(), "Function %s(%s) is already declared.", decl.Name, joinTypes(paramTypes))
	}

	if existing, ok := t.top()[decl.Name]; ok {
		if existing.Type != decl.ReturnType {
			return newSemanticErrorf(decl.Line(), "Function %s has already been declared with a different return type.", decl.Name)
		}

		existing.Overloads = append(existing.Overloads, decl)
		return nil
	}

	t.top()[decl.Name] = &Symbol{
		Type:      decl.ReturnType,
		Line:      decl.Line(),
		Overloads: []*FunctionDecl{decl},
	}

	return nil
}

func joinTypes(types []ValueType) string {
	s := ""
	for i, ty := range types {
		if i > 0 {
			s += ", "
		}
		s += ty.String()
	}
	return s
}

// GetType returns the declared type of name (a function's return type,
// for a function symbol). The caller must already know name is declared.
func (t *SymbolTable) GetType(name string) ValueType {
	sym, _ := t.find(name)
	return sym.Type
}

// GetFunction returns the overload of name matching paramTypes exactly, or
// nil if none matches.
func (t *SymbolTable) GetFunction(name string, paramTypes []ValueType) *FunctionDecl {
	sym, ok := t.find(name)
	if !ok {
		return nil
	}

	return matchOverload(sym, paramTypes)
}

// Assign overwrites the runtime value of an already-declared symbol,
// wherever in the scope stack it lives.
func (t *SymbolTable) Assign(name string, value Value) {
	sym, _ := t.find(name)
	sym.Value = value
}
