package minilang

// Value is a tagged runtime value produced and consumed by the
// interpreter. Spec: "reimplement as a tagged runtime-value type keyed by
// the symbol's declared type; do not reuse AST nodes as value containers."
// Exactly one of the typed fields is meaningful, selected by Type.
type Value struct {
	Type ValueType
	B    bool
	F    float64
	I    int64
	S    string
}

func BoolValue(b bool) Value     { return Value{Type: TypeBool, B: b} }
func FloatValue(f float64) Value { return Value{Type: TypeFloat, F: f} }
func IntValue(i int64) Value     { return Value{Type: TypeInt, I: i} }
func StringValue(s string) Value { return Value{Type: TypeString, S: s} }

// AsFloat returns v's numeric/boolean content widened to float64. Callers
// must only call this when v.Type is bool, float or int.
func (v Value) AsFloat() float64 {
	switch v.Type {
	case TypeBool:
		if v.B {
			return 1
		}
		return 0
	case TypeFloat:
		return v.F
	case TypeInt:
		return float64(v.I)
	default:
		return 0
	}
}

// AsBool returns v's numeric/boolean content narrowed to bool: non-zero is
// true. Callers must only call this when v.Type is bool, float or int.
func (v Value) AsBool() bool {
	switch v.Type {
	case TypeBool:
		return v.B
	case TypeFloat:
		return v.F != 0
	case TypeInt:
		return v.I != 0
	default:
		return false
	}
}

// Coerce converts v to target, widening/narrowing between {bool, float,
// int} by standard conversion (non-zero <-> true, truncation toward zero
// float -> int). string only coerces to string; asking to coerce a string
// to a numeric/boolean type, or a numeric/boolean value to string, leaves
// v unchanged under a relabeled type — callers never legally hit this path
// in a program that passed semantic analysis, since types_match forbids
// mixing string with the other three.
//
// This is the single coercion table spec §9 calls for, shared by the
// semantic analyzer (via types_match's notion of compatibility) and the
// interpreter (here, for actual value conversion).
func Coerce(v Value, target ValueType) Value {
	switch target {
	case TypeBool:
		switch v.Type {
		case TypeFloat, TypeInt:
			return BoolValue(v.AsBool())
		default:
			return Value{Type: TypeBool, B: v.B}
		}
	case TypeFloat:
		switch v.Type {
		case TypeBool, TypeInt:
			return FloatValue(v.AsFloat())
		default:
			return Value{Type: TypeFloat, F: v.F}
		}
	case TypeInt:
		switch v.Type {
		case TypeBool:
			if v.B {
				return IntValue(1)
			}
			return IntValue(0)
		case TypeFloat:
			return IntValue(int64(v.F))
		default:
			return Value{Type: TypeInt, I: v.I}
		}
	case TypeString:
		return Value{Type: TypeString, S: v.S}
	default:
		return v
	}
}
