// Package inference derives the return types of operator calls from their operand types.
package inference

import (
	"github.com/polypheny/polytype/polytype"
)

// OperatorBinding describes a call whose return type is being inferred.
// *checker.Binding implements it.
type OperatorBinding interface {
	OperatorName() string
	OperandCount() int
	OperandType(i int) *polytype.Type
	Factory() *polytype.Factory
	NewError(operand int, format string, args ...interface{}) error
	// GroupCount is 0 for calls in a "GROUP BY ()" query and -1 outside of aggregate queries.
	GroupCount() int
	HasFilter() bool
}

// ReturnTypeInference infers the return type of a call.
// A nil type with a nil error means the strategy doesn't apply to the operands.
type ReturnTypeInference interface {
	InferReturnType(b OperatorBinding) (*polytype.Type, error)
}

// Func adapts a function to ReturnTypeInference.
type Func func(b OperatorBinding) (*polytype.Type, error)

func (fn Func) InferReturnType(b OperatorBinding) (*polytype.Type, error) {
	return fn(b)
}

// typeFunc is a strategy which can't fail.
func typeFunc(fn func(b OperatorBinding) *polytype.Type) Func {
	return func(b OperatorBinding) (*polytype.Type, error) {
		return fn(b), nil
	}
}

// OperandTypes collects the types of all operands.
func OperandTypes(b OperatorBinding) []*polytype.Type {
	types := make([]*polytype.Type, b.OperandCount())
	for i := range types {
		types[i] = b.OperandType(i)
	}
	return types
}

// OrdinalReturn returns the type of the given operand.
func OrdinalReturn(ordinal int) ReturnTypeInference {
	return typeFunc(func(b OperatorBinding) *polytype.Type {
		return b.OperandType(ordinal)
	})
}

// Explicit always returns the given type.
func Explicit(t *polytype.Type) ReturnTypeInference {
	return typeFunc(func(b OperatorBinding) *polytype.Type {
		return t
	})
}

// ExplicitKind returns a type of the given kind, created by the binding's factory.
func ExplicitKind(kind polytype.Kind) ReturnTypeInference {
	return typeFunc(func(b OperatorBinding) *polytype.Type {
		return b.Factory().CreateType(kind)
	})
}

// ExplicitKindWithPrecision is like ExplicitKind, with a precision such as VARCHAR(100).
func ExplicitKindWithPrecision(kind polytype.Kind, precision int) ReturnTypeInference {
	return typeFunc(func(b OperatorBinding) *polytype.Type {
		return b.Factory().CreateTypeWithPrecision(kind, precision)
	})
}

// Match returns the type of the first operand, starting at start, whose kind is one of kinds.
func Match(start int, kinds []polytype.Kind) ReturnTypeInference {
	return typeFunc(func(b OperatorBinding) *polytype.Type {
		for i := start; i < b.OperandCount(); i++ {
			if t := b.OperandType(i); polytype.ContainsKind(kinds, t.Kind()) {
				return t
			}
		}
		return nil
	})
}

// Chain tries the rules in order and returns the first type inferred.
func Chain(rules ...ReturnTypeInference) ReturnTypeInference {
	if len(rules) < 2 {
		panic("chain needs at least two rules")
	}
	return Func(func(b OperatorBinding) (*polytype.Type, error) {
		for _, rule := range rules {
			t, err := rule.InferReturnType(b)
			if err != nil {
				return nil, err
			}
			if t != nil {
				return t, nil
			}
		}
		return nil, nil
	})
}

// Cascade applies the transforms in order to the type inferred by rule.
func Cascade(rule ReturnTypeInference, transforms ...Transform) ReturnTypeInference {
	if len(transforms) == 0 {
		panic("cascade needs at least one transform")
	}
	return Func(func(b OperatorBinding) (*polytype.Type, error) {
		t, err := rule.InferReturnType(b)
		if err != nil || t == nil {
			return nil, err
		}
		for _, transform := range transforms {
			t = transform.TransformType(b, t)
		}
		return t, nil
	})
}

// explicitBinding replaces the operand types of a binding.
type explicitBinding struct {
	OperatorBinding
	types []*polytype.Type
}

func (b explicitBinding) OperandCount() int {
	return len(b.types)
}

func (b explicitBinding) OperandType(i int) *polytype.Type {
	return b.types[i]
}
