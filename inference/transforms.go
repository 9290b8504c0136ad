package inference

import (
	"fmt"

	"github.com/polypheny/polytype/polytype"
)

// Transform changes an inferred type, for example its nullability.
type Transform interface {
	TransformType(b OperatorBinding, t *polytype.Type) *polytype.Type
}

type TransformFunc func(b OperatorBinding, t *polytype.Type) *polytype.Type

func (fn TransformFunc) TransformType(b OperatorBinding, t *polytype.Type) *polytype.Type {
	return fn(b, t)
}

var (
	// ToNullable makes the type nullable if any operand is.
	ToNullable Transform = TransformFunc(func(b OperatorBinding, t *polytype.Type) *polytype.Type {
		return polytype.MakeNullableIfOperandsAre(b.Factory(), OperandTypes(b), t)
	})

	// ToNullableAll makes the type nullable if all operands are.
	ToNullableAll Transform = TransformFunc(func(b OperatorBinding, t *polytype.Type) *polytype.Type {
		for _, operand := range OperandTypes(b) {
			if !operand.IsNullable() {
				return t
			}
		}
		return b.Factory().CreateTypeWithNullability(t, true)
	})

	ForceNullable Transform = TransformFunc(func(b OperatorBinding, t *polytype.Type) *polytype.Type {
		return b.Factory().CreateTypeWithNullability(t, true)
	})

	ToNotNullable Transform = TransformFunc(func(b OperatorBinding, t *polytype.Type) *polytype.Type {
		return b.Factory().CreateTypeWithNullability(t, false)
	})

	// ToVarying turns CHAR into VARCHAR and BINARY into VARBINARY, keeping
	// precision, charset, collation and nullability. Other types are kept.
	ToVarying Transform = TransformFunc(func(b OperatorBinding, t *polytype.Type) *polytype.Type {
		var kind polytype.Kind
		switch t.Kind() {
		case polytype.KindChar:
			kind = polytype.KindVarchar
		case polytype.KindBinary:
			kind = polytype.KindVarbinary
		default:
			return t
		}
		f := b.Factory()
		out := f.CreateTypeWithPrecision(kind, t.Precision())
		if polytype.InCharFamily(t) {
			out = f.CreateTypeWithCharsetAndCollation(out, t.Charset(), t.Collation())
		}
		return f.CreateTypeWithNullability(out, t.IsNullable())
	})

	ToMultiset Transform = TransformFunc(func(b OperatorBinding, t *polytype.Type) *polytype.Type {
		return b.Factory().CreateMultisetType(t, polytype.NotSpecified)
	})

	ToMultisetElement Transform = TransformFunc(func(b OperatorBinding, t *polytype.Type) *polytype.Type {
		return t.ComponentType()
	})

	ToArray Transform = TransformFunc(func(b OperatorBinding, t *polytype.Type) *polytype.Type {
		return b.Factory().CreateArrayType(t, polytype.NotSpecified)
	})

	// OnlyColumn returns the type of the single field of a record.
	OnlyColumn Transform = TransformFunc(func(b OperatorBinding, t *polytype.Type) *polytype.Type {
		if !t.IsStruct() || t.FieldCount() != 1 {
			panic(fmt.Sprintf("%s is not a record with a single field", t))
		}
		return t.Fields()[0].Type
	})
)
