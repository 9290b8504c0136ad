package inference

import (
	"fmt"

	"github.com/polypheny/polytype/polytype"
)

// LeastRestrictive returns the least restrictive type of all operands.
var LeastRestrictive ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	return b.Factory().LeastRestrictive(OperandTypes(b))
})

// Multiset returns a multiset of the least restrictive element type of the multiset operands.
var Multiset ReturnTypeInference = Func(func(b OperatorBinding) (*polytype.Type, error) {
	elements := make([]*polytype.Type, b.OperandCount())
	for i := range elements {
		elements[i] = b.OperandType(i).ComponentType()
		if elements[i] == nil {
			panic(fmt.Sprintf("operand %d is not a collection: %s", i, b.OperandType(i)))
		}
	}
	element, err := LeastRestrictive.InferReturnType(explicitBinding{OperatorBinding: b, types: elements})
	if err != nil || element == nil {
		return nil, err
	}
	return b.Factory().CreateMultisetType(element, polytype.NotSpecified), nil
})

// DecimalScale0 returns a DECIMAL with the first operand's precision and nullability and a scale of 0.
// It doesn't apply to other operands.
var DecimalScale0 ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	t := b.OperandType(0)
	if !polytype.IsDecimal(t) {
		return nil
	}
	if t.Scale() == 0 {
		return t
	}
	f := b.Factory()
	return f.CreateTypeWithNullability(f.CreateTypeWithScale(polytype.KindDecimal, t.Precision(), 0), t.IsNullable())
})

// DecimalProduct is the type of multiplying two exact numerics at least one of which is a DECIMAL.
var DecimalProduct ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	return b.Factory().CreateDecimalProduct(b.OperandType(0), b.OperandType(1))
})

// DecimalQuotient is the type of dividing two exact numerics at least one of which is a DECIMAL.
var DecimalQuotient ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	return b.Factory().CreateDecimalQuotient(b.OperandType(0), b.OperandType(1))
})

// DecimalSum is the type of adding two exact numerics at least one of which is a DECIMAL:
// scale max(s1, s2) and precision max(p1 - s1, p2 - s2) + scale + 1, capped by the type system.
var DecimalSum ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	t1, t2 := b.OperandType(0), b.OperandType(1)
	if !polytype.IsExactNumeric(t1) || !polytype.IsExactNumeric(t2) {
		return nil
	}
	if !polytype.IsDecimal(t1) && !polytype.IsDecimal(t2) {
		return nil
	}
	f := b.Factory()
	scale := max(t1.Scale(), t2.Scale())
	precision := max(t1.Precision()-t1.Scale(), t2.Precision()-t2.Scale()) + scale + 1
	precision = min(precision, f.TypeSystem().MaxNumericPrecision())
	return f.CreateTypeWithScale(polytype.KindDecimal, precision, scale)
})

// DyadicStringSumPrecision is the type of concatenating two strings of the same family.
// The precisions add up, the result is varying if the second operand is, and character
// results get the collation the two operands' collations combine to.
var DyadicStringSumPrecision ReturnTypeInference = Func(func(b OperatorBinding) (*polytype.Type, error) {
	t0, t1 := b.OperandType(0), b.OperandType(1)
	containsAny := t0.Kind() == polytype.KindAny || t1.Kind() == polytype.KindAny
	if !containsAny && !(polytype.InCharOrBinaryFamilies(t0) && polytype.InCharOrBinaryFamilies(t1)) && !polytype.SameNamedType(t0, t1) {
		panic(fmt.Sprintf("can't concatenate %s and %s", t0, t1))
	}

	var picked *polytype.Collation
	if !containsAny && polytype.InCharFamily(t0) {
		if !polytype.IsCharTypeComparable([]*polytype.Type{t0, t1}) {
			return nil, b.NewError(-1, "type %s is not comparable to %s", t0.FullTypeString(), t1.FullTypeString())
		}
		collation, err := polytype.DyadicCollation(t0.Collation(), t1.Collation())
		if err != nil {
			return nil, b.NewError(-1, "%s", err)
		}
		if collation == nil {
			return nil, b.NewError(-1, "no collation for %s and %s", t0.FullTypeString(), t1.FullTypeString())
		}
		picked = collation
	}

	kind := t0.Kind()
	if polytype.IsBoundedVariableWidth(t1) {
		kind = t1.Kind()
	}
	f := b.Factory()
	p0, p1 := t0.Precision(), t1.Precision()
	precision := p0 + p1
	if p0 == polytype.NotSpecified || p1 == polytype.NotSpecified || precision > f.TypeSystem().MaxPrecision(kind) {
		precision = polytype.NotSpecified
	}
	out := f.CreateTypeWithPrecision(kind, precision)
	if picked != nil {
		var pickedType *polytype.Type
		switch {
		case t0.Collation().Equal(picked):
			pickedType = t0
		case t1.Collation().Equal(picked):
			pickedType = t1
		default:
			panic("impossible, picked collation belongs to neither operand")
		}
		out = f.CreateTypeWithCharsetAndCollation(out, pickedType.Charset(), pickedType.Collation())
	}
	return out, nil
})

// MultivalentStringSumPrecision is the VARCHAR type of concatenating any number of strings.
// Without all precisions known, or when their sum is too large, it gets the default precision.
var MultivalentStringSumPrecision ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	f := b.Factory()
	ts := f.TypeSystem()
	precision := 0
	for _, t := range OperandTypes(b) {
		p := t.Precision()
		if p == polytype.NotSpecified {
			precision = ts.DefaultPrecision(polytype.KindVarchar)
			break
		}
		precision += p
		if precision > ts.MaxPrecision(polytype.KindVarchar) {
			precision = ts.DefaultPrecision(polytype.KindVarchar)
			break
		}
	}
	return f.CreateTypeWithPrecision(polytype.KindVarchar, precision)
})

// MultisetProject0 returns a multiset of the first field of a record multiset.
var MultisetProject0 ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	element := b.OperandType(0).ComponentType()
	if element == nil || element.FieldCount() == 0 {
		panic(fmt.Sprintf("expected a multiset of records: %s", b.OperandType(0)))
	}
	return b.Factory().CreateMultisetType(element.Fields()[0].Type, polytype.NotSpecified)
})

// MultisetRecord wraps the element type of a multiset into a record with a single field.
var MultisetRecord ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	element := b.OperandType(0).ComponentType()
	if element == nil {
		panic(fmt.Sprintf("expected a multiset: %s", b.OperandType(0)))
	}
	f := b.Factory()
	return f.CreateMultisetType(f.Builder().Add("EXPR$0", element).Build(), polytype.NotSpecified)
})

// RecordToScalar returns the nullable type of the single field of a record.
var RecordToScalar ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	t := b.OperandType(0)
	if !t.IsStruct() || t.FieldCount() != 1 {
		panic(fmt.Sprintf("expected a record with one field: %s", t))
	}
	return b.Factory().CreateTypeWithNullability(t.Fields()[0].Type, true)
})

// nullableIfEmpty makes the type nullable for calls in a "GROUP BY ()" query or with a filter,
// as those may aggregate no rows at all.
func nullableIfEmpty(b OperatorBinding, t *polytype.Type) *polytype.Type {
	if b.GroupCount() == 0 || b.HasFilter() {
		return b.Factory().CreateTypeWithNullability(t, true)
	}
	return t
}

// Arg0NullableIfEmpty returns the first operand's type, nullable if the aggregate may see no rows.
var Arg0NullableIfEmpty ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	return nullableIfEmpty(b, b.OperandType(0))
})

// AggSum is the type of SUM: the operand's type, nullable if the aggregate may see no rows.
var AggSum = Arg0NullableIfEmpty

// AggSumEmptyIsZero is the type of $SUM0, which is never NULL.
var AggSumEmptyIsZero ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	return b.Factory().CreateTypeWithNullability(b.OperandType(0), false)
})

// AvgAgg is the type of AVG and the other statistical aggregates of one operand.
var AvgAgg = Arg0NullableIfEmpty

// CovarRegr is the type of COVAR_POP and REGR_* aggregates: the first operand's type.
var CovarRegr = Arg0NullableIfEmpty

// FractionalRank is the type of CUME_DIST and PERCENT_RANK.
var FractionalRank ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	return b.Factory().CreateType(polytype.KindDouble)
})

// Rank is the type of NTILE, RANK, DENSE_RANK and ROW_NUMBER.
var Rank ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	return b.Factory().CreateType(polytype.KindBigInt)
})

// BooleanNullableOptimized is BooleanNullable for calls whose operands are all BOOLEAN:
// the first nullable operand type, or the last operand type.
var BooleanNullableOptimized ReturnTypeInference = typeFunc(func(b OperatorBinding) *polytype.Type {
	var t *polytype.Type
	for i := 0; i < b.OperandCount(); i++ {
		t = b.OperandType(i)
		if t.IsNullable() {
			break
		}
	}
	return t
})

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
