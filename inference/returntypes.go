package inference

import (
	"github.com/polypheny/polytype/polytype"
)

// Strategies for the built-in operators.
var (
	Arg0 = OrdinalReturn(0)
	Arg1 = OrdinalReturn(1)
	Arg2 = OrdinalReturn(2)

	Arg0Nullable        = Cascade(Arg0, ToNullable)
	Arg0NullableVarying = Cascade(Arg0, ToNullable, ToVarying)
	Arg0ForceNullable   = Cascade(Arg0, ForceNullable)
	Arg1Nullable        = Cascade(Arg1, ToNullable)
	Arg2Nullable        = Cascade(Arg2, ToNullable)

	// Arg0Interval is the first operand's type, for interval operands.
	Arg0Interval         = Match(0, polytype.IntervalTypes)
	Arg0IntervalNullable = Cascade(Arg0Interval, ToNullable)

	Boolean              = ExplicitKind(polytype.KindBoolean)
	BooleanNullable      = Cascade(Boolean, ToNullable)
	BooleanForceNullable = Cascade(Boolean, ForceNullable)
	BooleanNotNull       = Cascade(Boolean, ToNotNullable)

	Date         = ExplicitKind(polytype.KindDate)
	Time         = ExplicitKindWithPrecision(polytype.KindTime, 0)
	TimeNullable = Cascade(Time, ToNullable)

	Double          = ExplicitKind(polytype.KindDouble)
	DoubleNullable  = Cascade(Double, ToNullable)
	Integer         = ExplicitKind(polytype.KindInteger)
	IntegerNullable = Cascade(Integer, ToNullable)

	BigInt              = ExplicitKind(polytype.KindBigInt)
	BigIntNullable      = Cascade(BigInt, ToNullable)
	BigIntForceNullable = Cascade(BigInt, ForceNullable)

	Varchar2000     = ExplicitKindWithPrecision(polytype.KindVarchar, 2000)
	VarcharNullable = Cascade(ExplicitKind(polytype.KindVarchar), ToNullable)
	// Histogram is the type of the internal histogram aggregate.
	Histogram  = ExplicitKindWithPrecision(polytype.KindVarbinary, 8)
	Cursor     = ExplicitKind(polytype.KindCursor)
	ColumnList = ExplicitKind(polytype.KindColumnList)

	LeastRestrictiveNullable = Cascade(LeastRestrictive, ToNullable)

	MultisetNullable         = Cascade(Multiset, ToNullable)
	MultisetElementNullable  = Cascade(Multiset, ToMultisetElement)
	MultisetProject0Nullable = Cascade(MultisetProject0, ToNullable)
	Arg0Multiset             = Cascade(Arg0, ToMultiset)
	Arg0Array                = Cascade(Arg0, ToArray)

	// IntegerQuotientNullable is the first operand's type for integer division, made nullable.
	IntegerQuotientNullable = Chain(Arg0IntervalNullable, LeastRestrictiveNullable)

	// Arg0OrExactNoScale is DECIMAL with scale 0 for a DECIMAL operand and the operand type otherwise.
	Arg0OrExactNoScale = Chain(DecimalScale0, Arg0)

	DecimalProductNullable  = Cascade(DecimalProduct, ToNullable)
	DecimalQuotientNullable = Cascade(DecimalQuotient, ToNullable)
	DecimalSumNullable      = Cascade(DecimalSum, ToNullable)

	// ProductNullable is the type of "*": a decimal product, the interval operand, or the least restrictive type.
	ProductNullable = Chain(DecimalProductNullable, Arg0IntervalNullable, LeastRestrictiveNullable)
	// QuotientNullable is the type of "/".
	QuotientNullable = Chain(DecimalQuotientNullable, Arg0IntervalNullable, LeastRestrictiveNullable)
	// NullableSum is the type of "+" and "-".
	NullableSum = Chain(DecimalSumNullable, LeastRestrictiveNullable)

	DyadicStringSumPrecisionNullable        = Cascade(DyadicStringSumPrecision, ToNullable)
	DyadicStringSumPrecisionNullableVarying = Cascade(DyadicStringSumPrecision, ToNullable, ToVarying)
	MultivalentStringSumPrecisionNullable   = Cascade(MultivalentStringSumPrecision, ToNullable)
)
