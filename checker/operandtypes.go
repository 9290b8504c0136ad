package checker

import (
	"github.com/polypheny/polytype/polytype"
)

// Predefined checkers of the builtin operators.
var (
	// Niladic is for operators without operands.
	Niladic = Family()
	// AnyNumber puts no restriction on the number or types of operands.
	AnyNumber = Variadic(CountAny())
	OneOrMore = Variadic(CountFrom(1))

	Boolean                  = Family(polytype.FamilyBoolean)
	BooleanBoolean           = Family(polytype.FamilyBoolean, polytype.FamilyBoolean)
	Numeric                  = Family(polytype.FamilyNumeric)
	Integer                  = Family(polytype.FamilyInteger)
	NumericOptionalInteger   = FamilyWithOptional([]polytype.FamilyTag{polytype.FamilyNumeric, polytype.FamilyInteger}, func(i int) bool { return i == 1 })
	NumericInteger           = Family(polytype.FamilyNumeric, polytype.FamilyInteger)
	NumericNumeric           = Family(polytype.FamilyNumeric, polytype.FamilyNumeric)
	ExactNumeric             = Family(polytype.FamilyExactNumeric)
	ExactNumericExactNumeric = Family(polytype.FamilyExactNumeric, polytype.FamilyExactNumeric)
	Binary                   = Family(polytype.FamilyBinary)
	String                   = Family(polytype.FamilyString)
	StringString             = Family(polytype.FamilyString, polytype.FamilyString)
	StringStringString       = Family(polytype.FamilyString, polytype.FamilyString, polytype.FamilyString)
	Character                = Family(polytype.FamilyCharacter)
	Datetime                 = Family(polytype.FamilyDatetime)
	Interval                 = Family(polytype.FamilyDatetimeInterval)
	IntervalInterval         = Family(polytype.FamilyDatetimeInterval, polytype.FamilyDatetimeInterval)
	Multiset                 = Family(polytype.FamilyMultiset)
	Array                    = Family(polytype.FamilyArray)
	Map                      = Family(polytype.FamilyMap)
	Any                      = Family(polytype.FamilyAny)
	AnyAny                   = Family(polytype.FamilyAny, polytype.FamilyAny)
	AnyNumeric               = Family(polytype.FamilyAny, polytype.FamilyNumeric)

	// Period accepts PERIOD (DATETIME, DATETIME) and PERIOD (DATETIME, INTERVAL) rows.
	Period = &recordChecker{
		valid:      isPeriod,
		signatures: []string{"PERIOD (DATETIME, INTERVAL)", "PERIOD (DATETIME, DATETIME)"},
		aliased:    true,
	}
	PeriodOrDatetime = Or(Period, Datetime)

	// Collection accepts a multiset or an array, but not a map.
	Collection      = Or(Family(polytype.FamilyMultiset), Family(polytype.FamilyArray))
	CollectionOrMap = Or(Family(polytype.FamilyMultiset), Family(polytype.FamilyArray), Family(polytype.FamilyMap))

	NullableLiteral = NewLiteralChecker(true)
	Literal         = NewLiteralChecker(false)
	// PositiveIntegerLiteral accepts non-NULL integer literals from zero up to the INTEGER maximum.
	PositiveIntegerLiteral SingleChecker = positiveIntegerLiteralChecker{Family(polytype.FamilyInteger)}

	SameSame        = SameOperandTypes(2)
	SameSameSame    = SameOperandTypes(3)
	SameSameInteger = SameOperandTypesExceptLast(3, "INTEGER")
	SameVariadic    = SameOperandTypes(-1)

	// Comparable is for two operands allowing ordered comparison.
	Comparable          = NewComparableChecker(2, polytype.ComparabilityAll, ConsistencyCompare)
	ComparableOrdered   = NewComparableChecker(1, polytype.ComparabilityAll, ConsistencyNone)
	ComparableUnordered = NewComparableChecker(2, polytype.ComparabilityUnordered, ConsistencyLeastRestrictive)

	StringSameSame             = And(StringString, SameSame)
	StringSameSameSame         = And(StringStringString, SameSameSame)
	StringStringInteger        = Family(polytype.FamilyString, polytype.FamilyString, polytype.FamilyInteger)
	StringStringIntegerInteger = Family(polytype.FamilyString, polytype.FamilyString, polytype.FamilyInteger, polytype.FamilyInteger)
	StringSameSameInteger      = And(StringStringInteger, SameSameInteger)

	IntervalSameSame                 = And(IntervalInterval, SameSame)
	NumericInterval                  = Family(polytype.FamilyNumeric, polytype.FamilyDatetimeInterval)
	IntervalNumeric                  = Family(polytype.FamilyDatetimeInterval, polytype.FamilyNumeric)
	DatetimeInterval                 = Family(polytype.FamilyDatetime, polytype.FamilyDatetimeInterval)
	DatetimeIntervalInterval         = Family(polytype.FamilyDatetime, polytype.FamilyDatetimeInterval, polytype.FamilyDatetimeInterval)
	DatetimeIntervalIntervalTime     = Family(polytype.FamilyDatetime, polytype.FamilyDatetimeInterval, polytype.FamilyDatetimeInterval, polytype.FamilyTime)
	DatetimeIntervalTime             = Family(polytype.FamilyDatetime, polytype.FamilyDatetimeInterval, polytype.FamilyTime)
	IntervalDatetime                 = Family(polytype.FamilyDatetimeInterval, polytype.FamilyDatetime)
	IntervalIntervalIntervalDatetime = Or(IntervalSameSame, IntervalDatetime)

	PlusOperator     = Or(NumericNumeric, IntervalSameSame, DatetimeInterval, IntervalDatetime)
	MinusOperator    = Or(NumericNumeric, IntervalSameSame, DatetimeInterval)
	MultiplyOperator = Or(NumericNumeric, IntervalNumeric, NumericInterval)
	DivisionOperator = Or(NumericNumeric, IntervalNumeric)
	// MinusDateOperator checks (DATETIME, DATETIME, INTERVAL) with both datetimes of the same type.
	MinusDateOperator Checker = minusDateChecker{Family(polytype.FamilyDatetime, polytype.FamilyDatetime, polytype.FamilyDatetimeInterval)}

	NumericOrInterval = Or(Numeric, Interval)
	NumericOrString   = Or(Numeric, String)

	// RecordCollection accepts a record holding a single multiset or array.
	RecordCollection = &recordChecker{
		valid:      isRecordCollection,
		signatures: []string{"UNNEST(<MULTISET>)"},
	}
	ScalarOrRecordCollection      = Or(Collection, RecordCollection)
	ScalarOrRecordCollectionOrMap = Or(CollectionOrMap, RecordCollection)
	RecordToScalar                = &recordChecker{
		valid:      isSingleFieldRecord,
		signatures: []string{"RECORDTYPE(SINGLE FIELD)"},
		aliased:    true,
	}

	MultisetMultiset Checker = multisetChecker{}
	// SetOp checks the inputs of UNION, INTERSECT and EXCEPT.
	SetOp Checker = setOpChecker{}
)

type minusDateChecker struct {
	*FamilyChecker
}

func (c minusDateChecker) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	if ok, err := c.FamilyChecker.CheckOperandTypes(b, throwOnFailure); !ok {
		return false, err
	}
	return SameSame.CheckOperandTypes(b, throwOnFailure)
}
