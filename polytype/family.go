package polytype

import "fmt"

// Family groups types which may be compared and combined with each other.
// It is either a FamilyTag or a descriptor which forms a family of its own.
type Family interface {
	FamilyName() string
}

// FamilyTag is one of the fixed, kind-based families.
type FamilyTag int

const (
	FamilyCharacter FamilyTag = iota + 1
	FamilyBinary
	FamilyNumeric
	FamilyDate
	FamilyTime
	FamilyTimestamp
	FamilyBoolean
	FamilyIntervalYearMonth
	FamilyIntervalDayTime
	FamilyString
	FamilyApproximateNumeric
	FamilyExactNumeric
	FamilyInteger
	FamilyDatetime
	FamilyDatetimeInterval
	FamilyMultiset
	FamilyArray
	FamilyMap
	FamilyNull
	FamilyAny
	FamilyCursor
	FamilyColumnList
	FamilyGeo
	FamilyMultimedia
	FamilyDocument
	FamilyGraph
)

var familyNames = map[FamilyTag]string{
	FamilyCharacter:          "CHARACTER",
	FamilyBinary:             "BINARY",
	FamilyNumeric:            "NUMERIC",
	FamilyDate:               "DATE",
	FamilyTime:               "TIME",
	FamilyTimestamp:          "TIMESTAMP",
	FamilyBoolean:            "BOOLEAN",
	FamilyIntervalYearMonth:  "INTERVAL_YEAR_MONTH",
	FamilyIntervalDayTime:    "INTERVAL_DAY_TIME",
	FamilyString:             "STRING",
	FamilyApproximateNumeric: "APPROXIMATE_NUMERIC",
	FamilyExactNumeric:       "EXACT_NUMERIC",
	FamilyInteger:            "INTEGER",
	FamilyDatetime:           "DATETIME",
	FamilyDatetimeInterval:   "DATETIME_INTERVAL",
	FamilyMultiset:           "MULTISET",
	FamilyArray:              "ARRAY",
	FamilyMap:                "MAP",
	FamilyNull:               "NULL",
	FamilyAny:                "ANY",
	FamilyCursor:             "CURSOR",
	FamilyColumnList:         "COLUMN_LIST",
	FamilyGeo:                "GEO",
	FamilyMultimedia:         "MULTIMEDIA",
	FamilyDocument:           "DOCUMENT",
	FamilyGraph:              "GRAPH",
}

func (f FamilyTag) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FamilyTag(%d)", int(f))
}

func (f FamilyTag) FamilyName() string {
	return f.String()
}

// FamilyByName looks up a family tag by its name.
func FamilyByName(name string) (FamilyTag, bool) {
	for tag, tagName := range familyNames {
		if tagName == name {
			return tag, true
		}
	}
	return 0, false
}

// TypeNames returns the kinds belonging to the family.
func (f FamilyTag) TypeNames() []Kind {
	switch f {
	case FamilyCharacter:
		return CharTypes
	case FamilyBinary:
		return BinaryTypes
	case FamilyNumeric:
		return NumericTypes
	case FamilyDate:
		return []Kind{KindDate}
	case FamilyTime:
		return []Kind{KindTime, KindTimeWithLocalTimeZone}
	case FamilyTimestamp:
		return []Kind{KindTimestamp, KindTimestampWithLocalTimeZone}
	case FamilyBoolean:
		return BooleanTypes
	case FamilyIntervalYearMonth:
		return YearIntervalTypes
	case FamilyIntervalDayTime:
		return DayIntervalTypes
	case FamilyString:
		return StringTypes
	case FamilyApproximateNumeric:
		return ApproxTypes
	case FamilyExactNumeric:
		return ExactTypes
	case FamilyInteger:
		return IntTypes
	case FamilyDatetime:
		return DatetimeTypes
	case FamilyDatetimeInterval:
		return IntervalTypes
	case FamilyMultiset:
		return []Kind{KindMultiset}
	case FamilyArray:
		return []Kind{KindArray}
	case FamilyMap:
		return []Kind{KindMap}
	case FamilyNull:
		return []Kind{KindNull}
	case FamilyAny:
		return AllTypes
	case FamilyCursor:
		return []Kind{KindCursor}
	case FamilyColumnList:
		return []Kind{KindColumnList}
	case FamilyGeo:
		return []Kind{KindGeometry}
	case FamilyMultimedia:
		return MultimediaTypes
	case FamilyDocument:
		return []Kind{KindDocument, KindJSON}
	case FamilyGraph:
		return GraphTypes
	}
	panic(fmt.Sprintf("impossible, unknown family %d", int(f)))
}

// Contains reports whether the descriptor's kind belongs to the family.
func (f FamilyTag) Contains(t *Type) bool {
	return ContainsKind(f.TypeNames(), t.Kind())
}

// DefaultConcreteType returns the type a value of this family gets when
// nothing more specific is known, or nil.
func (f FamilyTag) DefaultConcreteType(factory *Factory) *Type {
	switch f {
	case FamilyCharacter, FamilyString:
		return factory.CreateType(KindVarchar)
	case FamilyBinary:
		return factory.CreateType(KindVarbinary)
	case FamilyNumeric, FamilyExactNumeric:
		return factory.CreateType(KindDecimal)
	case FamilyApproximateNumeric:
		return factory.CreateType(KindDouble)
	case FamilyInteger:
		return factory.CreateType(KindBigInt)
	case FamilyBoolean:
		return factory.CreateType(KindBoolean)
	case FamilyDate:
		return factory.CreateType(KindDate)
	case FamilyTime:
		return factory.CreateType(KindTime)
	case FamilyTimestamp, FamilyDatetime:
		return factory.CreateType(KindTimestamp)
	case FamilyIntervalYearMonth:
		return factory.CreateIntervalType(NewIntervalQualifier(TimeUnitYear, TimeUnitMonth))
	case FamilyIntervalDayTime, FamilyDatetimeInterval:
		return factory.CreateIntervalType(NewIntervalQualifier(TimeUnitDay, TimeUnitSecond))
	case FamilyGeo:
		return factory.CreateType(KindGeometry)
	case FamilyDocument:
		return factory.CreateType(KindDocument)
	case FamilyAny:
		return factory.CreateType(KindAny)
	}
	return nil
}
