package polytype

import (
	"fmt"
	"strings"
)

// Kind identifies a scalar or composite type category.
type Kind int

const (
	// KindNone is reported by descriptors which have no catalog kind,
	// such as native types with no SQL equivalent.
	KindNone Kind = iota
	KindBoolean
	KindTinyInt
	KindSmallInt
	KindInteger
	KindBigInt
	KindDecimal
	KindFloat
	KindReal
	KindDouble
	KindDate
	KindTime
	KindTimeWithLocalTimeZone
	KindTimestamp
	KindTimestampWithLocalTimeZone
	KindIntervalYear
	KindIntervalYearMonth
	KindIntervalMonth
	KindIntervalDay
	KindIntervalDayHour
	KindIntervalDayMinute
	KindIntervalDaySecond
	KindIntervalHour
	KindIntervalHourMinute
	KindIntervalHourSecond
	KindIntervalMinute
	KindIntervalMinuteSecond
	KindIntervalSecond
	KindChar
	KindVarchar
	KindBinary
	KindVarbinary
	KindNull
	KindAny
	KindSymbol
	KindMultiset
	KindArray
	KindMap
	KindDocument
	KindJSON
	KindGraph
	KindNode
	KindEdge
	KindPath
	KindDistinct
	KindStructured
	KindRow
	KindOther
	KindCursor
	KindColumnList
	KindDynamicStar
	KindGeometry
	KindFile
	KindImage
	KindVideo
	KindAudio

	kindCount
)

var kindNames = [kindCount]string{
	KindNone:                       "NONE",
	KindBoolean:                    "BOOLEAN",
	KindTinyInt:                    "TINYINT",
	KindSmallInt:                   "SMALLINT",
	KindInteger:                    "INTEGER",
	KindBigInt:                     "BIGINT",
	KindDecimal:                    "DECIMAL",
	KindFloat:                      "FLOAT",
	KindReal:                       "REAL",
	KindDouble:                     "DOUBLE",
	KindDate:                       "DATE",
	KindTime:                       "TIME",
	KindTimeWithLocalTimeZone:      "TIME_WITH_LOCAL_TIME_ZONE",
	KindTimestamp:                  "TIMESTAMP",
	KindTimestampWithLocalTimeZone: "TIMESTAMP_WITH_LOCAL_TIME_ZONE",
	KindIntervalYear:               "INTERVAL_YEAR",
	KindIntervalYearMonth:          "INTERVAL_YEAR_MONTH",
	KindIntervalMonth:              "INTERVAL_MONTH",
	KindIntervalDay:                "INTERVAL_DAY",
	KindIntervalDayHour:            "INTERVAL_DAY_HOUR",
	KindIntervalDayMinute:          "INTERVAL_DAY_MINUTE",
	KindIntervalDaySecond:          "INTERVAL_DAY_SECOND",
	KindIntervalHour:               "INTERVAL_HOUR",
	KindIntervalHourMinute:         "INTERVAL_HOUR_MINUTE",
	KindIntervalHourSecond:         "INTERVAL_HOUR_SECOND",
	KindIntervalMinute:             "INTERVAL_MINUTE",
	KindIntervalMinuteSecond:       "INTERVAL_MINUTE_SECOND",
	KindIntervalSecond:             "INTERVAL_SECOND",
	KindChar:                       "CHAR",
	KindVarchar:                    "VARCHAR",
	KindBinary:                     "BINARY",
	KindVarbinary:                  "VARBINARY",
	KindNull:                       "NULL",
	KindAny:                        "ANY",
	KindSymbol:                     "SYMBOL",
	KindMultiset:                   "MULTISET",
	KindArray:                      "ARRAY",
	KindMap:                        "MAP",
	KindDocument:                   "DOCUMENT",
	KindJSON:                       "JSON",
	KindGraph:                      "GRAPH",
	KindNode:                       "NODE",
	KindEdge:                       "EDGE",
	KindPath:                       "PATH",
	KindDistinct:                   "DISTINCT",
	KindStructured:                 "STRUCTURED",
	KindRow:                        "ROW",
	KindOther:                      "OTHER",
	KindCursor:                     "CURSOR",
	KindColumnList:                 "COLUMN_LIST",
	KindDynamicStar:                "DYNAMIC_STAR",
	KindGeometry:                   "GEOMETRY",
	KindFile:                       "FILE",
	KindImage:                      "IMAGE",
	KindVideo:                      "VIDEO",
	KindAudio:                      "AUDIO",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindByName looks a kind up by its catalog name, case-insensitively.
func KindByName(name string) (Kind, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for k := KindBoolean; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindNone, false
}

// Kind sets used by the families, the rule tables and the factory.
var (
	BooleanTypes      = []Kind{KindBoolean}
	BinaryTypes       = []Kind{KindBinary, KindVarbinary}
	IntTypes          = []Kind{KindTinyInt, KindSmallInt, KindInteger, KindBigInt}
	ExactTypes        = []Kind{KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindDecimal}
	ApproxTypes       = []Kind{KindFloat, KindReal, KindDouble}
	NumericTypes      = concatKinds(ExactTypes, ApproxTypes)
	FractionalTypes   = concatKinds(ApproxTypes, []Kind{KindDecimal})
	CharTypes         = []Kind{KindChar, KindVarchar}
	StringTypes       = concatKinds(CharTypes, BinaryTypes)
	DatetimeTypes     = []Kind{KindDate, KindTime, KindTimeWithLocalTimeZone, KindTimestamp, KindTimestampWithLocalTimeZone}
	YearIntervalTypes = []Kind{KindIntervalYear, KindIntervalYearMonth, KindIntervalMonth}
	DayIntervalTypes  = []Kind{
		KindIntervalDay, KindIntervalDayHour, KindIntervalDayMinute, KindIntervalDaySecond,
		KindIntervalHour, KindIntervalHourMinute, KindIntervalHourSecond,
		KindIntervalMinute, KindIntervalMinuteSecond,
		KindIntervalSecond,
	}
	IntervalTypes   = concatKinds(YearIntervalTypes, DayIntervalTypes)
	MultimediaTypes = []Kind{KindFile, KindImage, KindVideo, KindAudio}
	DocumentTypes   = []Kind{KindMap, KindArray, KindDocument, KindJSON}
	GraphTypes      = []Kind{KindGraph, KindNode, KindEdge, KindPath}
	AllTypes        = allKinds()
)

func concatKinds(sets ...[]Kind) []Kind {
	var out []Kind
	for _, set := range sets {
		out = append(out, set...)
	}
	return out
}

func allKinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindBoolean; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ContainsKind reports whether kind is in the set.
func ContainsKind(set []Kind, kind Kind) bool {
	for _, k := range set {
		if k == kind {
			return true
		}
	}
	return false
}

// Precision/scale signatures, as a bit mask.
const (
	precNoScaleNo   = 1
	precYesScaleNo  = 2
	precYesScaleYes = 4
)

func (k Kind) signatures() int {
	switch {
	case k == KindDecimal || ContainsKind(IntervalTypes, k) || k == KindAny:
		return precNoScaleNo | precYesScaleNo | precYesScaleYes
	case k == KindTime || k == KindTimeWithLocalTimeZone || k == KindTimestamp || k == KindTimestampWithLocalTimeZone:
		return precNoScaleNo | precYesScaleNo
	case ContainsKind(StringTypes, k):
		return precNoScaleNo | precYesScaleNo
	}
	return precNoScaleNo
}

// AllowsPrecScale reports whether the kind accepts the given combination
// of explicit precision and scale.
func (k Kind) AllowsPrecScale(precision, scale bool) bool {
	var mask int
	switch {
	case precision && scale:
		mask = precYesScaleYes
	case precision:
		mask = precYesScaleNo
	case scale:
		return false
	default:
		mask = precNoScaleNo
	}
	return k.signatures()&mask != 0
}

func (k Kind) AllowsNoPrecNoScale() bool {
	return k.signatures()&precNoScaleNo != 0
}

func (k Kind) AllowsPrecNoScale() bool {
	return k.signatures()&precYesScaleNo != 0
}

func (k Kind) AllowsScale() bool {
	return k.signatures()&precYesScaleYes != 0
}

// DefaultScale returns the scale a kind gets when none is given, or NotSpecified.
func (k Kind) DefaultScale() int {
	switch {
	case k == KindDecimal:
		return 0
	case ContainsKind(IntervalTypes, k):
		return DefaultIntervalFractionalSecondPrecision
	}
	return NotSpecified
}

// Family returns the family the kind belongs to, or false if the kind
// has no family of its own.
func (k Kind) Family() (FamilyTag, bool) {
	switch {
	case k == KindBoolean:
		return FamilyBoolean, true
	case ContainsKind(NumericTypes, k):
		return FamilyNumeric, true
	case k == KindDate:
		return FamilyDate, true
	case k == KindTime || k == KindTimeWithLocalTimeZone:
		return FamilyTime, true
	case k == KindTimestamp || k == KindTimestampWithLocalTimeZone:
		return FamilyTimestamp, true
	case ContainsKind(YearIntervalTypes, k):
		return FamilyIntervalYearMonth, true
	case ContainsKind(DayIntervalTypes, k):
		return FamilyIntervalDayTime, true
	case ContainsKind(CharTypes, k):
		return FamilyCharacter, true
	case ContainsKind(BinaryTypes, k):
		return FamilyBinary, true
	case k == KindNull:
		return FamilyNull, true
	case k == KindAny:
		return FamilyAny, true
	case k == KindMultiset:
		return FamilyMultiset, true
	case k == KindArray:
		return FamilyArray, true
	case k == KindMap:
		return FamilyMap, true
	case k == KindCursor:
		return FamilyCursor, true
	case k == KindColumnList:
		return FamilyColumnList, true
	case k == KindGeometry:
		return FamilyGeo, true
	case ContainsKind(MultimediaTypes, k):
		return FamilyMultimedia, true
	case k == KindDocument || k == KindJSON:
		return FamilyDocument, true
	case ContainsKind(GraphTypes, k):
		return FamilyGraph, true
	}
	return 0, false
}

// IsSpecial reports whether the kind is one which is handled by a dedicated
// factory method rather than by CreateType.
func (k Kind) IsSpecial() bool {
	return k == KindArray || k == KindMultiset || k == KindMap || k == KindRow || ContainsKind(IntervalTypes, k)
}

// IsYearMonth reports whether the kind is a year-month interval.
func (k Kind) IsYearMonth() bool {
	return ContainsKind(YearIntervalTypes, k)
}

// IntervalUnits returns the start and end unit of an interval kind.
// For single field intervals both units are equal.
func (k Kind) IntervalUnits() (TimeUnit, TimeUnit, bool) {
	switch k {
	case KindIntervalYear:
		return TimeUnitYear, TimeUnitYear, true
	case KindIntervalYearMonth:
		return TimeUnitYear, TimeUnitMonth, true
	case KindIntervalMonth:
		return TimeUnitMonth, TimeUnitMonth, true
	case KindIntervalDay:
		return TimeUnitDay, TimeUnitDay, true
	case KindIntervalDayHour:
		return TimeUnitDay, TimeUnitHour, true
	case KindIntervalDayMinute:
		return TimeUnitDay, TimeUnitMinute, true
	case KindIntervalDaySecond:
		return TimeUnitDay, TimeUnitSecond, true
	case KindIntervalHour:
		return TimeUnitHour, TimeUnitHour, true
	case KindIntervalHourMinute:
		return TimeUnitHour, TimeUnitMinute, true
	case KindIntervalHourSecond:
		return TimeUnitHour, TimeUnitSecond, true
	case KindIntervalMinute:
		return TimeUnitMinute, TimeUnitMinute, true
	case KindIntervalMinuteSecond:
		return TimeUnitMinute, TimeUnitSecond, true
	case KindIntervalSecond:
		return TimeUnitSecond, TimeUnitSecond, true
	}
	return 0, 0, false
}
