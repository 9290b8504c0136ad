package polytype

import (
	"fmt"
	"sync"
)

// AssignmentRules tells which source kinds may be assigned or cast to each target kind.
type AssignmentRules struct {
	defined [kindCount]bool
	allowed [kindCount][kindCount]bool
}

var (
	strictRules, coerceRules *AssignmentRules
	rulesOnce                sync.Once
)

// Rules returns the strict assignment rules, or the cast rules if coerce is set.
func Rules(coerce bool) *AssignmentRules {
	rulesOnce.Do(buildRules)
	if coerce {
		return coerceRules
	}
	return strictRules
}

// CanCastFrom reports whether a value of kind from may be assigned to kind to.
// It panics if no rules are defined for to.
func (r *AssignmentRules) CanCastFrom(to, from Kind) bool {
	switch {
	case to == KindNull:
		return false
	case from == KindNull:
		return true
	}
	if !r.defined[to] {
		panic(fmt.Sprintf("No assign rules for %s defined", to))
	}
	return r.allowed[to][from]
}

// Defined reports whether the table has a rule for the target kind.
func (r *AssignmentRules) Defined(to Kind) bool {
	return r.defined[to]
}

// Sources lists the kinds which may be assigned to kind to, in catalog order.
func (r *AssignmentRules) Sources(to Kind) []Kind {
	var out []Kind
	for from := KindBoolean; from < kindCount; from++ {
		if r.allowed[to][from] {
			out = append(out, from)
		}
	}
	return out
}

// rulesBuilder assembles a rule table. Adding a rule replaces the previous one for the target kind.
type rulesBuilder struct {
	rules AssignmentRules
}

func (b *rulesBuilder) add(to Kind, from ...Kind) {
	b.rules.defined[to] = true
	b.rules.allowed[to] = [kindCount]bool{}
	for _, k := range from {
		b.rules.allowed[to][k] = true
	}
}

// extend keeps the current rule for the target kind and allows additional sources.
func (b *rulesBuilder) extend(to Kind, from ...Kind) {
	if !b.rules.defined[to] {
		panic(fmt.Sprintf("can't extend undefined rule for %s", to))
	}
	for _, k := range from {
		b.rules.allowed[to][k] = true
	}
}

func (b *rulesBuilder) copy() *rulesBuilder {
	return &rulesBuilder{rules: b.rules}
}

func (b *rulesBuilder) build() *AssignmentRules {
	out := b.rules
	return &out
}

func buildRules() {
	rules := &rulesBuilder{}

	for _, interval := range YearIntervalTypes {
		rules.add(interval, YearIntervalTypes...)
	}
	for _, interval := range DayIntervalTypes {
		rules.add(interval, DayIntervalTypes...)
	}

	rules.add(KindMultiset, KindMultiset)

	rules.add(KindTinyInt, KindTinyInt)
	rules.add(KindSmallInt, KindTinyInt, KindSmallInt)
	rules.add(KindInteger, KindTinyInt, KindSmallInt, KindInteger)
	rules.add(KindBigInt, KindTinyInt, KindSmallInt, KindInteger, KindBigInt)
	rules.add(KindFloat, KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindDecimal, KindFloat)
	rules.add(KindReal, KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindDecimal, KindFloat, KindReal)
	rules.add(KindDouble, KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindDecimal, KindFloat, KindReal, KindDouble)
	rules.add(KindDecimal, KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindReal, KindDouble, KindDecimal)

	rules.add(KindVarbinary, KindVarbinary, KindBinary)
	rules.add(KindChar, KindChar)
	rules.add(KindVarchar, KindChar, KindVarchar)
	rules.add(KindBoolean, KindBoolean)
	rules.add(KindBinary, KindBinary, KindVarbinary)

	rules.add(KindFile, KindImage, KindVideo, KindAudio)
	for _, k := range []Kind{KindImage, KindVideo, KindAudio} {
		rules.add(k, k)
	}

	rules.add(KindDate, KindDate, KindTimestamp)
	rules.add(KindTime, KindTime, KindTimestamp)
	rules.add(KindTimeWithLocalTimeZone, KindTimeWithLocalTimeZone)
	rules.add(KindTimestamp, KindTimestamp)
	rules.add(KindTimestampWithLocalTimeZone, KindTimestampWithLocalTimeZone)

	rules.add(KindGeometry, KindGeometry)
	rules.add(KindArray, KindArray)
	rules.add(KindMap, KindMap)
	rules.add(KindDocument, KindDocument, KindJSON, KindMap)
	rules.add(KindJSON, KindJSON, KindDocument)
	for _, k := range GraphTypes {
		rules.add(k, k)
	}

	rules.add(KindAny,
		KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindDecimal, KindFloat, KindReal,
		KindTime, KindDate, KindTimestamp,
	)

	coerce := rules.copy()

	numericAndChar := []Kind{
		KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindDecimal, KindFloat, KindReal, KindDouble,
		KindChar, KindVarchar,
	}
	for _, k := range numericAndChar {
		coerce.add(k, numericAndChar...)
	}

	for _, exact := range ExactTypes {
		coerce.extend(exact, IntervalTypes...)
	}
	for _, interval := range IntervalTypes {
		coerce.extend(interval, KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindDecimal, KindVarchar)
	}

	for _, k := range CharTypes {
		coerce.extend(k, KindBoolean, KindDate, KindTime, KindTimestamp)
		coerce.extend(k, IntervalTypes...)
	}
	coerce.extend(KindBoolean, KindChar, KindVarchar)
	coerce.extend(KindDate, KindDate, KindTimestamp, KindTimestampWithLocalTimeZone, KindChar, KindVarchar)
	coerce.extend(KindTime,
		KindTime, KindTimeWithLocalTimeZone, KindTimestamp, KindTimestampWithLocalTimeZone, KindChar, KindVarchar,
	)
	coerce.extend(KindTimeWithLocalTimeZone,
		KindTime, KindTimeWithLocalTimeZone, KindTimestamp, KindTimestampWithLocalTimeZone, KindChar, KindVarchar,
	)
	coerce.extend(KindTimestamp,
		KindTimestamp, KindTimestampWithLocalTimeZone, KindDate, KindTime, KindTimeWithLocalTimeZone, KindChar, KindVarchar,
	)
	coerce.extend(KindTimestampWithLocalTimeZone,
		KindTimestamp, KindTimestampWithLocalTimeZone, KindDate, KindTime, KindTimeWithLocalTimeZone, KindChar, KindVarchar,
	)

	strictRules = rules.build()
	coerceRules = coerce.build()
}
