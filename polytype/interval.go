package polytype

import (
	"fmt"
	"strings"
)

// TimeUnit is a datetime field, ordered from the widest to the narrowest.
type TimeUnit int

const (
	TimeUnitNone TimeUnit = iota
	TimeUnitYear
	TimeUnitMonth
	TimeUnitDay
	TimeUnitHour
	TimeUnitMinute
	TimeUnitSecond
)

func (u TimeUnit) String() string {
	switch u {
	case TimeUnitNone:
		return "NONE"
	case TimeUnitYear:
		return "YEAR"
	case TimeUnitMonth:
		return "MONTH"
	case TimeUnitDay:
		return "DAY"
	case TimeUnitHour:
		return "HOUR"
	case TimeUnitMinute:
		return "MINUTE"
	case TimeUnitSecond:
		return "SECOND"
	}
	panic("impossible, time unit switch bug")
}

// TimeUnitByName parses a time unit name, case-insensitively.
func TimeUnitByName(name string) (TimeUnit, bool) {
	for u := TimeUnitYear; u <= TimeUnitSecond; u++ {
		if strings.EqualFold(u.String(), name) {
			return u, true
		}
	}
	return TimeUnitNone, false
}

const (
	DefaultIntervalStartPrecision            = 2
	DefaultIntervalFractionalSecondPrecision = 6
	MaxIntervalStartPrecision                = 10
	MaxIntervalFractionalSecondPrecision     = 9
)

// IntervalQualifier describes the fields of an interval type, e.g. DAY(3) TO SECOND(6).
// Precisions equal to NotSpecified mean the default is used.
type IntervalQualifier struct {
	start                     TimeUnit
	end                       TimeUnit
	startPrecision            int
	fractionalSecondPrecision int
}

// NewIntervalQualifier creates a qualifier with default precisions.
// Pass TimeUnitNone or the start unit as end for a single field interval.
func NewIntervalQualifier(start, end TimeUnit) IntervalQualifier {
	return NewIntervalQualifierWithPrecision(start, NotSpecified, end, NotSpecified)
}

func NewIntervalQualifierWithPrecision(start TimeUnit, startPrecision int, end TimeUnit, fractionalSecondPrecision int) IntervalQualifier {
	if end == start {
		end = TimeUnitNone
	}
	q := IntervalQualifier{
		start:                     start,
		end:                       end,
		startPrecision:            startPrecision,
		fractionalSecondPrecision: fractionalSecondPrecision,
	}
	// Validates the unit range.
	q.Kind()
	return q
}

func (q IntervalQualifier) StartUnit() TimeUnit {
	return q.start
}

// EndUnit returns the end unit, TimeUnitNone for single field intervals.
func (q IntervalQualifier) EndUnit() TimeUnit {
	return q.end
}

func (q IntervalQualifier) IsSingleDatetimeField() bool {
	return q.end == TimeUnitNone || q.end == q.start
}

func (q IntervalQualifier) IsYearMonth() bool {
	return q.start == TimeUnitYear || q.start == TimeUnitMonth
}

func (q IntervalQualifier) UseDefaultStartPrecision() bool {
	return q.startPrecision == NotSpecified
}

func (q IntervalQualifier) UseDefaultFractionalSecondPrecision() bool {
	return q.fractionalSecondPrecision == NotSpecified
}

func (q IntervalQualifier) StartPrecision() int {
	if q.startPrecision == NotSpecified {
		return DefaultIntervalStartPrecision
	}
	return q.startPrecision
}

func (q IntervalQualifier) StartPrecisionPreservingDefault() int {
	return q.startPrecision
}

func (q IntervalQualifier) FractionalSecondPrecision() int {
	if q.fractionalSecondPrecision == NotSpecified {
		return DefaultIntervalFractionalSecondPrecision
	}
	return q.fractionalSecondPrecision
}

func (q IntervalQualifier) FractionalSecondPrecisionPreservingDefault() int {
	return q.fractionalSecondPrecision
}

// Kind returns the interval kind matching the unit range.
func (q IntervalQualifier) Kind() Kind {
	switch q.start {
	case TimeUnitYear:
		switch q.end {
		case TimeUnitNone:
			return KindIntervalYear
		case TimeUnitMonth:
			return KindIntervalYearMonth
		}
	case TimeUnitMonth:
		if q.end == TimeUnitNone {
			return KindIntervalMonth
		}
	case TimeUnitDay:
		switch q.end {
		case TimeUnitNone:
			return KindIntervalDay
		case TimeUnitHour:
			return KindIntervalDayHour
		case TimeUnitMinute:
			return KindIntervalDayMinute
		case TimeUnitSecond:
			return KindIntervalDaySecond
		}
	case TimeUnitHour:
		switch q.end {
		case TimeUnitNone:
			return KindIntervalHour
		case TimeUnitMinute:
			return KindIntervalHourMinute
		case TimeUnitSecond:
			return KindIntervalHourSecond
		}
	case TimeUnitMinute:
		switch q.end {
		case TimeUnitNone:
			return KindIntervalMinute
		case TimeUnitSecond:
			return KindIntervalMinuteSecond
		}
	case TimeUnitSecond:
		if q.end == TimeUnitNone {
			return KindIntervalSecond
		}
	}
	panic(fmt.Sprintf("invalid interval qualifier %s TO %s", q.start, q.end))
}

func (q IntervalQualifier) String() string {
	var sb strings.Builder
	sb.WriteString(q.start.String())
	if q.end == TimeUnitNone {
		switch {
		case q.start == TimeUnitSecond && !q.UseDefaultFractionalSecondPrecision():
			fmt.Fprintf(&sb, "(%d, %d)", q.StartPrecision(), q.FractionalSecondPrecision())
		case !q.UseDefaultStartPrecision():
			fmt.Fprintf(&sb, "(%d)", q.StartPrecision())
		}
		return sb.String()
	}
	if !q.UseDefaultStartPrecision() {
		fmt.Fprintf(&sb, "(%d)", q.StartPrecision())
	}
	sb.WriteString(" TO ")
	sb.WriteString(q.end.String())
	if q.end == TimeUnitSecond && !q.UseDefaultFractionalSecondPrecision() {
		fmt.Fprintf(&sb, "(%d)", q.FractionalSecondPrecision())
	}
	return sb.String()
}

// Combine widens the qualifier so that it also spans that.
// Both qualifiers must be of the same year-month or day-time class.
//
// A single pass may lose the receiver's end unit when that starts earlier,
// so LeastRestrictive applies a.Combine(b).Combine(a).
func (q IntervalQualifier) Combine(that IntervalQualifier) IntervalQualifier {
	if q.IsYearMonth() != that.IsYearMonth() {
		panic(fmt.Sprintf("cannot combine %s with %s", q, that))
	}
	thisStart, thisEnd := q.start, q.end
	startPrecision := q.startPrecision
	fractionalPrecision := combineFractionalSecondPrecisionPreservingDefault(q, that)

	switch {
	case thisStart > that.start:
		thisEnd = thisStart
		thisStart = that.start
		startPrecision = that.startPrecision
	case thisStart == that.start:
		startPrecision = combineStartPrecisionPreservingDefault(q, that)
	case thisEnd == TimeUnitNone || thisEnd < that.start:
		thisEnd = that.start
	}

	if that.end != TimeUnitNone {
		if thisEnd == TimeUnitNone || thisEnd < that.end {
			thisEnd = that.end
		}
	}

	return NewIntervalQualifierWithPrecision(thisStart, startPrecision, thisEnd, fractionalPrecision)
}

func combineStartPrecisionPreservingDefault(q1, q2 IntervalQualifier) int {
	start1, start2 := q1.StartPrecision(), q2.StartPrecision()
	switch {
	case start1 > start2:
		return q1.StartPrecisionPreservingDefault()
	case start1 < start2:
		return q2.StartPrecisionPreservingDefault()
	case q1.UseDefaultStartPrecision() && q2.UseDefaultStartPrecision():
		return q1.StartPrecisionPreservingDefault()
	}
	return start1
}

func combineFractionalSecondPrecisionPreservingDefault(q1, q2 IntervalQualifier) int {
	p1, p2 := q1.FractionalSecondPrecision(), q2.FractionalSecondPrecision()
	switch {
	case p1 > p2:
		return q1.FractionalSecondPrecisionPreservingDefault()
	case p1 < p2:
		return q2.FractionalSecondPrecisionPreservingDefault()
	case q1.UseDefaultFractionalSecondPrecision() && q2.UseDefaultFractionalSecondPrecision():
		return q1.FractionalSecondPrecisionPreservingDefault()
	}
	return p1
}
