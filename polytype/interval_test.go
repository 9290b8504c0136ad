package polytype

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalQualifierCombine(t *testing.T) {
	q := NewIntervalQualifier
	tests := []struct {
		q1, q2 IntervalQualifier
		want   string
	}{
		{
			q1:   q(TimeUnitDay, TimeUnitHour),
			q2:   q(TimeUnitSecond, TimeUnitNone),
			want: "DAY TO SECOND",
		},
		{
			q1:   q(TimeUnitHour, TimeUnitNone),
			q2:   q(TimeUnitDay, TimeUnitNone),
			want: "DAY TO HOUR",
		},
		{
			q1:   q(TimeUnitYear, TimeUnitNone),
			q2:   q(TimeUnitMonth, TimeUnitNone),
			want: "YEAR TO MONTH",
		},
		{
			q1:   q(TimeUnitMonth, TimeUnitNone),
			q2:   q(TimeUnitYear, TimeUnitMonth),
			want: "YEAR TO MONTH",
		},
		{
			// The receiver's end unit is lost in a single pass.
			q1:   q(TimeUnitMinute, TimeUnitSecond),
			q2:   q(TimeUnitHour, TimeUnitNone),
			want: "HOUR TO MINUTE",
		},
		{
			q1:   q(TimeUnitHour, TimeUnitMinute),
			q2:   q(TimeUnitMinute, TimeUnitSecond),
			want: "HOUR TO SECOND",
		},
		{
			q1:   NewIntervalQualifierWithPrecision(TimeUnitHour, 4, TimeUnitNone, NotSpecified),
			q2:   q(TimeUnitHour, TimeUnitNone),
			want: "HOUR(4)",
		},
		{
			q1:   q(TimeUnitSecond, TimeUnitNone),
			q2:   NewIntervalQualifierWithPrecision(TimeUnitSecond, NotSpecified, TimeUnitNone, 9),
			want: "SECOND(2, 9)",
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			if got := tt.q1.Combine(tt.q2).String(); got != tt.want {
				t.Errorf("%s.Combine(%s) = %s, want %s", tt.q1, tt.q2, got, tt.want)
			}
		})
	}
}

func TestIntervalQualifierCombineMixedClasses(t *testing.T) {
	assert.Panics(t, func() {
		NewIntervalQualifier(TimeUnitYear, TimeUnitNone).Combine(NewIntervalQualifier(TimeUnitDay, TimeUnitNone))
	})
}

func TestIntervalQualifierKind(t *testing.T) {
	for _, kind := range IntervalTypes {
		start, end, ok := kind.IntervalUnits()
		assert.True(t, ok)
		q := NewIntervalQualifier(start, end)
		assert.Equal(t, kind, q.Kind())
		assert.Equal(t, start == end, q.IsSingleDatetimeField())
		assert.Equal(t, kind.IsYearMonth(), q.IsYearMonth())
	}

	assert.Panics(t, func() { NewIntervalQualifier(TimeUnitSecond, TimeUnitDay) })
	assert.Panics(t, func() { NewIntervalQualifier(TimeUnitYear, TimeUnitDay) })
}

func TestIntervalQualifierString(t *testing.T) {
	tests := []struct {
		q    IntervalQualifier
		want string
	}{
		{NewIntervalQualifier(TimeUnitYear, TimeUnitNone), "YEAR"},
		{NewIntervalQualifier(TimeUnitYear, TimeUnitYear), "YEAR"},
		{NewIntervalQualifierWithPrecision(TimeUnitDay, 4, TimeUnitNone, NotSpecified), "DAY(4)"},
		{NewIntervalQualifierWithPrecision(TimeUnitSecond, 2, TimeUnitNone, 3), "SECOND(2, 3)"},
		{NewIntervalQualifierWithPrecision(TimeUnitDay, 4, TimeUnitSecond, 3), "DAY(4) TO SECOND(3)"},
		{NewIntervalQualifier(TimeUnitHour, TimeUnitMinute), "HOUR TO MINUTE"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.String())
		})
	}
}

func TestIntervalQualifierPrecision(t *testing.T) {
	q := NewIntervalQualifier(TimeUnitDay, TimeUnitSecond)
	assert.True(t, q.UseDefaultStartPrecision())
	assert.Equal(t, DefaultIntervalStartPrecision, q.StartPrecision())
	assert.Equal(t, NotSpecified, q.StartPrecisionPreservingDefault())
	assert.Equal(t, DefaultIntervalFractionalSecondPrecision, q.FractionalSecondPrecision())

	f := NewFactory(nil)
	typ := f.CreateIntervalType(NewIntervalQualifierWithPrecision(TimeUnitDay, 5, TimeUnitSecond, 3))
	assert.Equal(t, 5, typ.Precision())
	assert.Equal(t, 3, typ.Scale())
	assert.Equal(t, KindIntervalDaySecond, typ.Kind())
}
