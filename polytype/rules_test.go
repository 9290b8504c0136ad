package polytype

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRulesKinds(t *testing.T) {
	tests := []struct {
		coerce bool
		to     Kind
		from   Kind
		want   bool
	}{
		{false, KindBigInt, KindInteger, true},
		{false, KindInteger, KindBigInt, false},
		{false, KindDecimal, KindDouble, true},
		{false, KindFloat, KindDouble, false},
		{false, KindDouble, KindTinyInt, true},
		{false, KindVarchar, KindChar, true},
		{false, KindChar, KindVarchar, false},
		{false, KindVarchar, KindInteger, false},
		{false, KindDate, KindTimestamp, true},
		{false, KindTimestamp, KindDate, false},
		{false, KindIntervalDaySecond, KindIntervalHour, true},
		{false, KindIntervalDay, KindIntervalYear, false},
		{false, KindFile, KindImage, true},
		{false, KindDocument, KindMap, true},
		{true, KindVarchar, KindInteger, true},
		{true, KindInteger, KindVarchar, true},
		{true, KindDate, KindVarchar, true},
		{true, KindBoolean, KindChar, true},
		{true, KindChar, KindBoolean, true},
		{true, KindInteger, KindIntervalDay, true},
		{true, KindIntervalMonth, KindBigInt, true},
		{true, KindTimestamp, KindTime, true},
		{true, KindBoolean, KindInteger, false},
		{true, KindDate, KindTime, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s<-%s/%t", tt.to, tt.from, tt.coerce), func(t *testing.T) {
			if got := Rules(tt.coerce).CanCastFrom(tt.to, tt.from); got != tt.want {
				t.Errorf("CanCastFrom(%s, %s) = %t, want %t", tt.to, tt.from, got, tt.want)
			}
		})
	}
}

func TestRulesNullAbsorption(t *testing.T) {
	for _, coerce := range []bool{false, true} {
		rules := Rules(coerce)
		for _, kind := range AllTypes {
			if kind == KindNull {
				continue
			}
			assert.True(t, rules.CanCastFrom(kind, KindNull), "%s <- NULL", kind)
			assert.False(t, rules.CanCastFrom(KindNull, kind), "NULL <- %s", kind)
		}
	}
}

func TestRulesUndefinedTarget(t *testing.T) {
	assert.False(t, Rules(false).Defined(KindCursor))
	assert.PanicsWithValue(t, "No assign rules for CURSOR defined", func() {
		Rules(false).CanCastFrom(KindCursor, KindInteger)
	})
}

func TestRulesCoerceExtendsStrict(t *testing.T) {
	strict, coerce := Rules(false), Rules(true)
	for _, to := range AllTypes {
		if !strict.Defined(to) {
			continue
		}
		assert.True(t, coerce.Defined(to), "%s", to)
		for _, from := range strict.Sources(to) {
			assert.True(t, coerce.CanCastFrom(to, from), "%s <- %s", to, from)
		}
	}
}

func TestRulesSources(t *testing.T) {
	assert.Equal(t, []Kind{KindTinyInt, KindSmallInt}, Rules(false).Sources(KindSmallInt))
	assert.Equal(t, []Kind{KindChar, KindVarchar}, Rules(false).Sources(KindVarchar))
	assert.Nil(t, Rules(false).Sources(KindCursor))
}

func TestCanCastFrom(t *testing.T) {
	f := NewFactory(nil)
	integer := f.CreateType(KindInteger)
	varchar := f.CreateType(KindVarchar)
	null := f.CreateType(KindNull)
	anyType := f.CreateType(KindAny)
	dayToHour := intervalType(f, TimeUnitDay, TimeUnitHour)
	day := intervalType(f, TimeUnitDay, TimeUnitNone)
	row := func(types ...*Type) *Type {
		b := f.Builder()
		for i, t := range types {
			b.Add(fmt.Sprintf("f%d", i), t)
		}
		return b.Build()
	}

	tests := []struct {
		to, from *Type
		coerce   bool
		want     bool
	}{
		{varchar, integer, true, true},
		{varchar, integer, false, false},
		{integer, null, false, true},
		{null, integer, false, false},
		{anyType, f.CreateType(KindGeometry), false, true},
		{f.CreateType(KindCursor), anyType, false, true},
		{integer, day, true, true},
		{integer, dayToHour, true, false},
		{dayToHour, integer, true, false},
		{f.CreateArrayType(f.CreateType(KindBigInt), NotSpecified), f.CreateArrayType(integer, NotSpecified), false, true},
		{f.CreateArrayType(integer, NotSpecified), f.CreateArrayType(f.CreateType(KindBigInt), NotSpecified), false, false},
		{f.CreateArrayType(integer, NotSpecified), integer, true, false},
		{f.CreateMapType(varchar, f.CreateType(KindBigInt)), f.CreateMapType(varchar, integer), false, true},
		{row(f.CreateType(KindBigInt), varchar), row(integer, varchar), false, true},
		{row(f.CreateType(KindBigInt)), row(integer, varchar), false, false},
		{f.CreateTypeWithPrecision(KindVarchar, 3), f.CreateTypeWithPrecision(KindVarchar, 3), false, true},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			if got := CanCastFrom(tt.to, tt.from, tt.coerce); got != tt.want {
				t.Errorf("CanCastFrom(%s, %s, %t) = %t, want %t", tt.to, tt.from, tt.coerce, got, tt.want)
			}
		})
	}
}

func TestCanCastFromNullAbsorption(t *testing.T) {
	f := NewFactory(nil)
	null := f.CreateType(KindNull)
	for _, typ := range []*Type{
		f.CreateType(KindBoolean),
		f.CreateType(KindInteger),
		f.CreateType(KindDecimal),
		f.CreateType(KindDouble),
		f.CreateType(KindVarchar),
		f.CreateType(KindDate),
		f.CreateType(KindTimestamp),
		f.CreateType(KindVarbinary),
		intervalType(f, TimeUnitYear, TimeUnitNone),
		f.CreateArrayType(f.CreateType(KindInteger), NotSpecified),
	} {
		assert.True(t, CanCastFrom(typ, null, false), "%s <- NULL", typ)
		assert.False(t, CanCastFrom(null, typ, false), "NULL <- %s", typ)
	}
}
