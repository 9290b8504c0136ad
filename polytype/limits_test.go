package polytype

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGetLimitNumeric(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		sign      bool
		limit     Limit
		beyond    bool
		precision int
		scale     int
		want      string
	}{
		{"tinyint max", KindTinyInt, true, LimitOverflow, false, NotSpecified, NotSpecified, "127"},
		{"tinyint min", KindTinyInt, false, LimitOverflow, false, NotSpecified, NotSpecified, "-128"},
		{"tinyint past max", KindTinyInt, true, LimitOverflow, true, NotSpecified, NotSpecified, "128"},
		{"tinyint past min", KindTinyInt, false, LimitOverflow, true, NotSpecified, NotSpecified, "-129"},
		{"smallint max", KindSmallInt, true, LimitOverflow, false, NotSpecified, NotSpecified, "32767"},
		{"integer min", KindInteger, false, LimitOverflow, false, NotSpecified, NotSpecified, "-2147483648"},
		{"bigint max", KindBigInt, true, LimitOverflow, false, NotSpecified, NotSpecified, "9223372036854775807"},
		{"integer underflow", KindInteger, true, LimitUnderflow, false, NotSpecified, NotSpecified, "1"},
		{"integer negative underflow", KindInteger, false, LimitUnderflow, false, NotSpecified, NotSpecified, "-1"},
		{"integer zero", KindInteger, true, LimitZero, false, NotSpecified, NotSpecified, "0"},
		{"decimal max", KindDecimal, true, LimitOverflow, false, 5, 2, "999.99"},
		{"decimal min", KindDecimal, false, LimitOverflow, false, 5, 0, "-99999"},
		{"decimal capped to bigint", KindDecimal, true, LimitOverflow, false, 19, 0, "9223372036854775807"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.kind.GetLimit(tt.sign, tt.limit, tt.beyond, tt.precision, tt.scale).(decimal.Decimal)
			if !ok {
				t.Fatalf("GetLimit() is not a decimal")
			}
			want, err := decimal.NewFromString(tt.want)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(want) {
				t.Errorf("GetLimit() = %s, want %s", got, want)
			}
		})
	}
}

func TestGetLimitOther(t *testing.T) {
	assert.Nil(t, KindInteger.GetLimit(true, LimitUnderflow, true, NotSpecified, NotSpecified))

	assert.Equal(t, false, KindBoolean.GetLimit(true, LimitZero, false, NotSpecified, NotSpecified))
	assert.Equal(t, true, KindBoolean.GetLimit(true, LimitOverflow, false, NotSpecified, NotSpecified))
	assert.Nil(t, KindBoolean.GetLimit(false, LimitOverflow, false, NotSpecified, NotSpecified))

	assert.Equal(t, "ZZZ", KindVarchar.GetLimit(true, LimitOverflow, false, 3, NotSpecified))
	assert.Equal(t, "ZZZZ", KindChar.GetLimit(true, LimitOverflow, true, 3, NotSpecified))
	assert.Equal(t, "", KindChar.GetLimit(true, LimitZero, false, 3, NotSpecified))
	assert.Equal(t, "a", KindChar.GetLimit(true, LimitUnderflow, false, 3, NotSpecified))
	assert.Nil(t, KindChar.GetLimit(false, LimitOverflow, false, 3, NotSpecified))

	assert.Equal(t, []byte{0xff, 0xff}, KindBinary.GetLimit(true, LimitOverflow, false, 2, NotSpecified))
	assert.Equal(t, []byte{0x00}, KindVarbinary.GetLimit(true, LimitUnderflow, false, 2, NotSpecified))

	assert.Equal(t, time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC), KindDate.GetLimit(true, LimitOverflow, false, NotSpecified, NotSpecified))
	assert.Equal(t, time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC), KindDate.GetLimit(false, LimitOverflow, false, NotSpecified, NotSpecified))
	assert.Nil(t, KindDate.GetLimit(true, LimitOverflow, true, NotSpecified, NotSpecified))

	assert.Equal(t, time.Date(1970, time.January, 1, 23, 59, 59, 999000000, time.UTC), KindTime.GetLimit(true, LimitOverflow, false, 3, NotSpecified))
	assert.Equal(t, time.Date(1970, time.January, 1, 23, 59, 59, 0, time.UTC), KindTime.GetLimit(true, LimitOverflow, false, 0, NotSpecified))
	assert.Equal(t, time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC), KindTimestamp.GetLimit(true, LimitOverflow, false, 0, NotSpecified))

	assert.Panics(t, func() { KindMap.GetLimit(true, LimitOverflow, false, NotSpecified, NotSpecified) })
}

func TestMinMaxValue(t *testing.T) {
	f := NewFactory(nil)
	assert.True(t, decimal.New(2147483647, 0).Equal(GetMaxValue(f.CreateType(KindInteger)).(decimal.Decimal)))
	assert.True(t, decimal.New(-32768, 0).Equal(GetMinValue(f.CreateType(KindSmallInt)).(decimal.Decimal)))
	assert.Equal(t, "ZZ", GetMaxValue(f.CreateTypeWithPrecision(KindVarchar, 2)))
}
