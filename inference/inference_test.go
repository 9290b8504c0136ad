package inference

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polypheny/polytype/checker"
	"github.com/polypheny/polytype/polytype"
)

func bind(f *polytype.Factory, types ...*polytype.Type) *checker.Binding {
	operands := make([]checker.Operand, len(types))
	for i, t := range types {
		operands[i] = checker.TypeOperand(t)
	}
	return checker.NewBinding(f, "OP", nil, operands...)
}

func nullable(f *polytype.Factory, t *polytype.Type) *polytype.Type {
	return f.CreateTypeWithNullability(t, true)
}

func TestReturnTypes(t *testing.T) {
	f := polytype.NewFactory(nil)
	integer := f.CreateType(polytype.KindInteger)
	bigint := f.CreateType(polytype.KindBigInt)
	boolean := f.CreateType(polytype.KindBoolean)
	decimal := func(p, s int) *polytype.Type { return f.CreateTypeWithScale(polytype.KindDecimal, p, s) }
	varchar := func(n int) *polytype.Type { return f.CreateTypeWithPrecision(polytype.KindVarchar, n) }
	char := func(n int) *polytype.Type { return f.CreateTypeWithPrecision(polytype.KindChar, n) }
	day := f.CreateIntervalType(polytype.NewIntervalQualifier(polytype.TimeUnitDay, polytype.TimeUnitNone))
	record := f.Builder().AddKind("a", polytype.KindInteger).AddKind("b", polytype.KindVarchar).Build()

	tests := []struct {
		name  string
		rule  ReturnTypeInference
		types []*polytype.Type
		want  string
	}{
		{"arg0", Arg0, []*polytype.Type{integer, bigint}, "INTEGER NOT NULL"},
		{"arg1", Arg1, []*polytype.Type{integer, bigint}, "BIGINT NOT NULL"},
		{"arg0 nullable", Arg0Nullable, []*polytype.Type{integer, nullable(f, varchar(3))}, "INTEGER"},
		{"arg0 force nullable", Arg0ForceNullable, []*polytype.Type{integer}, "INTEGER"},
		{"arg0 nullable varying", Arg0NullableVarying, []*polytype.Type{char(3)}, "VARCHAR(3) NOT NULL"},
		{"boolean nullable", BooleanNullable, []*polytype.Type{integer, nullable(f, integer)}, "BOOLEAN"},
		{"boolean not null", BooleanNotNull, []*polytype.Type{nullable(f, integer)}, "BOOLEAN NOT NULL"},
		{"time", Time, nil, "TIME(0) NOT NULL"},
		{"histogram", Histogram, nil, "VARBINARY(8) NOT NULL"},
		{"varchar 2000", Varchar2000, nil, "VARCHAR(2000) NOT NULL"},
		{"least restrictive", LeastRestrictive, []*polytype.Type{integer, bigint}, "BIGINT NOT NULL"},
		{"least restrictive nullable", LeastRestrictiveNullable, []*polytype.Type{integer, nullable(f, bigint)}, "BIGINT"},
		{"decimal sum", DecimalSum, []*polytype.Type{decimal(5, 2), decimal(7, 1)}, "DECIMAL(9, 2) NOT NULL"},
		{"decimal sum with integer", DecimalSum, []*polytype.Type{integer, decimal(5, 2)}, "DECIMAL(13, 2) NOT NULL"},
		{"decimal sum capped", DecimalSum, []*polytype.Type{decimal(19, 0), decimal(19, 0)}, "DECIMAL(19, 0) NOT NULL"},
		{"nullable sum of integers", NullableSum, []*polytype.Type{integer, nullable(f, bigint)}, "BIGINT"},
		{"nullable sum of decimals", NullableSum, []*polytype.Type{decimal(5, 2), nullable(f, decimal(7, 1))}, "DECIMAL(9, 2)"},
		{"decimal product", DecimalProductNullable, []*polytype.Type{decimal(5, 2), decimal(3, 1)}, "DECIMAL(8, 3) NOT NULL"},
		{"product of interval", ProductNullable, []*polytype.Type{integer, day}, "INTERVAL DAY NOT NULL"},
		{"product of integers", ProductNullable, []*polytype.Type{integer, bigint}, "BIGINT NOT NULL"},
		{"quotient of integers", QuotientNullable, []*polytype.Type{bigint, integer}, "BIGINT NOT NULL"},
		{"integer quotient", IntegerQuotientNullable, []*polytype.Type{day, integer}, "INTERVAL DAY NOT NULL"},
		{"decimal scale 0", Arg0OrExactNoScale, []*polytype.Type{nullable(f, decimal(10, 2))}, "DECIMAL(10, 0)"},
		{"exact no scale of integer", Arg0OrExactNoScale, []*polytype.Type{integer}, "INTEGER NOT NULL"},
		{"concat chars", DyadicStringSumPrecision, []*polytype.Type{char(3), char(2)}, "CHAR(5) NOT NULL"},
		{"concat char and varchar", DyadicStringSumPrecision, []*polytype.Type{char(3), varchar(5)}, "VARCHAR(8) NOT NULL"},
		{"concat varchar and char", DyadicStringSumPrecision, []*polytype.Type{varchar(5), char(3)}, "VARCHAR(8) NOT NULL"},
		{
			"concat binaries",
			DyadicStringSumPrecision,
			[]*polytype.Type{f.CreateTypeWithPrecision(polytype.KindVarbinary, 2), f.CreateTypeWithPrecision(polytype.KindBinary, 3)},
			"VARBINARY(5) NOT NULL",
		},
		{"concat too long", DyadicStringSumPrecision, []*polytype.Type{varchar(polytype.DefaultMaxCharLength), varchar(1)}, "VARCHAR NOT NULL"},
		{"concat nullable varying", DyadicStringSumPrecisionNullableVarying, []*polytype.Type{char(3), nullable(f, char(2))}, "VARCHAR(5)"},
		{"multivalent concat", MultivalentStringSumPrecision, []*polytype.Type{varchar(3), char(4), varchar(2)}, "VARCHAR(9) NOT NULL"},
		{
			"multiset",
			Multiset,
			[]*polytype.Type{f.CreateMultisetType(integer, polytype.NotSpecified), f.CreateMultisetType(bigint, polytype.NotSpecified)},
			"BIGINT NOT NULL MULTISET NOT NULL",
		},
		{
			"multiset element",
			MultisetElementNullable,
			[]*polytype.Type{f.CreateMultisetType(integer, polytype.NotSpecified), f.CreateMultisetType(bigint, polytype.NotSpecified)},
			"BIGINT NOT NULL",
		},
		{"multiset project 0", MultisetProject0, []*polytype.Type{f.CreateMultisetType(record, polytype.NotSpecified)}, "INTEGER NOT NULL MULTISET NOT NULL"},
		{
			"multiset record",
			MultisetRecord,
			[]*polytype.Type{f.CreateMultisetType(integer, polytype.NotSpecified)},
			"RecordType(INTEGER NOT NULL EXPR$0) NOT NULL MULTISET NOT NULL",
		},
		{"arg0 multiset", Arg0Multiset, []*polytype.Type{integer}, "INTEGER NOT NULL MULTISET NOT NULL"},
		{"arg0 array", Arg0Array, []*polytype.Type{integer}, "INTEGER NOT NULL ARRAY NOT NULL"},
		{"record to scalar", RecordToScalar, []*polytype.Type{f.Builder().AddKind("a", polytype.KindInteger).Build()}, "INTEGER"},
		{"sum empty is zero", AggSumEmptyIsZero, []*polytype.Type{nullable(f, integer)}, "INTEGER NOT NULL"},
		{"rank", Rank, nil, "BIGINT NOT NULL"},
		{"fractional rank", FractionalRank, nil, "DOUBLE NOT NULL"},
		{"boolean optimized", BooleanNullableOptimized, []*polytype.Type{boolean, nullable(f, boolean)}, "BOOLEAN"},
		{"boolean optimized not null", BooleanNullableOptimized, []*polytype.Type{boolean, boolean}, "BOOLEAN NOT NULL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.InferReturnType(bind(f, tt.types...))
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Digest())
		})
	}
}

func TestNotApplicable(t *testing.T) {
	f := polytype.NewFactory(nil)
	integer := f.CreateType(polytype.KindInteger)
	tests := []struct {
		name  string
		rule  ReturnTypeInference
		types []*polytype.Type
	}{
		{"decimal sum of integers", DecimalSum, []*polytype.Type{integer, integer}},
		{"decimal product of doubles", DecimalProduct, []*polytype.Type{f.CreateType(polytype.KindDouble), f.CreateTypeWithScale(polytype.KindDecimal, 5, 2)}},
		{"decimal scale 0 of integer", DecimalScale0, []*polytype.Type{integer}},
		{"no interval", Arg0Interval, []*polytype.Type{integer, integer}},
		{"cascade of nothing", Arg0IntervalNullable, []*polytype.Type{integer}},
		{"no least restrictive", LeastRestrictive, []*polytype.Type{integer, f.CreateType(polytype.KindBoolean)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.InferReturnType(bind(f, tt.types...))
			assert.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestAggregateNullability(t *testing.T) {
	f := polytype.NewFactory(nil)
	integer := f.CreateType(polytype.KindInteger)

	b := bind(f, integer)
	got, err := AggSum.InferReturnType(b)
	require.NoError(t, err)
	assert.False(t, got.IsNullable())

	b.Groups = 0
	got, err = AggSum.InferReturnType(b)
	require.NoError(t, err)
	assert.True(t, got.IsNullable())

	b.Groups = 2
	b.Filtered = true
	got, err = AvgAgg.InferReturnType(b)
	require.NoError(t, err)
	assert.True(t, got.IsNullable())

	b.Filtered = false
	got, err = CovarRegr.InferReturnType(b)
	require.NoError(t, err)
	assert.False(t, got.IsNullable())
}

func TestDyadicStringSumPrecisionErrors(t *testing.T) {
	f := polytype.NewFactory(nil)
	varchar := f.CreateType(polytype.KindVarchar)
	utf8 := polytype.MustCharset("UTF-8")
	unicode := f.CreateTypeWithCharsetAndCollation(varchar, utf8, polytype.ImplicitCollation(utf8))

	_, err := DyadicStringSumPrecision.InferReturnType(bind(f, varchar, unicode))
	var validationErr *checker.ValidationError
	require.True(t, errors.As(err, &validationErr), "%v", err)
	assert.Contains(t, validationErr.Message, "not comparable")

	assert.Panics(t, func() {
		_, _ = DyadicStringSumPrecision.InferReturnType(bind(f, f.CreateType(polytype.KindInteger), f.CreateType(polytype.KindDate)))
	})
}

func TestChainAndCascade(t *testing.T) {
	f := polytype.NewFactory(nil)
	integer := f.CreateType(polytype.KindInteger)
	failing := Func(func(b OperatorBinding) (*polytype.Type, error) {
		return nil, errors.New("boom")
	})

	got, err := Chain(Arg0Interval, Arg0).InferReturnType(bind(f, integer))
	require.NoError(t, err)
	assert.Same(t, integer, got)

	_, err = Chain(Arg0Interval, failing, Arg0).InferReturnType(bind(f, integer))
	assert.EqualError(t, err, "boom")

	got, err = Chain(Arg0, failing).InferReturnType(bind(f, integer))
	require.NoError(t, err)
	assert.Same(t, integer, got)

	assert.Panics(t, func() { Chain(Arg0) })
	assert.Panics(t, func() { Cascade(Arg0) })

	got, err = Cascade(Arg0, ForceNullable, ToNotNullable).InferReturnType(bind(f, integer))
	require.NoError(t, err)
	assert.Same(t, integer, got)
}

func TestTransforms(t *testing.T) {
	f := polytype.NewFactory(nil)
	integer := f.CreateType(polytype.KindInteger)
	b := bind(f, nullable(f, integer), nullable(f, integer))

	assert.True(t, ToNullableAll.TransformType(b, integer).IsNullable())
	assert.False(t, ToNullableAll.TransformType(bind(f, integer, nullable(f, integer)), integer).IsNullable())

	binary := nullable(f, f.CreateTypeWithPrecision(polytype.KindBinary, 3))
	assert.Equal(t, "VARBINARY(3)", ToVarying.TransformType(b, binary).Digest())
	assert.Same(t, integer, ToVarying.TransformType(b, integer))

	utf8 := polytype.MustCharset("UTF-8")
	char := f.CreateTypeWithCharsetAndCollation(f.CreateTypeWithPrecision(polytype.KindChar, 2), utf8, polytype.ImplicitCollation(utf8))
	assert.Equal(t, `VARCHAR(2) CHARACTER SET "UTF-8" NOT NULL`, ToVarying.TransformType(b, char).Digest())

	row := f.Builder().AddKind("a", polytype.KindDate).Build()
	assert.Equal(t, "DATE NOT NULL", OnlyColumn.TransformType(b, row).Digest())
	assert.Panics(t, func() { OnlyColumn.TransformType(b, integer) })
}

func TestMatch(t *testing.T) {
	f := polytype.NewFactory(nil)
	integer := f.CreateType(polytype.KindInteger)
	date := f.CreateType(polytype.KindDate)
	rule := Match(1, []polytype.Kind{polytype.KindDate, polytype.KindInteger})

	got, err := rule.InferReturnType(bind(f, integer, date, integer))
	require.NoError(t, err)
	assert.Same(t, date, got)

	got, err = rule.InferReturnType(bind(f, integer))
	require.NoError(t, err)
	assert.Nil(t, got)
}
