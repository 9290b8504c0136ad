package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polypheny/polytype/polytype"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"INTEGER", "INTEGER NOT NULL"},
		{"int null", "INTEGER"},
		{"VARCHAR(20)", "VARCHAR(20) NOT NULL"},
		{"DECIMAL(10, 2)", "DECIMAL(10, 2) NOT NULL"},
		{"numeric", "DECIMAL(19, 0) NOT NULL"},
		{"TIME(3)", "TIME(3) NOT NULL"},
		{"TIMESTAMP WITH LOCAL TIME ZONE", "TIMESTAMP_WITH_LOCAL_TIME_ZONE(0) NOT NULL"},
		{"INTERVAL DAY TO SECOND", "INTERVAL DAY TO SECOND NOT NULL"},
		{"INTERVAL HOUR(4)", "INTERVAL HOUR(4) NOT NULL"},
		{"INTERVAL DAY(4) TO SECOND(3)", "INTERVAL DAY(4) TO SECOND(3) NOT NULL"},
		{"INTERVAL SECOND(2, 9) NULL", "INTERVAL SECOND(2, 9)"},
		{"INTEGER ARRAY", "INTEGER NOT NULL ARRAY NOT NULL"},
		{"INTEGER NULL ARRAY NULL", "INTEGER ARRAY"},
		{"INTEGER ARRAY(10)", "INTEGER NOT NULL ARRAY(10, -1) NOT NULL"},
		{"VARCHAR(5) MULTISET", "VARCHAR(5) NOT NULL MULTISET NOT NULL"},
		{"INTEGER ARRAY MULTISET", "INTEGER NOT NULL ARRAY NOT NULL MULTISET NOT NULL"},
		{"MAP(VARCHAR, INTEGER NULL)", "(VARCHAR NOT NULL, INTEGER) MAP NOT NULL"},
		{"ROW(a INTEGER, b VARCHAR(3) NULL)", "RecordType(INTEGER NOT NULL a, VARCHAR(3) b) NOT NULL"},
		{`VARCHAR(5) CHARACTER SET "UTF-8"`, `VARCHAR(5) CHARACTER SET "UTF-8" NOT NULL`},
		{`CHAR(2) COLLATE "latin1$en_US$tertiary"`, `CHAR(2) COLLATE "ISO-8859-1$en_US$tertiary" NOT NULL`},
		{"ANY", "ANY NOT NULL"},
		{"NULL", "NULL"},
		{"  boolean  ", "BOOLEAN NOT NULL"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			f := polytype.NewFactory(nil)
			got, err := ParseType(f, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Digest())
		})
	}
}

func TestParseDigestRoundTrip(t *testing.T) {
	f := polytype.NewFactory(nil)
	utf8 := polytype.MustCharset("UTF-8")
	german, err := polytype.NewCollation("ISO-8859-1$de_DE$tertiary", polytype.CoercibilityImplicit)
	require.NoError(t, err)
	integer := f.CreateType(polytype.KindInteger)
	nullableInteger := f.CreateTypeWithNullability(integer, true)
	varchar := f.CreateTypeWithPrecision(polytype.KindVarchar, 3)
	types := []*polytype.Type{
		integer,
		nullableInteger,
		f.CreateType(polytype.KindNull),
		f.CreateTypeWithScale(polytype.KindDecimal, 7, 4),
		f.CreateTypeWithCharsetAndCollation(f.CreateTypeWithPrecision(polytype.KindVarchar, 10), utf8, polytype.ImplicitCollation(utf8)),
		f.CreateTypeWithCharsetAndCollation(f.CreateTypeWithPrecision(polytype.KindVarchar, 7), polytype.MustCharset(polytype.DefaultCharsetName), german),
		f.CreateIntervalType(polytype.NewIntervalQualifier(polytype.TimeUnitYear, polytype.TimeUnitMonth)),
		f.CreateArrayType(f.CreateType(polytype.KindDate), 5),
		f.CreateTypeWithNullability(f.CreateArrayType(f.CreateTypeWithScale(polytype.KindDecimal, 5, 2), polytype.NotSpecified), true),
		f.CreateArrayType(nullableInteger, polytype.NotSpecified),
		f.CreateMultisetType(f.CreateTypeWithPrecision(polytype.KindBinary, 3), polytype.NotSpecified),
		f.CreateMapType(f.CreateType(polytype.KindVarchar), f.CreateArrayType(integer, polytype.NotSpecified)),
		f.CreateMapType(f.CreateType(polytype.KindVarchar), nullableInteger),
		f.Builder().Add("x", integer).Add("EXPR$1", f.Builder().AddKind("y", polytype.KindDouble).Nullable(true).Build()).Build(),
		f.Builder().Add("a", nullableInteger).Add("b b", varchar).Build(),
		f.CreateType(polytype.KindGeometry),
	}
	for _, typ := range types {
		t.Run(typ.Digest(), func(t *testing.T) {
			got, err := ParseDigest(f, typ.Digest())
			require.NoError(t, err)
			assert.Equal(t, typ.Digest(), got.Digest())
			assert.True(t, typ.Equal(got))
		})
	}
}

func TestParseTypeDefaultsToNotNull(t *testing.T) {
	f := polytype.NewFactory(nil)
	got, err := ParseType(f, "DECIMAL(5, 2) NOT NULL ARRAY")
	require.NoError(t, err)
	assert.Equal(t, "DECIMAL(5, 2) NOT NULL ARRAY NOT NULL", got.Digest())

	got, err = ParseDigest(f, "DECIMAL(5, 2) NOT NULL ARRAY")
	require.NoError(t, err)
	assert.Equal(t, "DECIMAL(5, 2) NOT NULL ARRAY", got.Digest())
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		text   string
		offset int
	}{
		{"FOO", 0},
		{"INTEGER garbage", 8},
		{"INTEGER(5)", 0},
		{"VARCHAR(", 8},
		{"DECIMAL(5, 2", 12},
		{"INTERVAL SECOND TO DAY", 9},
		{"INTERVAL YEAR TO DAY", 9},
		{"INTERVAL DAY(2, 3)", 9},
		{"INTERVAL_DAY", 0},
		{"STRUCTURED", 0},
		{"ROW(a INTEGER", 13},
		{"ROW()", 4},
		{"MAP(INTEGER)", 11},
		{"INTEGER NOT", 11},
		{`VARCHAR CHARACTER SET "no-such-charset"`, 8},
		{`VARCHAR CHARACTER SET "UTF-8" COLLATE "latin1$en_US"`, 30},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := ParseType(polytype.NewFactory(nil), tt.text)
			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "%v", err)
			assert.Equal(t, tt.offset, syntaxErr.Offset, syntaxErr.Message)
		})
	}
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"decimal", `{"kind": "DECIMAL", "precision": 5, "scale": 2, "nullable": true}`, "DECIMAL(5, 2)"},
		{"type string", `"BIGINT NULL"`, "BIGINT"},
		{"array", `{"kind": "ARRAY", "component": "INTEGER"}`, "INTEGER NOT NULL ARRAY NOT NULL"},
		{"array with cardinality", `{"kind": "ARRAY", "component": "INTEGER", "cardinality": 3}`, "INTEGER NOT NULL ARRAY(3, -1) NOT NULL"},
		{"multiset", `{"kind": "MULTISET", "component": {"kind": "DATE", "nullable": true}}`, "DATE MULTISET NOT NULL"},
		{"map", `{"kind": "MAP", "key": {"kind": "VARCHAR"}, "value": "BIGINT NULL"}`, "(VARCHAR NOT NULL, BIGINT) MAP NOT NULL"},
		{
			"row",
			`{"kind": "ROW", "fields": [{"name": "a", "type": "INTEGER"}, {"name": "", "type": {"kind": "DATE"}}]}`,
			"RecordType(INTEGER NOT NULL a, DATE NOT NULL EXPR$1) NOT NULL",
		},
		{
			"interval",
			`{"kind": "INTERVAL", "interval": {"start": "DAY", "end": "SECOND", "fractionalSecondPrecision": 3}}`,
			"INTERVAL DAY TO SECOND(3) NOT NULL",
		},
		{"charset", `{"kind": "VARCHAR", "precision": 4, "charset": "UTF-8"}`, `VARCHAR(4) CHARACTER SET "UTF-8" NOT NULL`},
		{"alias", `{"kind": "INT"}`, "INTEGER NOT NULL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON(polytype.NewFactory(nil), []byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Digest())
		})
	}
}

func TestParseJSONErrors(t *testing.T) {
	docs := []string{
		`{`,
		`{}`,
		`[1]`,
		`{"kind": "FOO"}`,
		`{"kind": "ARRAY"}`,
		`{"kind": "MAP", "key": "INTEGER"}`,
		`{"kind": "ROW"}`,
		`{"kind": "ROW", "fields": [{"name": "a"}]}`,
		`{"kind": "INTERVAL", "interval": {"start": "SECOND", "end": "DAY"}}`,
		`{"kind": "INTEGER", "precision": 3}`,
		`{"kind": "INTEGER", "nullable": "yes"}`,
		`{"kind": "ARRAY", "component": "NOT A TYPE"}`,
		`{"kind": "VARCHAR", "charset": "UTF-8", "collation": "latin1$en_US"}`,
	}
	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			_, err := ParseJSON(polytype.NewFactory(nil), []byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestInferJSON(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"integer", `1`, "BIGINT NOT NULL"},
		{"double", `1.5`, "DOUBLE NOT NULL"},
		{"string", `"abc"`, "VARCHAR NOT NULL"},
		{"timestamp", `"2021-01-02T03:04:05Z"`, "TIMESTAMP(0) NOT NULL"},
		{"null", `null`, "NULL"},
		{"empty array", `[]`, "NULL ARRAY NOT NULL"},
		{"numbers", `[1, 2.5, null]`, "DOUBLE ARRAY NOT NULL"},
		{"mixed array", `["a", 1]`, "ANY NOT NULL ARRAY NOT NULL"},
		{
			"object",
			`{"b": 1, "a": "x", "c": true}`,
			"RecordType(VARCHAR NOT NULL a, BIGINT NOT NULL b, BOOLEAN NOT NULL c) NOT NULL",
		},
		{
			"objects in array",
			`[{"a": 1}, {"a": 2.5}]`,
			"RecordType(DOUBLE NOT NULL a) NOT NULL ARRAY NOT NULL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InferJSON(polytype.NewFactory(nil), []byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Digest())
		})
	}

	_, err := InferJSON(polytype.NewFactory(nil), []byte(`{"a": `))
	assert.Error(t, err)
}
