package polytype

// NotSpecified marks an absent precision or scale.
const NotSpecified = -1

const (
	DefaultMaxNumericPrecision = 19
	DefaultMaxNumericScale     = 19
	DefaultMaxCharLength       = 65536
	DefaultMaxTimePrecision    = 3
)

// TypeSystem supplies the limits and defaults of a deployment.
type TypeSystem interface {
	MaxScale(kind Kind) int
	DefaultPrecision(kind Kind) int
	MaxPrecision(kind Kind) int
	MaxNumericScale() int
	MaxNumericPrecision() int
	// ShouldConvertRaggedUnionTypesToVarying decides whether the least
	// restrictive type of CHAR(1) and CHAR(3) is CHAR(3) or VARCHAR(3).
	ShouldConvertRaggedUnionTypesToVarying() bool
	DefaultCharset() *Charset
}

// BaseTypeSystem is the standard type system. The zero value is ready to use,
// non-zero fields override the defaults.
type BaseTypeSystem struct {
	NumericPrecision      int
	NumericScale          int
	DefaultPrecisions     map[Kind]int
	MaxPrecisions         map[Kind]int
	RaggedUnionsToVarying bool
	Charset               *Charset
}

var DefaultTypeSystem TypeSystem = &BaseTypeSystem{}

func (ts *BaseTypeSystem) MaxScale(kind Kind) int {
	switch {
	case kind == KindDecimal:
		return ts.MaxNumericScale()
	case ContainsKind(IntervalTypes, kind):
		return MaxIntervalFractionalSecondPrecision
	}
	return NotSpecified
}

func (ts *BaseTypeSystem) DefaultPrecision(kind Kind) int {
	if p, ok := ts.DefaultPrecisions[kind]; ok {
		return p
	}
	if kind == KindDecimal {
		return ts.MaxNumericPrecision()
	}
	return defaultPrecision(kind)
}

// defaultPrecision is what a descriptor reports when no precision was given.
func defaultPrecision(kind Kind) int {
	switch kind {
	case KindChar, KindBinary:
		return 1
	case KindVarchar, KindVarbinary:
		return NotSpecified
	case KindDecimal:
		return DefaultMaxNumericPrecision
	case KindBoolean:
		return 1
	case KindTinyInt:
		return 3
	case KindSmallInt:
		return 5
	case KindInteger:
		return 10
	case KindBigInt:
		return 19
	case KindReal:
		return 7
	case KindFloat, KindDouble:
		return 15
	case KindTime, KindTimeWithLocalTimeZone, KindDate, KindTimestamp, KindTimestampWithLocalTimeZone:
		return 0
	}
	if ContainsKind(IntervalTypes, kind) {
		return DefaultIntervalStartPrecision
	}
	return NotSpecified
}

func (ts *BaseTypeSystem) MaxPrecision(kind Kind) int {
	if p, ok := ts.MaxPrecisions[kind]; ok {
		return p
	}
	switch {
	case kind == KindDecimal:
		return ts.MaxNumericPrecision()
	case ContainsKind(StringTypes, kind):
		return DefaultMaxCharLength
	case kind == KindTime || kind == KindTimeWithLocalTimeZone || kind == KindTimestamp || kind == KindTimestampWithLocalTimeZone:
		return DefaultMaxTimePrecision
	case ContainsKind(IntervalTypes, kind):
		return MaxIntervalStartPrecision
	}
	return ts.DefaultPrecision(kind)
}

func (ts *BaseTypeSystem) MaxNumericScale() int {
	if ts.NumericScale > 0 {
		return ts.NumericScale
	}
	return DefaultMaxNumericScale
}

func (ts *BaseTypeSystem) MaxNumericPrecision() int {
	if ts.NumericPrecision > 0 {
		return ts.NumericPrecision
	}
	return DefaultMaxNumericPrecision
}

func (ts *BaseTypeSystem) ShouldConvertRaggedUnionTypesToVarying() bool {
	return ts.RaggedUnionsToVarying
}

func (ts *BaseTypeSystem) DefaultCharset() *Charset {
	if ts.Charset != nil {
		return ts.Charset
	}
	return MustCharset(DefaultCharsetName)
}
