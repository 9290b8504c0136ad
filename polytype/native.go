package polytype

import (
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	bytesType   = reflect.TypeOf([]byte(nil))
)

// CreateNativeType creates a descriptor backed by a Go type. Pointer, slice, map and
// interface types are nullable. Character types get the default charset.
func (f *Factory) CreateNativeType(rt reflect.Type) *Type {
	t := &Type{
		variant:     VariantNative,
		kind:        nativeKind(rt),
		nullable:    !isValueKind(rt),
		precision:   NotSpecified,
		scale:       NotSpecified,
		cardinality: NotSpecified,
		dimension:   NotSpecified,
		native:      rt,
	}
	if t.kind == KindArray {
		t.element = f.CreateNativeType(nativeBase(rt).Elem())
	}
	t.computeDigest()
	if t.kind == KindVarchar {
		charset := f.typeSystem.DefaultCharset()
		t = f.withCharsetAndCollation(t, charset, ImplicitCollation(charset))
	}
	return f.canonize(t)
}

func isValueKind(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return false
	}
	return true
}

func nativeBase(rt reflect.Type) reflect.Type {
	if rt.Kind() == reflect.Ptr {
		return rt.Elem()
	}
	return rt
}

// boxNative switches between a value type and a pointer to it.
func boxNative(rt reflect.Type, nullable bool) reflect.Type {
	switch {
	case nullable && isValueKind(rt):
		return reflect.PtrTo(rt)
	case !nullable && rt.Kind() == reflect.Ptr:
		return rt.Elem()
	}
	return rt
}

func nativeKind(rt reflect.Type) Kind {
	base := nativeBase(rt)
	switch base {
	case timeType:
		return KindTimestamp
	case decimalType:
		return KindDecimal
	case bytesType:
		return KindVarbinary
	}
	switch base.Kind() {
	case reflect.Bool:
		return KindBoolean
	case reflect.Int8:
		return KindTinyInt
	case reflect.Int16, reflect.Uint8:
		return KindSmallInt
	case reflect.Int32, reflect.Uint16:
		return KindInteger
	case reflect.Int, reflect.Int64, reflect.Uint32:
		return KindBigInt
	case reflect.Uint, reflect.Uint64:
		return KindDecimal
	case reflect.Float32:
		return KindReal
	case reflect.Float64:
		return KindDouble
	case reflect.String:
		return KindVarchar
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map:
		return KindMap
	case reflect.Interface:
		return KindAny
	case reflect.Struct:
		return KindOther
	}
	return KindNone
}

func nativeFamily(rt reflect.Type) (FamilyTag, bool) {
	kind := nativeKind(rt)
	switch {
	case ContainsKind(NumericTypes, kind):
		return FamilyNumeric, true
	case kind == KindBoolean:
		return FamilyBoolean, true
	case kind == KindVarchar:
		return FamilyCharacter, true
	case kind == KindVarbinary:
		return FamilyBinary, true
	case kind == KindTimestamp:
		return FamilyTimestamp, true
	}
	return 0, false
}

// IsNative reports whether the descriptor is backed by a Go type.
func IsNative(t *Type) bool {
	return t.variant == VariantNative
}
