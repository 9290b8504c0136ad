package polytype

import (
	"fmt"
	"reflect"
	"strings"
)

// Variant tells which payload of a Type is meaningful.
type Variant int

const (
	VariantBasic Variant = iota
	VariantArray
	VariantMultiset
	VariantMap
	VariantInterval
	VariantRecord
	VariantObject
	VariantNative
	VariantUnknown
)

func (v Variant) String() string {
	switch v {
	case VariantBasic:
		return "basic"
	case VariantArray:
		return "array"
	case VariantMultiset:
		return "multiset"
	case VariantMap:
		return "map"
	case VariantInterval:
		return "interval"
	case VariantRecord:
		return "record"
	case VariantObject:
		return "object"
	case VariantNative:
		return "native"
	case VariantUnknown:
		return "unknown"
	}
	panic("impossible, variant switch bug")
}

// StructKind describes how the fields of a record are resolved by name.
type StructKind int

const (
	StructKindNone StructKind = iota
	StructKindFullyQualified
	StructKindPeekFieldsDefault
	StructKindPeekFields
	StructKindPeekFieldsNoExpand
)

// Comparability of an object type's values.
type Comparability int

const (
	ComparabilityAll Comparability = iota
	ComparabilityUnordered
	ComparabilityNone
)

// Field is a named member of a structured type.
type Field struct {
	Name  string
	Index int
	Type  *Type
}

func (f Field) String() string {
	return fmt.Sprintf("#%d: %s %s", f.Index, f.Name, f.Type)
}

// Type is an immutable type descriptor. Descriptors are created by a Factory
// and are interned, so equal descriptors are usually the same pointer.
// Use Equal to compare them regardless.
type Type struct {
	variant  Variant
	kind     Kind
	nullable bool
	digest   string

	// Basic, native
	precision int
	scale     int
	charset   *Charset
	collation *Collation

	// Array, multiset
	element     *Type
	cardinality int
	dimension   int

	// Map
	key   *Type
	value *Type

	// Interval
	qualifier IntervalQualifier

	// Record, object
	structKind    StructKind
	fields        []Field
	name          string
	comparability Comparability
	family        Family

	// Native
	native reflect.Type
}

func (t *Type) Variant() Variant {
	return t.variant
}

// Kind returns the catalog kind, or KindNone.
func (t *Type) Kind() Kind {
	return t.kind
}

func (t *Type) IsNullable() bool {
	return t.nullable
}

// Digest is the canonical rendering of the descriptor. Two descriptors are equal iff their digests are.
func (t *Type) Digest() string {
	return t.digest
}

// FullTypeString is the digest.
func (t *Type) FullTypeString() string {
	return t.digest
}

// String renders the type without nullability, charset and collation.
func (t *Type) String() string {
	return t.typeString(false)
}

func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return t.digest == other.digest
}

// Precision returns the precision, falling back to the kind's default.
func (t *Type) Precision() int {
	switch t.variant {
	case VariantBasic, VariantUnknown:
		if t.precision == NotSpecified {
			return defaultPrecision(t.kind)
		}
		return t.precision
	case VariantInterval:
		return t.qualifier.StartPrecision()
	}
	return NotSpecified
}

// Scale returns the scale; integer kinds and DECIMAL default to 0.
func (t *Type) Scale() int {
	switch t.variant {
	case VariantBasic:
		if t.scale == NotSpecified {
			switch t.kind {
			case KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindDecimal:
				return 0
			}
		}
		return t.scale
	case VariantInterval:
		return t.qualifier.FractionalSecondPrecision()
	}
	return NotSpecified
}

// Charset is nil for non character types.
func (t *Type) Charset() *Charset {
	return t.charset
}

// Collation is nil for non character types.
func (t *Type) Collation() *Collation {
	return t.collation
}

// ComponentType returns the element type of collections, nil otherwise.
func (t *Type) ComponentType() *Type {
	return t.element
}

// Cardinality returns an array's maximum cardinality, or NotSpecified.
func (t *Type) Cardinality() int {
	if t.variant == VariantArray || t.variant == VariantMultiset {
		return t.cardinality
	}
	return NotSpecified
}

// Dimension returns an array's dimension, or NotSpecified.
func (t *Type) Dimension() int {
	if t.variant == VariantArray {
		return t.dimension
	}
	return NotSpecified
}

// NestedComponentType descends through nested arrays to the innermost element type.
func (t *Type) NestedComponentType() *Type {
	out := t.element
	for out != nil && out.variant == VariantArray {
		out = out.element
	}
	return out
}

func (t *Type) KeyType() *Type {
	return t.key
}

func (t *Type) ValueType() *Type {
	return t.value
}

func (t *Type) IntervalQualifier() (IntervalQualifier, bool) {
	return t.qualifier, t.variant == VariantInterval
}

// IsStruct reports whether the descriptor has a field list.
func (t *Type) IsStruct() bool {
	return t.fields != nil
}

func (t *Type) StructKind() StructKind {
	return t.structKind
}

func (t *Type) Fields() []Field {
	if t.fields == nil {
		return nil
	}
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

func (t *Type) FieldCount() int {
	return len(t.fields)
}

func (t *Type) FieldNames() []string {
	if t.fields == nil {
		return nil
	}
	out := make([]string, len(t.fields))
	for i := range t.fields {
		out[i] = t.fields[i].Name
	}
	return out
}

// Field looks a field up by name.
func (t *Type) Field(name string, caseSensitive bool) (Field, bool) {
	for _, field := range t.fields {
		if field.Name == name || !caseSensitive && strings.EqualFold(field.Name, name) {
			return field, true
		}
	}
	return Field{}, false
}

// Name is the identifier of an object type.
func (t *Type) Name() string {
	return t.name
}

func (t *Type) Comparability() Comparability {
	if t.variant == VariantObject {
		return t.comparability
	}
	return ComparabilityAll
}

// NativeType is the Go type backing a native descriptor, nil otherwise.
func (t *Type) NativeType() reflect.Type {
	return t.native
}

// Family returns the kind's family. Types with no family of their own form a family by themselves.
func (t *Type) Family() Family {
	switch t.variant {
	case VariantBasic, VariantInterval, VariantUnknown:
		if family, ok := t.kind.Family(); ok {
			return family
		}
	case VariantObject:
		if t.family != nil {
			return t.family
		}
	case VariantNative:
		if family, ok := nativeFamily(t.native); ok {
			return family
		}
	}
	return t
}

// FamilyName implements Family for types which are their own family.
func (t *Type) FamilyName() string {
	return t.digest
}

func (t *Type) computeDigest() {
	if t.kind == KindNull {
		t.nullable = true
	}
	digest := t.typeString(true)
	if !t.nullable {
		digest += " NOT NULL"
	}
	t.digest = digest
}

func (t *Type) typeString(withDetail bool) string {
	child := func(c *Type) string {
		if withDetail {
			return c.digest
		}
		return c.String()
	}

	var sb strings.Builder
	switch t.variant {
	case VariantBasic:
		sb.WriteString(t.kind.String())
		if t.precision != NotSpecified {
			fmt.Fprintf(&sb, "(%d", t.Precision())
			if t.scale != NotSpecified {
				fmt.Fprintf(&sb, ", %d", t.Scale())
			}
			sb.WriteString(")")
		}
		if withDetail {
			t.writeCharsetAndCollation(&sb)
		}
	case VariantArray:
		sb.WriteString(child(t.element))
		sb.WriteString(" ARRAY")
		if t.cardinality != NotSpecified || t.dimension != NotSpecified {
			fmt.Fprintf(&sb, "(%d, %d)", t.cardinality, t.dimension)
		}
	case VariantMultiset:
		sb.WriteString(child(t.element))
		sb.WriteString(" MULTISET")
	case VariantMap:
		fmt.Fprintf(&sb, "(%s, %s) MAP", child(t.key), child(t.value))
	case VariantInterval:
		sb.WriteString("INTERVAL ")
		sb.WriteString(t.qualifier.String())
	case VariantRecord:
		if t.kind == KindPath {
			sb.WriteString("PathType")
		} else {
			sb.WriteString("RecordType")
		}
		switch t.structKind {
		case StructKindPeekFields:
			sb.WriteString(":peek")
		case StructKindPeekFieldsDefault:
			sb.WriteString(":peek_default")
		case StructKindPeekFieldsNoExpand:
			sb.WriteString(":peek_no_expand")
		}
		sb.WriteString("(")
		for i, field := range t.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(child(field.Type))
			sb.WriteString(" ")
			sb.WriteString(field.Name)
		}
		sb.WriteString(")")
	case VariantObject:
		sb.WriteString(t.name)
	case VariantNative:
		fmt.Fprintf(&sb, "NativeType(%s)", t.native)
		if withDetail {
			t.writeCharsetAndCollation(&sb)
		}
	case VariantUnknown:
		sb.WriteString("UNKNOWN")
	default:
		panic("impossible, variant switch bug")
	}
	return sb.String()
}

func (t *Type) writeCharsetAndCollation(sb *strings.Builder) {
	if t.charset != nil && t.charset.Name() != DefaultCharsetName {
		fmt.Fprintf(sb, " CHARACTER SET \"%s\"", t.charset.Name())
	}
	if t.collation == nil || isDefaultCollation(t.collation) {
		return
	}
	fmt.Fprintf(sb, " COLLATE \"%s\"", t.collation.Name())
	if t.collation.Coercibility() != CoercibilityExplicit {
		fmt.Fprintf(sb, " %s", t.collation.Coercibility())
	}
}

// isDefaultCollation reports whether c is the collation a charset gets when none is given.
func isDefaultCollation(c *Collation) bool {
	switch c.Coercibility() {
	case CoercibilityImplicit, CoercibilityCoercible:
		return c.Name() == defaultCollation(c.Charset(), c.Coercibility()).Name()
	}
	return false
}

// copyWithNullability returns a provisional, not yet interned copy.
// Record nullability is shallow: the fields keep theirs.
func (t *Type) copyWithNullability(nullable bool) *Type {
	out := *t
	out.nullable = nullable
	out.family = nil
	if t.fields != nil {
		out.fields = make([]Field, len(t.fields))
		copy(out.fields, t.fields)
	}
	if t.variant == VariantNative {
		out.native = boxNative(t.native, nullable)
	}
	out.computeDigest()
	return &out
}
