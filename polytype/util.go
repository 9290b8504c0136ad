package polytype

import "fmt"

func familyIs(t *Type, tag FamilyTag) bool {
	family, ok := t.Family().(FamilyTag)
	return ok && family == tag
}

func IsNumeric(t *Type) bool {
	return ContainsKind(NumericTypes, t.Kind())
}

func IsExactNumeric(t *Type) bool {
	return ContainsKind(ExactTypes, t.Kind())
}

func IsApproximateNumeric(t *Type) bool {
	return ContainsKind(ApproxTypes, t.Kind())
}

func IsDecimal(t *Type) bool {
	return t.Kind() == KindDecimal
}

func IsIntType(t *Type) bool {
	return ContainsKind(IntTypes, t.Kind())
}

func IsBoolean(t *Type) bool {
	return t.Kind() == KindBoolean
}

func IsCharacter(t *Type) bool {
	return ContainsKind(CharTypes, t.Kind())
}

func IsString(t *Type) bool {
	return ContainsKind(StringTypes, t.Kind())
}

func IsDatetime(t *Type) bool {
	return ContainsKind(DatetimeTypes, t.Kind())
}

func IsInterval(t *Type) bool {
	return ContainsKind(IntervalTypes, t.Kind())
}

func IsArray(t *Type) bool {
	return t.Kind() == KindArray
}

func IsMap(t *Type) bool {
	return t.Kind() == KindMap
}

func IsMultiset(t *Type) bool {
	return t.Kind() == KindMultiset
}

func IsAny(t *Type) bool {
	return familyIs(t, FamilyAny)
}

func IsNull(t *Type) bool {
	return t.Kind() == KindNull
}

// IsAtomic reports whether the type is a datetime, numeric, string or boolean.
func IsAtomic(t *Type) bool {
	if t.Kind() == KindNone {
		return false
	}
	return IsDatetime(t) || IsNumeric(t) || IsString(t) || IsBoolean(t)
}

// InCharFamily reports whether the type is CHAR, VARCHAR or a native string.
func InCharFamily(t *Type) bool {
	return familyIs(t, FamilyCharacter)
}

func InCharOrBinaryFamilies(t *Type) bool {
	return familyIs(t, FamilyCharacter) || familyIs(t, FamilyBinary)
}

// IsOfSameTypeName reports whether the type has the given kind.
func IsOfSameTypeName(kind Kind, t *Type) bool {
	return t.Kind() == kind
}

func IsUnicode(t *Type) bool {
	return t.Charset() != nil && t.Charset().IsUnicode()
}

// IsLob reports whether the type is a large object. There are no such kinds yet.
func IsLob(t *Type) bool {
	return false
}

// IsBoundedVariableWidth reports whether values of the type vary in length up to a bound.
func IsBoundedVariableWidth(t *Type) bool {
	switch t.Kind() {
	case KindVarchar, KindVarbinary, KindMultiset:
		return true
	}
	return false
}

// IsFlat reports whether none of the fields of a struct is itself a struct.
func IsFlat(t *Type) bool {
	for _, field := range t.fields {
		if field.Type.IsStruct() {
			return false
		}
	}
	return true
}

// MaxPrecision returns the larger of two precisions, where NotSpecified means unbounded.
func MaxPrecision(p0, p1 int) int {
	if p0 == NotSpecified || p0 >= p1 && p1 != NotSpecified {
		return p0
	}
	return p1
}

// ComparePrecision compares two precisions, where NotSpecified means unbounded.
func ComparePrecision(p0, p1 int) int {
	switch {
	case p0 == p1:
		return 0
	case p0 == NotSpecified:
		return 1
	case p1 == NotSpecified:
		return -1
	case p0 < p1:
		return -1
	}
	return 1
}

// SameNamedType reports whether the types have the same kinds, recursively for structs.
func SameNamedType(t1, t2 *Type) bool {
	if t1.IsStruct() || t2.IsStruct() {
		if !t1.IsStruct() || !t2.IsStruct() {
			return false
		}
		if t1.FieldCount() != t2.FieldCount() {
			return false
		}
		for i := range t1.fields {
			if !SameNamedType(t1.fields[i].Type, t2.fields[i].Type) {
				return false
			}
		}
		return true
	}
	return t1.Kind() == t2.Kind()
}

func EqualSansNullability(factory *Factory, t1, t2 *Type) bool {
	if t1.IsNullable() == t2.IsNullable() {
		return t1.Equal(t2)
	}
	return t1.Equal(factory.CreateTypeWithNullability(t2, t1.IsNullable()))
}

// ContainsNullable reports whether the type or any of its fields, recursively, is nullable.
func ContainsNullable(t *Type) bool {
	if t.IsNullable() {
		return true
	}
	for _, field := range t.fields {
		if ContainsNullable(field.Type) {
			return true
		}
	}
	return false
}

// MakeNullableIfOperandsAre makes t nullable if any of the operand types contains a nullable type.
func MakeNullableIfOperandsAre(factory *Factory, operands []*Type, t *Type) *Type {
	for _, operand := range operands {
		if ContainsNullable(operand) {
			return factory.CreateTypeWithNullability(t, true)
		}
	}
	return t
}

// AreCharacterSetsMismatched reports whether both types have a charset and they differ.
func AreCharacterSetsMismatched(t1, t2 *Type) bool {
	if IsAny(t1) || IsAny(t2) {
		return false
	}
	cs1, cs2 := t1.Charset(), t2.Charset()
	return cs1 != nil && cs2 != nil && !cs1.Equal(cs2)
}

// IsCharTypeComparable reports whether all the non-ANY types are character types
// with the same charset and collation charset.
func IsCharTypeComparable(types []*Type) bool {
	if len(types) < 2 {
		panic("need at least two types to compare")
	}
	var filtered []*Type
	for _, t := range types {
		if !IsAny(t) {
			filtered = append(filtered, t)
		}
	}
	for i := 0; i+1 < len(filtered); i++ {
		t0, t1 := filtered[i], filtered[i+1]
		if !InCharFamily(t0) || !InCharFamily(t1) {
			return false
		}
		if t0.Charset() == nil || t0.Collation() == nil {
			panic(fmt.Sprintf("%s should have been assigned a default charset and collation", t0))
		}
		if !t0.Charset().Equal(t1.Charset()) {
			return false
		}
		if !t0.Collation().Charset().Equal(t1.Collation().Charset()) {
			return false
		}
	}
	return true
}

func primitiveComponentType(t *Type) *Type {
	for t != nil && t.Kind() == KindArray {
		t = t.ComponentType()
	}
	return t
}

// CanAssignFrom reports whether a value of type from may be assigned to a
// column of type to without an explicit cast.
func CanAssignFrom(to, from *Type) bool {
	if IsAny(to) || IsAny(from) {
		return true
	}
	if from.Kind() == KindNull {
		return true
	}
	if from.Kind() == KindArray {
		if to.Kind() != KindArray {
			return false
		}
		return CanAssignFrom(primitiveComponentType(to.ComponentType()), primitiveComponentType(from.ComponentType()))
	}
	if ContainsKind(MultimediaTypes, to.Kind()) && from.Kind() == KindBinary {
		return true
	}
	if ContainsKind(DocumentTypes, to.Kind()) && ContainsKind(DocumentTypes, from.Kind()) {
		return true
	}
	if AreCharacterSetsMismatched(to, from) {
		return false
	}
	return to.Family() == from.Family()
}

// CanCastFrom reports whether a value of type from may be cast to type to.
// With coerce unset only the assignment rules apply.
func CanCastFrom(to, from *Type, coerce bool) bool {
	if to.Equal(from) {
		return true
	}
	if IsAny(to) || IsAny(from) {
		return true
	}
	fromKind, toKind := from.Kind(), to.Kind()
	if fromKind == KindNull {
		return toKind != KindNull
	}
	if to.IsStruct() || from.IsStruct() {
		switch {
		case toKind == KindDistinct:
			if fromKind == KindDistinct {
				// Different distinct types can't be cast to each other.
				return false
			}
			return CanCastFrom(to.fields[0].Type, from, coerce)
		case fromKind == KindDistinct:
			return CanCastFrom(to, from.fields[0].Type, coerce)
		case toKind == KindRow:
			if fromKind != KindRow || from.FieldCount() != to.FieldCount() {
				return false
			}
			for i := range to.fields {
				if !CanCastFrom(to.fields[i].Type, from.fields[i].Type, coerce) {
					return false
				}
			}
			return true
		case toKind == KindMultiset:
			if !from.IsStruct() || fromKind != KindMultiset {
				return false
			}
			return CanCastFrom(to.ComponentType(), from.ComponentType(), coerce)
		case fromKind == KindMultiset:
			return false
		}
		return to.Family() == from.Family()
	}

	if c1 := to.ComponentType(); c1 != nil {
		c2 := from.ComponentType()
		if c2 == nil {
			return false
		}
		return CanCastFrom(c1, c2, coerce)
	}
	if to.Variant() == VariantMap && from.Variant() == VariantMap {
		return CanCastFrom(to.KeyType(), from.KeyType(), coerce) && CanCastFrom(to.ValueType(), from.ValueType(), coerce)
	}

	if IsInterval(from) && IsExactNumeric(to) || IsInterval(to) && IsExactNumeric(from) {
		interval := to
		if IsInterval(from) {
			interval = from
		}
		if q, ok := interval.IntervalQualifier(); ok && !q.IsSingleDatetimeField() {
			return false
		}
	}
	if toKind == KindNone || fromKind == KindNone {
		return false
	}
	return Rules(coerce).CanCastFrom(toKind, fromKind)
}

// comparisonFamily prefers the kind's family over the type's own.
func comparisonFamily(t *Type) Family {
	if family, ok := t.Kind().Family(); ok {
		return family
	}
	return t.Family()
}

// CanConvertStringInCompare reports whether a character value is implicitly
// converted to the family when compared with it.
func CanConvertStringInCompare(family Family) bool {
	tag, ok := family.(FamilyTag)
	if !ok {
		return false
	}
	switch tag {
	case FamilyDate, FamilyTime, FamilyTimestamp, FamilyIntervalDayTime, FamilyIntervalYearMonth,
		FamilyNumeric, FamilyApproximateNumeric, FamilyExactNumeric, FamilyInteger, FamilyBoolean:
		return true
	}
	return false
}

// IsComparable reports whether values of the two types may be compared with each other.
func IsComparable(t1, t2 *Type) bool {
	if t1.IsStruct() != t2.IsStruct() {
		return false
	}
	if t1.IsStruct() {
		if t1.FieldCount() != t2.FieldCount() {
			return false
		}
		for i := range t1.fields {
			if !IsComparable(t1.fields[i].Type, t2.fields[i].Type) {
				return false
			}
		}
		return true
	}

	family1, family2 := comparisonFamily(t1), comparisonFamily(t2)
	switch {
	case family1 == family2:
		return true
	case family1 == FamilyAny || family2 == FamilyAny:
		return true
	case family1 == FamilyNull || family2 == FamilyNull:
		return true
	case family1 == FamilyCharacter && CanConvertStringInCompare(family2):
		return true
	case family2 == FamilyCharacter && CanConvertStringInCompare(family1):
		return true
	}
	return false
}

// LeastRestrictiveForComparison returns the type both operands of a comparison
// are converted to, or nil if they can't be compared.
func LeastRestrictiveForComparison(factory *Factory, t1, t2 *Type) *Type {
	if t := factory.LeastRestrictive([]*Type{t1, t2}); t != nil {
		return t
	}
	family1, family2 := comparisonFamily(t1), comparisonFamily(t2)
	switch {
	case family1 == FamilyAny:
		return t2
	case family2 == FamilyAny:
		return t1
	case family1 == FamilyNull:
		return t2
	case family2 == FamilyNull:
		return t1
	case family1 == FamilyCharacter && CanConvertStringInCompare(family2):
		return t2
	case family2 == FamilyCharacter && CanConvertStringInCompare(family1):
		return t1
	}
	return nil
}

// NeedsNullIndicator reports whether flattening the type adds a NULL_VALUE field.
func NeedsNullIndicator(t *Type) bool {
	return t.Kind() == KindStructured
}

// FlattenRecordType inlines nested struct fields. If flatteningMap is not nil,
// it receives the flattened position of each top level field.
func FlattenRecordType(factory *Factory, t *Type, flatteningMap []int) *Type {
	if !t.IsStruct() {
		return t
	}
	var fields []Field
	if !flattenFields(factory, t, &fields, flatteningMap) {
		return t
	}

	counts := map[string]int{}
	for _, field := range fields {
		counts[field.Name]++
	}
	types := make([]*Type, len(fields))
	names := make([]string, len(fields))
	for i, field := range fields {
		types[i] = field.Type
		names[i] = field.Name
		if counts[field.Name] > 1 {
			names[i] = fmt.Sprintf("%s_%d", field.Name, i)
		}
	}
	return factory.CreateStructType(StructKindFullyQualified, types, names)
}

func flattenFields(factory *Factory, t *Type, out *[]Field, flatteningMap []int) bool {
	nested := false
	if NeedsNullIndicator(t) {
		indicator := factory.CreateTypeWithNullability(factory.CreateType(KindBoolean), t.IsNullable())
		*out = append(*out, Field{Name: "NULL_VALUE", Index: 0, Type: indicator})
		nested = true
	}
	for _, field := range t.fields {
		if flatteningMap != nil {
			flatteningMap[field.Index] = len(*out)
		}
		switch {
		case field.Type.IsStruct():
			nested = true
			flattenFields(factory, field.Type, out, nil)
		case field.Type.ComponentType() != nil:
			nested = true
			element := FlattenRecordType(factory, field.Type.ComponentType(), nil)
			collection := factory.CreateMultisetType(element, NotSpecified)
			if field.Type.Kind() == KindArray {
				collection = factory.CreateArrayType(element, NotSpecified)
			}
			*out = append(*out, Field{Name: field.Name, Index: field.Index, Type: collection})
		default:
			*out = append(*out, field)
		}
	}
	return nested
}
