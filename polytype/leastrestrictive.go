package polytype

import (
	"strings"
)

// LeastRestrictive returns the narrowest type all the given types can be converted to,
// or nil if there is none. The result is nullable if any operand is.
func (f *Factory) LeastRestrictive(types []*Type) *Type {
	if len(types) == 0 {
		panic("least restrictive type of no types")
	}
	var key string
	if f.results != nil {
		key = resultKey(types)
		if cached, ok := f.results.Get(key); ok {
			return cached.(*Type)
		}
	}

	out := f.leastRestrictive(types)
	if out != nil && f.results != nil {
		f.results.Set(key, out, 1)
	}
	return out
}

func resultKey(types []*Type) string {
	var sb strings.Builder
	for i, t := range types {
		if i > 0 {
			sb.WriteByte(0)
		}
		sb.WriteString(t.digest)
	}
	return sb.String()
}

func (f *Factory) leastRestrictive(types []*Type) *Type {
	if types[0].Kind() == KindNone && types[0].IsStruct() {
		return f.leastRestrictiveStructured(types)
	}
	if out := f.leastRestrictiveByKind(types); out != nil {
		return out
	}
	return f.leastRestrictiveByCast(types)
}

func (f *Factory) leastRestrictiveByKind(types []*Type) *Type {
	var anyCount, nullableCount, nullCount, nativeCount int
	for _, t := range types {
		switch t.Kind() {
		case KindNone:
			return nil
		case KindAny:
			anyCount++
		case KindNull:
			nullCount++
		}
		if t.IsNullable() {
			nullableCount++
		}
		if IsNative(t) {
			nativeCount++
		}
	}
	nullable := nullCount > 0 || nullableCount > 0

	if anyCount > 0 {
		return f.CreateTypeWithNullability(f.CreateType(KindAny), nullable)
	}

	var result *Type
	for i, t := range types {
		if t.Kind() == KindNull {
			continue
		}
		family := t.Family()

		// Native types become their basic equivalent, unless every operand
		// which isn't NULL is native.
		if IsNative(t) && nativeCount+nullCount < len(types) && !t.Kind().IsSpecial() {
			t = f.CreateTypeWithNullability(f.CreateType(t.Kind()), t.IsNullable())
		}

		if result == nil {
			result = t
			if result.Kind() == KindRow {
				return f.leastRestrictiveStructured(types)
			}
		}
		if result.Family() != family {
			return nil
		}

		var next *Type
		if i+1 < len(types) {
			next = types[i+1]
		}

		switch {
		case InCharOrBinaryFamilies(t):
			if result = f.leastRestrictiveString(result, t); result == nil {
				return nil
			}

		case IsExactNumeric(t):
			switch {
			case IsExactNumeric(result):
				// exact + datetime is datetime arithmetic
				if next != nil && IsDatetime(next) {
					return f.CreateTypeWithNullability(next, nullable)
				}
				if !t.Equal(result) {
					result = f.leastRestrictiveExact(result, t)
				}
			case IsApproximateNumeric(result):
				if IsDecimal(t) {
					result = f.CreateType(KindDouble)
				}
			default:
				return nil
			}

		case IsApproximateNumeric(t):
			switch {
			case IsApproximateNumeric(result):
				if p, rp := t.Precision(), result.Precision(); p > rp || p == rp && numericRank(t.Kind()) > numericRank(result.Kind()) {
					result = t
				}
			case IsExactNumeric(result):
				if IsDecimal(result) {
					result = f.CreateType(KindDouble)
				} else {
					result = t
				}
			default:
				return nil
			}

		case IsInterval(t):
			// interval + datetime is datetime arithmetic
			if next != nil && IsDatetime(next) {
				return f.CreateTypeWithNullability(next, nullable)
			}
			if !t.Equal(result) {
				a, _ := result.IntervalQualifier()
				b, _ := t.IntervalQualifier()
				result = f.CreateTypeWithNullability(f.CreateIntervalType(a.Combine(b).Combine(a)), nullable)
			}

		case IsDatetime(t):
			// datetime +/- interval or integer stays datetime
			if next != nil && (IsInterval(next) || IsIntType(next)) {
				return f.CreateTypeWithNullability(t, nullable)
			}

		default:
			// Other families are left to the cast rules.
			return nil
		}
	}
	if result != nil && nullableCount > 0 {
		result = f.CreateTypeWithNullability(result, true)
	}
	return result
}

func numericRank(kind Kind) int {
	for i, k := range compactNumericTypes {
		if k == kind {
			return i
		}
	}
	return -1
}

// leastRestrictiveExact computes the DECIMAL holding both exact numerics,
// or the wider one if neither takes a precision.
func (f *Factory) leastRestrictiveExact(result, t *Type) *Type {
	if !t.Kind().AllowsPrecNoScale() && !result.Kind().AllowsPrecNoScale() {
		if t.Precision() > result.Precision() {
			return t
		}
		return result
	}

	p1, p2 := result.Precision(), t.Precision()
	s1, s2 := result.Scale(), t.Scale()
	maxPrecision := f.typeSystem.MaxNumericPrecision()
	maxScale := f.typeSystem.MaxNumericScale()

	whole := min(max(p1-s1, p2-s2), maxPrecision)
	scale := max(s1, s2)
	scale = min(scale, maxPrecision-whole)
	scale = min(scale, maxScale)
	return f.CreateTypeWithScale(KindDecimal, whole+scale, scale)
}

// leastRestrictiveString merges two character or two binary types.
func (f *Factory) leastRestrictiveString(result, t *Type) *Type {
	charset1, charset2 := t.Charset(), result.Charset()
	collation1, collation2 := t.Collation(), result.Collation()
	precision := MaxPrecision(result.Precision(), t.Precision())

	var out *Type
	switch {
	case IsLob(result):
		out = f.CreateType(result.Kind())
	case IsLob(t):
		out = f.CreateType(t.Kind())
	case IsBoundedVariableWidth(result):
		out = f.CreateTypeWithPrecision(result.Kind(), precision)
	default:
		kind := t.Kind()
		if f.typeSystem.ShouldConvertRaggedUnionTypesToVarying() && result.Precision() != t.Precision() {
			switch kind {
			case KindChar:
				kind = KindVarchar
			case KindBinary:
				kind = KindVarbinary
			}
		}
		out = f.CreateTypeWithPrecision(kind, precision)
	}

	if charset1 == nil && charset2 == nil {
		return out
	}
	// The collation follows the chosen charset. Conflicting collations are left to the operators.
	var charset *Charset
	var collation *Collation
	switch {
	case charset1 == nil:
		charset, collation = charset2, collation2
	case charset2 == nil:
		charset, collation = charset1, collation1
	case charset1.Equal(charset2), charset1.Contains(charset2):
		charset, collation = charset1, collation1
	default:
		charset, collation = charset2, collation2
	}
	if collation == nil {
		collation = ImplicitCollation(charset)
	}
	return f.CreateTypeWithCharsetAndCollation(out, charset, collation)
}

// leastRestrictiveByCast advances to each type the running result can be cast to.
func (f *Factory) leastRestrictiveByCast(types []*Type) *Type {
	result := types[0]
	nullable := result.IsNullable()
	for _, t := range types[1:] {
		if t.Kind() == KindNull {
			nullable = true
			continue
		}
		if t.IsNullable() {
			nullable = true
		}
		if CanCastFrom(t, result, false) {
			result = t
		} else if !CanCastFrom(result, t, false) {
			return nil
		}
	}
	if nullable {
		return f.CreateTypeWithNullability(result, true)
	}
	return result
}

// leastRestrictiveStructured merges structs column by column, keeping the field names of the first.
func (f *Factory) leastRestrictiveStructured(types []*Type) *Type {
	first := types[0]
	nullable := false
	for _, t := range types {
		if !t.IsStruct() || t.FieldCount() != first.FieldCount() {
			return nil
		}
		nullable = nullable || t.IsNullable()
	}

	builder := f.Builder()
	column := make([]*Type, len(types))
	for j, field := range first.fields {
		for i, t := range types {
			column[i] = t.fields[j].Type
		}
		merged := f.LeastRestrictive(column)
		if merged == nil {
			return nil
		}
		builder.Add(field.Name, merged)
	}
	return f.CreateTypeWithNullability(builder.Build(), nullable)
}
