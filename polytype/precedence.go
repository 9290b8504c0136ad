package polytype

import "fmt"

// PrecedenceList ranks types which may be promoted to one another.
type PrecedenceList interface {
	ContainsType(t *Type) bool
	// CompareTypePrecedence returns a positive number if t1 has higher
	// precedence than t2, a negative number if lower and 0 if equal.
	// Both types must be contained in the list.
	CompareTypePrecedence(t1, t2 *Type) int
}

// equivalenceMarker separates equivalence classes in an explicit precedence list.
// Kinds following the same marker share its position.
const equivalenceMarker = KindNone

// ExplicitPrecedenceList is a precedence list given by an ordered sequence of kinds.
type ExplicitPrecedenceList struct {
	kinds []Kind
}

func NewExplicitPrecedenceList(kinds ...Kind) *ExplicitPrecedenceList {
	return &ExplicitPrecedenceList{kinds: kinds}
}

// Kinds returns the kinds of the list in order, with equivalence markers stripped.
func (l *ExplicitPrecedenceList) Kinds() []Kind {
	out := make([]Kind, 0, len(l.kinds))
	for _, k := range l.kinds {
		if k != equivalenceMarker {
			out = append(out, k)
		}
	}
	return out
}

func (l *ExplicitPrecedenceList) ContainsType(t *Type) bool {
	return t.Kind() != KindNone && l.position(t.Kind()) != -1
}

func (l *ExplicitPrecedenceList) CompareTypePrecedence(t1, t2 *Type) int {
	p1, p2 := l.position(t1.Kind()), l.position(t2.Kind())
	if p1 == -1 || p2 == -1 {
		panic(fmt.Sprintf("precedence list %v must contain both %s and %s", l.Kinds(), t1, t2))
	}
	return p2 - p1
}

func (l *ExplicitPrecedenceList) position(kind Kind) int {
	if kind == equivalenceMarker {
		return -1
	}
	i := -1
	for j, k := range l.kinds {
		if k == kind {
			i = j
			break
		}
	}
	if i == -1 {
		return -1
	}
	for j := i - 1; j >= 0; j-- {
		if l.kinds[j] == equivalenceMarker {
			return j
		}
	}
	return i
}

var compactNumericTypes = []Kind{
	KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindDecimal, KindReal, KindFloat, KindDouble,
}

// numericPrecedence starts the compact numeric ordering at the kind itself.
func numericPrecedence(kind Kind) *ExplicitPrecedenceList {
	for i, k := range compactNumericTypes {
		if k == kind {
			return NewExplicitPrecedenceList(compactNumericTypes[i:]...)
		}
	}
	panic(fmt.Sprintf("%s is not a compact numeric kind", kind))
}

var kindPrecedenceLists = func() map[Kind]*ExplicitPrecedenceList {
	lists := map[Kind]*ExplicitPrecedenceList{
		KindBoolean:   NewExplicitPrecedenceList(KindBoolean),
		KindTinyInt:   numericPrecedence(KindTinyInt),
		KindSmallInt:  numericPrecedence(KindSmallInt),
		KindInteger:   numericPrecedence(KindInteger),
		KindBigInt:    numericPrecedence(KindBigInt),
		KindDecimal:   numericPrecedence(KindDecimal),
		KindReal:      numericPrecedence(KindReal),
		KindFloat:     NewExplicitPrecedenceList(KindFloat, KindReal, KindDouble),
		KindDouble:    NewExplicitPrecedenceList(KindDouble, KindDecimal),
		KindChar:      NewExplicitPrecedenceList(KindChar, KindVarchar),
		KindVarchar:   NewExplicitPrecedenceList(KindVarchar),
		KindBinary:    NewExplicitPrecedenceList(KindBinary, KindVarbinary),
		KindVarbinary: NewExplicitPrecedenceList(KindVarbinary),
		KindDate:      NewExplicitPrecedenceList(KindDate),
		KindTime:      NewExplicitPrecedenceList(KindTime),
		KindTimestamp: NewExplicitPrecedenceList(KindTimestamp, KindDate, KindTime),
	}
	for _, k := range YearIntervalTypes {
		lists[k] = NewExplicitPrecedenceList(YearIntervalTypes...)
	}
	for _, k := range DayIntervalTypes {
		lists[k] = NewExplicitPrecedenceList(DayIntervalTypes...)
	}
	return lists
}()

// PrecedenceListForKind returns the explicit list of a kind, if it has one.
func PrecedenceListForKind(kind Kind) (*ExplicitPrecedenceList, bool) {
	list, ok := kindPrecedenceLists[kind]
	return list, ok
}

// PrecedenceList returns the list ranking this type against others.
func (t *Type) PrecedenceList() PrecedenceList {
	if t.variant == VariantArray {
		return &arrayPrecedenceList{array: t}
	}
	if t.variant != VariantNative {
		if list, ok := kindPrecedenceLists[t.kind]; ok {
			return list
		}
	}
	return &selfPrecedenceList{self: t}
}

// arrayPrecedenceList orders arrays by their component types.
type arrayPrecedenceList struct {
	array *Type
}

func (l *arrayPrecedenceList) ContainsType(t *Type) bool {
	return t.Kind() == l.array.Kind() &&
		t.ComponentType() != nil &&
		l.array.ComponentType().PrecedenceList().ContainsType(t.ComponentType())
}

func (l *arrayPrecedenceList) CompareTypePrecedence(t1, t2 *Type) int {
	if !l.ContainsType(t1) {
		panic(fmt.Sprintf("must contain type: %s", t1))
	}
	if !l.ContainsType(t2) {
		panic(fmt.Sprintf("must contain type: %s", t2))
	}
	return l.array.ComponentType().PrecedenceList().CompareTypePrecedence(t1.ComponentType(), t2.ComponentType())
}

// selfPrecedenceList contains only the type itself.
type selfPrecedenceList struct {
	self *Type
}

func (l *selfPrecedenceList) ContainsType(t *Type) bool {
	return l.self.Equal(t)
}

func (l *selfPrecedenceList) CompareTypePrecedence(t1, t2 *Type) int {
	if !l.ContainsType(t1) || !l.ContainsType(t2) {
		panic(fmt.Sprintf("precedence list of %s must contain both %s and %s", l.self, t1, t2))
	}
	return 0
}
