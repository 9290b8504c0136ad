package polytype

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dgraph-io/ristretto"
	"github.com/google/btree"
	"github.com/pkg/errors"
)

// interned holds the canonical descriptor of every digest. Entries are never removed.
var interned sync.Map

// Factory is the only way to create descriptors. It is safe for concurrent use.
type Factory struct {
	typeSystem TypeSystem
	results    *ristretto.Cache
}

func NewFactory(typeSystem TypeSystem) *Factory {
	if typeSystem == nil {
		typeSystem = DefaultTypeSystem
	}
	return &Factory{
		typeSystem: typeSystem,
	}
}

// NewFactoryWithResultCache creates a factory which memoizes LeastRestrictive results
// in a bounded cache holding roughly maxEntries results.
func NewFactoryWithResultCache(typeSystem TypeSystem, maxEntries int64) (*Factory, error) {
	f := NewFactory(typeSystem)
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "couldn't create result cache")
	}
	f.results = cache
	return f, nil
}

func (f *Factory) TypeSystem() TypeSystem {
	return f.typeSystem
}

// canonize returns the interned descriptor equal to t, publishing t if there is none.
// Arrays with an explicit cardinality or dimension are never interned.
func (f *Factory) canonize(t *Type) *Type {
	if t.variant == VariantArray && (t.cardinality != NotSpecified || t.dimension != NotSpecified) {
		return t
	}
	if t.variant == VariantObject {
		// t isn't published yet, so this is the last point at which it may change.
		if t.nullable {
			t.family = f.canonize(t.copyWithNullability(false))
		} else {
			t.family = t
		}
	}
	actual, _ := interned.LoadOrStore(t.digest, t)
	return actual.(*Type)
}

type internedItem struct {
	t *Type
}

func (i internedItem) Less(than btree.Item) bool {
	return i.t.digest < than.(internedItem).t.digest
}

// InternedTypes returns a snapshot of the intern table, ordered by digest.
func InternedTypes() []*Type {
	tree := btree.New(16)
	interned.Range(func(_, value interface{}) bool {
		tree.ReplaceOrInsert(internedItem{t: value.(*Type)})
		return true
	})
	out := make([]*Type, 0, tree.Len())
	tree.Ascend(func(item btree.Item) bool {
		out = append(out, item.(internedItem).t)
		return true
	})
	return out
}

func assertBasic(kind Kind) {
	if kind.IsSpecial() {
		switch kind {
		case KindArray:
			panic("use CreateArrayType() instead")
		case KindMultiset:
			panic("use CreateMultisetType() instead")
		case KindMap:
			panic("use CreateMapType() instead")
		case KindRow:
			panic("use CreateStructType() instead")
		default:
			panic("use CreateIntervalType() instead")
		}
	}
}

func newBasic(kind Kind, precision, scale int, precisionGiven, scaleGiven bool) *Type {
	if !kind.AllowsPrecScale(precisionGiven, scaleGiven) {
		panic(fmt.Sprintf("%s doesn't allow precision %t and scale %t", kind, precisionGiven, scaleGiven))
	}
	if precision < 0 && precision != NotSpecified {
		panic(fmt.Sprintf("invalid precision %d for %s", precision, kind))
	}
	t := &Type{
		variant:     VariantBasic,
		kind:        kind,
		precision:   precision,
		scale:       scale,
		cardinality: NotSpecified,
		dimension:   NotSpecified,
	}
	t.computeDigest()
	return t
}

// CreateType creates a type of a kind which isn't a collection, map, row or interval,
// using the kind's default precision and scale.
func (f *Factory) CreateType(kind Kind) *Type {
	if kind.AllowsPrecNoScale() {
		return f.CreateTypeWithPrecision(kind, f.typeSystem.DefaultPrecision(kind))
	}
	assertBasic(kind)
	return f.canonize(newBasic(kind, NotSpecified, NotSpecified, false, false))
}

// CreateTypeWithPrecision creates a type with the given precision, clamped to the kind's maximum.
func (f *Factory) CreateTypeWithPrecision(kind Kind, precision int) *Type {
	if max := f.typeSystem.MaxPrecision(kind); max >= 0 && precision > max {
		precision = max
	}
	if kind.AllowsScale() {
		return f.CreateTypeWithScale(kind, precision, kind.DefaultScale())
	}
	assertBasic(kind)
	t := newBasic(kind, precision, NotSpecified, precision != NotSpecified, false)
	return f.canonize(f.addCharsetAndCollation(t))
}

// CreateTypeWithScale creates a type with the given precision and scale.
func (f *Factory) CreateTypeWithScale(kind Kind, precision, scale int) *Type {
	assertBasic(kind)
	if max := f.typeSystem.MaxPrecision(kind); max >= 0 && precision > max {
		precision = max
	}
	t := newBasic(kind, precision, scale, true, true)
	return f.canonize(f.addCharsetAndCollation(t))
}

// addCharsetAndCollation fills in the default charset and the implicit collation of character types.
func (f *Factory) addCharsetAndCollation(t *Type) *Type {
	if !InCharFamily(t) {
		return t
	}
	charset := t.charset
	if charset == nil {
		charset = f.typeSystem.DefaultCharset()
	}
	collation := t.collation
	if collation == nil {
		collation = ImplicitCollation(charset)
	}
	return f.withCharsetAndCollation(t, charset, collation)
}

// CreateTypeWithCharsetAndCollation is only valid for character types.
// The collation must belong to the charset.
func (f *Factory) CreateTypeWithCharsetAndCollation(t *Type, charset *Charset, collation *Collation) *Type {
	return f.canonize(f.withCharsetAndCollation(t, charset, collation))
}

func (f *Factory) withCharsetAndCollation(t *Type, charset *Charset, collation *Collation) *Type {
	if !InCharFamily(t) {
		panic(fmt.Sprintf("%s is not a character type", t))
	}
	if charset == nil || collation == nil {
		panic("charset and collation are required")
	}
	if t.variant != VariantBasic && t.variant != VariantNative {
		panic(fmt.Sprintf("need to implement charset for %s", t))
	}
	if !collation.Charset().Equal(charset) {
		panic(fmt.Sprintf("collation %s doesn't belong to charset %s", collation.Name(), charset.Name()))
	}
	out := *t
	out.charset = charset
	out.collation = collation
	out.computeDigest()
	return &out
}

// CreateTypeWithNullability returns t if its nullability already matches,
// otherwise an otherwise identical type with the given nullability.
func (f *Factory) CreateTypeWithNullability(t *Type, nullable bool) *Type {
	if t.nullable == nullable || t.kind == KindNull && t.variant != VariantNative {
		return t
	}
	return f.canonize(t.copyWithNullability(nullable))
}

// CopyType returns the canonical instance of t.
func (f *Factory) CopyType(t *Type) *Type {
	return f.canonize(t.copyWithNullability(t.nullable))
}

func (f *Factory) CreateArrayType(element *Type, cardinality int) *Type {
	return f.CreateArrayTypeWithDimension(element, cardinality, NotSpecified)
}

func (f *Factory) CreateArrayTypeWithDimension(element *Type, cardinality, dimension int) *Type {
	t := &Type{
		variant:     VariantArray,
		kind:        KindArray,
		precision:   NotSpecified,
		scale:       NotSpecified,
		element:     element,
		cardinality: cardinality,
		dimension:   dimension,
	}
	t.computeDigest()
	return f.canonize(t)
}

func (f *Factory) CreateMultisetType(element *Type, cardinality int) *Type {
	if cardinality != NotSpecified {
		panic("multisets don't support a maximum cardinality")
	}
	t := &Type{
		variant:     VariantMultiset,
		kind:        KindMultiset,
		precision:   NotSpecified,
		scale:       NotSpecified,
		element:     element,
		cardinality: NotSpecified,
		dimension:   NotSpecified,
	}
	t.computeDigest()
	return f.canonize(t)
}

func (f *Factory) CreateMapType(key, value *Type) *Type {
	t := &Type{
		variant:     VariantMap,
		kind:        KindMap,
		precision:   NotSpecified,
		scale:       NotSpecified,
		cardinality: NotSpecified,
		dimension:   NotSpecified,
		key:         key,
		value:       value,
	}
	t.computeDigest()
	return f.canonize(t)
}

func (f *Factory) CreateIntervalType(qualifier IntervalQualifier) *Type {
	t := &Type{
		variant:     VariantInterval,
		kind:        qualifier.Kind(),
		precision:   NotSpecified,
		scale:       NotSpecified,
		cardinality: NotSpecified,
		dimension:   NotSpecified,
		qualifier:   qualifier,
	}
	t.computeDigest()
	return f.canonize(t)
}

// CreateUnknownType creates the type of expressions whose type hasn't been derived yet.
func (f *Factory) CreateUnknownType() *Type {
	t := &Type{
		variant:     VariantUnknown,
		kind:        KindNull,
		nullable:    true,
		precision:   NotSpecified,
		scale:       NotSpecified,
		cardinality: NotSpecified,
		dimension:   NotSpecified,
	}
	t.computeDigest()
	return f.canonize(t)
}

func makeFields(types []*Type, names []string) []Field {
	if len(types) != len(names) {
		panic(fmt.Sprintf("got %d field types for %d field names", len(types), len(names)))
	}
	fields := make([]Field, len(types))
	for i := range types {
		fields[i] = Field{
			Name:  names[i],
			Index: i,
			Type:  types[i],
		}
	}
	return fields
}

// CreateStructType creates a ROW type.
func (f *Factory) CreateStructType(kind StructKind, types []*Type, names []string) *Type {
	return f.createRecord(KindRow, kind, makeFields(types, names), false)
}

// CreatePathType creates the structured type of a graph path.
func (f *Factory) CreatePathType(types []*Type, names []string) *Type {
	return f.createRecord(KindPath, StructKindFullyQualified, makeFields(types, names), false)
}

func (f *Factory) createRecord(kind Kind, structKind StructKind, fields []Field, nullable bool) *Type {
	t := &Type{
		variant:     VariantRecord,
		kind:        kind,
		nullable:    nullable,
		precision:   NotSpecified,
		scale:       NotSpecified,
		cardinality: NotSpecified,
		dimension:   NotSpecified,
		structKind:  structKind,
		fields:      fields,
	}
	t.computeDigest()
	return f.canonize(t)
}

// CreateObjectType creates a user-defined STRUCTURED or DISTINCT type.
// A DISTINCT type has a single field holding its source type.
func (f *Factory) CreateObjectType(kind Kind, name string, nullable bool, types []*Type, names []string, comparability Comparability) *Type {
	if kind != KindStructured && kind != KindDistinct {
		panic(fmt.Sprintf("object types are STRUCTURED or DISTINCT, got %s", kind))
	}
	t := &Type{
		variant:       VariantObject,
		kind:          kind,
		nullable:      nullable,
		precision:     NotSpecified,
		scale:         NotSpecified,
		cardinality:   NotSpecified,
		dimension:     NotSpecified,
		structKind:    StructKindFullyQualified,
		fields:        makeFields(types, names),
		name:          name,
		comparability: comparability,
	}
	t.computeDigest()
	return f.canonize(t)
}

// StructBuilder collects the fields of a ROW type.
type StructBuilder struct {
	factory *Factory
	kind    StructKind
	names   []string
	types   []*Type
}

func (f *Factory) Builder() *StructBuilder {
	return &StructBuilder{
		factory: f,
		kind:    StructKindFullyQualified,
	}
}

func (b *StructBuilder) Kind(kind StructKind) *StructBuilder {
	b.kind = kind
	return b
}

func (b *StructBuilder) Add(name string, t *Type) *StructBuilder {
	b.names = append(b.names, name)
	b.types = append(b.types, t)
	return b
}

// AddKind adds a field of a basic kind.
func (b *StructBuilder) AddKind(name string, kind Kind) *StructBuilder {
	return b.Add(name, b.factory.CreateType(kind))
}

// Nullable changes the nullability of the most recently added field.
func (b *StructBuilder) Nullable(nullable bool) *StructBuilder {
	last := len(b.types) - 1
	b.types[last] = b.factory.CreateTypeWithNullability(b.types[last], nullable)
	return b
}

func (b *StructBuilder) FieldCount() int {
	return len(b.names)
}

// UniquifyNames renames duplicate and empty field names to EXPR$n.
func (b *StructBuilder) UniquifyNames() *StructBuilder {
	used := map[string]bool{}
	for i, name := range b.names {
		if name == "" || used[strings.ToUpper(name)] {
			for n := i; ; n++ {
				candidate := fmt.Sprintf("EXPR$%d", n)
				if !used[candidate] {
					name = candidate
					break
				}
			}
		}
		used[strings.ToUpper(name)] = true
		b.names[i] = name
	}
	return b
}

func (b *StructBuilder) Build() *Type {
	names := make([]string, len(b.names))
	copy(names, b.names)
	types := make([]*Type, len(b.types))
	copy(types, b.types)
	return b.factory.CreateStructType(b.kind, types, names)
}

// CreateDecimalProduct returns the type of multiplying two exact numerics
// at least one of which is DECIMAL, or nil otherwise.
func (f *Factory) CreateDecimalProduct(t1, t2 *Type) *Type {
	if !IsExactNumeric(t1) || !IsExactNumeric(t2) || !IsDecimal(t1) && !IsDecimal(t2) {
		return nil
	}
	scale := min(t1.Scale()+t2.Scale(), f.typeSystem.MaxNumericScale())
	precision := min(t1.Precision()+t2.Precision(), f.typeSystem.MaxNumericPrecision())
	return f.CreateTypeWithScale(KindDecimal, precision, scale)
}

// UseDoubleMultiplication tells whether a decimal product should be computed in floating point.
func (f *Factory) UseDoubleMultiplication(t1, t2 *Type) bool {
	return false
}

// CreateDecimalQuotient returns the type of dividing two exact numerics
// at least one of which is DECIMAL, or nil otherwise.
func (f *Factory) CreateDecimalQuotient(t1, t2 *Type) *Type {
	if !IsExactNumeric(t1) || !IsExactNumeric(t2) || !IsDecimal(t1) && !IsDecimal(t2) {
		return nil
	}
	p1, p2 := t1.Precision(), t2.Precision()
	s1, s2 := t1.Scale(), t2.Scale()
	maxPrecision := f.typeSystem.MaxNumericPrecision()

	whole := min(p1-s1+s2, maxPrecision)
	scale := max(6, s1+p2+1)
	scale = min(scale, maxPrecision-whole)
	scale = min(scale, f.typeSystem.MaxNumericScale())
	return f.CreateTypeWithScale(KindDecimal, whole+scale, scale)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
