package polytype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func typeOfKind(f *Factory, kind Kind) *Type {
	if start, end, ok := kind.IntervalUnits(); ok {
		return intervalType(f, start, end)
	}
	return f.CreateType(kind)
}

func TestPrecedenceAntisymmetry(t *testing.T) {
	f := NewFactory(nil)
	for kind, list := range kindPrecedenceLists {
		kinds := list.Kinds()
		for _, k1 := range kinds {
			for _, k2 := range kinds {
				if k1 == k2 {
					continue
				}
				t1, t2 := typeOfKind(f, k1), typeOfKind(f, k2)
				assert.Equal(t, list.CompareTypePrecedence(t1, t2), -list.CompareTypePrecedence(t2, t1), "%s: %s vs %s", kind, k1, k2)
			}
		}
	}
}

func TestPrecedenceNumeric(t *testing.T) {
	f := NewFactory(nil)
	integer := f.CreateType(KindInteger)
	list := integer.PrecedenceList()

	assert.True(t, list.ContainsType(f.CreateType(KindBigInt)))
	assert.True(t, list.ContainsType(f.CreateType(KindDouble)))
	assert.False(t, list.ContainsType(f.CreateType(KindSmallInt)))
	assert.False(t, list.ContainsType(f.CreateType(KindVarchar)))

	assert.Greater(t, list.CompareTypePrecedence(integer, f.CreateType(KindBigInt)), 0)
	assert.Less(t, list.CompareTypePrecedence(f.CreateType(KindDouble), integer), 0)
	assert.Equal(t, 0, list.CompareTypePrecedence(integer, integer))

	assert.Panics(t, func() {
		list.CompareTypePrecedence(integer, f.CreateType(KindSmallInt))
	})
}

func TestPrecedenceEquivalenceClass(t *testing.T) {
	f := NewFactory(nil)
	list := NewExplicitPrecedenceList(KindVarchar, KindNone, KindInteger, KindBigInt, KindNone, KindDouble)

	assert.Equal(t, []Kind{KindVarchar, KindInteger, KindBigInt, KindDouble}, list.Kinds())
	assert.Equal(t, 0, list.CompareTypePrecedence(f.CreateType(KindInteger), f.CreateType(KindBigInt)))
	assert.Greater(t, list.CompareTypePrecedence(f.CreateType(KindVarchar), f.CreateType(KindBigInt)), 0)
	assert.Greater(t, list.CompareTypePrecedence(f.CreateType(KindBigInt), f.CreateType(KindDouble)), 0)
}

func TestPrecedenceArray(t *testing.T) {
	f := NewFactory(nil)
	integers := f.CreateArrayType(f.CreateType(KindInteger), NotSpecified)
	bigints := f.CreateArrayType(f.CreateType(KindBigInt), NotSpecified)
	list := integers.PrecedenceList()

	assert.True(t, list.ContainsType(bigints))
	assert.False(t, list.ContainsType(f.CreateType(KindBigInt)))
	assert.Greater(t, list.CompareTypePrecedence(integers, bigints), 0)
	assert.Equal(t, -list.CompareTypePrecedence(integers, bigints), list.CompareTypePrecedence(bigints, integers))
}

func TestPrecedenceSelf(t *testing.T) {
	f := NewFactory(nil)
	m := f.CreateMapType(f.CreateType(KindVarchar), f.CreateType(KindInteger))
	list := m.PrecedenceList()

	assert.True(t, list.ContainsType(m))
	assert.False(t, list.ContainsType(f.CreateType(KindInteger)))
	assert.Equal(t, 0, list.CompareTypePrecedence(m, m))
	assert.Panics(t, func() {
		list.CompareTypePrecedence(m, f.CreateType(KindInteger))
	})
}

func TestPrecedenceListForKind(t *testing.T) {
	list, ok := PrecedenceListForKind(KindTimestamp)
	assert.True(t, ok)
	assert.Equal(t, []Kind{KindTimestamp, KindDate, KindTime}, list.Kinds())

	list, ok = PrecedenceListForKind(KindIntervalHour)
	assert.True(t, ok)
	assert.Equal(t, DayIntervalTypes, list.Kinds())

	_, ok = PrecedenceListForKind(KindMap)
	assert.False(t, ok)
}
