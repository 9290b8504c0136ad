package checker

import (
	"github.com/polypheny/polytype/polytype"
)

// recordChecker checks the type of a single record operand.
type recordChecker struct {
	valid      func(t *polytype.Type) bool
	signatures []string
	aliased    bool
}

func (c *recordChecker) CheckSingleOperandType(b CallBinding, operand, formal int, throwOnFailure bool) (bool, error) {
	if !c.valid(b.OperandType(operand)) {
		return fail(b, throwOnFailure)
	}
	return true, nil
}

func (c *recordChecker) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	if b.OperandCount() == 0 {
		return false, nil
	}
	return c.CheckSingleOperandType(b, 0, 0, throwOnFailure)
}

func (c *recordChecker) OperandCountRange() OperandCountRange {
	return CountOf(1)
}

func (c *recordChecker) AllowedSignatures(opName string) string {
	if c.aliased {
		return aliasedSignature(opName, c.signatures)
	}
	return c.signatures[0]
}

func (c *recordChecker) Consistency() Consistency {
	return ConsistencyNone
}

func (c *recordChecker) IsOptional(i int) bool {
	return false
}

// isPeriod accepts (DATETIME, DATETIME) pairs of the same type and (DATETIME, INTERVAL) pairs.
func isPeriod(t *polytype.Type) bool {
	if !t.IsStruct() || t.FieldCount() != 2 {
		return false
	}
	t0, t1 := t.Fields()[0].Type, t.Fields()[1].Type
	if !polytype.IsDatetime(t0) {
		return false
	}
	if polytype.IsDatetime(t1) {
		// (DATE, TIMESTAMP) is not a period.
		return polytype.SameNamedType(t0, t1)
	}
	return polytype.IsInterval(t1)
}

// isRecordCollection accepts records with a single multiset or array field.
func isRecordCollection(t *polytype.Type) bool {
	if !t.IsStruct() || t.FieldCount() != 1 {
		return false
	}
	kind := t.Fields()[0].Type.Kind()
	return kind == polytype.KindMultiset || kind == polytype.KindArray
}

func isSingleFieldRecord(t *polytype.Type) bool {
	return t.IsStruct() && t.FieldCount() == 1
}

// setOpChecker checks the inputs of UNION, INTERSECT and EXCEPT: records with
// the same number of fields, each column having a least restrictive type.
type setOpChecker struct{}

func (setOpChecker) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	colCount := -1
	for i := 0; i < b.OperandCount(); i++ {
		t := b.OperandType(i)
		if !t.IsStruct() {
			return failWith(b, throwOnFailure, i, "set operator input must be a record")
		}
		if i == 0 {
			colCount = t.FieldCount()
			continue
		}
		if t.FieldCount() != colCount {
			return failWith(b, throwOnFailure, i, "column count mismatch in %s", b.OperatorName())
		}
	}
	for col := 0; col < colCount; col++ {
		types := make([]*polytype.Type, b.OperandCount())
		for i := range types {
			types[i] = b.OperandType(i).Fields()[col].Type
		}
		if b.Factory().LeastRestrictive(types) == nil {
			return failWith(b, throwOnFailure, -1, "type mismatch in column %d of %s", col+1, b.OperatorName())
		}
	}
	return true, nil
}

func (setOpChecker) OperandCountRange() OperandCountRange {
	return CountFrom(2)
}

func (setOpChecker) AllowedSignatures(opName string) string {
	return "{0} " + opName + " {1}"
}

func (setOpChecker) Consistency() Consistency {
	return ConsistencyNone
}

func (setOpChecker) IsOptional(i int) bool {
	return false
}

// multisetChecker passes for two multisets whose element types have a least restrictive type.
type multisetChecker struct{}

func (multisetChecker) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	if b.OperandCount() != 2 {
		return false, nil
	}
	for i := 0; i < 2; i++ {
		if ok, err := Multiset.CheckSingleOperandType(b, i, 0, throwOnFailure); !ok {
			return false, err
		}
	}
	components := []*polytype.Type{
		b.OperandType(0).ComponentType(),
		b.OperandType(1).ComponentType(),
	}
	if b.Factory().LeastRestrictive(components) == nil {
		return failWith(b, throwOnFailure, -1, "type mismatch: can't compare %s and %s", components[0], components[1])
	}
	return true, nil
}

func (multisetChecker) OperandCountRange() OperandCountRange {
	return CountOf(2)
}

func (multisetChecker) AllowedSignatures(opName string) string {
	return "<MULTISET> " + opName + " <MULTISET>"
}

func (multisetChecker) Consistency() Consistency {
	return ConsistencyNone
}

func (multisetChecker) IsOptional(i int) bool {
	return false
}

// ExplicitChecker passes if the operands match the fields of a record type.
type ExplicitChecker struct {
	typ *polytype.Type
}

// Explicit checks operands against the fields of a record type, each by its family.
// Record fields must match the operand exactly.
func Explicit(t *polytype.Type) *ExplicitChecker {
	return &ExplicitChecker{typ: t}
}

func (c *ExplicitChecker) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	families := make([]polytype.FamilyTag, 0, c.typ.FieldCount())
	for i, field := range c.typ.Fields() {
		if field.Type.Kind() == polytype.KindRow {
			if i < b.OperandCount() && field.Type.Equal(b.OperandType(i)) {
				families = append(families, polytype.FamilyAny)
			}
			continue
		}
		family, ok := field.Type.Kind().Family()
		if !ok {
			family = polytype.FamilyAny
		}
		families = append(families, family)
	}
	return Family(families...).CheckOperandTypes(b, throwOnFailure)
}

func (c *ExplicitChecker) OperandCountRange() OperandCountRange {
	return CountOf(c.typ.FieldCount())
}

func (c *ExplicitChecker) AllowedSignatures(opName string) string {
	return "<TYPE> " + opName + " <TYPE>"
}

func (c *ExplicitChecker) Consistency() Consistency {
	return ConsistencyNone
}

func (c *ExplicitChecker) IsOptional(i int) bool {
	return false
}
