package checker

import (
	"github.com/polypheny/polytype/polytype"
)

// FamilyChecker passes if each operand is a member of the corresponding family.
type FamilyChecker struct {
	families []polytype.FamilyTag
	optional func(i int) bool
}

// Family creates a checker expecting one operand per family.
func Family(families ...polytype.FamilyTag) *FamilyChecker {
	return FamilyWithOptional(families, nil)
}

// FamilyWithOptional is like Family, but operands for which optional returns
// true may be omitted. Only trailing operands can be left out.
func FamilyWithOptional(families []polytype.FamilyTag, optional func(i int) bool) *FamilyChecker {
	if optional == nil {
		optional = func(int) bool { return false }
	}
	return &FamilyChecker{
		families: families,
		optional: optional,
	}
}

func (c *FamilyChecker) Families() []polytype.FamilyTag {
	return c.families
}

func (c *FamilyChecker) CheckSingleOperandType(b CallBinding, operand, formal int, throwOnFailure bool) (bool, error) {
	family := c.families[formal]
	if family == polytype.FamilyAny {
		return true, nil
	}
	if family != polytype.FamilyNull && b.IsOperandNull(operand, false) {
		return failWith(b, throwOnFailure, operand, "illegal use of NULL")
	}
	kind := b.OperandType(operand).Kind()
	if kindFamily, ok := kind.Family(); ok && kindFamily == polytype.FamilyAny {
		return true, nil
	}
	if !polytype.ContainsKind(family.TypeNames(), kind) {
		return fail(b, throwOnFailure)
	}
	return true, nil
}

// CheckOperandTypes returns false without an error if the operand count
// differs from the number of families, so that the checker can be one
// alternative of a composite.
func (c *FamilyChecker) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	if len(c.families) != b.OperandCount() {
		return false, nil
	}
	for i := 0; i < b.OperandCount(); i++ {
		if ok, err := c.CheckSingleOperandType(b, i, i, throwOnFailure); !ok {
			return false, err
		}
	}
	return true, nil
}

func (c *FamilyChecker) OperandCountRange() OperandCountRange {
	max := len(c.families)
	min := max
	for min > 0 && c.optional(min-1) {
		min--
	}
	return CountBetween(min, max)
}

func (c *FamilyChecker) AllowedSignatures(opName string) string {
	names := make([]string, len(c.families))
	for i := range c.families {
		names[i] = c.families[i].String()
	}
	return aliasedSignature(opName, names)
}

func (c *FamilyChecker) Consistency() Consistency {
	return ConsistencyNone
}

func (c *FamilyChecker) IsOptional(i int) bool {
	return c.optional(i)
}
