package checker

import (
	"github.com/polypheny/polytype/polytype"
)

// SameChecker passes if all operands, or the first n, are comparable with each other.
type SameChecker struct {
	// n is -1 for any number of operands.
	n int
	// exceptLast leaves the last operand out of the comparison.
	exceptLast   bool
	lastTypeName string
}

// SameOperandTypes checks n operands, or all of them if n is -1.
func SameOperandTypes(n int) *SameChecker {
	return &SameChecker{n: n}
}

// SameOperandTypesExceptLast checks all but the last of n operands.
// The last operand is described as lastTypeName in signatures.
func SameOperandTypesExceptLast(n int, lastTypeName string) *SameChecker {
	return &SameChecker{n: n, exceptLast: true, lastTypeName: lastTypeName}
}

func (c *SameChecker) operands(count int) []int {
	n := c.n
	if n == -1 {
		n = count
	}
	if c.exceptLast {
		n--
	}
	if n > count {
		n = count
	}
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, i)
	}
	return out
}

func (c *SameChecker) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	operands := c.operands(b.OperandCount())
	types := make([]*polytype.Type, len(operands))
	for _, i := range operands {
		if b.IsOperandNull(i, false) {
			return failWith(b, throwOnFailure, i, "illegal use of NULL")
		}
		types[i] = b.OperandType(i)
	}
	for j := 1; j < len(operands); j++ {
		if !polytype.IsComparable(types[operands[j]], types[operands[j-1]]) {
			return failWith(b, throwOnFailure, operands[j], "parameters must be of the same type")
		}
	}
	return true, nil
}

// CheckSingleOperandType panics, the check only makes sense across operands.
func (c *SameChecker) CheckSingleOperandType(b CallBinding, operand, formal int, throwOnFailure bool) (bool, error) {
	panic("same operand types can't be checked on a single operand")
}

func (c *SameChecker) OperandCountRange() OperandCountRange {
	if c.n == -1 {
		return CountAny()
	}
	return CountOf(c.n)
}

func (c *SameChecker) typeName() string {
	return "EQUIVALENT_TYPE"
}

func (c *SameChecker) AllowedSignatures(opName string) string {
	return c.signatures(opName, c.typeName())
}

func (c *SameChecker) signatures(opName, typeName string) string {
	if c.n == -1 {
		return aliasedSignature(opName, []string{typeName, typeName, "..."})
	}
	names := make([]string, c.n)
	for i := range names {
		names[i] = typeName
	}
	if c.exceptLast && c.n > 0 {
		names[c.n-1] = c.lastTypeName
	}
	return aliasedSignature(opName, names)
}

func (c *SameChecker) Consistency() Consistency {
	return ConsistencyNone
}

func (c *SameChecker) IsOptional(i int) bool {
	return false
}

// ComparableChecker passes if the operands are comparable with each other and
// each supports at least the required comparability.
type ComparableChecker struct {
	SameChecker
	required    polytype.Comparability
	consistency Consistency
}

func NewComparableChecker(n int, required polytype.Comparability, consistency Consistency) *ComparableChecker {
	return &ComparableChecker{
		SameChecker: SameChecker{n: n},
		required:    required,
		consistency: consistency,
	}
}

func (c *ComparableChecker) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	ok := true
	for i := 0; i < c.n && i < b.OperandCount(); i++ {
		// Lower values are more comparable.
		if b.OperandType(i).Comparability() > c.required {
			ok = false
			break
		}
	}
	if ok {
		ok, _ = c.SameChecker.CheckOperandTypes(b, false)
	}
	if !ok {
		return fail(b, throwOnFailure)
	}
	return true, nil
}

func (c *ComparableChecker) AllowedSignatures(opName string) string {
	return c.signatures(opName, "COMPARABLE_TYPE")
}

func (c *ComparableChecker) Consistency() Consistency {
	return c.consistency
}
