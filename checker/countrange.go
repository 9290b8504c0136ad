package checker

import "fmt"

// OperandCountRange is the set of operand counts an operator accepts.
type OperandCountRange interface {
	IsValidCount(count int) bool
	Min() int
	// Max is -1 for an unbounded range.
	Max() int
}

type countRange struct {
	min, max int
}

func CountOf(n int) OperandCountRange {
	return countRange{min: n, max: n}
}

func CountBetween(min, max int) OperandCountRange {
	if min > max && max != -1 {
		panic(fmt.Sprintf("invalid operand count range %d..%d", min, max))
	}
	return countRange{min: min, max: max}
}

func CountFrom(min int) OperandCountRange {
	return countRange{min: min, max: -1}
}

func CountAny() OperandCountRange {
	return countRange{min: 0, max: -1}
}

func (r countRange) IsValidCount(count int) bool {
	return count >= r.min && (r.max == -1 || count <= r.max)
}

func (r countRange) Min() int {
	return r.min
}

func (r countRange) Max() int {
	return r.max
}

func (r countRange) String() string {
	if r.max == -1 {
		return fmt.Sprintf("[%d, ...]", r.min)
	}
	return fmt.Sprintf("[%d, %d]", r.min, r.max)
}

// compositeRange accepts the counts all (AND) or any (OR) of its ranges accept.
type compositeRange struct {
	composition Composition
	ranges      []OperandCountRange
	min, max    int
}

func (r compositeRange) IsValidCount(count int) bool {
	switch r.composition {
	case CompositionAnd:
		for _, rng := range r.ranges {
			if !rng.IsValidCount(count) {
				return false
			}
		}
		return true
	default:
		for _, rng := range r.ranges {
			if rng.IsValidCount(count) {
				return true
			}
		}
		return false
	}
}

func (r compositeRange) Min() int {
	return r.min
}

func (r compositeRange) Max() int {
	return r.max
}
