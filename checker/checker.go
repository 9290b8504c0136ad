// Package checker validates the operand types of operator calls.
package checker

// Checker decides whether the operands of a call are acceptable.
//
// CheckOperandTypes returns false and a nil error when the operands don't match
// and throwOnFailure is false. When throwOnFailure is true a mismatch is reported
// as a *ValidationError instead.
type Checker interface {
	CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error)
	OperandCountRange() OperandCountRange
	// AllowedSignatures describes the accepted operands, one signature per line.
	AllowedSignatures(opName string) string
	Consistency() Consistency
	IsOptional(i int) bool
}

// SingleChecker is a Checker which can also check a single operand.
// The formal index selects which of the checker's declared operands
// the operand is checked against.
type SingleChecker interface {
	Checker
	CheckSingleOperandType(b CallBinding, operand, formal int, throwOnFailure bool) (bool, error)
}

// Consistency describes how the operands of a call are made consistent
// with each other before being passed on.
type Consistency int

const (
	ConsistencyNone Consistency = iota
	// ConsistencyCompare converts operands to the type of the most restrictive one.
	ConsistencyCompare
	// ConsistencyLeastRestrictive converts operands to their least restrictive type.
	ConsistencyLeastRestrictive
)

func (c Consistency) String() string {
	switch c {
	case ConsistencyNone:
		return "NONE"
	case ConsistencyCompare:
		return "COMPARE"
	case ConsistencyLeastRestrictive:
		return "LEAST_RESTRICTIVE"
	}
	panic("impossible, consistency switch bug")
}

func fail(b CallBinding, throwOnFailure bool) (bool, error) {
	if throwOnFailure {
		return false, b.NewValidationSignatureError()
	}
	return false, nil
}

func failWith(b CallBinding, throwOnFailure bool, operand int, format string, args ...interface{}) (bool, error) {
	if throwOnFailure {
		return false, b.NewError(operand, format, args...)
	}
	return false, nil
}

// variadicChecker accepts any operand types, as long as their count is in range.
type variadicChecker struct {
	rng OperandCountRange
}

// Variadic returns a checker with no restriction on the operand types.
func Variadic(rng OperandCountRange) Checker {
	return &variadicChecker{rng: rng}
}

func (c *variadicChecker) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	return c.rng.IsValidCount(b.OperandCount()), nil
}

func (c *variadicChecker) OperandCountRange() OperandCountRange {
	return c.rng
}

func (c *variadicChecker) AllowedSignatures(opName string) string {
	return opName + "(...)"
}

func (c *variadicChecker) Consistency() Consistency {
	return ConsistencyNone
}

func (c *variadicChecker) IsOptional(i int) bool {
	return false
}
