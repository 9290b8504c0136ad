package checker

import (
	"math"

	"github.com/shopspring/decimal"
)

// LiteralChecker passes if the operand is a literal.
type LiteralChecker struct {
	allowNull bool
}

func NewLiteralChecker(allowNull bool) *LiteralChecker {
	return &LiteralChecker{allowNull: allowNull}
}

func (c *LiteralChecker) CheckSingleOperandType(b CallBinding, operand, formal int, throwOnFailure bool) (bool, error) {
	if b.IsOperandNull(operand, true) {
		if c.allowNull {
			return true, nil
		}
		return failWith(b, throwOnFailure, operand, "argument to function '%s' must not be NULL", b.OperatorName())
	}
	if !b.IsOperandLiteral(operand, false) {
		return failWith(b, throwOnFailure, operand, "argument to function '%s' must be a literal", b.OperatorName())
	}
	return true, nil
}

func (c *LiteralChecker) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	return c.CheckSingleOperandType(b, 0, 0, throwOnFailure)
}

func (c *LiteralChecker) OperandCountRange() OperandCountRange {
	return CountOf(1)
}

func (c *LiteralChecker) AllowedSignatures(opName string) string {
	return "<LITERAL>"
}

func (c *LiteralChecker) Consistency() Consistency {
	return ConsistencyNone
}

func (c *LiteralChecker) IsOptional(i int) bool {
	return false
}

// positiveIntegerLiteralChecker passes for non-NULL integer literals between zero and the INTEGER maximum.
type positiveIntegerLiteralChecker struct {
	*FamilyChecker
}

var maxInteger = decimal.New(math.MaxInt32, 0)

func (c positiveIntegerLiteralChecker) CheckSingleOperandType(b CallBinding, operand, formal int, throwOnFailure bool) (bool, error) {
	if ok, err := Literal.CheckSingleOperandType(b, operand, formal, throwOnFailure); !ok {
		return false, err
	}
	if ok, err := c.FamilyChecker.CheckSingleOperandType(b, operand, formal, throwOnFailure); !ok {
		return false, err
	}
	value, ok := literalDecimal(b.OperandLiteralValue(operand))
	if !ok || value.Sign() < 0 || !value.Equal(value.Truncate(0)) {
		return failWith(b, throwOnFailure, operand, "argument to function '%s' must be a positive integer literal", b.OperatorName())
	}
	if value.GreaterThan(maxInteger) {
		return failWith(b, throwOnFailure, operand, "numeric literal '%s' out of range", value)
	}
	return true, nil
}

func (c positiveIntegerLiteralChecker) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	if b.OperandCount() != 1 {
		return false, nil
	}
	return c.CheckSingleOperandType(b, 0, 0, throwOnFailure)
}

// literalDecimal converts a numeric literal value to a decimal.
func literalDecimal(value interface{}) (decimal.Decimal, bool) {
	switch value := value.(type) {
	case decimal.Decimal:
		return value, true
	case int:
		return decimal.New(int64(value), 0), true
	case int8:
		return decimal.New(int64(value), 0), true
	case int16:
		return decimal.New(int64(value), 0), true
	case int32:
		return decimal.New(int64(value), 0), true
	case int64:
		return decimal.New(value, 0), true
	case float32:
		return decimal.NewFromFloat32(value), true
	case float64:
		return decimal.NewFromFloat(value), true
	case string:
		d, err := decimal.NewFromString(value)
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

var _ SingleChecker = positiveIntegerLiteralChecker{}
