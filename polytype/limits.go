package polytype

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Limit selects which boundary value of a kind GetLimit returns.
type Limit int

const (
	// LimitZero is the value closest to zero.
	LimitZero Limit = iota
	// LimitUnderflow is the smallest value of the given sign which isn't zero.
	LimitUnderflow
	// LimitOverflow is the largest value of the given sign.
	LimitOverflow
)

func (l Limit) String() string {
	switch l {
	case LimitZero:
		return "ZERO"
	case LimitUnderflow:
		return "UNDERFLOW"
	case LimitOverflow:
		return "OVERFLOW"
	}
	panic("impossible, limit switch bug")
}

var (
	epochDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxDate   = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	minDate   = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// GetLimit returns a boundary value of the kind. If sign is set it is the positive
// boundary, otherwise the negative. If beyond is set, it returns the first value
// past the boundary, or nil if the kind can't represent it.
//
// Numerics are returned as decimal.Decimal, character kinds as string, binary kinds
// as []byte, datetime kinds as time.Time and BOOLEAN as bool.
// It panics for kinds without limits.
func (k Kind) GetLimit(sign bool, limit Limit, beyond bool, precision, scale int) interface{} {
	switch k {
	case KindBoolean:
		switch limit {
		case LimitZero:
			return false
		case LimitUnderflow:
			return nil
		case LimitOverflow:
			if beyond || !sign {
				return nil
			}
			return true
		}

	case KindTinyInt:
		return numericLimit(2, 8, sign, limit, beyond)
	case KindSmallInt:
		return numericLimit(2, 16, sign, limit, beyond)
	case KindInteger:
		return numericLimit(2, 32, sign, limit, beyond)
	case KindBigInt:
		return numericLimit(2, 64, sign, limit, beyond)

	case KindDecimal:
		value, ok := numericLimit(10, precision, sign, limit, beyond).(decimal.Decimal)
		if !ok {
			return nil
		}
		// DECIMAL values have to fit into a BIGINT.
		if limit == LimitOverflow {
			bigint := numericLimit(2, 64, sign, limit, beyond).(decimal.Decimal)
			if value.Abs().GreaterThan(bigint.Abs()) {
				value = bigint
			}
		}
		if scale != 0 && scale != NotSpecified {
			value = value.Mul(decimal.New(1, int32(-scale)))
		}
		return value

	case KindChar, KindVarchar:
		if !sign {
			return nil
		}
		switch limit {
		case LimitZero:
			return ""
		case LimitUnderflow:
			if beyond {
				// There is no string before the empty one.
				return nil
			}
			return "a"
		case LimitOverflow:
			n := precision
			if n < 0 {
				n = 1
			}
			if beyond {
				n++
			}
			return strings.Repeat("Z", n)
		}

	case KindBinary, KindVarbinary:
		if !sign {
			return nil
		}
		switch limit {
		case LimitZero:
			return []byte{}
		case LimitUnderflow:
			if beyond {
				return nil
			}
			return []byte{0x00}
		case LimitOverflow:
			n := precision
			if n < 0 {
				n = 1
			}
			if beyond {
				n++
			}
			out := make([]byte, n)
			for i := range out {
				out[i] = 0xff
			}
			return out
		}

	case KindDate:
		switch limit {
		case LimitZero:
			return epochDate
		case LimitUnderflow:
			return nil
		case LimitOverflow:
			if beyond {
				return nil
			}
			if sign {
				return maxDate
			}
			return minDate
		}

	case KindTime:
		if !sign || beyond {
			return nil
		}
		switch limit {
		case LimitZero:
			return epochDate
		case LimitUnderflow:
			return nil
		case LimitOverflow:
			out := epochDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			if precision >= 3 {
				out = out.Add(999 * time.Millisecond)
			}
			return out
		}

	case KindTimestamp:
		switch limit {
		case LimitZero:
			return epochDate
		case LimitUnderflow:
			return nil
		case LimitOverflow:
			if beyond {
				return nil
			}
			if !sign {
				return minDate
			}
			out := maxDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			if precision >= 3 {
				out = out.Add(999 * time.Millisecond)
			}
			return out
		}

	default:
		panic(fmt.Sprintf("%s has no limits", k))
	}
	panic("impossible, limit switch bug")
}

// numericLimit returns the limit of a signed integer of the given number of bits
// (radix 2) or decimal digits (radix 10).
func numericLimit(radix, exponent int, sign bool, limit Limit, beyond bool) interface{} {
	switch limit {
	case LimitOverflow:
		// -2^(bits-1) to 2^(bits-1)-1, or -(10^digits-1) to 10^digits-1
		var bound decimal.Decimal
		if radix == 2 {
			bound = decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), uint(exponent-1)), 0)
		} else {
			bound = decimal.New(1, int32(exponent))
		}
		if sign || radix != 2 {
			bound = bound.Sub(decimal.New(1, 0))
		}
		if beyond {
			bound = bound.Add(decimal.New(1, 0))
		}
		if !sign {
			bound = bound.Neg()
		}
		return bound
	case LimitUnderflow:
		if beyond {
			return nil
		}
		if sign {
			return decimal.New(1, 0)
		}
		return decimal.New(-1, 0)
	case LimitZero:
		return decimal.Zero
	}
	panic("impossible, limit switch bug")
}

// GetMinValue returns the smallest value of the type, or nil.
func GetMinValue(t *Type) interface{} {
	return t.Kind().GetLimit(false, LimitOverflow, false, t.Precision(), t.Scale())
}

// GetMaxValue returns the largest value of the type, or nil.
func GetMaxValue(t *Type) interface{} {
	return t.Kind().GetLimit(true, LimitOverflow, false, t.Precision(), t.Scale())
}
