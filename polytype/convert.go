package polytype

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// StringToValue parses the text form of a value of the given kind.
// The empty string is the NULL value and yields nil.
//
// DATE is returned as the int32 number of days since the epoch, TIME as the int32
// milliseconds of the day and TIMESTAMP as int64 milliseconds since the epoch.
// Character and document kinds return the text itself.
// It panics for kinds without a text form.
func StringToValue(kind Kind, text string) (interface{}, error) {
	if text == "" {
		return nil, nil
	}
	switch kind {
	case KindBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't parse %s value", kind)
		}
		return b, nil

	case KindTinyInt, KindSmallInt, KindInteger, KindDate, KindTime:
		i, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't parse %s value", kind)
		}
		return int32(i), nil

	case KindBigInt, KindTimestamp:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't parse %s value", kind)
		}
		return i, nil

	case KindDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't parse %s value", kind)
		}
		return f, nil

	case KindReal, KindFloat:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't parse %s value", kind)
		}
		return float32(f), nil

	case KindDecimal:
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't parse %s value", kind)
		}
		return d, nil

	case KindChar, KindVarchar, KindJSON, KindDocument, KindAny:
		return text, nil
	}
	panic(fmt.Sprintf("conversion of text to %s not yet implemented", kind))
}
