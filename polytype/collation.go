package polytype

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Coercibility ranks how firmly a collation is attached to a value.
type Coercibility int

const (
	// CoercibilityExplicit is a collation given by a COLLATE clause.
	CoercibilityExplicit Coercibility = iota
	// CoercibilityImplicit is a column's collation.
	CoercibilityImplicit
	// CoercibilityCoercible is a literal's collation.
	CoercibilityCoercible
	// CoercibilityNone is the result of combining two conflicting implicit collations.
	CoercibilityNone
)

func (c Coercibility) String() string {
	switch c {
	case CoercibilityExplicit:
		return "EXPLICIT"
	case CoercibilityImplicit:
		return "IMPLICIT"
	case CoercibilityCoercible:
		return "COERCIBLE"
	case CoercibilityNone:
		return "NONE"
	}
	panic("impossible, coercibility switch bug")
}

// CoercibilityByName looks up a coercibility by its digest name, ignoring case.
func CoercibilityByName(name string) (Coercibility, bool) {
	for c := CoercibilityExplicit; c <= CoercibilityNone; c++ {
		if strings.EqualFold(c.String(), name) {
			return c, true
		}
	}
	return 0, false
}

// Collation is named "<charset>$<locale>$<strength>", for example "ISO-8859-1$en_US$primary".
type Collation struct {
	name         string
	charset      *Charset
	locale       language.Tag
	strength     string
	coercibility Coercibility
}

// NewCollation parses a collation name.
func NewCollation(name string, coercibility Coercibility) (*Collation, error) {
	parts := strings.Split(name, "$")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, errors.Errorf("invalid collation name %s, expected charset$locale[$strength]", name)
	}
	charset, err := CharsetByName(parts[0])
	if err != nil {
		return nil, errors.Wrap(err, "couldn't resolve collation charset")
	}
	locale, err := language.Parse(strings.ReplaceAll(parts[1], "_", "-"))
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't parse collation locale %s", parts[1])
	}
	strength := "primary"
	if len(parts) == 3 {
		strength = strings.ToLower(parts[2])
	}
	switch strength {
	case "primary", "secondary", "tertiary", "identical":
	default:
		return nil, errors.Errorf("invalid collation strength %s", strength)
	}

	return &Collation{
		name:         fmt.Sprintf("%s$%s$%s", charset.Name(), parts[1], strength),
		charset:      charset,
		locale:       locale,
		strength:     strength,
		coercibility: coercibility,
	}, nil
}

// ImplicitCollation is the collation character columns get by default.
func ImplicitCollation(charset *Charset) *Collation {
	return defaultCollation(charset, CoercibilityImplicit)
}

// CoercibleCollation is the collation character literals get by default.
func CoercibleCollation(charset *Charset) *Collation {
	return defaultCollation(charset, CoercibilityCoercible)
}

func defaultCollation(charset *Charset, coercibility Coercibility) *Collation {
	return &Collation{
		name:         charset.Name() + "$en_US$primary",
		charset:      charset,
		locale:       language.AmericanEnglish,
		strength:     "primary",
		coercibility: coercibility,
	}
}

func (c *Collation) Name() string {
	return c.name
}

func (c *Collation) Charset() *Charset {
	return c.charset
}

func (c *Collation) Locale() language.Tag {
	return c.locale
}

func (c *Collation) Strength() string {
	return c.strength
}

func (c *Collation) Coercibility() Coercibility {
	return c.coercibility
}

func (c *Collation) String() string {
	return fmt.Sprintf("COLLATE %s", c.name)
}

func (c *Collation) Equal(other *Collation) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.name == other.name && c.coercibility == other.coercibility
}

// Collator returns a comparator honoring the collation's locale and strength.
func (c *Collation) Collator() *collate.Collator {
	var options []collate.Option
	switch c.strength {
	case "primary":
		options = append(options, collate.IgnoreCase, collate.IgnoreDiacritics)
	case "secondary":
		options = append(options, collate.IgnoreCase)
	}
	return collate.New(c.locale, options...)
}

// DyadicCollation derives the collation of a dyadic operator's result.
// A nil collation with a nil error means the result has no collation.
// Two different explicit collations can't be combined.
func DyadicCollation(c1, c2 *Collation) (*Collation, error) {
	switch c1.coercibility {
	case CoercibilityCoercible:
		switch c2.coercibility {
		case CoercibilityNone:
			return nil, nil
		default:
			return c2, nil
		}
	case CoercibilityImplicit:
		switch c2.coercibility {
		case CoercibilityCoercible:
			return c1, nil
		case CoercibilityImplicit:
			if c1.name == c2.name {
				return c2, nil
			}
			return nil, nil
		case CoercibilityNone:
			return nil, nil
		case CoercibilityExplicit:
			return c2, nil
		}
	case CoercibilityNone:
		if c2.coercibility == CoercibilityExplicit {
			return c2, nil
		}
		return nil, nil
	case CoercibilityExplicit:
		switch c2.coercibility {
		case CoercibilityExplicit:
			if c1.name == c2.name {
				return c2, nil
			}
			return nil, errors.Errorf("invalid syntax: two explicit different collations (%s, %s) are illegal", c1.name, c2.name)
		default:
			return c1, nil
		}
	}
	panic("impossible, coercibility switch bug")
}
