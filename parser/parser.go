// Package parser builds type descriptors from SQL type strings and JSON documents.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/polypheny/polytype/polytype"
)

// SyntaxError reports a malformed type specification.
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Message)
}

var kindAliases = map[string]polytype.Kind{
	"INT":     polytype.KindInteger,
	"NUMERIC": polytype.KindDecimal,
	"DEC":     polytype.KindDecimal,
	"BOOL":    polytype.KindBoolean,
}

type typeParser struct {
	factory *polytype.Factory
	src     string
	digest  bool
	s       scanner.Scanner
	tok     rune
	text    string
	offset  int
	err     *SyntaxError
}

// ParseType parses a SQL type string like "DECIMAL(10, 2) NOT NULL" or "ROW(a INTEGER, b VARCHAR(3)) ARRAY".
// Types are NOT NULL unless marked NULL.
func ParseType(factory *polytype.Factory, text string) (*polytype.Type, error) {
	return parse(factory, text, false)
}

// ParseDigest parses a type digest back into its descriptor.
// Unlike ParseType, a type without a NOT NULL marker is nullable, as digests render it.
func ParseDigest(factory *polytype.Factory, digest string) (*polytype.Type, error) {
	return parse(factory, digest, true)
}

func parse(factory *polytype.Factory, text string, digest bool) (*polytype.Type, error) {
	p := &typeParser{factory: factory, src: text, digest: digest}
	p.s.Init(strings.NewReader(text))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings
	p.s.IsIdentRune = func(ch rune, i int) bool {
		return ch == '_' || ch == '$' || unicode.IsLetter(ch) || unicode.IsDigit(ch) && i > 0
	}
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = &SyntaxError{Offset: s.Pos().Offset, Message: msg}
		}
	}
	p.next()

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok != scanner.EOF {
		return nil, p.errorf("unexpected %q after type", p.text)
	}
	if p.err != nil {
		return nil, p.err
	}
	return t, nil
}

func (p *typeParser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
	p.offset = p.s.Position.Offset
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	if p.err != nil {
		return p.err
	}
	return &SyntaxError{Offset: p.offset, Message: fmt.Sprintf(format, args...)}
}

func (p *typeParser) isKeyword(keyword string) bool {
	return p.tok == scanner.Ident && strings.EqualFold(p.text, keyword)
}

func (p *typeParser) acceptKeyword(keyword string) bool {
	if p.isKeyword(keyword) {
		p.next()
		return true
	}
	return false
}

func (p *typeParser) expectKeyword(keyword string) error {
	if !p.acceptKeyword(keyword) {
		return p.errorf("expected %s, got %q", keyword, p.text)
	}
	return nil
}

func (p *typeParser) expect(r rune) error {
	if p.tok != r {
		return p.errorf("expected %q, got %q", r, p.text)
	}
	p.next()
	return nil
}

// parseInt parses a number. Only array bounds may be negative, as they render NotSpecified as -1.
func (p *typeParser) parseInt(allowNegative bool) (int, error) {
	negative := false
	if p.tok == '-' && allowNegative {
		negative = true
		p.next()
	}
	if p.tok != scanner.Int {
		return 0, p.errorf("expected a number, got %q", p.text)
	}
	n, err := strconv.Atoi(p.text)
	if err != nil {
		return 0, p.errorf("invalid number %s", p.text)
	}
	p.next()
	if negative {
		return -n, nil
	}
	return n, nil
}

func (p *typeParser) parseIdent() (string, error) {
	if p.tok != scanner.Ident {
		return "", p.errorf("expected a name, got %q", p.text)
	}
	name := p.text
	p.next()
	return name, nil
}

func (p *typeParser) parseString() (string, error) {
	switch p.tok {
	case scanner.String:
		s, err := strconv.Unquote(p.text)
		if err != nil {
			return "", p.errorf("invalid string %s", p.text)
		}
		p.next()
		return s, nil
	case scanner.Ident:
		return p.parseIdent()
	}
	return "", p.errorf("expected a string, got %q", p.text)
}

// parseType parses a base type followed by nullability markers and collection suffixes.
func (p *typeParser) parseType() (*polytype.Type, error) {
	t, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isKeyword("NOT"):
			p.next()
			if err := p.expectKeyword("NULL"); err != nil {
				return nil, err
			}
			t = p.factory.CreateTypeWithNullability(t, false)
		case p.acceptKeyword("NULL"), p.digest:
			t = p.factory.CreateTypeWithNullability(t, true)
		}

		switch {
		case p.acceptKeyword("ARRAY"):
			cardinality, dimension := polytype.NotSpecified, polytype.NotSpecified
			if p.tok == '(' {
				p.next()
				if cardinality, err = p.parseInt(true); err != nil {
					return nil, err
				}
				if p.tok == ',' {
					p.next()
					if dimension, err = p.parseInt(true); err != nil {
						return nil, err
					}
				}
				if err := p.expect(')'); err != nil {
					return nil, err
				}
			}
			t = p.factory.CreateArrayTypeWithDimension(t, cardinality, dimension)
		case p.acceptKeyword("MULTISET"):
			t = p.factory.CreateMultisetType(t, polytype.NotSpecified)
		default:
			return t, nil
		}
	}
}

func (p *typeParser) parseBase() (*polytype.Type, error) {
	if p.tok == '(' {
		p.next()
		key, value, err := p.parseMapBody()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("MAP"); err != nil {
			return nil, err
		}
		return p.factory.CreateMapType(key, value), nil
	}
	if p.tok != scanner.Ident {
		return nil, p.errorf("expected a type name, got %q", p.text)
	}

	name := strings.ToUpper(p.text)
	nameOffset := p.offset
	p.next()
	switch name {
	case "MAP":
		if err := p.expect('('); err != nil {
			return nil, err
		}
		key, value, err := p.parseMapBody()
		if err != nil {
			return nil, err
		}
		return p.factory.CreateMapType(key, value), nil
	case "ROW":
		return p.parseRow(false)
	case "RECORDTYPE":
		return p.parseRow(true)
	case "INTERVAL":
		return p.parseInterval()
	}

	kind, ok := kindAliases[name]
	if !ok {
		if kind, ok = polytype.KindByName(name); !ok {
			return nil, &SyntaxError{Offset: nameOffset, Message: fmt.Sprintf("unknown type %s", name)}
		}
	}
	switch {
	case kind.IsSpecial():
		return nil, &SyntaxError{Offset: nameOffset, Message: fmt.Sprintf("%s has a syntax of its own", name)}
	case kind == polytype.KindStructured || kind == polytype.KindDistinct || kind == polytype.KindPath:
		return nil, &SyntaxError{Offset: nameOffset, Message: fmt.Sprintf("%s types can't be written down", name)}
	}

	precision, scale := polytype.NotSpecified, polytype.NotSpecified
	if p.tok == '(' {
		p.next()
		var err error
		if precision, err = p.parseInt(false); err != nil {
			return nil, err
		}
		if p.tok == ',' {
			p.next()
			if scale, err = p.parseInt(false); err != nil {
				return nil, err
			}
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
	}
	if !kind.AllowsPrecScale(precision != polytype.NotSpecified, scale != polytype.NotSpecified) {
		return nil, &SyntaxError{Offset: nameOffset, Message: fmt.Sprintf("%s doesn't take this precision and scale", kind)}
	}

	if (kind == polytype.KindTime || kind == polytype.KindTimestamp) && p.acceptKeyword("WITH") {
		for _, keyword := range []string{"LOCAL", "TIME", "ZONE"} {
			if err := p.expectKeyword(keyword); err != nil {
				return nil, err
			}
		}
		if kind == polytype.KindTime {
			kind = polytype.KindTimeWithLocalTimeZone
		} else {
			kind = polytype.KindTimestampWithLocalTimeZone
		}
	}

	var t *polytype.Type
	switch {
	case scale != polytype.NotSpecified:
		t = p.factory.CreateTypeWithScale(kind, precision, scale)
	case precision != polytype.NotSpecified:
		t = p.factory.CreateTypeWithPrecision(kind, precision)
	default:
		t = p.factory.CreateType(kind)
	}
	if polytype.InCharFamily(t) {
		return p.parseCharsetAndCollation(t)
	}
	return t, nil
}

func (p *typeParser) parseMapBody() (*polytype.Type, *polytype.Type, error) {
	key, err := p.parseType()
	if err != nil {
		return nil, nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, nil, err
	}
	value, err := p.parseType()
	if err != nil {
		return nil, nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, nil, err
	}
	return key, value, nil
}

// parseRow parses the field list of ROW(name type, ...) or, in digest order, RecordType(type name, ...).
func (p *typeParser) parseRow(typeFirst bool) (*polytype.Type, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	builder := p.factory.Builder()
	for {
		var name string
		var t *polytype.Type
		var err error
		if typeFirst {
			if t, err = p.parseType(); err != nil {
				return nil, err
			}
			if name, err = p.parseFieldName(); err != nil {
				return nil, err
			}
		} else {
			if name, err = p.parseIdent(); err != nil {
				return nil, err
			}
			if t, err = p.parseType(); err != nil {
				return nil, err
			}
		}
		builder.Add(name, t)

		if p.tok == ')' {
			p.next()
			return builder.Build(), nil
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
	}
}

// parseFieldName takes the source text up to the next ',' or ')', so digest field names may contain spaces.
func (p *typeParser) parseFieldName() (string, error) {
	start, end := p.offset, p.offset
	for p.tok != ',' && p.tok != ')' && p.tok != scanner.EOF {
		end = p.offset + len(p.text)
		p.next()
	}
	if end == start {
		return "", p.errorf("expected a name, got %q", p.text)
	}
	return p.src[start:end], nil
}

func (p *typeParser) parseIntervalField() (polytype.TimeUnit, int, int, error) {
	first, second := polytype.NotSpecified, polytype.NotSpecified
	offset := p.offset
	name, err := p.parseIdent()
	if err != nil {
		return 0, 0, 0, err
	}
	unit, ok := polytype.TimeUnitByName(name)
	if !ok {
		return 0, 0, 0, &SyntaxError{Offset: offset, Message: fmt.Sprintf("unknown time unit %s", name)}
	}
	if p.tok == '(' {
		p.next()
		if first, err = p.parseInt(false); err != nil {
			return 0, 0, 0, err
		}
		if p.tok == ',' {
			p.next()
			if second, err = p.parseInt(false); err != nil {
				return 0, 0, 0, err
			}
		}
		if err := p.expect(')'); err != nil {
			return 0, 0, 0, err
		}
	}
	return unit, first, second, nil
}

func (p *typeParser) parseInterval() (*polytype.Type, error) {
	offset := p.offset
	start, startPrecision, fractionalPrecision, err := p.parseIntervalField()
	if err != nil {
		return nil, err
	}
	if start != polytype.TimeUnitSecond && fractionalPrecision != polytype.NotSpecified {
		return nil, &SyntaxError{Offset: offset, Message: fmt.Sprintf("%s doesn't take a fractional second precision", start)}
	}
	end := polytype.TimeUnitNone
	if p.acceptKeyword("TO") {
		var endPrecision, extra int
		if end, endPrecision, extra, err = p.parseIntervalField(); err != nil {
			return nil, err
		}
		if extra != polytype.NotSpecified || endPrecision != polytype.NotSpecified && end != polytype.TimeUnitSecond {
			return nil, &SyntaxError{Offset: offset, Message: fmt.Sprintf("invalid precision for %s", end)}
		}
		if endPrecision != polytype.NotSpecified {
			fractionalPrecision = endPrecision
		}
	}
	if !validIntervalRange(start, end) {
		return nil, &SyntaxError{Offset: offset, Message: fmt.Sprintf("invalid interval %s TO %s", start, end)}
	}
	return p.factory.CreateIntervalType(polytype.NewIntervalQualifierWithPrecision(start, startPrecision, end, fractionalPrecision)), nil
}

func validIntervalRange(start, end polytype.TimeUnit) bool {
	switch {
	case end == polytype.TimeUnitNone || end == start:
		return true
	case start == polytype.TimeUnitYear:
		return end == polytype.TimeUnitMonth
	case start >= polytype.TimeUnitDay:
		return end > start
	}
	return false
}

func (p *typeParser) parseCharsetAndCollation(t *polytype.Type) (*polytype.Type, error) {
	var charset *polytype.Charset
	var collation *polytype.Collation
	if p.isKeyword("CHARACTER") {
		offset := p.offset
		p.next()
		if err := p.expectKeyword("SET"); err != nil {
			return nil, err
		}
		name, err := p.parseString()
		if err != nil {
			return nil, err
		}
		if charset, err = polytype.CharsetByName(name); err != nil {
			return nil, &SyntaxError{Offset: offset, Message: err.Error()}
		}
	}
	if p.isKeyword("COLLATE") {
		offset := p.offset
		p.next()
		name, err := p.parseString()
		if err != nil {
			return nil, err
		}
		coercibility := polytype.CoercibilityExplicit
		if p.tok == scanner.Ident {
			if c, ok := polytype.CoercibilityByName(p.text); ok {
				coercibility = c
				p.next()
			}
		}
		if collation, err = polytype.NewCollation(name, coercibility); err != nil {
			return nil, &SyntaxError{Offset: offset, Message: err.Error()}
		}
		if charset != nil && !collation.Charset().Equal(charset) {
			return nil, &SyntaxError{Offset: offset, Message: fmt.Sprintf("collation %s doesn't belong to charset %s", collation.Name(), charset.Name())}
		}
	}

	switch {
	case charset == nil && collation == nil:
		return t, nil
	case charset == nil:
		charset = collation.Charset()
	case collation == nil:
		collation = polytype.ImplicitCollation(charset)
	}
	return p.factory.CreateTypeWithCharsetAndCollation(t, charset, collation), nil
}
