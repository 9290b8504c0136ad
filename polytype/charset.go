package polytype

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultCharsetName is the charset character types get when the type system
// doesn't say otherwise. Digests omit it.
const DefaultCharsetName = "ISO-8859-1"

// Charset is a character set, as registered with IANA.
type Charset struct {
	name     string
	encoding encoding.Encoding
}

var charsets sync.Map

// CharsetByName resolves a charset by any of its IANA names or aliases.
func CharsetByName(name string) (*Charset, error) {
	if cached, ok := charsets.Load(strings.ToUpper(name)); ok {
		return cached.(*Charset), nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't find charset %s", name)
	}
	// Registered charsets without a Go encoding keep the name they were asked for.
	canonical := strings.ToUpper(name)
	if enc != nil {
		// Prefer the MIME name, not all charsets have one.
		if canonical, err = ianaindex.MIME.Name(enc); err != nil || canonical == "" {
			if canonical, err = ianaindex.IANA.Name(enc); err != nil {
				return nil, errors.Wrapf(err, "couldn't get canonical name of charset %s", name)
			}
		}
	}
	if cached, ok := charsets.Load(strings.ToUpper(canonical)); ok {
		charsets.Store(strings.ToUpper(name), cached)
		return cached.(*Charset), nil
	}

	cs := &Charset{
		name:     canonical,
		encoding: enc,
	}
	actual, _ := charsets.LoadOrStore(strings.ToUpper(canonical), cs)
	charsets.Store(strings.ToUpper(name), actual)
	return actual.(*Charset), nil
}

// MustCharset is like CharsetByName, but panics on unknown names.
func MustCharset(name string) *Charset {
	cs, err := CharsetByName(name)
	if err != nil {
		panic(err)
	}
	return cs
}

func (c *Charset) Name() string {
	return c.name
}

// Encoding is nil for registered charsets Go has no encoder for.
func (c *Charset) Encoding() encoding.Encoding {
	return c.encoding
}

func (c *Charset) String() string {
	return c.name
}

func (c *Charset) Equal(other *Charset) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.name == other.name
}

func (c *Charset) IsUnicode() bool {
	return strings.HasPrefix(c.name, "UTF-")
}

// Contains reports whether every character of other can be represented in c.
func (c *Charset) Contains(other *Charset) bool {
	switch {
	case c.Equal(other):
		return true
	case c.IsUnicode():
		return true
	case other.name == "US-ASCII":
		return strings.HasPrefix(c.name, "ISO-8859-") || strings.HasPrefix(c.name, "windows-")
	}
	return false
}
