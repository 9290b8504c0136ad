package polytype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharsetByName(t *testing.T) {
	latin1, err := CharsetByName("latin1")
	require.NoError(t, err)
	assert.Equal(t, DefaultCharsetName, latin1.Name())
	assert.NotNil(t, latin1.Encoding())

	again, err := CharsetByName("ISO-8859-1")
	require.NoError(t, err)
	assert.Same(t, latin1, again)

	utf8 := MustCharset("utf-8")
	assert.Equal(t, "UTF-8", utf8.Name())
	assert.True(t, utf8.IsUnicode())
	assert.False(t, latin1.IsUnicode())

	_, err = CharsetByName("no-such-charset")
	assert.Error(t, err)
	assert.Panics(t, func() { MustCharset("no-such-charset") })
}

func TestCharsetContains(t *testing.T) {
	latin1 := MustCharset("ISO-8859-1")
	utf8 := MustCharset("UTF-8")

	assert.True(t, utf8.Contains(latin1))
	assert.False(t, latin1.Contains(utf8))
	assert.True(t, latin1.Contains(latin1))
	assert.True(t, (*Charset)(nil).Equal(nil))
	assert.False(t, latin1.Equal(nil))
}

func TestNewCollation(t *testing.T) {
	c, err := NewCollation("latin1$en_US$tertiary", CoercibilityExplicit)
	require.NoError(t, err)
	assert.Equal(t, "ISO-8859-1$en_US$tertiary", c.Name())
	assert.Equal(t, "tertiary", c.Strength())
	assert.Equal(t, CoercibilityExplicit, c.Coercibility())
	assert.Equal(t, "COLLATE ISO-8859-1$en_US$tertiary", c.String())

	c, err = NewCollation("UTF-8$de_DE", CoercibilityImplicit)
	require.NoError(t, err)
	assert.Equal(t, "primary", c.Strength())
	assert.Equal(t, "UTF-8", c.Charset().Name())

	for _, name := range []string{"latin1", "a$b$c$d", "no-such-charset$en_US", "latin1$en_US$loud"} {
		_, err := NewCollation(name, CoercibilityImplicit)
		assert.Error(t, err, name)
	}
}

func TestCollator(t *testing.T) {
	primary, err := NewCollation("ISO-8859-1$en_US$primary", CoercibilityImplicit)
	require.NoError(t, err)
	tertiary, err := NewCollation("ISO-8859-1$en_US$tertiary", CoercibilityImplicit)
	require.NoError(t, err)

	assert.Equal(t, 0, primary.Collator().CompareString("a", "A"))
	assert.NotEqual(t, 0, tertiary.Collator().CompareString("a", "A"))
	assert.Equal(t, -1, tertiary.Collator().CompareString("a", "b"))
}

func TestDyadicCollation(t *testing.T) {
	latin1 := MustCharset("ISO-8859-1")
	implicit := ImplicitCollation(latin1)
	coercible := CoercibleCollation(latin1)
	explicit1, err := NewCollation("ISO-8859-1$en_US$primary", CoercibilityExplicit)
	require.NoError(t, err)
	explicit2, err := NewCollation("ISO-8859-1$en_US$tertiary", CoercibilityExplicit)
	require.NoError(t, err)
	otherImplicit, err := NewCollation("ISO-8859-1$de_DE$primary", CoercibilityImplicit)
	require.NoError(t, err)

	tests := []struct {
		name   string
		c1, c2 *Collation
		want   *Collation
	}{
		{"coercible and implicit", coercible, implicit, implicit},
		{"implicit and coercible", implicit, coercible, implicit},
		{"implicit and explicit", implicit, explicit1, explicit1},
		{"explicit and coercible", explicit1, coercible, explicit1},
		{"same explicit", explicit1, explicit1, explicit1},
		{"conflicting implicit", implicit, otherImplicit, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DyadicCollation(tt.c1, tt.c2)
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}

	_, err = DyadicCollation(explicit1, explicit2)
	assert.Error(t, err)
}
