package history

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

type valueType uint8

const (
	valueNone valueType = iota
	valueString
	valueFloat
	valueInt
)

// maxLabelGraphemes bounds text shown in history labels.
const maxLabelGraphemes = 16

// Value is the before or after state of a single field.
// The zero Value is a placeholder that carries nothing.
type Value struct {
	typ valueType
	s   string
	f   float64
	i   int
}

// StringValue returns a text value.
func StringValue(s string) Value {
	return Value{typ: valueString, s: s}
}

// FloatValue returns a synthesis parameter value.
func FloatValue(f float64) Value {
	return Value{typ: valueFloat, f: f}
}

// IntValue returns a style identifier value.
func IntValue(i int) Value {
	return Value{typ: valueInt, i: i}
}

// IsZero reports whether v is the placeholder value.
func (v Value) IsZero() bool {
	return v.typ == valueNone
}

// Text returns the string held by v.
func (v Value) Text() (string, bool) {
	return v.s, v.typ == valueString
}

// Float returns the float held by v.
func (v Value) Float() (float64, bool) {
	return v.f, v.typ == valueFloat
}

// Int returns the integer held by v.
func (v Value) Int() (int, bool) {
	return v.i, v.typ == valueInt
}

// Equal reports whether v and o hold the same type and value.
func (v Value) Equal(o Value) bool {
	return v == o
}

// Interface returns the held value as string, float64, int or nil.
func (v Value) Interface() any {
	switch v.typ {
	case valueString:
		return v.s
	case valueFloat:
		return v.f
	case valueInt:
		return v.i
	}
	return nil
}

// String formats the value for display: floats with two decimals, text
// quoted and truncated by grapheme cluster.
func (v Value) String() string {
	switch v.typ {
	case valueString:
		return strconv.Quote(truncateGraphemes(v.s, maxLabelGraphemes))
	case valueFloat:
		return strconv.FormatFloat(v.f, 'f', 2, 64)
	case valueInt:
		return strconv.Itoa(v.i)
	}
	return "-"
}

// accepts reports whether v has the value type used by kind k.
func (v Value) accepts(k Kind) bool {
	switch {
	case k == KindText:
		return v.typ == valueString
	case k == KindStyle:
		return v.typ == valueInt
	case k.IsParameter():
		return v.typ == valueFloat
	}
	return false
}

func truncateGraphemes(s string, n int) string {
	if uniseg.GraphemeClusterCount(s) <= n {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	b.WriteString("…")
	return b.String()
}
