// Package parser reads the loosely JSON-like text returned by the
// translate_a endpoint into a small tagged union of values.
package parser

import (
	"math/big"
	"strconv"
	"strings"
)

// Value is one of Number, Text, List or Mapping. The set is closed: the
// unexported marker keeps other packages from adding variants, so a type
// switch over the four cases is exhaustive.
type Value interface {
	isValue()
	String() string
}

// Key is a Value allowed as a Mapping key. Only Number and Text qualify.
type Key interface {
	Value
	isKey()
}

// Number is an integer of arbitrary size.
type Number struct {
	Int *big.Int
}

// Text is a decoded string literal.
type Text string

// List is an ordered sequence of values.
type List []Value

// Pair is one key/value member of a Mapping.
type Pair struct {
	Key   Key
	Value Value
}

// Mapping keeps its pairs in source order.
type Mapping []Pair

func (Number) isValue()  {}
func (Text) isValue()    {}
func (List) isValue()    {}
func (Mapping) isValue() {}

func (Number) isKey() {}
func (Text) isKey()   {}

// NewNumber returns a Number holding n.
func NewNumber(n int64) Number {
	return Number{Int: big.NewInt(n)}
}

// Int64 reports the value as an int64 if it fits.
func (n Number) Int64() (int64, bool) {
	if n.Int == nil {
		return 0, true
	}
	if !n.Int.IsInt64() {
		return 0, false
	}
	return n.Int.Int64(), true
}

func (n Number) String() string {
	if n.Int == nil {
		return "0"
	}
	return n.Int.String()
}

func (t Text) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range string(t) {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (m Mapping) String() string {
	parts := make([]string, len(m))
	for i, p := range m {
		parts[i] = p.Key.String() + ":" + p.Value.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Get returns the value stored under the text key k. When a key repeats,
// the last occurrence wins.
func (m Mapping) Get(k string) (Value, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if t, ok := m[i].Key.(Text); ok && string(t) == k {
			return m[i].Value, true
		}
	}
	return nil, false
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		bn, ok := b.(Number)
		return ok && numberCmp(a, bn) == 0
	case Text:
		bt, ok := b.(Text)
		return ok && a == bt
	case List:
		bl, ok := b.(List)
		if !ok || len(a) != len(bl) {
			return false
		}
		for i := range a {
			if !Equal(a[i], bl[i]) {
				return false
			}
		}
		return true
	case Mapping:
		bm, ok := b.(Mapping)
		if !ok || len(a) != len(bm) {
			return false
		}
		for i := range a {
			if !Equal(a[i].Key, bm[i].Key) || !Equal(a[i].Value, bm[i].Value) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}

func numberCmp(a, b Number) int {
	x, y := a.Int, b.Int
	if x == nil {
		x = new(big.Int)
	}
	if y == nil {
		y = new(big.Int)
	}
	return x.Cmp(y)
}

// quoteNear renders a short excerpt of s starting at off for error messages.
func quoteNear(s string, off int) string {
	const width = 16
	if off >= len(s) {
		return "end of input"
	}
	end := off + width
	if end > len(s) {
		end = len(s)
	}
	return strconv.Quote(strings.ToValidUTF8(s[off:end], "�"))
}
