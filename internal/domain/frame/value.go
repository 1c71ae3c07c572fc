package frame

import (
	"math"
	"strconv"
)

// Kind identifies what a Value holds.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindNumber
	KindText
	KindBool
)

// Value is a single nullable cell. The zero Value is null.
type Value struct {
	kind Kind
	num  float64
	text string
	flag bool
}

// Null returns the missing value.
func Null() Value { return Value{} }

// Number wraps f. NaN is stored as null so missing data has one spelling.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// Int wraps i as a number.
func Int(i int) Value { return Number(float64(i)) }

// Text wraps s.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is missing.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric payload and whether v is a number.
func (v Value) Float() (float64, bool) { return v.num, v.kind == KindNumber }

// Str returns the text payload and whether v is text.
func (v Value) Str() (string, bool) { return v.text, v.kind == KindText }

// Flag returns the boolean payload and whether v is a bool.
func (v Value) Flag() (bool, bool) { return v.flag, v.kind == KindBool }

// Equal reports whether v and o have the same kind and payload. Two nulls
// are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindText:
		return v.text == o.text
	case KindBool:
		return v.flag == o.flag
	default:
		return true
	}
}

// String renders v for flat-file output. Null renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return ""
	}
}

// key encodes v so that distinct kinds never collide.
func (v Value) key() string {
	switch v.kind {
	case KindNumber:
		return "n" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return "t" + v.text
	case KindBool:
		return "b" + strconv.FormatBool(v.flag)
	default:
		return ""
	}
}

// Sub returns a-b, or null when either side is not a number.
func Sub(a, b Value) Value {
	x, ok1 := a.Float()
	y, ok2 := b.Float()
	if !ok1 || !ok2 {
		return Null()
	}
	return Number(x - y)
}

// Mul returns a*b, or null when either side is not a number.
func Mul(a, b Value) Value {
	x, ok1 := a.Float()
	y, ok2 := b.Float()
	if !ok1 || !ok2 {
		return Null()
	}
	return Number(x * y)
}

// Scale returns a/d for a constant divisor d, or null when a is not a number.
func Scale(a Value, d float64) Value {
	x, ok := a.Float()
	if !ok {
		return Null()
	}
	return Number(x / d)
}
