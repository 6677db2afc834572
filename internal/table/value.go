package table

import (
	"strconv"
	"strings"
)

// Kind identifies what a Value holds.
type Kind int

const (
	KindMissing Kind = iota
	KindString
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "missing"
	}
}

// Value is a single cell. The zero Value is Missing.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// String returns a text cell. Blank text is Missing.
func String(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{kind: KindString, str: s}
}

// Number returns a numeric cell.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Missing returns the empty cell.
func Missing() Value {
	return Value{}
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Text renders the cell the way it is written to CSV and previews.
// Integral numbers are written without a decimal part.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Float returns the numeric content, parsing text cells when possible.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Interface returns the cell as a plain Go value (nil, string or float64),
// which is what spreadsheet writers expect.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	default:
		return nil
	}
}
