package domain

import (
	"encoding/json"
	"strconv"
)

type valueKind int

const (
	kindAbsent valueKind = iota
	kindNumber
	kindCategory
)

// Value is an optional indicator value: a float, a textual category, or
// absent. The zero Value is absent.
type Value struct {
	kind valueKind
	num  float64
	str  string
}

// Number wraps a float in a present Value.
func Number(v float64) Value {
	return Value{kind: kindNumber, num: v}
}

// Category wraps a textual category in a present Value.
func Category(s string) Value {
	return Value{kind: kindCategory, str: s}
}

// Absent returns the absent Value.
func Absent() Value {
	return Value{}
}

// IsAbsent reports whether no value is present.
func (v Value) IsAbsent() bool {
	return v.kind == kindAbsent
}

// Float returns the numeric value and whether one is present.
func (v Value) Float() (float64, bool) {
	if v.kind != kindNumber {
		return 0, false
	}
	return v.num, true
}

// Text returns the categorical value and whether one is present.
func (v Value) Text() (string, bool) {
	if v.kind != kindCategory {
		return "", false
	}
	return v.str, true
}

// String renders the value for display and ledger persistence. Absent values
// render as the empty string.
func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindCategory:
		return v.str
	default:
		return ""
	}
}

// MarshalJSON renders absent as null, numbers as JSON numbers and categories
// as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindNumber:
		return json.Marshal(v.num)
	case kindCategory:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, numbers and strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = Number(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*v = Category(str)
	return nil
}
