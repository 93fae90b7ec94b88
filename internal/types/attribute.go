// Package types provides type definitions for structured data used throughout the candidate-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValueKind identifies which variant an AttributeValue holds.
type ValueKind string

// Supported attribute value kinds.
const (
	KindAbsent ValueKind = ""
	KindNumber ValueKind = "number"
	KindText   ValueKind = "text"
	KindFlag   ValueKind = "flag"
	KindList   ValueKind = "list"
)

// AttributeValue is a closed tagged union over the value shapes a candidate
// attribute or criterion target can take: a number, a text string, a boolean
// flag, or a list of values. The zero value is "absent".
type AttributeValue struct {
	kind ValueKind
	num  float64
	text string
	flag bool
	list []AttributeValue
}

// Number creates a numeric AttributeValue.
func Number(v float64) AttributeValue {
	return AttributeValue{kind: KindNumber, num: v}
}

// Text creates a text AttributeValue.
func Text(s string) AttributeValue {
	return AttributeValue{kind: KindText, text: s}
}

// Flag creates a boolean AttributeValue.
func Flag(b bool) AttributeValue {
	return AttributeValue{kind: KindFlag, flag: b}
}

// List creates a list AttributeValue from the given elements.
func List(elems ...AttributeValue) AttributeValue {
	return AttributeValue{kind: KindList, list: elems}
}

// TextList creates a list AttributeValue from plain strings (the common case
// for skill lists).
func TextList(items ...string) AttributeValue {
	elems := make([]AttributeValue, 0, len(items))
	for _, item := range items {
		elems = append(elems, Text(item))
	}
	return AttributeValue{kind: KindList, list: elems}
}

// Kind returns the variant tag of the value.
func (v AttributeValue) Kind() ValueKind {
	return v.kind
}

// IsAbsent reports whether the value is the zero (absent) value.
func (v AttributeValue) IsAbsent() bool {
	return v.kind == KindAbsent
}

// AsNumber returns the numeric payload and whether the value is a number.
func (v AttributeValue) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsText returns the text payload and whether the value is text.
func (v AttributeValue) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsFlag returns the boolean payload and whether the value is a flag.
func (v AttributeValue) AsFlag() (bool, bool) {
	return v.flag, v.kind == KindFlag
}

// AsList returns the list payload and whether the value is a list.
func (v AttributeValue) AsList() ([]AttributeValue, bool) {
	return v.list, v.kind == KindList
}

// Equal reports whether two values hold the same variant with the same
// payload. Lists compare element-wise in order.
func (v AttributeValue) Equal(other AttributeValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == other.num
	case KindText:
		return v.text == other.text
	case KindFlag:
		return v.flag == other.flag
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	default:
		return true // both absent
	}
}

// String returns a human-readable rendering used in logs and verbose output.
func (v AttributeValue) String() string {
	switch v.kind {
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	case KindText:
		return v.text
	case KindFlag:
		return fmt.Sprintf("%t", v.flag)
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, e := range v.list {
			parts = append(parts, e.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<absent>"
	}
}

// MarshalJSON encodes the value as the plain JSON form of its payload.
func (v AttributeValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	case KindFlag:
		return json.Marshal(v.flag)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a plain JSON number, string, boolean, or array into
// the matching variant. JSON null decodes to the absent value. Objects are
// rejected: attribute values are scalars or lists, never nested documents.
func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*v = AttributeValue{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Flag(b)
	case '[':
		var elems []AttributeValue
		if err := json.Unmarshal(data, &elems); err != nil {
			return err
		}
		*v = AttributeValue{kind: KindList, list: elems}
	case '{':
		return fmt.Errorf("attribute value cannot be a JSON object")
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Number(n)
	}

	return nil
}

// AttributeSet maps attribute names to values for a single candidate.
// Keys are unique; insertion order is irrelevant.
type AttributeSet map[string]AttributeValue

// Get returns the value for name and whether it is present and non-absent.
func (s AttributeSet) Get(name string) (AttributeValue, bool) {
	v, ok := s[name]
	if !ok || v.IsAbsent() {
		return AttributeValue{}, false
	}
	return v, true
}
