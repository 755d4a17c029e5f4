package entities

import (
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
	KindList
	KindMap
)

// String returns the kind name
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a property value parsed from a component block.
// Exactly one of the payload fields is meaningful, selected by kind.
type Value struct {
	m    *OrderedMap[Value]
	str  string
	list []Value
	num  float64
	kind ValueKind
	b    bool
}

// StringValue creates a String value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue creates a Number value.
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }

// BoolValue creates a Bool value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ListValue creates a List value.
func ListValue(items ...Value) Value { return Value{kind: KindList, list: items} }

// MapValue creates a Map value. A nil map is replaced by an empty one.
func MapValue(m *OrderedMap[Value]) Value {
	if m == nil {
		m = NewOrderedMap[Value]()
	}
	return Value{kind: KindMap, m: m}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the number payload.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the bool payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsList returns the list payload.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// AsMap returns the map payload.
func (v Value) AsMap() (*OrderedMap[Value], bool) { return v.m, v.kind == KindMap }

// Text renders scalars as plain text; lists and maps render as JS literals.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.JSLiteral()
	}
}

// Truthy follows the JS notion loosely: empty strings, zero, false and empty collections are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.num != 0
	case KindBool:
		return v.b
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return v.m.Len() > 0
	default:
		return false
	}
}

// Field looks up key on a Map value.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	return v.m.Get(key)
}

// FieldText returns the text of key on a Map value, or "" when absent.
func (v Value) FieldText(key string) string {
	f, ok := v.Field(key)
	if !ok {
		return ""
	}
	return f.Text()
}

// JSLiteral renders the value as a JavaScript literal.
func (v Value) JSLiteral() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber, KindBool:
		return v.Text()
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, item := range v.list {
			parts = append(parts, item.JSLiteral())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, 0, v.m.Len())
		for k, item := range v.m.All() {
			parts = append(parts, JSKey(k)+": "+item.JSLiteral())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "null"
	}
}

// Equal compares two values structurally, including map key order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
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
	case KindMap:
		if v.m.Len() != other.m.Len() {
			return false
		}
		otherKeys := other.m.Keys()
		for i, k := range v.m.Keys() {
			if otherKeys[i] != k {
				return false
			}
			a, _ := v.m.Get(k)
			b, _ := other.m.Get(k)
			if !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

// JSKey renders an object key, quoting it when it is not an identifier.
func JSKey(k string) string {
	if IsIdentifier(k) {
		return k
	}
	return strconv.Quote(k)
}

// IsIdentifier reports whether s is a plain JavaScript identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
