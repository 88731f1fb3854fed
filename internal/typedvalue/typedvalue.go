// Package typedvalue maps a single logical attribute value onto the
// mutually exclusive typed storage slots used by product_attribute_values.
package typedvalue

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DataType is the declared type of an attribute definition.
type DataType string

const (
	TypeString  DataType = "string"
	TypeText    DataType = "text"
	TypeInteger DataType = "integer"
	TypeDecimal DataType = "decimal"
	TypeBoolean DataType = "boolean"
	TypeJSON    DataType = "json"
	TypeList    DataType = "list"
)

// Known reports whether t is one of the supported data types.
func Known(t DataType) bool {
	switch t {
	case TypeString, TypeText, TypeInteger, TypeDecimal, TypeBoolean, TypeJSON, TypeList:
		return true
	}
	return false
}

// ParseDataType normalizes a raw type name. Unrecognized names are returned
// as-is; Encode and Decode treat them as string.
func ParseDataType(raw string) DataType {
	return DataType(strings.ToLower(strings.TrimSpace(raw)))
}

// SlotSet is the six-column persisted representation of one value.
// At most one slot is non-nil.
type SlotSet struct {
	String  *string
	Integer *int64
	Decimal *float64
	Boolean *bool
	JSON    *string
	Text    *string
}

// IsEmpty reports whether no slot is populated.
func (s SlotSet) IsEmpty() bool {
	return s.String == nil && s.Integer == nil && s.Decimal == nil &&
		s.Boolean == nil && s.JSON == nil && s.Text == nil
}

// Encode converts a raw editing value into its slot representation.
// Unparsable integer/decimal/json input yields an empty SlotSet rather than
// an error; callers treat the empty set as "no value".
func Encode(dataType DataType, raw string) SlotSet {
	var out SlotSet

	switch dataType {
	case TypeInteger:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return out
		}
		parsed, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return out
		}
		out.Integer = &parsed
	case TypeDecimal:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return out
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return out
		}
		out.Decimal = &parsed
	case TypeBoolean:
		value := strings.TrimSpace(raw) == "true"
		out.Boolean = &value
	case TypeJSON:
		canonical, ok := canonicalJSON(raw)
		if !ok {
			return out
		}
		out.JSON = &canonical
	case TypeText:
		if raw == "" {
			return out
		}
		value := raw
		out.Text = &value
	default:
		// list, string and any unknown type share the string slot.
		if raw == "" {
			return out
		}
		value := raw
		out.String = &value
	}

	return out
}

// Decode reads the slot selected by dataType back into a raw editing value.
// A nil slot decodes to the empty string.
func Decode(dataType DataType, slots SlotSet) string {
	switch dataType {
	case TypeInteger:
		if slots.Integer == nil {
			return ""
		}
		return strconv.FormatInt(*slots.Integer, 10)
	case TypeDecimal:
		if slots.Decimal == nil {
			return ""
		}
		return strconv.FormatFloat(*slots.Decimal, 'f', -1, 64)
	case TypeBoolean:
		if slots.Boolean == nil {
			return ""
		}
		return strconv.FormatBool(*slots.Boolean)
	case TypeJSON:
		if slots.JSON == nil {
			return ""
		}
		return *slots.JSON
	case TypeText:
		if slots.Text == nil {
			return ""
		}
		return *slots.Text
	default:
		if slots.String == nil {
			return ""
		}
		return *slots.String
	}
}

// Normalize is the round trip of a raw value through its slot representation.
func Normalize(dataType DataType, raw string) string {
	return Decode(dataType, Encode(dataType, raw))
}

func canonicalJSON(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return "", false
	}
	encoded, err := json.Marshal(decoded)
	if err != nil {
		return "", false
	}
	return string(encoded), true
}
