// Package filterview derives filter controls and row predicates from a
// template's filterable properties and bound attributes.
package filterview

import (
	"strconv"
	"strings"

	"github.com/rackworks/catalog/internal/typedvalue"
)

// ControlKind selects the widget and matching rule of one filter control.
type ControlKind string

const (
	KindPropertySelect ControlKind = "property_select"
	KindBoolSelect     ControlKind = "bool_select"
	KindListSelect     ControlKind = "list_select"
	KindNumberText     ControlKind = "number_text"
	KindText           ControlKind = "text"
)

const propertyControlPrefix = "prop_"

// PropertyKeys is the fixed set of intrinsic product properties that can be
// surfaced as columns and filters.
var PropertyKeys = []string{"scope", "service", "service_type", "region"}

var propertyLabels = map[string]string{
	"scope":        "Scope",
	"service":      "Service",
	"service_type": "Service Type",
	"region":       "Region",
}

// IsPropertyKey reports whether key names an intrinsic property.
func IsPropertyKey(key string) bool {
	for _, k := range PropertyKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Attribute is the slice of an attribute definition the derivation needs.
type Attribute struct {
	ID          string
	Key         string
	DisplayName string
	DataType    typedvalue.DataType
	ListOptions []string
}

// Control is one derived filter widget.
type Control struct {
	ID          string      `json:"id"`
	Kind        ControlKind `json:"kind"`
	Label       string      `json:"label"`
	PropertyKey string      `json:"property_key,omitempty"`
	AttributeID string      `json:"attribute_id,omitempty"`
	Options     []string    `json:"options,omitempty"`
}

// BuildControls emits property controls for each filterable property followed
// by attribute controls in the order given. Unknown property keys are skipped.
func BuildControls(filterProperties []string, filterAttributes []Attribute) []Control {
	controls := make([]Control, 0, len(filterProperties)+len(filterAttributes))

	for _, key := range filterProperties {
		if !IsPropertyKey(key) {
			continue
		}
		controls = append(controls, Control{
			ID:          propertyControlPrefix + key,
			Kind:        KindPropertySelect,
			Label:       propertyLabels[key],
			PropertyKey: key,
		})
	}

	for _, attr := range filterAttributes {
		controls = append(controls, attributeControl(attr))
	}

	return controls
}

func attributeControl(attr Attribute) Control {
	control := Control{
		ID:          "attr_" + attr.ID,
		Label:       attr.DisplayName,
		AttributeID: attr.ID,
	}

	switch attr.DataType {
	case typedvalue.TypeBoolean:
		control.Kind = KindBoolSelect
		control.Options = []string{"true", "false"}
	case typedvalue.TypeList:
		control.Kind = KindListSelect
		control.Options = attr.ListOptions
	case typedvalue.TypeInteger, typedvalue.TypeDecimal:
		control.Kind = KindNumberText
	default:
		control.Kind = KindText
	}

	return control
}

// Row is one filterable product row: intrinsic property foreign keys plus the
// decoded raw value of each attribute, keyed by attribute id.
type Row struct {
	PropertyIDs map[string]int64
	Values      map[string]string
}

// Match reports whether the row satisfies every non-empty filter value.
// Filters are keyed by control ID; an empty value always matches.
func Match(row Row, controls []Control, filters map[string]string) bool {
	for _, control := range controls {
		value := strings.TrimSpace(filters[control.ID])
		if value == "" {
			continue
		}
		if !matchControl(row, control, value) {
			return false
		}
	}
	return true
}

func matchControl(row Row, control Control, value string) bool {
	switch control.Kind {
	case KindPropertySelect:
		selected, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return false
		}
		id, ok := row.PropertyIDs[control.PropertyKey]
		return ok && id == selected
	case KindBoolSelect, KindListSelect:
		return row.Values[control.AttributeID] == value
	case KindNumberText:
		// Substring match on the stringified number, kept bug-for-bug with
		// the behavior admins rely on ("1" matches 12 and 21).
		return strings.Contains(row.Values[control.AttributeID], value)
	default:
		return strings.Contains(
			strings.ToLower(row.Values[control.AttributeID]),
			strings.ToLower(value),
		)
	}
}
