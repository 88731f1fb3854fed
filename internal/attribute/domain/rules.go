package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rackworks/catalog/internal/typedvalue"
)

// Violation is one failed validation rule for a raw value.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// EvaluateRules checks a raw editing value against an attribute's validation
// rules. An empty value only trips the required rule; all other rules pass
// vacuously. Rule values with unusable shapes (wrong JSON type, bad regex)
// are skipped rather than reported.
func EvaluateRules(rules map[string]any, dataType typedvalue.DataType, raw string) []Violation {
	var violations []Violation

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if boolRule(rules, "required") {
			violations = append(violations, Violation{Rule: "required", Message: "value is required"})
		}
		return violations
	}

	if min, ok := floatRule(rules, "min"); ok {
		if value, err := strconv.ParseFloat(trimmed, 64); err == nil && value < min {
			violations = append(violations, Violation{
				Rule:    "min",
				Message: fmt.Sprintf("value must be at least %v", min),
			})
		}
	}
	if max, ok := floatRule(rules, "max"); ok {
		if value, err := strconv.ParseFloat(trimmed, 64); err == nil && value > max {
			violations = append(violations, Violation{
				Rule:    "max",
				Message: fmt.Sprintf("value must be at most %v", max),
			})
		}
	}

	if minLen, ok := intRule(rules, "min_length"); ok && len(trimmed) < minLen {
		violations = append(violations, Violation{
			Rule:    "min_length",
			Message: fmt.Sprintf("value must be at least %d characters", minLen),
		})
	}
	if maxLen, ok := intRule(rules, "max_length"); ok && len(trimmed) > maxLen {
		violations = append(violations, Violation{
			Rule:    "max_length",
			Message: fmt.Sprintf("value must be at most %d characters", maxLen),
		})
	}

	if pattern, ok := stringRule(rules, "regex"); ok {
		re, err := regexp.Compile(pattern)
		if err == nil && !re.MatchString(trimmed) {
			violations = append(violations, Violation{
				Rule:    "regex",
				Message: "value does not match the required pattern",
			})
		}
	}

	// A non-empty value that does not encode for its declared type is a
	// violation regardless of explicit rules.
	if typedvalue.Known(dataType) && typedvalue.Encode(dataType, trimmed).IsEmpty() && dataType != typedvalue.TypeBoolean {
		violations = append(violations, Violation{
			Rule:    "type",
			Message: fmt.Sprintf("value is not a valid %s", dataType),
		})
	}

	return violations
}

func boolRule(rules map[string]any, name string) bool {
	switch value := rules[name].(type) {
	case bool:
		return value
	case string:
		return value == "true"
	}
	return false
}

func floatRule(rules map[string]any, name string) (float64, bool) {
	switch value := rules[name].(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case json.Number:
		// JSONMap columns round-trip numbers as json.Number.
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func intRule(rules map[string]any, name string) (int, bool) {
	value, ok := floatRule(rules, name)
	if !ok {
		return 0, false
	}
	return int(value), true
}

func stringRule(rules map[string]any, name string) (string, bool) {
	value, ok := rules[name].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}
