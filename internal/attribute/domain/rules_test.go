package domain

import (
	"encoding/json"
	"testing"

	"github.com/rackworks/catalog/internal/typedvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violatedRules(violations []Violation) []string {
	rules := make([]string, 0, len(violations))
	for _, v := range violations {
		rules = append(rules, v.Rule)
	}
	return rules
}

func TestEvaluateRulesRequired(t *testing.T) {
	rules := map[string]any{"required": true}

	assert.Equal(t, []string{"required"}, violatedRules(EvaluateRules(rules, typedvalue.TypeString, "")))
	assert.Empty(t, EvaluateRules(rules, typedvalue.TypeString, "x"))
	assert.Empty(t, EvaluateRules(map[string]any{}, typedvalue.TypeString, ""))
}

func TestEvaluateRulesNumericRange(t *testing.T) {
	rules := map[string]any{"min": float64(1), "max": float64(64)}

	assert.Empty(t, EvaluateRules(rules, typedvalue.TypeInteger, "32"))
	assert.Equal(t, []string{"min"}, violatedRules(EvaluateRules(rules, typedvalue.TypeInteger, "0")))
	assert.Equal(t, []string{"max"}, violatedRules(EvaluateRules(rules, typedvalue.TypeInteger, "128")))
}

func TestEvaluateRulesLengths(t *testing.T) {
	rules := map[string]any{"min_length": float64(2), "max_length": float64(4)}

	assert.Empty(t, EvaluateRules(rules, typedvalue.TypeString, "abc"))
	assert.Equal(t, []string{"min_length"}, violatedRules(EvaluateRules(rules, typedvalue.TypeString, "a")))
	assert.Equal(t, []string{"max_length"}, violatedRules(EvaluateRules(rules, typedvalue.TypeString, "abcde")))
}

func TestEvaluateRulesRegex(t *testing.T) {
	rules := map[string]any{"regex": "^v[0-9]+$"}

	assert.Empty(t, EvaluateRules(rules, typedvalue.TypeString, "v12"))
	assert.Equal(t, []string{"regex"}, violatedRules(EvaluateRules(rules, typedvalue.TypeString, "release-12")))

	// An uncompilable pattern is skipped, not reported.
	assert.Empty(t, EvaluateRules(map[string]any{"regex": "("}, typedvalue.TypeString, "anything"))
}

func TestEvaluateRulesJSONNumberRuleValues(t *testing.T) {
	// Rules stored in a jsonb column come back with json.Number values,
	// not float64.
	rules := map[string]any{
		"min":        json.Number("1"),
		"max":        json.Number("64"),
		"max_length": json.Number("4"),
	}

	assert.Empty(t, EvaluateRules(rules, typedvalue.TypeInteger, "32"))
	assert.Equal(t, []string{"min"}, violatedRules(EvaluateRules(rules, typedvalue.TypeInteger, "0")))
	assert.Equal(t, []string{"max"}, violatedRules(EvaluateRules(rules, typedvalue.TypeInteger, "128")))
	assert.Equal(t, []string{"max_length"}, violatedRules(EvaluateRules(rules, typedvalue.TypeString, "abcde")))

	// An unparsable number is skipped like any other unusable rule value.
	assert.Empty(t, EvaluateRules(map[string]any{"max": json.Number("x")}, typedvalue.TypeInteger, "128"))
}

func TestEvaluateRulesTypeMismatch(t *testing.T) {
	violations := EvaluateRules(nil, typedvalue.TypeInteger, "not-a-number")
	require.Len(t, violations, 1)
	assert.Equal(t, "type", violations[0].Rule)

	// Booleans coerce anything, so no type violation is possible.
	assert.Empty(t, EvaluateRules(nil, typedvalue.TypeBoolean, "maybe"))
}

func TestEvaluateRulesStringyRuleValues(t *testing.T) {
	rules := map[string]any{"min": "10", "required": "true"}

	assert.Equal(t, []string{"min"}, violatedRules(EvaluateRules(rules, typedvalue.TypeDecimal, "9.5")))
	assert.Equal(t, []string{"required"}, violatedRules(EvaluateRules(rules, typedvalue.TypeDecimal, "")))
}
