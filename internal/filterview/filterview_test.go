package filterview

import (
	"testing"

	"github.com/rackworks/catalog/internal/typedvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testControls() []Control {
	return BuildControls(
		[]string{"region", "service"},
		[]Attribute{
			{ID: "101", Key: "ecc_memory", DisplayName: "ECC Memory", DataType: typedvalue.TypeBoolean},
			{ID: "102", Key: "disk_type", DisplayName: "Disk Type", DataType: typedvalue.TypeList, ListOptions: []string{"ssd", "nvme", "hdd"}},
			{ID: "103", Key: "cpu_cores", DisplayName: "CPU Cores", DataType: typedvalue.TypeInteger},
			{ID: "104", Key: "notes", DisplayName: "Notes", DataType: typedvalue.TypeText},
		},
	)
}

func TestBuildControls(t *testing.T) {
	controls := testControls()
	require.Len(t, controls, 6)

	assert.Equal(t, "prop_region", controls[0].ID)
	assert.Equal(t, KindPropertySelect, controls[0].Kind)
	assert.Equal(t, "Region", controls[0].Label)
	assert.Equal(t, "prop_service", controls[1].ID)

	assert.Equal(t, "attr_101", controls[2].ID)
	assert.Equal(t, KindBoolSelect, controls[2].Kind)
	assert.Equal(t, KindListSelect, controls[3].Kind)
	assert.Equal(t, []string{"ssd", "nvme", "hdd"}, controls[3].Options)
	assert.Equal(t, KindNumberText, controls[4].Kind)
	assert.Equal(t, KindText, controls[5].Kind)
}

func TestBuildControlsSkipsUnknownProperty(t *testing.T) {
	controls := BuildControls([]string{"region", "datacenter"}, nil)
	require.Len(t, controls, 1)
	assert.Equal(t, "prop_region", controls[0].ID)
}

func row() Row {
	return Row{
		PropertyIDs: map[string]int64{"region": 7, "service": 3},
		Values: map[string]string{
			"101": "true",
			"102": "nvme",
			"103": "12",
			"104": "Reserved for Enterprise",
		},
	}
}

func TestMatchANDComposition(t *testing.T) {
	controls := testControls()

	// Two simultaneously active filters of different kinds must both hold.
	assert.True(t, Match(row(), controls, map[string]string{
		"prop_region": "7",
		"attr_102":    "nvme",
	}))
	assert.False(t, Match(row(), controls, map[string]string{
		"prop_region": "7",
		"attr_102":    "ssd",
	}))
	assert.False(t, Match(row(), controls, map[string]string{
		"prop_region": "8",
		"attr_102":    "nvme",
	}))
}

func TestMatchEmptyFilterAlwaysMatches(t *testing.T) {
	controls := testControls()
	assert.True(t, Match(row(), controls, map[string]string{}))
	assert.True(t, Match(row(), controls, map[string]string{"attr_102": "  "}))
}

func TestBooleanFilterExactness(t *testing.T) {
	controls := testControls()

	trueRow := row()
	falseRow := row()
	falseRow.Values["101"] = "false"
	nullRow := row()
	delete(nullRow.Values, "101")

	filters := map[string]string{"attr_101": "true"}
	assert.True(t, Match(trueRow, controls, filters))
	assert.False(t, Match(falseRow, controls, filters))
	assert.False(t, Match(nullRow, controls, filters))
}

func TestNumericFilterSubstringQuirk(t *testing.T) {
	controls := testControls()

	r12 := row()
	r12.Values["103"] = "12"
	r21 := row()
	r21.Values["103"] = "21"
	r33 := row()
	r33.Values["103"] = "33"

	filters := map[string]string{"attr_103": "1"}
	assert.True(t, Match(r12, controls, filters))
	assert.True(t, Match(r21, controls, filters))
	assert.False(t, Match(r33, controls, filters))
}

func TestTextFilterCaseInsensitiveSubstring(t *testing.T) {
	controls := testControls()
	assert.True(t, Match(row(), controls, map[string]string{"attr_104": "enterprise"}))
	assert.False(t, Match(row(), controls, map[string]string{"attr_104": "retail"}))
}

func TestPropertyFilterRejectsNonNumericValue(t *testing.T) {
	controls := testControls()
	assert.False(t, Match(row(), controls, map[string]string{"prop_region": "west"}))
}
