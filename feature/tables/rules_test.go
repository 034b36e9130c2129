package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferRules_StudentRoster(t *testing.T) {
	cols := []string{"Name", "Class", "Score", "Enrollment Date", "Email"}
	rules := InferRules(cols)

	assert.Equal(t, cols, rules.RequiredColumns)
	assert.Equal(t, []string{"Name", "Class"}, rules.CompositeKeyColumns)
	assert.Equal(t, []string{"Score"}, rules.NumericColumns)
	assert.Equal(t, []string{"Score"}, rules.OutlierColumns)

	require.Contains(t, rules.PatternColumns, "Enrollment Date")
	require.Contains(t, rules.PatternColumns, "Email")
	assert.NotContains(t, rules.PatternColumns, "Name")
}

func TestInferRules_NumericTypeWithoutOutlier(t *testing.T) {
	rules := InferRules([]string{"Building", "Floor Level"})

	assert.Equal(t, []string{"Floor Level"}, rules.NumericColumns)
	assert.Empty(t, rules.OutlierColumns)
}

func TestInferRules_ProportionSkipsOutlierCheck(t *testing.T) {
	// "Share Value" matches a numeric keyword and a proportion keyword:
	// the type check applies, IQR monitoring does not
	rules := InferRules([]string{"Share Value", "Price"})

	assert.Contains(t, rules.NumericColumns, "Share Value")
	assert.Contains(t, rules.NumericColumns, "Price")
	assert.Equal(t, []string{"Price"}, rules.OutlierColumns)
}

func TestInferRules_TextNameColumnsExempt(t *testing.T) {
	// "Score Notes" contains a numeric keyword but is a text column
	rules := InferRules([]string{"Score Notes", "Title", "Updated Description"})

	assert.Empty(t, rules.NumericColumns)
	assert.Empty(t, rules.OutlierColumns)
	assert.Empty(t, rules.PatternColumns)
}

func TestInferRules_DefaultsMatchCaseInsensitively(t *testing.T) {
	rules := InferRules([]string{"NAME", "class", "SCORE"})

	// The header's own spelling is kept
	assert.Equal(t, []string{"NAME", "class"}, rules.CompositeKeyColumns)
	assert.Equal(t, []string{"SCORE"}, rules.NumericColumns)
}

func TestInferRules_DefaultsAbsentWhenColumnsMissing(t *testing.T) {
	rules := InferRules([]string{"Region", "Amount"})

	assert.Empty(t, rules.CompositeKeyColumns)
	assert.Equal(t, []string{"Amount"}, rules.NumericColumns)
	assert.Equal(t, []string{"Amount"}, rules.OutlierColumns)
}

func TestInferRules_ProposalsCoverPatternAndOutlierRules(t *testing.T) {
	rules := InferRules([]string{"Score", "Created Time", "Contact Email"})

	var types []string
	for _, p := range rules.Proposed {
		types = append(types, p.RuleType)
	}
	assert.ElementsMatch(t, []string{"pattern", "pattern", "outlier"}, types)
}

func TestScanConfig_MirrorsInferredRules(t *testing.T) {
	rules := InferRules([]string{"Name", "Class", "Score", "Join Date"})
	cfg := rules.ScanConfig()

	assert.Equal(t, rules.CompositeKeyColumns, cfg.CompositeKeyColumns)
	assert.Equal(t, rules.NumericColumns, cfg.NumericColumns)
	assert.Equal(t, rules.OutlierColumns, cfg.OutlierColumns)
	assert.Equal(t, rules.PatternColumns, cfg.PatternColumns)
}
