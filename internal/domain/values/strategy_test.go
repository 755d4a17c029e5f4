package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideStrategy(t *testing.T) {
	tests := []struct {
		name    string
		known   int
		complex bool
		want    Strategy
	}{
		{"no known patterns", 0, false, StrategyManualOnly},
		{"no known patterns with complexity", 0, true, StrategyManualOnly},
		{"known without complexity", 2, false, StrategyAutomatic},
		{"known with complexity", 1, true, StrategyHybrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideStrategy(tt.known, tt.complex))
		})
	}
}

func Test_Strategy_NeedsFallback(t *testing.T) {
	assert.False(t, StrategyAutomatic.NeedsFallback())
	assert.True(t, StrategyHybrid.NeedsFallback())
	assert.True(t, StrategyManualOnly.NeedsFallback())

	assert.True(t, StrategyManualOnly.IsFullReplacement())
	assert.False(t, StrategyHybrid.IsFullReplacement())
}

func Test_Strategy_Validate(t *testing.T) {
	assert.NoError(t, StrategyAutomatic.Validate())
	assert.NoError(t, StrategyHybrid.Validate())
	assert.NoError(t, StrategyManualOnly.Validate())
	assert.Error(t, Strategy("guess").Validate())
}

func Test_IssueKind(t *testing.T) {
	assert.False(t, IssueEmptyInput.IsRepairable())
	assert.True(t, IssueMalformedComponentBlock.IsRepairable())
	assert.True(t, IssueMissingRequiredSection.IsRepairable())
	assert.NoError(t, IssueInconsistentIndentation.Validate())
	assert.Error(t, IssueKind("typo").Validate())
}
