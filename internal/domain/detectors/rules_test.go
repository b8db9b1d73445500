package detectors

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/hazard/internal/model"
)

func TestDefaultRuleTable(t *testing.T) {
	table := DefaultRuleTable()

	require.Equal(t, 7, table.Len())

	ids := make([]string, 0, table.Len())
	for _, rule := range table.Rules() {
		ids = append(ids, rule.ID)
	}

	assert.Equal(t, []string{"eval", "exec", "os-system", "subprocess", "pickle", "input", "broad-except"}, ids)
}

func TestNewRuleTable_InvalidPattern(t *testing.T) {
	table, err := NewRuleTable([]m.Rule{
		{ID: "ok", Pattern: `ok\(`, Message: "fine"},
		{ID: "broken", Pattern: `eval(`, Message: "unbalanced"},
	})

	require.Error(t, err)
	assert.Nil(t, table)

	var compileErr *RuleCompilationError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, "broken", compileErr.RuleID)
	assert.Equal(t, `eval(`, compileErr.Pattern)

	var syntaxErr *syntax.Error
	assert.True(t, errors.As(err, &syntaxErr), "underlying regexp error should be unwrapped")
}

func TestNewRuleTable_Validation(t *testing.T) {
	tests := []struct {
		name  string
		rules []m.Rule
		want  error
	}{
		{"missing id", []m.Rule{{Pattern: "x", Message: "m"}}, errMissingID},
		{"missing message", []m.Rule{{ID: "x", Pattern: "x"}}, errMissingMessage},
		{"duplicate id", []m.Rule{
			{ID: "x", Pattern: "a", Message: "m"},
			{ID: "x", Pattern: "b", Message: "m"},
		}, errDuplicateID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRuleTable(tt.rules)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewRuleTable_Empty(t *testing.T) {
	table, err := NewRuleTable(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, table.Len())
	assert.Empty(t, NewLineMatcher(table).Detect(m.SourceLine{Number: 1, Raw: "eval(x)"}))
}

func TestRuleTable_Extend(t *testing.T) {
	base := DefaultRuleTable()

	extended, err := base.Extend([]m.Rule{{ID: "yaml-load", Pattern: `\byaml\.load\s*\(`, Message: "unsafe yaml"}})
	require.NoError(t, err)

	assert.Equal(t, 7, base.Len(), "extend must not mutate the original table")
	assert.Equal(t, 8, extended.Len())
	assert.Equal(t, "yaml-load", extended.Rules()[7].ID)

	_, err = base.Extend([]m.Rule{{ID: "eval", Pattern: "x", Message: "dup"}})
	assert.ErrorIs(t, err, errDuplicateID)
}

func TestRuleTable_RulesReturnsCopy(t *testing.T) {
	table := DefaultRuleTable()

	rules := table.Rules()
	rules[0].Message = "changed"

	assert.NotEqual(t, "changed", table.Rules()[0].Message)
}

func TestRuleTable_Fingerprint(t *testing.T) {
	base := DefaultRuleTable()

	assert.Equal(t, base.Fingerprint(), DefaultRuleTable().Fingerprint())
	assert.Regexp(t, `^[0-9a-f]{16}$`, base.Fingerprint())

	extended, err := base.Extend([]m.Rule{{ID: "yaml-load", Pattern: `yaml\.load\(`, Message: "unsafe yaml"}})
	require.NoError(t, err)
	assert.NotEqual(t, base.Fingerprint(), extended.Fingerprint())

	reworded := DefaultRules()
	reworded[0].Message = "eval is dangerous"
	other, err := NewRuleTable(reworded)
	require.NoError(t, err)
	assert.NotEqual(t, base.Fingerprint(), other.Fingerprint())

	empty, err := NewRuleTable(nil)
	require.NoError(t, err)
	assert.NotEqual(t, base.Fingerprint(), empty.Fingerprint())
}
