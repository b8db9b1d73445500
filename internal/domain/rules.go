package domain

import (
	"fmt"

	"github.com/mouse-blink/hazard/internal/adapter"
	"github.com/mouse-blink/hazard/internal/domain/detectors"
	m "github.com/mouse-blink/hazard/internal/model"
)

// LoadRuleTable builds the rule table for a run. An empty path yields the
// baseline rules; otherwise the pack at path extends or replaces them.
func LoadRuleTable(store adapter.RuleStore, path m.Path) (*detectors.RuleTable, error) {
	if path == "" {
		return detectors.DefaultRuleTable(), nil
	}

	pack, err := store.LoadRulePack(path)
	if err != nil {
		return nil, fmt.Errorf("load rule pack: %w", err)
	}

	if pack.Mode == adapter.RulePackReplace {
		return detectors.NewRuleTable(pack.Rules)
	}

	return detectors.DefaultRuleTable().Extend(pack.Rules)
}
