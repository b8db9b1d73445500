package adapter

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/hazard/internal/model"
)

// RulePackMode decides how a rule pack combines with the baseline rules.
type RulePackMode string

const (
	// RulePackExtend appends pack rules after the baseline rules.
	RulePackExtend RulePackMode = "extend"
	// RulePackReplace uses only the pack rules.
	RulePackReplace RulePackMode = "replace"
)

// RulePack is a user-supplied set of rules.
type RulePack struct {
	Mode  RulePackMode `yaml:"mode"`
	Rules []m.Rule     `yaml:"rules"`
}

// RuleStore loads rule packs.
type RuleStore interface {
	LoadRulePack(path m.Path) (RulePack, error)
}

// LocalRuleStore reads rule packs from YAML files.
type LocalRuleStore struct{}

// NewRuleStore constructs a RuleStore implementation.
func NewRuleStore() *LocalRuleStore {
	return &LocalRuleStore{}
}

// LoadRulePack parses a YAML rule pack. Patterns are not compiled here; the
// rule table rejects invalid ones.
func (s *LocalRuleStore) LoadRulePack(path m.Path) (RulePack, error) {
	b, err := os.ReadFile(string(path))
	if err != nil {
		return RulePack{}, fmt.Errorf("read rules pack: %w", err)
	}

	var pack RulePack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return RulePack{}, fmt.Errorf("parse rules pack %s: %w", path, err)
	}

	pack.Mode = RulePackMode(strings.ToLower(strings.TrimSpace(string(pack.Mode))))
	switch pack.Mode {
	case "":
		pack.Mode = RulePackExtend
	case RulePackExtend, RulePackReplace:
	default:
		return RulePack{}, fmt.Errorf("rules pack %s: unknown mode %q", path, pack.Mode)
	}

	return pack, nil
}
