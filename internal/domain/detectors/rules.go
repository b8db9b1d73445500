package detectors

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"

	m "github.com/mouse-blink/hazard/internal/model"
)

var (
	errMissingID      = errors.New("missing rule id")
	errMissingMessage = errors.New("missing rule message")
	errDuplicateID    = errors.New("duplicate rule id")
)

// RuleCompilationError reports a rule that cannot be turned into a matcher.
type RuleCompilationError struct {
	RuleID  string
	Pattern string
	Err     error
}

func (e *RuleCompilationError) Error() string {
	return fmt.Sprintf("compile rule %q (%s): %v", e.RuleID, e.Pattern, e.Err)
}

func (e *RuleCompilationError) Unwrap() error { return e.Err }

// DefaultRules returns the baseline rule set in table order.
//
// The broad-except pattern only sees one physical line, so it fires only when
// `try:` and a bare `except:` share a line. pickle matches a call literally
// named pickle(, not pickle.loads(.
func DefaultRules() []m.Rule {
	return []m.Rule{
		{ID: "eval", Pattern: `\beval\s*\(`, Message: "Use of eval() allows arbitrary code execution and is unsafe."},
		{ID: "exec", Pattern: `\bexec\s*\(`, Message: "Use of exec() can execute arbitrary code and poses a security risk."},
		{ID: "os-system", Pattern: `\bos\.system\s*\(`, Message: "os.system() can lead to command injection vulnerabilities."},
		{ID: "subprocess", Pattern: `\bsubprocess\.\w+\s*\(`, Message: "Improper use of subprocess functions can lead to command injection."},
		{ID: "pickle", Pattern: `pickle\s*\(`, Message: "Using pickle can execute arbitrary code if the data is untrusted."},
		{ID: "input", Pattern: `input\s*\(`, Message: "Unvalidated input() can lead to security vulnerabilities."},
		{ID: "broad-except", Pattern: `(?m)try\s*:\s*.*?except\s*:`, Message: "Broad try-except blocks can mask critical errors."},
	}
}

type compiledRule struct {
	rule m.Rule
	re   *regexp.Regexp
}

// RuleTable is an ordered, immutable set of compiled rules.
type RuleTable struct {
	rules []compiledRule
}

// NewRuleTable compiles rules in order. The first invalid rule aborts
// construction with a *RuleCompilationError.
func NewRuleTable(rules []m.Rule) (*RuleTable, error) {
	compiled := make([]compiledRule, 0, len(rules))
	seen := make(map[string]struct{}, len(rules))

	for _, rule := range rules {
		if rule.ID == "" {
			return nil, &RuleCompilationError{Pattern: rule.Pattern, Err: errMissingID}
		}

		if rule.Message == "" {
			return nil, &RuleCompilationError{RuleID: rule.ID, Pattern: rule.Pattern, Err: errMissingMessage}
		}

		if _, ok := seen[rule.ID]; ok {
			return nil, &RuleCompilationError{RuleID: rule.ID, Pattern: rule.Pattern, Err: errDuplicateID}
		}

		seen[rule.ID] = struct{}{}

		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, &RuleCompilationError{RuleID: rule.ID, Pattern: rule.Pattern, Err: err}
		}

		compiled = append(compiled, compiledRule{rule: rule, re: re})
	}

	return &RuleTable{rules: compiled}, nil
}

// DefaultRuleTable builds the table for DefaultRules.
func DefaultRuleTable() *RuleTable {
	table, err := NewRuleTable(DefaultRules())
	if err != nil {
		panic(err)
	}

	return table
}

// Extend returns a new table with extra rules appended after the existing ones.
func (t *RuleTable) Extend(extra []m.Rule) (*RuleTable, error) {
	return NewRuleTable(append(t.Rules(), extra...))
}

// Rules returns a copy of the rules in table order.
func (t *RuleTable) Rules() []m.Rule {
	out := make([]m.Rule, 0, len(t.rules))
	for _, c := range t.rules {
		out = append(out, c.rule)
	}

	return out
}

// Len reports the number of rules.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Fingerprint identifies the table contents. Tables with the same rules in the
// same order share a fingerprint.
func (t *RuleTable) Fingerprint() string {
	h := sha256.New()
	for _, c := range t.rules {
		fmt.Fprintf(h, "%s\x00%s\x00%s\x00", c.rule.ID, c.rule.Pattern, c.rule.Message)
	}

	return hex.EncodeToString(h.Sum(nil)[:8])
}
