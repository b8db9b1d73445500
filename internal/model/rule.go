package model

// Rule pairs a single-line regular expression with the hazard it identifies.
type Rule struct {
	// ID is a short stable name, e.g. "eval".
	ID      string `yaml:"id"`
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`
}
