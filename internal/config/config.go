// Package config loads scanner settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no explicit config path is given.
const DefaultFile = ".hazard.yaml"

// Config holds every tunable of a scan run.
type Config struct {
	Scan struct {
		Extensions     []string `yaml:"extensions"`      // [".py"]
		Exclude        []string `yaml:"exclude"`         // regexes matched against paths
		Parallel       int      `yaml:"parallel"`        // 1
		FailOnFindings bool     `yaml:"fail_on_findings"` // false
	} `yaml:"scan"`

	Rules struct {
		File string `yaml:"file"` // optional YAML rule pack
	} `yaml:"rules"`

	Reporting struct {
		Dir  string `yaml:"dir"`  // ".hazard-reports"
		Text bool   `yaml:"text"` // write <name>_report.txt next to each file
	} `yaml:"reporting"`

	Logging struct {
		Format string `yaml:"format"` // "text"|"json"
		Level  string `yaml:"level"`  // "debug"|"info"|"warn"|"error"
		File   string `yaml:"file"`
	} `yaml:"logging"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	var c Config
	c.Scan.Extensions = []string{".py"}
	c.Scan.Parallel = 1
	c.Reporting.Dir = ".hazard-reports"
	c.Logging.Format = "text"
	c.Logging.Level = "warn"

	return c
}

// Load reads path over the defaults and applies HAZARD_* overrides. An empty
// path falls back to DefaultFile, which may be absent.
func Load(path string) (Config, error) {
	c := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case !explicit && errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&c); err != nil {
		return Config{}, err
	}

	return c, nil
}

func applyEnv(c *Config) error {
	if v := os.Getenv("HAZARD_RULES"); v != "" {
		c.Rules.File = v
	}

	if v := os.Getenv("HAZARD_REPORTS_DIR"); v != "" {
		c.Reporting.Dir = v
	}

	if v := os.Getenv("HAZARD_PARALLEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HAZARD_PARALLEL: %w", err)
		}

		c.Scan.Parallel = n
	}

	if v := os.Getenv("HAZARD_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}

	if v := os.Getenv("HAZARD_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return nil
}
