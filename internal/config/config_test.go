package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), c)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hazard.yaml")
	content := `scan:
  extensions: [".py", ".pyw"]
  parallel: 4
  fail_on_findings: true
rules:
  file: rules.yaml
reporting:
  text: true
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".py", ".pyw"}, c.Scan.Extensions)
	assert.Equal(t, 4, c.Scan.Parallel)
	assert.True(t, c.Scan.FailOnFindings)
	assert.Equal(t, "rules.yaml", c.Rules.File)
	assert.True(t, c.Reporting.Text)
	assert.Equal(t, ".hazard-reports", c.Reporting.Dir)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "text", c.Logging.Format)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hazard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HAZARD_RULES", "custom.yaml")
	t.Setenv("HAZARD_REPORTS_DIR", "out")
	t.Setenv("HAZARD_PARALLEL", "8")
	t.Setenv("HAZARD_LOG_FORMAT", "json")
	t.Setenv("HAZARD_LOG_LEVEL", "error")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "custom.yaml", c.Rules.File)
	assert.Equal(t, "out", c.Reporting.Dir)
	assert.Equal(t, 8, c.Scan.Parallel)
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, "error", c.Logging.Level)
}

func TestLoad_InvalidParallelEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HAZARD_PARALLEL", "many")

	_, err := Load("")
	assert.Error(t, err)
}
