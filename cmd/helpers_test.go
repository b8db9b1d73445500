package cmd

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/hazard/internal/config"
	"github.com/mouse-blink/hazard/internal/domain"
)

// useWorkflow makes commands run against wf from a clean working directory
// and returns the configuration the command resolved.
func useWorkflow(t *testing.T, wf domain.Workflow) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())

	captured := &config.Config{}
	original := newWorkflow
	newWorkflow = func(_ *cobra.Command, cfg config.Config, _ *logrus.Logger) (domain.Workflow, error) {
		*captured = cfg
		return wf, nil
	}

	t.Cleanup(func() { newWorkflow = original })

	return captured
}

func newTestRootCmd(sub ...*cobra.Command) (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.AddCommand(sub...)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, &out
}
