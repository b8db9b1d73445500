package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainmocks "github.com/mouse-blink/hazard/internal/domain/mocks"
)

func TestRulesCmd_DisplaysRules(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	captured := useWorkflow(t, mockWorkflow)

	mockWorkflow.EXPECT().Rules().Return(nil)

	cmd, _ := newTestRootCmd(newRulesCmd())
	cmd.SetArgs([]string{"--rules", "extra.yaml", "rules"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "extra.yaml", captured.Rules.File)
}

func TestRulesCmd_Error(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.EXPECT().Rules().Return(errors.New("boom"))

	cmd, _ := newTestRootCmd(newRulesCmd())
	cmd.SetArgs([]string{"rules"})

	require.EqualError(t, cmd.Execute(), "boom")
}

func TestRulesCmd_PositionalArgsAreRejected(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(newRulesCmd())
	cmd.SetArgs([]string{"rules", "eval"})

	require.Error(t, cmd.Execute())
}
