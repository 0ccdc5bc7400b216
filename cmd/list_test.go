package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"metamorph.dev/pkg/metamorph/internal/domain"
	domainmocks "metamorph.dev/pkg/metamorph/internal/domain/mocks"
)

func TestListCmd_PassesSelectedTargets(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Estimate", mock.Anything, mock.MatchedBy(func(args domain.EstimateArgs) bool {
		return len(args.Targets) == 3 && args.Targets[0].Label() == "ML-KEM-512"
	})).Return(nil)

	cmd.SetArgs([]string{"list", "--include", "^ML-KEM-", "--trials", "2"})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_RejectsZeroTrials(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"list", "--include", "^Kyber", "--trials", "0"})
	require.Error(t, cmd.Execute())
}
