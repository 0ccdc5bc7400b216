package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"metamorph.dev/pkg/metamorph/internal/domain"
	domainmocks "metamorph.dev/pkg/metamorph/internal/domain/mocks"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

func newTestRunCmd(t *testing.T) (*domainmocks.MockWorkflow, func(args ...string) error) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow, func(args ...string) error {
		cmd.SetArgs(append([]string{"run"}, args...))
		return cmd.Execute()
	}
}

func targetLabels(targets []domain.Target) []string {
	out := make([]string, 0, len(targets))
	for _, target := range targets {
		out = append(out, target.Label())
	}

	return out
}

func TestRunCmd_Defaults(t *testing.T) {
	mockWorkflow, run := newTestRunCmd(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Targets) == 30 &&
			args.Threads == 1 &&
			args.MaxExamples == 8 &&
			args.Reports == m.Path(".metamorph-reports")
	})).Return(nil)

	require.NoError(t, run())
}

func TestRunCmd_Flags(t *testing.T) {
	mockWorkflow, run := newTestRunCmd(t)

	var got domain.RunArgs

	mockWorkflow.EXPECT().Run(mock.Anything, mock.Anything).
		Run(func(_ context.Context, args domain.RunArgs) { got = args }).
		Return(nil)

	err := run("--parallel", "4", "--examples", "2", "--include", "^SHA3-", "-x", "512$", "--size", "3", "-o", "./out")
	require.NoError(t, err)

	assert.Equal(t, 4, got.Threads)
	assert.Equal(t, 2, got.MaxExamples)
	assert.Equal(t, m.Path("./out"), got.Reports)
	assert.Equal(t, []string{"SHA3-224", "SHA3-256", "SHA3-384"}, targetLabels(got.Targets))

	estimates, err := got.Targets[0].Estimate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, estimates[0].Units)
	assert.Equal(t, 24, estimates[0].Mutants)
}

func TestRunCmd_InvalidPattern(t *testing.T) {
	_, run := newTestRunCmd(t)

	err := run("--include", "(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select primitives")
}

func TestRunCmd_ViolationsFail(t *testing.T) {
	mockWorkflow, run := newTestRunCmd(t)

	mockWorkflow.EXPECT().Run(mock.Anything, mock.Anything).Return(domain.ErrViolations)

	err := run("--include", "^MD5$")
	require.ErrorIs(t, err, domain.ErrViolations)
}

func TestRunCmd_PositionalArgsAreRejected(t *testing.T) {
	_, run := newTestRunCmd(t)

	require.Error(t, run("./..."))
}
