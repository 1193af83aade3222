package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gcovcheck.dev/pkg/gcovcheck/internal/domain"
	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

func setMonitoredFiles(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { viper.Set(checkFilesConfigKey, []map[string]any{}) })

	viper.Set(checkFilesConfigKey, []map[string]any{
		{
			"source":    "/build/src/main/gcov_tests.c",
			"data":      "build/gcov_tests.gcda",
			"reference": "main/gcov_tests.gcda.gcov",
			"dynamic":   map[string]any{"start": 28, "end": 30},
		},
	})
}

func TestCheckCmd_PassesIterationAndFiles(t *testing.T) {
	setMonitoredFiles(t)

	cmd, mockWorkflow, _ := newTestRoot(t, newCheckCmd())

	mockWorkflow.On("Check", anyContext, mock.MatchedBy(func(args domain.CheckArgs) bool {
		return args.Iteration == 3 &&
			args.Parallel == 4 &&
			len(args.Files) == 1 &&
			args.Files[0].Data == m.Path("build/gcov_tests.gcda") &&
			args.Files[0].Constant == nil
	})).Return(nil)

	cmd.SetArgs(testArgs(t, "check", "--iteration", "3", "-p", "4"))
	require.NoError(t, cmd.Execute())
}

func TestCheckCmd_Failure(t *testing.T) {
	setMonitoredFiles(t)

	cmd, mockWorkflow, _ := newTestRoot(t, newCheckCmd())

	mockWorkflow.On("Check", anyContext, mock.Anything).Return(domain.ErrCheckFailed)

	cmd.SetArgs(testArgs(t, "check", "-i", "0"))
	require.ErrorIs(t, cmd.Execute(), domain.ErrCheckFailed)
}

func TestCheckCmd_IterationIsRequired(t *testing.T) {
	cmd, _, _ := newTestRoot(t, newCheckCmd())

	cmd.SetArgs(testArgs(t, "check"))
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), iterationFlagName)
}

func TestCheckCmd_InvalidMonitoredFiles(t *testing.T) {
	t.Cleanup(func() { viper.Set(checkFilesConfigKey, []map[string]any{}) })
	viper.Set(checkFilesConfigKey, []map[string]any{{"data": "build/a.gcda"}})

	cmd, _, _ := newTestRoot(t, newCheckCmd())

	cmd.SetArgs(testArgs(t, "check", "-i", "1"))
	require.Error(t, cmd.Execute())
}
