package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gcovcheck.dev/pkg/gcovcheck/internal/domain"
	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

func TestParseLineRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    m.LineRange
		wantErr string
	}{
		{"valid", "28", "30", m.LineRange{Start: 28, End: 30}, ""},
		{"single line", "15", "15", m.LineRange{Start: 15, End: 15}, ""},
		{"bad start", "x", "30", m.LineRange{}, "invalid start line"},
		{"bad end", "28", "", m.LineRange{}, "invalid end line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLineRange(tt.start, tt.end)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinesCmd_PassesRange(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newLinesCmd())

	mockWorkflow.On("Lines", anyContext, mock.MatchedBy(func(args domain.LinesArgs) bool {
		return args.Path == m.Path("dump.gcov") &&
			args.File == m.Path("/build/src/main/gcov_tests.c") &&
			args.Lines == m.LineRange{Start: 28, End: 30}
	})).Return(nil)

	cmd.SetArgs(testArgs(t, "lines", "dump.gcov", "/build/src/main/gcov_tests.c", "28", "30"))
	require.NoError(t, cmd.Execute())
}

func TestLinesCmd_RejectsBadNumbers(t *testing.T) {
	cmd, _, _ := newTestRoot(t, newLinesCmd())

	cmd.SetArgs(testArgs(t, "lines", "dump.gcov", "a.c", "one", "2"))
	require.Error(t, cmd.Execute())
}
