package golangci_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/linger/internal/adapters/golangci"
	"go.trai.ch/linger/internal/core/domain"
)

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "report.json"))
	require.NoError(t, err)
	return data
}

func TestParser_Parse(t *testing.T) {
	report, err := golangci.NewParser().Parse(readFixture(t))
	require.NoError(t, err)

	require.Len(t, report.Issues, 3)

	first := report.Issues[0]
	assert.Equal(t, "errcheck", first.FromLinter)
	assert.Equal(t, domain.Position{Filename: "main.go", Offset: 211, Line: 14, Column: 13}, first.Pos)
	line, ok := first.ExpectedSourceLine()
	assert.True(t, ok)
	assert.Equal(t, "\tdefer f.Close()", line)

	unused := report.Issues[1]
	_, ok = unused.ExpectedSourceLine()
	assert.False(t, ok)
	assert.Equal(t, &domain.LineRange{From: 5, To: 7}, unused.LineRange)

	fix := report.Issues[2].Replacement
	require.NotNil(t, fix)
	assert.Equal(t, []string{"x := 1"}, fix.NewLines)

	assert.Len(t, report.Report.Linters, 4)
	assert.Equal(t, []string{"errcheck", "unused", "gofmt"}, golangci.EnabledLinters(report.Report.Linters))
	require.Len(t, report.Report.Warnings, 1)
	assert.Equal(t, "runner", report.Report.Warnings[0].Tag)
}

func TestParser_Parse_SkipsDeprecationLine(t *testing.T) {
	out := append([]byte("level=warning msg=\"[config_reader] The configuration option `run.skip-files` is deprecated\"\n"), readFixture(t)...)

	report, err := golangci.NewParser().Parse(out)
	require.NoError(t, err)
	assert.Len(t, report.Issues, 3)
}

func TestParser_Parse_SkipsSeveralWarningLines(t *testing.T) {
	preamble := "level=warning msg=\"[config_reader] The configuration option `run.skip-files` is deprecated\"\n" +
		"level=warning msg=\"[config_reader] The configuration option `run.skip-dirs` is deprecated\"\n"
	out := append([]byte(preamble), readFixture(t)...)

	report, err := golangci.NewParser().Parse(out)
	require.NoError(t, err)
	assert.Len(t, report.Issues, 3)
}

func TestParser_Parse_EmptyReport(t *testing.T) {
	report, err := golangci.NewParser().Parse([]byte(`{"Issues":null,"Report":{}}`))
	require.NoError(t, err)
	assert.Empty(t, report.Issues)
	assert.Empty(t, golangci.EnabledLinters(report.Report.Linters))
}

func TestParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{name: "empty", input: "", target: domain.ErrReportMissing},
		{name: "only warning", input: "deprecated flag\n", target: domain.ErrReportMissing},
		{name: "truncated", input: `{"Issues":[{"FromLinter":`, target: domain.ErrReportParseFailed},
		{name: "wrong shape", input: `{"Issues":"nope"}`, target: domain.ErrReportParseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := golangci.NewParser().Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))
		})
	}
}

func TestExitCodeOK(t *testing.T) {
	assert.True(t, golangci.ExitCodeOK(0))
	assert.True(t, golangci.ExitCodeOK(1))
	assert.False(t, golangci.ExitCodeOK(2))
	assert.False(t, golangci.ExitCodeOK(3))
	assert.False(t, golangci.ExitCodeOK(-1))
}

func TestEnabledLinters_NoLinters(t *testing.T) {
	assert.Nil(t, golangci.EnabledLinters(nil))
	assert.Nil(t, golangci.EnabledLinters([]domain.LinterInfo{}))
}
