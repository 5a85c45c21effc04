package shell_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/linger/internal/adapters/shell"
	"go.trai.ch/linger/internal/core/domain"
)

func newRequest(t *testing.T, command ...string) domain.RunRequest {
	t.Helper()
	dir := t.TempDir()
	return domain.RunRequest{
		Key:        domain.NewWorkingDirectoryKey(dir),
		Command:    command,
		WorkingDir: dir,
	}
}

func TestRunner_Run_CapturesStreams(t *testing.T) {
	runner := shell.NewRunner()
	req := newRequest(t, "sh", "-c", "echo out1; echo err1 >&2; echo out2")

	res, err := runner.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out1\nout2\n", string(res.Stdout))
	assert.Equal(t, "err1\n", res.Stderr)
}

func TestRunner_Run_NonZeroExitIsData(t *testing.T) {
	runner := shell.NewRunner()

	for _, code := range []int{1, 2, 3} {
		req := newRequest(t, "sh", "-c", "echo partial; exit "+string(rune('0'+code)))

		res, err := runner.Run(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, code, res.ExitCode)
		assert.Equal(t, "partial\n", string(res.Stdout))
	}
}

func TestRunner_Run_LargeOutputDoesNotDeadlock(t *testing.T) {
	runner := shell.NewRunner()
	// Well over a pipe buffer on both streams.
	req := newRequest(t, "sh", "-c", "i=0; while [ $i -lt 20000 ]; do echo stdout-line-$i; echo stderr-line-$i >&2; i=$((i+1)); done")

	res, err := runner.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 20000, strings.Count(string(res.Stdout), "\n"))
	assert.Equal(t, 20000, strings.Count(res.Stderr, "\n"))
}

func TestRunner_Run_WorkingDirectory(t *testing.T) {
	runner := shell.NewRunner()
	req := newRequest(t, "sh", "-c", "pwd")

	res, err := runner.Run(context.Background(), req)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(req.WorkingDir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(string(res.Stdout)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunner_Run_EnvironmentOverride(t *testing.T) {
	t.Setenv("LINGER_TEST_VAR", "system")

	runner := shell.NewRunner()
	req := newRequest(t, "sh", "-c", "echo $LINGER_TEST_VAR")
	req.Env = map[string]string{"LINGER_TEST_VAR": "override"}

	res, err := runner.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "override\n", string(res.Stdout))
}

func TestRunner_Run_EmptyCommand(t *testing.T) {
	runner := shell.NewRunner()

	_, err := runner.Run(context.Background(), newRequest(t))
	require.ErrorIs(t, err, domain.ErrEmptyCommand)
}

func TestRunner_Check(t *testing.T) {
	runner := shell.NewRunner()

	t.Run("found on path", func(t *testing.T) {
		require.NoError(t, runner.Check(newRequest(t, "sh")))
	})

	t.Run("missing executable", func(t *testing.T) {
		err := runner.Check(newRequest(t, "linger-definitely-missing-binary"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrExecutableNotFound))
	})

	t.Run("path override", func(t *testing.T) {
		binDir := t.TempDir()
		tool := filepath.Join(binDir, "fake-lint")
		require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\necho ok\n"), 0o700))

		req := newRequest(t, "fake-lint")
		req.Env = map[string]string{"PATH": binDir}
		require.NoError(t, runner.Check(req))

		res, err := runner.Run(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "ok\n", string(res.Stdout))
	})

	t.Run("not executable", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.WriteFile(file, []byte("data"), 0o600))

		err := runner.Check(newRequest(t, file))
		assert.True(t, errors.Is(err, domain.ErrExecutableNotFound))
	})
}
