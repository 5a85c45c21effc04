// Package shell provides the process runner that spawns the linter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Runner implements ports.ProcessRunner using os/exec.
type Runner struct {
	environ func() []string
}

// NewRunner creates a new Runner that inherits the process environment.
func NewRunner() *Runner {
	return &Runner{environ: os.Environ}
}

// Check resolves the executable of req against the merged PATH.
func (r *Runner) Check(req domain.RunRequest) error {
	if len(req.Command) == 0 {
		return domain.ErrEmptyCommand
	}
	_, err := resolveExecutable(req.Command[0], resolveEnvironment(r.environ(), req.Env))
	return err
}

// Run executes req and captures its output.
// It merges environments with the following priority (low to high):
// 1. os.Environ() (System base)
// 2. req.Env (Caller overrides)
func (r *Runner) Run(ctx context.Context, req domain.RunRequest) (domain.RunResult, error) {
	if len(req.Command) == 0 {
		return domain.RunResult{}, domain.ErrEmptyCommand
	}

	name := req.Command[0]
	cmdEnv := resolveEnvironment(r.environ(), req.Env)

	executable, err := resolveExecutable(name, cmdEnv)
	if err != nil {
		return domain.RunResult{}, err
	}

	cmd := exec.CommandContext(ctx, executable, req.Command[1:]...) //nolint:gosec // caller provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = req.WorkingDir
	cmd.Env = cmdEnv

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return domain.RunResult{}, errors.Join(domain.ErrProcessStartFailed, err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return domain.RunResult{}, errors.Join(domain.ErrProcessStartFailed, err)
	}

	if err := cmd.Start(); err != nil {
		return domain.RunResult{}, errors.Join(
			domain.ErrProcessStartFailed,
			zerr.With(zerr.Wrap(err, "start"), "executable", executable),
		)
	}

	// Both pipes must be drained before Wait, otherwise a chatty tool blocks on a full pipe.
	var stdout, stderr bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(&stdout, stdoutPipe)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&stderr, stderrPipe)
		return err
	})
	drainErr := g.Wait()

	waitErr := cmd.Wait()

	result := domain.RunResult{
		ExitCode: exitCode(waitErr),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.String(),
	}

	if drainErr != nil {
		return result, errors.Join(domain.ErrOutputDrainFailed, drainErr)
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return result, zerr.With(zerr.Wrap(waitErr, "wait for linter"), "exit_code", result.ExitCode)
	}

	return result, nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// resolveEnvironment merges environment variables with the defined priority.
// The result is sorted so that identical inputs produce identical process environments.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// resolveExecutable returns the path to run for name.
// Absolute and relative paths containing a separator are checked in place;
// bare names are searched on the PATH of env.
func resolveExecutable(name string, env []string) (string, error) {
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		if err := findExecutable(name); err != nil {
			return "", errors.Join(domain.ErrExecutableNotFound, zerr.With(err, "executable", name))
		}
		return name, nil
	}

	lp, err := lookPath(name, env)
	if err != nil {
		return "", errors.Join(domain.ErrExecutableNotFound, zerr.With(err, "executable", name))
	}
	return lp, nil
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
