package domain

import (
	"path/filepath"
	"time"
)

// WorkingDirectoryKey identifies the directory a tool run is scoped to.
// Requests with equal keys are the same job for coordination and caching,
// even when their argument lists differ.
type WorkingDirectoryKey string

// NewWorkingDirectoryKey builds a key from a directory path.
// The path is cleaned so that "a/b/" and "a/b" collapse to the same key.
func NewWorkingDirectoryKey(dir string) WorkingDirectoryKey {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return WorkingDirectoryKey(filepath.Clean(dir))
}

// String returns the key as a plain string.
func (k WorkingDirectoryKey) String() string {
	return string(k)
}

// RunRequest describes a single invocation of the external tool.
// It is treated as immutable once submitted.
type RunRequest struct {
	Key        WorkingDirectoryKey
	Command    []string
	WorkingDir string
	Env        map[string]string
}

// RunResult is the captured outcome of a finished process.
// It is shared between every caller waiting on the same job and must not be mutated.
type RunResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   string
	// StartedAt is when the process was started. Every waiter of a job sees
	// the same value, so it is the timestamp results are cached under.
	StartedAt time.Time
}
