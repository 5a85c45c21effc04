// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/linger/internal/core/domain"
)

// ProcessRunner spawns the external tool and captures its output.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type ProcessRunner interface {
	// Check verifies that the request's executable can be launched.
	// It returns domain.ErrExecutableNotFound when it cannot.
	Check(req domain.RunRequest) error

	// Run executes the request and blocks until the process exits.
	//
	// A non-zero exit code is reported in the result, not as an error.
	// An error is returned only when the process could not be started or drained.
	Run(ctx context.Context, req domain.RunRequest) (domain.RunResult, error)
}
