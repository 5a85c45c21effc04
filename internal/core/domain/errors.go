package domain

import "go.trai.ch/zerr"

var (
	// ErrExecutableNotFound is returned when the tool binary cannot be resolved or is not executable.
	ErrExecutableNotFound = zerr.New("linter executable not found")

	// ErrEmptyCommand is returned when a run request carries no argv.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrProcessStartFailed is returned when the tool process could not be started.
	ErrProcessStartFailed = zerr.New("failed to start linter process")

	// ErrOutputDrainFailed is returned when stdout or stderr of the tool could not be read.
	ErrOutputDrainFailed = zerr.New("failed to read linter output")

	// ErrToolExecutionFailed is returned when the tool exits with a code other than 0 or 1.
	ErrToolExecutionFailed = zerr.New("linter execution failed")

	// ErrRunnerPanicked is returned to every waiter of a job whose runner panicked.
	ErrRunnerPanicked = zerr.New("linter runner panicked")

	// ErrReportParseFailed is returned when the tool output is not a valid report.
	ErrReportParseFailed = zerr.New("failed to parse linter report")

	// ErrReportMissing is returned when the tool output contains no JSON document.
	ErrReportMissing = zerr.New("linter output contains no report")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidCacheCapacity is returned when the configured cache capacity is not positive.
	ErrInvalidCacheCapacity = zerr.New("cache capacity must be positive")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrFileReadFailed is returned when a document cannot be read from disk.
	ErrFileReadFailed = zerr.New("failed to read file")

	// ErrStoreCreateFailed is returned when the result store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create result store directory")

	// ErrStoreReadFailed is returned when the result store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read result store")

	// ErrStoreUnmarshalFailed is returned when the result store cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal result store")

	// ErrStoreMarshalFailed is returned when the result store cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal result store")

	// ErrStoreWriteFailed is returned when the result store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write result store")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch directory")

	// ErrMissingArgument is returned when a required host argument is absent.
	ErrMissingArgument = zerr.New("missing argument")
)
