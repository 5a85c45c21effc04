// Package fs reads document state from the local filesystem.
package fs

import (
	"bytes"
	"errors"
	iofs "io/fs"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DocumentSource = (*Documents)(nil)

// Documents implements ports.DocumentSource on top of os.
type Documents struct{}

// NewDocuments creates a new Documents.
func NewDocuments() *Documents {
	return &Documents{}
}

// ModTime returns the last modification time of path.
func (d *Documents) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, errors.Join(domain.ErrPathStatFailed, zerr.With(err, "path", path))
	}
	return info.ModTime(), nil
}

// ReadLines returns the saved contents of path split into lines.
// Line terminators, including a trailing one, are not part of the result.
func (d *Documents) ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, errors.Join(domain.ErrFileReadFailed, zerr.With(err, "path", path))
	}
	return SplitLines(data), nil
}

// IsModified reports whether buffer differs from the saved contents of path.
// A buffer for a file that does not exist on disk counts as modified.
func (d *Documents) IsModified(path string, buffer []string) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return true, nil
		}
		return false, errors.Join(domain.ErrFileReadFailed, zerr.With(err, "path", path))
	}
	return hashLines(SplitLines(data)) != hashLines(buffer), nil
}

// SplitLines splits data on newlines and strips carriage returns.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	data = bytes.TrimSuffix(data, []byte("\n"))

	raw := bytes.Split(data, []byte("\n"))
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = string(bytes.TrimSuffix(line, []byte("\r")))
	}
	return lines
}

func hashLines(lines []string) uint64 {
	hasher := xxhash.New()
	for _, line := range lines {
		_, _ = hasher.WriteString(line)
		_, _ = hasher.Write([]byte{0}) // Separator
	}
	return hasher.Sum64()
}
