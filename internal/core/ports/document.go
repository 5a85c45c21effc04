package ports

import "time"

// DocumentSource exposes the on-disk state of documents being analyzed.
//
//go:generate mockgen -source=document.go -destination=mocks/mock_document.go -package=mocks
type DocumentSource interface {
	// ModTime returns the last modification time of the file.
	ModTime(path string) (time.Time, error)

	// ReadLines returns the saved contents of the file split into lines.
	ReadLines(path string) ([]string, error)

	// IsModified reports whether buffer differs from the saved contents of the file.
	IsModified(path string, buffer []string) (bool, error)
}
