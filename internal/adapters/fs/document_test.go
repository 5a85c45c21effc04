package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/linger/internal/adapters/fs"
	"go.trai.ch/linger/internal/core/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "trailing newline", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "no trailing newline", input: "a\nb", want: []string{"a", "b"}},
		{name: "crlf", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "blank lines kept", input: "a\n\nb\n", want: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fs.SplitLines([]byte(tt.input)))
		})
	}
}

func TestDocuments_ReadLines(t *testing.T) {
	path := writeFile(t, "package main\n\nfunc main() {}\n")

	lines, err := fs.NewDocuments().ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"package main", "", "func main() {}"}, lines)

	_, err = fs.NewDocuments().ReadLines(filepath.Join(t.TempDir(), "missing.go"))
	require.ErrorIs(t, err, domain.ErrFileReadFailed)
}

func TestDocuments_ModTime(t *testing.T) {
	path := writeFile(t, "package main\n")
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	got, err := fs.NewDocuments().ModTime(path)
	require.NoError(t, err)
	assert.True(t, got.Equal(stamp))

	_, err = fs.NewDocuments().ModTime(filepath.Join(t.TempDir(), "missing.go"))
	require.ErrorIs(t, err, domain.ErrPathStatFailed)
}

func TestDocuments_IsModified(t *testing.T) {
	docs := fs.NewDocuments()
	path := writeFile(t, "package main\n\nfunc main() {}\n")

	modified, err := docs.IsModified(path, []string{"package main", "", "func main() {}"})
	require.NoError(t, err)
	assert.False(t, modified)

	modified, err = docs.IsModified(path, []string{"package main", "", "func main() { run() }"})
	require.NoError(t, err)
	assert.True(t, modified)

	// Line boundaries matter, not just the concatenated text.
	modified, err = docs.IsModified(path, []string{"package main", "func main() {}", ""})
	require.NoError(t, err)
	assert.True(t, modified)

	modified, err = docs.IsModified(filepath.Join(t.TempDir(), "new.go"), []string{"package main"})
	require.NoError(t, err)
	assert.True(t, modified)
}
