package domain

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// ConfigFileName is the name of the linger configuration file.
	ConfigFileName = "linger.yaml"

	// ConfigFileNameTOML is the alternate TOML configuration file name.
	ConfigFileNameTOML = "linger.toml"

	// DefaultExecutable is the tool binary used when none is configured.
	DefaultExecutable = "golangci-lint"

	// DefaultCacheCapacity is the number of working directories kept in the result cache.
	DefaultCacheCapacity = 32

	// DefaultNotifyInterval is the minimum gap between two failure notifications for one key.
	DefaultNotifyInterval = time.Minute

	// CacheDirName is the name of the per-user cache directory.
	CacheDirName = "linger"

	// StoreFileName is the name of the persisted result store.
	StoreFileName = "results.msgpack"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultArgs are the tool arguments used when none are configured.
// The report is written to stdout as a single JSON document.
func DefaultArgs() []string {
	return []string{"run", "--output.json.path", "stdout", "--issues-exit-code", "1"}
}

// DefaultToolConfigNames lists the golangci-lint configuration files whose
// modification invalidates cached results.
func DefaultToolConfigNames() []string {
	return []string{".golangci.yml", ".golangci.yaml", ".golangci.toml", ".golangci.json"}
}

// DefaultStorePath returns the default location of the persisted result store.
// It falls back to the system temp dir when no user cache dir is available.
func DefaultStorePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, CacheDirName, StoreFileName)
}
