// Package config provides the configuration loader for linger.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML or TOML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the nearest configuration file at or above cwd.
// Defaults are returned when no file exists.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	configPath, ok := findUp(cwd, []string{domain.ConfigFileName, domain.ConfigFileNameTOML})
	if !ok {
		return settings, nil
	}

	var file Lingerfile
	if err := readAndUnmarshal(configPath, &file); err != nil {
		return domain.Settings{}, err
	}

	if err := l.apply(&settings, &file, filepath.Dir(configPath)); err != nil {
		return domain.Settings{}, zerr.With(err, "config_path", configPath)
	}
	return settings, nil
}

func (l *Loader) apply(settings *domain.Settings, file *Lingerfile, root string) error {
	if file.Version != "" && file.Version != "1" {
		l.Logger.Warn(fmt.Sprintf("unknown config version %q, reading it as version 1", file.Version))
	}

	if file.Executable != "" {
		settings.Executable = file.Executable
	}
	if file.Args != nil {
		settings.Args = file.Args
	}
	for k, v := range file.Env {
		settings.Env[k] = v
	}
	if len(file.ToolConfigs) > 0 {
		settings.ToolConfigNames = file.ToolConfigs
	}

	if file.NotifyInterval != "" {
		d, err := time.ParseDuration(file.NotifyInterval)
		if err != nil {
			return errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "notifyInterval", file.NotifyInterval))
		}
		settings.NotifyInterval = d
	}

	if file.Cache.Capacity != nil {
		if *file.Cache.Capacity < 1 {
			return zerr.With(zerr.Wrap(domain.ErrInvalidCacheCapacity, "invalid cache settings"), "capacity", *file.Cache.Capacity)
		}
		settings.CacheCapacity = *file.Cache.Capacity
	}
	if file.Cache.Path != "" {
		settings.StorePath = resolvePath(root, file.Cache.Path)
	}

	return nil
}

// ToolConfigModTime returns the modification time of the nearest file in names at or above workDir.
func (l *Loader) ToolConfigModTime(workDir string, names []string) (time.Time, error) {
	path, ok := findUp(workDir, names)
	if !ok {
		return time.Time{}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, errors.Join(domain.ErrPathStatFailed, zerr.With(err, "path", path))
	}
	return info.ModTime(), nil
}

// findUp returns the first existing file among names, checking dir and then each parent.
// Within one directory names are checked in order.
func findUp(dir string, names []string) (string, bool) {
	currentDir := dir
	for {
		for _, name := range names {
			candidate := filepath.Join(currentDir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func readAndUnmarshal(path string, out *Lingerfile) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is discovered from the working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", path))
	}

	if strings.HasSuffix(path, ".toml") {
		if _, err := toml.Decode(string(data), out); err != nil {
			return errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", path))
		}
		return nil
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", path))
	}
	return nil
}

func resolvePath(root, path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
