package domain

import "time"

// Settings is the resolved linger configuration.
type Settings struct {
	Executable      string
	Args            []string
	Env             map[string]string
	CacheCapacity   int
	NotifyInterval  time.Duration
	StorePath       string
	ToolConfigNames []string
}

// DefaultSettings returns the configuration used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Executable:      DefaultExecutable,
		Args:            DefaultArgs(),
		Env:             map[string]string{},
		CacheCapacity:   DefaultCacheCapacity,
		NotifyInterval:  DefaultNotifyInterval,
		StorePath:       DefaultStorePath(),
		ToolConfigNames: DefaultToolConfigNames(),
	}
}

// Command returns argv for a run: the executable, the configured args, then extra.
func (s *Settings) Command(extra ...string) []string {
	cmd := make([]string, 0, 1+len(s.Args)+len(extra))
	cmd = append(cmd, s.Executable)
	cmd = append(cmd, s.Args...)
	return append(cmd, extra...)
}
