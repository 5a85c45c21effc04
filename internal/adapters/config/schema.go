package config

// Lingerfile represents the structure of the linger.yaml (or linger.toml) configuration file.
type Lingerfile struct {
	Version        string            `yaml:"version"        toml:"version"`
	Executable     string            `yaml:"executable"     toml:"executable"`
	Args           []string          `yaml:"args"           toml:"args"`
	Env            map[string]string `yaml:"env"            toml:"env"`
	NotifyInterval string            `yaml:"notifyInterval" toml:"notifyInterval"`
	ToolConfigs    []string          `yaml:"toolConfigs"    toml:"toolConfigs"`
	Cache          CacheDTO          `yaml:"cache"          toml:"cache"`
}

// CacheDTO configures the result cache.
type CacheDTO struct {
	// Capacity is a pointer so that an explicit zero is rejected instead of defaulted.
	Capacity *int   `yaml:"capacity" toml:"capacity"`
	Path     string `yaml:"path"     toml:"path"`
}
