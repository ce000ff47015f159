// Package config loads the developer-edited dlc_developer_config.toml and
// resolves it into the flag snapshot the dispatcher works from.
package config

import (
	"errors"
	"io/fs"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultConfigFile = "dlc_developer_config.toml"

// Config is the top-level developer configuration.
type Config struct {
	Dev   DevConfig   `toml:"dev"`
	Build BuildConfig `toml:"build"`
	Test  TestConfig  `toml:"test"`

	// BuildspecOverride maps a CodeBuild project name to the buildspec the
	// project should build from instead of its default.
	BuildspecOverride map[string]string `toml:"buildspec_override"`
}

// Load reads configuration from a TOML file.
// If path is empty, it tries the default file.
// Returns defaults if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Dev:   DefaultDevConfig(),
		Build: DefaultBuildConfig(),
		Test:  DefaultTestConfig(),
	}
}
