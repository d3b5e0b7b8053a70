package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fontdiag/fontdiag/pkg/util"
)

// Config holds the contents of the optional config file at
// ~/.config/fontdiag/config.yaml.
type Config struct {
	// HelperCommand overrides the settings-daemon dump helper.
	HelperCommand string `yaml:"helper_command"`
	// ResourceKeys overrides the X resource lookup list.
	ResourceKeys []string `yaml:"resource_keys"`
	LogLevel     string   `yaml:"log_level"`
	LogFormat    string   `yaml:"log_format"`
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// Replaceable for testing.
var configPathFunc = func() string {
	return filepath.Join(userConfigDir(), "fontdiag", "config.yaml")
}

// loadConfig reads the config file. A missing file yields defaults;
// invalid YAML is an error.
func loadConfig() (*Config, error) {
	path := configPathFunc()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// loggerConfig maps the config file's logging keys onto the logger
// defaults.
func (c *Config) loggerConfig() util.LoggerConfig {
	lc := util.DefaultLoggerConfig()
	if c.LogLevel != "" {
		lc.Level = util.LogLevel(c.LogLevel)
	}
	if c.LogFormat != "" {
		lc.Format = util.LogFormat(c.LogFormat)
	}
	return lc
}
