package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "RUNZERO_TOOLS_CONFIG"

type Config struct {
	LogLevel     string              `yaml:"log_level,omitempty"`
	InputFormat  string              `yaml:"input_format,omitempty"`
	CriticalSets map[string][]string `yaml:"critical_sets,omitempty"`
}

// GetConfigPath resolves the config file: explicit override, then the
// environment, then ~/.runzero-tools/config.yaml.
func GetConfigPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locate home directory")
	}
	return filepath.Join(home, ".runzero-tools", "config.yaml"), nil
}

// Default returns the configuration used when no file exists. LogLevel is
// left empty so the LOG_LEVEL environment variable can still apply.
func Default() *Config {
	return &Config{
		InputFormat:  "jsonl",
		CriticalSets: make(map[string][]string),
	}
}

// LoadConfig reads the config at path. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if cfg.CriticalSets == nil {
		cfg.CriticalSets = make(map[string][]string)
	}
	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return os.WriteFile(path, data, 0600)
}

func (c *Config) SetCriticalSet(name string, cidrs []string) {
	c.CriticalSets[name] = append([]string(nil), cidrs...)
}

// RemoveCriticalSet deletes a set and reports whether it existed.
func (c *Config) RemoveCriticalSet(name string) bool {
	if _, ok := c.CriticalSets[name]; !ok {
		return false
	}
	delete(c.CriticalSets, name)
	return true
}

// CriticalNetworks expands named sets into their CIDR entries, in the order
// the names are given.
func (c *Config) CriticalNetworks(names []string) ([]string, error) {
	var out []string
	for _, name := range names {
		cidrs, ok := c.CriticalSets[name]
		if !ok {
			return nil, errors.Newf("unknown critical network set %q", name)
		}
		out = append(out, cidrs...)
	}
	return out, nil
}

// SetNames returns the configured set names, sorted.
func (c *Config) SetNames() []string {
	names := make([]string, 0, len(c.CriticalSets))
	for name := range c.CriticalSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
