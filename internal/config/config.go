// Package config provides configuration management for sdntopo.
//
// Config file locations (priority order):
//  1. $SDNTOPO_CONFIG
//  2. ./sdntopo.yaml
//  3. $XDG_CONFIG_HOME/sdntopo/config.yaml
//  4. ~/.config/sdntopo/config.yaml
//  5. /etc/sdntopo/config.yaml
//
// A relative snapshot_file is read from the directory of the config file
// that names it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults matching the ONOS 0.x REST API and the original GUI poll rate
const (
	DefaultAddr            = ":9000"
	DefaultONOSURL         = "http://127.0.0.1:8080"
	DefaultSwitchesPath    = "/wm/onos/topology/switches/json"
	DefaultLinksPath       = "/wm/onos/topology/links/json"
	DefaultRegistryPath    = "/wm/onos/registry/switches/json"
	DefaultControllersPath = "/wm/onos/registry/controllers/json"
	DefaultPollInterval    = 3 * time.Second
	DefaultTimeout         = 2 * time.Second
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.SnapshotFile = resolveRelative(path, cfg.SnapshotFile)

	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.ONOS.URL == "" {
		c.ONOS.URL = DefaultONOSURL
	}
	if c.ONOS.SwitchesPath == "" {
		c.ONOS.SwitchesPath = DefaultSwitchesPath
	}
	if c.ONOS.LinksPath == "" {
		c.ONOS.LinksPath = DefaultLinksPath
	}
	if c.ONOS.RegistryPath == "" {
		c.ONOS.RegistryPath = DefaultRegistryPath
	}
	if c.ONOS.ControllersPath == "" {
		c.ONOS.ControllersPath = DefaultControllersPath
	}
	if c.ONOS.Timeout == 0 {
		c.ONOS.Timeout = Duration(DefaultTimeout)
	}
	if c.PollInterval == 0 {
		c.PollInterval = Duration(DefaultPollInterval)
	}
}

// ControllersURL returns the controllers endpoint, or "" when disabled
func (c *Config) ControllersURL() string {
	if c.ONOS.DisableControllerStatus {
		return ""
	}
	return c.ONOS.URL + c.ONOS.ControllersPath
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("ONOS: %s, poll every %s (timeout %s)\n",
		c.ONOS.URL, c.PollInterval.Duration(), c.ONOS.Timeout.Duration())
	if c.SnapshotFile != "" {
		summary = fmt.Sprintf("Snapshot file: %s\n", c.SnapshotFile)
	}
	summary += fmt.Sprintf("Listen: %s\n", c.Server.Addr)
	if len(c.Controllers) == 0 {
		summary += "Controllers: from registry"
	} else {
		summary += fmt.Sprintf("Controllers (%d):", len(c.Controllers))
		for _, name := range c.Controllers {
			summary += fmt.Sprintf(" %s", name)
		}
	}
	return summary
}
